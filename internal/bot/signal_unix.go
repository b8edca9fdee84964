//go:build !windows

package bot

import "syscall"

// terminateGroup asks the worker's process group to shut down gracefully.
func terminateGroup(pid int) error {
	return syscall.Kill(-pid, syscall.SIGTERM)
}

// killGroup force-kills the worker's process group.
func killGroup(pid int) error {
	return syscall.Kill(-pid, syscall.SIGKILL)
}

// processExists checks liveness via signal 0.
func processExists(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}
