//go:build !windows

package bot

import (
	"os/exec"
	"syscall"
)

// configureSysProcAttr places the worker in its own process group so that
// termination signals reach the worker and anything it forks.
func configureSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
