package bot

import (
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"time"
)

// killConfirmWait bounds how long we linger for exit confirmation after a
// force kill. Termination is best-effort past this point.
const killConfirmWait = 200 * time.Millisecond

// Worker is a single spawned bot process bound to one room. It is owned by
// the registry entry from creation to removal; once removed its handle must
// not be signaled again (Terminate on an exited worker is a no-op).
type Worker struct {
	PID       int
	Room      string
	StartedAt time.Time

	cmd      *exec.Cmd
	waitDone chan struct{} // closed by the monitor when cmd.Wait returns

	mu      sync.Mutex
	exitErr error
	closers []io.Closer
}

// newWorker wraps an already-started command and begins reaping it. closers
// are the worker's log writers, closed once the process exits.
func newWorker(cmd *exec.Cmd, room string, closers ...io.Closer) *Worker {
	w := &Worker{
		PID:       cmd.Process.Pid,
		Room:      room,
		StartedAt: time.Now(),
		cmd:       cmd,
		waitDone:  make(chan struct{}),
		closers:   closers,
	}
	go w.monitor()
	return w
}

// monitor is the single waiter on the underlying process. Terminate never
// calls cmd.Wait itself; it blocks on waitDone instead.
func (w *Worker) monitor() {
	err := w.cmd.Wait()
	w.mu.Lock()
	w.exitErr = err
	for _, c := range w.closers {
		_ = c.Close()
	}
	w.closers = nil
	w.mu.Unlock()
	close(w.waitDone)
}

// Alive reports whether the process has been reaped yet. A crashed worker
// that nobody waited on reads as dead here.
func (w *Worker) Alive() bool {
	select {
	case <-w.waitDone:
		return false
	default:
		return true
	}
}

// ExitErr returns the error cmd.Wait produced, if the worker has exited.
func (w *Worker) ExitErr() error {
	select {
	case <-w.waitDone:
		w.mu.Lock()
		defer w.mu.Unlock()
		return w.exitErr
	default:
		return nil
	}
}

// Terminate runs the two-phase shutdown: graceful signal, wait up to grace,
// then force kill with a short exit-confirmation wait. It reports whether
// the forced phase was reached. Signaling failures are logged and absorbed;
// the caller's contract is that the room and PID are free to reuse, not that
// the OS process is provably gone.
func (w *Worker) Terminate(grace time.Duration) bool {
	select {
	case <-w.waitDone:
		return false
	default:
	}
	if err := terminateGroup(w.PID); err != nil {
		slog.Debug("graceful signal failed", "pid", w.PID, "err", err)
	}
	select {
	case <-w.waitDone:
		return false
	case <-time.After(grace):
	}
	if err := killGroup(w.PID); err != nil {
		slog.Warn("force kill failed", "pid", w.PID, "err", err)
	}
	select {
	case <-w.waitDone:
	case <-time.After(killConfirmWait):
		slog.Warn("worker did not confirm exit after kill", "pid", w.PID, "room", w.Room)
	}
	return true
}
