package bot

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Stop when no worker is registered under the
// given PID.
var ErrNotFound = errors.New("bot not found")

// SpawnError wraps a local process-creation failure. Nothing is registered
// when spawning fails; the caller decides whether to retry.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start bot %q: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }
