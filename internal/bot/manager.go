package bot

import (
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/iakhil/phronesis/internal/logger"
	"github.com/iakhil/phronesis/internal/metrics"
)

// GracePeriod is how long a worker gets to exit after the graceful signal
// before it is force-killed. It is fixed, not caller-configurable.
const GracePeriod = 5 * time.Second

// Config describes how worker processes are launched.
type Config struct {
	Command string        `mapstructure:"command"`  // path to the bot worker program
	WorkDir string        `mapstructure:"work_dir"` // optional working directory
	Env     []string      `mapstructure:"env"`      // extra KEY=VALUE pairs appended to the inherited env
	Log     logger.Config `mapstructure:"log"`      // worker stdout/stderr destination
}

// Manager owns the invariant "at most one live worker per room". All
// registry mutation goes through it; the scan-terminate-spawn-register
// sequence in Start holds mu so racing starts for one room cannot both
// observe an empty room and double-spawn.
type Manager struct {
	cfg   Config
	reg   *Registry
	mu    sync.Mutex
	grace time.Duration
}

func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg, reg: NewRegistry(), grace: GracePeriod}
}

// Registry exposes the underlying store for read-only snapshots.
func (m *Manager) Registry() *Registry { return m.reg }

// Start retires any worker already bound to room, spawns a new one with the
// fixed invocation contract, registers it, and returns its PID.
func (m *Manager) Start(roomURL, token string, spec Spec) (int, error) {
	spec = spec.Normalize()
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, w := range m.reg.ByRoom(roomURL) {
		m.retire(w)
	}

	cmd, closers := m.buildCmd(roomURL, token, spec)
	if err := cmd.Start(); err != nil {
		for _, c := range closers {
			_ = c.Close()
		}
		return 0, &SpawnError{Command: m.cfg.Command, Err: err}
	}
	w := newWorker(cmd, roomURL, closers...)
	m.reg.Insert(w)
	metrics.BotStarted(string(spec.Type))
	metrics.SetActiveBots(m.reg.Len())
	slog.Info("started bot", "pid", w.PID, "room", roomURL, "bot_type", spec.Type)
	return w.PID, nil
}

// Stop terminates the worker registered under pid and removes its entry.
// Unknown PIDs fail with ErrNotFound; termination itself never fails.
func (m *Manager) Stop(pid int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.reg.Get(pid)
	if !ok {
		return ErrNotFound
	}
	m.retire(w)
	return nil
}

// StopAll terminates every registered worker. Used on shutdown.
func (m *Manager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.reg.All() {
		m.retire(w)
	}
}

// retire terminates w and removes its entry unconditionally. A subprocess
// that cannot be controlled must not remain discoverable. Callers hold mu.
func (m *Manager) retire(w *Worker) {
	forced := w.Terminate(m.grace)
	m.reg.Remove(w.PID)
	metrics.BotStopped(forced)
	metrics.SetActiveBots(m.reg.Len())
	slog.Info("stopped bot", "pid", w.PID, "room", w.Room, "forced", forced)
}

func (m *Manager) buildCmd(roomURL, token string, spec Spec) (*exec.Cmd, []io.Closer) {
	// Fixed argument contract of the worker program.
	// #nosec G204 -- m.cfg.Command comes from operator config, not requests
	cmd := exec.Command(m.cfg.Command,
		"-u", roomURL,
		"-t", token,
		"--bot-type", string(spec.Type),
		"--topic", spec.Topic,
		"--concept", spec.Concept,
	)
	if m.cfg.WorkDir != "" {
		cmd.Dir = m.cfg.WorkDir
	}
	if len(m.cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), m.cfg.Env...)
	}
	configureSysProcAttr(cmd)

	var closers []io.Closer
	outW, errW := m.cfg.Log.Writers(roomLogName(roomURL))
	if outW != nil {
		cmd.Stdout = outW
		cmd.Stderr = errW
		closers = append(closers, outW, errW)
	} else {
		null, _ := os.OpenFile(os.DevNull, os.O_RDWR, 0)
		cmd.Stdout = null
		cmd.Stderr = null
		closers = append(closers, null)
	}
	return cmd, closers
}

// roomLogName derives a log file stem from the room URL's last path segment.
func roomLogName(roomURL string) string {
	trimmed := strings.TrimRight(roomURL, "/")
	if i := strings.LastIndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	if trimmed == "" {
		return "bot"
	}
	return "bot-" + trimmed
}
