package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWritersDisabledWithoutDir(t *testing.T) {
	outW, errW := Config{}.Writers("bot-abc")
	if outW != nil || errW != nil {
		t.Fatalf("expected nil writers without a log dir")
	}
}

func TestWritersCreateRotatingFiles(t *testing.T) {
	dir := t.TempDir()
	c := Config{Dir: dir}
	outW, errW := c.Writers("bot-abc")
	if outW == nil || errW == nil {
		t.Fatalf("expected writers with a log dir")
	}
	defer func() { _ = outW.Close(); _ = errW.Close() }()

	if _, err := outW.Write([]byte("hello stdout\n")); err != nil {
		t.Fatalf("write stdout: %v", err)
	}
	if _, err := errW.Write([]byte("hello stderr\n")); err != nil {
		t.Fatalf("write stderr: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "bot-abc.stdout.log"))
	if err != nil || !strings.Contains(string(data), "hello stdout") {
		t.Fatalf("stdout log missing: %v %q", err, data)
	}
	if _, err := os.Stat(filepath.Join(dir, "bot-abc.stderr.log")); err != nil {
		t.Fatalf("stderr log missing: %v", err)
	}
}

func TestSetupLevels(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	l := Setup("debug", false)
	if !l.Enabled(nil, slog.LevelDebug) {
		t.Fatalf("debug level not enabled")
	}
	l = Setup("warn", true)
	if l.Enabled(nil, slog.LevelInfo) {
		t.Fatalf("info should be disabled at warn level")
	}
	// Unknown levels fall back to info.
	l = Setup("loud", false)
	if !l.Enabled(nil, slog.LevelInfo) || l.Enabled(nil, slog.LevelDebug) {
		t.Fatalf("unknown level should mean info")
	}
}
