// Package phronesis exposes the bot orchestration core for embedding.
package phronesis

import (
	"context"

	"github.com/iakhil/phronesis/internal/bot"
	"github.com/iakhil/phronesis/internal/daily"
	"github.com/iakhil/phronesis/internal/orchestrator"
)

// Re-export core types for external consumers. These are aliases, so
// conversions are zero-cost.

type Spec = bot.Spec

type BotConfig = bot.Config

type DailyConfig = daily.Config

type ConnectResult = orchestrator.ConnectResult

type StatusReport = orchestrator.StatusReport

// ErrNotFound is returned by Stop for unknown PIDs.
var ErrNotFound = bot.ErrNotFound

// Service is a thin facade over the internal orchestrator, providing a
// stable public API for embedding.
type Service struct{ inner *orchestrator.Service }

// New builds an orchestration service from the Daily and bot configs.
func New(dailyCfg DailyConfig, botCfg BotConfig) *Service {
	mgr := bot.NewManager(botCfg)
	return &Service{inner: orchestrator.NewService(daily.New(dailyCfg), mgr)}
}

func (s *Service) Connect(ctx context.Context, spec Spec) (ConnectResult, error) {
	return s.inner.Connect(ctx, spec)
}

func (s *Service) Status() StatusReport { return s.inner.Status() }

func (s *Service) Stop(pid int) error { return s.inner.Stop(pid) }

func (s *Service) Shutdown() { s.inner.Shutdown() }
