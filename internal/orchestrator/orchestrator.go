// Package orchestrator is the request-facing layer over room provisioning
// and bot lifecycle: connect provisions a room and starts a worker, status
// snapshots the registry, stop terminates by PID.
package orchestrator

import (
	"context"
	"sort"

	"github.com/iakhil/phronesis/internal/bot"
	"github.com/iakhil/phronesis/internal/daily"
)

// Provisioner creates a room plus an access token scoped to it.
// *daily.Client satisfies this; tests substitute fakes.
type Provisioner interface {
	Provision(ctx context.Context) (daily.RoomCredential, error)
}

// ConnectResult is the user-visible outcome of a connect call.
type ConnectResult struct {
	RoomURL string   `json:"room_url"`
	Token   string   `json:"token"`
	PID     int      `json:"bot_pid"`
	Type    bot.Type `json:"bot_type"`
	Topic   string   `json:"topic"`
	Concept string   `json:"concept"`
}

// BotInfo is one registry entry in a status snapshot.
type BotInfo struct {
	PID  int    `json:"pid"`
	Room string `json:"room"`
}

// StatusReport is a point-in-time view of the registry.
type StatusReport struct {
	Count int
	Bots  []BotInfo
}

type Service struct {
	prov Provisioner
	mgr  *bot.Manager
}

func NewService(prov Provisioner, mgr *bot.Manager) *Service {
	return &Service{prov: prov, mgr: mgr}
}

// Connect provisions a room and starts a worker bound to it. Provisioning
// happens before — and outside — the lifecycle lock; its failure surfaces
// as-is and leaves no worker behind. There are no retries.
func (s *Service) Connect(ctx context.Context, spec bot.Spec) (ConnectResult, error) {
	spec = spec.Normalize()
	cred, err := s.prov.Provision(ctx)
	if err != nil {
		return ConnectResult{}, err
	}
	pid, err := s.mgr.Start(cred.RoomURL, cred.Token, spec)
	if err != nil {
		return ConnectResult{}, err
	}
	return ConnectResult{
		RoomURL: cred.RoomURL,
		Token:   cred.Token,
		PID:     pid,
		Type:    spec.Type,
		Topic:   spec.Topic,
		Concept: spec.Concept,
	}, nil
}

// Status snapshots the registry. Count always equals len(Bots) taken at the
// same instant.
func (s *Service) Status() StatusReport {
	workers := s.mgr.Registry().All()
	bots := make([]BotInfo, 0, len(workers))
	for _, w := range workers {
		bots = append(bots, BotInfo{PID: w.PID, Room: w.Room})
	}
	sort.Slice(bots, func(i, j int) bool { return bots[i].PID < bots[j].PID })
	return StatusReport{Count: len(bots), Bots: bots}
}

// Stop terminates the worker registered under pid. Unknown PIDs fail with
// bot.ErrNotFound.
func (s *Service) Stop(pid int) error {
	return s.mgr.Stop(pid)
}

// Shutdown terminates every registered worker. Called on server exit.
func (s *Service) Shutdown() {
	s.mgr.StopAll()
}
