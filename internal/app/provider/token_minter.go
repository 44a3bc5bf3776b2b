package provider

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"token_creator/internal/app/port"
	"token_creator/internal/domain/entity"
)

type simulatedMinter struct {
	clock    clock.Clock
	latency  time.Duration
	generate func() string
	logger   port.Logger
}

// NewSimulatedMinter creates a TokenMinter that sleeps for latency (the simulated network
// round-trip) and then returns a fabricated address from generate. It cannot fail except
// by cancellation.
func NewSimulatedMinter(clk clock.Clock, latency time.Duration, generate func() string, logger port.Logger) port.TokenMinter {
	return &simulatedMinter{
		clock:    clk,
		latency:  latency,
		generate: generate,
		logger:   logger,
	}
}

// Mint implements port.TokenMinter.
func (m *simulatedMinter) Mint(ctx context.Context, draft entity.TokenDraft) (entity.CreatedToken, error) {
	m.logger.Debug("Simulating token creation", "name", draft.Name, "symbol", draft.Symbol, "latency", m.latency)

	timer := m.clock.Timer(m.latency)
	select {
	case <-ctx.Done():
		timer.Stop()
		return entity.CreatedToken{}, ctx.Err()
	case <-timer.C:
	}

	token := entity.CreatedToken{
		Address:   m.generate(),
		Name:      draft.Name,
		Symbol:    draft.Symbol,
		Decimals:  draft.Decimals,
		Supply:    draft.Supply,
		CreatedAt: m.clock.Now(),
	}
	m.logger.Info("Simulated token created", "address", token.Address, "symbol", token.Symbol)
	return token, nil
}
