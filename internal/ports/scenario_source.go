package ports

import (
	"context"

	"github.com/bnema/ctxsim/internal/domain"
)

// ScenarioSource loads the ground-truth table and sample corpora once at startup.
type ScenarioSource interface {
	Load(ctx context.Context) ([]domain.Scenario, error)
}
