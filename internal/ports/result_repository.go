package ports

import (
	"context"

	"github.com/bnema/ctxsim/internal/domain"
)

type ResultRepository interface {
	Get(ctx context.Context, key domain.RunKey) (domain.RunRecord, error)
	List(ctx context.Context) ([]domain.RunRecord, error)
	Save(ctx context.Context, records []domain.RunRecord) error
}
