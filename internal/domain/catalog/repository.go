package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository serves master data lookups for display formatting.
type Repository interface {
	GetModel(ctx context.Context, id uuid.UUID) (*Model, error)
	ListModels(ctx context.Context) ([]*Model, error)
	GetDistributor(ctx context.Context, id uuid.UUID) (*Distributor, error)
	ListDistributors(ctx context.Context) ([]*Distributor, error)
}
