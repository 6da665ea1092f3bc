package lead

import (
	"context"

	"github.com/gymmawy/gymmawy/internal/types"
)

// Repository defines the interface for lead persistence.
type Repository interface {
	Create(ctx context.Context, lead *Lead) error
	Get(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, filter *types.LeadFilter) ([]*Lead, error)
	Count(ctx context.Context, filter *types.LeadFilter) (int, error)
	Update(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id string) error
	CountGroupedByStatus(ctx context.Context) ([]StatusCount, error)
}
