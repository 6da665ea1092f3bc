package plan

import (
	"context"

	"github.com/gymmawy/gymmawy/internal/types"
)

// Repository defines the interface for plan and plan-price persistence.
type Repository interface {
	Create(ctx context.Context, plan *Plan) error
	Get(ctx context.Context, id string) (*Plan, error)
	// GetWithPrices fetches a plan with its price rows preloaded.
	GetWithPrices(ctx context.Context, id string) (*Plan, error)
	List(ctx context.Context, filter *types.PlanFilter) ([]*Plan, error)
	Count(ctx context.Context, filter *types.PlanFilter) (int, error)
	Update(ctx context.Context, plan *Plan) error
	// SoftDelete marks the plan deleted without removing historical rows.
	SoftDelete(ctx context.Context, id string) error
	// Reorder applies new display positions as one atomic batch.
	Reorder(ctx context.Context, positions map[string]int) error

	UpsertPrice(ctx context.Context, price *PlanPrice) error
	// GetPrice fetches the price row for (plan, currency, type); a missing
	// row is a not-found error, never a fallback.
	GetPrice(ctx context.Context, planID string, currency types.Currency, priceType types.PlanPriceType) (*PlanPrice, error)
	ListPrices(ctx context.Context, planID string) ([]*PlanPrice, error)
	DeletePrice(ctx context.Context, id string) error
}
