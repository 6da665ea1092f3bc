package subscription

import (
	"context"
	"time"

	"github.com/gymmawy/gymmawy/internal/types"
)

// Repository defines the interface for subscription persistence.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	Get(ctx context.Context, id string) (*Subscription, error)
	// GetWithPlan fetches a subscription with its plan preloaded.
	GetWithPlan(ctx context.Context, id string) (*Subscription, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	List(ctx context.Context, filter *types.SubscriptionFilter) ([]*Subscription, error)
	Count(ctx context.Context, filter *types.SubscriptionFilter) (int, error)
	Update(ctx context.Context, sub *Subscription) error
	// Delete is the explicit admin delete, distinct from any lifecycle
	// transition.
	Delete(ctx context.Context, id string) error

	// SweepExpired bulk-transitions ACTIVE subscriptions whose end date has
	// passed to EXPIRED and returns the number of rows changed. The predicate
	// is idempotent; concurrent sweeps converge on the same state.
	SweepExpired(ctx context.Context, now time.Time) (int64, error)

	CountByStatus(ctx context.Context, status types.SubscriptionStatus) (int64, error)
	CountByStatusCreatedSince(ctx context.Context, status types.SubscriptionStatus, since time.Time) (int64, error)
	CountGroupedByStatus(ctx context.Context) ([]StatusCount, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	// TopPlans returns plans ordered by subscription count.
	TopPlans(ctx context.Context, limit int) ([]PlanCount, error)
}
