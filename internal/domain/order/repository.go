package order

import (
	"context"
	"time"

	"github.com/gymmawy/gymmawy/internal/types"
)

// Repository defines the interface for order persistence.
type Repository interface {
	// Create persists the order and its items as one transaction.
	Create(ctx context.Context, order *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	List(ctx context.Context, filter *types.OrderFilter) ([]*Order, error)
	Count(ctx context.Context, filter *types.OrderFilter) (int, error)
	Update(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id string) error

	CountAll(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	// TopProducts returns products ordered by total quantity sold.
	TopProducts(ctx context.Context, limit int) ([]ProductSales, error)
}
