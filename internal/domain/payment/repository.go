package payment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/gymmawy/gymmawy/internal/types"
)

// Repository defines the interface for payment persistence.
type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
	GetByReference(ctx context.Context, reference string) (*Payment, error)
	ExistsByReference(ctx context.Context, reference string) (bool, error)
	List(ctx context.Context, filter *types.PaymentFilter) ([]*Payment, error)
	Count(ctx context.Context, filter *types.PaymentFilter) (int, error)
	Update(ctx context.Context, payment *Payment) error

	// SumRevenue returns the summed amount of payments matching the query.
	SumRevenue(ctx context.Context, query RevenueQuery) (decimal.Decimal, error)
	// RevenueByCurrency returns per-currency sums of payments matching the
	// query (its Currency field is ignored).
	RevenueByCurrency(ctx context.Context, query RevenueQuery) ([]CurrencyRevenue, error)
	// CountByQuery counts payments matching the query.
	CountByQuery(ctx context.Context, query RevenueQuery) (int64, error)
}
