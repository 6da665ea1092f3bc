package programme

import (
	"context"
	"time"
)

// Repository defines the interface for programme and purchase persistence.
type Repository interface {
	Create(ctx context.Context, programme *Programme) error
	Get(ctx context.Context, id string) (*Programme, error)
	GetWithPrices(ctx context.Context, id string) (*Programme, error)
	List(ctx context.Context, limit, offset int) ([]*Programme, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, programme *Programme) error
	SoftDelete(ctx context.Context, id string) error
	// Reorder applies new display positions as one atomic batch.
	Reorder(ctx context.Context, positions map[string]int) error

	UpsertPrice(ctx context.Context, price *Price) error

	CreatePurchase(ctx context.Context, purchase *Purchase) error
	GetPurchase(ctx context.Context, id string) (*Purchase, error)
	ExistsPurchaseByNumber(ctx context.Context, number string) (bool, error)
	ListPurchases(ctx context.Context, userID string, limit, offset int) ([]*Purchase, error)
	CountPurchases(ctx context.Context) (int64, error)
	CountPurchasesSince(ctx context.Context, since time.Time) (int64, error)
	CountPurchasesBetween(ctx context.Context, from, to time.Time) (int64, error)
	// TopProgrammes returns programmes ordered by purchase count.
	TopProgrammes(ctx context.Context, limit int) ([]ProgrammeCount, error)
}
