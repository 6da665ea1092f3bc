package loyalty

import (
	"context"
	"time"

	"github.com/gymmawy/gymmawy/internal/types"
)

// Repository defines the interface for the loyalty ledger. Credit and Debit
// must apply the balance change and the ledger append as one atomic unit;
// partial application is a correctness bug, not an accepted state.
type Repository interface {
	// Credit increments the user's balance and appends an EARNED row.
	Credit(ctx context.Context, tx *Transaction) error
	// Debit decrements the user's balance and appends a REDEEMED row.
	Debit(ctx context.Context, tx *Transaction) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Transaction, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	// SumPoints totals ledger points of one type, optionally since a cutoff.
	SumPoints(ctx context.Context, txType types.LoyaltyTransactionType, since *time.Time) (int64, error)
	// SumPointsByUser totals one user's ledger points of one type.
	SumPointsByUser(ctx context.Context, userID string, txType types.LoyaltyTransactionType) (int64, error)
}
