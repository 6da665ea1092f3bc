package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/gymmawy/gymmawy/internal/domain/loyalty"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/types"
)

// InMemoryLoyaltyStore implements loyalty.Repository for tests. It takes the
// user store so Credit and Debit can keep the denormalized balance in sync
// with the ledger, matching the SQL implementation's transaction.
type InMemoryLoyaltyStore struct {
	mu    sync.Mutex
	rows  []*loyalty.Transaction
	users *InMemoryUserStore
}

func NewInMemoryLoyaltyStore(users *InMemoryUserStore) *InMemoryLoyaltyStore {
	return &InMemoryLoyaltyStore{users: users}
}

func copyLoyaltyTx(tx *loyalty.Transaction) *loyalty.Transaction {
	if tx == nil {
		return nil
	}
	copied := *tx
	return &copied
}

func (s *InMemoryLoyaltyStore) Credit(ctx context.Context, tx *loyalty.Transaction) error {
	if tx == nil {
		return ierr.NewError("transaction cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.users.Get(ctx, tx.UserID)
	if err != nil {
		return err
	}
	u.LoyaltyPoints += tx.Points
	u.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, u); err != nil {
		return err
	}

	s.rows = append(s.rows, copyLoyaltyTx(tx))
	return nil
}

func (s *InMemoryLoyaltyStore) Debit(ctx context.Context, tx *loyalty.Transaction) error {
	if tx == nil {
		return ierr.NewError("transaction cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.users.Get(ctx, tx.UserID)
	if err != nil {
		return err
	}
	if u.LoyaltyPoints < tx.Points {
		return ierr.NewError("insufficient loyalty points").
			WithHint("Not enough loyalty points for this redemption").
			Mark(ierr.ErrValidation)
	}
	u.LoyaltyPoints -= tx.Points
	u.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, u); err != nil {
		return err
	}

	s.rows = append(s.rows, copyLoyaltyTx(tx))
	return nil
}

func (s *InMemoryLoyaltyStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*loyalty.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := make([]*loyalty.Transaction, 0)
	// Newest first, like the SQL ordering.
	for i := len(s.rows) - 1; i >= 0; i-- {
		if s.rows[i].UserID == userID {
			matches = append(matches, copyLoyaltyTx(s.rows[i]))
		}
	}
	return paginate(matches, limit, offset), nil
}

func (s *InMemoryLoyaltyStore) CountByUser(ctx context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := int64(0)
	for _, row := range s.rows {
		if row.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryLoyaltyStore) SumPoints(ctx context.Context, txType types.LoyaltyTransactionType, since *time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := int64(0)
	for _, row := range s.rows {
		if row.Type != txType {
			continue
		}
		if since != nil && row.CreatedAt.Before(*since) {
			continue
		}
		total += int64(row.Points)
	}
	return total, nil
}

func (s *InMemoryLoyaltyStore) SumPointsByUser(ctx context.Context, userID string, txType types.LoyaltyTransactionType) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := int64(0)
	for _, row := range s.rows {
		if row.UserID == userID && row.Type == txType {
			total += int64(row.Points)
		}
	}
	return total, nil
}
