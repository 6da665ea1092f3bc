package testutil

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gymmawy/gymmawy/internal/domain/payment"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/types"
)

// InMemoryPaymentStore implements payment.Repository for tests.
type InMemoryPaymentStore struct {
	*InMemoryStore[*payment.Payment]
}

func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{InMemoryStore: NewInMemoryStore[*payment.Payment]()}
}

func copyPayment(p *payment.Payment) *payment.Payment {
	if p == nil {
		return nil
	}
	copied := *p
	copyTimePtr(&copied.ProcessedAt)
	return &copied
}

func (s *InMemoryPaymentStore) Create(ctx context.Context, p *payment.Payment) error {
	if p == nil {
		return ierr.NewError("payment cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if exists, _ := s.ExistsByReference(ctx, p.PaymentReference); exists {
		return ierr.NewErrorf("payment reference already exists: %s", p.PaymentReference).
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, p.ID, copyPayment(p))
}

func (s *InMemoryPaymentStore) Get(ctx context.Context, id string) (*payment.Payment, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyPayment(p), nil
}

func (s *InMemoryPaymentStore) GetByReference(ctx context.Context, reference string) (*payment.Payment, error) {
	matches := s.InMemoryStore.All(func(p *payment.Payment) bool {
		return p.PaymentReference == reference
	})
	if len(matches) == 0 {
		return nil, ierr.NewErrorf("payment not found: %s", reference).
			Mark(ierr.ErrNotFound)
	}
	return copyPayment(matches[0]), nil
}

func (s *InMemoryPaymentStore) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	matches := s.InMemoryStore.All(func(p *payment.Payment) bool {
		return p.PaymentReference == reference
	})
	return len(matches) > 0, nil
}

func matchPaymentFilter(p *payment.Payment, filter *types.PaymentFilter) bool {
	if filter == nil {
		return true
	}
	if filter.UserID != "" && p.UserID != filter.UserID {
		return false
	}
	if filter.PaymentStatus != "" && p.PaymentStatus != filter.PaymentStatus {
		return false
	}
	if filter.Method != "" && p.Method != filter.Method {
		return false
	}
	if filter.Currency != "" && p.Currency != filter.Currency {
		return false
	}
	if filter.PaymentableType != "" && p.PaymentableType != filter.PaymentableType {
		return false
	}
	if filter.PaymentableID != "" && p.PaymentableID != filter.PaymentableID {
		return false
	}
	return true
}

func (s *InMemoryPaymentStore) List(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	payments := s.InMemoryStore.All(func(p *payment.Payment) bool {
		return matchPaymentFilter(p, filter)
	})
	if filter != nil && filter.QueryFilter != nil && !filter.IsUnlimited() {
		payments = paginate(payments, filter.GetLimit(), filter.GetOffset())
	}
	out := make([]*payment.Payment, 0, len(payments))
	for _, p := range payments {
		out = append(out, copyPayment(p))
	}
	return out, nil
}

func (s *InMemoryPaymentStore) Count(ctx context.Context, filter *types.PaymentFilter) (int, error) {
	payments := s.InMemoryStore.All(func(p *payment.Payment) bool {
		return matchPaymentFilter(p, filter)
	})
	return len(payments), nil
}

func (s *InMemoryPaymentStore) Update(ctx context.Context, p *payment.Payment) error {
	if p == nil {
		return ierr.NewError("payment cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, p.ID, copyPayment(p))
}

func matchRevenueQuery(p *payment.Payment, query payment.RevenueQuery) bool {
	if query.PaymentStatus != "" && p.PaymentStatus != query.PaymentStatus {
		return false
	}
	if query.Currency != "" && p.Currency != query.Currency {
		return false
	}
	if query.PaymentableType != "" && p.PaymentableType != query.PaymentableType {
		return false
	}
	if query.From != nil && p.CreatedAt.Before(*query.From) {
		return false
	}
	if query.To != nil && !p.CreatedAt.Before(*query.To) {
		return false
	}
	return true
}

func (s *InMemoryPaymentStore) SumRevenue(ctx context.Context, query payment.RevenueQuery) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range s.InMemoryStore.All(nil) {
		if matchRevenueQuery(p, query) {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

func (s *InMemoryPaymentStore) RevenueByCurrency(ctx context.Context, query payment.RevenueQuery) ([]payment.CurrencyRevenue, error) {
	query.Currency = ""
	totals := make(map[types.Currency]decimal.Decimal)
	for _, p := range s.InMemoryStore.All(nil) {
		if matchRevenueQuery(p, query) {
			totals[p.Currency] = totals[p.Currency].Add(p.Amount)
		}
	}
	out := make([]payment.CurrencyRevenue, 0, len(totals))
	for currency, total := range totals {
		out = append(out, payment.CurrencyRevenue{Currency: currency, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Currency < out[j].Currency
	})
	return out, nil
}

func (s *InMemoryPaymentStore) CountByQuery(ctx context.Context, query payment.RevenueQuery) (int64, error) {
	count := int64(0)
	for _, p := range s.InMemoryStore.All(nil) {
		if matchRevenueQuery(p, query) {
			count++
		}
	}
	return count, nil
}
