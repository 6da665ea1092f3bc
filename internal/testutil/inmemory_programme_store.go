package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/gymmawy/gymmawy/internal/domain/programme"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
)

// InMemoryProgrammeStore implements programme.Repository for tests.
// Programmes, their price rows and purchases live in separate stores, joined
// on read like the SQL implementation does.
type InMemoryProgrammeStore struct {
	*InMemoryStore[*programme.Programme]
	prices    *InMemoryStore[*programme.Price]
	purchases *InMemoryStore[*programme.Purchase]
}

func NewInMemoryProgrammeStore() *InMemoryProgrammeStore {
	return &InMemoryProgrammeStore{
		InMemoryStore: NewInMemoryStore[*programme.Programme](),
		prices:        NewInMemoryStore[*programme.Price](),
		purchases:     NewInMemoryStore[*programme.Purchase](),
	}
}

func copyProgramme(p *programme.Programme) *programme.Programme {
	if p == nil {
		return nil
	}
	copied := *p
	copied.Prices = nil
	copyTimePtr(&copied.DeletedAt)
	return &copied
}

func copyProgrammePrice(p *programme.Price) *programme.Price {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}

func copyPurchase(p *programme.Purchase) *programme.Purchase {
	if p == nil {
		return nil
	}
	copied := *p
	copied.Programme = nil
	return &copied
}

func (s *InMemoryProgrammeStore) Create(ctx context.Context, p *programme.Programme) error {
	if p == nil {
		return ierr.NewError("programme cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, p.ID, copyProgramme(p))
}

func (s *InMemoryProgrammeStore) Get(ctx context.Context, id string) (*programme.Programme, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.DeletedAt != nil {
		return nil, ierr.NewErrorf("programme not found: %s", id).
			Mark(ierr.ErrNotFound)
	}
	return copyProgramme(p), nil
}

func (s *InMemoryProgrammeStore) GetWithPrices(ctx context.Context, id string) (*programme.Programme, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	prices := s.prices.All(func(price *programme.Price) bool {
		return price.ProgrammeID == id
	})
	p.Prices = make([]*programme.Price, 0, len(prices))
	for _, price := range prices {
		p.Prices = append(p.Prices, copyProgrammePrice(price))
	}
	return p, nil
}

func (s *InMemoryProgrammeStore) List(ctx context.Context, limit, offset int) ([]*programme.Programme, error) {
	programmes := s.InMemoryStore.All(func(p *programme.Programme) bool {
		return p.DeletedAt == nil
	})
	programmes = paginate(programmes, limit, offset)
	out := make([]*programme.Programme, 0, len(programmes))
	for _, p := range programmes {
		out = append(out, copyProgramme(p))
	}
	return out, nil
}

func (s *InMemoryProgrammeStore) Count(ctx context.Context) (int64, error) {
	programmes := s.InMemoryStore.All(func(p *programme.Programme) bool {
		return p.DeletedAt == nil
	})
	return int64(len(programmes)), nil
}

func (s *InMemoryProgrammeStore) Update(ctx context.Context, p *programme.Programme) error {
	if p == nil {
		return ierr.NewError("programme cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, p.ID, copyProgramme(p))
}

func (s *InMemoryProgrammeStore) SoftDelete(ctx context.Context, id string) error {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}
	copied := copyProgramme(p)
	now := time.Now().UTC()
	copied.DeletedAt = &now
	return s.InMemoryStore.Update(ctx, id, copied)
}

func (s *InMemoryProgrammeStore) Reorder(ctx context.Context, positions map[string]int) error {
	for id, position := range positions {
		p, err := s.InMemoryStore.Get(ctx, id)
		if err != nil {
			return err
		}
		copied := copyProgramme(p)
		copied.DisplayOrder = position
		if err := s.InMemoryStore.Update(ctx, id, copied); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemoryProgrammeStore) UpsertPrice(ctx context.Context, price *programme.Price) error {
	if price == nil {
		return ierr.NewError("price cannot be nil").
			Mark(ierr.ErrValidation)
	}
	existing := s.prices.All(func(p *programme.Price) bool {
		return p.ProgrammeID == price.ProgrammeID && p.Currency == price.Currency
	})
	if len(existing) > 0 {
		updated := copyProgrammePrice(existing[0])
		updated.Amount = price.Amount
		price.ID = updated.ID
		return s.prices.Update(ctx, updated.ID, updated)
	}
	return s.prices.Create(ctx, price.ID, copyProgrammePrice(price))
}

func (s *InMemoryProgrammeStore) CreatePurchase(ctx context.Context, purchase *programme.Purchase) error {
	if purchase == nil {
		return ierr.NewError("purchase cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.purchases.Create(ctx, purchase.ID, copyPurchase(purchase))
}

func (s *InMemoryProgrammeStore) GetPurchase(ctx context.Context, id string) (*programme.Purchase, error) {
	p, err := s.purchases.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyPurchase(p), nil
}

func (s *InMemoryProgrammeStore) ExistsPurchaseByNumber(ctx context.Context, number string) (bool, error) {
	matches := s.purchases.All(func(p *programme.Purchase) bool {
		return p.PurchaseNumber == number
	})
	return len(matches) > 0, nil
}

func (s *InMemoryProgrammeStore) ListPurchases(ctx context.Context, userID string, limit, offset int) ([]*programme.Purchase, error) {
	purchases := s.purchases.All(func(p *programme.Purchase) bool {
		return userID == "" || p.UserID == userID
	})
	purchases = paginate(purchases, limit, offset)
	out := make([]*programme.Purchase, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, copyPurchase(p))
	}
	return out, nil
}

func (s *InMemoryProgrammeStore) CountPurchases(ctx context.Context) (int64, error) {
	return int64(len(s.purchases.All(nil))), nil
}

func (s *InMemoryProgrammeStore) CountPurchasesSince(ctx context.Context, since time.Time) (int64, error) {
	matches := s.purchases.All(func(p *programme.Purchase) bool {
		return !p.CreatedAt.Before(since)
	})
	return int64(len(matches)), nil
}

func (s *InMemoryProgrammeStore) CountPurchasesBetween(ctx context.Context, from, to time.Time) (int64, error) {
	matches := s.purchases.All(func(p *programme.Purchase) bool {
		return !p.CreatedAt.Before(from) && p.CreatedAt.Before(to)
	})
	return int64(len(matches)), nil
}

func (s *InMemoryProgrammeStore) TopProgrammes(ctx context.Context, limit int) ([]programme.ProgrammeCount, error) {
	counts := make(map[string]int64)
	for _, p := range s.purchases.All(nil) {
		counts[p.ProgrammeID]++
	}
	out := make([]programme.ProgrammeCount, 0, len(counts))
	for programmeID, count := range counts {
		row := programme.ProgrammeCount{ProgrammeID: programmeID, Count: count}
		if p, err := s.InMemoryStore.Get(ctx, programmeID); err == nil {
			row.ProgrammeName = p.Name
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ProgrammeID < out[j].ProgrammeID
	})
	return paginate(out, limit, 0), nil
}
