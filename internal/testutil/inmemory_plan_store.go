package testutil

import (
	"context"
	"time"

	"github.com/gymmawy/gymmawy/internal/domain/plan"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/types"
)

// InMemoryPlanStore implements plan.Repository for tests. Plans and their
// price rows live in separate stores, joined on read like the SQL
// implementation does.
type InMemoryPlanStore struct {
	*InMemoryStore[*plan.Plan]
	prices *InMemoryStore[*plan.PlanPrice]
}

func NewInMemoryPlanStore() *InMemoryPlanStore {
	return &InMemoryPlanStore{
		InMemoryStore: NewInMemoryStore[*plan.Plan](),
		prices:        NewInMemoryStore[*plan.PlanPrice](),
	}
}

func copyPlan(p *plan.Plan) *plan.Plan {
	if p == nil {
		return nil
	}
	copied := *p
	copied.Prices = nil
	return &copied
}

func copyPlanPrice(p *plan.PlanPrice) *plan.PlanPrice {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}

func (s *InMemoryPlanStore) Create(ctx context.Context, p *plan.Plan) error {
	if p == nil {
		return ierr.NewError("plan cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, p.ID, copyPlan(p))
}

func (s *InMemoryPlanStore) Get(ctx context.Context, id string) (*plan.Plan, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.DeletedAt != nil {
		return nil, ierr.NewErrorf("plan not found: %s", id).
			Mark(ierr.ErrNotFound)
	}
	return copyPlan(p), nil
}

func (s *InMemoryPlanStore) GetWithPrices(ctx context.Context, id string) (*plan.Plan, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	prices, _ := s.ListPrices(ctx, id)
	p.Prices = prices
	return p, nil
}

func (s *InMemoryPlanStore) List(ctx context.Context, filter *types.PlanFilter) ([]*plan.Plan, error) {
	plans := s.InMemoryStore.All(func(p *plan.Plan) bool {
		if p.DeletedAt != nil {
			return false
		}
		if filter != nil && filter.IsActive != nil && p.IsActive != *filter.IsActive {
			return false
		}
		return true
	})
	if filter != nil && filter.QueryFilter != nil && !filter.IsUnlimited() {
		plans = paginate(plans, filter.GetLimit(), filter.GetOffset())
	}
	out := make([]*plan.Plan, 0, len(plans))
	for _, p := range plans {
		out = append(out, copyPlan(p))
	}
	return out, nil
}

func (s *InMemoryPlanStore) Count(ctx context.Context, filter *types.PlanFilter) (int, error) {
	plans := s.InMemoryStore.All(func(p *plan.Plan) bool {
		if p.DeletedAt != nil {
			return false
		}
		if filter != nil && filter.IsActive != nil && p.IsActive != *filter.IsActive {
			return false
		}
		return true
	})
	return len(plans), nil
}

func (s *InMemoryPlanStore) Update(ctx context.Context, p *plan.Plan) error {
	if p == nil {
		return ierr.NewError("plan cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, p.ID, copyPlan(p))
}

func (s *InMemoryPlanStore) SoftDelete(ctx context.Context, id string) error {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}
	copied := copyPlan(p)
	now := time.Now().UTC()
	copied.DeletedAt = &now
	return s.InMemoryStore.Update(ctx, id, copied)
}

func (s *InMemoryPlanStore) Reorder(ctx context.Context, positions map[string]int) error {
	for id, position := range positions {
		p, err := s.InMemoryStore.Get(ctx, id)
		if err != nil {
			return err
		}
		copied := copyPlan(p)
		copied.DisplayOrder = position
		if err := s.InMemoryStore.Update(ctx, id, copied); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemoryPlanStore) UpsertPrice(ctx context.Context, price *plan.PlanPrice) error {
	if price == nil {
		return ierr.NewError("price cannot be nil").
			Mark(ierr.ErrValidation)
	}
	existing := s.prices.All(func(p *plan.PlanPrice) bool {
		return p.PlanID == price.PlanID && p.Currency == price.Currency && p.Type == price.Type
	})
	if len(existing) > 0 {
		updated := copyPlanPrice(existing[0])
		updated.Amount = price.Amount
		price.ID = updated.ID
		return s.prices.Update(ctx, updated.ID, updated)
	}
	return s.prices.Create(ctx, price.ID, copyPlanPrice(price))
}

func (s *InMemoryPlanStore) GetPrice(ctx context.Context, planID string, currency types.Currency, priceType types.PlanPriceType) (*plan.PlanPrice, error) {
	matches := s.prices.All(func(p *plan.PlanPrice) bool {
		return p.PlanID == planID && p.Currency == currency && p.Type == priceType
	})
	if len(matches) == 0 {
		return nil, ierr.NewErrorf("price not found for plan %s (%s, %s)", planID, currency, priceType).
			Mark(ierr.ErrNotFound)
	}
	return copyPlanPrice(matches[0]), nil
}

func (s *InMemoryPlanStore) ListPrices(ctx context.Context, planID string) ([]*plan.PlanPrice, error) {
	matches := s.prices.All(func(p *plan.PlanPrice) bool {
		return p.PlanID == planID
	})
	out := make([]*plan.PlanPrice, 0, len(matches))
	for _, p := range matches {
		out = append(out, copyPlanPrice(p))
	}
	return out, nil
}

func (s *InMemoryPlanStore) DeletePrice(ctx context.Context, id string) error {
	return s.prices.Delete(ctx, id)
}
