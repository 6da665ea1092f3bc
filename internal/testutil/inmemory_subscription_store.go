package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/gymmawy/gymmawy/internal/domain/subscription"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/types"
)

// InMemorySubscriptionStore implements subscription.Repository for tests. It
// takes an optional plan store so GetWithPlan and TopPlans can join plan
// rows the way the SQL implementation does.
type InMemorySubscriptionStore struct {
	*InMemoryStore[*subscription.Subscription]
	plans *InMemoryPlanStore
}

func NewInMemorySubscriptionStore(plans *InMemoryPlanStore) *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		InMemoryStore: NewInMemoryStore[*subscription.Subscription](),
		plans:         plans,
	}
}

func copySubscription(sub *subscription.Subscription) *subscription.Subscription {
	if sub == nil {
		return nil
	}
	copied := *sub
	copied.Plan = nil
	copyTimePtr(&copied.StartDate)
	copyTimePtr(&copied.EndDate)
	copyTimePtr(&copied.CancelledAt)
	copyTimePtr(&copied.RejectedAt)
	return &copied
}

func copyTimePtr(t **time.Time) {
	if *t != nil {
		v := **t
		*t = &v
	}
}

func (s *InMemorySubscriptionStore) Create(ctx context.Context, sub *subscription.Subscription) error {
	if sub == nil {
		return ierr.NewError("subscription cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, sub.ID, copySubscription(sub))
}

func (s *InMemorySubscriptionStore) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	sub, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copySubscription(sub), nil
}

func (s *InMemorySubscriptionStore) GetWithPlan(ctx context.Context, id string) (*subscription.Subscription, error) {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.plans != nil {
		if p, err := s.plans.GetWithPrices(ctx, sub.PlanID); err == nil {
			sub.Plan = p
		}
	}
	return sub, nil
}

func (s *InMemorySubscriptionStore) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	matches := s.InMemoryStore.All(func(sub *subscription.Subscription) bool {
		return sub.SubscriptionNumber == number
	})
	return len(matches) > 0, nil
}

func matchSubscriptionFilter(sub *subscription.Subscription, filter *types.SubscriptionFilter) bool {
	if filter == nil {
		return true
	}
	if filter.UserID != "" && sub.UserID != filter.UserID {
		return false
	}
	if filter.PlanID != "" && sub.PlanID != filter.PlanID {
		return false
	}
	if filter.SubscriptionStatus != "" && sub.SubscriptionStatus != filter.SubscriptionStatus {
		return false
	}
	if filter.CreatedAfter != nil && sub.CreatedAt.Before(*filter.CreatedAfter) {
		return false
	}
	if filter.CreatedBefore != nil && sub.CreatedAt.After(*filter.CreatedBefore) {
		return false
	}
	return true
}

func (s *InMemorySubscriptionStore) List(ctx context.Context, filter *types.SubscriptionFilter) ([]*subscription.Subscription, error) {
	subs := s.InMemoryStore.All(func(sub *subscription.Subscription) bool {
		return matchSubscriptionFilter(sub, filter)
	})
	if filter != nil && filter.QueryFilter != nil && !filter.IsUnlimited() {
		subs = paginate(subs, filter.GetLimit(), filter.GetOffset())
	}
	out := make([]*subscription.Subscription, 0, len(subs))
	for _, sub := range subs {
		out = append(out, copySubscription(sub))
	}
	return out, nil
}

func (s *InMemorySubscriptionStore) Count(ctx context.Context, filter *types.SubscriptionFilter) (int, error) {
	subs := s.InMemoryStore.All(func(sub *subscription.Subscription) bool {
		return matchSubscriptionFilter(sub, filter)
	})
	return len(subs), nil
}

func (s *InMemorySubscriptionStore) Update(ctx context.Context, sub *subscription.Subscription) error {
	if sub == nil {
		return ierr.NewError("subscription cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, sub.ID, copySubscription(sub))
}

func (s *InMemorySubscriptionStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemorySubscriptionStore) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	stale := s.InMemoryStore.All(func(sub *subscription.Subscription) bool {
		return sub.SubscriptionStatus == types.SubscriptionStatusActive &&
			sub.EndDate != nil && sub.EndDate.Before(now)
	})
	for _, sub := range stale {
		updated := copySubscription(sub)
		updated.SubscriptionStatus = types.SubscriptionStatusExpired
		updated.UpdatedAt = now
		if err := s.InMemoryStore.Update(ctx, sub.ID, updated); err != nil {
			return 0, err
		}
	}
	return int64(len(stale)), nil
}

func (s *InMemorySubscriptionStore) CountByStatus(ctx context.Context, status types.SubscriptionStatus) (int64, error) {
	matches := s.InMemoryStore.All(func(sub *subscription.Subscription) bool {
		return sub.SubscriptionStatus == status
	})
	return int64(len(matches)), nil
}

func (s *InMemorySubscriptionStore) CountByStatusCreatedSince(ctx context.Context, status types.SubscriptionStatus, since time.Time) (int64, error) {
	matches := s.InMemoryStore.All(func(sub *subscription.Subscription) bool {
		return sub.SubscriptionStatus == status && !sub.CreatedAt.Before(since)
	})
	return int64(len(matches)), nil
}

func (s *InMemorySubscriptionStore) CountGroupedByStatus(ctx context.Context) ([]subscription.StatusCount, error) {
	counts := make(map[types.SubscriptionStatus]int64)
	for _, sub := range s.InMemoryStore.All(nil) {
		counts[sub.SubscriptionStatus]++
	}
	out := make([]subscription.StatusCount, 0, len(counts))
	for status, count := range counts {
		out = append(out, subscription.StatusCount{SubscriptionStatus: status, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubscriptionStatus < out[j].SubscriptionStatus
	})
	return out, nil
}

func (s *InMemorySubscriptionStore) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	matches := s.InMemoryStore.All(func(sub *subscription.Subscription) bool {
		return !sub.CreatedAt.Before(from) && sub.CreatedAt.Before(to)
	})
	return int64(len(matches)), nil
}

func (s *InMemorySubscriptionStore) TopPlans(ctx context.Context, limit int) ([]subscription.PlanCount, error) {
	counts := make(map[string]int64)
	for _, sub := range s.InMemoryStore.All(nil) {
		counts[sub.PlanID]++
	}
	out := make([]subscription.PlanCount, 0, len(counts))
	for planID, count := range counts {
		row := subscription.PlanCount{PlanID: planID, Count: count}
		if s.plans != nil {
			if p, err := s.plans.Get(ctx, planID); err == nil {
				row.PlanName = p.Name
			}
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].PlanID < out[j].PlanID
	})
	return paginate(out, limit, 0), nil
}
