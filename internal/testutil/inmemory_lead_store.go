package testutil

import (
	"context"
	"sort"

	"github.com/gymmawy/gymmawy/internal/domain/lead"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/types"
)

// InMemoryLeadStore implements lead.Repository for tests.
type InMemoryLeadStore struct {
	*InMemoryStore[*lead.Lead]
}

func NewInMemoryLeadStore() *InMemoryLeadStore {
	return &InMemoryLeadStore{InMemoryStore: NewInMemoryStore[*lead.Lead]()}
}

func copyLead(l *lead.Lead) *lead.Lead {
	if l == nil {
		return nil
	}
	copied := *l
	return &copied
}

func (s *InMemoryLeadStore) Create(ctx context.Context, l *lead.Lead) error {
	if l == nil {
		return ierr.NewError("lead cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, l.ID, copyLead(l))
}

func (s *InMemoryLeadStore) Get(ctx context.Context, id string) (*lead.Lead, error) {
	l, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyLead(l), nil
}

func (s *InMemoryLeadStore) List(ctx context.Context, filter *types.LeadFilter) ([]*lead.Lead, error) {
	leads := s.InMemoryStore.All(func(l *lead.Lead) bool {
		return filter == nil || filter.LeadStatus == "" || l.LeadStatus == filter.LeadStatus
	})
	if filter != nil && filter.QueryFilter != nil && !filter.IsUnlimited() {
		leads = paginate(leads, filter.GetLimit(), filter.GetOffset())
	}
	out := make([]*lead.Lead, 0, len(leads))
	for _, l := range leads {
		out = append(out, copyLead(l))
	}
	return out, nil
}

func (s *InMemoryLeadStore) Count(ctx context.Context, filter *types.LeadFilter) (int, error) {
	leads := s.InMemoryStore.All(func(l *lead.Lead) bool {
		return filter == nil || filter.LeadStatus == "" || l.LeadStatus == filter.LeadStatus
	})
	return len(leads), nil
}

func (s *InMemoryLeadStore) Update(ctx context.Context, l *lead.Lead) error {
	if l == nil {
		return ierr.NewError("lead cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, l.ID, copyLead(l))
}

func (s *InMemoryLeadStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryLeadStore) CountGroupedByStatus(ctx context.Context) ([]lead.StatusCount, error) {
	counts := make(map[types.LeadStatus]int64)
	for _, l := range s.InMemoryStore.All(nil) {
		counts[l.LeadStatus]++
	}
	out := make([]lead.StatusCount, 0, len(counts))
	for status, count := range counts {
		out = append(out, lead.StatusCount{LeadStatus: status, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LeadStatus < out[j].LeadStatus
	})
	return out, nil
}
