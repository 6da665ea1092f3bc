package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gymmawy/gymmawy/internal/domain/coupon"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/types"
)

// InMemoryCouponStore implements coupon.Repository for tests.
type InMemoryCouponStore struct {
	*InMemoryStore[*coupon.Coupon]

	mu          sync.Mutex
	redemptions []*coupon.Redemption
}

func NewInMemoryCouponStore() *InMemoryCouponStore {
	return &InMemoryCouponStore{InMemoryStore: NewInMemoryStore[*coupon.Coupon]()}
}

func copyCoupon(c *coupon.Coupon) *coupon.Coupon {
	if c == nil {
		return nil
	}
	copied := *c
	if c.ExpirationDate != nil {
		exp := *c.ExpirationDate
		copied.ExpirationDate = &exp
	}
	return &copied
}

func (s *InMemoryCouponStore) Create(ctx context.Context, c *coupon.Coupon) error {
	if c == nil {
		return ierr.NewError("coupon cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, c.ID, copyCoupon(c))
}

func (s *InMemoryCouponStore) Get(ctx context.Context, id string) (*coupon.Coupon, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyCoupon(c), nil
}

func (s *InMemoryCouponStore) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	matches := s.InMemoryStore.All(func(c *coupon.Coupon) bool {
		return strings.EqualFold(c.Code, code)
	})
	if len(matches) == 0 {
		return nil, ierr.NewErrorf("coupon not found: %s", code).
			Mark(ierr.ErrNotFound)
	}
	return copyCoupon(matches[0]), nil
}

func (s *InMemoryCouponStore) List(ctx context.Context, filter *types.CouponFilter) ([]*coupon.Coupon, error) {
	coupons := s.InMemoryStore.All(func(c *coupon.Coupon) bool {
		if filter == nil {
			return true
		}
		if filter.Code != "" && !strings.EqualFold(c.Code, filter.Code) {
			return false
		}
		if filter.IsActive != nil && c.IsActive != *filter.IsActive {
			return false
		}
		return true
	})
	if filter != nil && filter.QueryFilter != nil && !filter.IsUnlimited() {
		coupons = paginate(coupons, filter.GetLimit(), filter.GetOffset())
	}
	out := make([]*coupon.Coupon, 0, len(coupons))
	for _, c := range coupons {
		out = append(out, copyCoupon(c))
	}
	return out, nil
}

func (s *InMemoryCouponStore) Count(ctx context.Context, filter *types.CouponFilter) (int, error) {
	coupons := s.InMemoryStore.All(func(c *coupon.Coupon) bool {
		if filter == nil {
			return true
		}
		if filter.Code != "" && !strings.EqualFold(c.Code, filter.Code) {
			return false
		}
		if filter.IsActive != nil && c.IsActive != *filter.IsActive {
			return false
		}
		return true
	})
	return len(coupons), nil
}

func (s *InMemoryCouponStore) Update(ctx context.Context, c *coupon.Coupon) error {
	if c == nil {
		return ierr.NewError("coupon cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, c.ID, copyCoupon(c))
}

func (s *InMemoryCouponStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryCouponStore) Redeem(ctx context.Context, couponID, userID string) error {
	c, err := s.InMemoryStore.Get(ctx, couponID)
	if err != nil {
		return err
	}
	updated := copyCoupon(c)
	updated.TotalRedemptions++
	if err := s.InMemoryStore.Update(ctx, couponID, updated); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.redemptions = append(s.redemptions, &coupon.Redemption{
		ID:         fmt.Sprintf("redemption-%d", len(s.redemptions)+1),
		CouponID:   couponID,
		UserID:     userID,
		RedeemedAt: time.Now().UTC(),
	})
	return nil
}

func (s *InMemoryCouponStore) CountUserRedemptions(ctx context.Context, couponID, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, r := range s.redemptions {
		if r.CouponID == couponID && r.UserID == userID {
			count++
		}
	}
	return count, nil
}
