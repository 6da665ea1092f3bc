package coupon

import (
	"context"

	"github.com/gymmawy/gymmawy/internal/types"
)

// Repository defines the interface for coupon persistence.
type Repository interface {
	Create(ctx context.Context, coupon *Coupon) error
	Get(ctx context.Context, id string) (*Coupon, error)
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	List(ctx context.Context, filter *types.CouponFilter) ([]*Coupon, error)
	Count(ctx context.Context, filter *types.CouponFilter) (int, error)
	Update(ctx context.Context, coupon *Coupon) error
	Delete(ctx context.Context, id string) error

	// Redeem increments the coupon's total-redemption counter and appends the
	// per-user redemption row as one transaction.
	Redeem(ctx context.Context, couponID, userID string) error
	// CountUserRedemptions returns how many times the user has redeemed the
	// coupon.
	CountUserRedemptions(ctx context.Context, couponID, userID string) (int, error)
}
