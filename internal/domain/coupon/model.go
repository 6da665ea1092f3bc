package coupon

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gymmawy/gymmawy/internal/types"
)

// Coupon is a redeemable discount code. TotalRedemptions is the running
// counter incremented by each redemption; it never exceeds MaxRedemptions
// when a global cap is configured (zero means uncapped).
type Coupon struct {
	ID                    string                   `json:"id" gorm:"column:id;primaryKey"`
	Code                  string                   `json:"code" gorm:"column:code;uniqueIndex"`
	DiscountType          types.CouponDiscountType `json:"discount_type" gorm:"column:discount_type"`
	DiscountValue         decimal.Decimal          `json:"discount_value" gorm:"column:discount_value;type:numeric(12,2)"`
	IsActive              bool                     `json:"is_active" gorm:"column:is_active;default:true"`
	ExpirationDate        *time.Time               `json:"expiration_date,omitempty" gorm:"column:expiration_date"`
	MaxRedemptionsPerUser int                      `json:"max_redemptions_per_user" gorm:"column:max_redemptions_per_user"`
	MaxRedemptions        int                      `json:"max_redemptions" gorm:"column:max_redemptions"`
	TotalRedemptions      int                      `json:"total_redemptions" gorm:"column:total_redemptions"`

	types.BaseModel
}

func (Coupon) TableName() string {
	return "coupons"
}

// IsExpired reports whether the coupon's expiration timestamp has passed.
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpirationDate != nil && now.After(*c.ExpirationDate)
}

// IsExhausted reports whether the global redemption cap has been reached.
func (c *Coupon) IsExhausted() bool {
	return c.MaxRedemptions > 0 && c.TotalRedemptions >= c.MaxRedemptions
}

// DiscountResult is the outcome of applying a coupon to a price.
type DiscountResult struct {
	Discount   decimal.Decimal `json:"discount"`
	FinalPrice decimal.Decimal `json:"final_price"`
}

// ApplyDiscount computes the coupon discount on top of an already
// plan-discounted price. Percentage coupons take a share of the price; fixed
// coupons are clamped so the final price never goes below zero.
func (c *Coupon) ApplyDiscount(price decimal.Decimal) DiscountResult {
	var discount decimal.Decimal
	switch c.DiscountType {
	case types.CouponDiscountTypeFixed:
		discount = decimal.Min(c.DiscountValue, price)
	default:
		discount = price.Mul(c.DiscountValue).Div(decimal.NewFromInt(100))
	}

	discount = discount.Round(types.GetCurrencyPrecision(types.CurrencyEGP))
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	return DiscountResult{
		Discount:   discount,
		FinalPrice: price.Sub(discount),
	}
}

// Redemption is one consumed use of a coupon by a user. Rows are append-only.
type Redemption struct {
	ID         string    `json:"id" gorm:"column:id;primaryKey"`
	CouponID   string    `json:"coupon_id" gorm:"column:coupon_id;index"`
	UserID     string    `json:"user_id" gorm:"column:user_id;index"`
	RedeemedAt time.Time `json:"redeemed_at" gorm:"column:redeemed_at"`
}

func (Redemption) TableName() string {
	return "coupon_redemptions"
}
