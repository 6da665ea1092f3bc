package subscription

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gymmawy/gymmawy/internal/domain/plan"
	"github.com/gymmawy/gymmawy/internal/types"
)

// Subscription is one purchase of a plan by a user.
//
// Status and the date pair move together: both dates are null while the
// subscription is PENDING or REJECTED, and both are set from the moment it
// becomes ACTIVE (and stay set through EXPIRED/CANCELLED). Price and the
// discount fields are computed server-side at creation and never recomputed.
type Subscription struct {
	ID                 string                   `json:"id" gorm:"column:id;primaryKey"`
	SubscriptionNumber string                   `json:"subscription_number" gorm:"column:subscription_number;uniqueIndex"`
	UserID             string                   `json:"user_id" gorm:"column:user_id;index"`
	PlanID             string                   `json:"plan_id" gorm:"column:plan_id;index"`
	SubscriptionStatus types.SubscriptionStatus `json:"subscription_status" gorm:"column:subscription_status;index"`
	IsMedical          bool                     `json:"is_medical" gorm:"column:is_medical"`
	Price              decimal.Decimal          `json:"price" gorm:"column:price;type:numeric(12,2)"`
	Currency           types.Currency           `json:"currency" gorm:"column:currency"`
	PaymentMethod      types.PaymentMethod      `json:"payment_method,omitempty" gorm:"column:payment_method"`
	DiscountPercentage decimal.Decimal          `json:"discount_percentage" gorm:"column:discount_percentage;type:numeric(5,2)"`
	CouponID           *string                  `json:"coupon_id,omitempty" gorm:"column:coupon_id"`
	CouponDiscount     decimal.Decimal          `json:"coupon_discount" gorm:"column:coupon_discount;type:numeric(12,2)"`
	StartDate          *time.Time               `json:"start_date,omitempty" gorm:"column:start_date"`
	EndDate            *time.Time               `json:"end_date,omitempty" gorm:"column:end_date;index"`
	CancelledAt        *time.Time               `json:"cancelled_at,omitempty" gorm:"column:cancelled_at"`
	RejectedAt         *time.Time               `json:"rejected_at,omitempty" gorm:"column:rejected_at"`
	RejectionReason    *string                  `json:"rejection_reason,omitempty" gorm:"column:rejection_reason"`

	Plan *plan.Plan `json:"plan,omitempty" gorm:"foreignKey:PlanID"`

	types.BaseModel
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// IsExpired reports whether an ACTIVE subscription has passed its end date
// but has not been swept yet.
func (s *Subscription) IsExpired(now time.Time) bool {
	return s.SubscriptionStatus == types.SubscriptionStatusActive &&
		s.EndDate != nil && s.EndDate.Before(now)
}

// ComputedStatus is the effective status at read time: EXPIRED for stale
// ACTIVE rows the sweep has not reached, the stored status otherwise.
func (s *Subscription) ComputedStatus(now time.Time) types.SubscriptionStatus {
	if s.IsExpired(now) {
		return types.SubscriptionStatusExpired
	}
	return s.SubscriptionStatus
}

// PlanCount is an aggregation row: subscriptions per plan.
type PlanCount struct {
	PlanID   string          `json:"plan_id"`
	PlanName types.Bilingual `json:"plan_name"`
	Count    int64           `json:"count"`
}

// StatusCount is an aggregation row: subscriptions per status.
type StatusCount struct {
	SubscriptionStatus types.SubscriptionStatus `json:"subscription_status"`
	Count              int64                    `json:"count"`
}
