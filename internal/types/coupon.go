package types

import (
	ierr "github.com/gymmawy/gymmawy/internal/errors"
)

// CouponDiscountType selects how a coupon's value is applied.
type CouponDiscountType string

const (
	CouponDiscountTypePercentage CouponDiscountType = "PERCENTAGE"
	CouponDiscountTypeFixed      CouponDiscountType = "FIXED"
)

func (t CouponDiscountType) String() string {
	return string(t)
}

func (t CouponDiscountType) Validate() error {
	switch t {
	case CouponDiscountTypePercentage, CouponDiscountTypeFixed:
		return nil
	default:
		return ierr.NewErrorf("invalid coupon discount type: %s", t).
			WithHint("Discount type must be PERCENTAGE or FIXED").
			Mark(ierr.ErrValidation)
	}
}

// CouponFilter filters coupon list queries.
type CouponFilter struct {
	*QueryFilter

	Code     string `json:"code,omitempty" form:"code"`
	IsActive *bool  `json:"is_active,omitempty" form:"is_active"`
}

func NewCouponFilter() *CouponFilter {
	return &CouponFilter{QueryFilter: NewDefaultQueryFilter()}
}

func (f *CouponFilter) Validate() error {
	if f.QueryFilter != nil {
		return f.QueryFilter.Validate()
	}
	return nil
}
