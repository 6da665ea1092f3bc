package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gymmawy/gymmawy/internal/domain/coupon"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/types"
	"github.com/gymmawy/gymmawy/internal/validator"
)

type CreateCouponRequest struct {
	Code                  string                   `json:"code" validate:"required"`
	DiscountType          types.CouponDiscountType `json:"discount_type" validate:"required"`
	DiscountValue         decimal.Decimal          `json:"discount_value"`
	IsActive              *bool                    `json:"is_active,omitempty"`
	ExpirationDate        *time.Time               `json:"expiration_date,omitempty"`
	MaxRedemptionsPerUser int                      `json:"max_redemptions_per_user" validate:"gte=0"`
	MaxRedemptions        int                      `json:"max_redemptions" validate:"gte=0"`
}

func (r *CreateCouponRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.DiscountType.Validate(); err != nil {
		return err
	}
	if !r.DiscountValue.IsPositive() {
		return ierr.NewError("discount value must be positive").
			WithHint("Provide a discount value greater than zero").
			Mark(ierr.ErrValidation)
	}
	if r.DiscountType == types.CouponDiscountTypePercentage &&
		r.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return ierr.NewError("percentage discount cannot exceed 100").
			WithHint("Percentage coupons must be between 0 and 100").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateCouponRequest) ToCoupon() *coupon.Coupon {
	c := &coupon.Coupon{
		ID:                    types.GenerateUUIDWithPrefix(types.IDPrefixCoupon),
		Code:                  strings.ToUpper(strings.TrimSpace(r.Code)),
		DiscountType:          r.DiscountType,
		DiscountValue:         r.DiscountValue,
		IsActive:              true,
		ExpirationDate:        r.ExpirationDate,
		MaxRedemptionsPerUser: r.MaxRedemptionsPerUser,
		MaxRedemptions:        r.MaxRedemptions,
		BaseModel:             types.GetDefaultBaseModel(),
	}
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
	return c
}

type UpdateCouponRequest struct {
	DiscountValue         *decimal.Decimal `json:"discount_value,omitempty"`
	IsActive              *bool            `json:"is_active,omitempty"`
	ExpirationDate        *time.Time       `json:"expiration_date,omitempty"`
	MaxRedemptionsPerUser *int             `json:"max_redemptions_per_user,omitempty" validate:"omitempty,gte=0"`
	MaxRedemptions        *int             `json:"max_redemptions,omitempty" validate:"omitempty,gte=0"`
}

func (r *UpdateCouponRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.DiscountValue != nil && !r.DiscountValue.IsPositive() {
		return ierr.NewError("discount value must be positive").
			WithHint("Provide a discount value greater than zero").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ValidateCouponRequest checks a code against a price without consuming a
// redemption.
type ValidateCouponRequest struct {
	Code  string          `json:"code" validate:"required"`
	Price decimal.Decimal `json:"price"`
}

func (r *ValidateCouponRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Price.IsNegative() {
		return ierr.NewError("price cannot be negative").
			WithHint("Provide a non-negative price").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ValidateCouponResponse reports the discount the code would produce.
type ValidateCouponResponse struct {
	Code         string                   `json:"code"`
	DiscountType types.CouponDiscountType `json:"discount_type"`
	Discount     decimal.Decimal          `json:"discount"`
	FinalPrice   decimal.Decimal          `json:"final_price"`
}

type CouponResponse struct {
	*coupon.Coupon
}

func NewCouponResponse(c *coupon.Coupon) *CouponResponse {
	return &CouponResponse{Coupon: c}
}

type ListCouponsResponse = types.ListResponse[*CouponResponse]
