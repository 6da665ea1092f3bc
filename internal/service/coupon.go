package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gymmawy/gymmawy/internal/api/dto"
	"github.com/gymmawy/gymmawy/internal/domain/coupon"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/types"
)

// CouponService covers coupon CRUD plus the validate/apply/redeem flow used
// by the purchase paths.
type CouponService interface {
	CreateCoupon(ctx context.Context, req dto.CreateCouponRequest) (*dto.CouponResponse, error)
	GetCoupon(ctx context.Context, id string) (*dto.CouponResponse, error)
	UpdateCoupon(ctx context.Context, id string, req dto.UpdateCouponRequest) (*dto.CouponResponse, error)
	DeleteCoupon(ctx context.Context, id string) error
	ListCoupons(ctx context.Context, filter *types.CouponFilter) (*dto.ListCouponsResponse, error)

	// ValidateCoupon checks a code for the user and prices the discount
	// without consuming a redemption.
	ValidateCoupon(ctx context.Context, userID string, req dto.ValidateCouponRequest) (*dto.ValidateCouponResponse, error)

	// ApplyCoupon validates the code and returns both the coupon and its
	// discount on the given price. Used inside purchase flows.
	ApplyCoupon(ctx context.Context, userID, code string, price decimal.Decimal) (*coupon.Coupon, *coupon.DiscountResult, error)

	// RedeemCoupon consumes one redemption for the user. Purchase flows call
	// this after the purchase row is committed; failures are the caller's to
	// log, never to propagate.
	RedeemCoupon(ctx context.Context, couponID, userID string) error
}

type couponService struct {
	ServiceParams
}

func NewCouponService(params ServiceParams) CouponService {
	return &couponService{ServiceParams: params}
}

func (s *couponService) CreateCoupon(ctx context.Context, req dto.CreateCouponRequest) (*dto.CouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.ToCoupon()
	if err := s.CouponRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	return dto.NewCouponResponse(c), nil
}

func (s *couponService) GetCoupon(ctx context.Context, id string) (*dto.CouponResponse, error) {
	c, err := s.CouponRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewCouponResponse(c), nil
}

func (s *couponService) UpdateCoupon(ctx context.Context, id string, req dto.UpdateCouponRequest) (*dto.CouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.CouponRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DiscountValue != nil {
		c.DiscountValue = *req.DiscountValue
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if req.ExpirationDate != nil {
		c.ExpirationDate = req.ExpirationDate
	}
	if req.MaxRedemptionsPerUser != nil {
		c.MaxRedemptionsPerUser = *req.MaxRedemptionsPerUser
	}
	if req.MaxRedemptions != nil {
		c.MaxRedemptions = *req.MaxRedemptions
	}

	if err := s.CouponRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	return dto.NewCouponResponse(c), nil
}

func (s *couponService) DeleteCoupon(ctx context.Context, id string) error {
	return s.CouponRepo.Delete(ctx, id)
}

func (s *couponService) ListCoupons(ctx context.Context, filter *types.CouponFilter) (*dto.ListCouponsResponse, error) {
	if filter == nil {
		filter = types.NewCouponFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	coupons, err := s.CouponRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.CouponRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.CouponResponse, len(coupons))
	for i, c := range coupons {
		responses[i] = dto.NewCouponResponse(c)
	}

	listResponse := types.NewListResponse(responses, total, filter.GetLimit(), filter.GetOffset())
	return &listResponse, nil
}

func (s *couponService) ValidateCoupon(ctx context.Context, userID string, req dto.ValidateCouponRequest) (*dto.ValidateCouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, result, err := s.ApplyCoupon(ctx, userID, req.Code, req.Price)
	if err != nil {
		return nil, err
	}

	return &dto.ValidateCouponResponse{
		Code:         c.Code,
		DiscountType: c.DiscountType,
		Discount:     result.Discount,
		FinalPrice:   result.FinalPrice,
	}, nil
}

func (s *couponService) ApplyCoupon(ctx context.Context, userID, code string, price decimal.Decimal) (*coupon.Coupon, *coupon.DiscountResult, error) {
	c, err := s.CouponRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, nil, err
	}

	if err := s.checkRedeemable(ctx, c, userID); err != nil {
		return nil, nil, err
	}

	result := c.ApplyDiscount(price)
	return c, &result, nil
}

// checkRedeemable applies every eligibility rule in order: active flag,
// expiry, global cap, per-user cap.
func (s *couponService) checkRedeemable(ctx context.Context, c *coupon.Coupon, userID string) error {
	if !c.IsActive {
		return ierr.NewError("coupon is not active").
			WithHint("This coupon is no longer available").
			WithReportableDetails(map[string]any{"code": c.Code}).
			Mark(ierr.ErrValidation)
	}
	if c.IsExpired(time.Now().UTC()) {
		return ierr.NewError("coupon has expired").
			WithHint("This coupon has expired").
			WithReportableDetails(map[string]any{"code": c.Code}).
			Mark(ierr.ErrValidation)
	}
	if c.IsExhausted() {
		return ierr.NewError("coupon redemption limit reached").
			WithHint("This coupon has been fully redeemed").
			WithReportableDetails(map[string]any{"code": c.Code}).
			Mark(ierr.ErrValidation)
	}

	if c.MaxRedemptionsPerUser > 0 && userID != "" {
		used, err := s.CouponRepo.CountUserRedemptions(ctx, c.ID, userID)
		if err != nil {
			return err
		}
		if used >= c.MaxRedemptionsPerUser {
			return ierr.NewError("coupon already redeemed the maximum number of times").
				WithHint("You have already used this coupon").
				WithReportableDetails(map[string]any{"code": c.Code}).
				Mark(ierr.ErrValidation)
		}
	}

	return nil
}

func (s *couponService) RedeemCoupon(ctx context.Context, couponID, userID string) error {
	return s.CouponRepo.Redeem(ctx, couponID, userID)
}
