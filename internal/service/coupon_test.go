package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/gymmawy/gymmawy/internal/api/dto"
	"github.com/gymmawy/gymmawy/internal/domain/coupon"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/testutil"
	"github.com/gymmawy/gymmawy/internal/types"
)

type CouponServiceSuite struct {
	testutil.BaseServiceTestSuite
	service CouponService
}

func TestCouponService(t *testing.T) {
	suite.Run(t, new(CouponServiceSuite))
}

func (s *CouponServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewCouponService(newTestParams(&s.BaseServiceTestSuite))
}

func (s *CouponServiceSuite) seedCoupon(c *coupon.Coupon) *coupon.Coupon {
	if c.BaseModel.CreatedAt.IsZero() {
		c.BaseModel = types.GetDefaultBaseModel()
	}
	s.NoError(s.GetStores().Coupons.Create(s.GetContext(), c))
	return c
}

func (s *CouponServiceSuite) TestValidateCouponPercentage() {
	s.seedCoupon(&coupon.Coupon{
		ID:            "coupon-1",
		Code:          "SAVE10",
		DiscountType:  types.CouponDiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
	})

	resp, err := s.service.ValidateCoupon(s.GetContext(), "user-1", dto.ValidateCouponRequest{
		Code:  "SAVE10",
		Price: decimal.NewFromInt(450),
	})
	s.NoError(err)
	s.True(resp.Discount.Equal(decimal.NewFromInt(45)))
	s.True(resp.FinalPrice.Equal(decimal.NewFromInt(405)))
}

func (s *CouponServiceSuite) TestValidateCouponNormalizesCode() {
	s.seedCoupon(&coupon.Coupon{
		ID:            "coupon-1",
		Code:          "SAVE10",
		DiscountType:  types.CouponDiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
	})

	resp, err := s.service.ValidateCoupon(s.GetContext(), "user-1", dto.ValidateCouponRequest{
		Code:  "  save10  ",
		Price: decimal.NewFromInt(100),
	})
	s.NoError(err)
	s.Equal("SAVE10", resp.Code)
}

func (s *CouponServiceSuite) TestValidateCouponFixedClamped() {
	s.seedCoupon(&coupon.Coupon{
		ID:            "coupon-1",
		Code:          "FLAT200",
		DiscountType:  types.CouponDiscountTypeFixed,
		DiscountValue: decimal.NewFromInt(200),
		IsActive:      true,
	})

	// A fixed discount larger than the price never goes below zero.
	resp, err := s.service.ValidateCoupon(s.GetContext(), "user-1", dto.ValidateCouponRequest{
		Code:  "FLAT200",
		Price: decimal.NewFromInt(150),
	})
	s.NoError(err)
	s.True(resp.Discount.Equal(decimal.NewFromInt(150)))
	s.True(resp.FinalPrice.IsZero())
}

func (s *CouponServiceSuite) TestValidateCouponInactive() {
	s.seedCoupon(&coupon.Coupon{
		ID:            "coupon-1",
		Code:          "OLD",
		DiscountType:  types.CouponDiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      false,
	})

	_, err := s.service.ValidateCoupon(s.GetContext(), "user-1", dto.ValidateCouponRequest{
		Code:  "OLD",
		Price: decimal.NewFromInt(100),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CouponServiceSuite) TestValidateCouponExpired() {
	past := time.Now().UTC().Add(-24 * time.Hour)
	s.seedCoupon(&coupon.Coupon{
		ID:             "coupon-1",
		Code:           "EXPIRED",
		DiscountType:   types.CouponDiscountTypePercentage,
		DiscountValue:  decimal.NewFromInt(10),
		IsActive:       true,
		ExpirationDate: &past,
	})

	_, err := s.service.ValidateCoupon(s.GetContext(), "user-1", dto.ValidateCouponRequest{
		Code:  "EXPIRED",
		Price: decimal.NewFromInt(100),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CouponServiceSuite) TestValidateCouponExhausted() {
	s.seedCoupon(&coupon.Coupon{
		ID:               "coupon-1",
		Code:             "CAPPED",
		DiscountType:     types.CouponDiscountTypePercentage,
		DiscountValue:    decimal.NewFromInt(10),
		IsActive:         true,
		MaxRedemptions:   5,
		TotalRedemptions: 5,
	})

	_, err := s.service.ValidateCoupon(s.GetContext(), "user-1", dto.ValidateCouponRequest{
		Code:  "CAPPED",
		Price: decimal.NewFromInt(100),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CouponServiceSuite) TestValidateCouponPerUserCap() {
	c := s.seedCoupon(&coupon.Coupon{
		ID:                    "coupon-1",
		Code:                  "ONCE",
		DiscountType:          types.CouponDiscountTypePercentage,
		DiscountValue:         decimal.NewFromInt(10),
		IsActive:              true,
		MaxRedemptionsPerUser: 1,
	})
	s.NoError(s.GetStores().Coupons.Redeem(s.GetContext(), c.ID, "user-1"))

	_, err := s.service.ValidateCoupon(s.GetContext(), "user-1", dto.ValidateCouponRequest{
		Code:  "ONCE",
		Price: decimal.NewFromInt(100),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	// A different user is unaffected by the first user's redemption.
	_, err = s.service.ValidateCoupon(s.GetContext(), "user-2", dto.ValidateCouponRequest{
		Code:  "ONCE",
		Price: decimal.NewFromInt(100),
	})
	s.NoError(err)
}

func (s *CouponServiceSuite) TestValidateCouponUnknownCode() {
	_, err := s.service.ValidateCoupon(s.GetContext(), "user-1", dto.ValidateCouponRequest{
		Code:  "NOPE",
		Price: decimal.NewFromInt(100),
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CouponServiceSuite) TestValidateDoesNotConsumeRedemption() {
	c := s.seedCoupon(&coupon.Coupon{
		ID:            "coupon-1",
		Code:          "SAVE10",
		DiscountType:  types.CouponDiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
	})

	for i := 0; i < 3; i++ {
		_, err := s.service.ValidateCoupon(s.GetContext(), "user-1", dto.ValidateCouponRequest{
			Code:  "SAVE10",
			Price: decimal.NewFromInt(100),
		})
		s.NoError(err)
	}

	stored, err := s.GetStores().Coupons.Get(s.GetContext(), c.ID)
	s.NoError(err)
	s.Equal(0, stored.TotalRedemptions)
}

func (s *CouponServiceSuite) TestRedeemCoupon() {
	c := s.seedCoupon(&coupon.Coupon{
		ID:            "coupon-1",
		Code:          "SAVE10",
		DiscountType:  types.CouponDiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
	})

	s.NoError(s.service.RedeemCoupon(s.GetContext(), c.ID, "user-1"))

	stored, err := s.GetStores().Coupons.Get(s.GetContext(), c.ID)
	s.NoError(err)
	s.Equal(1, stored.TotalRedemptions)
}
