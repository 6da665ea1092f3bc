package service

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/gymmawy/gymmawy/internal/api/dto"
	"github.com/gymmawy/gymmawy/internal/domain/coupon"
	"github.com/gymmawy/gymmawy/internal/domain/subscription"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/testutil"
	"github.com/gymmawy/gymmawy/internal/types"
)

type SubscriptionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service SubscriptionService
}

func TestSubscriptionService(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceSuite))
}

func (s *SubscriptionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewSubscriptionService(newTestParams(&s.BaseServiceTestSuite))
}

func (s *SubscriptionServiceSuite) createSubscription(req dto.CreateSubscriptionRequest) *dto.SubscriptionResponse {
	resp, err := s.service.CreateSubscription(s.GetContext(), "user-1", req)
	s.Require().NoError(err)
	return resp
}

func (s *SubscriptionServiceSuite) TestCreateSubscription() {
	seedUser(&s.BaseServiceTestSuite, "user-1")
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")

	resp := s.createSubscription(dto.CreateSubscriptionRequest{
		PlanID:        "plan-gold",
		Currency:      types.CurrencyEGP,
		PaymentMethod: types.PaymentMethodCard,
		TransactionID: "txn-123",
	})

	s.Equal(types.SubscriptionStatusPending, resp.SubscriptionStatus)
	s.Equal("user-1", resp.UserID)
	// 500 EGP list price minus the 10% plan discount.
	s.True(resp.Price.Equal(decimal.NewFromInt(450)))
	s.NotEmpty(resp.SubscriptionNumber)
	s.Nil(resp.StartDate)
	s.Nil(resp.EndDate)

	// A payment row is recorded alongside with the resolved amount.
	payments, err := s.GetStores().Payments.List(s.GetContext(), &types.PaymentFilter{
		QueryFilter:   types.NewNoLimitQueryFilter(),
		PaymentableID: resp.ID,
	})
	s.NoError(err)
	s.Require().Len(payments, 1)
	s.True(payments[0].Amount.Equal(decimal.NewFromInt(450)))
	s.Equal(types.PaymentableTypeSubscription, payments[0].PaymentableType)
	s.Equal(types.PaymentStatusPending, payments[0].PaymentStatus)
}

func (s *SubscriptionServiceSuite) TestCreateSubscriptionWithCoupon() {
	seedUser(&s.BaseServiceTestSuite, "user-1")
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")
	s.NoError(s.GetStores().Coupons.Create(s.GetContext(), &coupon.Coupon{
		ID:            "coupon-1",
		Code:          "SAVE10",
		DiscountType:  types.CouponDiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
		BaseModel:     types.GetDefaultBaseModel(),
	}))

	// Discounts stack: 500 -> 450 after the plan's 10%, -> 405 after the
	// coupon's 10% of the discounted price.
	resp := s.createSubscription(dto.CreateSubscriptionRequest{
		PlanID:        "plan-gold",
		Currency:      types.CurrencyEGP,
		PaymentMethod: types.PaymentMethodCard,
		TransactionID: "txn-123",
		CouponCode:    "SAVE10",
	})

	s.True(resp.Price.Equal(decimal.NewFromInt(405)))
	s.True(resp.CouponDiscount.Equal(decimal.NewFromInt(45)))
	s.Require().NotNil(resp.CouponID)
	s.Equal("coupon-1", *resp.CouponID)

	// The redemption is consumed after the subscription commits.
	stored, err := s.GetStores().Coupons.Get(s.GetContext(), "coupon-1")
	s.NoError(err)
	s.Equal(1, stored.TotalRedemptions)

	payments, err := s.GetStores().Payments.List(s.GetContext(), &types.PaymentFilter{
		QueryFilter:   types.NewNoLimitQueryFilter(),
		PaymentableID: resp.ID,
	})
	s.NoError(err)
	s.Require().Len(payments, 1)
	s.True(payments[0].Amount.Equal(decimal.NewFromInt(405)))
}

// failingRedeemCouponRepo breaks Redeem while leaving every read intact, so
// coupon validation succeeds and only the post-commit redemption fails.
type failingRedeemCouponRepo struct {
	coupon.Repository
}

func (r failingRedeemCouponRepo) Redeem(ctx context.Context, couponID, userID string) error {
	return ierr.NewError("redeem failed").Mark(ierr.ErrDatabase)
}

func (s *SubscriptionServiceSuite) TestCreateSubscriptionSurvivesFailedRedemption() {
	seedUser(&s.BaseServiceTestSuite, "user-1")
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")
	s.NoError(s.GetStores().Coupons.Create(s.GetContext(), &coupon.Coupon{
		ID:            "coupon-1",
		Code:          "SAVE10",
		DiscountType:  types.CouponDiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
		BaseModel:     types.GetDefaultBaseModel(),
	}))

	params := newTestParams(&s.BaseServiceTestSuite)
	params.CouponRepo = failingRedeemCouponRepo{Repository: params.CouponRepo}
	svc := NewSubscriptionService(params)

	// Redemption is best-effort: its failure is logged, never propagated,
	// and the subscription keeps the discounted price.
	resp, err := svc.CreateSubscription(s.GetContext(), "user-1", dto.CreateSubscriptionRequest{
		PlanID:        "plan-gold",
		Currency:      types.CurrencyEGP,
		PaymentMethod: types.PaymentMethodCard,
		TransactionID: "txn-123",
		CouponCode:    "SAVE10",
	})
	s.Require().NoError(err)
	s.Equal(types.SubscriptionStatusPending, resp.SubscriptionStatus)
	s.True(resp.Price.Equal(decimal.NewFromInt(405)))

	stored, err := s.GetStores().Subscriptions.Get(s.GetContext(), resp.ID)
	s.NoError(err)
	s.True(stored.Price.Equal(decimal.NewFromInt(405)))

	// The failed redemption left the coupon untouched.
	c, err := s.GetStores().Coupons.Get(s.GetContext(), "coupon-1")
	s.NoError(err)
	s.Zero(c.TotalRedemptions)
}

func (s *SubscriptionServiceSuite) TestCreateSubscriptionManualMethodNeedsProof() {
	seedUser(&s.BaseServiceTestSuite, "user-1")
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")

	_, err := s.service.CreateSubscription(s.GetContext(), "user-1", dto.CreateSubscriptionRequest{
		PlanID:        "plan-gold",
		Currency:      types.CurrencyEGP,
		PaymentMethod: types.PaymentMethodInstaPay,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	// Nothing was persisted.
	count, err := s.GetStores().Subscriptions.Count(s.GetContext(), nil)
	s.NoError(err)
	s.Zero(count)
}

func (s *SubscriptionServiceSuite) TestCreateSubscriptionGatewayMethodNeedsTransactionID() {
	seedUser(&s.BaseServiceTestSuite, "user-1")
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")

	_, err := s.service.CreateSubscription(s.GetContext(), "user-1", dto.CreateSubscriptionRequest{
		PlanID:        "plan-gold",
		Currency:      types.CurrencyEGP,
		PaymentMethod: types.PaymentMethodCard,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *SubscriptionServiceSuite) TestCreateSubscriptionManualMethodQueuesVerification() {
	seedUser(&s.BaseServiceTestSuite, "user-1")
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")

	resp := s.createSubscription(dto.CreateSubscriptionRequest{
		PlanID:          "plan-gold",
		Currency:        types.CurrencyEGP,
		PaymentMethod:   types.PaymentMethodVodafoneCash,
		PaymentProofURL: "https://cdn.example.com/proof.png",
	})

	payments, err := s.GetStores().Payments.List(s.GetContext(), &types.PaymentFilter{
		QueryFilter:   types.NewNoLimitQueryFilter(),
		PaymentableID: resp.ID,
	})
	s.NoError(err)
	s.Require().Len(payments, 1)
	s.Equal(types.PaymentStatusPendingVerification, payments[0].PaymentStatus)
}

func (s *SubscriptionServiceSuite) TestApproveSubscription() {
	u := seedUser(&s.BaseServiceTestSuite, "user-1")
	p := seedPlan(&s.BaseServiceTestSuite, "plan-gold")

	created := s.createSubscription(dto.CreateSubscriptionRequest{
		PlanID:        p.ID,
		Currency:      types.CurrencyEGP,
		PaymentMethod: types.PaymentMethodCard,
		TransactionID: "txn-123",
	})

	before := time.Now().UTC()
	approved, err := s.service.ApproveSubscription(s.GetContext(), created.ID)
	s.Require().NoError(err)

	s.Equal(types.SubscriptionStatusActive, approved.SubscriptionStatus)
	s.Require().NotNil(approved.StartDate)
	s.Require().NotNil(approved.EndDate)
	// 30 paid days plus 5 gift days.
	s.Equal(35, int(approved.EndDate.Sub(*approved.StartDate).Hours()/24))
	s.False(approved.StartDate.Before(before))

	// Approval awards the plan's loyalty points.
	stored, err := s.GetStores().Users.Get(s.GetContext(), u.ID)
	s.NoError(err)
	s.Equal(100, stored.LoyaltyPoints)
}

func (s *SubscriptionServiceSuite) TestApproveMedicalSubscriptionAwardsMedicalPoints() {
	u := seedUser(&s.BaseServiceTestSuite, "user-1")
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")

	created := s.createSubscription(dto.CreateSubscriptionRequest{
		PlanID:        "plan-gold",
		Currency:      types.CurrencyEGP,
		PaymentMethod: types.PaymentMethodCard,
		TransactionID: "txn-123",
		IsMedical:     true,
	})

	_, err := s.service.ApproveSubscription(s.GetContext(), created.ID)
	s.Require().NoError(err)

	stored, err := s.GetStores().Users.Get(s.GetContext(), u.ID)
	s.NoError(err)
	s.Equal(150, stored.LoyaltyPoints)
}

func (s *SubscriptionServiceSuite) TestApproveTwiceFails() {
	seedUser(&s.BaseServiceTestSuite, "user-1")
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")

	created := s.createSubscription(dto.CreateSubscriptionRequest{
		PlanID:        "plan-gold",
		Currency:      types.CurrencyEGP,
		PaymentMethod: types.PaymentMethodCard,
		TransactionID: "txn-123",
	})

	_, err := s.service.ApproveSubscription(s.GetContext(), created.ID)
	s.Require().NoError(err)

	_, err = s.service.ApproveSubscription(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *SubscriptionServiceSuite) TestRejectSubscription() {
	seedUser(&s.BaseServiceTestSuite, "user-1")
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")

	created := s.createSubscription(dto.CreateSubscriptionRequest{
		PlanID:        "plan-gold",
		Currency:      types.CurrencyEGP,
		PaymentMethod: types.PaymentMethodCard,
		TransactionID: "txn-123",
	})

	rejected, err := s.service.RejectSubscription(s.GetContext(), created.ID, dto.RejectSubscriptionRequest{
		Reason: "payment could not be verified",
	})
	s.Require().NoError(err)
	s.Equal(types.SubscriptionStatusRejected, rejected.SubscriptionStatus)
	s.NotNil(rejected.RejectedAt)
	s.Require().NotNil(rejected.RejectionReason)
	s.Equal("payment could not be verified", *rejected.RejectionReason)
	s.Nil(rejected.StartDate)
	s.Nil(rejected.EndDate)

	// A rejected subscription cannot be approved afterwards.
	_, err = s.service.ApproveSubscription(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *SubscriptionServiceSuite) TestCancelSubscription() {
	seedUser(&s.BaseServiceTestSuite, "user-1")
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")

	created := s.createSubscription(dto.CreateSubscriptionRequest{
		PlanID:        "plan-gold",
		Currency:      types.CurrencyEGP,
		PaymentMethod: types.PaymentMethodCard,
		TransactionID: "txn-123",
	})
	_, err := s.service.ApproveSubscription(s.GetContext(), created.ID)
	s.Require().NoError(err)

	cancelled, err := s.service.CancelSubscription(s.GetContext(), "user-1", created.ID)
	s.Require().NoError(err)
	s.Equal(types.SubscriptionStatusCancelled, cancelled.SubscriptionStatus)
	s.NotNil(cancelled.CancelledAt)
}

func (s *SubscriptionServiceSuite) TestCancelByOtherUserIsNoOp() {
	seedUser(&s.BaseServiceTestSuite, "user-1")
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")

	created := s.createSubscription(dto.CreateSubscriptionRequest{
		PlanID:        "plan-gold",
		Currency:      types.CurrencyEGP,
		PaymentMethod: types.PaymentMethodCard,
		TransactionID: "txn-123",
	})
	_, err := s.service.ApproveSubscription(s.GetContext(), created.ID)
	s.Require().NoError(err)

	resp, err := s.service.CancelSubscription(s.GetContext(), "user-2", created.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusActive, resp.SubscriptionStatus)
	s.Nil(resp.CancelledAt)
}

func (s *SubscriptionServiceSuite) seedActiveExpired(id string, endedAgo time.Duration) {
	now := time.Now().UTC()
	start := now.Add(-endedAgo - 30*24*time.Hour)
	end := now.Add(-endedAgo)
	s.Require().NoError(s.GetStores().Subscriptions.Create(s.GetContext(), &subscription.Subscription{
		ID:                 id,
		SubscriptionNumber: "SUB-" + id,
		UserID:             "user-1",
		PlanID:             "plan-gold",
		SubscriptionStatus: types.SubscriptionStatusActive,
		Currency:           types.CurrencyEGP,
		StartDate:          &start,
		EndDate:            &end,
		BaseModel:          types.GetDefaultBaseModel(),
	}))
}

func (s *SubscriptionServiceSuite) TestSweepExpired() {
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")
	s.seedActiveExpired("sub-stale", time.Hour)

	count, err := s.service.SweepExpired(s.GetContext())
	s.NoError(err)
	s.Equal(int64(1), count)

	stored, err := s.GetStores().Subscriptions.Get(s.GetContext(), "sub-stale")
	s.NoError(err)
	s.Equal(types.SubscriptionStatusExpired, stored.SubscriptionStatus)

	// A second sweep finds nothing left to flip.
	count, err = s.service.SweepExpired(s.GetContext())
	s.NoError(err)
	s.Zero(count)
}

func (s *SubscriptionServiceSuite) TestListSweepsOpportunistically() {
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")
	s.seedActiveExpired("sub-stale", time.Hour)

	resp, err := s.service.ListSubscriptions(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)
	s.Equal(types.SubscriptionStatusExpired, resp.Items[0].SubscriptionStatus)
}

func (s *SubscriptionServiceSuite) TestListRejectsUnknownSortColumn() {
	// The sort column is spliced into the ORDER BY clause, so anything
	// outside the whitelist must be rejected before it reaches a query.
	filter := &types.SubscriptionFilter{
		QueryFilter: &types.QueryFilter{
			Sort: lo.ToPtr("(SELECT password_hash FROM users LIMIT 1)"),
		},
	}

	_, err := s.service.ListSubscriptions(s.GetContext(), filter)
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *SubscriptionServiceSuite) TestGetPendingSubscriptions() {
	seedUser(&s.BaseServiceTestSuite, "user-1")
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")

	first := s.createSubscription(dto.CreateSubscriptionRequest{
		PlanID:        "plan-gold",
		Currency:      types.CurrencyEGP,
		PaymentMethod: types.PaymentMethodCard,
		TransactionID: "txn-1",
	})
	second := s.createSubscription(dto.CreateSubscriptionRequest{
		PlanID:        "plan-gold",
		Currency:      types.CurrencyEGP,
		PaymentMethod: types.PaymentMethodCard,
		TransactionID: "txn-2",
	})
	_, err := s.service.ApproveSubscription(s.GetContext(), first.ID)
	s.Require().NoError(err)

	resp, err := s.service.GetPendingSubscriptions(s.GetContext())
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)
	s.Equal(second.ID, resp.Items[0].ID)
}

func (s *SubscriptionServiceSuite) TestListUserSubscriptionsScopedToUser() {
	seedUser(&s.BaseServiceTestSuite, "user-1")
	seedUser(&s.BaseServiceTestSuite, "user-2")
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")

	mine := s.createSubscription(dto.CreateSubscriptionRequest{
		PlanID:        "plan-gold",
		Currency:      types.CurrencyEGP,
		PaymentMethod: types.PaymentMethodCard,
		TransactionID: "txn-1",
	})
	_, err := s.service.CreateSubscription(s.GetContext(), "user-2", dto.CreateSubscriptionRequest{
		PlanID:        "plan-gold",
		Currency:      types.CurrencyEGP,
		PaymentMethod: types.PaymentMethodCard,
		TransactionID: "txn-2",
	})
	s.Require().NoError(err)

	resp, err := s.service.ListUserSubscriptions(s.GetContext(), "user-1", nil)
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)
	s.Equal(mine.ID, resp.Items[0].ID)
}
