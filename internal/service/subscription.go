package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gymmawy/gymmawy/internal/api/dto"
	"github.com/gymmawy/gymmawy/internal/domain/subscription"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/idgen"
	"github.com/gymmawy/gymmawy/internal/types"
)

// SubscriptionService drives the subscription lifecycle: creation as PENDING,
// admin approve/reject, member cancel, and the expiry sweep.
type SubscriptionService interface {
	CreateSubscription(ctx context.Context, userID string, req dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error)
	GetSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error)
	ListSubscriptions(ctx context.Context, filter *types.SubscriptionFilter) (*dto.ListSubscriptionsResponse, error)
	ListUserSubscriptions(ctx context.Context, userID string, filter *types.SubscriptionFilter) (*dto.ListSubscriptionsResponse, error)
	GetPendingSubscriptions(ctx context.Context) (*dto.ListSubscriptionsResponse, error)

	ApproveSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error)
	RejectSubscription(ctx context.Context, id string, req dto.RejectSubscriptionRequest) (*dto.SubscriptionResponse, error)
	CancelSubscription(ctx context.Context, userID, id string) (*dto.SubscriptionResponse, error)
	DeleteSubscription(ctx context.Context, id string) error

	// SweepExpired flips every ACTIVE subscription past its end date to
	// EXPIRED and returns how many rows changed.
	SweepExpired(ctx context.Context) (int64, error)
}

type subscriptionService struct {
	ServiceParams

	priceService  PriceService
	couponService CouponService
	loyalty       LoyaltyService
	payments      PaymentService
}

func NewSubscriptionService(params ServiceParams) SubscriptionService {
	return &subscriptionService{
		ServiceParams: params,
		priceService:  NewPriceService(params),
		couponService: NewCouponService(params),
		loyalty:       NewLoyaltyService(params),
		payments:      NewPaymentService(params),
	}
}

func (s *subscriptionService) CreateSubscription(ctx context.Context, userID string, req dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	// Evidence and enum validation happens before anything touches storage.
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resolved, err := s.priceService.ResolvePlanPrice(ctx, req.PlanID, req.Currency, req.IsMedical)
	if err != nil {
		return nil, err
	}

	price := resolved.FinalPrice
	var couponID *string
	couponDiscount := decimal.Zero
	if req.CouponCode != "" {
		c, result, err := s.couponService.ApplyCoupon(ctx, userID, req.CouponCode, price)
		if err != nil {
			return nil, err
		}
		couponID = &c.ID
		couponDiscount = result.Discount
		price = result.FinalPrice
	}

	number, err := idgen.GenerateUnique(ctx, idgen.SubscriptionNumber, s.SubscriptionRepo.ExistsByNumber)
	if err != nil {
		return nil, err
	}

	sub := &subscription.Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.IDPrefixSubscription),
		SubscriptionNumber: number,
		UserID:             userID,
		PlanID:             req.PlanID,
		SubscriptionStatus: types.SubscriptionStatusPending,
		IsMedical:          req.IsMedical,
		Price:              price,
		Currency:           resolved.Currency,
		PaymentMethod:      req.PaymentMethod,
		DiscountPercentage: resolved.PlanDiscountPercent,
		CouponID:           couponID,
		CouponDiscount:     couponDiscount,
		BaseModel:          types.GetDefaultBaseModel(),
	}

	if err := s.SubscriptionRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	if _, err := s.payments.CreatePayment(ctx, CreatePaymentInput{
		UserID:          userID,
		Amount:          price,
		Currency:        resolved.Currency,
		Method:          req.PaymentMethod,
		TransactionID:   req.TransactionID,
		PaymentProofURL: req.PaymentProofURL,
		PaymentableType: types.PaymentableTypeSubscription,
		PaymentableID:   sub.ID,
	}); err != nil {
		return nil, err
	}

	// The subscription is committed; redemption and notification failures are
	// logged, never surfaced.
	if couponID != nil {
		if err := s.couponService.RedeemCoupon(ctx, *couponID, userID); err != nil {
			s.Logger.Errorw("coupon redemption failed after subscription creation",
				"subscription_id", sub.ID,
				"coupon_id", *couponID,
				"error", err)
		}
	}
	s.Notifier.SubscriptionCreated(ctx, sub)

	return dto.NewSubscriptionResponse(sub), nil
}

func (s *subscriptionService) GetSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error) {
	sub, err := s.SubscriptionRepo.GetWithPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewSubscriptionResponse(sub), nil
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context, filter *types.SubscriptionFilter) (*dto.ListSubscriptionsResponse, error) {
	// Opportunistic sweep so stale ACTIVE rows are never served.
	s.sweepQuietly(ctx)
	return s.list(ctx, filter)
}

func (s *subscriptionService) ListUserSubscriptions(ctx context.Context, userID string, filter *types.SubscriptionFilter) (*dto.ListSubscriptionsResponse, error) {
	s.sweepQuietly(ctx)
	if filter == nil {
		filter = types.NewSubscriptionFilter()
	}
	filter.UserID = userID
	return s.list(ctx, filter)
}

func (s *subscriptionService) GetPendingSubscriptions(ctx context.Context) (*dto.ListSubscriptionsResponse, error) {
	s.sweepQuietly(ctx)
	filter := types.NewNoLimitSubscriptionFilter()
	filter.SubscriptionStatus = types.SubscriptionStatusPending
	return s.list(ctx, filter)
}

func (s *subscriptionService) list(ctx context.Context, filter *types.SubscriptionFilter) (*dto.ListSubscriptionsResponse, error) {
	if filter == nil {
		filter = types.NewSubscriptionFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	subs, err := s.SubscriptionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.SubscriptionRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.SubscriptionResponse, len(subs))
	for i, sub := range subs {
		responses[i] = dto.NewSubscriptionResponse(sub)
	}

	listResponse := types.NewListResponse(responses, total, filter.GetLimit(), filter.GetOffset())
	return &listResponse, nil
}

func (s *subscriptionService) ApproveSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error) {
	sub, err := s.SubscriptionRepo.GetWithPlan(ctx, id)
	if err != nil {
		return nil, err
	}

	if sub.SubscriptionStatus != types.SubscriptionStatusPending {
		return nil, ierr.NewError("subscription is not pending").
			WithHint("Only pending subscriptions can be approved").
			WithReportableDetails(map[string]any{
				"subscription_id": id,
				"status":          sub.SubscriptionStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	now := time.Now().UTC()
	end := now.AddDate(0, 0, sub.Plan.TotalDays())
	sub.SubscriptionStatus = types.SubscriptionStatusActive
	sub.StartDate = &now
	sub.EndDate = &end

	if err := s.SubscriptionRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	if award := sub.Plan.LoyaltyAward(sub.IsMedical); award > 0 {
		if err := s.loyalty.Credit(ctx, sub.UserID, award, types.LoyaltySourceSubscription, sub.ID); err != nil {
			s.Logger.Errorw("loyalty credit failed after subscription approval",
				"subscription_id", sub.ID,
				"points", award,
				"error", err)
		}
	}
	s.Notifier.SubscriptionApproved(ctx, sub)

	return dto.NewSubscriptionResponse(sub), nil
}

func (s *subscriptionService) RejectSubscription(ctx context.Context, id string, req dto.RejectSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	sub, err := s.SubscriptionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if sub.SubscriptionStatus != types.SubscriptionStatusPending {
		return nil, ierr.NewError("subscription is not pending").
			WithHint("Only pending subscriptions can be rejected").
			WithReportableDetails(map[string]any{
				"subscription_id": id,
				"status":          sub.SubscriptionStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	now := time.Now().UTC()
	sub.SubscriptionStatus = types.SubscriptionStatusRejected
	sub.RejectedAt = &now
	if req.Reason != "" {
		sub.RejectionReason = &req.Reason
	}

	if err := s.SubscriptionRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	s.Notifier.SubscriptionRejected(ctx, sub)
	return dto.NewSubscriptionResponse(sub), nil
}

func (s *subscriptionService) CancelSubscription(ctx context.Context, userID, id string) (*dto.SubscriptionResponse, error) {
	sub, err := s.SubscriptionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Cancelling something that is not the caller's ACTIVE subscription is a
	// no-op that returns the current record unchanged.
	if sub.UserID != userID || sub.SubscriptionStatus != types.SubscriptionStatusActive {
		return dto.NewSubscriptionResponse(sub), nil
	}

	now := time.Now().UTC()
	sub.SubscriptionStatus = types.SubscriptionStatusCancelled
	sub.CancelledAt = &now

	if err := s.SubscriptionRepo.Update(ctx, sub); err != nil {
		return nil, err
	}
	return dto.NewSubscriptionResponse(sub), nil
}

func (s *subscriptionService) DeleteSubscription(ctx context.Context, id string) error {
	return s.SubscriptionRepo.Delete(ctx, id)
}

func (s *subscriptionService) SweepExpired(ctx context.Context) (int64, error) {
	count, err := s.SubscriptionRepo.SweepExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.Logger.Infow("expired subscriptions swept", "count", count)
	}
	return count, nil
}

func (s *subscriptionService) sweepQuietly(ctx context.Context) {
	if _, err := s.SweepExpired(ctx); err != nil {
		s.Logger.Errorw("opportunistic expiry sweep failed", "error", err)
	}
}
