package dto

import (
	"time"

	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/domain/subscription"
	"github.com/gymmawy/gymmawy/internal/types"
	"github.com/gymmawy/gymmawy/internal/validator"
)

// CreateSubscriptionRequest starts a plan purchase. Price and discounts are
// computed server-side; the client only names the plan, currency and how it
// intends to pay.
type CreateSubscriptionRequest struct {
	PlanID          string              `json:"plan_id" validate:"required"`
	Currency        types.Currency      `json:"currency"`
	PaymentMethod   types.PaymentMethod `json:"payment_method" validate:"required"`
	IsMedical       bool                `json:"is_medical"`
	CouponCode      string              `json:"coupon_code,omitempty"`
	TransactionID   string              `json:"transaction_id,omitempty"`
	PaymentProofURL string              `json:"payment_proof_url,omitempty"`
}

func (r *CreateSubscriptionRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.PaymentMethod.Validate(); err != nil {
		return err
	}
	if r.Currency != "" {
		if err := r.Currency.Validate(); err != nil {
			return err
		}
	}

	// Payment evidence must match the method before anything is persisted.
	if r.PaymentMethod.RequiresTransactionID() && r.TransactionID == "" {
		return ierr.NewError("transaction id is required for this payment method").
			WithHint("Gateway payments must include the gateway transaction id").
			WithReportableDetails(map[string]any{"payment_method": r.PaymentMethod}).
			Mark(ierr.ErrValidation)
	}
	if r.PaymentMethod.RequiresPaymentProof() && r.PaymentProofURL == "" {
		return ierr.NewError("payment proof is required for this payment method").
			WithHint("Manual payments must include an uploaded payment proof").
			WithReportableDetails(map[string]any{"payment_method": r.PaymentMethod}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

type RejectSubscriptionRequest struct {
	Reason string `json:"reason,omitempty"`
}

type SubscriptionResponse struct {
	*subscription.Subscription

	// EffectiveStatus reflects expiry the sweep has not persisted yet.
	EffectiveStatus types.SubscriptionStatus `json:"effective_status"`
}

func NewSubscriptionResponse(sub *subscription.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		Subscription:    sub,
		EffectiveStatus: sub.ComputedStatus(time.Now().UTC()),
	}
}

type ListSubscriptionsResponse = types.ListResponse[*SubscriptionResponse]

// SweepResponse reports how many stale ACTIVE rows a sweep flipped.
type SweepResponse struct {
	Expired int64 `json:"expired"`
}
