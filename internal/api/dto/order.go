package dto

import (
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/domain/order"
	"github.com/gymmawy/gymmawy/internal/types"
	"github.com/gymmawy/gymmawy/internal/validator"
)

type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest starts a product purchase. Line prices come from the
// product catalogue, never from the client.
type CreateOrderRequest struct {
	Items           []OrderItemRequest  `json:"items" validate:"required,min=1,dive"`
	Currency        types.Currency      `json:"currency"`
	PaymentMethod   types.PaymentMethod `json:"payment_method" validate:"required"`
	CouponCode      string              `json:"coupon_code,omitempty"`
	TransactionID   string              `json:"transaction_id,omitempty"`
	PaymentProofURL string              `json:"payment_proof_url,omitempty"`
}

func (r *CreateOrderRequest) Validate() error {
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

type UpdateOrderStatusRequest struct {
	OrderStatus types.OrderStatus `json:"order_status" validate:"required"`
}

func (r *UpdateOrderStatusRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.OrderStatus.Validate()
}

type OrderResponse struct {
	*order.Order
}

func NewOrderResponse(o *order.Order) *OrderResponse {
	return &OrderResponse{Order: o}
}

type ListOrdersResponse = types.ListResponse[*OrderResponse]
