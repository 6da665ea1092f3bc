package dto

import (
	"github.com/gymmawy/gymmawy/internal/domain/payment"
	"github.com/gymmawy/gymmawy/internal/types"
	"github.com/gymmawy/gymmawy/internal/validator"
)

// UpdatePaymentStatusRequest transitions a payment from the admin dashboard.
type UpdatePaymentStatusRequest struct {
	PaymentStatus types.PaymentStatus `json:"payment_status" validate:"required"`
}

func (r *UpdatePaymentStatusRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.PaymentStatus.Validate()
}

type PaymentResponse struct {
	*payment.Payment
}

func NewPaymentResponse(p *payment.Payment) *PaymentResponse {
	return &PaymentResponse{Payment: p}
}

type ListPaymentsResponse = types.ListResponse[*PaymentResponse]
