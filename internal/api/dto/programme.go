package dto

import (
	"github.com/shopspring/decimal"

	"github.com/gymmawy/gymmawy/internal/domain/programme"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/types"
	"github.com/gymmawy/gymmawy/internal/validator"
)

type CreateProgrammeRequest struct {
	Name                  types.Bilingual `json:"name" validate:"required"`
	Description           types.Bilingual `json:"description"`
	ImageURL              string          `json:"image_url"`
	DiscountPercentage    decimal.Decimal `json:"discount_percentage"`
	LoyaltyPointsAwarded  int             `json:"loyalty_points_awarded" validate:"gte=0"`
	LoyaltyPointsRequired int             `json:"loyalty_points_required" validate:"gte=0"`
	DisplayOrder          *int            `json:"display_order,omitempty"`
}

func (r *CreateProgrammeRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Name.En == "" {
		return ierr.NewError("programme name is required").
			WithHint("Provide at least the English programme name").
			Mark(ierr.ErrValidation)
	}
	if r.DiscountPercentage.IsNegative() || r.DiscountPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return ierr.NewError("discount percentage out of range").
			WithHint("Discount percentage must be between 0 and 100").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateProgrammeRequest) ToProgramme() *programme.Programme {
	p := &programme.Programme{
		ID:                    types.GenerateUUIDWithPrefix(types.IDPrefixProgramme),
		Name:                  r.Name,
		Description:           r.Description,
		ImageURL:              r.ImageURL,
		DiscountPercentage:    r.DiscountPercentage,
		LoyaltyPointsAwarded:  r.LoyaltyPointsAwarded,
		LoyaltyPointsRequired: r.LoyaltyPointsRequired,
		BaseModel:             types.GetDefaultBaseModel(),
	}
	if r.DisplayOrder != nil {
		p.DisplayOrder = *r.DisplayOrder
	}
	return p
}

type UpdateProgrammeRequest struct {
	Name                  *types.Bilingual `json:"name,omitempty"`
	Description           *types.Bilingual `json:"description,omitempty"`
	ImageURL              *string          `json:"image_url,omitempty"`
	DiscountPercentage    *decimal.Decimal `json:"discount_percentage,omitempty"`
	LoyaltyPointsAwarded  *int             `json:"loyalty_points_awarded,omitempty" validate:"omitempty,gte=0"`
	LoyaltyPointsRequired *int             `json:"loyalty_points_required,omitempty" validate:"omitempty,gte=0"`
}

func (r *UpdateProgrammeRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type UpsertProgrammePriceRequest struct {
	Currency types.Currency  `json:"currency" validate:"required"`
	Amount   decimal.Decimal `json:"amount"`
}

func (r *UpsertProgrammePriceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.Currency.Validate(); err != nil {
		return err
	}
	if r.Amount.IsNegative() {
		return ierr.NewError("price amount cannot be negative").
			WithHint("Provide a non-negative amount").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *UpsertProgrammePriceRequest) ToProgrammePrice(programmeID string) *programme.Price {
	return &programme.Price{
		ID:          types.GenerateUUIDWithPrefix(types.IDPrefixPlanPrice),
		ProgrammeID: programmeID,
		Currency:    r.Currency,
		Amount:      r.Amount,
		BaseModel:   types.GetDefaultBaseModel(),
	}
}

// PurchaseProgrammeRequest starts a programme purchase. Evidence rules mirror
// plan subscriptions.
type PurchaseProgrammeRequest struct {
	Currency        types.Currency      `json:"currency"`
	PaymentMethod   types.PaymentMethod `json:"payment_method" validate:"required"`
	CouponCode      string              `json:"coupon_code,omitempty"`
	TransactionID   string              `json:"transaction_id,omitempty"`
	PaymentProofURL string              `json:"payment_proof_url,omitempty"`
}

func (r *PurchaseProgrammeRequest) Validate() error {
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

type ProgrammeResponse struct {
	*programme.Programme
}

func NewProgrammeResponse(p *programme.Programme) *ProgrammeResponse {
	return &ProgrammeResponse{Programme: p}
}

type ListProgrammesResponse = types.ListResponse[*ProgrammeResponse]

type ProgrammePurchaseResponse struct {
	*programme.Purchase
}

func NewProgrammePurchaseResponse(p *programme.Purchase) *ProgrammePurchaseResponse {
	return &ProgrammePurchaseResponse{Purchase: p}
}

type ListProgrammePurchasesResponse = types.ListResponse[*ProgrammePurchaseResponse]
