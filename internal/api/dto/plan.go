package dto

import (
	"github.com/shopspring/decimal"

	"github.com/gymmawy/gymmawy/internal/domain/plan"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/types"
	"github.com/gymmawy/gymmawy/internal/validator"
)

type CreatePlanRequest struct {
	Name                         types.Bilingual `json:"name" validate:"required"`
	Description                  types.Bilingual `json:"description"`
	ImageURL                     string          `json:"image_url"`
	DurationDays                 int             `json:"duration_days" validate:"required,gt=0"`
	GiftDays                     int             `json:"gift_days" validate:"gte=0"`
	DiscountPercentage           decimal.Decimal `json:"discount_percentage"`
	LoyaltyPointsAwarded         int             `json:"loyalty_points_awarded" validate:"gte=0"`
	LoyaltyPointsRequired        int             `json:"loyalty_points_required" validate:"gte=0"`
	MedicalLoyaltyPointsAwarded  int             `json:"medical_loyalty_points_awarded" validate:"gte=0"`
	MedicalLoyaltyPointsRequired int             `json:"medical_loyalty_points_required" validate:"gte=0"`
	DisplayOrder                 *int            `json:"display_order,omitempty"`
}

func (r *CreatePlanRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Name.En == "" {
		return ierr.NewError("plan name is required").
			WithHint("Provide at least the English plan name").
			Mark(ierr.ErrValidation)
	}
	if r.DiscountPercentage.IsNegative() || r.DiscountPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return ierr.NewError("discount percentage out of range").
			WithHint("Discount percentage must be between 0 and 100").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreatePlanRequest) ToPlan() *plan.Plan {
	p := &plan.Plan{
		ID:                           types.GenerateUUIDWithPrefix(types.IDPrefixPlan),
		Name:                         r.Name,
		Description:                  r.Description,
		ImageURL:                     r.ImageURL,
		DurationDays:                 r.DurationDays,
		GiftDays:                     r.GiftDays,
		DiscountPercentage:           r.DiscountPercentage,
		LoyaltyPointsAwarded:         r.LoyaltyPointsAwarded,
		LoyaltyPointsRequired:        r.LoyaltyPointsRequired,
		MedicalLoyaltyPointsAwarded:  r.MedicalLoyaltyPointsAwarded,
		MedicalLoyaltyPointsRequired: r.MedicalLoyaltyPointsRequired,
		IsActive:                     true,
		BaseModel:                    types.GetDefaultBaseModel(),
	}
	if r.DisplayOrder != nil {
		p.DisplayOrder = *r.DisplayOrder
	}
	return p
}

type UpdatePlanRequest struct {
	Name                         *types.Bilingual `json:"name,omitempty"`
	Description                  *types.Bilingual `json:"description,omitempty"`
	ImageURL                     *string          `json:"image_url,omitempty"`
	DurationDays                 *int             `json:"duration_days,omitempty" validate:"omitempty,gt=0"`
	GiftDays                     *int             `json:"gift_days,omitempty" validate:"omitempty,gte=0"`
	DiscountPercentage           *decimal.Decimal `json:"discount_percentage,omitempty"`
	LoyaltyPointsAwarded         *int             `json:"loyalty_points_awarded,omitempty" validate:"omitempty,gte=0"`
	LoyaltyPointsRequired        *int             `json:"loyalty_points_required,omitempty" validate:"omitempty,gte=0"`
	MedicalLoyaltyPointsAwarded  *int             `json:"medical_loyalty_points_awarded,omitempty" validate:"omitempty,gte=0"`
	MedicalLoyaltyPointsRequired *int             `json:"medical_loyalty_points_required,omitempty" validate:"omitempty,gte=0"`
	IsActive                     *bool            `json:"is_active,omitempty"`
}

func (r *UpdatePlanRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ReorderPlansRequest maps plan ids to their new display positions.
type ReorderPlansRequest struct {
	Positions map[string]int `json:"positions" validate:"required,min=1"`
}

func (r *ReorderPlansRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type UpsertPlanPriceRequest struct {
	Currency types.Currency      `json:"currency" validate:"required"`
	Type     types.PlanPriceType `json:"type" validate:"required"`
	Amount   decimal.Decimal     `json:"amount"`
}

func (r *UpsertPlanPriceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.Currency.Validate(); err != nil {
		return err
	}
	if err := r.Type.Validate(); err != nil {
		return err
	}
	if r.Amount.IsNegative() {
		return ierr.NewError("price amount cannot be negative").
			WithHint("Provide a non-negative amount").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *UpsertPlanPriceRequest) ToPlanPrice(planID string) *plan.PlanPrice {
	return &plan.PlanPrice{
		ID:        types.GenerateUUIDWithPrefix(types.IDPrefixPlanPrice),
		PlanID:    planID,
		Currency:  r.Currency,
		Type:      r.Type,
		Amount:    r.Amount,
		BaseModel: types.GetDefaultBaseModel(),
	}
}

type PlanResponse struct {
	*plan.Plan
}

func NewPlanResponse(p *plan.Plan) *PlanResponse {
	return &PlanResponse{Plan: p}
}

type ListPlansResponse = types.ListResponse[*PlanResponse]

// ResolvedPrice is the server-side price math for one plan purchase, before
// any coupon is applied.
type ResolvedPrice struct {
	PlanID              string              `json:"plan_id"`
	Currency            types.Currency      `json:"currency"`
	Type                types.PlanPriceType `json:"type"`
	OriginalPrice       decimal.Decimal     `json:"original_price"`
	PlanDiscountPercent decimal.Decimal     `json:"plan_discount_percent"`
	PlanDiscountAmount  decimal.Decimal     `json:"plan_discount_amount"`
	FinalPrice          decimal.Decimal     `json:"final_price"`
}
