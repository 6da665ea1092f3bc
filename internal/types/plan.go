package types

import (
	ierr "github.com/gymmawy/gymmawy/internal/errors"
)

// PlanPriceType selects the price tier of a plan: the normal price or the
// alternate medical price chosen by the purchase-time flag.
type PlanPriceType string

const (
	PlanPriceTypeNormal  PlanPriceType = "NORMAL"
	PlanPriceTypeMedical PlanPriceType = "MEDICAL"
)

func (t PlanPriceType) String() string {
	return string(t)
}

func (t PlanPriceType) Validate() error {
	switch t {
	case PlanPriceTypeNormal, PlanPriceTypeMedical:
		return nil
	default:
		return ierr.NewErrorf("invalid plan price type: %s", t).
			WithHint("Price type must be NORMAL or MEDICAL").
			Mark(ierr.ErrValidation)
	}
}

// PlanPriceTypeForMedical returns the price type selected by the purchase
// time medical flag.
func PlanPriceTypeForMedical(isMedical bool) PlanPriceType {
	if isMedical {
		return PlanPriceTypeMedical
	}
	return PlanPriceTypeNormal
}

// PlanFilter filters plan list queries.
type PlanFilter struct {
	*QueryFilter

	IsActive *bool `json:"is_active,omitempty" form:"is_active"`
}

func NewPlanFilter() *PlanFilter {
	return &PlanFilter{QueryFilter: NewDefaultQueryFilter()}
}

func NewNoLimitPlanFilter() *PlanFilter {
	return &PlanFilter{QueryFilter: NewNoLimitQueryFilter()}
}

func (f *PlanFilter) Validate() error {
	if f.QueryFilter != nil {
		return f.QueryFilter.Validate()
	}
	return nil
}
