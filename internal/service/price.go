package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/gymmawy/gymmawy/internal/api/dto"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/types"
)

// PriceService resolves the authoritative server-side price for a purchase.
// Client-supplied amounts are never trusted; every purchase path goes through
// this resolution before anything is persisted.
type PriceService interface {
	// ResolvePlanPrice looks up the plan's price row for the currency and
	// purchase type and applies the plan's own percentage discount.
	ResolvePlanPrice(ctx context.Context, planID string, currency types.Currency, isMedical bool) (*dto.ResolvedPrice, error)

	// ResolveProgrammePrice does the same for a programme purchase.
	ResolveProgrammePrice(ctx context.Context, programmeID string, currency types.Currency) (*dto.ResolvedPrice, error)
}

type priceService struct {
	ServiceParams
}

func NewPriceService(params ServiceParams) PriceService {
	return &priceService{ServiceParams: params}
}

func (s *priceService) ResolvePlanPrice(ctx context.Context, planID string, currency types.Currency, isMedical bool) (*dto.ResolvedPrice, error) {
	if currency == "" {
		currency = types.GetCurrency(ctx)
	}
	if err := currency.Validate(); err != nil {
		return nil, err
	}

	p, err := s.PlanRepo.GetWithPrices(ctx, planID)
	if err != nil {
		return nil, err
	}

	priceType := types.PlanPriceTypeForMedical(isMedical)
	row := p.PriceFor(currency, priceType)
	if row == nil {
		// No cross-currency conversion at purchase time: a missing price row
		// means the plan is simply not sold in that currency.
		return nil, ierr.NewError("plan has no price for the requested currency").
			WithHint("This plan is not available in the selected currency").
			WithReportableDetails(map[string]any{
				"plan_id":  planID,
				"currency": currency,
				"type":     priceType,
			}).
			Mark(ierr.ErrValidation)
	}

	discount, final := applyPercentageDiscount(row.Amount, p.DiscountPercentage, currency)

	return &dto.ResolvedPrice{
		PlanID:              planID,
		Currency:            currency,
		Type:                priceType,
		OriginalPrice:       row.Amount,
		PlanDiscountPercent: p.DiscountPercentage,
		PlanDiscountAmount:  discount,
		FinalPrice:          final,
	}, nil
}

func (s *priceService) ResolveProgrammePrice(ctx context.Context, programmeID string, currency types.Currency) (*dto.ResolvedPrice, error) {
	if currency == "" {
		currency = types.GetCurrency(ctx)
	}
	if err := currency.Validate(); err != nil {
		return nil, err
	}

	p, err := s.ProgrammeRepo.GetWithPrices(ctx, programmeID)
	if err != nil {
		return nil, err
	}

	row := p.PriceFor(currency)
	if row == nil {
		return nil, ierr.NewError("programme has no price for the requested currency").
			WithHint("This programme is not available in the selected currency").
			WithReportableDetails(map[string]any{
				"programme_id": programmeID,
				"currency":     currency,
			}).
			Mark(ierr.ErrValidation)
	}

	discount, final := applyPercentageDiscount(row.Amount, p.DiscountPercentage, currency)

	return &dto.ResolvedPrice{
		PlanID:              programmeID,
		Currency:            currency,
		OriginalPrice:       row.Amount,
		PlanDiscountPercent: p.DiscountPercentage,
		PlanDiscountAmount:  discount,
		FinalPrice:          final,
	}, nil
}

// applyPercentageDiscount computes amount * pct / 100 rounded to the
// currency's precision and the remaining price. A zero percentage passes the
// amount through untouched.
func applyPercentageDiscount(amount, percent decimal.Decimal, currency types.Currency) (discount, final decimal.Decimal) {
	discount = amount.
		Mul(percent).
		Div(decimal.NewFromInt(100)).
		Round(types.GetCurrencyPrecision(currency))
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return discount, amount.Sub(discount)
}
