package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/testutil"
	"github.com/gymmawy/gymmawy/internal/types"
)

type PriceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PriceService
}

func TestPriceService(t *testing.T) {
	suite.Run(t, new(PriceServiceSuite))
}

func (s *PriceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPriceService(newTestParams(&s.BaseServiceTestSuite))
}

func (s *PriceServiceSuite) TestResolvePlanPrice() {
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")

	resolved, err := s.service.ResolvePlanPrice(s.GetContext(), "plan-gold", types.CurrencyEGP, false)
	s.NoError(err)
	s.Equal(types.CurrencyEGP, resolved.Currency)
	s.Equal(types.PlanPriceTypeNormal, resolved.Type)
	s.True(resolved.OriginalPrice.Equal(decimal.NewFromInt(500)))
	s.True(resolved.PlanDiscountAmount.Equal(decimal.NewFromInt(50)))
	s.True(resolved.FinalPrice.Equal(decimal.NewFromInt(450)))
}

func (s *PriceServiceSuite) TestResolvePlanPriceMedical() {
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")

	resolved, err := s.service.ResolvePlanPrice(s.GetContext(), "plan-gold", types.CurrencyEGP, true)
	s.NoError(err)
	s.Equal(types.PlanPriceTypeMedical, resolved.Type)
	s.True(resolved.OriginalPrice.Equal(decimal.NewFromInt(600)))
	s.True(resolved.FinalPrice.Equal(decimal.NewFromInt(540)))
}

func (s *PriceServiceSuite) TestResolvePlanPriceDeterministic() {
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")

	first, err := s.service.ResolvePlanPrice(s.GetContext(), "plan-gold", types.CurrencyEGP, false)
	s.NoError(err)
	second, err := s.service.ResolvePlanPrice(s.GetContext(), "plan-gold", types.CurrencyEGP, false)
	s.NoError(err)
	s.True(first.FinalPrice.Equal(second.FinalPrice))
}

func (s *PriceServiceSuite) TestResolvePlanPriceMissingCurrency() {
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")

	// No SAR row seeded; there is no cross-currency fallback.
	_, err := s.service.ResolvePlanPrice(s.GetContext(), "plan-gold", types.CurrencySAR, false)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PriceServiceSuite) TestResolvePlanPriceInvalidCurrency() {
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")

	_, err := s.service.ResolvePlanPrice(s.GetContext(), "plan-gold", types.Currency("XXX"), false)
	s.Error(err)
}

func (s *PriceServiceSuite) TestResolvePlanPriceUnknownPlan() {
	_, err := s.service.ResolvePlanPrice(s.GetContext(), "plan-missing", types.CurrencyEGP, false)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *PriceServiceSuite) TestResolvePlanPriceCurrencyFromContext() {
	seedPlan(&s.BaseServiceTestSuite, "plan-gold")

	ctx := context.WithValue(s.GetContext(), types.CtxCurrency, types.CurrencyEGP)
	resolved, err := s.service.ResolvePlanPrice(ctx, "plan-gold", "", false)
	s.NoError(err)
	s.Equal(types.CurrencyEGP, resolved.Currency)
}
