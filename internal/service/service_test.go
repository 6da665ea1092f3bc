package service

import (
	"github.com/shopspring/decimal"

	"github.com/gymmawy/gymmawy/internal/domain/plan"
	"github.com/gymmawy/gymmawy/internal/domain/user"
	"github.com/gymmawy/gymmawy/internal/testutil"
	"github.com/gymmawy/gymmawy/internal/types"
)

// newTestParams assembles a ServiceParams backed by the suite's in-memory
// stores.
func newTestParams(b *testutil.BaseServiceTestSuite) ServiceParams {
	stores := b.GetStores()
	return ServiceParams{
		Logger: b.GetLogger(),
		Config: b.GetConfig(),
		Cache:  b.GetCache(),

		UserRepo:         stores.Users,
		PlanRepo:         stores.Plans,
		CouponRepo:       stores.Coupons,
		SubscriptionRepo: stores.Subscriptions,
		PaymentRepo:      stores.Payments,
		LoyaltyRepo:      stores.Loyalty,
		ProductRepo:      stores.Products,
		OrderRepo:        stores.Orders,
		ProgrammeRepo:    stores.Programmes,
		LeadRepo:         stores.Leads,

		Notifier: b.GetNotifier(),
		Exchange: b.GetExchange(),
	}
}

func seedUser(b *testutil.BaseServiceTestSuite, id string) *user.User {
	u := &user.User{
		ID:        id,
		Email:     id + "@example.com",
		FirstName: "Test",
		LastName:  "Member",
		Role:      types.UserRoleMember,
		BaseModel: types.GetDefaultBaseModel(),
	}
	if err := b.GetStores().Users.Create(b.GetContext(), u); err != nil {
		panic(err)
	}
	return u
}

// seedPlan creates an active 30+5 day plan priced 500 EGP normal and 600 EGP
// medical, with a 10% plan discount.
func seedPlan(b *testutil.BaseServiceTestSuite, id string) *plan.Plan {
	p := &plan.Plan{
		ID:                          id,
		Name:                        types.Bilingual{En: "Gold", Ar: "جولد"},
		DurationDays:                30,
		GiftDays:                    5,
		DiscountPercentage:          decimal.NewFromInt(10),
		LoyaltyPointsAwarded:        100,
		MedicalLoyaltyPointsAwarded: 150,
		IsActive:                    true,
		BaseModel:                   types.GetDefaultBaseModel(),
	}
	ctx := b.GetContext()
	plans := b.GetStores().Plans
	if err := plans.Create(ctx, p); err != nil {
		panic(err)
	}
	prices := []*plan.PlanPrice{
		{
			ID:        id + "-price-egp",
			PlanID:    id,
			Currency:  types.CurrencyEGP,
			Type:      types.PlanPriceTypeNormal,
			Amount:    decimal.NewFromInt(500),
			BaseModel: types.GetDefaultBaseModel(),
		},
		{
			ID:        id + "-price-egp-medical",
			PlanID:    id,
			Currency:  types.CurrencyEGP,
			Type:      types.PlanPriceTypeMedical,
			Amount:    decimal.NewFromInt(600),
			BaseModel: types.GetDefaultBaseModel(),
		},
	}
	for _, price := range prices {
		if err := plans.UpsertPrice(ctx, price); err != nil {
			panic(err)
		}
	}
	return p
}
