package service

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/gymmawy/gymmawy/internal/domain/payment"
	"github.com/gymmawy/gymmawy/internal/domain/subscription"
	"github.com/gymmawy/gymmawy/internal/testutil"
	"github.com/gymmawy/gymmawy/internal/types"
)

type DashboardServiceSuite struct {
	testutil.BaseServiceTestSuite
	service DashboardService
}

func TestDashboardService(t *testing.T) {
	suite.Run(t, new(DashboardServiceSuite))
}

func (s *DashboardServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewDashboardService(newTestParams(&s.BaseServiceTestSuite))
}

func (s *DashboardServiceSuite) seedPayment(id string, amount int64, currency types.Currency, status types.PaymentStatus, target types.PaymentableType) {
	s.Require().NoError(s.GetStores().Payments.Create(s.GetContext(), &payment.Payment{
		ID:               id,
		UserID:           "user-1",
		Amount:           decimal.NewFromInt(amount),
		Currency:         currency,
		Method:           types.PaymentMethodCard,
		PaymentStatus:    status,
		PaymentReference: "PAY-" + id,
		PaymentableType:  target,
		PaymentableID:    "target-" + id,
		BaseModel:        types.GetDefaultBaseModel(),
	}))
}

func (s *DashboardServiceSuite) seedSubscription(id string, status types.SubscriptionStatus) {
	s.Require().NoError(s.GetStores().Subscriptions.Create(s.GetContext(), &subscription.Subscription{
		ID:                 id,
		SubscriptionNumber: "SUB-" + id,
		UserID:             "user-1",
		PlanID:             "plan-gold",
		SubscriptionStatus: status,
		Currency:           types.CurrencyEGP,
		BaseModel:          types.GetDefaultBaseModel(),
	}))
}

func (s *DashboardServiceSuite) TestGetStatsEmpty() {
	resp, err := s.service.GetStats(s.GetContext())
	s.Require().NoError(err)
	s.Zero(resp.TotalUsers)
	s.Zero(resp.TotalOrders)
	s.Zero(resp.ActiveSubscriptions)
	s.Empty(resp.RevenueByCurrency)
}

func (s *DashboardServiceSuite) TestGetStats() {
	seedUser(&s.BaseServiceTestSuite, "user-1")
	seedUser(&s.BaseServiceTestSuite, "user-2")
	s.seedSubscription("sub-1", types.SubscriptionStatusActive)
	s.seedSubscription("sub-2", types.SubscriptionStatusPending)
	s.seedPayment("p1", 450, types.CurrencyEGP, types.PaymentStatusSuccess, types.PaymentableTypeSubscription)
	s.seedPayment("p2", 100, types.CurrencyUSD, types.PaymentStatusSuccess, types.PaymentableTypeOrder)
	// Failed payments never count as revenue.
	s.seedPayment("p3", 999, types.CurrencyEGP, types.PaymentStatusFailed, types.PaymentableTypeSubscription)

	resp, err := s.service.GetStats(s.GetContext())
	s.Require().NoError(err)
	s.Equal(int64(2), resp.TotalUsers)
	s.Equal(int64(2), resp.NewUsersThisWeek)
	s.Equal(int64(1), resp.ActiveSubscriptions)

	s.Require().Len(resp.RevenueByCurrency, 2)
	byCurrency := make(map[types.Currency]decimal.Decimal)
	for _, row := range resp.RevenueByCurrency {
		byCurrency[row.Currency] = row.Total
	}
	s.True(byCurrency[types.CurrencyEGP].Equal(decimal.NewFromInt(450)))
	s.True(byCurrency[types.CurrencyUSD].Equal(decimal.NewFromInt(100)))
}

func (s *DashboardServiceSuite) TestGetSubscriptionStats() {
	s.seedSubscription("sub-1", types.SubscriptionStatusActive)
	s.seedSubscription("sub-2", types.SubscriptionStatusActive)
	s.seedSubscription("sub-3", types.SubscriptionStatusExpired)
	s.seedPayment("p1", 450, types.CurrencyEGP, types.PaymentStatusSuccess, types.PaymentableTypeSubscription)
	// Order revenue stays out of the subscription breakdown.
	s.seedPayment("p2", 300, types.CurrencyEGP, types.PaymentStatusSuccess, types.PaymentableTypeOrder)

	resp, err := s.service.GetSubscriptionStats(s.GetContext())
	s.Require().NoError(err)

	byStatus := make(map[types.SubscriptionStatus]int64)
	for _, row := range resp.ByStatus {
		byStatus[row.SubscriptionStatus] = row.Count
	}
	s.Equal(int64(2), byStatus[types.SubscriptionStatusActive])
	s.Equal(int64(1), byStatus[types.SubscriptionStatusExpired])

	s.Require().Len(resp.RevenueByCurrency, 1)
	s.True(resp.RevenueByCurrency[0].Total.Equal(decimal.NewFromInt(450)))
}

func (s *DashboardServiceSuite) TestGetMonthlyTrends() {
	s.seedPayment("p1", 100, types.CurrencyUSD, types.PaymentStatusSuccess, types.PaymentableTypeSubscription)
	s.seedSubscription("sub-1", types.SubscriptionStatusActive)

	resp, err := s.service.GetMonthlyTrends(s.GetContext(), 3)
	s.Require().NoError(err)
	s.Require().Len(resp.Months, 3)

	// Months come oldest first, ending with the current one.
	current := resp.Months[2]
	s.Equal(time.Now().UTC().Format("2006-01"), current.Month)
	s.Equal(int64(1), current.Subscriptions)
	// 100 USD converts at 1:1.
	s.True(current.TotalUSD.Equal(decimal.NewFromInt(100)))

	s.Zero(resp.Months[0].Subscriptions)
	s.True(resp.Months[0].TotalUSD.IsZero())
}

func (s *DashboardServiceSuite) TestGetMonthlyTrendsBoundaryCountedOnce() {
	// A payment landing exactly on the first instant of the current month
	// belongs to the current month only, never to both adjacent windows.
	now := time.Now().UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	base := types.GetDefaultBaseModel()
	base.CreatedAt = firstOfMonth
	s.Require().NoError(s.GetStores().Payments.Create(s.GetContext(), &payment.Payment{
		ID:               "p-boundary",
		UserID:           "user-1",
		Amount:           decimal.NewFromInt(100),
		Currency:         types.CurrencyUSD,
		Method:           types.PaymentMethodCard,
		PaymentStatus:    types.PaymentStatusSuccess,
		PaymentReference: "PAY-p-boundary",
		PaymentableType:  types.PaymentableTypeSubscription,
		PaymentableID:    "target-p-boundary",
		BaseModel:        base,
	}))
	s.Require().NoError(s.GetStores().Subscriptions.Create(s.GetContext(), &subscription.Subscription{
		ID:                 "sub-boundary",
		SubscriptionNumber: "SUB-sub-boundary",
		UserID:             "user-1",
		PlanID:             "plan-gold",
		SubscriptionStatus: types.SubscriptionStatusActive,
		Currency:           types.CurrencyUSD,
		BaseModel:          base,
	}))

	resp, err := s.service.GetMonthlyTrends(s.GetContext(), 2)
	s.Require().NoError(err)
	s.Require().Len(resp.Months, 2)

	previous, current := resp.Months[0], resp.Months[1]
	s.True(previous.TotalUSD.IsZero())
	s.Zero(previous.Subscriptions)
	s.True(current.TotalUSD.Equal(decimal.NewFromInt(100)))
	s.Equal(int64(1), current.Subscriptions)
}

func (s *DashboardServiceSuite) TestGetMonthlyTrendsDefault() {
	resp, err := s.service.GetMonthlyTrends(s.GetContext(), 0)
	s.Require().NoError(err)
	s.Len(resp.Months, defaultTrendMonths)
}

func (s *DashboardServiceSuite) TestExportSubscriptionsCSV() {
	s.seedSubscription("sub-1", types.SubscriptionStatusActive)

	data, err := s.service.ExportSubscriptionsCSV(s.GetContext())
	s.Require().NoError(err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	s.Require().Len(lines, 2)
	s.Contains(lines[1], "SUB-sub-1")
	s.Contains(lines[1], "ACTIVE")
}

func (s *DashboardServiceSuite) TestExportLeadsCSVEmpty() {
	data, err := s.service.ExportLeadsCSV(s.GetContext())
	s.Require().NoError(err)
	// Header only.
	s.Equal(1, len(strings.Split(strings.TrimSpace(string(data)), "\n")))
}
