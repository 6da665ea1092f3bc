package service

import (
	"context"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc"

	"github.com/gymmawy/gymmawy/internal/api/dto"
	"github.com/gymmawy/gymmawy/internal/domain/payment"
	"github.com/gymmawy/gymmawy/internal/types"
)

// DashboardService aggregates the admin dashboard numbers. Sections are
// independent: one failing query logs and leaves its block zeroed instead of
// failing the whole response.
type DashboardService interface {
	GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	GetMonthlyTrends(ctx context.Context, months int) (*dto.MonthlyTrendsResponse, error)
	GetTopSelling(ctx context.Context, limit int) (*dto.TopSellingResponse, error)
	GetSubscriptionStats(ctx context.Context) (*dto.SubscriptionStatsResponse, error)

	ExportSubscriptionsCSV(ctx context.Context) ([]byte, error)
	ExportOrdersCSV(ctx context.Context) ([]byte, error)
	ExportLeadsCSV(ctx context.Context) ([]byte, error)
}

type dashboardService struct {
	ServiceParams
}

func NewDashboardService(params ServiceParams) DashboardService {
	return &dashboardService{ServiceParams: params}
}

const defaultTrendMonths = 6

func (s *dashboardService) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	resp := &dto.DashboardStatsResponse{}
	weekAgo := time.Now().UTC().AddDate(0, 0, -7)

	// Sections run concurrently; each logs its own failure and leaves its
	// numbers at zero.
	var wg conc.WaitGroup

	wg.Go(func() {
		var err error
		if resp.TotalUsers, err = s.UserRepo.Count(ctx); err != nil {
			s.Logger.Errorw("dashboard user count failed", "error", err)
		}
		if resp.NewUsersThisWeek, err = s.UserRepo.CountCreatedSince(ctx, weekAgo); err != nil {
			s.Logger.Errorw("dashboard weekly user count failed", "error", err)
		}
	})

	wg.Go(func() {
		var err error
		if resp.TotalOrders, err = s.OrderRepo.CountAll(ctx); err != nil {
			s.Logger.Errorw("dashboard order count failed", "error", err)
		}
		if resp.OrdersThisWeek, err = s.OrderRepo.CountCreatedSince(ctx, weekAgo); err != nil {
			s.Logger.Errorw("dashboard weekly order count failed", "error", err)
		}
	})

	wg.Go(func() {
		var err error
		if resp.ActiveSubscriptions, err = s.SubscriptionRepo.CountByStatus(ctx, types.SubscriptionStatusActive); err != nil {
			s.Logger.Errorw("dashboard active subscription count failed", "error", err)
		}
		if resp.SubscriptionsThisWeek, err = s.SubscriptionRepo.CountByStatusCreatedSince(ctx, types.SubscriptionStatusActive, weekAgo); err != nil {
			s.Logger.Errorw("dashboard weekly subscription count failed", "error", err)
		}
	})

	wg.Go(func() {
		var err error
		if resp.TotalProgrammePurchases, err = s.ProgrammeRepo.CountPurchases(ctx); err != nil {
			s.Logger.Errorw("dashboard programme purchase count failed", "error", err)
		}
		if resp.ProgrammePurchasesWeek, err = s.ProgrammeRepo.CountPurchasesSince(ctx, weekAgo); err != nil {
			s.Logger.Errorw("dashboard weekly programme purchase count failed", "error", err)
		}
	})

	wg.Go(func() {
		var err error
		if resp.LoyaltyPointsAwarded, err = s.LoyaltyRepo.SumPoints(ctx, types.LoyaltyTransactionTypeEarned, nil); err != nil {
			s.Logger.Errorw("dashboard loyalty earned sum failed", "error", err)
		}
		if resp.LoyaltyPointsRedeemed, err = s.LoyaltyRepo.SumPoints(ctx, types.LoyaltyTransactionTypeRedeemed, nil); err != nil {
			s.Logger.Errorw("dashboard loyalty redeemed sum failed", "error", err)
		}
	})

	wg.Go(func() {
		var err error
		success := payment.RevenueQuery{PaymentStatus: types.PaymentStatusSuccess}
		if resp.RevenueByCurrency, err = s.PaymentRepo.RevenueByCurrency(ctx, success); err != nil {
			s.Logger.Errorw("dashboard revenue sum failed", "error", err)
		}
		weekly := payment.RevenueQuery{PaymentStatus: types.PaymentStatusSuccess, From: &weekAgo}
		if resp.RevenueThisWeek, err = s.PaymentRepo.RevenueByCurrency(ctx, weekly); err != nil {
			s.Logger.Errorw("dashboard weekly revenue sum failed", "error", err)
		}
	})

	wg.Wait()
	return resp, nil
}

func (s *dashboardService) GetMonthlyTrends(ctx context.Context, months int) (*dto.MonthlyTrendsResponse, error) {
	if months <= 0 {
		months = defaultTrendMonths
	}

	rates := s.Exchange.RatesToUSD(ctx)
	now := time.Now().UTC()
	firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	trends := make([]dto.MonthlyTrend, 0, months)
	for i := months - 1; i >= 0; i-- {
		start := firstOfCurrent.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		trend := dto.MonthlyTrend{
			Month:       start.Format("2006-01"),
			PeriodStart: start,
			PeriodEnd:   end,
		}

		revenue, err := s.PaymentRepo.RevenueByCurrency(ctx, payment.RevenueQuery{
			PaymentStatus: types.PaymentStatusSuccess,
			From:          &start,
			To:            &end,
		})
		if err != nil {
			s.Logger.Errorw("monthly revenue query failed", "month", trend.Month, "error", err)
		} else {
			trend.RevenueByCurrency = revenue
			trend.TotalUSD = convertToUSD(revenue, rates)
		}

		if trend.Subscriptions, err = s.SubscriptionRepo.CountCreatedBetween(ctx, start, end); err != nil {
			s.Logger.Errorw("monthly subscription count failed", "month", trend.Month, "error", err)
		}
		if trend.Orders, err = s.OrderRepo.CountCreatedBetween(ctx, start, end); err != nil {
			s.Logger.Errorw("monthly order count failed", "month", trend.Month, "error", err)
		}
		if trend.ProgrammePurchases, err = s.ProgrammeRepo.CountPurchasesBetween(ctx, start, end); err != nil {
			s.Logger.Errorw("monthly programme purchase count failed", "month", trend.Month, "error", err)
		}

		trends = append(trends, trend)
	}

	return &dto.MonthlyTrendsResponse{Months: trends}, nil
}

// convertToUSD sums per-currency revenue with the given multipliers. A
// currency missing from the rate table contributes nothing.
func convertToUSD(revenue []payment.CurrencyRevenue, rates map[types.Currency]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, row := range revenue {
		rate, ok := rates[row.Currency]
		if !ok {
			continue
		}
		total = total.Add(row.Total.Mul(rate))
	}
	return total.Round(types.GetCurrencyPrecision(types.CurrencyUSD))
}

func (s *dashboardService) GetTopSelling(ctx context.Context, limit int) (*dto.TopSellingResponse, error) {
	if limit <= 0 {
		limit = 5
	}

	resp := &dto.TopSellingResponse{}
	var wg conc.WaitGroup

	wg.Go(func() {
		var err error
		if resp.Plans, err = s.SubscriptionRepo.TopPlans(ctx, limit); err != nil {
			s.Logger.Errorw("top plans query failed", "error", err)
		}
	})
	wg.Go(func() {
		var err error
		if resp.Programmes, err = s.ProgrammeRepo.TopProgrammes(ctx, limit); err != nil {
			s.Logger.Errorw("top programmes query failed", "error", err)
		}
	})
	wg.Go(func() {
		var err error
		if resp.Products, err = s.OrderRepo.TopProducts(ctx, limit); err != nil {
			s.Logger.Errorw("top products query failed", "error", err)
		}
	})

	wg.Wait()
	return resp, nil
}

func (s *dashboardService) GetSubscriptionStats(ctx context.Context) (*dto.SubscriptionStatsResponse, error) {
	byStatus, err := s.SubscriptionRepo.CountGroupedByStatus(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := s.PaymentRepo.RevenueByCurrency(ctx, payment.RevenueQuery{
		PaymentStatus:   types.PaymentStatusSuccess,
		PaymentableType: types.PaymentableTypeSubscription,
	})
	if err != nil {
		return nil, err
	}

	return &dto.SubscriptionStatsResponse{
		ByStatus:          byStatus,
		RevenueByCurrency: revenue,
	}, nil
}

func (s *dashboardService) ExportSubscriptionsCSV(ctx context.Context) ([]byte, error) {
	filter := types.NewNoLimitSubscriptionFilter()
	subs, err := s.SubscriptionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]*dto.SubscriptionExportRow, len(subs))
	for i, sub := range subs {
		row := &dto.SubscriptionExportRow{
			SubscriptionNumber: sub.SubscriptionNumber,
			UserID:             sub.UserID,
			PlanID:             sub.PlanID,
			Status:             sub.SubscriptionStatus.String(),
			IsMedical:          sub.IsMedical,
			Price:              sub.Price.StringFixed(2),
			Currency:           sub.Currency.String(),
			CreatedAt:          sub.CreatedAt.Format(time.RFC3339),
		}
		if sub.StartDate != nil {
			row.StartDate = sub.StartDate.Format(time.RFC3339)
		}
		if sub.EndDate != nil {
			row.EndDate = sub.EndDate.Format(time.RFC3339)
		}
		rows[i] = row
	}

	return gocsv.MarshalBytes(&rows)
}

func (s *dashboardService) ExportOrdersCSV(ctx context.Context) ([]byte, error) {
	filter := &types.OrderFilter{QueryFilter: types.NewNoLimitQueryFilter()}
	orders, err := s.OrderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]*dto.OrderExportRow, len(orders))
	for i, o := range orders {
		rows[i] = &dto.OrderExportRow{
			OrderNumber: o.OrderNumber,
			UserID:      o.UserID,
			Status:      o.OrderStatus.String(),
			TotalAmount: o.TotalAmount.StringFixed(2),
			Currency:    o.Currency.String(),
			CreatedAt:   o.CreatedAt.Format(time.RFC3339),
		}
	}

	return gocsv.MarshalBytes(&rows)
}

func (s *dashboardService) ExportLeadsCSV(ctx context.Context) ([]byte, error) {
	filter := &types.LeadFilter{QueryFilter: types.NewNoLimitQueryFilter()}
	leads, err := s.LeadRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]*dto.LeadExportRow, len(leads))
	for i, l := range leads {
		rows[i] = &dto.LeadExportRow{
			Name:         l.Name,
			Email:        l.Email,
			MobileNumber: l.MobileNumber,
			Status:       l.LeadStatus.String(),
			CreatedAt:    l.CreatedAt.Format(time.RFC3339),
		}
	}

	return gocsv.MarshalBytes(&rows)
}
