package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gymmawy/gymmawy/internal/domain/lead"
	"github.com/gymmawy/gymmawy/internal/domain/order"
	"github.com/gymmawy/gymmawy/internal/domain/payment"
	"github.com/gymmawy/gymmawy/internal/domain/programme"
	"github.com/gymmawy/gymmawy/internal/domain/subscription"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
)

// DashboardStatsResponse is the headline numbers block of the admin dashboard.
// Sections that failed to load are left at their zero value.
type DashboardStatsResponse struct {
	TotalUsers              int64                     `json:"total_users"`
	NewUsersThisWeek        int64                     `json:"new_users_this_week"`
	TotalOrders             int64                     `json:"total_orders"`
	OrdersThisWeek          int64                     `json:"orders_this_week"`
	ActiveSubscriptions     int64                     `json:"active_subscriptions"`
	SubscriptionsThisWeek   int64                     `json:"subscriptions_this_week"`
	TotalProgrammePurchases int64                     `json:"total_programme_purchases"`
	ProgrammePurchasesWeek  int64                     `json:"programme_purchases_this_week"`
	LoyaltyPointsAwarded    int64                     `json:"loyalty_points_awarded"`
	LoyaltyPointsRedeemed   int64                     `json:"loyalty_points_redeemed"`
	RevenueByCurrency       []payment.CurrencyRevenue `json:"revenue_by_currency"`
	RevenueThisWeek         []payment.CurrencyRevenue `json:"revenue_this_week"`
}

// MonthlyTrendsRequest scopes the trends window.
type MonthlyTrendsRequest struct {
	Months int `json:"months" form:"months"`
}

func (r *MonthlyTrendsRequest) Validate() error {
	if r.Months < 0 || r.Months > 36 {
		return ierr.NewError("months out of range").
			WithHint("Months must be between 1 and 36").
			WithReportableDetails(map[string]any{"months": r.Months}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// MonthlyTrend is one month's revenue and volume breakdown.
type MonthlyTrend struct {
	Month             string                    `json:"month"`
	PeriodStart       time.Time                 `json:"period_start"`
	PeriodEnd         time.Time                 `json:"period_end"`
	RevenueByCurrency []payment.CurrencyRevenue `json:"revenue_by_currency"`
	// TotalUSD converts each currency's revenue with the live (or fallback)
	// exchange rates.
	TotalUSD           decimal.Decimal `json:"total_usd"`
	Subscriptions      int64           `json:"subscriptions"`
	Orders             int64           `json:"orders"`
	ProgrammePurchases int64           `json:"programme_purchases"`
}

type MonthlyTrendsResponse struct {
	Months []MonthlyTrend `json:"months"`
}

// TopSellingResponse lists the best performers of each sellable kind.
type TopSellingResponse struct {
	Plans      []subscription.PlanCount   `json:"plans"`
	Programmes []programme.ProgrammeCount `json:"programmes"`
	Products   []order.ProductSales       `json:"products"`
}

// SubscriptionStatsResponse is the subscription status breakdown plus revenue.
type SubscriptionStatsResponse struct {
	ByStatus          []subscription.StatusCount `json:"by_status"`
	RevenueByCurrency []payment.CurrencyRevenue  `json:"revenue_by_currency"`
}

// LeadStatsResponse is the lead status breakdown.
type LeadStatsResponse struct {
	ByStatus []lead.StatusCount `json:"by_status"`
	Total    int64              `json:"total"`
}

// SubscriptionExportRow is one CSV line of the subscriptions export.
type SubscriptionExportRow struct {
	SubscriptionNumber string `csv:"subscription_number"`
	UserID             string `csv:"user_id"`
	PlanID             string `csv:"plan_id"`
	Status             string `csv:"status"`
	IsMedical          bool   `csv:"is_medical"`
	Price              string `csv:"price"`
	Currency           string `csv:"currency"`
	StartDate          string `csv:"start_date"`
	EndDate            string `csv:"end_date"`
	CreatedAt          string `csv:"created_at"`
}

// OrderExportRow is one CSV line of the orders export.
type OrderExportRow struct {
	OrderNumber string `csv:"order_number"`
	UserID      string `csv:"user_id"`
	Status      string `csv:"status"`
	TotalAmount string `csv:"total_amount"`
	Currency    string `csv:"currency"`
	CreatedAt   string `csv:"created_at"`
}

// LeadExportRow is one CSV line of the leads export.
type LeadExportRow struct {
	Name         string `csv:"name"`
	Email        string `csv:"email"`
	MobileNumber string `csv:"mobile_number"`
	Status       string `csv:"status"`
	CreatedAt    string `csv:"created_at"`
}
