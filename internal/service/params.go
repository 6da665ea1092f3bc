package service

import (
	"github.com/gymmawy/gymmawy/internal/cache"
	"github.com/gymmawy/gymmawy/internal/config"
	"github.com/gymmawy/gymmawy/internal/domain/coupon"
	"github.com/gymmawy/gymmawy/internal/domain/lead"
	"github.com/gymmawy/gymmawy/internal/domain/loyalty"
	"github.com/gymmawy/gymmawy/internal/domain/order"
	"github.com/gymmawy/gymmawy/internal/domain/payment"
	"github.com/gymmawy/gymmawy/internal/domain/plan"
	"github.com/gymmawy/gymmawy/internal/domain/product"
	"github.com/gymmawy/gymmawy/internal/domain/programme"
	"github.com/gymmawy/gymmawy/internal/domain/subscription"
	"github.com/gymmawy/gymmawy/internal/domain/user"
	"github.com/gymmawy/gymmawy/internal/integration/exchange"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/notification"
	"github.com/gymmawy/gymmawy/internal/postgres"
)

// ServiceParams bundles everything a service needs. Services embed it so
// constructors stay one-liners and new dependencies never churn signatures.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Cache  cache.Cache

	UserRepo         user.Repository
	PlanRepo         plan.Repository
	CouponRepo       coupon.Repository
	SubscriptionRepo subscription.Repository
	PaymentRepo      payment.Repository
	LoyaltyRepo      loyalty.Repository
	ProductRepo      product.Repository
	OrderRepo        order.Repository
	ProgrammeRepo    programme.Repository
	LeadRepo         lead.Repository

	Notifier notification.Dispatcher
	Exchange exchange.Client
}
