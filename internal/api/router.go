package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/gymmawy/gymmawy/internal/api/cron"
	v1 "github.com/gymmawy/gymmawy/internal/api/v1"
	"github.com/gymmawy/gymmawy/internal/config"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/rest/middleware"
)

// Handlers collects every HTTP handler wired into the router.
type Handlers struct {
	fx.In

	Auth         *v1.AuthHandler
	User         *v1.UserHandler
	Plan         *v1.PlanHandler
	Coupon       *v1.CouponHandler
	Subscription *v1.SubscriptionHandler
	Payment      *v1.PaymentHandler
	Loyalty      *v1.LoyaltyHandler
	Product      *v1.ProductHandler
	Order        *v1.OrderHandler
	Programme    *v1.ProgrammeHandler
	Lead         *v1.LeadHandler
	Dashboard    *v1.DashboardHandler

	SubscriptionCron *cron.SubscriptionCronHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.SentryMiddleware(cfg),
		middleware.RequestIDMiddleware,
		middleware.LoggingMiddleware(log),
		middleware.ErrorHandler(cfg, log),
		middleware.CurrencyMiddleware,
		middleware.LanguageMiddleware,
	)

	if cfg.RateLimit.Enabled {
		router.Use(middleware.NewRateLimiter(cfg).Middleware())
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := router.Group("/v1")
	{
		public.POST("/auth/register", handlers.Auth.Register)
		public.POST("/auth/login", handlers.Auth.Login)

		public.GET("/plans", handlers.Plan.ListPlans)
		public.GET("/plans/:id", handlers.Plan.GetPlan)
		public.GET("/plans/:id/price", handlers.Plan.ResolvePrice)

		public.GET("/products", handlers.Product.ListProducts)
		public.GET("/products/:id", handlers.Product.GetProduct)

		public.GET("/programmes", handlers.Programme.ListProgrammes)
		public.GET("/programmes/:id", handlers.Programme.GetProgramme)

		public.POST("/leads", handlers.Lead.CreateLead)
	}

	private := router.Group("/v1")
	private.Use(middleware.AuthMiddleware(cfg), middleware.SentryUserContextMiddleware)
	{
		private.GET("/auth/me", handlers.Auth.Me)
		private.PATCH("/auth/me", handlers.Auth.UpdateProfile)

		private.POST("/coupons/validate", handlers.Coupon.ValidateCoupon)

		private.POST("/subscriptions", handlers.Subscription.CreateSubscription)
		private.GET("/subscriptions", handlers.Subscription.ListMySubscriptions)
		private.POST("/subscriptions/:id/cancel", handlers.Subscription.CancelSubscription)

		private.POST("/orders", handlers.Order.CreateOrder)
		private.GET("/orders", handlers.Order.ListMyOrders)
		private.GET("/orders/:id", handlers.Order.GetOrder)

		private.POST("/programmes/:id/purchase", handlers.Programme.PurchaseProgramme)
		private.GET("/programmes/purchases", handlers.Programme.ListMyPurchases)

		private.GET("/payments", handlers.Payment.ListMyPayments)

		private.GET("/loyalty/balance", handlers.Loyalty.GetMyBalance)
		private.GET("/loyalty/transactions", handlers.Loyalty.ListMyTransactions)
	}

	admin := router.Group("/v1/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminRequired, middleware.SentryUserContextMiddleware)
	{
		admin.GET("/users", handlers.User.ListUsers)
		admin.GET("/users/:id", handlers.User.GetUser)
		admin.DELETE("/users/:id", handlers.User.DeleteUser)
		admin.POST("/users/:id/loyalty", handlers.Loyalty.AdjustPoints)

		admin.POST("/plans", handlers.Plan.CreatePlan)
		admin.PATCH("/plans/:id", handlers.Plan.UpdatePlan)
		admin.DELETE("/plans/:id", handlers.Plan.DeletePlan)
		admin.POST("/plans/reorder", handlers.Plan.ReorderPlans)
		admin.PUT("/plans/:id/prices", handlers.Plan.UpsertPlanPrice)
		admin.DELETE("/plans/:id/prices/:price_id", handlers.Plan.DeletePlanPrice)

		admin.POST("/coupons", handlers.Coupon.CreateCoupon)
		admin.GET("/coupons", handlers.Coupon.ListCoupons)
		admin.GET("/coupons/:id", handlers.Coupon.GetCoupon)
		admin.PATCH("/coupons/:id", handlers.Coupon.UpdateCoupon)
		admin.DELETE("/coupons/:id", handlers.Coupon.DeleteCoupon)

		admin.GET("/subscriptions", handlers.Subscription.ListSubscriptions)
		admin.GET("/subscriptions/pending", handlers.Subscription.GetPendingSubscriptions)
		admin.GET("/subscriptions/:id", handlers.Subscription.GetSubscription)
		admin.POST("/subscriptions/:id/approve", handlers.Subscription.ApproveSubscription)
		admin.POST("/subscriptions/:id/reject", handlers.Subscription.RejectSubscription)
		admin.DELETE("/subscriptions/:id", handlers.Subscription.DeleteSubscription)

		admin.GET("/payments", handlers.Payment.ListPayments)
		admin.GET("/payments/:id", handlers.Payment.GetPayment)
		admin.PATCH("/payments/:id/status", handlers.Payment.UpdatePaymentStatus)

		admin.POST("/products", handlers.Product.CreateProduct)
		admin.PATCH("/products/:id", handlers.Product.UpdateProduct)
		admin.DELETE("/products/:id", handlers.Product.DeleteProduct)

		admin.GET("/orders", handlers.Order.ListOrders)
		admin.PATCH("/orders/:id/status", handlers.Order.UpdateOrderStatus)

		admin.POST("/programmes", handlers.Programme.CreateProgramme)
		admin.PATCH("/programmes/:id", handlers.Programme.UpdateProgramme)
		admin.DELETE("/programmes/:id", handlers.Programme.DeleteProgramme)
		admin.POST("/programmes/reorder", handlers.Programme.ReorderProgrammes)
		admin.PUT("/programmes/:id/prices", handlers.Programme.UpsertProgrammePrice)

		admin.GET("/leads", handlers.Lead.ListLeads)
		admin.GET("/leads/stats", handlers.Lead.GetLeadStats)
		admin.GET("/leads/:id", handlers.Lead.GetLead)
		admin.PATCH("/leads/:id/status", handlers.Lead.UpdateLeadStatus)
		admin.DELETE("/leads/:id", handlers.Lead.DeleteLead)

		admin.GET("/dashboard/stats", handlers.Dashboard.GetStats)
		admin.GET("/dashboard/trends", handlers.Dashboard.GetMonthlyTrends)
		admin.GET("/dashboard/top-selling", handlers.Dashboard.GetTopSelling)
		admin.GET("/dashboard/subscriptions", handlers.Dashboard.GetSubscriptionStats)
		admin.GET("/dashboard/export/subscriptions", handlers.Dashboard.ExportSubscriptions)
		admin.GET("/dashboard/export/orders", handlers.Dashboard.ExportOrders)
		admin.GET("/dashboard/export/leads", handlers.Dashboard.ExportLeads)
	}

	cronGroup := router.Group("/cron")
	cronGroup.Use(middleware.CronSecretMiddleware(cfg))
	{
		cronGroup.POST("/subscriptions/sweep", handlers.SubscriptionCron.SweepExpired)
	}

	return router
}
