package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/gymmawy/gymmawy/internal/api"
	"github.com/gymmawy/gymmawy/internal/api/cron"
	v1 "github.com/gymmawy/gymmawy/internal/api/v1"
	"github.com/gymmawy/gymmawy/internal/cache"
	"github.com/gymmawy/gymmawy/internal/config"
	scheduler "github.com/gymmawy/gymmawy/internal/cron"
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
	redisClient "github.com/gymmawy/gymmawy/internal/redis"
	"github.com/gymmawy/gymmawy/internal/repository"
	"github.com/gymmawy/gymmawy/internal/service"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			postgres.NewClient,
			provideRedis,
			cache.Initialize,
			notification.NewDispatcher,
			exchange.NewClient,

			repository.NewUserRepository,
			repository.NewPlanRepository,
			repository.NewCouponRepository,
			repository.NewSubscriptionRepository,
			repository.NewPaymentRepository,
			repository.NewLoyaltyRepository,
			repository.NewProductRepository,
			repository.NewOrderRepository,
			repository.NewProgrammeRepository,
			repository.NewLeadRepository,

			newServiceParams,

			service.NewUserService,
			service.NewPlanService,
			service.NewPriceService,
			service.NewCouponService,
			service.NewSubscriptionService,
			service.NewPaymentService,
			service.NewLoyaltyService,
			service.NewProductService,
			service.NewOrderService,
			service.NewProgrammeService,
			service.NewLeadService,
			service.NewDashboardService,

			v1.NewAuthHandler,
			v1.NewUserHandler,
			v1.NewPlanHandler,
			v1.NewCouponHandler,
			v1.NewSubscriptionHandler,
			v1.NewPaymentHandler,
			v1.NewLoyaltyHandler,
			v1.NewProductHandler,
			v1.NewOrderHandler,
			v1.NewProgrammeHandler,
			v1.NewLeadHandler,
			v1.NewDashboardHandler,
			cron.NewSubscriptionCronHandler,

			scheduler.NewScheduler,
			api.NewRouter,
		),
		fx.Invoke(initSentry, startServer, startScheduler),
	)

	app.Run()
}

func provideRedis(cfg *config.Configuration, log *logger.Logger) (*redisClient.Client, error) {
	if cache.CacheType(cfg.Cache.Type) != cache.CacheTypeRedis {
		return nil, nil
	}
	return redisClient.NewClient(cfg, log)
}

type serviceParamsDeps struct {
	fx.In

	Config *config.Configuration
	Logger *logger.Logger
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

func newServiceParams(deps serviceParamsDeps) service.ServiceParams {
	return service.ServiceParams{
		Logger: deps.Logger,
		Config: deps.Config,
		DB:     deps.DB,
		Cache:  deps.Cache,

		UserRepo:         deps.UserRepo,
		PlanRepo:         deps.PlanRepo,
		CouponRepo:       deps.CouponRepo,
		SubscriptionRepo: deps.SubscriptionRepo,
		PaymentRepo:      deps.PaymentRepo,
		LoyaltyRepo:      deps.LoyaltyRepo,
		ProductRepo:      deps.ProductRepo,
		OrderRepo:        deps.OrderRepo,
		ProgrammeRepo:    deps.ProgrammeRepo,
		LeadRepo:         deps.LeadRepo,

		Notifier: deps.Notifier,
		Exchange: deps.Exchange,
	}
}

func initSentry(cfg *config.Configuration, log *logger.Logger) error {
	if !cfg.Sentry.Enabled {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Environment:      string(cfg.Deployment.Mode),
		TracesSampleRate: cfg.Sentry.SampleRate,
	})
	if err != nil {
		return err
	}

	log.Infow("sentry initialized", "environment", cfg.Deployment.Mode)
	return nil
}

func startServer(lc fx.Lifecycle, router *gin.Engine, cfg *config.Configuration, log *logger.Logger) {
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting server", "address", srv.Addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalw("server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("shutting down server")
			sentry.Flush(2 * time.Second)
			return srv.Shutdown(ctx)
		},
	})
}

func startScheduler(lc fx.Lifecycle, sched *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sched.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			sched.Stop()
			return nil
		},
	})
}
