package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gymmawy/gymmawy/internal/cache"
	"github.com/gymmawy/gymmawy/internal/config"
	"github.com/gymmawy/gymmawy/internal/domain/subscription"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/notification"
	"github.com/gymmawy/gymmawy/internal/service"
	"github.com/gymmawy/gymmawy/internal/testutil"
	"github.com/gymmawy/gymmawy/internal/types"
)

func newSweepFixture(sweeper config.SweeperConfig) (*Scheduler, *testutil.Stores) {
	stores := testutil.NewStores()
	cfg := testutil.TestConfig()
	cfg.Sweeper = sweeper

	params := service.ServiceParams{
		Logger:           logger.NewNopLogger(),
		Config:           cfg,
		Cache:            cache.NewInMemoryCache(),
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
		Notifier:         notification.NewNoopDispatcher(),
		Exchange:         testutil.StubExchangeClient{},
	}

	return NewScheduler(cfg, params.Logger, service.NewSubscriptionService(params)), stores
}

func seedStaleActive(t *testing.T, stores *testutil.Stores, id string) {
	t.Helper()
	start := time.Now().UTC().Add(-48 * time.Hour)
	end := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, stores.Subscriptions.Create(context.Background(), &subscription.Subscription{
		ID:                 id,
		SubscriptionNumber: "SUB-" + id,
		UserID:             "user-1",
		PlanID:             "plan-gold",
		SubscriptionStatus: types.SubscriptionStatusActive,
		Currency:           types.CurrencyEGP,
		StartDate:          &start,
		EndDate:            &end,
		BaseModel:          types.GetDefaultBaseModel(),
	}))
}

func TestSchedulerDailyLoopSweeps(t *testing.T) {
	// The hourly interval is far beyond the test horizon, so after the
	// startup pass only the daily ticker can expire anything.
	sched, stores := newSweepFixture(config.SweeperConfig{
		Enabled:        true,
		HourlyInterval: time.Hour,
		DailyInterval:  20 * time.Millisecond,
	})

	sched.Start()
	defer sched.Stop()

	// Let the startup sweep pass before seeding.
	time.Sleep(50 * time.Millisecond)
	seedStaleActive(t, stores, "sub-stale")

	require.Eventually(t, func() bool {
		sub, err := stores.Subscriptions.Get(context.Background(), "sub-stale")
		return err == nil && sub.SubscriptionStatus == types.SubscriptionStatusExpired
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSchedulerStartupSweep(t *testing.T) {
	sched, stores := newSweepFixture(config.SweeperConfig{
		Enabled:        true,
		HourlyInterval: time.Hour,
		DailyInterval:  time.Hour,
	})
	seedStaleActive(t, stores, "sub-stale")

	sched.Start()
	defer sched.Stop()

	require.Eventually(t, func() bool {
		sub, err := stores.Subscriptions.Get(context.Background(), "sub-stale")
		return err == nil && sub.SubscriptionStatus == types.SubscriptionStatusExpired
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSchedulerDisabled(t *testing.T) {
	sched, _ := newSweepFixture(config.SweeperConfig{Enabled: false})

	// Start is a no-op and Stop must not hang or panic.
	sched.Start()
	sched.Stop()
}
