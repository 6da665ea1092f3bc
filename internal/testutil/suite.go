package testutil

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/gymmawy/gymmawy/internal/cache"
	"github.com/gymmawy/gymmawy/internal/config"
	"github.com/gymmawy/gymmawy/internal/integration/exchange"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/notification"
	"github.com/gymmawy/gymmawy/internal/types"
)

// Stores bundles every in-memory repository so tests can seed data directly.
type Stores struct {
	Users         *InMemoryUserStore
	Plans         *InMemoryPlanStore
	Coupons       *InMemoryCouponStore
	Subscriptions *InMemorySubscriptionStore
	Payments      *InMemoryPaymentStore
	Loyalty       *InMemoryLoyaltyStore
	Products      *InMemoryProductStore
	Orders        *InMemoryOrderStore
	Programmes    *InMemoryProgrammeStore
	Leads         *InMemoryLeadStore
}

func NewStores() *Stores {
	users := NewInMemoryUserStore()
	plans := NewInMemoryPlanStore()
	products := NewInMemoryProductStore()
	return &Stores{
		Users:         users,
		Plans:         plans,
		Coupons:       NewInMemoryCouponStore(),
		Subscriptions: NewInMemorySubscriptionStore(plans),
		Payments:      NewInMemoryPaymentStore(),
		Loyalty:       NewInMemoryLoyaltyStore(users),
		Products:      products,
		Orders:        NewInMemoryOrderStore(products),
		Programmes:    NewInMemoryProgrammeStore(),
		Leads:         NewInMemoryLeadStore(),
	}
}

// StubExchangeClient returns the fixed fallback rates without any HTTP.
type StubExchangeClient struct{}

func (StubExchangeClient) RatesToUSD(ctx context.Context) map[types.Currency]decimal.Decimal {
	return config.FallbackExchangeRates()
}

var _ exchange.Client = StubExchangeClient{}

// TestConfig returns a configuration suitable for service tests.
func TestConfig() *config.Configuration {
	return &config.Configuration{
		Deployment: config.DeploymentConfig{Mode: config.ModeDevelopment},
		Auth: config.AuthConfig{
			Secret:   "test-secret",
			TokenTTL: 24 * time.Hour,
		},
	}
}

// BaseServiceTestSuite wires in-memory stores, a nop logger and an in-memory
// cache into a fresh environment per test.
type BaseServiceTestSuite struct {
	suite.Suite

	ctx      context.Context
	stores   *Stores
	logger   *logger.Logger
	cfg      *config.Configuration
	cache    cache.Cache
	notifier notification.Dispatcher
	exchange exchange.Client
}

// SetupTest resets every store so tests never share state.
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.stores = NewStores()
	s.logger = logger.NewNopLogger()
	s.cfg = TestConfig()
	s.cache = cache.NewInMemoryCache()
	s.notifier = notification.NewNoopDispatcher()
	s.exchange = StubExchangeClient{}
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() *Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetNotifier() notification.Dispatcher {
	return s.notifier
}

func (s *BaseServiceTestSuite) GetExchange() exchange.Client {
	return s.exchange
}
