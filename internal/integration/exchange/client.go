package exchange

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/shopspring/decimal"

	"github.com/gymmawy/gymmawy/internal/cache"
	"github.com/gymmawy/gymmawy/internal/config"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/types"
)

// Client resolves currency conversion rates into USD for reporting. Rates come
// from the live exchange API and are cached for an hour; when the API is
// unreachable the configured fixed fallback rates apply.
type Client interface {
	// RatesToUSD returns, per currency, the multiplier that converts one unit
	// of that currency into USD.
	RatesToUSD(ctx context.Context) map[types.Currency]decimal.Decimal
}

type client struct {
	http  *retryablehttp.Client
	cfg   *config.Configuration
	cache cache.Cache
	log   *logger.Logger
}

// NewClient builds the exchange client. HTTP calls retry with backoff before
// the fallback rates kick in.
func NewClient(cfg *config.Configuration, c cache.Cache, log *logger.Logger) Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 2
	httpClient.HTTPClient.Timeout = cfg.Exchange.Timeout
	httpClient.Logger = nil

	return &client{
		http:  httpClient,
		cfg:   cfg,
		cache: c,
		log:   log,
	}
}

// latestRatesResponse is the shape of the exchange API payload. Rates are
// quoted per 1 USD, so the USD multiplier for a currency is the reciprocal.
type latestRatesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

func (c *client) RatesToUSD(ctx context.Context) map[types.Currency]decimal.Decimal {
	cacheKey := cache.Key(cache.PrefixExchangeRate, "usd")
	if cached, ok := c.cache.Get(ctx, cacheKey); ok {
		if rates, ok := cache.UnmarshalCacheValue[map[types.Currency]decimal.Decimal](cached); ok {
			return *rates
		}
	}

	rates, err := c.fetchLiveRates(ctx)
	if err != nil {
		c.log.Warnw("live exchange rates unavailable, using fallback rates", "error", err)
		return config.FallbackExchangeRates()
	}

	c.cache.Set(ctx, cacheKey, rates, cache.ExpiryExchangeRates)
	return rates
}

func (c *client) fetchLiveRates(ctx context.Context) (map[types.Currency]decimal.Decimal, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Exchange.APIURL, nil)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to build exchange rate request").
			Mark(ierr.ErrHTTPClient)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Exchange rate API request failed").
			Mark(ierr.ErrHTTPClient)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ierr.NewErrorf("exchange rate API returned status %d", resp.StatusCode).
			WithHint("Exchange rate API request failed").
			Mark(ierr.ErrHTTPClient)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to read exchange rate response").
			Mark(ierr.ErrHTTPClient)
	}

	var payload latestRatesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode exchange rate response").
			Mark(ierr.ErrHTTPClient)
	}

	rates := make(map[types.Currency]decimal.Decimal, len(types.Currencies()))
	for _, currency := range types.Currencies() {
		if currency == types.CurrencyUSD {
			rates[currency] = decimal.NewFromInt(1)
			continue
		}
		perUSD, ok := payload.Rates[currency.String()]
		if !ok || perUSD <= 0 {
			return nil, ierr.NewErrorf("exchange rate API missing rate for %s", currency).
				WithHint("Exchange rate response incomplete").
				Mark(ierr.ErrHTTPClient)
		}
		rates[currency] = decimal.NewFromInt(1).Div(decimal.NewFromFloat(perUSD))
	}

	return rates, nil
}
