package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Aquaier/Savoo/internal/core/domain"
	portsrepo "github.com/Aquaier/Savoo/internal/core/ports/repositories"
	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const (
	defaultRateCacheTTL     = 24 * time.Hour
	defaultRateFetchTimeout = 5 * time.Second
	defaultRateRetryBackoff = 5 * time.Minute
)

var errEmptyRateTable = errors.New("rate source returned no usable rates")

// rateProvider keeps the exchange rate table in step with the rate source,
// falling back to the file cache when the source is unavailable.
type rateProvider struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateWriter
	source       portssvc.RateSource
	cache        portssvc.RateCacheStore
	baseCurrency string
	ttl          time.Duration
	fetchTimeout time.Duration
	retryBackoff time.Duration
	now          Clock

	group singleflight.Group

	mu       sync.Mutex
	syncedAt time.Time // fetched_at of the snapshot last written to the table
	failedAt time.Time // time of the last failed live fetch
}

// RateProviderOption configures the rate provider
type RateProviderOption func(*rateProvider)

// WithRateCacheTTL sets how long a fetched table is considered fresh.
func WithRateCacheTTL(ttl time.Duration) RateProviderOption {
	return func(p *rateProvider) { p.ttl = ttl }
}

// WithRateFetchTimeout bounds a single call to the rate source.
func WithRateFetchTimeout(timeout time.Duration) RateProviderOption {
	return func(p *rateProvider) { p.fetchTimeout = timeout }
}

// WithRateRetryBackoff sets how long non-forced refreshes skip the source after a failure.
func WithRateRetryBackoff(backoff time.Duration) RateProviderOption {
	return func(p *rateProvider) { p.retryBackoff = backoff }
}

// WithRateClock overrides the time source.
func WithRateClock(now Clock) RateProviderOption {
	return func(p *rateProvider) { p.now = now }
}

// NewRateProvider creates the rate provider.
func NewRateProvider(
	rateRepo portsrepo.ExchangeRateWriter,
	source portssvc.RateSource,
	cache portssvc.RateCacheStore,
	baseCurrency string,
	options ...RateProviderOption,
) portssvc.RateProviderSvc {
	p := &rateProvider{
		rateRepo:     rateRepo,
		source:       source,
		cache:        cache,
		baseCurrency: domain.NormalizeCurrencyCode(baseCurrency, domain.DefaultBaseCurrency),
		ttl:          defaultRateCacheTTL,
		fetchTimeout: defaultRateFetchTimeout,
		retryBackoff: defaultRateRetryBackoff,
		now:          time.Now,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

var _ portssvc.RateProviderSvc = (*rateProvider)(nil)

// RefreshRates brings the rate table up to date. Concurrent callers share one refresh.
func (p *rateProvider) RefreshRates(ctx context.Context, force bool) {
	key := "refresh"
	if force {
		key = "refresh:force"
	}
	// The shared refresh must outlive any single caller's cancellation.
	detached := context.WithoutCancel(ctx)
	_, _, _ = p.group.Do(key, func() (interface{}, error) {
		p.refresh(detached, force)
		return nil, nil
	})
}

func (p *rateProvider) refresh(ctx context.Context, force bool) {
	now := p.now()

	if !force {
		p.mu.Lock()
		syncedAt, failedAt := p.syncedAt, p.failedAt
		p.mu.Unlock()

		if !syncedAt.IsZero() && now.Sub(syncedAt) <= p.ttl {
			return
		}

		if snap, err := p.cache.Load(ctx); err == nil && snap.IsFresh(now, p.ttl) {
			p.LogDebug(ctx, "Using cached exchange rates", slog.Time("fetched_at", snap.FetchedAt))
			_ = p.store(ctx, *snap)
			return
		}

		if !failedAt.IsZero() && now.Sub(failedAt) < p.retryBackoff {
			return
		}
	}

	rates, err := p.fetch(ctx)
	if err != nil {
		p.LogWarn(ctx, "Failed to fetch exchange rates, falling back to cache", slog.String("error", err.Error()))
		p.mu.Lock()
		p.failedAt = now
		p.mu.Unlock()
		p.fallback(ctx)
		return
	}

	snap := domain.RateSnapshot{FetchedAt: now.UTC(), Rates: rates}
	if err := p.store(ctx, snap); err != nil {
		return
	}
	p.mu.Lock()
	p.failedAt = time.Time{}
	p.mu.Unlock()

	if err := p.cache.Save(ctx, snap); err != nil {
		p.LogWarn(ctx, "Failed to write exchange rate cache", slog.String("error", err.Error()))
	}
	p.LogInfo(ctx, "Exchange rates refreshed", slog.Int("currencies", len(rates)))
}

func (p *rateProvider) fetch(ctx context.Context) (map[string]decimal.Decimal, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	raw, err := p.source.FetchRates(fetchCtx)
	if err != nil {
		return nil, err
	}
	rates := sanitizeRates(raw)
	if len(rates) == 0 {
		return nil, errEmptyRateTable
	}
	return rates, nil
}

// fallback pushes whatever snapshot the cache holds, however old. With no cache
// the table is left as it is.
func (p *rateProvider) fallback(ctx context.Context) {
	snap, err := p.cache.Load(ctx)
	if err != nil {
		p.LogWarn(ctx, "No exchange rate cache available, keeping current table", slog.String("error", err.Error()))
		return
	}
	_ = p.store(ctx, *snap)
}

func (p *rateProvider) store(ctx context.Context, snap domain.RateSnapshot) error {
	if err := p.rateRepo.ReplaceExchangeRates(ctx, snap.ToExchangeRates(p.baseCurrency)); err != nil {
		p.LogError(ctx, err, "Failed to replace exchange rate table")
		return err
	}
	p.mu.Lock()
	p.syncedAt = snap.FetchedAt
	p.mu.Unlock()
	return nil
}

func sanitizeRates(raw map[string]decimal.Decimal) map[string]decimal.Decimal {
	rates := make(map[string]decimal.Decimal, len(raw))
	for code, rate := range raw {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		rates[code] = rate
	}
	return rates
}
