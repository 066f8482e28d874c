package dashboard

import (
	"context"
	"fmt"
	"time"

	"backoffice/internal/metrics"
	"backoffice/internal/platform"
	"backoffice/internal/schema"
	"backoffice/pkg/logger"
	"backoffice/pkg/requestid"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Cache is the string store asset totals are memoized in. A nil Cache turns
// memoization off.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type Service struct {
	client *platform.Client
	cache  Cache
	ttl    time.Duration
}

func NewService(client *platform.Client, cache Cache, ttl time.Duration) *Service {
	return &Service{client: client, cache: cache, ttl: ttl}
}

type AssetTotal struct {
	Property  string          `json:"property"`
	Total     decimal.Decimal `json:"total"`
	Formatted string          `json:"formatted"`
	Assets    int             `json:"assets"`
	Cached    bool            `json:"cached"`
}

type ReferralSummary struct {
	schema.ReferralStats
	// RegistrationRate is registrations per click, DepositRate depositors per
	// registration, both as percentages.
	RegistrationRate decimal.Decimal `json:"registrationRate"`
	DepositRate      decimal.Decimal `json:"depositRate"`
}

// AssetTotal values every treasury asset at its exchange rate and sums the
// chosen balance. An empty property means totalAmount.
func (s *Service) AssetTotal(ctx context.Context, property string) (*AssetTotal, error) {
	if property == "" {
		property = string(metrics.TotalAmount)
	}
	prop, err := metrics.ParseAssetProperty(property)
	if err != nil {
		return nil, err
	}

	assets, err := s.client.ListAssets(ctx)
	if err != nil {
		return nil, err
	}
	return s.total(ctx, prop, assets)
}

// Overview is every asset total plus the referral funnel, fetched in parallel.
type Overview struct {
	Assets    map[string]*AssetTotal `json:"assets"`
	Referrals *ReferralSummary       `json:"referrals"`
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	var (
		assets    []schema.CryptoAsset
		referrals *ReferralSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assets, err = s.client.ListAssets(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		referrals, err = s.Referrals(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Overview{Assets: make(map[string]*AssetTotal, len(metrics.AssetProperties)), Referrals: referrals}
	for _, prop := range metrics.AssetProperties {
		total, err := s.total(ctx, prop, assets)
		if err != nil {
			return nil, err
		}
		out.Assets[string(prop)] = total
	}
	return out, nil
}

func (s *Service) total(ctx context.Context, prop metrics.AssetProperty, assets []schema.CryptoAsset) (*AssetTotal, error) {
	result := &AssetTotal{Property: string(prop), Assets: len(assets)}

	key := s.cacheKey(ctx, prop, assets)
	if total, ok := s.lookup(ctx, key); ok {
		result.Total = total
		result.Formatted = metrics.FormatCurrency(total)
		result.Cached = true
		return result, nil
	}

	total, err := metrics.TotalAssetValue(assets, prop)
	if err != nil {
		return nil, err
	}
	result.Total = total
	result.Formatted = metrics.FormatCurrency(total)
	s.store(ctx, key, total)
	return result, nil
}

func (s *Service) Referrals(ctx context.Context) (*ReferralSummary, error) {
	stats, err := s.client.GetReferralStats(ctx)
	if err != nil {
		return nil, err
	}
	return &ReferralSummary{
		ReferralStats:    *stats,
		RegistrationRate: metrics.ConversionRate(stats.Registrations, stats.Clicks),
		DepositRate:      metrics.ConversionRate(stats.Depositors, stats.Registrations),
	}, nil
}

func (s *Service) cacheKey(ctx context.Context, prop metrics.AssetProperty, assets []schema.CryptoAsset) string {
	if s.cache == nil {
		return ""
	}
	fp, err := metrics.Fingerprint(assets)
	if err != nil {
		logger.With(requestid.FromContext(ctx)).Warn("failed to fingerprint assets", zap.Error(err))
		return ""
	}
	return fmt.Sprintf("metrics:assets:%s:%s", prop, fp)
}

func (s *Service) lookup(ctx context.Context, key string) (decimal.Decimal, bool) {
	if key == "" {
		return decimal.Zero, false
	}
	val, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.With(requestid.FromContext(ctx)).Warn("metric cache read failed", zap.String("key", key), zap.Error(err))
		return decimal.Zero, false
	}
	if !ok {
		return decimal.Zero, false
	}
	total, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false
	}
	return total, true
}

func (s *Service) store(ctx context.Context, key string, total decimal.Decimal) {
	if key == "" {
		return
	}
	if err := s.cache.Set(ctx, key, total.String(), s.ttl); err != nil {
		logger.With(requestid.FromContext(ctx)).Warn("metric cache write failed", zap.String("key", key), zap.Error(err))
	}
}
