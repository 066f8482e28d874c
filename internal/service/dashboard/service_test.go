package dashboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/platform"
	dashboardsvc "backoffice/internal/service/dashboard"
	appErr "backoffice/pkg/errors"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
	sets int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
	return nil
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}

func (brokenCache) Set(context.Context, string, string, time.Duration) error {
	return errors.New("connection refused")
}

var assets = []map[string]any{
	{"symbol": "BTC", "availableAmount": "0.5", "totalAmount": "1", "blockedAmount": "0.1", "allocatedAmount": "0", "exchangeRate": "30000"},
	{"symbol": "USDT", "availableAmount": "1000.10", "totalAmount": "7234.77", "blockedAmount": "0", "allocatedAmount": "0", "exchangeRate": "1"},
}

func newUpstream(t *testing.T) *platform.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/wallet/assets":
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": assets})
		case "/affiliate/stats":
			_ = json.NewEncoder(w).Encode(map[string]any{"clicks": 400, "registrations": 50, "depositors": 0})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return platform.NewClient(config.PlatformConfig{BaseURL: srv.URL})
}

func TestAssetTotalDefaultsToTotalAmount(t *testing.T) {
	svc := dashboardsvc.NewService(newUpstream(t), nil, time.Minute)

	res, err := svc.AssetTotal(context.Background(), "")
	if err != nil {
		t.Fatalf("asset total failed: %v", err)
	}
	if res.Property != "totalAmount" {
		t.Fatalf("expected totalAmount, got %q", res.Property)
	}
	if res.Formatted != "$37,234.77" {
		t.Fatalf("unexpected total %q", res.Formatted)
	}
	if res.Cached {
		t.Fatalf("nothing should be cached without a cache")
	}
}

func TestAssetTotalIsMemoized(t *testing.T) {
	cache := newMemoryCache()
	svc := dashboardsvc.NewService(newUpstream(t), cache, time.Minute)
	ctx := context.Background()

	first, err := svc.AssetTotal(ctx, "availableAmount")
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if first.Cached {
		t.Fatalf("first call cannot be a cache hit")
	}
	if first.Formatted != "$16,000.10" {
		t.Fatalf("unexpected total %q", first.Formatted)
	}

	second, err := svc.AssetTotal(ctx, "availableAmount")
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if !second.Cached {
		t.Fatalf("expected second call to hit the cache")
	}
	if !second.Total.Equal(first.Total) {
		t.Fatalf("cached total %s differs from %s", second.Total, first.Total)
	}
	if cache.sets != 1 {
		t.Fatalf("expected a single cache write, got %d", cache.sets)
	}

	other, err := svc.AssetTotal(ctx, "blockedAmount")
	if err != nil {
		t.Fatalf("blocked amount failed: %v", err)
	}
	if other.Cached {
		t.Fatalf("a different property must not share the cache entry")
	}
}

func TestAssetTotalSurvivesCacheOutage(t *testing.T) {
	svc := dashboardsvc.NewService(newUpstream(t), brokenCache{}, time.Minute)

	res, err := svc.AssetTotal(context.Background(), "totalAmount")
	if err != nil {
		t.Fatalf("cache errors must not fail the request: %v", err)
	}
	if res.Cached || res.Formatted != "$37,234.77" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestAssetTotalRejectsUnknownProperty(t *testing.T) {
	svc := dashboardsvc.NewService(newUpstream(t), nil, time.Minute)

	_, err := svc.AssetTotal(context.Background(), "exchangeRate")
	if !errors.Is(err, appErr.ErrInvalidProperty) {
		t.Fatalf("expected invalid property error, got %v", err)
	}
}

func TestReferrals(t *testing.T) {
	svc := dashboardsvc.NewService(newUpstream(t), nil, time.Minute)

	res, err := svc.Referrals(context.Background())
	if err != nil {
		t.Fatalf("referrals failed: %v", err)
	}
	if res.RegistrationRate.String() != "12.5" {
		t.Fatalf("expected 12.5%% registration rate, got %s", res.RegistrationRate)
	}
	if !res.DepositRate.IsZero() {
		t.Fatalf("expected zero deposit rate, got %s", res.DepositRate)
	}
}

func TestOverviewCoversEveryProperty(t *testing.T) {
	cache := newMemoryCache()
	svc := dashboardsvc.NewService(newUpstream(t), cache, time.Minute)

	res, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if len(res.Assets) != 4 {
		t.Fatalf("expected four asset totals, got %d", len(res.Assets))
	}
	if res.Assets["totalAmount"].Formatted != "$37,234.77" {
		t.Fatalf("unexpected total %q", res.Assets["totalAmount"].Formatted)
	}
	if res.Assets["allocatedAmount"].Formatted != "$0.00" {
		t.Fatalf("unexpected allocated total %q", res.Assets["allocatedAmount"].Formatted)
	}
	if res.Referrals == nil || res.Referrals.Clicks != 400 {
		t.Fatalf("missing referral funnel: %+v", res.Referrals)
	}

	total, err := svc.AssetTotal(context.Background(), "totalAmount")
	if err != nil {
		t.Fatalf("asset total failed: %v", err)
	}
	if !total.Cached {
		t.Fatalf("overview should have warmed the cache")
	}
}
