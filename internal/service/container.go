package service

import (
	"context"

	"backoffice/internal/config"
	"backoffice/internal/platform"
	"backoffice/internal/repo"
	"backoffice/internal/service/audit"
	"backoffice/internal/service/bonus"
	"backoffice/internal/service/cashback"
	"backoffice/internal/service/dashboard"
	"backoffice/internal/service/operator"
	"backoffice/internal/service/search"
	"backoffice/internal/service/tier"
	"backoffice/internal/service/wagerrace"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Platform  *platform.Client
	Audit     *audit.Service
	Operator  *operator.Service
	Cashback  *cashback.Service
	WagerRace *wagerrace.Service
	Bonus     *bonus.Service
	Tier      *tier.Service
	Dashboard *dashboard.Service
	Search    *search.Service
}

// NewContainer wires every service. rdb may be nil.
func NewContainer(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *Container {
	client := platform.NewClient(cfg.Platform)
	auditor := audit.NewService(db)

	var cache dashboard.Cache
	if rdb != nil {
		cache = repo.NewRedisCache(rdb)
	}

	return &Container{
		Platform:  client,
		Audit:     auditor,
		Operator:  operator.NewService(db),
		Cashback:  cashback.NewService(client, auditor),
		WagerRace: wagerrace.NewService(client, auditor),
		Bonus:     bonus.NewService(client, auditor),
		Tier:      tier.NewService(client, auditor),
		Dashboard: dashboard.NewService(client, cache, cfg.Metrics.CacheTTL()),
		Search:    search.NewService(client, cfg.Search.Debounce(), cfg.Search.PageSize),
	}
}

func (c *Container) Start(ctx context.Context) error {
	return c.Operator.EnsureDefaultOperator(ctx)
}
