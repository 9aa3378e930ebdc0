package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/planwise/ibp-backend/internal/config"
	"github.com/planwise/ibp-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const planningKPIKey = "planning:kpis"

// PlanningCache holds the KPI rollup between page views. Every write to the
// product or history tables invalidates it. The noop implementation keeps the
// service layer oblivious to whether redis is configured.
type PlanningCache interface {
	GetKPIs(ctx context.Context) ([]domain.KPIRow, bool, error)
	SetKPIs(ctx context.Context, rows []domain.KPIRow) error
	Invalidate(ctx context.Context) error
}

type redisPlanningCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopPlanningCache struct{}

func NewPlanningCache(cfg config.CacheConfig) (PlanningCache, error) {
	if !cfg.Enabled {
		return &noopPlanningCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisPlanningCache{client: client, ttl: ttl}, nil
}

func NewNoopPlanningCache() PlanningCache {
	return &noopPlanningCache{}
}

func (c *redisPlanningCache) GetKPIs(ctx context.Context) ([]domain.KPIRow, bool, error) {
	payload, err := c.client.Get(ctx, planningKPIKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var rows []domain.KPIRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, false, fmt.Errorf("decode planning kpi cache: %w", err)
	}

	return rows, true, nil
}

func (c *redisPlanningCache) SetKPIs(ctx context.Context, rows []domain.KPIRow) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode planning kpi cache: %w", err)
	}

	if err := c.client.Set(ctx, planningKPIKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisPlanningCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, planningKPIKey).Err()
}

func (n *noopPlanningCache) GetKPIs(ctx context.Context) ([]domain.KPIRow, bool, error) {
	return nil, false, nil
}

func (n *noopPlanningCache) SetKPIs(ctx context.Context, rows []domain.KPIRow) error {
	return nil
}

func (n *noopPlanningCache) Invalidate(ctx context.Context) error {
	return nil
}
