// backend-go/internal/cache/dashboard.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sellora/salesboard/backend-go/internal/config"
	"github.com/sellora/salesboard/backend-go/internal/domain"
)

const (
	summaryKeyPrefix  = "dashboard:summary"
	scanBatchSize     = 100
	defaultSummaryTTL = time.Minute
)

// SummaryQuery identifies one cached dashboard summary variant.
type SummaryQuery struct {
	Period      string
	CustomStart string
	CustomEnd   string
	Compare     bool
}

type DashboardSummaryCache interface {
	GetSummary(ctx context.Context, q SummaryQuery) (*domain.DashboardSummary, bool, error)
	SetSummary(ctx context.Context, q SummaryQuery, summary *domain.DashboardSummary) error
	InvalidateAll(ctx context.Context) error
}

type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSummaryCache struct{}

func NewDashboardCache(cfg config.CacheConfig) (DashboardSummaryCache, error) {
	if !cfg.Enabled {
		return &noopSummaryCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.DashboardTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}

	return &redisSummaryCache{client: client, ttl: ttl}, nil
}

func NewNoopDashboardCache() DashboardSummaryCache {
	return &noopSummaryCache{}
}

func (c *redisSummaryCache) GetSummary(ctx context.Context, q SummaryQuery) (*domain.DashboardSummary, bool, error) {
	payload, err := c.client.Get(ctx, buildSummaryKey(q)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summary domain.DashboardSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, false, fmt.Errorf("decode dashboard summary cache: %w", err)
	}

	return &summary, true, nil
}

func (c *redisSummaryCache) SetSummary(ctx context.Context, q SummaryQuery, summary *domain.DashboardSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode dashboard summary cache: %w", err)
	}

	if err := c.client.Set(ctx, buildSummaryKey(q), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

// InvalidateAll drops every cached summary. Called after a refresh so
// stale aggregates never outlive the working set they were computed from.
func (c *redisSummaryCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, summaryKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return nil
}

func (n *noopSummaryCache) GetSummary(ctx context.Context, q SummaryQuery) (*domain.DashboardSummary, bool, error) {
	return nil, false, nil
}

func (n *noopSummaryCache) SetSummary(ctx context.Context, q SummaryQuery, summary *domain.DashboardSummary) error {
	return nil
}

func (n *noopSummaryCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func buildSummaryKey(q SummaryQuery) string {
	parts := []string{"period=" + q.Period}
	if q.CustomStart != "" {
		parts = append(parts, "start="+q.CustomStart)
	}
	if q.CustomEnd != "" {
		parts = append(parts, "end="+q.CustomEnd)
	}
	if q.Compare {
		parts = append(parts, "compare=1")
	}

	raw := strings.Join(parts, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", summaryKeyPrefix, hex.EncodeToString(hash[:]))
}
