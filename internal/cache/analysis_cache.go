package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vacayzen/product-recommendation/internal/config"
	"github.com/vacayzen/product-recommendation/internal/domain"
)

const (
	analysisKeyPrefix = "recommendation:analysis"
	scanBatchSize     = 100
)

// AnalysisCache memoizes analyses by dataset fingerprint and request.
type AnalysisCache interface {
	Get(ctx context.Context, fingerprint string, req domain.AnalysisRequest) (*domain.Analysis, bool, error)
	Set(ctx context.Context, fingerprint string, req domain.AnalysisRequest, analysis *domain.Analysis) error
	InvalidateAll(ctx context.Context) error
}

type redisAnalysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAnalysisCache struct{}

func NewAnalysisCache(cfg config.CacheConfig) (AnalysisCache, error) {
	if !cfg.Enabled {
		return &noopAnalysisCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisAnalysisCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopAnalysisCache() AnalysisCache {
	return &noopAnalysisCache{}
}

func (c *redisAnalysisCache) Get(ctx context.Context, fingerprint string, req domain.AnalysisRequest) (*domain.Analysis, bool, error) {
	payload, err := c.client.Get(ctx, BuildAnalysisKey(fingerprint, req)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var analysis domain.Analysis
	if err := json.Unmarshal(payload, &analysis); err != nil {
		return nil, false, fmt.Errorf("decode analysis cache: %w", err)
	}

	return &analysis, true, nil
}

func (c *redisAnalysisCache) Set(ctx context.Context, fingerprint string, req domain.AnalysisRequest, analysis *domain.Analysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("encode analysis cache: %w", err)
	}

	if err := c.client.Set(ctx, BuildAnalysisKey(fingerprint, req), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisAnalysisCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, analysisKeyPrefix, scanBatchSize)
}

func (n *noopAnalysisCache) Get(ctx context.Context, fingerprint string, req domain.AnalysisRequest) (*domain.Analysis, bool, error) {
	return nil, false, nil
}

func (n *noopAnalysisCache) Set(ctx context.Context, fingerprint string, req domain.AnalysisRequest, analysis *domain.Analysis) error {
	return nil
}

func (n *noopAnalysisCache) InvalidateAll(ctx context.Context) error {
	return nil
}

// BuildAnalysisKey hashes the dataset fingerprint with every request scalar.
func BuildAnalysisKey(fingerprint string, req domain.AnalysisRequest) string {
	acquire := "table"
	if req.AcquireCost != nil {
		acquire = req.AcquireCost.String()
	}

	parts := []string{
		"dataset=" + fingerprint,
		"category=" + req.Category,
		"asset=" + req.Asset,
		"start=" + req.Start.Format("2006-01-02"),
		"end=" + req.End.Format("2006-01-02"),
		"rate=" + req.RentalRate.String(),
		"acquire=" + acquire,
	}

	raw := strings.Join(parts, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", analysisKeyPrefix, hex.EncodeToString(hash[:]))
}
