package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/vacayzen/product-recommendation/internal/cache"
	"github.com/vacayzen/product-recommendation/internal/domain"
	"github.com/vacayzen/product-recommendation/internal/ingest"
	"github.com/vacayzen/product-recommendation/internal/pipeline/recommendation"
)

// DatasetLoader loads the input tables.
type DatasetLoader interface {
	Load(ctx context.Context, src ingest.DatasetSources) (*domain.Dataset, string, error)
	LoadReservations(ctx context.Context, src ingest.Source) ([]domain.ReservationRecord, error)
}

type RecommendationService struct {
	loader   DatasetLoader
	pipeline *recommendation.Pipeline
	cache    cache.AnalysisCache
}

func NewRecommendationService(loader DatasetLoader, pipeline *recommendation.Pipeline, cacheImpl cache.AnalysisCache) *RecommendationService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopAnalysisCache()
	}
	return &RecommendationService{loader: loader, pipeline: pipeline, cache: cacheImpl}
}

// Analyze loads the dataset and computes the analysis for req, consulting the
// cache by dataset fingerprint first.
func (s *RecommendationService) Analyze(ctx context.Context, src ingest.DatasetSources, req domain.AnalysisRequest) (*domain.Analysis, error) {
	if err := s.pipeline.Validate(req); err != nil {
		return nil, err
	}

	ds, fingerprint, err := s.loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}

	if analysis, ok, err := s.cache.Get(ctx, fingerprint, req); err == nil && ok {
		log.Debug().Str("asset", req.Asset).Msg("recommendation: cache hit")
		return analysis, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("recommendation: cache get failed")
	}

	analysis, err := s.pipeline.Run(ctx, ds, req)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, fingerprint, req, analysis); err != nil {
		log.Warn().Err(err).Msg("recommendation: cache set failed")
	}

	return analysis, nil
}

// Options loads only the rentals table and lists its categories and assets.
func (s *RecommendationService) Options(ctx context.Context, rentals ingest.Source) (domain.AssetOptions, error) {
	records, err := s.loader.LoadReservations(ctx, rentals)
	if err != nil {
		return domain.AssetOptions{}, err
	}
	return s.pipeline.Options(&domain.Dataset{Reservations: records}), nil
}
