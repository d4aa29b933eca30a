package recommendation

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vacayzen/product-recommendation/internal/domain"
)

// Pipeline runs the recommendation computation for one asset:
// filter -> demand curve -> utilization curve -> priced rows -> summary.
type Pipeline struct {
	config Config
}

// NewPipeline creates a new recommendation pipeline instance.
func NewPipeline(cfg Config) *Pipeline {
	if cfg.CancelledStage == "" {
		cfg.CancelledStage = CancelledStage
	}
	return &Pipeline{config: cfg}
}

// Name returns the unique identifier of this pipeline.
func (p *Pipeline) Name() string {
	return "recommendation"
}

// Validate checks the request scalars before any computation.
func (p *Pipeline) Validate(req domain.AnalysisRequest) error {
	if strings.TrimSpace(req.Category) == "" {
		return domain.ErrUnknownCategory
	}
	if strings.TrimSpace(req.Asset) == "" {
		return domain.ErrUnknownAsset
	}
	if Day(req.End).Before(Day(req.Start)) {
		return domain.ErrInvalidDateRange
	}
	if req.RentalRate.IsNegative() {
		return domain.ErrNegativeRate
	}
	return nil
}

// Run computes the analysis for the requested asset over the dataset.
func (p *Pipeline) Run(ctx context.Context, ds *domain.Dataset, req domain.AnalysisRequest) (*domain.Analysis, error) {
	if err := p.Validate(req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ds == nil {
		ds = &domain.Dataset{}
	}

	started := time.Now()
	start, end := Day(req.Start), Day(req.End)

	// 1) Narrow rental lines to the asset
	filtered := filterReservations(ds.Reservations, req.Category, req.Asset, p.config.CancelledStage)

	// 2) Daily concurrent demand
	demand, err := BuildDemandCurve(filtered, start, end)
	if err != nil {
		return nil, err
	}

	// 3) Days at or above each level
	utilization := AggregateUtilization(demand)

	// 4) Unit economics
	acquireCost, costSource := ResolveAcquireCost(ds.Costs, req.Asset, req.AcquireCost)
	rows := Calculate(utilization, req.RentalRate, acquireCost)

	inventory, hasInventory := CurrentInventory(ds.Inventory, req.Asset)
	summary := Summarize(rows, inventory)

	analysis := &domain.Analysis{
		Category:     req.Category,
		Asset:        req.Asset,
		Start:        start,
		End:          end,
		RentalRate:   req.RentalRate,
		AcquireCost:  acquireCost,
		CostSource:   costSource,
		Reservations: len(filtered),
		Demand:       demand,
		Rows:         rows,
		Summary:      summary,
		Conditions:   make([]domain.Condition, 0),
	}

	if _, err := MaxLevel(demand); err != nil {
		analysis.Conditions = append(analysis.Conditions, domain.NewCondition(domain.ConditionEmptyDomain))
	} else if _, err := summary.RecommendedLevel(); err != nil {
		analysis.Conditions = append(analysis.Conditions, domain.NewCondition(domain.ConditionNoProfitableLevel))
	}
	if costSource == domain.CostSourceDefault {
		analysis.Conditions = append(analysis.Conditions, domain.NewCondition(domain.ConditionNoMatchingCostRecord))
	}
	if !hasInventory {
		analysis.Conditions = append(analysis.Conditions, domain.NewCondition(domain.ConditionNoInventoryRecord))
	}

	log.Info().
		Str("pipeline", p.Name()).
		Str("category", req.Category).
		Str("asset", req.Asset).
		Int("reservations", len(filtered)).
		Int("days", len(demand)).
		Int("levels", len(rows)).
		Str("acquire_cost", acquireCost.String()).
		Str("cost_source", string(costSource)).
		Dur("elapsed", time.Since(started)).
		Msg("recommendation computed")

	return analysis, nil
}

// Options lists selectable categories and assets of the dataset.
func (p *Pipeline) Options(ds *domain.Dataset) domain.AssetOptions {
	if ds == nil {
		return Options(nil)
	}
	return Options(ds.Reservations)
}
