package services

import (
	"context"
	"sync"
	"time"

	"github.com/weightlens/weightlens/internal/analytics"
	"github.com/weightlens/weightlens/internal/analytics/goals"
	"github.com/weightlens/weightlens/internal/analytics/pipeline"
	"github.com/weightlens/weightlens/internal/analytics/plateau"
	"github.com/weightlens/weightlens/internal/analytics/regression"
	"github.com/weightlens/weightlens/internal/analytics/snapshot"
	"github.com/weightlens/weightlens/internal/analytics/trendchange"
	"github.com/weightlens/weightlens/internal/analytics/weekly"
	"github.com/weightlens/weightlens/internal/logging"
	"github.com/weightlens/weightlens/internal/metrics"
	"github.com/weightlens/weightlens/internal/source"
	"github.com/weightlens/weightlens/internal/stats"
	"github.com/weightlens/weightlens/internal/store"
)

// AnalysisService owns the enriched dataset and serves every analysis
// view over it. The dataset is replaced wholesale on import; readers
// hold the lock only long enough to copy the slice header, which is
// safe because records are never mutated after enrichment.
type AnalysisService struct {
	logger      *logging.Logger
	source      source.Source
	goalStore   store.GoalStore
	provider    stats.Provider
	calc        goals.Calculator
	pipelineCfg pipeline.Config
	params      snapshot.Params

	mu       sync.RWMutex
	records  []metrics.DailyRecord
	loadedAt time.Time
}

// NewAnalysisService creates a new AnalysisService
func NewAnalysisService(
	logger *logging.Logger,
	src source.Source,
	goalStore store.GoalStore,
	provider stats.Provider,
	pipelineCfg pipeline.Config,
	params snapshot.Params,
) *AnalysisService {
	if provider == nil {
		provider = stats.Unavailable{}
	}
	return &AnalysisService{
		logger:      logger,
		source:      src,
		goalStore:   goalStore,
		provider:    provider,
		calc:        goals.Calculator{},
		pipelineCfg: pipelineCfg.Normalize(),
		params:      params,
	}
}

// LoadFromSource fetches the observation maps from the configured
// source and imports them.
func (s *AnalysisService) LoadFromSource(ctx context.Context) (int, error) {
	if s.source == nil {
		return 0, NewServiceError(CodeSourceFailed, "no data source configured")
	}

	sources, err := s.source.Load(ctx)
	if err != nil {
		s.logger.Error("Source load failed", "error", err)
		return 0, NewServiceErrorWithDetails(CodeSourceFailed, "Failed to load data source",
			map[string]interface{}{"error": err.Error()})
	}

	return s.Import(sources)
}

// Import merges the observation maps, runs the enrichment pipeline and
// swaps the dataset in. Returns the number of daily records.
func (s *AnalysisService) Import(sources metrics.Sources) (int, error) {
	if sources.IsEmpty() {
		return 0, NewServiceError(CodeEmptyImport, "Import contains no observations")
	}

	startTime := time.Now()
	merged := metrics.Merge(sources, s.logger)
	enriched := pipeline.Run(merged, s.pipelineCfg, s.provider)

	s.mu.Lock()
	s.records = enriched
	s.loadedAt = time.Now()
	s.mu.Unlock()

	s.logger.Info("Dataset imported",
		"records", len(enriched),
		"elapsed_ms", time.Since(startTime).Milliseconds())
	return len(enriched), nil
}

// snapshotView returns the current dataset, or a NO_DATA error.
func (s *AnalysisService) snapshotView() ([]metrics.DailyRecord, error) {
	s.mu.RLock()
	records := s.records
	s.mu.RUnlock()

	if len(records) == 0 {
		return nil, NewServiceError(CodeNoData, "No dataset loaded")
	}
	return records, nil
}

// resolveRange validates an optional date range against the dataset.
// A zero range means the full series.
func (s *AnalysisService) resolveRange(records []metrics.DailyRecord, rng analytics.DateRange) (analytics.DateRange, error) {
	if rng.Start.IsZero() && rng.End.IsZero() {
		return analytics.DateRange{Start: records[0].Date, End: records[len(records)-1].Date}, nil
	}
	if rng.Start.IsZero() {
		rng.Start = records[0].Date
	}
	if rng.End.IsZero() {
		rng.End = records[len(records)-1].Date
	}
	if !rng.Valid() {
		return analytics.DateRange{}, NewServiceError(CodeInvalidRange, "Range start must not be after end")
	}
	return rng, nil
}

// Records returns the enriched records inside the range.
func (s *AnalysisService) Records(rng analytics.DateRange) ([]metrics.DailyRecord, error) {
	records, err := s.snapshotView()
	if err != nil {
		return nil, err
	}
	rng, err = s.resolveRange(records, rng)
	if err != nil {
		return nil, err
	}
	return metrics.SliceRange(records, rng.Start, rng.End), nil
}

// LoadedAt reports when the current dataset was imported; zero when
// nothing is loaded.
func (s *AnalysisService) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// SnapshotOptions carries the per-request orchestrator inputs.
type SnapshotOptions struct {
	Range               analytics.DateRange
	RegressionOverride  *analytics.DateRange
	RegressionStartDate *time.Time
}

// Snapshot builds the full named-statistics snapshot for the range,
// joining in the persisted goal.
func (s *AnalysisService) Snapshot(ctx context.Context, opts SnapshotOptions) (snapshot.Snapshot, error) {
	records, err := s.snapshotView()
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	rng, err := s.resolveRange(records, opts.Range)
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	goal, err := s.goalStore.Get(ctx)
	if err != nil {
		s.logger.Error("Goal read failed", "error", err)
		return snapshot.Snapshot{}, NewServiceErrorWithDetails(CodeStoreFailed, "Failed to read goal",
			map[string]interface{}{"error": err.Error()})
	}

	p := s.params
	p.Range = rng
	p.RegressionOverride = opts.RegressionOverride
	p.RegressionStartDate = opts.RegressionStartDate
	p.Goal = goal

	return snapshot.Build(records, p, s.provider, s.calc), nil
}

// Regression fits the trendline over the effective regression range.
func (s *AnalysisService) Regression(opts SnapshotOptions) (regression.Result, error) {
	records, err := s.snapshotView()
	if err != nil {
		return regression.Result{}, err
	}
	rng, err := s.resolveRange(records, opts.Range)
	if err != nil {
		return regression.Result{}, err
	}

	regRange := snapshot.EffectiveRegressionRange(rng, opts.RegressionOverride, opts.RegressionStartDate)
	regOpts := s.params.RegressionOptions
	start := regRange.Start
	regOpts.StartDate = &start

	candidates := regression.CandidatePoints(metrics.SliceRange(records, regRange.Start, regRange.End))
	return regression.Fit(candidates, regOpts, s.provider), nil
}

// Plateaus detects flat runs over the full series and filters them to
// the range.
func (s *AnalysisService) Plateaus(rng analytics.DateRange) ([]plateau.Plateau, error) {
	records, err := s.snapshotView()
	if err != nil {
		return nil, err
	}
	rng, err = s.resolveRange(records, rng)
	if err != nil {
		return nil, err
	}
	return plateau.FilterRange(plateau.Detect(records, s.params.PlateauConfig), rng.Start, rng.End), nil
}

// TrendChanges detects slope shifts over the full series and filters
// them to the range.
func (s *AnalysisService) TrendChanges(rng analytics.DateRange) ([]trendchange.ChangePoint, error) {
	records, err := s.snapshotView()
	if err != nil {
		return nil, err
	}
	rng, err = s.resolveRange(records, rng)
	if err != nil {
		return nil, err
	}
	return trendchange.FilterRange(trendchange.Detect(records, s.params.TrendChangeConfig), rng.Start, rng.End), nil
}

// WeeklyResult pairs the weekly table with its correlation.
type WeeklyResult struct {
	Weeks       []weekly.Stat `json:"weeks"`
	Correlation *float64      `json:"netCalRateCorrelation"`
}

// Weekly aggregates calendar weeks inside the range. The table and the
// correlation apply different valid-day gates.
func (s *AnalysisService) Weekly(rng analytics.DateRange) (WeeklyResult, error) {
	records, err := s.snapshotView()
	if err != nil {
		return WeeklyResult{}, err
	}
	rng, err = s.resolveRange(records, rng)
	if err != nil {
		return WeeklyResult{}, err
	}

	ranged := metrics.SliceRange(records, rng.Start, rng.End)
	weeks := weekly.Aggregate(ranged, s.params.MinValidDaysTable)
	corr := weekly.Correlation(weekly.Aggregate(ranged, s.params.MinValidDaysCorrelation), s.provider)
	return WeeklyResult{Weeks: weeks, Correlation: corr}, nil
}

// Goal reads the persisted goal.
func (s *AnalysisService) Goal(ctx context.Context) (metrics.Goal, error) {
	goal, err := s.goalStore.Get(ctx)
	if err != nil {
		return metrics.Goal{}, NewServiceErrorWithDetails(CodeStoreFailed, "Failed to read goal",
			map[string]interface{}{"error": err.Error()})
	}
	return goal, nil
}

// SetGoal validates and persists the goal.
func (s *AnalysisService) SetGoal(ctx context.Context, goal metrics.Goal) error {
	if err := goal.Validate(); err != nil {
		return NewServiceErrorWithDetails(CodeInvalidGoal, "Goal date must be YYYY-MM-DD",
			map[string]interface{}{"error": err.Error()})
	}
	if err := s.goalStore.Put(ctx, goal); err != nil {
		return NewServiceErrorWithDetails(CodeStoreFailed, "Failed to store goal",
			map[string]interface{}{"error": err.Error()})
	}
	return nil
}
