// backend-go/internal/service/dashboard_service.go
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sellora/salesboard/backend-go/internal/aggregate"
	"github.com/sellora/salesboard/backend-go/internal/cache"
	"github.com/sellora/salesboard/backend-go/internal/config"
	"github.com/sellora/salesboard/backend-go/internal/domain"
	"github.com/sellora/salesboard/backend-go/internal/mapping"
	"github.com/sellora/salesboard/backend-go/internal/normalize"
	"github.com/sellora/salesboard/backend-go/internal/period"
	"github.com/sellora/salesboard/backend-go/internal/sheets"
	"golang.org/x/sync/errgroup"
)

// PeriodQuery is the parsed period selection shared by every dashboard
// endpoint.
type PeriodQuery struct {
	Token   period.Token
	Start   *time.Time
	End     *time.Time
	Compare bool
}

// ParsePeriodQuery validates raw query strings into a PeriodQuery.
// Custom bounds use the 2006-01-02 form.
func ParsePeriodQuery(tokenStr, startStr, endStr string, compare bool) (PeriodQuery, error) {
	if tokenStr == "" {
		tokenStr = string(period.TokenThisMonth)
	}
	token, err := period.ParseToken(tokenStr)
	if err != nil {
		return PeriodQuery{}, err
	}

	q := PeriodQuery{Token: token, Compare: compare}

	parseBound := func(s string) (*time.Time, error) {
		if s == "" {
			return nil, nil
		}
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", domain.ErrInvalidPeriod, s)
		}
		return &t, nil
	}

	if q.Start, err = parseBound(startStr); err != nil {
		return PeriodQuery{}, err
	}
	if q.End, err = parseBound(endStr); err != nil {
		return PeriodQuery{}, err
	}

	return q, nil
}

// DashboardService owns the in-memory working set: it refreshes raw rows
// from the source, normalizes them once, and serves every aggregate view
// from the resulting snapshot.
type DashboardService struct {
	source    sheets.Source
	store     *mapping.Store
	calc      *period.Calculator
	cache     cache.DashboardSummaryCache
	dashboard config.DashboardConfig

	mu          sync.RWMutex
	records     []domain.SalesRecord
	report      domain.BatchReport
	lastRefresh time.Time
}

func NewDashboardService(
	source sheets.Source,
	store *mapping.Store,
	calc *period.Calculator,
	cacheImpl cache.DashboardSummaryCache,
	dashboard config.DashboardConfig,
) *DashboardService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &DashboardService{
		source:    source,
		store:     store,
		calc:      calc,
		cache:     cacheImpl,
		dashboard: dashboard,
	}
}

// Refresh re-derives the working set: reload the mapping/commission
// snapshot, fetch the three channel exports concurrently, and normalize
// against the snapshot taken at the start of the pass.
func (s *DashboardService) Refresh(ctx context.Context) (domain.BatchReport, error) {
	tables, err := s.source.FetchTables(ctx)
	if err != nil {
		return domain.BatchReport{}, fmt.Errorf("refresh tables: %w", err)
	}
	s.store.Swap(tables)

	normalizer := normalize.New(s.store.Snapshot())

	var (
		resultMu sync.Mutex
		records  []domain.SalesRecord
		report   domain.BatchReport
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, ch := range domain.Channels {
		ch := ch
		g.Go(func() error {
			rows, err := s.source.FetchChannelRows(gctx, ch)
			if err != nil {
				return err
			}
			recs, rep := normalizer.NormalizeBatch(rows, ch)

			resultMu.Lock()
			records = append(records, recs...)
			report.Add(rep)
			resultMu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.BatchReport{}, fmt.Errorf("refresh channel rows: %w", err)
	}

	s.mu.Lock()
	s.records = records
	s.report = report
	s.lastRefresh = time.Now()
	s.mu.Unlock()

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache invalidation failed")
	}

	log.Info().
		Int("records", len(records)).
		Int("dropped", report.Dropped).
		Int("unmapped", report.Unmapped).
		Msg("dashboard working set refreshed")

	return report, nil
}

// workingSet returns the current snapshot, loading it on first use.
func (s *DashboardService) workingSet(ctx context.Context) ([]domain.SalesRecord, domain.BatchReport, error) {
	s.mu.RLock()
	loaded := !s.lastRefresh.IsZero()
	records, report := s.records, s.report
	s.mu.RUnlock()

	if loaded {
		return records, report, nil
	}

	if _, err := s.Refresh(ctx); err != nil {
		return nil, domain.BatchReport{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records, s.report, nil
}

func (s *DashboardService) resolveWindow(q PeriodQuery) (domain.PeriodWindow, error) {
	return s.calc.Resolve(q.Token, q.Start, q.End)
}

// Summary builds the headline view, with growth against the comparable
// previous period when requested. Cache-aside on the full payload.
func (s *DashboardService) Summary(ctx context.Context, q PeriodQuery) (*domain.DashboardSummary, error) {
	cacheQuery := summaryCacheQuery(q)
	if summary, ok, err := s.cache.GetSummary(ctx, cacheQuery); err == nil && ok {
		return summary, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("dashboard: cache get summary failed")
	}

	window, err := s.resolveWindow(q)
	if err != nil {
		return nil, err
	}

	records, report, err := s.workingSet(ctx)
	if err != nil {
		return nil, err
	}

	current := aggregate.FilterWindow(records, window)
	summary := &domain.DashboardSummary{
		Window:      window,
		Totals:      aggregate.Totals(current),
		ByChannel:   aggregate.ByChannel(current),
		DataQuality: report,
	}

	if q.Compare {
		if prevWindow, ok := s.calc.Previous(window, q.Token); ok {
			prevTotals := aggregate.Totals(aggregate.FilterWindow(records, prevWindow))
			growth := aggregate.Compare(summary.Totals, prevTotals)
			summary.Growth = &growth
		}
		// "all" has no baseline; Growth stays nil rather than zeroed.
	}

	if err := s.cache.SetSummary(ctx, cacheQuery, summary); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache set summary failed")
	}

	return summary, nil
}

// Products returns the commission-adjusted product rollups for the window.
func (s *DashboardService) Products(ctx context.Context, q PeriodQuery) ([]domain.ProductRollup, error) {
	window, err := s.resolveWindow(q)
	if err != nil {
		return nil, err
	}

	records, _, err := s.workingSet(ctx)
	if err != nil {
		return nil, err
	}

	return aggregate.ByProduct(aggregate.FilterWindow(records, window), s.store.Snapshot()), nil
}

// Channels returns the channel breakdown plus the configured display split
// of smartstore revenue into ads/organic sub-channels.
func (s *DashboardService) Channels(ctx context.Context, q PeriodQuery) (*domain.ChannelBreakdown, error) {
	window, err := s.resolveWindow(q)
	if err != nil {
		return nil, err
	}

	records, _, err := s.workingSet(ctx)
	if err != nil {
		return nil, err
	}

	rollups := aggregate.ByChannel(aggregate.FilterWindow(records, window))
	breakdown := &domain.ChannelBreakdown{Channels: rollups}

	for _, roll := range rollups {
		if roll.Channel != domain.ChannelSmartstore {
			continue
		}
		breakdown.SmartstoreSplit = []domain.SubChannelSplit{
			{Name: "ads", Pct: s.dashboard.RevenueSplitAds, Sales: roll.Sales * s.dashboard.RevenueSplitAds / 100},
			{Name: "organic", Pct: s.dashboard.RevenueSplitOrganic, Sales: roll.Sales * s.dashboard.RevenueSplitOrganic / 100},
		}
	}

	return breakdown, nil
}

// Series returns the dense chart series for the window.
func (s *DashboardService) Series(ctx context.Context, q PeriodQuery, g domain.Granularity) ([]domain.Bucket, error) {
	switch g {
	case domain.GranularityDay, domain.GranularityWeek, domain.GranularityMonth:
	default:
		g = domain.GranularityDay
	}

	window, err := s.resolveWindow(q)
	if err != nil {
		return nil, err
	}

	records, _, err := s.workingSet(ctx)
	if err != nil {
		return nil, err
	}

	return aggregate.TimeSeries(aggregate.FilterWindow(records, window), g, window), nil
}

// Cohorts returns repurchase cohort statistics for the window.
func (s *DashboardService) Cohorts(ctx context.Context, q PeriodQuery) (*domain.RepurchaseCohorts, error) {
	window, err := s.resolveWindow(q)
	if err != nil {
		return nil, err
	}

	records, _, err := s.workingSet(ctx)
	if err != nil {
		return nil, err
	}

	cohorts := aggregate.RepurchaseCohorts(aggregate.FilterWindow(records, window))
	return &cohorts, nil
}

// LastRefresh reports when the working set was last derived.
func (s *DashboardService) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh
}

func summaryCacheQuery(q PeriodQuery) cache.SummaryQuery {
	cq := cache.SummaryQuery{Period: string(q.Token), Compare: q.Compare}
	if q.Start != nil {
		cq.CustomStart = q.Start.Format("2006-01-02")
	}
	if q.End != nil {
		cq.CustomEnd = q.End.Format("2006-01-02")
	}
	return cq
}
