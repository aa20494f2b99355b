// Package explorer is the caller-facing surface shared by the CLI and the
// HTTP API. It accepts display names, resolves them, runs the metric or series
// computation and returns values rounded to two decimal places.
package explorer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"oxexplorer/internal/analytics"
	"oxexplorer/internal/boundary"
	"oxexplorer/internal/counciltax"
	"oxexplorer/internal/errs"
	"oxexplorer/internal/observability"
	"oxexplorer/internal/resolve"
	"oxexplorer/internal/series"
	"oxexplorer/internal/types"
)

// Store is everything the explorer reads from the relational data source.
type Store interface {
	resolve.Store
	analytics.Store
	series.Store

	Ping(ctx context.Context) error
	WardNames(ctx context.Context) ([]string, error)
	DistrictNames(ctx context.Context) ([]string, error)
	AreaNames(ctx context.Context) ([]string, error)
	TownNames(ctx context.Context) ([]string, error)
	WardsWithPricesSince(ctx context.Context, yearFloor int, districtName string) ([]string, error)
	BroadbandByArea(ctx context.Context, areaID string) (*types.Broadband, error)
	AreaNamesByIDs(ctx context.Context, ids []string) ([]string, error)
}

// Options wires an Explorer. Boundaries may be nil when no shapefile is configured.
type Options struct {
	Store      Store
	XML        counciltax.Source
	Boundaries *boundary.Locator
	Logger     *slog.Logger
	Metrics    *observability.Metrics
	Clock      clockwork.Clock
}

// Explorer runs user-level queries.
type Explorer struct {
	store      Store
	resolver   *resolve.Resolver
	engine     *analytics.Engine
	series     *series.Builder
	tax        *counciltax.Aggregator
	boundaries *boundary.Locator

	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// ErrBoundariesUnavailable is returned by WardAt when no boundary layer is loaded.
var ErrBoundariesUnavailable = errors.New("ward boundaries not configured: set BOUNDARY_PATH")

// New creates an Explorer.
func New(opts Options) *Explorer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Explorer{
		store:      opts.Store,
		resolver:   resolve.New(opts.Store),
		engine:     analytics.NewEngine(opts.Store),
		series:     series.NewBuilder(opts.Store),
		tax:        counciltax.NewAggregator(opts.XML),
		boundaries: opts.Boundaries,
		logger:     logger,
		metrics:    opts.Metrics,
		clock:      clock,
	}
}

// Ping checks the relational store is reachable.
func (e *Explorer) Ping(ctx context.Context) error {
	return e.store.Ping(ctx)
}

// observe times fn and records its outcome. Recoverable errors are logged at
// warn; anything else at error.
func (e *Explorer) observe(op string, attrs []any, fn func() error) error {
	start := e.clock.Now()
	err := fn()
	elapsed := e.clock.Since(start)

	outcome := observability.OutcomeSuccess
	switch {
	case err == nil:
		e.logger.Debug("query completed", append([]any{"operation", op, "duration", elapsed}, attrs...)...)
	case errs.Recoverable(err):
		outcome = observability.OutcomeWarning
		e.logger.Warn("query not answered", append([]any{"operation", op, "error", err}, attrs...)...)
	default:
		outcome = observability.OutcomeError
		e.logger.Error("query failed", append([]any{"operation", op, "error", err}, attrs...)...)
	}

	if e.metrics != nil {
		e.metrics.QueriesTotal.WithLabelValues(op, outcome).Inc()
		e.metrics.QueryDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	}
	return err
}
