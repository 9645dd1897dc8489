package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"retail-dashboard/internal/dataset"
	"retail-dashboard/internal/models"
	"retail-dashboard/internal/observability"
)

const (
	defaultViewTTL     = 5 * time.Minute
	defaultPreviewRows = 20
)

type Options struct {
	ViewTTL     time.Duration
	PreviewRows int
	Logger      *slog.Logger
}

// Analytics serves dashboard views over the shared dataset. Views are
// memoized per selection; the dataset itself is never copied or changed.
type Analytics struct {
	mu          sync.RWMutex
	source      *dataset.Source
	generation  uint64
	views       *cache.Cache
	group       singleflight.Group
	previewRows int
	logger      *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

func NewAnalytics(source *dataset.Source, opts Options) *Analytics {
	if opts.ViewTTL <= 0 {
		opts.ViewTTL = defaultViewTTL
	}
	if opts.PreviewRows <= 0 {
		opts.PreviewRows = defaultPreviewRows
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Analytics{
		source:      source,
		views:       cache.New(opts.ViewTTL, 2*opts.ViewTTL),
		previewRows: opts.PreviewRows,
		logger:      opts.Logger,
	}
}

// SetData swaps in an in-memory dataset and drops cached views. Views built
// from the previous dataset are keyed by its generation and never served
// again, even when their build finishes after the swap.
func (a *Analytics) SetData(records []models.Record) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.source = dataset.StaticSource(dataset.FromRecords(records))
	a.generation++
	a.views.Flush()
}

func (a *Analytics) snapshot() (*dataset.Source, uint64) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.source, a.generation
}

func loadFrom(ctx context.Context, src *dataset.Source) (*dataset.Dataset, error) {
	if src == nil {
		return nil, fmt.Errorf("analytics: no dataset source configured")
	}
	return src.Load(ctx)
}

func (a *Analytics) dataset(ctx context.Context) (*dataset.Dataset, error) {
	src, _ := a.snapshot()
	return loadFrom(ctx, src)
}

func viewKey(generation uint64, sel models.Selection) string {
	return fmt.Sprintf("%d|%s", generation, sel.Key())
}

// Load forces the dataset to be read. Callers use it to fail fast at startup.
func (a *Analytics) Load(ctx context.Context) error {
	_, err := a.dataset(ctx)
	return err
}

func (a *Analytics) Dashboard(ctx context.Context, sel models.Selection) (*models.Dashboard, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	ctx, span := observability.StartSpan(ctx, "analytics.dashboard")
	defer func() {
		span.Finish()
		a.logger.Debug("dashboard view", "span", span)
	}()

	src, gen := a.snapshot()
	key := viewKey(gen, sel)
	span.SetTag("selection", sel.Key())

	if v, ok := a.views.Get(key); ok {
		a.hits.Add(1)
		span.SetTag("cache", "hit")
		return v.(*models.Dashboard), nil
	}
	a.misses.Add(1)
	span.SetTag("cache", "miss")

	v, err, shared := a.group.Do(key, func() (any, error) {
		ds, err := loadFrom(ctx, src)
		if err != nil {
			return nil, err
		}
		view := BuildDashboard(ds.Records(), sel)
		a.views.Set(key, view, cache.DefaultExpiration)
		return view, nil
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	if shared {
		span.SetTag("shared", "true")
	}
	return v.(*models.Dashboard), nil
}

func (a *Analytics) Options(ctx context.Context) (models.FilterOptions, error) {
	ds, err := a.dataset(ctx)
	if err != nil {
		return models.FilterOptions{}, err
	}
	return FilterOptions(ds.Records()), nil
}

// Preview returns the first rows of the full, unfiltered dataset.
func (a *Analytics) Preview(ctx context.Context) ([]models.Record, error) {
	ds, err := a.dataset(ctx)
	if err != nil {
		return nil, err
	}
	return ds.Head(a.previewRows), nil
}

// Flush drops every cached view.
func (a *Analytics) Flush() {
	a.views.Flush()
}

// Stats reports dataset load metadata and view cache counters.
func (a *Analytics) Stats() map[string]any {
	src, _ := a.snapshot()

	stats := map[string]any{
		"cached_views": a.views.ItemCount(),
		"cache_hits":   a.hits.Load(),
		"cache_misses": a.misses.Load(),
		"loaded":       false,
	}
	if src == nil || !src.Loaded() {
		return stats
	}

	ds, _ := src.Load(context.Background())
	stats["loaded"] = true
	stats["source"] = ds.Path()
	stats["record_count"] = ds.Len()
	stats["loaded_at"] = ds.LoadedAt()
	stats["load_duration"] = ds.LoadDuration().String()
	return stats
}
