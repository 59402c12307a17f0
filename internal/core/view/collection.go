// Package view implements the remote collection screen shared by the three
// list views. Each screen owns one Collection: a state machine
// idle → loading → {loaded | failed}, re-enterable via Refresh, with
// client-side sort/filter/pagination applied over the loaded snapshot.
package view

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/geodonnees/admin-console/internal/api/metrics"
)

// State of a collection screen.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateFailed  State = "failed"
)

// ErrSuperseded is returned from Refresh when a newer refresh (or Close)
// took over before this one finished; its result was discarded.
var ErrSuperseded = errors.New("refresh superseded")

// FetchFunc loads the screen's collection from the upstream.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Collection holds one screen's transient copy of a remote collection.
// Previous data remains visible during a refresh and after a failed one;
// it is only replaced by a successful fetch.
type Collection[T any] struct {
	name     string
	pageSize int
	fetch    FetchFunc[T]
	log      zerolog.Logger

	mu      sync.Mutex
	state   State
	items   []T
	lastErr error
	gen     uint64
	cancel  context.CancelFunc
}

// NewCollection creates an idle collection. pageSize must be positive.
func NewCollection[T any](name string, pageSize int, fetch FetchFunc[T], log zerolog.Logger) *Collection[T] {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Collection[T]{
		name:     name,
		pageSize: pageSize,
		fetch:    fetch,
		state:    StateIdle,
		log:      log.With().Str("screen", name).Logger(),
	}
}

// Refresh transitions to loading and invokes the fetch. On success the
// snapshot is replaced and the state becomes loaded; on failure the previous
// snapshot is kept and the state becomes failed. Only one fetch is live at a
// time: a second Refresh cancels the first, whose result is then discarded.
func (c *Collection[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.gen++
	gen := c.gen
	c.state = StateLoading
	c.mu.Unlock()

	items, err := c.fetch(fetchCtx)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// A newer refresh owns the state now; drop this result to avoid the
		// stale-write race.
		return ErrSuperseded
	}
	c.cancel = nil
	if err != nil {
		c.state = StateFailed
		c.lastErr = err
		c.log.Error().Err(err).Msg("collection refresh failed")
		metrics.ScreenRefreshTotal.WithLabelValues(c.name, "error").Inc()
		return err
	}
	c.state = StateLoaded
	c.items = items
	c.lastErr = nil
	c.log.Debug().Int("rows", len(items)).Msg("collection refreshed")
	metrics.ScreenRefreshTotal.WithLabelValues(c.name, "ok").Inc()
	return nil
}

// Close cancels any in-flight fetch. Used when the screen goes away.
func (c *Collection[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
}

// Snapshot returns a copy of the current screen state. The returned items
// slice is owned by the caller; presentation transforms never reach back
// into the collection.
func (c *Collection[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return Snapshot[T]{
		Screen:   c.name,
		State:    c.state,
		Items:    items,
		Err:      c.lastErr,
		PageSize: c.pageSize,
	}
}

// Snapshot is an immutable view of a collection at one point in time.
type Snapshot[T any] struct {
	Screen   string
	State    State
	Items    []T
	Err      error
	PageSize int
}

// Filter keeps only items matching pred.
func (s Snapshot[T]) Filter(pred func(T) bool) Snapshot[T] {
	if pred == nil {
		return s
	}
	kept := make([]T, 0, len(s.Items))
	for _, it := range s.Items {
		if pred(it) {
			kept = append(kept, it)
		}
	}
	s.Items = kept
	return s
}

// Sort orders items by less, stably, descending when desc is set.
func (s Snapshot[T]) Sort(less func(a, b T) bool, desc bool) Snapshot[T] {
	if less == nil {
		return s
	}
	sort.SliceStable(s.Items, func(i, j int) bool {
		if desc {
			return less(s.Items[j], s.Items[i])
		}
		return less(s.Items[i], s.Items[j])
	})
	return s
}

// Pagination describes one page of a snapshot.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Page slices out the 1-based page. Out-of-range pages clamp to the nearest
// valid one; an empty snapshot yields page 1 of 0 rows without error.
func (s Snapshot[T]) Page(page int) ([]T, Pagination) {
	total := len(s.Items)
	totalPages := (total + s.PageSize - 1) / s.PageSize
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	start := (page - 1) * s.PageSize
	if start > total {
		start = total
	}
	end := start + s.PageSize
	if end > total {
		end = total
	}
	return s.Items[start:end], Pagination{
		Page:       page,
		PageSize:   s.PageSize,
		Total:      int64(total),
		TotalPages: totalPages,
	}
}
