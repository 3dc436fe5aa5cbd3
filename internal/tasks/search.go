package tasks

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"navimport/internal/models"
)

const (
	// DefaultDebounce is the quiet period before typed input becomes a request.
	DefaultDebounce = 250 * time.Millisecond

	// DefaultMinQuery is the minimum trimmed query length that triggers a search.
	DefaultMinQuery = 2
)

// Searcher is the slice of the backend surface the SearchController needs.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.CatalogItem, error)
}

// SearchOpts configures a SearchController. Zero values use the defaults.
type SearchOpts struct {
	Debounce time.Duration
	MinQuery int
	Events   chan<- Event
	Logger   *log.Logger
}

// SearchController turns raw query text into debounced catalog searches.
//
// SetQuery restarts a trailing-edge debounce timer on every call; only after
// the quiet period does a request go out. Each issued request carries a
// monotonically increasing sequence number, and a response whose sequence is
// no longer current is discarded, so out-of-order arrivals of superseded
// requests never overwrite newer results.
type SearchController struct {
	ctx      context.Context
	svc      Searcher
	debounce time.Duration
	minQuery int
	events   chan<- Event
	logger   *log.Logger

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	results []models.CatalogItem
	loading bool
	lastErr string
	closed  bool
}

// NewSearchController creates a controller issuing searches through svc.
func NewSearchController(ctx context.Context, svc Searcher, opts SearchOpts) *SearchController {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.MinQuery <= 0 {
		opts.MinQuery = DefaultMinQuery
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &SearchController{
		ctx:      ctx,
		svc:      svc,
		debounce: opts.Debounce,
		minQuery: opts.MinQuery,
		events:   opts.Events,
		logger:   opts.Logger,
	}
}

// SetQuery records new query text, cancelling any pending debounce timer and
// starting a fresh one. A trimmed query shorter than the minimum never issues
// a request and clears the visible result set immediately.
func (c *SearchController) SetQuery(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < c.minQuery {
		// Invalidate in-flight requests and fired-but-not-yet-run timers so
		// neither can repopulate the cleared set.
		c.seq++
		c.results = nil
		c.lastErr = ""
		c.loading = false
		sendEvent(c.events, Event{Kind: SearchUpdated})
		return
	}

	// The generation is assigned at scheduling time, so any later SetQuery
	// supersedes this timer even if it has already fired and is waiting on
	// the lock inside issue.
	c.seq++
	seq := c.seq
	c.timer = time.AfterFunc(c.debounce, func() { c.issue(seq, trimmed) })
}

// issue runs one search request after the debounce period elapses.
func (c *SearchController) issue(seq uint64, query string) {
	c.mu.Lock()
	if c.closed || seq != c.seq {
		c.mu.Unlock()
		return
	}
	c.loading = true
	c.mu.Unlock()

	sendEvent(c.events, Event{Kind: SearchStarted})
	items, err := c.svc.Search(c.ctx, query)

	c.mu.Lock()
	if seq != c.seq {
		// Superseded while in flight; a newer request owns the result set.
		c.mu.Unlock()
		return
	}
	c.loading = false
	if err != nil {
		// Prior results stay visible on failure.
		c.lastErr = err.Error()
		c.logger.Warn("search failed", "query", query, "error", err)
	} else {
		c.results = items
		c.lastErr = ""
	}
	c.mu.Unlock()

	sendEvent(c.events, Event{Kind: SearchUpdated, Err: err})
}

// Snapshot returns the current result set, loading flag, and last error message.
func (c *SearchController) Snapshot() ([]models.CatalogItem, bool, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results, c.loading, c.lastErr
}

// Close cancels any pending debounce timer and rejects further queries.
func (c *SearchController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.seq++
}
