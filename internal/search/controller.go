package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmcdole/shutter/internal/domain"
)

const (
	// DefaultPageSize is the number of photos requested per page
	DefaultPageSize = 20

	// DefaultQuery is searched on startup when no query was saved
	DefaultQuery = "dog"
)

// Config holds the fixed search parameters of a controller
type Config struct {
	PageSize     int
	DefaultQuery string
}

// Controller owns the search result state for one display.
//
// Operations block until their network call completes. LoadMore is gated
// on IsLoading and HasMorePages under the state lock. StartSearch always
// proceeds: it cancels the request it supersedes, and the superseded
// completion is discarded by generation.
type Controller struct {
	repo    domain.PhotoRepository
	history domain.HistoryStore
	cfg     Config
	logger  *slog.Logger

	mu      sync.Mutex
	state   domain.SearchState
	gen     uint64             // bumped by every StartSearch
	cancel  context.CancelFunc // cancels the in-flight request
	version uint64

	obsMu     sync.Mutex
	observers map[int]domain.StateObserver
	nextObsID int
}

// NewController creates a new search controller
func NewController(repo domain.PhotoRepository, history domain.HistoryStore, cfg Config, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if strings.TrimSpace(cfg.DefaultQuery) == "" {
		cfg.DefaultQuery = DefaultQuery
	}
	return &Controller{
		repo:      repo,
		history:   history,
		cfg:       cfg,
		logger:    logger,
		state:     domain.SearchState{Page: domain.Page{PageNumber: 1, PageSize: cfg.PageSize}},
		observers: make(map[int]domain.StateObserver),
	}
}

// Initialize searches the saved query, or the default one
func (c *Controller) Initialize(ctx context.Context) {
	query := c.cfg.DefaultQuery
	if c.history != nil {
		if saved, ok := c.history.LastQuery(); ok && strings.TrimSpace(saved) != "" {
			query = saved
		}
	}
	c.logger.Debug("initializing search", "query", query)
	c.StartSearch(ctx, query)
}

// StartSearch replaces the result set with the first page of query.
// A blank query is ignored.
func (c *Controller) StartSearch(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	c.mu.Lock()
	if c.cancel != nil {
		c.logger.Debug("superseding in-flight request", "query", c.state.Query)
		c.cancel()
	}
	c.gen++
	gen := c.gen
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.state.Query = query
	c.state.Items = nil
	c.state.Page = domain.Page{PageNumber: 1, PageSize: c.cfg.PageSize}
	c.state.HasMorePages = true
	c.state.Err = nil
	c.state.IsLoading = true
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.publish(snap)

	resp, err := c.repo.Search(reqCtx, query, 1, c.cfg.PageSize)
	cancel()

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.logger.Debug("discarding superseded search", "query", query)
		return
	}
	c.cancel = nil
	if err != nil {
		c.logger.Error("search failed", "query", query, "kind", domain.KindOf(err).String(), "error", err)
		c.state.Err = err
		c.state.HasMorePages = false
	} else {
		c.state.Items = append([]domain.PhotoSummary(nil), resp.Items...)
		c.state.Page = resp.Page
		c.state.HasMorePages = resp.Page.HasMore()
	}
	c.state.IsLoading = false
	snap = c.snapshotLocked()
	c.mu.Unlock()

	if err == nil {
		c.saveHistory(query)
		c.logger.Debug("search complete", "query", query, "count", len(snap.Items), "pages", snap.Page.TotalPages)
	}
	c.publish(snap)
}

// LoadMore appends the next page of the current query.
// It does nothing while a request is in flight or when no pages remain.
func (c *Controller) LoadMore(ctx context.Context) {
	c.mu.Lock()
	if c.state.IsLoading || !c.state.HasMorePages {
		c.mu.Unlock()
		return
	}
	gen := c.gen
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	query := c.state.Query
	next := c.state.Page.PageNumber + 1
	c.state.IsLoading = true
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.publish(snap)

	resp, err := c.repo.Search(reqCtx, query, next, c.cfg.PageSize)
	cancel()

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.logger.Debug("discarding superseded page", "query", query, "page", next)
		return
	}
	c.cancel = nil
	if err != nil {
		c.logger.Error("load more failed", "query", query, "page", next, "kind", domain.KindOf(err).String(), "error", err)
		c.state.Err = err
	} else {
		c.state.Items = append(c.state.Items, resp.Items...)
		c.state.Page = resp.Page
		c.state.HasMorePages = resp.Page.HasMore()
		c.state.Err = nil
	}
	c.state.IsLoading = false
	snap = c.snapshotLocked()
	c.mu.Unlock()
	c.publish(snap)
}

// RepeatCurrentSearch re-runs the last submitted query from page one
func (c *Controller) RepeatCurrentSearch(ctx context.Context) {
	c.mu.Lock()
	query := c.state.Query
	c.mu.Unlock()
	c.StartSearch(ctx, query)
}

// Cancel aborts the in-flight request, if any. The aborted operation
// still completes and records its error.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
}

// State returns a snapshot of the current state
func (c *Controller) State() domain.SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.state
	snap.Items = append([]domain.PhotoSummary(nil), c.state.Items...)
	snap.Version = c.version
	return snap
}

// Subscribe registers obs for every published snapshot.
// The returned function removes it.
func (c *Controller) Subscribe(obs domain.StateObserver) func() {
	c.obsMu.Lock()
	id := c.nextObsID
	c.nextObsID++
	c.observers[id] = obs
	c.obsMu.Unlock()

	return func() {
		c.obsMu.Lock()
		delete(c.observers, id)
		c.obsMu.Unlock()
	}
}

// snapshotLocked copies the state under a new version. Caller holds c.mu.
func (c *Controller) snapshotLocked() domain.SearchState {
	c.version++
	snap := c.state
	snap.Items = append([]domain.PhotoSummary(nil), c.state.Items...)
	snap.Version = c.version
	return snap
}

func (c *Controller) publish(snap domain.SearchState) {
	c.obsMu.Lock()
	defer c.obsMu.Unlock()
	for _, obs := range c.observers {
		obs.OnState(snap)
	}
}

func (c *Controller) saveHistory(query string) {
	if c.history == nil {
		return
	}
	if err := c.history.SaveLastQuery(query); err != nil {
		c.logger.Error("failed to save last query", "error", err, "query", query)
	}
}
