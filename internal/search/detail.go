package search

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmcdole/shutter/internal/domain"
)

// DetailController loads the metadata of the selected photo.
// Selecting another photo before a load finishes discards the older result.
type DetailController struct {
	repo   domain.PhotoRepository
	logger *slog.Logger

	mu     sync.Mutex
	state  domain.DetailState
	gen    uint64
	cancel context.CancelFunc
}

// NewDetailController creates a new detail controller
func NewDetailController(repo domain.PhotoRepository, logger *slog.Logger) *DetailController {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailController{repo: repo, logger: logger}
}

// Load fetches the detail of photoID and returns the resulting state.
// If a newer Load started meanwhile, the newer state is returned untouched.
func (d *DetailController) Load(ctx context.Context, photoID string) domain.DetailState {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.gen++
	gen := d.gen
	reqCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.state = domain.DetailState{PhotoID: photoID, IsLoading: true}
	d.mu.Unlock()

	detail, err := d.repo.GetDetail(reqCtx, photoID)
	cancel()

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		d.logger.Debug("discarding superseded detail", "photoID", photoID)
		return d.state
	}
	d.cancel = nil
	if err != nil {
		d.logger.Error("failed to load photo detail", "photoID", photoID, "error", err)
		d.state.Err = err
	} else {
		d.state.Detail = detail
	}
	d.state.IsLoading = false
	return d.state
}

// State returns the current detail state
func (d *DetailController) State() domain.DetailState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Reset clears the state and abandons any in-flight load
func (d *DetailController) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.gen++
	d.state = domain.DetailState{}
}
