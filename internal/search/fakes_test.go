package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/mmcdole/shutter/internal/domain"
)

type searchCall struct {
	Query    string
	Page     int
	PageSize int
}

// fakeRepo records calls and answers through searchFn/detailFn
type fakeRepo struct {
	mu          sync.Mutex
	calls       []searchCall
	detailCalls []string

	searchFn func(ctx context.Context, call searchCall) (*domain.SearchResponse, error)
	detailFn func(ctx context.Context, photoID string) (*domain.PhotoDetail, error)
}

func (f *fakeRepo) Search(ctx context.Context, query string, page, pageSize int) (*domain.SearchResponse, error) {
	call := searchCall{Query: query, Page: page, PageSize: pageSize}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	fn := f.searchFn
	f.mu.Unlock()
	if fn == nil {
		return nil, errors.New("no search response configured")
	}
	return fn(ctx, call)
}

func (f *fakeRepo) GetDetail(ctx context.Context, photoID string) (*domain.PhotoDetail, error) {
	f.mu.Lock()
	f.detailCalls = append(f.detailCalls, photoID)
	fn := f.detailFn
	f.mu.Unlock()
	if fn == nil {
		return nil, errors.New("no detail response configured")
	}
	return fn(ctx, photoID)
}

func (f *fakeRepo) searchCalls() []searchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]searchCall(nil), f.calls...)
}

// pages answers every call with the page of that number from a fixed set
func pages(totalPages int, perPage map[int][]domain.PhotoSummary) func(context.Context, searchCall) (*domain.SearchResponse, error) {
	return func(_ context.Context, call searchCall) (*domain.SearchResponse, error) {
		return &domain.SearchResponse{
			Page:  domain.Page{PageNumber: call.Page, PageSize: call.PageSize, TotalPages: totalPages},
			Items: perPage[call.Page],
		}, nil
	}
}

func failing(err error) func(context.Context, searchCall) (*domain.SearchResponse, error) {
	return func(context.Context, searchCall) (*domain.SearchResponse, error) {
		return nil, err
	}
}

type fakeHistory struct {
	mu      sync.Mutex
	query   string
	has     bool
	saves   []string
	saveErr error
}

func (h *fakeHistory) LastQuery() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.query, h.has
}

func (h *fakeHistory) SaveLastQuery(query string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.saves = append(h.saves, query)
	if h.saveErr != nil {
		return h.saveErr
	}
	h.query, h.has = query, true
	return nil
}

func (h *fakeHistory) savedQueries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.saves...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func photo(id string) domain.PhotoSummary {
	return domain.PhotoSummary{ID: id, OwnerID: "owner-" + id, Secret: "s" + id, Server: "65535", Title: "photo " + id, IsPublic: true}
}

func photoIDs(items []domain.PhotoSummary) []string {
	ids := make([]string, len(items))
	for i, p := range items {
		ids[i] = p.ID
	}
	return ids
}
