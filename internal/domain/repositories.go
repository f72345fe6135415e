package domain

import (
	"context"
)

// PhotoRepository provides the remote photo search operations
type PhotoRepository interface {
	// Search returns one page of photos matching query, in service order
	Search(ctx context.Context, query string, page, pageSize int) (*SearchResponse, error)

	// GetDetail returns the full metadata of a single photo
	GetDetail(ctx context.Context, photoID string) (*PhotoDetail, error)
}

// HistoryStore holds the single last-used search query.
// Save failures are reported but never interrupt a search.
type HistoryStore interface {
	// LastQuery returns the saved query, false when nothing was saved
	LastQuery() (string, bool)

	// SaveLastQuery overwrites the saved query
	SaveLastQuery(query string) error
}
