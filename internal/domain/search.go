package domain

// SearchState is a read-only snapshot of the search controller.
// Items is owned by the snapshot and safe to keep.
type SearchState struct {
	Query        string
	Items        []PhotoSummary
	Page         Page
	IsLoading    bool
	Err          error
	HasMorePages bool

	// Version increases with every published snapshot
	Version uint64
}

// DetailState is a read-only snapshot of the detail controller
type DetailState struct {
	PhotoID   string
	Detail    *PhotoDetail
	IsLoading bool
	Err       error
}

// StateObserver receives every published search snapshot.
type StateObserver interface {
	OnState(state SearchState)
}

// StateObserverFunc adapts a function to StateObserver
type StateObserverFunc func(SearchState)

func (f StateObserverFunc) OnState(state SearchState) { f(state) }
