package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shutter/internal/domain"
)

// requestTimeout bounds a single controller operation
const requestTimeout = 60 * time.Second

// Searcher is the part of the search controller the UI drives
type Searcher interface {
	Initialize(ctx context.Context)
	StartSearch(ctx context.Context, query string)
	LoadMore(ctx context.Context)
	RepeatCurrentSearch(ctx context.Context)
	State() domain.SearchState
}

// DetailLoader fetches the metadata of one photo
type DetailLoader interface {
	Load(ctx context.Context, photoID string) domain.DetailState
	Reset()
}

// Command factories for async operations

func searchCmd(s Searcher, op func(ctx context.Context)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		op(ctx)
		return SearchFinishedMsg{State: s.State()}
	}
}

// InitializeCmd runs the saved or default search
func InitializeCmd(s Searcher) tea.Cmd {
	return searchCmd(s, s.Initialize)
}

// StartSearchCmd starts a new search for query
func StartSearchCmd(s Searcher, query string) tea.Cmd {
	return searchCmd(s, func(ctx context.Context) {
		s.StartSearch(ctx, query)
	})
}

// LoadMoreCmd requests the next page of the current search
func LoadMoreCmd(s Searcher) tea.Cmd {
	return searchCmd(s, s.LoadMore)
}

// RepeatSearchCmd re-runs the current query from page 1
func RepeatSearchCmd(s Searcher) tea.Cmd {
	return searchCmd(s, s.RepeatCurrentSearch)
}

// LoadDetailCmd loads the detail of a photo
func LoadDetailCmd(d DetailLoader, photoID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return DetailLoadedMsg{State: d.Load(ctx, photoID)}
	}
}

// WaitForStateCmd blocks until the controller publishes the next snapshot
func WaitForStateCmd(ch <-chan domain.SearchState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return nil
		}
		return StateChangedMsg{State: state}
	}
}

// StatusCmd shows a temporary status message
func StatusCmd(message string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: message, IsError: isErr}
	}
}

// ClearStatusCmd returns a command that clears status id after a delay
func ClearStatusCmd(id int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
