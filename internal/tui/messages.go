package tui

import "github.com/mmcdole/shutter/internal/domain"

// Message types for the TUI

// StateChangedMsg carries a snapshot published by the search controller
type StateChangedMsg struct {
	State domain.SearchState
}

// SearchFinishedMsg carries the controller state after a command returned.
// It covers snapshots the observer channel dropped while full.
type SearchFinishedMsg struct {
	State domain.SearchState
}

// DetailLoadedMsg signals that a detail load finished
type DetailLoadedMsg struct {
	State domain.DetailState
}

// ClearStatusMsg clears the status bar message it was scheduled for
type ClearStatusMsg struct {
	ID int
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
