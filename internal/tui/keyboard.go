package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shutter/internal/domain"
)

// handleKeyMsg routes a key press to the focused widget
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.Focus {
	case FocusSearch:
		return m.handleSearchKey(msg)
	case FocusFilter:
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		m.ensureVisible()
		return m, nil

	case key.Matches(msg, m.Keys.Search):
		m.Focus = FocusSearch
		m.SearchInput.SetValue(m.State.Query)
		m.SearchInput.CursorEnd()
		return m, m.SearchInput.Focus()

	case key.Matches(msg, m.Keys.Filter):
		m.Focus = FocusFilter
		return m, m.FilterInput.Focus()

	case key.Matches(msg, m.Keys.Escape):
		if m.filtering() {
			m.FilterInput.SetValue("")
			m.refreshRows()
			m.clampCursor()
		}
		return m, nil

	case key.Matches(msg, m.Keys.Retry):
		m.resetDetail()
		return m, RepeatSearchCmd(m.Searcher)

	case key.Matches(msg, m.Keys.ToggleInspector):
		m.ShowInspector = !m.ShowInspector
		return m, nil

	case key.Matches(msg, m.Keys.Select):
		photo := m.Selected()
		if photo == nil || m.Details == nil {
			return m, nil
		}
		m.Detail = domain.DetailState{PhotoID: photo.ID, IsLoading: true}
		m.ShowInspector = true
		return m, LoadDetailCmd(m.Details, photo.ID)

	case key.Matches(msg, m.Keys.Up):
		return m.moveCursor(-1)
	case key.Matches(msg, m.Keys.Down):
		return m.moveCursor(1)
	case key.Matches(msg, m.Keys.PageUp):
		return m.moveCursor(-m.listHeight())
	case key.Matches(msg, m.Keys.PageDown):
		return m.moveCursor(m.listHeight())
	case key.Matches(msg, m.Keys.Home):
		return m.moveCursor(-len(m.Rows))
	case key.Matches(msg, m.Keys.End):
		return m.moveCursor(len(m.Rows))
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Escape):
		m.Focus = FocusList
		m.SearchInput.Blur()
		return m, nil

	case key.Matches(msg, m.Keys.Submit):
		query := strings.TrimSpace(m.SearchInput.Value())
		m.Focus = FocusList
		m.SearchInput.Blur()
		if query == "" {
			return m, nil
		}
		m.resetDetail()
		return m, StartSearchCmd(m.Searcher, query)
	}

	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	return m, cmd
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Escape):
		m.FilterInput.SetValue("")
		fallthrough
	case key.Matches(msg, m.Keys.Submit):
		m.Focus = FocusList
		m.FilterInput.Blur()
		m.refreshRows()
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.FilterInput, cmd = m.FilterInput.Update(msg)
	m.refreshRows()
	m.Cursor = 0
	m.Offset = 0
	return m, cmd
}

// moveCursor moves the selection by delta rows. Landing on the last
// unfiltered row asks the searcher for the next page.
func (m Model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	if len(m.Rows) == 0 {
		return m, nil
	}
	atEnd := m.Cursor == len(m.Rows)-1
	m.Cursor += delta
	m.clampCursor()

	if m.Cursor != len(m.Rows)-1 || m.filtering() || m.State.IsLoading {
		return m, nil
	}
	if m.State.HasMorePages {
		return m, LoadMoreCmd(m.Searcher)
	}
	if atEnd && delta > 0 && m.State.Err == nil {
		return m, StatusCmd("No more results", false)
	}
	return m, nil
}

// resetDetail clears the inspector and abandons any detail load
func (m *Model) resetDetail() {
	m.Detail = domain.DetailState{}
	if m.Details != nil {
		m.Details.Reset()
	}
}
