package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/shutter/internal/domain"
	"github.com/mmcdole/shutter/internal/search"
	"github.com/mmcdole/shutter/internal/tui/styles"
)

// Focus is the widget receiving key presses
type Focus int

const (
	FocusList Focus = iota
	FocusSearch
	FocusFilter
)

// Layout proportions
const (
	ListColumnPercent = 55
	MinColumnWidth    = 20

	// Search bar and status line
	ChromeHeight = 2
)

// Options configures a new Model
type Options struct {
	ImageBaseURL  string
	ShowInspector bool
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Controllers
	Searcher Searcher
	Details  DetailLoader
	updates  <-chan domain.SearchState

	// UI Components
	SearchInput textinput.Model
	FilterInput textinput.Model
	Spinner     spinner.Model
	Help        help.Model
	Keys        KeyMap

	// Data
	State  domain.SearchState
	Detail domain.DetailState
	Rows   []search.Match // State.Items after the local filter

	// Dimensions
	Width  int
	Height int

	// UI state
	Focus         Focus
	Cursor        int
	Offset        int
	ImageBaseURL  string
	ShowInspector bool
	StatusMsg     string
	StatusIsErr   bool
	statusID      int
}

// NewModel creates a new application model. updates receives the
// snapshots published to a ChannelObserver subscribed to the searcher.
func NewModel(searcher Searcher, details DetailLoader, updates <-chan domain.SearchState, opts Options) Model {
	si := textinput.New()
	si.Placeholder = "Search photos..."
	si.CharLimit = 200
	si.Prompt = "/ "
	si.PromptStyle = styles.AccentStyle
	si.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	si.PlaceholderStyle = styles.DimStyle

	fi := textinput.New()
	fi.Placeholder = "title or @owner"
	fi.CharLimit = 100
	fi.Prompt = "filter: "
	fi.PromptStyle = styles.FilterPromptStyle
	fi.TextStyle = styles.FilterStyle
	fi.PlaceholderStyle = styles.DimStyle

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.SpinnerStyle),
	)

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	imageBase := opts.ImageBaseURL
	if imageBase == "" {
		imageBase = domain.DefaultImageBaseURL
	}

	return Model{
		Searcher:      searcher,
		Details:       details,
		updates:       updates,
		SearchInput:   si,
		FilterInput:   fi,
		Spinner:       sp,
		Help:          h,
		Keys:          DefaultKeyMap(),
		ImageBaseURL:  imageBase,
		ShowInspector: opts.ShowInspector,
	}
}

// Init runs the initial search and starts listening for state changes
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{InitializeCmd(m.Searcher), m.Spinner.Tick}
	if m.updates != nil {
		cmds = append(cmds, WaitForStateCmd(m.updates))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.Help.Width = msg.Width
		m.SearchInput.Width = msg.Width / 2
		m.FilterInput.Width = msg.Width / 4
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case StateChangedMsg:
		cmd := m.applyState(msg.State)
		return m, tea.Batch(cmd, WaitForStateCmd(m.updates))

	case SearchFinishedMsg:
		return m, m.applyState(msg.State)

	case DetailLoadedMsg:
		// Only the photo currently requested
		if msg.State.PhotoID != m.Detail.PhotoID {
			return m, nil
		}
		m.Detail = msg.State
		if msg.State.Err != nil {
			return m, StatusCmd("loading details: "+msg.State.Err.Error(), true)
		}
		return m, nil

	case StatusMsg:
		m.statusID++
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		delay := 3 * time.Second
		if msg.IsError {
			delay = 5 * time.Second
		}
		return m, ClearStatusCmd(m.statusID, delay)

	case ClearStatusMsg:
		// A newer status keeps its own timer
		if msg.ID == m.statusID {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	return m, nil
}

// applyState installs a controller snapshot unless a newer one is shown.
// A failed next page is reported in the status bar, since the rows stay.
func (m *Model) applyState(state domain.SearchState) tea.Cmd {
	if state.Version < m.State.Version {
		return nil
	}
	prev := m.State
	replaced := state.Query != m.State.Query || len(state.Items) < len(m.State.Items)
	m.State = state
	m.refreshRows()
	if replaced {
		m.Cursor = 0
		m.Offset = 0
	}
	m.clampCursor()

	pageFailed := prev.IsLoading && !state.IsLoading && state.Err != nil &&
		state.Query == prev.Query && len(state.Items) > 0
	if pageFailed {
		msg := fmt.Sprintf("loading page %d: %v", state.Page.PageNumber+1, state.Err)
		return StatusCmd(msg, true)
	}
	return nil
}

// refreshRows re-applies the local filter to the loaded items
func (m *Model) refreshRows() {
	m.Rows = search.Filter(m.State.Items, m.FilterInput.Value())
}

// Selected returns the photo under the cursor, or nil
func (m Model) Selected() *domain.PhotoSummary {
	if m.Cursor < 0 || m.Cursor >= len(m.Rows) {
		return nil
	}
	photo := m.Rows[m.Cursor].Photo
	return &photo
}

// filtering returns true if a local filter narrows the rows
func (m Model) filtering() bool {
	return strings.TrimSpace(m.FilterInput.Value()) != ""
}

func (m Model) listWidth() int {
	if !m.ShowInspector {
		return m.Width
	}
	w := m.Width * ListColumnPercent / 100
	if w < MinColumnWidth {
		w = MinColumnWidth
	}
	return w
}

func (m Model) listHeight() int {
	h := m.Height - ChromeHeight - lipgloss.Height(m.Help.View(m.Keys))
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) clampCursor() {
	if m.Cursor >= len(m.Rows) {
		m.Cursor = len(m.Rows) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	h := m.listHeight()
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+h {
		m.Offset = m.Cursor - h + 1
	}
	if m.Offset < 0 {
		m.Offset = 0
	}
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	sections := []string{
		m.renderSearchBar(),
		m.renderBody(),
		m.renderStatusBar(),
		m.Help.View(m.Keys),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderSearchBar() string {
	var bar string
	if m.Focus == FocusSearch {
		bar = m.SearchInput.View()
	} else {
		bar = styles.AccentStyle.Render("/ ") + styles.TitleStyle.Render(m.State.Query)
	}

	if m.Focus == FocusFilter || m.filtering() {
		bar += "   " + m.FilterInput.View()
	}
	return styles.SearchBarStyle.Width(m.Width).Render(bar)
}

func (m Model) renderBody() string {
	h := m.listHeight()
	listWidth := m.listWidth()

	list := lipgloss.NewStyle().Width(listWidth).Height(h).Render(m.renderList(listWidth, h))
	if !m.ShowInspector {
		return list
	}

	inspectorWidth := m.Width - listWidth
	if inspectorWidth < MinColumnWidth {
		return list
	}
	// Border takes 1 char each side
	content := RenderInspector(m.Selected(), m.Detail, m.ImageBaseURL, inspectorWidth-4)
	inspector := styles.InspectorStyle.
		Width(inspectorWidth - 2).
		Height(h - 2).
		MaxHeight(h).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, list, inspector)
}

func (m Model) renderList(width, height int) string {
	if len(m.Rows) == 0 {
		switch {
		case m.State.IsLoading:
			return styles.DimStyle.Render(" " + m.Spinner.View() + " Searching...")
		case m.State.Err != nil:
			return RenderError(m.State.Err, width) + "\n" + styles.DimStyle.Render(" r: retry")
		case m.filtering():
			return styles.DimStyle.Render(" No loaded photo matches the filter")
		case m.State.Query != "":
			return styles.DimStyle.Render(" No photos found")
		default:
			return ""
		}
	}

	end := m.Offset + height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}
	lines := make([]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		lines = append(lines, RenderPhotoRow(m.Rows[i], i == m.Cursor, width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatusBar() string {
	if m.StatusMsg != "" {
		style := styles.StatusBarStyle
		if m.StatusIsErr {
			style = style.Foreground(styles.Red)
		}
		return style.Width(m.Width).Render(m.StatusMsg)
	}
	return RenderStatus(m.State, m.Spinner.View(), len(m.Rows), m.Width)
}
