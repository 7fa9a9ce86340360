package ui

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"adtables/internal/model"
	"adtables/internal/nav"
	"adtables/internal/source"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const loadTimeout = 30 * time.Second

// Model is the root Bubble Tea model.
type Model struct {
	src     source.Source
	opts    Options
	data    *model.Dataset
	history *nav.History
	screen  tableScreen
	keys    KeyMap
	gState  GState

	width  int
	height int

	error       string
	info        string
	showingHelp bool
}

// New creates a new root model reading from src.
func New(src source.Source, opts Options) Model {
	return Model{
		src:     src,
		opts:    opts,
		history: nav.NewHistory(opts.Start),
		keys:    DefaultKeyMap(),
		gState:  GStateIdle,
	}
}

// Init loads the data set.
func (m Model) Init() tea.Cmd {
	return loadDatasetCmd(m.src)
}

// Route returns the route on screen.
func (m Model) Route() nav.Route {
	return m.history.Current()
}

// Navigate mounts the table for r and records it in the history. The new
// table starts with the route's filter applied and default sort and page.
func (m *Model) Navigate(r nav.Route) {
	m.history.Push(r)
	m.mount(r)
}

func (m *Model) mount(r nav.Route) {
	if m.data == nil {
		return
	}
	screen, err := newScreen(r, *m.data, m.opts)
	if err != nil {
		m.error = err.Error()
		return
	}
	m.screen = screen
	m.error = ""
	log.Printf("[UI] mounted %s", r)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if msg.String() == "?" {
			m.showingHelp = !m.showingHelp
			return m, nil
		}

		if m.showingHelp {
			if msg.String() == "esc" {
				m.showingHelp = false
			}
			return m, nil
		}

		return m.handleKey(msg)

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		log.Printf("[UI] error: %v", msg.Err)
		return m, nil

	case model.DatasetLoadedMsg:
		ds := msg.Dataset
		m.data = &ds
		m.mount(m.history.Current())
		return m, nil
	}

	return m, nil
}

// handleKey handles key presses on the mounted table.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	t := m.screen
	if t == nil {
		return m, nil
	}
	m.info = ""

	// Handle "gg" state machine
	if key.Matches(msg, m.keys.FirstPage) {
		if m.gState == GStateIdle {
			m.gState = GStateFirstG
			return m, nil
		}
		m.gState = GStateIdle
		t.FirstPage()
		return m, nil
	}
	m.gState = GStateIdle

	switch {
	case key.Matches(msg, m.keys.Up):
		t.MoveUp()
	case key.Matches(msg, m.keys.Down):
		t.MoveDown()
	case key.Matches(msg, m.keys.NextColumn):
		t.NextColumn()
	case key.Matches(msg, m.keys.PrevColumn):
		t.PrevColumn()
	case key.Matches(msg, m.keys.Sort):
		m.info = t.ToggleSortActive()
	case key.Matches(msg, m.keys.SortColumn):
		n, _ := strconv.Atoi(msg.String())
		m.info, _ = t.ToggleSortColumn(n)
	case key.Matches(msg, m.keys.ClearSort):
		if t.ClearSort() {
			m.info = "Sort cleared"
		}
	case key.Matches(msg, m.keys.NextPage):
		if !t.NextPage() {
			m.info = "Already on the last page"
		}
	case key.Matches(msg, m.keys.PrevPage):
		if !t.PrevPage() {
			m.info = "Already on the first page"
		}
	case key.Matches(msg, m.keys.LastPage):
		t.LastPage()
	case key.Matches(msg, m.keys.Select):
		m.drillDown()
	case key.Matches(msg, m.keys.Parent):
		if parent, ok := t.Route().Parent(); ok {
			m.Navigate(parent)
		}
	case key.Matches(msg, m.keys.HistoryBack):
		if r, ok := m.history.Back(); ok {
			m.mount(r)
		} else {
			m.info = "No earlier view"
		}
	case key.Matches(msg, m.keys.HistoryFwd):
		if r, ok := m.history.Forward(); ok {
			m.mount(r)
		} else {
			m.info = "No later view"
		}
	case key.Matches(msg, m.keys.Home):
		m.Navigate(nav.Home())
	}
	return m, nil
}

// drillDown navigates to the child table of the row under the cursor.
func (m *Model) drillDown() {
	id, ok := m.screen.Selected()
	if !ok {
		return
	}
	child, ok := m.screen.Route().Child(id)
	if !ok {
		m.info = "Campaigns have no drill-down"
		return
	}
	m.Navigate(child)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	route := m.history.Current()
	contentHeight := m.height - 4 // header + footer + padding

	var content string
	if m.screen != nil {
		content = m.screen.View(m.width, contentHeight)
	} else if m.error == "" {
		content = EmptyStateStyle.Render("Loading data…")
	}

	header := renderHeader(route.Breadcrumb(), route.Path(), m.width)
	footer := RenderHelp(route.View, m.width)

	// Ensure content fills the available height to anchor footer at bottom
	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Render(content)

	parts := []string{header}
	if m.error != "" {
		parts = append(parts, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		parts = append(parts, SuccessStyle.Width(m.width).Render(m.info))
	}
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderHeader(breadcrumbParts []string, path string, width int) string {
	title := HeaderStyle.Render("adtables")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb
	right := BreadcrumbStyle.Render(path) + "  "

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

func loadDatasetCmd(src source.Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		ds, err := source.Load(ctx, src)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load data: %w", err)}
		}
		return model.DatasetLoadedMsg{Dataset: ds}
	}
}
