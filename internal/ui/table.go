package ui

import (
	"fmt"
	"strings"

	"adtables/internal/nav"
	"adtables/internal/table"
	"adtables/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// tableScreen is what the root model needs from an entity table, whatever
// its record type.
type tableScreen interface {
	Route() nav.Route
	Title() string
	State() table.State
	Info() table.PageInfo

	MoveUp()
	MoveDown()
	NextColumn()
	PrevColumn()
	ToggleSortActive() string
	ToggleSortColumn(number int) (string, bool)
	ClearSort() bool

	NextPage() bool
	PrevPage() bool
	FirstPage()
	LastPage()
	HasNext() bool
	HasPrev() bool

	Selected() (string, bool)
	View(width, height int) string
}

// TableModel renders one table.View with a row cursor and an active column.
type TableModel[T any] struct {
	route nav.Route
	title string
	empty string

	view         *table.View[T]
	cursor       int
	activeColumn int
}

// NewTableModel builds the table for route over rows and applies the
// route's filter value, which resets sort and pagination.
func NewTableModel[T any](route nav.Route, title, empty string, schema table.Schema[T], rows []T, opts ...table.Option) (*TableModel[T], error) {
	v, err := table.New(schema, rows, opts...)
	if err != nil {
		return nil, err
	}
	if value, ok := route.FilterValue(); ok {
		v.SetFilter(value)
	}
	return &TableModel[T]{route: route, title: title, empty: empty, view: v}, nil
}

func (m *TableModel[T]) Route() nav.Route     { return m.route }
func (m *TableModel[T]) Title() string        { return m.title }
func (m *TableModel[T]) State() table.State   { return m.view.State() }
func (m *TableModel[T]) Info() table.PageInfo { return m.view.Info() }
func (m *TableModel[T]) HasNext() bool        { return m.view.HasNext() }
func (m *TableModel[T]) HasPrev() bool        { return m.view.HasPrev() }

// Cursor returns the cursor's index within the visible page.
func (m *TableModel[T]) Cursor() int {
	return m.cursor
}

// MoveDown moves the cursor down within the page.
func (m *TableModel[T]) MoveDown() {
	if m.cursor < len(m.view.VisibleRows())-1 {
		m.cursor++
	}
}

// MoveUp moves the cursor up within the page.
func (m *TableModel[T]) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *TableModel[T]) NextColumn() {
	m.activeColumn = (m.activeColumn + 1) % len(m.view.Schema().Fields)
}

func (m *TableModel[T]) PrevColumn() {
	m.activeColumn--
	if m.activeColumn < 0 {
		m.activeColumn = len(m.view.Schema().Fields) - 1
	}
}

// ToggleSortActive toggles the sort on the active column, the keyboard
// equivalent of clicking its header.
func (m *TableModel[T]) ToggleSortActive() string {
	field := m.view.Schema().Fields[m.activeColumn]
	if !m.view.ToggleSort(field.Key) {
		return fmt.Sprintf("%s is not sortable", field.Label)
	}
	return m.sortMessage(field)
}

// ToggleSortColumn makes column number (1-based) active and toggles its sort.
func (m *TableModel[T]) ToggleSortColumn(number int) (string, bool) {
	fields := m.view.Schema().Fields
	if number < 1 || number > len(fields) {
		return fmt.Sprintf("Column %d unavailable", number), false
	}
	m.activeColumn = number - 1
	return m.ToggleSortActive(), true
}

func (m *TableModel[T]) sortMessage(field table.Field[T]) string {
	order := "ascending"
	if m.view.State().Sort.Order == table.Descending {
		order = "descending"
	}
	return fmt.Sprintf("Sorted %s %s", strings.ToUpper(field.Label), order)
}

func (m *TableModel[T]) ClearSort() bool {
	return m.view.ClearSort()
}

func (m *TableModel[T]) NextPage() bool {
	if !m.view.NextPage() {
		return false
	}
	m.cursor = 0
	return true
}

func (m *TableModel[T]) PrevPage() bool {
	if !m.view.PrevPage() {
		return false
	}
	m.cursor = 0
	return true
}

func (m *TableModel[T]) FirstPage() {
	m.view.FirstPage()
	m.cursor = 0
}

func (m *TableModel[T]) LastPage() {
	m.view.LastPage()
	m.cursor = 0
}

// Selected returns the identifier of the row under the cursor.
func (m *TableModel[T]) Selected() (string, bool) {
	row, ok := m.view.Row(m.cursor)
	if !ok {
		return "", false
	}
	return m.view.Schema().ID(row), true
}

// View renders the table.
func (m *TableModel[T]) View(width, height int) string {
	schema := m.view.Schema()
	state := m.view.State()

	widths := make([]int, 0, len(schema.Fields))
	headers := make([]string, 0, len(schema.Fields))
	totalFixed := 0
	for i, f := range schema.Fields {
		label := f.Label
		if state.Sort.Key == f.Key {
			if state.Sort.Order == table.Descending {
				label += " ↓"
			} else {
				label += " ↑"
			}
		}
		if i == m.activeColumn {
			label = renderActiveHeaderLabel(label)
		}
		cellWidth := max(f.Width+2, lipgloss.Width(label)+4)
		totalFixed += cellWidth
		widths = append(widths, cellWidth)
		headers = append(headers, label)
	}
	if extra := width - totalFixed - 2; extra > 0 && len(widths) > 0 {
		widths[len(widths)-1] += extra
	}

	title := LabelStyle.Padding(0, 1).Render(m.title)
	header := renderTableRow(headers, widths, TableHeaderStyle)
	divider := renderTableDivider(widths)

	visible := m.view.VisibleRows()
	var rows []string
	if len(visible) == 0 {
		rows = append(rows, EmptyRowStyle.Width(sum(widths)).Render(m.empty))
	}
	for i, row := range visible {
		style := NormalRowStyle
		if i == m.cursor {
			style = SelectedRowStyle
		}
		cells := make([]string, 0, len(schema.Fields))
		for j, f := range schema.Fields {
			cells = append(cells, util.TruncateString(f.Text(row), widths[j]-2))
		}
		rows = append(rows, renderTableRow(cells, widths, style))
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		header,
		divider,
		strings.Join(rows, "\n"),
		"",
		m.renderPager(),
	)

	status := StatusBarStyle.Render(m.statusLine())
	spacerHeight := max(0, height-lipgloss.Height(content)-lipgloss.Height(status))
	spacer := lipgloss.NewStyle().Height(spacerHeight).Render("")

	return lipgloss.JoinVertical(lipgloss.Left, content, spacer, status)
}

// renderPager renders "◀ Prev  Page X of Y  Next ▶". Each control is drawn
// disabled from its own guard, not from the page arithmetic.
func (m *TableModel[T]) renderPager() string {
	info := m.view.Info()
	prev := PagerButtonStyle.Render("◀ Prev")
	if !m.view.HasPrev() {
		prev = PagerDisabledStyle.Render("◀ Prev")
	}
	next := PagerButtonStyle.Render("Next ▶")
	if !m.view.HasNext() {
		next = PagerDisabledStyle.Render("Next ▶")
	}
	counter := PagerCounterStyle.Render(fmt.Sprintf("Page %d of %d", info.Page, info.TotalPages))
	return lipgloss.JoinHorizontal(lipgloss.Center, prev, counter, next)
}

func (m *TableModel[T]) statusLine() string {
	state := m.view.State()
	parts := []string{fmt.Sprintf("%d %s", m.view.Len(), m.view.Schema().Name)}
	if state.Filter.Active {
		parts = append(parts, fmt.Sprintf("%s=%q", state.Filter.Key, state.Filter.Value))
		parts = append(parts, fmt.Sprintf("of %d", m.view.Total()))
	}
	if state.Sort.Key != "" {
		parts = append(parts, fmt.Sprintf("sort %s %s", strings.ToUpper(state.Sort.Key), state.Sort.Order))
	}
	if m.view.Len() > 0 {
		parts = append(parts, fmt.Sprintf("row %d/%d", (state.Page-1)*state.PageSize+m.cursor+1, m.view.Len()))
	}
	return strings.Join(parts, "  ·  ")
}

func renderActiveHeaderLabel(label string) string {
	return ActiveHeaderStyle.Render(label)
}

func renderTableRow(cells []string, widths []int, style lipgloss.Style) string {
	var parts []string
	for i, cell := range cells {
		if i >= len(widths) {
			continue
		}
		parts = append(parts, style.Width(widths[i]).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}

func renderTableDivider(widths []int) string {
	return DividerStyle.Render(strings.Repeat("─", sum(widths)))
}

func sum(ns []int) int {
	total := 0
	for _, n := range ns {
		total += n
	}
	return total
}
