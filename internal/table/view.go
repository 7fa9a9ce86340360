// Package table implements the filter, sort and paginate engine behind every
// entity table. A View owns its state; it never mutates the collection it is
// given and never shares state with another View.
package table

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Order is the direction of a sort.
type Order int

const (
	Ascending Order = iota
	Descending
)

func (o Order) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// ToggleRule decides what ToggleSort does with the order.
type ToggleRule int

const (
	// ToggleAscendingFirst sorts a newly chosen field ascending and flips
	// the order when the same field is chosen again.
	ToggleAscendingFirst ToggleRule = iota
	// ToggleFlip flips the order on every call, including the first call
	// on a new field.
	ToggleFlip
)

// ParseToggleRule maps a configuration value to a ToggleRule.
func ParseToggleRule(s string) (ToggleRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ascending-first", "asc-first":
		return ToggleAscendingFirst, nil
	case "flip", "always-flip":
		return ToggleFlip, nil
	default:
		return 0, fmt.Errorf("unknown sort toggle rule %q (want ascending-first or flip)", s)
	}
}

func (r ToggleRule) String() string {
	if r == ToggleFlip {
		return "flip"
	}
	return "ascending-first"
}

// Filter is the optional (parent field, parent value) pair.
type Filter struct {
	Key    string
	Value  string
	Active bool
}

// Sort is the current sort field and order. Order only matters when Key is set.
type Sort struct {
	Key   string
	Order Order
}

// State is a snapshot of everything that determines the visible rows.
type State struct {
	Filter   Filter
	Sort     Sort
	Page     int
	PageSize int
}

// PageInfo describes the current page for counters and pagination controls.
type PageInfo struct {
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// Option configures a View.
type Option func(*options)

type options struct {
	rule   ToggleRule
	strCmp func(a, b string) int
}

// WithToggleRule sets how repeated ToggleSort calls change the order.
func WithToggleRule(rule ToggleRule) Option {
	return func(o *options) { o.rule = rule }
}

// WithCollation compares string fields with the collation rules of tag
// instead of byte order.
func WithCollation(tag language.Tag) Option {
	return func(o *options) { o.strCmp = localeCompare(tag) }
}

// View is a filtered, sorted and paginated window over a collection.
type View[T any] struct {
	schema  Schema[T]
	compare map[string]comparator[T]
	rule    ToggleRule

	all     []T
	working []T
	sorted  []T

	state State
}

// New creates a view over rows. The rows slice is copied; the caller keeps
// ownership of the original.
func New[T any](schema Schema[T], rows []T, opts ...Option) (*View[T], error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	o := options{rule: ToggleAscendingFirst, strCmp: strings.Compare}
	for _, opt := range opts {
		opt(&o)
	}

	v := &View[T]{
		schema:  schema,
		compare: comparators(schema, o.strCmp),
		rule:    o.rule,
		all:     append([]T(nil), rows...),
		state: State{
			Page:     1,
			PageSize: schema.PageSize,
		},
	}
	v.rebuild()
	return v, nil
}

// Schema returns the schema the view was built with.
func (v *View[T]) Schema() Schema[T] {
	return v.schema
}

// State returns a copy of the current state.
func (v *View[T]) State() State {
	return v.state
}

// SetFilter restricts the working set to records whose parent key equals
// value and resets sort and pagination. On a schema without a parent key
// the working set stays the full collection.
func (v *View[T]) SetFilter(value string) {
	v.state.Filter = Filter{Key: v.schema.ParentKey, Value: value, Active: v.schema.ParentKey != ""}
	v.reset()
}

// ClearFilter makes the full collection the working set and resets sort and
// pagination.
func (v *View[T]) ClearFilter() {
	v.state.Filter = Filter{}
	v.reset()
}

func (v *View[T]) reset() {
	v.state.Sort = Sort{}
	v.state.Page = 1
	v.rebuild()
}

// ToggleSort selects field as the sort field and updates the order
// according to the view's ToggleRule. The current page is kept. It returns
// false, leaving the state untouched, when field is not sortable.
func (v *View[T]) ToggleSort(field string) bool {
	if _, ok := v.compare[field]; !ok {
		return false
	}
	switch {
	case v.rule == ToggleFlip:
		v.state.Sort.Order = flip(v.state.Sort.Order)
	case v.state.Sort.Key == field:
		v.state.Sort.Order = flip(v.state.Sort.Order)
	default:
		v.state.Sort.Order = Ascending
	}
	v.state.Sort.Key = field
	v.resort()
	return true
}

// ClearSort drops the sort field and restores working-set order.
func (v *View[T]) ClearSort() bool {
	if v.state.Sort.Key == "" {
		return false
	}
	v.state.Sort = Sort{}
	v.resort()
	return true
}

func flip(o Order) Order {
	if o == Ascending {
		return Descending
	}
	return Ascending
}

// NextPage advances one page. It is a no-op on the last page.
func (v *View[T]) NextPage() bool {
	if !v.HasNext() {
		return false
	}
	v.state.Page++
	return true
}

// PrevPage goes back one page. It is a no-op on the first page.
func (v *View[T]) PrevPage() bool {
	if !v.HasPrev() {
		return false
	}
	v.state.Page--
	return true
}

// FirstPage jumps to page 1.
func (v *View[T]) FirstPage() {
	v.state.Page = 1
}

// LastPage jumps to the last page.
func (v *View[T]) LastPage() {
	v.state.Page = v.TotalPages()
}

// GoToPage jumps to page n, clamped to [1, TotalPages].
func (v *View[T]) GoToPage(n int) {
	v.state.Page = clamp(n, 1, v.TotalPages())
}

// HasNext reports whether a page after the current one holds rows. It is
// computed from the row count, not from TotalPages, so an empty working set
// never offers a next page.
func (v *View[T]) HasNext() bool {
	return v.state.Page*v.state.PageSize < len(v.working)
}

// HasPrev reports whether the current page is past the first.
func (v *View[T]) HasPrev() bool {
	return v.state.Page > 1
}

// TotalPages is ceil(working set size / page size), and never less than 1.
func (v *View[T]) TotalPages() int {
	n := (len(v.working) + v.state.PageSize - 1) / v.state.PageSize
	return max(1, n)
}

// Len is the size of the working set.
func (v *View[T]) Len() int {
	return len(v.working)
}

// Total is the size of the unfiltered collection.
func (v *View[T]) Total() int {
	return len(v.all)
}

// Info summarizes pagination for display.
func (v *View[T]) Info() PageInfo {
	return PageInfo{
		Page:       v.state.Page,
		PageSize:   v.state.PageSize,
		Total:      len(v.working),
		TotalPages: v.TotalPages(),
	}
}

// VisibleRows returns the rows of the current page of the sorted working
// set. The result is a fresh slice; it is empty when nothing matches.
func (v *View[T]) VisibleRows() []T {
	start := (v.state.Page - 1) * v.state.PageSize
	if start >= len(v.sorted) {
		return []T{}
	}
	end := min(start+v.state.PageSize, len(v.sorted))
	return append([]T(nil), v.sorted[start:end]...)
}

// Sorted returns the whole working set in current sort order.
func (v *View[T]) Sorted() []T {
	return append([]T(nil), v.sorted...)
}

// Row returns the i-th visible row.
func (v *View[T]) Row(i int) (T, bool) {
	idx := (v.state.Page-1)*v.state.PageSize + i
	if i < 0 || i >= v.state.PageSize || idx >= len(v.sorted) {
		var zero T
		return zero, false
	}
	return v.sorted[idx], true
}

func (v *View[T]) rebuild() {
	v.working = v.filter()
	v.state.Page = clamp(v.state.Page, 1, v.TotalPages())
	v.resort()
}

func (v *View[T]) filter() []T {
	f := v.state.Filter
	if !f.Active {
		return v.all
	}
	out := make([]T, 0, len(v.all))
	for _, r := range v.all {
		if v.schema.Parent(r) == f.Value {
			out = append(out, r)
		}
	}
	return out
}

func (v *View[T]) resort() {
	rows := append([]T(nil), v.working...)
	if c, ok := v.compare[v.state.Sort.Key]; ok {
		if v.state.Sort.Order == Descending {
			slices.SortStableFunc(rows, func(a, b T) int { return c(b, a) })
		} else {
			slices.SortStableFunc(rows, c)
		}
	}
	v.sorted = rows
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
