package table

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type item struct {
	ID     string
	Parent string
	Name   string
	Score  float64
}

func itemSchema(pageSize int) Schema[item] {
	return Schema[item]{
		Name: "items",
		Fields: []Field[item]{
			{Key: "id", Label: "ID", Sortable: true, Text: func(i item) string { return i.ID }},
			{Key: "name", Label: "Name", Sortable: true, Text: func(i item) string { return i.Name }},
			{
				Key: "score", Label: "Score", Kind: KindNumber, Sortable: true,
				Text:   func(i item) string { return strconv.FormatFloat(i.Score, 'f', -1, 64) },
				Number: func(i item) float64 { return i.Score },
			},
			{Key: "note", Label: "Note", Text: func(i item) string { return "" }},
		},
		ParentKey: "parent",
		Parent:    func(i item) string { return i.Parent },
		ID:        func(i item) string { return i.ID },
		PageSize:  pageSize,
	}
}

func items(n int) []item {
	out := make([]item, n)
	for i := range out {
		out[i] = item{ID: fmt.Sprintf("I%d", i), Parent: "P" + strconv.Itoa(i%3), Name: "n", Score: float64(i)}
	}
	return out
}

func ids(rows []item) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func newView(t *testing.T, pageSize int, rows []item, opts ...Option) *View[item] {
	t.Helper()
	v, err := New(itemSchema(pageSize), rows, opts...)
	require.NoError(t, err)
	return v
}

func TestNewRejectsInvalidSchema(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Schema[item])
	}{
		{"zero page size", func(s *Schema[item]) { s.PageSize = 0 }},
		{"missing id", func(s *Schema[item]) { s.ID = nil }},
		{"parent without extractor", func(s *Schema[item]) { s.Parent = nil }},
		{"no fields", func(s *Schema[item]) { s.Fields = nil }},
		{"duplicate key", func(s *Schema[item]) { s.Fields = append(s.Fields, s.Fields[0]) }},
		{"empty key", func(s *Schema[item]) { s.Fields[0].Key = " " }},
		{"number without extractor", func(s *Schema[item]) { s.Fields[2].Number = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := itemSchema(3)
			s.Fields = append([]Field[item](nil), s.Fields...)
			tt.mutate(&s)
			_, err := New(s, nil)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidSchema))
		})
	}
}

func TestNewCopiesCollection(t *testing.T) {
	rows := items(4)
	v := newView(t, 10, rows)
	rows[0].ID = "changed"
	require.Equal(t, "I0", v.VisibleRows()[0].ID)

	visible := v.VisibleRows()
	visible[1].ID = "changed"
	require.Equal(t, "I1", v.VisibleRows()[1].ID)
}

func TestFilterPreservesOrder(t *testing.T) {
	rows := items(10)
	v := newView(t, 100, rows)

	for _, parent := range []string{"P0", "P1", "P2", "missing"} {
		v.SetFilter(parent)
		want := []string{}
		for _, r := range rows {
			if r.Parent == parent {
				want = append(want, r.ID)
			}
		}
		require.Equal(t, len(want), v.Len())
		if diff := cmp.Diff(want, ids(v.Sorted())); diff != "" {
			t.Errorf("working set for %s mismatch (-want +got):\n%s", parent, diff)
		}
	}

	v.ClearFilter()
	require.Equal(t, 10, v.Len())
	require.Equal(t, ids(rows), ids(v.Sorted()))
}

func TestSetFilterResetsSortAndPage(t *testing.T) {
	v := newView(t, 1, items(9))
	v.SetFilter("P0")
	require.True(t, v.ToggleSort("score"))
	require.True(t, v.NextPage())

	v.SetFilter("P1")
	st := v.State()
	require.Equal(t, Sort{}, st.Sort)
	require.Equal(t, 1, st.Page)
	require.Equal(t, Filter{Key: "parent", Value: "P1", Active: true}, st.Filter)
}

func TestFilterWithoutParentKeepsCollection(t *testing.T) {
	s := itemSchema(5)
	s.ParentKey = ""
	s.Parent = nil
	v, err := New(s, items(4))
	require.NoError(t, err)

	v.SetFilter("P1")
	require.Equal(t, 4, v.Len())
	require.False(t, v.State().Filter.Active)
}

func TestToggleSortAscendingFirst(t *testing.T) {
	rows := []item{
		{ID: "a", Score: 3}, {ID: "b", Score: 1}, {ID: "c", Score: 2},
	}
	v := newView(t, 10, rows)

	require.True(t, v.ToggleSort("score"))
	require.Equal(t, Sort{Key: "score", Order: Ascending}, v.State().Sort)
	require.Equal(t, []string{"b", "c", "a"}, ids(v.VisibleRows()))

	require.True(t, v.ToggleSort("score"))
	require.Equal(t, Descending, v.State().Sort.Order)
	require.Equal(t, []string{"a", "c", "b"}, ids(v.VisibleRows()))

	// a new field always starts ascending
	require.True(t, v.ToggleSort("id"))
	require.Equal(t, Sort{Key: "id", Order: Ascending}, v.State().Sort)
	require.Equal(t, []string{"a", "b", "c"}, ids(v.VisibleRows()))
}

func TestToggleSortFlipRule(t *testing.T) {
	rows := []item{{ID: "a", Score: 3}, {ID: "b", Score: 1}, {ID: "c", Score: 2}}
	v := newView(t, 10, rows, WithToggleRule(ToggleFlip))

	// the first click already flips away from the initial ascending order
	require.True(t, v.ToggleSort("score"))
	require.Equal(t, Sort{Key: "score", Order: Descending}, v.State().Sort)
	require.Equal(t, []string{"a", "c", "b"}, ids(v.VisibleRows()))

	require.True(t, v.ToggleSort("id"))
	require.Equal(t, Sort{Key: "id", Order: Ascending}, v.State().Sort)
}

func TestToggleSortIgnoresUnsortableFields(t *testing.T) {
	v := newView(t, 10, items(3))
	require.False(t, v.ToggleSort("note"))
	require.False(t, v.ToggleSort("nope"))
	require.False(t, v.ToggleSort(""))
	require.Equal(t, Sort{}, v.State().Sort)
}

func TestToggleSortKeepsPage(t *testing.T) {
	v := newView(t, 2, items(6))
	require.True(t, v.NextPage())
	require.True(t, v.ToggleSort("score"))
	require.Equal(t, 2, v.State().Page)
	require.True(t, v.ToggleSort("score"))
	require.Equal(t, 2, v.State().Page)
	require.Equal(t, []string{"I3", "I2"}, ids(v.VisibleRows()))
}

func TestSortToggleRoundTrip(t *testing.T) {
	rows := []item{{ID: "a", Score: 5}, {ID: "b", Score: 9}, {ID: "c", Score: 1}, {ID: "d", Score: 7}}
	v := newView(t, 10, rows)

	v.ToggleSort("score")
	asc := ids(v.Sorted())
	v.ToggleSort("score")
	desc := ids(v.Sorted())

	reversed := make([]string, len(asc))
	for i, id := range asc {
		reversed[len(asc)-1-i] = id
	}
	require.Equal(t, reversed, desc)

	v.ToggleSort("score")
	require.Equal(t, asc, ids(v.Sorted()))
}

func TestSortIsStable(t *testing.T) {
	rows := []item{
		{ID: "1", Name: "b"}, {ID: "2", Name: "a"}, {ID: "3", Name: "b"},
		{ID: "4", Name: "a"}, {ID: "5", Name: "b"},
	}
	v := newView(t, 10, rows)

	v.ToggleSort("name")
	require.Equal(t, []string{"2", "4", "1", "3", "5"}, ids(v.Sorted()))
	first := v.Sorted()
	require.Equal(t, first, v.Sorted())

	v.ToggleSort("name")
	require.Equal(t, []string{"1", "3", "5", "2", "4"}, ids(v.Sorted()))
}

func TestNumberFieldsCompareNumerically(t *testing.T) {
	rows := []item{{ID: "a", Score: 10}, {ID: "b", Score: 9}, {ID: "c", Score: 100}}
	v := newView(t, 10, rows)
	v.ToggleSort("score")
	require.Equal(t, []string{"b", "a", "c"}, ids(v.Sorted()))
}

func TestClearSortRestoresWorkingOrder(t *testing.T) {
	rows := items(5)
	v := newView(t, 10, rows)
	require.False(t, v.ClearSort())
	v.ToggleSort("score")
	v.ToggleSort("score")
	require.True(t, v.ClearSort())
	require.Equal(t, ids(rows), ids(v.Sorted()))
}

func TestCollation(t *testing.T) {
	rows := []item{{ID: "1", Name: "beta"}, {ID: "2", Name: "Alpha"}, {ID: "3", Name: "alpha"}}

	v := newView(t, 10, rows)
	v.ToggleSort("name")
	require.Equal(t, []string{"2", "3", "1"}, ids(v.Sorted()), "byte order puts uppercase first")

	v = newView(t, 10, rows, WithCollation(language.English))
	v.ToggleSort("name")
	got := ids(v.Sorted())
	require.Equal(t, "1", got[2], "beta sorts after both alphas")
}

func TestSevenRowsPageSizeThree(t *testing.T) {
	v := newView(t, 3, items(7))
	require.Equal(t, 3, v.TotalPages())
	require.Equal(t, []string{"I0", "I1", "I2"}, ids(v.VisibleRows()))

	require.True(t, v.NextPage())
	require.True(t, v.NextPage())
	require.Equal(t, []string{"I6"}, ids(v.VisibleRows()))
	require.Equal(t, PageInfo{Page: 3, PageSize: 3, Total: 7, TotalPages: 3}, v.Info())
}

func TestPaginationBoundaries(t *testing.T) {
	v := newView(t, 3, items(7))
	require.False(t, v.HasPrev())
	require.False(t, v.PrevPage())
	require.Equal(t, 1, v.State().Page)

	v.LastPage()
	require.Equal(t, 3, v.State().Page)
	require.False(t, v.HasNext())
	require.False(t, v.NextPage())
	require.Equal(t, 3, v.State().Page)

	v.FirstPage()
	require.Equal(t, 1, v.State().Page)

	v.GoToPage(99)
	require.Equal(t, 3, v.State().Page)
	v.GoToPage(-4)
	require.Equal(t, 1, v.State().Page)
}

func TestPaginationCoverage(t *testing.T) {
	for size := 0; size <= 13; size++ {
		for pageSize := 1; pageSize <= 6; pageSize++ {
			v := newView(t, pageSize, items(size))
			v.ToggleSort("score")
			v.ToggleSort("score")

			var all []item
			for {
				page := v.VisibleRows()
				require.LessOrEqual(t, len(page), pageSize)
				all = append(all, page...)
				if !v.NextPage() {
					break
				}
			}
			require.Equal(t, v.TotalPages(), v.State().Page)
			if diff := cmp.Diff(ids(v.Sorted()), ids(all)); diff != "" {
				t.Fatalf("size %d page %d: pages do not cover sorted set (-want +got):\n%s", size, pageSize, diff)
			}
		}
	}
}

func TestSortHappensBeforePaging(t *testing.T) {
	rows := []item{{ID: "a", Score: 4}, {ID: "b", Score: 3}, {ID: "c", Score: 2}, {ID: "d", Score: 1}}
	v := newView(t, 2, rows)
	v.ToggleSort("score")
	require.Equal(t, []string{"d", "c"}, ids(v.VisibleRows()))
	v.NextPage()
	require.Equal(t, []string{"b", "a"}, ids(v.VisibleRows()))
}

func TestEmptyWorkingSet(t *testing.T) {
	v := newView(t, 5, items(6))
	v.SetFilter("A9")

	require.Empty(t, v.VisibleRows())
	require.NotNil(t, v.VisibleRows())
	require.Equal(t, 1, v.TotalPages())
	require.False(t, v.HasNext())
	require.False(t, v.HasPrev())
	require.False(t, v.NextPage())
	require.Equal(t, 1, v.State().Page)

	_, ok := v.Row(0)
	require.False(t, ok)
}

func TestCampaignScenario(t *testing.T) {
	var rows []item
	for i := 0; i < 12; i++ {
		parent := "P2"
		if i%2 == 0 && i < 10 {
			parent = "P1"
		}
		rows = append(rows, item{ID: fmt.Sprintf("C%02d", i), Parent: parent, Score: float64((i * 7) % 11)})
	}
	v := newView(t, 5, rows)
	v.SetFilter("P1")
	require.Equal(t, 5, v.Len())

	v.ToggleSort("score")
	asc := v.Sorted()
	for i := 1; i < len(asc); i++ {
		require.LessOrEqual(t, asc[i-1].Score, asc[i].Score)
	}
	v.ToggleSort("score")
	desc := v.Sorted()
	for i := range desc {
		require.Equal(t, asc[len(asc)-1-i].ID, desc[i].ID)
	}
}

func TestRowIndexesIntoCurrentPage(t *testing.T) {
	v := newView(t, 3, items(7))
	v.NextPage()
	r, ok := v.Row(0)
	require.True(t, ok)
	require.Equal(t, "I3", r.ID)

	v.NextPage()
	_, ok = v.Row(1)
	require.False(t, ok)
	_, ok = v.Row(-1)
	require.False(t, ok)
}

func TestParseToggleRule(t *testing.T) {
	tests := []struct {
		in      string
		want    ToggleRule
		wantErr bool
	}{
		{"", ToggleAscendingFirst, false},
		{"ascending-first", ToggleAscendingFirst, false},
		{" FLIP ", ToggleFlip, false},
		{"sideways", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseToggleRule(tt.in)
		if tt.wantErr {
			require.Error(t, err)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
		require.NotEmpty(t, got.String())
	}
}
