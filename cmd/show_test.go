package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"adtables/internal/model"
)

// execute runs the command line with a private HOME.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := newRootCmd("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func decodePage[T any](t *testing.T, out string) pageDoc[T] {
	t.Helper()
	var doc pageDoc[T]
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	return doc
}

func ids[T any](rows []T, id func(T) string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, id(r))
	}
	return out
}

func TestShowAccountsTable(t *testing.T) {
	out, err := execute(t, "show", "--source", "sample")
	require.NoError(t, err)
	require.Contains(t, out, "Account ID")
	require.Contains(t, out, "ops@northwind.example")
	require.NotContains(t, out, "A4")
	require.Contains(t, out, "Page 1 of 3 · 7 accounts")
}

func TestShowProfilesYAML(t *testing.T) {
	out, err := execute(t, "show", "/accounts/A1/profiles", "--source", "sample", "--format", "yaml")
	require.NoError(t, err)

	doc := decodePage[model.Profile](t, out)
	require.Equal(t, "/accounts/A1/profiles", doc.Route)
	require.Equal(t, 1, doc.Page)
	require.Equal(t, 2, doc.TotalPages)
	require.Equal(t, 6, doc.Total)
	require.Empty(t, doc.Sort)
	want := []string{"P1", "P6", "P9", "P10", "P12"}
	if diff := cmp.Diff(want, ids(doc.Rows, func(p model.Profile) string { return p.ID })); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestShowCampaignsSortedDescending(t *testing.T) {
	out, err := execute(t, "show", "/accounts/A1/profiles/P1/campaigns",
		"--source", "sample", "--sort", "clicks", "--desc", "--all", "--format", "yaml")
	require.NoError(t, err)

	doc := decodePage[model.Campaign](t, out)
	require.Equal(t, "clicks desc", doc.Sort)
	// Equal click counts keep data-set order.
	want := []string{"C6", "C2", "C15", "C27", "C25", "C30", "C23"}
	if diff := cmp.Diff(want, ids(doc.Rows, func(c model.Campaign) string { return c.ID })); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestShowSortWithFlipRule(t *testing.T) {
	out, err := execute(t, "show", "--source", "sample", "--sort-toggle", "flip",
		"--sort", "email", "--format", "yaml")
	require.NoError(t, err)

	doc := decodePage[model.Account](t, out)
	require.Equal(t, "email asc", doc.Sort)
	require.Equal(t, []string{"A2", "A3", "A7"}, ids(doc.Rows, func(a model.Account) string { return a.ID }))
}

func TestShowClampsPage(t *testing.T) {
	out, err := execute(t, "show", "--source", "sample", "--page", "9", "--format", "yaml")
	require.NoError(t, err)

	doc := decodePage[model.Account](t, out)
	require.Equal(t, 3, doc.Page)
	require.Equal(t, []string{"A7"}, ids(doc.Rows, func(a model.Account) string { return a.ID }))
}

func TestShowEmptyProfiles(t *testing.T) {
	out, err := execute(t, "show", "/accounts/A4/profiles", "--source", "sample")
	require.NoError(t, err)
	require.Contains(t, out, "No profiles available")
	require.Contains(t, out, "Page 1 of 1 · 0 profiles")
}

func TestShowPageSizeFlag(t *testing.T) {
	out, err := execute(t, "show", "--source", "sample", "--page-size-accounts", "7", "--format", "yaml")
	require.NoError(t, err)
	doc := decodePage[model.Account](t, out)
	require.Equal(t, 1, doc.TotalPages)
	require.Len(t, doc.Rows, 7)
}

func TestShowErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"unknown field", []string{"--sort", "nope"}, `cannot sort accounts by "nope"`},
		{"desc without sort", []string{"--desc"}, "--desc requires --sort"},
		{"unknown format", []string{"--format", "csv"}, `unknown format "csv"`},
		{"bad route", []string{"/accounts/A1"}, "unknown route"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"show", "--source", "sample"}, tt.args...)
			_, err := execute(t, args...)
			require.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestSeedThenShowSQLite(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "ads.db")

	sample := filepath.Join(dir, "data.yaml")
	doc := `
accounts:
  - id: X1
    email: one@example.com
    creationDate: "2024-01-01"
profiles:
  - id: Q1
    accountId: X1
    country: Spain
    marketplace: amazon.es
`
	require.NoError(t, os.WriteFile(sample, []byte(doc), 0644))

	out, err := execute(t, "seed", "--source", "sqlite", "--dsn", dsn, "--from", sample)
	require.NoError(t, err)
	require.Equal(t, "Loaded 1 accounts, 1 profiles, 0 campaigns into sqlite\n", out)

	out, err = execute(t, "show", "/accounts/X1/profiles", "--source", "sqlite", "--dsn", dsn, "--format", "yaml")
	require.NoError(t, err)
	page := decodePage[model.Profile](t, out)
	require.Equal(t, []model.Profile{{ID: "Q1", AccountID: "X1", Country: "Spain", Marketplace: "amazon.es"}}, page.Rows)
}

func TestShowSeedsEmptySQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "fresh.db")
	out, err := execute(t, "show", "--source", "sqlite", "--dsn", dsn, "--all", "--format", "yaml")
	require.NoError(t, err)
	page := decodePage[model.Account](t, out)
	require.Len(t, page.Rows, 7)
}

func TestSeedRejectsNonSQLSource(t *testing.T) {
	_, err := execute(t, "seed", "--source", "sample")
	require.ErrorContains(t, err, "seed writes to sqlite, postgres or mysql")
}
