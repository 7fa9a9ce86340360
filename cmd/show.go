package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"adtables/internal/entity"
	"adtables/internal/model"
	"adtables/internal/nav"
	"adtables/internal/source"
	"adtables/internal/table"
	"adtables/internal/ui"
)

type showOptions struct {
	page   int
	sort   string
	desc   bool
	all    bool
	format string
}

func newShowCmd(a *app) *cobra.Command {
	var o showOptions
	c := &cobra.Command{
		Use:   "show [path]",
		Short: "Print one page of a table without starting the UI",
		Example: `  adtables show --source sample
  adtables show /accounts/A1/profiles --sort country --desc
  adtables show /accounts/A1/profiles/P1/campaigns --page 2 --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route := a.cfg.Start
			if len(args) == 1 {
				r, err := nav.Parse(args[0])
				if err != nil {
					return err
				}
				route = r
			}

			ctx := cmd.Context()
			src, err := openSource(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer src.Close()

			ds, err := source.Load(ctx, src)
			if err != nil {
				return err
			}
			return show(cmd.OutOrStdout(), route, ds, a.cfg, o)
		},
	}
	c.Flags().IntVar(&o.page, "page", 1, "Page to print (clamped to the available pages)")
	c.Flags().StringVar(&o.sort, "sort", "", "Field to sort by, e.g. email, country or clicks")
	c.Flags().BoolVar(&o.desc, "desc", false, "Sort descending")
	c.Flags().BoolVar(&o.all, "all", false, "Print every matching row instead of one page")
	c.Flags().StringVarP(&o.format, "format", "f", "table", "Output format: table or yaml")
	return c
}

func show(w io.Writer, route nav.Route, ds model.Dataset, cfg Config, o showOptions) error {
	switch route.View {
	case nav.ViewAccounts:
		return showView(w, route, entity.AccountSchema(cfg.PageSizes.Accounts), ds.Accounts, cfg.TableOptions(), o)
	case nav.ViewProfiles:
		return showView(w, route, entity.ProfileSchema(cfg.PageSizes.Profiles), ds.Profiles, cfg.TableOptions(), o)
	case nav.ViewCampaigns:
		return showView(w, route, entity.CampaignSchema(cfg.PageSizes.Campaigns), ds.Campaigns, cfg.TableOptions(), o)
	default:
		return fmt.Errorf("%w: %s", nav.ErrUnknownRoute, route)
	}
}

// pageDoc is the yaml form of a printed page.
type pageDoc[T any] struct {
	Route      string `yaml:"route"`
	Page       int    `yaml:"page"`
	TotalPages int    `yaml:"totalPages"`
	Total      int    `yaml:"total"`
	Sort       string `yaml:"sort,omitempty"`
	Rows       []T    `yaml:"rows"`
}

func showView[T any](w io.Writer, route nav.Route, schema table.Schema[T], rows []T, opts []table.Option, o showOptions) error {
	v, err := table.New(schema, rows, opts...)
	if err != nil {
		return err
	}
	if value, ok := route.FilterValue(); ok {
		v.SetFilter(value)
	}

	if o.sort != "" {
		if !v.ToggleSort(o.sort) {
			return fmt.Errorf("cannot sort %s by %q (sortable: %s)", schema.Name, o.sort, strings.Join(sortableKeys(schema), ", "))
		}
		want := table.Ascending
		if o.desc {
			want = table.Descending
		}
		if v.State().Sort.Order != want {
			v.ToggleSort(o.sort)
		}
	} else if o.desc {
		return fmt.Errorf("--desc requires --sort")
	}
	v.GoToPage(o.page)

	page := v.VisibleRows()
	if o.all {
		page = v.Sorted()
	}
	info := v.Info()

	switch o.format {
	case "yaml":
		doc := pageDoc[T]{
			Route:      route.Path(),
			Page:       info.Page,
			TotalPages: info.TotalPages,
			Total:      info.Total,
			Rows:       page,
		}
		if s := v.State().Sort; s.Key != "" {
			doc.Sort = s.Key + " " + s.Order.String()
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode page: %w", err)
		}
		return enc.Close()

	case "table", "":
		fmt.Fprintln(w, renderPageTable(schema, page))
		if len(page) == 0 {
			fmt.Fprintf(w, "No %s available\n", schema.Name)
		}
		if o.all {
			fmt.Fprintf(w, "%d %s\n", info.Total, schema.Name)
		} else {
			fmt.Fprintf(w, "Page %d of %d · %d %s\n", info.Page, info.TotalPages, info.Total, schema.Name)
		}
		return nil

	default:
		return fmt.Errorf("unknown format %q (want table or yaml)", o.format)
	}
}

func renderPageTable[T any](schema table.Schema[T], rows []T) string {
	headers := make([]string, len(schema.Fields))
	for i, f := range schema.Fields {
		headers[i] = f.Label
	}

	headerStyle := lipgloss.NewStyle().Foreground(ui.ColorAccent).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	numberStyle := cellStyle.Align(lipgloss.Right)

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ui.ColorMuted)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == ltable.HeaderRow:
				return headerStyle
			case schema.Fields[col].Kind == table.KindNumber:
				return numberStyle
			default:
				return cellStyle
			}
		})

	for _, r := range rows {
		cells := make([]string, len(schema.Fields))
		for i, f := range schema.Fields {
			cells[i] = f.Text(r)
		}
		t.Row(cells...)
	}
	return t.Render()
}

func sortableKeys[T any](schema table.Schema[T]) []string {
	var keys []string
	for _, f := range schema.Fields {
		if f.Sortable {
			keys = append(keys, f.Key)
		}
	}
	return keys
}
