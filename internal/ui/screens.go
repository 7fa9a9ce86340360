package ui

import (
	"fmt"

	"golang.org/x/text/language"

	"adtables/internal/entity"
	"adtables/internal/model"
	"adtables/internal/nav"
	"adtables/internal/table"
)

// Options configures the tables the UI mounts.
type Options struct {
	Start      nav.Route
	PageSizes  entity.PageSizes
	ToggleRule table.ToggleRule
	// Collation, when set, orders string columns by locale instead of
	// byte-wise.
	Collation *language.Tag
}

// DefaultOptions starts at the accounts table with the default page sizes.
func DefaultOptions() Options {
	return Options{
		Start:     nav.Home(),
		PageSizes: entity.DefaultPageSizes(),
	}
}

func (o Options) tableOptions() []table.Option {
	opts := []table.Option{table.WithToggleRule(o.ToggleRule)}
	if o.Collation != nil {
		opts = append(opts, table.WithCollation(*o.Collation))
	}
	return opts
}

// newScreen mounts a fresh table for route: the route's filter is applied
// and sort and page start from their defaults.
func newScreen(route nav.Route, ds model.Dataset, o Options) (tableScreen, error) {
	switch route.View {
	case nav.ViewAccounts:
		return mount(route, "Accounts", "No accounts available",
			entity.AccountSchema(o.PageSizes.Accounts), ds.Accounts, o)
	case nav.ViewProfiles:
		return mount(route, fmt.Sprintf("Profiles for Account ID: %s", route.AccountID), "No profiles available",
			entity.ProfileSchema(o.PageSizes.Profiles), ds.Profiles, o)
	case nav.ViewCampaigns:
		return mount(route, fmt.Sprintf("Campaigns for Profile ID: %s", route.ProfileID), "No campaigns available",
			entity.CampaignSchema(o.PageSizes.Campaigns), ds.Campaigns, o)
	default:
		return nil, fmt.Errorf("%w: %s", nav.ErrUnknownRoute, route)
	}
}

func mount[T any](route nav.Route, title, empty string, schema table.Schema[T], rows []T, o Options) (tableScreen, error) {
	t, err := NewTableModel(route, title, empty, schema, rows, o.tableOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to mount %s: %w", route, err)
	}
	return t, nil
}
