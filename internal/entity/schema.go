// Package entity declares the table schemas of accounts, profiles and campaigns.
package entity

import (
	"fmt"
	"strconv"

	"adtables/internal/model"
	"adtables/internal/table"
	"adtables/internal/util"
)

// PageSizes holds the page size of each entity table.
type PageSizes struct {
	Accounts  int
	Profiles  int
	Campaigns int
}

// DefaultPageSizes returns the page sizes of the reference deployment.
func DefaultPageSizes() PageSizes {
	return PageSizes{Accounts: 3, Profiles: 5, Campaigns: 5}
}

// Validate checks that every page size is positive.
func (p PageSizes) Validate() error {
	for name, n := range map[string]int{"accounts": p.Accounts, "profiles": p.Profiles, "campaigns": p.Campaigns} {
		if n < 1 {
			return fmt.Errorf("page size for %s must be at least 1, got %d", name, n)
		}
	}
	return nil
}

// AccountSchema returns the accounts table schema.
func AccountSchema(pageSize int) table.Schema[model.Account] {
	return table.Schema[model.Account]{
		Name: "accounts",
		Fields: []table.Field[model.Account]{
			{Key: "accountId", Label: "Account ID", Sortable: true, Width: 12, Text: func(a model.Account) string { return a.ID }},
			{Key: "email", Label: "Email", Sortable: true, Width: 28, Text: func(a model.Account) string { return a.Email }},
			{Key: "creationDate", Label: "Creation Date", Sortable: true, Width: 14, Text: func(a model.Account) string { return a.CreationDate }},
		},
		ID:       func(a model.Account) string { return a.ID },
		PageSize: pageSize,
	}
}

// ProfileSchema returns the profiles table schema, filtered by account.
func ProfileSchema(pageSize int) table.Schema[model.Profile] {
	return table.Schema[model.Profile]{
		Name: "profiles",
		Fields: []table.Field[model.Profile]{
			{Key: "profileId", Label: "Profile ID", Sortable: true, Width: 12, Text: func(p model.Profile) string { return p.ID }},
			{Key: "country", Label: "Country", Sortable: true, Width: 14, Text: func(p model.Profile) string { return p.Country }},
			{Key: "marketplace", Label: "Marketplace", Sortable: true, Width: 18, Text: func(p model.Profile) string { return p.Marketplace }},
		},
		ParentKey: "accountId",
		Parent:    func(p model.Profile) string { return p.AccountID },
		ID:        func(p model.Profile) string { return p.ID },
		PageSize:  pageSize,
	}
}

// CampaignSchema returns the campaigns table schema, filtered by profile.
func CampaignSchema(pageSize int) table.Schema[model.Campaign] {
	return table.Schema[model.Campaign]{
		Name: "campaigns",
		Fields: []table.Field[model.Campaign]{
			{Key: "campaignId", Label: "Campaign ID", Sortable: true, Width: 12, Text: func(c model.Campaign) string { return c.ID }},
			{
				Key: "clicks", Label: "Clicks", Kind: table.KindNumber, Sortable: true, Width: 8,
				Text:   func(c model.Campaign) string { return strconv.FormatInt(c.Clicks, 10) },
				Number: func(c model.Campaign) float64 { return float64(c.Clicks) },
			},
			{
				Key: "cost", Label: "Cost", Kind: table.KindNumber, Sortable: true, Width: 10,
				Text:   func(c model.Campaign) string { return util.FormatCost(c.Cost) },
				Number: func(c model.Campaign) float64 { return c.Cost },
			},
			{Key: "date", Label: "Date", Sortable: true, Width: 12, Text: func(c model.Campaign) string { return c.Date }},
		},
		ParentKey: "profileId",
		Parent:    func(c model.Campaign) string { return c.ProfileID },
		ID:        func(c model.Campaign) string { return c.ID },
		PageSize:  pageSize,
	}
}
