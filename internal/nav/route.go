// Package nav models the drill-down routes between the entity tables.
package nav

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrUnknownRoute is returned when a path does not name a view.
var ErrUnknownRoute = errors.New("unknown route")

// View identifies which table a route shows.
type View int

const (
	ViewAccounts View = iota
	ViewProfiles
	ViewCampaigns
)

func (v View) String() string {
	switch v {
	case ViewProfiles:
		return "profiles"
	case ViewCampaigns:
		return "campaigns"
	default:
		return "accounts"
	}
}

// Route is a view identifier plus its path parameters.
type Route struct {
	View      View
	AccountID string
	ProfileID string
}

// Navigator accepts navigation requests.
type Navigator interface {
	Navigate(Route)
}

// Home is the accounts view, the root of the hierarchy.
func Home() Route {
	return Route{View: ViewAccounts}
}

// Profiles is the profiles view of one account.
func Profiles(accountID string) Route {
	return Route{View: ViewProfiles, AccountID: accountID}
}

// Campaigns is the campaigns view of one profile. The account is carried
// for the back link only.
func Campaigns(accountID, profileID string) Route {
	return Route{View: ViewCampaigns, AccountID: accountID, ProfileID: profileID}
}

// Path renders the route as a slash-separated path.
func (r Route) Path() string {
	switch r.View {
	case ViewProfiles:
		return "/accounts/" + url.PathEscape(r.AccountID) + "/profiles"
	case ViewCampaigns:
		return "/accounts/" + url.PathEscape(r.AccountID) + "/profiles/" + url.PathEscape(r.ProfileID) + "/campaigns"
	default:
		return "/accounts"
	}
}

func (r Route) String() string {
	return r.Path()
}

// FilterValue is the parent value the route's table is filtered by.
func (r Route) FilterValue() (string, bool) {
	switch r.View {
	case ViewProfiles:
		return r.AccountID, true
	case ViewCampaigns:
		return r.ProfileID, true
	default:
		return "", false
	}
}

// Child is the route reached by selecting the row id in this route's table.
// Campaign rows have no children.
func (r Route) Child(id string) (Route, bool) {
	switch r.View {
	case ViewAccounts:
		return Profiles(id), true
	case ViewProfiles:
		return Campaigns(r.AccountID, id), true
	default:
		return Route{}, false
	}
}

// Parent is the route of the back link. The accounts view has none.
func (r Route) Parent() (Route, bool) {
	switch r.View {
	case ViewProfiles:
		return Home(), true
	case ViewCampaigns:
		return Profiles(r.AccountID), true
	default:
		return Route{}, false
	}
}

// Breadcrumb lists the route's ancestry for headers, e.g. [Accounts A1 P3].
func (r Route) Breadcrumb() []string {
	parts := []string{"Accounts"}
	switch r.View {
	case ViewProfiles:
		parts = append(parts, r.AccountID)
	case ViewCampaigns:
		parts = append(parts, r.AccountID, r.ProfileID)
	}
	return parts
}

// Parse reads a route from a path such as /accounts/A1/profiles.
func Parse(path string) (Route, error) {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return Home(), nil
	}
	raw := strings.Split(trimmed, "/")
	segs := make([]string, len(raw))
	for i, s := range raw {
		u, err := url.PathUnescape(s)
		if err != nil {
			return Route{}, fmt.Errorf("%w: %q: %v", ErrUnknownRoute, path, err)
		}
		segs[i] = u
	}

	switch {
	case len(segs) == 1 && segs[0] == "accounts":
		return Home(), nil
	case len(segs) == 3 && segs[0] == "accounts" && segs[2] == "profiles" && segs[1] != "":
		return Profiles(segs[1]), nil
	case len(segs) == 5 && segs[0] == "accounts" && segs[2] == "profiles" && segs[4] == "campaigns" &&
		segs[1] != "" && segs[3] != "":
		return Campaigns(segs[1], segs[3]), nil
	}
	return Route{}, fmt.Errorf("%w: %q", ErrUnknownRoute, path)
}
