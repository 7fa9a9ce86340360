// Package source provides the read-only data sources behind the tables.
package source

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"adtables/internal/db"
	"adtables/internal/model"
)

// ErrUnknownSource is returned by Open for an unsupported source kind.
var ErrUnknownSource = errors.New("unknown data source")

// Source kinds accepted by Open.
const (
	KindSample   = "sample"
	KindYAML     = "yaml"
	KindSQLite   = db.DriverSQLite
	KindPostgres = db.DriverPostgres
	KindMySQL    = db.DriverMySQL
	KindMongo    = "mongo"
)

// Source returns complete collections. It neither filters nor paginates.
type Source interface {
	Accounts(ctx context.Context) ([]model.Account, error)
	Profiles(ctx context.Context) ([]model.Profile, error)
	Campaigns(ctx context.Context) ([]model.Campaign, error)
	Close() error
}

// Kinds lists the accepted source kinds.
func Kinds() []string {
	return []string{KindSample, KindYAML, KindSQLite, KindPostgres, KindMySQL, KindMongo}
}

// Open connects to the source of the given kind. dsn is a file path for
// yaml and sqlite, a connection string for postgres, mysql and mongo, and
// ignored for sample.
func Open(ctx context.Context, kind, dsn string) (Source, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	log.Printf("[SOURCE] opening %s source", kind)

	switch kind {
	case KindSample:
		return Sample()
	case KindYAML:
		return OpenYAML(dsn)
	case KindSQLite, KindPostgres, KindMySQL:
		store, err := db.Open(kind, dsn)
		if err != nil {
			return nil, err
		}
		return store, nil
	case KindMongo:
		m, err := OpenMongo(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownSource, kind, strings.Join(Kinds(), ", "))
	}
}

// Load reads every collection from src.
func Load(ctx context.Context, src Source) (model.Dataset, error) {
	accounts, err := src.Accounts(ctx)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to load accounts: %w", err)
	}
	profiles, err := src.Profiles(ctx)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to load profiles: %w", err)
	}
	campaigns, err := src.Campaigns(ctx)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to load campaigns: %w", err)
	}
	log.Printf("[SOURCE] loaded %d accounts, %d profiles, %d campaigns", len(accounts), len(profiles), len(campaigns))
	return model.Dataset{Accounts: accounts, Profiles: profiles, Campaigns: campaigns}, nil
}

// static serves a data set that is already in memory.
type static struct {
	ds model.Dataset
}

// FromDataset wraps an in-memory data set as a Source.
func FromDataset(ds model.Dataset) Source {
	return static{ds: ds}
}

func (s static) Accounts(context.Context) ([]model.Account, error) {
	return append([]model.Account(nil), s.ds.Accounts...), nil
}

func (s static) Profiles(context.Context) ([]model.Profile, error) {
	return append([]model.Profile(nil), s.ds.Profiles...), nil
}

func (s static) Campaigns(context.Context) ([]model.Campaign, error) {
	return append([]model.Campaign(nil), s.ds.Campaigns...), nil
}

func (s static) Close() error {
	return nil
}
