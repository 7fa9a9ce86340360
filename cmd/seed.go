package cmd

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"adtables/internal/db"
	"adtables/internal/model"
	"adtables/internal/source"
	"adtables/internal/util"
)

func newSeedCmd(a *app) *cobra.Command {
	var from string
	c := &cobra.Command{
		Use:   "seed",
		Short: "Replace the contents of a SQL source with a YAML data set",
		Example: `  adtables seed --from data.yaml
  adtables seed --source postgres --dsn "postgres://localhost/ads?sslmode=disable"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return seed(cmd.Context(), cmd.OutOrStdout(), a.cfg, from)
		},
	}
	c.Flags().StringVar(&from, "from", "", "YAML data set to load (default: built-in sample)")
	return c
}

func seed(ctx context.Context, w io.Writer, cfg Config, from string) error {
	switch cfg.Source {
	case source.KindSQLite, source.KindPostgres, source.KindMySQL:
	default:
		return fmt.Errorf("seed writes to sqlite, postgres or mysql, not %s", cfg.Source)
	}

	var (
		ds  model.Dataset
		err error
	)
	if from == "" {
		ds, err = source.SampleDataset()
	} else {
		ds, err = source.ReadYAML(from)
	}
	if err != nil {
		return err
	}

	store, err := db.Open(cfg.Source, cfg.DSN)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ReplaceDataset(ctx, ds); err != nil {
		return err
	}
	log.Printf("[SEED] replaced %s data set", cfg.Source)
	fmt.Fprintf(w, "Loaded %s accounts, %s profiles, %s campaigns into %s\n",
		util.FormatCount(int64(len(ds.Accounts))), util.FormatCount(int64(len(ds.Profiles))),
		util.FormatCount(int64(len(ds.Campaigns))), cfg.Source)
	return nil
}

// seedIfEmpty loads the sample data into a SQLite database without
// accounts, so a first run has something to show.
func seedIfEmpty(ctx context.Context, path string) error {
	store, err := db.Open(db.DriverSQLite, path)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.CountAccounts(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	ds, err := source.SampleDataset()
	if err != nil {
		return err
	}
	log.Printf("[SEED] %s has no accounts, loading sample data", path)
	return store.ReplaceDataset(ctx, ds)
}
