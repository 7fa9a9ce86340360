// Package cmd implements the adtables command line.
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// app carries the configuration resolved before any command runs.
type app struct {
	cfg Config
}

// Execute runs the command line.
func Execute(version string) error {
	// Load .env files first so they feed the ADTABLES_* lookups.
	loadDotEnv(".env")
	loadDotEnv(".env.local")

	return newRootCmd(version).Execute()
}

func newRootCmd(version string) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "adtables",
		Short: "Browse accounts, profiles and campaigns as paged tables",
		Long: `adtables shows an account hierarchy as three drill-down tables.

Select an account to see its profiles, select a profile to see its
campaigns. Every table sorts by column and pages through its rows.

Configuration sources (in order of precedence):
  1. Command line flags
  2. Environment variables (ADTABLES_SOURCE, ADTABLES_DSN, ...)
  3. adtables.yaml in the current directory or ~/.adtables
  4. Defaults`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configFile, _ := cmd.Flags().GetString("config")
			v, err := newViper(configFile)
			if err != nil {
				return err
			}
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			cfg, err := configFrom(v)
			if err != nil {
				return err
			}
			a.cfg = cfg

			// The TUI owns the terminal and sets up its own log sink.
			if cmd.HasParent() {
				if cfg.Verbose {
					log.SetOutput(cmd.ErrOrStderr())
				} else {
					log.SetOutput(io.Discard)
				}
			}
			return nil
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), a.cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.String("source", "", "Data source: sample, yaml, sqlite, postgres, mysql or mongo (default sqlite)")
	flags.String("dsn", "", "File path or connection string of the source (default ~/.adtables/adtables.db)")
	flags.String("sort-toggle", "", "Sort toggle rule: ascending-first or flip")
	flags.String("collation", "", "Locale for ordering text columns, e.g. de or sv (default byte order)")
	flags.Int("page-size-accounts", 0, "Rows per page in the accounts table (default 3)")
	flags.Int("page-size-profiles", 0, "Rows per page in the profiles table (default 5)")
	flags.Int("page-size-campaigns", 0, "Rows per page in the campaigns table (default 5)")
	flags.String("config", "", "Config file (default ./adtables.yaml or ~/.adtables/adtables.yaml)")
	flags.Bool("verbose", false, "Log to stderr")

	root.Flags().String("start", "", "Route to open first, e.g. /accounts/A1/profiles")
	root.Flags().String("log-file", "", "Write logs to this file while the UI runs")

	root.AddCommand(newShowCmd(a), newSeedCmd(a))
	return root
}

// loadDotEnv sets variables from a KEY=VALUE file without overriding the
// environment.
func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		name, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if _, set := os.LookupEnv(name); !set {
			_ = os.Setenv(name, value)
		}
	}
}
