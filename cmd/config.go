package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"adtables/internal/entity"
	"adtables/internal/nav"
	"adtables/internal/source"
	"adtables/internal/table"
	"adtables/internal/ui"
)

// Config keys, shared by flags, ADTABLES_* environment variables and the
// adtables.yaml config file.
const (
	keySource            = "source"
	keyDSN               = "dsn"
	keyStart             = "start"
	keySortToggle        = "sort-toggle"
	keyCollation         = "collation"
	keyPageSizeAccounts  = "page-size-accounts"
	keyPageSizeProfiles  = "page-size-profiles"
	keyPageSizeCampaigns = "page-size-campaigns"
	keyLogFile           = "log-file"
	keyVerbose           = "verbose"
)

// Config holds the resolved CLI configuration.
type Config struct {
	Source     string
	DSN        string
	Start      nav.Route
	SortToggle table.ToggleRule
	Collation  *language.Tag
	PageSizes  entity.PageSizes
	LogFile    string
	Verbose    bool
}

// newViper configures config file discovery and environment lookups.
// configFile, when set, replaces discovery.
func newViper(configFile string) (*viper.Viper, error) {
	v := viper.New()

	defaults := entity.DefaultPageSizes()
	v.SetDefault(keySource, source.KindSQLite)
	v.SetDefault(keyStart, nav.Home().Path())
	v.SetDefault(keySortToggle, table.ToggleAscendingFirst.String())
	v.SetDefault(keyPageSizeAccounts, defaults.Accounts)
	v.SetDefault(keyPageSizeProfiles, defaults.Profiles)
	v.SetDefault(keyPageSizeCampaigns, defaults.Campaigns)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("adtables")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.adtables")
	}

	v.SetEnvPrefix("ADTABLES")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

// configFrom resolves and validates the configuration held by v.
func configFrom(v *viper.Viper) (Config, error) {
	cfg := Config{
		Source:  strings.ToLower(strings.TrimSpace(v.GetString(keySource))),
		DSN:     strings.TrimSpace(v.GetString(keyDSN)),
		LogFile: v.GetString(keyLogFile),
		Verbose: v.GetBool(keyVerbose),
		PageSizes: entity.PageSizes{
			Accounts:  v.GetInt(keyPageSizeAccounts),
			Profiles:  v.GetInt(keyPageSizeProfiles),
			Campaigns: v.GetInt(keyPageSizeCampaigns),
		},
	}

	if !slices.Contains(source.Kinds(), cfg.Source) {
		return Config{}, fmt.Errorf("%w: %q (want one of %s)", source.ErrUnknownSource, cfg.Source, strings.Join(source.Kinds(), ", "))
	}
	if err := cfg.PageSizes.Validate(); err != nil {
		return Config{}, err
	}

	rule, err := table.ParseToggleRule(v.GetString(keySortToggle))
	if err != nil {
		return Config{}, err
	}
	cfg.SortToggle = rule

	start, err := nav.Parse(v.GetString(keyStart))
	if err != nil {
		return Config{}, fmt.Errorf("invalid start route: %w", err)
	}
	cfg.Start = start

	if name := strings.TrimSpace(v.GetString(keyCollation)); name != "" {
		tag, err := language.Parse(name)
		if err != nil {
			return Config{}, fmt.Errorf("invalid collation %q: %w", name, err)
		}
		cfg.Collation = &tag
	}

	if cfg.DSN == "" {
		switch cfg.Source {
		case source.KindSample:
		case source.KindSQLite:
			path, err := defaultDBPath()
			if err != nil {
				return Config{}, err
			}
			cfg.DSN = path
		default:
			return Config{}, fmt.Errorf("source %s requires --dsn", cfg.Source)
		}
	}
	return cfg, nil
}

// defaultDBPath is ~/.adtables/adtables.db, creating the directory.
func defaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(home, ".adtables")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return filepath.Join(dir, "adtables.db"), nil
}

// UIOptions maps the configuration onto the table UI.
func (c Config) UIOptions() ui.Options {
	return ui.Options{
		Start:      c.Start,
		PageSizes:  c.PageSizes,
		ToggleRule: c.SortToggle,
		Collation:  c.Collation,
	}
}

// TableOptions are the engine options for non-interactive views.
func (c Config) TableOptions() []table.Option {
	opts := []table.Option{table.WithToggleRule(c.SortToggle)}
	if c.Collation != nil {
		opts = append(opts, table.WithCollation(*c.Collation))
	}
	return opts
}
