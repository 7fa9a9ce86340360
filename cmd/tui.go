package cmd

import (
	"context"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"adtables/internal/source"
	"adtables/internal/ui"
)

func runTUI(ctx context.Context, cfg Config) error {
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "adtables")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	src, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	p := tea.NewProgram(ui.New(src, cfg.UIOptions()), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

// openSource opens the configured source. A SQLite database with no
// accounts is first filled with the sample data.
func openSource(ctx context.Context, cfg Config) (source.Source, error) {
	if cfg.Source == source.KindSQLite {
		if err := seedIfEmpty(ctx, cfg.DSN); err != nil {
			return nil, err
		}
	}
	src, err := source.Open(ctx, cfg.Source, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s source: %w", cfg.Source, err)
	}
	return src, nil
}
