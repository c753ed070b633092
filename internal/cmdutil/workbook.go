// Package cmdutil builds the collaborators shared by the commands from the
// loaded configuration.
package cmdutil

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/lepinkainen/watchlog/internal/config"
	"github.com/lepinkainen/watchlog/internal/sheet"
	"github.com/lepinkainen/watchlog/internal/tmdb"
)

// Workbook is an open spreadsheet backend.
type Workbook struct {
	sheet.Opener
	close func() error
}

// Close releases the backend. Safe to call on a Workbook without resources.
func (w *Workbook) Close() error {
	if w == nil || w.close == nil {
		return nil
	}
	return w.close()
}

// OpenWorkbook connects to the backend selected in cfg.
func OpenWorkbook(ctx context.Context, cfg config.Sheets) (*Workbook, error) {
	switch cfg.Backend {
	case config.BackendGoogle:
		if _, err := os.Stat(cfg.Credentials); err != nil {
			return nil, fmt.Errorf("service account credentials %s: %w", cfg.Credentials, err)
		}
		opener, err := sheet.NewGoogleOpenerFromFile(ctx, cfg.Credentials)
		if err != nil {
			return nil, err
		}
		slog.Debug("Using Google Sheets", "credentials", cfg.Credentials)
		return &Workbook{Opener: opener}, nil

	case config.BackendSQLite:
		opener, err := sheet.NewSQLiteOpener(cfg.Workbook)
		if err != nil {
			return nil, err
		}
		slog.Debug("Using local workbook", "path", cfg.Workbook)
		return &Workbook{Opener: opener, close: opener.Close}, nil

	default:
		return nil, fmt.Errorf("unknown spreadsheet backend %q", cfg.Backend)
	}
}

// NewTMDBClient returns a TMDB client for the configured key.
func NewTMDBClient(cfg config.Config, opts ...tmdb.Option) *tmdb.Client {
	return tmdb.NewClient(cfg.TMDBAPIKey, opts...)
}
