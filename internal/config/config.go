// Package config turns the viper configuration into the explicit values the
// commands pass to their collaborators.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyTMDBAPIKey        = "tmdbapikey"
	KeySheetsBackend     = "sheets.backend"
	KeySheetsCredentials = "sheets.credentials"
	KeySheetsWorkbook    = "sheets.workbook"
	KeySheetsCurrent     = "sheets.current"
	KeySheetsLegacy      = "sheets.legacy"
	KeyViewers           = "viewers"
	KeyYearTolerance     = "match.yeartolerance"
	KeyMigrateFirstRow   = "migrate.firstrow"
	KeyMigrateLastRow    = "migrate.lastrow"
)

// Spreadsheet backends.
const (
	BackendGoogle = "google"
	BackendSQLite = "sqlite"
)

// ErrMissingAPIKey is returned by Load when no TMDB key is configured.
var ErrMissingAPIKey = errors.New("TMDB API key is not set (tmdbapikey or TMDB_API_KEY)")

// Sheets selects the spreadsheet backend and the documents to use.
type Sheets struct {
	Backend     string
	Credentials string
	Workbook    string
	Current     string
	Legacy      string
}

// Config is the resolved configuration.
type Config struct {
	TMDBAPIKey    string
	Sheets        Sheets
	Viewers       []string
	YearTolerance int
	FirstRow      int
	LastRow       int
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault(KeyTMDBAPIKey, "")
	viper.SetDefault(KeySheetsBackend, BackendGoogle)
	viper.SetDefault(KeySheetsCredentials, "~/.config/gspread/service_account.json")
	viper.SetDefault(KeySheetsWorkbook, "watchlog.db")
	viper.SetDefault(KeySheetsCurrent, "watched")
	viper.SetDefault(KeySheetsLegacy, "movie_ratings")
	viper.SetDefault(KeyViewers, []string{"aya", "az"})
	viper.SetDefault(KeyYearTolerance, 2)
	viper.SetDefault(KeyMigrateFirstRow, 3)
	viper.SetDefault(KeyMigrateLastRow, 1119)
}

// Load reads the current viper state and validates it.
func Load() (Config, error) {
	cfg := Config{
		TMDBAPIKey: strings.TrimSpace(viper.GetString(KeyTMDBAPIKey)),
		Sheets: Sheets{
			Backend:     strings.ToLower(viper.GetString(KeySheetsBackend)),
			Credentials: expandHome(viper.GetString(KeySheetsCredentials)),
			Workbook:    expandHome(viper.GetString(KeySheetsWorkbook)),
			Current:     viper.GetString(KeySheetsCurrent),
			Legacy:      viper.GetString(KeySheetsLegacy),
		},
		Viewers:       viper.GetStringSlice(KeyViewers),
		YearTolerance: viper.GetInt(KeyYearTolerance),
		FirstRow:      viper.GetInt(KeyMigrateFirstRow),
		LastRow:       viper.GetInt(KeyMigrateLastRow),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values Load cannot fix up.
func (c Config) Validate() error {
	if c.TMDBAPIKey == "" {
		return ErrMissingAPIKey
	}
	switch c.Sheets.Backend {
	case BackendGoogle, BackendSQLite:
	default:
		return fmt.Errorf("unknown %s %q (want %s or %s)", KeySheetsBackend, c.Sheets.Backend, BackendGoogle, BackendSQLite)
	}
	if len(c.Viewers) == 0 {
		return fmt.Errorf("%s must name at least one viewer", KeyViewers)
	}
	if c.YearTolerance < 0 {
		return fmt.Errorf("%s must not be negative", KeyYearTolerance)
	}
	if c.FirstRow < 1 || c.LastRow < c.FirstRow {
		return fmt.Errorf("invalid migration rows %d..%d", c.FirstRow, c.LastRow)
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
