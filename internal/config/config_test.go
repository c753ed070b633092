package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)
	viper.Set(KeyTMDBAPIKey, " key ")

	cfg, err := Load()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "key", cfg.TMDBAPIKey)
	assert.Equal(t, Sheets{
		Backend:     BackendGoogle,
		Credentials: filepath.Join(home, ".config/gspread/service_account.json"),
		Workbook:    "watchlog.db",
		Current:     "watched",
		Legacy:      "movie_ratings",
	}, cfg.Sheets)
	assert.Equal(t, []string{"aya", "az"}, cfg.Viewers)
	assert.Equal(t, 2, cfg.YearTolerance)
	assert.Equal(t, 3, cfg.FirstRow)
	assert.Equal(t, 1119, cfg.LastRow)
}

func TestLoadOverrides(t *testing.T) {
	resetViper(t)
	viper.Set(KeyTMDBAPIKey, "key")
	viper.Set(KeySheetsBackend, "SQLite")
	viper.Set(KeySheetsWorkbook, "/tmp/book.db")
	viper.Set(KeyViewers, []string{"one", "two", "three"})
	viper.Set(KeyYearTolerance, 0)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Sheets.Backend)
	assert.Equal(t, "/tmp/book.db", cfg.Sheets.Workbook)
	assert.Equal(t, []string{"one", "two", "three"}, cfg.Viewers)
	assert.Equal(t, 0, cfg.YearTolerance)
}

func TestLoadMissingAPIKey(t *testing.T) {
	resetViper(t)

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestValidate(t *testing.T) {
	valid := Config{
		TMDBAPIKey:    "key",
		Sheets:        Sheets{Backend: BackendSQLite},
		Viewers:       []string{"aya"},
		YearTolerance: 2,
		FirstRow:      3,
		LastRow:       3,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown backend", func(c *Config) { c.Sheets.Backend = "excel" }, `unknown sheets.backend "excel"`},
		{"no viewers", func(c *Config) { c.Viewers = nil }, "at least one viewer"},
		{"negative tolerance", func(c *Config) { c.YearTolerance = -1 }, "must not be negative"},
		{"reversed rows", func(c *Config) { c.FirstRow, c.LastRow = 10, 5 }, "invalid migration rows 10..5"},
		{"zero first row", func(c *Config) { c.FirstRow = 0 }, "invalid migration rows 0..3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, expandHome("~"))
	assert.Equal(t, filepath.Join(home, "a/b"), expandHome("~/a/b"))
	assert.Equal(t, "~other/x", expandHome("~other/x"))
	assert.Equal(t, "rel/x", expandHome("rel/x"))
}
