package testutil

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/lepinkainen/watchlog/internal/config"
)

// ResetConfig resets viper, registers the defaults and resets viper again
// when the test completes.
func ResetConfig(t *testing.T) {
	t.Helper()

	viper.Reset()
	config.SetDefaults()

	t.Cleanup(viper.Reset)
}

// SetTestConfigOption is a functional option for configuring test config.
type SetTestConfigOption func(*testConfigOptions)

type testConfigOptions struct {
	tmdbAPIKey string
	backend    string
	workbook   string
	viewers    []string
}

// WithTMDBAPIKey sets the TMDB API key.
func WithTMDBAPIKey(key string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.tmdbAPIKey = key
	}
}

// WithWorkbook selects the SQLite backend with the workbook at path.
func WithWorkbook(path string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.backend = config.BackendSQLite
		o.workbook = path
	}
}

// WithViewers sets the viewer names.
func WithViewers(viewers ...string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.viewers = viewers
	}
}

// SetTestConfig resets viper and configures a test key, the SQLite backend
// in env and two viewers. Options override those values.
func SetTestConfig(t *testing.T, env *TestEnv, opts ...SetTestConfigOption) {
	t.Helper()

	ResetConfig(t)

	options := testConfigOptions{
		tmdbAPIKey: "test-tmdb-key",
		backend:    config.BackendSQLite,
		workbook:   env.Path("workbook.db"),
		viewers:    []string{"aya", "az"},
	}
	for _, opt := range opts {
		opt(&options)
	}

	viper.Set(config.KeyTMDBAPIKey, options.tmdbAPIKey)
	viper.Set(config.KeySheetsBackend, options.backend)
	viper.Set(config.KeySheetsWorkbook, options.workbook)
	viper.Set(config.KeyViewers, options.viewers)
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
		// Note: viper doesn't have an Unset function, so we can't
		// restore the "unset" state.
	})
}
