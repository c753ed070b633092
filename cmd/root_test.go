package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/watchlog/cmd/migrate"
	"github.com/lepinkainen/watchlog/cmd/rate"
	"github.com/lepinkainen/watchlog/internal/config"
	"github.com/lepinkainen/watchlog/internal/testutil"
)

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("watchlog"),
		kong.Exit(func(code int) {
			t.Fatalf("unexpected Kong exit %d", code)
		}),
	)
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return cli, ctx
}

func TestDefaultCommandIsRate(t *testing.T) {
	_, ctx := parseCLI(t)
	assert.Equal(t, "rate", ctx.Command())
}

func TestMigrateCommandParsing(t *testing.T) {
	cli, ctx := parseCLI(t, "--verbose", "migrate", "--first-row", "5", "--last-row", "9", "--report", "report.yaml")

	assert.Equal(t, "migrate", ctx.Command())
	assert.True(t, cli.Verbose)
	assert.Equal(t, 5, cli.Migrate.FirstRow)
	assert.Equal(t, 9, cli.Migrate.LastRow)
	assert.Contains(t, cli.Migrate.Report, "report.yaml")
}

func TestRunDispatchesToCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	testutil.SetTestConfig(t, env)

	rateCalled, migrateCalled := false, false
	origRate, origMigrate := rate.RateFunc, migrate.MigrateFunc
	rate.RateFunc = func(context.Context, rate.Options) error {
		rateCalled = true
		return nil
	}
	migrate.MigrateFunc = func(context.Context, migrate.Options) error {
		migrateCalled = true
		return nil
	}
	t.Cleanup(func() { rate.RateFunc, migrate.MigrateFunc = origRate, origMigrate })

	_, ctx := parseCLI(t)
	require.NoError(t, ctx.Run())
	assert.True(t, rateCalled)
	assert.False(t, migrateCalled)

	_, ctx = parseCLI(t, "migrate")
	require.NoError(t, ctx.Run())
	assert.True(t, migrateCalled)
}

func TestInitConfigWritesDefaultFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.Chdir(".")
	testutil.ResetConfig(t)

	err := initConfig()
	assert.True(t, errors.Is(err, errConfigCreated))
	env.RequireFileExists("config.yaml")
	env.AssertFileContains("config.yaml", "tmdbapikey")
}

func TestInitConfigReadsFileAndEnv(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("config.yaml", "sheets:\n  backend: sqlite\nviewers:\n  - one\n")
	env.Chdir(".")
	env.SetEnv("TMDB_API_KEY", "from-env")
	testutil.ResetConfig(t)

	require.NoError(t, initConfig())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TMDBAPIKey)
	assert.Equal(t, config.BackendSQLite, cfg.Sheets.Backend)
	assert.Equal(t, []string{"one"}, cfg.Viewers)
}

func TestInitConfigRejectsBrokenFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("config.yaml", "viewers: [unclosed\n")
	env.Chdir(".")
	testutil.ResetConfig(t)

	err := initConfig()
	require.Error(t, err)
	assert.False(t, errors.Is(err, errConfigCreated))
}

func TestExecuteExitsAfterWritingConfig(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.Chdir(".")
	testutil.ResetConfig(t)

	code := -1
	origExit := exit
	exit = func(c int) { code = c }
	origLogger := slog.Default()
	t.Cleanup(func() {
		exit = origExit
		slog.SetDefault(origLogger)
	})

	Execute()

	assert.Equal(t, 0, code)
	_, err := os.Stat(env.Path("config.yaml"))
	assert.NoError(t, err)
}

func TestInitLoggingLevel(t *testing.T) {
	origLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(origLogger) })

	initLogging(false)
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))

	initLogging(true)
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
}

