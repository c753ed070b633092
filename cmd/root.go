package cmd

import (
	"errors"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/watchlog/cmd/migrate"
	"github.com/lepinkainen/watchlog/cmd/rate"
	"github.com/lepinkainen/watchlog/internal/config"
)

// CLI represents the complete command structure for the watchlog application
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Rate    rate.RateCmd       `cmd:"" default:"1" help:"Search for a title and record every viewer's rating (default)"`
	Migrate migrate.MigrateCmd `cmd:"" help:"Migrate the legacy ratings spreadsheet into the watched log"`
}

// errConfigCreated signals that a default config file was written and the
// process should exit so the user can fill it in.
var errConfigCreated = errors.New("default config file written")

var exit = os.Exit

// Execute runs the Kong-based CLI
func Execute() {
	initLogging(false)

	if err := initConfig(); err != nil {
		if errors.Is(err, errConfigCreated) {
			slog.Info("Wrote config.yaml, add your TMDB API key and run again")
			exit(0)
			return
		}
		slog.Error("Fatal error config file", "error", err)
		exit(1)
		return
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("watchlog"),
		kong.Description("Log watched movies and TV shows with per-viewer ratings in a spreadsheet."),
		kong.UsageOnError(),
	)

	if cli.Verbose {
		initLogging(true)
	}

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		exit(1)
	}
}

func initConfig() error {
	config.SetDefaults()

	// Enable environment variable support
	viper.AutomaticEnv()
	// Bind specific environment variables to config keys
	if err := viper.BindEnv(config.KeyTMDBAPIKey, "TMDB_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		slog.Info("Config file not found, writing default config file...")
		if err := viper.SafeWriteConfig(); err != nil {
			return err
		}
		return errConfigCreated
	}
	return nil
}

func initLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
