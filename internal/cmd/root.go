package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gatherhq/gather/internal/app"
	"github.com/gatherhq/gather/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "gather",
	Short: "Campus events from your terminal",
	Long: `gather is a terminal client for the campus events platform.
Browse upcoming events, RSVP to the ones you care about, and manage
your own events when you have organizer access.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagConfigFile string
	flagAPIURL     string
	flagLogLevel   string
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context so commands
// stop on SIGINT/SIGTERM.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "config file (default is $HOME/.gather/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
}

// newApp loads configuration, applies flag overrides, and builds the
// application with the persisted session restored.
func newApp() (*app.App, error) {
	cfg, err := config.Load(flagConfigFile)
	if err != nil {
		return nil, ConfigLoadError(flagConfigFile, err)
	}
	if flagAPIURL != "" {
		cfg.APIBaseURL = flagAPIURL
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	a, err := app.New(cfg)
	if err != nil {
		return nil, err
	}

	// Session restoration is awaited here so every command starts from a
	// settled auth state.
	a.Restore()
	return a, nil
}
