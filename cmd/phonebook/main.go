package main

import (
	"fmt"
	"os"

	"phonebook/cmd/phonebook/app"
	"phonebook/cmd/phonebook/ui"
	"phonebook/internal/api"
	"phonebook/internal/config"
	"phonebook/internal/graphql"
	"phonebook/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	endpoint   string

	cfg *config.Config

	// Logger for one-shot commands; the TUI logs to files only.
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "phonebook",
	Short: "Terminal client for a GraphQL phonebook",
	Long: `phonebook lists persons from a GraphQL server and adds new ones.

Run without arguments to start the interactive client. The list is fetched
again after every successful addition, so it always mirrors the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if endpoint != "" {
			cfg.Endpoint = endpoint
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if err := logging.Initialize(cfg.Logging); err != nil {
			return err
		}

		// The interactive client owns the terminal.
		if cmd == cmd.Root() {
			logger = zap.NewNop()
			return nil
		}

		zc := zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "Path to config.yaml")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "GraphQL endpoint (overrides config)")

	rootCmd.AddCommand(listCmd, addCmd, devserverCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newPersonsAPI builds the GraphQL client from cfg.
func newPersonsAPI() api.PersonsAPI {
	client := graphql.NewClient(graphql.Config{
		Endpoint:  cfg.Endpoint,
		Timeout:   cfg.GetTimeout(),
		AuthToken: cfg.AuthToken,
	})
	return api.NewGraphQLPersons(client)
}

func runInteractive() error {
	logging.Boot("starting interactive client against %s", cfg.Endpoint)
	styles := ui.NewStyles(ui.DetectTheme(cfg.Theme))
	model := app.New(newPersonsAPI(), styles)

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		logging.BootError("program exited: %v", err)
		return err
	}
	return nil
}
