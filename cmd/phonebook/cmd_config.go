package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var configWrite bool

// configCmd shows the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration after defaults, the config file and environment
overrides are applied. With --write it is saved to --config.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configWrite, "write", false, "Save the effective configuration to --config")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if configWrite {
		if err := cfg.Save(configPath); err != nil {
			return err
		}
		logger.Info("config written", zap.String("path", configPath))
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
