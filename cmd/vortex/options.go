package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/neon-vortex/internal/config"
	"github.com/vovakirdan/neon-vortex/internal/platform/tui"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Edit and save options and cheats",
	Long: `Open the options editor. Ctrl+S saves to --config, or to
~/.vortex/configs/vortex.yaml when no path is given.

Examples:
  vortex options
  vortex options show
  vortex options reset`,
	Args: cobra.NoArgs,
	RunE: runOptions,
}

var optionsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective options as YAML",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		opts, err := loadOptions()
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(opts)
	},
}

var optionsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Write the default options",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := config.Save(flagConfig, config.Default()); err != nil {
			return err
		}
		fmt.Printf("Defaults written to %s\n", savePath())
		return nil
	},
}

func init() {
	optionsCmd.AddCommand(optionsShowCmd)
	optionsCmd.AddCommand(optionsResetCmd)
}

func savePath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.UserConfigPath()
}

func runOptions(_ *cobra.Command, _ []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	cfg := runtimeConfig()
	_, _, err = tui.RunOptions(opts, flagConfig, cfg.ScreenW, cfg.ScreenH)
	return err
}
