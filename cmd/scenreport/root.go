package main

import (
	"github.com/spf13/cobra"

	"github.com/climetrics/scenreport/internal/config"
)

var (
	configFlag   string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "scenreport",
	Short: "scenreport - climate scenario ensemble reports",
	Long: `scenreport loads a pre-built scenario ensemble, screens the carbon-price
series, computes discounted carbon-price values, pairs scenarios across the
1.5C and 2C warming targets, and writes the statistics workbook and figures.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.SetVersionTemplate("scenreport version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "",
		"Path to a YAML config file (defaults apply when omitted)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, or error")
}

// loadConfig resolves the effective configuration.
// Precedence: CLI flags > SCENREPORT_* env vars > config file > defaults.
func loadConfig() (config.Config, error) {
	cfg := config.Default()

	if configFlag != "" {
		loaded, err := config.LoadFile(configFlag)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv()

	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}

	return cfg, nil
}
