package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sznuper/alarmcord/internal/config"
	"github.com/sznuper/alarmcord/internal/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "alarmcord",
	Short: "Relay CloudWatch alarms to a Discord webhook",
	Long: "alarmcord receives CloudWatch alarm notifications from SNS, formats them as a Discord embed " +
		"and posts them to a webhook URL stored in SSM Parameter Store. Run it as a Lambda handler " +
		"with `alarmcord lambda` (or as a bare bootstrap binary), or invoke it locally against an event file.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv(runtimeAPIEnv) != "" {
			return runLambda(cmd, args)
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default: search, then environment)")
	registerOptionFlags(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the config, applies flag overrides and validates the
// result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Resolve(cfgFile)
	if err != nil {
		return nil, err
	}
	applyOptionFlags(cmd, cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(cfg *config.Config) *slog.Logger {
	return logging.New(cfg.Log.Level, cfg.Log.Format)
}
