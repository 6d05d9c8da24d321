package main

import (
	"io"
	"os"
	"time"

	"weather-lookup/config"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	v   = viper.New()
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "weather",
	Short:         "Current weather and daily forecast from Open-Meteo",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		config.LoadDotEnv()

		configFile, _ := cmd.Flags().GetString("config")
		if err := config.Prepare(v, configFile); err != nil {
			return err
		}
		for key, flag := range map[string]string{
			"log_level":  "log-level",
			"log_format": "log-format",
			"language":   "language",
		} {
			if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
				return err
			}
		}

		var err error
		cfg, err = config.Load(v)
		if err != nil {
			return err
		}
		return initLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	},
}

func initLogger(out io.Writer, level, format string) error {
	var w io.Writer = out
	switch format {
	case "text":
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case "json":
	default:
		return errors.Errorf("unknown log format %q", format)
	}
	log.Logger = log.Output(w)

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (json, text)")
	rootCmd.PersistentFlags().String("language", "pt", "Language of labels, conditions and geocoding results (pt, en)")

	rootCmd.AddCommand(newServeCommand(), newLookupCommand(), newInteractiveCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
