package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-lookup/api"
	"weather-lookup/lookup"
	"weather-lookup/render"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the weather page and JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				cfg.Port, _ = cmd.Flags().GetInt("port")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			provider := cfg.Provider()
			o := lookup.New(provider, provider, render.NewHTML(cfg.Language), lookup.WithForecastDays(cfg.ForecastDays))
			server := api.NewServer(o, api.DefaultLocation{Coordinates: cfg.Location, Name: cfg.PlaceName}, cfg.Port)

			errCh := make(chan error, 1)
			go func() {
				if err := server.Start(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
				close(errCh)
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

			select {
			case sig := <-stop:
				log.Info().Str("signal", sig.String()).Msg("shutting down")
			case err, ok := <-errCh:
				if ok {
					return err
				}
				return nil
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(ctx)
		},
	}
	cmd.Flags().Int("port", 8080, "Port to listen on (overrides config)")
	return cmd
}
