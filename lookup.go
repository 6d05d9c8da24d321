package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"weather-lookup/lookup"
	"weather-lookup/models"
	"weather-lookup/render"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newLookupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup [city]",
		Short: "Look up the weather of a city, of given coordinates, or of the configured location",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			if output != "text" && output != "json" && output != "yaml" {
				return errors.Errorf("unknown output format %q", output)
			}

			provider := cfg.Provider()
			o := lookup.New(provider, provider, render.NewText(cfg.Language), lookup.WithForecastDays(cfg.ForecastDays))
			page := render.NewPage()
			ctx := cmd.Context()

			var (
				report *models.Report
				err    error
			)
			switch {
			case len(args) > 0:
				report, err = o.ByCity(ctx, strings.Join(args, " "), page)
			case cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon"):
				coords := cfg.Location
				coords.Latitude, _ = cmd.Flags().GetFloat64("lat")
				coords.Longitude, _ = cmd.Flags().GetFloat64("lon")
				name, _ := cmd.Flags().GetString("name")
				if name == "" {
					name = fmt.Sprintf("%.4f, %.4f", coords.Latitude, coords.Longitude)
				}
				report, err = o.ByCoordinates(ctx, coords, name, page)
			default:
				report, err = o.ByCoordinates(ctx, cfg.Location, cfg.PlaceName, page)
			}

			out := cmd.OutOrStdout()
			if output == "text" || err != nil {
				writeText(out, page)
				return err
			}
			return writeReport(out, output, report)
		},
	}
	cmd.Flags().Float64("lat", 0, "Latitude, instead of a city name")
	cmd.Flags().Float64("lon", 0, "Longitude, instead of a city name")
	cmd.Flags().String("name", "", "Label for --lat/--lon")
	cmd.Flags().StringP("output", "o", "text", "Output format (text, json, yaml)")
	return cmd
}

func writeText(w io.Writer, page *render.Page) {
	current, forecast := page.Snapshot()
	fmt.Fprint(w, current)
	if forecast != "" {
		fmt.Fprintln(w)
		fmt.Fprint(w, forecast)
	}
}

func writeReport(w io.Writer, format string, report *models.Report) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(report)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
}
