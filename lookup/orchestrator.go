// Package lookup runs the fetch-and-render chain: resolve a location, fetch
// its weather, translate and format it, and write it into a page.
package lookup

import (
	"context"
	"strings"

	"weather-lookup/dateformat"
	"weather-lookup/datasource"
	"weather-lookup/locale"
	"weather-lookup/metrics"
	"weather-lookup/models"
	"weather-lookup/render"
	"weather-lookup/weathercode"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	TriggerCity        = "city"
	TriggerCoordinates = "coordinates"

	// DefaultForecastDays matches the five forecast rows of the web page
	DefaultForecastDays = 5
)

// Orchestrator resolves, fetches and renders weather lookups. It holds no
// per-lookup state; concurrent calls are independent.
type Orchestrator struct {
	geocoder     datasource.Geocoder
	forecasts    datasource.ForecastSource
	renderer     render.Renderer
	forecastDays int
	logger       zerolog.Logger
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithForecastDays sets how many daily entries are requested and rendered
func WithForecastDays(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.forecastDays = n
		}
	}
}

// WithLogger replaces the global logger
func WithLogger(l zerolog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// New creates an orchestrator. The renderer decides both the output medium
// and the language of every message.
func New(geocoder datasource.Geocoder, forecasts datasource.ForecastSource, renderer render.Renderer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		geocoder:     geocoder,
		forecasts:    forecasts,
		renderer:     renderer,
		forecastDays: DefaultForecastDays,
		logger:       log.Logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Renderer returns the renderer the orchestrator writes with
func (o *Orchestrator) Renderer() render.Renderer {
	return o.renderer
}

// ByCity geocodes name, fetches current weather and the daily forecast, and
// renders both into page. On failure the error message replaces the current
// region, the forecast region is cleared, and the report is nil.
func (o *Orchestrator) ByCity(ctx context.Context, name string, page *render.Page) (*models.Report, error) {
	logger := o.logger.With().Str("lookup_id", uuid.NewString()).Str("trigger", TriggerCity).Logger()
	msgs := locale.For(o.renderer.Language())

	if strings.TrimSpace(name) == "" {
		logger.Error().Msg("city name must not be empty")
		page.Current.Replace(o.renderer.Message(msgs.EnterCity))
		page.Forecast.Clear()
		metrics.Lookups.WithLabelValues(TriggerCity, KindEmptyInput).Inc()
		return nil, ErrEmptyInput
	}

	page.Current.Replace(o.renderer.Message(msgs.Searching))
	page.Forecast.Clear()

	report, err := o.fetchCity(ctx, logger, name)
	return o.finish(logger, TriggerCity, page, report, err)
}

// ByCoordinates fetches the weather at a fixed point and renders it under
// label. It requests the current variables shape and, like ByCity, the
// daily forecast.
func (o *Orchestrator) ByCoordinates(ctx context.Context, coords models.Coordinates, label string, page *render.Page) (*models.Report, error) {
	logger := o.logger.With().
		Str("lookup_id", uuid.NewString()).
		Str("trigger", TriggerCoordinates).
		Float64("latitude", coords.Latitude).
		Float64("longitude", coords.Longitude).
		Logger()
	msgs := locale.For(o.renderer.Language())

	page.Current.Replace(o.renderer.Message(msgs.Searching))
	page.Forecast.Clear()

	report, err := o.fetch(ctx, logger, coords, label, datasource.CurrentVariables)
	return o.finish(logger, TriggerCoordinates, page, report, err)
}

func (o *Orchestrator) fetchCity(ctx context.Context, logger zerolog.Logger, name string) (*models.Report, error) {
	results, err := o.geocoder.SearchCity(ctx, name, o.renderer.Language())
	if err != nil {
		return nil, errors.Wrap(err, "geocoding")
	}
	if len(results) == 0 {
		return nil, &NotFoundError{City: name}
	}

	place := results[0]
	logger.Debug().
		Str("city", place.Name).
		Float64("latitude", place.Latitude).
		Float64("longitude", place.Longitude).
		Msg("resolved city")

	return o.fetch(ctx, logger, place.Coordinates(), place.Name, datasource.CurrentWeather)
}

func (o *Orchestrator) fetch(ctx context.Context, logger zerolog.Logger, coords models.Coordinates, label string, shape datasource.CurrentShape) (*models.Report, error) {
	forecast, err := o.forecasts.FetchForecast(ctx, datasource.ForecastRequest{
		Coordinates: coords,
		Shape:       shape,
		Daily:       true,
		Days:        o.forecastDays,
	})
	if err != nil {
		return nil, errors.Wrap(err, "fetching forecast")
	}

	lang := o.renderer.Language()
	report := &models.Report{
		City:        label,
		Coordinates: coords,
		Temperature: forecast.Current.Temperature,
		Unit:        forecast.Current.Unit,
		Condition:   weathercode.DescribeIn(lang, forecast.Current.WeatherCode),
	}

	if forecast.HasDaily {
		n := len(forecast.Daily)
		if n > o.forecastDays {
			n = o.forecastDays
		}
		report.Daily = make([]models.DayReport, 0, n)
		for _, d := range forecast.Daily[:n] {
			report.Daily = append(report.Daily, models.DayReport{
				Date:      d.Date,
				Label:     dateformat.ShortIn(lang, d.Date),
				MinTemp:   d.MinTemp,
				MaxTemp:   d.MaxTemp,
				Unit:      d.Unit,
				Condition: weathercode.DescribeIn(lang, d.WeatherCode),
			})
		}
	}
	return report, nil
}

// finish is the single error boundary of a lookup
func (o *Orchestrator) finish(logger zerolog.Logger, trigger string, page *render.Page, report *models.Report, err error) (*models.Report, error) {
	if err != nil {
		kind := Kind(err)
		logger.Error().Err(err).Str("kind", kind).Msg("weather lookup failed")
		msgs := locale.For(o.renderer.Language())
		page.Current.Replace(o.renderer.Message(msgs.ErrorPrefix + UserMessage(msgs, err)))
		page.Forecast.Clear()
		metrics.Lookups.WithLabelValues(trigger, kind).Inc()
		return nil, err
	}

	page.Current.Replace(o.renderer.Current(*report))
	if report.Daily != nil {
		page.Forecast.Replace(o.renderer.Forecast(report.Daily))
	}

	logger.Info().
		Str("city", report.City).
		Float64("temperature", report.Temperature).
		Str("unit", report.Unit).
		Str("condition", report.Condition).
		Int("days", len(report.Daily)).
		Msg("weather data fetched")
	metrics.Lookups.WithLabelValues(trigger, "ok").Inc()
	return report, nil
}
