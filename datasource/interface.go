package datasource

import (
	"context"

	"weather-lookup/locale"
	"weather-lookup/models"
)

// Geocoder resolves free-text place names to coordinates
type Geocoder interface {
	// SearchCity returns at most one match for name; an empty slice means no match
	SearchCity(ctx context.Context, name string, lang locale.Language) ([]models.GeocodeResult, error)

	// Name returns the geocoder's name
	Name() string
}

// ForecastSource fetches current conditions and daily forecasts for a point
type ForecastSource interface {
	FetchForecast(ctx context.Context, req ForecastRequest) (models.Forecast, error)

	// Name returns the source's name
	Name() string
}

// CurrentShape selects how current conditions are requested
type CurrentShape int

const (
	// CurrentWeather uses the legacy current_weather=true block
	CurrentWeather CurrentShape = iota
	// CurrentVariables uses current=temperature_2m,weather_code
	CurrentVariables
)

// ForecastRequest describes a single forecast call
type ForecastRequest struct {
	Coordinates models.Coordinates
	Shape       CurrentShape
	Daily       bool // also request the daily min/max/code block
	Days        int  // forecast_days, 0 leaves the API default
}
