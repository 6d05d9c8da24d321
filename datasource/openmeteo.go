package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weather-lookup/locale"
	"weather-lookup/metrics"
	"weather-lookup/models"

	"github.com/pkg/errors"
)

const (
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"

	EndpointGeocoding = "geocoding"
	EndpointForecast  = "forecast"

	defaultUnit = "°C"
)

// ErrMissingCurrent is returned when a forecast response has no current block
var ErrMissingCurrent = errors.New("forecast response has no current conditions")

// StatusError reports a non-success HTTP status from one of the endpoints
type StatusError struct {
	Endpoint   string
	StatusCode int
	Status     string // reason phrase, e.g. "Not Found"
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API returned status %d %s", e.Endpoint, e.StatusCode, e.Status)
}

// TransportError reports a request that never produced an HTTP response
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// OpenMeteoProvider implements both Geocoder and ForecastSource against the
// public Open-Meteo APIs
type OpenMeteoProvider struct {
	geocodingURL string
	forecastURL  string
	httpClient   *http.Client
}

// Option configures an OpenMeteoProvider
type Option func(*OpenMeteoProvider)

// WithGeocodingURL overrides the geocoding endpoint
func WithGeocodingURL(u string) Option {
	return func(p *OpenMeteoProvider) { p.geocodingURL = u }
}

// WithForecastURL overrides the forecast endpoint
func WithForecastURL(u string) Option {
	return func(p *OpenMeteoProvider) { p.forecastURL = u }
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(p *OpenMeteoProvider) { p.httpClient = c }
}

// WithTimeout sets the per-request timeout; zero disables it
func WithTimeout(d time.Duration) Option {
	return func(p *OpenMeteoProvider) { p.httpClient.Timeout = d }
}

// NewOpenMeteoProvider creates a new Open-Meteo provider
func NewOpenMeteoProvider(opts ...Option) *OpenMeteoProvider {
	p := &OpenMeteoProvider{
		geocodingURL: DefaultGeocodingURL,
		forecastURL:  DefaultForecastURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name
func (p *OpenMeteoProvider) Name() string {
	return "OpenMeteo"
}

// SearchCity resolves name with count=1, so at most one result comes back
func (p *OpenMeteoProvider) SearchCity(ctx context.Context, name string, lang locale.Language) ([]models.GeocodeResult, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("count", "1")
	params.Set("language", string(lang))
	params.Set("format", "json")

	body, err := p.get(ctx, EndpointGeocoding, p.geocodingURL, params)
	if err != nil {
		return nil, err
	}

	var response struct {
		Results []struct {
			Name      string  `json:"name"`
			Country   string  `json:"country"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "failed to parse geocoding response")
	}

	results := make([]models.GeocodeResult, 0, len(response.Results))
	for _, r := range response.Results {
		results = append(results, models.GeocodeResult{
			Name:      r.Name,
			Country:   r.Country,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		})
	}
	return results, nil
}

// FetchForecast fetches current conditions and, when requested, the daily forecast
func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, req ForecastRequest) (models.Forecast, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(req.Coordinates.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(req.Coordinates.Longitude, 'f', -1, 64))
	switch req.Shape {
	case CurrentVariables:
		params.Set("current", "temperature_2m,weather_code")
	default:
		params.Set("current_weather", "true")
	}
	if req.Daily {
		params.Set("daily", "weathercode,temperature_2m_max,temperature_2m_min")
		if req.Days > 0 {
			params.Set("forecast_days", strconv.Itoa(req.Days))
		}
	}
	params.Set("timezone", "auto")

	body, err := p.get(ctx, EndpointForecast, p.forecastURL, params)
	if err != nil {
		return models.Forecast{}, err
	}
	return decodeForecast(body)
}

type forecastResponse struct {
	Timezone       string `json:"timezone"`
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
	CurrentWeatherUnits struct {
		Temperature string `json:"temperature"`
	} `json:"current_weather_units"`
	Current *struct {
		Temperature float64 `json:"temperature_2m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
	CurrentUnits struct {
		Temperature string `json:"temperature_2m"`
	} `json:"current_units"`
	Daily *struct {
		Time           []string  `json:"time"`
		WeatherCode    []int     `json:"weathercode"`
		WeatherCodeAlt []int     `json:"weather_code"`
		TempMax        []float64 `json:"temperature_2m_max"`
		TempMin        []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
	DailyUnits struct {
		TempMax string `json:"temperature_2m_max"`
	} `json:"daily_units"`
}

func decodeForecast(body []byte) (models.Forecast, error) {
	var response forecastResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return models.Forecast{}, errors.Wrap(err, "failed to parse forecast response")
	}

	forecast := models.Forecast{Timezone: response.Timezone}

	switch {
	case response.CurrentWeather != nil:
		forecast.Current = models.CurrentWeather{
			Temperature: response.CurrentWeather.Temperature,
			Unit:        orDefault(response.CurrentWeatherUnits.Temperature),
			WeatherCode: response.CurrentWeather.WeatherCode,
		}
		forecast.HasCurrent = true
	case response.Current != nil:
		forecast.Current = models.CurrentWeather{
			Temperature: response.Current.Temperature,
			Unit:        orDefault(response.CurrentUnits.Temperature),
			WeatherCode: response.Current.WeatherCode,
		}
		forecast.HasCurrent = true
	default:
		return models.Forecast{}, ErrMissingCurrent
	}

	if d := response.Daily; d != nil {
		forecast.HasDaily = true
		codes := d.WeatherCode
		if len(codes) == 0 {
			codes = d.WeatherCodeAlt
		}
		n := min(len(d.Time), len(codes), len(d.TempMax), len(d.TempMin))
		unit := orDefault(response.DailyUnits.TempMax)
		forecast.Daily = make([]models.DailyForecast, 0, n)
		for i := 0; i < n; i++ {
			forecast.Daily = append(forecast.Daily, models.DailyForecast{
				Date:        d.Time[i],
				MinTemp:     d.TempMin[i],
				MaxTemp:     d.TempMax[i],
				Unit:        unit,
				WeatherCode: codes[i],
			})
		}
	}

	return forecast, nil
}

func orDefault(unit string) string {
	if unit == "" {
		return defaultUnit
	}
	return unit
}

// get performs a GET and returns the body of a 2xx response
func (p *OpenMeteoProvider) get(ctx context.Context, endpoint, base string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()
	metrics.UpstreamRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	return body, nil
}

// Verify that the provider implements both interfaces
var (
	_ Geocoder       = (*OpenMeteoProvider)(nil)
	_ ForecastSource = (*OpenMeteoProvider)(nil)
)
