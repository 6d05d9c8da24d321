package datasource

import (
	"context"
	"fmt"

	"weather-lookup/locale"
	"weather-lookup/models"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// OpenMeteoProviderAPI is satisfied by providers serving both lookups
type OpenMeteoProviderAPI interface {
	Geocoder
	ForecastSource
}

// RateLimitedProvider wraps a provider with one limiter per endpoint
type RateLimitedProvider struct {
	geocoder        Geocoder
	forecastSrc     ForecastSource
	geocodeLimiter  *rate.Limiter
	forecastLimiter *rate.Limiter
	name            string
}

// NewRateLimitedProvider creates a provider that waits for its limiters before
// each call. rps may be fractional; burst is the maximum burst size for both
// endpoints.
func NewRateLimitedProvider(provider OpenMeteoProviderAPI, rps float64, burst int) *RateLimitedProvider {
	return &RateLimitedProvider{
		geocoder:        provider,
		forecastSrc:     provider,
		geocodeLimiter:  rate.NewLimiter(rate.Limit(rps), burst),
		forecastLimiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:            fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

// SearchCity implements Geocoder with rate limiting
func (r *RateLimitedProvider) SearchCity(ctx context.Context, name string, lang locale.Language) ([]models.GeocodeResult, error) {
	if err := r.geocodeLimiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limit wait canceled")
	}
	return r.geocoder.SearchCity(ctx, name, lang)
}

// FetchForecast implements ForecastSource with rate limiting
func (r *RateLimitedProvider) FetchForecast(ctx context.Context, req ForecastRequest) (models.Forecast, error) {
	if err := r.forecastLimiter.Wait(ctx); err != nil {
		return models.Forecast{}, errors.Wrap(err, "rate limit wait canceled")
	}
	return r.forecastSrc.FetchForecast(ctx, req)
}

// Name returns the provider name
func (r *RateLimitedProvider) Name() string {
	return r.name
}

var (
	_ Geocoder       = (*RateLimitedProvider)(nil)
	_ ForecastSource = (*RateLimitedProvider)(nil)
)
