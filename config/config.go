// Package config loads service settings from defaults, an optional config
// file, a .env file, the environment and command-line flags, in increasing
// order of precedence.
package config

import (
	"strings"
	"time"

	"weather-lookup/datasource"
	"weather-lookup/locale"
	"weather-lookup/models"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. WEATHER_PORT
const EnvPrefix = "WEATHER"

// Config represents the application configuration
type Config struct {
	Port         int
	Language     locale.Language
	Location     models.Coordinates // fixed coordinates used when no city is given
	PlaceName    string
	ForecastDays int

	GeocodingURL string
	ForecastURL  string
	HTTPTimeout  time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	LogLevel  string
	LogFormat string
}

// SetDefaults registers the defaults on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("language", string(locale.Default))
	v.SetDefault("latitude", -23.5475)
	v.SetDefault("longitude", -46.63611)
	v.SetDefault("place_name", "São Paulo")
	v.SetDefault("forecast_days", 5)
	v.SetDefault("geocoding_url", datasource.DefaultGeocodingURL)
	v.SetDefault("forecast_url", datasource.DefaultForecastURL)
	v.SetDefault("http_timeout", 10*time.Second)
	// Open-Meteo asks non-commercial users to stay below 600 calls a minute
	v.SetDefault("rate_limit_rps", 10.0)
	v.SetDefault("rate_limit_burst", 5)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// LoadDotEnv loads a .env file into the process environment. A missing
// file is not an error.
func LoadDotEnv(paths ...string) {
	if err := godotenv.Load(paths...); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}
}

// Prepare wires environment lookup and, if configFile is set, reads it
func Prepare(v *viper.Viper, configFile string) error {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		return nil
	}
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", configFile)
	}
	return nil
}

// Load builds a validated Config from v
func Load(v *viper.Viper) (*Config, error) {
	lang, err := locale.Parse(v.GetString("language"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:     v.GetInt("port"),
		Language: lang,
		Location: models.Coordinates{
			Latitude:  v.GetFloat64("latitude"),
			Longitude: v.GetFloat64("longitude"),
		},
		PlaceName:      v.GetString("place_name"),
		ForecastDays:   v.GetInt("forecast_days"),
		GeocodingURL:   v.GetString("geocoding_url"),
		ForecastURL:    v.GetString("forecast_url"),
		HTTPTimeout:    v.GetDuration("http_timeout"),
		RateLimitRPS:   v.GetFloat64("rate_limit_rps"),
		RateLimitBurst: v.GetInt("rate_limit_burst"),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges that would otherwise surface as API errors
func (c *Config) Validate() error {
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return errors.Errorf("invalid port %d", c.Port)
	case c.Location.Latitude < -90 || c.Location.Latitude > 90:
		return errors.Errorf("latitude %v out of range", c.Location.Latitude)
	case c.Location.Longitude < -180 || c.Location.Longitude > 180:
		return errors.Errorf("longitude %v out of range", c.Location.Longitude)
	case c.ForecastDays < 1 || c.ForecastDays > 16:
		return errors.Errorf("forecast_days must be between 1 and 16, got %d", c.ForecastDays)
	case c.HTTPTimeout < 0:
		return errors.Errorf("negative http_timeout %s", c.HTTPTimeout)
	case c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0:
		return errors.New("rate_limit_rps and rate_limit_burst must be positive")
	}
	return nil
}

// Provider builds the rate limited Open-Meteo provider described by c
func (c *Config) Provider() *datasource.RateLimitedProvider {
	p := datasource.NewOpenMeteoProvider(
		datasource.WithGeocodingURL(c.GeocodingURL),
		datasource.WithForecastURL(c.ForecastURL),
		datasource.WithTimeout(c.HTTPTimeout),
	)
	return datasource.NewRateLimitedProvider(p, c.RateLimitRPS, c.RateLimitBurst)
}
