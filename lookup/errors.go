package lookup

import (
	"fmt"

	"weather-lookup/datasource"
	"weather-lookup/locale"

	"github.com/pkg/errors"
)

// ErrEmptyInput is returned when no city name was given
var ErrEmptyInput = errors.New("city name is empty")

// NotFoundError is returned when geocoding a city yields no results
type NotFoundError struct {
	City string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("city %q not found", e.City)
}

// Error kinds, used as metric labels and by the JSON API
const (
	KindEmptyInput     = "empty_input"
	KindNotFound       = "not_found"
	KindUpstreamStatus = "upstream_status"
	KindNetwork        = "network"
	KindOther          = "other"
)

// Kind classifies err; nil yields ""
func Kind(err error) string {
	if err == nil {
		return ""
	}
	var (
		notFound  *NotFoundError
		status    *datasource.StatusError
		transport *datasource.TransportError
	)
	switch {
	case errors.Is(err, ErrEmptyInput):
		return KindEmptyInput
	case errors.As(err, &notFound):
		return KindNotFound
	case errors.As(err, &status):
		return KindUpstreamStatus
	case errors.As(err, &transport):
		return KindNetwork
	default:
		return KindOther
	}
}

// UserMessage turns err into the text shown to the user, without the error prefix
func UserMessage(msgs locale.Messages, err error) string {
	var (
		notFound  *NotFoundError
		status    *datasource.StatusError
		transport *datasource.TransportError
	)
	switch {
	case errors.Is(err, ErrEmptyInput):
		return msgs.EnterCity
	case errors.As(err, &notFound):
		return msgs.CityNotFound(notFound.City)
	case errors.As(err, &status):
		if status.Endpoint == datasource.EndpointGeocoding {
			return msgs.GeocodingStatus(status.Status, status.StatusCode)
		}
		return msgs.ForecastStatus(status.Status, status.StatusCode)
	case errors.As(err, &transport):
		if transport.Endpoint == datasource.EndpointGeocoding {
			return msgs.GeocodingFailed(transport.Err)
		}
		return msgs.ForecastFailed(transport.Err)
	default:
		return err.Error()
	}
}
