package models

// Coordinates is a point on the globe in decimal degrees
type Coordinates struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// GeocodeResult is a place resolved from a free-text name
type GeocodeResult struct {
	Name      string  `json:"name"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinates returns the position of the resolved place
func (g GeocodeResult) Coordinates() Coordinates {
	return Coordinates{Latitude: g.Latitude, Longitude: g.Longitude}
}

// CurrentWeather represents the current conditions block of a forecast response
type CurrentWeather struct {
	Temperature float64 `json:"temperature"`
	Unit        string  `json:"unit"`        // e.g. "°C"
	WeatherCode int     `json:"weatherCode"` // WMO code
}

// Report is the formatted result of a successful lookup
type Report struct {
	City        string      `json:"city" yaml:"city"`
	Coordinates Coordinates `json:"coordinates" yaml:"coordinates"`
	Temperature float64     `json:"temperature" yaml:"temperature"`
	Unit        string      `json:"unit" yaml:"unit"`
	Condition   string      `json:"condition" yaml:"condition"`
	Daily       []DayReport `json:"daily,omitempty" yaml:"daily,omitempty"`
}

// DayReport is one formatted entry of the forecast list
type DayReport struct {
	Date      string  `json:"date" yaml:"date"`   // YYYY-MM-DD as returned by the API
	Label     string  `json:"label" yaml:"label"` // localized short date
	MinTemp   float64 `json:"minTemp" yaml:"minTemp"`
	MaxTemp   float64 `json:"maxTemp" yaml:"maxTemp"`
	Unit      string  `json:"unit" yaml:"unit"`
	Condition string  `json:"condition" yaml:"condition"`
}
