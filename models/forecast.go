package models

// DailyForecast represents a single day of the daily forecast block
type DailyForecast struct {
	Date        string  `json:"date"` // calendar day, YYYY-MM-DD
	MinTemp     float64 `json:"minTemp"`
	MaxTemp     float64 `json:"maxTemp"`
	Unit        string  `json:"unit"`
	WeatherCode int     `json:"weatherCode"`
}

// Forecast is a decoded forecast response
type Forecast struct {
	Current    CurrentWeather  `json:"current"`
	HasCurrent bool            `json:"-"`
	Daily      []DailyForecast `json:"daily,omitempty"`
	HasDaily   bool            `json:"-"` // the response carried a daily block, even if empty
	Timezone   string          `json:"timezone,omitempty"`
}
