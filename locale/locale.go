// Package locale holds the user-facing strings for each supported language.
package locale

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Language is a short language tag understood by the geocoding API
type Language string

const (
	Portuguese Language = "pt"
	English    Language = "en"

	Default = Portuguese
)

// Languages lists the supported languages
var Languages = []Language{Portuguese, English}

// Parse normalizes tags like "pt-BR" or "EN" into a supported Language
func Parse(s string) (Language, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	for _, l := range Languages {
		if tag == string(l) {
			return l, nil
		}
	}
	return "", errors.Errorf("unsupported language %q", s)
}

// Messages are the strings rendered into the display regions
type Messages struct {
	EnterCity        string
	Searching        string
	ErrorPrefix      string
	CityLabel        string
	TemperatureLabel string
	ConditionLabel   string
	ForecastHeading  string
	MinLabel         string
	MaxLabel         string
	PageTitle        string
	InputPlaceholder string
	SearchButton     string

	cityNotFound   string
	geocodeStatus  string
	forecastStatus string
	geocodeFailed  string
	forecastFailed string
}

// CityNotFound formats the message for a name with no geocoding results
func (m Messages) CityNotFound(city string) string {
	return fmt.Sprintf(m.cityNotFound, city)
}

// GeocodingStatus formats a non-success geocoding response
func (m Messages) GeocodingStatus(status string, code int) string {
	return fmt.Sprintf(m.geocodeStatus, status, code)
}

// ForecastStatus formats a non-success forecast response
func (m Messages) ForecastStatus(status string, code int) string {
	return fmt.Sprintf(m.forecastStatus, status, code)
}

// GeocodingFailed formats a transport failure reaching the geocoding API
func (m Messages) GeocodingFailed(err error) string {
	return fmt.Sprintf(m.geocodeFailed, err)
}

// ForecastFailed formats a transport failure reaching the forecast API
func (m Messages) ForecastFailed(err error) string {
	return fmt.Sprintf(m.forecastFailed, err)
}

var catalog = map[Language]Messages{
	Portuguese: {
		EnterCity:        "Por favor, insira o nome de uma cidade.",
		Searching:        "Buscando...",
		ErrorPrefix:      "Erro: ",
		CityLabel:        "Cidade:",
		TemperatureLabel: "Temperatura:",
		ConditionLabel:   "Condição:",
		ForecastHeading:  "Previsão para os próximos dias",
		MinLabel:         "Min:",
		MaxLabel:         "Max:",
		PageTitle:        "Previsão do tempo",
		InputPlaceholder: "Digite o nome da cidade",
		SearchButton:     "Buscar",

		cityNotFound:   "Cidade \"%s\" não encontrada.",
		geocodeStatus:  "Erro de rede na geocodificação: %s (Código: %d)",
		forecastStatus: "Erro de rede na busca do clima: %s (Código: %d)",
		geocodeFailed:  "Falha de conexão na geocodificação: %v",
		forecastFailed: "Falha de conexão na busca do clima: %v",
	},
	English: {
		EnterCity:        "Please enter a city name.",
		Searching:        "Searching...",
		ErrorPrefix:      "Error: ",
		CityLabel:        "City:",
		TemperatureLabel: "Temperature:",
		ConditionLabel:   "Condition:",
		ForecastHeading:  "Forecast for the next days",
		MinLabel:         "Min:",
		MaxLabel:         "Max:",
		PageTitle:        "Weather",
		InputPlaceholder: "Enter a city name",
		SearchButton:     "Search",

		cityNotFound:   "City \"%s\" not found.",
		geocodeStatus:  "Network error while geocoding: %s (Code: %d)",
		forecastStatus: "Network error while fetching weather: %s (Code: %d)",
		geocodeFailed:  "Connection failure while geocoding: %v",
		forecastFailed: "Connection failure while fetching weather: %v",
	},
}

// For returns the messages of a language, falling back to the default one
func For(lang Language) Messages {
	if m, ok := catalog[lang]; ok {
		return m
	}
	return catalog[Default]
}
