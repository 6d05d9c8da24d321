// Package weathercode translates WMO weather interpretation codes, as used by
// Open-Meteo, into short descriptions.
package weathercode

import (
	"sort"

	"weather-lookup/locale"
)

var descriptions = map[locale.Language]map[int]string{
	locale.Portuguese: {
		0:  "Céu limpo",
		1:  "Principalmente limpo",
		2:  "Parcialmente nublado",
		3:  "Encoberto",
		45: "Nevoeiro",
		48: "Nevoeiro depositando rima",
		51: "Garoa: Leve",
		53: "Garoa: Moderada",
		55: "Garoa: Densa",
		56: "Garoa Congelante: Leve",
		57: "Garoa Congelante: Densa",
		61: "Chuva: Leve",
		63: "Chuva: Moderada",
		65: "Chuva: Forte",
		66: "Chuva Congelante: Leve",
		67: "Chuva Congelante: Forte",
		71: "Queda de neve: Leve",
		73: "Queda de neve: Moderada",
		75: "Queda de neve: Forte",
		77: "Grãos de neve",
		80: "Pancadas de chuva: Leves",
		81: "Pancadas de chuva: Moderadas",
		82: "Pancadas de chuva: Violentas",
		85: "Pancadas de neve: Leves",
		86: "Pancadas de neve: Fortes",
		95: "Trovoada: Leve ou moderada",
		96: "Trovoada com granizo leve",
		99: "Trovoada com granizo forte",
	},
	locale.English: {
		0:  "Clear sky",
		1:  "Mainly clear",
		2:  "Partly cloudy",
		3:  "Overcast",
		45: "Fog",
		48: "Depositing rime fog",
		51: "Drizzle: Light",
		53: "Drizzle: Moderate",
		55: "Drizzle: Dense",
		56: "Freezing Drizzle: Light",
		57: "Freezing Drizzle: Dense",
		61: "Rain: Slight",
		63: "Rain: Moderate",
		65: "Rain: Heavy",
		66: "Freezing Rain: Light",
		67: "Freezing Rain: Heavy",
		71: "Snow fall: Slight",
		73: "Snow fall: Moderate",
		75: "Snow fall: Heavy",
		77: "Snow grains",
		80: "Rain showers: Slight",
		81: "Rain showers: Moderate",
		82: "Rain showers: Violent",
		85: "Snow showers: Slight",
		86: "Snow showers: Heavy",
		95: "Thunderstorm: Slight or moderate",
		96: "Thunderstorm with slight hail",
		99: "Thunderstorm with heavy hail",
	},
}

var unavailable = map[locale.Language]string{
	locale.Portuguese: "Condição não disponível",
	locale.English:    "Condition not available",
}

// Describe returns the description of code in the default language
func Describe(code int) string {
	return DescribeIn(locale.Default, code)
}

// DescribeIn returns the description of code in lang. Codes outside the
// table map to a fixed "not available" string.
func DescribeIn(lang locale.Language, code int) string {
	table, ok := descriptions[lang]
	if !ok {
		lang = locale.Default
		table = descriptions[lang]
	}
	if d, ok := table[code]; ok {
		return d
	}
	return unavailable[lang]
}

// Unavailable returns the fallback description for lang
func Unavailable(lang locale.Language) string {
	if s, ok := unavailable[lang]; ok {
		return s
	}
	return unavailable[locale.Default]
}

// Codes returns the defined codes in ascending order
func Codes() []int {
	codes := make([]int, 0, len(descriptions[locale.Default]))
	for c := range descriptions[locale.Default] {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}
