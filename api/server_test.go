package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"weather-lookup/datasource"
	"weather-lookup/locale"
	"weather-lookup/lookup"
	"weather-lookup/models"
	"weather-lookup/render"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forecastJSON = `{
  "current_weather_units": {"temperature": "°C"},
  "current_weather": {"temperature": 21.5, "weathercode": 61},
  "current_units": {"temperature_2m": "°C"},
  "current": {"temperature_2m": 21.5, "weather_code": 61},
  "daily_units": {"temperature_2m_max": "°C"},
  "daily": {
    "time": ["2024-01-15", "2024-01-16", "2024-01-17", "2024-01-18", "2024-01-19"],
    "weathercode": [61, 63, 3, 0, 95],
    "temperature_2m_max": [25, 26, 27, 28, 29],
    "temperature_2m_min": [15, 16, 17, 18, 19]
  }
}`

type upstream struct {
	geocodeStatus  int
	geocodeBody    string
	forecastStatus int
	geocodeCalls   atomic.Int32
	forecastCalls  atomic.Int32
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/v1/search":
		u.geocodeCalls.Add(1)
		if u.geocodeStatus != 0 {
			w.WriteHeader(u.geocodeStatus)
			return
		}
		_, _ = w.Write([]byte(u.geocodeBody))
	case "/v1/forecast":
		u.forecastCalls.Add(1)
		if u.forecastStatus != 0 {
			w.WriteHeader(u.forecastStatus)
			return
		}
		_, _ = w.Write([]byte(forecastJSON))
	default:
		http.NotFound(w, r)
	}
}

func newTestServer(t *testing.T, up *upstream, lang locale.Language) http.Handler {
	t.Helper()
	ts := httptest.NewServer(up)
	t.Cleanup(ts.Close)

	provider := datasource.NewOpenMeteoProvider(
		datasource.WithGeocodingURL(ts.URL+"/v1/search"),
		datasource.WithForecastURL(ts.URL+"/v1/forecast"),
	)
	o := lookup.New(provider, provider, render.NewHTML(lang), lookup.WithLogger(zerolog.Nop()))
	s := NewServer(o, DefaultLocation{
		Coordinates: models.Coordinates{Latitude: -23.5475, Longitude: -46.63611},
		Name:        "São Paulo",
	}, 8080)
	return s.Router()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func page(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func TestIndexShowsDefaultLocation(t *testing.T) {
	up := &upstream{}
	h := newTestServer(t, up, locale.Portuguese)

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	doc := page(t, rec)
	assert.Equal(t, "São Paulo", doc.Find("#weather-result span").Eq(0).Text())
	assert.Equal(t, "21.5°C", doc.Find("#weather-result span").Eq(1).Text())
	assert.Equal(t, "Chuva: Leve", doc.Find("#weather-result span").Eq(2).Text())
	assert.Equal(t, 5, doc.Find("#forecast-result .forecast-day").Length())
	assert.Zero(t, up.geocodeCalls.Load())
	assert.Equal(t, int32(1), up.forecastCalls.Load())
}

func TestIndexCitySearch(t *testing.T) {
	up := &upstream{geocodeBody: `{"results":[{"name":"Curitiba","latitude":-25.43,"longitude":-49.27}]}`}
	h := newTestServer(t, up, locale.Portuguese)

	doc := page(t, get(t, h, "/?city=curitiba"))
	assert.Equal(t, "Curitiba", doc.Find("#weather-result span").First().Text())
	val, _ := doc.Find("#city-input").Attr("value")
	assert.Equal(t, "curitiba", val)
	days := doc.Find("#forecast-result .forecast-day")
	require.Equal(t, 5, days.Length())
	assert.Equal(t, "seg., 15/01", days.First().Find(".date").Text())
	assert.Equal(t, "Min: 15°C | Max: 25°C", days.First().Find(".temp").Text())
}

func TestIndexEmptyCityPrompts(t *testing.T) {
	up := &upstream{}
	h := newTestServer(t, up, locale.Portuguese)

	doc := page(t, get(t, h, "/?city=++"))
	assert.Equal(t, "Por favor, insira o nome de uma cidade.", doc.Find("#weather-result .info-message").Text())
	assert.Equal(t, "", strings.TrimSpace(doc.Find("#forecast-result").Text()))
	assert.Zero(t, up.geocodeCalls.Load())
	assert.Zero(t, up.forecastCalls.Load())
}

func TestIndexCityNotFound(t *testing.T) {
	up := &upstream{geocodeBody: `{"generationtime_ms":0.3}`}
	h := newTestServer(t, up, locale.Portuguese)

	doc := page(t, get(t, h, "/?city=Atlantis"))
	assert.Equal(t, `Erro: Cidade "Atlantis" não encontrada.`, doc.Find("#weather-result .info-message").Text())
	assert.Zero(t, up.forecastCalls.Load())
}

func TestAPIWeatherByCity(t *testing.T) {
	up := &upstream{geocodeBody: `{"results":[{"name":"London","country":"United Kingdom","latitude":51.5,"longitude":-0.12}]}`}
	h := newTestServer(t, up, locale.English)

	rec := get(t, h, "/api/weather?city=london")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data models.Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "London", body.Data.City)
	assert.Equal(t, "Rain: Slight", body.Data.Condition)
	assert.Equal(t, 51.5, body.Data.Coordinates.Latitude)
	require.Len(t, body.Data.Daily, 5)
	assert.Equal(t, "Mon, 1/15", body.Data.Daily[0].Label)
}

func TestAPIWeatherByCoordinates(t *testing.T) {
	up := &upstream{}
	h := newTestServer(t, up, locale.English)

	rec := get(t, h, "/api/weather?lat=38.72&lon=-9.14&name=Lisbon")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"city":"Lisbon"`)
	assert.Zero(t, up.geocodeCalls.Load())
}

func TestAPIWeatherErrors(t *testing.T) {
	cases := []struct {
		name   string
		up     *upstream
		target string
		status int
		kind   string
		msg    string
	}{
		{"empty", &upstream{}, "/api/weather?city=", http.StatusBadRequest, lookup.KindEmptyInput, "Please enter a city name."},
		{"not found", &upstream{geocodeBody: `{}`}, "/api/weather?city=Atlantis", http.StatusNotFound, lookup.KindNotFound, `City "Atlantis" not found.`},
		{"geocoding down", &upstream{geocodeStatus: http.StatusInternalServerError}, "/api/weather?city=Paris", http.StatusBadGateway, lookup.KindUpstreamStatus, "Network error while geocoding: Internal Server Error (Code: 500)"},
		{"forecast down", &upstream{geocodeBody: `{"results":[{"name":"Paris"}]}`, forecastStatus: http.StatusServiceUnavailable}, "/api/weather?city=Paris", http.StatusBadGateway, lookup.KindUpstreamStatus, "Network error while fetching weather: Service Unavailable (Code: 503)"},
		{"bad lat", &upstream{}, "/api/weather?lat=abc&lon=1", http.StatusBadRequest, "invalid_coordinates", "invalid lat parameter"},
		{"missing lon", &upstream{}, "/api/weather?lat=1", http.StatusBadRequest, "invalid_coordinates", "lat and lon parameters are both required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestServer(t, tc.up, locale.English)
			rec := get(t, h, tc.target)
			require.Equal(t, tc.status, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.kind, body["kind"])
			assert.Equal(t, tc.msg, body["error"])
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(t, &upstream{}, locale.Portuguese)

	rec := get(t, h, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	get(t, h, "/")
	rec = get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "weather_upstream_requests_total")
	assert.Contains(t, rec.Body.String(), "weather_http_requests_total")
}

func TestAPICORS(t *testing.T) {
	h := newTestServer(t, &upstream{}, locale.Portuguese)

	req := httptest.NewRequest(http.MethodOptions, "/api/weather", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
