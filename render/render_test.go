package render

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"weather-lookup/locale"
	"weather-lookup/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleReport = models.Report{
	City:        "São Paulo",
	Temperature: 23.4,
	Unit:        "°C",
	Condition:   "Parcialmente nublado",
}

var sampleDays = []models.DayReport{
	{Date: "2024-01-15", Label: "seg., 15/01", MinTemp: 19, MaxTemp: 30.1, Unit: "°C", Condition: "Céu limpo"},
	{Date: "2024-01-16", Label: "ter., 16/01", MinTemp: 18.2, MaxTemp: 28, Unit: "°C", Condition: "Chuva: Leve"},
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestHTMLCurrent(t *testing.T) {
	doc := parse(t, NewHTML(locale.Portuguese).Current(sampleReport))

	spans := doc.Find("p span")
	require.Equal(t, 3, spans.Length())
	assert.Equal(t, "São Paulo", spans.Eq(0).Text())
	assert.Equal(t, "23.4°C", spans.Eq(1).Text())
	assert.Equal(t, "Parcialmente nublado", spans.Eq(2).Text())
	assert.Equal(t, "Cidade:", doc.Find("p strong").First().Text())
}

func TestHTMLForecast(t *testing.T) {
	doc := parse(t, NewHTML(locale.Portuguese).Forecast(sampleDays))

	assert.Equal(t, "Previsão para os próximos dias", doc.Find("h3").Text())
	days := doc.Find(".forecast-day")
	require.Equal(t, 2, days.Length())
	assert.Equal(t, "seg., 15/01", days.Eq(0).Find(".date").Text())
	assert.Equal(t, "Min: 19°C | Max: 30.1°C", days.Eq(0).Find(".temp").Text())
	assert.Equal(t, "Chuva: Leve", days.Eq(1).Find(".desc").Text())
}

func TestHTMLEscapesInterpolatedValues(t *testing.T) {
	r := sampleReport
	r.City = `<script>alert(1)</script>`
	out := NewHTML(locale.English).Current(r)

	assert.NotContains(t, out, "<script>")
	doc := parse(t, out)
	assert.Equal(t, `<script>alert(1)</script>`, doc.Find("p span").First().Text())
	assert.Equal(t, 0, doc.Find("script").Length())
}

func TestHTMLMessage(t *testing.T) {
	doc := parse(t, NewHTML(locale.Portuguese).Message("Buscando..."))
	assert.Equal(t, "Buscando...", doc.Find("p.info-message").Text())
}

func TestText(t *testing.T) {
	r := NewText(locale.English)
	assert.Equal(t, locale.English, r.Language())

	current := r.Current(sampleReport)
	assert.Contains(t, current, "City: São Paulo\n")
	assert.Contains(t, current, "Temperature: 23.4°C\n")

	forecast := r.Forecast(sampleDays)
	lines := strings.Split(strings.TrimRight(forecast, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Forecast for the next days", lines[0])
	assert.Contains(t, lines[1], "Min: 19°C | Max: 30.1°C")
	assert.Contains(t, lines[2], "Chuva: Leve")

	assert.Equal(t, "Searching...\n", r.Message("Searching..."))
}

func TestMissingUnitDefaultsToCelsius(t *testing.T) {
	r := sampleReport
	r.Unit = ""
	assert.Contains(t, NewText(locale.Portuguese).Current(r), "23.4°C")
}

func TestBufferLastWriterWins(t *testing.T) {
	b := &Buffer{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Replace("x")
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(50), b.Version())

	b.Replace("last")
	assert.Equal(t, "last", b.Content())
	b.Clear()
	assert.Equal(t, "", b.Content())
}

func TestWritePage(t *testing.T) {
	p := NewPage()
	p.Current.Replace(NewHTML(locale.Portuguese).Current(sampleReport))
	p.Forecast.Replace(NewHTML(locale.Portuguese).Forecast(sampleDays))

	var buf bytes.Buffer
	require.NoError(t, WritePage(&buf, PageData{Lang: locale.Portuguese, Query: " São Paulo ", Page: p}))

	doc := parse(t, buf.String())
	val, _ := doc.Find("#city-input").Attr("value")
	assert.Equal(t, "São Paulo", val)
	assert.Equal(t, 1, doc.Find("#search-button").Length())
	assert.Equal(t, "São Paulo", doc.Find("#weather-result p span").First().Text())
	assert.Equal(t, 2, doc.Find("#forecast-result .forecast-day").Length())
	lang, _ := doc.Find("html").Attr("lang")
	assert.Equal(t, "pt", lang)
}
