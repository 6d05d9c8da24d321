package render

import (
	"bytes"
	htmltemplate "html/template"
	"strconv"
	texttemplate "text/template"

	"weather-lookup/locale"
	"weather-lookup/models"

	"github.com/Masterminds/sprig"
)

// Renderer produces region content for one output medium
type Renderer interface {
	// Message renders a single informational or error line
	Message(msg string) string
	// Current renders the current-weather region
	Current(r models.Report) string
	// Forecast renders the forecast list region
	Forecast(days []models.DayReport) string
	// Language returns the language of the labels
	Language() locale.Language
}

type view struct {
	L      locale.Messages
	Msg    string
	Report models.Report
	Days   []models.DayReport
}

// formatTemp prints temperatures the way the API sends them: 23.4, 18, -2.5
func formatTemp(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

const htmlTemplates = `
{{- define "message" }}<p class="info-message">{{ .Msg }}</p>{{ end -}}

{{- define "current" }}
<p><strong>{{ .L.CityLabel }}</strong> <span>{{ .Report.City | trim }}</span></p>
<p><strong>{{ .L.TemperatureLabel }}</strong> <span>{{ temp .Report.Temperature }}{{ .Report.Unit | default "°C" }}</span></p>
<p><strong>{{ .L.ConditionLabel }}</strong> <span>{{ .Report.Condition }}</span></p>
{{ end -}}

{{- define "forecast" }}<h3>{{ .L.ForecastHeading }}</h3>
{{- range .Days }}
<div class="forecast-day">
    <div class="date">{{ .Label }}</div>
    <div class="temp">{{ $.L.MinLabel }} {{ temp .MinTemp }}{{ .Unit | default "°C" }} | {{ $.L.MaxLabel }} {{ temp .MaxTemp }}{{ .Unit | default "°C" }}</div>
    <div class="desc">{{ .Condition }}</div>
</div>
{{- end }}
{{ end -}}
`

const textTemplates = `
{{- define "message" }}{{ .Msg }}
{{ end -}}

{{- define "current" }}{{ .L.CityLabel }} {{ .Report.City | trim }}
{{ .L.TemperatureLabel }} {{ temp .Report.Temperature }}{{ .Report.Unit | default "°C" }}
{{ .L.ConditionLabel }} {{ .Report.Condition }}
{{ end -}}

{{- define "forecast" }}{{ .L.ForecastHeading }}
{{ range .Days }}  {{ .Label | printf "%-12s" }} {{ $.L.MinLabel }} {{ temp .MinTemp }}{{ .Unit | default "°C" }} | {{ $.L.MaxLabel }} {{ temp .MaxTemp }}{{ .Unit | default "°C" }}  {{ .Condition }}
{{ end }}{{ end -}}
`

// HTML renders escaped markup for the web page
type HTML struct {
	lang locale.Language
	tmpl *htmltemplate.Template
}

// NewHTML creates an HTML renderer with labels in lang
func NewHTML(lang locale.Language) *HTML {
	funcs := sprig.HtmlFuncMap()
	funcs["temp"] = formatTemp
	return &HTML{
		lang: lang,
		tmpl: htmltemplate.Must(htmltemplate.New("regions").Funcs(funcs).Parse(htmlTemplates)),
	}
}

func (h *HTML) Language() locale.Language { return h.lang }

func (h *HTML) Message(msg string) string {
	return h.exec("message", view{L: locale.For(h.lang), Msg: msg})
}

func (h *HTML) Current(r models.Report) string {
	return h.exec("current", view{L: locale.For(h.lang), Report: r})
}

func (h *HTML) Forecast(days []models.DayReport) string {
	return h.exec("forecast", view{L: locale.For(h.lang), Days: days})
}

func (h *HTML) exec(name string, v view) string {
	var buf bytes.Buffer
	// the templates are static and only read fields of view
	_ = h.tmpl.ExecuteTemplate(&buf, name, v)
	return buf.String()
}

// Text renders plain text for terminals
type Text struct {
	lang locale.Language
	tmpl *texttemplate.Template
}

// NewText creates a plain text renderer with labels in lang
func NewText(lang locale.Language) *Text {
	funcs := sprig.TxtFuncMap()
	funcs["temp"] = formatTemp
	return &Text{
		lang: lang,
		tmpl: texttemplate.Must(texttemplate.New("regions").Funcs(funcs).Parse(textTemplates)),
	}
}

func (t *Text) Language() locale.Language { return t.lang }

func (t *Text) Message(msg string) string {
	return t.exec("message", view{L: locale.For(t.lang), Msg: msg})
}

func (t *Text) Current(r models.Report) string {
	return t.exec("current", view{L: locale.For(t.lang), Report: r})
}

func (t *Text) Forecast(days []models.DayReport) string {
	return t.exec("forecast", view{L: locale.For(t.lang), Days: days})
}

func (t *Text) exec(name string, v view) string {
	var buf bytes.Buffer
	_ = t.tmpl.ExecuteTemplate(&buf, name, v)
	return buf.String()
}

var (
	_ Renderer = (*HTML)(nil)
	_ Renderer = (*Text)(nil)
)
