package render

import (
	htmltemplate "html/template"
	"io"

	"weather-lookup/locale"

	"github.com/Masterminds/sprig"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="{{ .Lang }}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ .L.PageTitle }}</title>
<style>
body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; }
.forecast-day { display: flex; gap: 1rem; padding: .25rem 0; border-bottom: 1px solid #ddd; }
.info-message { color: #555; }
</style>
</head>
<body>
<h1>{{ .L.PageTitle }}</h1>
<form method="get" action="/">
<input type="text" id="city-input" name="city" value="{{ .Query | trim }}" placeholder="{{ .L.InputPlaceholder }}" autofocus>
<button type="submit" id="search-button">{{ .L.SearchButton }}</button>
</form>
<div id="weather-result">{{ .Current }}</div>
<div id="forecast-result">{{ .Forecast }}</div>
</body>
</html>
`

var page = htmltemplate.Must(htmltemplate.New("page").Funcs(sprig.HtmlFuncMap()).Parse(pageTemplate))

// PageData is the input of WritePage
type PageData struct {
	Lang  locale.Language
	Query string // echoed back into the search field
	Page  *Page
}

// WritePage writes the full HTML document with the search form and both
// regions. Region content is trusted: it comes from an HTML renderer, which
// escapes everything it interpolates.
func WritePage(w io.Writer, data PageData) error {
	current, forecast := data.Page.Snapshot()
	return page.Execute(w, struct {
		Lang     locale.Language
		L        locale.Messages
		Query    string
		Current  htmltemplate.HTML
		Forecast htmltemplate.HTML
	}{
		Lang:     data.Lang,
		L:        locale.For(data.Lang),
		Query:    data.Query,
		Current:  htmltemplate.HTML(current),
		Forecast: htmltemplate.HTML(forecast),
	})
}
