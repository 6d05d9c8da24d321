// Package dateformat renders API calendar dates as short, localized labels.
package dateformat

import (
	"fmt"
	"time"

	"weather-lookup/locale"
)

// Layout is the calendar date layout used by the forecast API
const Layout = "2006-01-02"

var weekdays = map[locale.Language][7]string{
	locale.Portuguese: {"dom.", "seg.", "ter.", "qua.", "qui.", "sex.", "sáb."},
	locale.English:    {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
}

// Short formats an ISO calendar date as weekday plus day and month, in the
// default language.
func Short(date string) string {
	return ShortIn(locale.Default, date)
}

// ShortIn formats date for lang: "seg., 15/01" in Portuguese, "Mon, 1/15" in
// English. The date is read as a plain calendar day in UTC so the local zone
// of the process cannot move it. Input that is not a date is returned as is.
func ShortIn(lang locale.Language, date string) string {
	d, err := time.Parse(Layout, date)
	if err != nil {
		return date
	}
	names, ok := weekdays[lang]
	if !ok {
		lang = locale.Default
		names = weekdays[lang]
	}
	wd := names[d.Weekday()]

	switch lang {
	case locale.English:
		return fmt.Sprintf("%s, %d/%d", wd, int(d.Month()), d.Day())
	default:
		return fmt.Sprintf("%s, %02d/%02d", wd, d.Day(), int(d.Month()))
	}
}
