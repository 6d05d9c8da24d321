package dateformat

import (
	"testing"
	"time"

	"weather-lookup/locale"

	"github.com/stretchr/testify/assert"
)

func TestShort(t *testing.T) {
	assert.Equal(t, "seg., 15/01", Short("2024-01-15"))
	assert.Equal(t, "sáb., 29/06", Short("2024-06-29"))
	assert.Equal(t, "Mon, 1/15", ShortIn(locale.English, "2024-01-15"))
	assert.Equal(t, "Sun, 12/31", ShortIn(locale.English, "2023-12-31"))
}

func TestShortIgnoresLocalZone(t *testing.T) {
	orig := time.Local
	defer func() { time.Local = orig }()

	zones := []*time.Location{
		time.UTC,
		time.FixedZone("UTC-12", -12*3600),
		time.FixedZone("UTC-3", -3*3600),
		time.FixedZone("UTC+14", 14*3600),
	}
	for _, z := range zones {
		time.Local = z
		assert.Equal(t, "seg., 15/01", Short("2024-01-15"), z.String())
		assert.Equal(t, "Mon, 1/15", ShortIn(locale.English, "2024-01-15"), z.String())
	}
}

func TestShortInvalidInput(t *testing.T) {
	assert.Equal(t, "", Short(""))
	assert.Equal(t, "tomorrow", Short("tomorrow"))
	assert.Equal(t, "2024-13-01", Short("2024-13-01"))
}

func TestShortUnknownLanguage(t *testing.T) {
	assert.Equal(t, "seg., 15/01", ShortIn(locale.Language("xx"), "2024-01-15"))
}
