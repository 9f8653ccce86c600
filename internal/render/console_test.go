package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/i474232898/weather-normals-comparison/internal/geo"
	"github.com/i474232898/weather-normals-comparison/internal/weather"
)

func testReport() *weather.Report {
	current := weather.CurrentConditions{
		StationID:     "KNYC",
		LocationLabel: "New York, NY",
		DistanceKm:    2.3,
		Timestamp:     "2026-08-22T13:51:00+00:00",
		TemperatureF:  79.0,
		HighF:         82.0,
		LowF:          58.0,
		WindSpeed:     9.3,
		Description:   "Partly Cloudy",
	}
	normals := weather.ClimateNormals{HighAvg: 75.0, HighSD: 80.0, LowAvg: 60.0, LowSD: 55.0}

	return &weather.Report{
		Query:             "10001",
		Date:              "2026-08-22",
		Origin:            geo.Coordinate{Latitude: 40.7506, Longitude: -73.9972},
		Station:           weather.Station{ID: "GHCND:USW00094728", Name: "NY CITY CENTRAL PARK, NY US"},
		StationDistanceKm: 3.9,
		Normals:           normals,
		Current:           current,
		Delta:             weather.Compare(current, normals),
	}
}

func TestConsoleRendersReport(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	Console(&buf, testReport())
	out := buf.String()

	for _, want := range []string{
		"Comparison for 10001 on 2026-08-22",
		"Resolved to 40.7506, -73.9972",
		"NY CITY CENTRAL PARK, NY US [GHCND:USW00094728]",
		"high 75.0°F (upper bound 80.0°F)",
		"low 60.0°F (lower bound 55.0°F)",
		"New York, NY [KNYC]",
		"Partly Cloudy",
		"high 82.0°F, low 58.0°F",
		"High +7.0°F vs normal (warmer)",
		"Low  -2.0°F vs normal (cooler)",
		weather.RangeLowOnly.Sentence(),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q; got:\n%s", want, out)
		}
	}
}

func TestConsoleError(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	ConsoleError(&buf, errors.New("boom"))
	if got := buf.String(); !strings.Contains(got, "error: boom") {
		t.Fatalf("output = %q, want error line", got)
	}
}
