package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/i474232898/weather-normals-comparison/internal/weather"
)

var (
	headingColor = color.New(color.Bold)
	warmerColor  = color.New(color.FgRed)
	coolerColor  = color.New(color.FgCyan)
	steadyColor  = color.New(color.FgYellow)
	okColor      = color.New(color.FgGreen)
	alertColor   = color.New(color.FgRed)
	watchColor   = color.New(color.FgYellow)
)

// Console writes the report for a terminal. Colors degrade to plain text
// when the destination is not a TTY.
func Console(w io.Writer, rep *weather.Report) {
	fmt.Fprintf(w, "Comparison for %s on %s\n", rep.Query, rep.Date)
	fmt.Fprintf(w, "Resolved to %.4f, %.4f\n\n", rep.Origin.Latitude, rep.Origin.Longitude)

	headingColor.Fprintf(w, "Nearest climate station (%.1f km): %s [%s]\n",
		rep.StationDistanceKm, rep.Station.Name, rep.Station.ID)
	fmt.Fprintf(w, "  1981-2010 normals: high %.1f°F (upper bound %.1f°F), low %.1f°F (lower bound %.1f°F)\n\n",
		rep.Normals.HighAvg, rep.Normals.HighSD, rep.Normals.LowAvg, rep.Normals.LowSD)

	cur := rep.Current
	headingColor.Fprintf(w, "Nearest weather station (%.1f km): %s [%s]\n",
		cur.DistanceKm, cur.LocationLabel, cur.StationID)
	fmt.Fprintf(w, "  %s, %.1f°F as of %s, wind %.1f km/h\n",
		cur.Description, cur.TemperatureF, cur.Timestamp, cur.WindSpeed)
	fmt.Fprintf(w, "  Today: high %.1f°F, low %.1f°F\n\n", cur.HighF, cur.LowF)

	d := rep.Delta
	tendencyColor(d.HighTendency).Fprintf(w, "High %+.1f°F vs normal (%s)\n", d.DeltaHigh, d.HighTendency)
	tendencyColor(d.LowTendency).Fprintf(w, "Low  %+.1f°F vs normal (%s)\n", d.DeltaLow, d.LowTendency)
	stateColor(d.RangeState).Fprintln(w, d.RangeState.Sentence())
}

// ConsoleError prints a single-line failure in the report's place.
func ConsoleError(w io.Writer, err error) {
	alertColor.Fprintf(w, "error: %v\n", err)
}

func tendencyColor(t weather.Tendency) *color.Color {
	switch t {
	case weather.TendencyWarmer:
		return warmerColor
	case weather.TendencyCooler:
		return coolerColor
	default:
		return steadyColor
	}
}

func stateColor(s weather.RangeState) *color.Color {
	switch s {
	case weather.RangeBothWithin:
		return okColor
	case weather.RangeNeither:
		return alertColor
	default:
		return watchColor
	}
}
