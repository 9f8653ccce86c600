package weather

import (
	"fmt"
	"time"

	"github.com/i474232898/weather-normals-comparison/internal/geo"
)

// Station is a climate station from the NOAA directory.
type Station struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Coordinate geo.Coordinate `json:"coordinate"`
}

// MonthDay identifies a calendar day without a year, the key used by the
// 1981-2010 daily normals dataset.
type MonthDay struct {
	Month time.Month
	Day   int
}

// MonthDayOf extracts the month-day key from t in UTC.
func MonthDayOf(t time.Time) MonthDay {
	u := t.UTC()
	return MonthDay{Month: u.Month(), Day: u.Day()}
}

// String renders the zero-padded "MM-DD" form used by the dataset's DATE column.
func (md MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day)
}

// ClimateNormals holds one day's temperature normals in degrees Fahrenheit.
// HighSD and LowSD are the one-standard-deviation bounds around the averages:
// HighSD sits above HighAvg, LowSD sits below LowAvg.
type ClimateNormals struct {
	HighAvg float64 `json:"highAvg"`
	HighSD  float64 `json:"highSd"`
	LowAvg  float64 `json:"lowAvg"`
	LowSD   float64 `json:"lowSd"`
}

// CurrentConditions is the reconciled observed + forecast view for one day,
// all temperatures in degrees Fahrenheit.
type CurrentConditions struct {
	StationID     string  `json:"station"`
	LocationLabel string  `json:"location"`
	DistanceKm    float64 `json:"distanceKm"`
	Timestamp     string  `json:"timestamp"`
	TemperatureF  float64 `json:"temperatureF"`
	HighF         float64 `json:"highF"`
	LowF          float64 `json:"lowF"`
	WindSpeed     float64 `json:"windSpeed"`
	Description   string  `json:"description"`
}

// Report is the complete result of one comparison run. Renderers print it
// verbatim; nothing in here is recomputed downstream.
type Report struct {
	Query             string            `json:"query"`
	Date              string            `json:"date"` // UTC calendar date, 2006-01-02
	Origin            geo.Coordinate    `json:"origin"`
	Station           Station           `json:"station"`
	StationDistanceKm float64           `json:"stationDistanceKm"`
	Normals           ClimateNormals    `json:"normals"`
	Current           CurrentConditions `json:"current"`
	Delta             DeltaResult       `json:"delta"`
}
