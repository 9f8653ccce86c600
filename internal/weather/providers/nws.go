package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-normals-comparison/internal/geo"
	"github.com/i474232898/weather-normals-comparison/internal/weather"
)

// NWSClient implements weather.ConditionsFetcher against api.weather.gov.
// The service requires every caller to identify itself, so the configured
// client label rides along as User-Agent on each request.
type NWSClient struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewNWSClient(client *http.Client, baseURL, userAgent string) *NWSClient {
	return &NWSClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client:    client,
			UserAgent: userAgent,
		},
		circuit: newCircuit("nws"),
	}
}

// nwsMeasurement is the unit-bearing value shape used across api.weather.gov
// payloads. Value is a pointer because the service reports null for readings
// a station does not take.
type nwsMeasurement struct {
	Value *float64 `json:"value"`
}

// CurrentConditions chains the four point lookups: point metadata, the
// observation station list, the latest observation, and the forecast. The
// returned high/low reconcile forecast and observed extremes for day's UTC
// calendar date, biased toward the more extreme of the two.
func (c *NWSClient) CurrentConditions(ctx context.Context, origin geo.Coordinate, day time.Time) (weather.CurrentConditions, error) {
	var points struct {
		Properties struct {
			ObservationStations string `json:"observationStations"`
			Forecast            string `json:"forecast"`
			RelativeLocation    struct {
				Properties struct {
					City     string         `json:"city"`
					State    string         `json:"state"`
					Distance nwsMeasurement `json:"distance"`
				} `json:"properties"`
			} `json:"relativeLocation"`
		} `json:"properties"`
	}
	pointsURL := fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, origin.Latitude, origin.Longitude)
	if err := c.getJSON(ctx, pointsURL, &points); err != nil {
		return weather.CurrentConditions{}, err
	}

	var stations struct {
		Features []struct {
			Properties struct {
				StationIdentifier string `json:"stationIdentifier"`
			} `json:"properties"`
		} `json:"features"`
	}
	if err := c.getJSON(ctx, points.Properties.ObservationStations, &stations); err != nil {
		return weather.CurrentConditions{}, err
	}
	if len(stations.Features) == 0 {
		return weather.CurrentConditions{}, fmt.Errorf("%w: point %.4f,%.4f", weather.ErrNoObservationStation, origin.Latitude, origin.Longitude)
	}
	stationID := stations.Features[0].Properties.StationIdentifier

	var obs struct {
		Properties struct {
			Timestamp                 string         `json:"timestamp"`
			TextDescription           string         `json:"textDescription"`
			Temperature               nwsMeasurement `json:"temperature"`
			MaxTemperatureLast24Hours nwsMeasurement `json:"maxTemperatureLast24Hours"`
			MinTemperatureLast24Hours nwsMeasurement `json:"minTemperatureLast24Hours"`
			WindSpeed                 nwsMeasurement `json:"windSpeed"`
		} `json:"properties"`
	}
	obsURL := fmt.Sprintf("%s/stations/%s/observations/latest", c.baseURL, stationID)
	if err := c.getJSON(ctx, obsURL, &obs); err != nil {
		return weather.CurrentConditions{}, err
	}
	if obs.Properties.Temperature.Value == nil {
		return weather.CurrentConditions{}, fmt.Errorf("%w: station %s reported no temperature", weather.ErrUpstreamUnavailable, stationID)
	}

	currentF := geo.CelsiusToFahrenheit(*obs.Properties.Temperature.Value)

	// Stations that do not track 24h extremes report null; fall back to the
	// current reading so reconciliation still has an observed bound.
	max24F := currentF
	if v := obs.Properties.MaxTemperatureLast24Hours.Value; v != nil {
		max24F = geo.CelsiusToFahrenheit(*v)
	}
	min24F := currentF
	if v := obs.Properties.MinTemperatureLast24Hours.Value; v != nil {
		min24F = geo.CelsiusToFahrenheit(*v)
	}

	var wind float64
	if v := obs.Properties.WindSpeed.Value; v != nil {
		wind = *v
	}

	forecastHigh, forecastLow, err := c.forecastExtremes(ctx, points.Properties.Forecast, day)
	if err != nil {
		return weather.CurrentConditions{}, err
	}

	rel := points.Properties.RelativeLocation.Properties
	var relKm float64
	if rel.Distance.Value != nil {
		relKm = *rel.Distance.Value / 1000
	}

	return weather.CurrentConditions{
		StationID:     stationID,
		LocationLabel: fmt.Sprintf("%s, %s", rel.City, rel.State),
		DistanceKm:    relKm,
		Timestamp:     obs.Properties.Timestamp,
		TemperatureF:  currentF,
		HighF:         math.Max(forecastHigh, max24F),
		LowF:          math.Min(forecastLow, min24F),
		WindSpeed:     wind,
		Description:   obs.Properties.TextDescription,
	}, nil
}

// forecastExtremes pulls the forecast periods that fall on day's UTC calendar
// date and returns the highest and lowest period temperature. Forecast
// temperatures are already in degrees Fahrenheit.
func (c *NWSClient) forecastExtremes(ctx context.Context, forecastURL string, day time.Time) (high, low float64, err error) {
	var fc struct {
		Properties struct {
			Periods []struct {
				StartTime   string  `json:"startTime"`
				Temperature float64 `json:"temperature"`
			} `json:"periods"`
		} `json:"properties"`
	}
	if err := c.getJSON(ctx, forecastURL, &fc); err != nil {
		return 0, 0, err
	}

	date := day.UTC().Format("2006-01-02")
	var temps []float64
	for _, p := range fc.Properties.Periods {
		start, err := time.Parse(time.RFC3339, p.StartTime)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: bad forecast period start %q: %v", weather.ErrUpstreamUnavailable, p.StartTime, err)
		}
		if start.UTC().Format("2006-01-02") == date {
			temps = append(temps, p.Temperature)
		}
	}
	if len(temps) == 0 {
		return 0, 0, fmt.Errorf("%w: %s", weather.ErrNoForecastForToday, date)
	}

	high, low = temps[0], temps[0]
	for _, t := range temps[1:] {
		high = math.Max(high, t)
		low = math.Min(low, t)
	}
	return high, low, nil
}

func (c *NWSClient) getJSON(ctx context.Context, u string, out interface{}) error {
	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", weather.ErrUpstreamUnavailable, u, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", weather.ErrUpstreamUnavailable, u, err)
	}
	return nil
}
