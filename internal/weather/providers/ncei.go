package providers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-normals-comparison/internal/geo"
	"github.com/i474232898/weather-normals-comparison/internal/weather"
)

// Column names in the 1981-2010 daily normals CSVs. Values are stored in
// tenths of degrees Fahrenheit.
const (
	normalsDateColumn   = "DATE"
	normalsHighColumn   = "DLY-TMAX-NORMAL"
	normalsHighSDColumn = "DLY-TMAX-STDDEV"
	normalsLowColumn    = "DLY-TMIN-NORMAL"
	normalsLowSDColumn  = "DLY-TMIN-STDDEV"
)

// NCEIClient talks to the NOAA NCEI services: the CDO station directory and
// the published normals CSV files. It implements weather.StationFinder and
// weather.NormalsReader.
type NCEIClient struct {
	token       string
	stationsURL string
	csvRoot     string
	httpCfg     HTTPClientConfig
	circuit     *gobreaker.CircuitBreaker
}

func NewNCEIClient(client *http.Client, token, stationsURL, csvRoot, userAgent string) *NCEIClient {
	return &NCEIClient{
		token:       token,
		stationsURL: stationsURL,
		csvRoot:     strings.TrimSuffix(csvRoot, "/"),
		httpCfg: HTTPClientConfig{
			Client:    client,
			UserAgent: userAgent,
		},
		circuit: newCircuit("ncei"),
	}
}

// FindNearestWithNormals queries the station directory inside a one-degree
// window around origin and returns the closest station whose normals file
// carries daily temperature columns. Candidates are probed in ascending
// distance order; a failed probe only drops that candidate, never the run.
func (c *NCEIClient) FindNearestWithNormals(ctx context.Context, origin geo.Coordinate) (weather.Station, error) {
	if c.token == "" {
		return weather.Station{}, fmt.Errorf("ncei api token is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("datasetid", "NORMAL_DLY")
		values.Set("extent", fmt.Sprintf("%f,%f,%f,%f",
			origin.Latitude-1, origin.Longitude-1,
			origin.Latitude+1, origin.Longitude+1,
		))
		values.Set("limit", "100")

		req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", c.stationsURL, values.Encode()), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("token", c.token)
		return req, nil
	}

	resp, err := doRequest(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return weather.Station{}, fmt.Errorf("%w: station directory: %v", weather.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			ID        string  `json:"id"`
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Station{}, fmt.Errorf("%w: station directory: %v", weather.ErrUpstreamUnavailable, err)
	}
	if len(payload.Results) == 0 {
		return weather.Station{}, fmt.Errorf("%w: extent around %.4f,%.4f", weather.ErrNoStationsFound, origin.Latitude, origin.Longitude)
	}

	type candidate struct {
		station    weather.Station
		distanceKm float64
	}

	candidates := make([]candidate, 0, len(payload.Results))
	for _, r := range payload.Results {
		st := weather.Station{
			ID:   r.ID,
			Name: r.Name,
			Coordinate: geo.Coordinate{
				Latitude:  r.Latitude,
				Longitude: r.Longitude,
			},
		}
		candidates = append(candidates, candidate{
			station:    st,
			distanceKm: geo.DistanceKm(origin, st.Coordinate),
		})
	}

	// Stable sort keeps directory order for equal distances.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distanceKm < candidates[j].distanceKm
	})

	for _, cand := range candidates {
		ok, err := c.hasDailyNormals(ctx, cand.station.ID)
		if err != nil {
			slog.Debug("skipping station candidate", "station", cand.station.ID, "error", err)
			continue
		}
		if !ok {
			slog.Debug("station lacks daily temperature normals", "station", cand.station.ID)
			continue
		}
		return cand.station, nil
	}

	return weather.Station{}, fmt.Errorf("%w: probed %d candidates", weather.ErrNoQualifyingStation, len(candidates))
}

// hasDailyNormals probes the station's CSV for the daily TMAX normal column.
// Only the header row is read; closing the body discards the rest.
func (c *NCEIClient) hasDailyNormals(ctx context.Context, stationID string) (bool, error) {
	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, c.csvURL(stationID), nil)
	}

	resp, err := doRequest(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	header, err := csv.NewReader(resp.Body).Read()
	if err != nil {
		return false, err
	}
	for _, col := range header {
		if col == normalsHighColumn {
			return true, nil
		}
	}
	return false, nil
}

// ReadNormals fetches the station's normals CSV and returns the temperature
// normals for the given day, converted from tenths of degrees Fahrenheit.
// The one-standard-deviation bounds are folded in here: HighSD above the
// high average, LowSD below the low average.
func (c *NCEIClient) ReadNormals(ctx context.Context, station weather.Station, day weather.MonthDay) (weather.ClimateNormals, error) {
	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, c.csvURL(station.ID), nil)
	}

	resp, err := doRequest(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return weather.ClimateNormals{}, fmt.Errorf("%w: normals for %s: %v", weather.ErrUpstreamUnavailable, station.ID, err)
	}
	defer resp.Body.Close()

	reader := csv.NewReader(resp.Body)
	header, err := reader.Read()
	if err != nil {
		return weather.ClimateNormals{}, fmt.Errorf("%w: normals for %s: %v", weather.ErrUpstreamUnavailable, station.ID, err)
	}

	columns := map[string]int{
		normalsDateColumn:   -1,
		normalsHighColumn:   -1,
		normalsHighSDColumn: -1,
		normalsLowColumn:    -1,
		normalsLowSDColumn:  -1,
	}
	for i, col := range header {
		if _, wanted := columns[col]; wanted {
			columns[col] = i
		}
	}
	for name, idx := range columns {
		if idx < 0 {
			return weather.ClimateNormals{}, fmt.Errorf("%w: normals for %s: missing column %s", weather.ErrUpstreamUnavailable, station.ID, name)
		}
	}

	want := day.String()
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return weather.ClimateNormals{}, fmt.Errorf("%w: normals for %s: %v", weather.ErrUpstreamUnavailable, station.ID, err)
		}
		if record[columns[normalsDateColumn]] != want {
			continue
		}

		tmax, err := parseTenths(record[columns[normalsHighColumn]])
		if err != nil {
			return weather.ClimateNormals{}, fmt.Errorf("%w: normals for %s: %v", weather.ErrUpstreamUnavailable, station.ID, err)
		}
		tmaxSD, err := parseTenths(record[columns[normalsHighSDColumn]])
		if err != nil {
			return weather.ClimateNormals{}, fmt.Errorf("%w: normals for %s: %v", weather.ErrUpstreamUnavailable, station.ID, err)
		}
		tmin, err := parseTenths(record[columns[normalsLowColumn]])
		if err != nil {
			return weather.ClimateNormals{}, fmt.Errorf("%w: normals for %s: %v", weather.ErrUpstreamUnavailable, station.ID, err)
		}
		tminSD, err := parseTenths(record[columns[normalsLowSDColumn]])
		if err != nil {
			return weather.ClimateNormals{}, fmt.Errorf("%w: normals for %s: %v", weather.ErrUpstreamUnavailable, station.ID, err)
		}

		return weather.ClimateNormals{
			HighAvg: tmax / 10,
			HighSD:  (tmax + tmaxSD) / 10,
			LowAvg:  tmin / 10,
			LowSD:   (tmin - tminSD) / 10,
		}, nil
	}

	return weather.ClimateNormals{}, fmt.Errorf("%w: station %s day %s", weather.ErrNormalsRowMissing, station.ID, want)
}

func (c *NCEIClient) csvURL(stationID string) string {
	return fmt.Sprintf("%s/%s.csv", c.csvRoot, stationCode(stationID))
}

// stationCode strips the dataset prefix from a directory id, e.g.
// "GHCND:USW00094728" -> "USW00094728".
func stationCode(id string) string {
	if i := strings.IndexByte(id, ':'); i >= 0 {
		return id[i+1:]
	}
	return id
}

func parseTenths(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
