package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-normals-comparison/internal/geo"
	"github.com/i474232898/weather-normals-comparison/internal/weather"
)

// ZippopotamClient implements weather.LocationResolver on top of the
// Zippopotam postal-code API.
type ZippopotamClient struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewZippopotamClient(client *http.Client, baseURL, userAgent string) *ZippopotamClient {
	return &ZippopotamClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client:    client,
			UserAgent: userAgent,
		},
		circuit: newCircuit("zippopotam"),
	}
}

// Resolve turns a 5-digit ZIP or a "City, State" pair into a coordinate.
// City/state input is first narrowed to a postal code and then resolved
// through the same ZIP path. Anything else is rejected as invalid input.
func (z *ZippopotamClient) Resolve(ctx context.Context, input string) (geo.Coordinate, error) {
	trimmed := strings.TrimSpace(input)
	if isZIPCode(trimmed) {
		return z.resolveZIP(ctx, trimmed)
	}

	parts := strings.Split(trimmed, ",")
	if len(parts) != 2 {
		return geo.Coordinate{}, fmt.Errorf("%w: %q", weather.ErrInvalidInput, input)
	}
	city := strings.TrimSpace(parts[0])
	state := strings.TrimSpace(parts[1])

	zip, err := z.lookupPostalCode(ctx, city, state)
	if err != nil {
		return geo.Coordinate{}, err
	}
	slog.Debug("narrowed city to postal code", "city", city, "state", state, "zip", zip)

	return z.resolveZIP(ctx, zip)
}

func (z *ZippopotamClient) resolveZIP(ctx context.Context, zip string) (geo.Coordinate, error) {
	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s/us/%s", z.baseURL, zip), nil)
	}

	resp, err := doRequest(ctx, z.httpCfg, z.circuit, buildRequest)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("%w: zip %s: %v", weather.ErrLocationNotFound, zip, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Places []struct {
			Latitude  string `json:"latitude"`
			Longitude string `json:"longitude"`
		} `json:"places"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return geo.Coordinate{}, fmt.Errorf("%w: zip %s: %v", weather.ErrLocationNotFound, zip, err)
	}
	if len(payload.Places) == 0 {
		return geo.Coordinate{}, fmt.Errorf("%w: zip %s matched no places", weather.ErrLocationNotFound, zip)
	}

	// Coordinates arrive as JSON strings.
	lat, err := strconv.ParseFloat(payload.Places[0].Latitude, 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("%w: zip %s: bad latitude: %v", weather.ErrLocationNotFound, zip, err)
	}
	lon, err := strconv.ParseFloat(payload.Places[0].Longitude, 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("%w: zip %s: bad longitude: %v", weather.ErrLocationNotFound, zip, err)
	}

	return geo.Coordinate{Latitude: lat, Longitude: lon}, nil
}

func (z *ZippopotamClient) lookupPostalCode(ctx context.Context, city, state string) (string, error) {
	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s/us/%s/%s", z.baseURL, url.PathEscape(state), url.PathEscape(city))
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, z.httpCfg, z.circuit, buildRequest)
	if err != nil {
		return "", fmt.Errorf("%w: %s, %s: %v", weather.ErrLocationNotFound, city, state, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Places []struct {
			PostCode string `json:"post code"`
		} `json:"places"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: %s, %s: %v", weather.ErrLocationNotFound, city, state, err)
	}
	if len(payload.Places) == 0 || payload.Places[0].PostCode == "" {
		return "", fmt.Errorf("%w: %s, %s matched no places", weather.ErrLocationNotFound, city, state)
	}

	return payload.Places[0].PostCode, nil
}

// isZIPCode reports whether s is exactly five ASCII digits.
func isZIPCode(s string) bool {
	if len(s) != 5 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
