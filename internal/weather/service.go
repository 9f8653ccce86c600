package weather

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/i474232898/weather-normals-comparison/internal/geo"
)

// Service chains the four collaborators into a single comparison run:
// resolve the location, pick the nearest climate station, read that day's
// normals, fetch current conditions, then measure the delta.
type Service struct {
	resolver   LocationResolver
	stations   StationFinder
	normals    NormalsReader
	conditions ConditionsFetcher
}

// NewService creates a new Service.
func NewService(resolver LocationResolver, stations StationFinder, normals NormalsReader, conditions ConditionsFetcher) *Service {
	return &Service{
		resolver:   resolver,
		stations:   stations,
		normals:    normals,
		conditions: conditions,
	}
}

// BuildReport runs the full chain for the given location input and target day.
// Every step must succeed; there is no partial report. The target day is an
// explicit argument so callers control what "today" means.
func (s *Service) BuildReport(ctx context.Context, locationInput string, day time.Time) (*Report, error) {
	date := day.UTC().Format("2006-01-02")
	slog.Debug("building report", "query", locationInput, "date", date)

	origin, err := s.resolver.Resolve(ctx, locationInput)
	if err != nil {
		return nil, fmt.Errorf("resolve location %q: %w", locationInput, err)
	}
	slog.Debug("resolved location", "query", locationInput, "lat", origin.Latitude, "lon", origin.Longitude)

	station, err := s.stations.FindNearestWithNormals(ctx, origin)
	if err != nil {
		return nil, fmt.Errorf("find climate station: %w", err)
	}
	stationKm := geo.DistanceKm(origin, station.Coordinate)
	slog.Debug("selected climate station", "id", station.ID, "name", station.Name, "distanceKm", stationKm)

	normals, err := s.normals.ReadNormals(ctx, station, MonthDayOf(day))
	if err != nil {
		return nil, fmt.Errorf("read normals for station %s: %w", station.ID, err)
	}

	current, err := s.conditions.CurrentConditions(ctx, origin, day)
	if err != nil {
		return nil, fmt.Errorf("fetch current conditions: %w", err)
	}

	return &Report{
		Query:             locationInput,
		Date:              date,
		Origin:            origin,
		Station:           station,
		StationDistanceKm: stationKm,
		Normals:           normals,
		Current:           current,
		Delta:             Compare(current, normals),
	}, nil
}
