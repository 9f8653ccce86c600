package weather

import (
	"context"
	"time"

	"github.com/i474232898/weather-normals-comparison/internal/geo"
)

// LocationResolver turns a user-supplied US location string (5-digit ZIP or
// "City, State") into a coordinate.
type LocationResolver interface {
	Resolve(ctx context.Context, input string) (geo.Coordinate, error)
}

// StationFinder picks the nearest climate station around origin that
// publishes daily temperature normals.
type StationFinder interface {
	FindNearestWithNormals(ctx context.Context, origin geo.Coordinate) (Station, error)
}

// NormalsReader reads one day's temperature normals for a station.
type NormalsReader interface {
	ReadNormals(ctx context.Context, station Station, day MonthDay) (ClimateNormals, error)
}

// ConditionsFetcher retrieves the reconciled observed + forecast conditions
// for the calendar date of day at origin.
type ConditionsFetcher interface {
	CurrentConditions(ctx context.Context, origin geo.Coordinate, day time.Time) (CurrentConditions, error)
}
