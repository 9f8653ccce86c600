package weather

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/i474232898/weather-normals-comparison/internal/geo"
)

type stubResolver struct {
	coord geo.Coordinate
	err   error
}

func (s *stubResolver) Resolve(_ context.Context, _ string) (geo.Coordinate, error) {
	return s.coord, s.err
}

type stubStationFinder struct {
	station Station
	err     error
}

func (s *stubStationFinder) FindNearestWithNormals(_ context.Context, _ geo.Coordinate) (Station, error) {
	return s.station, s.err
}

type stubNormalsReader struct {
	normals ClimateNormals
	err     error
	gotDay  MonthDay
}

func (s *stubNormalsReader) ReadNormals(_ context.Context, _ Station, day MonthDay) (ClimateNormals, error) {
	s.gotDay = day
	return s.normals, s.err
}

type stubConditionsFetcher struct {
	conditions CurrentConditions
	err        error
	called     bool
}

func (s *stubConditionsFetcher) CurrentConditions(_ context.Context, _ geo.Coordinate, _ time.Time) (CurrentConditions, error) {
	s.called = true
	return s.conditions, s.err
}

func TestBuildReportFullChain(t *testing.T) {
	origin := geo.Coordinate{Latitude: 40.7506, Longitude: -73.9972}
	station := Station{
		ID:         "GHCND:USW00094728",
		Name:       "NY CITY CENTRAL PARK, NY US",
		Coordinate: geo.Coordinate{Latitude: 40.7790, Longitude: -73.9693},
	}

	normals := &stubNormalsReader{normals: ClimateNormals{HighAvg: 75.0, HighSD: 80.0, LowAvg: 60.0, LowSD: 55.0}}
	conditions := &stubConditionsFetcher{conditions: CurrentConditions{
		StationID:    "KNYC",
		TemperatureF: 79.0,
		HighF:        82.0,
		LowF:         58.0,
	}}

	svc := NewService(
		&stubResolver{coord: origin},
		&stubStationFinder{station: station},
		normals,
		conditions,
	)

	day := time.Date(2026, time.August, 22, 14, 30, 0, 0, time.UTC)
	rep, err := svc.BuildReport(context.Background(), "10001", day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rep.Query != "10001" {
		t.Errorf("Query = %q, want 10001", rep.Query)
	}
	if rep.Date != "2026-08-22" {
		t.Errorf("Date = %q, want 2026-08-22", rep.Date)
	}
	if normals.gotDay != (MonthDay{Month: time.August, Day: 22}) {
		t.Errorf("normals read for %v, want 08-22", normals.gotDay)
	}

	wantKm := geo.DistanceKm(origin, station.Coordinate)
	if math.Abs(rep.StationDistanceKm-wantKm) > 1e-9 {
		t.Errorf("StationDistanceKm = %f, want %f", rep.StationDistanceKm, wantKm)
	}

	d := rep.Delta
	if math.Abs(d.DeltaHigh-7.0) > 1e-9 || math.Abs(d.DeltaLow-(-2.0)) > 1e-9 {
		t.Errorf("deltas = %+f / %+f, want +7.0 / -2.0", d.DeltaHigh, d.DeltaLow)
	}
	if d.HighTendency != TendencyWarmer || d.LowTendency != TendencyCooler {
		t.Errorf("tendencies = %q / %q, want warmer / cooler", d.HighTendency, d.LowTendency)
	}
	if d.HighInRange || !d.LowInRange {
		t.Errorf("range flags = %v / %v, want false / true", d.HighInRange, d.LowInRange)
	}
	if d.RangeState != RangeLowOnly {
		t.Errorf("RangeState = %q, want %q", d.RangeState, RangeLowOnly)
	}
}

func TestBuildReportPropagatesSentinels(t *testing.T) {
	day := time.Now().UTC()

	tests := []struct {
		name string
		svc  *Service
		want error
	}{
		{
			name: "invalid input from resolver",
			svc: NewService(
				&stubResolver{err: ErrInvalidInput},
				&stubStationFinder{}, &stubNormalsReader{}, &stubConditionsFetcher{},
			),
			want: ErrInvalidInput,
		},
		{
			name: "no qualifying station",
			svc: NewService(
				&stubResolver{},
				&stubStationFinder{err: ErrNoQualifyingStation},
				&stubNormalsReader{}, &stubConditionsFetcher{},
			),
			want: ErrNoQualifyingStation,
		},
		{
			name: "no forecast for today",
			svc: NewService(
				&stubResolver{}, &stubStationFinder{}, &stubNormalsReader{},
				&stubConditionsFetcher{err: ErrNoForecastForToday},
			),
			want: ErrNoForecastForToday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.BuildReport(context.Background(), "10001", day)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuildReportStopsAtFirstFailure(t *testing.T) {
	// A missing normals row must end the run before conditions are fetched;
	// there is no partial report.
	conditions := &stubConditionsFetcher{}
	svc := NewService(
		&stubResolver{},
		&stubStationFinder{},
		&stubNormalsReader{err: ErrNormalsRowMissing},
		conditions,
	)

	rep, err := svc.BuildReport(context.Background(), "10001", time.Now().UTC())
	if !errors.Is(err, ErrNormalsRowMissing) {
		t.Fatalf("error = %v, want ErrNormalsRowMissing", err)
	}
	if rep != nil {
		t.Fatal("expected nil report on failure")
	}
	if conditions.called {
		t.Fatal("conditions fetcher must not run after an earlier failure")
	}
}
