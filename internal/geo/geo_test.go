package geo

import (
	"math"
	"testing"
)

func TestDistanceKmIdenticalPointsIsZero(t *testing.T) {
	p := Coordinate{Latitude: 40.7506, Longitude: -73.9972}
	if d := DistanceKm(p, p); d != 0 {
		t.Fatalf("expected zero distance for identical points, got %f", d)
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	nyc := Coordinate{Latitude: 40.7128, Longitude: -74.0060}
	la := Coordinate{Latitude: 34.0522, Longitude: -118.2437}

	ab := DistanceKm(nyc, la)
	ba := DistanceKm(la, nyc)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", ab, ba)
	}
}

func TestDistanceKmKnownPairs(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Coordinate
		wantKm float64
		tolKm  float64
	}{
		{
			name:   "new york to los angeles",
			a:      Coordinate{Latitude: 40.7128, Longitude: -74.0060},
			b:      Coordinate{Latitude: 34.0522, Longitude: -118.2437},
			wantKm: 3936,
			tolKm:  10,
		},
		{
			name:   "midtown manhattan to central park",
			a:      Coordinate{Latitude: 40.7506, Longitude: -73.9972},
			b:      Coordinate{Latitude: 40.7790, Longitude: -73.9693},
			wantKm: 3.9,
			tolKm:  0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.a, tt.b)
			if got < 0 {
				t.Fatalf("distance must not be negative, got %f", got)
			}
			if math.Abs(got-tt.wantKm) > tt.tolKm {
				t.Fatalf("expected ~%f km (tolerance %f), got %f", tt.wantKm, tt.tolKm, got)
			}
		})
	}
}

func TestCelsiusToFahrenheit(t *testing.T) {
	tests := []struct {
		c    float64
		want float64
	}{
		{c: 0, want: 32},
		{c: 100, want: 212},
		{c: -40, want: -40},
		{c: 37, want: 98.6},
	}

	for _, tt := range tests {
		if got := CelsiusToFahrenheit(tt.c); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("CelsiusToFahrenheit(%f) = %f, want %f", tt.c, got, tt.want)
		}
	}
}

func TestFahrenheitToCelsiusRoundTrip(t *testing.T) {
	for _, c := range []float64{-40, -17.5, 0, 12.3, 25, 100} {
		got := FahrenheitToCelsius(CelsiusToFahrenheit(c))
		if math.Abs(got-c) > 1e-9 {
			t.Errorf("round trip of %f gave %f", c, got)
		}
	}
}
