package weather

import "errors"

// Sentinel errors for the distinct failure modes of a report run. Callers
// classify with errors.Is; every one of these is terminal for the run and
// none triggers an automatic retry.
var (
	// ErrInvalidInput means the location string is neither a 5-digit ZIP nor
	// a "City, State" pair.
	ErrInvalidInput = errors.New(`location must be a 5-digit ZIP code or "City, State"`)

	// ErrLocationNotFound means the geocoding service could not resolve the
	// input to a coordinate.
	ErrLocationNotFound = errors.New("location could not be resolved to a coordinate")

	// ErrNoStationsFound means the station directory returned no candidates
	// inside the search window around the origin.
	ErrNoStationsFound = errors.New("no climate stations found near this location")

	// ErrNoQualifyingStation means candidates existed but none of them
	// publishes daily temperature normals.
	ErrNoQualifyingStation = errors.New("no nearby station publishes daily temperature normals")

	// ErrNormalsRowMissing means the chosen station's normals dataset has no
	// row for the requested day.
	ErrNormalsRowMissing = errors.New("normals dataset has no row for the requested day")

	// ErrNoObservationStation means the forecast service lists no observation
	// stations for the resolved point.
	ErrNoObservationStation = errors.New("no observation stations cover this location")

	// ErrNoForecastForToday means no forecast period falls on the requested
	// calendar date.
	ErrNoForecastForToday = errors.New("no forecast periods for the requested day")

	// ErrUpstreamUnavailable covers any other upstream failure: unexpected
	// status codes, open circuit breakers, and malformed payloads.
	ErrUpstreamUnavailable = errors.New("upstream weather service unavailable")
)
