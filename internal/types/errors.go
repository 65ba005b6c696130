package types

import "errors"

// Error taxonomy for the generation pipeline and the REST layer. All four
// pipeline errors are terminal for the current request; handlers translate
// them to HTTP statuses with errors.Is.
var (
	// ErrValidation covers missing/invalid caller input (empty destination,
	// malformed day count).
	ErrValidation = errors.New("invalid request input")

	// ErrGeocode means the destination could not be resolved to coordinates.
	ErrGeocode = errors.New("destination could not be geocoded")

	// ErrPoiFetch means the POI index was unreachable or timed out.
	ErrPoiFetch = errors.New("poi index fetch failed")

	// ErrPersistence means the itinerary store write failed.
	ErrPersistence = errors.New("itinerary persistence failed")

	ErrNotFound        = errors.New("requested item not found")
	ErrConflict        = errors.New("item already exists or conflict")
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
)
