package engine

import (
	"errors"
	"fmt"
)

// ============================================================================
// ENGINE TYPES — Steel-Plant Filter and Aggregation
// ============================================================================
// The engine is a set of pure functions over an immutable []Plant slice.
// Nothing here mutates its input, so every operation is safe to call
// concurrently against a shared dataset.
// ============================================================================

// Plant is one row of the Global Iron and Steel Tracker dataset.
type Plant struct {
	Name         string  `json:"name"`
	Owner        string  `json:"owner"`
	Country      string  `json:"country"`
	Region       string  `json:"region"`
	CapacityTTPA float64 `json:"capacityTtpa"` // nominal crude steel capacity, thousand tonnes per annum
	AgeYears     float64 `json:"ageYears"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// Criteria defines which plants to include.
// Values within a field are OR-combined; fields are AND-combined.
// An empty slice means no restriction on that field.
//
// The capacity range is inclusive on both ends. A zero range (both bounds 0)
// means no capacity restriction; this mirrors the empty-slice convention and
// is what an untouched range widget produces.
type Criteria struct {
	Regions     []string `json:"regions,omitempty"`
	Countries   []string `json:"countries,omitempty"`
	Owners      []string `json:"owners,omitempty"`
	CapacityMin float64  `json:"capacityMin,omitempty"`
	CapacityMax float64  `json:"capacityMax,omitempty"`
}

// HasCapacityRange reports whether a capacity restriction is set.
func (c Criteria) HasCapacityRange() bool {
	return c.CapacityMin != 0 || c.CapacityMax != 0
}

// IsEmpty returns true if no filters are set.
func (c Criteria) IsEmpty() bool {
	return len(c.Regions) == 0 && len(c.Countries) == 0 && len(c.Owners) == 0 &&
		!c.HasCapacityRange()
}

// Validate checks the criteria for malformed input.
func (c Criteria) Validate() error {
	if !c.HasCapacityRange() {
		return nil
	}
	if c.CapacityMin < 0 || c.CapacityMax < 0 {
		return fmt.Errorf("%w: capacity bounds must be nonnegative (got %g..%g)",
			ErrInvalidRange, c.CapacityMin, c.CapacityMax)
	}
	if c.CapacityMin > c.CapacityMax {
		return fmt.Errorf("%w: min %g exceeds max %g",
			ErrInvalidRange, c.CapacityMin, c.CapacityMax)
	}
	return nil
}

// ============================================================================
// CATEGORY — Grouping dimension
// ============================================================================

// Category is a grouping dimension for the aggregation functions.
type Category string

const (
	CategoryRegion  Category = "region"
	CategoryCountry Category = "country"
	CategoryOwner   Category = "owner"
)

// selector returns the field accessor for a category.
func (c Category) selector() (func(Plant) string, error) {
	switch c {
	case CategoryRegion:
		return func(p Plant) string { return p.Region }, nil
	case CategoryCountry:
		return func(p Plant) string { return p.Country }, nil
	case CategoryOwner:
		return func(p Plant) string { return p.Owner }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
}

// ============================================================================
// AGGREGATE RESULT TYPES — derived, recomputed per query, never stored
// ============================================================================

// CategoryCount is one entry of a grouped plant count.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryCapacity is one entry of a grouped capacity total.
type CategoryCapacity struct {
	Category     string  `json:"category"`
	CapacityTTPA float64 `json:"capacityTtpa"`
}

// Metrics is the headline summary of a plant set.
// AverageCapacity is defined as 0 when Count is 0.
type Metrics struct {
	Count             int     `json:"count"`
	TotalCapacity     float64 `json:"totalCapacity"`
	AverageCapacity   float64 `json:"averageCapacity"`
	DistinctCountries int     `json:"distinctCountries"`
}

// ============================================================================
// ERRORS
// ============================================================================

// ErrInvalidArgument is the umbrella for malformed input. All engine
// validation errors wrap it, so callers can branch on a single sentinel.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	// ErrUnknownCategory reports a category key the engine cannot group by.
	ErrUnknownCategory = fmt.Errorf("%w: unknown category", ErrInvalidArgument)

	// ErrInvalidRange reports a malformed capacity range.
	ErrInvalidRange = fmt.Errorf("%w: invalid capacity range", ErrInvalidArgument)

	// ErrNegativeCapacity reports a record with negative capacity.
	ErrNegativeCapacity = fmt.Errorf("%w: negative capacity", ErrInvalidArgument)
)

// validatePlants rejects records that break the dataset invariants.
// Malformed records are surfaced, never silently corrected.
func validatePlants(plants []Plant) error {
	for i, p := range plants {
		if p.CapacityTTPA < 0 {
			return fmt.Errorf("%w: plant %q (record %d) has capacity %g",
				ErrNegativeCapacity, p.Name, i, p.CapacityTTPA)
		}
	}
	return nil
}
