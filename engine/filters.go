package engine

// ============================================================================
// FILTER — Criteria-Based Record Selection
// ============================================================================
// Single-pass filter: checks ALL criteria per record in one loop.
// The result is an order-preserving subsequence of the input.
// ============================================================================

// Filter returns the plants matching all criteria.
// Region/country/owner sets are AND-combined across fields and OR-combined
// within a field; an empty set places no restriction. The capacity range is
// inclusive on both bounds.
//
// The relative order of the input is preserved. Zero matches is a valid,
// non-error outcome; an error is returned only for malformed criteria or
// records (ErrInvalidRange, ErrNegativeCapacity).
func Filter(plants []Plant, criteria Criteria) ([]Plant, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	if err := validatePlants(plants); err != nil {
		return nil, err
	}

	if criteria.IsEmpty() {
		out := make([]Plant, len(plants))
		copy(out, plants)
		return out, nil
	}

	regions := toSet(criteria.Regions)
	countries := toSet(criteria.Countries)
	owners := toSet(criteria.Owners)

	out := make([]Plant, 0, len(plants))
	for _, p := range plants {
		if len(regions) > 0 && !regions[p.Region] {
			continue
		}
		if len(countries) > 0 && !countries[p.Country] {
			continue
		}
		if len(owners) > 0 && !owners[p.Owner] {
			continue
		}
		if criteria.HasCapacityRange() &&
			(p.CapacityTTPA < criteria.CapacityMin || p.CapacityTTPA > criteria.CapacityMax) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// toSet converts a string slice to a lookup set.
func toSet(items []string) map[string]bool {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
