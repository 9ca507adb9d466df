package engine

import (
	"sort"
)

// ============================================================================
// AGGREGATORS — Grouping, Counting, and Capacity Totals
// ============================================================================
// Grouping preserves first-seen order, which doubles as the tie-break rule
// for the Top* functions: sort.SliceStable on a first-seen-ordered slice
// keeps ties in input order on every platform. A naive sort.Slice would not.
// ============================================================================

// group is one category bucket in first-seen order.
type group struct {
	key      string
	count    int
	capacity float64
}

// groupBy buckets plants by a category field, preserving the order in which
// category values first appear in the input.
func groupBy(plants []Plant, category Category) ([]group, error) {
	field, err := category.selector()
	if err != nil {
		return nil, err
	}
	if err := validatePlants(plants); err != nil {
		return nil, err
	}

	index := make(map[string]int)
	groups := make([]group, 0)
	for _, p := range plants {
		key := field(p)
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, group{key: key})
		}
		groups[i].count++
		groups[i].capacity += p.CapacityTTPA
	}
	return groups, nil
}

// TopByCount groups plants by category, counts occurrences, and returns the
// top entries by count descending. Ties retain first-seen input order.
// limit <= 0 means no truncation.
func TopByCount(plants []Plant, category Category, limit int) ([]CategoryCount, error) {
	groups, err := groupBy(plants, category)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].count > groups[j].count })
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}

	out := make([]CategoryCount, len(groups))
	for i, g := range groups {
		out[i] = CategoryCount{Category: g.key, Count: g.count}
	}
	return out, nil
}

// TopByCapacity groups plants by category, sums capacity, and returns the
// top entries by total capacity descending. Same tie-break rule as
// TopByCount: ties retain first-seen input order. limit <= 0 means no
// truncation.
func TopByCapacity(plants []Plant, category Category, limit int) ([]CategoryCapacity, error) {
	groups, err := groupBy(plants, category)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].capacity > groups[j].capacity })
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}

	out := make([]CategoryCapacity, len(groups))
	for i, g := range groups {
		out[i] = CategoryCapacity{Category: g.key, CapacityTTPA: g.capacity}
	}
	return out, nil
}

// SumCapacityByCategory groups plants by category and sums capacity per
// category value. Totals across all keys equal the total capacity of the
// input. No ordering guarantee beyond map semantics.
func SumCapacityByCategory(plants []Plant, category Category) (map[string]float64, error) {
	groups, err := groupBy(plants, category)
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(groups))
	for _, g := range groups {
		out[g.key] = g.capacity
	}
	return out, nil
}

// Summary computes the headline metrics for a plant set.
// AverageCapacity is 0 when the set is empty; an empty set is a valid input,
// not an error.
func Summary(plants []Plant) (Metrics, error) {
	if err := validatePlants(plants); err != nil {
		return Metrics{}, err
	}

	var m Metrics
	countries := make(map[string]bool)
	for _, p := range plants {
		m.Count++
		m.TotalCapacity += p.CapacityTTPA
		countries[p.Country] = true
	}
	m.DistinctCountries = len(countries)
	if m.Count > 0 {
		m.AverageCapacity = m.TotalCapacity / float64(m.Count)
	}
	return m, nil
}
