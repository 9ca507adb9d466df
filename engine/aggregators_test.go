package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopByCount(t *testing.T) {
	t.Run("counts per country descending", func(t *testing.T) {
		got, err := TopByCount(testPlants, CategoryCountry, 15)
		require.NoError(t, err)
		require.Len(t, got, 4)
		// China, South Korea, and United States all have 2 plants; Germany 1.
		// First-seen order breaks the three-way tie.
		assert.Equal(t, CategoryCount{Category: "China", Count: 2}, got[0])
		assert.Equal(t, CategoryCount{Category: "South Korea", Count: 2}, got[1])
		assert.Equal(t, CategoryCount{Category: "United States", Count: 2}, got[2])
		assert.Equal(t, CategoryCount{Category: "Germany", Count: 1}, got[3])
	})

	t.Run("limit truncates", func(t *testing.T) {
		got, err := TopByCount(testPlants, CategoryOwner, 2)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("limit larger than group count returns everything", func(t *testing.T) {
		got, err := TopByCount(testPlants, CategoryRegion, 100)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("tie-break is deterministic first-seen order", func(t *testing.T) {
		// Four single-plant countries, all tied at count 1.
		plants := []Plant{
			{Name: "d", Country: "D"},
			{Name: "b", Country: "B"},
			{Name: "c", Country: "C"},
			{Name: "a", Country: "A"},
		}
		got, err := TopByCount(plants, CategoryCountry, 0)
		require.NoError(t, err)
		want := []string{"D", "B", "C", "A"}
		for i, cc := range got {
			assert.Equal(t, want[i], cc.Category)
			assert.Equal(t, 1, cc.Count)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := TopByCount(testPlants, Category("latitude"), 5)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownCategory)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := TopByCount(nil, CategoryCountry, 15)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestTopByCapacity(t *testing.T) {
	t.Run("owners by total capacity descending", func(t *testing.T) {
		got, err := TopByCapacity(testPlants, CategoryOwner, 10)
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, CategoryCapacity{Category: "POSCO", CapacityTTPA: 37500}, got[0])
		assert.Equal(t, CategoryCapacity{Category: "Baowu", CapacityTTPA: 37000}, got[1])
		assert.Equal(t, CategoryCapacity{Category: "Thyssenkrupp", CapacityTTPA: 11500}, got[2])
		assert.Equal(t, CategoryCapacity{Category: "US Steel", CapacityTTPA: 10400}, got[3])
	})

	t.Run("capacity tie retains first-seen order", func(t *testing.T) {
		plants := []Plant{
			{Name: "x1", Owner: "Zeta", CapacityTTPA: 100},
			{Name: "y1", Owner: "Alpha", CapacityTTPA: 100},
		}
		got, err := TopByCapacity(plants, CategoryOwner, 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Zeta", got[0].Category)
		assert.Equal(t, "Alpha", got[1].Category)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := TopByCapacity(testPlants, Category("age"), 5)
		assert.ErrorIs(t, err, ErrUnknownCategory)
	})
}

func TestSumCapacityByCategory(t *testing.T) {
	t.Run("worked example", func(t *testing.T) {
		plants := []Plant{
			{Name: "p1", Country: "CountryA", CapacityTTPA: 100},
			{Name: "p2", Country: "CountryA", CapacityTTPA: 200},
			{Name: "p3", Country: "CountryB", CapacityTTPA: 50},
		}
		got, err := SumCapacityByCategory(plants, CategoryCountry)
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"CountryA": 300, "CountryB": 50}, got)
	})

	t.Run("conservation across categories", func(t *testing.T) {
		var total float64
		for _, p := range testPlants {
			total += p.CapacityTTPA
		}
		for _, category := range []Category{CategoryRegion, CategoryCountry, CategoryOwner} {
			sums, err := SumCapacityByCategory(testPlants, category)
			require.NoError(t, err)
			var grouped float64
			for _, v := range sums {
				grouped += v
			}
			assert.InDelta(t, total, grouped, 1e-9, "capacity not conserved for %s", category)
		}
	})

	t.Run("empty input yields empty map", func(t *testing.T) {
		got, err := SumCapacityByCategory(nil, CategoryRegion)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := SumCapacityByCategory(testPlants, Category("name"))
		assert.ErrorIs(t, err, ErrUnknownCategory)
	})

	t.Run("negative capacity surfaces, never coerced", func(t *testing.T) {
		bad := []Plant{{Name: "Phantom", Region: "Nowhere", CapacityTTPA: -5}}
		_, err := SumCapacityByCategory(bad, CategoryRegion)
		assert.ErrorIs(t, err, ErrNegativeCapacity)
	})
}

func TestSummary(t *testing.T) {
	t.Run("empty set is all zeros", func(t *testing.T) {
		got, err := Summary(nil)
		require.NoError(t, err)
		assert.Equal(t, Metrics{}, got)
	})

	t.Run("worked example", func(t *testing.T) {
		plants := []Plant{
			{Name: "p1", Country: "CountryA", CapacityTTPA: 100},
			{Name: "p2", Country: "CountryA", CapacityTTPA: 200},
			{Name: "p3", Country: "CountryB", CapacityTTPA: 50},
		}
		got, err := Summary(plants)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Count)
		assert.Equal(t, 350.0, got.TotalCapacity)
		assert.InDelta(t, 116.67, got.AverageCapacity, 0.005)
		assert.Equal(t, 2, got.DistinctCountries)
	})

	t.Run("fixture metrics", func(t *testing.T) {
		got, err := Summary(testPlants)
		require.NoError(t, err)
		assert.Equal(t, 7, got.Count)
		assert.Equal(t, 96400.0, got.TotalCapacity)
		assert.Equal(t, 4, got.DistinctCountries)
	})

	t.Run("negative capacity is rejected", func(t *testing.T) {
		_, err := Summary([]Plant{{CapacityTTPA: -3}})
		assert.ErrorIs(t, err, ErrNegativeCapacity)
	})
}
