package dashboard

import (
	"github.com/forgesight/forgesight/engine"
)

// ============================================================================
// SNAPSHOT — One Full Dashboard Recomputation
// ============================================================================
// A Snapshot is everything the dashboard shows for one set of criteria:
// headline metrics, the map layer, four charts, and the detail table.
// It is recomputed per request from the immutable base dataset and never
// stored — only the optional response cache holds serialized copies.
// ============================================================================

// View limits, matching the original report layout.
const (
	topCountryLimit       = 15
	topOwnerLimit         = 15
	topOwnerCapacityLimit = 10
)

// MapPoint is one plant on the distribution map.
type MapPoint struct {
	Name         string  `json:"name"`
	Owner        string  `json:"owner"`
	Country      string  `json:"country"`
	Region       string  `json:"region"`
	CapacityTTPA float64 `json:"capacityTtpa"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// Snapshot is the full render-ready dashboard payload.
type Snapshot struct {
	Criteria engine.Criteria `json:"criteria"`
	Metrics  engine.Metrics  `json:"metrics"`

	MapPoints []MapPoint `json:"mapPoints"`

	TopCountries        *ChartConfig `json:"topCountries"`        // plants per country, top 15
	TopOwners           *ChartConfig `json:"topOwners"`           // plants per owner, top 15
	RegionCapacity      *ChartConfig `json:"regionCapacity"`      // capacity share per region
	TopOwnersByCapacity *ChartConfig `json:"topOwnersByCapacity"` // summed capacity per owner, top 10

	Table *TableData `json:"table"`
}

// Build filters the plant set and recomputes every dashboard view.
// Zero matching plants is a valid outcome: metrics are zero, chart series
// and the table are empty. Errors only surface for malformed criteria or
// records (engine.ErrInvalidArgument).
func Build(plants []engine.Plant, criteria engine.Criteria) (*Snapshot, error) {
	filtered, err := engine.Filter(plants, criteria)
	if err != nil {
		return nil, err
	}

	metrics, err := engine.Summary(filtered)
	if err != nil {
		return nil, err
	}

	topCountries, err := engine.TopByCount(filtered, engine.CategoryCountry, topCountryLimit)
	if err != nil {
		return nil, err
	}
	topOwners, err := engine.TopByCount(filtered, engine.CategoryOwner, topOwnerLimit)
	if err != nil {
		return nil, err
	}
	regionCapacity, err := engine.TopByCapacity(filtered, engine.CategoryRegion, 0)
	if err != nil {
		return nil, err
	}
	ownerCapacity, err := engine.TopByCapacity(filtered, engine.CategoryOwner, topOwnerCapacityLimit)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Criteria:            criteria,
		Metrics:             metrics,
		MapPoints:           buildMapPoints(filtered),
		TopCountries:        buildCountBar("Number of Plants by Country", "Country", topCountries),
		TopOwners:           buildCountBar("Number of Plants by Company", "Company", topOwners),
		RegionCapacity:      buildCapacityPie("Capacity by Region", regionCapacity),
		TopOwnersByCapacity: buildCapacityBar("Total Capacity by Company", "Company", ownerCapacity),
		Table:               buildPlantTable(filtered),
	}, nil
}

func buildMapPoints(plants []engine.Plant) []MapPoint {
	points := make([]MapPoint, 0, len(plants))
	for _, p := range plants {
		points = append(points, MapPoint{
			Name:         p.Name,
			Owner:        p.Owner,
			Country:      p.Country,
			Region:       p.Region,
			CapacityTTPA: p.CapacityTTPA,
			Latitude:     p.Latitude,
			Longitude:    p.Longitude,
		})
	}
	return points
}
