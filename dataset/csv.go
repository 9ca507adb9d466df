package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/forgesight/forgesight/engine"
)

// ============================================================================
// DATASET — Load-Once CSV Layer for the GIST Export
// ============================================================================
// Reads the cleaned Global Iron and Steel Tracker table into []engine.Plant.
// The dataset is immutable after load; accessors hand out copies so the
// engine's concurrency guarantees hold for every consumer.
//
// The tracker export also ships three precomputed aggregate tables (capacity
// by region, capacity by company, plants by country). They are not loaded:
// the engine reproduces all of them on demand from the main table.
// ============================================================================

// Column headers of the cleaned GIST export.
const (
	colName      = "Plant name (English)"
	colOwner     = "Owner"
	colCountry   = "Country/Area"
	colRegion    = "Region"
	colCapacity  = "Nominal crude steel capacity (ttpa)"
	colAge       = "Plant age (years)"
	colLatitude  = "latitude"
	colLongitude = "longitude"
)

var requiredColumns = []string{
	colName, colOwner, colCountry, colRegion, colCapacity, colAge, colLatitude, colLongitude,
}

// Dataset is the immutable base dataset for a session.
type Dataset struct {
	plants  []engine.Plant
	options Options
}

// Options describes the observed value space of the dataset, in the shape
// filter widgets want: sorted distinct category values plus the capacity span.
type Options struct {
	Regions     []string `json:"regions"`
	Countries   []string `json:"countries"`
	Owners      []string `json:"owners"`
	CapacityMin float64  `json:"capacityMin"`
	CapacityMax float64  `json:"capacityMax"`
}

// Load reads and parses the plant table from a CSV file.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return ds, nil
}

// Parse reads the plant table from CSV data. Column order does not matter;
// columns are matched by header name. Unknown columns are ignored.
func Parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	cols, err := mapColumns(headers)
	if err != nil {
		return nil, err
	}

	var plants []engine.Plant
	row := 1 // header was row 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row %d: %w", row+1, err)
		}
		row++

		p, err := parsePlant(record, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		plants = append(plants, p)
	}

	return &Dataset{plants: plants, options: buildOptions(plants)}, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.plants) }

// Plants returns the records in file order. The returned slice is a copy;
// callers cannot mutate the base dataset.
func (d *Dataset) Plants() []engine.Plant {
	out := make([]engine.Plant, len(d.plants))
	copy(out, d.plants)
	return out
}

// Options returns the observed filter option space.
func (d *Dataset) Options() Options { return d.options }

// ============================================================================
// PARSING
// ============================================================================

func mapColumns(headers []string) (map[string]int, error) {
	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		cols[strings.TrimSpace(h)] = i
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func parsePlant(record []string, cols map[string]int) (engine.Plant, error) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	capacity, err := strconv.ParseFloat(field(colCapacity), 64)
	if err != nil {
		return engine.Plant{}, fmt.Errorf("capacity %q: %w", field(colCapacity), err)
	}
	if capacity < 0 {
		return engine.Plant{}, fmt.Errorf("%w: %g", engine.ErrNegativeCapacity, capacity)
	}

	lat, err := strconv.ParseFloat(field(colLatitude), 64)
	if err != nil {
		return engine.Plant{}, fmt.Errorf("latitude %q: %w", field(colLatitude), err)
	}
	lon, err := strconv.ParseFloat(field(colLongitude), 64)
	if err != nil {
		return engine.Plant{}, fmt.Errorf("longitude %q: %w", field(colLongitude), err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return engine.Plant{}, fmt.Errorf("coordinates out of range: %g, %g", lat, lon)
	}

	// Age is informational only; a blank cell stays zero.
	var age float64
	if s := field(colAge); s != "" {
		age, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return engine.Plant{}, fmt.Errorf("age %q: %w", s, err)
		}
	}

	return engine.Plant{
		Name:         field(colName),
		Owner:        field(colOwner),
		Country:      field(colCountry),
		Region:       field(colRegion),
		CapacityTTPA: capacity,
		AgeYears:     age,
		Latitude:     lat,
		Longitude:    lon,
	}, nil
}

// ============================================================================
// OPTIONS
// ============================================================================

func buildOptions(plants []engine.Plant) Options {
	opts := Options{
		Regions:   distinctSorted(plants, func(p engine.Plant) string { return p.Region }),
		Countries: distinctSorted(plants, func(p engine.Plant) string { return p.Country }),
		Owners:    distinctSorted(plants, func(p engine.Plant) string { return p.Owner }),
	}

	for i, p := range plants {
		if i == 0 || p.CapacityTTPA < opts.CapacityMin {
			opts.CapacityMin = p.CapacityTTPA
		}
		if p.CapacityTTPA > opts.CapacityMax {
			opts.CapacityMax = p.CapacityTTPA
		}
	}
	return opts
}

func distinctSorted(plants []engine.Plant, field func(engine.Plant) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range plants {
		v := field(p)
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
