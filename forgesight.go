// Package forgesight provides a filter-and-aggregate engine and dashboard
// API for the Global Iron and Steel Tracker dataset.
//
// Usage:
//
//	import (
//	    "github.com/forgesight/forgesight/dashboard"
//	    "github.com/forgesight/forgesight/dataset"
//	    "github.com/forgesight/forgesight/engine"
//	)
//
//	ds, err := dataset.Load("processed_data/steel_plants_cleaned.csv")
//	snap, err := dashboard.Build(ds.Plants(), engine.Criteria{
//	    Regions:     []string{"East Asia"},
//	    CapacityMin: 1000,
//	    CapacityMax: 25000,
//	})
//
// The engine package is a set of pure functions over an immutable record
// slice: the dataset is loaded once and never mutated, so every operation is
// safe to call concurrently without locking. The dashboard package turns
// engine output into render-ready chart and table payloads with no rendering
// dependency; the HTTP server under internal/ is one possible presentation
// collaborator, the CLI another.
package forgesight
