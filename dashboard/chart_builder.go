package dashboard

import (
	"math"

	"github.com/forgesight/forgesight/engine"
)

// ============================================================================
// CHART BUILDER — Render-Ready Chart Payloads
// ============================================================================
// Plain data structures for the presentation layer. The builders know nothing
// about any charting library; a frontend maps ChartConfig onto whatever it
// renders with.
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"` // "bar", "pie"
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name string       `json:"name"`
	Data []ChartPoint `json:"data"`
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ============================================================================
// BUILDERS
// ============================================================================

func buildCountBar(title, xAxis string, entries []engine.CategoryCount) *ChartConfig {
	points := make([]ChartPoint, 0, len(entries))
	for _, e := range entries {
		points = append(points, ChartPoint{Label: e.Category, Value: float64(e.Count)})
	}
	return barConfig(title, xAxis, "Number of Plants", points)
}

func buildCapacityBar(title, xAxis string, entries []engine.CategoryCapacity) *ChartConfig {
	points := make([]ChartPoint, 0, len(entries))
	for _, e := range entries {
		points = append(points, ChartPoint{Label: e.Category, Value: roundTo2(e.CapacityTTPA)})
	}
	return barConfig(title, xAxis, "Capacity (ttpa)", points)
}

func buildCapacityPie(title string, entries []engine.CategoryCapacity) *ChartConfig {
	points := make([]ChartPoint, 0, len(entries))
	for _, e := range entries {
		points = append(points, ChartPoint{Label: e.Category, Value: roundTo2(e.CapacityTTPA)})
	}
	return &ChartConfig{
		ChartType:  "pie",
		Title:      title,
		Series:     []ChartSeries{{Name: title, Data: points}},
		Colors:     assignColors(len(points)),
		ShowLegend: true,
		ShowGrid:   false,
	}
}

func barConfig(title, xAxis, yAxis string, points []ChartPoint) *ChartConfig {
	return &ChartConfig{
		ChartType:  "bar",
		Title:      title,
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     []ChartSeries{{Name: yAxis, Data: points}},
		Colors:     assignColors(1),
		ShowLegend: false,
		ShowGrid:   true,
	}
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}

// roundTo2 rounds to 2 decimal places.
func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
