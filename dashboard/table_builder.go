package dashboard

import (
	"fmt"
	"sort"

	"github.com/forgesight/forgesight/engine"
)

// ============================================================================
// TABLE BUILDER — Plant Detail Table
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

var plantColumns = []Column{
	{Key: "name", Label: "Plant Name", Type: "text", Align: "left"},
	{Key: "owner", Label: "Owner", Type: "text", Align: "left"},
	{Key: "country", Label: "Country/Area", Type: "text", Align: "left"},
	{Key: "region", Label: "Region", Type: "text", Align: "left"},
	{Key: "capacity", Label: "Capacity (ttpa)", Type: "number", Align: "right"},
	{Key: "age", Label: "Age (years)", Type: "number", Align: "right"},
}

// buildPlantTable lists the filtered plants sorted by capacity descending.
// Ties retain input order.
func buildPlantTable(plants []engine.Plant) *TableData {
	sorted := make([]engine.Plant, len(plants))
	copy(sorted, plants)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CapacityTTPA > sorted[j].CapacityTTPA
	})

	rows := make([][]string, 0, len(sorted))
	var total float64
	for _, p := range sorted {
		rows = append(rows, []string{
			p.Name,
			p.Owner,
			p.Country,
			p.Region,
			formatTTPA(p.CapacityTTPA),
			fmt.Sprintf("%.0f", p.AgeYears),
		})
		total += p.CapacityTTPA
	}

	return &TableData{
		Title:   "Plant Data",
		Columns: plantColumns,
		Rows:    rows,
		Summary: &Summary{
			Label: fmt.Sprintf("Total (%d plants)", len(sorted)),
			Values: map[string]string{
				"capacity": formatTTPA(total),
			},
		},
	}
}

// formatTTPA formats a capacity with comma separators, no decimals.
func formatTTPA(v float64) string {
	return formatInt(int64(v + 0.5))
}

func formatInt(n int64) string {
	if n < 0 {
		return "-" + formatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", formatInt(n/1000), n%1000)
}
