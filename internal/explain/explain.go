// Package explain ranks diff report entries into human-facing insights.
package explain

import (
	"fmt"
	"math"
	"sort"

	"semdiff/internal/diff"
)

// Insight is one ranked observation about a report.
type Insight struct {
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

// DefaultLimit caps the number of insights when the caller passes none.
const DefaultLimit = 5

// Generate pools candidate insights from modified, renamed, added, and
// removed entries, sorts them by descending score (stable on ties), and
// truncates to limit.
func Generate(report *diff.Report, limit int) []Insight {
	var pool []Insight

	for _, e := range report.Modified {
		delta := math.Abs(e.Details["branches_delta"]) + math.Abs(e.Details["size_delta"])
		pool = append(pool, Insight{
			Score: delta,
			Text:  fmt.Sprintf("%s changed structure with delta %.1f", e.Unit.Name, delta),
		})
	}
	for _, pair := range report.Renamed {
		sim := pair.To.Details["similarity"]
		pool = append(pool, Insight{
			Score: sim,
			Text:  fmt.Sprintf("%s renamed to %s, similarity %.2f", pair.From.Unit.Name, pair.To.Unit.Name, sim),
		})
	}
	for _, e := range report.Added {
		pool = append(pool, Insight{
			Score: e.Details["branches"] + e.Details["size"],
			Text:  fmt.Sprintf("New %s %s with size %.1f", e.Unit.Kind, e.Unit.Name, e.Details["size"]),
		})
	}
	for _, e := range report.Removed {
		pool = append(pool, Insight{
			Score: e.Details["branches"] + e.Details["size"],
			Text:  fmt.Sprintf("Removed %s %s removing size %.1f", e.Unit.Kind, e.Unit.Name, e.Details["size"]),
		})
	}

	sort.SliceStable(pool, func(i, j int) bool { return pool[i].Score > pool[j].Score })

	if limit >= 0 && len(pool) > limit {
		pool = pool[:limit]
	}
	return pool
}

// Texts extracts the insight strings in rank order.
func Texts(insights []Insight) []string {
	out := make([]string, len(insights))
	for i, ins := range insights {
		out[i] = ins.Text
	}
	return out
}
