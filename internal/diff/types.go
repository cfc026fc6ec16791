// Package diff reconciles two unit corpora into a change report.
package diff

import "semdiff/internal/unit"

// Change tags a diff entry with its classification.
type Change string

const (
	ChangeAdded       Change = "added"
	ChangeRemoved     Change = "removed"
	ChangeModified    Change = "modified"
	ChangeMoved       Change = "moved"
	ChangeRenamedFrom Change = "renamed-from"
	ChangeRenamedTo   Change = "renamed-to"
)

// Entry is one reported change: a unit, its change tag, numeric details,
// and the names of cross-referenced peer units.
type Entry struct {
	Unit    unit.Unit          `json:"unit"`
	Change  Change             `json:"change"`
	Details map[string]float64 `json:"details"`
	Peers   []string           `json:"peers"`
}

// RenamePair links a removed unit to the added unit it was renamed into.
// Both entries carry the same details map.
type RenamePair struct {
	From Entry `json:"from"`
	To   Entry `json:"to"`
}

// KindStats aggregates unit metrics for one kind on one side.
type KindStats struct {
	Count    float64 `json:"count"`
	Size     float64 `json:"size"`
	Branches float64 `json:"branches"`
	Doc      float64 `json:"doc"`
}

// Meta summarizes a report: corpus sizes, total change volume, coverage,
// and per-kind aggregates for each side plus their delta.
type Meta struct {
	LeftUnits        float64                 `json:"left_units"`
	RightUnits       float64                 `json:"right_units"`
	ChangeScore      float64                 `json:"change_score"`
	Coverage         float64                 `json:"coverage"`
	KindSummaryLeft  map[unit.Kind]KindStats `json:"kind_summary_left"`
	KindSummaryRight map[unit.Kind]KindStats `json:"kind_summary_right"`
	KindDelta        map[unit.Kind]KindStats `json:"kind_delta"`
}

// Report is the full reconciliation result. It is a pure function of the
// two input corpora and the similarity threshold.
type Report struct {
	Added    []Entry      `json:"added"`
	Removed  []Entry      `json:"removed"`
	Modified []Entry      `json:"modified"`
	Moved    []Entry      `json:"moved"`
	Renamed  []RenamePair `json:"renamed"`
	Meta     Meta         `json:"meta"`
}

// Empty reports whether no changes were detected in any bucket.
func (r *Report) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Modified) == 0 &&
		len(r.Moved) == 0 && len(r.Renamed) == 0
}
