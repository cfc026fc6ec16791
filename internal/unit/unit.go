// Package unit defines the semantic unit model shared by extraction and diffing.
package unit

import "strings"

// Kind represents the type of semantic unit.
type Kind string

const (
	KindFunction      Kind = "function"
	KindAsyncFunction Kind = "async_function"
	KindClass         Kind = "class"
	KindAssignment    Kind = "assignment"
	KindBlock         Kind = "block"
)

// Metric keys stored in Unit.Metrics.
const (
	MetricSize     = "size"
	MetricBranches = "branches"
	MetricDoc      = "doc"
)

// Span is a 1-based inclusive line range.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Key identifies a unit for matching purposes. Two units with the same
// Key on opposite sides of a diff are treated as the same logical unit.
type Key struct {
	Kind Kind
	Name string
}

// Unit is one structurally meaningful slice of a source file. Units are
// immutable once built; a new extraction pass produces a fresh slice.
type Unit struct {
	Path        string             `json:"path"`
	Name        string             `json:"name"`
	Kind        Kind               `json:"kind"`
	Signature   string             `json:"signature"`
	Fingerprint string             `json:"fingerprint"`
	Span        Span               `json:"span"`
	Order       int                `json:"order"`
	Metrics     map[string]float64 `json:"metrics"`
	Source      string             `json:"source"`
	Doc         string             `json:"doc,omitempty"`
}

// Key returns the (kind, name) matching identity of the unit.
func (u *Unit) Key() Key {
	return Key{Kind: u.Kind, Name: u.Name}
}

var branchTokens = []string{"if", "for", "while", "case", "elif", "try", "catch"}

// CountBranches counts control-flow keyword occurrences in the unit's
// verbatim text. Occurrences are substring counts, so "elif" also counts
// one "if"; this matches the metric definition, not a tokenizer.
func CountBranches(text string) int {
	total := 0
	for _, tok := range branchTokens {
		total += strings.Count(text, tok)
	}
	return total
}

// SizeMetric returns the line size of a span, never less than 1.
func SizeMetric(span Span) int {
	if n := span.End - span.Start; n > 1 {
		return n
	}
	return 1
}
