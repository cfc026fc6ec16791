// Package render formats diff reports as text or JSON for the CLI surface.
package render

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"semdiff/internal/diff"
	"semdiff/internal/unit"
)

// AllSections lists the report sections in render order.
var AllSections = []string{"added", "removed", "modified", "moved", "renamed"}

// NormalizeSections parses a comma-separated section list, dropping
// unknown names. An empty result falls back to all sections.
func NormalizeSections(text string) []string {
	var sections []string
	for _, part := range strings.Split(text, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		for _, allowed := range AllSections {
			if name == allowed {
				sections = append(sections, name)
				break
			}
		}
	}
	if len(sections) == 0 {
		return AllSections
	}
	return sections
}

// Text renders the requested sections of a report as plain text, with an
// optional trailing explanation block.
func Text(report *diff.Report, sections []string, explanations []string) string {
	want := make(map[string]bool, len(sections))
	for _, s := range sections {
		want[s] = true
	}

	var parts []string
	buckets := []struct {
		name    string
		entries []diff.Entry
	}{
		{"added", report.Added},
		{"removed", report.Removed},
		{"modified", report.Modified},
		{"moved", report.Moved},
	}
	for _, b := range buckets {
		if !want[b.name] || len(b.entries) == 0 {
			continue
		}
		parts = append(parts, "["+strings.ToUpper(b.name)+"]")
		for _, e := range b.entries {
			parts = append(parts, summarizeEntry(e))
		}
	}

	if want["renamed"] && len(report.Renamed) > 0 {
		parts = append(parts, "[RENAMED]")
		for _, pair := range report.Renamed {
			parts = append(parts, fmt.Sprintf("RENAMED: %s -> %s (%.2f)",
				pair.From.Unit.Name, pair.To.Unit.Name, pair.To.Details["similarity"]))
		}
	}

	if len(explanations) > 0 {
		parts = append(parts, "[EXPLAIN]")
		parts = append(parts, explanations...)
	}

	if len(parts) == 0 {
		return "No semantic differences detected."
	}
	return strings.Join(parts, "\n")
}

// summarizeEntry renders one entry as a single line. Detail values keep
// only deltas and raw metrics; the _left/_right pairs are noise here.
func summarizeEntry(e diff.Entry) string {
	span := fmt.Sprintf("%d-%d", e.Unit.Span.Start, e.Unit.Span.End)

	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		if strings.HasSuffix(k, "_left") || strings.HasSuffix(k, "_right") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	metrics := make([]string, 0, len(keys))
	for _, k := range keys {
		metrics = append(metrics, fmt.Sprintf("%s=%.2f", k, e.Details[k]))
	}

	line := fmt.Sprintf("%s: %s:%s %s %s",
		strings.ToUpper(string(e.Change)), filepath.Base(e.Unit.Path), span, e.Unit.Kind, e.Unit.Name)
	if len(e.Peers) > 0 {
		line += " -> " + strings.Join(e.Peers, "; ")
	}
	if len(metrics) > 0 {
		line += " (" + strings.Join(metrics, ", ") + ")"
	}
	return line
}

// Meta renders the aggregate metadata block with stable key order.
func Meta(meta diff.Meta) string {
	lines := []string{"[META]"}
	lines = append(lines, fmt.Sprintf("change_score: %.2f", meta.ChangeScore))
	lines = append(lines, fmt.Sprintf("coverage: %.2f", meta.Coverage))
	lines = append(lines, kindBlock("kind_delta", meta.KindDelta)...)
	lines = append(lines, kindBlock("kind_summary_left", meta.KindSummaryLeft)...)
	lines = append(lines, kindBlock("kind_summary_right", meta.KindSummaryRight)...)
	lines = append(lines, fmt.Sprintf("left_units: %.2f", meta.LeftUnits))
	lines = append(lines, fmt.Sprintf("right_units: %.2f", meta.RightUnits))
	return strings.Join(lines, "\n")
}

func kindBlock(name string, summary map[unit.Kind]diff.KindStats) []string {
	lines := []string{name + ":"}
	kinds := make([]string, 0, len(summary))
	for kind := range summary {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		stats := summary[unit.Kind(kind)]
		lines = append(lines, "  "+kind+":")
		lines = append(lines, fmt.Sprintf("    branches: %.2f", stats.Branches))
		lines = append(lines, fmt.Sprintf("    count: %.2f", stats.Count))
		lines = append(lines, fmt.Sprintf("    doc: %.2f", stats.Doc))
		lines = append(lines, fmt.Sprintf("    size: %.2f", stats.Size))
	}
	return lines
}

// jsonEntry is the wire shape of one entry in JSON output.
type jsonEntry struct {
	Path    string             `json:"path"`
	Name    string             `json:"name"`
	Kind    unit.Kind          `json:"kind"`
	Span    [2]int             `json:"span"`
	Change  diff.Change        `json:"change"`
	Details map[string]float64 `json:"details"`
	Peers   []string           `json:"peers"`
}

type jsonRename struct {
	From jsonEntry `json:"from"`
	To   jsonEntry `json:"to"`
}

type jsonReport struct {
	Added        []jsonEntry  `json:"added"`
	Removed      []jsonEntry  `json:"removed"`
	Modified     []jsonEntry  `json:"modified"`
	Moved        []jsonEntry  `json:"moved"`
	Renamed      []jsonRename `json:"renamed"`
	Meta         diff.Meta    `json:"meta"`
	Explanations []string     `json:"explanations,omitempty"`
}

// JSON renders a report (and optional explanations) as indented JSON.
func JSON(report *diff.Report, explanations []string) ([]byte, error) {
	payload := jsonReport{
		Added:        toJSONEntries(report.Added),
		Removed:      toJSONEntries(report.Removed),
		Modified:     toJSONEntries(report.Modified),
		Moved:        toJSONEntries(report.Moved),
		Renamed:      make([]jsonRename, 0, len(report.Renamed)),
		Meta:         report.Meta,
		Explanations: explanations,
	}
	for _, pair := range report.Renamed {
		payload.Renamed = append(payload.Renamed, jsonRename{
			From: toJSONEntry(pair.From),
			To:   toJSONEntry(pair.To),
		})
	}
	return json.MarshalIndent(payload, "", "  ")
}

func toJSONEntries(entries []diff.Entry) []jsonEntry {
	out := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, toJSONEntry(e))
	}
	return out
}

func toJSONEntry(e diff.Entry) jsonEntry {
	return jsonEntry{
		Path:    e.Unit.Path,
		Name:    e.Unit.Name,
		Kind:    e.Unit.Kind,
		Span:    [2]int{e.Unit.Span.Start, e.Unit.Span.End},
		Change:  e.Change,
		Details: e.Details,
		Peers:   e.Peers,
	}
}
