package extract

import (
	"fmt"
	"strings"

	"semdiff/internal/fingerprint"
	"semdiff/internal/unit"
)

// Heuristic extracts block units by scanning lines for declaration
// boundaries. It is the fallback for every source the classifier does not
// recognize as fully parseable, and it never fails.
type Heuristic struct{}

var declKeywords = []string{"function", "def", "class", "struct", "impl", "fn"}

// Extract scans lines. A new unit opens when a line starts with a
// declaration keyword or ends with an opening brace; the buffered lines
// since the previous boundary flush as one completed block. Blank lines
// are skipped entirely and never buffered.
func (h *Heuristic) Extract(path, text string) ([]unit.Unit, error) {
	lines := splitLines(text)

	var units []unit.Unit
	var buffer []string
	head := ""
	start := 1
	order := 0

	for i, line := range lines {
		idx := i + 1
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}

		trigger := strings.HasSuffix(stripped, "{")
		if !trigger {
			for _, kw := range declKeywords {
				if strings.HasPrefix(stripped, kw) {
					trigger = true
					break
				}
			}
		}

		if trigger && len(buffer) > 0 {
			units = append(units, blockUnit(path, buffer, head, unit.Span{Start: start, End: idx - 1}, order))
			order++
			buffer = nil
		}
		if trigger {
			head = firstToken(stripped)
			start = idx
		}
		buffer = append(buffer, line)
	}

	if len(buffer) > 0 {
		units = append(units, blockUnit(path, buffer, head, unit.Span{Start: start, End: len(lines)}, order))
	}

	return units, nil
}

func blockUnit(path string, buffer []string, head string, span unit.Span, order int) unit.Unit {
	snippet := strings.Join(buffer, "\n")
	name := head
	if name == "" {
		name = fmt.Sprintf("block_%d", order)
	}

	docFlag := 0.0
	if strings.Contains(snippet, `"""`) || strings.Contains(snippet, "///") {
		docFlag = 1.0
	}

	return unit.Unit{
		Path:        path,
		Name:        name,
		Kind:        unit.KindBlock,
		Signature:   name,
		Fingerprint: fingerprint.HashString(snippet),
		Span:        span,
		Order:       order,
		Metrics: map[string]float64{
			unit.MetricSize:     float64(len(buffer)),
			unit.MetricBranches: float64(unit.CountBranches(snippet)),
			unit.MetricDoc:      docFlag,
		},
		Source: snippet,
	}
}

func firstToken(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// splitLines splits on newlines without a trailing empty line, stripping
// carriage returns.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
