// Package extract turns raw source text into ordered lists of semantic units.
//
// Two interchangeable strategies exist: Structured walks a full parse tree
// for the Python family, Heuristic scans lines for declaration boundaries
// in everything else.
package extract

import (
	"fmt"

	"semdiff/internal/classify"
	"semdiff/internal/unit"
)

// Extractor produces an ordered list of units from one source. Extraction
// is deterministic and never mutates its input.
type Extractor interface {
	Extract(path, text string) ([]unit.Unit, error)
}

// ParseError reports that structured extraction failed for a single source.
// The corpus collector absorbs it; callers extracting directly see it.
type ParseError struct {
	Path string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Msg)
}

// Selector owns one extractor per strategy so the tree-sitter parser is
// built once and reused across sources.
type Selector struct {
	structured *Structured
	heuristic  *Heuristic
}

// NewSelector creates a selector with both strategies ready.
func NewSelector() *Selector {
	return &Selector{
		structured: NewStructured(),
		heuristic:  &Heuristic{},
	}
}

// For returns the extractor for a strategy.
func (s *Selector) For(strategy classify.Strategy) Extractor {
	if strategy == classify.Structured {
		return s.structured
	}
	return s.heuristic
}
