package diff

import (
	"regexp"
	"strings"

	"semdiff/internal/unit"
)

var tokenPattern = regexp.MustCompile(`[A-Za-z0-9_]+`)

// tokenSet tokenizes verbatim source into a lower-cased set of maximal
// letter/digit/underscore runs.
func tokenSet(text string) map[string]struct{} {
	tokens := tokenPattern.FindAllString(text, -1)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[strings.ToLower(tok)] = struct{}{}
	}
	return set
}

// Similarity returns the Jaccard similarity of two units' token sets.
// Identical fingerprints short-circuit to 1.0 without tokenizing; an empty
// token set on either side yields 0.0.
func Similarity(left, right *unit.Unit) float64 {
	if left.Fingerprint == right.Fingerprint {
		return 1.0
	}
	leftSet := tokenSet(left.Source)
	rightSet := tokenSet(right.Source)
	if len(leftSet) == 0 || len(rightSet) == 0 {
		return 0.0
	}

	intersection := 0
	for tok := range leftSet {
		if _, ok := rightSet[tok]; ok {
			intersection++
		}
	}
	union := len(leftSet) + len(rightSet) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}
