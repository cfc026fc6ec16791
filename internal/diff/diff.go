package diff

import "semdiff/internal/unit"

// DefaultThreshold is the similarity threshold for rename inference.
const DefaultThreshold = 0.6

// keyedUnits holds a corpus indexed by (kind, name) with key insertion
// order preserved. A later unit sharing a key replaces the earlier one but
// keeps its original position.
type keyedUnits struct {
	keys  []unit.Key
	units map[unit.Key]unit.Unit
}

func keyUnits(units []unit.Unit) keyedUnits {
	k := keyedUnits{units: make(map[unit.Key]unit.Unit, len(units))}
	for _, u := range units {
		key := u.Key()
		if _, seen := k.units[key]; !seen {
			k.keys = append(k.keys, key)
		}
		k.units[key] = u
	}
	return k
}

// Diff reconciles two corpora into a report. It never fails and never
// mutates its inputs; all state lives in the returned report.
func Diff(left, right []unit.Unit, threshold float64) *Report {
	leftMap := keyUnits(left)
	rightMap := keyUnits(right)

	var added, removed, modified, moved []Entry

	matched := make(map[unit.Key]bool)
	for _, key := range leftMap.keys {
		l := leftMap.units[key]
		r, ok := rightMap.units[key]
		if !ok {
			removed = append(removed, Entry{
				Unit:    l,
				Change:  ChangeRemoved,
				Details: copyMetrics(l.Metrics),
				Peers:   []string{},
			})
			continue
		}
		matched[key] = true
		switch {
		case l.Fingerprint != r.Fingerprint:
			details := metricDelta(&l, &r)
			details["similarity"] = Similarity(&l, &r)
			modified = append(modified, Entry{
				Unit:    r,
				Change:  ChangeModified,
				Details: details,
				Peers:   []string{l.Name},
			})
		case l.Order != r.Order:
			moved = append(moved, Entry{
				Unit:    r,
				Change:  ChangeMoved,
				Details: map[string]float64{"from": float64(l.Order), "to": float64(r.Order)},
				Peers:   []string{l.Name},
			})
		}
	}

	for _, key := range rightMap.keys {
		if matched[key] {
			continue
		}
		r := rightMap.units[key]
		added = append(added, Entry{
			Unit:    r,
			Change:  ChangeAdded,
			Details: copyMetrics(r.Metrics),
			Peers:   []string{},
		})
	}

	// Rename inference is greedy and order dependent: each removed
	// candidate takes the best remaining added match at or above the
	// threshold, and a committed match is never reconsidered.
	var renamed []RenamePair
	var residual []Entry
	for _, cand := range removed {
		bestIdx := -1
		bestScore := 0.0
		for i := range added {
			score := Similarity(&cand.Unit, &added[i].Unit)
			if bestIdx == -1 || score > bestScore {
				bestIdx = i
				bestScore = score
			}
		}
		if bestIdx < 0 || bestScore < threshold {
			residual = append(residual, cand)
			continue
		}
		match := added[bestIdx]
		details := metricDelta(&cand.Unit, &match.Unit)
		details["similarity"] = bestScore
		renamed = append(renamed, RenamePair{
			From: Entry{Unit: cand.Unit, Change: ChangeRenamedFrom, Details: details, Peers: []string{match.Unit.Name}},
			To:   Entry{Unit: match.Unit, Change: ChangeRenamedTo, Details: details, Peers: []string{cand.Unit.Name}},
		})
		added = append(added[:bestIdx], added[bestIdx+1:]...)
	}
	removed = residual

	changeScore := len(added) + len(removed) + len(modified) + len(moved) + len(renamed)
	totalUnits := len(left) + len(right)
	coverage := 0.0
	if totalUnits > 0 {
		coverage = float64(changeScore) / float64(totalUnits)
	}

	leftSummary := aggregate(left)
	rightSummary := aggregate(right)

	return &Report{
		Added:    added,
		Removed:  removed,
		Modified: modified,
		Moved:    moved,
		Renamed:  renamed,
		Meta: Meta{
			LeftUnits:        float64(len(left)),
			RightUnits:       float64(len(right)),
			ChangeScore:      float64(changeScore),
			Coverage:         coverage,
			KindSummaryLeft:  leftSummary,
			KindSummaryRight: rightSummary,
			KindDelta:        kindDelta(leftSummary, rightSummary),
		},
	}
}

// metricDelta builds left/right/delta detail values for every metric key
// present on either unit.
func metricDelta(left, right *unit.Unit) map[string]float64 {
	keys := make(map[string]bool, len(left.Metrics)+len(right.Metrics))
	for key := range left.Metrics {
		keys[key] = true
	}
	for key := range right.Metrics {
		keys[key] = true
	}

	details := make(map[string]float64, 3*len(keys))
	for key := range keys {
		details[key+"_left"] = left.Metrics[key]
		details[key+"_right"] = right.Metrics[key]
		details[key+"_delta"] = right.Metrics[key] - left.Metrics[key]
	}
	return details
}

func copyMetrics(metrics map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(metrics))
	for k, v := range metrics {
		out[k] = v
	}
	return out
}

// aggregate sums unit metrics per kind for one side.
func aggregate(units []unit.Unit) map[unit.Kind]KindStats {
	summary := make(map[unit.Kind]KindStats)
	for _, u := range units {
		stats := summary[u.Kind]
		stats.Count++
		stats.Size += u.Metrics[unit.MetricSize]
		stats.Branches += u.Metrics[unit.MetricBranches]
		stats.Doc += u.Metrics[unit.MetricDoc]
		summary[u.Kind] = stats
	}
	return summary
}

// kindDelta computes right minus left per kind over the union of kinds.
func kindDelta(left, right map[unit.Kind]KindStats) map[unit.Kind]KindStats {
	delta := make(map[unit.Kind]KindStats)
	for kind := range left {
		l, r := left[kind], right[kind]
		delta[kind] = statsDelta(l, r)
	}
	for kind := range right {
		if _, done := delta[kind]; done {
			continue
		}
		delta[kind] = statsDelta(left[kind], right[kind])
	}
	return delta
}

func statsDelta(l, r KindStats) KindStats {
	return KindStats{
		Count:    r.Count - l.Count,
		Size:     r.Size - l.Size,
		Branches: r.Branches - l.Branches,
		Doc:      r.Doc - l.Doc,
	}
}
