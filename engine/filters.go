package engine

import (
	"math"
	"strings"
)

// ============================================================================
// FILTERS — Dimension + Range Filtering via RecordView
// ============================================================================
// Single-pass filter: checks ALL constraints per record in one loop.
// Returns a SubView (index list into parent) — zero data copy, original
// record order preserved. Pure: the parent view is never mutated, and the
// same criteria always produce the same result.
// ============================================================================

// Apply returns a view of records matching all criteria.
//
// Dimension constraints are AND-combined across keys; values within a key
// are OR-combined. A dimension key present with an empty allowed list
// matches no record at all. Range constraints are inclusive on both ends;
// a record whose measure is NaN (missing) fails the range.
//
// An empty result is a value, not an error — callers render an empty
// table/chart.
func Apply(view RecordView, criteria Criteria) RecordView {
	if criteria.IsEmpty() {
		return view
	}

	// A present-but-empty dimension filter can never match.
	for _, allowed := range criteria.Dimensions {
		if len(allowed) == 0 {
			return newSubView(view, nil)
		}
	}

	// Pre-build lowercase lookup sets for each dimension filter
	sets := make(map[string]map[string]bool, len(criteria.Dimensions))
	for dim, allowed := range criteria.Dimensions {
		sets[dim] = toLowerSet(allowed)
	}

	// Single pass — record passes if it matches ALL constraints
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if matchDimensions(view, i, sets) && matchRanges(view, i, criteria.Ranges) {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

func matchDimensions(view RecordView, i int, sets map[string]map[string]bool) bool {
	for dim, set := range sets {
		val := strings.ToLower(view.Dimension(i, dim))
		if !set[val] {
			return false
		}
	}
	return true
}

func matchRanges(view RecordView, i int, ranges map[string]Range) bool {
	for measure, r := range ranges {
		v := view.Measure(i, measure)
		if math.IsNaN(v) || !r.Contains(v) {
			return false
		}
	}
	return true
}

// toLowerSet converts a string slice to a lowercase lookup set.
func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
