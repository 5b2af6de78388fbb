package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ============================================================================
// AGGREGATORS — Grouping, Statistics, and Binning via RecordView
// ============================================================================
// All functions operate on RecordView — zero-copy access to any data source.
// Grouping produces SubViews (index lists into parent view).
// Missing measure values (NaN) are skipped by every statistic.
// ============================================================================

// Group represents the records sharing one dimension value.
type Group struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Count int        `json:"count"`
	View  RecordView `json:"-"`
}

// GroupByDimension splits a view into one Group per distinct dimension
// value, in first-seen order. Each group's View is a zero-copy SubView.
func GroupByDimension(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Label: key,
			Count: len(grouped[key]),
			View:  newSubView(view, grouped[key]),
		})
	}
	return groups
}

// ============================================================================
// STATISTICS
// ============================================================================

// validValues collects the non-NaN values of a measure, in view order.
func validValues(view RecordView, measure string) []float64 {
	vals := make([]float64, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		v := view.Measure(i, measure)
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	return vals
}

// SumMeasure sums a named measure across a view, skipping missing values.
func SumMeasure(view RecordView, measure string) float64 {
	var total float64
	for i := 0; i < view.Len(); i++ {
		v := view.Measure(i, measure)
		if !math.IsNaN(v) {
			total += v
		}
	}
	return total
}

// AvgMeasure computes the mean of a named measure over its present values.
func AvgMeasure(view RecordView, measure string) float64 {
	vals := validValues(view, measure)
	if len(vals) == 0 {
		return 0
	}
	return SumMeasure(view, measure) / float64(len(vals))
}

// MeasureBounds returns the observed [min, max] of a measure, skipping
// missing values. ok is false when no value is present.
func MeasureBounds(view RecordView, measure string) (bounds Range, ok bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < view.Len(); i++ {
		v := view.Measure(i, measure)
		if math.IsNaN(v) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		ok = true
	}
	if !ok {
		return Range{}, false
	}
	return Range{Min: lo, Max: hi}, true
}

// Quartiles computes the five-number summary of a measure. ok is false when
// no value is present. Quartile positions use linear interpolation.
func Quartiles(view RecordView, measure string) (d Distribution, ok bool) {
	vals := validValues(view, measure)
	if len(vals) == 0 {
		return Distribution{}, false
	}
	sort.Float64s(vals)
	return Distribution{
		Min:    vals[0],
		Q1:     percentile(vals, 0.25),
		Median: percentile(vals, 0.50),
		Q3:     percentile(vals, 0.75),
		Max:    vals[len(vals)-1],
		Count:  len(vals),
	}, true
}

// percentile interpolates the p-th percentile of sorted values.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ============================================================================
// HISTOGRAM BINNING
// ============================================================================

// Bins describes an equal-width histogram partition of a measure's range.
// Edges has len(Counts)+1 entries. The last bin is closed on both ends so
// the maximum value is counted.
type Bins struct {
	Edges  []float64
	Counts []int
}

// HistogramBins partitions the observed range of a measure into binCount
// equal-width bins and counts the view's records per bin. Missing values
// are skipped. Returns ok=false when no value is present.
func HistogramBins(view RecordView, measure string, binCount int) (b Bins, ok bool) {
	if binCount < 1 {
		binCount = 1
	}
	bounds, ok := MeasureBounds(view, measure)
	if !ok {
		return Bins{}, false
	}

	width := (bounds.Max - bounds.Min) / float64(binCount)
	if width == 0 {
		// All values identical — single degenerate bin.
		width = 1
	}

	b.Edges = make([]float64, binCount+1)
	for i := 0; i <= binCount; i++ {
		b.Edges[i] = bounds.Min + width*float64(i)
	}
	b.Counts = make([]int, binCount)

	for i := 0; i < view.Len(); i++ {
		v := view.Measure(i, measure)
		if math.IsNaN(v) {
			continue
		}
		idx := int((v - bounds.Min) / width)
		if idx >= binCount {
			idx = binCount - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.Counts[idx]++
	}
	return b, true
}

// CountInBins counts a view's records against pre-computed bin edges.
// Used to histogram each species over the shared edges of the full view.
func CountInBins(view RecordView, measure string, edges []float64) []int {
	if len(edges) < 2 {
		return nil
	}
	counts := make([]int, len(edges)-1)
	lo, hi := edges[0], edges[len(edges)-1]
	width := (hi - lo) / float64(len(counts))
	if width == 0 {
		width = 1
	}
	for i := 0; i < view.Len(); i++ {
		v := view.Measure(i, measure)
		if math.IsNaN(v) || v < lo || v > hi {
			continue
		}
		idx := int((v - lo) / width)
		if idx >= len(counts) {
			idx = len(counts) - 1
		}
		counts[idx]++
	}
	return counts
}

// ============================================================================
// DIMENSION UTILITIES
// ============================================================================

// UniqueValues returns distinct values for a dimension across a view,
// in first-seen order. Empty values are skipped.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// LabelForMeasure turns a measure key into a display label:
// "body_mass_g" → "Body Mass (g)", "flipper_length_mm" → "Flipper Length (mm)".
func LabelForMeasure(key string) string {
	parts := strings.Split(key, "_")
	if len(parts) > 1 {
		last := parts[len(parts)-1]
		if last == "g" || last == "kg" || last == "mm" {
			return titleWords(parts[:len(parts)-1]) + " (" + last + ")"
		}
	}
	return titleWords(parts)
}

// LabelForDimension returns a capitalized label for a dimension key.
func LabelForDimension(key string) string {
	return titleWords(strings.Split(key, "_"))
}

func titleWords(words []string) string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		out = append(out, strings.ToUpper(w[:1])+w[1:])
	}
	return strings.Join(out, " ")
}

// FormatMeasure renders a measure value: whole numbers without decimals,
// fractional values with one decimal place, missing values as an empty cell.
func FormatMeasure(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
