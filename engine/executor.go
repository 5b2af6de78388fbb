package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// EXECUTOR — One ViewRequest → one render-ready Result
// ============================================================================
// Pipeline:
//   1. Apply criteria → SubView (zero-copy, order-preserving)
//   2. (Optional) Wrap in ScaledView for the kg display toggle
//   3. Build table, grid, and the three chart configs
//   4. Build the summary line
//
// Pure except for the Result allocation: the source view is never mutated,
// and identical requests produce identical results. The host re-invokes
// Execute on every control change.
// ============================================================================

// DefaultBinCount is used when a request leaves a bin count unset.
const DefaultBinCount = 20

// Execute runs a ViewRequest against a RecordView and returns a render-ready
// Result. An empty filter result is a valid Result with empty table rows and
// chart series, never an error.
func Execute(req ViewRequest, view RecordView, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts)

	attribute := req.Attribute
	if attribute == "" {
		attribute = cfg.DefaultAttribute
	}
	if !hasMeasure(view, attribute) {
		return nil, fmt.Errorf("unknown attribute %q", attribute)
	}
	binCount := req.BinCount
	if binCount < 1 {
		binCount = DefaultBinCount
	}

	// 1. Apply criteria → SubView (zero-copy)
	filtered := Apply(view, req.Criteria)

	// 2. Optional gram → kilogram rescale for display
	display := filtered
	if req.MassUnit == "kg" {
		display = NewScaledView(filtered, cfg.MassMeasure, 0.001)
	}

	// 3. Build outputs
	result := &Result{
		MatchCount: filtered.Len(),
		TotalCount: view.Len(),
		Table:      BuildTable("Penguins Data Table", display),
		Grid:       BuildGrid("Penguins Data Grid", display),
		Histogram:  BuildHistogram(display, attribute, cfg.SplitDimension, binCount),
		Scatter:    BuildScatter(display, cfg.ScatterX, cfg.ScatterY, cfg.SplitDimension),
		Violin:     BuildViolin(display, attribute, cfg.SplitDimension),
	}

	// BuildHistogram returns nil when nothing has the attribute; the
	// front-end expects a config with empty series instead.
	if result.Histogram == nil {
		result.Histogram = &ChartConfig{
			ChartType: "histogram",
			Title:     fmt.Sprintf("Histogram: %s", LabelForMeasure(attribute)),
			XAxis:     LabelForMeasure(attribute),
			YAxis:     "Count",
			ShowGrid:  true,
		}
	}
	result.Histogram.Title = histogramTitle(attribute, req.Criteria, cfg.SplitDimension)

	// 4. Summary line
	result.Summary = buildSummaryLine(filtered.Len(), view.Len())

	return result, nil
}

// histogramTitle mirrors the dashboard's dynamic chart header, naming the
// attribute and the current species selection.
func histogramTitle(attribute string, criteria Criteria, splitBy string) string {
	selected := "All"
	if vals, ok := criteria.Dimensions[splitBy]; ok {
		if len(vals) == 0 {
			selected = "None"
		} else {
			selected = strings.Join(vals, ", ")
		}
	}
	return fmt.Sprintf("Histogram: %s (%s: %s)",
		LabelForMeasure(attribute), LabelForDimension(splitBy), selected)
}

func buildSummaryLine(matched, total int) string {
	if matched == 0 {
		return "No penguins match the current filters."
	}
	return fmt.Sprintf("Showing %s of %s penguins.", FormatInt(matched), FormatInt(total))
}

func hasMeasure(view RecordView, key string) bool {
	for _, k := range view.MeasureKeys() {
		if k == key {
			return true
		}
	}
	return false
}
