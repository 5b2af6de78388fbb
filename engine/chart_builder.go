package engine

import (
	"fmt"
	"math"
)

// ============================================================================
// CHART BUILDER — Produces ChartConfig from a filtered RecordView
// ============================================================================
// One series per value of the split dimension (species for the dashboard).
// Histograms share bin edges across series so stacks line up; the violin
// carries a five-number summary plus the raw points of each series.
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// BuildHistogram produces a stacked histogram config: equal-width bins over
// the whole view's range of measure, one count series per value of splitBy.
// Returns nil when no record has the measure — callers render an empty chart.
func BuildHistogram(view RecordView, measure, splitBy string, binCount int) *ChartConfig {
	bins, ok := HistogramBins(view, measure, binCount)
	if !ok {
		return nil
	}

	config := &ChartConfig{
		ChartType:  "histogram",
		Title:      fmt.Sprintf("Histogram: %s", LabelForMeasure(measure)),
		XAxis:      LabelForMeasure(measure),
		YAxis:      "Count",
		BinEdges:   bins.Edges,
		ShowLegend: true,
		ShowGrid:   true,
	}

	groups := GroupByDimension(view, splitBy)
	for _, g := range groups {
		config.Series = append(config.Series, ChartSeries{
			Name:   g.Label,
			Counts: CountInBins(g.View, measure, bins.Edges),
		})
	}
	config.Colors = assignColors(len(config.Series))
	for i := range config.Series {
		config.Series[i].Color = config.Colors[i]
	}
	return config
}

// BuildScatter produces a scatter config of yKey against xKey, one point
// series per value of splitBy. Records missing either coordinate are
// omitted from the plot.
func BuildScatter(view RecordView, xKey, yKey, splitBy string) *ChartConfig {
	config := &ChartConfig{
		ChartType:  "scatter",
		Title:      fmt.Sprintf("Scatterplot: %s vs. %s", LabelForMeasure(xKey), LabelForMeasure(yKey)),
		XAxis:      LabelForMeasure(xKey),
		YAxis:      LabelForMeasure(yKey),
		ShowLegend: true,
		ShowGrid:   true,
	}

	groups := GroupByDimension(view, splitBy)
	for _, g := range groups {
		points := make([]ChartPoint, 0, g.View.Len())
		for i := 0; i < g.View.Len(); i++ {
			x := g.View.Measure(i, xKey)
			y := g.View.Measure(i, yKey)
			if math.IsNaN(x) || math.IsNaN(y) {
				continue
			}
			points = append(points, ChartPoint{X: x, Y: y})
		}
		config.Series = append(config.Series, ChartSeries{
			Name: g.Label,
			Data: points,
		})
	}
	config.Colors = assignColors(len(config.Series))
	for i := range config.Series {
		config.Series[i].Color = config.Colors[i]
	}
	return config
}

// BuildViolin produces a violin config for measure: per splitBy value, the
// five-number summary plus every raw point (the front-end draws box and
// jittered points). Series with no present values carry nil Stats.
func BuildViolin(view RecordView, measure, splitBy string) *ChartConfig {
	config := &ChartConfig{
		ChartType:  "violin",
		Title:      fmt.Sprintf("%s Distribution by %s", LabelForMeasure(measure), LabelForDimension(splitBy)),
		XAxis:      LabelForDimension(splitBy),
		YAxis:      LabelForMeasure(measure),
		ShowLegend: true,
		ShowGrid:   true,
	}

	groups := GroupByDimension(view, splitBy)
	for _, g := range groups {
		series := ChartSeries{Name: g.Label}
		if dist, ok := Quartiles(g.View, measure); ok {
			series.Stats = &dist
		}
		for i := 0; i < g.View.Len(); i++ {
			v := g.View.Measure(i, measure)
			if math.IsNaN(v) {
				continue
			}
			series.Data = append(series.Data, ChartPoint{Y: v})
		}
		config.Series = append(config.Series, series)
	}
	config.Colors = assignColors(len(config.Series))
	for i := range config.Series {
		config.Series[i].Color = config.Colors[i]
	}
	return config
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
