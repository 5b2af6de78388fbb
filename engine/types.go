package engine

// ============================================================================
// FLOE ENGINE TYPES — Filtering + Render-Ready Output
// ============================================================================
// The engine reads consumer data through RecordView (see view.go), filters it
// with Criteria, and produces JSON contracts the dashboard front-end renders
// directly: TableData for the table/grid, ChartConfig for the charts.
// ============================================================================

// ============================================================================
// CRITERIA — Which records to include
// ============================================================================

// Range is an inclusive numeric interval over a measure.
// Records whose measure is missing (NaN) never fall inside a Range.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the range, inclusive on both ends.
// NaN never matches.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Criteria define which records to include.
//
// Dimensions maps a dimension key to its allowed values: OR within a
// dimension, AND across dimensions. A key that is PRESENT with an empty
// value list matches nothing — an unchecked checkbox group selects no
// records. A key that is ABSENT places no restriction.
//
// Ranges maps a measure key to an inclusive interval. Records missing the
// measure are excluded by that range.
type Criteria struct {
	Dimensions map[string][]string `json:"dimensions"`
	Ranges     map[string]Range    `json:"ranges"`
}

// IsEmpty returns true if no constraints are set at all.
func (c Criteria) IsEmpty() bool {
	return len(c.Dimensions) == 0 && len(c.Ranges) == 0
}

// ============================================================================
// VIEWREQUEST — Contract between the dashboard controls and the engine
// ============================================================================

// ViewRequest describes one full dashboard computation: the filter criteria
// plus the presentation knobs the sidebar controls supply.
type ViewRequest struct {
	Criteria  Criteria `json:"criteria"`
	Attribute string   `json:"attribute"` // measure shown in histograms/violin
	BinCount  int      `json:"binCount"`  // client-side histogram bins
	PNGBins   int      `json:"pngBins"`   // server-rendered histogram bins
	MassUnit  string   `json:"massUnit"`  // "g" (default) or "kg"
}

// ============================================================================
// RESULT — Render-ready output for one ViewRequest
// ============================================================================

// Result is the engine's render-ready output for the whole dashboard.
type Result struct {
	Summary    string       `json:"summary"`
	MatchCount int          `json:"matchCount"`
	TotalCount int          `json:"totalCount"`
	Table      *TableData   `json:"table"`
	Grid       *TableData   `json:"grid"`
	Histogram  *ChartConfig `json:"histogram"`
	Scatter    *ChartConfig `json:"scatter"`
	Violin     *ChartConfig `json:"violin"`
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart. The front-end consumes this
// shape directly; the render package consumes it for server-side PNGs.
type ChartConfig struct {
	ChartType  string        `json:"chartType"` // "histogram", "scatter", "violin"
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	BinEdges   []float64     `json:"binEdges,omitempty"` // histogram only
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents one data series — for the dashboard, one species.
type ChartSeries struct {
	Name   string        `json:"name"`
	Data   []ChartPoint  `json:"data,omitempty"`
	Counts []int         `json:"counts,omitempty"` // histogram: count per bin
	Stats  *Distribution `json:"stats,omitempty"`  // violin: five-number summary
	Color  string        `json:"color,omitempty"`
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distribution is a five-number summary of a measure within a series.
type Distribution struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table or grid.
type TableData struct {
	Title   string     `json:"title"`
	Variant string     `json:"variant"` // "table" or "grid"
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}
