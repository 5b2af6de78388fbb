package engine

import (
	"fmt"
	"math"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from a filtered RecordView
// ============================================================================
// Column discovery uses view.DimensionKeys()/MeasureKeys() — the builder
// never inspects concrete record types. The table and grid variants carry
// identical data; the front-end styles them differently.
// ============================================================================

// BuildTable produces a row-per-record TableData from a view.
// An empty view yields a valid TableData with zero rows, never an error.
func BuildTable(title string, view RecordView) *TableData {
	return buildRows(title, "table", view)
}

// BuildGrid is the grid-styled variant of BuildTable.
func BuildGrid(title string, view RecordView) *TableData {
	return buildRows(title, "grid", view)
}

func buildRows(title, variant string, view RecordView) *TableData {
	dimKeys := view.DimensionKeys()
	mesKeys := view.MeasureKeys()

	columns := make([]Column, 0, len(dimKeys)+len(mesKeys))
	for _, key := range dimKeys {
		columns = append(columns, Column{
			Key:   key,
			Label: LabelForDimension(key),
			Type:  "text",
			Align: "left",
		})
	}
	for _, key := range mesKeys {
		columns = append(columns, Column{
			Key:   key,
			Label: LabelForMeasure(key),
			Type:  "number",
			Align: "right",
		})
	}

	rows := make([][]string, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		row := make([]string, 0, len(columns))
		for _, key := range dimKeys {
			row = append(row, view.Dimension(i, key))
		}
		for _, key := range mesKeys {
			row = append(row, FormatMeasure(view.Measure(i, key)))
		}
		rows = append(rows, row)
	}

	return &TableData{
		Title:   title,
		Variant: variant,
		Columns: columns,
		Rows:    rows,
		Summary: buildSummary(view, mesKeys),
	}
}

// buildSummary averages each measure over its present values.
func buildSummary(view RecordView, mesKeys []string) *Summary {
	if view.Len() == 0 {
		return nil
	}
	values := make(map[string]string, len(mesKeys))
	for _, key := range mesKeys {
		avg := AvgMeasure(view, key)
		if math.IsNaN(avg) {
			continue
		}
		values[key] = FormatMeasure(RoundTo2(avg))
	}
	return &Summary{
		Label:  fmt.Sprintf("Mean (%s records)", FormatInt(view.Len())),
		Values: values,
	}
}
