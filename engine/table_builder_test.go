package engine

import (
	"math"
	"testing"
)

// ============================================================================
// TABLE BUILDER TESTS
// ============================================================================

func TestBuildTable(t *testing.T) {
	view := specimenView([]specimen{
		{"Adelie", "Biscoe", 3000},
		{"Gentoo", "Dream", 5200},
	})

	table := BuildTable("Penguins Data Table", view)
	if table.Variant != "table" {
		t.Errorf("variant = %q", table.Variant)
	}
	// Dimensions first, then measures.
	if len(table.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(table.Columns))
	}
	if table.Columns[0].Key != "species" || table.Columns[2].Key != "body_mass_g" {
		t.Errorf("column order wrong: %v", table.Columns)
	}
	if table.Columns[2].Type != "number" || table.Columns[2].Align != "right" {
		t.Error("measure columns should be right-aligned numbers")
	}

	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0][0] != "Adelie" || table.Rows[0][2] != "3000" {
		t.Errorf("first row = %v", table.Rows[0])
	}

	if table.Summary == nil {
		t.Fatal("populated table should carry a summary")
	}
	if got := table.Summary.Values["body_mass_g"]; got != "4100" {
		t.Errorf("summary mean = %q, want 4100", got)
	}
}

func TestBuildTableMissingValueCell(t *testing.T) {
	view := specimenView([]specimen{{"Adelie", "Biscoe", math.NaN()}})

	table := BuildTable("t", view)
	if got := table.Rows[0][2]; got != "" {
		t.Errorf("missing measurement should render as empty cell, got %q", got)
	}
}

func TestBuildTableEmptyView(t *testing.T) {
	table := BuildTable("t", specimenView(nil))
	if table == nil {
		t.Fatal("empty view should produce a valid table")
	}
	if len(table.Rows) != 0 {
		t.Errorf("expected zero rows, got %d", len(table.Rows))
	}
	if table.Summary != nil {
		t.Error("empty table should carry no summary")
	}
}

func TestBuildGridMatchesTableData(t *testing.T) {
	view := specimenView(chartFixture)

	table := BuildTable("a", view)
	grid := BuildGrid("b", view)

	if grid.Variant != "grid" {
		t.Errorf("grid variant = %q", grid.Variant)
	}
	if len(grid.Rows) != len(table.Rows) {
		t.Fatal("table and grid must carry identical data")
	}
	for i := range grid.Rows {
		for j := range grid.Rows[i] {
			if grid.Rows[i][j] != table.Rows[i][j] {
				t.Fatalf("cell (%d,%d) differs between table and grid", i, j)
			}
		}
	}
}
