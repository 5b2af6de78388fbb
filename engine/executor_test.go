package engine

import (
	"strings"
	"testing"
)

// ============================================================================
// EXECUTOR TESTS
// ============================================================================

func dashboardRequest(species, islands []string, min, max float64) ViewRequest {
	return ViewRequest{
		Criteria:  massCriteria(species, islands, min, max),
		Attribute: "body_mass_g",
		BinCount:  5,
	}
}

func TestExecuteFullView(t *testing.T) {
	view := specimenView(chartFixture)
	req := dashboardRequest(
		[]string{"Adelie", "Gentoo", "Chinstrap"},
		[]string{"Biscoe", "Dream"},
		0, 10000,
	)

	result, err := Execute(req, view)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.MatchCount != 5 || result.TotalCount != 5 {
		t.Errorf("counts = %d/%d, want 5/5", result.MatchCount, result.TotalCount)
	}
	if result.Table == nil || len(result.Table.Rows) != 5 {
		t.Error("table should hold every matching record")
	}
	if result.Grid == nil || result.Grid.Variant != "grid" {
		t.Error("grid variant missing")
	}
	if result.Histogram == nil || result.Scatter == nil || result.Violin == nil {
		t.Fatal("all three charts must be present")
	}
	if !strings.Contains(result.Summary, "5") {
		t.Errorf("summary should mention the match count: %q", result.Summary)
	}
}

func TestExecuteEmptyResultIsValid(t *testing.T) {
	view := specimenView(chartFixture)
	req := dashboardRequest([]string{}, []string{"Biscoe"}, 0, 10000)

	result, err := Execute(req, view)
	if err != nil {
		t.Fatalf("an empty filter result must not be an error: %v", err)
	}

	if result.MatchCount != 0 {
		t.Errorf("match count = %d, want 0", result.MatchCount)
	}
	if result.Table == nil || len(result.Table.Rows) != 0 {
		t.Error("empty result should still carry a zero-row table")
	}
	if result.Histogram == nil {
		t.Error("empty result should carry an empty histogram config, not nil")
	}
	if result.Summary != "No penguins match the current filters." {
		t.Errorf("summary = %q", result.Summary)
	}
}

func TestExecuteUnknownAttribute(t *testing.T) {
	view := specimenView(chartFixture)
	req := ViewRequest{Attribute: "wing_span_cm"}

	if _, err := Execute(req, view); err == nil {
		t.Fatal("unknown attribute should be rejected")
	}
}

func TestExecuteKilogramToggle(t *testing.T) {
	view := specimenView([]specimen{{"Adelie", "Biscoe", 3750}})
	req := ViewRequest{
		Criteria: massCriteria([]string{"Adelie"}, []string{"Biscoe"}, 3000, 4000),
		MassUnit: "kg",
	}

	result, err := Execute(req, view)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	// The filter runs in grams; the display rescales afterwards.
	if result.MatchCount != 1 {
		t.Fatalf("gram-range filter should still match, got %d", result.MatchCount)
	}
	massCell := result.Table.Rows[0][len(result.Table.Rows[0])-1]
	if massCell != "3.8" && massCell != "3.75" {
		t.Errorf("mass cell should be in kilograms, got %q", massCell)
	}
}

func TestExecuteHistogramTitleNamesSelection(t *testing.T) {
	view := specimenView(chartFixture)
	req := dashboardRequest([]string{"Adelie", "Gentoo"}, []string{"Biscoe", "Dream"}, 0, 10000)

	result, err := Execute(req, view)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(result.Histogram.Title, "Adelie, Gentoo") {
		t.Errorf("histogram title should name the species selection: %q", result.Histogram.Title)
	}
}

func TestExecuteIdempotent(t *testing.T) {
	view := specimenView(chartFixture)
	req := dashboardRequest([]string{"Gentoo"}, []string{"Biscoe"}, 4500, 5500)

	first, err := Execute(req, view)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	second, err := Execute(req, view)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if first.MatchCount != second.MatchCount || len(first.Table.Rows) != len(second.Table.Rows) {
		t.Fatal("identical requests must produce identical results")
	}
	for i := range first.Table.Rows {
		for j := range first.Table.Rows[i] {
			if first.Table.Rows[i][j] != second.Table.Rows[i][j] {
				t.Fatalf("row %d differs between runs", i)
			}
		}
	}
}
