package engine

import (
	"math"
	"testing"
)

// ============================================================================
// AGGREGATOR TESTS
// ============================================================================

func TestHistogramBins(t *testing.T) {
	data := []specimen{
		{"Adelie", "Biscoe", 3000},
		{"Adelie", "Biscoe", 3500},
		{"Adelie", "Biscoe", 4000},
		{"Adelie", "Biscoe", 4500},
		{"Adelie", "Biscoe", 5000},
	}
	view := specimenView(data)

	bins, ok := HistogramBins(view, "body_mass_g", 4)
	if !ok {
		t.Fatal("expected bins for populated view")
	}
	if len(bins.Edges) != 5 {
		t.Fatalf("expected 5 edges for 4 bins, got %d", len(bins.Edges))
	}
	if bins.Edges[0] != 3000 || bins.Edges[4] != 5000 {
		t.Errorf("edges should span observed range, got [%v, %v]", bins.Edges[0], bins.Edges[4])
	}

	total := 0
	for _, c := range bins.Counts {
		total += c
	}
	if total != 5 {
		t.Errorf("bin counts should sum to record count, got %d", total)
	}
	// Max value lands in the last (closed) bin.
	if bins.Counts[3] < 1 {
		t.Error("maximum value should be counted in the last bin")
	}
}

func TestHistogramBinsSkipsMissing(t *testing.T) {
	data := []specimen{
		{"Adelie", "Biscoe", 3000},
		{"Adelie", "Biscoe", math.NaN()},
		{"Adelie", "Biscoe", 4000},
	}
	bins, ok := HistogramBins(specimenView(data), "body_mass_g", 2)
	if !ok {
		t.Fatal("expected bins")
	}
	total := 0
	for _, c := range bins.Counts {
		total += c
	}
	if total != 2 {
		t.Errorf("NaN should be skipped, counted %d", total)
	}
}

func TestHistogramBinsEmptyView(t *testing.T) {
	if _, ok := HistogramBins(specimenView(nil), "body_mass_g", 10); ok {
		t.Error("empty view should report ok=false")
	}
}

func TestHistogramBinsIdenticalValues(t *testing.T) {
	data := []specimen{
		{"Adelie", "Biscoe", 4000},
		{"Adelie", "Biscoe", 4000},
	}
	bins, ok := HistogramBins(specimenView(data), "body_mass_g", 5)
	if !ok {
		t.Fatal("expected bins")
	}
	total := 0
	for _, c := range bins.Counts {
		total += c
	}
	if total != 2 {
		t.Errorf("degenerate range should still count all records, got %d", total)
	}
}

func TestCountInBins(t *testing.T) {
	all := specimenView([]specimen{
		{"Adelie", "Biscoe", 3000},
		{"Gentoo", "Biscoe", 5000},
		{"Adelie", "Dream", 3400},
		{"Gentoo", "Biscoe", 4800},
	})
	bins, _ := HistogramBins(all, "body_mass_g", 2)

	gentoo := Apply(all, Criteria{Dimensions: map[string][]string{"species": {"Gentoo"}}})
	counts := CountInBins(gentoo, "body_mass_g", bins.Edges)
	if len(counts) != 2 {
		t.Fatalf("expected 2 bins, got %d", len(counts))
	}
	if counts[0] != 0 || counts[1] != 2 {
		t.Errorf("both Gentoo masses belong to the upper bin, got %v", counts)
	}
}

func TestGroupByDimension(t *testing.T) {
	view := specimenView([]specimen{
		{"Gentoo", "Biscoe", 5000},
		{"Adelie", "Dream", 3500},
		{"Gentoo", "Biscoe", 5200},
	})

	groups := GroupByDimension(view, "species")
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	// First-seen order.
	if groups[0].Key != "Gentoo" || groups[1].Key != "Adelie" {
		t.Errorf("groups out of first-seen order: %s, %s", groups[0].Key, groups[1].Key)
	}
	if groups[0].Count != 2 || groups[0].View.Len() != 2 {
		t.Errorf("Gentoo group should hold 2 records, got %d", groups[0].Count)
	}
}

func TestQuartiles(t *testing.T) {
	view := specimenView([]specimen{
		{"Adelie", "Biscoe", 1},
		{"Adelie", "Biscoe", 2},
		{"Adelie", "Biscoe", 3},
		{"Adelie", "Biscoe", 4},
		{"Adelie", "Biscoe", 5},
	})

	d, ok := Quartiles(view, "body_mass_g")
	if !ok {
		t.Fatal("expected quartiles")
	}
	if d.Min != 1 || d.Max != 5 || d.Median != 3 {
		t.Errorf("five-number summary wrong: %+v", d)
	}
	if d.Q1 != 2 || d.Q3 != 4 {
		t.Errorf("quartiles wrong: q1=%v q3=%v", d.Q1, d.Q3)
	}
	if d.Count != 5 {
		t.Errorf("count = %d, want 5", d.Count)
	}

	if _, ok := Quartiles(specimenView(nil), "body_mass_g"); ok {
		t.Error("empty view should report ok=false")
	}
}

func TestMeasureBounds(t *testing.T) {
	view := specimenView([]specimen{
		{"Adelie", "Biscoe", 3200},
		{"Adelie", "Biscoe", math.NaN()},
		{"Adelie", "Biscoe", 4700},
	})

	bounds, ok := MeasureBounds(view, "body_mass_g")
	if !ok {
		t.Fatal("expected bounds")
	}
	if bounds.Min != 3200 || bounds.Max != 4700 {
		t.Errorf("bounds = [%v, %v], want [3200, 4700]", bounds.Min, bounds.Max)
	}

	allMissing := specimenView([]specimen{{"Adelie", "Biscoe", math.NaN()}})
	if _, ok := MeasureBounds(allMissing, "body_mass_g"); ok {
		t.Error("all-missing measure should report ok=false")
	}
}

func TestStatsSkipMissing(t *testing.T) {
	view := specimenView([]specimen{
		{"Adelie", "Biscoe", 3000},
		{"Adelie", "Biscoe", math.NaN()},
		{"Adelie", "Biscoe", 5000},
	})

	if got := SumMeasure(view, "body_mass_g"); got != 8000 {
		t.Errorf("SumMeasure = %v, want 8000", got)
	}
	if got := AvgMeasure(view, "body_mass_g"); got != 4000 {
		t.Errorf("AvgMeasure should average present values only, got %v", got)
	}
}

func TestUniqueValues(t *testing.T) {
	view := specimenView([]specimen{
		{"Gentoo", "Biscoe", 5000},
		{"Adelie", "", 3500},
		{"Gentoo", "Dream", 5100},
	})

	species := UniqueValues(view, "species")
	if len(species) != 2 || species[0] != "Gentoo" || species[1] != "Adelie" {
		t.Errorf("UniqueValues(species) = %v", species)
	}

	islands := UniqueValues(view, "island")
	if len(islands) != 2 {
		t.Errorf("empty values should be skipped, got %v", islands)
	}
}

func TestLabelHelpers(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"body_mass_g", "Body Mass (g)"},
		{"flipper_length_mm", "Flipper Length (mm)"},
		{"bill_depth_mm", "Bill Depth (mm)"},
	}
	for _, c := range cases {
		if got := LabelForMeasure(c.key); got != c.want {
			t.Errorf("LabelForMeasure(%s) = %q, want %q", c.key, got, c.want)
		}
	}

	if got := LabelForDimension("species"); got != "Species" {
		t.Errorf("LabelForDimension(species) = %q", got)
	}
}

func TestFormatMeasure(t *testing.T) {
	if got := FormatMeasure(3500); got != "3500" {
		t.Errorf("whole number format = %q", got)
	}
	if got := FormatMeasure(39.1); got != "39.1" {
		t.Errorf("fractional format = %q", got)
	}
	if got := FormatMeasure(math.NaN()); got != "" {
		t.Errorf("missing value should render empty, got %q", got)
	}
}

func TestScaledView(t *testing.T) {
	view := specimenView([]specimen{{"Adelie", "Biscoe", 3750}})
	kg := NewScaledView(view, "body_mass_g", 0.001)

	if got := kg.Measure(0, "body_mass_g"); got != 3.75 {
		t.Errorf("scaled mass = %v, want 3.75", got)
	}
	if got := kg.Dimension(0, "species"); got != "Adelie" {
		t.Errorf("dimensions must pass through, got %q", got)
	}
	// Scaling must not touch the parent.
	if got := view.Measure(0, "body_mass_g"); got != 3750 {
		t.Errorf("parent view mutated: %v", got)
	}
}
