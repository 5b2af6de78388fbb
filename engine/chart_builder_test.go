package engine

import (
	"math"
	"testing"
)

// ============================================================================
// CHART BUILDER TESTS
// ============================================================================

var chartFixture = []specimen{
	{"Adelie", "Biscoe", 3000},
	{"Adelie", "Dream", 3400},
	{"Gentoo", "Biscoe", 5000},
	{"Gentoo", "Biscoe", 5200},
	{"Chinstrap", "Dream", 3600},
}

func TestBuildHistogram(t *testing.T) {
	view := specimenView(chartFixture)

	cfg := BuildHistogram(view, "body_mass_g", "species", 4)
	if cfg == nil {
		t.Fatal("expected a histogram config")
	}
	if cfg.ChartType != "histogram" {
		t.Errorf("chart type = %q", cfg.ChartType)
	}
	if len(cfg.BinEdges) != 5 {
		t.Fatalf("expected 5 edges, got %d", len(cfg.BinEdges))
	}
	if len(cfg.Series) != 3 {
		t.Fatalf("expected one series per species, got %d", len(cfg.Series))
	}

	// Per-species counts over shared edges must sum to the record count.
	total := 0
	for _, s := range cfg.Series {
		if len(s.Counts) != 4 {
			t.Errorf("series %s has %d bins, want 4", s.Name, len(s.Counts))
		}
		for _, c := range s.Counts {
			total += c
		}
		if s.Color == "" {
			t.Errorf("series %s missing a color", s.Name)
		}
	}
	if total != len(chartFixture) {
		t.Errorf("stacked counts sum to %d, want %d", total, len(chartFixture))
	}
}

func TestBuildHistogramEmptyView(t *testing.T) {
	if cfg := BuildHistogram(specimenView(nil), "body_mass_g", "species", 10); cfg != nil {
		t.Error("empty view should produce a nil histogram config")
	}
}

func TestBuildScatter(t *testing.T) {
	data := append([]specimen(nil), chartFixture...)
	data = append(data, specimen{"Adelie", "Biscoe", math.NaN()})
	view := specimenView(data)

	cfg := BuildScatter(view, "body_mass_g", "body_mass_g", "species")
	if cfg.ChartType != "scatter" {
		t.Errorf("chart type = %q", cfg.ChartType)
	}
	if len(cfg.Series) != 3 {
		t.Fatalf("expected 3 series, got %d", len(cfg.Series))
	}

	points := 0
	for _, s := range cfg.Series {
		points += len(s.Data)
	}
	// The NaN record has no coordinates and must be dropped.
	if points != len(chartFixture) {
		t.Errorf("scatter has %d points, want %d", points, len(chartFixture))
	}
}

func TestBuildScatterEmptyView(t *testing.T) {
	cfg := BuildScatter(specimenView(nil), "body_mass_g", "body_mass_g", "species")
	if cfg == nil {
		t.Fatal("empty view should still produce a valid config")
	}
	if len(cfg.Series) != 0 {
		t.Errorf("empty view should produce no series, got %d", len(cfg.Series))
	}
}

func TestBuildViolin(t *testing.T) {
	view := specimenView(chartFixture)

	cfg := BuildViolin(view, "body_mass_g", "species")
	if cfg.ChartType != "violin" {
		t.Errorf("chart type = %q", cfg.ChartType)
	}
	if len(cfg.Series) != 3 {
		t.Fatalf("expected 3 series, got %d", len(cfg.Series))
	}

	for _, s := range cfg.Series {
		if s.Stats == nil {
			t.Errorf("series %s missing distribution stats", s.Name)
			continue
		}
		if s.Stats.Min > s.Stats.Q1 || s.Stats.Q1 > s.Stats.Median ||
			s.Stats.Median > s.Stats.Q3 || s.Stats.Q3 > s.Stats.Max {
			t.Errorf("series %s has inconsistent summary: %+v", s.Name, *s.Stats)
		}
		if len(s.Data) != s.Stats.Count {
			t.Errorf("series %s has %d points but stats count %d", s.Name, len(s.Data), s.Stats.Count)
		}
	}
}

func TestBuildViolinAllMissingSeries(t *testing.T) {
	view := specimenView([]specimen{
		{"Adelie", "Biscoe", 3200},
		{"Gentoo", "Biscoe", math.NaN()},
	})

	cfg := BuildViolin(view, "body_mass_g", "species")
	if len(cfg.Series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(cfg.Series))
	}
	if cfg.Series[1].Stats != nil {
		t.Error("all-missing series should carry nil stats")
	}
	if len(cfg.Series[1].Data) != 0 {
		t.Error("all-missing series should carry no points")
	}
}
