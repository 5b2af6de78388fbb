package dataset

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/floeboard/floe/engine"
)

// ============================================================================
// LOADER — Bundled CSV → immutable []Penguin + engine.RecordView
// ============================================================================
// The dataset loads once at process start and never changes. gota parses
// the CSV; forcing the measurement columns to Float turns "NA" cells into
// NaN, which is the engine's missing-value representation.
// ============================================================================

//go:embed penguins.csv
var penguinsCSV []byte

// Dataset is the loaded, immutable penguin data plus the metadata the
// dashboard controls need (choices, slider bounds).
type Dataset struct {
	Penguins []Penguin

	Species    []string     // distinct species, first-seen order
	Islands    []string     // distinct islands, first-seen order
	MassBounds engine.Range // observed body-mass range

	view engine.RecordView
}

// adapter binds Penguin structs to the engine without copying.
// Declared once; Sex and Year ride along as table-only dimensions.
var adapter = engine.NewDomainAdapter[Penguin]().
	Dimension("species", func(p Penguin) string { return p.Species }).
	Dimension("island", func(p Penguin) string { return p.Island }).
	Dimension("sex", func(p Penguin) string { return p.Sex }).
	Dimension("year", func(p Penguin) string {
		if p.Year == 0 {
			return ""
		}
		return strconv.Itoa(p.Year)
	}).
	Measure("bill_length_mm", func(p Penguin) float64 { return p.BillLengthMM }).
	Measure("bill_depth_mm", func(p Penguin) float64 { return p.BillDepthMM }).
	Measure("flipper_length_mm", func(p Penguin) float64 { return p.FlipperLengthMM }).
	Measure("body_mass_g", func(p Penguin) float64 { return p.BodyMassG })

// Load parses the bundled penguins CSV.
func Load() (*Dataset, error) {
	return Parse(penguinsCSV)
}

// LoadFile parses a penguins CSV from disk, for overriding the bundled data.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	return Parse(data)
}

// Parse builds a Dataset from raw CSV bytes.
func Parse(data []byte) (*Dataset, error) {
	df := dataframe.ReadCSV(strings.NewReader(string(data)),
		dataframe.HasHeader(true),
		dataframe.WithTypes(map[string]series.Type{
			"species":           series.String,
			"island":            series.String,
			"bill_length_mm":    series.Float,
			"bill_depth_mm":     series.Float,
			"flipper_length_mm": series.Float,
			"body_mass_g":       series.Float,
			"sex":               series.String,
			"year":              series.Int,
		}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to parse dataset CSV: %w", df.Err)
	}
	if df.Nrow() == 0 {
		return nil, fmt.Errorf("dataset CSV has no rows")
	}
	for _, col := range []string{"species", "island", "body_mass_g"} {
		if !hasColumn(df, col) {
			return nil, fmt.Errorf("dataset CSV missing column %q", col)
		}
	}

	specs := df.Col("species").Records()
	islands := df.Col("island").Records()
	billLen := floatColumn(df, "bill_length_mm")
	billDep := floatColumn(df, "bill_depth_mm")
	flipper := floatColumn(df, "flipper_length_mm")
	mass := floatColumn(df, "body_mass_g")
	sexes := stringColumn(df, "sex")
	years := stringColumn(df, "year")

	penguins := make([]Penguin, df.Nrow())
	for i := range penguins {
		year, _ := strconv.Atoi(years[i])
		penguins[i] = Penguin{
			Species:         specs[i],
			Island:          islands[i],
			BillLengthMM:    billLen[i],
			BillDepthMM:     billDep[i],
			FlipperLengthMM: flipper[i],
			BodyMassG:       mass[i],
			Sex:             cleanNA(sexes[i]),
			Year:            year,
		}
	}

	ds := &Dataset{
		Penguins: penguins,
		view:     adapter.Bind(penguins),
	}
	ds.Species = engine.UniqueValues(ds.view, "species")
	ds.Islands = engine.UniqueValues(ds.view, "island")
	bounds, ok := engine.MeasureBounds(ds.view, "body_mass_g")
	if !ok {
		return nil, fmt.Errorf("dataset has no body mass values")
	}
	ds.MassBounds = bounds

	return ds, nil
}

// View returns the zero-copy engine view over the loaded penguins.
func (d *Dataset) View() engine.RecordView { return d.view }

// Len returns the record count.
func (d *Dataset) Len() int { return len(d.Penguins) }

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// floatColumn extracts a float column, or all-NaN when the column is absent.
func floatColumn(df dataframe.DataFrame, name string) []float64 {
	if !hasColumn(df, name) {
		vals := make([]float64, df.Nrow())
		for i := range vals {
			vals[i] = math.NaN()
		}
		return vals
	}
	return df.Col(name).Float()
}

func stringColumn(df dataframe.DataFrame, name string) []string {
	if !hasColumn(df, name) {
		return make([]string, df.Nrow())
	}
	return df.Col(name).Records()
}

// cleanNA maps gota's textual missing markers to the empty string.
func cleanNA(s string) string {
	if s == "NA" || s == "NaN" {
		return ""
	}
	return s
}
