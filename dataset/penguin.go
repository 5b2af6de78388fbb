package dataset

// ============================================================================
// PENGUIN — Typed record for the Palmer penguins dataset
// ============================================================================
// One Penguin is one observed specimen. Measurements that were not taken
// are NaN; the engine's range filters and statistics skip them.
// ============================================================================

// Species values present in the dataset.
const (
	SpeciesAdelie    = "Adelie"
	SpeciesGentoo    = "Gentoo"
	SpeciesChinstrap = "Chinstrap"
)

// Island values present in the dataset.
const (
	IslandBiscoe    = "Biscoe"
	IslandDream     = "Dream"
	IslandTorgersen = "Torgersen"
)

// Penguin is a single specimen's observation.
// Missing measurements are NaN; a missing Sex is the empty string.
type Penguin struct {
	Species         string
	Island          string
	BillLengthMM    float64
	BillDepthMM     float64
	FlipperLengthMM float64
	BodyMassG       float64
	Sex             string
	Year            int
}

// Field describes one dataset column for UI controls and table headers.
type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Kind  string `json:"kind"` // "dimension" or "measure"
	Unit  string `json:"unit,omitempty"`
}

// Fields lists the dataset's columns in display order.
func Fields() []Field {
	return []Field{
		{Key: "species", Label: "Species", Kind: "dimension"},
		{Key: "island", Label: "Island", Kind: "dimension"},
		{Key: "bill_length_mm", Label: "Bill Length (mm)", Kind: "measure", Unit: "mm"},
		{Key: "bill_depth_mm", Label: "Bill Depth (mm)", Kind: "measure", Unit: "mm"},
		{Key: "flipper_length_mm", Label: "Flipper Length (mm)", Kind: "measure", Unit: "mm"},
		{Key: "body_mass_g", Label: "Body Mass (g)", Kind: "measure", Unit: "g"},
		{Key: "sex", Label: "Sex", Kind: "dimension"},
		{Key: "year", Label: "Year", Kind: "dimension"},
	}
}

// Attributes lists the selectable numeric attributes, in the order the
// sidebar selector offers them.
func Attributes() []string {
	return []string{"bill_length_mm", "bill_depth_mm", "flipper_length_mm", "body_mass_g"}
}
