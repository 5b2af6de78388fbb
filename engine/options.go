package engine

// ============================================================================
// ENGINE OPTIONS — Functional options for Execute()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	DefaultAttribute string // measure when ViewRequest.Attribute is empty
	SplitDimension   string // dimension that splits chart series
	ScatterX         string // scatter plot X measure
	ScatterY         string // scatter plot Y measure
	MassMeasure      string // measure the kg display toggle rescales
}

// WithDefaultAttribute sets the measure used when a request names none.
func WithDefaultAttribute(key string) Option {
	return func(c *config) { c.DefaultAttribute = key }
}

// WithSplitDimension sets the dimension that splits chart series.
func WithSplitDimension(key string) Option {
	return func(c *config) { c.SplitDimension = key }
}

// WithScatterAxes sets the scatter plot's fixed X and Y measures.
func WithScatterAxes(x, y string) Option {
	return func(c *config) {
		c.ScatterX = x
		c.ScatterY = y
	}
}

// WithMassMeasure sets the measure rescaled by the kg display toggle.
func WithMassMeasure(key string) Option {
	return func(c *config) { c.MassMeasure = key }
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		DefaultAttribute: "body_mass_g",
		SplitDimension:   "species",
		ScatterX:         "body_mass_g",
		ScatterY:         "flipper_length_mm",
		MassMeasure:      "body_mass_g",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
