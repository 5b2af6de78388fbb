package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ============================================================================
// CONFIG — YAML file + environment overrides
// ============================================================================
// Everything has a sensible default; a config file is optional. The FLOE_ADDR
// environment variable overrides the listen address last.
// ============================================================================

// Config holds the dashboard's runtime settings.
type Config struct {
	Addr     string   `yaml:"addr"`     // listen address, e.g. ":8310"
	DataFile string   `yaml:"dataFile"` // optional CSV override for the bundled dataset
	Defaults Defaults `yaml:"defaults"`
}

// Defaults seed the sidebar controls on first page load.
type Defaults struct {
	Attribute string   `yaml:"attribute"`
	BinCount  int      `yaml:"binCount"`
	PNGBins   int      `yaml:"pngBins"`
	Species   []string `yaml:"species"`
	Islands   []string `yaml:"islands"`
	MassMin   float64  `yaml:"massMin"`
	MassMax   float64  `yaml:"massMax"`
}

// Default returns the built-in configuration, mirroring the original
// dashboard's initial control state.
func Default() Config {
	return Config{
		Addr: ":8310",
		Defaults: Defaults{
			Attribute: "bill_length_mm",
			BinCount:  20,
			PNGBins:   10,
			Species:   []string{"Adelie", "Gentoo", "Chinstrap"},
			Islands:   []string{"Biscoe", "Dream", "Torgersen"},
			MassMin:   2000,
			MassMax:   5000,
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged; a missing file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if addr := os.Getenv("FLOE_ADDR"); addr != "" {
		cfg.Addr = addr
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.Defaults.BinCount < 1 || c.Defaults.PNGBins < 1 {
		return fmt.Errorf("bin counts must be at least 1")
	}
	if c.Defaults.MassMin > c.Defaults.MassMax {
		return fmt.Errorf("massMin %v exceeds massMax %v", c.Defaults.MassMin, c.Defaults.MassMax)
	}
	return nil
}
