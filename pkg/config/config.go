// Package config holds the tracer's fixed constants and the optional YAML
// overlay that tunes them, mirroring "Constants / configuration" in
// spec.md's system overview (item 9, in-core).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Constants holds the tunables spec.md §6 documents for cross-implementation
// parity. Zero-value Constants is meaningless; use Defaults() or Load.
type Constants struct {
	MaxBounces          uint32  `yaml:"max_bounces"`
	MinIntensity        float64 `yaml:"min_intensity"`
	MaxRaysPerSource    int     `yaml:"max_rays_per_source"`
	MaxTotalRays        int     `yaml:"max_total_rays"`
	DefaultWavelengthNM float64 `yaml:"default_wavelength_nm"`
	NAir                float64 `yaml:"n_air"`
	PixelsPerMicrometer float64 `yaml:"pixels_per_micrometer"`
	PixelsPerNanometer  float64 `yaml:"pixels_per_nanometer"`

	// DiffractionEfficiency[m] = eta for order |m|; orders beyond the slice
	// length default to 0, matching spec.md's eta_{n>=3} = 0.
	DiffractionEfficiency []float64 `yaml:"diffraction_efficiency"`
}

// Defaults returns the constants exactly as specified in spec.md §6.
func Defaults() Constants {
	return Constants{
		MaxBounces:            40,
		MinIntensity:          1e-4,
		MaxRaysPerSource:      1001,
		MaxTotalRays:          100_000,
		DefaultWavelengthNM:   550,
		NAir:                  1.0,
		PixelsPerMicrometer:   1.0,
		PixelsPerNanometer:    0.001,
		DiffractionEfficiency: []float64{0.60, 0.15, 0.05},
	}
}

// EfficiencyForOrder returns eta(|m|) per the defaults table, 0 beyond the
// configured orders.
func (c Constants) EfficiencyForOrder(order int) float64 {
	if order < 0 {
		order = -order
	}
	if order >= len(c.DiffractionEfficiency) {
		return 0
	}
	return c.DiffractionEfficiency[order]
}

// Load reads YAML-overridden constants from path, starting from Defaults()
// and overlaying only the fields present in the file. A missing file is not
// an error — it returns Defaults() unchanged, since a scene run with no
// config file is the common case.
func Load(path string) (Constants, error) {
	c := Defaults()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return c, nil
}
