package core

import "github.com/df07/go-optics-lab/pkg/config"

// GetColor returns the display color for the ray's wavelength (spec.md §4.2,
// §6).
func (r *Ray) GetColor() config.RGB {
	return config.WavelengthToRGB(r.WavelengthNM)
}

// GetLineWidth returns a rendering line width, monotone nondecreasing in
// Intensity and clamped to a sane screen-space range.
func (r *Ray) GetLineWidth() float64 {
	const minWidth, maxWidth = 0.5, 4.0
	w := minWidth + r.Intensity*(maxWidth-minWidth)
	if w > maxWidth {
		w = maxWidth
	}
	if w < minWidth {
		w = minWidth
	}
	return w
}
