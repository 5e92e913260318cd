package scene

import (
	"math"

	"github.com/df07/go-optics-lab/pkg/config"
	"github.com/df07/go-optics-lab/pkg/core"
	"github.com/df07/go-optics-lab/pkg/dispersive"
	"github.com/df07/go-optics-lab/pkg/optics"
	"github.com/df07/go-optics-lab/pkg/polarization"
	"github.com/df07/go-optics-lab/pkg/sources"
)

// SingleMirror builds scenario S1: a laser bounced off a flat mirror.
func SingleMirror() Scene {
	laser := sources.NewLaser("laser", "Laser", core.NewVector2(0, 0), 0)
	mirror := optics.NewFlatMirror("mirror", "Mirror", core.NewVector2(200, 0), math.Pi*3/4, 100, 1.0)
	screen := optics.NewScreen("screen", "Screen", core.NewVector2(200, -200), 0, 200)
	return New("single_mirror", laser, mirror, screen)
}

// PrismDispersion builds scenario S2: white light through a BK7 prism.
func PrismDispersion() Scene {
	light := sources.NewWhiteLight("light", "White Light", core.NewVector2(0, 0), 0, 7)
	vertices := [3]core.Vector2{
		core.NewVector2(150, -40),
		core.NewVector2(150, 40),
		core.NewVector2(220, 0),
	}
	prism := dispersive.NewSellmeierPrism("prism", "BK7 Prism", vertices, config.BK7)
	screen := optics.NewScreen("screen", "Screen", core.NewVector2(400, 0), math.Pi/2, 400)
	return New("prism_dispersion", light, prism, screen)
}

// PolarizerPair builds scenario S3: Malus's law through two linear polarizers.
// thetaRad is polarizer B's axis angle relative to polarizer A's (0 axis).
func PolarizerPair(thetaRad float64) Scene {
	laser := sources.NewLaser("laser", "Laser", core.NewVector2(0, 0), 0)
	laser.SetPolarization(sources.Polarization{Kind: sources.Linear, Angle: 0})
	polA := polarization.NewPolarizer("polA", "Polarizer A", core.NewVector2(100, 0), math.Pi/2, 20, 0)
	polB := polarization.NewPolarizer("polB", "Polarizer B", core.NewVector2(200, 0), math.Pi/2, 20, thetaRad)
	meter := optics.NewPowerMeter("meter", "Power Meter", core.NewVector2(300, 0), math.Pi/2, 20)
	return New("polarizer_pair", laser, polA, polB, meter)
}

// TIRBlock builds scenario S4: total internal reflection inside a glass block.
func TIRBlock() Scene {
	laser := sources.NewLaser("laser", "Laser", core.NewVector2(0, -80), math.Pi/4)
	block := dispersive.NewDielectricBlock("block", "Glass Block", []core.Vector2{
		core.NewVector2(100, -50),
		core.NewVector2(200, -50),
		core.NewVector2(200, 50),
		core.NewVector2(100, 50),
	}, 1.5)
	screen := optics.NewScreen("screen", "Screen", core.NewVector2(0, 300), 0, 400)
	return New("tir_block", laser, block, screen)
}

// GratingOrders builds scenario S5: a 550nm laser through a diffraction grating.
func GratingOrders() Scene {
	laser := sources.NewLaser("laser", "Laser", core.NewVector2(0, 0), 0)
	grating := dispersive.NewDiffractionGrating("grating", "Grating", core.NewVector2(200, 0), math.Pi/2, 100, 1000, 2)
	screen := optics.NewScreen("screen", "Screen", core.NewVector2(500, 0), math.Pi/2, 600)
	return New("grating_orders", laser, grating, screen)
}

// ApertureDoubleSlit builds scenario S6: a fan source through a double slit.
func ApertureDoubleSlit() Scene {
	fan := sources.NewFan("fan", "Fan", core.NewVector2(0, 0), 0, math.Pi/12, 200)
	slit := optics.NewAperture("slit", "Double Slit", core.NewVector2(150, 0), math.Pi/2, 10, 10)
	slit.Openings = [][2]float64{{0.3, 0.45}, {0.55, 0.7}}
	screen := optics.NewScreen("screen", "Screen", core.NewVector2(500, 0), math.Pi/2, 400)
	return New("aperture_double_slit", fan, slit, screen)
}
