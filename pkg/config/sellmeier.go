package config

import "math"

// SellmeierMaterial is a 3-term Sellmeier dispersion model: n^2(lambda) = 1 +
// sum_i B_i*lambda^2/(lambda^2 - C_i), with lambda in micrometers.
type SellmeierMaterial struct {
	Name string
	B    [3]float64
	C    [3]float64
}

// RefractiveIndex returns n(lambda) for lambdaNM nanometers, clamped to >= 1
// per spec.md §4.7.
func (m SellmeierMaterial) RefractiveIndex(lambdaNM float64) float64 {
	lambdaUM := lambdaNM / 1000.0
	lambda2 := lambdaUM * lambdaUM
	n2 := 1.0
	for i := 0; i < 3; i++ {
		n2 += m.B[i] * lambda2 / (lambda2 - m.C[i])
	}
	if n2 < 1 {
		n2 = 1
	}
	return math.Sqrt(n2)
}

// Exact coefficients from spec.md §6.
var (
	BK7         = SellmeierMaterial{Name: "BK7", B: [3]float64{1.03961212, 0.231792344, 1.01046945}, C: [3]float64{0.00600069867, 0.0200179144, 103.560653}}
	SF11        = SellmeierMaterial{Name: "SF11", B: [3]float64{1.73759695, 0.313747346, 1.89878101}, C: [3]float64{0.013188707, 0.0623068142, 155.23629}}
	FusedSilica = SellmeierMaterial{Name: "FusedSilica", B: [3]float64{0.6961663, 0.4079426, 0.8974794}, C: [3]float64{0.0046791, 0.0135121, 97.934}}
	FlintGlass  = SellmeierMaterial{Name: "FlintGlass", B: [3]float64{1.34533359, 0.209073176, 0.937357162}, C: [3]float64{0.00997743871, 0.0470450767, 111.886764}}
)

// sellmeierByName is the lookup-by-string material table a scene descriptor
// selects from (spec.md §6's "type-specific fields").
var sellmeierByName = map[string]SellmeierMaterial{
	"BK7":         BK7,
	"SF11":        SF11,
	"FusedSilica": FusedSilica,
	"FlintGlass":  FlintGlass,
}

// SellmeierByName looks up a material by name, reporting ok=false if unknown.
func SellmeierByName(name string) (SellmeierMaterial, bool) {
	m, ok := sellmeierByName[name]
	return m, ok
}

// CauchyIndex implements the Cauchy two-term model n(lambda) = n0Adj + B/lambda^2,
// with n0Adj chosen so that n(550nm) == n0 (spec.md §4.7).
func CauchyIndex(n0, b, lambdaNM float64) float64 {
	n0Adj := n0 - b/(550*550)
	return n0Adj + b/(lambdaNM*lambdaNM)
}
