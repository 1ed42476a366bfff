package fluid

import (
	"fmt"
	"math"
)

// Default phase parameters, SI units (viscosities in Pa.s, densities in kg/m3).
const (
	DefaultViscosity1 = 1.0e-3 // water
	DefaultViscosity2 = 3.0e-3 // oil
	DefaultDensity1   = 1000.0
	DefaultDensity2   = 800.0
)

// Properties is the two-phase reservoir property model for a block: per-cell
// porosity and isotropic absolute permeability, phase viscosities/densities
// and quadratic (Corey) relative permeability curves. Phase 1 is water,
// phase 2 is oil, saturation always refers to the first phase.
type Properties struct {
	poro   []float64
	perm   []float64
	mu     [2]float64
	rho    [2]float64
	pcMax  float64 // capillary pressure at zero water saturation
}

// NewUniformProperties builds a homogeneous property model with n cells.
func NewUniformProperties(n int, perm, poro float64) (p *Properties) {
	if perm <= 0 || poro <= 0 {
		panic(fmt.Errorf("nonphysical rock properties: perm = %g, poro = %g", perm, poro))
	}
	p = &Properties{
		poro: make([]float64, n),
		perm: make([]float64, n),
		mu:   [2]float64{DefaultViscosity1, DefaultViscosity2},
		rho:  [2]float64{DefaultDensity1, DefaultDensity2},
	}
	for c := 0; c < n; c++ {
		p.poro[c] = poro
		p.perm[c] = perm
	}
	return
}

// NewProperties builds a heterogeneous property model from per-cell fields.
func NewProperties(perm, poro []float64) (p *Properties) {
	if len(perm) != len(poro) {
		panic(fmt.Errorf("field length mismatch: %d perm values, %d poro values", len(perm), len(poro)))
	}
	p = &Properties{
		poro: poro,
		perm: perm,
		mu:   [2]float64{DefaultViscosity1, DefaultViscosity2},
		rho:  [2]float64{DefaultDensity1, DefaultDensity2},
	}
	return
}

func (p *Properties) NumCells() int { return len(p.poro) }

func (p *Properties) SetViscosities(mu1, mu2 float64) {
	if mu1 <= 0 || mu2 <= 0 {
		panic(fmt.Errorf("nonphysical viscosities: %g, %g", mu1, mu2))
	}
	p.mu[0], p.mu[1] = mu1, mu2
}

func (p *Properties) SetDensities(rho1, rho2 float64) {
	p.rho[0], p.rho[1] = rho1, rho2
}

// SetMaxCapillaryPressure sets the capillary pressure at zero water
// saturation; the curve is linear in (1 - s). Zero disables capillarity.
func (p *Properties) SetMaxCapillaryPressure(pcMax float64) {
	p.pcMax = pcMax
}

func (p *Properties) ViscosityFirstPhase() float64  { return p.mu[0] }
func (p *Properties) ViscositySecondPhase() float64 { return p.mu[1] }
func (p *Properties) DensityFirstPhase() float64    { return p.rho[0] }
func (p *Properties) DensitySecondPhase() float64   { return p.rho[1] }

func (p *Properties) Porosity(c int) float64     { return p.poro[c] }
func (p *Properties) Permeability(c int) float64 { return p.perm[c] }

// RelPermFirstPhase is the water relative permeability, krw = s^2.
func (p *Properties) RelPermFirstPhase(s float64) float64 { return s * s }

// RelPermSecondPhase is the oil relative permeability, kro = (1-s)^2.
func (p *Properties) RelPermSecondPhase(s float64) float64 { return (1 - s) * (1 - s) }

func (p *Properties) MobilityFirstPhase(c int, s float64) float64 {
	return p.RelPermFirstPhase(s) / p.mu[0]
}

func (p *Properties) MobilitySecondPhase(c int, s float64) float64 {
	return p.RelPermSecondPhase(s) / p.mu[1]
}

func (p *Properties) TotalMobility(c int, s float64) float64 {
	return p.MobilityFirstPhase(c, s) + p.MobilitySecondPhase(c, s)
}

// FractionalFlow is the water fraction of the total flux at saturation s.
func (p *Properties) FractionalFlow(c int, s float64) float64 {
	mobW := p.MobilityFirstPhase(c, s)
	return mobW / (mobW + p.MobilitySecondPhase(c, s))
}

// MaxFractionalFlowDerivative bounds max |df/ds| over the saturation range,
// sampled on the curves. The quadratic model gives the same curve in every
// cell. Never less than one.
func (p *Properties) MaxFractionalFlowDerivative() (deriv float64) {
	const n = 256
	deriv = 1
	prev := p.FractionalFlow(0, 0)
	for i := 1; i <= n; i++ {
		f := p.FractionalFlow(0, float64(i)/n)
		if d := math.Abs(f-prev) * n; d > deriv {
			deriv = d
		}
		prev = f
	}
	return
}

func (p *Properties) CapillaryPressure(c int, s float64) float64 {
	return p.pcMax * (1 - s)
}

// FixedMobility presents a precomputed per-cell mobility field as a fluid
// model, ignoring saturation. The single phase upscaler runs on these, once
// per phase.
type FixedMobility struct {
	Mob []float64
}

func NewFixedMobility(mob []float64) *FixedMobility {
	return &FixedMobility{Mob: mob}
}

func (f *FixedMobility) TotalMobility(c int, s float64) float64 {
	return f.Mob[c]
}
