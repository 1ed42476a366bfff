package fluid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProperties(t *testing.T) {
	// Corey curves and mobilities
	{
		p := NewUniformProperties(8, 1.e-12, 0.25)
		p.SetViscosities(1, 2)
		assert.True(t, near(p.MobilityFirstPhase(0, 0.5), 0.25))
		assert.True(t, near(p.MobilitySecondPhase(0, 0.5), 0.125))
		assert.True(t, near(p.TotalMobility(0, 0.5), 0.375))
		assert.True(t, near(p.MobilityFirstPhase(0, 0), 0))
		assert.True(t, near(p.MobilitySecondPhase(0, 1), 0))
	}
	// Fractional flow stays in [0,1] and is monotone in s
	{
		p := NewUniformProperties(1, 1.e-12, 0.25)
		last := -1.0
		for s := 0.0; s <= 1.0; s += 0.05 {
			f := p.FractionalFlow(0, s)
			assert.True(t, f >= 0 && f <= 1)
			assert.True(t, f >= last)
			last = f
		}
		assert.True(t, near(p.FractionalFlow(0, 0), 0))
		assert.True(t, near(p.FractionalFlow(0, 1), 1))
	}
	// Capillary pressure curve
	{
		p := NewUniformProperties(1, 1.e-12, 0.25)
		assert.True(t, near(p.CapillaryPressure(0, 0.25), 0))
		p.SetMaxCapillaryPressure(1000)
		assert.True(t, near(p.CapillaryPressure(0, 0.25), 750))
		assert.True(t, near(p.CapillaryPressure(0, 1), 0))
	}
	// Heterogeneous fields
	{
		perm := []float64{1, 2, 3}
		poro := []float64{0.1, 0.2, 0.3}
		p := NewProperties(perm, poro)
		assert.Equal(t, 3, p.NumCells())
		assert.True(t, near(p.Permeability(1), 2))
		assert.True(t, near(p.Porosity(2), 0.3))
		assert.Panics(t, func() { NewProperties(perm, poro[:2]) })
	}
	// Fixed mobility ignores saturation
	{
		f := NewFixedMobility([]float64{3, 4})
		assert.True(t, near(f.TotalMobility(1, 0.1), 4))
		assert.True(t, near(f.TotalMobility(1, 0.9), 4))
	}
	// Fractional flow derivative bound. Equal viscosities peak at exactly
	// f'(0.5) = 2; a heavier second phase pushes the peak above 2.
	{
		p := NewUniformProperties(1, 1.e-12, 0.25)
		p.SetViscosities(1, 1)
		d := p.MaxFractionalFlowDerivative()
		assert.True(t, math.Abs(d-2) < 1.e-3)

		p.SetViscosities(1, 3)
		d = p.MaxFractionalFlowDerivative()
		assert.True(t, d > 2 && d < 3)
	}
}

func near(a, b float64) (l bool) {
	bound := 1.e-08 * math.Abs(a)
	if bound < 1.e-12 {
		bound = 1.e-12
	}
	if math.Abs(a-b) < bound {
		l = true
	}
	return
}
