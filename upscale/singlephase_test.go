package upscale

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/goupscale/bcond"
	"github.com/notargets/goupscale/fluid"
	"github.com/notargets/goupscale/grid"
	"github.com/notargets/goupscale/utils"
)

func TestSinglePhase(t *testing.T) {
	// A homogeneous block upscales to its own permeability, for both
	// boundary condition families
	for _, bctype := range []bcond.BCType{bcond.FixedBoundary, bcond.PeriodicBoundary} {
		g := grid.NewCartesian(3, 3, 3, 1, 1, 1)
		rock := fluid.NewUniformProperties(27, 2, 0.25)
		sp := NewSinglePhase(g, rock, bctype)
		K, err := sp.UpscalePerm()
		assert.NoError(t, err)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				expected := 0.0
				if i == j {
					expected = 2.0
				}
				assert.True(t, near(K.At(i, j), expected, 1.e-6))
			}
		}
	}
	// A fixed mobility field scales the effective tensor linearly
	{
		g := grid.NewCartesian(2, 2, 2, 1, 1, 1)
		rock := fluid.NewUniformProperties(8, 2, 0.25)
		sp := NewSinglePhase(g, rock, bcond.PeriodicBoundary)
		K, err := sp.UpscaleEffectivePerm(fluid.NewFixedMobility(utils.ConstArray(8, 0.5)))
		assert.NoError(t, err)
		for i := 0; i < 3; i++ {
			assert.True(t, near(K.At(i, i), 1, 1.e-6))
		}
	}
	// Layered permeability: arithmetic mean along the layers, harmonic
	// across them
	{
		g := grid.NewCartesian(2, 1, 1, 1, 1, 1)
		perm := []float64{1, 3}
		poro := []float64{0.25, 0.25}
		rock := fluid.NewProperties(perm, poro)
		sp := NewSinglePhase(g, rock, bcond.PeriodicBoundary)
		K, err := sp.UpscalePerm()
		assert.NoError(t, err)
		assert.True(t, near(K.At(0, 0), 1.5, 1.e-6)) // harmonic: 2*1*3/(1+3)
		assert.True(t, near(K.At(1, 1), 2.0, 1.e-6)) // arithmetic: (1+3)/2
		assert.True(t, near(K.At(2, 2), 2.0, 1.e-6))
	}
}

func near(a, b, tol float64) (l bool) {
	if math.Abs(a-b) < tol {
		l = true
	}
	return
}
