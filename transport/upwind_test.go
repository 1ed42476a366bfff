package transport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/goupscale/bcond"
	"github.com/notargets/goupscale/fluid"
	"github.com/notargets/goupscale/grid"
	"github.com/notargets/goupscale/pressure"
	"github.com/notargets/goupscale/utils"
)

func solveColumn(t *testing.T, g *grid.Cartesian, rock *fluid.Properties, bc *bcond.Conditions, sat []float64) *pressure.Solution {
	var fs pressure.Solver
	fs.Init(g, rock, [3]float64{}, bc)
	sol, err := fs.Solve(rock, sat, bc, make([]float64, g.NumCells()), 1.e-12, 1000)
	assert.NoError(t, err)
	return sol
}

func TestUpwindTransport(t *testing.T) {
	// Water injected into a dry column: monotone front, bounded saturations
	{
		g := grid.NewCartesian(4, 1, 1, 1, 1, 1)
		rock := fluid.NewUniformProperties(4, 1, 0.25)
		rock.SetViscosities(1, 1)
		bc := bcond.SetupUpscalingConditions(g, bcond.FixedBoundary, 0, 1, 1)
		sat := make([]float64, 4)
		sol := solveColumn(t, g, rock, bc, sat)

		ts := NewSolver()
		ts.InitObj(g, rock, bc)
		ts.TransportSolve(sat, 0.125, [3]float64{}, sol)
		assert.True(t, sat[0] > 0)
		for c := 0; c < 4; c++ {
			assert.True(t, sat[c] >= 0 && sat[c] <= 1)
			if c > 0 {
				assert.True(t, sat[c] <= sat[c-1])
			}
		}
	}
	// Periodic column with uniform saturation stays uniform. The default
	// viscosity ratio puts the fractional flow derivative above two, so the
	// substep count must include it or the scheme blows up from rounding.
	{
		g := grid.NewCartesian(4, 1, 1, 1, 1, 1)
		rock := fluid.NewUniformProperties(4, 1, 0.25)
		bc := bcond.SetupUpscalingConditions(g, bcond.PeriodicBoundary, 0, 1, 0.4)
		sat := utils.ConstArray(4, 0.4)
		sol := solveColumn(t, g, rock, bc, sat)

		ts := NewSolver()
		ts.InitObj(g, rock, bc)
		ts.TransportSolve(sat, 1.0, [3]float64{}, sol)
		for c := 0; c < 4; c++ {
			assert.True(t, math.Abs(sat[c]-0.4) < 1.e-8)
		}
	}
	// The same under a strong viscosity contrast
	{
		g := grid.NewCartesian(4, 1, 1, 1, 1, 1)
		rock := fluid.NewUniformProperties(4, 1, 0.25)
		rock.SetViscosities(1.e-3, 1.e-2)
		bc := bcond.SetupUpscalingConditions(g, bcond.PeriodicBoundary, 0, 1, 0.4)
		sat := utils.ConstArray(4, 0.4)
		sol := solveColumn(t, g, rock, bc, sat)

		ts := NewSolver()
		ts.InitObj(g, rock, bc)
		ts.TransportSolve(sat, 1.0, [3]float64{}, sol)
		for c := 0; c < 4; c++ {
			assert.True(t, math.Abs(sat[c]-0.4) < 1.e-8)
		}
	}
	// Nonzero gravity is ignored: identical result to the zero gravity run
	{
		g := grid.NewCartesian(4, 1, 1, 1, 1, 1)
		rock := fluid.NewUniformProperties(4, 1, 0.25)
		bc := bcond.SetupUpscalingConditions(g, bcond.FixedBoundary, 0, 1, 1)
		satA := make([]float64, 4)
		satB := make([]float64, 4)
		sol := solveColumn(t, g, rock, bc, satA)

		ts := NewSolver()
		ts.InitObj(g, rock, bc)
		ts.TransportSolve(satA, 0.125, [3]float64{}, sol)
		ts.TransportSolve(satB, 0.125, [3]float64{0, 0, -9.81}, sol)
		for c := 0; c < 4; c++ {
			assert.Equal(t, satA[c], satB[c])
		}
	}
	// Water volume balance over one step for the injection column
	{
		g := grid.NewCartesian(4, 1, 1, 1, 1, 1)
		rock := fluid.NewUniformProperties(4, 1, 0.25)
		rock.SetViscosities(1, 1)
		bc := bcond.SetupUpscalingConditions(g, bcond.FixedBoundary, 0, 1, 1)
		sat := make([]float64, 4)
		sol := solveColumn(t, g, rock, bc, sat)

		// with s = 0 everywhere, no water leaves: the stored change equals
		// the influx integrated over the step as long as the outlet stays dry
		ts := NewSolver()
		ts.InitObj(g, rock, bc)
		stepsize := 0.01
		ts.TransportSolve(sat, stepsize, [3]float64{}, sol)
		var stored float64
		for c := 0; c < 4; c++ {
			stored += sat[c] * g.CellVolume(c) * rock.Porosity(c)
		}
		influx := -sol.Outflux(g.BoundaryFaceID(0, 0, 0)) // inflow is negative outflux
		if sat[3] == 0 {
			assert.True(t, math.Abs(stored-influx*stepsize) < 1.e-12)
		}
	}
}
