package upscale

import (
	"github.com/notargets/goupscale/bcond"
	"github.com/notargets/goupscale/fluid"
	"github.com/notargets/goupscale/grid"
	"github.com/notargets/goupscale/pressure"
	"github.com/notargets/goupscale/utils"
)

// SinglePhase computes the effective 3x3 permeability tensor of a block for
// a fixed per-cell mobility field: one pressure solve per coordinate
// direction under a unit pressure drop, tensor columns from the volume
// averaged Darcy velocity.
type SinglePhase struct {
	G      *grid.Cartesian
	Rock   *fluid.Properties
	BCType bcond.BCType

	ResidualTolerance float64
	MaxLinIter        int

	flow pressure.Solver
}

func NewSinglePhase(g *grid.Cartesian, rock *fluid.Properties, bctype bcond.BCType) (sp *SinglePhase) {
	sp = &SinglePhase{
		G:                 g,
		Rock:              rock,
		BCType:            bctype,
		ResidualTolerance: 1.e-10,
		MaxLinIter:        10000,
	}
	sp.flow.Init(g, rock, [3]float64{}, nil)
	return
}

// UpscalePerm returns the absolute (rock only) effective permeability tensor,
// i.e. the effective permeability at unit mobility.
func (sp *SinglePhase) UpscalePerm() (K utils.Matrix, err error) {
	unit := fluid.NewFixedMobility(utils.ConstArray(sp.G.NumCells(), 1))
	return sp.UpscaleEffectivePerm(unit)
}

// UpscaleEffectivePerm returns the effective mobility-permeability tensor for
// the given fluid model. Column d holds the average velocity response to a
// unit pressure gradient applied along direction d.
func (sp *SinglePhase) UpscaleEffectivePerm(fl pressure.Fluid) (K utils.Matrix, err error) {
	var (
		g     = sp.G
		n     = g.NumCells()
		pdrop = 1.0
		sat   = make([]float64, n)
		src   = make([]float64, n)
	)
	K = utils.NewMatrix(3, 3)
	for dd := 0; dd < 3; dd++ {
		bc := bcond.SetupUpscalingConditions(g, sp.BCType, dd, pdrop, 0)
		var sol *pressure.Solution
		sol, err = sp.flow.Solve(fl, sat, bc, src, sp.ResidualTolerance, sp.MaxLinIter)
		if err != nil {
			return
		}
		v := sol.AverageVelocity()
		// v = K grad(p), with |grad(p)| = pdrop / L_dd applied along dd.
		for i := 0; i < 3; i++ {
			K.Set(i, dd, v[i]*g.Length(dd)/pdrop)
		}
	}
	return
}
