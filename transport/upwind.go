package transport

import (
	"fmt"
	"math"

	"github.com/notargets/goupscale/bcond"
	"github.com/notargets/goupscale/fluid"
	"github.com/notargets/goupscale/grid"
)

// Solver advances the water saturation field with an explicit single point
// upwind scheme. One TransportSolve call covers the requested step size using
// CFL limited inner substeps.
type Solver struct {
	g     *grid.Cartesian
	props *fluid.Properties
	bc    *bcond.Conditions

	// CFLFactor scales the stability limited substep below the Courant limit.
	CFLFactor float64
}

func NewSolver() *Solver {
	return &Solver{CFLFactor: 0.5}
}

// InitObj binds the per-call state: grid, properties and the current
// boundary conditions.
func (ts *Solver) InitObj(g *grid.Cartesian, props *fluid.Properties, bc *bcond.Conditions) {
	ts.g = g
	ts.props = props
	ts.bc = bc
	if ts.CFLFactor <= 0 {
		ts.CFLFactor = 0.5
	}
}

// TransportSolve advances sat in place by stepsize (seconds) using the face
// fluxes of sol. Gravity is not supported and is ignored; the driver warns.
func (ts *Solver) TransportSolve(sat []float64, stepsize float64, gravity [3]float64, sol FlowSolution) {
	var (
		g = ts.g
		n = g.NumCells()
	)
	poreVol := func(c int) float64 {
		return g.CellVolume(c) * ts.props.Porosity(c)
	}

	// Stability limit: the saturation wave speed is the flux scaled by the
	// fractional flow derivative, so per cell
	// dt <= CFLFactor * poreVolume / (totalOutflux * max|df/ds|).
	maxRate := 0.0
	for c := 0; c < n; c++ {
		pv := poreVol(c)
		if pv <= 0 {
			continue
		}
		var out float64
		for axis := 0; axis < 3; axis++ {
			for side := 0; side < 2; side++ {
				if q := sol.CellFlux(c, axis, side); q > 0 {
					out += q
				}
			}
		}
		if rate := out / pv; rate > maxRate {
			maxRate = rate
		}
	}
	maxRate *= ts.props.MaxFractionalFlowDerivative()
	nsub := 1
	if maxRate > 0 {
		nsub = int(math.Ceil(stepsize * maxRate / ts.CFLFactor))
		if nsub < 1 {
			nsub = 1
		}
	}
	dt := stepsize / float64(nsub)

	fw := make([]float64, n)
	next := make([]float64, n)
	for sub := 0; sub < nsub; sub++ {
		for c := 0; c < n; c++ {
			fw[c] = ts.props.FractionalFlow(c, sat[c])
		}
		for c := 0; c < n; c++ {
			pv := poreVol(c)
			if pv <= 0 {
				next[c] = sat[c]
				continue
			}
			var div float64
			for axis := 0; axis < 3; axis++ {
				for side := 0; side < 2; side++ {
					q := sol.CellFlux(c, axis, side)
					if q >= 0 {
						// outflow, upwind on this cell
						div += q * fw[c]
						continue
					}
					if nb, ok := g.Neighbor(c, axis, side); ok {
						div += q * fw[nb]
						continue
					}
					div += q * ts.boundaryFracFlow(c, axis, side, fw)
				}
			}
			s := sat[c] - dt*div/pv
			if s < 0 {
				s = 0
			} else if s > 1 {
				s = 1
			}
			next[c] = s
		}
		copy(sat, next)
	}
}

// boundaryFracFlow is the upwind fractional flow entering through a boundary
// face: the fixed boundary saturation for a Dirichlet face, the partner
// cell's state for a periodic face.
func (ts *Solver) boundaryFracFlow(c, axis, side int, fw []float64) float64 {
	var (
		g   = ts.g
		bid = g.BoundaryFaceID(c, axis, side)
		sc  = ts.bc.SatAt(bid)
	)
	switch sc.Type {
	case bcond.Dirichlet:
		return ts.props.FractionalFlow(c, sc.Saturation)
	case bcond.Periodic:
		if sc.SaturationDifference != 0 {
			panic(fmt.Errorf("periodic face %d has nonzero saturation difference %g", bid, sc.SaturationDifference))
		}
		return fw[g.WrapNeighbor(c, axis, side)]
	}
	panic(fmt.Errorf("boundary face %d is neither Dirichlet nor Periodic (%v)", bid, sc.Type))
}

// FlowSolution is the flux view the transport solver needs from a pressure
// solution.
type FlowSolution interface {
	CellFlux(c, axis, side int) float64
}
