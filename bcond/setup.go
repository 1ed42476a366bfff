package bcond

import (
	"fmt"

	"github.com/notargets/goupscale/grid"
)

// SetupUpscalingConditions builds the boundary conditions driving flow in
// flowDir under the given pressure drop.
//
// FixedBoundary: Dirichlet pressure +pdrop/2 on the low face and -pdrop/2 on
// the high face normal to flowDir, no-flow on the lateral faces, saturation
// fixed at bsat on every non-periodic face.
//
// PeriodicBoundary: every face paired with its geometric opposite; the
// pressure jump across the block is pdrop along flowDir and zero along the
// other axes; saturation difference is zero on every pair.
func SetupUpscalingConditions(g *grid.Cartesian, bctype BCType, flowDir int, pdrop, bsat float64) (bc *Conditions) {
	if flowDir < 0 || flowDir > 2 {
		panic(fmt.Errorf("invalid flow direction %d", flowDir))
	}
	bc = NewConditions(g.NumBoundaryFaces())
	switch bctype {
	case FixedBoundary:
		for _, f := range g.BoundaryFaces() {
			if f.Axis == flowDir {
				press := 0.5 * pdrop
				if f.Side == 1 {
					press = -0.5 * pdrop
				}
				bc.SetFlow(f.Bid, FlowCond{Type: Dirichlet, Pressure: press})
			} else {
				bc.SetFlow(f.Bid, FlowCond{Type: Neumann})
			}
			bc.SetSat(f.Bid, SatCond{Type: Dirichlet, Saturation: bsat})
		}
	case PeriodicBoundary:
		for _, f := range g.BoundaryFaces() {
			partner := g.OppositeFace(f.Bid)
			var dp float64
			if f.Axis == flowDir {
				// The image neighbor beyond the low face sits one period
				// upstream, at higher pressure.
				dp = pdrop
				if f.Side == 1 {
					dp = -pdrop
				}
			}
			bc.SetFlow(f.Bid, FlowCond{Type: Periodic, PressureDifference: dp, Partner: partner})
			bc.SetSat(f.Bid, SatCond{Type: Periodic, Partner: partner})
			bc.SetPeriodicPair(f.Bid, partner)
		}
	default:
		panic(fmt.Errorf("unknown boundary condition type %d", int(bctype)))
	}
	return
}
