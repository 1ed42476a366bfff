package pressure

import (
	"github.com/notargets/goupscale/bcond"
	"github.com/notargets/goupscale/grid"
)

// Solution is the result of one pressure solve: cell pressures, plane indexed
// face fluxes per axis (positive along the axis), and the signed outflux of
// every boundary face (positive = out of the adjacent cell).
type Solution struct {
	g   *grid.Cartesian
	bc  *bcond.Conditions
	p   []float64
	f   [3][]float64
	out []float64
}

func newSolution(g *grid.Cartesian, bc *bcond.Conditions, p []float64, mobK func(int) float64) (sol *Solution) {
	sol = &Solution{g: g, bc: bc, p: p}
	sol.out = make([]float64, g.NumBoundaryFaces())

	// Interior face fluxes, F = T (p_minus - p_plus).
	for axis := 0; axis < 3; axis++ {
		var (
			nd    = g.Cells(axis)
			delta = g.Delta(axis)
			area  = g.FaceArea(axis)
		)
		sol.f[axis] = make([]float64, (nd+1)*g.TransverseCount(axis))
		for c := 0; c < g.NumCells(); c++ {
			l := g.AxisCoord(c, axis)
			if l == nd-1 {
				continue
			}
			c2, _ := g.Neighbor(c, axis, 1)
			T := area / delta * harmonic(mobK(c), mobK(c2))
			t := g.TransverseIndex(c, axis)
			sol.f[axis][t*(nd+1)+l+1] = T * (p[c] - p[c2])
		}
	}

	// Boundary and wrap face fluxes.
	faces := g.BoundaryFaces()
	for _, fa := range faces {
		var (
			fc    = bc.FlowAt(fa.Bid)
			nd    = g.Cells(fa.Axis)
			delta = g.Delta(fa.Axis)
			area  = g.FaceArea(fa.Axis)
			t     = g.TransverseIndex(fa.Cell, fa.Axis)
			flux  float64 // positive along the axis
		)
		switch fc.Type {
		case bcond.Dirichlet:
			Th := 2 * area * mobK(fa.Cell) / delta
			if fa.Side == 0 {
				flux = Th * (fc.Pressure - p[fa.Cell])
			} else {
				flux = Th * (p[fa.Cell] - fc.Pressure)
			}
		case bcond.Periodic:
			pc := faces[fc.Partner].Cell
			T := area / delta * harmonic(mobK(fa.Cell), mobK(pc))
			image := p[pc] + fc.PressureDifference
			if fa.Side == 0 {
				flux = T * (image - p[fa.Cell])
			} else {
				flux = T * (p[fa.Cell] - image)
			}
		case bcond.Neumann:
			// sealed, flux stays zero
		}
		sol.f[fa.Axis][t*(nd+1)+fa.Side*nd] = flux
		if fa.Side == 0 {
			sol.out[fa.Bid] = -flux
		} else {
			sol.out[fa.Bid] = flux
		}
	}
	return
}

// Pressure returns the pressure of cell c.
func (s *Solution) Pressure(c int) float64 { return s.p[c] }

// Outflux returns the signed flux of boundary face bid, positive out of the
// adjacent cell.
func (s *Solution) Outflux(bid int) float64 { return s.out[bid] }

// CellFlux returns the signed outflux of cell c through its (axis, side)
// face, positive out of the cell.
func (s *Solution) CellFlux(c, axis, side int) float64 {
	var (
		g   = s.g
		nd  = g.Cells(axis)
		l   = g.AxisCoord(c, axis)
		t   = g.TransverseIndex(c, axis)
		idx = t*(nd+1) + l + side
	)
	if side == 0 {
		return -s.f[axis][idx]
	}
	return s.f[axis][idx]
}

// CellVelocity estimates the Darcy velocity at cell c from the fluxes of its
// opposing face pairs.
func (s *Solution) CellVelocity(c int) (v [3]float64) {
	var (
		g = s.g
	)
	for axis := 0; axis < 3; axis++ {
		var (
			nd  = g.Cells(axis)
			l   = g.AxisCoord(c, axis)
			t   = g.TransverseIndex(c, axis)
			idx = t * (nd + 1)
		)
		v[axis] = 0.5 * (s.f[axis][idx+l] + s.f[axis][idx+l+1]) / g.FaceArea(axis)
	}
	return
}

// AverageVelocity is the volume averaged Darcy velocity over the block,
// computed as a flux weighted sum over face planes. Each face contributes
// with the distance it controls: a full cell width for interior and wrap
// faces, half a width for Dirichlet boundary faces.
func (s *Solution) AverageVelocity() (v [3]float64) {
	var (
		g    = s.g
		vTot = g.Lx * g.Ly * g.Lz
	)
	for axis := 0; axis < 3; axis++ {
		var (
			nd    = g.Cells(axis)
			delta = g.Delta(axis)
			sum   float64
		)
		for t := 0; t < g.TransverseCount(axis); t++ {
			for l := 0; l <= nd; l++ {
				w := delta
				if l == 0 || l == nd {
					side := 0
					if l == nd {
						side = 1
					}
					fc := s.bc.FlowAt(g.BoundaryID(axis, side, t))
					switch fc.Type {
					case bcond.Dirichlet:
						w = 0.5 * delta
					case bcond.Periodic:
						if l == nd {
							continue // the wrap face is counted once, at l = 0
						}
					case bcond.Neumann:
						continue
					}
				}
				sum += s.f[axis][t*(nd+1)+l] * w
			}
		}
		v[axis] = sum / vTot
	}
	return
}
