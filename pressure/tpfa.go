package pressure

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"

	"github.com/notargets/goupscale/bcond"
	"github.com/notargets/goupscale/fluid"
	"github.com/notargets/goupscale/grid"
)

// Fluid supplies the total mobility entering the face transmissibilities.
// Implemented by the reservoir property model and by fluid.FixedMobility.
type Fluid interface {
	TotalMobility(cell int, sat float64) float64
}

// Solver is an incompressible two-point flux (TPFA) pressure solver on the
// Cartesian block grid. Init binds the grid and rock model once; Solve
// re-assembles the saturation dependent transmissibilities and solves the
// linear system for cell pressures and face fluxes.
type Solver struct {
	g           *grid.Cartesian
	rock        *fluid.Properties
	initialized bool
}

// Init binds the grid and rock model. Gravity is not supported and is
// ignored; the driver warns.
func (fs *Solver) Init(g *grid.Cartesian, rock *fluid.Properties, gravity [3]float64, bc *bcond.Conditions) {
	_ = bc // conditions are supplied per solve
	fs.g = g
	fs.rock = rock
	fs.initialized = true
}

func (fs *Solver) Initialized() bool { return fs.initialized }

// Solve assembles and solves the pressure system for the given fluid state.
// src is the per-cell source term (volume rate, positive = injection).
func (fs *Solver) Solve(fl Fluid, sat []float64, bc *bcond.Conditions, src []float64,
	tol float64, maxIter int) (sol *Solution, err error) {
	if !fs.initialized {
		err = fmt.Errorf("pressure solver used before Init")
		return
	}
	var (
		g = fs.g
		n = g.NumCells()
	)
	mobK := func(c int) float64 {
		return fl.TotalMobility(c, sat[c]) * fs.rock.Permeability(c)
	}
	A := sparse.NewDOK(n, n)
	b := make([]float64, n)
	for c := range src {
		b[c] = src[c]
	}
	// Outflux from c1 toward a neighbor at pressure p(c2) + jump.
	addConn := func(c1, c2 int, trans, jump float64) {
		A.Set(c1, c1, A.At(c1, c1)+trans)
		A.Set(c1, c2, A.At(c1, c2)-trans)
		b[c1] += trans * jump
	}

	// Interior faces.
	for axis := 0; axis < 3; axis++ {
		var (
			nd    = g.Cells(axis)
			delta = g.Delta(axis)
			area  = g.FaceArea(axis)
		)
		for c := 0; c < n; c++ {
			if g.AxisCoord(c, axis) == nd-1 {
				continue
			}
			c2, _ := g.Neighbor(c, axis, 1)
			T := area / delta * harmonic(mobK(c), mobK(c2))
			addConn(c, c2, T, 0)
			addConn(c2, c, T, 0)
		}
	}

	// Boundary faces.
	hasDirichlet := false
	faces := g.BoundaryFaces()
	for _, f := range faces {
		var (
			fc    = bc.FlowAt(f.Bid)
			delta = g.Delta(f.Axis)
			area  = g.FaceArea(f.Axis)
		)
		switch fc.Type {
		case bcond.Dirichlet:
			Th := 2 * area * mobK(f.Cell) / delta
			A.Set(f.Cell, f.Cell, A.At(f.Cell, f.Cell)+Th)
			b[f.Cell] += Th * fc.Pressure
			hasDirichlet = true
		case bcond.Neumann:
			// sealed face
		case bcond.Periodic:
			if f.Side != 0 {
				continue // each pair is assembled from its low face
			}
			pc := faces[fc.Partner].Cell
			T := area / delta * harmonic(mobK(f.Cell), mobK(pc))
			addConn(f.Cell, pc, T, fc.PressureDifference)
			addConn(pc, f.Cell, T, bc.FlowAt(fc.Partner).PressureDifference)
		default:
			panic(fmt.Errorf("boundary face %d has unsupported flow condition %v", f.Bid, fc.Type))
		}
	}

	// Without a Dirichlet face the system has a constant nullspace; anchor
	// the pressure level at cell 0.
	if !hasDirichlet {
		var dsum float64
		for c := 0; c < n; c++ {
			dsum += math.Abs(A.At(c, c))
		}
		pin := dsum / float64(n)
		if pin == 0 {
			pin = 1
		}
		A.Set(0, 0, A.At(0, 0)+pin)
	}

	p, err := cgSolve(A.ToCSR(), b, tol, maxIter)
	if err != nil {
		return
	}
	sol = newSolution(g, bc, p, mobK)
	return
}

func harmonic(a, b float64) float64 {
	if a+b == 0 {
		return 0
	}
	return 2 * a * b / (a + b)
}

// cgSolve runs a Jacobi preconditioned conjugate gradient iteration on the
// assembled SPD system.
func cgSolve(A *sparse.CSR, b []float64, tol float64, maxIter int) (x []float64, err error) {
	var (
		n = len(b)
	)
	x = make([]float64, n)
	bnorm := math.Sqrt(dot(b, b))
	if bnorm == 0 {
		return
	}
	diag := make([]float64, n)
	for i := 0; i < n; i++ {
		d := A.At(i, i)
		if d == 0 {
			d = 1
		}
		diag[i] = d
	}
	r := append([]float64(nil), b...)
	z := make([]float64, n)
	for i := range z {
		z[i] = r[i] / diag[i]
	}
	p := append([]float64(nil), z...)
	Ap := make([]float64, n)
	rz := dot(r, z)
	for iter := 0; iter < maxIter; iter++ {
		for i := range Ap {
			Ap[i] = 0
		}
		A.DoNonZero(func(i, j int, v float64) {
			Ap[i] += v * p[j]
		})
		pAp := dot(p, Ap)
		if pAp == 0 {
			break
		}
		alpha := rz / pAp
		for i := range x {
			x[i] += alpha * p[i]
			r[i] -= alpha * Ap[i]
		}
		if math.Sqrt(dot(r, r)) <= tol*bnorm {
			return
		}
		for i := range z {
			z[i] = r[i] / diag[i]
		}
		rzNew := dot(r, z)
		beta := rzNew / rz
		rz = rzNew
		for i := range p {
			p[i] = z[i] + beta*p[i]
		}
	}
	err = fmt.Errorf("pressure solve did not converge within %d iterations", maxIter)
	return
}

func dot(a, b []float64) (s float64) {
	for i := range a {
		s += a[i] * b[i]
	}
	return
}
