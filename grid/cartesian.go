package grid

import "fmt"

// Face is one boundary face of the block. Boundary ids are dense, assigned
// axis by axis: all low-side faces of an axis first, then all high-side faces,
// each block in the same transverse ordering. OppositeFace relies on this.
type Face struct {
	Bid  int
	Cell int // adjacent interior cell
	Axis int // 0, 1 or 2
	Side int // 0 = low side, 1 = high side
	Area float64
}

// Cartesian is a uniform hexahedral grid over a rectangular block.
// Cell c at (i,j,k) has linear index i + Nx*(j + Ny*k).
type Cartesian struct {
	Nx, Ny, Nz int
	Lx, Ly, Lz float64
	faces      []Face
}

func NewCartesian(nx, ny, nz int, lx, ly, lz float64) (g *Cartesian) {
	if nx < 1 || ny < 1 || nz < 1 || lx <= 0 || ly <= 0 || lz <= 0 {
		panic(fmt.Errorf("invalid grid: %dx%dx%d cells, %gx%gx%g extent", nx, ny, nz, lx, ly, lz))
	}
	g = &Cartesian{Nx: nx, Ny: ny, Nz: nz, Lx: lx, Ly: ly, Lz: lz}
	g.buildBoundaryFaces()
	return
}

func (g *Cartesian) NumCells() int { return g.Nx * g.Ny * g.Nz }

// Cells returns the cell count along axis.
func (g *Cartesian) Cells(axis int) int {
	return [3]int{g.Nx, g.Ny, g.Nz}[axis]
}

// Length returns the block extent along axis.
func (g *Cartesian) Length(axis int) float64 {
	return [3]float64{g.Lx, g.Ly, g.Lz}[axis]
}

// Delta returns the cell size along axis.
func (g *Cartesian) Delta(axis int) float64 {
	return g.Length(axis) / float64(g.Cells(axis))
}

// FaceArea returns the area of a cell face normal to axis.
func (g *Cartesian) FaceArea(axis int) float64 {
	switch axis {
	case 0:
		return g.Delta(1) * g.Delta(2)
	case 1:
		return g.Delta(0) * g.Delta(2)
	}
	return g.Delta(0) * g.Delta(1)
}

func (g *Cartesian) CellVolume(c int) float64 {
	return g.Delta(0) * g.Delta(1) * g.Delta(2)
}

func (g *Cartesian) CellIndex(i, j, k int) int {
	return i + g.Nx*(j+g.Ny*k)
}

func (g *Cartesian) CellCoords(c int) (i, j, k int) {
	i = c % g.Nx
	j = (c / g.Nx) % g.Ny
	k = c / (g.Nx * g.Ny)
	return
}

// AxisCoord returns the (i, j or k) coordinate of cell c along axis.
func (g *Cartesian) AxisCoord(c, axis int) int {
	i, j, k := g.CellCoords(c)
	return [3]int{i, j, k}[axis]
}

// TransverseCount returns the number of cells in a plane normal to axis.
func (g *Cartesian) TransverseCount(axis int) int {
	switch axis {
	case 0:
		return g.Ny * g.Nz
	case 1:
		return g.Nx * g.Nz
	}
	return g.Nx * g.Ny
}

// TransverseIndex returns the position of cell c within its plane normal to
// axis, consistent with the boundary face ordering.
func (g *Cartesian) TransverseIndex(c, axis int) int {
	i, j, k := g.CellCoords(c)
	switch axis {
	case 0:
		return j + g.Ny*k
	case 1:
		return i + g.Nx*k
	}
	return i + g.Nx*j
}

// Neighbor returns the interior neighbor of cell c across the (axis, side)
// face, ok = false when the face lies on the block boundary.
func (g *Cartesian) Neighbor(c, axis, side int) (nb int, ok bool) {
	var (
		l  = g.AxisCoord(c, axis)
		nd = g.Cells(axis)
	)
	if side == 0 {
		if l == 0 {
			return
		}
		return c - g.stride(axis), true
	}
	if l == nd-1 {
		return
	}
	return c + g.stride(axis), true
}

// WrapNeighbor returns the periodic image neighbor across the (axis, side)
// face of a boundary cell: the cell on the opposite side of the block at the
// same transverse position.
func (g *Cartesian) WrapNeighbor(c, axis, side int) int {
	var (
		nd = g.Cells(axis)
	)
	if side == 0 {
		return c + (nd-1)*g.stride(axis)
	}
	return c - (nd-1)*g.stride(axis)
}

func (g *Cartesian) stride(axis int) int {
	switch axis {
	case 0:
		return 1
	case 1:
		return g.Nx
	}
	return g.Nx * g.Ny
}

func (g *Cartesian) BoundaryFaces() []Face { return g.faces }

func (g *Cartesian) NumBoundaryFaces() int { return len(g.faces) }

// BoundaryID computes the boundary id of the face on (axis, side) at
// transverse position t, without consulting the face list.
func (g *Cartesian) BoundaryID(axis, side, t int) int {
	bid := side*g.TransverseCount(axis) + t
	for a := 0; a < axis; a++ {
		bid += 2 * g.TransverseCount(a)
	}
	return bid
}

// BoundaryFaceID returns the boundary id of the (axis, side) face of cell c,
// which must lie on that boundary.
func (g *Cartesian) BoundaryFaceID(c, axis, side int) int {
	var (
		l  = g.AxisCoord(c, axis)
		nd = g.Cells(axis)
	)
	if (side == 0 && l != 0) || (side == 1 && l != nd-1) {
		panic(fmt.Errorf("cell %d has no boundary face on axis %d side %d", c, axis, side))
	}
	return g.BoundaryID(axis, side, g.TransverseIndex(c, axis))
}

// OppositeFace returns the boundary id of the geometrically opposing face:
// same axis, same transverse position, other side of the block.
func (g *Cartesian) OppositeFace(bid int) int {
	base := 0
	for axis := 0; axis < 3; axis++ {
		nt := g.TransverseCount(axis)
		if bid < base+2*nt {
			offset := bid - base
			if offset < nt {
				return bid + nt
			}
			return bid - nt
		}
		base += 2 * nt
	}
	panic(fmt.Errorf("boundary id %d out of range", bid))
}

func (g *Cartesian) buildBoundaryFaces() {
	bid := 0
	for axis := 0; axis < 3; axis++ {
		var (
			nt   = g.TransverseCount(axis)
			nd   = g.Cells(axis)
			area = g.FaceArea(axis)
		)
		for side := 0; side < 2; side++ {
			l := side * (nd - 1)
			for t := 0; t < nt; t++ {
				var c int
				switch axis {
				case 0:
					c = g.CellIndex(l, t%g.Ny, t/g.Ny)
				case 1:
					c = g.CellIndex(t%g.Nx, l, t/g.Nx)
				default:
					c = g.CellIndex(t%g.Nx, t/g.Nx, l)
				}
				g.faces = append(g.faces, Face{Bid: bid, Cell: c, Axis: axis, Side: side, Area: area})
				bid++
			}
		}
	}
}
