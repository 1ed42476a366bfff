package bcond

import "fmt"

// CondType tags the condition applied on a single boundary face.
type CondType int

const (
	Dirichlet CondType = iota
	Neumann
	Periodic
)

func (t CondType) String() string {
	switch t {
	case Dirichlet:
		return "Dirichlet"
	case Neumann:
		return "Neumann"
	case Periodic:
		return "Periodic"
	}
	return fmt.Sprintf("CondType(%d)", int(t))
}

// BCType selects the overall boundary condition family used for upscaling.
type BCType int

const (
	FixedBoundary    BCType = iota // pressure fixed at the ends, sealed laterals
	PeriodicBoundary               // all faces periodic
)

// FlowCond is the pressure condition on one boundary face. For a periodic
// face, PressureDifference is the pressure of the image neighbor beyond the
// face minus the pressure of the partner cell.
type FlowCond struct {
	Type               CondType
	Pressure           float64
	PressureDifference float64
	Partner            int
}

// SatCond is the saturation condition on one boundary face. A periodic pair
// always carries zero saturation difference.
type SatCond struct {
	Type                 CondType
	Saturation           float64
	SaturationDifference float64
	Partner              int
}

// Conditions holds the per-face flow and saturation conditions, indexed by
// boundary id, plus the symmetric periodic partner relation.
type Conditions struct {
	flow    []FlowCond
	sat     []SatCond
	partner []int
}

func NewConditions(numFaces int) (bc *Conditions) {
	bc = &Conditions{
		flow:    make([]FlowCond, numFaces),
		sat:     make([]SatCond, numFaces),
		partner: make([]int, numFaces),
	}
	for i := range bc.partner {
		bc.partner[i] = -1
	}
	return
}

func (bc *Conditions) NumFaces() int { return len(bc.flow) }

func (bc *Conditions) FlowAt(bid int) FlowCond { return bc.flow[bid] }
func (bc *Conditions) SatAt(bid int) SatCond   { return bc.sat[bid] }

func (bc *Conditions) SetFlow(bid int, fc FlowCond) { bc.flow[bid] = fc }
func (bc *Conditions) SetSat(bid int, sc SatCond)   { bc.sat[bid] = sc }

// SetPeriodicPair registers b1 and b2 as periodic partners of each other.
func (bc *Conditions) SetPeriodicPair(b1, b2 int) {
	bc.partner[b1] = b2
	bc.partner[b2] = b1
}

// PeriodicPartner returns the partner boundary id of a periodic face,
// ok = false when none was registered.
func (bc *Conditions) PeriodicPartner(bid int) (partner int, ok bool) {
	partner = bc.partner[bid]
	ok = partner >= 0
	return
}
