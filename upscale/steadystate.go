package upscale

import (
	"fmt"
	"math"

	"github.com/notargets/goupscale/bcond"
	"github.com/notargets/goupscale/fluid"
	"github.com/notargets/goupscale/grid"
	"github.com/notargets/goupscale/output"
	"github.com/notargets/goupscale/pressure"
	"github.com/notargets/goupscale/transport"
	"github.com/notargets/goupscale/utils"
)

// Day converts the configured step size (days) to the internal time unit.
const Day = 86400.0 // seconds

// SteadyState drives a two-phase fine grid simulation toward steady state
// under a fixed pressure drop in one coordinate direction and derives the
// anisotropic upscaled relative permeability tensors from the result.
type SteadyState struct {
	*SinglePhase

	OutputVTK        bool
	PrintInOutFlows  bool
	SimulationSteps  int
	Stepsize         float64 // seconds
	RelPermThreshold float64
	Gravity          [3]float64

	flow            pressure.Solver
	trans           *transport.Solver
	bcond           *bcond.Conditions
	flowInitialized bool
	lastSaturations [3][]float64
	runCount        int
}

func NewSteadyState(g *grid.Cartesian, rock *fluid.Properties, bctype bcond.BCType) (ss *SteadyState) {
	ss = &SteadyState{
		SinglePhase:      NewSinglePhase(g, rock, bctype),
		SimulationSteps:  10,
		Stepsize:         0.1 * Day,
		RelPermThreshold: 1.0e-4,
		trans:            transport.NewSolver(),
	}
	return
}

// UpscaleSteadyState runs the relaxation for one flow direction and returns
// the relative permeability tensors of the two phases. upscaledPerm is the
// absolute permeability tensor of the same block, used only to divide out
// absolute permeability from the effective phase mobilities.
func (ss *SteadyState) UpscaleSteadyState(flowDirection int, initialSaturation []float64,
	boundarySaturation, pressureDrop float64, upscaledPerm utils.Matrix) (kr1, kr2 utils.Matrix, err error) {
	ss.runCount++
	var (
		g        = ss.G
		rock     = ss.Rock
		numCells = g.NumCells()
		src      = make([]float64, numCells) // no source or sink
	)
	if norm3(ss.Gravity) > 0 {
		fmt.Printf("Warning: Gravity not yet handled by flow solver.\n")
	}

	saturation := append([]float64(nil), initialSaturation...)

	ss.bcond = bcond.SetupUpscalingConditions(g, ss.BCType, flowDirection, pressureDrop, boundarySaturation)

	// The flow solver is assembled once per upscaler instance; later
	// directions reuse the structure with fresh boundary conditions.
	if !ss.flowInitialized {
		ss.flow.Init(g, rock, ss.Gravity, ss.bcond)
		ss.flowInitialized = true
	}
	ss.trans.InitObj(g, rock, ss.bcond)

	sol, err := ss.flow.Solve(rock, saturation, ss.bcond, src, ss.ResidualTolerance, ss.MaxLinIter)
	if err != nil {
		return
	}

	// Run till steady state: a fixed number of pressure and transport steps.
	for iter := 0; iter < ss.SimulationSteps; iter++ {
		ss.trans.TransportSolve(saturation, ss.Stepsize, ss.Gravity, sol)
		sol, err = ss.flow.Solve(rock, saturation, ss.bcond, src, ss.ResidualTolerance, ss.MaxLinIter)
		if err != nil {
			return
		}
		if ss.PrintInOutFlows {
			var wIO, oIO [2]float64
			wIO, oIO, err = ss.ComputeInOutFlows(sol, saturation)
			if err != nil {
				return
			}
			fmt.Printf("Pressure step %d\nWater flow [in] %g  [out] %g\nOil flow   [in] %g  [out] %g\n",
				iter, wIO[0], wIO[1], oIO[0], oIO[1])
		}
		if ss.OutputVTK {
			name := fmt.Sprintf("output-steadystate-%d-%d-%d", ss.runCount, flowDirection, iter)
			if err = output.WriteVTK(name, g, ss.cellFields(sol, saturation)); err != nil {
				return
			}
		}
	}

	// Compute phase mobilities, floored to keep the effective permeability
	// solves well conditioned.
	var (
		mob1       = make([]float64, numCells)
		mob2       = make([]float64, numCells)
		threshold1 = ss.RelPermThreshold / rock.ViscosityFirstPhase()
		threshold2 = ss.RelPermThreshold / rock.ViscositySecondPhase()
	)
	for c := 0; c < numCells; c++ {
		mob1[c] = math.Max(rock.MobilityFirstPhase(c, saturation[c]), threshold1)
		mob2[c] = math.Max(rock.MobilitySecondPhase(c, saturation[c]), threshold2)
	}

	// Upscaled effective permeability of each phase.
	effK1, err := ss.UpscaleEffectivePerm(fluid.NewFixedMobility(mob1))
	if err != nil {
		return
	}
	effK2, err := ss.UpscaleEffectivePerm(fluid.NewFixedMobility(mob2))
	if err != nil {
		return
	}

	// Keep the steady state saturation field for later queries.
	ss.lastSaturations[flowDirection] = saturation

	// effK_i = lambda_i K  =>  lambda_i = effK_i inv(K),  k_r_i = lambda_i mu_i.
	invK, err := upscaledPerm.Inverse()
	if err != nil {
		return
	}
	kr1 = effK1.Mul(invK).Scale(rock.ViscosityFirstPhase())
	kr2 = effK2.Mul(invK).Scale(rock.ViscositySecondPhase())
	return
}

// ComputeInOutFlows accumulates the per-phase inflow and outflow totals
// across the block boundary. Two passes: outflow faces first, recording the
// fractional flow of every periodic face, then inflow faces, which look up
// their periodic partner's recorded value.
func (ss *SteadyState) ComputeInOutFlows(sol *pressure.Solution, saturations []float64) (waterInOut, oilInOut [2]float64, err error) {
	var (
		g    = ss.G
		rock = ss.Rock

		side1Flux, side2Flux       float64
		side1FluxOil, side2FluxOil float64
	)
	fracFlowByBid := make(map[int]float64)
	for pass := 0; pass < 2; pass++ {
		for _, f := range g.BoundaryFaces() {
			flux := sol.Outflux(f.Bid)
			sc := ss.bcond.SatAt(f.Bid)
			if flux < 0 && pass == 1 {
				// Inflow face.
				var fracFlow float64
				switch sc.Type {
				case bcond.Periodic:
					if sc.SaturationDifference != 0 {
						panic(fmt.Errorf("periodic face %d has nonzero saturation difference %g", f.Bid, sc.SaturationDifference))
					}
					partner, ok := ss.bcond.PeriodicPartner(f.Bid)
					if !ok {
						err = fmt.Errorf("no periodic partner registered for boundary face %d", f.Bid)
						return
					}
					fracFlow, ok = fracFlowByBid[partner]
					if !ok {
						err = fmt.Errorf("could not find periodic partner fractional flow, face bid = %d and partner bid = %d", f.Bid, partner)
						return
					}
				case bcond.Dirichlet:
					fracFlow = rock.FractionalFlow(f.Cell, sc.Saturation)
				default:
					panic(fmt.Errorf("boundary face %d is neither Dirichlet nor Periodic (%v)", f.Bid, sc.Type))
				}
				side1Flux += flux * fracFlow
				side1FluxOil += flux * (1 - fracFlow)
			} else if flux >= 0 && pass == 0 {
				// Outflow face.
				fracFlow := rock.FractionalFlow(f.Cell, saturations[f.Cell])
				if sc.Type == bcond.Periodic {
					fracFlowByBid[f.Bid] = fracFlow
				}
				side2Flux += flux * fracFlow
				side2FluxOil += flux * (1 - fracFlow)
			}
		}
	}
	waterInOut = [2]float64{side1Flux, side2Flux}
	oilInOut = [2]float64{side1FluxOil, side2FluxOil}
	return
}

// LastSaturations returns the stored steady state saturation fields, one per
// flow direction.
func (ss *SteadyState) LastSaturations() [3][]float64 { return ss.lastSaturations }

// LastSaturationUpscaled returns the pore volume weighted average of the
// stored saturation field for flowDirection.
func (ss *SteadyState) LastSaturationUpscaled(flowDirection int) (avg float64, err error) {
	var (
		g   = ss.G
		sat = ss.lastSaturations[flowDirection]
	)
	if sat == nil {
		err = fmt.Errorf("no saturation field stored for flow direction %d", flowDirection)
		return
	}
	var poreVol, satVol float64
	for c := 0; c < g.NumCells(); c++ {
		cellPoreVol := g.CellVolume(c) * ss.Rock.Porosity(c)
		poreVol += cellPoreVol
		satVol += cellPoreVol * sat[c]
	}
	if poreVol == 0 {
		err = fmt.Errorf("zero total pore volume")
		return
	}
	avg = satVol / poreVol
	return
}

func (ss *SteadyState) cellFields(sol *pressure.Solution, saturation []float64) (fields output.CellFields) {
	var (
		g    = ss.G
		rock = ss.Rock
		n    = g.NumCells()
	)
	fields = output.CellFields{
		Velocity:          make([][3]float64, n),
		VelocityPhase1:    make([][3]float64, n),
		VelocityPhase2:    make([][3]float64, n),
		Saturation:        saturation,
		Pressure:          make([]float64, n),
		CapillaryPressure: make([]float64, n),
	}
	for c := 0; c < n; c++ {
		v := sol.CellVelocity(c)
		f := rock.FractionalFlow(c, saturation[c])
		fields.Velocity[c] = v
		for d := 0; d < 3; d++ {
			fields.VelocityPhase1[c][d] = f * v[d]
			fields.VelocityPhase2[c][d] = (1 - f) * v[d]
		}
		fields.Pressure[c] = sol.Pressure(c)
		fields.CapillaryPressure[c] = rock.CapillaryPressure(c, saturation[c])
	}
	return
}

func norm3(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}
