package output

import (
	"bufio"
	"fmt"
	"os"

	"github.com/notargets/goupscale/grid"
)

// CellFields carries the per-cell fields exported each iteration of the
// steady state relaxation.
type CellFields struct {
	Velocity          [][3]float64
	VelocityPhase1    [][3]float64
	VelocityPhase2    [][3]float64
	Saturation        []float64
	Pressure          []float64
	CapillaryPressure []float64
}

// WriteVTK writes the fields as legacy ASCII VTK cell data on the block's
// rectilinear grid. The ".vtk" extension is appended to basename.
func WriteVTK(basename string, g *grid.Cartesian, fields CellFields) (err error) {
	fh, err := os.Create(basename + ".vtk")
	if err != nil {
		return
	}
	defer fh.Close()
	w := bufio.NewWriter(fh)
	defer w.Flush()

	fmt.Fprintf(w, "# vtk DataFile Version 2.0\n")
	fmt.Fprintf(w, "%s\n", basename)
	fmt.Fprintf(w, "ASCII\n")
	fmt.Fprintf(w, "DATASET RECTILINEAR_GRID\n")
	fmt.Fprintf(w, "DIMENSIONS %d %d %d\n", g.Nx+1, g.Ny+1, g.Nz+1)
	writeCoords(w, "X_COORDINATES", g.Nx, g.Delta(0))
	writeCoords(w, "Y_COORDINATES", g.Ny, g.Delta(1))
	writeCoords(w, "Z_COORDINATES", g.Nz, g.Delta(2))

	fmt.Fprintf(w, "CELL_DATA %d\n", g.NumCells())
	writeVectors(w, "velocity", fields.Velocity)
	writeVectors(w, "phase_velocity_water", fields.VelocityPhase1)
	writeVectors(w, "phase_velocity_oil", fields.VelocityPhase2)
	writeScalars(w, "saturation", fields.Saturation)
	writeScalars(w, "pressure", fields.Pressure)
	writeScalars(w, "capillary_pressure", fields.CapillaryPressure)
	return
}

func writeCoords(w *bufio.Writer, label string, n int, delta float64) {
	fmt.Fprintf(w, "%s %d double\n", label, n+1)
	for i := 0; i <= n; i++ {
		fmt.Fprintf(w, "%g ", float64(i)*delta)
	}
	fmt.Fprintf(w, "\n")
}

func writeVectors(w *bufio.Writer, name string, v [][3]float64) {
	if v == nil {
		return
	}
	fmt.Fprintf(w, "VECTORS %s double\n", name)
	for _, val := range v {
		fmt.Fprintf(w, "%g %g %g\n", val[0], val[1], val[2])
	}
}

func writeScalars(w *bufio.Writer, name string, s []float64) {
	if s == nil {
		return
	}
	fmt.Fprintf(w, "SCALARS %s double 1\n", name)
	fmt.Fprintf(w, "LOOKUP_TABLE default\n")
	for _, val := range s {
		fmt.Fprintf(w, "%g\n", val)
	}
}
