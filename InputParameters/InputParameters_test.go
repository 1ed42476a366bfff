package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	// Overrides replace defaults, untouched fields keep their defaults
	{
		up := DefaultUpscalingParameters()
		data := []byte(`
Title: layered block
Nx: 20
Nz: 5
Permeability: 2.e-12
BCType: fixed
initial_saturation: 0.9
boundary_saturation: 0.3
pressure_drop: 42.0
residual_tolerance: 1.e-8
output_vtk: true
print_inoutflows: true
simulation_steps: 25
relperm_threshold: 0.01
viscosity1: 0.001
`)
		assert.NoError(t, up.Parse(data))
		assert.Equal(t, "layered block", up.Title)
		assert.Equal(t, 20, up.Nx)
		assert.Equal(t, 10, up.Ny)
		assert.Equal(t, 5, up.Nz)
		assert.Equal(t, 2.e-12, up.Permeability)
		assert.Equal(t, "fixed", up.BoundaryConditionType)
		assert.Equal(t, 0.9, up.InitialSaturation)
		assert.Equal(t, 0.3, up.BoundarySaturation)
		assert.Equal(t, 42.0, up.PressureDrop)
		assert.Equal(t, 1.e-8, up.ResidualTolerance)
		assert.True(t, up.OutputVTK)
		assert.True(t, up.PrintInOutFlows)
		assert.Equal(t, 25, up.SimulationSteps)
		assert.Equal(t, 0.01, up.RelPermThreshold)
		assert.Equal(t, 0.001, up.Viscosity1)
		assert.Equal(t, 0.0, up.Viscosity2) // zero keeps the model default
		assert.Equal(t, 0.1, up.Stepsize)
	}
	// Malformed input is an error
	{
		up := DefaultUpscalingParameters()
		assert.Error(t, up.Parse([]byte("Nx: [not a number")))
	}
}
