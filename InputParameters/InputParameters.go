package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file. The yaml package converts
// the input to JSON before unmarshaling, so the key mapping lives in json
// tags.
type UpscalingParameters struct {
	Title string `json:"Title"`

	// Grid
	Nx int     `json:"Nx"`
	Ny int     `json:"Ny"`
	Nz int     `json:"Nz"`
	Lx float64 `json:"Lx"`
	Ly float64 `json:"Ly"`
	Lz float64 `json:"Lz"`

	// Rock
	Permeability float64 `json:"Permeability"`
	Porosity     float64 `json:"Porosity"`

	// Upscaling setup
	BoundaryConditionType string  `json:"BCType"` // "fixed" or "periodic"
	InitialSaturation     float64 `json:"initial_saturation"`
	BoundarySaturation    float64 `json:"boundary_saturation"`
	PressureDrop          float64 `json:"pressure_drop"`
	ResidualTolerance     float64 `json:"residual_tolerance"`

	// Steady state driver options
	OutputVTK        bool    `json:"output_vtk"`
	PrintInOutFlows  bool    `json:"print_inoutflows"`
	SimulationSteps  int     `json:"simulation_steps"`
	Stepsize         float64 `json:"stepsize"` // days
	RelPermThreshold float64 `json:"relperm_threshold"`

	// Fluid, zero means keep the property model defaults
	Viscosity1 float64 `json:"viscosity1"`
	Viscosity2 float64 `json:"viscosity2"`
	Density1   float64 `json:"density1"`
	Density2   float64 `json:"density2"`
}

// DefaultUpscalingParameters returns the parameter set used when no input
// file overrides are given.
func DefaultUpscalingParameters() *UpscalingParameters {
	return &UpscalingParameters{
		Title:                 "steady state upscaling",
		Nx:                    10,
		Ny:                    10,
		Nz:                    10,
		Lx:                    1,
		Ly:                    1,
		Lz:                    1,
		Permeability:          1.e-12,
		Porosity:              0.25,
		BoundaryConditionType: "periodic",
		InitialSaturation:     0.5,
		BoundarySaturation:    0.5,
		PressureDrop:          1.e5,
		ResidualTolerance:     1.e-10,
		OutputVTK:             false,
		PrintInOutFlows:       false,
		SimulationSteps:       10,
		Stepsize:              0.1,
		RelPermThreshold:      1.0e-4,
	}
}

func (up *UpscalingParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, up)
}

func (up *UpscalingParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", up.Title)
	fmt.Printf("[%d %d %d]\t\t= Grid cells\n", up.Nx, up.Ny, up.Nz)
	fmt.Printf("[%8.5f %8.5f %8.5f]\t= Block extent\n", up.Lx, up.Ly, up.Lz)
	fmt.Printf("%8.5g\t\t= Permeability\n", up.Permeability)
	fmt.Printf("%8.5f\t\t= Porosity\n", up.Porosity)
	fmt.Printf("[%s]\t\t= BC Type\n", up.BoundaryConditionType)
	fmt.Printf("%8.5f\t\t= Boundary Saturation\n", up.BoundarySaturation)
	fmt.Printf("%8.5g\t\t= Pressure Drop\n", up.PressureDrop)
	fmt.Printf("[%d]\t\t\t= Simulation Steps\n", up.SimulationSteps)
	fmt.Printf("%8.5f\t\t= Stepsize [days]\n", up.Stepsize)
	fmt.Printf("%8.5g\t\t= RelPerm Threshold\n", up.RelPermThreshold)
}
