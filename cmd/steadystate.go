package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goupscale/InputParameters"
	"github.com/notargets/goupscale/bcond"
	"github.com/notargets/goupscale/fluid"
	"github.com/notargets/goupscale/grid"
	"github.com/notargets/goupscale/upscale"
	"github.com/notargets/goupscale/utils"
)

// SteadyStateCmd represents the steadystate command
var SteadyStateCmd = &cobra.Command{
	Use:   "steadystate",
	Short: "Steady state two phase upscaling of a block model",
	Long: `
Runs the coupled pressure/transport relaxation on the fine grid and derives
the upscaled relative permeability tensors for both phases,

goupscale steadystate -i params.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			msState = &SteadyStateModel{}
		)
		msState.ParamsFile, _ = cmd.Flags().GetString("input")
		msState.Direction, _ = cmd.Flags().GetInt("direction")
		msState.Profile, _ = cmd.Flags().GetBool("profile")
		RunSteadyState(msState)
	},
}

func init() {
	rootCmd.AddCommand(SteadyStateCmd)
	SteadyStateCmd.Flags().StringP("input", "i", "", "YAML parameter file, defaults used when empty")
	SteadyStateCmd.Flags().IntP("direction", "d", -1, "flow direction 0, 1 or 2; all three when negative")
	SteadyStateCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
}

type SteadyStateModel struct {
	ParamsFile string
	Direction  int
	Profile    bool
}

func RunSteadyState(m *SteadyStateModel) {
	if m.Profile {
		defer profile.Start(profile.CPUProfile).Stop()
	}
	up := InputParameters.DefaultUpscalingParameters()
	if paramsFile := resolveParamsFile(m.ParamsFile); paramsFile != "" {
		data, err := os.ReadFile(paramsFile)
		if err != nil {
			fmt.Printf("unable to read parameter file: %v\n", err)
			os.Exit(1)
		}
		if err = up.Parse(data); err != nil {
			fmt.Printf("unable to parse parameter file: %v\n", err)
			os.Exit(1)
		}
	}
	up.Print()

	ss, err := buildSteadyState(up)
	if err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}

	absK, err := ss.UpscalePerm()
	if err != nil {
		fmt.Printf("absolute permeability upscaling failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Upscaled absolute permeability =\n%v\n", mat.Formatted(absK, mat.Squeeze()))

	var (
		n          = ss.G.NumCells()
		initialSat = utils.ConstArray(n, up.InitialSaturation)
		dirs       = []int{0, 1, 2}
	)
	if m.Direction >= 0 {
		dirs = []int{m.Direction}
	}
	for _, dd := range dirs {
		kr1, kr2, err := ss.UpscaleSteadyState(dd, initialSat, up.BoundarySaturation, up.PressureDrop, absK)
		if err != nil {
			fmt.Printf("steady state upscaling failed for direction %d: %v\n", dd, err)
			os.Exit(1)
		}
		avgSat, err := ss.LastSaturationUpscaled(dd)
		if err != nil {
			fmt.Printf("%v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Flow direction %d, upscaled saturation = %8.5f\n", dd, avgSat)
		fmt.Printf("k_rw =\n%v\n", mat.Formatted(kr1, mat.Squeeze()))
		fmt.Printf("k_ro =\n%v\n", mat.Formatted(kr2, mat.Squeeze()))
	}
}

// resolveParamsFile prefers the explicit --input flag, then the "input" key
// of the viper config file.
func resolveParamsFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return viper.GetString("input")
}

func buildSteadyState(up *InputParameters.UpscalingParameters) (ss *upscale.SteadyState, err error) {
	var bctype bcond.BCType
	switch up.BoundaryConditionType {
	case "fixed":
		bctype = bcond.FixedBoundary
	case "periodic", "":
		bctype = bcond.PeriodicBoundary
	default:
		err = fmt.Errorf("unknown boundary condition type %q", up.BoundaryConditionType)
		return
	}
	g := grid.NewCartesian(up.Nx, up.Ny, up.Nz, up.Lx, up.Ly, up.Lz)
	rock := fluid.NewUniformProperties(g.NumCells(), up.Permeability, up.Porosity)
	if up.Viscosity1 > 0 && up.Viscosity2 > 0 {
		rock.SetViscosities(up.Viscosity1, up.Viscosity2)
	}
	if up.Density1 > 0 && up.Density2 > 0 {
		rock.SetDensities(up.Density1, up.Density2)
	}
	ss = upscale.NewSteadyState(g, rock, bctype)
	ss.OutputVTK = up.OutputVTK
	ss.PrintInOutFlows = up.PrintInOutFlows
	ss.SimulationSteps = up.SimulationSteps
	ss.Stepsize = up.Stepsize * upscale.Day
	ss.RelPermThreshold = up.RelPermThreshold
	if up.ResidualTolerance > 0 {
		ss.ResidualTolerance = up.ResidualTolerance
	}
	return
}
