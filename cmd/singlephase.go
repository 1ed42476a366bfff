package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goupscale/InputParameters"
)

// SinglePhaseCmd represents the singlephase command
var SinglePhaseCmd = &cobra.Command{
	Use:   "singlephase",
	Short: "Single phase effective permeability upscaling of a block model",
	Long: `
Computes the effective absolute permeability tensor of the block without any
two phase relaxation,

goupscale singlephase -i params.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		flagFile, _ := cmd.Flags().GetString("input")
		up := InputParameters.DefaultUpscalingParameters()
		if paramsFile := resolveParamsFile(flagFile); paramsFile != "" {
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
	},
}

func init() {
	rootCmd.AddCommand(SinglePhaseCmd)
	SinglePhaseCmd.Flags().StringP("input", "i", "", "YAML parameter file, defaults used when empty")
}
