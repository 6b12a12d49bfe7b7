package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arenoe-studio/terzaghi-calculator/internal/calc/bearing"
)

// floatFlag binds a float flag that stays nil in Input unless it was set.
type floatFlag struct {
	name  string
	value float64
	dst   **float64
}

func calcCmd() *cobra.Command {
	var (
		in      bearing.Input
		shape   string
		mode    string
		asJSON  bool
		numbers []*floatFlag
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate ultimate and allowable bearing capacity for one foundation",
		Example: `  terzaghi calc --shape strip --mode general --cohesion 0.2 --phi 30 \
    --gamma 0.0018 --width 1.5 --depth 1.5 --sf 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.Shape = bearing.Shape(shape)
			in.FailureMode = bearing.FailureMode(mode)
			for _, f := range numbers {
				if cmd.Flags().Changed(f.name) {
					*f.dst = bearing.Float(f.value)
				}
			}
			res, err := bearing.Calculate(in)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&shape, "shape", string(bearing.Strip), "foundation shape: strip, square or circular")
	fs.StringVar(&mode, "mode", string(bearing.General), "failure mode: general or local")
	fs.StringVar(&in.CohesionUnit, "cohesion-unit", "kgcm2", "stress unit: kgcm2, tonm2 or knm2")
	fs.StringVar(&in.SoilUnitWeightUnit, "gamma-unit", "kgcm3", "unit weight unit: kgcm3, tonm3 or knm3")
	fs.StringVar(&in.SaturatedUnit, "gamma-sat-unit", "kgcm3", "unit of --gamma-sat")
	fs.StringVar(&in.WaterUnit, "gamma-w-unit", "kgcm3", "unit of --gamma-w")
	fs.BoolVar(&asJSON, "json", false, "print the result as JSON")

	numbers = []*floatFlag{
		{name: "cohesion", dst: &in.Cohesion},
		{name: "phi", dst: &in.FrictionAngle},
		{name: "gamma", dst: &in.SoilUnitWeight},
		{name: "width", dst: &in.WidthM},
		{name: "depth", dst: &in.DepthM},
		{name: "sf", dst: &in.SafetyFactor},
		{name: "gwt-depth", dst: &in.WaterTableDepthM},
		{name: "gamma-sat", dst: &in.SaturatedUnitWeight},
		{name: "gamma-w", dst: &in.WaterUnitWeight},
	}
	usage := map[string]string{
		"cohesion":  "soil cohesion c",
		"phi":       "friction angle in degrees (0-50)",
		"gamma":     "soil unit weight",
		"width":     "foundation width or diameter in metres",
		"depth":     "foundation depth in metres",
		"sf":        "safety factor",
		"gwt-depth": "groundwater table depth in metres (omit for no water table)",
		"gamma-sat": "saturated unit weight, required with --gwt-depth",
		"gamma-w":   "water unit weight, required with --gwt-depth",
	}
	for _, f := range numbers {
		fs.Float64Var(&f.value, f.name, 0, usage[f.name])
	}
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "friction-angle" {
			name = "phi"
		}
		return pflag.NormalizedName(name)
	})
	return cmd
}

func printResult(w io.Writer, res bearing.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, l := range res.Lines() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Label, l.Value, l.Unit)
	}
	fmt.Fprintf(tw, "\n%s\n", res.Formula)
	return tw.Flush()
}
