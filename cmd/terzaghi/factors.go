package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arenoe-studio/terzaghi-calculator/internal/calc/bearing"
)

func factorsCmd() *cobra.Command {
	var (
		mode string
		phi  float64
		all  bool
	)

	cmd := &cobra.Command{
		Use:   "factors",
		Short: "Print Terzaghi bearing capacity factors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := bearing.FailureMode(mode)
			if m != bearing.General && m != bearing.Local {
				return fmt.Errorf("mode must be general or local (got %q)", mode)
			}
			table := bearing.FactorTable(m)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "phi\tNc\tNq\tNγ\t")
			if all {
				for _, r := range table {
					fmt.Fprintf(tw, "%g\t%.2f\t%.2f\t%.3f\t\n", r.Phi, r.Nc, r.Nq, r.Ng)
				}
				return tw.Flush()
			}
			f, err := bearing.Interpolate(phi, table)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%g\t%.2f\t%.2f\t%.3f\t\n", phi, f.Nc, f.Nq, f.Ng)
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(bearing.General), "failure mode: general or local")
	cmd.Flags().Float64Var(&phi, "phi", 30, "friction angle in degrees")
	cmd.Flags().BoolVar(&all, "all", false, "print the whole table")
	return cmd
}
