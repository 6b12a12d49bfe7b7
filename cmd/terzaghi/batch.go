package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arenoe-studio/terzaghi-calculator/internal/calc/batch"
)

func batchCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "batch [file.yaml]",
		Short: "Calculate every case listed in a YAML file",
		Long: `Reads a YAML document with a top-level "cases" list. Each case has a
name plus the calc fields in snake_case (shape, failure_mode, cohesion,
friction_angle, soil_unit_weight, width_m, depth_m, safety_factor, ...).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadCases(args[0])
			if err != nil {
				return err
			}
			res, err := batch.Evaluate(in)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tname\tqult\tqall\tunit\tstatus")
			for _, o := range res.Results {
				if o.Result == nil {
					fmt.Fprintf(tw, "%d\t%s\t-\t-\t\t%s: %s\n", o.Index+1, o.Name, o.Status, o.Error)
					continue
				}
				fmt.Fprintf(tw, "%d\t%s\t%.3f\t%.3f\t%s\t%s\n",
					o.Index+1, o.Name, o.Result.Qult, o.Result.Qall, o.Result.StressLabel, o.Status)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d succeeded, %d failed\n", res.Succeeded, res.Failed)
			if strict && res.Failed > 0 {
				return fmt.Errorf("%d case(s) failed", res.Failed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any case fails")
	return cmd
}

func loadCases(path string) (batch.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return batch.Input{}, fmt.Errorf("read %s: %w", path, err)
	}
	var in batch.Input
	if err := yaml.Unmarshal(data, &in); err != nil {
		return batch.Input{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return in, nil
}
