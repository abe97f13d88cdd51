package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/tradechart/canvas"
)

var traceFilter []string

func init() {
	traceCmd.Flags().StringSliceVar(&traceFilter, "only", nil, "print only calls with these names")
	rootCmd.AddCommand(traceCmd)
}

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "print the drawing calls of one chart frame",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		r := canvas.NewRecorder()
		c, err := draw(cmd.Context(), cfg, r, width, height, nil)
		if err != nil {
			return err
		}
		defer c.Remove()
		if len(traceFilter) == 0 {
			fmt.Fprint(cmd.OutOrStdout(), r.String())
			return nil
		}
		for _, name := range traceFilter {
			for _, call := range r.Filter(name) {
				fmt.Fprintln(cmd.OutOrStdout(), call)
			}
		}
		return nil
	},
}
