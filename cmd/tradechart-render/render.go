package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/tradechart/canvas/raster"
	"git.sr.ht/~whereswaldon/tradechart/chart"
)

var (
	outputPath  string
	showMetrics bool
)

func init() {
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "chart.png", "PNG file to write")
	renderCmd.Flags().BoolVar(&showMetrics, "metrics", false, "log repaint metrics when done")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "render the chart into a PNG image",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := raster.New(width, height)
		if err != nil {
			return err
		}
		reg := prometheus.NewRegistry()
		m, err := chart.NewMetrics(reg)
		if err != nil {
			return err
		}
		c, err := draw(cmd.Context(), cfg, img, width, height, m)
		if err != nil {
			return err
		}
		defer c.Remove()

		out, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		if err := img.WritePNG(out); err != nil {
			out.Close()
			return fmt.Errorf("writing %s: %w", outputPath, err)
		}
		if err := out.Close(); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"output": outputPath,
			"series": len(c.Series()),
		}).Info("chart rendered")

		if showMetrics {
			families, err := reg.Gather()
			if err != nil {
				return err
			}
			for _, mf := range families {
				for _, metric := range mf.GetMetric() {
					value := metric.GetCounter().GetValue()
					if h := metric.GetHistogram(); h != nil {
						value = float64(h.GetSampleCount())
					}
					logrus.WithField("metric", mf.GetName()).Info(value)
				}
			}
		}
		return nil
	},
}
