// Command tradechart-render draws charts of CSV market data without a
// window, either into a PNG image or as a trace of drawing calls.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/tradechart/backend"
)

var (
	configPath string
	dataPath   string
	logLevel   string
	width      int
	height     int

	cfg backend.Config
)

var rootCmd = &cobra.Command{
	Use:   "tradechart-render",
	Short: "render charts of CSV market data",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = backend.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if dataPath != "" {
			cfg.Data = dataPath
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		level, _ := logrus.ParseLevel(cfg.LogLevel)
		logrus.SetLevel(level)
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "tradechart.yaml", "YAML config file")
	flags.StringVarP(&dataPath, "data", "d", "", "CSV market data file, overrides the config")
	flags.StringVar(&logLevel, "log-level", "info", "log level")
	flags.IntVar(&width, "width", 800, "chart width in pixels")
	flags.IntVar(&height, "height", 450, "chart height in pixels")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
