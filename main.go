// Command tradechart shows CSV market data as an interactive chart.
package main

import (
	"context"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/tradechart/backend"
)

var (
	configPath string
	dataPath   string
	follow     bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "tradechart [file.csv]",
	Short: "chart CSV market data",
	Args:  cobra.MaximumNArgs(1),

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := backend.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if len(args) > 0 {
			cfg.Data = args[0]
		}
		if dataPath != "" {
			cfg.Data = dataPath
		}
		if cmd.Flags().Changed("follow") {
			cfg.Follow = follow
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		level, _ := logrus.ParseLevel(cfg.LogLevel)
		logrus.SetLevel(level)

		go func() {
			if err := run(cfg); err != nil {
				logrus.WithError(err).Fatal("window failed")
			}
			os.Exit(0)
		}()
		app.Main()
		return nil
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "tradechart.yaml", "YAML config file")
	flags.StringVarP(&dataPath, "data", "d", "", "CSV market data file, overrides the config")
	flags.BoolVarP(&follow, "follow", "f", false, "keep reading rows appended to the data file")
	flags.StringVar(&logLevel, "log-level", "info", "log level")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg backend.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bundle := backend.NewBundle(stream.NewMutator(ctx, time.Second))

	w := app.NewWindow(app.Title("tradechart"))
	expl := explorer.NewExplorer(w)
	ui := NewUI(backend.NewWindowState(ctx, bundle, w), expl, cfg, w.Invalidate)
	defer ui.Close()

	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
