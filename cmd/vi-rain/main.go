package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-rain/engine"
	"github.com/lixenwraith/vi-rain/terminal"
)

// options holds the command-line switches
type options struct {
	bench   bool
	debug   bool
	color   string
	backend string
}

func main() {
	// Panic Recovery: restore the terminal even if the loop crashes
	defer func() {
		terminal.HandleCrash("VI-RAIN", recover())
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:          "vi-rain",
		Short:        "Digital rain in the terminal",
		Long:         "vi-rain fills the terminal with falling streaks of glyphs. Quit with q, Esc or Ctrl+C.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := root.Flags()
	flags.BoolVarP(&opts.bench, "bench", "b", false, "run unthrottled and print throughput on exit")
	flags.BoolVar(&opts.debug, "debug", false, "write a debug log to "+logDir)
	flags.StringVar(&opts.color, "color", "auto", "color mode: auto, truecolor, 256")
	flags.StringVar(&opts.backend, "backend", "native", "render backend: native, tcell")

	return root
}

func run(cmd *cobra.Command, opts options) error {
	colorMode, err := terminal.ParseColorMode(opts.color)
	if err != nil {
		return err
	}

	term, err := openTerminal(opts.backend, colorMode)
	if err != nil {
		return err
	}

	logger, logFile := setupLogging(opts.debug)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := term.Init(); err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	// Normal exit terminal cleanup; the explicit Fini below runs first so the report lands on the main screen
	defer term.Fini()

	loop := engine.NewLoop(term, engine.Config{
		Bench:  opts.bench,
		Logger: logger,
	})
	stats, err := loop.Run(cmd.Context())
	term.Fini()
	if err != nil {
		return err
	}

	if opts.bench {
		fmt.Fprint(cmd.ErrOrStderr(), formatReport(stats))
	}
	return nil
}

// openTerminal creates the render surface for the --backend flag
func openTerminal(backend string, colorMode terminal.ColorMode) (terminal.Terminal, error) {
	switch backend {
	case "", "native":
		return terminal.New(colorMode), nil
	case "tcell":
		return terminal.NewTcell(colorMode)
	}
	return nil, fmt.Errorf("unknown backend %q (want native or tcell)", backend)
}
