package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/valerio/go-jeebie-core/jeebie"
	"github.com/valerio/go-jeebie-core/jeebie/testrom"
)

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "Jeebie"
	app.Description = "Runs Game Boy conformance ROMs on an SM83 core and reports their serial verdict"
	app.Usage = "jeebie [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.Uint64Flag{
			Name:  "max-instructions",
			Usage: "Stop after this many instructions when no banner was printed (0 = no limit)",
			Value: jeebie.DefaultMaxInstructions,
		},
		cli.StringFlag{
			Name:  "trace",
			Usage: "Write a gameboy-doctor style trace line per instruction to this file",
		},
		cli.BoolFlag{
			Name:  "monitor",
			Usage: "Show registers, disassembly and serial output in a terminal dashboard",
		},
		cli.BoolFlag{
			Name:  "immediate-timer",
			Usage: "Reload TIMA in the same cycle it overflows instead of 4 cycles later",
		},
		cli.BoolFlag{
			Name:  "fixed-serial-timing",
			Usage: "Complete serial transfers after 4096 cycles instead of immediately",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	}
	app.Action = runEmulator
	return app
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func runEmulator(c *cli.Context) error {
	setupLogging(c.Bool("verbose"))

	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	cfg := jeebie.DefaultConfig()
	cfg.MaxInstructions = c.Uint64("max-instructions")
	cfg.ImmediateTimerReload = c.Bool("immediate-timer")
	cfg.FixedSerialTiming = c.Bool("fixed-serial-timing")

	if tracePath := c.String("trace"); tracePath != "" {
		f, err := os.Create(tracePath)
		if err != nil {
			return fmt.Errorf("failed to create trace file: %w", err)
		}
		defer f.Close()
		cfg.Trace = f
	}

	dmg, err := jeebie.NewWithFile(romPath, jeebie.WithConfig(cfg))
	if err != nil {
		if errors.Is(err, jeebie.ErrEmptyROM) || errors.Is(err, jeebie.ErrROMTooSmall) {
			slog.Error("Not a Game Boy ROM", "path", romPath)
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var res testrom.Result
	if c.Bool("monitor") {
		res, err = runMonitor(ctx, dmg, cfg.MaxInstructions)
	} else {
		res, err = dmg.Run(ctx)
	}

	fmt.Fprint(c.App.Writer, res.Output)

	switch {
	case errors.Is(err, context.Canceled):
		slog.Warn("Interrupted before a banner was printed", "instructions", res.Instructions)
	case err != nil:
		return err
	}

	slog.Info("Run finished", "outcome", res.Outcome, "instructions", res.Instructions, "cycles", res.Cycles)
	if code := res.Outcome.ExitCode(); code != 0 {
		return cli.NewExitError("", code)
	}
	return nil
}
