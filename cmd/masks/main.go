package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/masks/internal/app"
	"github.com/ironsheep/masks/internal/cli"
	"github.com/ironsheep/masks/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:])
	stop()
	if err != nil {
		exitErr := cli.Classify(err)
		fmt.Fprintln(os.Stderr, exitErr.Message)
		os.Exit(exitErr.Code)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Results go to stdout; logs and the run summary go to stderr
// (stdout is the MCP channel when serving).
func run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args []string) error {
	inv, shouldExit, err := cli.Parse(args, stdout)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	switch inv.Command {
	case cli.CommandVersion:
		fmt.Fprintf(stdout, "masks %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return nil

	case cli.CommandServe:
		logger := app.NewLogger(inv.LogLevel, inv.LogFormat, stderr)
		logger.Debug("Logger configured.", "level", inv.LogLevel, "format", inv.LogFormat)
		srv := server.New(logger, Version)
		if err := srv.Serve(ctx, stdin, stdout); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	default:
		cfg := inv.Config
		logger := app.NewLogger(inv.LogLevel, inv.LogFormat, stderr)
		logger.Debug("Configuration resolved.",
			"image_size", cfg.ImageSize, "mask_size", cfg.MaskSize, "mask_pos", cfg.MaskPos,
			"dimension", cfg.Dimension, "shape", cfg.Shape, "invert", cfg.Invert)

		res, err := app.Make(app.WithLogger(ctx, logger), cfg)
		if err != nil {
			return err
		}
		if cfg.Verbose && cfg.Output == "" {
			fmt.Fprint(stdout, res.Mask.String())
		}
		for _, line := range res.Summary {
			fmt.Fprintln(stderr, line)
		}
		return nil
	}
}
