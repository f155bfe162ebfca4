package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ironsheep/masks/internal/app"
	"github.com/ironsheep/masks/internal/mask"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Exit codes.
const (
	ExitFailure = 1 // I/O and other runtime errors
	ExitUsage   = 2 // bad arguments or geometry
)

// Classify maps err onto an ExitError. Argument, geometry and shape errors
// exit with ExitUsage; everything else, including I/O errors, with
// ExitFailure. err must not be nil.
func Classify(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	var (
		argErr   *app.ArgumentConsistencyError
		geomErr  *mask.GeometryError
		mismatch *mask.ShapeMismatchError
	)
	switch {
	case errors.As(err, &argErr), errors.As(err, &geomErr), errors.As(err, &mismatch),
		errors.Is(err, mask.ErrDimension):
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	return &ExitError{Code: ExitFailure, Message: err.Error()}
}

// Command identifies the subcommand of an invocation.
type Command int

const (
	CommandMake Command = iota
	CommandServe
	CommandVersion
)

// Invocation is a parsed command line.
type Invocation struct {
	Command Command

	// Config is set for CommandMake.
	Config *app.Config

	// LogLevel and LogFormat configure the logger of every command.
	LogLevel  string
	LogFormat string
}

const usageText = `
masks - create 2D and 3D image masks

Usage:
  masks make [options]     build a mask and optionally apply it to an image
  masks serve [options]    run as an MCP server on stdin/stdout
  masks version            print version information
  masks help               print this help message

Run 'masks make -h' or 'masks serve -h' for the options of each command.

Environment variables:
  MASKS_LOG_LEVEL   debug, info, warn or error (default warn)
  MASKS_LOG_FORMAT  text or json (default text)
`

// Parse processes command-line arguments (without the program name). It
// returns the parsed invocation, a boolean indicating if the program should
// exit cleanly (after printing help), or an ExitError.
func Parse(args []string, output io.Writer) (*Invocation, bool, error) {
	if len(args) == 0 {
		fmt.Fprint(output, usageText)
		return nil, true, nil
	}

	switch args[0] {
	case "make":
		return parseMake(args[1:], output)
	case "serve":
		return parseServe(args[1:], output)
	case "version", "-version", "--version":
		return &Invocation{Command: CommandVersion}, false, nil
	case "help", "-h", "-help", "--help":
		fmt.Fprint(output, usageText)
		return nil, true, nil
	}
	return nil, false, &ExitError{
		Code:    ExitUsage,
		Message: fmt.Sprintf("unknown command %q; run 'masks help' for usage", args[0]),
	}
}

// envDefaults returns the log settings from the environment.
func envDefaults() (level, format string) {
	level, format = "warn", "text"
	if v, ok := os.LookupEnv("MASKS_LOG_LEVEL"); ok && v != "" {
		level = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv("MASKS_LOG_FORMAT"); ok && v != "" {
		format = strings.ToLower(v)
	}
	return level, format
}

// canonical maps short flag names onto their long form.
var canonical = map[string]string{
	"I": "image-size",
	"M": "mask-size",
	"P": "mask-pos",
	"V": "visible-value",
	"X": "mask-value",
	"D": "dimension",
	"s": "shape",
	"o": "output",
	"c": "config",
	"v": "verbose",
	"d": "debug",
}

func visited(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, ok := canonical[name]; ok {
			name = long
		}
		set[name] = true
	})
	return set
}

func parseMake(args []string, output io.Writer) (*Invocation, bool, error) {
	fs := flag.NewFlagSet("masks make", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, `
masks make - make an image mask

Usage:
  masks make [options]

Vector options (-I, -M, -P, --voxel-size) take one value, used on every
axis, or one value per axis: "-I 40 20" or "-I 40,20". Axes are ordered
vertical, horizontal, depth.

Options:
`)
		fs.PrintDefaults()
	}

	def := app.DefaultConfig()
	var (
		imageSize, maskSize, maskPos intList
		voxelSize                    floatList
		visible, masked              float64
		invert, verbose, debug       bool
		dimension, previewScale      int
		shape, out, configPath       string
		inputImage, outputImage      string
		preview, previewColors       string
		logLevel, logFormat          string
	)

	fs.Var(&imageSize, "I", "image size (shorthand)")
	fs.Var(&imageSize, "image-size", "image size [10]")
	fs.Var(&maskSize, "M", "mask size (shorthand)")
	fs.Var(&maskSize, "mask-size", "mask size [6]")
	fs.Var(&maskPos, "P", "mask position (shorthand)")
	fs.Var(&maskPos, "mask-pos", "mask position [2]")
	fs.Var(&voxelSize, "voxel-size", "voxel size along x, y, z [1.0]")
	fs.Float64Var(&visible, "V", def.VisibleValue, "visible value (shorthand)")
	fs.Float64Var(&visible, "visible-value", def.VisibleValue, "value inside the mask")
	fs.Float64Var(&masked, "X", def.MaskValue, "mask value (shorthand)")
	fs.Float64Var(&masked, "mask-value", def.MaskValue, "value outside the mask")
	fs.BoolVar(&invert, "invert", false, "swap the visible and mask values")
	fs.IntVar(&dimension, "D", def.Dimension, "dimensions (shorthand)")
	fs.IntVar(&dimension, "dimension", def.Dimension, "dimensions: 2 or 3")
	fs.StringVar(&shape, "s", def.Shape, "mask shape (shorthand)")
	fs.StringVar(&shape, "shape", def.Shape, "mask shape: 'quad' or 'ellipse'")
	fs.StringVar(&out, "o", "", "output file (shorthand)")
	fs.StringVar(&out, "output", "", "output file for the mask (.txt, .mrc, .png, ...)")
	fs.StringVar(&inputImage, "input-image", "", "image to apply the mask to")
	fs.StringVar(&outputImage, "output-image", "", "where to write the masked image")
	fs.StringVar(&preview, "preview", "", "write a colour preview (.png, .jpg, .gif, .bmp or .tif)")
	fs.IntVar(&previewScale, "preview-scale", def.PreviewScale, "preview pixels per grid cell")
	fs.StringVar(&previewColors, "preview-colors", "", "preview colours as FG,BG (hex or name)")
	fs.StringVar(&configPath, "c", "", "HCL option file (shorthand)")
	fs.StringVar(&configPath, "config", "", "HCL option file; explicit flags take precedence")
	fs.BoolVar(&verbose, "v", false, "verbose (shorthand)")
	fs.BoolVar(&verbose, "verbose", false, "print the mask when no output is given and log progress")
	fs.BoolVar(&debug, "d", false, "debug (shorthand)")
	fs.BoolVar(&debug, "debug", false, "debug logging")
	fs.StringVar(&logLevel, "log-level", "", "log level: 'debug', 'info', 'warn' or 'error'")
	fs.StringVar(&logFormat, "log-format", "", "log format: 'text' or 'json'")

	if err := fs.Parse(foldMultiValues(args)); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	if fs.NArg() > 0 {
		return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("unexpected argument %q", fs.Arg(0))}
	}
	set := visited(fs)

	cfg := def
	cfg.LogLevel, cfg.LogFormat = envDefaults()
	if configPath != "" {
		if err := loadOptionFile(configPath, &cfg); err != nil {
			return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
		}
	}

	if set["image-size"] {
		cfg.ImageSize = imageSize
	}
	if set["mask-size"] {
		cfg.MaskSize = maskSize
	}
	if set["mask-pos"] {
		cfg.MaskPos = maskPos
	}
	if set["voxel-size"] {
		cfg.VoxelSize = voxelSize
	}
	if set["visible-value"] {
		cfg.VisibleValue = visible
	}
	if set["mask-value"] {
		cfg.MaskValue = masked
	}
	if set["invert"] {
		cfg.Invert = invert
	}
	if set["dimension"] {
		cfg.Dimension = dimension
	}
	if set["shape"] {
		cfg.Shape = shape
	}
	if set["output"] {
		cfg.Output = out
	}
	if set["input-image"] {
		cfg.InputImage = inputImage
	}
	if set["output-image"] {
		cfg.OutputImage = outputImage
	}
	if set["preview"] {
		cfg.Preview = preview
	}
	if set["preview-scale"] {
		cfg.PreviewScale = previewScale
	}
	if set["preview-colors"] {
		colors := strings.Split(previewColors, ",")
		if len(colors) != 2 {
			return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("invalid --preview-colors %q: want FG,BG", previewColors)}
		}
		cfg.PreviewHigh, cfg.PreviewLow = strings.TrimSpace(colors[0]), strings.TrimSpace(colors[1])
	}
	if set["verbose"] && verbose {
		cfg.Verbose = true
		cfg.LogLevel = "info"
	}
	if set["debug"] && debug {
		cfg.LogLevel = "debug"
	}
	if set["log-level"] {
		cfg.LogLevel = logLevel
	}
	if set["log-format"] {
		cfg.LogFormat = logFormat
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, Classify(err)
	}
	return &Invocation{
		Command:   CommandMake,
		Config:    config,
		LogLevel:  config.LogLevel,
		LogFormat: config.LogFormat,
	}, false, nil
}

func parseServe(args []string, output io.Writer) (*Invocation, bool, error) {
	fs := flag.NewFlagSet("masks serve", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, `
masks serve - run as an MCP server

Usage:
  masks serve [options]

The server speaks JSON-RPC 2.0 over stdin/stdout and logs to stderr.
Configure it in your MCP client.

Options:
`)
		fs.PrintDefaults()
	}

	level, format := envDefaults()
	logLevel := fs.String("log-level", level, "log level: 'debug', 'info', 'warn' or 'error'")
	logFormat := fs.String("log-format", format, "log format: 'text' or 'json'")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	if fs.NArg() > 0 {
		return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("unexpected argument %q", fs.Arg(0))}
	}

	lvl := strings.ToLower(*logLevel)
	switch lvl {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	fmtStr := strings.ToLower(*logFormat)
	if fmtStr != "text" && fmtStr != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	return &Invocation{Command: CommandServe, LogLevel: lvl, LogFormat: fmtStr}, false, nil
}
