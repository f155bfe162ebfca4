package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/masks/internal/app"
	"github.com/ironsheep/masks/internal/mask"
	"github.com/ironsheep/masks/internal/volume"
)

func parseMakeLine(t *testing.T, line string) (*app.Config, error) {
	t.Helper()
	inv, shouldExit, err := Parse(strings.Fields(line), &bytes.Buffer{})
	if err != nil {
		return nil, err
	}
	require.False(t, shouldExit)
	require.Equal(t, CommandMake, inv.Command)
	return inv.Config, nil
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := parseMakeLine(t, "make")
	require.NoError(t, err)

	require.Equal(t, []int{10, 10}, cfg.ImageSize)
	require.Equal(t, []int{6, 6}, cfg.MaskSize)
	require.Equal(t, []int{2, 2}, cfg.MaskPos)
	require.Equal(t, 1.0, cfg.VisibleValue)
	require.Equal(t, 0.0, cfg.MaskValue)
	require.False(t, cfg.Invert)
	require.Equal(t, 2, cfg.Dimension)
	require.Empty(t, cfg.Output)
	require.Equal(t, "quad", cfg.Shape)
}

func TestParse_SingleValue(t *testing.T) {
	cfg, err := parseMakeLine(t, "make -I 20")
	require.NoError(t, err)
	require.Equal(t, []int{20, 20}, cfg.ImageSize)

	cfg, err = parseMakeLine(t, "make -I 50 -M 20")
	require.NoError(t, err)
	require.Equal(t, []int{20, 20}, cfg.MaskSize)

	cfg, err = parseMakeLine(t, "make -I 50 -P 20")
	require.NoError(t, err)
	require.Equal(t, []int{20, 20}, cfg.MaskPos)
}

func TestParse_LongFlags(t *testing.T) {
	cfg, err := parseMakeLine(t, "make --image-size 40 20 --mask-size=10,5 --mask-pos 3 4 --visible-value 2 --mask-value -1 --shape ellipse --invert")
	require.NoError(t, err)
	require.Equal(t, []int{40, 20}, cfg.ImageSize)
	require.Equal(t, []int{10, 5}, cfg.MaskSize)
	require.Equal(t, []int{3, 4}, cfg.MaskPos)
	require.Equal(t, 2.0, cfg.VisibleValue)
	require.Equal(t, -1.0, cfg.MaskValue)
	require.Equal(t, "ellipse", cfg.Shape)
	require.True(t, cfg.Invert)
}

func TestParse_ValidateDims(t *testing.T) {
	_, err := parseMakeLine(t, "make -I 10 -M 20")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, ExitUsage, exitErr.Code)
	require.Contains(t, exitErr.Message, "incompatible with image height (10)")
}

func TestParse_NegativePosition(t *testing.T) {
	_, err := parseMakeLine(t, "make -I 40 20 -M 20 -P 20 -5 -s ellipse")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, ExitUsage, exitErr.Code)
	require.Contains(t, exitErr.Message, "mask horizontal position (-5)")
}

func TestParse_3D(t *testing.T) {
	cfg, err := parseMakeLine(t, "make -I 10 -M 6 -P 2 -D 3")
	require.NoError(t, err)
	require.Equal(t, []int{10, 10, 10}, cfg.ImageSize)
	require.Equal(t, []int{6, 6, 6}, cfg.MaskSize)
	require.Equal(t, []int{2, 2, 2}, cfg.MaskPos)
}

func TestParse_Consistency(t *testing.T) {
	lines := []string{
		"make -I 10 10 -D 3",
		"make -I 10 10 10 -M 6 6 -P 2 2 2 -D 3",
		"make -I 10 10 10 -M 6 6 6 -P 2 2 -D 3",
		"make -I 10 10 -M 6 6 6 -P 2 2 2 -D 3",
		"make -D 4",
		"make -s star",
		"make --input-image in.mrc",
		"make -D 3 -o mask.txt",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			_, err := parseMakeLine(t, line)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			require.Equal(t, ExitUsage, exitErr.Code)
		})
	}
}

func TestParse_BadValues(t *testing.T) {
	lines := []string{
		"make -I ten",
		"make -V abc",
		"make --unknown",
		"make extra",
		"make --preview-colors red",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			_, err := parseMakeLine(t, line)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			require.Equal(t, ExitUsage, exitErr.Code)
		})
	}
}

func TestParse_PreviewAndVoxel(t *testing.T) {
	cfg, err := parseMakeLine(t, "make --voxel-size 1.5 2 2.5 --preview mask.png --preview-scale 8 --preview-colors yellow,#000080")
	require.NoError(t, err)
	require.Equal(t, []float64{1.5, 2, 2.5}, cfg.VoxelSize)
	require.Equal(t, "mask.png", cfg.Preview)
	require.Equal(t, 8, cfg.PreviewScale)
	require.Equal(t, "yellow", cfg.PreviewHigh)
	require.Equal(t, "#000080", cfg.PreviewLow)
}

func TestParse_LogLevels(t *testing.T) {
	t.Setenv("MASKS_LOG_LEVEL", "")
	t.Setenv("MASKS_LOG_FORMAT", "")

	inv, _, err := Parse([]string{"make"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, "warn", inv.LogLevel)
	require.Equal(t, "text", inv.LogFormat)

	inv, _, err = Parse([]string{"make", "-v"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, "info", inv.LogLevel)
	require.True(t, inv.Config.Verbose)

	inv, _, err = Parse([]string{"make", "-v", "-d"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, "debug", inv.LogLevel)

	t.Setenv("MASKS_LOG_LEVEL", "ERROR")
	t.Setenv("MASKS_LOG_FORMAT", "json")
	inv, _, err = Parse([]string{"make"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, "error", inv.LogLevel)
	require.Equal(t, "json", inv.LogFormat)

	inv, _, err = Parse([]string{"make", "--log-level", "info"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, "info", inv.LogLevel)
}

func TestParse_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mask.hcl")
	content := `
image_size     = [40, 20]
mask_size      = [20]
mask_pos       = [10, 0]
shape          = "ellipse"
visible_value  = 5
invert         = true
voxel_size     = [2.0]
preview_colors = ["yellow", "blue"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := parseMakeLine(t, "make -c "+path)
	require.NoError(t, err)
	require.Equal(t, []int{40, 20}, cfg.ImageSize)
	require.Equal(t, []int{20, 20}, cfg.MaskSize)
	require.Equal(t, []int{10, 0}, cfg.MaskPos)
	require.Equal(t, "ellipse", cfg.Shape)
	require.Equal(t, 5.0, cfg.VisibleValue)
	require.True(t, cfg.Invert)
	require.Equal(t, []float64{2, 2, 2}, cfg.VoxelSize)
	require.Equal(t, "yellow", cfg.PreviewHigh)
	require.Equal(t, "blue", cfg.PreviewLow)

	// Explicit flags win over the file.
	cfg, err = parseMakeLine(t, "make --config "+path+" -s quad -P 0")
	require.NoError(t, err)
	require.Equal(t, "quad", cfg.Shape)
	require.Equal(t, []int{0, 0}, cfg.MaskPos)
	require.Equal(t, []int{40, 20}, cfg.ImageSize)
}

func TestParse_ConfigFileErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.hcl")
	require.NoError(t, os.WriteFile(bad, []byte("image_size = [40, \n"), 0600))
	unknown := filepath.Join(dir, "unknown.hcl")
	require.NoError(t, os.WriteFile(unknown, []byte("colour = \"red\"\n"), 0600))
	colors := filepath.Join(dir, "colors.hcl")
	require.NoError(t, os.WriteFile(colors, []byte("preview_colors = [\"red\"]\n"), 0600))

	for _, path := range []string{bad, unknown, colors, filepath.Join(dir, "missing.hcl")} {
		_, err := parseMakeLine(t, "make -c "+path)

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr, "path %s", path)
		require.Equal(t, ExitUsage, exitErr.Code)
	}
}

func TestParse_Commands(t *testing.T) {
	out := &bytes.Buffer{}
	inv, shouldExit, err := Parse(nil, out)
	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Nil(t, inv)
	require.Contains(t, out.String(), "Usage:")

	out.Reset()
	_, shouldExit, err = Parse([]string{"help"}, out)
	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Contains(t, out.String(), "masks make")

	out.Reset()
	_, shouldExit, err = Parse([]string{"make", "-h"}, out)
	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Contains(t, out.String(), "-image-size")

	inv, _, err = Parse([]string{"version"}, out)
	require.NoError(t, err)
	require.Equal(t, CommandVersion, inv.Command)

	_, _, err = Parse([]string{"frobnicate"}, out)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, ExitUsage, exitErr.Code)
}

func TestParse_Serve(t *testing.T) {
	t.Setenv("MASKS_LOG_LEVEL", "")
	t.Setenv("MASKS_LOG_FORMAT", "")

	inv, _, err := Parse([]string{"serve"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, CommandServe, inv.Command)
	require.Equal(t, "warn", inv.LogLevel)

	inv, _, err = Parse([]string{"serve", "--log-level", "DEBUG", "--log-format", "json"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, "debug", inv.LogLevel)
	require.Equal(t, "json", inv.LogFormat)

	_, _, err = Parse([]string{"serve", "--log-level", "loud"}, &bytes.Buffer{})
	require.Error(t, err)
	_, _, err = Parse([]string{"serve", "--log-format", "xml"}, &bytes.Buffer{})
	require.Error(t, err)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"argument", &app.ArgumentConsistencyError{Reason: "bad"}, ExitUsage},
		{"geometry", &mask.GeometryError{Axis: mask.Depth, Canvas: 1, Size: 2}, ExitUsage},
		{"dimension", fmt.Errorf("wrapped: %w", mask.ErrDimension), ExitUsage},
		{"mismatch", fmt.Errorf("failed to mask: %w", &mask.ShapeMismatchError{Mask: []int{1}, Image: []int{2}}), ExitUsage},
		{"io", &volume.IOError{Op: "open", Path: "x", Err: os.ErrNotExist}, ExitFailure},
		{"other", errors.New("boom"), ExitFailure},
		{"exit", &ExitError{Code: 7, Message: "custom"}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			require.Equal(t, tt.code, got.Code)
			require.Equal(t, tt.err.Error(), got.Message)
		})
	}
}

func TestFoldMultiValues(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"-I 10", "-I 10"},
		{"-I 10 12 -M 6", "-I 10,12 -M 6"},
		{"-P 20 -5 -s ellipse", "-P 20,-5 -s ellipse"},
		{"--voxel-size 1.5 2 2.5 -o x.mrc", "--voxel-size 1.5,2,2.5 -o x.mrc"},
		{"--mask-pos=1,2 3", "--mask-pos=1,2 3"},
		{"-V 3 4", "-V 3 4"},
		{"-- -I 1 2", "-- -I 1 2"},
		{"-I", "-I"},
	}

	for _, tt := range tests {
		got := strings.Join(foldMultiValues(strings.Fields(tt.in)), " ")
		require.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
