package volume

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/masks/internal/mask"
)

// SaveText writes a 2D grid as a plain-text table: one row per line, values
// separated by single spaces and formatted with four significant digits.
func SaveText(path string, g *mask.Grid) error {
	if g.Dims() != 2 {
		return fmt.Errorf("text tables hold 2D grids only, got %dD", g.Dims())
	}

	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	shape := g.Shape()
	data := g.Data()
	for r := 0; r < shape[0]; r++ {
		row := data[r*shape[1] : (r+1)*shape[1]]
		for c, v := range row {
			if c > 0 {
				w.WriteByte(' ')
			}
			w.WriteString(strconv.FormatFloat(v, 'g', 4, 64))
		}
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// LoadText reads a table written by SaveText (or any whitespace- or
// comma-separated numeric table). Blank lines and lines starting with '#'
// are skipped. Every row must have the same number of columns.
func LoadText(path string) (*mask.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	var (
		values []float64
		rows   int
		cols   = -1
		line   int
	)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if cols >= 0 && len(fields) != cols {
			return nil, &IOError{Op: "decode", Path: path,
				Err: fmt.Errorf("line %d has %d columns, expected %d", line, len(fields), cols)}
		}
		cols = len(fields)
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &IOError{Op: "decode", Path: path, Err: fmt.Errorf("line %d: %w", line, err)}
			}
			values = append(values, v)
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	if rows == 0 {
		return nil, &IOError{Op: "decode", Path: path, Err: fmt.Errorf("no numeric rows")}
	}

	g, err := mask.NewGridFromData([]int{rows, cols}, values)
	if err != nil {
		return nil, &IOError{Op: "decode", Path: path, Err: err}
	}
	return g, nil
}
