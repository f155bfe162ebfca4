package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// intList is a flag.Value holding one or more integers given as a comma-
// or space-separated list.
type intList []int

func (l *intList) String() string {
	if l == nil {
		return ""
	}
	return joinValues(*l, func(v int) string { return strconv.Itoa(v) })
}

func (l *intList) Set(s string) error {
	var out []int
	for _, field := range splitList(s) {
		v, err := strconv.Atoi(field)
		if err != nil {
			return fmt.Errorf("%q is not an integer", field)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return fmt.Errorf("at least one value is required")
	}
	*l = out
	return nil
}

// floatList is the float64 counterpart of intList.
type floatList []float64

func (l *floatList) String() string {
	if l == nil {
		return ""
	}
	return joinValues(*l, func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) })
}

func (l *floatList) Set(s string) error {
	var out []float64
	for _, field := range splitList(s) {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", field)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return fmt.Errorf("at least one value is required")
	}
	*l = out
	return nil
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

func joinValues[T any](vals []T, format func(T) string) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = format(v)
	}
	return strings.Join(parts, ",")
}

// multiValueFlags take one or more numbers. "-I 10 12" is folded into
// "-I 10,12" before the flag set sees it, so negative positions such as
// "-P 20 -5" are read as values rather than flags.
var multiValueFlags = map[string]bool{
	"I": true, "image-size": true,
	"M": true, "mask-size": true,
	"P": true, "mask-pos": true,
	"voxel-size": true,
}

// foldMultiValues joins the numbers following a multi-value flag into a
// single comma-separated argument. Anything after a bare "--" is left
// alone.
func foldMultiValues(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		out = append(out, arg)
		if arg == "--" {
			return append(out, args[i+1:]...)
		}
		name := strings.TrimLeft(arg, "-")
		if !strings.HasPrefix(arg, "-") || strings.Contains(name, "=") || !multiValueFlags[name] {
			continue
		}
		if i+1 >= len(args) {
			continue
		}
		values := []string{args[i+1]}
		i++
		for i+1 < len(args) && isNumber(args[i+1]) {
			values = append(values, args[i+1])
			i++
		}
		out = append(out, strings.Join(values, ","))
	}
	return out
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
