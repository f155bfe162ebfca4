package mask

import (
	"math"
	"strings"
	"testing"
)

func TestNewGrid(t *testing.T) {
	g := NewGrid(3, 4)
	if g.Len() != 12 || g.Dims() != 2 {
		t.Fatalf("got Len %d Dims %d, want 12 and 2", g.Len(), g.Dims())
	}
	if got := g.At(2, 3); got != 0 {
		t.Errorf("At(2,3): got %v, want 0", got)
	}
}

func TestGrid_RowMajor(t *testing.T) {
	g := NewGrid(2, 3, 4)
	g.Set([]int{1, 2, 3}, 5)
	if got := g.Data()[1*12+2*4+3]; got != 5 {
		t.Errorf("last cell: got %v, want 5", got)
	}
	g.Set([]int{0, 0, 1}, 6)
	if got := g.Data()[1]; got != 6 {
		t.Errorf("last axis should be fastest: got %v, want 6", got)
	}
}

func TestGrid_OutOfRangePanics(t *testing.T) {
	tests := []struct {
		name string
		idx  []int
	}{
		{"negative", []int{-1, 0}},
		{"past end", []int{0, 4}},
		{"wrong rank", []int{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("At(%v) should panic", tt.idx)
				}
			}()
			NewGrid(3, 4).At(tt.idx...)
		})
	}
}

func TestNewGridFromData(t *testing.T) {
	g, err := NewGridFromData([]int{2, 2}, []float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("NewGridFromData failed: %v", err)
	}
	if got := g.At(1, 0); got != 3 {
		t.Errorf("At(1,0): got %v, want 3", got)
	}
	if _, err := NewGridFromData([]int{2, 3}, []float64{1, 2}); err == nil {
		t.Error("NewGridFromData should reject a short slice")
	}
	if _, err := NewGridFromData([]int{16, 1 << 30, 1 << 30}, nil); err == nil {
		t.Error("NewGridFromData should reject a shape whose size overflows")
	}
	if _, err := NewGridFromData([]int{2, math.MaxInt}, nil); err == nil {
		t.Error("NewGridFromData should reject a shape whose size overflows")
	}
}

func TestGrid_CloneIsDeep(t *testing.T) {
	g := NewGridFilled(2, 2, 2)
	c := g.Clone()
	g.Set([]int{0, 0}, 9)
	if c.At(0, 0) != 2 {
		t.Errorf("clone changed with original: got %v", c.At(0, 0))
	}
}

func TestGrid_ShapeIsCopy(t *testing.T) {
	g := NewGrid(2, 2)
	s := g.Shape()
	s[0] = 100
	if g.Shape()[0] != 2 {
		t.Error("Shape exposes internal state")
	}
}

func TestGrid_Range(t *testing.T) {
	g, _ := NewGridFromData([]int{2, 2}, []float64{3, -1, 7, 0})
	lo, hi := g.Range()
	if lo != -1 || hi != 7 {
		t.Errorf("Range: got (%v, %v), want (-1, 7)", lo, hi)
	}
}

func TestGrid_String(t *testing.T) {
	g, _ := NewGridFromData([]int{2, 3}, []float64{1, 0, 0.5, 2, 3, 1.23456})
	want := "1 0 0.5\n2 3 1.235\n"
	if got := g.String(); got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}

	g3 := NewGridFilled(1, 2, 1, 2)
	if blocks := strings.Count(g3.String(), "\n\n"); blocks != 1 {
		t.Errorf("3D String should separate depth blocks, got %q", g3.String())
	}
}

func TestForEachIndex(t *testing.T) {
	var visited [][]int
	forEachIndex([]int{1, 0}, []int{3, 2}, func(idx []int) {
		visited = append(visited, append([]int(nil), idx...))
	})
	want := [][]int{{1, 0}, {1, 1}, {2, 0}, {2, 1}}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if !sameShape(visited[i], want[i]) {
			t.Errorf("visit %d: got %v, want %v", i, visited[i], want[i])
		}
	}

	calls := 0
	forEachIndex([]int{0, 0}, []int{0, 5}, func([]int) { calls++ })
	if calls != 0 {
		t.Errorf("empty box visited %d cells", calls)
	}
}
