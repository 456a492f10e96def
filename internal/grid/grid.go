// Package grid implements the 4-connected grid maps the planners run on.
package grid

import (
	"math/rand"
	"strings"

	"github.com/elektrokombinacija/mapf-grid/internal/core"
)

// Grid is a rectangular map with permanently blocked cells. It
// implements core.Map and is never mutated once handed to a solver.
type Grid struct {
	width, height int
	blocked       []bool
}

// New creates an open grid of the given dimensions.
func New(width, height int) *Grid {
	return &Grid{
		width:   width,
		height:  height,
		blocked: make([]bool, width*height),
	}
}

// Bounds returns the map extents.
func (g *Grid) Bounds() (int, int) { return g.width, g.height }

// IsBlocked reports whether a cell is impassable. Out-of-range cells
// are blocked.
func (g *Grid) IsBlocked(x, y int) bool {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return true
	}
	return g.blocked[y*g.width+x]
}

// Block marks a cell as impassable.
func (g *Grid) Block(x, y int) {
	if x >= 0 && x < g.width && y >= 0 && y < g.height {
		g.blocked[y*g.width+x] = true
	}
}

// Neighbors4 appends the passable cardinal neighbors of c to dst and
// returns it. dst may be nil.
func (g *Grid) Neighbors4(c core.Cell, dst []core.Cell) []core.Cell {
	for _, d := range [4]core.Cell{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
		n := core.Cell{X: c.X + d.X, Y: c.Y + d.Y}
		if !g.IsBlocked(n.X, n.Y) {
			dst = append(dst, n)
		}
	}
	return dst
}

// Random generates a grid with obstacle density in [0,1), using the
// supplied source for reproducibility.
func Random(width, height int, density float64, rng *rand.Rand) *Grid {
	g := New(width, height)
	for i := range g.blocked {
		if rng.Float64() < density {
			g.blocked[i] = true
		}
	}
	return g
}

// String renders the grid in map-file notation, one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.blocked[y*g.width+x] {
				b.WriteByte('@')
			} else {
				b.WriteByte('.')
			}
		}
		if y < g.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
