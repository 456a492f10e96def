package core

// Map is the read-only view of the environment the planners consume.
// It is never mutated during a search.
type Map interface {
	// IsBlocked reports whether a cell is permanently impassable.
	IsBlocked(x, y int) bool

	// Bounds returns the map extents.
	Bounds() (width, height int)
}

// InBounds reports whether a cell lies inside the map extents.
func InBounds(m Map, c Cell) bool {
	w, h := m.Bounds()
	return c.X >= 0 && c.X < w && c.Y >= 0 && c.Y < h
}
