// Package core defines domain models for grid-based MAPF.
package core

// Cell is a position on the grid.
type Cell struct {
	X, Y int
}

// Manhattan returns the L1 distance to another cell.
func (c Cell) Manhattan(o Cell) int {
	dx := c.X - o.X
	if dx < 0 {
		dx = -dx
	}
	dy := c.Y - o.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// AgentID is a unique agent identifier.
type AgentID int

// TimedCell is a position at a specific timestep.
type TimedCell struct {
	Cell
	T int
}

// Path is a sequence of timed positions. A well-formed path starts at
// T=0 and advances one timestep per entry, so Path[i].T == i.
type Path []TimedCell

// Cost returns the path cost: the number of actions taken, i.e. the
// arrival timestep at the goal. An empty path has cost 0.
func (p Path) Cost() int {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1].T
}

// At returns the cell occupied at timestep t and whether the agent is
// still executing its path at that time. An agent whose path has ended
// leaves the grid as far as occupancy is concerned.
func (p Path) At(t int) (Cell, bool) {
	if t < 0 || t >= len(p) {
		return Cell{}, false
	}
	return p[t].Cell, true
}

// Agent pairs a start and goal position.
type Agent struct {
	ID    AgentID
	Start Cell
	Goal  Cell
}
