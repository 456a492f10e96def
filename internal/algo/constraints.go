package algo

import "github.com/elektrokombinacija/mapf-grid/internal/core"

// Constraints answers whether an agent is forbidden from a cell at a
// timestep. A nil value forbids nothing.
type Constraints interface {
	Forbids(c core.Cell, t int) bool
}

// ConstraintSet is a persistent set of forbidden (cell, timestep)
// pairs. Extend shares all existing entries with the receiver, so CBS
// branching never copies a parent's constraints. Sets only grow; a nil
// *ConstraintSet is the empty set.
type ConstraintSet struct {
	parent *ConstraintSet
	cell   core.Cell
	time   int
}

// Extend returns a set containing the receiver's entries plus one.
func (cs *ConstraintSet) Extend(c core.Cell, t int) *ConstraintSet {
	return &ConstraintSet{parent: cs, cell: c, time: t}
}

// Forbids reports whether (c, t) is in the set.
func (cs *ConstraintSet) Forbids(c core.Cell, t int) bool {
	for s := cs; s != nil; s = s.parent {
		if s.time == t && s.cell == c {
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (cs *ConstraintSet) Len() int {
	n := 0
	for s := cs; s != nil; s = s.parent {
		n++
	}
	return n
}

// ConstraintTable is a mutable cell-to-timesteps constraint store, for
// planners that accumulate many constraints up front.
type ConstraintTable struct {
	forbidden map[core.Cell]map[int]struct{}
	horizon   int
}

// NewConstraintTable creates an empty table.
func NewConstraintTable() *ConstraintTable {
	return &ConstraintTable{forbidden: make(map[core.Cell]map[int]struct{})}
}

// Add forbids (c, t).
func (ct *ConstraintTable) Add(c core.Cell, t int) {
	ts, ok := ct.forbidden[c]
	if !ok {
		ts = make(map[int]struct{})
		ct.forbidden[c] = ts
	}
	ts[t] = struct{}{}
	if t > ct.horizon {
		ct.horizon = t
	}
}

// AddPath forbids every (cell, timestep) a planned path occupies, then
// parks the agent on its final cell until the given horizon so later
// plans route around it.
func (ct *ConstraintTable) AddPath(p core.Path, horizon int) {
	for _, tc := range p {
		ct.Add(tc.Cell, tc.T)
	}
	if len(p) == 0 {
		return
	}
	last := p[len(p)-1]
	for t := last.T + 1; t <= horizon; t++ {
		ct.Add(last.Cell, t)
	}
}

// Forbids reports whether (c, t) is in the table.
func (ct *ConstraintTable) Forbids(c core.Cell, t int) bool {
	ts, ok := ct.forbidden[c]
	if !ok {
		return false
	}
	_, hit := ts[t]
	return hit
}

// Horizon returns the largest forbidden timestep seen so far.
func (ct *ConstraintTable) Horizon() int { return ct.horizon }
