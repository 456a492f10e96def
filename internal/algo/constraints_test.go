package algo

import (
	"testing"

	"github.com/elektrokombinacija/mapf-grid/internal/core"
)

func TestConstraintSet_ExtendIsPersistent(t *testing.T) {
	var base *ConstraintSet
	c1 := core.Cell{X: 1, Y: 1}
	c2 := core.Cell{X: 2, Y: 2}

	a := base.Extend(c1, 3)
	b := a.Extend(c2, 5)

	if base.Forbids(c1, 3) {
		t.Error("empty set forbids (1,1) t=3")
	}
	if !a.Forbids(c1, 3) || a.Forbids(c2, 5) {
		t.Error("first layer has wrong contents")
	}
	if !b.Forbids(c1, 3) || !b.Forbids(c2, 5) {
		t.Error("second layer lost an entry")
	}
	if a.Forbids(c1, 4) {
		t.Error("constraint leaked to a different timestep")
	}
	if a.Len() != 1 || b.Len() != 2 || base.Len() != 0 {
		t.Errorf("lengths = %d, %d, %d, want 1, 2, 0", a.Len(), b.Len(), base.Len())
	}
}

func TestConstraintTable_AddPathParksAtGoal(t *testing.T) {
	ct := NewConstraintTable()
	path := core.Path{
		{Cell: core.Cell{X: 0, Y: 0}, T: 0},
		{Cell: core.Cell{X: 1, Y: 0}, T: 1},
		{Cell: core.Cell{X: 2, Y: 0}, T: 2},
	}
	ct.AddPath(path, 5)

	if !ct.Forbids(core.Cell{X: 1, Y: 0}, 1) {
		t.Error("traversed cell not forbidden")
	}
	if ct.Forbids(core.Cell{X: 1, Y: 0}, 2) {
		t.Error("cell forbidden after the agent left it")
	}
	for tt := 2; tt <= 5; tt++ {
		if !ct.Forbids(core.Cell{X: 2, Y: 0}, tt) {
			t.Errorf("goal cell not parked at t=%d", tt)
		}
	}
	if ct.Horizon() != 5 {
		t.Errorf("horizon = %d, want 5", ct.Horizon())
	}
}
