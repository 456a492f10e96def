package algo

import (
	"container/heap"

	"github.com/pkg/errors"

	"github.com/elektrokombinacija/mapf-grid/internal/core"
)

// Strategy orders the open list of the single-agent search. AStar and
// UniformCost share all expansion, pruning and constraint logic and
// differ only here.
type Strategy interface {
	Name() string
	// Cost returns the open-list priority for a state at cell c with
	// g actions taken, heading to goal.
	Cost(g int, c, goal core.Cell) int
}

// AStar orders by g plus the Manhattan distance to the goal. The
// heuristic is admissible and consistent on 4-connected unit-cost
// grids, so the first goal state popped is optimal.
type AStar struct{}

func (AStar) Name() string { return "astar" }

func (AStar) Cost(g int, c, goal core.Cell) int { return g + c.Manhattan(goal) }

// UniformCost orders by g alone (Dijkstra).
type UniformCost struct{}

func (UniformCost) Name() string { return "dijkstra" }

func (UniformCost) Cost(g int, c, goal core.Cell) int { return g }

// stateNode is one space-time state in the search arena. Parent links
// are arena indices, never pointers; a path is recovered by walking
// ids back to the start.
type stateNode struct {
	cell   core.Cell
	g      int
	parent int32
}

// openEntry is a lazy open-list entry. Stale entries are discarded on
// pop by comparing against the reached map.
type openEntry struct {
	id   int32
	cost int
	seq  int
	idx  int
}

type openHeap []*openEntry

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].seq < h[j].seq
}
func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].idx = i
	h[j].idx = j
}
func (h *openHeap) Push(x any) {
	e := x.(*openEntry)
	e.idx = len(*h)
	*h = append(*h, e)
}
func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// stateKey packs (cell index, timestep) into a collision-free closed
// list key for fixed map bounds.
func stateKey(width int, c core.Cell, g int) uint64 {
	return uint64(c.Y*width+c.X)<<32 | uint64(uint32(g))
}

// FindPath runs constrained space-time A* for one agent. Each action,
// the four cardinal moves and a wait, costs 1 and advances time by 1.
// A successor is pruned if it leaves the map, enters blocked terrain,
// violates a constraint, or exceeds horizon timesteps. The goal test
// fires on the first popped state at the goal cell whose arrival time
// is itself permitted; if the goal is forbidden at that time the
// search keeps running until a later permitted arrival.
//
// Returns the path cost and the start-to-goal path, or ErrNoPath once
// the open list is exhausted.
func FindPath(m core.Map, start, goal core.Cell, cons Constraints, strat Strategy, horizon int) (int, core.Path, error) {
	width, height := m.Bounds()
	if horizon <= 0 {
		horizon = defaultHorizon(width, height, cons)
	}

	arena := make([]stateNode, 1, 64)
	arena[0] = stateNode{cell: start, g: 0, parent: -1}

	// reached maps a space-time key to the best g admitted for it.
	reached := make(map[uint64]int)
	reached[stateKey(width, start, 0)] = 0

	open := &openHeap{}
	heap.Init(open)
	seq := 0
	heap.Push(open, &openEntry{id: 0, cost: strat.Cost(0, start, goal), seq: seq})

	moves := [5]core.Cell{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {}}

	for open.Len() > 0 {
		e := heap.Pop(open).(*openEntry)
		s := arena[e.id]

		// A better entry for this key was admitted after e was pushed.
		if best, ok := reached[stateKey(width, s.cell, s.g)]; ok && best < s.g {
			continue
		}

		if s.cell == goal {
			if cons == nil || !cons.Forbids(goal, s.g) {
				return s.g, recoverPath(arena, e.id), nil
			}
		}

		ng := s.g + 1
		if ng > horizon {
			continue
		}

		for _, d := range moves {
			nc := core.Cell{X: s.cell.X + d.X, Y: s.cell.Y + d.Y}
			if nc.X < 0 || nc.X >= width || nc.Y < 0 || nc.Y >= height {
				continue
			}
			if m.IsBlocked(nc.X, nc.Y) {
				continue
			}
			if cons != nil && cons.Forbids(nc, ng) {
				continue
			}

			key := stateKey(width, nc, ng)
			if best, ok := reached[key]; ok && best <= ng {
				continue
			}
			reached[key] = ng

			arena = append(arena, stateNode{cell: nc, g: ng, parent: e.id})
			seq++
			heap.Push(open, &openEntry{
				id:   int32(len(arena) - 1),
				cost: strat.Cost(ng, nc, goal),
				seq:  seq,
			})
		}
	}

	return 0, nil, errors.Wrapf(ErrNoPath, "from (%d,%d) to (%d,%d)", start.X, start.Y, goal.X, goal.Y)
}

// recoverPath walks parent ids from the goal state back to the start
// and reverses the result.
func recoverPath(arena []stateNode, id int32) core.Path {
	n := 0
	for i := id; i >= 0; i = arena[i].parent {
		n++
	}
	path := make(core.Path, n)
	for i := id; i >= 0; i = arena[i].parent {
		n--
		path[n] = core.TimedCell{Cell: arena[i].cell, T: arena[i].g}
	}
	return path
}

// defaultHorizon bounds the search so exhaustion terminates: every
// cell can be visited once, plus slack to wait out any constraint.
func defaultHorizon(width, height int, cons Constraints) int {
	h := width * height
	if ct, ok := cons.(*ConstraintTable); ok && ct != nil {
		h += ct.Horizon()
	} else if cs, ok := cons.(*ConstraintSet); ok {
		h += cs.Len()
	}
	return h
}
