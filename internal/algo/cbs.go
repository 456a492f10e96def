package algo

import (
	"container/heap"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/elektrokombinacija/mapf-grid/internal/core"
)

// CBS implements optimal Conflict-Based Search: a best-first search
// over a tree of constraint sets, each node replanning single agents
// with constrained space-time A*. The first conflict-free node popped
// has globally minimal sum of costs, because a child's cost never
// drops below its parent's and the open list pops lowest cost first.
type CBS struct {
	// Horizon caps single-agent path length in timesteps. Zero derives
	// a bound from the map size and constraint count.
	Horizon int

	// Strategy orders the low-level search. Defaults to AStar.
	Strategy Strategy

	Logger   logrus.FieldLogger
	Observer Observer

	// Stats of the most recent Solve call.
	Stats Stats
}

// NewCBS creates a CBS solver.
func NewCBS(horizon int) *CBS {
	return &CBS{Horizon: horizon, Strategy: AStar{}}
}

func (c *CBS) Name() string { return "CBS" }

// cbsNode is a node of the constraint tree: one constraint set per
// agent plus the joint plan computed under those constraints.
type cbsNode struct {
	id          int
	parentID    int
	constraints []*ConstraintSet // indexed like Instance.Agents
	paths       map[core.AgentID]core.Path
	cost        int
	seq         int
	index       int
}

type cbsHeap []*cbsNode

func (h cbsHeap) Len() int { return len(h) }
func (h cbsHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].seq < h[j].seq
}
func (h cbsHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *cbsHeap) Push(x any) {
	n := x.(*cbsNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *cbsHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// Solve implements the CBS algorithm.
func (c *CBS) Solve(inst *core.Instance) (*core.Solution, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	c.Stats = Stats{}
	log := c.logger().WithField("solver", c.Name())

	// Root: plan every agent unconstrained. A missing path here means
	// the instance itself is unsolvable.
	root := &cbsNode{
		parentID:    -1,
		constraints: make([]*ConstraintSet, len(inst.Agents)),
		paths:       make(map[core.AgentID]core.Path, len(inst.Agents)),
	}
	for _, a := range inst.Agents {
		cost, path, err := c.plan(inst, a)
		if err != nil {
			return nil, errors.Wrapf(ErrInfeasible, "agent %d: goal unreachable from start", a.ID)
		}
		root.paths[a.ID] = path
		root.cost += cost
	}

	open := &cbsHeap{}
	heap.Init(open)
	heap.Push(open, root)
	nextID := 1
	seq := 0

	for open.Len() > 0 {
		if open.Len() > c.Stats.MaxOpenSize {
			c.Stats.MaxOpenSize = open.Len()
		}
		node := heap.Pop(open).(*cbsNode)
		c.Stats.NodesExpanded++
		if c.Observer != nil {
			c.Observer.OnNodeExpanded(node.id, node.parentID, node.cost, c.constraintCount(node))
		}

		conflict := FirstConflict(node.paths)
		if conflict == nil {
			sol := core.NewSolution()
			sol.Paths = node.paths
			sol.Cost = node.cost
			sol.Feasible = true
			if c.Observer != nil {
				c.Observer.OnSolutionFound(sol)
			}
			log.WithFields(logrus.Fields{
				"cost":  sol.Cost,
				"nodes": c.Stats.NodesExpanded,
			}).Debug("solution found")
			return sol, nil
		}

		c.Stats.ConflictsFound++
		if c.Observer != nil {
			c.Observer.OnConflictDetected(conflict)
		}
		log.WithFields(logrus.Fields{
			"agentA": conflict.AgentA,
			"agentB": conflict.AgentB,
			"cell":   conflict.Cell,
			"time":   conflict.Time,
		}).Debug("branching on conflict")

		// Two children, each forbidding one conflicting agent from the
		// contested (cell, timestep). Only that agent is replanned; the
		// rest of the parent's paths are reused.
		for _, id := range [2]core.AgentID{conflict.AgentA, conflict.AgentB} {
			idx := agentIndex(inst, id)
			child := &cbsNode{
				id:          nextID,
				parentID:    node.id,
				constraints: append([]*ConstraintSet(nil), node.constraints...),
				paths:       make(map[core.AgentID]core.Path, len(node.paths)),
			}
			nextID++
			child.constraints[idx] = node.constraints[idx].Extend(conflict.Cell, conflict.Time)

			agent := inst.Agents[idx]
			cost, path, err := c.planConstrained(inst, agent, child.constraints[idx])
			if err != nil {
				// Infeasible branch, never enqueued.
				continue
			}

			for aid, p := range node.paths {
				if aid != id {
					child.paths[aid] = p
					child.cost += p.Cost()
				}
			}
			child.paths[id] = path
			child.cost += cost

			seq++
			child.seq = seq
			heap.Push(open, child)
		}
	}

	return nil, errors.Wrap(ErrInfeasible, "constraint tree exhausted")
}

func (c *CBS) plan(inst *core.Instance, a core.Agent) (int, core.Path, error) {
	return c.planConstrained(inst, a, nil)
}

func (c *CBS) planConstrained(inst *core.Instance, a core.Agent, cs *ConstraintSet) (int, core.Path, error) {
	c.Stats.LowLevelCalls++
	var cons Constraints
	if cs != nil {
		cons = cs
	}
	return FindPath(inst.Map, a.Start, a.Goal, cons, c.strategy(), c.Horizon)
}

func (c *CBS) constraintCount(node *cbsNode) int {
	n := 0
	for _, cs := range node.constraints {
		n += cs.Len()
	}
	return n
}

func (c *CBS) strategy() Strategy {
	if c.Strategy != nil {
		return c.Strategy
	}
	return AStar{}
}

func (c *CBS) logger() logrus.FieldLogger {
	if c.Logger != nil {
		return c.Logger
	}
	return discardLogger
}
