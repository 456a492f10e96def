// Package algo implements grid MAPF solving algorithms.
package algo

import (
	"errors"
	"io"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/elektrokombinacija/mapf-grid/internal/core"
)

// Solver is the interface for MAPF algorithms.
type Solver interface {
	// Solve attempts to find a collision-free joint plan for the
	// instance. ErrInfeasible is returned when none exists.
	Solve(inst *core.Instance) (*core.Solution, error)

	// Name returns the algorithm name.
	Name() string
}

// ErrNoPath is returned when a single agent's constrained search
// exhausts its open list without reaching the goal.
var ErrNoPath = errors.New("no path")

// ErrInfeasible is returned when no collision-free joint plan exists
// for an instance. Distinct from ErrNoPath, which is per agent.
var ErrInfeasible = errors.New("instance infeasible")

// Conflict is two agents occupying the same cell at the same timestep.
type Conflict struct {
	AgentA, AgentB core.AgentID
	Cell           core.Cell
	Time           int
}

// sortedAgentIDs returns the path map's keys in ascending order, so
// every scan over agents is deterministic.
func sortedAgentIDs(paths map[core.AgentID]core.Path) []core.AgentID {
	ids := make([]core.AgentID, 0, len(paths))
	for id := range paths {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// agentIndex returns the position of an agent in the instance slice.
func agentIndex(inst *core.Instance, id core.AgentID) int {
	for i := range inst.Agents {
		if inst.Agents[i].ID == id {
			return i
		}
	}
	return -1
}

// discardLogger is used when a solver has no logger attached.
var discardLogger = func() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()
