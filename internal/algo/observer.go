package algo

import "github.com/elektrokombinacija/mapf-grid/internal/core"

// Observer receives callbacks as the constraint tree search runs.
// Implementations must not mutate what they are handed.
type Observer interface {
	// OnNodeExpanded is called when a constraint tree node is popped.
	OnNodeExpanded(nodeID, parentID, cost, constraints int)

	// OnConflictDetected is called for the conflict a node branches on.
	OnConflictDetected(conflict *Conflict)

	// OnSolutionFound is called once with the accepted solution.
	OnSolutionFound(solution *core.Solution)
}

// Stats accumulates search counters. It implements Observer and can be
// attached to a solver directly.
type Stats struct {
	NodesExpanded  int
	ConflictsFound int
	LowLevelCalls  int
	MaxOpenSize    int
}

func (s *Stats) OnNodeExpanded(nodeID, parentID, cost, constraints int) {
	s.NodesExpanded++
}

func (s *Stats) OnConflictDetected(conflict *Conflict) {
	s.ConflictsFound++
}

func (s *Stats) OnSolutionFound(solution *core.Solution) {}
