package algo

import "github.com/elektrokombinacija/mapf-grid/internal/core"

// SolveMAPF finds a minimum-total-cost collision-free joint plan for
// agents given as parallel start/goal slices. Returns ErrInfeasible
// when no such plan exists.
func SolveMAPF(m core.Map, starts, goals []core.Cell) (*core.Solution, error) {
	inst, err := core.NewInstance(m, starts, goals)
	if err != nil {
		return nil, err
	}
	return NewCBS(0).Solve(inst)
}

// SolveSingleAgent runs the constrained pathfinder standalone. cons
// may be nil. Returns ErrNoPath when the goal is unreachable under
// the constraints.
func SolveSingleAgent(m core.Map, start, goal core.Cell, cons Constraints) (int, core.Path, error) {
	return FindPath(m, start, goal, cons, AStar{}, 0)
}
