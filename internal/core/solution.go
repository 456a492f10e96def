package core

// Solution represents a complete joint plan.
type Solution struct {
	Paths    map[AgentID]Path
	Cost     int // Sum of per-agent path costs
	Feasible bool
}

// NewSolution creates an empty solution.
func NewSolution() *Solution {
	return &Solution{
		Paths: make(map[AgentID]Path),
	}
}

// ComputeCost recalculates the sum-of-costs objective from the paths.
func (s *Solution) ComputeCost() int {
	total := 0
	for _, p := range s.Paths {
		total += p.Cost()
	}
	s.Cost = total
	return total
}

// Makespan returns the length of the longest path, the time at which
// the last agent reaches its goal.
func (s *Solution) Makespan() int {
	max := 0
	for _, p := range s.Paths {
		if c := p.Cost(); c > max {
			max = c
		}
	}
	return max
}
