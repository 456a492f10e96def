package core

import "github.com/pkg/errors"

// Instance represents a MAPF problem: a shared map and one start/goal
// pair per agent.
type Instance struct {
	Map    Map
	Agents []Agent
}

// NewInstance builds an instance with agents numbered in input order.
func NewInstance(m Map, starts, goals []Cell) (*Instance, error) {
	if len(starts) != len(goals) {
		return nil, errors.Errorf("agent count mismatch: %d starts, %d goals", len(starts), len(goals))
	}
	agents := make([]Agent, len(starts))
	for i := range starts {
		agents[i] = Agent{ID: AgentID(i), Start: starts[i], Goal: goals[i]}
	}
	inst := &Instance{Map: m, Agents: agents}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// Validate rejects malformed input before any search begins.
func (inst *Instance) Validate() error {
	if inst.Map == nil {
		return errors.New("instance has no map")
	}
	if len(inst.Agents) == 0 {
		return errors.New("instance has no agents")
	}

	seenStart := make(map[Cell]AgentID, len(inst.Agents))
	seenGoal := make(map[Cell]AgentID, len(inst.Agents))

	for _, a := range inst.Agents {
		if !InBounds(inst.Map, a.Start) {
			return errors.Errorf("agent %d: start (%d,%d) out of bounds", a.ID, a.Start.X, a.Start.Y)
		}
		if !InBounds(inst.Map, a.Goal) {
			return errors.Errorf("agent %d: goal (%d,%d) out of bounds", a.ID, a.Goal.X, a.Goal.Y)
		}
		if inst.Map.IsBlocked(a.Start.X, a.Start.Y) {
			return errors.Errorf("agent %d: start (%d,%d) is blocked", a.ID, a.Start.X, a.Start.Y)
		}
		if inst.Map.IsBlocked(a.Goal.X, a.Goal.Y) {
			return errors.Errorf("agent %d: goal (%d,%d) is blocked", a.ID, a.Goal.X, a.Goal.Y)
		}
		if prev, ok := seenStart[a.Start]; ok {
			return errors.Errorf("agents %d and %d share start (%d,%d)", prev, a.ID, a.Start.X, a.Start.Y)
		}
		if prev, ok := seenGoal[a.Goal]; ok {
			return errors.Errorf("agents %d and %d share goal (%d,%d)", prev, a.ID, a.Goal.X, a.Goal.Y)
		}
		seenStart[a.Start] = a.ID
		seenGoal[a.Goal] = a.ID
	}
	return nil
}

// AgentByID finds an agent by ID.
func (inst *Instance) AgentByID(id AgentID) *Agent {
	for i := range inst.Agents {
		if inst.Agents[i].ID == id {
			return &inst.Agents[i]
		}
	}
	return nil
}
