package algo

import "github.com/elektrokombinacija/mapf-grid/internal/core"

// FirstConflict steps all paths in lockstep and returns the earliest
// vertex conflict, or nil if the joint plan is collision-free. Agents
// whose paths have ended are absent from later timesteps. When more
// than two agents share a cell, the two lowest ids are reported;
// resolving that pair surfaces the rest in later constraint tree
// nodes.
func FirstConflict(paths map[core.AgentID]core.Path) *Conflict {
	ids := sortedAgentIDs(paths)

	maxLen := 0
	for _, id := range ids {
		if n := len(paths[id]); n > maxLen {
			maxLen = n
		}
	}

	occupied := make(map[core.Cell]core.AgentID, len(ids))
	for t := 0; t < maxLen; t++ {
		clear(occupied)
		for _, id := range ids {
			c, active := paths[id].At(t)
			if !active {
				continue
			}
			if other, taken := occupied[c]; taken {
				return &Conflict{AgentA: other, AgentB: id, Cell: c, Time: t}
			}
			occupied[c] = id
		}
	}
	return nil
}

// AllConflicts returns every vertex conflict in the joint plan, in
// timestep order. Diagnostic use only; the solvers branch on
// FirstConflict.
func AllConflicts(paths map[core.AgentID]core.Path) []*Conflict {
	ids := sortedAgentIDs(paths)

	maxLen := 0
	for _, id := range ids {
		if n := len(paths[id]); n > maxLen {
			maxLen = n
		}
	}

	var conflicts []*Conflict
	occupied := make(map[core.Cell]core.AgentID, len(ids))
	for t := 0; t < maxLen; t++ {
		clear(occupied)
		for _, id := range ids {
			c, active := paths[id].At(t)
			if !active {
				continue
			}
			if other, taken := occupied[c]; taken {
				conflicts = append(conflicts, &Conflict{AgentA: other, AgentB: id, Cell: c, Time: t})
				continue
			}
			occupied[c] = id
		}
	}
	return conflicts
}
