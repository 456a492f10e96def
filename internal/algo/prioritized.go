package algo

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/elektrokombinacija/mapf-grid/internal/core"
)

// Prioritized implements prioritized planning: agents are planned one
// at a time in a fixed order, and every planned path is frozen as
// constraints for the agents after it. Much faster than CBS, but
// suboptimal, and it can fail on instances CBS solves.
type Prioritized struct {
	Horizon  int
	Strategy Strategy
	Logger   logrus.FieldLogger
}

// NewPrioritized creates a prioritized planning solver.
func NewPrioritized(horizon int) *Prioritized {
	return &Prioritized{Horizon: horizon, Strategy: AStar{}}
}

func (p *Prioritized) Name() string { return "Prioritized" }

// Solve plans agents in priority order.
func (p *Prioritized) Solve(inst *core.Instance) (*core.Solution, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}

	order := p.priorityOrder(inst)
	horizon := p.Horizon
	if horizon <= 0 {
		w, h := inst.Map.Bounds()
		horizon = w*h + len(inst.Agents)
	}

	sol := core.NewSolution()
	table := NewConstraintTable()

	for _, a := range order {
		cost, path, err := FindPath(inst.Map, a.Start, a.Goal, table, p.strategy(), horizon)
		if err != nil {
			return nil, errors.Wrapf(err, "agent %d under %d frozen paths", a.ID, len(sol.Paths))
		}
		sol.Paths[a.ID] = path
		sol.Cost += cost

		// Freeze this path, parking the agent at its goal so lower
		// priority agents route around it.
		table.AddPath(path, horizon)
	}

	sol.Feasible = true
	if p.Logger != nil {
		p.Logger.WithFields(logrus.Fields{
			"solver": p.Name(),
			"cost":   sol.Cost,
		}).Debug("solution found")
	}
	return sol, nil
}

// priorityOrder plans agents with longer start-goal distances first;
// they have the least routing slack. Ties break on agent id.
func (p *Prioritized) priorityOrder(inst *core.Instance) []core.Agent {
	order := append([]core.Agent(nil), inst.Agents...)
	sort.SliceStable(order, func(i, j int) bool {
		di := order[i].Start.Manhattan(order[i].Goal)
		dj := order[j].Start.Manhattan(order[j].Goal)
		if di != dj {
			return di > dj
		}
		return order[i].ID < order[j].ID
	})
	return order
}

func (p *Prioritized) strategy() Strategy {
	if p.Strategy != nil {
		return p.Strategy
	}
	return AStar{}
}
