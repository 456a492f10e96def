// Package sim replays solved plans in lockstep and audits them.
//
// The solvers already guarantee conflict-free output; the replayer is
// the independent check used by the CLI and the benchmark runner. It
// walks every timestep of a joint plan and verifies that moves are
// legal and that no two executing agents ever share a cell.
package sim

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/elektrokombinacija/mapf-grid/internal/core"
)

// Metrics summarizes one replay run.
type Metrics struct {
	Agents       int       `json:"agents"`
	Timesteps    int       `json:"timesteps"`
	TotalCost    int       `json:"total_cost"`
	Makespan     int       `json:"makespan"`
	WaitActions  int       `json:"wait_actions"`
	Collisions   int       `json:"collisions"`
	IllegalMoves int       `json:"illegal_moves"`
	Clean        bool      `json:"clean"`
	ReplayedAt   time.Time `json:"replayed_at"`
}

// Replayer steps a solution through simulated time.
type Replayer struct {
	Logger logrus.FieldLogger
}

// Run replays sol against the instance and returns metrics. The error
// is non-nil for structural problems (missing paths, wrong endpoints);
// collisions and illegal moves are counted in the metrics and flip
// Clean to false.
func (r *Replayer) Run(inst *core.Instance, sol *core.Solution) (*Metrics, error) {
	if sol == nil {
		return nil, errors.New("sim: nil solution")
	}

	m := &Metrics{
		Agents:     len(inst.Agents),
		TotalCost:  sol.Cost,
		Makespan:   sol.Makespan(),
		ReplayedAt: time.Now().UTC(),
	}

	for _, a := range inst.Agents {
		path, ok := sol.Paths[a.ID]
		if !ok || len(path) == 0 {
			return nil, errors.Errorf("sim: agent %d has no path", a.ID)
		}
		if path[0].Cell != a.Start {
			return nil, errors.Errorf("sim: agent %d path starts at (%d,%d), agent starts at (%d,%d)",
				a.ID, path[0].X, path[0].Y, a.Start.X, a.Start.Y)
		}
		if last := path[len(path)-1].Cell; last != a.Goal {
			return nil, errors.Errorf("sim: agent %d path ends at (%d,%d), goal is (%d,%d)",
				a.ID, last.X, last.Y, a.Goal.X, a.Goal.Y)
		}
	}

	maxLen := 0
	for _, a := range inst.Agents {
		if n := len(sol.Paths[a.ID]); n > maxLen {
			maxLen = n
		}
	}
	m.Timesteps = maxLen

	occupied := make(map[core.Cell]core.AgentID, len(inst.Agents))
	for t := 0; t < maxLen; t++ {
		clear(occupied)
		for _, a := range inst.Agents {
			path := sol.Paths[a.ID]
			c, active := path.At(t)
			if !active {
				continue
			}

			if inst.Map.IsBlocked(c.X, c.Y) {
				m.IllegalMoves++
				r.log().WithFields(logrus.Fields{
					"agent": a.ID, "cell": c, "t": t,
				}).Warn("agent on blocked terrain")
			}
			if t > 0 {
				prev, _ := path.At(t - 1)
				switch d := prev.Manhattan(c); d {
				case 0:
					m.WaitActions++
				case 1:
					// Legal cardinal move.
				default:
					m.IllegalMoves++
					r.log().WithFields(logrus.Fields{
						"agent": a.ID, "from": prev, "to": c, "t": t,
					}).Warn("agent teleported")
				}
			}

			if other, taken := occupied[c]; taken {
				m.Collisions++
				r.log().WithFields(logrus.Fields{
					"agents": []core.AgentID{other, a.ID}, "cell": c, "t": t,
				}).Warn("collision")
				continue
			}
			occupied[c] = a.ID
		}
	}

	m.Clean = m.Collisions == 0 && m.IllegalMoves == 0
	return m, nil
}

// Export writes metrics to a JSON file.
func (m *Metrics) Export(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "sim: encoding metrics")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "sim: writing %s", path)
}

func (r *Replayer) log() logrus.FieldLogger {
	if r.Logger != nil {
		return r.Logger
	}
	return logrus.StandardLogger()
}
