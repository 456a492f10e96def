package sim

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-grid/internal/algo"
	"github.com/elektrokombinacija/mapf-grid/internal/core"
	"github.com/elektrokombinacija/mapf-grid/internal/grid"
)

func solvedInstance(t *testing.T) (*core.Instance, *core.Solution) {
	t.Helper()
	g := grid.New(5, 5)
	inst, err := core.NewInstance(g,
		[]core.Cell{{X: 0, Y: 0}, {X: 4, Y: 0}},
		[]core.Cell{{X: 4, Y: 0}, {X: 0, Y: 0}},
	)
	require.NoError(t, err)

	sol, err := algo.NewCBS(0).Solve(inst)
	require.NoError(t, err)
	return inst, sol
}

func TestReplay_CleanSolution(t *testing.T) {
	inst, sol := solvedInstance(t)

	m, err := (&Replayer{}).Run(inst, sol)
	require.NoError(t, err)

	assert.True(t, m.Clean)
	assert.Zero(t, m.Collisions)
	assert.Zero(t, m.IllegalMoves)
	assert.Equal(t, sol.Cost, m.TotalCost)
	assert.Equal(t, 2, m.Agents)
	assert.GreaterOrEqual(t, m.WaitActions+m.TotalCost, 8)
}

func TestReplay_DetectsInjectedCollision(t *testing.T) {
	inst, sol := solvedInstance(t)

	// Overwrite one agent's path with the other's mirror so both walk
	// the same row and meet.
	sol.Paths[0] = core.Path{
		{Cell: core.Cell{X: 0, Y: 0}, T: 0},
		{Cell: core.Cell{X: 1, Y: 0}, T: 1},
		{Cell: core.Cell{X: 2, Y: 0}, T: 2},
		{Cell: core.Cell{X: 3, Y: 0}, T: 3},
		{Cell: core.Cell{X: 4, Y: 0}, T: 4},
	}
	sol.Paths[1] = core.Path{
		{Cell: core.Cell{X: 4, Y: 0}, T: 0},
		{Cell: core.Cell{X: 3, Y: 0}, T: 1},
		{Cell: core.Cell{X: 2, Y: 0}, T: 2},
		{Cell: core.Cell{X: 1, Y: 0}, T: 3},
		{Cell: core.Cell{X: 0, Y: 0}, T: 4},
	}

	m, err := (&Replayer{}).Run(inst, sol)
	require.NoError(t, err)
	assert.False(t, m.Clean)
	assert.Equal(t, 1, m.Collisions)
}

func TestReplay_DetectsTeleport(t *testing.T) {
	g := grid.New(5, 1)
	inst, err := core.NewInstance(g,
		[]core.Cell{{X: 0, Y: 0}},
		[]core.Cell{{X: 4, Y: 0}},
	)
	require.NoError(t, err)

	sol := core.NewSolution()
	sol.Paths[0] = core.Path{
		{Cell: core.Cell{X: 0, Y: 0}, T: 0},
		{Cell: core.Cell{X: 3, Y: 0}, T: 1},
		{Cell: core.Cell{X: 4, Y: 0}, T: 2},
	}
	sol.ComputeCost()
	sol.Feasible = true

	m, err := (&Replayer{}).Run(inst, sol)
	require.NoError(t, err)
	assert.False(t, m.Clean)
	assert.Equal(t, 1, m.IllegalMoves)
}

func TestReplay_RejectsMissingPath(t *testing.T) {
	inst, sol := solvedInstance(t)
	delete(sol.Paths, 1)

	_, err := (&Replayer{}).Run(inst, sol)
	assert.Error(t, err)
}

func TestMetricsExport(t *testing.T) {
	inst, sol := solvedInstance(t)
	m, err := (&Replayer{}).Run(inst, sol)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "metrics.json")
	require.NoError(t, m.Export(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var back Metrics
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, m.TotalCost, back.TotalCost)
	assert.True(t, back.Clean)
}
