// Package main generates random MAPF scenarios for benchmarking.
// Instances are deterministic for a given seed and written as HCL
// scenario files consumable by internal/config and cmd/mapfgrid.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/elektrokombinacija/mapf-grid/internal/algo"
	"github.com/elektrokombinacija/mapf-grid/internal/core"
	"github.com/elektrokombinacija/mapf-grid/internal/grid"
)

// InstanceParams defines parameters for instance generation.
type InstanceParams struct {
	Seed    int64
	Width   int
	Height  int
	Agents  int
	Density float64
	Count   int
	OutDir  string
}

func main() {
	params := InstanceParams{}
	flag.Int64Var(&params.Seed, "seed", 42, "base random seed")
	flag.IntVar(&params.Width, "width", 16, "grid width")
	flag.IntVar(&params.Height, "height", 16, "grid height")
	flag.IntVar(&params.Agents, "agents", 6, "agents per instance")
	flag.Float64Var(&params.Density, "density", 0.15, "obstacle density")
	flag.IntVar(&params.Count, "count", 10, "number of instances")
	flag.StringVar(&params.OutDir, "out", "instances", "output directory")
	flag.Parse()

	if err := os.MkdirAll(params.OutDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "creating %s: %v\n", params.OutDir, err)
		os.Exit(1)
	}

	for i := 0; i < params.Count; i++ {
		seed := params.Seed + int64(i)
		name := fmt.Sprintf("mapf_%dx%d_a%d_s%d", params.Width, params.Height, params.Agents, seed)

		sc, err := generate(params, seed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			os.Exit(1)
		}

		path := filepath.Join(params.OutDir, name+".hcl")
		if err := os.WriteFile(path, renderHCL(name, sc), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "writing %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", path)
	}
}

type scenario struct {
	grid   *grid.Grid
	starts []core.Cell
	goals  []core.Cell
}

// generate builds one random instance whose agents each have an
// unconstrained path, retrying the map layout until that holds.
func generate(params InstanceParams, seed int64) (*scenario, error) {
	rng := rand.New(rand.NewSource(seed))

	for attempt := 0; attempt < 50; attempt++ {
		g := grid.Random(params.Width, params.Height, params.Density, rng)
		sc := &scenario{grid: g}

		if !placeAgents(sc, params.Agents, rng) {
			continue
		}

		reachable := true
		for i := range sc.starts {
			if _, _, err := algo.SolveSingleAgent(g, sc.starts[i], sc.goals[i], nil); err != nil {
				reachable = false
				break
			}
		}
		if reachable {
			return sc, nil
		}
	}
	return nil, fmt.Errorf("no solvable layout after 50 attempts (density too high?)")
}

func placeAgents(sc *scenario, agents int, rng *rand.Rand) bool {
	w, h := sc.grid.Bounds()
	free := make([]core.Cell, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !sc.grid.IsBlocked(x, y) {
				free = append(free, core.Cell{X: x, Y: y})
			}
		}
	}
	if len(free) < agents*2 {
		return false
	}

	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })
	sc.starts = append([]core.Cell(nil), free[:agents]...)
	sc.goals = append([]core.Cell(nil), free[agents:agents*2]...)
	return true
}

// renderHCL emits the scenario in the format internal/config loads.
func renderHCL(name string, sc *scenario) []byte {
	f := hclwrite.NewEmptyFile()
	block := f.Body().AppendNewBlock("scenario", []string{name})
	body := block.Body()

	rows := strings.Split(sc.grid.String(), "\n")
	rowVals := make([]cty.Value, len(rows))
	for i, r := range rows {
		rowVals[i] = cty.StringVal(r)
	}
	body.SetAttributeValue("rows", cty.ListVal(rowVals))

	for i := range sc.starts {
		agent := body.AppendNewBlock("agent", nil).Body()
		agent.SetAttributeValue("start", cty.ListVal([]cty.Value{
			cty.NumberIntVal(int64(sc.starts[i].X)),
			cty.NumberIntVal(int64(sc.starts[i].Y)),
		}))
		agent.SetAttributeValue("goal", cty.ListVal([]cty.Value{
			cty.NumberIntVal(int64(sc.goals[i].X)),
			cty.NumberIntVal(int64(sc.goals[i].Y)),
		}))
	}

	return f.Bytes()
}
