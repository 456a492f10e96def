// Package config loads MAPF scenario files written in HCL.
//
// A scenario declares the grid, inline or by map file reference, and
// one agent block per start/goal pair:
//
//	scenario "crossing" {
//	  rows = [
//	    ".....",
//	    "..@..",
//	    ".....",
//	  ]
//
//	  agent {
//	    start = [0, 0]
//	    goal  = [4, 0]
//	  }
//	}
package config

import (
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"

	"github.com/elektrokombinacija/mapf-grid/internal/core"
	"github.com/elektrokombinacija/mapf-grid/internal/grid"
)

// Scenario is a loaded, validated MAPF problem.
type Scenario struct {
	Name   string
	Grid   *grid.Grid
	Starts []core.Cell
	Goals  []core.Cell
}

// Instance converts the scenario into a validated core.Instance.
func (s *Scenario) Instance() (*core.Instance, error) {
	return core.NewInstance(s.Grid, s.Starts, s.Goals)
}

// hclFile is the top-level structure of a scenario file for decoding.
type hclFile struct {
	Scenarios []*hclScenario `hcl:"scenario,block"`
}

type hclScenario struct {
	Name    string      `hcl:"name,label"`
	MapFile string      `hcl:"map_file,optional"`
	Rows    []string    `hcl:"rows,optional"`
	Agents  []*hclAgent `hcl:"agent,block"`
}

type hclAgent struct {
	Start []int `hcl:"start"`
	Goal  []int `hcl:"goal"`
}

// LoadFile parses every scenario in an HCL file. Map file references
// are resolved relative to the scenario file's directory.
func LoadFile(path string) ([]*Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "parsing %s", path)
	}

	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, errors.Wrapf(diags, "decoding %s", path)
	}
	if len(parsed.Scenarios) == 0 {
		return nil, errors.Errorf("%s declares no scenarios", path)
	}

	scenarios := make([]*Scenario, 0, len(parsed.Scenarios))
	for _, raw := range parsed.Scenarios {
		sc, err := buildScenario(raw, filepath.Dir(path))
		if err != nil {
			return nil, errors.Wrapf(err, "scenario %q", raw.Name)
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

func buildScenario(raw *hclScenario, baseDir string) (*Scenario, error) {
	var (
		g   *grid.Grid
		err error
	)
	switch {
	case raw.MapFile != "" && len(raw.Rows) > 0:
		return nil, errors.New("declares both map_file and rows")
	case raw.MapFile != "":
		g, err = grid.Load(filepath.Join(baseDir, raw.MapFile))
	case len(raw.Rows) > 0:
		g, err = grid.ParseRows(raw.Rows)
	default:
		return nil, errors.New("declares neither map_file nor rows")
	}
	if err != nil {
		return nil, err
	}

	if len(raw.Agents) == 0 {
		return nil, errors.New("declares no agents")
	}
	sc := &Scenario{Name: raw.Name, Grid: g}
	for i, a := range raw.Agents {
		start, err := toCell(a.Start)
		if err != nil {
			return nil, errors.Wrapf(err, "agent %d start", i)
		}
		goal, err := toCell(a.Goal)
		if err != nil {
			return nil, errors.Wrapf(err, "agent %d goal", i)
		}
		sc.Starts = append(sc.Starts, start)
		sc.Goals = append(sc.Goals, goal)
	}

	// Surface malformed coordinates at load time, not mid-search.
	if _, err := sc.Instance(); err != nil {
		return nil, err
	}
	return sc, nil
}

func toCell(pair []int) (core.Cell, error) {
	if len(pair) != 2 {
		return core.Cell{}, errors.Errorf("want [x, y], got %d values", len(pair))
	}
	return core.Cell{X: pair[0], Y: pair[1]}, nil
}
