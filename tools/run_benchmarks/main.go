// Package main runs all solvers over a directory of scenario files
// and collects per-run metrics as CSV plus a JSON summary.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/elektrokombinacija/mapf-grid/internal/algo"
	"github.com/elektrokombinacija/mapf-grid/internal/config"
	"github.com/elektrokombinacija/mapf-grid/internal/sim"
)

// BenchmarkResult stores results from a single solver run.
type BenchmarkResult struct {
	Timestamp     string `json:"timestamp"`
	GoVersion     string `json:"go_version"`
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Scenario      string `json:"scenario"`
	Agents        int    `json:"agents"`
	GridSize      string `json:"grid_size"`
	Solver        string `json:"solver"`
	RuntimeMs     int64  `json:"runtime_ms"`
	Success       bool   `json:"success"`
	Cost          int    `json:"cost"`
	Makespan      int    `json:"makespan"`
	NodesExpanded int    `json:"nodes_expanded"`
	ReplayClean   bool   `json:"replay_clean"`
	Error         string `json:"error,omitempty"`
}

func main() {
	var (
		dir     = flag.String("dir", "instances", "directory of .hcl scenario files")
		csvOut  = flag.String("csv", "benchmarks.csv", "CSV output path")
		jsonOut = flag.String("json", "benchmarks.json", "JSON output path")
	)
	flag.Parse()

	files, err := filepath.Glob(filepath.Join(*dir, "*.hcl"))
	if err != nil || len(files) == 0 {
		fmt.Fprintf(os.Stderr, "no scenario files in %s\n", *dir)
		os.Exit(1)
	}
	sort.Strings(files)

	var results []BenchmarkResult
	for _, file := range files {
		scenarios, err := config.LoadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", file, err)
			continue
		}
		for _, sc := range scenarios {
			results = append(results, runScenario(sc)...)
		}
	}

	if err := writeCSV(*csvOut, results); err != nil {
		fmt.Fprintf(os.Stderr, "writing csv: %v\n", err)
		os.Exit(1)
	}
	if err := writeJSON(*jsonOut, results); err != nil {
		fmt.Fprintf(os.Stderr, "writing json: %v\n", err)
		os.Exit(1)
	}
	printSummary(results)
}

func runScenario(sc *config.Scenario) []BenchmarkResult {
	inst, err := sc.Instance()
	if err != nil {
		fmt.Fprintf(os.Stderr, "scenario %s: %v\n", sc.Name, err)
		return nil
	}
	w, h := sc.Grid.Bounds()

	solvers := []algo.Solver{algo.NewCBS(0), algo.NewPrioritized(0)}

	var results []BenchmarkResult
	for _, solver := range solvers {
		res := BenchmarkResult{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			GoVersion: runtime.Version(),
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			Scenario:  sc.Name,
			Agents:    len(inst.Agents),
			GridSize:  fmt.Sprintf("%dx%d", w, h),
			Solver:    solver.Name(),
		}

		start := time.Now()
		sol, err := solver.Solve(inst)
		res.RuntimeMs = time.Since(start).Milliseconds()

		if err != nil {
			res.Error = err.Error()
		} else {
			res.Success = true
			res.Cost = sol.Cost
			res.Makespan = sol.Makespan()
			if metrics, rerr := (&sim.Replayer{}).Run(inst, sol); rerr == nil {
				res.ReplayClean = metrics.Clean
			}
		}
		if s, ok := solver.(*algo.CBS); ok {
			res.NodesExpanded = s.Stats.NodesExpanded
		}

		results = append(results, res)
		fmt.Printf("%-32s %-12s cost=%-5d nodes=%-6d %dms\n",
			res.Scenario, res.Solver, res.Cost, res.NodesExpanded, res.RuntimeMs)
	}
	return results
}

func writeCSV(path string, results []BenchmarkResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"timestamp", "scenario", "grid_size", "agents", "solver",
		"runtime_ms", "success", "cost", "makespan", "nodes_expanded", "replay_clean"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{
			r.Timestamp, r.Scenario, r.GridSize, fmt.Sprint(r.Agents), r.Solver,
			fmt.Sprint(r.RuntimeMs), fmt.Sprint(r.Success), fmt.Sprint(r.Cost),
			fmt.Sprint(r.Makespan), fmt.Sprint(r.NodesExpanded), fmt.Sprint(r.ReplayClean),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(path string, results []BenchmarkResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func printSummary(results []BenchmarkResult) {
	type agg struct {
		runs, ok, cost int
		ms             int64
	}
	bySolver := make(map[string]*agg)
	for _, r := range results {
		a := bySolver[r.Solver]
		if a == nil {
			a = &agg{}
			bySolver[r.Solver] = a
		}
		a.runs++
		a.ms += r.RuntimeMs
		if r.Success {
			a.ok++
			a.cost += r.Cost
		}
	}

	names := make([]string, 0, len(bySolver))
	for name := range bySolver {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nsolver        runs  solved  total_cost  total_ms")
	for _, name := range names {
		a := bySolver[name]
		fmt.Printf("%-12s %5d %7d %11d %9d\n", name, a.runs, a.ok, a.cost, a.ms)
	}
}
