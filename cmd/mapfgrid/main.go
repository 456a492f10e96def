// Command mapfgrid solves MAPF scenarios from the command line.
package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/mapf-grid/internal/algo"
	"github.com/elektrokombinacija/mapf-grid/internal/config"
	"github.com/elektrokombinacija/mapf-grid/internal/core"
	"github.com/elektrokombinacija/mapf-grid/internal/sim"
)

var log = logrus.New()

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "mapfgrid",
		Short: "Optimal multi-agent path finding on 4-connected grids",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return errors.Wrapf(err, "bad log level %q", logLevel)
			}
			log.SetLevel(level)
			return nil
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	cmd.AddCommand(solveCmd())
	return cmd
}

func solveCmd() *cobra.Command {
	var (
		solverName   string
		scenarioName string
		metricsOut   string
		showPaths    bool
	)

	cmd := &cobra.Command{
		Use:   "solve <scenario.hcl>",
		Short: "Solve a scenario file and report the joint plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := config.LoadFile(args[0])
			if err != nil {
				return err
			}
			sc, err := pickScenario(scenarios, scenarioName)
			if err != nil {
				return err
			}
			inst, err := sc.Instance()
			if err != nil {
				return err
			}

			solver, err := newSolver(solverName)
			if err != nil {
				return err
			}

			log.WithFields(logrus.Fields{
				"scenario": sc.Name,
				"agents":   len(inst.Agents),
				"solver":   solver.Name(),
			}).Info("solving")

			start := time.Now()
			sol, err := solver.Solve(inst)
			elapsed := time.Since(start)
			if err != nil {
				if errors.Is(err, algo.ErrInfeasible) {
					return errors.Wrapf(err, "scenario %q", sc.Name)
				}
				return err
			}

			metrics, err := (&sim.Replayer{Logger: log}).Run(inst, sol)
			if err != nil {
				return err
			}
			if !metrics.Clean {
				return errors.Errorf("replay found %d collisions and %d illegal moves",
					metrics.Collisions, metrics.IllegalMoves)
			}

			fmt.Printf("scenario %s: cost=%d makespan=%d agents=%d time=%v\n",
				sc.Name, sol.Cost, sol.Makespan(), len(inst.Agents), elapsed)
			if showPaths {
				printPaths(inst, sol)
			}
			if metricsOut != "" {
				if err := metrics.Export(metricsOut); err != nil {
					return err
				}
				log.WithField("path", metricsOut).Info("metrics written")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&solverName, "solver", "cbs", "cbs or prioritized")
	cmd.Flags().StringVar(&scenarioName, "scenario", "", "scenario name when the file declares several")
	cmd.Flags().StringVar(&metricsOut, "metrics", "", "write replay metrics to this JSON file")
	cmd.Flags().BoolVar(&showPaths, "paths", false, "print each agent's path")
	return cmd
}

func newSolver(name string) (algo.Solver, error) {
	switch name {
	case "cbs":
		s := algo.NewCBS(0)
		s.Logger = log
		return s, nil
	case "prioritized":
		s := algo.NewPrioritized(0)
		s.Logger = log
		return s, nil
	default:
		return nil, errors.Errorf("unknown solver %q", name)
	}
}

func pickScenario(scenarios []*config.Scenario, name string) (*config.Scenario, error) {
	if name == "" {
		return scenarios[0], nil
	}
	for _, sc := range scenarios {
		if sc.Name == name {
			return sc, nil
		}
	}
	return nil, errors.Errorf("no scenario named %q in file", name)
}

func printPaths(inst *core.Instance, sol *core.Solution) {
	for _, a := range inst.Agents {
		path := sol.Paths[a.ID]
		fmt.Printf("  agent %d (cost %d):", a.ID, path.Cost())
		for _, tc := range path {
			fmt.Printf(" (%d,%d)", tc.X, tc.Y)
		}
		fmt.Println()
	}
}
