// Command cvrp solves capacitated vehicle routing instances.
//
// Usage:
//
//	cvrp [flags] <instance>...
//
// Every instance is loaded before any solving starts; a malformed file aborts
// the run. Instances are then solved concurrently (--jobs), each with its own
// random stream derived from --seed. One JSON summary line per instance is
// printed to stdout; logs go to stderr.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/cvrp/christofides"
	"github.com/katalvlaran/cvrp/config"
	"github.com/katalvlaran/cvrp/matching"
	"github.com/katalvlaran/cvrp/metrics"
	"github.com/katalvlaran/cvrp/rng"
	"github.com/katalvlaran/cvrp/search"
	"github.com/katalvlaran/cvrp/solver"
	"github.com/katalvlaran/cvrp/vrp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logrus.Errorf("cvrp: %v", err)
		stop()
		os.Exit(1)
	}
}

// run is main without process exits, for tests.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetLevel(cfg.LogLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.0000",
	})

	instances := make([]*vrp.Instance, len(cfg.Inputs))
	for i, path := range cfg.Inputs {
		if instances[i], err = vrp.LoadFile(path); err != nil {
			return err
		}
	}

	var m *metrics.Metrics
	if cfg.MetricsFile != "" {
		m = metrics.New()
	}
	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	var matcher christofides.Matcher = matching.Blossom{}
	if cfg.Matching == config.MatchingExact {
		matcher = matching.Exact{}
	}
	var acceptance search.Acceptance = search.RandomWalk{}
	if cfg.Acceptance == config.AcceptanceRestart {
		acceptance = search.RestartOnStagnation{Window: cfg.Stagnation}
	}

	var printMu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Jobs)
	for i, inst := range instances {
		g.Go(func() error {
			sol, err := solver.Solve(gctx, inst, solver.Options{
				Matcher: matcher,
				Search: search.Options{
					TimeLimit:     cfg.Timeout,
					MaxIterations: cfg.MaxIterations,
					Acceptance:    acceptance,
				},
				Polish:  cfg.Polish,
				Rand:    rng.Derive(cfg.Seed, uint64(i)),
				Logger:  logger,
				Metrics: m,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", inst.Name, err)
			}

			if path := outputPath(cfg, inst.Name); path != "" {
				if err := sol.WriteFile(path, vrp.Format(cfg.Format)); err != nil {
					return fmt.Errorf("%s: %w", inst.Name, err)
				}
				logger.WithField("path", path).Debug("solution written")
			}

			printMu.Lock()
			defer printMu.Unlock()
			_, err = fmt.Fprintln(stdout, sol.Summary())

			return err
		})
	}
	solveErr := g.Wait()

	if m != nil {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			return errors.Join(solveErr, err)
		}
	}

	return solveErr
}

// outputPath returns where the solution of instance name goes, or "" when
// no file was requested.
func outputPath(cfg *config.Config, name string) string {
	switch {
	case cfg.Output != "":
		return cfg.Output
	case cfg.OutputDir != "":
		ext := ".sol"
		if cfg.Format == string(vrp.FormatYAML) {
			ext = ".yaml"
		}

		return filepath.Join(cfg.OutputDir, name+ext)
	default:
		return ""
	}
}
