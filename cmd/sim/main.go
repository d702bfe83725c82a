// Command sim runs the simulation without a window, for balancing runs,
// profiling and metrics.
//
// Usage:
//
//	sim --seconds 120 --tower attack@5,9 --tower silo@5,10
//	sim --dump-trees
package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"

	"ten-second-towers/internal/ai"
	"ten-second-towers/internal/app"
	"ten-second-towers/internal/cli"
	"ten-second-towers/internal/metrics"
	"ten-second-towers/pkg/bt"
	"ten-second-towers/pkg/tilemap"
)

type CLI struct {
	cli.Common `embed:""`

	Seconds   float64       `help:"Simulated seconds to run; 0 runs until the game is over." default:"120"`
	Realtime  bool          `help:"Pace ticks at wall-clock speed."`
	Towers    []string      `name:"tower" help:"Tower to build before the first tick, as kind@x,y. Repeatable."`
	DumpTrees bool          `name:"dump-trees" help:"Print every compiled behavior tree and exit."`
	Linger    time.Duration `help:"Keep serving metrics this long after the run ends."`
}

func main() {
	var c CLI
	kctx := kong.Parse(&c,
		kong.Name("sim"),
		kong.Description("Headless Ten Second Towers simulation."),
		kong.UsageOnError(),
	)
	kctx.FatalIfErrorf(run(&c))
}

func run(c *CLI) error {
	logger, err := cli.NewLogger(os.Stderr, c.LogLevel, c.LogFormat)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c.DumpTrees {
		lib, err := c.Loader()()
		if err != nil {
			return err
		}
		return dumpTrees(ai.NewFactory(lib))
	}

	var rec *metrics.Recorder
	if c.MetricsAddr != "" {
		rec = metrics.New(true)
	}
	g, err := c.NewGame(ctx, logger, rec)
	if err != nil {
		return err
	}
	for _, spec := range c.Towers {
		kind, loc, err := parseTower(spec)
		if err != nil {
			return err
		}
		if _, err := g.PlaceTower(kind, loc); err != nil {
			return fmt.Errorf("tower %s: %w", spec, err)
		}
	}

	eg, ctx := errgroup.WithContext(ctx)
	simCtx, simDone := context.WithCancel(ctx)
	if rec != nil {
		eg.Go(func() error {
			return cli.ServeMetrics(simCtx, c.MetricsAddr, rec, logger)
		})
	}
	eg.Go(func() error {
		defer func() {
			if c.Linger > 0 && ctx.Err() == nil {
				logger.Info("run finished, lingering for metrics", "for", c.Linger)
				select {
				case <-time.After(c.Linger):
				case <-ctx.Done():
				}
			}
			simDone()
		}()
		return simulate(ctx, g, c.Seconds, c.Realtime)
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	state := g.ECS.GameState
	logger.Info("simulation finished",
		"seconds", fmt.Sprintf("%.1f", g.GameTime()),
		"ticks", g.ECS.Tick,
		"wave", g.WaveNumber(),
		"base_health", state.BaseHealth,
		"kills", state.Kills,
		"leaks", state.Leaks,
		"over", g.Over())
	return nil
}

func simulate(ctx context.Context, g *app.Game, seconds float64, realtime bool) error {
	dt := g.Settings().Sim.TickDelta()
	var ticker *time.Ticker
	if realtime {
		ticker = time.NewTicker(time.Duration(dt * float64(time.Second)))
		defer ticker.Stop()
	}
	for !g.Over() && (seconds <= 0 || g.GameTime() < seconds) {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		} else if ctx.Err() != nil {
			return nil
		}
		g.Step(dt)
	}
	return nil
}

// parseTower reads kind@x,y.
func parseTower(spec string) (string, tilemap.Location, error) {
	kind, at, ok := strings.Cut(spec, "@")
	if !ok {
		return "", tilemap.Location{}, fmt.Errorf("tower %q: want kind@x,y", spec)
	}
	xs, ys, ok := strings.Cut(at, ",")
	if !ok {
		return "", tilemap.Location{}, fmt.Errorf("tower %q: want kind@x,y", spec)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return "", tilemap.Location{}, fmt.Errorf("tower %q: bad x: %w", spec, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return "", tilemap.Location{}, fmt.Errorf("tower %q: bad y: %w", spec, err)
	}
	return kind, tilemap.Location{X: x, Y: y}, nil
}

func dumpTrees(f *ai.Factory) error {
	lib := f.Library()
	for _, id := range slices.Sorted(maps.Keys(lib.Enemies)) {
		tree, err := f.EnemyTree(id)
		if err != nil {
			return err
		}
		fmt.Printf("enemy %s\n%s\n", id, bt.Describe(tree.Root()))
	}
	for _, id := range lib.TowerIDs() {
		tree, err := f.TowerTree(id)
		if err != nil {
			return err
		}
		fmt.Printf("tower %s\n%s\n", id, bt.Describe(tree.Root()))
	}
	return nil
}
