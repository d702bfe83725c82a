package app

import (
	"fmt"

	"ten-second-towers/internal/ai"
	"ten-second-towers/internal/defs"
	"ten-second-towers/internal/event"
)

// WatchReloads makes Step reload definitions with load whenever a value
// arrives on ch. A closed channel stops the watching.
func (g *Game) WatchReloads(ch <-chan struct{}, load LoadFunc) {
	g.reloads = ch
	g.load = load
}

func (g *Game) drainReloads() {
	if g.reloads == nil {
		return
	}
	select {
	case _, ok := <-g.reloads:
		if !ok {
			g.reloads = nil
			return
		}
		lib, err := g.load()
		if err != nil {
			g.metrics.RecordReload(err)
			g.logger.Error("failed to load definitions, keeping current ones", "error", err)
			return
		}
		if err := g.Reload(lib); err != nil {
			g.logger.Error("definition reload failed, keeping current definitions", "error", err)
		}
	default:
	}
}

// Reload swaps in a new definition library. Every live agent gets a fresh
// tree built from it; on any error the current trees and definitions stay.
func (g *Game) Reload(lib *defs.Library) error {
	err := g.swapFactory(ai.NewFactory(lib))
	g.metrics.RecordReload(err)
	if err != nil {
		return err
	}
	g.logger.Info("definitions reloaded",
		"enemies", len(lib.Enemies), "towers", len(lib.Towers), "bullets", len(lib.Bullets))
	g.EventDispatcher.Dispatch(event.Event{Type: event.DefinitionsReloaded})
	return nil
}

func (g *Game) swapFactory(factory *ai.Factory) error {
	if err := factory.Check(); err != nil {
		return fmt.Errorf("failed to compile trees: %w", err)
	}
	if err := g.ECS.ReplaceTrees(factory); err != nil {
		return err
	}
	g.factory = factory
	return nil
}
