// internal/app/game.go
package app

import (
	"fmt"
	"log/slog"
	"time"

	"ten-second-towers/internal/ai"
	"ten-second-towers/internal/config"
	"ten-second-towers/internal/defs"
	"ten-second-towers/internal/entity"
	"ten-second-towers/internal/event"
	"ten-second-towers/internal/metrics"
	"ten-second-towers/internal/system"
	"ten-second-towers/internal/utils"
	"ten-second-towers/pkg/bt"
	"ten-second-towers/pkg/tilemap"
)

// Options configure a Game. Zero fields take defaults.
type Options struct {
	Settings config.Settings
	Library  *defs.Library
	Logger   *slog.Logger
	Metrics  *metrics.Recorder
	// Audit, when set, records every tree tick for debugging.
	Audit *bt.Audit
}

// LoadFunc produces a fresh definition library on reload.
type LoadFunc func() (*defs.Library, error)

// Game holds the simulation state and runs it one tick at a time. It is
// not safe for concurrent use; reload requests arrive through a channel
// and are applied at the start of Step.
type Game struct {
	ECS             *entity.ECS
	EventDispatcher *event.Dispatcher
	Rng             *utils.PRNGService

	FieldSystem      *system.FieldSystem
	ThinkSystem      *system.ThinkSystem
	CombatSystem     *system.CombatSystem
	MovementSystem   *system.MovementSystem
	ProjectileSystem *system.ProjectileSystem
	HealthSystem     *system.HealthSystem
	WaveSystem       *system.WaveSystem

	settings config.Settings
	field    *tilemap.Field
	factory  *ai.Factory
	logger   *slog.Logger
	metrics  *metrics.Recorder

	reloads <-chan struct{}
	load    LoadFunc
}

// NewGame builds a game on a fresh field. The library's trees are compiled
// once up front so broken definitions fail here rather than at spawn.
func NewGame(opts Options) (*Game, error) {
	settings := opts.Settings
	if settings.Field.Width == 0 {
		settings = config.Default()
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	lib := opts.Library
	if lib == nil {
		var err error
		if lib, err = defs.LoadEmbedded(); err != nil {
			return nil, err
		}
	}
	factory := ai.NewFactory(lib)
	if err := factory.Check(); err != nil {
		return nil, fmt.Errorf("failed to compile trees: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ecs := entity.NewECS()
	ecs.GameState.BaseHealth = settings.Economy.BaseHealth
	ecs.GameState.Resources = defs.Resources{
		Minerals: settings.Economy.Minerals,
		Dust:     settings.Economy.Dust,
		Tech:     settings.Economy.Tech,
	}
	dispatcher := event.NewDispatcher()
	field := settings.Field.NewField()

	g := &Game{
		ECS:             ecs,
		EventDispatcher: dispatcher,
		Rng:             utils.NewPRNGService(settings.Sim.Seed),
		settings:        settings,
		field:           field,
		factory:         factory,
		logger:          logger,
		metrics:         opts.Metrics,
	}
	g.FieldSystem = system.NewFieldSystem(ecs, field, settings.Paths.CostDecayInterval, logger)
	g.ThinkSystem = system.NewThinkSystem(ecs, field, settings.Paths.StaleWindow, opts.Metrics, logger)
	g.ThinkSystem.Audit = opts.Audit
	g.CombatSystem = system.NewCombatSystem(ecs, field, dispatcher, g.Library, logger)
	g.MovementSystem = system.NewMovementSystem(ecs, field)
	g.ProjectileSystem = system.NewProjectileSystem(ecs, dispatcher)
	g.HealthSystem = system.NewHealthSystem(ecs, field, dispatcher, g.Library, logger)
	g.WaveSystem = system.NewWaveSystem(ecs, field, dispatcher, g.Rng, g.Factory,
		settings.Waves.Length, settings.Waves.SpawnWindow, logger)

	dispatcher.Subscribe(event.WaveEnded, g.CombatSystem)

	logger.Info("game created",
		"field", fmt.Sprintf("%dx%d", field.Width(), field.Height()),
		"source", field.Source(), "target", field.Target(), "seed", g.Rng.Seed())
	return g, nil
}

func (g *Game) Field() *tilemap.Field             { return g.field }
func (g *Game) Factory() *ai.Factory              { return g.factory }
func (g *Game) Library() *defs.Library            { return g.factory.Library() }
func (g *Game) Settings() config.Settings         { return g.settings }
func (g *Game) GameTime() float64                 { return g.ECS.GameTime }
func (g *Game) Over() bool                        { return g.ECS.GameState.Over() }
func (g *Game) Resources() defs.Resources         { return g.ECS.GameState.Resources }
func (g *Game) Metrics() *metrics.Recorder        { return g.metrics }
func (g *Game) Logger() *slog.Logger              { return g.logger }
func (g *Game) WaveNumber() int                   { return g.ECS.Wave.Number }
func (g *Game) WaveTimeLeft() float64             { return g.ECS.Wave.TimeLeft }
func (g *Game) BaseHealth() int                   { return g.ECS.GameState.BaseHealth }
func (g *Game) Caches() (w, f *tilemap.PathCache) { return g.ThinkSystem.Caches() }

// Step advances the simulation by deltaTime seconds.
func (g *Game) Step(deltaTime float64) {
	started := time.Now()
	g.drainReloads()
	if g.Over() {
		return
	}

	g.ECS.Tick++
	g.ECS.GameTime += deltaTime

	g.FieldSystem.Update(deltaTime)
	g.ThinkSystem.Update(deltaTime)
	g.CombatSystem.Update(deltaTime)
	g.MovementSystem.Update(deltaTime)
	g.ProjectileSystem.Update(deltaTime)
	g.HealthSystem.Update(deltaTime)
	g.WaveSystem.Update(deltaTime)

	g.metrics.RecordTick(time.Since(started).Seconds())
	g.metrics.SetAgents("enemy", len(g.ECS.Enemies))
	g.metrics.SetAgents("tower", len(g.ECS.Towers))
	g.metrics.SetAgents("bullet", len(g.ECS.Projectiles))
	g.metrics.SetWave(g.ECS.Wave.Number)
	g.metrics.SetBaseHealth(g.ECS.GameState.BaseHealth)
}
