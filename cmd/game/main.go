// cmd/game/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"

	"ten-second-towers/internal/cli"
	"ten-second-towers/internal/config"
	"ten-second-towers/internal/metrics"
	"ten-second-towers/internal/state"
	"ten-second-towers/internal/ui"
)

type CLI struct {
	cli.Common `embed:""`
}

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	var c CLI
	kctx := kong.Parse(&c,
		kong.Name("ten-second-towers"),
		kong.Description("Ten Second Towers - a tower defense where every wave lasts ten seconds."),
		kong.UsageOnError(),
	)
	logger, err := cli.NewLogger(os.Stderr, c.LogLevel, c.LogFormat)
	kctx.FatalIfErrorf(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rec *metrics.Recorder
	if c.MetricsAddr != "" {
		rec = metrics.New(true)
		go func() {
			if err := cli.ServeMetrics(ctx, c.MetricsAddr, rec, logger); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	g, err := c.NewGame(ctx, logger, rec)
	kctx.FatalIfErrorf(err)
	fonts, err := ui.LoadFonts()
	kctx.FatalIfErrorf(err)

	sm := state.NewStateMachine()
	sm.SetState(state.NewGameState(sm, g, fonts))
	game := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Ten Second Towers")
	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game stopped", "error", err)
		os.Exit(1)
	}
}
