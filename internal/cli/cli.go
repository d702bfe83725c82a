// Package cli holds the flags and startup wiring shared by the game and
// the headless simulator.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"ten-second-towers/internal/app"
	"ten-second-towers/internal/config"
	"ten-second-towers/internal/defs"
	"ten-second-towers/internal/metrics"
)

// Common are the flags every binary accepts.
type Common struct {
	Settings    string `short:"s" help:"Path to a settings YAML file." type:"existingfile"`
	Defs        string `short:"d" help:"Directory with enemies/towers/bullets/waves YAML (default: built in)." type:"existingdir"`
	Watch       bool   `help:"Reload definitions when files in --defs change."`
	Seed        int64  `help:"Seed for wave composition; 0 keeps the settings value."`
	MetricsAddr string `name:"metrics-addr" help:"Serve Prometheus metrics on this address (empty disables)."`
	LogLevel    string `help:"Log level (debug, info, warn, error)." default:"info" enum:"debug,info,warn,error"`
	LogFormat   string `help:"Log format (text, json)." default:"text" enum:"text,json"`
}

// NewLogger builds the process logger writing to w.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// LoadSettings reads --settings on top of the defaults and applies --seed.
func (c *Common) LoadSettings() (config.Settings, error) {
	settings := config.Default()
	if c.Settings != "" {
		var err error
		if settings, err = config.Load(c.Settings); err != nil {
			return config.Settings{}, err
		}
	}
	if c.Seed != 0 {
		settings.Sim.Seed = c.Seed
	}
	return settings, nil
}

// Loader returns how definitions are read: from --defs when given,
// otherwise the built-in set.
func (c *Common) Loader() app.LoadFunc {
	if c.Defs == "" {
		return defs.LoadEmbedded
	}
	dir := c.Defs
	return func() (*defs.Library, error) { return defs.LoadDir(dir) }
}

// NewGame loads settings and definitions and builds a game. With --watch,
// changes under --defs are reloaded until ctx ends.
func (c *Common) NewGame(ctx context.Context, logger *slog.Logger, rec *metrics.Recorder) (*app.Game, error) {
	settings, err := c.LoadSettings()
	if err != nil {
		return nil, err
	}
	load := c.Loader()
	lib, err := load()
	if err != nil {
		return nil, err
	}
	g, err := app.NewGame(app.Options{Settings: settings, Library: lib, Logger: logger, Metrics: rec})
	if err != nil {
		return nil, err
	}
	if !c.Watch {
		return g, nil
	}
	if c.Defs == "" {
		return nil, errors.New("--watch needs --defs")
	}
	w, err := defs.NewWatcher(c.Defs, logger)
	if err != nil {
		return nil, err
	}
	ch, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}
	g.WatchReloads(ch, load)
	logger.Info("watching definitions", "dir", w.Dir())
	return g, nil
}

// ServeMetrics serves rec on addr until ctx ends.
func ServeMetrics(ctx context.Context, addr string, rec *metrics.Recorder, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", rec.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving metrics", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down metrics server: %w", err)
	}
	return nil
}
