package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/refactormachine/bootique"
)

type Config struct {
	Message  string   `toml:"message"`
	Interval duration `toml:"interval"`
}

// duration lets the config file say "250ms" instead of a bare number.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	*d = duration(v)
	return err
}

// HeartbeatApp logs a pulse on a fixed interval until it's shut down.
// Small, but it exercises the full runtime contract: it takes time to
// do anything observable, runs indefinitely, and stops cooperatively.
type HeartbeatApp struct {
	log *slog.Logger
	cfg Config

	pulses   atomic.Int64
	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewRuntime is the app's entry point, shaped as a bqtest.RuntimeFactory.
// An optional first argument names a TOML config file.
func NewRuntime(args ...string) (bootique.Runtime, error) {
	cfg := Config{
		Message:  "lub-dub",
		Interval: duration(time.Second),
	}
	if len(args) > 0 {
		if _, err := toml.DecodeFile(args[0], &cfg); err != nil {
			return nil, fmt.Errorf("load config %v: %w", args[0], err)
		}
	}

	return &HeartbeatApp{
		log:    slog.Default().With("prefix", "heartbeat"),
		cfg:    cfg,
		stopCh: make(chan struct{}),
	}, nil
}

func (app *HeartbeatApp) Run(ctx context.Context) bootique.Outcome {
	ticker := time.NewTicker(time.Duration(app.cfg.Interval))
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			app.log.Info(app.cfg.Message, "pulses", app.pulses.Add(1))
		case <-app.stopCh:
			return bootique.Succeeded()
		case <-ctx.Done():
			return bootique.Failed(130, context.Cause(ctx))
		}
	}
}

func (app *HeartbeatApp) Shutdown(context.Context) error {
	app.stopOnce.Do(func() { close(app.stopCh) })
	return nil
}

// Pulses reports how many beats have been logged so far. The example
// test uses it as a readiness signal.
func (app *HeartbeatApp) Pulses() int64 { return app.pulses.Load() }
