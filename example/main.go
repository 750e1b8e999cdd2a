package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/dpotapov/slogpfx"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
)

// This isn't really necessary for the example, but it helps a bit to be able to see some color
// when building/debugging everything.
func colorLogger() *slog.Logger {
	h := tint.NewHandler(colorable.NewColorable(os.Stdout), &tint.Options{
		Level: slog.LevelDebug,
	})

	prefixed := slogpfx.NewHandler(h, &slogpfx.HandlerOptions{
		PrefixKeys: []string{"prefix"},
	})

	return slog.New(prefixed)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.SetDefault(colorLogger())

	rt, err := NewRuntime(os.Args[1:]...)
	if err != nil {
		slog.Error("failed to build the app", "err", err)
		os.Exit(2)
	}

	out := rt.Run(ctx)
	slog.Info("app finished", "outcome", out)
	if !out.Success() {
		os.Exit(max(out.ExitCode, 1))
	}
}
