package bqtest

import (
	"fmt"
	"testing"
	"time"

	"github.com/refactormachine/bootique"
	"github.com/refactormachine/bootique/internal/daemon"
)

const (
	// DefaultStartupTimeout bounds the readiness wait inside Start when
	// the builder isn't told otherwise.
	DefaultStartupTimeout = 5 * time.Second

	// DefaultPollInterval is the spacing between readiness-check
	// evaluations during the startup wait.
	DefaultPollInterval = daemon.DefaultPollInterval
)

// StartupCheck decides when Start may hand control back to the test.
type StartupCheck func(bootique.Runtime) bool

// Builder accumulates the configuration for one background runtime,
// then starts it. Configure first, then call Start (or MustStart)
// exactly once; configuration calls after Start are unsupported.
type Builder struct {
	f    *DaemonFactory
	args []string

	check        StartupCheck
	timeout      time.Duration
	pollInterval time.Duration

	started bool
}

func newBuilder(f *DaemonFactory, args []string) *Builder {
	return &Builder{
		f:            f,
		args:         args,
		check:        func(bootique.Runtime) bool { return true },
		timeout:      DefaultStartupTimeout,
		pollInterval: DefaultPollInterval,
	}
}

// StartupCheck replaces the readiness predicate evaluated by Start. The
// default predicate is unconditionally true, giving fire-and-forget
// semantics: Start returns as soon as the runtime is launched.
func (b *Builder) StartupCheck(check StartupCheck) *Builder {
	if check == nil {
		panic(optionNilArgError{"StartupCheck", "check"})
	}
	b.check = check
	return b
}

// StartupAndWaitCheck makes Start block until the runtime finishes on
// its own, i.e. until its outcome is present.
func (b *Builder) StartupAndWaitCheck() *Builder {
	return b.StartupCheck(func(rt bootique.Runtime) bool {
		_, ok := b.Outcome(rt)
		return ok
	})
}

// StartupTimeout replaces the bound on the readiness wait inside Start.
func (b *Builder) StartupTimeout(d time.Duration) *Builder {
	b.timeout = d
	return b
}

// StartupPollInterval replaces the spacing between readiness-check
// evaluations. There's rarely a reason to touch this.
func (b *Builder) StartupPollInterval(d time.Duration) *Builder {
	b.pollInterval = d
	return b
}

// Outcome reports the completion result of a runtime started through
// this builder's factory. Absent while the runtime is still going, and
// absent for good if it was stopped before finishing on its own.
//
// Asking about a runtime the factory never started is a bug in the
// test, not a runtime condition, so it panics rather than reporting a
// quiet "absent".
func (b *Builder) Outcome(rt bootique.Runtime) (bootique.Outcome, bool) {
	d := b.f.lookup(rt)
	if d == nil {
		panic("bqtest: runtime is not registered with the factory")
	}
	return d.Outcome()
}

// Start builds the runtime from the accumulated arguments, hands it to
// a new background daemon registered with the factory, and blocks until
// the startup check passes or the timeout elapses. The returned runtime
// keeps running in the background; the factory's After owns stopping
// it, never the caller.
func (b *Builder) Start() (bootique.Runtime, error) {
	if b.started {
		panic("bqtest: Builder.Start called twice")
	}
	b.started = true

	rt, err := b.f.newRuntime(b.args...)
	if err != nil {
		return nil, fmt.Errorf("create runtime: %w", err)
	}

	d := daemon.New(rt, daemon.Check(b.check), b.f.log.With("args", b.args))

	// Registered before the readiness wait, so that even a runtime that
	// never becomes ready gets swept up by After.
	b.f.register(rt, d)

	if err := d.Start(b.timeout, b.pollInterval); err != nil {
		return nil, fmt.Errorf("runtime failed to become ready: %w", err)
	}
	return rt, nil
}

// MustStart is Start with failures ending the test.
func (b *Builder) MustStart(tb testing.TB) bootique.Runtime {
	tb.Helper()

	rt, err := b.Start()
	if err != nil {
		tb.Fatalf("bqtest: starting app %q: %v", b.args, err)
	}
	return rt
}
