// Package bqtest manages "daemon" application runtimes within the
// lifecycle of a test. It lets a test start a full application in the
// background, wait for it to become ready, poke at it, and trust that
// teardown will stop every runtime it started. E.g.:
//
//	func TestServer(t *testing.T) {
//		factory := bqtest.Attach(t, newAppRuntime)
//
//		rt := factory.App("--server", "--port=0").
//			StartupCheck(serverAnswersPing).
//			MustStart(t)
//
//		// ... drive requests against rt ...
//	}
//
// The caller never stops a runtime itself; the factory's After (wired
// to t.Cleanup by Attach) owns that.
package bqtest

import (
	"log/slog"
	"testing"

	"github.com/refactormachine/bootique"
	"github.com/refactormachine/bootique/internal/daemon"
)

// RuntimeFactory builds one application runtime from shell-style
// arguments. It stands in for the application's main entry point.
type RuntimeFactory func(args ...string) (bootique.Runtime, error)

// DaemonFactory is a per-test registry of background runtimes and the
// single point of their teardown. The registry is only ever touched
// from the test goroutine, so it carries no locking.
type DaemonFactory struct {
	newRuntime RuntimeFactory
	log        *slog.Logger

	daemons map[bootique.Runtime]*daemon.Daemon
}

func NewDaemonFactory(newRuntime RuntimeFactory, opts ...FactoryOption) *DaemonFactory {
	if newRuntime == nil {
		panic(optionNilArgError{"NewDaemonFactory", "newRuntime"})
	}

	f := &DaemonFactory{
		newRuntime: newRuntime,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.Before()
	return f
}

// Attach wires a new factory into the test's lifecycle: Before has
// already run by the time it returns, and After runs via tb.Cleanup.
func Attach(tb testing.TB, newRuntime RuntimeFactory, opts ...FactoryOption) *DaemonFactory {
	tb.Helper()

	f := NewDaemonFactory(newRuntime, opts...)
	tb.Cleanup(f.After)
	return f
}

// Before resets the registry, discarding any record of previously
// started runtimes. Test harnesses that reuse one factory across tests
// call this ahead of each test.
func (f *DaemonFactory) Before() {
	f.daemons = make(map[bootique.Runtime]*daemon.Daemon)
}

// After stops every registered daemon. Each stop failure is logged and
// discarded: one runtime that won't die must not leak the goroutines of
// the others, nor fail a test that already passed. Safe to call even if
// Before never ran.
func (f *DaemonFactory) After() {
	for _, d := range f.daemons {
		if err := d.Stop(); err != nil {
			f.log.Debug("ignoring daemon stop failure", "state", d.State(), "err", err)
		}
	}
}

// App returns a builder for one new background runtime, configured with
// the given shell-style arguments.
func (f *DaemonFactory) App(args ...string) *Builder {
	return newBuilder(f, args)
}

func (f *DaemonFactory) register(rt bootique.Runtime, d *daemon.Daemon) {
	if f.daemons == nil {
		f.daemons = make(map[bootique.Runtime]*daemon.Daemon)
	}
	f.daemons[rt] = d
}

func (f *DaemonFactory) lookup(rt bootique.Runtime) *daemon.Daemon {
	return f.daemons[rt]
}
