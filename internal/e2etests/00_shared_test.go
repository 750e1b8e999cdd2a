package e2etests

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/refactormachine/bootique"
)

// For many of these tests, I'm going to be wrapping them in synctest.Test mainly for the benefit of deadlock detection.
// Also, if any timings concerns do come into play, we won't end up having tests run for hours.

// demoApp is a small but honest bootique.Runtime: it takes a while to
// become ready, optionally finishes on its own, and goes away when
// shut down.
type demoApp struct {
	args []string

	readyAfter  time.Duration // 0 = ready immediately
	runFor      time.Duration // 0 = run until stopped
	outcome     bootique.Outcome
	shutdownErr error

	ready    atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
}

func newDemoApp(args ...string) *demoApp {
	return &demoApp{
		args:   args,
		stopCh: make(chan struct{}),
	}
}

// entryPoint is the bqtest.RuntimeFactory for tests that don't need a
// handle on the concrete app before starting it.
func entryPoint(args ...string) (bootique.Runtime, error) {
	return newDemoApp(args...), nil
}

func (a *demoApp) Run(ctx context.Context) bootique.Outcome {
	if a.readyAfter > 0 {
		timer := time.AfterFunc(a.readyAfter, func() { a.ready.Store(true) })
		defer timer.Stop()
	} else {
		a.ready.Store(true)
	}

	var naturalEnd <-chan time.Time
	if a.runFor > 0 {
		naturalEnd = time.After(a.runFor)
	}

	select {
	case <-naturalEnd:
		return a.outcome
	case <-a.stopCh:
		return bootique.Failed(130, errors.New("shut down"))
	case <-ctx.Done():
		return bootique.Failed(130, context.Cause(ctx))
	}
}

func (a *demoApp) Shutdown(context.Context) error {
	a.stopOnce.Do(func() { close(a.stopCh) })
	return a.shutdownErr
}

func (a *demoApp) Ready() bool { return a.ready.Load() }

// appIsReady is the readiness predicate used all over these tests.
func appIsReady(rt bootique.Runtime) bool {
	return rt.(*demoApp).Ready()
}
