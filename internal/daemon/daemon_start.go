package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/refactormachine/bootique"
	"github.com/refactormachine/bootique/internal/bqerrors"
	"github.com/refactormachine/bootique/internal/debug"
)

// Start launches the runtime's entry point on a new goroutine, then
// blocks the caller while the readiness check is polled to a deadline.
// The readiness wait is the only part of the runtime's life that the
// calling goroutine waits out; the run itself continues in the
// background until it finishes or Stop is called.
func (d *Daemon) Start(timeout, pollInterval time.Duration) error {
	if d.doneCh != nil {
		panic("daemon: Start called twice")
	}
	doneCh := make(chan struct{})
	d.doneCh = doneCh

	var runCtx context.Context
	runCtx, d.runCancel = context.WithCancel(context.Background())

	go func() {
		defer close(doneCh)
		out := d.runToCompletion(runCtx)

		// A stop-induced return is not a natural completion; the outcome
		// slot stays empty so callers can tell the two apart.
		if d.stopRequested() {
			d.log.Debug("runtime exited after stop request")
			return
		}
		d.outcome, d.hasOutcome = out, true
		d.log.Debug("runtime finished", "outcome", out)
	}()

	return d.waitReady(timeout, pollInterval)
}

// runToCompletion invokes the runtime's entry point, converting a panic
// into a failed outcome so one broken app can't take the whole test
// binary down with it.
func (d *Daemon) runToCompletion(ctx context.Context) (out bootique.Outcome) {
	defer func() {
		if e := recover(); e != nil {
			d.log.Error("runtime panicked", "panic", e, "stack", debug.Stack(2))
			out = bootique.Failed(1, fmt.Errorf("runtime panicked: %v", e))
		}
	}()

	return d.rt.Run(ctx)
}

// waitReady evaluates the readiness check immediately, then on a fixed
// interval until the deadline. A runtime that exits early does NOT cut
// the wait short: finishing is exactly the condition a wait-for-outcome
// check is looking for, and any other check simply keeps failing until
// the timeout reports the problem.
func (d *Daemon) waitReady(timeout, pollInterval time.Duration) error {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	deadline := time.Now().Add(timeout)
	for {
		if d.check(d.rt) {
			return nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return bqerrors.StartupTimeoutError{Timeout: timeout}
		}
		time.Sleep(min(pollInterval, remaining))
	}
}
