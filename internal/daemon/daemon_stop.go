package daemon

import (
	"context"
	"time"

	"github.com/refactormachine/bootique/internal/bqerrors"
)

// How long Stop waits for the runtime's Shutdown call and the run
// goroutine's exit before abandoning them. Generous on purpose: a
// teardown sweep would rather wait a few seconds than silently leak a
// goroutine.
const stopCompletionTimeout = 5 * time.Second

// Stop requests a cooperative shutdown: the runtime's own Shutdown is
// called first, then the run context is cancelled, then we wait for the
// background goroutine to exit. Nothing is ever killed outright; a
// runtime that ignores both signals is abandoned with
// ErrStopUnresponsive so the caller's teardown sweep can move on.
func (d *Daemon) Stop() error {
	if d.doneCh == nil {
		panic("daemon: Stop called before Start")
	}

	// Flag the stop first, so a run that returns because of it is not
	// mistaken for a natural completion.
	d.stopOnce.Do(func() { close(d.stopCh) })

	ctx, cancel := context.WithTimeout(context.Background(), stopCompletionTimeout)
	defer cancel()

	// Shutdown is user code; call it off-thread so a wedged
	// implementation can't hold Stop hostage past the deadline.
	shutdownErrCh := make(chan error, 1)
	go func() {
		shutdownErrCh <- d.rt.Shutdown(ctx)
	}()

	var shutdownErr error
	select {
	case shutdownErr = <-shutdownErrCh:
	case <-ctx.Done():
		d.runCancel()
		d.log.Warn("runtime Shutdown did not return; abandoning it", "timeout", stopCompletionTimeout)
		return bqerrors.ErrStopUnresponsive
	}

	d.runCancel()

	select {
	case <-d.doneCh:
	case <-ctx.Done():
		d.log.Warn("runtime ignored shutdown and context cancel; abandoning it", "timeout", stopCompletionTimeout)
		return bqerrors.ErrStopUnresponsive
	}

	d.log.Debug("daemon stopped", "state", d.State(), "shutdownErr", shutdownErr)
	return shutdownErr
}
