package bqtest

import "github.com/refactormachine/bootique/internal/bqerrors"

// StartupTimeoutError is wrapped into Builder.Start's error when the
// readiness check doesn't pass within the configured timeout. It also
// matches context.DeadlineExceeded under errors.Is.
type StartupTimeoutError = bqerrors.StartupTimeoutError

// ErrStopUnresponsive marks a runtime that ignored both its Shutdown
// call and the cancellation of its run context during teardown. The
// factory's After logs and discards it; it's only visible to callers
// stopping daemons by hand.
var ErrStopUnresponsive = bqerrors.ErrStopUnresponsive
