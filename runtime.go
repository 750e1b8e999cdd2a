package bootique

import "context"

// Runtime is one configured, ready-to-run application instance. It's
// deliberately opaque to the test-support machinery: daemons compare
// runtimes by identity, never by value.
type Runtime interface {
	// Run executes the application's main command and blocks until the
	// application finishes on its own or ctx is cancelled.
	Run(ctx context.Context) Outcome

	// Shutdown asks the runtime to release everything it owns (worker
	// pools, listeners, and the like). Cooperative: a well-behaved
	// runtime's Run returns shortly after Shutdown is called.
	Shutdown(ctx context.Context) error
}
