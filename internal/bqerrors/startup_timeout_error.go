package bqerrors

import (
	"context"
	"fmt"
	"time"
)

// StartupTimeoutError reports that a runtime's readiness check did not
// pass within the configured startup window.
type StartupTimeoutError struct {
	Timeout time.Duration
}

func (ste StartupTimeoutError) Error() string {
	return fmt.Sprintf("runtime failed to start up in %v", ste.Timeout)
}

func (ste StartupTimeoutError) Is(target error) bool {
	return target == context.DeadlineExceeded
}
