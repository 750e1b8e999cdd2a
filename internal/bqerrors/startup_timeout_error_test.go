package bqerrors

import (
	"context"
	"testing"
	"time"

	"github.com/shoenig/test"
)

func TestStartupTimeoutError_Basics(t *testing.T) {
	err := error(StartupTimeoutError{200 * time.Millisecond})

	test.Eq(t, "runtime failed to start up in 200ms", err.Error())
	test.ErrorIs(t, err, context.DeadlineExceeded)
}
