package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/refactormachine/bootique"
)

// MockRuntime is a trivial bootique.Runtime for exercising the daemon
// machinery. There's an argument to be made in favor of full mocking
// frameworks, but I kinda like the practice and simplicity of a thing
// that can simulate delays.
//
// Configure the Options structs before handing it to a daemon; read the
// Recorder only once the run is known to be over (e.g. after a
// synctest.Wait or a completed Stop).
type MockRuntime struct {
	RunOptions struct {
		Hook        func()
		Panic       any              // if non-nil, Run panics with this value
		RunFor      time.Duration    // natural completion after this long
		KeepRunning bool             // never complete naturally
		Outcome     bootique.Outcome // returned on natural completion
		IgnoreStop  bool             // ignore ctx cancellation and Shutdown; simulates a wedged app
	}

	ShutdownOptions struct {
		Hook  func()
		Sleep time.Duration
		Block bool // never return until ctx is cancelled; simulates a wedged Shutdown
		Err   error
	}

	Recorder struct {
		Run struct {
			Called bool
			Ctx    context.Context
		}
		Shutdown struct {
			Called bool
			Ctx    context.Context
		}
	}

	stopChOnce sync.Once
	stopChVal  chan struct{}
	closeOnce  sync.Once
}

// Run blocks until natural completion (RunFor elapses), the ctx is
// cancelled, or Shutdown is called, whichever comes first.
func (mr *MockRuntime) Run(ctx context.Context) bootique.Outcome {
	rc := &mr.Recorder.Run
	rc.Called = true
	rc.Ctx = ctx

	if hook := mr.RunOptions.Hook; hook != nil {
		hook()
	}
	if mr.RunOptions.Panic != nil {
		panic(mr.RunOptions.Panic)
	}

	var naturalEnd <-chan time.Time
	if !mr.RunOptions.KeepRunning {
		naturalEnd = time.After(mr.RunOptions.RunFor)
	}

	if mr.RunOptions.IgnoreStop {
		if naturalEnd == nil {
			// A wedged app still has to end eventually, or the test
			// would never drain its goroutines. An hour is far beyond
			// any timeout exercised against it.
			naturalEnd = time.After(time.Hour)
		}
		<-naturalEnd
		return mr.RunOptions.Outcome
	}

	select {
	case <-naturalEnd:
		return mr.RunOptions.Outcome
	case <-ctx.Done():
		return bootique.Failed(130, context.Cause(ctx))
	case <-mr.stopCh():
		return bootique.Failed(130, nil)
	}
}

func (mr *MockRuntime) Shutdown(ctx context.Context) error {
	rc := &mr.Recorder.Shutdown
	rc.Called = true
	rc.Ctx = ctx

	if hook := mr.ShutdownOptions.Hook; hook != nil {
		hook()
	}
	if mr.ShutdownOptions.Block {
		<-ctx.Done()
		return context.Cause(ctx)
	}

	time.Sleep(mr.ShutdownOptions.Sleep)
	mr.closeOnce.Do(func() { close(mr.stopCh()) })
	return mr.ShutdownOptions.Err
}

// stopCh is created lazily so the zero value MockRuntime works no
// matter whether Run or Shutdown gets called first.
func (mr *MockRuntime) stopCh() chan struct{} {
	mr.stopChOnce.Do(func() { mr.stopChVal = make(chan struct{}) })
	return mr.stopChVal
}
