package daemon

import (
	"log/slog"
	"sync"
	"time"

	"github.com/refactormachine/bootique"
)

// Default spacing between readiness-check evaluations during Start.
const DefaultPollInterval = 50 * time.Millisecond

// Check is the readiness predicate evaluated against the wrapped
// runtime while Start blocks.
type Check func(bootique.Runtime) bool

// Daemon runs one application runtime on a background goroutine and
// keeps hold of its completion result. The factory that created it
// owns it exclusively; Start and Stop are meant to be called from the
// test goroutine, never concurrently.
type Daemon struct {
	rt    bootique.Runtime
	check Check
	log   *slog.Logger

	runCancel func()

	stopOnce sync.Once
	stopCh   chan struct{} // closed once a stop has been requested

	// outcome and hasOutcome are written by the run goroutine before it
	// closes doneCh; readers must observe doneCh closed first.
	doneCh     chan struct{}
	outcome    bootique.Outcome
	hasOutcome bool
}

func New(rt bootique.Runtime, check Check, log *slog.Logger) *Daemon {
	if rt == nil {
		panic("daemon: rt must not be nil")
	}
	if check == nil {
		panic("daemon: check must not be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Daemon{
		rt:     rt,
		check:  check,
		log:    log,
		stopCh: make(chan struct{}),
	}
}

// Runtime returns the wrapped runtime handle.
func (d *Daemon) Runtime() bootique.Runtime { return d.rt }

// Outcome returns the completion result, present only once the runtime
// has finished on its own. Never blocks: absent while still running,
// and absent for good if the runtime was stopped before natural
// completion.
func (d *Daemon) Outcome() (bootique.Outcome, bool) {
	select {
	case <-d.doneCh:
		return d.outcome, d.hasOutcome
	default:
		return bootique.Outcome{}, false
	}
}

func (d *Daemon) stopRequested() bool {
	select {
	case <-d.stopCh:
		return true
	default:
		return false
	}
}
