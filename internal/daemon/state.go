package daemon

//go:generate go tool stringer -type State -trimprefix State
type State int

const (
	StateNew State = iota
	StateRunning
	StateFinished
	StateStopped
)

// State reports where the daemon is in its lifecycle. Finished means
// the runtime completed on its own (an outcome is available); Stopped
// means it was shut down before that could happen.
func (d *Daemon) State() State {
	if d.doneCh == nil {
		return StateNew
	}

	select {
	case <-d.doneCh:
		if d.hasOutcome {
			return StateFinished
		}
		return StateStopped
	default:
		return StateRunning
	}
}
