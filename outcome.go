package bootique

import "fmt"

// Outcome describes how a runtime's main command finished.
type Outcome struct {
	ExitCode int
	Message  string
	Err      error
}

// Succeeded returns the all-clear outcome.
func Succeeded() Outcome {
	return Outcome{}
}

// Failed returns an outcome for a command that finished with the given
// exit code and error.
func Failed(exitCode int, err error) Outcome {
	return Outcome{ExitCode: exitCode, Err: err}
}

func (o Outcome) Success() bool {
	return o.ExitCode == 0 && o.Err == nil
}

func (o Outcome) String() string {
	switch {
	case o.Err != nil:
		return fmt.Sprintf("[%d: %v]", o.ExitCode, o.Err)
	case o.Message != "":
		return fmt.Sprintf("[%d: %s]", o.ExitCode, o.Message)
	default:
		return fmt.Sprintf("[%d]", o.ExitCode)
	}
}
