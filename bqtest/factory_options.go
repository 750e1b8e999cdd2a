package bqtest

import (
	"fmt"
	"log/slog"
)

type FactoryOption func(*DaemonFactory)

// WithLogger replaces the logger used by the factory and the daemons it
// starts. The default is [slog.Default].
func WithLogger(log *slog.Logger) FactoryOption {
	if log == nil {
		panic(optionNilArgError{"WithLogger", "log"})
	}

	return func(f *DaemonFactory) {
		f.log = log
	}
}

type optionNilArgError struct {
	option string
	arg    string
}

func (e optionNilArgError) Error() string {
	return fmt.Sprintf("%s: %s must not be nil", e.option, e.arg)
}
