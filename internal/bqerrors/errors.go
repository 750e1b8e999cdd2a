package bqerrors

import "errors"

var (
	ErrStopUnresponsive = errors.New("runtime ignored both Shutdown and run context cancellation; abandoning it")
)
