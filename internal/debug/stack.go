package debug

import (
	"bytes"
	"runtime/debug"
)

// Stack returns the calling goroutine's stack, trimmed for log output:
// the "goroutine N [running]:" header, the frames for this function and
// [runtime/debug.Stack], and any additional skip frames the caller asks
// for are removed, as is the trailing newline.
func Stack(skip int) string {
	stack := debug.Stack()

	// Each frame renders as two lines: "function()" then "\tfile:line".
	// Skip our own frame plus runtime/debug.Stack's.
	skip += 2

	if bytes.HasPrefix(stack, []byte("goroutine")) {
		stack = chompLine(stack)
	}
	for range skip {
		stack = chompLine(stack) // "function()"
		stack = chompLine(stack) // "\tfile:line +offset"
	}

	return string(bytes.TrimSuffix(stack, []byte("\n")))
}

func chompLine(b []byte) []byte {
	idx := bytes.IndexByte(b, '\n')
	if idx == -1 {
		panic("internal error: chompLine: no newline left in stack")
	}
	return b[idx+1:]
}
