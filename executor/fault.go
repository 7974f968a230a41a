package executor

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// ErrExecutionFault is wrapped by every FaultError.
var ErrExecutionFault = errors.New("execution fault")

// FaultError describes an action that panicked instead of returning.
type FaultError struct {
	Command string
	Value   any
	Stack   []byte
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("command %s: panic recovered: %v", e.Command, e.Value)
}

func (e *FaultError) Unwrap() error {
	return ErrExecutionFault
}

// invokeSafely runs fn and converts a panic into a *FaultError tagged with name.
func invokeSafely(name string, fn func()) (err error) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}
		err = &FaultError{
			Command: name,
			Value:   recovered,
			Stack:   debug.Stack(),
		}
	}()

	fn()
	return nil
}
