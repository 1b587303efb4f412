// Package panicerr converts panics, deliberate halts, and goroutine exits into
// plain error returns.
package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Halt is panicked by code that wants to unwind back to the nearest Recover
// with an ordinary error; Recover returns Err as-is, without a stack trace.
type Halt struct{ Err error }

func (h Halt) Error() string {
	if h.Err != nil {
		return fmt.Sprintf("halted: %v", h.Err)
	}
	return "halted"
}

func (h Halt) Unwrap() error { return h.Err }

// Recover runs f in a new goroutine wrapped in defer logic that turns any
// abnormal exit into a non-nil error return:
// - a panic(Halt{err}) returns err
// - any other panic returns an error that carries the panic stack
// - runtime.Goexit returns an exit error
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		defer recoverExit(name, errch)
		defer recoverPanic(name, errch)
		errch <- f()
	}()
	return <-errch
}

func recoverExit(name string, errch chan<- error) {
	select {
	case errch <- exitError(name):
	default:
		// the happy path and recoverPanic both do a (maybe nil) send
	}
}

func recoverPanic(name string, errch chan<- error) {
	e := recover()
	if e == nil {
		return
	}
	var err error
	if h, ok := e.(Halt); ok {
		err = h.Err
	} else {
		err = panicError{name: name, e: e, stack: debug.Stack()}
	}
	select {
	case errch <- err:
	default:
	}
}

type exitError string

func (name exitError) Error() string {
	if name == "" {
		return "runtime.Goexit called"
	}
	return fmt.Sprintf("%v called runtime.Goexit", string(name))
}

type panicError struct {
	name  string
	e     interface{}
	stack []byte
}

func (pe panicError) Error() string {
	return fmt.Sprint(pe)
}

func (pe panicError) Format(f fmt.State, c rune) {
	if pe.name == "" {
		fmt.Fprintf(f, "paniced: %v", pe.e)
	} else {
		fmt.Fprintf(f, "%v paniced: %v", pe.name, pe.e)
	}
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\nPanic stack: %s", pe.stack)
	}
}

func (pe panicError) Unwrap() error {
	err, _ := pe.e.(error)
	return err
}

// IsPanic returns true if err indicates a recovered goroutine panic.
func IsPanic(err error) bool {
	var pe panicError
	return errors.As(err, &pe)
}

// PanicStack returns a non-empty stacktrace string if err is a recovered
// goroutine panic.
func PanicStack(err error) string {
	var pe panicError
	if errors.As(err, &pe) {
		return string(pe.stack)
	}
	return ""
}
