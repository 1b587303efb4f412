package main

import (
	"fmt"
	"math"
)

// ParseError reports source text that could not be tokenized.
type ParseError struct {
	Pos    int // byte offset of the offending token
	Reason string
	Err    error
}

func (err ParseError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("parse error at offset %v: %v: %v", err.Pos, err.Reason, err.Err)
	}
	return fmt.Sprintf("parse error at offset %v: %v", err.Pos, err.Reason)
}

func (err ParseError) Unwrap() error { return err.Err }

// TypeMismatchError reports an operand of the wrong kind; the operand is left
// on the stack.
type TypeMismatchError struct {
	Op       Op
	Expected string
	Found    Kind
}

func (err TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: %v expected %v, found %v", err.Op, err.Expected, err.Found)
}

// StackUnderflowError reports an operation run against too shallow a stack.
type StackUnderflowError struct {
	Op        Op
	Needed    int
	Available int
}

func (err StackUnderflowError) Error() string {
	return fmt.Sprintf("stack underflow: %v needs %v values, have %v", err.Op, err.Needed, err.Available)
}

// InvalidJumpTargetError reports a jump outside of the tape.
type InvalidJumpTargetError struct {
	Target  float64
	TapeLen int
}

func (err InvalidJumpTargetError) Error() string {
	return fmt.Sprintf("invalid jump target %v, tape length is %v", formatNumber(err.Target), err.TapeLen)
}

// DecodeError reports compressed text that the codec could not decode.
type DecodeError struct {
	Op  Op
	Err error
}

func (err DecodeError) Error() string {
	return fmt.Sprintf("decode error: %v: %v", err.Op, err.Err)
}

func (err DecodeError) Unwrap() error { return err.Err }

// LimitError reports an operation whose result would exceed a configured
// size limit.
type LimitError struct {
	Op        Op
	Limit     int
	Requested float64
}

func (err LimitError) Error() string {
	return fmt.Sprintf("limit exceeded: %v would produce %v values, limit is %v",
		err.Op, formatNumber(err.Requested), err.Limit)
}

// StepLimitError reports a run that dispatched more tokens than allowed.
type StepLimitError int

func (lim StepLimitError) Error() string {
	return fmt.Sprintf("step limit of %v exceeded", int(lim))
}

// clampCount converts a non-negative float count into an int, saturating
// rather than overflowing.
func clampCount(f float64) int {
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}
