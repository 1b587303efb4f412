package main

import (
	"context"
	"io"

	"github.com/jcorbin/putt/internal/codec"
	"github.com/jcorbin/putt/internal/panicerr"
)

// New creates a VM with an empty tape and stack.
func New(opts ...Option) *VM {
	var vm VM
	vm.apply(opts...)
	return &vm
}

// Load appends tokens to the tape.
func (vm *VM) Load(prog ...Value) {
	vm.tape = append(vm.tape, prog...)
}

// Run dispatches tokens until the program counter runs off the end of the
// tape, the context is done, or an operation fails. After a failure the
// stack and tape are left as they were at the failing token.
func (vm *VM) Run(ctx context.Context) error {
	vm.steps = 0
	err := panicerr.Recover("putt", func() error {
		vm.exec(ctx)
		return nil
	})
	if ferr := vm.out.Flush(); err == nil {
		err = ferr
	}
	return err
}

// Top returns the value on top of the stack, if any.
func (vm *VM) Top() (Value, bool) {
	if len(vm.stack) == 0 {
		return Value{}, false
	}
	return vm.peek(0), true
}

// Stack returns a copy of the stack, bottom first.
func (vm *VM) Stack() []Value { return append([]Value(nil), vm.stack...) }

// Tape returns a copy of the tape.
func (vm *VM) Tape() []Value { return append([]Value(nil), vm.tape...) }

// PC returns the program counter.
func (vm *VM) PC() uint { return vm.pc }

// SkipRest moves the program counter past the end of the tape, abandoning
// whatever remains of a failed run so that later loads start fresh.
func (vm *VM) SkipRest() { vm.pc = uint(len(vm.tape)) }

// Printed returns true if the last dispatched token was Print or PrintLine,
// in which case hosts should not print the top of stack as a result.
func (vm *VM) Printed() bool {
	op, ok := vm.last.AsOp()
	return ok && (op == OpPrint || op == OpPrintLine)
}

// Dump writes a human readable rendition of the VM's state.
func (vm *VM) Dump(w io.Writer) {
	vmDumper{vm: vm, out: w}.dump()
}

// WithOutput sets where Print and PrintLine write; output is buffered and
// flushed whenever a run ends.
func WithOutput(w io.Writer) Option { return withOutput(w) }

// WithTee copies output to w, in addition to any prior output.
func WithTee(w io.Writer) Option { return withTee(w) }

// WithCodec sets the codec used by compressed literals, cmp, and dmp.
func WithCodec(c codec.Codec) Option { return withCodec(c) }

// WithStepLimit fails any run that dispatches more than limit tokens; 0 means
// no limit.
func WithStepLimit(limit int) Option { return withStepLimit(limit) }

// WithRangeLimit bounds the length of lists built by range.
func WithRangeLimit(limit int) Option { return withRangeLimit(limit) }

// WithLogf enables trace logging.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }
