package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jcorbin/putt/internal/codec"
	"github.com/jcorbin/putt/internal/flushio"
	"github.com/jcorbin/putt/internal/panicerr"
)

// VM executes a tape of tokens against a single value stack.
//
// The tape is append only; Load adds tokens to its end, and Run dispatches
// tokens from the program counter until it runs off the end of the tape.
// Literal values are pushed; Operation values are dispatched to their
// built-in behavior, which may overwrite the program counter.
type VM struct {
	config

	tape  []Value
	pc    uint
	stack []Value

	last  Value // last dispatched token
	steps int   // tokens dispatched by the current run
}

// config is shared by the VM and Tokenizer, and is populated by Options.
type config struct {
	logging
	codec      codec.Codec
	out        flushio.WriteFlusher
	stepLimit  int
	rangeLimit int
}

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}

func (vm *VM) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if ferr := vm.out.Flush(); err == nil {
			err = ferr
		}
	}()
	vm.logf("#", "halt @%v error: %v", vm.pc, err)
	panic(panicerr.Halt{Err: err})
}

func (vm *VM) push(val Value) {
	vm.stack = append(vm.stack, val)
}

func (vm *VM) pop() (val Value) {
	i := len(vm.stack) - 1
	val, vm.stack = vm.stack[i], vm.stack[:i]
	return val
}

// peek returns the value i places below the top of the stack.
func (vm *VM) peek(i int) Value {
	return vm.stack[len(vm.stack)-1-i]
}

// need halts with a StackUnderflowError unless the stack holds n values.
func (vm *VM) need(op Op, n int) {
	if len(vm.stack) < n {
		vm.halt(StackUnderflowError{op, n, len(vm.stack)})
	}
}

// number returns the Number i places below the top of the stack, without
// popping it; it halts if there is no such value, or if it is not a Number.
func (vm *VM) number(op Op, i int) float64 {
	vm.need(op, i+1)
	val := vm.peek(i)
	f, ok := val.AsNumber()
	if !ok {
		vm.halt(TypeMismatchError{op, NumberKind.String(), val.kind})
	}
	return f
}

// text is like number, but for Text.
func (vm *VM) text(op Op, i int) string {
	vm.need(op, i+1)
	val := vm.peek(i)
	s, ok := val.AsText()
	if !ok {
		vm.halt(TypeMismatchError{op, TextKind.String(), val.kind})
	}
	return s
}

func (vm *VM) exec(ctx context.Context) {
	for vm.pc < uint(len(vm.tape)) {
		vm.step()
		if err := ctx.Err(); err != nil {
			vm.halt(err)
		}
	}
}

func (vm *VM) step() {
	if lim := vm.stepLimit; lim > 0 && vm.steps >= lim {
		vm.halt(StepLimitError(lim))
	}
	vm.steps++

	at := vm.pc
	tok := vm.tape[at]
	vm.last = tok

	op, isOp := tok.AsOp()
	if !isOp {
		vm.logf("@", "push @%v %v -- s:%v", at, tok, vm.stack)
		vm.push(tok)
		vm.pc++
		return
	}

	vm.logf("@", "exec @%v %v -- s:%v", at, op, vm.stack)
	if op >= opMax {
		vm.halt(fmt.Errorf("invalid operation code %v", uint8(op)))
	}
	if !opTable[op](vm) {
		vm.pc++
	}
}
