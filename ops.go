package main

import (
	"fmt"
	"io"
	"math"
)

// Op identifies a built-in operation.
type Op uint8

// Operation codes.
const (
	// arithmetic
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpEqual
	OpPow
	OpRoot
	OpMod
	OpFact
	OpNeg
	OpAbs
	OpRange
	OpSum
	OpAvg

	// stack
	OpLen
	OpSwap
	OpDupe
	OpDrop
	OpClear
	OpJmp

	// keywords
	OpNot
	OpPrint
	OpPrintLine
	OpCompress
	OpDecompress

	opMax
)

// opNames holds the canonical source spelling of each operation.
var opNames = [opMax]string{
	OpAdd:   "+",
	OpSub:   "-",
	OpMul:   "*",
	OpDiv:   "/",
	OpEqual: "=",
	OpPow:   "^",
	OpRoot:  "R",
	OpMod:   "%",
	OpFact:  "!",
	OpNeg:   "neg",
	OpAbs:   "abs",
	OpRange: "range",
	OpSum:   "sum",
	OpAvg:   "avg",

	OpLen:   "len",
	OpSwap:  "swap",
	OpDupe:  "dup",
	OpDrop:  "drop",
	OpClear: "clear",
	OpJmp:   "jmp",

	OpNot:        "n",
	OpPrint:      ".",
	OpPrintLine:  ",",
	OpCompress:   "cmp",
	OpDecompress: "dmp",
}

func (op Op) String() string {
	if op < opMax {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// symbolOps maps single punctuation characters to operations.
var symbolOps = map[byte]Op{
	'+': OpAdd,
	'-': OpSub,
	'*': OpMul,
	'/': OpDiv,
	'=': OpEqual,
	'!': OpFact,
	'^': OpPow,
	'%': OpMod,
	',': OpPrintLine,
	'.': OpPrint,
}

// wordOps maps case-sensitive single letter words to operations.
var wordOps = map[string]Op{
	"n": OpNot,
	"R": OpRoot,
}

// keywordOps maps lower cased multi-letter words to operations.
var keywordOps = map[string]Op{
	"cmp":   OpCompress,
	"dmp":   OpDecompress,
	"neg":   OpNeg,
	"abs":   OpAbs,
	"range": OpRange,
	"sum":   OpSum,
	"avg":   OpAvg,
	"len":   OpLen,
	"swap":  OpSwap,
	"dup":   OpDupe,
	"dupe":  OpDupe,
	"drop":  OpDrop,
	"clear": OpClear,
	"jmp":   OpJmp,
}

// opTable holds each operation's behavior; a behavior returns true when it
// has set the program counter itself.
var opTable = [opMax]func(vm *VM) bool{
	OpAdd:   (*VM).add,
	OpSub:   (*VM).sub,
	OpMul:   (*VM).mul,
	OpDiv:   (*VM).div,
	OpEqual: (*VM).equal,
	OpPow:   (*VM).pow,
	OpRoot:  (*VM).root,
	OpMod:   (*VM).mod,
	OpFact:  (*VM).fact,
	OpNeg:   (*VM).neg,
	OpAbs:   (*VM).abs,
	OpRange: (*VM).rangeList,
	OpSum:   (*VM).sum,
	OpAvg:   (*VM).avg,

	OpLen:   (*VM).length,
	OpSwap:  (*VM).swap,
	OpDupe:  (*VM).dupe,
	OpDrop:  (*VM).drop,
	OpClear: (*VM).clear,
	OpJmp:   (*VM).jmp,

	OpNot:        (*VM).not,
	OpPrint:      (*VM).print,
	OpPrintLine:  (*VM).printLine,
	OpCompress:   (*VM).compress,
	OpDecompress: (*VM).decompress,
}

//// Arithmetic

// Binary operations pop b then a, and push a op b. Every operand is checked
// before anything is popped, so a failed operation leaves the stack as it was.

func (vm *VM) add() bool { return vm.concatOrNumber(OpAdd, func(a, b float64) float64 { return a + b }) }
func (vm *VM) sub() bool { return vm.concatOrNumber(OpSub, func(a, b float64) float64 { return a - b }) }
func (vm *VM) mul() bool { return vm.binary(OpMul, func(a, b float64) float64 { return a * b }) }
func (vm *VM) div() bool { return vm.binary(OpDiv, func(a, b float64) float64 { return a / b }) }
func (vm *VM) pow() bool { return vm.binary(OpPow, math.Pow) }
func (vm *VM) mod() bool { return vm.binary(OpMod, math.Mod) }

func (vm *VM) root() bool { return vm.unary(OpRoot, math.Sqrt) }
func (vm *VM) neg() bool  { return vm.unary(OpNeg, func(a float64) float64 { return -a }) }
func (vm *VM) abs() bool  { return vm.unary(OpAbs, math.Abs) }
func (vm *VM) fact() bool { return vm.unary(OpFact, factorial) }

// Not maps 0 to 1, 1 to 0, and anything else to 1, after truncation.
func (vm *VM) not() bool {
	return vm.unary(OpNot, func(a float64) float64 {
		if math.Trunc(a) == 1 {
			return 0
		}
		return 1
	})
}

func (vm *VM) equal() bool {
	vm.need(OpEqual, 2)
	b, a := vm.pop(), vm.pop()
	vm.push(Bool(a.Equal(b)))
	return false
}

func (vm *VM) binary(op Op, f func(a, b float64) float64) bool {
	vm.need(op, 2)
	b, a := vm.number(op, 0), vm.number(op, 1)
	vm.stack = vm.stack[:len(vm.stack)-1]
	vm.stack[len(vm.stack)-1] = Number(f(a, b))
	return false
}

// concatOrNumber applies f to two Numbers, or concatenates two Texts.
func (vm *VM) concatOrNumber(op Op, f func(a, b float64) float64) bool {
	vm.need(op, 2)
	a, b := vm.peek(1), vm.peek(0)
	switch {
	case a.kind == TextKind && b.kind == TextKind:
		vm.stack = vm.stack[:len(vm.stack)-1]
		vm.stack[len(vm.stack)-1] = Text(a.text + b.text)
		return false
	case a.kind == TextKind:
		vm.halt(TypeMismatchError{op, TextKind.String(), b.kind})
	case a.kind != NumberKind:
		vm.halt(TypeMismatchError{op, "Number or Text", a.kind})
	}
	return vm.binary(op, f)
}

func (vm *VM) unary(op Op, f func(a float64) float64) bool {
	a := vm.number(op, 0)
	vm.stack[len(vm.stack)-1] = Number(f(a))
	return false
}

// maxFactorial is the largest argument whose factorial is finite.
const maxFactorial = 170

// factorial computes the factorial of the truncated argument; arguments below
// 2 yield 1.
func factorial(a float64) float64 {
	n := math.Trunc(a)
	if n > maxFactorial {
		return math.Inf(1)
	}
	r := 1.0
	for i := 2.0; i <= n; i++ {
		r *= i
	}
	return r
}

// rangeList replaces a and b with the List of integers from a to b inclusive.
func (vm *VM) rangeList() bool {
	vm.need(OpRange, 2)
	lo, hi := math.Trunc(vm.number(OpRange, 1)), math.Trunc(vm.number(OpRange, 0))
	count := hi - lo + 1
	if math.IsNaN(count) || count < 0 {
		count = 0
	}
	if count > float64(vm.rangeLimit) {
		vm.halt(LimitError{OpRange, vm.rangeLimit, count})
	}
	elems := make([]Value, int(count))
	for i := range elems {
		elems[i] = Number(lo + float64(i))
	}
	vm.stack = vm.stack[:len(vm.stack)-1]
	vm.stack[len(vm.stack)-1] = List(elems...)
	return false
}

func (vm *VM) sum() bool {
	total, _ := vm.total(OpSum)
	vm.push(Number(total))
	return false
}

// Avg divides by the count as given, so a count of 0 yields NaN.
func (vm *VM) avg() bool {
	total, count := vm.total(OpAvg)
	vm.push(Number(total / count))
	return false
}

// total pops a count n, then up to n more values, and returns their numeric
// total; values other than Numbers, and values missing from a stack shorter
// than n, count as 0. Negative counts pop nothing.
func (vm *VM) total(op Op) (total, count float64) {
	count = vm.number(op, 0)
	vm.pop()
	n := 0
	if t := math.Trunc(count); t > 0 {
		n = clampCount(t)
		if n > len(vm.stack) {
			n = len(vm.stack)
		}
	}
	for _, val := range vm.stack[len(vm.stack)-n:] {
		if f, ok := val.AsNumber(); ok {
			total += f
		}
	}
	vm.stack = vm.stack[:len(vm.stack)-n]
	return total, count
}

//// Stack

func (vm *VM) length() bool { vm.push(Number(float64(len(vm.stack)))); return false }
func (vm *VM) clear() bool  { vm.stack = vm.stack[:0]; return false }
func (vm *VM) drop() bool   { vm.need(OpDrop, 1); vm.pop(); return false }
func (vm *VM) dupe() bool   { vm.need(OpDupe, 1); vm.push(vm.peek(0)); return false }

func (vm *VM) swap() bool {
	vm.need(OpSwap, 2)
	i, j := len(vm.stack)-1, len(vm.stack)-2
	vm.stack[i], vm.stack[j] = vm.stack[j], vm.stack[i]
	return false
}

// jmp pops a target index and continues execution there.
func (vm *VM) jmp() bool {
	target := vm.number(OpJmp, 0)
	at := math.Trunc(target)
	if !(at >= 0 && at < float64(len(vm.tape))) {
		vm.halt(InvalidJumpTargetError{target, len(vm.tape)})
	}
	vm.pop()
	vm.pc = uint(at)
	return true
}

//// Keywords

func (vm *VM) print() bool     { vm.write(OpPrint, " "); return false }
func (vm *VM) printLine() bool { vm.write(OpPrintLine, "\n"); return false }

func (vm *VM) write(op Op, end string) {
	vm.need(op, 1)
	s := vm.pop().Render() + end
	if _, err := io.WriteString(vm.out, s); err != nil {
		vm.halt(err)
	}
}

func (vm *VM) compress() bool {
	s := vm.text(OpCompress, 0)
	vm.stack[len(vm.stack)-1] = Text(string(vm.codec.Compress([]byte(s))))
	return false
}

func (vm *VM) decompress() bool {
	s := vm.text(OpDecompress, 0)
	b, err := vm.codec.Decompress([]byte(s))
	if err != nil {
		vm.halt(DecodeError{OpDecompress, err})
	}
	vm.stack[len(vm.stack)-1] = Text(string(b))
	return false
}
