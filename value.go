package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

// Value kinds; the zero Kind marks the zero Value, which no program produces.
const (
	NumberKind Kind = iota + 1
	TextKind
	ListKind
	OperationKind
)

var kindNames = [...]string{
	"Nothing",
	NumberKind:    "Number",
	TextKind:      "Text",
	ListKind:      "List",
	OperationKind: "Operation",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is the single dynamically tagged datum of the language. Booleans are
// Numbers: 1 for true, 0 for false.
//
// Operation values only ever appear on the tape; the engine dispatches them
// rather than pushing them, so the stack holds Numbers, Texts and Lists.
type Value struct {
	kind Kind
	num  float64
	text string
	list []Value
	op   Op
}

// Number returns a Number value.
func Number(f float64) Value { return Value{kind: NumberKind, num: f} }

// Text returns a Text value.
func Text(s string) Value { return Value{kind: TextKind, text: s} }

// List returns a List value holding the given elements.
func List(elems ...Value) Value { return Value{kind: ListKind, list: elems} }

// Operation returns a reference to a built-in operation.
func Operation(op Op) Value { return Value{kind: OperationKind, op: op} }

// Bool returns Number(1) for true and Number(0) for false.
func Bool(b bool) Value {
	if b {
		return Number(1)
	}
	return Number(0)
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == NumberKind }
func (v Value) AsText() (string, bool)    { return v.text, v.kind == TextKind }
func (v Value) AsList() ([]Value, bool)   { return v.list, v.kind == ListKind }
func (v Value) AsOp() (Op, bool)          { return v.op, v.kind == OperationKind }

// Equal reports whether v and other are the same kind and hold equal data.
// Numbers compare as floats, so NaN is never equal to anything.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case NumberKind:
		return v.num == other.num
	case TextKind:
		return v.text == other.text
	case OperationKind:
		return v.op == other.op
	case ListKind:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	}
	return true
}

// Render returns the display form of v: numbers in plain decimal form (6, not
// 6.0), text as-is, and lists as their space-joined element renderings.
func (v Value) Render() string {
	var sb strings.Builder
	v.render(&sb)
	return sb.String()
}

func (v Value) render(sb *strings.Builder) {
	switch v.kind {
	case NumberKind:
		sb.WriteString(formatNumber(v.num))
	case TextKind:
		sb.WriteString(v.text)
	case ListKind:
		for i, elem := range v.list {
			if i > 0 {
				sb.WriteByte(' ')
			}
			elem.render(sb)
		}
	case OperationKind:
		sb.WriteString(v.op.String())
	}
}

// String returns a debugging form of v that shows its kind.
func (v Value) String() string {
	switch v.kind {
	case NumberKind:
		return formatNumber(v.num)
	case TextKind:
		return strconv.Quote(v.text)
	case ListKind:
		parts := make([]string, len(v.list))
		for i, elem := range v.list {
			parts[i] = elem.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	case OperationKind:
		return "<" + v.op.String() + ">"
	}
	return "<nothing>"
}

func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
