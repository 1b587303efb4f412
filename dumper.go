package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type vmDumper struct {
	vm  *VM
	out io.Writer

	addrWidth int
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  pc: %v\n", dump.vm.pc)
	fmt.Fprintf(dump.out, "  steps: %v\n", dump.vm.steps)
	dump.dumpStack()
	dump.dumpTape()
}

func (dump vmDumper) dumpStack() {
	fmt.Fprintf(dump.out, "  stack: %v\n", dump.vm.stack)
}

func (dump vmDumper) dumpTape() {
	if dump.addrWidth == 0 {
		dump.addrWidth = len(strconv.Itoa(len(dump.vm.tape)))
	}
	fmt.Fprintf(dump.out, "# Tape\n")
	var buf strings.Builder
	for addr, tok := range dump.vm.tape {
		buf.Reset()
		if uint(addr) == dump.vm.pc {
			buf.WriteString("> ")
		} else {
			buf.WriteString("  ")
		}
		fmt.Fprintf(&buf, "@%*d ", dump.addrWidth, addr)
		if op, ok := tok.AsOp(); ok {
			buf.WriteString(op.String())
		} else {
			fmt.Fprintf(&buf, "push(%v)", tok)
		}
		buf.WriteByte('\n')
		io.WriteString(dump.out, buf.String())
	}
	if dump.vm.pc >= uint(len(dump.vm.tape)) {
		fmt.Fprintf(dump.out, "> @%*d end\n", dump.addrWidth, dump.vm.pc)
	}
}
