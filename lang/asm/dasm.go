package asm

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/mno-lang/goblang/lang/machine"
)

// Disassemble writes a machine.Image back to the textual format described in
// the package doc.
func Disassemble(img *machine.Image) ([]byte, error) {
	d := disassembler{img: img, buf: new(bytes.Buffer)}
	d.write("image:\n")

	if len(img.Ids) > 0 {
		d.write("\tids:\n")
		for i, s := range img.Ids {
			d.writef("\t\t%s\t# %03d\n", strconv.Quote(s), i)
		}
	}
	if len(img.Ints) > 0 {
		d.write("\tints:\n")
		for i, n := range img.Ints {
			d.writef("\t\t%d\t# %03d\n", n, i)
		}
	}

	d.code()
	return d.buf.Bytes(), d.err
}

type disassembler struct {
	img *machine.Image
	buf *bytes.Buffer
	err error
}

func (d *disassembler) write(s string) {
	if d.err != nil {
		return
	}
	_, d.err = d.buf.WriteString(s)
}

func (d *disassembler) writef(format string, args ...any) {
	d.write(fmt.Sprintf(format, args...))
}

func (d *disassembler) code() {
	if d.err != nil {
		return
	}

	code := d.img.Operations
	addrToIndex := make([]int, len(code)+1)
	for i := range addrToIndex {
		addrToIndex[i] = -1
	}

	type insn struct {
		op  machine.Opcode
		arg uint32
	}
	var insns []insn
	var addr uint32
	for int(addr) < len(code) {
		op := machine.Opcode(code[addr])
		width := machine.ImmediateWidth(op)
		if int(addr)+1+width > len(code) {
			d.err = fmt.Errorf("truncated operation stream at address %d (%s)", addr, op)
			return
		}

		var arg uint32
		switch width {
		case 1:
			arg = uint32(code[addr+1])
		case machine.AddrWidth:
			arg = machine.DecodeAddr(code, addr+1)
		}

		addrToIndex[addr] = len(insns)
		insns = append(insns, insn{op: op, arg: arg})
		addr += uint32(1 + width)
	}

	if len(insns) == 0 {
		return
	}

	d.write("\tcode:\n")
	for i, in := range insns {
		op, arg := in.op, in.arg
		if isJump(op) {
			if int(arg) >= len(addrToIndex) || addrToIndex[arg] == -1 {
				d.err = fmt.Errorf("invalid jump target address %d in instruction %d (%s)", arg, i, op)
				return
			}
			arg = uint32(addrToIndex[arg])
		}
		if machine.ImmediateWidth(op) > 0 {
			d.writef("\t\t%s %d\t# %03d\n", op, arg, i)
		} else {
			d.writef("\t\t%s\t# %03d\n", op, i)
		}
	}
}
