// Package asm implements a human-readable/writable text form of a Program
// Image, mainly to support testing the machine package without going through
// a higher-level compiler front-end. A disassembler is also provided.
//
// The format looks like this (indentation and spacing is arbitrary, but
// section order is fixed):
//
//	image:                     # required
//		ids:                      # optional, list of string pool entries
//			"x"
//			"hello world"
//		ints:                     # optional, list of int pool entries
//			2
//			3
//		code:                     # required, list of instructions
//			pushconstint 0
//			pushconstint 1
//			add
//			pushconststring 0
//			set
//			end
//
// Jump and JumpIfNot arguments refer to the index of the target instruction
// within the code section (not a raw byte address); Assemble translates them
// to byte offsets, and Disassemble translates them back.
package asm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mno-lang/goblang/lang/machine"
)

var sections = map[string]bool{
	"image:": true,
	"ids:":   true,
	"ints:":  true,
	"code:":  true,
}

// Assemble parses the textual format described in the package doc into a
// machine.Image.
func Assemble(src []byte) (*machine.Image, error) {
	a := assembler{s: bufio.NewScanner(bytes.NewReader(src))}

	fields := a.next()
	a.image(fields)

	fields = a.next()
	fields = a.ids(fields)
	fields = a.ints(fields)
	fields = a.code(fields)

	if a.err == nil && len(fields) > 0 {
		a.err = fmt.Errorf("unexpected section: %s", fields[0])
	}
	return a.img, a.err
}

type assembler struct {
	s       *bufio.Scanner
	rawLine string
	img     *machine.Image
	err     error
}

func (a *assembler) image(fields []string) {
	if a.err != nil {
		return
	}
	if len(fields) == 0 || !strings.EqualFold(fields[0], "image:") {
		msg := "expected image section"
		if len(fields) > 0 {
			msg += ", found " + fields[0]
		}
		a.err = errors.New(msg)
		return
	}
	a.img = &machine.Image{}
}

func (a *assembler) ids(fields []string) []string {
	if a.err != nil || len(fields) == 0 || !strings.EqualFold(fields[0], "ids:") {
		return fields
	}

	for fields = a.next(); len(fields) > 0 && !sections[fields[0]]; fields = a.next() {
		raw := strings.TrimSpace(a.rawLine)
		qs, err := strconv.QuotedPrefix(raw)
		if err != nil {
			a.err = fmt.Errorf("invalid id: %q: %w", raw, err)
			return fields
		}
		s, err := strconv.Unquote(qs)
		if err != nil {
			a.err = fmt.Errorf("invalid id: %q: %w", qs, err)
			return fields
		}
		a.img.Ids = append(a.img.Ids, s)
	}
	return fields
}

func (a *assembler) ints(fields []string) []string {
	if a.err != nil || len(fields) == 0 || !strings.EqualFold(fields[0], "ints:") {
		return fields
	}

	for fields = a.next(); len(fields) > 0 && !sections[fields[0]]; fields = a.next() {
		if len(fields) != 1 {
			a.err = fmt.Errorf("invalid int entry: expected a single value, got %d fields", len(fields))
			return fields
		}
		n, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			a.err = fmt.Errorf("invalid int entry: %s: %w", fields[0], err)
			return fields
		}
		a.img.Ints = append(a.img.Ints, int32(n))
	}
	return fields
}

type insn struct {
	op  machine.Opcode
	arg uint32
}

func isJump(op machine.Opcode) bool {
	return op == machine.Jump || op == machine.JumpIfNot
}

func (a *assembler) code(fields []string) []string {
	if a.err != nil {
		return fields
	}
	if len(fields) == 0 || !strings.EqualFold(fields[0], "code:") {
		msg := "expected code section"
		if len(fields) > 0 {
			msg += ", found " + fields[0]
		}
		a.err = errors.New(msg)
		return fields
	}

	var insns []insn
	var indexToAddr []int
	var addr int
	for fields = a.next(); len(fields) > 0 && !sections[fields[0]]; fields = a.next() {
		op, ok := machine.LookupOpcode(strings.ToLower(fields[0]))
		if !ok {
			a.err = fmt.Errorf("invalid opcode: %s", fields[0])
			return fields
		}

		width := machine.ImmediateWidth(op)
		var arg uint32
		if width > 0 {
			if len(fields) != 2 {
				a.err = fmt.Errorf("expected an argument for opcode %s, got %d fields", fields[0], len(fields))
				return fields
			}
			u, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				a.err = fmt.Errorf("invalid argument for opcode %s: %s: %w", fields[0], fields[1], err)
				return fields
			}
			arg = uint32(u)
		} else if len(fields) != 1 {
			a.err = fmt.Errorf("expected no argument for opcode %s, got %d fields", fields[0], len(fields))
			return fields
		}

		insns = append(insns, insn{op: op, arg: arg})
		indexToAddr = append(indexToAddr, addr)
		addr += 1 + width
	}

	code := make([]byte, 0, addr)
	for i, in := range insns {
		op, arg := in.op, in.arg
		if isJump(op) {
			if int(arg) >= len(indexToAddr) {
				a.err = fmt.Errorf("invalid jump index %d: instruction %s at index %d", arg, op, i)
				return fields
			}
			arg = uint32(indexToAddr[arg])
		}
		code = append(code, byte(op))
		switch machine.ImmediateWidth(op) {
		case 1:
			code = append(code, byte(arg))
		case machine.AddrWidth:
			code = machine.EncodeAddr(code, arg)
		}
	}
	a.img.Operations = code
	return fields
}

// returns the fields for the next non-empty, non-comment-only line.
func (a *assembler) next() []string {
	a.rawLine = ""
	if a.err != nil {
		return nil
	}
	for a.s.Scan() {
		line := a.s.Text()
		fields := strings.Fields(line)
		if len(fields) != 0 && !strings.HasPrefix(fields[0], "#") {
			for i, fld := range fields {
				if strings.HasPrefix(fld, "#") {
					fields = fields[:i]
					break
				}
			}
			a.rawLine = line
			return fields
		}
	}
	a.err = a.s.Err()
	return nil
}
