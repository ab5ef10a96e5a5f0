package machine

import "fmt"

// Opcode is a single byte in the operation stream.
type Opcode byte

//nolint:revive
const (
	PushConstInt Opcode = iota
	PushConstChar
	PushConstString
	PushTrue
	PushFalse
	Add
	Sub
	Negate
	Equals
	NotEq
	Less
	More
	LessOrEq
	MoreOrEq
	And
	Or
	Not
	Get
	Set
	GetLocal
	SetLocal
	GetArray
	SetArray
	ShrinkLocal
	Jump
	JumpIfNot
	Call
	End

	opcodeMax = End
)

var opcodeNames = [...]string{
	PushConstInt:    "pushconstint",
	PushConstChar:   "pushconstchar",
	PushConstString: "pushconststring",
	PushTrue:        "pushtrue",
	PushFalse:       "pushfalse",
	Add:             "add",
	Sub:             "sub",
	Negate:          "negate",
	Equals:          "equals",
	NotEq:           "noteq",
	Less:            "less",
	More:            "more",
	LessOrEq:        "lessoreq",
	MoreOrEq:        "moreoreq",
	And:             "and",
	Or:              "or",
	Not:             "not",
	Get:             "get",
	Set:             "set",
	GetLocal:        "getlocal",
	SetLocal:        "setlocal",
	GetArray:        "getarray",
	SetArray:        "setarray",
	ShrinkLocal:     "shrinklocal",
	Jump:            "jump",
	JumpIfNot:       "jumpifnot",
	Call:            "call",
	End:             "end",
}

var reverseOpcodeNames = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for op, name := range opcodeNames {
		m[name] = Opcode(op)
	}
	return m
}()

// LookupOpcode returns the Opcode named by s (case-sensitive, lowercase),
// used by the assembler.
func LookupOpcode(s string) (Opcode, bool) {
	op, ok := reverseOpcodeNames[s]
	return op, ok
}

func (op Opcode) String() string {
	if int(op) <= int(opcodeMax) {
		if name := opcodeNames[op]; name != "" {
			return name
		}
	}
	return fmt.Sprintf("illegal op (%d)", op)
}

// AddrWidth is the fixed width, in bytes, of a jump address immediate: 4
// bytes, big-endian, chosen so a program image is portable across
// architectures instead of depending on the host's pointer width.
const AddrWidth = 4

// ImmediateWidth returns the number of immediate operand bytes that follow
// op in the operation stream. Unrecognized opcodes have no immediate of
// their own; dispatch's default case reports them as an UnknownOpcodeError.
// Exported for lang/asm, which needs the same table to know whether an
// opcode mnemonic takes a trailing argument field.
func ImmediateWidth(op Opcode) int {
	switch op {
	case PushConstInt, PushConstChar, PushConstString, GetLocal, SetLocal, ShrinkLocal:
		return 1
	case Jump, JumpIfNot:
		return AddrWidth
	default:
		return 0
	}
}

func immediateWidth(op Opcode) int { return ImmediateWidth(op) }

// EncodeAddr appends addr to code as a big-endian AddrWidth-byte sequence.
// Exported for lang/asm, which must encode jump targets the same way the
// machine package decodes them.
func EncodeAddr(code []byte, addr uint32) []byte {
	for i := AddrWidth - 1; i >= 0; i-- {
		code = append(code, byte(addr>>(8*uint(i))))
	}
	return code
}

func encodeAddr(code []byte, addr uint32) []byte { return EncodeAddr(code, addr) }

// DecodeAddr reads a big-endian AddrWidth-byte address starting at pc.
// Exported for lang/asm's disassembler, which walks a raw operation stream
// the same way Step does.
func DecodeAddr(code []byte, pc uint32) uint32 {
	var addr uint32
	for i := 0; i < AddrWidth; i++ {
		addr = addr<<8 | uint32(code[int(pc)+i])
	}
	return addr
}

func decodeAddr(code []byte, pc uint32) uint32 { return DecodeAddr(code, pc) }
