package machine

import "fmt"

// TypeError reports that an operand had the wrong tag for the opcode that
// consumed it.
type TypeError struct {
	Op  string
	Got string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error: operation %q does not support operand of type %s", e.Op, e.Got)
}

// UndefinedNameError reports a global lookup miss.
type UndefinedNameError struct {
	Name string
}

func (e *UndefinedNameError) Error() string {
	return fmt.Sprintf("undefined name: %s", e.Name)
}

// UndefinedLocalError reports a local slot id out of range.
type UndefinedLocalError struct {
	Index int
}

func (e *UndefinedLocalError) Error() string {
	return fmt.Sprintf("undefined local: slot %d", e.Index)
}

// IndexError reports an array/string index out of bounds.
type IndexError struct {
	Index, Len int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index out of range: %d (len %d)", e.Index, e.Len)
}

// UnknownOpcodeError reports an opcode byte not in the defined set. The
// dispatch loop only logs its message to VM.Stderr as non-fatal (PC still
// advances); Step never returns it as an error.
type UnknownOpcodeError struct {
	Opcode byte
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode: 0x%02x", e.Opcode)
}

// NativeError wraps a failure reported by a native function.
type NativeError struct {
	Name string
	Err  error
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("native function %s failed: %s", e.Name, e.Err)
}

func (e *NativeError) Unwrap() error { return e.Err }

// RuntimeError wraps any of the above with the program counter at which it
// occurred. The VM state (stack, locals, globals) reflects whatever
// mutations completed before the failing opcode; PC is left on the failing
// opcode, never advanced past it.
type RuntimeError struct {
	PC  uint32
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("at pc=%d: %s", e.PC, e.Err)
}

func (e *RuntimeError) Unwrap() error { return e.Err }
