package machine

import (
	"fmt"
	"io"
	"os"
)

// VM is the single-threaded, cooperative bytecode interpreter. One call to
// Step executes exactly one opcode.
type VM struct {
	// Stderr receives the non-fatal "unknown opcode" diagnostic. If nil,
	// os.Stderr is used.
	Stderr io.Writer

	// MaxSteps bounds the number of opcodes Step will execute before it starts
	// refusing to advance (returns a *RuntimeError wrapping a step-limit
	// error). A value <= 0 means no limit, checked directly in Step since
	// this engine has no nested call frames to amortize the check over.
	MaxSteps uint64

	// MaxStackDepth bounds the operand stack depth. A value <= 0 means no
	// limit. This engine has no call stack to bound (native calls never
	// recurse back into bytecode), so the operand stack is the one structure
	// worth bounding against runaway growth.
	MaxStackDepth int

	image   *Image
	heap    *Heap
	stack   Stack
	locals  Locals
	globals *Globals

	pc    uint32
	ended bool
	steps uint64
}

// New constructs a VM over the given program image. The image is treated as
// read-only from this point on.
func New(img *Image) *VM {
	return &VM{
		image:   img,
		heap:    NewHeap(),
		globals: NewGlobals(),
	}
}

// PC returns the current program counter.
func (vm *VM) PC() uint32 { return vm.pc }

// IsAtEnd reports whether the program counter has passed the last byte of
// the operation stream or the End opcode has latched the termination flag.
func (vm *VM) IsAtEnd() bool {
	return vm.ended || int(vm.pc) >= len(vm.image.Operations)
}

// Push, Pop, Top and StackLen expose the operand stack to native functions.
func (vm *VM) Push(v Value)  { vm.stack.Push(v) }
func (vm *VM) Pop() Value    { return vm.stack.Pop() }
func (vm *VM) Top() Value    { return vm.stack.Top() }
func (vm *VM) StackLen() int { return vm.stack.Len() }

// need reports a stack-underflow error if fewer than n operands are
// available for the opcode about to consume them.
func (vm *VM) need(n int) error {
	if vm.stack.Underflow(n) {
		return fmt.Errorf("operand stack underflow: need %d, have %d", n, vm.stack.Len())
	}
	return nil
}

// DefineGlobal sets a global variable, the host-facing equivalent of
// "define_global".
func (vm *VM) DefineGlobal(name string, v Value) { vm.globals.Set(name, v) }

// DefineNative installs a native function under a global name ("define_native").
func (vm *VM) DefineNative(name string, fn NativeFn) { vm.globals.DefineNative(name, fn) }

// GetGlobal reads a global by name.
func (vm *VM) GetGlobal(name string) (Value, error) { return vm.globals.Get(name) }

// MakeArray allocates a fresh array of the given size ("make_array").
func (vm *VM) MakeArray(size int) Value { return vm.heap.AllocateArray(size) }

// MakeString allocates or interns a string ("make_string").
func (vm *VM) MakeString(b []byte, alwaysNew bool) Value {
	return vm.heap.InternOrAllocate(b, alwaysNew)
}

// SetLocal, GetLocal and ShrinkLocals expose the local frame to native
// functions.
func (vm *VM) SetLocal(i int, v Value) { vm.locals.Set(i, v) }
func (vm *VM) GetLocal(i int) (Value, error) { return vm.locals.Get(i) }
func (vm *VM) ShrinkLocals(n int)      { vm.locals.Shrink(n) }

// Step decodes and executes a single opcode. It returns a *RuntimeError
// carrying the opcode's PC for any runtime error kind; on error the operand
// stack and frame store reflect whatever mutations completed before the
// failing opcode, and the PC is left at the failing opcode.
func (vm *VM) Step() error {
	if vm.IsAtEnd() {
		return nil
	}

	if vm.MaxSteps > 0 {
		vm.steps++
		if vm.steps > vm.MaxSteps {
			return &RuntimeError{PC: vm.pc, Err: fmt.Errorf("step limit exceeded: %d", vm.MaxSteps)}
		}
	}

	opStart := vm.pc
	op := Opcode(vm.image.Operations[opStart])
	width := immediateWidth(op)
	if int(opStart)+1+width > len(vm.image.Operations) {
		// truncated immediate operand at end of the operation stream
		vm.logUnknownOpcode(byte(op))
		vm.pc = opStart + 1
		return nil
	}

	var arg uint32
	switch width {
	case 1:
		arg = uint32(vm.image.Operations[opStart+1])
	case AddrWidth:
		arg = decodeAddr(vm.image.Operations, opStart+1)
	}

	nextPC := opStart + 1 + uint32(width)

	if err := vm.dispatch(op, arg, &nextPC); err != nil {
		return &RuntimeError{PC: opStart, Err: err}
	}

	if vm.MaxStackDepth > 0 && vm.stack.Len() > vm.MaxStackDepth {
		return &RuntimeError{PC: opStart, Err: fmt.Errorf("operand stack depth exceeded: %d", vm.MaxStackDepth)}
	}

	vm.pc = nextPC
	return nil
}

// Run steps the VM to completion (a convenience for embedders that do not
// need to inspect state between steps).
func (vm *VM) Run() error {
	for !vm.IsAtEnd() {
		if err := vm.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (vm *VM) logUnknownOpcode(op byte) {
	w := vm.Stderr
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "goblang: %s\n", (&UnknownOpcodeError{Opcode: op}).Error())
}

// dispatch executes the single opcode op with immediate arg. nextPC holds the
// program counter to resume at after the handler returns (already advanced
// past the opcode and any immediate bytes); jump handlers overwrite it
// directly to redirect control flow.
func (vm *VM) dispatch(op Opcode, arg uint32, nextPC *uint32) error {
	switch op {
	case PushConstInt:
		if int(arg) >= len(vm.image.Ints) {
			return &IndexError{Index: int(arg), Len: len(vm.image.Ints)}
		}
		vm.stack.Push(Int(vm.image.Ints[arg]))

	case PushConstChar:
		vm.stack.Push(Char(byte(arg)))

	case PushConstString:
		if int(arg) >= len(vm.image.Ids) {
			return &IndexError{Index: int(arg), Len: len(vm.image.Ids)}
		}
		vm.stack.Push(vm.heap.InternOrAllocate([]byte(vm.image.Ids[arg]), true))

	case PushTrue:
		vm.stack.Push(True)

	case PushFalse:
		vm.stack.Push(False)

	case Add, Sub:
		if err := vm.need(2); err != nil {
			return err
		}
		y := vm.stack.Pop()
		x := vm.stack.Pop()
		z, err := Binary(op, x, y)
		if err != nil {
			return err
		}
		vm.stack.Push(z)

	case Negate:
		if err := vm.need(1); err != nil {
			return err
		}
		x := vm.stack.Pop()
		z, err := UnaryNegate(x)
		if err != nil {
			return err
		}
		vm.stack.Push(z)

	case Equals, NotEq, Less, More, LessOrEq, MoreOrEq:
		if err := vm.need(2); err != nil {
			return err
		}
		y := vm.stack.Pop()
		x := vm.stack.Pop()
		z, err := Compare(op, x, y)
		if err != nil {
			return err
		}
		vm.stack.Push(z)

	case And, Or:
		if err := vm.need(2); err != nil {
			return err
		}
		y := vm.stack.Pop()
		x := vm.stack.Pop()
		z, err := LogicalBinary(op, x, y)
		if err != nil {
			return err
		}
		vm.stack.Push(z)

	case Not:
		if err := vm.need(1); err != nil {
			return err
		}
		x := vm.stack.Pop()
		z, err := LogicalNot(x)
		if err != nil {
			return err
		}
		vm.stack.Push(z)

	case Get:
		if err := vm.need(1); err != nil {
			return err
		}
		name := vm.stack.Pop()
		s, ok := name.(MemoryObj)
		if !ok || s.Object().kind != kindString {
			return &TypeError{Op: op.String(), Got: name.Type()}
		}
		v, err := vm.globals.Get(string(s.Object().str))
		if err != nil {
			return err
		}
		vm.stack.Push(v)

	case Set:
		if err := vm.need(2); err != nil {
			return err
		}
		value := vm.stack.Pop()
		name := vm.stack.Pop()
		s, ok := name.(MemoryObj)
		if !ok || s.Object().kind != kindString {
			return &TypeError{Op: op.String(), Got: name.Type()}
		}
		vm.globals.Set(string(s.Object().str), value)
		vm.heap.Sweep()

	case GetLocal:
		v, err := vm.locals.Get(int(arg))
		if err != nil {
			return err
		}
		vm.stack.Push(v)

	case SetLocal:
		if err := vm.need(1); err != nil {
			return err
		}
		v := vm.stack.Pop()
		vm.locals.Set(int(arg), v)
		vm.heap.Sweep()

	case GetArray:
		if err := vm.need(2); err != nil {
			return err
		}
		index := vm.stack.Pop()
		array := vm.stack.Pop()
		v, err := GetIndex(array, index)
		if err != nil {
			return err
		}
		vm.stack.Push(v)

	case SetArray:
		if err := vm.need(3); err != nil {
			return err
		}
		value := vm.stack.Pop()
		array := vm.stack.Pop()
		index := vm.stack.Pop()
		if err := SetIndex(array, index, value); err != nil {
			return err
		}
		vm.heap.Sweep()

	case ShrinkLocal:
		vm.locals.Shrink(int(arg))
		vm.heap.Sweep()

	case Jump:
		*nextPC = arg

	case JumpIfNot:
		if err := vm.need(1); err != nil {
			return err
		}
		cond := vm.stack.Pop()
		b, ok := truth(cond)
		if !ok {
			return &TypeError{Op: op.String(), Got: cond.Type()}
		}
		if !bool(b) {
			*nextPC = arg
		}

	case Call:
		if err := vm.need(1); err != nil {
			return err
		}
		fn := vm.stack.Pop()
		nf, ok := fn.(*NativeFunction)
		if !ok {
			return &TypeError{Op: op.String(), Got: fn.Type()}
		}
		if err := nf.Fn(vm); err != nil {
			return &NativeError{Name: nf.Name, Err: err}
		}

	case End:
		vm.ended = true

	default:
		vm.logUnknownOpcode(byte(op))
	}

	return nil
}
