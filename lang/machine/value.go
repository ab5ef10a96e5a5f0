// Package machine implements the bytecode virtual machine: opcode dispatch,
// the operand stack, the local/global variable stores, the refcounted heap
// of strings and arrays, and the native-function call bridge.
package machine

import (
	"fmt"
	"strconv"
)

// Value is the interface implemented by every value the machine can push on
// the operand stack or store in a local slot or global entry. It corresponds
// to the tagged union of the data model: each concrete Go type below is one
// tag.
type Value interface {
	// String returns a human-readable representation, used by the diagnostic
	// dumpers and error messages.
	String() string
	// Type returns the short type name used in error messages (e.g. "int").
	Type() string
}

// NilType is the type of the Null value. There is exactly one value of this
// type, Nil.
type NilType struct{}

// Nil is the sole Null value.
var Nil = NilType{}

func (NilType) String() string { return "null" }
func (NilType) Type() string   { return "null" }

// Int is a 32-bit signed integer value.
type Int int32

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }
func (Int) Type() string     { return "int" }

// Number is a 32-bit floating point value.
type Number float32

func (n Number) String() string { return strconv.FormatFloat(float64(n), 'g', -1, 32) }
func (Number) Type() string     { return "number" }

// Char is a single byte value.
type Char byte

func (c Char) String() string { return string([]byte{byte(c)}) }
func (Char) Type() string     { return "char" }

// Bool is a boolean value.
type Bool bool

// True and False are the two Bool values.
const (
	True  = Bool(true)
	False = Bool(false)
)

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (Bool) Type() string { return "bool" }

// UserData is an opaque host-owned value. The machine never dereferences or
// inspects Ptr; it only copies the Value around.
type UserData struct {
	Ptr any
}

func (u UserData) String() string { return fmt.Sprintf("userdata(%p)", u.Ptr) }
func (UserData) Type() string     { return "userdata" }

// NativeFn is the signature of a host-provided native function. It receives
// the VM so it may manipulate the operand stack, globals and heap. Argument
// count and return convention are a contract between the caller and the
// native function itself; the VM enforces nothing.
type NativeFn func(vm *VM) error

// NativeFunction is an opaque callable value installed in a global by
// DefineNative. It is not comparable for equality (see Equals).
type NativeFunction struct {
	Name string
	Fn   NativeFn
}

func (n *NativeFunction) String() string { return fmt.Sprintf("nativefn(%s)", n.Name) }
func (*NativeFunction) Type() string     { return "nativefunction" }

// MemoryObj is a Value that owns a reference to a HeapObject (a string or an
// array). Assignment into a local slot or global entry increments the
// referenced object's refcount; removal from durable storage decrements it.
// Values that live only on the operand stack do not participate in refcount:
// the stack is a transient root, never walked or counted by the heap.
type MemoryObj struct {
	obj *HeapObject
}

func (m MemoryObj) String() string { return m.obj.String() }
func (m MemoryObj) Type() string   { return m.obj.Type() }

// Object returns the referenced heap object.
func (m MemoryObj) Object() *HeapObject { return m.obj }

// retain increments the refcount of v if it is a MemoryObj, called when v is
// stored into a durable-storage slot (a local slot or a global entry).
func retain(v Value) {
	if m, ok := v.(MemoryObj); ok {
		m.obj.refcount++
	}
}

// release decrements the refcount of a durable-storage slot's previous value
// if it held a MemoryObj, called when it is overwritten or removed.
func release(v Value) {
	if m, ok := v.(MemoryObj); ok {
		m.obj.refcount--
	}
}

// Truth reports the truthiness of Bool values; only used where the opcode
// table requires it (JumpIfNot, And/Or/Not all operate strictly on Bool and
// raise TypeError for anything else).
func truth(v Value) (Bool, bool) {
	b, ok := v.(Bool)
	return b, ok
}

// Equals implements value equality: same tag AND same payload; for MemoryObj,
// string nodes compare byte-for-byte and array nodes compare by identity.
// NativeFunction values are never equal (even to themselves via this path),
// which TypeErrors at the caller.
func Equals(x, y Value) (bool, error) {
	switch xv := x.(type) {
	case NilType:
		_, ok := y.(NilType)
		return ok, nil
	case Int:
		yv, ok := y.(Int)
		return ok && xv == yv, nil
	case Number:
		yv, ok := y.(Number)
		return ok && xv == yv, nil
	case Char:
		yv, ok := y.(Char)
		return ok && xv == yv, nil
	case Bool:
		yv, ok := y.(Bool)
		return ok && xv == yv, nil
	case MemoryObj:
		yv, ok := y.(MemoryObj)
		if !ok {
			return false, nil
		}
		return xv.obj.equals(yv.obj), nil
	case UserData:
		yv, ok := y.(UserData)
		return ok && xv.Ptr == yv.Ptr, nil
	default:
		return false, &TypeError{Op: "==", Got: x.Type()}
	}
}
