package machine

import "fmt"

// kind distinguishes the two variants a HeapObject may hold: a tagged node
// rather than a base type with runtime downcasts.
type kind byte

const (
	kindString kind = iota
	kindArray
)

// HeapObject is a node of the intrusive, singly-linked list the Heap anchors
// at its sentinel root. Every live MemoryObj Value points at exactly one
// HeapObject in that list.
type HeapObject struct {
	kind     kind
	str      []byte
	arr      []Value
	refcount int
	next     *HeapObject
}

// dead reports whether the object is no longer referenced from any local
// slot or global entry. It is a derived predicate, not stored state.
func (o *HeapObject) dead() bool { return o.refcount <= 0 }

func (o *HeapObject) String() string {
	switch o.kind {
	case kindString:
		return string(o.str)
	case kindArray:
		return fmt.Sprintf("array(len=%d)", len(o.arr))
	default:
		return "heapobject"
	}
}

func (o *HeapObject) Type() string {
	switch o.kind {
	case kindString:
		return "string"
	case kindArray:
		return "array"
	default:
		return "heapobject"
	}
}

// equals implements a by-value/by-identity split: string nodes compare
// byte-for-byte, array nodes compare by identity.
func (o *HeapObject) equals(other *HeapObject) bool {
	if o == other {
		return true
	}
	if o.kind != other.kind {
		return false
	}
	if o.kind == kindString {
		return string(o.str) == string(other.str)
	}
	return false // arrays only ever equal by identity, handled by o == other above
}

// Len returns the number of elements (bytes for a string node, values for an
// array node).
func (o *HeapObject) Len() int {
	if o.kind == kindString {
		return len(o.str)
	}
	return len(o.arr)
}

// Heap owns the intrusive list of every live and not-yet-swept HeapObject in
// the VM. The root sentinel always exists and is never itself swept.
type Heap struct {
	root HeapObject // sentinel, kind is never read
}

// NewHeap returns an empty Heap ready for use.
func NewHeap() *Heap {
	h := &Heap{}
	h.root.next = nil
	return h
}

// AllocateString appends a new StringNode with refcount 0 to the list tail
// and returns a MemoryObj referencing it. The object is immediately visible
// to Sweep; the caller must store it into a local slot or global entry
// before the next sweep-triggering opcode runs if it wants to keep it.
func (h *Heap) AllocateString(s []byte) MemoryObj {
	cp := append([]byte(nil), s...)
	return h.append(&HeapObject{kind: kindString, str: cp})
}

// AllocateArray appends a new ArrayNode of the given size (zero-filled with
// Nil) with refcount 0 to the list tail and returns a MemoryObj referencing
// it.
func (h *Heap) AllocateArray(size int) MemoryObj {
	elems := make([]Value, size)
	for i := range elems {
		elems[i] = Nil
	}
	return h.append(&HeapObject{kind: kindArray, arr: elems})
}

func (h *Heap) append(o *HeapObject) MemoryObj {
	tail := &h.root
	for tail.next != nil {
		tail = tail.next
	}
	tail.next = o
	return MemoryObj{obj: o}
}

// InternOrAllocate scans the list for an existing StringNode equal to s. If
// alwaysNew is false and a match is found, it is returned (shared); otherwise
// a fresh node is always allocated. PushConstString uses alwaysNew = true so
// that constant strings are never aliased.
func (h *Heap) InternOrAllocate(s []byte, alwaysNew bool) MemoryObj {
	if !alwaysNew {
		for o := h.root.next; o != nil; o = o.next {
			if o.kind == kindString && string(o.str) == string(s) {
				return MemoryObj{obj: o}
			}
		}
	}
	return h.AllocateString(s)
}

// Sweep performs a single linear pass from root.next, unlinking and freeing
// every node whose refcount is 0. It runs only at the end of opcodes that may
// have just dropped a reference (Set, SetLocal, SetArray, ShrinkLocal).
func (h *Heap) Sweep() {
	prev := &h.root
	for o := prev.next; o != nil; {
		next := o.next
		if o.dead() {
			prev.next = next
			o.next = nil
		} else {
			prev = o
		}
		o = next
	}
}

// Shutdown frees every node regardless of refcount.
func (h *Heap) Shutdown() {
	h.root.next = nil
}

// Len returns the number of nodes currently in the list (live and dead, i.e.
// not yet swept). Used by tests to observe heap growth/shrinkage.
func (h *Heap) Len() int {
	n := 0
	for o := h.root.next; o != nil; o = o.next {
		n++
	}
	return n
}
