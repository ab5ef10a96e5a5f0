package machine

import "github.com/dolthub/swiss"

// Locals is the dense, index-addressable vector of local variable slots. It
// grows on write and may be shrunk from the tail.
type Locals struct {
	slots []Value
}

// Get returns the value at slot i, or fails with UndefinedLocalError if out
// of range.
func (l *Locals) Get(i int) (Value, error) {
	if i < 0 || i >= len(l.slots) {
		return nil, &UndefinedLocalError{Index: i}
	}
	return l.slots[i], nil
}

// Set grows the vector to length >= i+1 if needed, releases the refcount of
// whatever MemoryObj previously occupied the slot, retains the refcount of v
// if it is a MemoryObj, and stores it.
func (l *Locals) Set(i int, v Value) {
	if i >= len(l.slots) {
		grown := make([]Value, i+1)
		copy(grown, l.slots)
		for j := len(l.slots); j < i; j++ {
			grown[j] = Nil
		}
		l.slots = grown
	}
	release(l.slots[i])
	retain(v)
	l.slots[i] = v
}

// Shrink pops n slots from the tail, releasing the refcount of each
// MemoryObj dropped. It is a no-op for n == 0, and Shrink(n) then Shrink(m)
// equals Shrink(n+m).
func (l *Locals) Shrink(n int) {
	if n <= 0 {
		return
	}
	cut := len(l.slots) - n
	if cut < 0 {
		cut = 0
	}
	for i := cut; i < len(l.slots); i++ {
		release(l.slots[i])
	}
	l.slots = l.slots[:cut]
}

// Len reports the number of local slots currently in use.
func (l *Locals) Len() int { return len(l.slots) }

// Globals is the name-keyed global variable table, backed by a swiss-table
// map for O(1) average lookup.
type Globals struct {
	m *swiss.Map[string, Value]
}

// NewGlobals returns an empty global table.
func NewGlobals() *Globals {
	return &Globals{m: swiss.NewMap[string, Value](8)}
}

// Get returns the value bound to name, or fails with UndefinedNameError if
// unbound.
func (g *Globals) Get(name string) (Value, error) {
	v, ok := g.m.Get(name)
	if !ok {
		return nil, &UndefinedNameError{Name: name}
	}
	return v, nil
}

// Set assigns name, allocating the entry if absent. It maintains refcount
// the same way Locals.Set does: release the old value (if any), retain the
// new one.
func (g *Globals) Set(name string, v Value) {
	if old, ok := g.m.Get(name); ok {
		release(old)
	}
	retain(v)
	g.m.Put(name, v)
}

// DefineNative is a convenience for Set with a *NativeFunction value, used by
// the host to install the native-call bridge.
func (g *Globals) DefineNative(name string, fn NativeFn) {
	g.Set(name, &NativeFunction{Name: name, Fn: fn})
}

// Names returns the current global names, for diagnostics (order undefined).
func (g *Globals) Names() []string {
	names := make([]string, 0, g.m.Count())
	g.m.Iter(func(k string, _ Value) bool {
		names = append(names, k)
		return false
	})
	return names
}
