package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualsSameTag(t *testing.T) {
	cases := []struct {
		name string
		x, y Value
		want bool
	}{
		{"nil-nil", Nil, Nil, true},
		{"int-eq", Int(3), Int(3), true},
		{"int-neq", Int(3), Int(4), false},
		{"number-eq", Number(1.5), Number(1.5), true},
		{"char-eq", Char('a'), Char('a'), true},
		{"bool-eq", True, True, true},
		{"bool-neq", True, False, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Equals(c.x, c.y)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestEqualsMixedTagIsFalseNotError(t *testing.T) {
	// Equals itself (the general value-equality helper used by MemoryObj
	// comparison) does not require matching tags; only the Compare wrapper
	// used by the Equals/NotEq opcodes enforces that. Mismatched concrete
	// types under Equals simply compare unequal.
	got, err := Equals(Int(1), Bool(true))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestEqualsNativeFunctionIsTypeError(t *testing.T) {
	nf := &NativeFunction{Name: "f"}
	_, err := Equals(nf, nf)
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
}

func TestStringNodeEqualityIsByValue(t *testing.T) {
	h := NewHeap()
	a := h.AllocateString([]byte("hi"))
	b := h.AllocateString([]byte("hi"))
	assert.NotSame(t, a.Object(), b.Object())

	eq, err := Equals(a, b)
	require.NoError(t, err)
	assert.True(t, eq, "string nodes compare by byte content, not identity")
}

func TestArrayNodeEqualityIsByIdentity(t *testing.T) {
	h := NewHeap()
	a := h.AllocateArray(2)
	b := h.AllocateArray(2)

	eq, err := Equals(a, b)
	require.NoError(t, err)
	assert.False(t, eq, "two distinct arrays of identical shape are not equal")

	eq, err = Equals(a, a)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestRetainReleaseOnlyAffectMemoryObj(t *testing.T) {
	h := NewHeap()
	m := h.AllocateString([]byte("x"))
	assert.Equal(t, 0, m.Object().refcount)

	retain(m)
	assert.Equal(t, 1, m.Object().refcount)
	release(m)
	assert.Equal(t, 0, m.Object().refcount)

	// retain/release on a non-MemoryObj value is a silent no-op.
	retain(Int(1))
	release(Bool(true))
}

func TestTruth(t *testing.T) {
	b, ok := truth(True)
	assert.True(t, ok)
	assert.Equal(t, True, b)

	_, ok = truth(Int(1))
	assert.False(t, ok, "truth is only defined for Bool")
}
