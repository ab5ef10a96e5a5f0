package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateStringCopiesInput(t *testing.T) {
	h := NewHeap()
	src := []byte("hello")
	m := h.AllocateString(src)
	src[0] = 'X'
	assert.Equal(t, "hello", m.String(), "the heap owns its own copy of the bytes")
}

func TestAllocateArrayIsNilFilled(t *testing.T) {
	h := NewHeap()
	m := h.AllocateArray(3)
	for i := 0; i < 3; i++ {
		v, err := GetIndex(m, Int(i))
		require.NoError(t, err)
		assert.Equal(t, Nil, v)
	}
}

func TestInternOrAllocateSharesWhenRequested(t *testing.T) {
	h := NewHeap()
	a := h.InternOrAllocate([]byte("dup"), false)
	b := h.InternOrAllocate([]byte("dup"), false)
	assert.Same(t, a.Object(), b.Object())
}

func TestInternOrAllocateAlwaysNewNeverShares(t *testing.T) {
	h := NewHeap()
	a := h.InternOrAllocate([]byte("dup"), true)
	b := h.InternOrAllocate([]byte("dup"), true)
	assert.NotSame(t, a.Object(), b.Object())
}

func TestSweepReclaimsOnlyDeadNodes(t *testing.T) {
	h := NewHeap()
	live := h.AllocateString([]byte("live"))
	dead := h.AllocateString([]byte("dead"))
	_ = dead

	retain(live)
	assert.Equal(t, 2, h.Len())

	h.Sweep()
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, "live", live.String())
}

func TestSweepIsIdempotent(t *testing.T) {
	h := NewHeap()
	h.AllocateString([]byte("a"))
	h.AllocateString([]byte("b"))

	h.Sweep()
	assert.Equal(t, 0, h.Len())
	h.Sweep()
	assert.Equal(t, 0, h.Len())
}

func TestShutdownDropsEverythingRegardlessOfRefcount(t *testing.T) {
	h := NewHeap()
	m := h.AllocateString([]byte("x"))
	retain(m)
	h.Shutdown()
	assert.Equal(t, 0, h.Len())
}

func TestHeapObjectLen(t *testing.T) {
	h := NewHeap()
	s := h.AllocateString([]byte("abc"))
	arr := h.AllocateArray(5)
	assert.Equal(t, 3, s.Object().Len())
	assert.Equal(t, 5, arr.Object().Len())
}
