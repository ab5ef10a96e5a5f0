package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetIndexArray(t *testing.T) {
	h := NewHeap()
	arr := h.AllocateArray(2)
	require.NoError(t, SetIndex(arr, Int(0), Int(42)))

	v, err := GetIndex(arr, Int(0))
	require.NoError(t, err)
	assert.Equal(t, Int(42), v)
}

func TestGetIndexArrayOutOfBounds(t *testing.T) {
	h := NewHeap()
	arr := h.AllocateArray(2)
	_, err := GetIndex(arr, Int(5))
	var idxErr *IndexError
	require.ErrorAs(t, err, &idxErr)
}

func TestGetIndexStringByte(t *testing.T) {
	h := NewHeap()
	s := h.AllocateString([]byte("ab"))
	v, err := GetIndex(s, Int(1))
	require.NoError(t, err)
	assert.Equal(t, Char('b'), v)
}

func TestSetIndexStringRequiresChar(t *testing.T) {
	h := NewHeap()
	s := h.AllocateString([]byte("ab"))
	err := SetIndex(s, Int(0), Int(1))
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
}

func TestSetIndexArrayAcceptsAnyValue(t *testing.T) {
	h := NewHeap()
	arr := h.AllocateArray(1)
	inner := h.AllocateString([]byte("nested"))
	require.NoError(t, SetIndex(arr, Int(0), inner))

	v, err := GetIndex(arr, Int(0))
	require.NoError(t, err)
	assert.Equal(t, "nested", v.String())
	// Storing a MemoryObj into an array element does not retain it: only
	// local/global storage participates in heap refcounting.
	assert.Equal(t, 0, inner.Object().refcount)
}

func TestGetIndexRequiresIntIndex(t *testing.T) {
	h := NewHeap()
	arr := h.AllocateArray(1)
	_, err := GetIndex(arr, True)
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
}

func TestGetIndexRequiresContainer(t *testing.T) {
	_, err := GetIndex(Int(1), Int(0))
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
}
