package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryAddSub(t *testing.T) {
	sum, err := Binary(Add, Int(2), Int(3))
	require.NoError(t, err)
	assert.Equal(t, Int(5), sum)

	diff, err := Binary(Sub, Int(10), Int(3))
	require.NoError(t, err)
	assert.Equal(t, Int(7), diff, "x - y, x is the first-pushed operand")
}

func TestBinaryRejectsNonInt(t *testing.T) {
	_, err := Binary(Add, Number(1), Int(2))
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
}

func TestUnaryNegate(t *testing.T) {
	v, err := UnaryNegate(Int(5))
	require.NoError(t, err)
	assert.Equal(t, Int(-5), v)

	v, err = UnaryNegate(Number(2.5))
	require.NoError(t, err)
	assert.Equal(t, Number(-2.5), v)

	_, err = UnaryNegate(True)
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
}

func TestCompareEqualsRequiresMatchingTag(t *testing.T) {
	_, err := Compare(Equals, Int(1), Number(1))
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
}

func TestCompareOrderedNeverMixesIntAndNumber(t *testing.T) {
	_, err := Compare(Less, Int(1), Number(2))
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
}

func TestCompareOrderedInt(t *testing.T) {
	b, err := Compare(Less, Int(1), Int(2))
	require.NoError(t, err)
	assert.Equal(t, True, b)

	b, err = Compare(MoreOrEq, Int(2), Int(2))
	require.NoError(t, err)
	assert.Equal(t, True, b)
}

func TestCompareOrderedNumber(t *testing.T) {
	b, err := Compare(More, Number(3.5), Number(2.5))
	require.NoError(t, err)
	assert.Equal(t, True, b)
}

func TestLogicalBinaryAndOr(t *testing.T) {
	v, err := LogicalBinary(And, True, False)
	require.NoError(t, err)
	assert.Equal(t, Bool(false), v)

	v, err = LogicalBinary(Or, True, False)
	require.NoError(t, err)
	assert.Equal(t, Bool(true), v)
}

func TestLogicalBinaryRejectsNonBool(t *testing.T) {
	_, err := LogicalBinary(And, Int(1), True)
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
}

func TestLogicalNot(t *testing.T) {
	v, err := LogicalNot(True)
	require.NoError(t, err)
	assert.Equal(t, Bool(false), v)

	_, err = LogicalNot(Int(1))
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
}
