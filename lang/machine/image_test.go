package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageMarshalRoundTrip(t *testing.T) {
	img := &Image{
		Ids:        []string{"a", "b"},
		Ints:       []int32{1, -2, 3},
		Operations: []byte{byte(PushConstInt), 0, byte(End)},
	}
	b, err := img.MarshalBinary()
	require.NoError(t, err)

	var got Image
	require.NoError(t, got.UnmarshalBinary(b))
	assert.Equal(t, img, &got)
}
