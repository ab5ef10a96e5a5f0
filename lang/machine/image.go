package machine

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Image is the program image: the three parallel arrays delivered to the VM
// at construction. It is produced externally (by a compiler or, in this
// repo, by the lang/asm assembler) and is treated as read-only once
// construction completes.
type Image struct {
	// Ids is indexed by the PushConstString operand.
	Ids []string
	// Ints is indexed by the PushConstInt operand.
	Ints []int32
	// Operations is the opcode stream with inline immediates. Jump/JumpIfNot
	// addresses are big-endian, AddrWidth bytes wide.
	Operations []byte
}

// MarshalBinary encodes the image to a raw, non-human-readable form, used by
// the CLI driver's "asm" command to write a loadable artifact distinct from
// the text assembly format. There is no cross-language wire contract to
// honor here (unlike a network protocol), so encoding/gob's self-describing
// format is used rather than a schema-driven codec.
func (img *Image) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(img); err != nil {
		return nil, fmt.Errorf("machine: encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes an image previously produced by MarshalBinary.
func (img *Image) UnmarshalBinary(b []byte) error {
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(img); err != nil {
		return fmt.Errorf("machine: decode image: %w", err)
	}
	return nil
}
