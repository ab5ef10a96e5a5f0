package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mno-lang/goblang/lang/asm"
	"github.com/mno-lang/goblang/lang/machine"
)

// Dasm loads a raw image from args[0] (the output of Asm) and writes its
// assembly text form to stdout.
func (c *Cmd) Dasm(ctx context.Context, stdio mainer.Stdio, args []string) error {
	b, err := os.ReadFile(args[0])
	if err != nil {
		return printError(stdio, fmt.Errorf("dasm: read %s: %w", args[0], err))
	}

	img := &machine.Image{}
	if err := img.UnmarshalBinary(b); err != nil {
		return printError(stdio, fmt.Errorf("dasm: %w", err))
	}

	out, err := asm.Disassemble(img)
	if err != nil {
		return printError(stdio, fmt.Errorf("dasm: %w", err))
	}

	if _, err := stdio.Stdout.Write(out); err != nil {
		return printError(stdio, fmt.Errorf("dasm: %w", err))
	}
	return nil
}
