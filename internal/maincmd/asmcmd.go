package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mno-lang/goblang/lang/asm"
)

// Asm assembles args[0] (assembly text) and writes the resulting raw image
// to stdout.
func (c *Cmd) Asm(ctx context.Context, stdio mainer.Stdio, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return printError(stdio, fmt.Errorf("asm: read %s: %w", args[0], err))
	}

	img, err := asm.Assemble(src)
	if err != nil {
		return printError(stdio, fmt.Errorf("asm: %w", err))
	}

	b, err := img.MarshalBinary()
	if err != nil {
		return printError(stdio, fmt.Errorf("asm: %w", err))
	}

	if _, err := stdio.Stdout.Write(b); err != nil {
		return printError(stdio, fmt.Errorf("asm: %w", err))
	}
	return nil
}
