package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mno-lang/goblang/lang/asm"
	"github.com/mno-lang/goblang/lang/machine"
)

// Run loads a program from args[0] (assembly text by default, or a raw
// image if the --raw flag was given) and executes it to completion,
// printing the top of the final operand stack (if it is not empty) and the
// global table to stdout.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	img, err := loadImage(args[0], c.Raw)
	if err != nil {
		return printError(stdio, fmt.Errorf("run: %w", err))
	}

	cfg, err := LoadConfig()
	if err != nil {
		return printError(stdio, fmt.Errorf("run: %w", err))
	}

	vm := machine.New(img)
	vm.Stderr = stdio.Stderr
	vm.MaxSteps = cfg.MaxSteps
	vm.MaxStackDepth = cfg.MaxStackDepth

	runErr := vm.Run()

	if vm.StackLen() > 0 {
		fmt.Fprintf(stdio.Stdout, "result: %s\n", vm.Top().String())
	}
	if err := vm.DumpGlobals(stdio.Stdout); err != nil {
		return printError(stdio, fmt.Errorf("run: %w", err))
	}

	if runErr != nil {
		return printError(stdio, fmt.Errorf("run: %w", runErr))
	}
	return nil
}

func loadImage(path string, raw bool) (*machine.Image, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if raw {
		img := &machine.Image{}
		if err := img.UnmarshalBinary(b); err != nil {
			return nil, err
		}
		return img, nil
	}
	return asm.Assemble(b)
}
