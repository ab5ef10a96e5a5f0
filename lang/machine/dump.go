package machine

import (
	"fmt"
	"io"

	"golang.org/x/exp/slices"
)

// dumper is a small io.Writer-accumulating helper: write/writef short-circuit
// once an error has occurred, so callers can chain writes without checking
// each one.
type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) writef(format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}

// DumpStack writes the operand stack, top first, one value per line.
func (vm *VM) DumpStack(w io.Writer) error {
	d := dumper{w: w}
	for i := vm.stack.Len() - 1; i >= 0; i-- {
		v := vm.stack.elems[i]
		d.writef("[%d] = %s (%s)\n", i, v.String(), v.Type())
	}
	return d.err
}

// DumpLocals writes the local frame, one slot per line, in slot order.
func (vm *VM) DumpLocals(w io.Writer) error {
	d := dumper{w: w}
	for i, v := range vm.locals.slots {
		d.writef("[%d] = %s (%s)\n", i, v.String(), v.Type())
	}
	return d.err
}

// DumpGlobals writes the global table, one entry per line, sorted by name
// for deterministic output.
func (vm *VM) DumpGlobals(w io.Writer) error {
	names := vm.globals.Names()
	slices.Sort(names)

	d := dumper{w: w}
	for _, name := range names {
		v, _ := vm.globals.Get(name)
		d.writef("%s = %s (%s)\n", name, v.String(), v.Type())
	}
	return d.err
}
