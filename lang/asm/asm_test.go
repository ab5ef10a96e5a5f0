package asm_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/mno-lang/goblang/internal/filetest"
	"github.com/mno-lang/goblang/lang/asm"
	"github.com/mno-lang/goblang/lang/machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpdateAsmTests = flag.Bool("test.update-asm-tests", false, "If set, replace expected asm test results with actual results.")

// TestRoundTrip assembles every testdata/in/*.asm fixture, disassembles the
// resulting Image, and diffs the disassembly against the golden file in
// testdata/out. This exercises the assembler round-trip law: disassembling
// an assembled image and reassembling that text yields an identical Image.
func TestRoundTrip(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".asm") {
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(srcDir, fi.Name()))
			require.NoError(t, err)

			img, err := asm.Assemble(src)
			require.NoError(t, err)

			out, err := asm.Disassemble(img)
			require.NoError(t, err)
			filetest.DiffOutput(t, fi, string(out), resultDir, testUpdateAsmTests)

			// Reassembling the disassembly must reproduce the same Image
			// (the round-trip law).
			img2, err := asm.Assemble(out)
			require.NoError(t, err)
			assert.Equal(t, img, img2)
		})
	}
}

func TestAssembleRejectsMissingImageSection(t *testing.T) {
	_, err := asm.Assemble([]byte("ids:\n\t\"x\"\n"))
	require.Error(t, err)
}

func TestAssembleRejectsUnknownOpcode(t *testing.T) {
	_, err := asm.Assemble([]byte("image:\n\tcode:\n\t\tbogus\n"))
	require.Error(t, err)
}

func TestAssembleRejectsMissingArgument(t *testing.T) {
	_, err := asm.Assemble([]byte("image:\n\tcode:\n\t\tpushconstint\n"))
	require.Error(t, err)
}

func TestAssembleRejectsOutOfRangeJumpIndex(t *testing.T) {
	_, err := asm.Assemble([]byte("image:\n\tcode:\n\t\tjump 99\n\t\tend\n"))
	require.Error(t, err)
}

func TestAssembleMinimalProgram(t *testing.T) {
	img, err := asm.Assemble([]byte("image:\n\tcode:\n\t\tend\n"))
	require.NoError(t, err)
	assert.Equal(t, &machine.Image{Operations: []byte{byte(machine.End)}}, img)
}
