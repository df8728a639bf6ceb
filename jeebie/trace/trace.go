// Package trace records the register state before every instruction, one
// line per instruction in the format used by gameboy-doctor, and keeps a
// running digest of the lines so that two runs can be compared cheaply.
package trace

import (
	"bufio"
	"fmt"
	"hash"
	"io"

	"github.com/cespare/xxhash"

	"github.com/valerio/go-jeebie-core/jeebie/cpu"
)

// Tracer formats trace lines. It is not safe for concurrent use.
type Tracer struct {
	out    *bufio.Writer
	digest hash.Hash64
	lines  uint64
	buf    []byte
}

// New creates a tracer writing to w. A nil w only keeps the digest.
func New(w io.Writer) *Tracer {
	t := &Tracer{digest: xxhash.New()}
	if w != nil {
		t.out = bufio.NewWriter(w)
	}
	return t
}

// Record appends the line for the instruction about to run at r.PC,
// including the 4 bytes of memory starting at PC.
func (t *Tracer) Record(r cpu.Registers, mem cpu.Reader) error {
	t.buf = Format(t.buf[:0], r, mem)
	t.buf = append(t.buf, '\n')
	t.lines++

	// hash.Hash never returns an error on Write
	_, _ = t.digest.Write(t.buf)

	if t.out == nil {
		return nil
	}
	if _, err := t.out.Write(t.buf); err != nil {
		return fmt.Errorf("writing trace line %d: %w", t.lines, err)
	}
	return nil
}

// Format appends a trace line without the trailing newline to dst, e.g.
// "A:01 F:B0 B:00 C:13 D:00 E:D8 H:01 L:4D SP:FFFE PC:0100 PCMEM:00,C3,13,02".
func Format(dst []byte, r cpu.Registers, mem cpu.Reader) []byte {
	pc := r.PC
	return fmt.Appendf(dst, "A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X PC:%04X PCMEM:%02X,%02X,%02X,%02X",
		r.A, uint8(r.Flags()), r.B, r.C, r.D, r.E, r.H, r.L, r.SP, pc,
		mem.Read(pc), mem.Read(pc+1), mem.Read(pc+2), mem.Read(pc+3))
}

// Sum64 returns the digest of every line recorded so far.
func (t *Tracer) Sum64() uint64 {
	return t.digest.Sum64()
}

// Lines returns how many lines were recorded.
func (t *Tracer) Lines() uint64 {
	return t.lines
}

// Flush writes any buffered line to the underlying writer.
func (t *Tracer) Flush() error {
	if t.out == nil {
		return nil
	}
	return t.out.Flush()
}
