package cpu

import (
	"fmt"

	"github.com/valerio/go-jeebie-core/jeebie/bit"
)

// Reader is the read half of the address space, all the decoder needs.
type Reader interface {
	Read(address uint16) byte
}

// Decode reads the instruction at pc, returning its descriptor with the
// operand bytes captured and the address of the instruction that follows.
func Decode(r Reader, pc uint16) (Instruction, uint16) {
	return decode(r, pc, pc+1)
}

// decodeHaltBug decodes the instruction at pc as the CPU does right after
// the HALT bug triggers: the opcode fetch fails to advance PC, so the byte
// at pc is read again as the first operand (or as the prefixed opcode).
func decodeHaltBug(r Reader, pc uint16) (Instruction, uint16) {
	return decode(r, pc, pc)
}

// decode reads the opcode at pc and its operands starting at cursor.
func decode(r Reader, pc, cursor uint16) (Instruction, uint16) {
	opcode := r.Read(pc)
	if opcode == prefix {
		sub := r.Read(cursor)
		in := prefixTable[sub]
		in.Opcode = sub
		return in, cursor + 1
	}

	in := baseTable[opcode]
	in.Opcode = opcode
	switch in.Length {
	case 2:
		in.Imm8 = r.Read(cursor)
		cursor++
	case 3:
		in.Imm16 = bit.Combine(r.Read(cursor+1), r.Read(cursor))
		cursor += 2
	}
	return in, cursor
}

// Disassemble renders the instruction at pc, e.g. "0150: LD A,$3C".
func Disassemble(r Reader, pc uint16) string {
	in, _ := Decode(r, pc)
	return fmt.Sprintf("%04X: %s", pc, in)
}
