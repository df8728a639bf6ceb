package cpu

import (
	"fmt"

	"github.com/valerio/go-jeebie-core/jeebie/alu"
	"github.com/valerio/go-jeebie-core/jeebie/bit"
)

// Reg names one of the 8 bit registers that instructions can address directly.
type Reg uint8

const (
	RegA Reg = iota
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL
)

var regNames = [...]string{"A", "B", "C", "D", "E", "H", "L"}

func (r Reg) String() string { return regNames[r] }

// Pair names a 16 bit register, either a view over two 8 bit registers or SP.
type Pair uint8

const (
	PairBC Pair = iota
	PairDE
	PairHL
	PairSP
	PairAF
)

var pairNames = [...]string{"BC", "DE", "HL", "SP", "AF"}

func (p Pair) String() string { return pairNames[p] }

// Registers is the SM83 register file. The pairs AF, BC, DE and HL are not
// stored, they are computed from their halves on every access.
type Registers struct {
	A, B, C, D, E, H, L uint8
	SP, PC              uint16

	// f is only written through SetFlags, which keeps the low nibble at zero.
	f alu.Flags
}

// PostBoot returns the register values the DMG boot ROM leaves behind.
func PostBoot() Registers {
	r := Registers{SP: 0xFFFE, PC: 0x0100}
	r.SetAF(0x01B0)
	r.SetBC(0x0013)
	r.SetDE(0x00D8)
	r.SetHL(0x014D)
	return r
}

// Flags returns the F register.
func (r *Registers) Flags() alu.Flags { return r.f }

// SetFlags writes the F register, the low nibble is always cleared.
func (r *Registers) SetFlags(fl alu.Flags) { r.f = fl & alu.Mask }

func (r *Registers) AF() uint16 { return bit.Combine(r.A, uint8(r.f)) }
func (r *Registers) BC() uint16 { return bit.Combine(r.B, r.C) }
func (r *Registers) DE() uint16 { return bit.Combine(r.D, r.E) }
func (r *Registers) HL() uint16 { return bit.Combine(r.H, r.L) }

func (r *Registers) SetAF(value uint16) {
	r.A = bit.High(value)
	r.SetFlags(alu.Flags(bit.Low(value)))
}

func (r *Registers) SetBC(value uint16) { r.B, r.C = bit.High(value), bit.Low(value) }
func (r *Registers) SetDE(value uint16) { r.D, r.E = bit.High(value), bit.Low(value) }
func (r *Registers) SetHL(value uint16) { r.H, r.L = bit.High(value), bit.Low(value) }

// Get returns the 8 bit register reg.
func (r *Registers) Get(reg Reg) uint8 {
	switch reg {
	case RegA:
		return r.A
	case RegB:
		return r.B
	case RegC:
		return r.C
	case RegD:
		return r.D
	case RegE:
		return r.E
	case RegH:
		return r.H
	case RegL:
		return r.L
	}
	panic(fmt.Sprintf("cpu: unknown register %d", reg))
}

// Set writes the 8 bit register reg.
func (r *Registers) Set(reg Reg, value uint8) {
	switch reg {
	case RegA:
		r.A = value
	case RegB:
		r.B = value
	case RegC:
		r.C = value
	case RegD:
		r.D = value
	case RegE:
		r.E = value
	case RegH:
		r.H = value
	case RegL:
		r.L = value
	default:
		panic(fmt.Sprintf("cpu: unknown register %d", reg))
	}
}

// Pair returns the 16 bit register p.
func (r *Registers) Pair(p Pair) uint16 {
	switch p {
	case PairBC:
		return r.BC()
	case PairDE:
		return r.DE()
	case PairHL:
		return r.HL()
	case PairSP:
		return r.SP
	case PairAF:
		return r.AF()
	}
	panic(fmt.Sprintf("cpu: unknown register pair %d", p))
}

// SetPair writes the 16 bit register p.
func (r *Registers) SetPair(p Pair, value uint16) {
	switch p {
	case PairBC:
		r.SetBC(value)
	case PairDE:
		r.SetDE(value)
	case PairHL:
		r.SetHL(value)
	case PairSP:
		r.SP = value
	case PairAF:
		r.SetAF(value)
	default:
		panic(fmt.Sprintf("cpu: unknown register pair %d", p))
	}
}

func (r Registers) String() string {
	return fmt.Sprintf("AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X [%s]",
		r.AF(), r.BC(), r.DE(), r.HL(), r.SP, r.PC, r.f)
}
