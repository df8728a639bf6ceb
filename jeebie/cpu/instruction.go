package cpu

import (
	"fmt"
	"strings"
)

// Kind groups instructions by the part of the machine they act on.
type Kind uint8

const (
	KindLoad8 Kind = iota
	KindLoad16
	KindALU8
	KindALU16
	KindIncDec
	KindBitOp
	KindJump
	KindStack
	KindControl
)

var kindNames = [...]string{"load8", "load16", "alu8", "alu16", "incdec", "bitop", "jump", "stack", "control"}

func (k Kind) String() string { return kindNames[k] }

// Op is the concrete operation an instruction performs.
type Op uint8

const (
	OpNOP Op = iota
	OpLD
	OpLD16
	OpLDHL // LD HL,SP+e
	OpPUSH
	OpPOP
	OpADD
	OpADC
	OpSUB
	OpSBC
	OpAND
	OpXOR
	OpOR
	OpCP
	OpINC
	OpDEC
	OpINC16
	OpDEC16
	OpADDHL
	OpADDSP
	OpDAA
	OpCPL
	OpSCF
	OpCCF
	OpRLCA
	OpRRCA
	OpRLA
	OpRRA
	OpRLC
	OpRRC
	OpRL
	OpRR
	OpSLA
	OpSRA
	OpSWAP
	OpSRL
	OpBIT
	OpRES
	OpSET
	OpJP
	OpJPHL
	OpJR
	OpCALL
	OpRET
	OpRETI
	OpRST
	OpHALT
	OpSTOP
	OpDI
	OpEI
	OpPrefix
	OpIllegal

	opCount
)

var opNames = [opCount]string{
	OpNOP: "NOP", OpLD: "LD", OpLD16: "LD", OpLDHL: "LD", OpPUSH: "PUSH", OpPOP: "POP",
	OpADD: "ADD", OpADC: "ADC", OpSUB: "SUB", OpSBC: "SBC", OpAND: "AND", OpXOR: "XOR", OpOR: "OR", OpCP: "CP",
	OpINC: "INC", OpDEC: "DEC", OpINC16: "INC", OpDEC16: "DEC", OpADDHL: "ADD", OpADDSP: "ADD",
	OpDAA: "DAA", OpCPL: "CPL", OpSCF: "SCF", OpCCF: "CCF",
	OpRLCA: "RLCA", OpRRCA: "RRCA", OpRLA: "RLA", OpRRA: "RRA",
	OpRLC: "RLC", OpRRC: "RRC", OpRL: "RL", OpRR: "RR", OpSLA: "SLA", OpSRA: "SRA", OpSWAP: "SWAP", OpSRL: "SRL",
	OpBIT: "BIT", OpRES: "RES", OpSET: "SET",
	OpJP: "JP", OpJPHL: "JP", OpJR: "JR", OpCALL: "CALL", OpRET: "RET", OpRETI: "RETI", OpRST: "RST",
	OpHALT: "HALT", OpSTOP: "STOP", OpDI: "DI", OpEI: "EI", OpPrefix: "PREFIX", OpIllegal: "ILLEGAL",
}

func (o Op) String() string {
	if o >= opCount {
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
	return opNames[o]
}

// Cond is the flag condition of a conditional jump, call or return.
type Cond uint8

const (
	Always Cond = iota
	CondNZ
	CondZ
	CondNC
	CondC
)

var condNames = [...]string{"", "NZ", "Z", "NC", "C"}

func (c Cond) String() string { return condNames[c] }

// Mode is the addressing mode of an operand.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeReg
	ModePair
	ModeImm8
	ModeImm16
	ModeSignedImm8
	ModeIndirect    // (rr), HL may be post-incremented or decremented
	ModeIndirectImm // (a16)
	ModeHighImm     // ($FF00+a8)
	ModeHighC       // ($FF00+C)
)

// Operand describes where an instruction reads from or writes to.
type Operand struct {
	Mode  Mode
	Reg   Reg
	Pair  Pair
	Step  int8  // +1 for (HL+), -1 for (HL-)
	Width uint8 // 8 or 16, the size of the data moved
}

var (
	none   = Operand{}
	d8     = Operand{Mode: ModeImm8, Width: 8}
	d16    = Operand{Mode: ModeImm16, Width: 16}
	e8     = Operand{Mode: ModeSignedImm8, Width: 8}
	a16    = Operand{Mode: ModeIndirectImm, Width: 8}
	a16w   = Operand{Mode: ModeIndirectImm, Width: 16}
	ffA8   = Operand{Mode: ModeHighImm, Width: 8}
	ffC    = Operand{Mode: ModeHighC, Width: 8}
	atHL   = ind(PairHL)
	atHLI  = Operand{Mode: ModeIndirect, Pair: PairHL, Step: 1, Width: 8}
	atHLD  = Operand{Mode: ModeIndirect, Pair: PairHL, Step: -1, Width: 8}
	regA   = reg(RegA)
	pairHL = pair(PairHL)
	pairSP = pair(PairSP)
)

func reg(r Reg) Operand   { return Operand{Mode: ModeReg, Reg: r, Width: 8} }
func pair(p Pair) Operand { return Operand{Mode: ModePair, Pair: p, Width: 16} }
func ind(p Pair) Operand  { return Operand{Mode: ModeIndirect, Pair: p, Width: 8} }

// Instruction is the decoded form of one opcode. Tables hold the static part,
// Decode fills in the opcode and the operand bytes.
type Instruction struct {
	Opcode   uint8
	Prefixed bool

	Kind   Kind
	Op     Op
	Dst    Operand
	Src    Operand
	Cond   Cond
	Bit    uint8  // BIT, RES and SET
	Vector uint16 // RST target

	Length      uint8
	Cycles      int // base cost, or cost when a condition is not met
	CyclesTaken int // cost when a condition is met

	Imm8  uint8
	Imm16 uint16
}

func (in Instruction) String() string {
	var sb strings.Builder
	sb.WriteString(in.Op.String())

	var args []string
	switch in.Op {
	case OpBIT, OpRES, OpSET:
		args = append(args, fmt.Sprint(in.Bit))
	case OpRST:
		return fmt.Sprintf("RST $%02X", in.Vector)
	case OpSTOP:
		return "STOP"
	case OpLDHL:
		return fmt.Sprintf("LD HL,SP%+d", int8(in.Imm8))
	}
	if in.Cond != Always {
		args = append(args, in.Cond.String())
	}
	// the accumulator is implied for everything but ADD, ADC and SBC
	implied := in.Kind == KindALU8 && in.Op != OpADD && in.Op != OpADC && in.Op != OpSBC
	if in.Dst.Mode != ModeNone && !implied {
		args = append(args, in.operand(in.Dst))
	}
	if in.Src.Mode != ModeNone {
		args = append(args, in.operand(in.Src))
	}

	if len(args) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(strings.Join(args, ","))
	}
	return sb.String()
}

func (in Instruction) operand(o Operand) string {
	switch o.Mode {
	case ModeReg:
		return o.Reg.String()
	case ModePair:
		return o.Pair.String()
	case ModeImm8:
		return fmt.Sprintf("$%02X", in.Imm8)
	case ModeImm16:
		return fmt.Sprintf("$%04X", in.Imm16)
	case ModeSignedImm8:
		return fmt.Sprintf("%+d", int8(in.Imm8))
	case ModeIndirect:
		switch o.Step {
		case 1:
			return "(HL+)"
		case -1:
			return "(HL-)"
		}
		return "(" + o.Pair.String() + ")"
	case ModeIndirectImm:
		return fmt.Sprintf("($%04X)", in.Imm16)
	case ModeHighImm:
		return fmt.Sprintf("($FF00+$%02X)", in.Imm8)
	case ModeHighC:
		return "($FF00+C)"
	}
	return ""
}
