package cpu

// prefix is the escape byte selecting prefixTable for the following byte.
const prefix = 0xCB

// op builds an instruction without operands. Unconditional instructions
// cost the same whether or not they "take" a branch.
func op(kind Kind, o Op, length uint8, cycles int) Instruction {
	return Instruction{Kind: kind, Op: o, Length: length, Cycles: cycles, CyclesTaken: cycles}
}

func (in Instruction) with(dst, src Operand) Instruction {
	in.Dst, in.Src = dst, src
	return in
}

// when makes the instruction conditional. An unconditional branch is
// always taken, so both costs collapse to the taken one.
func (in Instruction) when(c Cond, taken int) Instruction {
	in.Cond = c
	in.CyclesTaken = taken
	if c == Always {
		in.Cycles = taken
	}
	return in
}

func ld(dst, src Operand, length uint8, cycles int) Instruction {
	return op(KindLoad8, OpLD, length, cycles).with(dst, src)
}

func ld16(dst, src Operand, length uint8, cycles int) Instruction {
	return op(KindLoad16, OpLD16, length, cycles).with(dst, src)
}

func alu8(o Op, src Operand, length uint8, cycles int) Instruction {
	return op(KindALU8, o, length, cycles).with(regA, src)
}

func incdec(o Op, target Operand, cycles int) Instruction {
	return op(KindIncDec, o, 1, cycles).with(target, none)
}

func push(p Pair) Instruction { return op(KindStack, OpPUSH, 1, 16).with(pair(p), none) }
func pop(p Pair) Instruction  { return op(KindStack, OpPOP, 1, 12).with(pair(p), none) }

func rst(vector uint16) Instruction {
	in := op(KindJump, OpRST, 1, 16)
	in.Vector = vector
	return in
}

// Conditional branches: the first cost applies when the condition fails.
func jr(c Cond) Instruction   { return op(KindJump, OpJR, 2, 8).with(none, e8).when(c, 12) }
func jp(c Cond) Instruction   { return op(KindJump, OpJP, 3, 12).with(none, d16).when(c, 16) }
func call(c Cond) Instruction { return op(KindJump, OpCALL, 3, 12).with(none, d16).when(c, 24) }
func ret(c Cond) Instruction  { return op(KindJump, OpRET, 1, 8).when(c, 20) }

// illegal opcodes lock up the CPU on real hardware.
func illegal() Instruction { return op(KindControl, OpIllegal, 1, 4) }

func cb(o Op, target Operand) Instruction {
	cycles := 8
	if target.Mode == ModeIndirect {
		cycles = 16
	}
	in := op(KindBitOp, o, 2, cycles).with(target, none)
	in.Prefixed = true
	return in
}

func cbBit(o Op, n uint8, target Operand) Instruction {
	in := cb(o, target)
	in.Bit = n
	// BIT only reads (HL), it never writes it back
	if o == OpBIT && target.Mode == ModeIndirect {
		in.Cycles, in.CyclesTaken = 12, 12
	}
	return in
}

var baseTable = [256]Instruction{
	0x00: op(KindControl, OpNOP, 1, 4),
	0x01: ld16(pair(PairBC), d16, 3, 12),
	0x02: ld(ind(PairBC), regA, 1, 8),
	0x03: incdec(OpINC16, pair(PairBC), 8),
	0x04: incdec(OpINC, reg(RegB), 4),
	0x05: incdec(OpDEC, reg(RegB), 4),
	0x06: ld(reg(RegB), d8, 2, 8),
	0x07: op(KindBitOp, OpRLCA, 1, 4),
	0x08: ld16(a16w, pairSP, 3, 20),
	0x09: op(KindALU16, OpADDHL, 1, 8).with(pairHL, pair(PairBC)),
	0x0A: ld(regA, ind(PairBC), 1, 8),
	0x0B: incdec(OpDEC16, pair(PairBC), 8),
	0x0C: incdec(OpINC, reg(RegC), 4),
	0x0D: incdec(OpDEC, reg(RegC), 4),
	0x0E: ld(reg(RegC), d8, 2, 8),
	0x0F: op(KindBitOp, OpRRCA, 1, 4),
	0x10: op(KindControl, OpSTOP, 2, 4),
	0x11: ld16(pair(PairDE), d16, 3, 12),
	0x12: ld(ind(PairDE), regA, 1, 8),
	0x13: incdec(OpINC16, pair(PairDE), 8),
	0x14: incdec(OpINC, reg(RegD), 4),
	0x15: incdec(OpDEC, reg(RegD), 4),
	0x16: ld(reg(RegD), d8, 2, 8),
	0x17: op(KindBitOp, OpRLA, 1, 4),
	0x18: jr(Always),
	0x19: op(KindALU16, OpADDHL, 1, 8).with(pairHL, pair(PairDE)),
	0x1A: ld(regA, ind(PairDE), 1, 8),
	0x1B: incdec(OpDEC16, pair(PairDE), 8),
	0x1C: incdec(OpINC, reg(RegE), 4),
	0x1D: incdec(OpDEC, reg(RegE), 4),
	0x1E: ld(reg(RegE), d8, 2, 8),
	0x1F: op(KindBitOp, OpRRA, 1, 4),
	0x20: jr(CondNZ),
	0x21: ld16(pairHL, d16, 3, 12),
	0x22: ld(atHLI, regA, 1, 8),
	0x23: incdec(OpINC16, pairHL, 8),
	0x24: incdec(OpINC, reg(RegH), 4),
	0x25: incdec(OpDEC, reg(RegH), 4),
	0x26: ld(reg(RegH), d8, 2, 8),
	0x27: op(KindALU8, OpDAA, 1, 4).with(regA, none),
	0x28: jr(CondZ),
	0x29: op(KindALU16, OpADDHL, 1, 8).with(pairHL, pairHL),
	0x2A: ld(regA, atHLI, 1, 8),
	0x2B: incdec(OpDEC16, pairHL, 8),
	0x2C: incdec(OpINC, reg(RegL), 4),
	0x2D: incdec(OpDEC, reg(RegL), 4),
	0x2E: ld(reg(RegL), d8, 2, 8),
	0x2F: op(KindALU8, OpCPL, 1, 4).with(regA, none),
	0x30: jr(CondNC),
	0x31: ld16(pairSP, d16, 3, 12),
	0x32: ld(atHLD, regA, 1, 8),
	0x33: incdec(OpINC16, pairSP, 8),
	0x34: incdec(OpINC, atHL, 12),
	0x35: incdec(OpDEC, atHL, 12),
	0x36: ld(atHL, d8, 2, 12),
	0x37: op(KindALU8, OpSCF, 1, 4),
	0x38: jr(CondC),
	0x39: op(KindALU16, OpADDHL, 1, 8).with(pairHL, pairSP),
	0x3A: ld(regA, atHLD, 1, 8),
	0x3B: incdec(OpDEC16, pairSP, 8),
	0x3C: incdec(OpINC, reg(RegA), 4),
	0x3D: incdec(OpDEC, reg(RegA), 4),
	0x3E: ld(reg(RegA), d8, 2, 8),
	0x3F: op(KindALU8, OpCCF, 1, 4),
	0x40: ld(reg(RegB), reg(RegB), 1, 4),
	0x41: ld(reg(RegB), reg(RegC), 1, 4),
	0x42: ld(reg(RegB), reg(RegD), 1, 4),
	0x43: ld(reg(RegB), reg(RegE), 1, 4),
	0x44: ld(reg(RegB), reg(RegH), 1, 4),
	0x45: ld(reg(RegB), reg(RegL), 1, 4),
	0x46: ld(reg(RegB), atHL, 1, 8),
	0x47: ld(reg(RegB), reg(RegA), 1, 4),
	0x48: ld(reg(RegC), reg(RegB), 1, 4),
	0x49: ld(reg(RegC), reg(RegC), 1, 4),
	0x4A: ld(reg(RegC), reg(RegD), 1, 4),
	0x4B: ld(reg(RegC), reg(RegE), 1, 4),
	0x4C: ld(reg(RegC), reg(RegH), 1, 4),
	0x4D: ld(reg(RegC), reg(RegL), 1, 4),
	0x4E: ld(reg(RegC), atHL, 1, 8),
	0x4F: ld(reg(RegC), reg(RegA), 1, 4),
	0x50: ld(reg(RegD), reg(RegB), 1, 4),
	0x51: ld(reg(RegD), reg(RegC), 1, 4),
	0x52: ld(reg(RegD), reg(RegD), 1, 4),
	0x53: ld(reg(RegD), reg(RegE), 1, 4),
	0x54: ld(reg(RegD), reg(RegH), 1, 4),
	0x55: ld(reg(RegD), reg(RegL), 1, 4),
	0x56: ld(reg(RegD), atHL, 1, 8),
	0x57: ld(reg(RegD), reg(RegA), 1, 4),
	0x58: ld(reg(RegE), reg(RegB), 1, 4),
	0x59: ld(reg(RegE), reg(RegC), 1, 4),
	0x5A: ld(reg(RegE), reg(RegD), 1, 4),
	0x5B: ld(reg(RegE), reg(RegE), 1, 4),
	0x5C: ld(reg(RegE), reg(RegH), 1, 4),
	0x5D: ld(reg(RegE), reg(RegL), 1, 4),
	0x5E: ld(reg(RegE), atHL, 1, 8),
	0x5F: ld(reg(RegE), reg(RegA), 1, 4),
	0x60: ld(reg(RegH), reg(RegB), 1, 4),
	0x61: ld(reg(RegH), reg(RegC), 1, 4),
	0x62: ld(reg(RegH), reg(RegD), 1, 4),
	0x63: ld(reg(RegH), reg(RegE), 1, 4),
	0x64: ld(reg(RegH), reg(RegH), 1, 4),
	0x65: ld(reg(RegH), reg(RegL), 1, 4),
	0x66: ld(reg(RegH), atHL, 1, 8),
	0x67: ld(reg(RegH), reg(RegA), 1, 4),
	0x68: ld(reg(RegL), reg(RegB), 1, 4),
	0x69: ld(reg(RegL), reg(RegC), 1, 4),
	0x6A: ld(reg(RegL), reg(RegD), 1, 4),
	0x6B: ld(reg(RegL), reg(RegE), 1, 4),
	0x6C: ld(reg(RegL), reg(RegH), 1, 4),
	0x6D: ld(reg(RegL), reg(RegL), 1, 4),
	0x6E: ld(reg(RegL), atHL, 1, 8),
	0x6F: ld(reg(RegL), reg(RegA), 1, 4),
	0x70: ld(atHL, reg(RegB), 1, 8),
	0x71: ld(atHL, reg(RegC), 1, 8),
	0x72: ld(atHL, reg(RegD), 1, 8),
	0x73: ld(atHL, reg(RegE), 1, 8),
	0x74: ld(atHL, reg(RegH), 1, 8),
	0x75: ld(atHL, reg(RegL), 1, 8),
	0x76: op(KindControl, OpHALT, 1, 4),
	0x77: ld(atHL, reg(RegA), 1, 8),
	0x78: ld(reg(RegA), reg(RegB), 1, 4),
	0x79: ld(reg(RegA), reg(RegC), 1, 4),
	0x7A: ld(reg(RegA), reg(RegD), 1, 4),
	0x7B: ld(reg(RegA), reg(RegE), 1, 4),
	0x7C: ld(reg(RegA), reg(RegH), 1, 4),
	0x7D: ld(reg(RegA), reg(RegL), 1, 4),
	0x7E: ld(reg(RegA), atHL, 1, 8),
	0x7F: ld(reg(RegA), reg(RegA), 1, 4),
	0x80: alu8(OpADD, reg(RegB), 1, 4),
	0x81: alu8(OpADD, reg(RegC), 1, 4),
	0x82: alu8(OpADD, reg(RegD), 1, 4),
	0x83: alu8(OpADD, reg(RegE), 1, 4),
	0x84: alu8(OpADD, reg(RegH), 1, 4),
	0x85: alu8(OpADD, reg(RegL), 1, 4),
	0x86: alu8(OpADD, atHL, 1, 8),
	0x87: alu8(OpADD, reg(RegA), 1, 4),
	0x88: alu8(OpADC, reg(RegB), 1, 4),
	0x89: alu8(OpADC, reg(RegC), 1, 4),
	0x8A: alu8(OpADC, reg(RegD), 1, 4),
	0x8B: alu8(OpADC, reg(RegE), 1, 4),
	0x8C: alu8(OpADC, reg(RegH), 1, 4),
	0x8D: alu8(OpADC, reg(RegL), 1, 4),
	0x8E: alu8(OpADC, atHL, 1, 8),
	0x8F: alu8(OpADC, reg(RegA), 1, 4),
	0x90: alu8(OpSUB, reg(RegB), 1, 4),
	0x91: alu8(OpSUB, reg(RegC), 1, 4),
	0x92: alu8(OpSUB, reg(RegD), 1, 4),
	0x93: alu8(OpSUB, reg(RegE), 1, 4),
	0x94: alu8(OpSUB, reg(RegH), 1, 4),
	0x95: alu8(OpSUB, reg(RegL), 1, 4),
	0x96: alu8(OpSUB, atHL, 1, 8),
	0x97: alu8(OpSUB, reg(RegA), 1, 4),
	0x98: alu8(OpSBC, reg(RegB), 1, 4),
	0x99: alu8(OpSBC, reg(RegC), 1, 4),
	0x9A: alu8(OpSBC, reg(RegD), 1, 4),
	0x9B: alu8(OpSBC, reg(RegE), 1, 4),
	0x9C: alu8(OpSBC, reg(RegH), 1, 4),
	0x9D: alu8(OpSBC, reg(RegL), 1, 4),
	0x9E: alu8(OpSBC, atHL, 1, 8),
	0x9F: alu8(OpSBC, reg(RegA), 1, 4),
	0xA0: alu8(OpAND, reg(RegB), 1, 4),
	0xA1: alu8(OpAND, reg(RegC), 1, 4),
	0xA2: alu8(OpAND, reg(RegD), 1, 4),
	0xA3: alu8(OpAND, reg(RegE), 1, 4),
	0xA4: alu8(OpAND, reg(RegH), 1, 4),
	0xA5: alu8(OpAND, reg(RegL), 1, 4),
	0xA6: alu8(OpAND, atHL, 1, 8),
	0xA7: alu8(OpAND, reg(RegA), 1, 4),
	0xA8: alu8(OpXOR, reg(RegB), 1, 4),
	0xA9: alu8(OpXOR, reg(RegC), 1, 4),
	0xAA: alu8(OpXOR, reg(RegD), 1, 4),
	0xAB: alu8(OpXOR, reg(RegE), 1, 4),
	0xAC: alu8(OpXOR, reg(RegH), 1, 4),
	0xAD: alu8(OpXOR, reg(RegL), 1, 4),
	0xAE: alu8(OpXOR, atHL, 1, 8),
	0xAF: alu8(OpXOR, reg(RegA), 1, 4),
	0xB0: alu8(OpOR, reg(RegB), 1, 4),
	0xB1: alu8(OpOR, reg(RegC), 1, 4),
	0xB2: alu8(OpOR, reg(RegD), 1, 4),
	0xB3: alu8(OpOR, reg(RegE), 1, 4),
	0xB4: alu8(OpOR, reg(RegH), 1, 4),
	0xB5: alu8(OpOR, reg(RegL), 1, 4),
	0xB6: alu8(OpOR, atHL, 1, 8),
	0xB7: alu8(OpOR, reg(RegA), 1, 4),
	0xB8: alu8(OpCP, reg(RegB), 1, 4),
	0xB9: alu8(OpCP, reg(RegC), 1, 4),
	0xBA: alu8(OpCP, reg(RegD), 1, 4),
	0xBB: alu8(OpCP, reg(RegE), 1, 4),
	0xBC: alu8(OpCP, reg(RegH), 1, 4),
	0xBD: alu8(OpCP, reg(RegL), 1, 4),
	0xBE: alu8(OpCP, atHL, 1, 8),
	0xBF: alu8(OpCP, reg(RegA), 1, 4),
	0xC0: ret(CondNZ),
	0xC1: pop(PairBC),
	0xC2: jp(CondNZ),
	0xC3: jp(Always),
	0xC4: call(CondNZ),
	0xC5: push(PairBC),
	0xC6: alu8(OpADD, d8, 2, 8),
	0xC7: rst(0x00),
	0xC8: ret(CondZ),
	0xC9: op(KindJump, OpRET, 1, 16),
	0xCA: jp(CondZ),
	0xCB: op(KindControl, OpPrefix, 2, 4),
	0xCC: call(CondZ),
	0xCD: call(Always),
	0xCE: alu8(OpADC, d8, 2, 8),
	0xCF: rst(0x08),
	0xD0: ret(CondNC),
	0xD1: pop(PairDE),
	0xD2: jp(CondNC),
	0xD3: illegal(),
	0xD4: call(CondNC),
	0xD5: push(PairDE),
	0xD6: alu8(OpSUB, d8, 2, 8),
	0xD7: rst(0x10),
	0xD8: ret(CondC),
	0xD9: op(KindJump, OpRETI, 1, 16),
	0xDA: jp(CondC),
	0xDB: illegal(),
	0xDC: call(CondC),
	0xDD: illegal(),
	0xDE: alu8(OpSBC, d8, 2, 8),
	0xDF: rst(0x18),
	0xE0: ld(ffA8, regA, 2, 12),
	0xE1: pop(PairHL),
	0xE2: ld(ffC, regA, 1, 8),
	0xE3: illegal(),
	0xE4: illegal(),
	0xE5: push(PairHL),
	0xE6: alu8(OpAND, d8, 2, 8),
	0xE7: rst(0x20),
	0xE8: op(KindALU16, OpADDSP, 2, 16).with(pairSP, e8),
	0xE9: op(KindJump, OpJPHL, 1, 4).with(pairHL, none),
	0xEA: ld(a16, regA, 3, 16),
	0xEB: illegal(),
	0xEC: illegal(),
	0xED: illegal(),
	0xEE: alu8(OpXOR, d8, 2, 8),
	0xEF: rst(0x28),
	0xF0: ld(regA, ffA8, 2, 12),
	0xF1: pop(PairAF),
	0xF2: ld(regA, ffC, 1, 8),
	0xF3: op(KindControl, OpDI, 1, 4),
	0xF4: illegal(),
	0xF5: push(PairAF),
	0xF6: alu8(OpOR, d8, 2, 8),
	0xF7: rst(0x30),
	0xF8: op(KindLoad16, OpLDHL, 2, 12).with(pairHL, e8),
	0xF9: ld16(pairSP, pairHL, 1, 8),
	0xFA: ld(regA, a16, 3, 16),
	0xFB: op(KindControl, OpEI, 1, 4),
	0xFC: illegal(),
	0xFD: illegal(),
	0xFE: alu8(OpCP, d8, 2, 8),
	0xFF: rst(0x38),
}

var prefixTable = [256]Instruction{
	0x00: cb(OpRLC, reg(RegB)),
	0x01: cb(OpRLC, reg(RegC)),
	0x02: cb(OpRLC, reg(RegD)),
	0x03: cb(OpRLC, reg(RegE)),
	0x04: cb(OpRLC, reg(RegH)),
	0x05: cb(OpRLC, reg(RegL)),
	0x06: cb(OpRLC, atHL),
	0x07: cb(OpRLC, reg(RegA)),
	0x08: cb(OpRRC, reg(RegB)),
	0x09: cb(OpRRC, reg(RegC)),
	0x0A: cb(OpRRC, reg(RegD)),
	0x0B: cb(OpRRC, reg(RegE)),
	0x0C: cb(OpRRC, reg(RegH)),
	0x0D: cb(OpRRC, reg(RegL)),
	0x0E: cb(OpRRC, atHL),
	0x0F: cb(OpRRC, reg(RegA)),
	0x10: cb(OpRL, reg(RegB)),
	0x11: cb(OpRL, reg(RegC)),
	0x12: cb(OpRL, reg(RegD)),
	0x13: cb(OpRL, reg(RegE)),
	0x14: cb(OpRL, reg(RegH)),
	0x15: cb(OpRL, reg(RegL)),
	0x16: cb(OpRL, atHL),
	0x17: cb(OpRL, reg(RegA)),
	0x18: cb(OpRR, reg(RegB)),
	0x19: cb(OpRR, reg(RegC)),
	0x1A: cb(OpRR, reg(RegD)),
	0x1B: cb(OpRR, reg(RegE)),
	0x1C: cb(OpRR, reg(RegH)),
	0x1D: cb(OpRR, reg(RegL)),
	0x1E: cb(OpRR, atHL),
	0x1F: cb(OpRR, reg(RegA)),
	0x20: cb(OpSLA, reg(RegB)),
	0x21: cb(OpSLA, reg(RegC)),
	0x22: cb(OpSLA, reg(RegD)),
	0x23: cb(OpSLA, reg(RegE)),
	0x24: cb(OpSLA, reg(RegH)),
	0x25: cb(OpSLA, reg(RegL)),
	0x26: cb(OpSLA, atHL),
	0x27: cb(OpSLA, reg(RegA)),
	0x28: cb(OpSRA, reg(RegB)),
	0x29: cb(OpSRA, reg(RegC)),
	0x2A: cb(OpSRA, reg(RegD)),
	0x2B: cb(OpSRA, reg(RegE)),
	0x2C: cb(OpSRA, reg(RegH)),
	0x2D: cb(OpSRA, reg(RegL)),
	0x2E: cb(OpSRA, atHL),
	0x2F: cb(OpSRA, reg(RegA)),
	0x30: cb(OpSWAP, reg(RegB)),
	0x31: cb(OpSWAP, reg(RegC)),
	0x32: cb(OpSWAP, reg(RegD)),
	0x33: cb(OpSWAP, reg(RegE)),
	0x34: cb(OpSWAP, reg(RegH)),
	0x35: cb(OpSWAP, reg(RegL)),
	0x36: cb(OpSWAP, atHL),
	0x37: cb(OpSWAP, reg(RegA)),
	0x38: cb(OpSRL, reg(RegB)),
	0x39: cb(OpSRL, reg(RegC)),
	0x3A: cb(OpSRL, reg(RegD)),
	0x3B: cb(OpSRL, reg(RegE)),
	0x3C: cb(OpSRL, reg(RegH)),
	0x3D: cb(OpSRL, reg(RegL)),
	0x3E: cb(OpSRL, atHL),
	0x3F: cb(OpSRL, reg(RegA)),
	0x40: cbBit(OpBIT, 0, reg(RegB)),
	0x41: cbBit(OpBIT, 0, reg(RegC)),
	0x42: cbBit(OpBIT, 0, reg(RegD)),
	0x43: cbBit(OpBIT, 0, reg(RegE)),
	0x44: cbBit(OpBIT, 0, reg(RegH)),
	0x45: cbBit(OpBIT, 0, reg(RegL)),
	0x46: cbBit(OpBIT, 0, atHL),
	0x47: cbBit(OpBIT, 0, reg(RegA)),
	0x48: cbBit(OpBIT, 1, reg(RegB)),
	0x49: cbBit(OpBIT, 1, reg(RegC)),
	0x4A: cbBit(OpBIT, 1, reg(RegD)),
	0x4B: cbBit(OpBIT, 1, reg(RegE)),
	0x4C: cbBit(OpBIT, 1, reg(RegH)),
	0x4D: cbBit(OpBIT, 1, reg(RegL)),
	0x4E: cbBit(OpBIT, 1, atHL),
	0x4F: cbBit(OpBIT, 1, reg(RegA)),
	0x50: cbBit(OpBIT, 2, reg(RegB)),
	0x51: cbBit(OpBIT, 2, reg(RegC)),
	0x52: cbBit(OpBIT, 2, reg(RegD)),
	0x53: cbBit(OpBIT, 2, reg(RegE)),
	0x54: cbBit(OpBIT, 2, reg(RegH)),
	0x55: cbBit(OpBIT, 2, reg(RegL)),
	0x56: cbBit(OpBIT, 2, atHL),
	0x57: cbBit(OpBIT, 2, reg(RegA)),
	0x58: cbBit(OpBIT, 3, reg(RegB)),
	0x59: cbBit(OpBIT, 3, reg(RegC)),
	0x5A: cbBit(OpBIT, 3, reg(RegD)),
	0x5B: cbBit(OpBIT, 3, reg(RegE)),
	0x5C: cbBit(OpBIT, 3, reg(RegH)),
	0x5D: cbBit(OpBIT, 3, reg(RegL)),
	0x5E: cbBit(OpBIT, 3, atHL),
	0x5F: cbBit(OpBIT, 3, reg(RegA)),
	0x60: cbBit(OpBIT, 4, reg(RegB)),
	0x61: cbBit(OpBIT, 4, reg(RegC)),
	0x62: cbBit(OpBIT, 4, reg(RegD)),
	0x63: cbBit(OpBIT, 4, reg(RegE)),
	0x64: cbBit(OpBIT, 4, reg(RegH)),
	0x65: cbBit(OpBIT, 4, reg(RegL)),
	0x66: cbBit(OpBIT, 4, atHL),
	0x67: cbBit(OpBIT, 4, reg(RegA)),
	0x68: cbBit(OpBIT, 5, reg(RegB)),
	0x69: cbBit(OpBIT, 5, reg(RegC)),
	0x6A: cbBit(OpBIT, 5, reg(RegD)),
	0x6B: cbBit(OpBIT, 5, reg(RegE)),
	0x6C: cbBit(OpBIT, 5, reg(RegH)),
	0x6D: cbBit(OpBIT, 5, reg(RegL)),
	0x6E: cbBit(OpBIT, 5, atHL),
	0x6F: cbBit(OpBIT, 5, reg(RegA)),
	0x70: cbBit(OpBIT, 6, reg(RegB)),
	0x71: cbBit(OpBIT, 6, reg(RegC)),
	0x72: cbBit(OpBIT, 6, reg(RegD)),
	0x73: cbBit(OpBIT, 6, reg(RegE)),
	0x74: cbBit(OpBIT, 6, reg(RegH)),
	0x75: cbBit(OpBIT, 6, reg(RegL)),
	0x76: cbBit(OpBIT, 6, atHL),
	0x77: cbBit(OpBIT, 6, reg(RegA)),
	0x78: cbBit(OpBIT, 7, reg(RegB)),
	0x79: cbBit(OpBIT, 7, reg(RegC)),
	0x7A: cbBit(OpBIT, 7, reg(RegD)),
	0x7B: cbBit(OpBIT, 7, reg(RegE)),
	0x7C: cbBit(OpBIT, 7, reg(RegH)),
	0x7D: cbBit(OpBIT, 7, reg(RegL)),
	0x7E: cbBit(OpBIT, 7, atHL),
	0x7F: cbBit(OpBIT, 7, reg(RegA)),
	0x80: cbBit(OpRES, 0, reg(RegB)),
	0x81: cbBit(OpRES, 0, reg(RegC)),
	0x82: cbBit(OpRES, 0, reg(RegD)),
	0x83: cbBit(OpRES, 0, reg(RegE)),
	0x84: cbBit(OpRES, 0, reg(RegH)),
	0x85: cbBit(OpRES, 0, reg(RegL)),
	0x86: cbBit(OpRES, 0, atHL),
	0x87: cbBit(OpRES, 0, reg(RegA)),
	0x88: cbBit(OpRES, 1, reg(RegB)),
	0x89: cbBit(OpRES, 1, reg(RegC)),
	0x8A: cbBit(OpRES, 1, reg(RegD)),
	0x8B: cbBit(OpRES, 1, reg(RegE)),
	0x8C: cbBit(OpRES, 1, reg(RegH)),
	0x8D: cbBit(OpRES, 1, reg(RegL)),
	0x8E: cbBit(OpRES, 1, atHL),
	0x8F: cbBit(OpRES, 1, reg(RegA)),
	0x90: cbBit(OpRES, 2, reg(RegB)),
	0x91: cbBit(OpRES, 2, reg(RegC)),
	0x92: cbBit(OpRES, 2, reg(RegD)),
	0x93: cbBit(OpRES, 2, reg(RegE)),
	0x94: cbBit(OpRES, 2, reg(RegH)),
	0x95: cbBit(OpRES, 2, reg(RegL)),
	0x96: cbBit(OpRES, 2, atHL),
	0x97: cbBit(OpRES, 2, reg(RegA)),
	0x98: cbBit(OpRES, 3, reg(RegB)),
	0x99: cbBit(OpRES, 3, reg(RegC)),
	0x9A: cbBit(OpRES, 3, reg(RegD)),
	0x9B: cbBit(OpRES, 3, reg(RegE)),
	0x9C: cbBit(OpRES, 3, reg(RegH)),
	0x9D: cbBit(OpRES, 3, reg(RegL)),
	0x9E: cbBit(OpRES, 3, atHL),
	0x9F: cbBit(OpRES, 3, reg(RegA)),
	0xA0: cbBit(OpRES, 4, reg(RegB)),
	0xA1: cbBit(OpRES, 4, reg(RegC)),
	0xA2: cbBit(OpRES, 4, reg(RegD)),
	0xA3: cbBit(OpRES, 4, reg(RegE)),
	0xA4: cbBit(OpRES, 4, reg(RegH)),
	0xA5: cbBit(OpRES, 4, reg(RegL)),
	0xA6: cbBit(OpRES, 4, atHL),
	0xA7: cbBit(OpRES, 4, reg(RegA)),
	0xA8: cbBit(OpRES, 5, reg(RegB)),
	0xA9: cbBit(OpRES, 5, reg(RegC)),
	0xAA: cbBit(OpRES, 5, reg(RegD)),
	0xAB: cbBit(OpRES, 5, reg(RegE)),
	0xAC: cbBit(OpRES, 5, reg(RegH)),
	0xAD: cbBit(OpRES, 5, reg(RegL)),
	0xAE: cbBit(OpRES, 5, atHL),
	0xAF: cbBit(OpRES, 5, reg(RegA)),
	0xB0: cbBit(OpRES, 6, reg(RegB)),
	0xB1: cbBit(OpRES, 6, reg(RegC)),
	0xB2: cbBit(OpRES, 6, reg(RegD)),
	0xB3: cbBit(OpRES, 6, reg(RegE)),
	0xB4: cbBit(OpRES, 6, reg(RegH)),
	0xB5: cbBit(OpRES, 6, reg(RegL)),
	0xB6: cbBit(OpRES, 6, atHL),
	0xB7: cbBit(OpRES, 6, reg(RegA)),
	0xB8: cbBit(OpRES, 7, reg(RegB)),
	0xB9: cbBit(OpRES, 7, reg(RegC)),
	0xBA: cbBit(OpRES, 7, reg(RegD)),
	0xBB: cbBit(OpRES, 7, reg(RegE)),
	0xBC: cbBit(OpRES, 7, reg(RegH)),
	0xBD: cbBit(OpRES, 7, reg(RegL)),
	0xBE: cbBit(OpRES, 7, atHL),
	0xBF: cbBit(OpRES, 7, reg(RegA)),
	0xC0: cbBit(OpSET, 0, reg(RegB)),
	0xC1: cbBit(OpSET, 0, reg(RegC)),
	0xC2: cbBit(OpSET, 0, reg(RegD)),
	0xC3: cbBit(OpSET, 0, reg(RegE)),
	0xC4: cbBit(OpSET, 0, reg(RegH)),
	0xC5: cbBit(OpSET, 0, reg(RegL)),
	0xC6: cbBit(OpSET, 0, atHL),
	0xC7: cbBit(OpSET, 0, reg(RegA)),
	0xC8: cbBit(OpSET, 1, reg(RegB)),
	0xC9: cbBit(OpSET, 1, reg(RegC)),
	0xCA: cbBit(OpSET, 1, reg(RegD)),
	0xCB: cbBit(OpSET, 1, reg(RegE)),
	0xCC: cbBit(OpSET, 1, reg(RegH)),
	0xCD: cbBit(OpSET, 1, reg(RegL)),
	0xCE: cbBit(OpSET, 1, atHL),
	0xCF: cbBit(OpSET, 1, reg(RegA)),
	0xD0: cbBit(OpSET, 2, reg(RegB)),
	0xD1: cbBit(OpSET, 2, reg(RegC)),
	0xD2: cbBit(OpSET, 2, reg(RegD)),
	0xD3: cbBit(OpSET, 2, reg(RegE)),
	0xD4: cbBit(OpSET, 2, reg(RegH)),
	0xD5: cbBit(OpSET, 2, reg(RegL)),
	0xD6: cbBit(OpSET, 2, atHL),
	0xD7: cbBit(OpSET, 2, reg(RegA)),
	0xD8: cbBit(OpSET, 3, reg(RegB)),
	0xD9: cbBit(OpSET, 3, reg(RegC)),
	0xDA: cbBit(OpSET, 3, reg(RegD)),
	0xDB: cbBit(OpSET, 3, reg(RegE)),
	0xDC: cbBit(OpSET, 3, reg(RegH)),
	0xDD: cbBit(OpSET, 3, reg(RegL)),
	0xDE: cbBit(OpSET, 3, atHL),
	0xDF: cbBit(OpSET, 3, reg(RegA)),
	0xE0: cbBit(OpSET, 4, reg(RegB)),
	0xE1: cbBit(OpSET, 4, reg(RegC)),
	0xE2: cbBit(OpSET, 4, reg(RegD)),
	0xE3: cbBit(OpSET, 4, reg(RegE)),
	0xE4: cbBit(OpSET, 4, reg(RegH)),
	0xE5: cbBit(OpSET, 4, reg(RegL)),
	0xE6: cbBit(OpSET, 4, atHL),
	0xE7: cbBit(OpSET, 4, reg(RegA)),
	0xE8: cbBit(OpSET, 5, reg(RegB)),
	0xE9: cbBit(OpSET, 5, reg(RegC)),
	0xEA: cbBit(OpSET, 5, reg(RegD)),
	0xEB: cbBit(OpSET, 5, reg(RegE)),
	0xEC: cbBit(OpSET, 5, reg(RegH)),
	0xED: cbBit(OpSET, 5, reg(RegL)),
	0xEE: cbBit(OpSET, 5, atHL),
	0xEF: cbBit(OpSET, 5, reg(RegA)),
	0xF0: cbBit(OpSET, 6, reg(RegB)),
	0xF1: cbBit(OpSET, 6, reg(RegC)),
	0xF2: cbBit(OpSET, 6, reg(RegD)),
	0xF3: cbBit(OpSET, 6, reg(RegE)),
	0xF4: cbBit(OpSET, 6, reg(RegH)),
	0xF5: cbBit(OpSET, 6, reg(RegL)),
	0xF6: cbBit(OpSET, 6, atHL),
	0xF7: cbBit(OpSET, 6, reg(RegA)),
	0xF8: cbBit(OpSET, 7, reg(RegB)),
	0xF9: cbBit(OpSET, 7, reg(RegC)),
	0xFA: cbBit(OpSET, 7, reg(RegD)),
	0xFB: cbBit(OpSET, 7, reg(RegE)),
	0xFC: cbBit(OpSET, 7, reg(RegH)),
	0xFD: cbBit(OpSET, 7, reg(RegL)),
	0xFE: cbBit(OpSET, 7, atHL),
	0xFF: cbBit(OpSET, 7, reg(RegA)),
}
