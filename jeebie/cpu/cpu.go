// Package cpu implements the SM83 core of the DMG: the register file, the
// table driven instruction decoder and the execution state machine.
package cpu

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-jeebie-core/jeebie/addr"
	"github.com/valerio/go-jeebie-core/jeebie/alu"
	"github.com/valerio/go-jeebie-core/jeebie/bit"
	"github.com/valerio/go-jeebie-core/jeebie/interrupt"
)

// Bus is the 16 bit address space as seen by the CPU.
type Bus interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
}

// State is the execution state of the core.
type State uint8

const (
	// Running fetches and executes an instruction every step.
	Running State = iota
	// Halted waits for an enabled interrupt to be requested.
	Halted
	// Stopped waits for a joypad interrupt request.
	Stopped
	// Locked is entered by an illegal opcode, the core never leaves it.
	Locked
)

var stateNames = [...]string{"running", "halted", "stopped", "locked"}

func (s State) String() string { return stateNames[s] }

const (
	// dispatchCycles is the cost of jumping to an interrupt handler (5 M-cycles).
	dispatchCycles = 20
	// idleCycles is charged for every step spent halted, stopped or locked.
	idleCycles = 4
)

// CPU is the main struct holding SM83 state.
type CPU struct {
	regs Registers

	bus        Bus
	interrupts *interrupt.Controller

	state State
	// haltBug is set when HALT ran with IME clear and an interrupt pending:
	// the next opcode fetch does not advance PC.
	haltBug bool

	cycles uint64
	last   Instruction

	onFetch func(Registers)
}

// New returns a CPU with the post-boot register values, reading and writing
// through bus and taking interrupts from ic.
func New(bus Bus, ic *interrupt.Controller) *CPU {
	return &CPU{
		regs:       PostBoot(),
		bus:        bus,
		interrupts: ic,
	}
}

// Registers returns a copy of the register file.
func (c *CPU) Registers() Registers { return c.regs }

// SetRegisters overwrites the register file.
func (c *CPU) SetRegisters(r Registers) { c.regs = r }

// State returns the current execution state.
func (c *CPU) State() State { return c.state }

// Cycles returns the T-cycles consumed since creation.
func (c *CPU) Cycles() uint64 { return c.cycles }

// Last returns the most recently executed instruction.
func (c *CPU) Last() Instruction { return c.last }

// OnFetch registers fn to be called with the register file right before
// each instruction fetch. Interrupt dispatch and idle steps do not call it.
func (c *CPU) OnFetch(fn func(Registers)) { c.onFetch = fn }

// Step runs the core for one unit of work: an interrupt dispatch, an idle
// period while halted or stopped, or a single instruction.
// Returns the amount of T-cycles that it took.
func (c *CPU) Step() int {
	cycles := c.step()
	c.cycles += uint64(cycles)
	return cycles
}

func (c *CPU) step() int {
	switch c.state {
	case Locked:
		return idleCycles
	case Stopped:
		if !bit.IsSet(uint8(interrupt.Joypad), c.interrupts.ReadIF()) {
			return idleCycles
		}
		c.state = Running
	}

	if c.interrupts.MasterEnabled() {
		if source, ok := c.interrupts.Pending(); ok {
			c.state = Running
			return c.dispatch(source)
		}
	}

	if c.state == Halted {
		// an enabled request wakes the core even when IME is clear,
		// execution then simply resumes after HALT
		if !c.interrupts.Any() {
			return idleCycles
		}
		c.state = Running
	}

	if c.onFetch != nil {
		c.onFetch(c.regs)
	}
	in := c.fetch()
	cycles := c.execute(in)
	c.last = in
	c.interrupts.Advance()
	return cycles
}

// dispatch services the interrupt: the request is acknowledged, IME cleared
// and PC pushed before jumping to the handler.
func (c *CPU) dispatch(source interrupt.Source) int {
	c.interrupts.Acknowledge(source)
	c.interrupts.Disable()
	c.push(c.regs.PC)
	c.regs.PC = source.Vector()
	return dispatchCycles
}

func (c *CPU) fetch() Instruction {
	var in Instruction
	var next uint16
	if c.haltBug {
		in, next = decodeHaltBug(c.bus, c.regs.PC)
		c.haltBug = false
	} else {
		in, next = Decode(c.bus, c.regs.PC)
	}
	c.regs.PC = next
	return in
}

// execute applies the instruction to the machine state, PC already points
// to the next instruction. Returns the T-cycles consumed.
func (c *CPU) execute(in Instruction) int {
	r := &c.regs

	switch in.Op {
	case OpNOP:

	case OpLD:
		c.write8(in.Dst, in, c.read8(in.Src, in))
	case OpLD16:
		if in.Dst.Mode == ModeIndirectImm {
			// LD (a16),SP
			c.bus.Write(in.Imm16, bit.Low(r.SP))
			c.bus.Write(in.Imm16+1, bit.High(r.SP))
			break
		}
		value := in.Imm16
		if in.Src.Mode == ModePair {
			value = r.Pair(in.Src.Pair)
		}
		r.SetPair(in.Dst.Pair, value)
	case OpLDHL:
		hl, fl := alu.AddSP(r.SP, in.Imm8)
		r.SetHL(hl)
		r.SetFlags(fl)
	case OpPUSH:
		c.push(r.Pair(in.Dst.Pair))
	case OpPOP:
		r.SetPair(in.Dst.Pair, c.pop())

	case OpADD, OpADC:
		a, fl := alu.Add(r.A, c.read8(in.Src, in), in.Op == OpADC, r.Flags())
		r.A = a
		r.SetFlags(fl)
	case OpSUB, OpSBC:
		a, fl := alu.Sub(r.A, c.read8(in.Src, in), in.Op == OpSBC, r.Flags())
		r.A = a
		r.SetFlags(fl)
	case OpAND:
		a, fl := alu.And(r.A, c.read8(in.Src, in))
		r.A = a
		r.SetFlags(fl)
	case OpXOR:
		a, fl := alu.Xor(r.A, c.read8(in.Src, in))
		r.A = a
		r.SetFlags(fl)
	case OpOR:
		a, fl := alu.Or(r.A, c.read8(in.Src, in))
		r.A = a
		r.SetFlags(fl)
	case OpCP:
		r.SetFlags(alu.Compare(r.A, c.read8(in.Src, in), r.Flags()))

	case OpINC:
		v, fl := alu.Inc(c.read8(in.Dst, in), r.Flags())
		c.write8(in.Dst, in, v)
		r.SetFlags(fl)
	case OpDEC:
		v, fl := alu.Dec(c.read8(in.Dst, in), r.Flags())
		c.write8(in.Dst, in, v)
		r.SetFlags(fl)
	case OpINC16:
		r.SetPair(in.Dst.Pair, r.Pair(in.Dst.Pair)+1)
	case OpDEC16:
		r.SetPair(in.Dst.Pair, r.Pair(in.Dst.Pair)-1)
	case OpADDHL:
		hl, fl := alu.AddHL(r.HL(), r.Pair(in.Src.Pair), r.Flags())
		r.SetHL(hl)
		r.SetFlags(fl)
	case OpADDSP:
		sp, fl := alu.AddSP(r.SP, in.Imm8)
		r.SP = sp
		r.SetFlags(fl)

	case OpDAA:
		a, fl := alu.DAA(r.A, r.Flags())
		r.A = a
		r.SetFlags(fl)
	case OpCPL:
		a, fl := alu.Cpl(r.A, r.Flags())
		r.A = a
		r.SetFlags(fl)
	case OpSCF:
		r.SetFlags(alu.Scf(r.Flags()))
	case OpCCF:
		r.SetFlags(alu.Ccf(r.Flags()))

	case OpRLCA:
		a, fl := alu.Rlca(r.A)
		r.A = a
		r.SetFlags(fl)
	case OpRRCA:
		a, fl := alu.Rrca(r.A)
		r.A = a
		r.SetFlags(fl)
	case OpRLA:
		a, fl := alu.Rla(r.A, r.Flags())
		r.A = a
		r.SetFlags(fl)
	case OpRRA:
		a, fl := alu.Rra(r.A, r.Flags())
		r.A = a
		r.SetFlags(fl)

	case OpRLC, OpRRC, OpRL, OpRR, OpSLA, OpSRA, OpSWAP, OpSRL:
		v, fl := c.shift(in.Op, c.read8(in.Dst, in))
		c.write8(in.Dst, in, v)
		r.SetFlags(fl)
	case OpBIT:
		r.SetFlags(alu.Bit(in.Bit, c.read8(in.Dst, in), r.Flags()))
	case OpRES:
		c.write8(in.Dst, in, alu.Res(in.Bit, c.read8(in.Dst, in)))
	case OpSET:
		c.write8(in.Dst, in, alu.Set(in.Bit, c.read8(in.Dst, in)))

	case OpJP:
		if !c.check(in.Cond) {
			return in.Cycles
		}
		r.PC = in.Imm16
		return in.CyclesTaken
	case OpJPHL:
		r.PC = r.HL()
	case OpJR:
		if !c.check(in.Cond) {
			return in.Cycles
		}
		r.PC += bit.SignExtend(in.Imm8)
		return in.CyclesTaken
	case OpCALL:
		if !c.check(in.Cond) {
			return in.Cycles
		}
		c.push(r.PC)
		r.PC = in.Imm16
		return in.CyclesTaken
	case OpRET:
		if !c.check(in.Cond) {
			return in.Cycles
		}
		r.PC = c.pop()
		return in.CyclesTaken
	case OpRETI:
		r.PC = c.pop()
		c.interrupts.EnableNow()
	case OpRST:
		c.push(r.PC)
		r.PC = in.Vector

	case OpHALT:
		c.halt()
	case OpSTOP:
		c.bus.Write(addr.DIV, 0)
		c.state = Stopped
	case OpDI:
		c.interrupts.Disable()
	case OpEI:
		c.interrupts.EnableDeferred()

	case OpIllegal:
		slog.Warn("illegal opcode, cpu locked", "opcode", fmt.Sprintf("0x%02X", in.Opcode), "pc", fmt.Sprintf("0x%04X", r.PC-1))
		c.state = Locked

	default:
		panic(fmt.Sprintf("cpu: unknown operation %s (opcode 0x%02X, prefixed=%v) before PC=0x%04X",
			in.Op, in.Opcode, in.Prefixed, r.PC))
	}

	return in.Cycles
}

// halt enters the Halted state. With IME clear and an interrupt already
// pending the core does not halt: the HALT bug makes the next opcode byte
// be read twice. A pending EI counts as IME set.
func (c *CPU) halt() {
	ime := c.interrupts.MasterEnabled() || c.interrupts.Armed()
	if !ime && c.interrupts.Any() {
		c.haltBug = true
		return
	}
	c.state = Halted
}

func (c *CPU) shift(o Op, v uint8) (uint8, alu.Flags) {
	fl := c.regs.Flags()
	switch o {
	case OpRLC:
		return alu.Rlc(v)
	case OpRRC:
		return alu.Rrc(v)
	case OpRL:
		return alu.Rl(v, fl)
	case OpRR:
		return alu.Rr(v, fl)
	case OpSLA:
		return alu.Sla(v)
	case OpSRA:
		return alu.Sra(v)
	case OpSWAP:
		return alu.Swap(v)
	case OpSRL:
		return alu.Srl(v)
	}
	panic(fmt.Sprintf("cpu: %s is not a shift", o))
}

func (c *CPU) check(cond Cond) bool {
	fl := c.regs.Flags()
	switch cond {
	case Always:
		return true
	case CondNZ:
		return !fl.Has(alu.Zero)
	case CondZ:
		return fl.Has(alu.Zero)
	case CondNC:
		return !fl.Has(alu.Carry)
	case CondC:
		return fl.Has(alu.Carry)
	}
	panic(fmt.Sprintf("cpu: unknown condition %d", cond))
}

// address resolves a memory operand, applying the HL post increment or
// decrement when the operand asks for it.
func (c *CPU) address(o Operand, in Instruction) uint16 {
	switch o.Mode {
	case ModeIndirect:
		address := c.regs.Pair(o.Pair)
		if o.Step != 0 {
			c.regs.SetPair(o.Pair, address+uint16(int16(o.Step)))
		}
		return address
	case ModeIndirectImm:
		return in.Imm16
	case ModeHighImm:
		return 0xFF00 | uint16(in.Imm8)
	case ModeHighC:
		return 0xFF00 | uint16(c.regs.C)
	}
	panic(fmt.Sprintf("cpu: operand mode %d is not a memory operand", o.Mode))
}

func (c *CPU) read8(o Operand, in Instruction) uint8 {
	switch o.Mode {
	case ModeReg:
		return c.regs.Get(o.Reg)
	case ModeImm8:
		return in.Imm8
	}
	return c.bus.Read(c.address(o, in))
}

func (c *CPU) write8(o Operand, in Instruction, value uint8) {
	if o.Mode == ModeReg {
		c.regs.Set(o.Reg, value)
		return
	}
	c.bus.Write(c.address(o, in), value)
}

// push writes value on the stack, high byte first, decrementing SP before each write.
func (c *CPU) push(value uint16) {
	c.regs.SP--
	c.bus.Write(c.regs.SP, bit.High(value))
	c.regs.SP--
	c.bus.Write(c.regs.SP, bit.Low(value))
}

func (c *CPU) pop() uint16 {
	low := c.bus.Read(c.regs.SP)
	c.regs.SP++
	high := c.bus.Read(c.regs.SP)
	c.regs.SP++
	return bit.Combine(high, low)
}
