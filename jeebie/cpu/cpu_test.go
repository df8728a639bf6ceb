package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-jeebie-core/jeebie/addr"
	"github.com/valerio/go-jeebie-core/jeebie/alu"
	"github.com/valerio/go-jeebie-core/jeebie/interrupt"
)

// newTestCPU places program at 0x0100, where the post-boot PC points.
func newTestCPU(program ...byte) (*CPU, *testBus, *interrupt.Controller) {
	bus := busWith(0x0100, program...)
	ic := interrupt.NewController()
	return New(bus, ic), bus, ic
}

func TestBranchCosts(t *testing.T) {
	testCases := []struct {
		desc    string
		program []byte
		flags   alu.Flags
		cycles  int
		pc      uint16
	}{
		{desc: "JR NZ taken", program: []byte{0x20, 0x05}, cycles: 12, pc: 0x0107},
		{desc: "JR NZ not taken", program: []byte{0x20, 0x05}, flags: alu.Zero, cycles: 8, pc: 0x0102},
		{desc: "JR backwards", program: []byte{0x18, 0xFE}, cycles: 12, pc: 0x0100},
		{desc: "JP C taken", program: []byte{0xDA, 0x00, 0x02}, flags: alu.Carry, cycles: 16, pc: 0x0200},
		{desc: "JP C not taken", program: []byte{0xDA, 0x00, 0x02}, cycles: 12, pc: 0x0103},
		{desc: "JP", program: []byte{0xC3, 0x50, 0x01}, cycles: 16, pc: 0x0150},
		{desc: "JP HL", program: []byte{0xE9}, cycles: 4, pc: 0x014D},
		{desc: "CALL Z taken", program: []byte{0xCC, 0x00, 0x02}, flags: alu.Zero, cycles: 24, pc: 0x0200},
		{desc: "CALL Z not taken", program: []byte{0xCC, 0x00, 0x02}, cycles: 12, pc: 0x0103},
		{desc: "CALL", program: []byte{0xCD, 0x00, 0x02}, cycles: 24, pc: 0x0200},
		{desc: "RET NC not taken", program: []byte{0xD0}, flags: alu.Carry, cycles: 8, pc: 0x0101},
		{desc: "RST 28", program: []byte{0xEF}, cycles: 16, pc: 0x0028},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			cpu, _, _ := newTestCPU(tC.program...)
			cpu.regs.SetFlags(tC.flags)

			assert.Equal(t, tC.cycles, cpu.Step())
			assert.Equal(t, tC.pc, cpu.regs.PC)
		})
	}
}

func TestCallAndReturn(t *testing.T) {
	// CALL $0200 ; ... ; $0200: RET NZ
	cpu, bus, _ := newTestCPU(0xCD, 0x00, 0x02)
	bus.mem[0x0200] = 0xC0
	cpu.regs.SetFlags(0)

	cpu.Step()
	assert.Equal(t, uint16(0xFFFC), cpu.regs.SP)
	assert.Equal(t, byte(0x01), bus.mem[0xFFFD], "high byte is pushed first")
	assert.Equal(t, byte(0x03), bus.mem[0xFFFC])

	assert.Equal(t, 20, cpu.Step())
	assert.Equal(t, uint16(0x0103), cpu.regs.PC)
	assert.Equal(t, uint16(0xFFFE), cpu.regs.SP)
}

func TestLoads(t *testing.T) {
	t.Run("LD (HL+),A and LD A,(HL-)", func(t *testing.T) {
		cpu, bus, _ := newTestCPU(0x22, 0x3A)
		cpu.regs.SetHL(0xC000)
		cpu.regs.A = 0x42

		assert.Equal(t, 8, cpu.Step())
		assert.Equal(t, byte(0x42), bus.mem[0xC000])
		assert.Equal(t, uint16(0xC001), cpu.regs.HL())

		bus.mem[0xC001] = 0x99
		cpu.Step()
		assert.Equal(t, uint8(0x99), cpu.regs.A)
		assert.Equal(t, uint16(0xC000), cpu.regs.HL())
	})

	t.Run("LDH and LD (C)", func(t *testing.T) {
		cpu, bus, _ := newTestCPU(0xE0, 0x80, 0xF2)
		cpu.regs.A = 0x12
		cpu.regs.C = 0x80

		assert.Equal(t, 12, cpu.Step())
		assert.Equal(t, byte(0x12), bus.mem[0xFF80])

		cpu.regs.A = 0
		assert.Equal(t, 8, cpu.Step())
		assert.Equal(t, uint8(0x12), cpu.regs.A)
	})

	t.Run("LD (a16),SP", func(t *testing.T) {
		cpu, bus, _ := newTestCPU(0x08, 0x00, 0xC1)
		assert.Equal(t, 20, cpu.Step())
		assert.Equal(t, byte(0xFE), bus.mem[0xC100])
		assert.Equal(t, byte(0xFF), bus.mem[0xC101])
	})

	t.Run("LD SP,HL", func(t *testing.T) {
		cpu, _, _ := newTestCPU(0xF9)
		assert.Equal(t, 8, cpu.Step())
		assert.Equal(t, uint16(0x014D), cpu.regs.SP)
	})

	t.Run("LD HL,SP+e", func(t *testing.T) {
		cpu, _, _ := newTestCPU(0xF8, 0x02)
		cpu.regs.SP = 0xFFF8
		assert.Equal(t, 12, cpu.Step())
		assert.Equal(t, uint16(0xFFFA), cpu.regs.HL())
		assert.Equal(t, alu.Flags(0), cpu.regs.Flags())
	})

	t.Run("ADD SP,e", func(t *testing.T) {
		cpu, _, _ := newTestCPU(0xE8, 0xFF)
		cpu.regs.SP = 0x0001
		assert.Equal(t, 16, cpu.Step())
		assert.Equal(t, uint16(0x0000), cpu.regs.SP)
		assert.Equal(t, alu.HalfCarry|alu.Carry, cpu.regs.Flags())
	})
}

func TestPushPopAFMasksFlags(t *testing.T) {
	// PUSH BC ; POP AF
	cpu, _, _ := newTestCPU(0xC5, 0xF1)
	cpu.regs.SetBC(0x12FF)

	assert.Equal(t, 16, cpu.Step())
	assert.Equal(t, 12, cpu.Step())
	assert.Equal(t, uint16(0x12F0), cpu.regs.AF())
}

func TestArithmetic(t *testing.T) {
	testCases := []struct {
		desc    string
		program []byte
		setup   func(r *Registers)
		check   func(t *testing.T, r *Registers)
	}{
		{
			desc:    "ADD A,B",
			program: []byte{0x80},
			setup:   func(r *Registers) { r.A, r.B = 0x3A, 0xC6 },
			check: func(t *testing.T, r *Registers) {
				assert.Equal(t, uint8(0), r.A)
				assert.Equal(t, alu.Zero|alu.HalfCarry|alu.Carry, r.Flags())
			},
		},
		{
			desc:    "ADC A,d8 uses carry",
			program: []byte{0xCE, 0x01},
			setup:   func(r *Registers) { r.A = 0x01; r.SetFlags(alu.Carry) },
			check: func(t *testing.T, r *Registers) {
				assert.Equal(t, uint8(0x03), r.A)
				assert.Equal(t, alu.Flags(0), r.Flags())
			},
		},
		{
			desc:    "CP d8 keeps A",
			program: []byte{0xFE, 0x3C},
			setup:   func(r *Registers) { r.A = 0x3C },
			check: func(t *testing.T, r *Registers) {
				assert.Equal(t, uint8(0x3C), r.A)
				assert.Equal(t, alu.Zero|alu.Subtract, r.Flags())
			},
		},
		{
			desc:    "XOR A",
			program: []byte{0xAF},
			setup:   func(r *Registers) { r.A = 0x55 },
			check: func(t *testing.T, r *Registers) {
				assert.Equal(t, uint8(0), r.A)
				assert.Equal(t, alu.Zero, r.Flags())
			},
		},
		{
			desc:    "INC BC leaves flags",
			program: []byte{0x03},
			setup:   func(r *Registers) { r.SetBC(0xFFFF); r.SetFlags(alu.Subtract) },
			check: func(t *testing.T, r *Registers) {
				assert.Equal(t, uint16(0), r.BC())
				assert.Equal(t, alu.Subtract, r.Flags())
			},
		},
		{
			desc:    "ADD HL,HL",
			program: []byte{0x29},
			setup:   func(r *Registers) { r.SetHL(0x8800); r.SetFlags(alu.Zero) },
			check: func(t *testing.T, r *Registers) {
				assert.Equal(t, uint16(0x1000), r.HL())
				assert.Equal(t, alu.Zero|alu.HalfCarry|alu.Carry, r.Flags())
			},
		},
		{
			desc:    "DAA after ADD",
			program: []byte{0x80, 0x27},
			setup:   func(r *Registers) { r.A, r.B = 0x45, 0x38 },
			check: func(t *testing.T, r *Registers) {
				assert.Equal(t, uint8(0x83), r.A)
			},
		},
		{
			desc:    "RLA rotates through carry and clears Z",
			program: []byte{0x17},
			setup:   func(r *Registers) { r.A = 0x80; r.SetFlags(0) },
			check: func(t *testing.T, r *Registers) {
				assert.Equal(t, uint8(0), r.A)
				assert.Equal(t, alu.Carry, r.Flags())
			},
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			cpu, _, _ := newTestCPU(tC.program...)
			tC.setup(&cpu.regs)
			for range tC.program {
				if cpu.regs.PC >= 0x0100+uint16(len(tC.program)) {
					break
				}
				cpu.Step()
			}
			tC.check(t, &cpu.regs)
		})
	}
}

func TestIncDecIndirect(t *testing.T) {
	// INC (HL) ; DEC (HL)
	cpu, bus, _ := newTestCPU(0x34, 0x35, 0x35)
	cpu.regs.SetHL(0xC000)
	bus.mem[0xC000] = 0x0F
	cpu.regs.SetFlags(alu.Carry)

	assert.Equal(t, 12, cpu.Step())
	assert.Equal(t, byte(0x10), bus.mem[0xC000])
	assert.Equal(t, alu.HalfCarry|alu.Carry, cpu.regs.Flags())

	cpu.Step()
	cpu.Step()
	assert.Equal(t, byte(0x0E), bus.mem[0xC000])
	assert.Equal(t, alu.Subtract|alu.Carry, cpu.regs.Flags())
}

func TestPrefixedInstructions(t *testing.T) {
	t.Run("SWAP (HL)", func(t *testing.T) {
		cpu, bus, _ := newTestCPU(0xCB, 0x36)
		cpu.regs.SetHL(0xC000)
		bus.mem[0xC000] = 0xF1

		assert.Equal(t, 16, cpu.Step())
		assert.Equal(t, byte(0x1F), bus.mem[0xC000])
		assert.Equal(t, alu.Flags(0), cpu.regs.Flags())
		assert.Equal(t, uint16(0x0102), cpu.regs.PC)
	})

	t.Run("BIT 7,(HL)", func(t *testing.T) {
		cpu, bus, _ := newTestCPU(0xCB, 0x7E)
		cpu.regs.SetHL(0xC000)
		bus.mem[0xC000] = 0x7F
		cpu.regs.SetFlags(alu.Carry)

		assert.Equal(t, 12, cpu.Step())
		assert.Equal(t, alu.Zero|alu.HalfCarry|alu.Carry, cpu.regs.Flags())
	})

	t.Run("RES 0,A and SET 7,B", func(t *testing.T) {
		cpu, _, _ := newTestCPU(0xCB, 0x87, 0xCB, 0xF8)
		cpu.regs.A = 0xFF
		cpu.regs.B = 0x00
		flags := cpu.regs.Flags()

		assert.Equal(t, 8, cpu.Step())
		assert.Equal(t, 8, cpu.Step())
		assert.Equal(t, uint8(0xFE), cpu.regs.A)
		assert.Equal(t, uint8(0x80), cpu.regs.B)
		assert.Equal(t, flags, cpu.regs.Flags())
	})

	t.Run("RL C", func(t *testing.T) {
		cpu, _, _ := newTestCPU(0xCB, 0x11)
		cpu.regs.C = 0x80
		cpu.regs.SetFlags(0)

		cpu.Step()
		assert.Equal(t, uint8(0x00), cpu.regs.C)
		assert.Equal(t, alu.Zero|alu.Carry, cpu.regs.Flags())
	})
}

func TestEIDelay(t *testing.T) {
	// EI ; NOP ; NOP
	cpu, bus, ic := newTestCPU(0xFB, 0x00, 0x00)
	ic.WriteIE(0x04)
	ic.Request(interrupt.Timer)

	assert.Equal(t, 4, cpu.Step(), "EI")
	assert.False(t, ic.MasterEnabled())

	assert.Equal(t, 4, cpu.Step(), "the instruction after EI still runs")
	assert.Equal(t, uint16(0x0102), cpu.regs.PC)
	assert.True(t, ic.MasterEnabled())

	assert.Equal(t, 20, cpu.Step(), "dispatch")
	assert.Equal(t, uint16(0x0050), cpu.regs.PC)
	assert.Equal(t, byte(0x01), bus.mem[0xFFFD])
	assert.Equal(t, byte(0x02), bus.mem[0xFFFC])
	assert.False(t, ic.MasterEnabled())
	assert.Equal(t, uint8(0xE0), ic.ReadIF())
}

func TestDICancelsEI(t *testing.T) {
	// EI ; DI ; NOP
	cpu, _, ic := newTestCPU(0xFB, 0xF3, 0x00)
	ic.WriteIE(0x01)
	ic.Request(interrupt.VBlank)

	cpu.Step()
	cpu.Step()
	cpu.Step()
	assert.False(t, ic.MasterEnabled())
	assert.Equal(t, uint16(0x0103), cpu.regs.PC)
}

func TestRETIEnablesImmediately(t *testing.T) {
	cpu, bus, ic := newTestCPU(0xD9)
	cpu.regs.SP = 0xFFFC
	bus.mem[0xFFFC] = 0x34
	bus.mem[0xFFFD] = 0x12

	assert.Equal(t, 16, cpu.Step())
	assert.Equal(t, uint16(0x1234), cpu.regs.PC)
	assert.Equal(t, uint16(0xFFFE), cpu.regs.SP)
	assert.True(t, ic.MasterEnabled())
}

func TestDispatchPriority(t *testing.T) {
	cpu, _, ic := newTestCPU(0x00)
	ic.EnableNow()
	ic.WriteIE(0x1F)
	ic.Request(interrupt.Joypad)
	ic.Request(interrupt.Serial)
	ic.Request(interrupt.LCDStat)

	assert.Equal(t, 20, cpu.Step())
	assert.Equal(t, uint16(0x0048), cpu.regs.PC)
	assert.Equal(t, uint8(0xE0|0x18), ic.ReadIF(), "only the serviced request is cleared")
}

func TestDispatchRequiresEnable(t *testing.T) {
	cpu, _, ic := newTestCPU(0x00)
	ic.EnableNow()
	ic.Request(interrupt.VBlank)

	assert.Equal(t, 4, cpu.Step())
	assert.Equal(t, uint16(0x0101), cpu.regs.PC)
}

func TestHalt(t *testing.T) {
	t.Run("stays halted with nothing pending", func(t *testing.T) {
		cpu, _, _ := newTestCPU(0x76, 0x3C)
		cpu.Step()
		require.Equal(t, Halted, cpu.State())

		for range 10 {
			assert.Equal(t, 4, cpu.Step())
		}
		assert.Equal(t, uint16(0x0101), cpu.regs.PC)
	})

	t.Run("wakes without servicing when IME is clear", func(t *testing.T) {
		cpu, _, ic := newTestCPU(0x76, 0x3C)
		cpu.regs.A = 0
		ic.WriteIE(0x04)

		cpu.Step()
		require.Equal(t, Halted, cpu.State())
		cpu.Step()

		ic.Request(interrupt.Timer)
		assert.Equal(t, 4, cpu.Step())
		assert.Equal(t, Running, cpu.State())
		assert.Equal(t, uint8(1), cpu.regs.A, "the instruction after HALT runs")
		assert.Equal(t, uint16(0x0102), cpu.regs.PC)
		assert.Equal(t, uint8(0xE4), ic.ReadIF(), "the request is not cleared")
	})

	t.Run("wakes and dispatches when IME is set", func(t *testing.T) {
		cpu, _, ic := newTestCPU(0x76, 0x3C)
		ic.EnableNow()
		ic.WriteIE(0x04)

		cpu.Step()
		require.Equal(t, Halted, cpu.State())

		ic.Request(interrupt.Timer)
		assert.Equal(t, 20, cpu.Step())
		assert.Equal(t, Running, cpu.State())
		assert.Equal(t, uint16(0x0050), cpu.regs.PC)
		assert.Equal(t, uint16(0x0101), cpu.pop(), "returns after HALT")
	})

	t.Run("halt bug reads the next byte twice", func(t *testing.T) {
		// HALT ; INC A ; NOP
		cpu, _, ic := newTestCPU(0x76, 0x3C, 0x00)
		cpu.regs.A = 0
		ic.WriteIE(0x04)
		ic.Request(interrupt.Timer)

		cpu.Step()
		assert.Equal(t, Running, cpu.State(), "HALT does not halt")

		cpu.Step()
		assert.Equal(t, uint16(0x0101), cpu.regs.PC)
		cpu.Step()
		assert.Equal(t, uint16(0x0102), cpu.regs.PC)
		assert.Equal(t, uint8(2), cpu.regs.A)
		assert.Equal(t, uint8(0xE4), ic.ReadIF(), "the request is not cleared")
		assert.Equal(t, uint16(0x0102), cpu.regs.PC, "no vector is taken")
	})
}

func TestStop(t *testing.T) {
	cpu, bus, ic := newTestCPU(0x10, 0x00, 0x3C)
	bus.mem[addr.DIV] = 0xAB
	ic.WriteIE(0x1F)

	assert.Equal(t, 4, cpu.Step())
	assert.Equal(t, Stopped, cpu.State())
	assert.Equal(t, byte(0), bus.mem[addr.DIV], "STOP resets DIV")
	assert.Equal(t, uint16(0x0102), cpu.regs.PC)

	ic.Request(interrupt.Timer)
	assert.Equal(t, 4, cpu.Step(), "only the joypad wakes a stopped cpu")
	assert.Equal(t, Stopped, cpu.State())

	ic.Request(interrupt.Joypad)
	cpu.Step()
	assert.Equal(t, Running, cpu.State())
	assert.Equal(t, uint16(0x0103), cpu.regs.PC)
}

func TestIllegalOpcodeLocks(t *testing.T) {
	cpu, _, ic := newTestCPU(0xDD, 0x00)
	ic.EnableNow()
	ic.WriteIE(0x01)

	assert.Equal(t, 4, cpu.Step())
	assert.Equal(t, Locked, cpu.State())

	ic.Request(interrupt.VBlank)
	for range 4 {
		assert.Equal(t, 4, cpu.Step())
	}
	assert.Equal(t, uint16(0x0101), cpu.regs.PC)
}

func TestUnknownOperationPanics(t *testing.T) {
	cpu, _, _ := newTestCPU()
	assert.Panics(t, func() { cpu.execute(Instruction{Op: opCount}) })
	assert.Panics(t, func() { cpu.execute(baseTable[prefix]) })
}

func TestCyclesAccumulate(t *testing.T) {
	cpu, _, _ := newTestCPU(0x00, 0x01, 0x00, 0x00, 0xC3, 0x00, 0x01)
	cpu.Step()
	cpu.Step()
	cpu.Step()
	assert.Equal(t, uint64(4+12+16), cpu.Cycles())
	assert.Equal(t, OpJP, cpu.Last().Op)
}

func TestOnFetchSkipsDispatchAndIdle(t *testing.T) {
	// EI; NOP; HALT
	c, _, ic := newTestCPU(0xFB, 0x00, 0x76)
	var pcs []uint16
	c.OnFetch(func(r Registers) { pcs = append(pcs, r.PC) })

	c.Step() // EI
	c.Step() // NOP, IME now set
	c.Step() // HALT
	c.Step() // halted, nothing pending
	assert.Equal(t, Halted, c.State())

	ic.WriteIE(interrupt.Timer.Mask())
	ic.Request(interrupt.Timer)
	assert.Equal(t, 20, c.Step(), "dispatch")

	c.Step() // first handler instruction
	assert.Equal(t, []uint16{0x0100, 0x0101, 0x0102, 0x0050}, pcs)
}
