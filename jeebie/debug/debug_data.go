// Package debug collects a read-only view of the machine state for the
// monitor and for tests.
package debug

import "github.com/valerio/go-jeebie-core/jeebie/cpu"

// CPUState contains all CPU register information for debugging
type CPUState struct {
	A uint8
	F uint8
	B uint8
	C uint8
	D uint8
	E uint8
	H uint8
	L uint8

	SP     uint16
	PC     uint16
	IME    bool
	State  cpu.State
	Cycles uint64
	// Last is the mnemonic of the instruction that ran most recently.
	Last string
}

// NewCPUState copies the register file into a CPUState.
func NewCPUState(r cpu.Registers) CPUState {
	return CPUState{
		A: r.A, F: uint8(r.Flags()),
		B: r.B, C: r.C,
		D: r.D, E: r.E,
		H: r.H, L: r.L,
		SP: r.SP, PC: r.PC,
	}
}

// TimerState holds the four timer registers as the program sees them.
type TimerState struct {
	DIV  uint8
	TIMA uint8
	TMA  uint8
	TAC  uint8
}

// MemorySnapshot contains a snapshot of memory for disassembly
type MemorySnapshot struct {
	StartAddr uint16
	Bytes     []uint8
}

// CompleteDebugData contains all debug information needed by debug displays
type CompleteDebugData struct {
	Title           string
	CPU             CPUState
	Timer           TimerState
	Memory          *MemorySnapshot
	InterruptEnable uint8 // IE register at 0xFFFF
	InterruptFlags  uint8 // IF register at 0xFF0F
	Instructions    uint64
	Serial          string
}
