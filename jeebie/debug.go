package jeebie

import (
	"github.com/valerio/go-jeebie-core/jeebie/addr"
	"github.com/valerio/go-jeebie-core/jeebie/debug"
)

// debugSnapshotSize is how many bytes of memory around PC are captured.
const debugSnapshotSize = 96

// ExtractDebugData returns a copy of the state shown by the monitor.
func (d *DMG) ExtractDebugData() *debug.CompleteDebugData {
	if d == nil || d.cpu == nil || d.mmu == nil {
		return nil
	}

	regs := d.cpu.Registers()
	cpuState := debug.NewCPUState(regs)
	cpuState.IME = d.interrupts.MasterEnabled()
	cpuState.State = d.cpu.State()
	cpuState.Cycles = d.cpu.Cycles()
	if d.instructions > 0 {
		cpuState.Last = d.cpu.Last().String()
	}

	return &debug.CompleteDebugData{
		Title: d.cart.Title,
		CPU:   cpuState,
		Timer: debug.TimerState{
			DIV:  d.mmu.Read(addr.DIV),
			TIMA: d.mmu.Read(addr.TIMA),
			TMA:  d.mmu.Read(addr.TMA),
			TAC:  d.mmu.Read(addr.TAC),
		},
		Memory:          debug.TakeMemorySnapshot(d.mmu, regs.PC, debugSnapshotSize),
		InterruptEnable: d.interrupts.ReadIE(),
		InterruptFlags:  d.interrupts.ReadIF(),
		Instructions:    d.instructions,
		Serial:          d.serial.Output(),
	}
}
