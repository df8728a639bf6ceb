// Package timer implements the DMG divider and the programmable timer
// (DIV, TIMA, TMA and TAC), advanced one T-cycle at a time.
package timer

import (
	"github.com/valerio/go-jeebie-core/jeebie/addr"
	"github.com/valerio/go-jeebie-core/jeebie/bit"
)

// tacLookup maps TAC input clock select (bits 1–0) to the bit position
// of the 16‑bit internal divider used as the timer's clock source.
// TIMA increments on falling edges of this bit while TAC bit 2 is set.
//
//	00 -> bit 9  (4096 Hz)
//	01 -> bit 3  (262144 Hz)
//	10 -> bit 5  (65536 Hz)
//	11 -> bit 7  (16384 Hz)
var tacLookup = [4]uint8{9, 3, 5, 7}

const (
	// reloadDelay is how many T-cycles TIMA reads 0x00 after overflowing.
	reloadDelay = 4
	tacEnable   = 2
	tacUnused   = 0xF8
)

// Timer holds the state of the divider and the TIMA counter.
type Timer struct {
	divider    uint16 // DIV is the upper byte
	lastSignal bool   // selected divider bit ANDed with the enable bit, for edge detection
	reloadIn   int    // T-cycles left before TIMA <- TMA, 0 when idle

	tima byte
	tma  byte
	tac  byte

	immediate bool
	irq       func()
}

// Option configures a Timer.
type Option func(*Timer)

// WithImmediateReload reloads TIMA and requests the interrupt in the same
// T-cycle that overflows, skipping the 4 cycle window where TIMA reads 0.
func WithImmediateReload() Option { return func(t *Timer) { t.immediate = true } }

// WithDivider seeds the internal divider, e.g. with its post-boot value.
func WithDivider(seed uint16) Option { return func(t *Timer) { t.divider = seed } }

// New creates a timer. irq is called when TIMA is reloaded after an
// overflow and should request the Timer interrupt.
func New(irq func(), opts ...Option) *Timer {
	t := &Timer{irq: irq}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tick advances the timer by a single T-cycle.
func (t *Timer) Tick() {
	if t.reloadIn > 0 {
		t.reloadIn--
		if t.reloadIn == 0 {
			t.reload()
		}
	}

	t.divider++
	t.updateSignal()
}

// Divider returns the full 16 bit internal counter.
func (t *Timer) Divider() uint16 {
	return t.divider
}

// Reloading reports whether TIMA has overflowed and is waiting for the reload.
func (t *Timer) Reloading() bool {
	return t.reloadIn > 0
}

// updateSignal samples the selected divider bit and increments TIMA on a
// falling edge. Writes to DIV and TAC go through here too, so they can
// produce an increment on their own.
func (t *Timer) updateSignal() {
	signal := bit.IsSet(tacEnable, t.tac) && bit.IsSet16(tacLookup[t.tac&0x03], t.divider)
	if t.lastSignal && !signal {
		t.increment()
	}
	t.lastSignal = signal
}

func (t *Timer) increment() {
	if t.tima != 0xFF {
		t.tima++
		return
	}

	t.tima = 0
	if t.immediate {
		t.reload()
		return
	}
	t.reloadIn = reloadDelay
}

func (t *Timer) reload() {
	t.tima = t.tma
	if t.irq != nil {
		t.irq()
	}
}

// Read returns the value of one of the timer registers.
func (t *Timer) Read(address uint16) byte {
	switch address {
	case addr.DIV:
		return bit.High(t.divider)
	case addr.TIMA:
		return t.tima
	case addr.TMA:
		return t.tma
	case addr.TAC:
		return t.tac | tacUnused
	default:
		return 0xFF
	}
}

// Write sets one of the timer registers.
func (t *Timer) Write(address uint16, value byte) {
	switch address {
	case addr.DIV:
		// any write resets the whole counter
		t.divider = 0
		t.updateSignal()
	case addr.TIMA:
		// writing during the overflow window cancels the reload
		t.reloadIn = 0
		t.tima = value
	case addr.TMA:
		t.tma = value
	case addr.TAC:
		t.tac = value &^ tacUnused
		t.updateSignal()
	}
}
