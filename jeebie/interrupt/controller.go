// Package interrupt implements the DMG interrupt controller: the IE and IF
// registers, the IME flip-flop with the EI latch, and dispatch arbitration.
package interrupt

import (
	"fmt"

	"github.com/valerio/go-jeebie-core/jeebie/bit"
)

// Source is one of the five interrupt sources, numbered by priority and by
// its bit position in IE/IF.
type Source uint8

const (
	// VBlank is fired when the GPU has completed a frame.
	VBlank Source = iota
	// LCDStat is fired based on one of the conditions in the STAT register.
	LCDStat
	// Timer is fired when TIMA overflows (i.e. goes from 0xFF to 0x00).
	Timer
	// Serial is fired when a serial transfer has completed on the link port.
	Serial
	// Joypad is fired when any of the keypad inputs goes from high to low.
	Joypad

	sourceCount = 5
)

const (
	baseVector uint16 = 0x40
	// flagsUnused are the IF bits without a source, they always read as 1.
	flagsUnused uint8 = 0xE0
	flagsMask   uint8 = 0x1F
)

var sourceNames = [sourceCount]string{"VBlank", "LCDStat", "Timer", "Serial", "Joypad"}

func (s Source) String() string {
	if s >= sourceCount {
		return fmt.Sprintf("Source(%d)", uint8(s))
	}
	return sourceNames[s]
}

// Vector returns the address of the handler for the source:
// 0x40 - 0x48 - 0x50 - 0x58 - 0x60.
func (s Source) Vector() uint16 {
	return baseVector + uint16(s)*8
}

// Mask returns the IE/IF bit of the source.
func (s Source) Mask() uint8 {
	return 1 << s
}

// Controller owns the interrupt state of one machine.
type Controller struct {
	enable uint8
	flags  uint8
	ime    bool

	// eiDelay counts the instructions left before a pending EI takes effect.
	eiDelay int
}

// NewController returns a controller with all sources disabled and IME clear.
func NewController() *Controller {
	return &Controller{}
}

// Request marks the source as pending. Requesting an already pending source
// has no further effect.
func (c *Controller) Request(s Source) {
	if s >= sourceCount {
		panic(fmt.Sprintf("interrupt: unknown source %d", uint8(s)))
	}
	c.flags = bit.Set(uint8(s), c.flags)
}

// ReadIE returns the Interrupt Enable register. All 8 bits are stored.
func (c *Controller) ReadIE() uint8 {
	return c.enable
}

// WriteIE sets the Interrupt Enable register.
func (c *Controller) WriteIE(value uint8) {
	c.enable = value
}

// ReadIF returns the Interrupt Flag register, bits 5-7 read as 1.
func (c *Controller) ReadIF() uint8 {
	return c.flags | flagsUnused
}

// WriteIF sets the Interrupt Flag register, only the 5 source bits are kept.
func (c *Controller) WriteIF(value uint8) {
	c.flags = value & flagsMask
}

// Any reports whether at least one source is both requested and enabled,
// regardless of IME. This is the condition that wakes a halted core.
func (c *Controller) Any() bool {
	return c.enable&c.flags&flagsMask != 0
}

// Pending returns the highest priority source that is requested and enabled.
func (c *Controller) Pending() (Source, bool) {
	active := c.enable & c.flags & flagsMask
	if active == 0 {
		return 0, false
	}
	for s := VBlank; s < sourceCount; s++ {
		if bit.IsSet(uint8(s), active) {
			return s, true
		}
	}
	return 0, false
}

// Acknowledge clears the request bit of the source, done when it is serviced.
func (c *Controller) Acknowledge(s Source) {
	c.flags = bit.Clear(uint8(s), c.flags)
}

// MasterEnabled reports the IME flip-flop.
func (c *Controller) MasterEnabled() bool {
	return c.ime
}

// Armed reports whether an EI is waiting to take effect.
func (c *Controller) Armed() bool {
	return c.eiDelay > 0
}

// EnableDeferred arms the EI latch: IME is set once the instruction after
// the current one has completed.
func (c *Controller) EnableDeferred() {
	if c.ime || c.eiDelay > 0 {
		return
	}
	c.eiDelay = 2
}

// EnableNow sets IME immediately (RETI).
func (c *Controller) EnableNow() {
	c.ime = true
	c.eiDelay = 0
}

// Disable clears IME and any pending EI (DI and interrupt dispatch).
func (c *Controller) Disable() {
	c.ime = false
	c.eiDelay = 0
}

// Advance moves the EI latch forward by one completed instruction.
func (c *Controller) Advance() {
	if c.eiDelay == 0 {
		return
	}
	c.eiDelay--
	if c.eiDelay == 0 {
		c.ime = true
	}
}
