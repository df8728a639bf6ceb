// Package memory implements the DMG address space: a flat 64 KiB map with
// the I/O registers of the timer, the serial port and the interrupt
// controller routed to their owners.
package memory

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-jeebie-core/jeebie/addr"
)

type memRegion uint8

const (
	regionROM memRegion = iota
	regionVRAM
	regionExtRAM
	regionWRAM
	regionEcho
	regionOAM
	regionIO
)

const (
	// fill is returned for anything that has no backing storage.
	fill byte = 0xFF
	// lyStub is what LY reads with no PPU attached: the first VBlank line,
	// which is what test ROMs wait for before touching the LCD.
	lyStub     byte = 0x90
	echoOffset      = addr.EchoStart - addr.WRAMStart
)

// Device is a component owning a set of memory mapped registers.
type Device interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
}

// InterruptRegisters backs IE and IF.
type InterruptRegisters interface {
	ReadIE() uint8
	WriteIE(value uint8)
	ReadIF() uint8
	WriteIF(value uint8)
}

// MMU allows access to all memory mapped I/O and data/registers.
type MMU struct {
	cart      *Cartridge
	memory    []byte
	regionMap [256]memRegion

	serial     Device
	timer      Device
	interrupts InterruptRegisters
}

// New creates the address space for cart, routing the serial, timer and
// interrupt registers to their owners.
func New(cart *Cartridge, serial, timer Device, interrupts InterruptRegisters) *MMU {
	mmu := &MMU{
		cart:       cart,
		memory:     make([]byte, 0x10000),
		serial:     serial,
		timer:      timer,
		interrupts: interrupts,
	}
	initRegionMap(mmu)

	// P1 with no button group selected
	mmu.memory[addr.P1] = 0xCF

	if cart.Banked() {
		slog.Warn("cartridge uses a mapper, only the first 32 KiB are mapped",
			"title", cart.Title, "type", fmt.Sprintf("0x%02X", cart.CartType))
	}
	return mmu
}

func initRegionMap(m *MMU) {
	for i := range m.regionMap {
		address := uint16(i) << 8
		switch {
		case address <= addr.ROMEnd:
			m.regionMap[i] = regionROM
		case address <= addr.VRAMEnd:
			m.regionMap[i] = regionVRAM
		case address <= addr.ExtRAMEnd:
			m.regionMap[i] = regionExtRAM
		case address <= addr.WRAMEnd:
			m.regionMap[i] = regionWRAM
		case address <= addr.EchoEnd:
			m.regionMap[i] = regionEcho
		case address < addr.IOStart:
			// OAM and the unusable area share page 0xFE
			m.regionMap[i] = regionOAM
		default:
			// I/O, HRAM and IE share page 0xFF
			m.regionMap[i] = regionIO
		}
	}
}

func (m *MMU) Read(address uint16) byte {
	switch m.regionMap[address>>8] {
	case regionROM:
		return m.cart.ReadByte(address)
	case regionVRAM, regionExtRAM, regionWRAM:
		return m.memory[address]
	case regionEcho:
		return m.memory[address-echoOffset]
	case regionOAM:
		if address >= addr.UnusableStart {
			return fill
		}
		return m.memory[address]
	case regionIO:
		return m.readIO(address)
	default:
		panic(fmt.Sprintf("Attempted read at unmapped address: 0x%X", address))
	}
}

func (m *MMU) Write(address uint16, value byte) {
	switch m.regionMap[address>>8] {
	case regionROM:
		// no mapper, writes to ROM have no effect
		slog.Debug("write to ROM ignored", "addr", fmt.Sprintf("0x%04X", address), "value", fmt.Sprintf("0x%02X", value))
	case regionVRAM, regionExtRAM, regionWRAM:
		m.memory[address] = value
	case regionEcho:
		m.memory[address-echoOffset] = value
	case regionOAM:
		if address < addr.UnusableStart {
			m.memory[address] = value
		}
	case regionIO:
		m.writeIO(address, value)
	default:
		panic(fmt.Sprintf("Attempted write at unmapped address: 0x%X", address))
	}
}

func (m *MMU) readIO(address uint16) byte {
	switch address {
	case addr.SB, addr.SC:
		return m.serial.Read(address)
	case addr.DIV, addr.TIMA, addr.TMA, addr.TAC:
		return m.timer.Read(address)
	case addr.IF:
		return m.interrupts.ReadIF()
	case addr.IE:
		return m.interrupts.ReadIE()
	case addr.LY:
		return lyStub
	}
	// other I/O registers and HRAM
	return m.memory[address]
}

func (m *MMU) writeIO(address uint16, value byte) {
	switch address {
	case addr.P1:
		// only the selection bits are writable, no button is ever pressed
		m.memory[address] = 0xC0 | value&0x30 | 0x0F
	case addr.SB, addr.SC:
		m.serial.Write(address, value)
	case addr.DIV, addr.TIMA, addr.TMA, addr.TAC:
		m.timer.Write(address, value)
	case addr.IF:
		m.interrupts.WriteIF(value)
	case addr.IE:
		m.interrupts.WriteIE(value)
	case addr.LY:
		// read only
	default:
		m.memory[address] = value
	}
}
