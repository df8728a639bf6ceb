package memory

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const titleLength = 16

const (
	titleAddress          = 0x134
	cartridgeTypeAddress  = 0x147
	romSizeAddress        = 0x148
	ramSizeAddress        = 0x149
	versionNumberAddress  = 0x14C
	headerChecksumAddress = 0x14D
	headerEnd             = 0x150
)

var (
	// ErrEmptyROM is returned when the ROM image has no data at all.
	ErrEmptyROM = errors.New("rom image is empty")
	// ErrROMTooSmall is returned when the ROM image does not even contain a header.
	ErrROMTooSmall = errors.New("rom image is smaller than the cartridge header")
)

// Cartridge is a ROM image together with the fields of its header.
type Cartridge struct {
	data []byte

	Title          string
	CartType       uint8
	ROMSize        uint8
	RAMSize        uint8
	Version        uint8
	HeaderChecksum uint8
}

// NewCartridge parses the header of a ROM image. The data is copied.
func NewCartridge(data []byte) (*Cartridge, error) {
	if len(data) == 0 {
		return nil, ErrEmptyROM
	}
	if len(data) < headerEnd {
		return nil, fmt.Errorf("%w: %d bytes", ErrROMTooSmall, len(data))
	}

	cart := &Cartridge{
		data:           make([]byte, len(data)),
		Title:          cleanTitle(data[titleAddress : titleAddress+titleLength]),
		CartType:       data[cartridgeTypeAddress],
		ROMSize:        data[romSizeAddress],
		RAMSize:        data[ramSizeAddress],
		Version:        data[versionNumberAddress],
		HeaderChecksum: data[headerChecksumAddress],
	}
	copy(cart.data, data)

	return cart, nil
}

// ReadByte reads a byte of the image, 0xFF past its end.
func (c *Cartridge) ReadByte(address uint16) uint8 {
	if int(address) >= len(c.data) {
		return 0xFF
	}
	return c.data[address]
}

// Size returns the size of the image in bytes.
func (c *Cartridge) Size() int {
	return len(c.data)
}

// HeaderChecksumValid reports whether the checksum stored at 0x14D matches
// the one computed over 0x134-0x14C, the check the boot ROM performs.
func (c *Cartridge) HeaderChecksumValid() bool {
	var x uint8
	for _, b := range c.data[titleAddress:headerChecksumAddress] {
		x = x - b - 1
	}
	return x == c.HeaderChecksum
}

// Banked reports whether the header asks for a mapper. Only the first
// 32 KiB are ever visible since bank switching is not emulated.
func (c *Cartridge) Banked() bool {
	return c.CartType != 0x00
}

// cleanTitle turns the raw title bytes into a printable string: NUL bytes
// end the title and non printable characters become '?'.
func cleanTitle(titleBytes []byte) string {
	runes := make([]rune, 0, len(titleBytes))
	for _, b := range titleBytes {
		if b == 0 {
			break
		}
		r := rune(b)
		if b >= 0x80 || !unicode.IsPrint(r) {
			r = '?'
		}
		runes = append(runes, r)
	}

	title := strings.TrimSpace(string(runes))
	if title == "" {
		return "(Untitled)"
	}
	return title
}
