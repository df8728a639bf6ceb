// Package alu computes every arithmetic, logic and bit manipulation result of
// the SM83 together with its exact flag outcome. Functions are pure: they take
// the current flags (for carry-in and unaffected bits) and return new ones.
package alu

// Flags is the content of the F register. Only the high nibble is meaningful,
// the low nibble always reads as zero.
type Flags uint8

const (
	// Zero is set when the result of an operation is zero.
	Zero Flags = 0x80
	// Subtract is set by the subtraction family of instructions.
	Subtract Flags = 0x40
	// HalfCarry is set on a carry out of bit 3 (bit 11 for 16 bit adds).
	HalfCarry Flags = 0x20
	// Carry is set on a carry out of bit 7 (bit 15 for 16 bit adds), or holds the displaced bit of a shift.
	Carry Flags = 0x10

	// Mask covers the bits of F that can hold a value.
	Mask Flags = 0xF0
)

// Has reports whether all the flags in f are set.
func (fl Flags) Has(f Flags) bool {
	return fl&f == f
}

// With returns fl with f set to the given condition.
func (fl Flags) With(f Flags, condition bool) Flags {
	if condition {
		return fl | f
	}
	return fl &^ f
}

// CarryBit returns 1 if the carry flag is set, 0 otherwise.
func (fl Flags) CarryBit() uint8 {
	if fl&Carry != 0 {
		return 1
	}
	return 0
}

// String returns a human-readable representation of the flags, e.g. "Z-H-".
func (fl Flags) String() string {
	out := []byte("----")
	for i, f := range []Flags{Zero, Subtract, HalfCarry, Carry} {
		if fl&f != 0 {
			out[i] = "ZNHC"[i]
		}
	}
	return string(out)
}

// build assembles a flag set from individual conditions.
func build(z, n, h, c bool) Flags {
	var fl Flags
	if z {
		fl |= Zero
	}
	if n {
		fl |= Subtract
	}
	if h {
		fl |= HalfCarry
	}
	if c {
		fl |= Carry
	}
	return fl
}
