package alu

import "github.com/valerio/go-jeebie-core/jeebie/bit"

// Add computes a + b (+ carry when withCarry is set and C is set in fl). Used by ADD and ADC.
func Add(a, b uint8, withCarry bool, fl Flags) (uint8, Flags) {
	carryIn := uint16(0)
	if withCarry {
		carryIn = uint16(fl.CarryBit())
	}

	sum := uint16(a) + uint16(b) + carryIn
	result := uint8(sum)
	halfCarry := uint16(a&0xF)+uint16(b&0xF)+carryIn > 0xF

	return result, build(result == 0, false, halfCarry, sum > 0xFF)
}

// Sub computes a - b (- carry when withCarry is set and C is set in fl). Used by SUB, SBC and CP.
func Sub(a, b uint8, withCarry bool, fl Flags) (uint8, Flags) {
	carryIn := 0
	if withCarry {
		carryIn = int(fl.CarryBit())
	}

	diff := int(a) - int(b) - carryIn
	result := uint8(diff)
	halfBorrow := int(a&0xF)-int(b&0xF)-carryIn < 0

	return result, build(result == 0, true, halfBorrow, diff < 0)
}

// Compare sets flags as a - b would, discarding the result.
func Compare(a, b uint8, fl Flags) Flags {
	_, flags := Sub(a, b, false, fl)
	return flags
}

// And computes a & b. H is always set.
func And(a, b uint8) (uint8, Flags) {
	result := a & b
	return result, build(result == 0, false, true, false)
}

// Or computes a | b.
func Or(a, b uint8) (uint8, Flags) {
	result := a | b
	return result, build(result == 0, false, false, false)
}

// Xor computes a ^ b.
func Xor(a, b uint8) (uint8, Flags) {
	result := a ^ b
	return result, build(result == 0, false, false, false)
}

// Inc increments value; the carry flag is left untouched.
func Inc(value uint8, fl Flags) (uint8, Flags) {
	result := value + 1
	out := build(result == 0, false, value&0xF == 0xF, false)
	return result, out | fl&Carry
}

// Dec decrements value; the carry flag is left untouched.
func Dec(value uint8, fl Flags) (uint8, Flags) {
	result := value - 1
	out := build(result == 0, true, value&0xF == 0, false)
	return result, out | fl&Carry
}

// AddHL computes hl + value for ADD HL,rr. Z is left untouched, H comes from bit 11 and C from bit 15.
func AddHL(hl, value uint16, fl Flags) (uint16, Flags) {
	sum := uint32(hl) + uint32(value)
	halfCarry := (hl&0x0FFF)+(value&0x0FFF) > 0x0FFF

	out := build(false, false, halfCarry, sum > 0xFFFF)
	return uint16(sum), out | fl&Zero
}

// AddSP computes sp + e for ADD SP,e and LD HL,SP+e, where offset is the raw
// signed immediate. Z and N are cleared; H and C are the carries of the
// unsigned addition of the low byte of sp and the raw offset byte.
func AddSP(sp uint16, offset uint8) (uint16, Flags) {
	result := sp + bit.SignExtend(offset)

	low := uint8(sp)
	halfCarry := (low&0xF)+(offset&0xF) > 0xF
	carry := uint16(low)+uint16(offset) > 0xFF

	return result, build(false, false, halfCarry, carry)
}

// DAA adjusts the accumulator after a BCD addition or subtraction, using N, H
// and C to know which operation produced it. H is always cleared.
func DAA(a uint8, fl Flags) (uint8, Flags) {
	carry := fl.Has(Carry)
	var adjust uint8

	if !fl.Has(Subtract) {
		if fl.Has(HalfCarry) || a&0x0F > 0x09 {
			adjust |= 0x06
		}
		if carry || a > 0x99 {
			adjust |= 0x60
			carry = true
		}
		a += adjust
	} else {
		if fl.Has(HalfCarry) {
			adjust |= 0x06
		}
		if carry {
			adjust |= 0x60
		}
		a -= adjust
	}

	out := build(a == 0, false, false, carry)
	return a, out | fl&Subtract
}

// Cpl complements the accumulator. N and H are set, Z and C untouched.
func Cpl(a uint8, fl Flags) (uint8, Flags) {
	return ^a, fl | Subtract | HalfCarry
}

// Scf sets the carry flag, clearing N and H.
func Scf(fl Flags) Flags {
	return fl&Zero | Carry
}

// Ccf complements the carry flag, clearing N and H.
func Ccf(fl Flags) Flags {
	return fl&Zero | (fl&Carry ^ Carry)
}
