package alu

import "github.com/valerio/go-jeebie-core/jeebie/bit"

// shifted builds the flags shared by every rotate and shift: Z from the
// result, N and H cleared, C from the displaced bit.
func shifted(result uint8, displaced uint8) (uint8, Flags) {
	return result, build(result == 0, false, false, displaced != 0)
}

// Rlc rotates left, bit 7 goes to both bit 0 and C.
func Rlc(value uint8) (uint8, Flags) {
	return shifted(value<<1|value>>7, value>>7)
}

// Rrc rotates right, bit 0 goes to both bit 7 and C.
func Rrc(value uint8) (uint8, Flags) {
	return shifted(value>>1|value<<7, value&1)
}

// Rl rotates left through the carry flag.
func Rl(value uint8, fl Flags) (uint8, Flags) {
	return shifted(value<<1|fl.CarryBit(), value>>7)
}

// Rr rotates right through the carry flag.
func Rr(value uint8, fl Flags) (uint8, Flags) {
	return shifted(value>>1|fl.CarryBit()<<7, value&1)
}

// Sla shifts left into carry, bit 0 becomes 0.
func Sla(value uint8) (uint8, Flags) {
	return shifted(value<<1, value>>7)
}

// Sra shifts right into carry, bit 7 is preserved.
func Sra(value uint8) (uint8, Flags) {
	return shifted(value>>1|value&0x80, value&1)
}

// Srl shifts right into carry, bit 7 becomes 0.
func Srl(value uint8) (uint8, Flags) {
	return shifted(value>>1, value&1)
}

// Swap exchanges the nibbles. Z from the result, all others cleared.
func Swap(value uint8) (uint8, Flags) {
	result := bit.SwapNibbles(value)
	return result, build(result == 0, false, false, false)
}

// Bit tests bit n of value: Z is set when the bit is 0, N cleared, H set, C untouched.
func Bit(n uint8, value uint8, fl Flags) Flags {
	out := build(!bit.IsSet(n, value), false, true, false)
	return out | fl&Carry
}

// Res clears bit n of value. No flags are affected.
func Res(n uint8, value uint8) uint8 {
	return bit.Clear(n, value)
}

// Set sets bit n of value. No flags are affected.
func Set(n uint8, value uint8) uint8 {
	return bit.Set(n, value)
}

// Accumulator rotates (RLCA, RRCA, RLA, RRA) share the CB rotate results but
// always clear Z.

// Rlca is RLC A with Z cleared.
func Rlca(a uint8) (uint8, Flags) {
	result, fl := Rlc(a)
	return result, fl &^ Zero
}

// Rrca is RRC A with Z cleared.
func Rrca(a uint8) (uint8, Flags) {
	result, fl := Rrc(a)
	return result, fl &^ Zero
}

// Rla is RL A with Z cleared.
func Rla(a uint8, fl Flags) (uint8, Flags) {
	result, out := Rl(a, fl)
	return result, out &^ Zero
}

// Rra is RR A with Z cleared.
func Rra(a uint8, fl Flags) (uint8, Flags) {
	result, out := Rr(a, fl)
	return result, out &^ Zero
}
