package alu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd(t *testing.T) {
	testCases := []struct {
		desc      string
		a, b      uint8
		withCarry bool
		in        Flags
		want      uint8
		flags     Flags
	}{
		{desc: "adds", a: 0x01, b: 0x02, want: 0x03},
		{desc: "sets half carry", a: 0x0F, b: 0x01, want: 0x10, flags: HalfCarry},
		{desc: "sets carry and zero", a: 0xFF, b: 0x01, want: 0x00, flags: Zero | HalfCarry | Carry},
		{desc: "carry without half carry", a: 0xF0, b: 0x20, want: 0x10, flags: Carry},
		{desc: "clears subtract", a: 0x01, b: 0x01, in: Subtract, want: 0x02},
		{desc: "ignores carry-in for add", a: 0x01, b: 0x01, in: Carry, want: 0x02},
		{desc: "adc adds carry", a: 0x01, b: 0x01, withCarry: true, in: Carry, want: 0x03},
		{desc: "adc half carry from carry-in", a: 0x0F, b: 0x00, withCarry: true, in: Carry, want: 0x10, flags: HalfCarry},
		{desc: "adc carry from carry-in", a: 0xFF, b: 0x00, withCarry: true, in: Carry, want: 0x00, flags: Zero | HalfCarry | Carry},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			got, flags := Add(tC.a, tC.b, tC.withCarry, tC.in)
			assert.Equal(t, tC.want, got)
			assert.Equalf(t, tC.flags, flags, "flags don't match: got %s want %s", flags, tC.flags)
		})
	}
}

func TestSub(t *testing.T) {
	testCases := []struct {
		desc      string
		a, b      uint8
		withCarry bool
		in        Flags
		want      uint8
		flags     Flags
	}{
		{desc: "subtracts", a: 0x03, b: 0x01, want: 0x02, flags: Subtract},
		{desc: "sets zero", a: 0x42, b: 0x42, want: 0x00, flags: Zero | Subtract},
		{desc: "sets half borrow", a: 0x10, b: 0x01, want: 0x0F, flags: Subtract | HalfCarry},
		{desc: "sets borrow", a: 0x00, b: 0x01, want: 0xFF, flags: Subtract | HalfCarry | Carry},
		{desc: "sbc subtracts carry", a: 0x03, b: 0x01, withCarry: true, in: Carry, want: 0x01, flags: Subtract},
		{desc: "sbc borrow from carry-in", a: 0x00, b: 0x00, withCarry: true, in: Carry, want: 0xFF, flags: Subtract | HalfCarry | Carry},
		{desc: "sbc half borrow from carry-in", a: 0x10, b: 0x00, withCarry: true, in: Carry, want: 0x0F, flags: Subtract | HalfCarry},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			got, flags := Sub(tC.a, tC.b, tC.withCarry, tC.in)
			assert.Equal(t, tC.want, got)
			assert.Equalf(t, tC.flags, flags, "flags don't match: got %s want %s", flags, tC.flags)
		})
	}
}

func TestAddThenSubRestoresOperand(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			sum, _ := Add(uint8(a), uint8(b), false, 0)
			back, _ := Sub(sum, uint8(b), false, 0)
			if back != uint8(a) {
				t.Fatalf("add(%#02x, %#02x) then sub(%#02x) = %#02x", a, b, b, back)
			}
		}
	}
}

func TestCompareMatchesSub(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b += 7 {
			_, subFlags := Sub(uint8(a), uint8(b), false, 0)
			assert.Equal(t, subFlags, Compare(uint8(a), uint8(b), Carry))
		}
	}
}

func TestLogic(t *testing.T) {
	got, flags := And(0xF0, 0x0F)
	assert.Equal(t, uint8(0), got)
	assert.Equal(t, Zero|HalfCarry, flags)

	got, flags = And(0xFF, 0x81)
	assert.Equal(t, uint8(0x81), got)
	assert.Equal(t, HalfCarry, flags)

	got, flags = Or(0xF0, 0x0F)
	assert.Equal(t, uint8(0xFF), got)
	assert.Equal(t, Flags(0), flags)

	got, flags = Or(0, 0)
	assert.Equal(t, uint8(0), got)
	assert.Equal(t, Zero, flags)

	got, flags = Xor(0xAA, 0xAA)
	assert.Equal(t, uint8(0), got)
	assert.Equal(t, Zero, flags)

	got, flags = Xor(0xAA, 0x55)
	assert.Equal(t, uint8(0xFF), got)
	assert.Equal(t, Flags(0), flags)
}

func TestIncDec(t *testing.T) {
	testCases := []struct {
		desc  string
		op    func(uint8, Flags) (uint8, Flags)
		arg   uint8
		in    Flags
		want  uint8
		flags Flags
	}{
		{desc: "inc increases", op: Inc, arg: 0x0A, want: 0x0B},
		{desc: "inc sets zero flag", op: Inc, arg: 0xFF, want: 0, flags: Zero | HalfCarry},
		{desc: "inc sets half carry flag", op: Inc, arg: 0x0F, want: 0x10, flags: HalfCarry},
		{desc: "inc keeps carry", op: Inc, arg: 0x01, in: Carry | Subtract, want: 0x02, flags: Carry},
		{desc: "dec decreases", op: Dec, arg: 0x0A, want: 0x09, flags: Subtract},
		{desc: "dec sets half carry flag", op: Dec, arg: 0, want: 0xFF, flags: Subtract | HalfCarry},
		{desc: "dec sets zero flag", op: Dec, arg: 0x01, want: 0, flags: Subtract | Zero},
		{desc: "dec keeps carry", op: Dec, arg: 0x05, in: Carry, want: 0x04, flags: Subtract | Carry},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			got, flags := tC.op(tC.arg, tC.in)
			assert.Equal(t, tC.want, got)
			assert.Equal(t, tC.flags, flags)
		})
	}
}

func TestAddHL(t *testing.T) {
	testCases := []struct {
		desc   string
		hl, rr uint16
		in     Flags
		want   uint16
		flags  Flags
	}{
		{desc: "adds", hl: 0x1000, rr: 0x0234, want: 0x1234},
		{desc: "half carry from bit 11", hl: 0x0FFF, rr: 0x0001, want: 0x1000, flags: HalfCarry},
		{desc: "carry from bit 15", hl: 0xFFFF, rr: 0x0001, want: 0x0000, flags: HalfCarry | Carry},
		{desc: "zero is preserved", hl: 0x0001, rr: 0x0001, in: Zero | Subtract, want: 0x0002, flags: Zero},
		{desc: "zero is not set by result", hl: 0x8000, rr: 0x8000, want: 0x0000, flags: Carry},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			got, flags := AddHL(tC.hl, tC.rr, tC.in)
			assert.Equal(t, tC.want, got)
			assert.Equal(t, tC.flags, flags)
		})
	}
}

func TestAddSP(t *testing.T) {
	testCases := []struct {
		desc   string
		sp     uint16
		offset uint8
		want   uint16
		flags  Flags
	}{
		{desc: "positive offset", sp: 0xFFF0, offset: 0x05, want: 0xFFF5},
		{desc: "negative offset", sp: 0xFFF8, offset: 0xFE, want: 0xFFF6, flags: HalfCarry | Carry},
		{desc: "half carry on low nibble", sp: 0x000F, offset: 0x01, want: 0x0010, flags: HalfCarry},
		{desc: "carry on low byte", sp: 0x00FF, offset: 0x01, want: 0x0100, flags: HalfCarry | Carry},
		{desc: "minus one from zero", sp: 0x0000, offset: 0xFF, want: 0xFFFF},
		{desc: "minus one from one", sp: 0x0001, offset: 0xFF, want: 0x0000, flags: HalfCarry | Carry},
		{desc: "zero flag never set", sp: 0xFF80, offset: 0x80, want: 0xFF00, flags: Carry},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			got, flags := AddSP(tC.sp, tC.offset)
			assert.Equal(t, tC.want, got)
			assert.Equalf(t, tC.flags, flags, "flags don't match: got %s want %s", flags, tC.flags)
		})
	}
}

func toBCD(n int) uint8 {
	return uint8(n/10<<4 | n%10)
}

func TestDAAAfterAddition(t *testing.T) {
	for x := 0; x < 100; x++ {
		for y := 0; y < 100; y++ {
			sum, flags := Add(toBCD(x), toBCD(y), false, 0)
			got, flags := DAA(sum, flags)

			want := (x + y) % 100
			if got != toBCD(want) {
				t.Fatalf("%d + %d: got %#02x, want %#02x", x, y, got, toBCD(want))
			}
			assert.Equal(t, x+y >= 100, flags.Has(Carry), "%d + %d carry", x, y)
			assert.Equal(t, want == 0, flags.Has(Zero), "%d + %d zero", x, y)
			assert.False(t, flags.Has(HalfCarry))
		}
	}
}

func TestDAAAfterSubtraction(t *testing.T) {
	for x := 0; x < 100; x++ {
		for y := 0; y < 100; y++ {
			diff, flags := Sub(toBCD(x), toBCD(y), false, 0)
			got, flags := DAA(diff, flags)

			want := (x - y + 100) % 100
			if got != toBCD(want) {
				t.Fatalf("%d - %d: got %#02x, want %#02x", x, y, got, toBCD(want))
			}
			assert.Equal(t, x < y, flags.Has(Carry), "%d - %d carry", x, y)
			assert.True(t, flags.Has(Subtract))
			assert.False(t, flags.Has(HalfCarry))
		}
	}
}

func TestMiscAccumulatorOps(t *testing.T) {
	got, flags := Cpl(0x35, Zero|Carry)
	assert.Equal(t, uint8(0xCA), got)
	assert.Equal(t, Zero|Subtract|HalfCarry|Carry, flags)

	assert.Equal(t, Zero|Carry, Scf(Zero|Subtract|HalfCarry))
	assert.Equal(t, Carry, Scf(0))
	assert.Equal(t, Zero, Ccf(Zero|Carry|HalfCarry))
	assert.Equal(t, Carry, Ccf(Subtract))
}

func TestFlagsString(t *testing.T) {
	assert.Equal(t, "----", Flags(0).String())
	assert.Equal(t, "ZNHC", (Zero | Subtract | HalfCarry | Carry).String())
	assert.Equal(t, "Z--C", (Zero | Carry).String())
}
