package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-jeebie-core/jeebie/addr"
)

func tick(t *Timer, n int) {
	for range n {
		t.Tick()
	}
}

func TestDivIncrementsEvery256Cycles(t *testing.T) {
	tm := New(nil)

	tick(tm, 255)
	assert.Equal(t, byte(0x00), tm.Read(addr.DIV))
	tick(tm, 1)
	assert.Equal(t, byte(0x01), tm.Read(addr.DIV))
	tick(tm, 256*4)
	assert.Equal(t, byte(0x05), tm.Read(addr.DIV))
}

func TestTIMAFrequencies(t *testing.T) {
	testCases := []struct {
		desc   string
		tac    byte
		period int
	}{
		{desc: "4096 Hz", tac: 0b100, period: 1024},
		{desc: "262144 Hz", tac: 0b101, period: 16},
		{desc: "65536 Hz", tac: 0b110, period: 64},
		{desc: "16384 Hz", tac: 0b111, period: 256},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			tm := New(nil)
			tm.Write(addr.TAC, tC.tac)

			tick(tm, tC.period-1)
			assert.Equal(t, byte(0), tm.Read(addr.TIMA))
			tick(tm, 1)
			assert.Equal(t, byte(1), tm.Read(addr.TIMA))
			tick(tm, tC.period*3)
			assert.Equal(t, byte(4), tm.Read(addr.TIMA))
		})
	}
}

func TestTIMADisabled(t *testing.T) {
	tm := New(nil)
	tm.Write(addr.TAC, 0b001)
	tick(tm, 4096)
	assert.Equal(t, byte(0), tm.Read(addr.TIMA))
	assert.Equal(t, byte(0xF9), tm.Read(addr.TAC), "upper TAC bits read as 1")
}

func TestOverflowReloadsFromTMA(t *testing.T) {
	requests := 0
	tm := New(func() { requests++ })
	tm.Write(addr.TMA, 0xAB)
	tm.Write(addr.TIMA, 0xFF)
	tm.Write(addr.TAC, 0b101)

	tick(tm, 16)
	assert.Equal(t, byte(0x00), tm.Read(addr.TIMA), "TIMA reads 0 right after overflowing")
	assert.True(t, tm.Reloading())
	assert.Equal(t, 0, requests)

	tick(tm, reloadDelay-1)
	assert.Equal(t, byte(0x00), tm.Read(addr.TIMA))
	assert.Equal(t, 0, requests)

	tick(tm, 1)
	assert.Equal(t, byte(0xAB), tm.Read(addr.TIMA))
	assert.Equal(t, 1, requests)
	assert.False(t, tm.Reloading())
}

func TestOverflowImmediateReload(t *testing.T) {
	requests := 0
	tm := New(func() { requests++ }, WithImmediateReload())
	tm.Write(addr.TMA, 0x42)
	tm.Write(addr.TIMA, 0xFF)
	tm.Write(addr.TAC, 0b101)

	tick(tm, 16)
	assert.Equal(t, byte(0x42), tm.Read(addr.TIMA))
	assert.Equal(t, 1, requests)
}

func TestTIMAWriteCancelsReload(t *testing.T) {
	requests := 0
	tm := New(func() { requests++ })
	tm.Write(addr.TMA, 0xAB)
	tm.Write(addr.TIMA, 0xFF)
	tm.Write(addr.TAC, 0b101)

	tick(tm, 17)
	require.True(t, tm.Reloading())
	tm.Write(addr.TIMA, 0x10)

	tick(tm, reloadDelay)
	assert.Equal(t, byte(0x10), tm.Read(addr.TIMA))
	assert.Equal(t, 0, requests)
}

func TestDIVWriteResetsDivider(t *testing.T) {
	tm := New(nil, WithDivider(0xABCC))
	assert.Equal(t, byte(0xAB), tm.Read(addr.DIV))

	tm.Write(addr.DIV, 0x42)
	assert.Equal(t, byte(0x00), tm.Read(addr.DIV))
	assert.Equal(t, uint16(0), tm.Divider())
}

func TestDIVWriteCanIncrementTIMA(t *testing.T) {
	tm := New(nil)
	tm.Write(addr.TAC, 0b101)

	// bit 3 of the divider is high
	tick(tm, 8)
	require.Equal(t, byte(0), tm.Read(addr.TIMA))

	tm.Write(addr.DIV, 0)
	assert.Equal(t, byte(1), tm.Read(addr.TIMA))
}

func TestTACWriteCanIncrementTIMA(t *testing.T) {
	tm := New(nil)
	tm.Write(addr.TAC, 0b101)
	tick(tm, 8)

	// disabling while the selected bit is high is a falling edge
	tm.Write(addr.TAC, 0b001)
	assert.Equal(t, byte(1), tm.Read(addr.TIMA))
}
