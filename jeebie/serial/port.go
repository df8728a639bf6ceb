// Package serial implements the link port registers (SB and SC) with no peer
// attached. Every byte sent by the program is published to subscribers, which
// is how test ROMs report their results.
package serial

import (
	"bytes"
	"log/slog"

	"github.com/valerio/go-jeebie-core/jeebie/addr"
	"github.com/valerio/go-jeebie-core/jeebie/bit"
)

const (
	// noPeer is what SB holds after a transfer when nothing is connected.
	noPeer byte = 0xFF
	// dmgByteCycles is how long a byte takes on the internal clock (8192 Hz).
	dmgByteCycles = 4096
	// scUnused are the SC bits that always read as 1 on DMG.
	scUnused byte = 0x7E
)

// Port is a serial port with no peer: bytes go out, 0xFF comes back.
type Port struct {
	irq            func()
	sb, sc         byte
	transferActive bool
	countdown      int
	logger         *slog.Logger

	// settings
	immediate bool

	subscribers []func(byte)
	output      bytes.Buffer
	line        []byte
}

// Option configures a Port.
type Option func(*Port)

// WithFixedTiming completes transfers after 4096 T-cycles per byte, as the
// DMG internal clock does, instead of immediately.
func WithFixedTiming() Option { return func(p *Port) { p.immediate = false } }

// WithLogger sets the logger used for completed lines of output. Without it
// lines go to whatever slog.Default() is when they complete.
func WithLogger(logger *slog.Logger) Option { return func(p *Port) { p.logger = logger } }

// New creates a serial port. irq is called when a transfer completes and
// should request the Serial interrupt.
func New(irq func(), opts ...Option) *Port {
	p := &Port{
		irq:       irq,
		immediate: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.Reset()
	return p
}

// OnByte registers fn to receive every byte sent over the port, in order.
func (p *Port) OnByte(fn func(byte)) {
	p.subscribers = append(p.subscribers, fn)
}

// Output returns everything sent over the port so far.
func (p *Port) Output() string {
	return p.output.String()
}

func (p *Port) Write(address uint16, value byte) {
	switch address {
	case addr.SB:
		p.sb = value
	case addr.SC:
		p.sc = value
		p.maybeStartTransfer()
	default:
		panic("serial.Port: invalid write address")
	}
}

func (p *Port) Read(address uint16) byte {
	switch address {
	case addr.SB:
		return p.sb
	case addr.SC:
		return p.sc | scUnused
	default:
		panic("serial.Port: invalid read address")
	}
}

// Tick advances a transfer in progress when fixed timing is enabled.
func (p *Port) Tick(cycles int) {
	if p.immediate || !p.transferActive {
		return
	}
	p.countdown -= cycles
	if p.countdown <= 0 {
		p.completeTransfer()
		p.countdown = 0
	}
}

// Reset clears the registers and the pending line, the transcript is kept.
func (p *Port) Reset() {
	p.sb = 0x00
	p.sc = 0x00
	p.transferActive = false
	p.countdown = 0
	p.line = p.line[:0]
}

func (p *Port) maybeStartTransfer() {
	if p.transferActive {
		return
	}
	// a transfer starts when bit 7 (start) and bit 0 (internal clock) of SC are set.
	if !bit.IsSet(7, p.sc) || !bit.IsSet(0, p.sc) {
		return
	}

	p.emit(p.sb)

	if p.immediate {
		p.completeTransfer()
		return
	}

	p.transferActive = true
	p.countdown = dmgByteCycles
}

func (p *Port) emit(b byte) {
	p.output.WriteByte(b)
	for _, fn := range p.subscribers {
		fn(b)
	}

	// buffer until newline for readable logs
	if b == 0 || b == '\n' || b == '\r' {
		if len(p.line) > 0 {
			logger := p.logger
			if logger == nil {
				logger = slog.Default()
			}
			logger.Info("serial", "line", string(p.line))
			p.line = p.line[:0]
		}
		return
	}
	p.line = append(p.line, b)
}

func (p *Port) completeTransfer() {
	p.sb = noPeer
	// clear start bit (bit 7) to indicate completion
	p.sc = bit.Clear(7, p.sc)
	p.transferActive = false
	if p.irq != nil {
		p.irq()
	}
}
