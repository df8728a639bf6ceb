// Package jeebie wires the SM83 core to its collaborators and drives it one
// instruction at a time.
package jeebie

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/valerio/go-jeebie-core/jeebie/cpu"
	"github.com/valerio/go-jeebie-core/jeebie/interrupt"
	"github.com/valerio/go-jeebie-core/jeebie/memory"
	"github.com/valerio/go-jeebie-core/jeebie/serial"
	"github.com/valerio/go-jeebie-core/jeebie/testrom"
	"github.com/valerio/go-jeebie-core/jeebie/timer"
	"github.com/valerio/go-jeebie-core/jeebie/trace"
)

// Load faults, returned wrapped by New and NewWithFile.
var (
	ErrEmptyROM    = memory.ErrEmptyROM
	ErrROMTooSmall = memory.ErrROMTooSmall
)

const (
	// DefaultMaxInstructions is enough for the longest Blargg CPU ROM
	// with a wide margin.
	DefaultMaxInstructions = 500_000_000

	// postBootDivider is the internal divider value when the boot ROM
	// hands over to the cartridge at 0x0100.
	postBootDivider = 0xABCC
)

// Config holds the settings of a DMG.
type Config struct {
	// MaxInstructions bounds Run. 0 means no bound.
	MaxInstructions uint64
	// Trace receives one line per executed instruction when not nil.
	Trace io.Writer
	// TraceDigest keeps a digest of the trace even when Trace is nil.
	TraceDigest bool
	// ImmediateTimerReload skips the 4 cycle delay between a TIMA
	// overflow and its reload.
	ImmediateTimerReload bool
	// FixedSerialTiming makes transfers take 4096 T-cycles per byte.
	FixedSerialTiming bool
	// Logger receives the serial output lines. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used when no option is given.
func DefaultConfig() Config {
	return Config{MaxInstructions: DefaultMaxInstructions}
}

// Option configures a DMG.
type Option func(*Config)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg }
}

// WithTrace writes the instruction trace to w.
func WithTrace(w io.Writer) Option {
	return func(c *Config) { c.Trace = w }
}

// WithMaxInstructions sets the instruction ceiling of Run.
func WithMaxInstructions(n uint64) Option {
	return func(c *Config) { c.MaxInstructions = n }
}

// DMG is a Game Boy with only its CPU, timer, serial port and interrupt
// controller attached.
type DMG struct {
	cfg Config

	cart       *memory.Cartridge
	mmu        *memory.MMU
	cpu        *cpu.CPU
	interrupts *interrupt.Controller
	timer      *timer.Timer
	serial     *serial.Port
	tracer     *trace.Tracer
	traceErr   error
	banner     testrom.Banner

	instructions uint64
}

// New creates a DMG running rom.
func New(rom []byte, opts ...Option) (*DMG, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	cart, err := memory.NewCartridge(rom)
	if err != nil {
		return nil, fmt.Errorf("loading cartridge: %w", err)
	}

	d := &DMG{cfg: cfg, cart: cart}
	d.interrupts = interrupt.NewController()

	timerOpts := []timer.Option{timer.WithDivider(postBootDivider)}
	if cfg.ImmediateTimerReload {
		timerOpts = append(timerOpts, timer.WithImmediateReload())
	}
	d.timer = timer.New(func() { d.interrupts.Request(interrupt.Timer) }, timerOpts...)

	var serialOpts []serial.Option
	if cfg.FixedSerialTiming {
		serialOpts = append(serialOpts, serial.WithFixedTiming())
	}
	if cfg.Logger != nil {
		serialOpts = append(serialOpts, serial.WithLogger(cfg.Logger))
	}
	d.serial = serial.New(func() { d.interrupts.Request(interrupt.Serial) }, serialOpts...)
	d.serial.OnByte(d.banner.Feed)

	d.mmu = memory.New(cart, d.serial, d.timer, d.interrupts)
	d.cpu = cpu.New(d.mmu, d.interrupts)

	if cfg.Trace != nil || cfg.TraceDigest {
		d.tracer = trace.New(cfg.Trace)
		d.cpu.OnFetch(d.record)
	}

	slog.Debug("cartridge loaded", "title", cart.Title, "bytes", cart.Size(),
		"type", fmt.Sprintf("0x%02X", cart.CartType), "checksum_ok", cart.HeaderChecksumValid())
	return d, nil
}

// NewWithFile creates a DMG and loads the ROM file at path into it.
func NewWithFile(path string, opts ...Option) (*DMG, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}

	slog.Info("Loaded ROM", "path", path, "bytes", len(data))

	d, err := New(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// record keeps the first trace error, which Step then reports.
func (d *DMG) record(r cpu.Registers) {
	if err := d.tracer.Record(r, d.mmu); err != nil && d.traceErr == nil {
		d.traceErr = err
	}
}

// Step runs one CPU step, then ticks the timer once per T-cycle it took and
// the serial port by the same amount. Returns the T-cycles consumed.
func (d *DMG) Step() (int, error) {
	cycles := d.cpu.Step()
	for range cycles {
		d.timer.Tick()
	}
	d.serial.Tick(cycles)

	d.instructions++
	return cycles, d.traceErr
}

// Run steps until a serial banner is observed, the instruction ceiling is
// reached or ctx is cancelled. The trace is flushed before returning.
func (d *DMG) Run(ctx context.Context) (testrom.Result, error) {
	res, err := testrom.Run(ctx, d, d.cfg.MaxInstructions)
	if flushErr := d.Flush(); err == nil && flushErr != nil {
		err = flushErr
	}
	return res, err
}

// Flush writes out any buffered trace lines.
func (d *DMG) Flush() error {
	if d.tracer == nil {
		return nil
	}
	if err := d.tracer.Flush(); err != nil {
		return fmt.Errorf("flushing trace: %w", err)
	}
	return nil
}

// Result summarizes the run so far. With no banner on the serial port the
// outcome is a timeout.
func (d *DMG) Result() testrom.Result {
	res := testrom.Result{
		Outcome:      d.banner.Outcome(),
		Output:       d.serial.Output(),
		Instructions: d.instructions,
		Cycles:       d.cpu.Cycles(),
	}
	if res.Outcome == testrom.OutcomeRunning {
		res.Outcome = testrom.Detect(res.Output)
	}
	if res.Outcome == testrom.OutcomeRunning {
		res.Outcome = testrom.OutcomeTimeout
	}
	return res
}

// Outcome returns the banner observed on the serial port so far.
func (d *DMG) Outcome() testrom.Outcome {
	return d.banner.Outcome()
}

// Output returns everything the program sent over the serial port.
func (d *DMG) Output() string {
	return d.serial.Output()
}

// OnSerial registers fn to receive every byte sent over the serial port.
func (d *DMG) OnSerial(fn func(byte)) {
	d.serial.OnByte(fn)
}

// TraceDigest returns the digest of the trace recorded so far. ok is false
// when tracing is disabled.
func (d *DMG) TraceDigest() (sum uint64, ok bool) {
	if d.tracer == nil {
		return 0, false
	}
	return d.tracer.Sum64(), true
}

// Read reads a byte from the address space without side effects on the CPU.
func (d *DMG) Read(address uint16) byte {
	return d.mmu.Read(address)
}

// CPU exposes the core, mostly for tests and debugging.
func (d *DMG) CPU() *cpu.CPU {
	return d.cpu
}

// Cartridge returns the loaded cartridge.
func (d *DMG) Cartridge() *memory.Cartridge {
	return d.cart
}

// Instructions returns how many steps were run.
func (d *DMG) Instructions() uint64 {
	return d.instructions
}
