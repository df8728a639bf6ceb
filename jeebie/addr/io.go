package addr

// memory regions
const (
	// ROMStart is the first byte of the cartridge ROM window.
	ROMStart uint16 = 0x0000
	// ROMEnd is the last byte of the cartridge ROM window (bank 0 + switchable bank).
	ROMEnd uint16 = 0x7FFF
	// VRAMStart is the start of video RAM.
	VRAMStart uint16 = 0x8000
	// VRAMEnd is the end of video RAM.
	VRAMEnd uint16 = 0x9FFF
	// ExtRAMStart is the start of cartridge (external) RAM.
	ExtRAMStart uint16 = 0xA000
	// ExtRAMEnd is the end of cartridge (external) RAM.
	ExtRAMEnd uint16 = 0xBFFF
	// WRAMStart is the start of internal work RAM.
	WRAMStart uint16 = 0xC000
	// WRAMEnd is the end of internal work RAM.
	WRAMEnd uint16 = 0xDFFF
	// EchoStart is the start of the mirror of work RAM.
	EchoStart uint16 = 0xE000
	// EchoEnd is the end of the mirror of work RAM.
	EchoEnd uint16 = 0xFDFF
	// OAMStart is the start of OAM memory (40 sprites * 4 bytes each)
	OAMStart uint16 = 0xFE00
	// OAMEnd is the end of OAM memory
	OAMEnd uint16 = 0xFE9F
	// UnusableStart is the start of the prohibited area between OAM and I/O.
	UnusableStart uint16 = 0xFEA0
	// UnusableEnd is the end of the prohibited area between OAM and I/O.
	UnusableEnd uint16 = 0xFEFF
	// IOStart is the start of the memory mapped I/O registers.
	IOStart uint16 = 0xFF00
	// IOEnd is the end of the memory mapped I/O registers.
	IOEnd uint16 = 0xFF7F
	// HRAMStart is the start of high RAM.
	HRAMStart uint16 = 0xFF80
	// HRAMEnd is the end of high RAM.
	HRAMEnd uint16 = 0xFFFE
)

// interrupts
const (
	// IF is the address for the Interrupt Flags register.
	IF uint16 = 0xFF0F
	// IE is the address for the Interrupt Enable register.
	IE uint16 = 0xFFFF
)

// joypad
const (
	// P1 is used to read the Joypad state.
	P1 uint16 = 0xFF00
)

// serial I/O
const (
	// SB (Serial transfer data, 0xFF01)
	//
	// Holds the 8-bit data to be transmitted. After completion, SB contains the received
	// byte from the peer (0xFF when no peer is connected).
	SB uint16 = 0xFF01
	// SC (Serial transfer control, 0xFF02)
	//  - Bit 7 (Start): Writing 1 starts an 8-bit transfer; hardware clears to 0 when done.
	//  - Bit 0 (Clock): 1=internal clock, 0=external clock.
	//  - On completion, the Serial interrupt (IF bit 3) is requested by hardware.
	SC uint16 = 0xFF02
)

// timers
const (
	// DIV is the divider register. Incremented 16384 times/s, writing to it resets it.
	DIV uint16 = 0xFF04
	// TIMA is the timer counter register. Generates an interrupt when it overflows.
	TIMA uint16 = 0xFF05
	// TMA is the timer modulo register. When TIMA overflows, this data will be loaded.
	TMA uint16 = 0xFF06
	// TAC is the timer control register. Used to start/stop and control the timer clock.
	TAC uint16 = 0xFF07
)

// lcd
const (
	// LY is the current scanline. Read only.
	LY uint16 = 0xFF44
)
