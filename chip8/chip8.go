package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 memory layout constants.
const (
	// MemorySize is the total addressable memory of a CHIP-8 machine.
	MemorySize = 4096

	// ProgramStart is the memory address where CHIP-8 programs begin
	// execution. ROM images are stored starting at offset 0 in files but
	// loaded at this address.
	ProgramStart = 0x200

	// MaxAddress is the highest valid address in CHIP-8 memory space.
	MaxAddress = 0xFFF

	// MaxROMSize is the largest ROM image that fits into program memory.
	MaxROMSize = MemorySize - ProgramStart
)

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

const (
	// RegisterCount is the number of general-purpose registers V0-VF.
	RegisterCount = 16

	// StackSize is the call stack capacity in return addresses.
	StackSize = 16

	// KeyCount is the number of keys on the hexadecimal keypad.
	KeyCount = 16

	// FontSpriteSize is the height in bytes of one built-in font glyph.
	FontSpriteSize = 5
)

// fontSprites contains the built-in hex digit glyphs 0-F, 5 bytes each,
// preloaded at address 0x000. Glyph n starts at address n*5.
var fontSprites = [...]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Options configures a machine. The zero value is usable: no tracing and a
// math/rand backed random source.
type Options struct {
	Logger *log.Logger  // receives the execution trace, required if Trace is set
	Random RandomSource // random byte supplier for RND, defaults to math/rand
	Trace  bool         // log every executed instruction at debug level
}

// Machine is a complete CHIP-8 virtual machine. The host holds exclusive
// ownership; none of the methods are safe for concurrent use.
type Machine struct {
	memory    [MemorySize]byte
	registers [RegisterCount]byte
	stack     [StackSize]uint16
	display   [DisplayWidth * DisplayHeight]bool
	keypad    [KeyCount]bool

	pc     uint16 // program counter
	sp     byte   // stack pointer, index of the next free slot
	index  uint16 // index register I
	opcode uint16 // currently executing instruction word

	delayTimer byte
	soundTimer byte

	random RandomSource
	logger *log.Logger
	trace  bool

	fault error // first fault encountered, halts further stepping
}

// New returns a machine with zeroed state, the font sprites preloaded and
// the program counter set to the program start address.
func New(options Options) *Machine {
	m := &Machine{
		pc:     ProgramStart,
		random: options.Random,
		logger: options.Logger,
		trace:  options.Trace && options.Logger != nil,
	}
	if m.random == nil {
		m.random = newMathRandom()
	}
	copy(m.memory[:], fontSprites[:])
	return m
}

// LoadROM copies a raw ROM image into memory starting at the program start
// address. Returns ErrROMTooLarge if the image does not fit.
func (m *Machine) LoadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, %d available", ErrROMTooLarge, len(rom), MaxROMSize)
	}

	copy(m.memory[ProgramStart:], rom)

	if m.logger != nil {
		m.logger.Debug("ROM loaded",
			log.Int("size", len(rom)),
			log.Hex("start", uint16(ProgramStart)))
	}
	return nil
}

// SetKey sets the pressed state of one keypad key. The host input layer
// calls this between execution steps. Returns ErrInvalidKey for key indices
// outside 0x0-0xF.
func (m *Machine) SetKey(key int, pressed bool) error {
	if key < 0 || key >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	m.keypad[key] = pressed
	return nil
}

// TickTimers decrements the delay and sound timers by one, saturating at 0.
// The host calls it at a fixed rate, typically once per rendered frame,
// independent of the instruction step rate. It reports whether the sound
// timer was active during this tick; audio playback is owned by the host.
func (m *Machine) TickTimers() bool {
	if m.delayTimer > 0 {
		m.delayTimer--
	}

	soundOn := m.soundTimer > 0
	if soundOn {
		m.soundTimer--
	}
	return soundOn
}

// Display returns the 64x32 pixel grid in row-major order, true for lit
// pixels. The returned slice is the machine's backing store and must be
// treated as read-only by the host.
func (m *Machine) Display() []bool {
	return m.display[:]
}

// Pixel returns the state of the display pixel at the given coordinates,
// origin top-left.
func (m *Machine) Pixel(x, y int) bool {
	return m.display[y*DisplayWidth+x]
}

// Registers returns a copy of the general-purpose registers V0-VF.
func (m *Machine) Registers() [RegisterCount]byte {
	return m.registers
}

// ProgramCounter returns the current program counter.
func (m *Machine) ProgramCounter() uint16 {
	return m.pc
}

// IndexRegister returns the current value of the index register I.
func (m *Machine) IndexRegister() uint16 {
	return m.index
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() byte {
	return m.delayTimer
}

// SoundTimer returns the current sound timer value.
func (m *Machine) SoundTimer() byte {
	return m.soundTimer
}

// CurrentInstruction returns the most recently fetched instruction word.
func (m *Machine) CurrentInstruction() uint16 {
	return m.opcode
}
