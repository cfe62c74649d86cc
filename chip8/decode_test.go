package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// stepOpcode writes an instruction word at the current program counter and
// executes one step.
func stepOpcode(m *Machine, opcode uint16) error {
	m.memory[m.pc] = byte(opcode >> 8)
	m.memory[m.pc+1] = byte(opcode)
	return m.Step()
}

// runOpcode is stepOpcode for instructions that must succeed.
func runOpcode(t *testing.T, m *Machine, opcode uint16) {
	t.Helper()
	assert.NoError(t, stepOpcode(m, opcode))
}

func TestStepAdvancesProgramCounter(t *testing.T) {
	m := New(Options{})

	runOpcode(t, m, 0x6512) // ld V5, $12
	assert.Equal(t, uint16(ProgramStart+2), m.ProgramCounter())
	assert.Equal(t, uint16(0x6512), m.CurrentInstruction())
	assert.Equal(t, byte(0x12), m.registers[5])
}

func TestStepIllegalOpcode(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
	}{
		{"5xy1 pattern", 0x5AB1},
		{"0nnn system call", 0x0123},
		{"8xy8 pattern", 0x8128},
		{"Ex00 pattern", 0xE100},
		{"FxFF pattern", 0xF1FF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(Options{})
			before := m.Registers()

			err := stepOpcode(m, tt.opcode)
			assert.True(t, errors.Is(err, ErrIllegalOpcode))

			assert.Equal(t, before, m.Registers())
			for _, pixel := range m.Display() {
				assert.False(t, pixel)
			}
		})
	}
}

func TestStepFaultIsLatched(t *testing.T) {
	m := New(Options{})

	err := stepOpcode(m, 0x5AB1)
	assert.True(t, errors.Is(err, ErrIllegalOpcode))

	// the fault sticks, overwriting memory with a valid instruction
	// does not revive the machine
	again := stepOpcode(m, 0x00E0)
	assert.True(t, errors.Is(again, ErrIllegalOpcode))
}

func TestStepFetchAddressFault(t *testing.T) {
	m := New(Options{})

	// jump to the last byte of memory, the second instruction byte
	// would be fetched from outside the address space
	runOpcode(t, m, 0x1FFF)
	assert.Equal(t, uint16(MaxAddress), m.ProgramCounter())

	err := m.Step()
	assert.True(t, errors.Is(err, ErrAddressFault))
}

func TestStepFetchBeyondMemory(t *testing.T) {
	m := New(Options{})

	// jp V0, $F10 with V0 = 0xFF lands the program counter at 0x100F
	m.registers[0] = 0xFF
	runOpcode(t, m, 0xBF10)
	assert.Equal(t, uint16(0x100F), m.ProgramCounter())

	err := m.Step()
	assert.True(t, errors.Is(err, ErrAddressFault))
}

// TestDispatchTableCoverage executes one sample word for every recognized
// instruction pattern and verifies none of them is treated as illegal.
func TestDispatchTableCoverage(t *testing.T) {
	samples := []uint16{
		0x00E0, 0x00EE,
		0x1234, 0x2234, 0x3412, 0x4412, 0x5120, 0x6412, 0x7412,
		0x8120, 0x8121, 0x8122, 0x8123, 0x8124, 0x8125, 0x8126, 0x8127, 0x812E,
		0x9120, 0xA234, 0xB234, 0xC412, 0xD125,
		0xE19E, 0xE1A1,
		0xF107, 0xF10A, 0xF115, 0xF118, 0xF11E, 0xF129, 0xF133, 0xF155, 0xF165,
	}

	for _, opcode := range samples {
		m := New(Options{})
		err := stepOpcode(m, opcode)
		assert.False(t, errors.Is(err, ErrIllegalOpcode), "opcode %04X", opcode)
	}
}

func TestStepTraceLogging(t *testing.T) {
	m := New(Options{
		Logger: log.NewTestLogger(t),
		Trace:  true,
	})

	runOpcode(t, m, 0x00E0)
	assert.Equal(t, uint16(ProgramStart+2), m.ProgramCounter())
}
