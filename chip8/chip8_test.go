package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	m := New(Options{})

	assert.Equal(t, uint16(ProgramStart), m.ProgramCounter())
	assert.Equal(t, uint16(0), m.IndexRegister())
	assert.Equal(t, byte(0), m.DelayTimer())
	assert.Equal(t, byte(0), m.SoundTimer())

	for _, v := range m.Registers() {
		assert.Equal(t, byte(0), v)
	}
	for _, pixel := range m.Display() {
		assert.False(t, pixel)
	}
}

func TestNewLoadsFontSprites(t *testing.T) {
	m := New(Options{})

	// glyph 0 at address 0x000
	assert.Equal(t, byte(0xF0), m.memory[0])
	assert.Equal(t, byte(0x90), m.memory[1])

	// glyph F starts at address 0xF * 5
	assert.Equal(t, byte(0xF0), m.memory[0xF*FontSpriteSize])
	assert.Equal(t, byte(0x80), m.memory[0xF*FontSpriteSize+4])

	// nothing beyond the font region
	assert.Equal(t, byte(0), m.memory[len(fontSprites)])
}

func TestLoadROM(t *testing.T) {
	tests := []struct {
		name    string
		romSize int
		wantErr bool
	}{
		{"small ROM", 4, false},
		{"maximum size", MaxROMSize, false},
		{"one byte too large", MaxROMSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(Options{})
			rom := make([]byte, tt.romSize)
			for i := range rom {
				rom[i] = byte(i)
			}

			err := m.LoadROM(rom)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrROMTooLarge))
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, rom[0], m.memory[ProgramStart])
			assert.Equal(t, rom[len(rom)-1], m.memory[ProgramStart+len(rom)-1])
		})
	}
}

func TestSetKey(t *testing.T) {
	m := New(Options{})

	assert.NoError(t, m.SetKey(0xA, true))
	assert.True(t, m.keypad[0xA])

	assert.NoError(t, m.SetKey(0xA, false))
	assert.False(t, m.keypad[0xA])

	assert.True(t, errors.Is(m.SetKey(-1, true), ErrInvalidKey))
	assert.True(t, errors.Is(m.SetKey(KeyCount, true), ErrInvalidKey))
}

func TestTickTimers(t *testing.T) {
	m := New(Options{})
	m.delayTimer = 2
	m.soundTimer = 1

	soundOn := m.TickTimers()
	assert.True(t, soundOn)
	assert.Equal(t, byte(1), m.DelayTimer())
	assert.Equal(t, byte(0), m.SoundTimer())

	soundOn = m.TickTimers()
	assert.False(t, soundOn)
	assert.Equal(t, byte(0), m.DelayTimer())

	// both timers saturate at 0
	soundOn = m.TickTimers()
	assert.False(t, soundOn)
	assert.Equal(t, byte(0), m.DelayTimer())
	assert.Equal(t, byte(0), m.SoundTimer())
}

func TestPixel(t *testing.T) {
	m := New(Options{})
	m.display[3*DisplayWidth+7] = true

	assert.True(t, m.Pixel(7, 3))
	assert.False(t, m.Pixel(3, 7))
}
