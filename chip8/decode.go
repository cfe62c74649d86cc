package chip8

import (
	"fmt"

	"github.com/retroenv/chip8emu/disasm"
	"github.com/retroenv/retrogolib/log"
)

// handler executes one decoded instruction. The instruction word is held in
// the machine's opcode field for the duration of the call.
type handler func(m *Machine) error

// dispatchEntry matches an instruction word against a fixed bit pattern.
// The mask selects the significant nibbles of the word, value is the
// expected result of applying it.
type dispatchEntry struct {
	mask  uint16
	value uint16
	fn    handler
}

// dispatchTable holds all recognized instruction patterns, indexed by the
// first nibble of the instruction word.
var dispatchTable = [16][]dispatchEntry{
	0x0: {
		{0xFFFF, 0x00E0, (*Machine).clearScreen},
		{0xFFFF, 0x00EE, (*Machine).returnFromCall},
	},
	0x1: {{0xF000, 0x1000, (*Machine).jump}},
	0x2: {{0xF000, 0x2000, (*Machine).call}},
	0x3: {{0xF000, 0x3000, (*Machine).skipEqualByte}},
	0x4: {{0xF000, 0x4000, (*Machine).skipNotEqualByte}},
	0x5: {{0xF00F, 0x5000, (*Machine).skipEqualRegister}},
	0x6: {{0xF000, 0x6000, (*Machine).loadByte}},
	0x7: {{0xF000, 0x7000, (*Machine).addByte}},
	0x8: {
		{0xF00F, 0x8000, (*Machine).loadRegister},
		{0xF00F, 0x8001, (*Machine).orRegister},
		{0xF00F, 0x8002, (*Machine).andRegister},
		{0xF00F, 0x8003, (*Machine).xorRegister},
		{0xF00F, 0x8004, (*Machine).addRegister},
		{0xF00F, 0x8005, (*Machine).subRegister},
		{0xF00F, 0x8006, (*Machine).shiftRight},
		{0xF00F, 0x8007, (*Machine).subnRegister},
		{0xF00F, 0x800E, (*Machine).shiftLeft},
	},
	0x9: {{0xF00F, 0x9000, (*Machine).skipNotEqualRegister}},
	0xA: {{0xF000, 0xA000, (*Machine).loadIndex}},
	0xB: {{0xF000, 0xB000, (*Machine).jumpV0}},
	0xC: {{0xF000, 0xC000, (*Machine).randomByte}},
	0xD: {{0xF000, 0xD000, (*Machine).draw}},
	0xE: {
		{0xF0FF, 0xE09E, (*Machine).skipKeyPressed},
		{0xF0FF, 0xE0A1, (*Machine).skipKeyNotPressed},
	},
	0xF: {
		{0xF0FF, 0xF007, (*Machine).loadDelayTimer},
		{0xF0FF, 0xF00A, (*Machine).waitKey},
		{0xF0FF, 0xF015, (*Machine).setDelayTimer},
		{0xF0FF, 0xF018, (*Machine).setSoundTimer},
		{0xF0FF, 0xF01E, (*Machine).addIndex},
		{0xF0FF, 0xF029, (*Machine).loadFontAddress},
		{0xF0FF, 0xF033, (*Machine).storeBCD},
		{0xF0FF, 0xF055, (*Machine).storeRegisters},
		{0xF0FF, 0xF065, (*Machine).loadRegisters},
	},
}

// Step advances the machine by exactly one instruction: fetch the word at
// the program counter, advance the counter by 2, dispatch the word against
// the instruction table and execute the matching handler. Jump, call, skip
// and key-wait handlers overwrite the already advanced counter.
//
// A returned fault is latched, every following Step call fails with it.
func (m *Machine) Step() error {
	if m.fault != nil {
		return m.fault
	}
	if err := m.step(); err != nil {
		m.fault = err
		return err
	}
	return nil
}

func (m *Machine) step() error {
	fetchAddress := m.pc
	if int(fetchAddress)+1 > MaxAddress {
		return fmt.Errorf("%w: instruction fetch at %04X", ErrAddressFault, fetchAddress)
	}

	opcode := uint16(m.memory[fetchAddress])<<8 | uint16(m.memory[fetchAddress+1])
	m.opcode = opcode
	m.pc += 2

	if m.trace {
		m.traceInstruction(fetchAddress, opcode)
	}

	for _, entry := range dispatchTable[opcode>>12] {
		if opcode&entry.mask == entry.value {
			return entry.fn(m)
		}
	}
	return fmt.Errorf("%w: %04X at address %03X", ErrIllegalOpcode, opcode, fetchAddress)
}

func (m *Machine) traceInstruction(address, opcode uint16) {
	assembly, err := disasm.Format(opcode)
	if err != nil {
		assembly = "???"
	}
	m.logger.Debug("Executing instruction",
		log.Hex("address", address),
		log.Hex("opcode", opcode),
		log.String("assembly", assembly))
}

// registerX extracts the X register nibble from an instruction word.
func registerX(opcode uint16) int {
	return int(opcode&0x0F00) >> 8
}

// registerY extracts the Y register nibble from an instruction word.
func registerY(opcode uint16) int {
	return int(opcode&0x00F0) >> 4
}
