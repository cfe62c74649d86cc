// Package disasm formats CHIP-8 instruction words as assembly text.
// It backs the machine's execution trace and can produce a listing of a
// whole ROM image.
package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// programStart is the memory address where CHIP-8 programs begin execution.
// ROM images are stored starting at offset 0 in files.
const programStart = 0x200

// Lookup identifies the instruction encoded by a 16-bit word by matching it
// against the opcode patterns of its first nibble group.
func Lookup(opcode uint16) (*chip8.Instruction, bool) {
	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&opcode == op.Info.Value && op.Instruction != nil {
			return op.Instruction, true
		}
	}
	return nil, false
}

// Format renders an instruction word as mnemonic plus parameters.
// It returns an error for words that match no instruction pattern.
func Format(opcode uint16) (string, error) {
	ins, ok := Lookup(opcode)
	if !ok {
		return "", fmt.Errorf("unknown instruction word %04X", opcode)
	}

	if params := formatParams(ins.Name, opcode); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params), nil
	}
	return ins.Name, nil
}

// Disassemble writes a listing of a raw ROM image, one instruction word per
// line, addressed from the program start address. Words that match no
// instruction pattern are emitted as data bytes.
func Disassemble(w io.Writer, rom []byte) error {
	for offset := 0; offset < len(rom); offset += 2 {
		address := programStart + offset

		if offset+1 >= len(rom) {
			// trailing odd byte
			if _, err := fmt.Fprintf(w, "$%03X: %02X    .byte $%02X\n",
				address, rom[offset], rom[offset]); err != nil {
				return fmt.Errorf("writing listing: %w", err)
			}
			break
		}

		opcode := uint16(rom[offset])<<8 | uint16(rom[offset+1])
		line, err := Format(opcode)
		if err != nil {
			line = fmt.Sprintf(".byte $%02X, $%02X", rom[offset], rom[offset+1])
		}

		if _, err := fmt.Fprintf(w, "$%03X: %04X  %s\n", address, opcode, line); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}
	return nil
}

// formatParams formats the parameters of a CHIP-8 instruction.
// Returns an empty string for instructions without parameters.
func formatParams(name string, opcode uint16) string {
	switch name {
	case chip8.Cls.Name, chip8.Ret.Name:
		return ""
	case chip8.Jp.Name:
		return formatJump(opcode)
	case chip8.Call.Name:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case chip8.Se.Name, chip8.Sne.Name:
		return formatCompare(opcode)
	case chip8.Ld.Name:
		return formatLoad(opcode)
	case chip8.Add.Name:
		return formatAdd(opcode)
	case chip8.Or.Name, chip8.And.Name, chip8.Xor.Name, chip8.Sub.Name, chip8.Subn.Name:
		return formatBinary(opcode)
	case chip8.Shr.Name, chip8.Shl.Name, chip8.Skp.Name, chip8.Sknp.Name:
		return fmt.Sprintf("V%X", registerX(opcode))
	case chip8.Rnd.Name:
		return fmt.Sprintf("V%X, $%02X", registerX(opcode), opcode&0x00FF)
	case chip8.Drw.Name:
		return fmt.Sprintf("V%X, V%X, $%X", registerX(opcode), registerY(opcode), opcode&0x000F)
	}
	return ""
}

// formatJump formats jump instructions (JP addr, JP V0+addr).
func formatJump(opcode uint16) string {
	switch opcode & 0xF000 {
	case 0x1000:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	}
	return ""
}

// formatCompare formats comparison instructions (SE, SNE).
func formatCompare(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	}
	return ""
}

// formatLoad formats the load instruction family, including the timer, key,
// font, BCD and register block transfer variants.
func formatLoad(opcode uint16) string {
	x := registerX(opcode)

	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	}

	switch opcode & 0xF0FF {
	case 0xF007:
		return fmt.Sprintf("V%X, DT", x)
	case 0xF00A:
		return fmt.Sprintf("V%X, K", x)
	case 0xF015:
		return fmt.Sprintf("DT, V%X", x)
	case 0xF018:
		return fmt.Sprintf("ST, V%X", x)
	case 0xF029:
		return fmt.Sprintf("F, V%X", x)
	case 0xF033:
		return fmt.Sprintf("B, V%X", x)
	case 0xF055:
		return fmt.Sprintf("[I], V%X", x)
	case 0xF065:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

// formatAdd formats add instructions (ADD Vx, byte/Vy/I).
func formatAdd(opcode uint16) string {
	x := registerX(opcode)
	switch {
	case opcode&0xF000 == 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case opcode&0xF000 == 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case opcode&0xF0FF == 0xF01E:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}

// formatBinary formats two-register instructions (OR, AND, XOR, SUB, SUBN).
func formatBinary(opcode uint16) string {
	return fmt.Sprintf("V%X, V%X", registerX(opcode), registerY(opcode))
}

// registerX extracts the X register nibble from a CHIP-8 opcode.
func registerX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

// registerY extracts the Y register nibble from a CHIP-8 opcode.
func registerY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
