package chip8

import "fmt"

// clearScreen - 00E0 - CLS
// Turns every display pixel off.
func (m *Machine) clearScreen() error {
	m.display = [DisplayWidth * DisplayHeight]bool{}
	return nil
}

// returnFromCall - 00EE - RET
// Pops the return address from the stack into the program counter.
func (m *Machine) returnFromCall() error {
	if m.sp == 0 {
		return fmt.Errorf("%w: RET at address %03X", ErrStackUnderflow, m.pc-2)
	}
	m.sp--
	m.pc = m.stack[m.sp]
	return nil
}

// jump - 1nnn - JP addr
func (m *Machine) jump() error {
	m.pc = m.opcode & 0x0FFF
	return nil
}

// call - 2nnn - CALL addr
// Pushes the already advanced program counter and jumps to the target.
func (m *Machine) call() error {
	if int(m.sp) == StackSize {
		return fmt.Errorf("%w: CALL at address %03X", ErrStackOverflow, m.pc-2)
	}
	m.stack[m.sp] = m.pc
	m.sp++
	m.pc = m.opcode & 0x0FFF
	return nil
}

// skipEqualByte - 3xnn - SE Vx, byte
func (m *Machine) skipEqualByte() error {
	if m.registers[registerX(m.opcode)] == byte(m.opcode) {
		m.pc += 2
	}
	return nil
}

// skipNotEqualByte - 4xnn - SNE Vx, byte
func (m *Machine) skipNotEqualByte() error {
	if m.registers[registerX(m.opcode)] != byte(m.opcode) {
		m.pc += 2
	}
	return nil
}

// skipEqualRegister - 5xy0 - SE Vx, Vy
func (m *Machine) skipEqualRegister() error {
	if m.registers[registerX(m.opcode)] == m.registers[registerY(m.opcode)] {
		m.pc += 2
	}
	return nil
}

// loadByte - 6xnn - LD Vx, byte
func (m *Machine) loadByte() error {
	m.registers[registerX(m.opcode)] = byte(m.opcode)
	return nil
}

// addByte - 7xnn - ADD Vx, byte
// Wraps at 8 bits, VF is not touched.
func (m *Machine) addByte() error {
	x := registerX(m.opcode)
	m.registers[x] += byte(m.opcode)
	return nil
}

// loadRegister - 8xy0 - LD Vx, Vy
func (m *Machine) loadRegister() error {
	m.registers[registerX(m.opcode)] = m.registers[registerY(m.opcode)]
	return nil
}

// orRegister - 8xy1 - OR Vx, Vy
func (m *Machine) orRegister() error {
	m.registers[registerX(m.opcode)] |= m.registers[registerY(m.opcode)]
	return nil
}

// andRegister - 8xy2 - AND Vx, Vy
func (m *Machine) andRegister() error {
	m.registers[registerX(m.opcode)] &= m.registers[registerY(m.opcode)]
	return nil
}

// xorRegister - 8xy3 - XOR Vx, Vy
func (m *Machine) xorRegister() error {
	m.registers[registerX(m.opcode)] ^= m.registers[registerY(m.opcode)]
	return nil
}

// addRegister - 8xy4 - ADD Vx, Vy
// VF is set to 1 on unsigned overflow, 0 otherwise. The flag is written
// before the result so that Vx wins when x is F.
func (m *Machine) addRegister() error {
	x := registerX(m.opcode)
	y := registerY(m.opcode)

	sum := uint16(m.registers[x]) + uint16(m.registers[y])
	carry := byte(0)
	if sum > 0xFF {
		carry = 1
	}
	m.registers[0xF] = carry
	m.registers[x] = byte(sum)
	return nil
}

// subRegister - 8xy5 - SUB Vx, Vy
// VF is set to 1 if no borrow occurred (Vx >= Vy), 0 otherwise.
func (m *Machine) subRegister() error {
	x := registerX(m.opcode)
	y := registerY(m.opcode)

	vx := m.registers[x]
	vy := m.registers[y]
	noBorrow := byte(0)
	if vx >= vy {
		noBorrow = 1
	}
	m.registers[0xF] = noBorrow
	m.registers[x] = vx - vy
	return nil
}

// shiftRight - 8xy6 - SHR Vx
// VF receives the low bit before the shift. The Vy operand is ignored.
func (m *Machine) shiftRight() error {
	x := registerX(m.opcode)
	m.registers[0xF] = m.registers[x] & 1
	m.registers[x] >>= 1
	return nil
}

// subnRegister - 8xy7 - SUBN Vx, Vy
// Vx = Vy - Vx, VF is set to 1 if no borrow occurred (Vy >= Vx).
func (m *Machine) subnRegister() error {
	x := registerX(m.opcode)
	y := registerY(m.opcode)

	vx := m.registers[x]
	vy := m.registers[y]
	noBorrow := byte(0)
	if vy >= vx {
		noBorrow = 1
	}
	m.registers[0xF] = noBorrow
	m.registers[x] = vy - vx
	return nil
}

// shiftLeft - 8xyE - SHL Vx
// VF receives the unshifted high bit, 0 or 0x80. The Vy operand is ignored.
func (m *Machine) shiftLeft() error {
	x := registerX(m.opcode)
	m.registers[0xF] = m.registers[x] & 0x80
	m.registers[x] <<= 1
	return nil
}

// skipNotEqualRegister - 9xy0 - SNE Vx, Vy
func (m *Machine) skipNotEqualRegister() error {
	if m.registers[registerX(m.opcode)] != m.registers[registerY(m.opcode)] {
		m.pc += 2
	}
	return nil
}

// loadIndex - Annn - LD I, addr
func (m *Machine) loadIndex() error {
	m.index = m.opcode & 0x0FFF
	return nil
}

// jumpV0 - Bnnn - JP V0, addr
// The sum wraps at 16 bits; an out-of-range target faults on the next fetch.
func (m *Machine) jumpV0() error {
	m.pc = uint16(m.registers[0]) + m.opcode&0x0FFF
	return nil
}

// randomByte - Cxnn - RND Vx, byte
// Vx = random byte AND nn. The random source supplies one byte per call.
func (m *Machine) randomByte() error {
	m.registers[registerX(m.opcode)] = m.random.Byte() & byte(m.opcode)
	return nil
}

// draw - Dxyn - DRW Vx, Vy, nibble
// XOR-composites an n-byte sprite read from memory at I onto the display at
// (Vx mod 64, Vy mod 32), wrapping rows and columns at the display edges.
// VF is set to 1 if any lit pixel was turned off, 0 otherwise. The sprite
// read range is validated before any pixel is touched.
func (m *Machine) draw() error {
	rows := int(m.opcode & 0x000F)
	if rows > 0 && int(m.index)+rows-1 > MaxAddress {
		return fmt.Errorf("%w: sprite read of %d bytes at %04X", ErrAddressFault, rows, m.index)
	}

	xCoord := int(m.registers[registerX(m.opcode)]) % DisplayWidth
	yCoord := int(m.registers[registerY(m.opcode)]) % DisplayHeight

	collision := false
	for row := 0; row < rows; row++ {
		spriteByte := m.memory[int(m.index)+row]
		pixelY := (yCoord + row) % DisplayHeight

		for col := 0; col < 8; col++ {
			if spriteByte&(0x80>>col) == 0 {
				continue
			}
			pixelX := (xCoord + col) % DisplayWidth
			index := pixelY*DisplayWidth + pixelX

			if m.display[index] {
				collision = true
			}
			m.display[index] = !m.display[index]
		}
	}

	if collision {
		m.registers[0xF] = 1
	} else {
		m.registers[0xF] = 0
	}
	return nil
}

// skipKeyPressed - Ex9E - SKP Vx
// Skips the next instruction if the key selected by the value in Vx is
// pressed. Only the low nibble of Vx selects a key.
func (m *Machine) skipKeyPressed() error {
	if m.keypad[m.registers[registerX(m.opcode)]&0x0F] {
		m.pc += 2
	}
	return nil
}

// skipKeyNotPressed - ExA1 - SKNP Vx
func (m *Machine) skipKeyNotPressed() error {
	if !m.keypad[m.registers[registerX(m.opcode)]&0x0F] {
		m.pc += 2
	}
	return nil
}

// loadDelayTimer - Fx07 - LD Vx, DT
func (m *Machine) loadDelayTimer() error {
	m.registers[registerX(m.opcode)] = m.delayTimer
	return nil
}

// waitKey - Fx0A - LD Vx, K
// Polls the key with the same index as the register operand: if pressed,
// stores that index in Vx and proceeds, otherwise rewinds the program
// counter so the instruction re-executes on the next step. Control returns
// to the host after every poll, there is no internal blocking.
func (m *Machine) waitKey() error {
	x := registerX(m.opcode)
	if m.keypad[x] {
		m.registers[x] = byte(x)
	} else {
		m.pc -= 2
	}
	return nil
}

// setDelayTimer - Fx15 - LD DT, Vx
func (m *Machine) setDelayTimer() error {
	m.delayTimer = m.registers[registerX(m.opcode)]
	return nil
}

// setSoundTimer - Fx18 - LD ST, Vx
func (m *Machine) setSoundTimer() error {
	m.soundTimer = m.registers[registerX(m.opcode)]
	return nil
}

// addIndex - Fx1E - ADD I, Vx
// Wraps at 16 bits.
func (m *Machine) addIndex() error {
	m.index += uint16(m.registers[registerX(m.opcode)])
	return nil
}

// loadFontAddress - Fx29 - LD F, Vx
// Points I at the built-in font glyph for the value in Vx.
func (m *Machine) loadFontAddress() error {
	m.index = uint16(m.registers[registerX(m.opcode)]) * FontSpriteSize
	return nil
}

// storeBCD - Fx33 - LD B, Vx
// Writes the hundreds, tens and ones digits of Vx to memory at I, I+1, I+2.
func (m *Machine) storeBCD() error {
	if int(m.index)+2 > MaxAddress {
		return fmt.Errorf("%w: BCD write at %04X", ErrAddressFault, m.index)
	}

	value := m.registers[registerX(m.opcode)]
	m.memory[m.index] = value / 100
	m.memory[m.index+1] = (value / 10) % 10
	m.memory[m.index+2] = value % 10
	return nil
}

// storeRegisters - Fx55 - LD [I], Vx
// Copies V0..Vx to memory starting at I. I is left unchanged, asymmetric
// with loadRegisters.
func (m *Machine) storeRegisters() error {
	x := registerX(m.opcode)
	if int(m.index)+x > MaxAddress {
		return fmt.Errorf("%w: register store of %d bytes at %04X", ErrAddressFault, x+1, m.index)
	}

	for i := 0; i <= x; i++ {
		m.memory[int(m.index)+i] = m.registers[i]
	}
	return nil
}

// loadRegisters - Fx65 - LD Vx, [I]
// Copies memory starting at I into V0..Vx, then advances I by x+1.
func (m *Machine) loadRegisters() error {
	x := registerX(m.opcode)
	if int(m.index)+x > MaxAddress {
		return fmt.Errorf("%w: register load of %d bytes at %04X", ErrAddressFault, x+1, m.index)
	}

	for i := 0; i <= x; i++ {
		m.registers[i] = m.memory[int(m.index)+i]
	}
	m.index += uint16(x + 1)
	return nil
}
