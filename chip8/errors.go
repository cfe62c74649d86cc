package chip8

import "errors"

// Faults returned by Step and LoadROM. All are fatal for the machine: once
// Step returns one of them it keeps returning it, the host decides whether
// to surface a diagnostic or start over with a fresh machine.
var (
	// ErrAddressFault indicates a program counter or computed memory index
	// outside the 4KB address space.
	ErrAddressFault = errors.New("address outside memory")

	// ErrIllegalOpcode indicates an instruction word that matches no entry
	// of the dispatch table.
	ErrIllegalOpcode = errors.New("illegal opcode")

	// ErrStackOverflow indicates a CALL with all 16 stack slots in use.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow indicates a RET with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrROMTooLarge indicates a ROM image that does not fit into the
	// program area 0x200-0xFFF.
	ErrROMTooLarge = errors.New("ROM exceeds program memory")

	// ErrInvalidKey indicates a key index outside 0x0-0xF passed to SetKey.
	ErrInvalidKey = errors.New("invalid key index")
)
