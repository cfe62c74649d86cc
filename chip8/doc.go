// Package chip8 implements a CHIP-8 virtual machine core.
//
// # Architecture Overview
//
// CHIP-8 is an interpreted programming language from the 1970s designed for
// simple games. A machine consists of 4KB of memory, 16 general-purpose
// 8-bit registers (V0-VF), a 16-entry call stack, a 16-bit index register,
// two 8-bit timers, a 64x32 monochrome display and a hexadecimal keypad.
//
// # Memory Layout
//
//	0x000-0x04F: built-in font sprites (16 glyphs, 5 bytes each)
//	0x050-0x1FF: unused interpreter area
//	0x200-0xFFF: user program and data
//
// # Usage
//
// The host owns the machine and drives it explicitly:
//
//	machine := chip8.New(chip8.Options{})
//	if err := machine.LoadROM(rom); err != nil {
//		return err
//	}
//	for {
//		// several instruction steps per rendered frame
//		for i := 0; i < stepsPerFrame; i++ {
//			if err := machine.Step(); err != nil {
//				return err
//			}
//		}
//		soundOn := machine.TickTimers()
//		render(machine.Display())
//		_ = soundOn // host owns audio playback
//	}
//
// Key state is written by the host through SetKey between steps. Presenting
// the display, translating key events, loading ROM files and producing sound
// are host concerns; the core only exposes the state they need.
//
// # Faults
//
// Illegal opcodes, out-of-range memory accesses and stack over/underflow are
// returned as wrapped sentinel errors from Step. A fault is latched: further
// Step calls fail with the same error until the machine is discarded. An
// instruction that faults performs no partial state change.
package chip8
