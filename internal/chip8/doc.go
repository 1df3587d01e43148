// Package chip8 implements the CHIP-8 interpreter core.
//
// # Machine Overview
//
// CHIP-8 is an interpreted programming language from the 1970s. The virtual
// machine executed by this package consists of:
//   - 4KB of memory, programs are loaded at ProgramStart (0x200)
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as flag register
//   - a 16-bit index register I and a 16-bit program counter
//   - a call stack of StackDepth return addresses
//   - delay and sound timers counting down at TimerRate
//   - a 64x32 monochrome framebuffer
//
// # Execution Model
//
// Every call to Machine.Cycle runs exactly one instruction:
//  1. Fetch reads the big-endian word at the program counter
//  2. Decode splits it into nibbles, operand fields and an Op variant
//  3. Execute dispatches the Op to its handler which sets the next pc
//
// The core never sleeps and never ticks its timers by itself. The caller
// invokes Cycle at InstructionRate and TickTimers at TimerRate, see the
// scheduler package for a pacing implementation.
//
// # Errors
//
// Unknown instructions are logged and skipped. Stack overflow, stack
// underflow and out-of-range jump targets halt the machine; the fault is
// returned by Cycle and kept available through Fault.
//
// # Usage Example
//
//	m := chip8.New(logger)
//	if err := m.Load(program); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for !m.Finished() {
//		if _, err := m.Cycle(); err != nil {
//			return err
//		}
//	}
package chip8
