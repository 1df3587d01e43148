package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// 0000: stop the interpreter, the program counter stays on the instruction.
func (m *Machine) opHalt(_ Instruction) error {
	m.halted = true
	return nil
}

// 00E0
func (m *Machine) opClear(_ Instruction) error {
	m.screen = [ScreenSize]byte{}
	m.step()
	return nil
}

// 00EE: the stack holds the address of the instruction following the call.
func (m *Machine) opReturn(_ Instruction) error {
	if m.sp == 0 {
		return ErrStackUnderflow
	}
	m.sp--
	m.pc = m.stack[m.sp]
	return nil
}

// 0NNN: machine code routines of the original hardware are not supported.
func (m *Machine) opSys(ins Instruction) error {
	m.logger.Debug("Ignoring machine code routine call",
		log.Hex("target", ins.Address),
		log.Hex("address", m.pc))
	m.step()
	return nil
}

// 1NNN
func (m *Machine) opJump(ins Instruction) error {
	if err := checkTarget(ins.Address); err != nil {
		return err
	}
	m.pc = ins.Address
	return nil
}

// 2NNN
func (m *Machine) opCall(ins Instruction) error {
	if err := checkTarget(ins.Address); err != nil {
		return err
	}
	if m.sp >= StackDepth {
		return ErrStackOverflow
	}
	m.stack[m.sp] = m.pc + PCStep
	m.sp++
	m.pc = ins.Address
	return nil
}

// BNNN
func (m *Machine) opJumpOffset(ins Instruction) error {
	target := ins.Address + uint16(m.v[0])
	if target > MaxAddress {
		return fmt.Errorf("jump target $%04X: %w", target, ErrInvalidAddress)
	}
	m.pc = target
	return nil
}

// 3XNN
func (m *Machine) opSkipEqualImm(ins Instruction) error {
	m.skipIf(m.v[ins.X] == ins.Immediate)
	return nil
}

// 4XNN
func (m *Machine) opSkipNotEqualImm(ins Instruction) error {
	m.skipIf(m.v[ins.X] != ins.Immediate)
	return nil
}

// 5XY0
func (m *Machine) opSkipEqualReg(ins Instruction) error {
	m.skipIf(m.v[ins.X] == m.v[ins.Y])
	return nil
}

// 9XY0
func (m *Machine) opSkipNotEqualReg(ins Instruction) error {
	m.skipIf(m.v[ins.X] != m.v[ins.Y])
	return nil
}

// checkTarget verifies that a jump or call target lies above the program
// start and inside memory.
func checkTarget(address uint16) error {
	if address <= ProgramStart || address > MaxAddress {
		return fmt.Errorf("jump target $%03X: %w", address, ErrInvalidAddress)
	}
	return nil
}
