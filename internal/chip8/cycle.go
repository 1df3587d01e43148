package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

type handler func(m *Machine, ins Instruction) error

// handlers maps every operation to its implementation. Each handler is
// responsible for setting the program counter of the next instruction.
var handlers = [opCount]handler{
	OpUnknown:         (*Machine).opUnknown,
	OpHalt:            (*Machine).opHalt,
	OpClear:           (*Machine).opClear,
	OpReturn:          (*Machine).opReturn,
	OpSys:             (*Machine).opSys,
	OpJump:            (*Machine).opJump,
	OpCall:            (*Machine).opCall,
	OpSkipEqualImm:    (*Machine).opSkipEqualImm,
	OpSkipNotEqualImm: (*Machine).opSkipNotEqualImm,
	OpSkipEqualReg:    (*Machine).opSkipEqualReg,
	OpLoadImm:         (*Machine).opLoadImm,
	OpAddImm:          (*Machine).opAddImm,
	OpMove:            (*Machine).opMove,
	OpOr:              (*Machine).opOr,
	OpAnd:             (*Machine).opAnd,
	OpXor:             (*Machine).opXor,
	OpAddReg:          (*Machine).opAddReg,
	OpSub:             (*Machine).opSub,
	OpShiftRight:      (*Machine).opShiftRight,
	OpSubReverse:      (*Machine).opSubReverse,
	OpShiftLeft:       (*Machine).opShiftLeft,
	OpSkipNotEqualReg: (*Machine).opSkipNotEqualReg,
	OpLoadIndex:       (*Machine).opLoadIndex,
	OpJumpOffset:      (*Machine).opJumpOffset,
	OpRandom:          (*Machine).opRandom,
	OpDraw:            (*Machine).opDraw,
	OpLoadDelay:       (*Machine).opLoadDelay,
	OpSetDelay:        (*Machine).opSetDelay,
	OpSetSound:        (*Machine).opSetSound,
	OpAddIndex:        (*Machine).opAddIndex,
	OpStoreBCD:        (*Machine).opStoreBCD,
	OpStoreRegisters:  (*Machine).opStoreRegisters,
	OpLoadRegisters:   (*Machine).opLoadRegisters,
}

// Cycle fetches, decodes and executes one instruction and returns the
// executed instruction word. Timers are not touched, see TickTimers.
// A fatal fault halts the machine and is returned wrapped with the word and
// its address. Cycling a halted machine returns ErrHalted.
func (m *Machine) Cycle() (uint16, error) {
	if m.halted {
		return 0, ErrHalted
	}

	word := m.fetch()
	address := m.pc
	ins := Decode(word)

	if err := handlers[ins.Op](m, ins); err != nil {
		m.halted = true
		m.fault = fmt.Errorf("executing $%04X at $%03X: %w", word, address, err)
		return word, m.fault
	}
	return word, nil
}

// fetch reads the big-endian instruction word at the program counter.
// A program counter that ran past the end of memory restarts the program.
func (m *Machine) fetch() uint16 {
	if int(m.pc)+1 >= MemorySize {
		m.logger.Warn("Program counter ran past end of memory, restarting at program start",
			log.Hex("address", m.pc))
		m.pc = ProgramStart
	}
	return uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1])
}

// step advances the program counter over the current instruction.
func (m *Machine) step() {
	m.pc += PCStep
}

// skipIf advances the program counter over the current instruction and,
// if the condition holds, over the next one as well.
func (m *Machine) skipIf(condition bool) {
	m.pc += PCStep
	if condition {
		m.pc += PCStep
	}
}

func (m *Machine) opUnknown(ins Instruction) error {
	m.logger.Warn("Unsupported opcode",
		log.Hex("opcode", ins.Word),
		log.Hex("address", m.pc))
	m.step()
	return nil
}
