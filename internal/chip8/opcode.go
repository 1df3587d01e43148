package chip8

// Op identifies the operation of a decoded instruction.
type Op uint8

// Operations of the CHIP-8 instruction set supported by the interpreter.
const (
	OpUnknown Op = iota
	OpHalt
	OpClear
	OpReturn
	OpSys
	OpJump
	OpCall
	OpSkipEqualImm
	OpSkipNotEqualImm
	OpSkipEqualReg
	OpLoadImm
	OpAddImm
	OpMove
	OpOr
	OpAnd
	OpXor
	OpAddReg
	OpSub
	OpShiftRight
	OpSubReverse
	OpShiftLeft
	OpSkipNotEqualReg
	OpLoadIndex
	OpJumpOffset
	OpRandom
	OpDraw
	OpLoadDelay
	OpSetDelay
	OpSetSound
	OpAddIndex
	OpStoreBCD
	OpStoreRegisters
	OpLoadRegisters

	opCount
)

var opNames = [opCount]string{
	OpUnknown:         "unknown",
	OpHalt:            "halt",
	OpClear:           "clear",
	OpReturn:          "return",
	OpSys:             "sys",
	OpJump:            "jump",
	OpCall:            "call",
	OpSkipEqualImm:    "skip-equal-imm",
	OpSkipNotEqualImm: "skip-not-equal-imm",
	OpSkipEqualReg:    "skip-equal-reg",
	OpLoadImm:         "load-imm",
	OpAddImm:          "add-imm",
	OpMove:            "move",
	OpOr:              "or",
	OpAnd:             "and",
	OpXor:             "xor",
	OpAddReg:          "add-reg",
	OpSub:             "sub",
	OpShiftRight:      "shift-right",
	OpSubReverse:      "sub-reverse",
	OpShiftLeft:       "shift-left",
	OpSkipNotEqualReg: "skip-not-equal-reg",
	OpLoadIndex:       "load-index",
	OpJumpOffset:      "jump-offset",
	OpRandom:          "random",
	OpDraw:            "draw",
	OpLoadDelay:       "load-delay",
	OpSetDelay:        "set-delay",
	OpSetSound:        "set-sound",
	OpAddIndex:        "add-index",
	OpStoreBCD:        "store-bcd",
	OpStoreRegisters:  "store-registers",
	OpLoadRegisters:   "load-registers",
}

func (o Op) String() string {
	if o >= opCount {
		return opNames[OpUnknown]
	}
	return opNames[o]
}

// IsSkip returns true if the operation conditionally skips the next instruction.
func (o Op) IsSkip() bool {
	switch o {
	case OpSkipEqualImm, OpSkipNotEqualImm, OpSkipEqualReg, OpSkipNotEqualReg:
		return true
	default:
		return false
	}
}

// IsControlFlow returns true if the operation overwrites the program counter
// instead of stepping over the instruction.
func (o Op) IsControlFlow() bool {
	switch o {
	case OpJump, OpCall, OpReturn, OpJumpOffset:
		return true
	default:
		return false
	}
}
