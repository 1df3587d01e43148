package chip8

// Instruction is the decoded view of one fetched 16-bit instruction word.
type Instruction struct {
	Word      uint16
	Nibbles   [4]uint8 // most significant first
	Address   uint16   // NNN, lower 12 bits
	Immediate uint8    // NN, lower 8 bits
	X         uint8    // second nibble, register index
	Y         uint8    // third nibble, register index
	Count     uint8    // N, lowest nibble
	Op        Op
}

// Decode splits an instruction word into its fields and identifies the
// operation. Every word decodes, words that match no supported pattern get
// OpUnknown.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Word: word,
		Nibbles: [4]uint8{
			uint8(word >> 12),
			uint8(word>>8) & 0xF,
			uint8(word>>4) & 0xF,
			uint8(word) & 0xF,
		},
		Address:   word & 0x0FFF,
		Immediate: uint8(word),
		X:         uint8(word>>8) & 0xF,
		Y:         uint8(word>>4) & 0xF,
		Count:     uint8(word) & 0xF,
	}
	ins.Op = decodeOp(ins)
	return ins
}

// decodeOp matches full words first, then the first nibble, using the last
// nibble or the low byte as sub-selector inside the 0x0, 0x8 and 0xF families.
func decodeOp(ins Instruction) Op {
	switch ins.Word {
	case 0x0000:
		return OpHalt
	case 0x00E0:
		return OpClear
	case 0x00EE:
		return OpReturn
	}

	switch ins.Nibbles[0] {
	case 0x0:
		return OpSys
	case 0x1:
		return OpJump
	case 0x2:
		return OpCall
	case 0x3:
		return OpSkipEqualImm
	case 0x4:
		return OpSkipNotEqualImm
	case 0x5:
		if ins.Count == 0 {
			return OpSkipEqualReg
		}
	case 0x6:
		return OpLoadImm
	case 0x7:
		return OpAddImm
	case 0x8:
		return decodeALU(ins.Count)
	case 0x9:
		if ins.Count == 0 {
			return OpSkipNotEqualReg
		}
	case 0xA:
		return OpLoadIndex
	case 0xB:
		return OpJumpOffset
	case 0xC:
		return OpRandom
	case 0xD:
		return OpDraw
	case 0xF:
		return decodeMisc(ins.Immediate)
	}
	return OpUnknown
}

func decodeALU(selector uint8) Op {
	switch selector {
	case 0x0:
		return OpMove
	case 0x1:
		return OpOr
	case 0x2:
		return OpAnd
	case 0x3:
		return OpXor
	case 0x4:
		return OpAddReg
	case 0x5:
		return OpSub
	case 0x6:
		return OpShiftRight
	case 0x7:
		return OpSubReverse
	case 0xE:
		return OpShiftLeft
	default:
		return OpUnknown
	}
}

func decodeMisc(selector uint8) Op {
	switch selector {
	case 0x07:
		return OpLoadDelay
	case 0x15:
		return OpSetDelay
	case 0x18:
		return OpSetSound
	case 0x1E:
		return OpAddIndex
	case 0x33:
		return OpStoreBCD
	case 0x55:
		return OpStoreRegisters
	case 0x65:
		return OpLoadRegisters
	default:
		return OpUnknown
	}
}
