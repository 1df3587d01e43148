package chip8

// 6XNN
func (m *Machine) opLoadImm(ins Instruction) error {
	m.v[ins.X] = ins.Immediate
	m.step()
	return nil
}

// 7XNN: wraps around without touching the flag register.
func (m *Machine) opAddImm(ins Instruction) error {
	m.v[ins.X] += ins.Immediate
	m.step()
	return nil
}

// 8XY0
func (m *Machine) opMove(ins Instruction) error {
	m.v[ins.X] = m.v[ins.Y]
	m.step()
	return nil
}

// 8XY1
func (m *Machine) opOr(ins Instruction) error {
	m.v[ins.X] |= m.v[ins.Y]
	m.step()
	return nil
}

// 8XY2
func (m *Machine) opAnd(ins Instruction) error {
	m.v[ins.X] &= m.v[ins.Y]
	m.step()
	return nil
}

// 8XY3
func (m *Machine) opXor(ins Instruction) error {
	m.v[ins.X] ^= m.v[ins.Y]
	m.step()
	return nil
}

// 8XY4: VF is the 9th bit of the sum.
func (m *Machine) opAddReg(ins Instruction) error {
	sum := uint16(m.v[ins.X]) + uint16(m.v[ins.Y])
	m.v[ins.X] = uint8(sum)
	m.v[FlagRegister] = uint8(sum >> 8)
	m.step()
	return nil
}

// 8XY5: VF is 1 when no borrow occurred.
func (m *Machine) opSub(ins Instruction) error {
	vx, vy := m.v[ins.X], m.v[ins.Y]
	m.v[ins.X] = vx - vy
	m.v[FlagRegister] = notBorrow(vx, vy)
	m.step()
	return nil
}

// 8XY7: VF is 1 when no borrow occurred.
func (m *Machine) opSubReverse(ins Instruction) error {
	vx, vy := m.v[ins.X], m.v[ins.Y]
	m.v[ins.X] = vy - vx
	m.v[FlagRegister] = notBorrow(vy, vx)
	m.step()
	return nil
}

// 8XY6: shifts VY, VF receives the bit shifted out.
func (m *Machine) opShiftRight(ins Instruction) error {
	vy := m.v[ins.Y]
	m.v[FlagRegister] = vy & 0x01
	m.v[ins.X] = vy >> 1
	m.step()
	return nil
}

// 8XYE: shifts VY, VF receives the bit shifted out.
func (m *Machine) opShiftLeft(ins Instruction) error {
	vy := m.v[ins.Y]
	m.v[FlagRegister] = vy >> 7
	m.v[ins.X] = vy << 1
	m.step()
	return nil
}

// CXNN
func (m *Machine) opRandom(ins Instruction) error {
	m.v[ins.X] = m.random.Byte() & ins.Immediate
	m.step()
	return nil
}

func notBorrow(minuend, subtrahend uint8) uint8 {
	if minuend >= subtrahend {
		return 1
	}
	return 0
}
