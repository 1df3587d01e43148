package chip8

// ANNN
func (m *Machine) opLoadIndex(ins Instruction) error {
	m.i = ins.Address
	m.step()
	return nil
}

// FX1E
func (m *Machine) opAddIndex(ins Instruction) error {
	m.i = (m.i + uint16(m.v[ins.X])) & MaxAddress
	m.step()
	return nil
}

// FX07
func (m *Machine) opLoadDelay(ins Instruction) error {
	m.v[ins.X] = m.delayTimer
	m.step()
	return nil
}

// FX15
func (m *Machine) opSetDelay(ins Instruction) error {
	m.delayTimer = m.v[ins.X]
	m.step()
	return nil
}

// FX18
func (m *Machine) opSetSound(ins Instruction) error {
	m.soundTimer = m.v[ins.X]
	m.step()
	return nil
}

// FX33: hundreds, tens and ones digit of VX at I, I+1 and I+2.
func (m *Machine) opStoreBCD(ins Instruction) error {
	value := m.v[ins.X]
	m.writeMemory(m.i, value/100)
	m.writeMemory(m.i+1, value/10%10)
	m.writeMemory(m.i+2, value%10)
	m.step()
	return nil
}

// FX55: I is left unchanged.
func (m *Machine) opStoreRegisters(ins Instruction) error {
	for reg := uint16(0); reg <= uint16(ins.X); reg++ {
		m.writeMemory(m.i+reg, m.v[reg])
	}
	m.step()
	return nil
}

// FX65: I is left unchanged.
func (m *Machine) opLoadRegisters(ins Instruction) error {
	for reg := uint16(0); reg <= uint16(ins.X); reg++ {
		m.v[reg] = m.ReadMemory(m.i + reg)
	}
	m.step()
	return nil
}

// DXYN: sprites are clipped at the screen edges, the start position wraps.
func (m *Machine) opDraw(ins Instruction) error {
	x0 := int(m.v[ins.X]) % ScreenWidth
	y0 := int(m.v[ins.Y]) % ScreenHeight

	var collision uint8
	for row := range int(ins.Count) {
		y := y0 + row
		if y >= ScreenHeight {
			break
		}

		sprite := m.ReadMemory(m.i + uint16(row))
		for col := range 8 {
			x := x0 + col
			if x >= ScreenWidth {
				break
			}
			if sprite&(0x80>>col) == 0 {
				continue
			}

			pixel := &m.screen[y*ScreenWidth+x]
			if *pixel != 0 {
				collision = 1
			}
			*pixel ^= 1
		}
	}

	m.v[FlagRegister] = collision
	m.step()
	return nil
}

func (m *Machine) writeMemory(address uint16, value byte) {
	m.memory[address&MaxAddress] = value
}
