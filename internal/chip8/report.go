package chip8

import (
	"fmt"
	"strings"
)

// Report renders the processor state together with the last executed
// instruction word as a human-readable multi-line text.
func (m *Machine) Report(lastWord uint16) string {
	var b strings.Builder

	b.WriteString("======= PROCESSOR STATE =======\n")
	fmt.Fprintf(&b, "LAST OP: $%04X  %s\n", lastWord, Disassemble(lastWord))

	b.WriteString("REGS:")
	for reg, value := range m.v {
		fmt.Fprintf(&b, " V%X:$%02X", reg, value)
	}
	b.WriteByte('\n')

	fmt.Fprintf(&b, "I: $%03X  PC: $%03X  SP: %d  DLY: $%02X  SND: $%02X\n",
		m.i, m.pc, m.sp, m.delayTimer, m.soundTimer)

	if m.sp > 0 {
		b.WriteString("STACK:\n")
		for level, address := range m.stack[:m.sp] {
			fmt.Fprintf(&b, "  %2d: $%03X\n", level, address)
		}
	}

	if m.halted {
		if m.fault != nil {
			fmt.Fprintf(&b, "HALTED: %v\n", m.fault)
		} else {
			b.WriteString("HALTED\n")
		}
	}
	return b.String()
}
