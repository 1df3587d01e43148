package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// fixedRandom always returns the same byte.
type fixedRandom uint8

func (f fixedRandom) Byte() uint8 {
	return uint8(f)
}

// newTestMachine creates a machine with the given instruction words loaded
// at the program start.
func newTestMachine(t *testing.T, words ...uint16) *Machine {
	t.Helper()

	m := New(log.NewTestLogger(t))
	assert.NoError(t, m.Load(encode(words...)))
	return m
}

func encode(words ...uint16) []byte {
	data := make([]byte, 0, len(words)*2)
	for _, word := range words {
		data = append(data, byte(word>>8), byte(word))
	}
	return data
}

// mustCycle executes one instruction and fails the test on a fault.
func mustCycle(t *testing.T, m *Machine) uint16 {
	t.Helper()

	word, err := m.Cycle()
	assert.NoError(t, err)
	return word
}
