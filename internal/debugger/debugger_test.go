package debugger

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/scheduler"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// keyQueue returns the queued keys and io.EOF once they are used up.
type keyQueue struct {
	keys []byte
	read int
}

func (k *keyQueue) ReadKey() (byte, error) {
	if k.read >= len(k.keys) {
		return 0, io.EOF
	}
	key := k.keys[k.read]
	k.read++
	return key, nil
}

// program: LD V0, $01 / LD V1, $02 / LD V2, $03 / halt
var straightProgram = []byte{0x60, 0x01, 0x61, 0x02, 0x62, 0x03, 0x00, 0x00}

func newTestDebugger(t *testing.T, program []byte, keys string, opts Options) (*Debugger, *chip8.Machine, *bytes.Buffer, *keyQueue) {
	t.Helper()

	logger := log.NewTestLogger(t)
	m := chip8.New(logger)
	assert.NoError(t, m.Load(program))

	queue := &keyQueue{keys: []byte(keys)}
	out := &bytes.Buffer{}
	d := New(logger, m, scheduler.New(m, scheduler.Config{}), queue, out, opts)
	return d, m, out, queue
}

func TestDebugger_StepToHalt(t *testing.T) {
	d, m, out, queue := newTestDebugger(t, straightProgram, "sss", Options{Stepping: true})

	assert.NoError(t, d.Run(context.Background()))
	assert.True(t, m.Finished())
	assert.Equal(t, 3, queue.read)
	assert.Equal(t, 4, strings.Count(out.String(), "PROCESSOR STATE"))
	assert.Contains(t, out.String(), "HALTED")
	assert.Equal(t, uint8(3), m.Register(2))
}

func TestDebugger_Quit(t *testing.T) {
	d, m, out, _ := newTestDebugger(t, straightProgram, "q", Options{Stepping: true})

	assert.NoError(t, d.Run(context.Background()))
	assert.False(t, m.Finished())
	assert.Equal(t, uint16(0x202), m.PC())
	assert.Equal(t, 1, strings.Count(out.String(), "PROCESSOR STATE"))
}

func TestDebugger_EndOfInputQuits(t *testing.T) {
	d, m, _, _ := newTestDebugger(t, straightProgram, "", Options{Stepping: true})

	assert.NoError(t, d.Run(context.Background()))
	assert.Equal(t, uint16(0x202), m.PC())
}

func TestDebugger_ContinueRunsToHalt(t *testing.T) {
	d, m, out, _ := newTestDebugger(t, straightProgram, "c", Options{Stepping: true})

	assert.NoError(t, d.Run(context.Background()))
	assert.True(t, m.Finished())
	assert.Equal(t, 2, strings.Count(out.String(), "PROCESSOR STATE"))
}

func TestDebugger_Breakpoint(t *testing.T) {
	d, m, out, _ := newTestDebugger(t, straightProgram, "c", Options{
		Breakpoints: []uint16{0x204},
	})

	assert.NoError(t, d.Run(context.Background()))
	assert.True(t, m.Finished())
	assert.Contains(t, out.String(), "BREAKPOINT at $204")
	assert.Contains(t, out.String(), "LAST OP: $6102")
}

func TestDebugger_BreakpointAtStart(t *testing.T) {
	d, m, out, _ := newTestDebugger(t, straightProgram, "q", Options{
		Breakpoints: []uint16{chip8.ProgramStart},
	})

	assert.NoError(t, d.Run(context.Background()))
	assert.Contains(t, out.String(), "BREAKPOINT at $200")
	assert.Equal(t, uint16(chip8.ProgramStart), m.PC())
}

func TestDebugger_BreakpointThenStep(t *testing.T) {
	d, m, _, queue := newTestDebugger(t, straightProgram, "sq", Options{
		Breakpoints: []uint16{0x202},
	})

	assert.NoError(t, d.Run(context.Background()))
	assert.Equal(t, 2, queue.read)
	assert.Equal(t, uint16(0x204), m.PC())
	assert.Equal(t, uint8(2), m.Register(1))
	assert.Equal(t, uint8(0), m.Register(2))
}

func TestDebugger_Fault(t *testing.T) {
	// RET with an empty stack
	d, m, out, _ := newTestDebugger(t, []byte{0x00, 0xEE}, "", Options{})

	err := d.Run(context.Background())
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
	assert.True(t, m.Finished())
	assert.Contains(t, out.String(), "HALTED: ")
}

func TestDebugger_Canceled(t *testing.T) {
	d, m, _, _ := newTestDebugger(t, straightProgram, "", Options{Stepping: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, uint16(chip8.ProgramStart), m.PC())
}
