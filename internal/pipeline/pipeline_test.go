package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// drawProgram draws a single pixel at the top left corner and halts:
// LD I, $20A / LD V0, $00 / LD V1, $00 / DRW V0, V1, 1 / halt / sprite data
var drawProgram = []byte{0xA2, 0x0A, 0x60, 0x00, 0x61, 0x00, 0xD0, 0x11, 0x00, 0x00, 0x80, 0x00}

// loopProgram clears the screen once and then jumps to itself forever.
var loopProgram = []byte{0x00, 0xE0, 0x12, 0x02}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestNew(t *testing.T) {
	p := New(log.NewTestLogger(t))

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.detector)
	assert.NotNil(t, p.loader)
}

func TestExecute_Screenshot(t *testing.T) {
	p := New(log.NewTestLogger(t))

	screenshot := filepath.Join(t.TempDir(), "screen.png")
	opts := options.Program{
		Parameters: options.Parameters{
			Input:      createTempFile(t, "draw.ch8", drawProgram),
			Screenshot: screenshot,
		},
		Machine: options.Machine{Scale: 2},
	}

	assert.NoError(t, p.Execute(context.Background(), opts))

	f, err := os.Open(screenshot)
	assert.NoError(t, err)
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	assert.NoError(t, err)
	assert.Equal(t, chip8.ScreenWidth*2, img.Bounds().Dx())

	lit, _, _, _ := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xFFFF), lit)
	dark, _, _, _ := img.At(2, 0).RGBA()
	assert.Equal(t, uint32(0), dark)
}

func TestExecute_Errors(t *testing.T) {
	p := New(log.NewTestLogger(t))

	t.Run("unsupported system", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: createTempFile(t, "game.nes", drawProgram)},
		}
		err := p.Execute(context.Background(), opts)
		assert.ErrorContains(t, err, "unsupported system")
	})

	t.Run("missing file", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: filepath.Join(t.TempDir(), "missing.ch8")},
		}
		err := p.Execute(context.Background(), opts)

		var loadErr *chip8.LoadError
		assert.True(t, errors.As(err, &loadErr))
	})

	t.Run("oversized file", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: createTempFile(t, "big.ch8", make([]byte, chip8.MaxProgramSize+1))},
		}
		err := p.Execute(context.Background(), opts)

		var loadErr *chip8.LoadError
		assert.True(t, errors.As(err, &loadErr))
		assert.Equal(t, chip8.MaxProgramSize+1, loadErr.Size)
	})
}

func TestExecuteProgram_Halt(t *testing.T) {
	p := New(log.NewTestLogger(t))

	m, err := p.ExecuteProgram(context.Background(), drawProgram, options.Program{})
	assert.NoError(t, err)
	assert.True(t, m.Finished())
	assert.Nil(t, m.Fault())
	assert.True(t, m.Pixel(0, 0))
	assert.Equal(t, uint16(0x208), m.PC())
}

func TestExecuteProgram_Fault(t *testing.T) {
	p := New(log.NewTestLogger(t))

	m, err := p.ExecuteProgram(context.Background(), []byte{0x00, 0xEE}, options.Program{})
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
	assert.ErrorContains(t, err, "running program")
	assert.True(t, m.Finished())
}

func TestExecuteProgram_CycleLimit(t *testing.T) {
	p := New(log.NewTestLogger(t))

	opts := options.Program{
		Flags:   options.Flags{Trace: true},
		Machine: options.Machine{MaxCycles: 100, CycleRate: 100000},
	}
	m, err := p.ExecuteProgram(context.Background(), loopProgram, opts)
	assert.NoError(t, err)
	assert.False(t, m.Finished())
	assert.Equal(t, uint16(0x202), m.PC())
}

func TestExecuteProgram_Canceled(t *testing.T) {
	p := New(log.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m, err := p.ExecuteProgram(ctx, loopProgram, options.Program{})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, m.Finished())
}

func TestExecuteProgram_Step(t *testing.T) {
	r, w, err := os.Pipe()
	assert.NoError(t, err)
	defer func() { _ = r.Close() }()
	_, err = w.WriteString("\nq\n")
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	out := &bytes.Buffer{}
	p := New(log.NewTestLogger(t))
	p.in = r
	p.out = out

	opts := options.Program{Flags: options.Flags{Step: true}}
	m, err := p.ExecuteProgram(context.Background(), drawProgram, opts)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x204), m.PC())
	assert.Contains(t, out.String(), "LAST OP: $6000")
}
