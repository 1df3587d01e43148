package debugger

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const keyInterrupt = 0x03 // Ctrl+C in raw mode

// KeyReader returns single key presses.
type KeyReader interface {
	ReadKey() (byte, error)
}

// Terminal reads keys from a file, usually stdin. If the file is a terminal
// it can be switched to raw mode so that every key press is returned without
// waiting for Enter. Otherwise input is read line by line and the first
// character of every line is the key.
type Terminal struct {
	in     *os.File
	reader *bufio.Reader
	state  *term.State
}

// NewTerminal returns a key reader for the given file.
func NewTerminal(in *os.File) *Terminal {
	return &Terminal{
		in:     in,
		reader: bufio.NewReader(in),
	}
}

// MakeRaw switches the terminal to raw mode, it does nothing if the input
// is not a terminal.
func (t *Terminal) MakeRaw() error {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting terminal raw mode: %w", err)
	}
	t.state = state
	return nil
}

// Raw returns whether the terminal is in raw mode.
func (t *Terminal) Raw() bool {
	return t.state != nil
}

// Restore restores the terminal state saved by MakeRaw.
func (t *Terminal) Restore() error {
	if t.state == nil {
		return nil
	}

	err := term.Restore(int(t.in.Fd()), t.state)
	t.state = nil
	if err != nil {
		return fmt.Errorf("restoring terminal state: %w", err)
	}
	return nil
}

// ReadKey returns the next key press. An empty input line is returned as
// a newline key.
func (t *Terminal) ReadKey() (byte, error) {
	if t.Raw() {
		b, err := t.reader.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("reading key: %w", err)
		}
		if b == keyInterrupt {
			return KeyQuit, nil
		}
		return b, nil
	}

	line, err := t.reader.ReadString('\n')
	if err != nil && (line == "" || err != io.EOF) {
		return 0, fmt.Errorf("reading key: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return '\n', nil
	}
	return line[0], nil
}

// Writer returns an output writer matching the terminal mode. In raw mode
// the terminal does not translate newlines into carriage return and
// newline anymore.
func (t *Terminal) Writer(w io.Writer) io.Writer {
	if !t.Raw() {
		return w
	}
	return crlfWriter{w: w}
}

type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
