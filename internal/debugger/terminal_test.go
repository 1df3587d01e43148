package debugger

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTerminal_ReadKeyLineMode(t *testing.T) {
	r, w, err := os.Pipe()
	assert.NoError(t, err)
	defer func() { _ = r.Close() }()

	_, err = w.WriteString("c\n\nquit\r\nx")
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	term := NewTerminal(r)
	assert.NoError(t, term.MakeRaw())
	assert.False(t, term.Raw())

	for _, expected := range []byte{'c', '\n', 'q', 'x'} {
		key, err := term.ReadKey()
		assert.NoError(t, err)
		assert.Equal(t, expected, key)
	}

	_, err = term.ReadKey()
	assert.Error(t, err)
	assert.NoError(t, term.Restore())
}

func TestTerminal_Writer(t *testing.T) {
	var buf bytes.Buffer
	term := &Terminal{}
	assert.True(t, term.Writer(&buf) == io.Writer(&buf))

	w := crlfWriter{w: &buf}
	n, err := w.Write([]byte("a\nb\n"))
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "a\r\nb\r\n", buf.String())
}
