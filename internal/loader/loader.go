// Package loader handles program image loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Loader handles loading raw CHIP-8 program images from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the raw program image from the given file.
// Missing, unreadable and oversized files are reported as *chip8.LoadError.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &chip8.LoadError{Path: path, Err: err}
	}
	defer func() { _ = file.Close() }()

	data, err := l.LoadFromReader(path, file)
	var loadErr *chip8.LoadError
	if errors.As(err, &loadErr) && loadErr.Err == nil {
		if info, serr := file.Stat(); serr == nil {
			loadErr.Size = int(info.Size())
		}
	}
	return data, err
}

// LoadFromReader reads a raw program image from a reader. The name is only
// used for error reporting. At most one byte more than the maximum program
// size is read, so oversized input is rejected without buffering it.
func (l *Loader) LoadFromReader(name string, r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, chip8.MaxProgramSize+1))
	if err != nil {
		return nil, &chip8.LoadError{Path: name, Err: fmt.Errorf("reading image: %w", err)}
	}
	if len(data) > chip8.MaxProgramSize {
		// the real size is unknown, reading stopped after the limit
		return nil, &chip8.LoadError{Path: name}
	}
	return data, nil
}
