package chip8

import (
	"errors"
	"fmt"
)

// Fatal interpreter faults. A machine that hits one of them is halted.
var (
	ErrHalted         = errors.New("machine is halted")
	ErrStackOverflow  = errors.New("call stack overflow")
	ErrStackUnderflow = errors.New("call stack underflow")
	ErrInvalidAddress = errors.New("address out of range")
)

// LoadError is returned when a program image can not be loaded, either
// because it could not be read or because it does not fit into memory.
type LoadError struct {
	Path string // source of the image, empty for in-memory images
	Size int    // image size in bytes, 0 if unknown
	Err  error  // underlying read error, nil for oversized images
}

func (e *LoadError) Error() string {
	name := e.Path
	if name == "" {
		name = "program"
	}
	if e.Err != nil {
		return fmt.Sprintf("loading %s: %v", name, e.Err)
	}
	if e.Size == 0 {
		return fmt.Sprintf("loading %s: image exceeds the maximum of %d bytes", name, MaxProgramSize)
	}
	return fmt.Sprintf("loading %s: image size %d exceeds the maximum of %d bytes",
		name, e.Size, MaxProgramSize)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
