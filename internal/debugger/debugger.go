// Package debugger implements an interactive single step runner with
// breakpoint support.
package debugger

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Keys understood by the debugger, any other key executes the next instruction.
const (
	KeyQuit     = 'q'
	KeyContinue = 'c'
)

const helpText = "keys: q = quit, c = continue until the next breakpoint, any other key = step\n"

// Machine is the machine state view used for the debugger output.
type Machine interface {
	PC() uint16
	Finished() bool
	Report(lastWord uint16) string
}

// Stepper executes a single instruction.
type Stepper interface {
	Step() (uint16, error)
}

// Options configures the debugger.
type Options struct {
	Stepping    bool     // start in single step mode
	Breakpoints []uint16 // addresses to stop at before executing them
}

// Debugger runs a machine one instruction at a time, printing the
// processor state after every executed instruction.
type Debugger struct {
	logger      *log.Logger
	machine     Machine
	stepper     Stepper
	keys        KeyReader
	out         io.Writer
	stepping    bool
	breakpoints set.Set[uint16]
}

// New returns a new debugger.
func New(logger *log.Logger, machine Machine, stepper Stepper, keys KeyReader, out io.Writer, opts Options) *Debugger {
	breakpoints := set.New[uint16]()
	for _, address := range opts.Breakpoints {
		breakpoints.Add(address)
	}

	return &Debugger{
		logger:      logger,
		machine:     machine,
		stepper:     stepper,
		keys:        keys,
		out:         out,
		stepping:    opts.Stepping,
		breakpoints: breakpoints,
	}
}

// Run executes the machine until it halts, the user quits or the context
// is canceled. A fatal fault of the machine is returned as error.
func (d *Debugger) Run(ctx context.Context) error {
	d.print(helpText)

	var lastWord uint16
	resumed := false

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		pc := d.machine.PC()
		if !d.stepping && !resumed && d.breakpoints.Contains(pc) {
			d.logger.Debug("Breakpoint hit", log.Hex("address", pc))
			d.print(fmt.Sprintf("BREAKPOINT at $%03X\n", pc))
			d.print(d.machine.Report(lastWord))
			d.stepping = true

			quit, err := d.waitForKey()
			if err != nil || quit {
				return err
			}
		}
		resumed = false

		word, err := d.stepper.Step()
		if err != nil {
			if errors.Is(err, chip8.ErrHalted) {
				return nil
			}
			if d.machine.Finished() {
				d.print(d.machine.Report(word))
			}
			return err
		}
		lastWord = word

		if d.machine.Finished() {
			d.print(d.machine.Report(word))
			return nil
		}
		if !d.stepping {
			continue
		}

		d.print(d.machine.Report(word))
		quit, err := d.waitForKey()
		if err != nil || quit {
			return err
		}
		resumed = !d.stepping
	}
}

// waitForKey reads the next key and updates the stepping mode.
// It returns true if the user wants to quit.
func (d *Debugger) waitForKey() (bool, error) {
	key, err := d.keys.ReadKey()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		return true, err
	}

	switch key {
	case KeyQuit:
		return true, nil
	case KeyContinue:
		d.stepping = false
	}
	return false, nil
}

func (d *Debugger) print(s string) {
	if _, err := io.WriteString(d.out, s); err != nil {
		d.logger.Error("Writing debugger output failed", log.Err(err))
	}
}
