// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/scheduler"
	"github.com/retroenv/retrogolib/arch"
)

const maxScale = 64

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.Usage = func() {} // printed by UsageError.ShowUsage
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <program to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.System = strings.ToLower(opts.System)
	if opts.System != "" {
		if system, _ := arch.SystemFromString(opts.System); system == "" {
			return fmt.Errorf("unsupported system '%s'", opts.System)
		}
	}

	if opts.CycleRate <= 0 || opts.CycleRate > scheduler.MaxRate {
		return fmt.Errorf("invalid instruction rate %d, valid range: 1-%d", opts.CycleRate, scheduler.MaxRate)
	}
	if opts.TimerRate <= 0 || opts.TimerRate > scheduler.MaxRate {
		return fmt.Errorf("invalid timer rate %d, valid range: 1-%d", opts.TimerRate, scheduler.MaxRate)
	}
	if opts.Scale < 1 || opts.Scale > maxScale {
		return fmt.Errorf("invalid screenshot scale %d, valid range: 1-%d", opts.Scale, maxScale)
	}

	addresses, err := parseBreakpoints(opts.Breakpoints)
	if err != nil {
		return err
	}
	opts.BreakAddresses = addresses
	return nil
}

// parseBreakpoints parses a comma separated list of hex addresses.
// Addresses can be prefixed with $ or 0x.
func parseBreakpoints(list string) ([]uint16, error) {
	var addresses []uint16
	for item := range strings.SplitSeq(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		s := strings.TrimPrefix(item, "$")
		s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		value, err := strconv.ParseUint(s, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("parsing breakpoint '%s': %w", item, err)
		}
		if value > chip8.MaxAddress {
			return nil, fmt.Errorf("breakpoint '%s' is outside of memory", item)
		}
		addresses = append(addresses, uint16(value))
	}
	return addresses, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input CHIP-8 program file")
	flags.StringVar(&opts.Screenshot, "screenshot", "", "write the final framebuffer as PNG to this file")
	flags.StringVar(&opts.System, "s", "", "system to run (chip8) - if not auto-detected from file extension")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction")
	flags.BoolVar(&opts.Step, "step", false, "single-step through the program, printing the state after each instruction")
	flags.StringVar(&opts.Breakpoints, "break", "", "comma separated list of hex addresses to stop at, for example 0x2A4,0x300")
	flags.Uint64Var(&opts.MaxCycles, "cycles", 0, "stop after this many instructions (0: unlimited)")
	flags.IntVar(&opts.CycleRate, "rate", chip8.InstructionRate, "instructions per second")
	flags.IntVar(&opts.TimerRate, "timer-rate", chip8.TimerRate, "delay and sound timer ticks per second")
	flags.Uint64Var(&opts.Seed, "seed", 0, "random number seed for reproducible runs, 0 for a random seed")
	flags.IntVar(&opts.Scale, "scale", 8, "pixel scale factor of the screenshot")
}
