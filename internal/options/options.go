// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input      string `flag:"i" usage:"input CHIP-8 program file"`
	Screenshot string `flag:"screenshot" usage:"write the final framebuffer as PNG to this file"`
}

// Flags contains behavior options.
type Flags struct {
	System string `flag:"s" usage:"target system: chip8 (default: auto-detect)"`
	Debug  bool   `flag:"debug" usage:"enable debug logging"`
	Quiet  bool   `flag:"q" usage:"quiet mode"`
	Trace  bool   `flag:"trace" usage:"log every executed instruction"`
	Step   bool   `flag:"step" usage:"single-step through the program, printing the state after each instruction"`
}

// Machine contains interpreter pacing options.
type Machine struct {
	Breakpoints string `flag:"break" usage:"comma separated list of hex addresses to stop at"`
	MaxCycles   uint64 `flag:"cycles" usage:"stop after this many instructions (0: unlimited)"`
	CycleRate   int    `flag:"rate" usage:"instructions per second" default:"500"`
	TimerRate   int    `flag:"timer-rate" usage:"timer ticks per second" default:"60"`
	Seed        uint64 `flag:"seed" usage:"random number seed, 0 for a random seed"`
	Scale       int    `flag:"scale" usage:"pixel scale factor of the screenshot" default:"8"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	Machine

	BreakAddresses []uint16 // parsed from Breakpoints
}
