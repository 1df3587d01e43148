package chip8

import (
	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 machine layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Reserved for the interpreter, kept zero
//	0x200-0xFFF: User program space (3584 bytes)
//
// The display buffer and the call stack are kept outside of the 4KB main
// memory address space.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the memory address where CHIP-8 programs are loaded
	// and where execution begins.
	ProgramStart = 0x200

	// MaxAddress is the highest valid address in CHIP-8 memory space.
	MaxAddress = 0xFFF

	// MaxProgramSize is the largest program image that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	// RegisterCount is the number of general-purpose V registers.
	RegisterCount = 0x10

	// FlagRegister is the index of VF, written by arithmetic, shift and draw opcodes.
	FlagRegister = 0xF

	// StackDepth is the number of return addresses the call stack can hold.
	StackDepth = 12

	// ScreenWidth and ScreenHeight are the framebuffer dimensions in pixels.
	ScreenWidth  = 64
	ScreenHeight = 32

	// ScreenSize is the number of framebuffer pixels.
	ScreenSize = ScreenWidth * ScreenHeight

	// PCStep is the size of one instruction in bytes.
	PCStep = 2

	// InstructionRate is the nominal instruction rate in Hz.
	InstructionRate = 500

	// TimerRate is the rate in Hz at which delay and sound timers count down.
	TimerRate = 60
)

// Machine contains the complete mutable state of a CHIP-8 interpreter.
// A Machine is not safe for concurrent use, it is owned by the loop that
// drives Cycle.
type Machine struct {
	memory [MemorySize]byte
	v      [RegisterCount]uint8
	i      uint16
	pc     uint16

	sp    uint8
	stack [StackDepth]uint16

	delayTimer uint8
	soundTimer uint8

	screen [ScreenSize]byte

	halted bool
	fault  error

	logger *log.Logger
	random RandomSource
}

// New returns a new zeroed machine with the program counter at ProgramStart.
func New(logger *log.Logger) *Machine {
	m := &Machine{
		logger: logger,
		random: NewRandomSource(0),
	}
	m.Reset()
	return m
}

// Reset returns the machine into its initial state. The logger and the
// random source are kept.
func (m *Machine) Reset() {
	m.memory = [MemorySize]byte{}
	m.v = [RegisterCount]uint8{}
	m.i = 0
	m.pc = ProgramStart
	m.sp = 0
	m.stack = [StackDepth]uint16{}
	m.delayTimer = 0
	m.soundTimer = 0
	m.screen = [ScreenSize]byte{}
	m.halted = false
	m.fault = nil
}

// Load resets the machine and copies the program image into memory at
// ProgramStart. An image that does not fit into memory is rejected with a
// *LoadError and the machine state is left untouched.
func (m *Machine) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return &LoadError{Size: len(program)}
	}

	m.Reset()
	copy(m.memory[ProgramStart:], program)
	return nil
}

// SetRandomSource sets the source used by the random opcode.
func (m *Machine) SetRandomSource(random RandomSource) {
	m.random = random
}

// Finished returns whether the machine is halted and must not be cycled further.
func (m *Machine) Finished() bool {
	return m.halted
}

// Fault returns the error that halted the machine, nil if the machine is
// running or was stopped by the halt instruction.
func (m *Machine) Fault() error {
	return m.fault
}

// TickTimers counts the delay and sound timers down by one, stopping at zero.
// It is expected to be called at TimerRate, independent of the instruction rate.
func (m *Machine) TickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// I returns the index register.
func (m *Machine) I() uint16 {
	return m.i
}

// SP returns the stack pointer, the number of return addresses on the stack.
func (m *Machine) SP() uint8 {
	return m.sp
}

// Register returns the value of register VX. Only the low nibble of x is used.
func (m *Machine) Register(x uint8) uint8 {
	return m.v[x&0xF]
}

// Registers returns a copy of the register file.
func (m *Machine) Registers() [RegisterCount]uint8 {
	return m.v
}

// Stack returns a copy of the return addresses currently on the stack,
// oldest first.
func (m *Machine) Stack() []uint16 {
	stack := make([]uint16, m.sp)
	copy(stack, m.stack[:m.sp])
	return stack
}

// DelayTimer returns the delay timer value.
func (m *Machine) DelayTimer() uint8 {
	return m.delayTimer
}

// SoundTimer returns the sound timer value. An external audio collaborator
// plays a tone while it is nonzero.
func (m *Machine) SoundTimer() uint8 {
	return m.soundTimer
}

// Framebuffer returns a copy of the framebuffer, one byte per pixel in
// row-major order. 0 is off, nonzero is on.
func (m *Machine) Framebuffer() [ScreenSize]byte {
	return m.screen
}

// Pixel returns whether the pixel at the given coordinates is set.
// Coordinates outside of the screen wrap around.
func (m *Machine) Pixel(x, y int) bool {
	x = ((x % ScreenWidth) + ScreenWidth) % ScreenWidth
	y = ((y % ScreenHeight) + ScreenHeight) % ScreenHeight
	return m.screen[y*ScreenWidth+x] != 0
}

// ReadMemory returns the byte at the given address, wrapping at MaxAddress.
func (m *Machine) ReadMemory(address uint16) byte {
	return m.memory[address&MaxAddress]
}
