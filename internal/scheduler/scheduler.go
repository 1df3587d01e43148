// Package scheduler paces a CHIP-8 machine: instructions run at the
// instruction rate and timers count down at the timer rate, both on one
// shared timeline.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// ErrCycleLimit is returned when the configured maximum number of cycles ran.
var ErrCycleLimit = errors.New("cycle limit reached")

// MaxRate is the highest cycle or timer rate in Hz, one event per
// nanosecond of the timeline. Higher rates are clamped to it.
const MaxRate = int(time.Second)

// Machine is the part of the interpreter that the scheduler drives.
type Machine interface {
	Cycle() (uint16, error)
	TickTimers()
	Finished() bool
}

// Clock returns the current time. It is swapped out in tests to make the
// real-time loop deterministic.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Config defines the pacing of the scheduler. Zero values select the defaults.
type Config struct {
	CycleRate int           // instructions per second, default chip8.InstructionRate
	TimerRate int           // timer ticks per second, default chip8.TimerRate
	MaxCycles uint64        // stop after this many cycles, 0 for no limit
	Frame     time.Duration // wake-up interval of Run, default 1/60s
	Clock     Clock         // time source of Run, default system clock

	OnCycle func(word uint16) // called after every successfully executed cycle
}

// Scheduler executes cycles and timer ticks of a machine in time order.
type Scheduler struct {
	machine Machine
	cfg     Config

	cycleInterval time.Duration
	timerInterval time.Duration

	now       time.Duration // virtual time that has been processed
	nextCycle time.Duration
	nextTick  time.Duration

	cycles uint64
	ticks  uint64
}

// New returns a new scheduler for the given machine.
func New(machine Machine, cfg Config) *Scheduler {
	if cfg.CycleRate <= 0 {
		cfg.CycleRate = chip8.InstructionRate
	}
	if cfg.TimerRate <= 0 {
		cfg.TimerRate = chip8.TimerRate
	}
	cfg.CycleRate = min(cfg.CycleRate, MaxRate)
	cfg.TimerRate = min(cfg.TimerRate, MaxRate)
	if cfg.Frame <= 0 {
		cfg.Frame = time.Second / 60
	}
	if cfg.Clock == nil {
		cfg.Clock = systemClock{}
	}

	s := &Scheduler{
		machine:       machine,
		cfg:           cfg,
		cycleInterval: time.Second / time.Duration(cfg.CycleRate),
		timerInterval: time.Second / time.Duration(cfg.TimerRate),
	}
	s.nextTick = s.timerInterval
	return s
}

// Cycles returns the number of executed cycles.
func (s *Scheduler) Cycles() uint64 {
	return s.cycles
}

// Ticks returns the number of timer ticks.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// Elapsed returns the virtual time processed so far.
func (s *Scheduler) Elapsed() time.Duration {
	return s.now
}

// Advance moves the timeline forward by elapsed and runs every cycle and
// timer tick that falls into the interval. On equal times the timer tick
// runs first. It returns the number of executed cycles and stops early when
// the machine halts, faults or the cycle limit is reached.
func (s *Scheduler) Advance(elapsed time.Duration) (int, error) {
	target := s.now + elapsed
	executed := 0

	for !s.machine.Finished() {
		if s.nextTick <= s.nextCycle {
			if s.nextTick >= target {
				break
			}
			s.tick()
			continue
		}

		if s.nextCycle >= target {
			break
		}
		if s.limitReached() {
			return executed, ErrCycleLimit
		}
		if _, err := s.cycle(); err != nil {
			return executed, err
		}
		executed++
	}

	s.now = target
	return executed, nil
}

// Step moves the timeline to the next cycle, runs the timer ticks that are
// due until then and executes exactly one cycle.
func (s *Scheduler) Step() (uint16, error) {
	if s.machine.Finished() {
		return 0, chip8.ErrHalted
	}
	if s.limitReached() {
		return 0, ErrCycleLimit
	}

	for s.nextTick <= s.nextCycle {
		s.tick()
	}
	s.now = s.nextCycle
	return s.cycle()
}

// Run executes the machine in real time until it halts, faults, reaches the
// cycle limit or the context is canceled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Frame)
	defer ticker.Stop()

	last := s.cfg.Clock.Now()
	for !s.machine.Finished() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		now := s.cfg.Clock.Now()
		if _, err := s.Advance(now.Sub(last)); err != nil {
			return err
		}
		last = now
	}
	return nil
}

func (s *Scheduler) cycle() (uint16, error) {
	word, err := s.machine.Cycle()
	s.cycles++
	s.nextCycle += s.cycleInterval
	if err != nil {
		return word, err
	}

	if s.cfg.OnCycle != nil {
		s.cfg.OnCycle(word)
	}
	return word, nil
}

func (s *Scheduler) tick() {
	s.machine.TickTimers()
	s.ticks++
	s.nextTick += s.timerInterval
}

func (s *Scheduler) limitReached() bool {
	return s.cfg.MaxCycles > 0 && s.cycles >= s.cfg.MaxCycles
}
