// Package pipeline orchestrates loading and running a CHIP-8 program.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/debugger"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/scheduler"
	"github.com/retroenv/retrochip8/internal/snapshot"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete run workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader

	in  *os.File  // key input of the debugger
	out io.Writer // debugger output
}

// New creates a new run pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
		in:       os.Stdin,
		out:      os.Stdout,
	}
}

// Execute detects the system, loads the program file and runs it.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) error {
	system := p.detector.Detect(opts)
	if system != arch.CHIP8System {
		return fmt.Errorf("unsupported system '%s'", system)
	}

	program, err := p.loader.Load(opts.Input)
	if err != nil {
		return err
	}

	app.PrintInfo(p.logger, opts, system, len(program))

	_, err = p.ExecuteProgram(ctx, program, opts)
	return err
}

// ExecuteProgram runs an already loaded program image and returns the
// machine in its final state. This is useful for testing and programmatic
// usage where the program is already in memory.
// Reaching the cycle limit is a regular end of the run.
func (p *Pipeline) ExecuteProgram(ctx context.Context, program []byte, opts options.Program) (*chip8.Machine, error) {
	m := chip8.New(p.logger)
	m.SetRandomSource(chip8.NewRandomSource(opts.Seed))
	if err := m.Load(program); err != nil {
		return nil, err
	}

	cfg := scheduler.Config{
		CycleRate: opts.CycleRate,
		TimerRate: opts.TimerRate,
		MaxCycles: opts.MaxCycles,
	}
	if opts.Trace {
		cfg.OnCycle = func(word uint16) {
			p.logger.Debug("Executed",
				log.Hex("opcode", word),
				log.String("instruction", chip8.Disassemble(word)),
				log.Hex("next", m.PC()))
		}
	}
	sched := scheduler.New(m, cfg)

	var err error
	if opts.Step || len(opts.BreakAddresses) > 0 {
		err = p.runDebugger(ctx, m, sched, opts)
	} else {
		err = sched.Run(ctx)
	}

	if errors.Is(err, scheduler.ErrCycleLimit) {
		p.logger.Info("Cycle limit reached", log.Int("cycles", int(sched.Cycles())))
		err = nil
	}

	if opts.Screenshot != "" {
		if serr := snapshot.WriteFile(opts.Screenshot, m.Framebuffer(), max(opts.Scale, 1)); serr != nil {
			return m, fmt.Errorf("writing screenshot: %w", serr)
		}
		p.logger.Debug("Screenshot written", log.String("file", opts.Screenshot))
	}

	p.logger.Info("Execution finished",
		log.Int("cycles", int(sched.Cycles())),
		log.Int("timer_ticks", int(sched.Ticks())),
		log.Hex("pc", m.PC()),
		log.String("halted", fmt.Sprint(m.Finished())))

	if err != nil {
		return m, fmt.Errorf("running program: %w", err)
	}
	return m, nil
}

func (p *Pipeline) runDebugger(ctx context.Context, m *chip8.Machine, sched *scheduler.Scheduler, opts options.Program) error {
	terminal := debugger.NewTerminal(p.in)
	if err := terminal.MakeRaw(); err != nil {
		return err
	}
	defer func() {
		if err := terminal.Restore(); err != nil {
			p.logger.Error("Restoring terminal failed", log.Err(err))
		}
	}()

	d := debugger.New(p.logger, m, sched, terminal, terminal.Writer(p.out), debugger.Options{
		Stepping:    opts.Step,
		Breakpoints: opts.BreakAddresses,
	})
	return d.Run(ctx)
}
