// Package app provides the informational output helpers of the interpreter.
package app

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("retrochip8", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// PrintInfo prints the information about the program that is going to run.
func PrintInfo(logger *log.Logger, opts options.Program, system arch.System, size int) {
	if opts.Quiet {
		return
	}

	logger.Info("Running Chip-8 program",
		log.String("file", opts.Input),
		log.Stringer("system", system),
		log.Int("size", size),
		log.Int("rate", opts.CycleRate),
	)
	if opts.MaxCycles > 0 {
		logger.Info("Cycle limit set", log.Int("cycles", int(opts.MaxCycles)))
	}
	if opts.Step {
		logger.Info("Single step mode enabled")
	}
}
