// Command sm83run loads a ROM and runs it headless until the program parks
// itself, faults or runs out of steps. The final registers are logged and
// the machine state can be saved for a later run.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/machine"
	"github.com/thelolagemann/sm83/pkg/log"
	"github.com/thelolagemann/sm83/pkg/utils"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("sm83run", flag.ContinueOnError)
	configFile := fs.String("config", "", "YAML config file, flags override its values")
	romFile := fs.String("rom", "", "The rom file to load")
	bootROM := fs.String("boot", "", "The boot rom file to load")
	state := fs.String("state", "", "The state file to load")
	saveState := fs.String("save-state", "", "Where to save the state once the run stops")
	maxSteps := fs.Uint64("max-steps", 0, "Maximum instructions to run, 0 for no limit")
	startPC := fs.String("start-pc", "", "Start address, e.g. 0x0150")
	postBoot := fs.Bool("post-boot", false, "Start with the registers the boot ROM leaves behind")
	trace := fs.Bool("trace", false, "Log every executed instruction")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	timeout := fs.Duration("timeout", 0, "Stop the run after this long, 0 for no limit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := &machine.Config{}
	if *configFile != "" {
		var err error
		if cfg, err = machine.LoadConfig(*configFile); err != nil {
			return err
		}
	}

	// only flags given on the command line override the config file
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rom":
			cfg.ROM = *romFile
		case "boot":
			cfg.BootROM = *bootROM
		case "state":
			cfg.State = *state
		case "save-state":
			cfg.SaveState = *saveState
		case "max-steps":
			cfg.MaxSteps = *maxSteps
		case "start-pc":
			pc, err := strconv.ParseUint(*startPC, 0, 16)
			if err != nil {
				flagErr = fmt.Errorf("invalid start-pc %q: %w", *startPC, err)
				return
			}
			v := uint16(pc)
			cfg.StartPC = &v
		case "post-boot":
			cfg.PostBoot = *postBoot
		case "trace":
			cfg.Trace = *trace
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if flagErr != nil {
		return flagErr
	}

	if cfg.Trace && cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := log.NewWithLevel(level)

	rom, err := utils.LoadFile(cfg.ROM)
	if err != nil {
		return fmt.Errorf("reading rom: %w", err)
	}
	opts, err := cfg.Options(logger)
	if err != nil {
		return err
	}
	m, err := machine.New(rom, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	start := time.Now()
	result, runErr := m.Run(ctx, cfg.MaxSteps)
	elapsed := time.Since(start)

	logger.Infof("stopped (%s) after %d steps, %d cycles in %s", result.Reason, result.Steps, result.Cycles, elapsed.Round(time.Millisecond))
	logger.Infof("PC:%04X SP:%04X %s IME:%v", m.CPU.PC, m.CPU.SP, m.CPU.Registers.String(), m.CPU.IME)
	if level >= logrus.DebugLevel && elapsed > 0 {
		logger.Debugf("%.2fx realtime", float64(result.Cycles)/elapsed.Seconds()/cpu.ClockSpeed)
	}

	if cfg.SaveState != "" {
		if err := m.SaveStateToFile(cfg.SaveState); err != nil {
			return err
		}
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, context.DeadlineExceeded) {
		return runErr
	}
	return nil
}
