// Package machine wires a CPU, its memory bus and an optional cartridge
// together, and drives them in a headless stepping loop.
package machine

import (
	"context"
	"fmt"

	"github.com/thelolagemann/sm83/internal/boot"
	"github.com/thelolagemann/sm83/internal/cartridge"
	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/mmu"
	"github.com/thelolagemann/sm83/pkg/log"
)

// StopReason describes why Run returned.
type StopReason uint8

const (
	// StopMaxSteps is returned once the step budget is spent.
	StopMaxSteps StopReason = iota
	// StopCancelled is returned when the context is done.
	StopCancelled
	// StopFault is returned when the CPU decodes an illegal opcode.
	StopFault
	// StopSelfLoop is returned when an instruction jumps to itself, the
	// usual way test ROMs signal that they are done.
	StopSelfLoop
	// StopHalted is returned when the CPU halts or stops with interrupts
	// disabled, as nothing could wake it again.
	StopHalted
)

func (r StopReason) String() string {
	switch r {
	case StopMaxSteps:
		return "step limit reached"
	case StopCancelled:
		return "cancelled"
	case StopFault:
		return "fault"
	case StopSelfLoop:
		return "self loop"
	case StopHalted:
		return "halted"
	}
	return fmt.Sprintf("StopReason(%d)", uint8(r))
}

// Result summarises a call to Run.
type Result struct {
	Steps  uint64
	Cycles uint64
	Reason StopReason
}

// Machine represents the assembled system. It is the main entry point for
// running programs.
type Machine struct {
	CPU       *cpu.CPU
	MMU       *mmu.MMU
	Cartridge *cartridge.Cartridge
	Boot      *boot.ROM

	log.Logger

	cpuOpts    []cpu.Opt
	startPC    uint16
	hasStartPC bool
	state      []byte
	bootROM    []byte
}

// New returns a new Machine. When rom is not nil a cartridge is built from
// it and mapped into the bus, otherwise the bus is a flat 64kB memory.
func New(rom []byte, opts ...Opt) (*Machine, error) {
	m := &Machine{
		MMU:    mmu.NewMMU(),
		Logger: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.MMU.Log = m.Logger

	if rom != nil {
		cart, err := cartridge.NewCartridge(rom, m.Logger)
		if err != nil {
			return nil, fmt.Errorf("loading cartridge: %w", err)
		}
		if err := cart.Validate(); err != nil {
			m.Errorf("cartridge header: %s", err)
		}
		m.Cartridge = cart
		m.MMU.AttachCartridge(cart)
	}

	if m.bootROM != nil {
		b, err := boot.LoadBootROM(m.bootROM)
		if err != nil {
			return nil, fmt.Errorf("loading boot rom: %w", err)
		}
		m.Infof("boot rom: %s (%s)", b.Model(), b.Checksum())
		m.Boot = b
		m.MMU.AttachBootROM(b)
		m.bootROM = nil
	}

	m.CPU = cpu.NewCPU(m.MMU, append([]cpu.Opt{cpu.WithLogger(m.Logger)}, m.cpuOpts...)...)
	m.setEntryPoint()

	if m.state != nil {
		if err := m.LoadState(m.state); err != nil {
			return nil, err
		}
		m.state = nil
	}

	return m, nil
}

// Step executes a single instruction, returning the clock cycles taken.
func (m *Machine) Step() (uint8, error) {
	return m.CPU.Step()
}

// Reset returns the CPU to its initial state and maps the boot ROM back
// in. Memory is left untouched.
func (m *Machine) Reset() {
	m.CPU.Reset()
	if m.Boot != nil {
		m.MMU.AttachBootROM(m.Boot)
	}
	m.setEntryPoint()
}

// setEntryPoint moves the PC to where execution starts: the start PC when
// given, else the boot ROM when mapped.
func (m *Machine) setEntryPoint() {
	switch {
	case m.hasStartPC:
		m.CPU.PC = m.startPC
	case m.Boot != nil:
		m.CPU.PC = 0x0000
	}
}

// Run steps the machine until maxSteps instructions have executed (zero
// means no limit), ctx is done, the CPU faults, or the program parks
// itself in a self loop or a halt that nothing can wake. ctx is only
// checked between instructions.
func (m *Machine) Run(ctx context.Context, maxSteps uint64) (Result, error) {
	var result Result
	start := m.CPU.Cycles()
	stop := func(reason StopReason) Result {
		result.Reason = reason
		result.Cycles = m.CPU.Cycles() - start
		return result
	}

	for maxSteps == 0 || result.Steps < maxSteps {
		if err := ctx.Err(); err != nil {
			return stop(StopCancelled), err
		}

		pc := m.CPU.PC
		if _, err := m.CPU.Step(); err != nil {
			return stop(StopFault), err
		}
		result.Steps++

		switch m.CPU.Mode() {
		case cpu.ModeHalt, cpu.ModeStop:
			if !m.CPU.IME {
				return stop(StopHalted), nil
			}
		case cpu.ModeNormal:
			if m.CPU.PC == pc {
				m.Debugf("self loop at %04X after %d steps", pc, result.Steps)
				return stop(StopSelfLoop), nil
			}
		}
	}

	return stop(StopMaxSteps), nil
}
