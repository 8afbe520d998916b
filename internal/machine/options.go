package machine

import (
	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/pkg/log"
)

// Opt is a function that modifies a Machine instance.
type Opt func(m *Machine)

// Debug traces every executed instruction at debug level.
func Debug() Opt {
	return func(m *Machine) {
		m.cpuOpts = append(m.cpuOpts, cpu.Debug())
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(l log.Logger) Opt {
	return func(m *Machine) {
		m.Logger = l
	}
}

// WithPostBootState starts the CPU with the registers the boot ROM
// leaves behind.
func WithPostBootState() Opt {
	return func(m *Machine) {
		m.cpuOpts = append(m.cpuOpts, cpu.WithPostBootState())
	}
}

// WithStartPC starts execution at pc instead of the cartridge entry point.
func WithStartPC(pc uint16) Opt {
	return func(m *Machine) {
		m.startPC = pc
		m.hasStartPC = true
	}
}

// WithMemory copies data into the bus at address before the cartridge is
// attached. Used to run bare programs without a cartridge.
func WithMemory(address uint16, data []byte) Opt {
	return func(m *Machine) {
		m.MMU.Copy(address, data)
	}
}

// WithState restores a state produced by SaveState once the machine is
// assembled.
func WithState(b []byte) Opt {
	return func(m *Machine) {
		m.state = b
	}
}

// WithBootROM runs the given boot ROM from 0x0000 before handing over to
// the cartridge, instead of starting at the entry point.
func WithBootROM(rom []byte) Opt {
	return func(m *Machine) {
		m.bootROM = rom
	}
}
