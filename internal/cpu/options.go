package cpu

import "github.com/thelolagemann/sm83/pkg/log"

// Opt is a function that modifies a CPU instance.
type Opt func(c *CPU)

// Debug traces every executed instruction to the logger.
func Debug() Opt {
	return func(c *CPU) {
		c.Debug = true
	}
}

// WithLogger sets the logger used for traces and decode faults.
func WithLogger(l log.Logger) Opt {
	return func(c *CPU) {
		c.Log = l
	}
}

// WithPostBootState starts the CPU with the register values the DMG boot
// ROM leaves behind, instead of zeroed registers.
func WithPostBootState() Opt {
	return func(c *CPU) {
		c.postBoot = true
	}
}
