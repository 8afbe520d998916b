// Package cpu implements the Sharp SM83 instruction core: the register file,
// the flag and arithmetic helpers, and a table driven dispatcher that executes
// one instruction per Step over an mmu.Bus.
package cpu

import (
	"github.com/thelolagemann/sm83/internal/mmu"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the CPU.
	ClockSpeed = 4194304

	// EntryPoint is where execution starts when no boot ROM is run.
	EntryPoint = 0x0100
)

type mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal mode = iota
	// ModeHalt is entered by HALT, the CPU idles until woken.
	ModeHalt
	// ModeStop is entered by STOP, the CPU idles until woken.
	ModeStop
	// ModeEnableIME is entered by EI, IME is set once the next
	// instruction starts.
	ModeEnableIME
)

// CPU represents the SM83 CPU. It is responsible for executing instructions.
// A CPU is not safe for concurrent use.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	// IME is the interrupt master enable flag.
	IME bool

	// Debug traces every instruction to Log at debug level.
	Debug bool
	Log   log.Logger

	bus      mmu.Bus
	postBoot bool

	mode        mode
	currentTick uint8
	cycles      uint64
	fault       error
}

// NewCPU creates a new CPU instance with the given bus.
// The bus is used to read and write to the memory.
func NewCPU(bus mmu.Bus, opts ...Opt) *CPU {
	c := &CPU{
		bus: bus,
		Log: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Reset()

	return c
}

// Bus returns the bus the CPU executes over.
func (c *CPU) Bus() mmu.Bus {
	return c.bus
}

// Reset returns the CPU to its power on state: PC at the entry point and
// every register zeroed, or the post boot values when requested.
func (c *CPU) Reset() {
	c.Registers = Registers{}
	c.PC = EntryPoint
	c.SP = 0
	c.IME = false
	c.mode = ModeNormal
	c.cycles = 0
	c.fault = nil

	if c.postBoot {
		c.SetAF(0x01B0)
		c.BC.SetUint16(0x0013)
		c.DE.SetUint16(0x00D8)
		c.HL.SetUint16(0x014D)
		c.SP = 0xFFFE
	}
}

// Mode returns the current CPU mode.
func (c *CPU) Mode() mode {
	return c.mode
}

// Cycles returns the number of clock cycles executed since the last Reset.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Step executes a single instruction and returns the number of clock
// cycles it took. While halted or stopped a Step idles for one machine
// cycle. Once an illegal opcode has been decoded every Step returns
// the same error until Reset.
func (c *CPU) Step() (uint8, error) {
	if c.fault != nil {
		return 0, c.fault
	}

	// reset tick counter
	c.currentTick = 0

	switch c.mode {
	case ModeHalt, ModeStop:
		c.tick()
	case ModeEnableIME:
		c.IME = true
		c.mode = ModeNormal
		c.runInstruction(c.readInstruction())
	default:
		c.runInstruction(c.readInstruction())
	}

	return c.currentTick, c.fault
}

// Wake leaves halt or stop mode.
func (c *CPU) Wake() {
	if c.mode == ModeHalt || c.mode == ModeStop {
		c.mode = ModeNormal
	}
}

// ServiceInterrupt performs the CPU side of an interrupt dispatch. A
// halted or stopped CPU is always woken. If IME is set it is cleared, the
// PC is pushed and execution continues at vector; the cycles taken are
// returned. Zero means the interrupt was not dispatched.
func (c *CPU) ServiceInterrupt(vector uint16) uint8 {
	c.Wake()
	if !c.IME || c.fault != nil {
		return 0
	}

	c.currentTick = 0
	c.IME = false
	c.tick()
	c.tick()
	c.push(c.PC)
	c.PC = vector

	return c.currentTick
}

// runInstruction decodes and executes opcode, which has already been
// fetched from PC-1.
func (c *CPU) runInstruction(opcode uint8) {
	instruction := InstructionSet[opcode]
	if !instruction.Defined() {
		c.PC--
		c.fault = &DecodeError{Opcode: opcode, PC: c.PC}
		c.Log.Errorf("%s", c.fault)
		return
	}

	if c.Debug {
		name, _ := Disassemble(c.bus, c.PC-1)
		c.Log.Debugf("%04X %-16s %s SP:%04X", c.PC-1, name, c.Registers.String(), c.SP)
	}

	// execute the instruction
	instruction.fn(c)
}

// tick advances the clock by one machine cycle.
func (c *CPU) tick() {
	c.currentTick += 4
	c.cycles += 4
}

// readInstruction reads the next instruction from memory.
func (c *CPU) readInstruction() uint8 {
	c.tick()
	value := c.bus.Read(c.PC)
	c.PC++
	return value
}

// readOperand reads the next operand from memory. The same as
// readInstruction, but will allow future optimizations.
func (c *CPU) readOperand() uint8 {
	c.tick()
	value := c.bus.Read(c.PC)
	c.PC++
	return value
}

// readOperand16 reads a little endian immediate word.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return types.Word(high, low)
}

// readByte reads a byte from memory.
func (c *CPU) readByte(addr uint16) uint8 {
	c.tick()
	return c.bus.Read(addr)
}

// writeByte writes the given value to the given address.
func (c *CPU) writeByte(addr uint16, val uint8) {
	c.tick()
	c.bus.Write(addr, val)
}

// push decrements SP and writes value to the stack, high byte first.
func (c *CPU) push(value uint16) {
	c.tick()
	high, low := types.SplitWord(value)
	c.SP--
	c.writeByte(c.SP, high)
	c.SP--
	c.writeByte(c.SP, low)
}

// pop reads a value from the stack, low byte first, and increments SP.
func (c *CPU) pop() uint16 {
	low := c.readByte(c.SP)
	c.SP++
	high := c.readByte(c.SP)
	c.SP++
	return types.Word(high, low)
}

// readRegister returns the operand at an opcode register index, with
// index 6 reading (HL).
func (c *CPU) readRegister(index uint8) uint8 {
	if index == 6 {
		return c.readByte(c.HL.Uint16())
	}
	return c.Get(Reg8(index))
}

// writeRegister sets the operand at an opcode register index, with
// index 6 writing (HL).
func (c *CPU) writeRegister(index uint8, value uint8) {
	if index == 6 {
		c.writeByte(c.HL.Uint16(), value)
		return
	}
	c.Set(Reg8(index), value)
}

// pair returns the value of a register pair as indexed by 16-bit
// loads and arithmetic.
func (c *CPU) pair(index Reg16) uint16 {
	switch index {
	case PairBC:
		return c.BC.Uint16()
	case PairDE:
		return c.DE.Uint16()
	case PairHL:
		return c.HL.Uint16()
	default:
		return c.SP
	}
}

// setPair sets a register pair as indexed by 16-bit loads and arithmetic.
func (c *CPU) setPair(index Reg16, value uint16) {
	switch index {
	case PairBC:
		c.BC.SetUint16(value)
	case PairDE:
		c.DE.SetUint16(value)
	case PairHL:
		c.HL.SetUint16(value)
	default:
		c.SP = value
	}
}

// stackPair returns a register pair as indexed by PUSH.
func (c *CPU) stackPair(index Reg16) uint16 {
	if index == PairAF {
		return c.AF()
	}
	return c.pair(index)
}

// setStackPair sets a register pair as indexed by POP.
func (c *CPU) setStackPair(index Reg16, value uint16) {
	if index == PairAF {
		c.SetAF(value)
		return
	}
	c.setPair(index, value)
}

// condition evaluates the NZ, Z, NC, C condition encoded in bits 3-4
// of opcode.
func (c *CPU) condition(opcode uint8) bool {
	switch opcode >> 3 & 0x3 {
	case 0:
		return !c.F.Zero
	case 1:
		return c.F.Zero
	case 2:
		return !c.F.Carry
	default:
		return c.F.Carry
	}
}

var _ types.Stater = (*CPU)(nil)

func (c *CPU) Load(s *types.State) {
	c.SetAF(s.Read16())
	c.BC.SetUint16(s.Read16())
	c.DE.SetUint16(s.Read16())
	c.HL.SetUint16(s.Read16())
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.IME = s.ReadBool()
	c.mode = s.Read8()
	c.cycles = uint64(s.Read32()) | uint64(s.Read32())<<32
	c.fault = nil
}

func (c *CPU) Save(s *types.State) {
	s.Write16(c.AF())
	s.Write16(c.BC.Uint16())
	s.Write16(c.DE.Uint16())
	s.Write16(c.HL.Uint16())
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.WriteBool(c.IME)
	s.Write8(c.mode)
	s.Write32(uint32(c.cycles))
	s.Write32(uint32(c.cycles >> 32))
}
