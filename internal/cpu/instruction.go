package cpu

import (
	"fmt"
	"strings"

	"github.com/thelolagemann/sm83/internal/mmu"
)

// Instruction is a single entry of the dispatch tables. Cycle costs are
// in machine cycles and include the opcode fetch (and the 0xCB prefix for
// the extended table).
type Instruction struct {
	name         string
	length       uint8
	cycles       uint8
	cyclesBranch uint8
	fn           func(*CPU)
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string { return i.name }

// Length returns the encoded length of the instruction in bytes.
func (i Instruction) Length() uint8 { return i.length }

// Cycles returns the machine cycles taken. For conditional control flow
// this is the cost when the branch is not followed.
func (i Instruction) Cycles() uint8 { return i.cycles }

// CyclesBranch returns the machine cycles taken when a conditional branch
// is followed, and zero for every other instruction.
func (i Instruction) CyclesBranch() uint8 { return i.cyclesBranch }

// Defined reports whether the opcode has an architectural meaning.
func (i Instruction) Defined() bool { return i.fn != nil }

var (
	// InstructionSet is the dispatch table for single byte opcodes.
	InstructionSet [256]Instruction
	// InstructionSetCB is the dispatch table for opcodes following 0xCB.
	InstructionSetCB [256]Instruction
)

// DefineInstruction defines the instruction in the InstructionSet, with
// the provided opcode.
func DefineInstruction(opcode uint8, name string, length, cycles uint8, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{
		name:   name,
		length: length,
		cycles: cycles,
		fn:     fn,
	}
}

// DefineBranch defines a conditional control flow instruction, which
// takes cyclesBranch machine cycles when the branch is followed.
func DefineBranch(opcode uint8, name string, length, cycles, cyclesBranch uint8, fn func(*CPU)) {
	DefineInstruction(opcode, name, length, cycles, fn)
	InstructionSet[opcode].cyclesBranch = cyclesBranch
}

// DefineInstructionCB defines the instruction in the InstructionSetCB.
func DefineInstructionCB(opcode uint8, name string, cycles uint8, fn func(*CPU)) {
	InstructionSetCB[opcode] = Instruction{
		name:   name,
		length: 2,
		cycles: cycles,
		fn:     fn,
	}
}

// illegalOpcodes have no architectural meaning and are left undefined.
var illegalOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

func init() {
	DefineInstruction(0x00, "NOP", 1, 1, func(c *CPU) {})
	DefineInstruction(0x10, "STOP", 2, 1, func(c *CPU) {
		// STOP is followed by a padding byte
		c.PC++
		c.mode = ModeStop
	})
	DefineInstruction(0x76, "HALT", 1, 1, func(c *CPU) {
		c.mode = ModeHalt
	})
	DefineInstruction(0xF3, "DI", 1, 1, func(c *CPU) {
		c.IME = false
	})
	DefineInstruction(0xFB, "EI", 1, 1, func(c *CPU) {
		if !c.IME {
			c.mode = ModeEnableIME
		}
	})
	DefineInstruction(0x27, "DAA", 1, 1, func(c *CPU) { c.decimalAdjust() })
	DefineInstruction(0x2F, "CPL", 1, 1, func(c *CPU) { c.complement() })
	DefineInstruction(0x37, "SCF", 1, 1, func(c *CPU) { c.setCarryFlag() })
	DefineInstruction(0x3F, "CCF", 1, 1, func(c *CPU) { c.complementCarryFlag() })
	DefineInstruction(0xCB, "PREFIX CB", 1, 1, func(c *CPU) {
		InstructionSetCB[c.readOperand()].fn(c)
	})

	for _, opcode := range illegalOpcodes {
		InstructionSet[opcode] = Instruction{name: fmt.Sprintf("ILLEGAL_%02X", opcode), length: 1}
	}
}

// Disassemble returns the mnemonic of the instruction at address, with
// its immediate operands filled in, and the instruction length. The bus
// is read without side effects on the CPU.
func Disassemble(b mmu.IOBus, address uint16) (string, uint8) {
	opcode := b.Read(address)
	if opcode == 0xCB {
		return InstructionSetCB[b.Read(address+1)].name, 2
	}

	instruction := InstructionSet[opcode]
	switch instruction.length {
	case 2:
		operand := fmt.Sprintf("$%02X", b.Read(address+1))
		return replaceFirst(instruction.name, operand, "d8", "a8", "r8"), 2
	case 3:
		operand := fmt.Sprintf("$%04X", mmu.ReadWord(b, address+1))
		return replaceFirst(instruction.name, operand, "d16", "a16"), 3
	}
	return instruction.name, 1
}

// replaceFirst replaces the first placeholder found in name.
func replaceFirst(name, value string, placeholders ...string) string {
	for _, p := range placeholders {
		if strings.Contains(name, p) {
			return strings.Replace(name, p, value, 1)
		}
	}
	return name
}
