package cpu

import (
	"fmt"

	"github.com/thelolagemann/sm83/internal/types"
)

type Register = types.Register

type RegisterPair = types.RegisterPair

// Reg8 identifies an 8-bit register, numbered as in the opcode encoding.
// Index 6 is (HL) in an opcode, so the register file uses it for F.
type Reg8 uint8

const (
	RegB Reg8 = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegF
	RegA
)

// Reg16 identifies a register pair as encoded in 16-bit loads and arithmetic.
// PUSH and POP use index 3 for AF instead of SP.
type Reg16 uint8

const (
	PairBC Reg16 = iota
	PairDE
	PairHL
	PairSP
	PairAF = PairSP
)

var (
	registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	pairNames     = [4]string{"BC", "DE", "HL", "SP"}
	stackNames    = [4]string{"BC", "DE", "HL", "AF"}
	conditions    = [4]string{"NZ", "Z", "NC", "C"}
)

// Registers contains the 8-bit registers, packed into their 16-bit pairs.
// A and F are kept apart so the flags can be addressed individually, AF
// joins them back together.
type Registers struct {
	A Register
	F Flags

	BC RegisterPair
	DE RegisterPair
	HL RegisterPair
}

// AF returns the accumulator and flags as a pair.
func (r *Registers) AF() uint16 {
	return types.Word(r.A, r.F.Byte())
}

// SetAF sets the accumulator and flags. The low nibble of F is discarded.
func (r *Registers) SetAF(value uint16) {
	high, low := types.SplitWord(value)
	r.A = high
	r.F.SetByte(low)
}

// Get returns the value of an 8-bit register.
func (r *Registers) Get(reg Reg8) Register {
	switch reg {
	case RegB:
		return r.BC.High()
	case RegC:
		return r.BC.Low()
	case RegD:
		return r.DE.High()
	case RegE:
		return r.DE.Low()
	case RegH:
		return r.HL.High()
	case RegL:
		return r.HL.Low()
	case RegF:
		return r.F.Byte()
	default:
		return r.A
	}
}

// Set sets the value of an 8-bit register without touching the other
// half of its pair.
func (r *Registers) Set(reg Reg8, value Register) {
	switch reg {
	case RegB:
		r.BC.SetHigh(value)
	case RegC:
		r.BC.SetLow(value)
	case RegD:
		r.DE.SetHigh(value)
	case RegE:
		r.DE.SetLow(value)
	case RegH:
		r.HL.SetHigh(value)
	case RegL:
		r.HL.SetLow(value)
	case RegF:
		r.F.SetByte(value)
	default:
		r.A = value
	}
}

func (r *Registers) String() string {
	return fmt.Sprintf("AF:%04X BC:%04X DE:%04X HL:%04X", r.AF(), r.BC.Uint16(), r.DE.Uint16(), r.HL.Uint16())
}
