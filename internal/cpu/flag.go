package cpu

type Flag = uint8

// Bit positions of the flags within F.
const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// Flags holds the four SM83 flags. Byte gives the F register view, with
// the low nibble always zero.
type Flags struct {
	Zero      bool
	Subtract  bool
	HalfCarry bool
	Carry     bool
}

// Byte packs the flags into the upper nibble of F.
func (f Flags) Byte() uint8 {
	return bit(f.Zero, FlagZero) | bit(f.Subtract, FlagSubtract) |
		bit(f.HalfCarry, FlagHalfCarry) | bit(f.Carry, FlagCarry)
}

// SetByte unpacks an F register value. Bits 0-3 are ignored.
func (f *Flags) SetByte(value uint8) {
	f.Zero = value&(1<<FlagZero) != 0
	f.Subtract = value&(1<<FlagSubtract) != 0
	f.HalfCarry = value&(1<<FlagHalfCarry) != 0
	f.Carry = value&(1<<FlagCarry) != 0
}

// carryIn returns the carry flag as an operand.
func (f Flags) carryIn() uint8 {
	if f.Carry {
		return 1
	}
	return 0
}

func bit(set bool, position uint8) uint8 {
	if set {
		return 1 << position
	}
	return 0
}

// setFlags sets all four flags at once.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.F = Flags{Zero: zero, Subtract: subtract, HalfCarry: halfCarry, Carry: carry}
}

// The helpers below are pure, they compute a flag from the operands and
// never touch the registers.

// halfCarryAdd reports a carry out of bit 3 of a + b + carry.
func halfCarryAdd(a, b, carry uint8) bool {
	return (a&0xF)+(b&0xF)+carry > 0xF
}

// carryAdd reports a carry out of bit 7 of a + b + carry.
func carryAdd(a, b, carry uint8) bool {
	return uint16(a)+uint16(b)+uint16(carry) > 0xFF
}

// halfCarrySub reports a borrow from bit 4 of a - b - carry.
func halfCarrySub(a, b, carry uint8) bool {
	return a&0xF < (b&0xF)+carry
}

// carrySub reports a borrow of a - b - carry.
func carrySub(a, b, carry uint8) bool {
	return uint16(a) < uint16(b)+uint16(carry)
}

// halfCarryAdd16 reports a carry out of bit 11 of a + b.
func halfCarryAdd16(a, b uint16) bool {
	return (a&0xFFF)+(b&0xFFF) > 0xFFF
}

// carryAdd16 reports a carry out of bit 15 of a + b.
func carryAdd16(a, b uint16) bool {
	return uint32(a)+uint32(b) > 0xFFFF
}

// addFlags returns a + b + carry and the flags an 8-bit addition leaves.
func addFlags(a, b, carry uint8) (uint8, Flags) {
	result := a + b + carry
	return result, Flags{
		Zero:      result == 0,
		HalfCarry: halfCarryAdd(a, b, carry),
		Carry:     carryAdd(a, b, carry),
	}
}

// subFlags returns a - b - carry and the flags an 8-bit subtraction leaves.
func subFlags(a, b, carry uint8) (uint8, Flags) {
	result := a - b - carry
	return result, Flags{
		Zero:      result == 0,
		Subtract:  true,
		HalfCarry: halfCarrySub(a, b, carry),
		Carry:     carrySub(a, b, carry),
	}
}
