package cpu

import "github.com/thelolagemann/sm83/internal/types"

// rotateLeft rotates n left by 1 bit, the old bit 7 goes to the carry flag.
// When throughCarry is set the old carry flag fills bit 0, otherwise bit 7
// wraps around to it.
//
//	RLC n
//	RL n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeft(n uint8, throughCarry bool) uint8 {
	in := n >> 7
	if throughCarry {
		in = c.F.carryIn()
	}

	computed := n<<1 | in
	c.setFlags(computed == 0, false, false, n&types.Bit7 == types.Bit7)
	return computed
}

// rotateRight rotates n right by 1 bit, the old bit 0 goes to the carry flag.
// When throughCarry is set the old carry flag fills bit 7, otherwise bit 0
// wraps around to it.
//
//	RRC n
//	RR n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRight(n uint8, throughCarry bool) uint8 {
	in := n << 7
	if throughCarry {
		in = c.F.carryIn() << 7
	}

	computed := n>>1 | in
	c.setFlags(computed == 0, false, false, n&types.Bit0 == types.Bit0)
	return computed
}

// rotateAccumulator applies a rotate to the A Register. Unlike their CB
// counterparts, the accumulator rotates always reset the zero flag.
//
//	RLCA, RRCA, RLA, RRA
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Reset.
//	C - Contains the bit rotated out.
func (c *CPU) rotateAccumulator(rotate func(uint8, bool) uint8, throughCarry bool) {
	c.A = rotate(c.A, throughCarry)
	c.F.Zero = false
}

func init() {
	DefineInstruction(0x07, "RLCA", 1, 1, func(c *CPU) { c.rotateAccumulator(c.rotateLeft, false) })
	DefineInstruction(0x0F, "RRCA", 1, 1, func(c *CPU) { c.rotateAccumulator(c.rotateRight, false) })
	DefineInstruction(0x17, "RLA", 1, 1, func(c *CPU) { c.rotateAccumulator(c.rotateLeft, true) })
	DefineInstruction(0x1F, "RRA", 1, 1, func(c *CPU) { c.rotateAccumulator(c.rotateRight, true) })
}
