package cpu

// testBit tests the bit at the given position of value.
//
//	BIT n, r
//	n = 0-7
//	r = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if bit n of r is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(value uint8, position uint8) {
	c.setFlags(value&(1<<position) == 0, false, true, c.F.Carry)
}

// setBit sets the bit at the given position of value. No flags are affected.
//
//	SET n, r
func setBit(value uint8, position uint8) uint8 {
	return value | 1<<position
}

// clearBit clears the bit at the given position of value. No flags are
// affected.
//
//	RES n, r
func clearBit(value uint8, position uint8) uint8 {
	return value &^ (1 << position)
}
