package types

// Register represents an 8-bit SM83 register. The CPU has 8 of them: A, F,
// B, C, D, E, H and L, usually accessed through a RegisterPair.
type Register = uint8

// RegisterPair represents a pair of Registers held as one 16-bit value.
// The high register occupies bits 8-15 and the low register bits 0-7.
// The CPU has 4 register pairs: AF, BC, DE, and HL.
type RegisterPair uint16

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r = RegisterPair(value)
}

// High returns the upper Register of the pair.
func (r *RegisterPair) High() Register {
	return Register(*r >> 8)
}

// Low returns the lower Register of the pair.
func (r *RegisterPair) Low() Register {
	return Register(*r)
}

// SetHigh sets the upper Register, leaving the lower one untouched.
func (r *RegisterPair) SetHigh(value Register) {
	*r = *r&0x00FF | RegisterPair(value)<<8
}

// SetLow sets the lower Register, leaving the upper one untouched.
func (r *RegisterPair) SetLow(value Register) {
	*r = *r&0xFF00 | RegisterPair(value)
}
