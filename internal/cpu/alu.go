package cpu

// increment n by 1 and set the flags accordingly.
//
//	INC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(n uint8) uint8 {
	incremented := n + 1
	c.setFlags(incremented == 0, false, halfCarryAdd(n, 1, 0), c.F.Carry)
	return incremented
}

// decrement n by 1 and set the flags accordingly.
//
//	DEC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(n uint8) uint8 {
	decremented := n - 1
	c.setFlags(decremented == 0, true, halfCarrySub(n, 1, 0), c.F.Carry)
	return decremented
}

// add adds n to the A Register, plus the carry flag when shouldCarry is set.
//
//	ADD A, n
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, shouldCarry bool) {
	var carry uint8
	if shouldCarry {
		carry = c.F.carryIn()
	}
	c.A, c.F = addFlags(c.A, n, carry)
}

// sub subtracts n from the A Register, minus the carry flag when
// shouldCarry is set.
//
//	SUB A, n
//	SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n uint8, shouldCarry bool) {
	var carry uint8
	if shouldCarry {
		carry = c.F.carryIn()
	}
	c.A, c.F = subFlags(c.A, n, carry)
}

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
//
//	XOR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// compare compares n to the A Register. A is left untouched.
//
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) compare(n uint8) {
	_, c.F = subFlags(c.A, n, 0)
}

// addHL adds value to the HL RegisterPair.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(value uint16) {
	hl := c.HL.Uint16()
	c.setFlags(c.F.Zero, false, halfCarryAdd16(hl, value), carryAdd16(hl, value))
	c.HL.SetUint16(hl + value)
	c.tick()
}

// addSPSigned reads a signed immediate and returns it added to SP. The
// flags are computed on the unsigned low byte.
//
//	ADD SP, r8
//	LD HL, SP+r8
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned() uint16 {
	value := c.readOperand()
	low := uint8(c.SP)
	c.setFlags(false, false, halfCarryAdd(low, value, 0), carryAdd(low, value, 0))
	c.tick()

	return c.SP + uint16(int8(value))
}

// decimalAdjust adjusts the A Register so that it holds the binary coded
// decimal result of the previous addition or subtraction.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) decimalAdjust() {
	carry := c.F.Carry
	if !c.F.Subtract {
		if c.F.Carry || c.A > 0x99 {
			c.A += 0x60
			carry = true
		}
		if c.F.HalfCarry || c.A&0x0F > 0x09 {
			c.A += 0x06
		}
	} else {
		if c.F.Carry {
			c.A -= 0x60
		}
		if c.F.HalfCarry {
			c.A -= 0x06
		}
	}

	c.setFlags(c.A == 0, c.F.Subtract, false, carry)
}

// complement flips every bit of the A Register.
//
//	CPL
//
// Flags affected:
//
//	Z - Not affected.
//	N - Set.
//	H - Set.
//	C - Not affected.
func (c *CPU) complement() {
	c.A = ^c.A
	c.setFlags(c.F.Zero, true, true, c.F.Carry)
}

// setCarryFlag sets the carry flag.
//
//	SCF
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Reset.
//	C - Set.
func (c *CPU) setCarryFlag() {
	c.setFlags(c.F.Zero, false, false, true)
}

// complementCarryFlag flips the carry flag.
//
//	CCF
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Reset.
//	C - Complemented.
func (c *CPU) complementCarryFlag() {
	c.setFlags(c.F.Zero, false, false, !c.F.Carry)
}
