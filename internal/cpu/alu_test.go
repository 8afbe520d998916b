package cpu

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/thelolagemann/sm83/internal/mmu"
)

func newALU() *CPU {
	return NewCPU(mmu.NewMMU())
}

func TestIncrement(t *testing.T) {
	f := func(n uint8, carry bool) bool {
		c := newALU()
		c.F.Carry = carry
		r := c.increment(n)
		return r == n+1 &&
			c.F.Zero == (r == 0) &&
			!c.F.Subtract &&
			c.F.HalfCarry == (n&0xF == 0xF) &&
			c.F.Carry == carry
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestDecrement(t *testing.T) {
	f := func(n uint8, carry bool) bool {
		c := newALU()
		c.F.Carry = carry
		r := c.decrement(n)
		return r == n-1 &&
			c.F.Zero == (r == 0) &&
			c.F.Subtract &&
			c.F.HalfCarry == (n&0xF == 0) &&
			c.F.Carry == carry
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestIncrementDecrement(t *testing.T) {
	f := func(n uint8) bool {
		c := newALU()
		return c.decrement(c.increment(n)) == n
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestAdd(t *testing.T) {
	c := newALU()
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			for carry := 0; carry < 2; carry++ {
				c.A = uint8(a)
				c.F = Flags{Carry: carry == 1}
				c.add(uint8(b), true)

				sum := a + b + carry
				if c.A != uint8(sum) ||
					c.F.Zero != (uint8(sum) == 0) ||
					c.F.Subtract ||
					c.F.HalfCarry != ((a&0xF)+(b&0xF)+carry > 0xF) ||
					c.F.Carry != (sum > 0xFF) {
					t.Fatalf("ADC %02X + %02X + %d = %02X %+v", a, b, carry, c.A, c.F)
				}
			}
		}
	}
}

func TestSub(t *testing.T) {
	c := newALU()
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			for carry := 0; carry < 2; carry++ {
				c.A = uint8(a)
				c.F = Flags{Carry: carry == 1}
				c.sub(uint8(b), true)

				diff := a - b - carry
				if c.A != uint8(diff) ||
					c.F.Zero != (uint8(diff) == 0) ||
					!c.F.Subtract ||
					c.F.HalfCarry != ((a&0xF)-(b&0xF)-carry < 0) ||
					c.F.Carry != (diff < 0) {
					t.Fatalf("SBC %02X - %02X - %d = %02X %+v", a, b, carry, c.A, c.F)
				}
			}
		}
	}
}

func TestCompare(t *testing.T) {
	f := func(a, n uint8) bool {
		c := newALU()
		c.A = a
		c.compare(n)

		expected := newALU()
		expected.A = a
		expected.sub(n, false)
		return c.A == a && c.F == expected.F
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestLogic(t *testing.T) {
	c := newALU()

	c.A = 0xF0
	c.and(0x0F)
	assert.Equal(t, uint8(0), c.A)
	assert.Equal(t, Flags{Zero: true, HalfCarry: true}, c.F)

	c.A = 0xF0
	c.or(0x0F)
	assert.Equal(t, uint8(0xFF), c.A)
	assert.Equal(t, Flags{}, c.F)

	c.A = 0xFF
	c.xor(0xFF)
	assert.Equal(t, uint8(0), c.A)
	assert.Equal(t, Flags{Zero: true}, c.F)
}

func TestAddHL(t *testing.T) {
	c := newALU()
	c.HL.SetUint16(0x0FFF)
	c.F.Zero = true
	c.addHL(0x0001)
	assert.Equal(t, uint16(0x1000), c.HL.Uint16())
	assert.Equal(t, Flags{Zero: true, HalfCarry: true}, c.F)

	c.HL.SetUint16(0xFFFF)
	c.F.Zero = false
	c.addHL(0x0001)
	assert.Equal(t, uint16(0x0000), c.HL.Uint16())
	assert.Equal(t, Flags{HalfCarry: true, Carry: true}, c.F)
}

func TestFlagBits(t *testing.T) {
	f := func(value uint8) bool {
		var flags Flags
		flags.SetByte(value)
		return flags.Byte() == value&0xF0
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}

	c := newALU()
	c.SetAF(0x12FF)
	assert.Equal(t, uint16(0x12F0), c.AF())
	assert.Equal(t, Flags{Zero: true, Subtract: true, HalfCarry: true, Carry: true}, c.F)
}

func TestComplementAndCarry(t *testing.T) {
	c := newALU()
	c.A = 0x35
	c.complement()
	assert.Equal(t, uint8(0xCA), c.A)
	assert.True(t, c.F.Subtract)
	assert.True(t, c.F.HalfCarry)

	c.setCarryFlag()
	assert.Equal(t, Flags{Carry: true}, c.F)
	c.complementCarryFlag()
	assert.Equal(t, Flags{}, c.F)
}
