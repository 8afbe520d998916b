package cpu

import "fmt"

// indirectNames are the memory operands addressed by 0x02 - 0x3A.
var indirectNames = [4]string{"(BC)", "(DE)", "(HL+)", "(HL-)"}

// indirectAddress returns the address of an indirect load operand,
// post incrementing or decrementing HL where the encoding asks for it.
func (c *CPU) indirectAddress(index uint8) uint16 {
	switch index {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	case 2:
		address := c.HL.Uint16()
		c.HL.SetUint16(address + 1)
		return address
	default:
		address := c.HL.Uint16()
		c.HL.SetUint16(address - 1)
		return address
	}
}

// loadRegisterToHardware loads the given value into the hardware page.
//
//	LD (0xFF00 + n), A
//	n = C, 8 bit immediate value
func (c *CPU) loadRegisterToHardware(address uint8, value uint8) {
	c.writeByte(0xFF00+uint16(address), value)
}

// loadHardwareToRegister returns the value held in the hardware page.
//
//	LD A, (0xFF00 + n)
//	n = C, 8 bit immediate value
func (c *CPU) loadHardwareToRegister(address uint8) uint8 {
	return c.readByte(0xFF00 + uint16(address))
}

func init() {
	for i := uint8(0); i < 4; i++ {
		index := i
		pair := Reg16(i)

		// LD rr, d16
		DefineInstruction(0x01+index<<4, fmt.Sprintf("LD %s, d16", pairNames[index]), 3, 3, func(c *CPU) {
			c.setPair(pair, c.readOperand16())
		})

		// LD (rr), A / LD A, (rr)
		DefineInstruction(0x02+index<<4, fmt.Sprintf("LD %s, A", indirectNames[index]), 1, 2, func(c *CPU) {
			c.writeByte(c.indirectAddress(index), c.A)
		})
		DefineInstruction(0x0A+index<<4, fmt.Sprintf("LD A, %s", indirectNames[index]), 1, 2, func(c *CPU) {
			c.A = c.readByte(c.indirectAddress(index))
		})

		// PUSH rr / POP rr
		DefineInstruction(0xC5+index<<4, fmt.Sprintf("PUSH %s", stackNames[index]), 1, 4, func(c *CPU) {
			c.push(c.stackPair(pair))
		})
		DefineInstruction(0xC1+index<<4, fmt.Sprintf("POP %s", stackNames[index]), 1, 3, func(c *CPU) {
			c.setStackPair(pair, c.pop())
		})
	}

	for i := uint8(0); i < 8; i++ {
		dst := i

		// LD r, d8
		cycles := uint8(2)
		if dst == 6 {
			cycles = 3
		}
		DefineInstruction(0x06+dst<<3, fmt.Sprintf("LD %s, d8", registerNames[dst]), 2, cycles, func(c *CPU) {
			c.writeRegister(dst, c.readOperand())
		})

		// 0x40 - 0x7F LD r, r'
		for j := uint8(0); j < 8; j++ {
			src := j
			if dst == 6 && src == 6 {
				// 0x76 is HALT
				continue
			}

			cycles := uint8(1)
			if dst == 6 || src == 6 {
				cycles = 2
			}
			DefineInstruction(0x40|dst<<3|src, fmt.Sprintf("LD %s, %s", registerNames[dst], registerNames[src]), 1, cycles, func(c *CPU) {
				c.writeRegister(dst, c.readRegister(src))
			})
		}
	}

	DefineInstruction(0x08, "LD (a16), SP", 3, 5, func(c *CPU) {
		address := c.readOperand16()
		c.writeByte(address, uint8(c.SP))
		c.writeByte(address+1, uint8(c.SP>>8))
	})

	DefineInstruction(0xE0, "LDH (a8), A", 2, 3, func(c *CPU) {
		c.loadRegisterToHardware(c.readOperand(), c.A)
	})
	DefineInstruction(0xF0, "LDH A, (a8)", 2, 3, func(c *CPU) {
		c.A = c.loadHardwareToRegister(c.readOperand())
	})
	DefineInstruction(0xE2, "LD (C), A", 1, 2, func(c *CPU) {
		c.loadRegisterToHardware(c.BC.Low(), c.A)
	})
	DefineInstruction(0xF2, "LD A, (C)", 1, 2, func(c *CPU) {
		c.A = c.loadHardwareToRegister(c.BC.Low())
	})
	DefineInstruction(0xEA, "LD (a16), A", 3, 4, func(c *CPU) {
		c.writeByte(c.readOperand16(), c.A)
	})
	DefineInstruction(0xFA, "LD A, (a16)", 3, 4, func(c *CPU) {
		c.A = c.readByte(c.readOperand16())
	})

	DefineInstruction(0xF8, "LD HL, SP+r8", 2, 3, func(c *CPU) {
		c.HL.SetUint16(c.addSPSigned())
	})
	DefineInstruction(0xF9, "LD SP, HL", 1, 2, func(c *CPU) {
		c.SP = c.HL.Uint16()
		c.tick()
	})
}
