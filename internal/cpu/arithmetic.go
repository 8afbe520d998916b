package cpu

import "fmt"

// aluNames are the mnemonics of the 8-bit ALU block, in opcode order.
var aluNames = [8]string{"ADD A,", "ADC A,", "SUB", "SBC A,", "AND", "XOR", "OR", "CP"}

// alu performs the 8-bit arithmetic or logic operation encoded in bits 3-5
// of an ALU opcode on the A Register and n.
func (c *CPU) alu(op uint8, n uint8) {
	switch op {
	case 0:
		c.add(n, false)
	case 1:
		c.add(n, true)
	case 2:
		c.sub(n, false)
	case 3:
		c.sub(n, true)
	case 4:
		c.and(n)
	case 5:
		c.xor(n)
	case 6:
		c.or(n)
	case 7:
		c.compare(n)
	}
}

func init() {
	// INC r / DEC r
	for i := uint8(0); i < 8; i++ {
		reg := i
		cycles := uint8(1)
		if reg == 6 {
			cycles = 3
		}

		DefineInstruction(0x04+reg<<3, fmt.Sprintf("INC %s", registerNames[reg]), 1, cycles, func(c *CPU) {
			c.writeRegister(reg, c.increment(c.readRegister(reg)))
		})
		DefineInstruction(0x05+reg<<3, fmt.Sprintf("DEC %s", registerNames[reg]), 1, cycles, func(c *CPU) {
			c.writeRegister(reg, c.decrement(c.readRegister(reg)))
		})
	}

	// INC rr / DEC rr / ADD HL, rr
	for i := uint8(0); i < 4; i++ {
		pair := Reg16(i)

		DefineInstruction(0x03+i<<4, fmt.Sprintf("INC %s", pairNames[i]), 1, 2, func(c *CPU) {
			c.setPair(pair, c.pair(pair)+1)
			c.tick()
		})
		DefineInstruction(0x0B+i<<4, fmt.Sprintf("DEC %s", pairNames[i]), 1, 2, func(c *CPU) {
			c.setPair(pair, c.pair(pair)-1)
			c.tick()
		})
		DefineInstruction(0x09+i<<4, fmt.Sprintf("ADD HL, %s", pairNames[i]), 1, 2, func(c *CPU) {
			c.addHL(c.pair(pair))
		})
	}

	// 0x80 - 0xBF ALU A, r
	for op := uint8(0); op < 8; op++ {
		for i := uint8(0); i < 8; i++ {
			op, reg := op, i
			cycles := uint8(1)
			if reg == 6 {
				cycles = 2
			}

			DefineInstruction(0x80|op<<3|reg, fmt.Sprintf("%s %s", aluNames[op], registerNames[reg]), 1, cycles, func(c *CPU) {
				c.alu(op, c.readRegister(reg))
			})
		}

		// 0xC6 - 0xFE ALU A, d8
		op := op
		DefineInstruction(0xC6|op<<3, fmt.Sprintf("%s d8", aluNames[op]), 2, 2, func(c *CPU) {
			c.alu(op, c.readOperand())
		})
	}

	// 0xE8 - ADD SP, r8
	DefineInstruction(0xE8, "ADD SP, r8", 2, 4, func(c *CPU) {
		c.SP = c.addSPSigned()
		c.tick()
	})
}
