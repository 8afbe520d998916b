package cpu

import "fmt"

// call pushes the address of the next instruction onto the stack and jumps to
// the given address.
//
//	CALL nn
//	nn = 16-bit immediate value
func (c *CPU) call(address uint16) {
	c.push(c.PC)
	c.PC = address
}

// jumpRelative jumps to the address relative to the current PC.
//
//	JR e
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative(offset uint8) {
	c.jumpAbsolute(c.PC + uint16(int8(offset)))
}

// jumpAbsolute jumps to the given address, taking one internal cycle.
//
//	JP nn
//	nn = 16-bit immediate value
func (c *CPU) jumpAbsolute(address uint16) {
	c.PC = address
	c.tick()
}

// ret pops the return address off the stack and jumps to it.
//
//	RET
func (c *CPU) ret() {
	c.jumpAbsolute(c.pop())
}

func init() {
	DefineInstruction(0x18, "JR r8", 2, 3, func(c *CPU) {
		c.jumpRelative(c.readOperand())
	})
	DefineInstruction(0xC3, "JP a16", 3, 4, func(c *CPU) {
		c.jumpAbsolute(c.readOperand16())
	})
	DefineInstruction(0xE9, "JP HL", 1, 1, func(c *CPU) {
		c.PC = c.HL.Uint16()
	})
	DefineInstruction(0xCD, "CALL a16", 3, 6, func(c *CPU) {
		c.call(c.readOperand16())
	})
	DefineInstruction(0xC9, "RET", 1, 4, func(c *CPU) {
		c.ret()
	})
	DefineInstruction(0xD9, "RETI", 1, 4, func(c *CPU) {
		c.ret()
		c.IME = true
	})

	for i := uint8(0); i < 4; i++ {
		cc := i << 3
		name := conditions[i]

		// the operands are always read, the branch only when taken
		DefineBranch(0x20|cc, fmt.Sprintf("JR %s, r8", name), 2, 2, 3, func(c *CPU) {
			offset := c.readOperand()
			if c.condition(cc) {
				c.jumpRelative(offset)
			}
		})
		DefineBranch(0xC2|cc, fmt.Sprintf("JP %s, a16", name), 3, 3, 4, func(c *CPU) {
			address := c.readOperand16()
			if c.condition(cc) {
				c.jumpAbsolute(address)
			}
		})
		DefineBranch(0xC4|cc, fmt.Sprintf("CALL %s, a16", name), 3, 3, 6, func(c *CPU) {
			address := c.readOperand16()
			if c.condition(cc) {
				c.call(address)
			}
		})
		DefineBranch(0xC0|cc, fmt.Sprintf("RET %s", name), 1, 2, 5, func(c *CPU) {
			// evaluating the condition takes a cycle of its own
			c.tick()
			if c.condition(cc) {
				c.ret()
			}
		})
	}

	// RST n
	for i := uint8(0); i < 8; i++ {
		vector := uint16(i) << 3
		DefineInstruction(0xC7|i<<3, fmt.Sprintf("RST %02XH", vector), 1, 4, func(c *CPU) {
			c.call(vector)
		})
	}
}
