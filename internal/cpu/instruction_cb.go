package cpu

import "fmt"

// cbNames are the mnemonics of the rotate and shift rows 0x00 - 0x3F.
var cbNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

// shiftOp returns the rotate or shift executor of a 0x00 - 0x3F row.
func shiftOp(row uint8) func(*CPU, uint8) uint8 {
	switch row {
	case 0:
		return func(c *CPU, n uint8) uint8 { return c.rotateLeft(n, false) }
	case 1:
		return func(c *CPU, n uint8) uint8 { return c.rotateRight(n, false) }
	case 2:
		return func(c *CPU, n uint8) uint8 { return c.rotateLeft(n, true) }
	case 3:
		return func(c *CPU, n uint8) uint8 { return c.rotateRight(n, true) }
	case 4:
		return (*CPU).shiftLeftArithmetic
	case 5:
		return (*CPU).shiftRightArithmetic
	case 6:
		return (*CPU).swap
	default:
		return (*CPU).shiftRightLogical
	}
}

// cbCycles is the cost of a read-modify-write CB instruction, including
// the prefix.
func cbCycles(reg uint8) uint8 {
	if reg == 6 {
		return 4
	}
	return 2
}

func init() {
	for i := uint8(0); i < 8; i++ {
		reg := i

		// 0x00 - 0x3F rotates, shifts and swap
		for row := uint8(0); row < 8; row++ {
			op := shiftOp(row)
			DefineInstructionCB(row<<3|reg, fmt.Sprintf("%s %s", cbNames[row], registerNames[reg]), cbCycles(reg), func(c *CPU) {
				c.writeRegister(reg, op(c, c.readRegister(reg)))
			})
		}

		for b := uint8(0); b < 8; b++ {
			position := b

			// 0x40 - 0x7F BIT n, r; (HL) is only read
			bitCycles := uint8(2)
			if reg == 6 {
				bitCycles = 3
			}
			DefineInstructionCB(0x40|position<<3|reg, fmt.Sprintf("BIT %d, %s", position, registerNames[reg]), bitCycles, func(c *CPU) {
				c.testBit(c.readRegister(reg), position)
			})

			// 0x80 - 0xBF RES n, r
			DefineInstructionCB(0x80|position<<3|reg, fmt.Sprintf("RES %d, %s", position, registerNames[reg]), cbCycles(reg), func(c *CPU) {
				c.writeRegister(reg, clearBit(c.readRegister(reg), position))
			})

			// 0xC0 - 0xFF SET n, r
			DefineInstructionCB(0xC0|position<<3|reg, fmt.Sprintf("SET %d, %s", position, registerNames[reg]), cbCycles(reg), func(c *CPU) {
				c.writeRegister(reg, setBit(c.readRegister(reg), position))
			})
		}
	}
}
