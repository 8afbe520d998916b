package types

const (
	Bit0 = 1 << iota // 0b0000_0001
	Bit1             // 0b0000_0010
	Bit2             // 0b0000_0100
	Bit3             // 0b0000_1000
	Bit4             // 0b0001_0000
	Bit5             // 0b0010_0000
	Bit6             // 0b0100_0000
	Bit7             // 0b1000_0000
)

// Bit is one of Bit0 through Bit7.
type Bit = uint8

// Bits indexes Bit0 through Bit7 by position.
var Bits = [8]Bit{Bit0, Bit1, Bit2, Bit3, Bit4, Bit5, Bit6, Bit7}

// Word joins a high and low byte into a 16-bit value.
func Word(high, low uint8) uint16 {
	return uint16(high)<<8 | uint16(low)
}

// SplitWord splits a 16-bit value into its high and low byte.
func SplitWord(value uint16) (high, low uint8) {
	return uint8(value >> 8), uint8(value)
}
