package cpu

import (
	"errors"
	"fmt"
)

// ErrIllegalOpcode is matched by every DecodeError.
var ErrIllegalOpcode = errors.New("illegal opcode")

// DecodeError is returned when the CPU fetches an opcode with no defined
// meaning. PC is the address of the opcode.
type DecodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("illegal opcode %02X at %04X", e.Opcode, e.PC)
}

func (e *DecodeError) Unwrap() error {
	return ErrIllegalOpcode
}
