// Package mmu provides the memory bus the CPU reads and writes through. The
// MMU is a flat 64kB address space, optionally backed by a cartridge for the
// ROM (0x0000-0x7FFF) and external RAM (0xA000-0xBFFF) regions.
package mmu

import (
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

// IOBus is the byte level interface shared by the MMU and anything that
// can be mapped into it.
type IOBus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Bus is the interface the CPU uses to access memory. Words are stored
// little endian, low byte at address and high byte at address+1.
type Bus interface {
	IOBus
	Read16(address uint16) uint16
	Write16(address uint16, value uint16)
}

// ReadWord reads a little endian word from b. The second byte is read
// from address+1, wrapping at 0xFFFF.
func ReadWord(b IOBus, address uint16) uint16 {
	low := b.Read(address)
	high := b.Read(address + 1)
	return types.Word(high, low)
}

// WriteWord writes a little endian word to b, low byte first.
func WriteWord(b IOBus, address uint16, value uint16) {
	high, low := types.SplitWord(value)
	b.Write(address, low)
	b.Write(address+1, high)
}

// MMU is the memory management unit. Without a cartridge every address
// maps to the flat backing array.
type MMU struct {
	// 64kB address space
	raw [0x10000]uint8

	// 0x0000 - 0x7FFF - ROM
	// 0xA000 - 0xBFFF - External RAM
	Cart IOBus

	// 0x0000 - 0x00FF - Boot ROM, until a non zero write to BootDisable
	Boot       IOBus
	bootMapped bool

	Log log.Logger
}

// BootDisable unmaps the boot ROM when written with a non zero value.
const BootDisable = 0xFF50

var _ Bus = (*MMU)(nil)

// NewMMU returns a new, zeroed MMU.
func NewMMU() *MMU {
	return &MMU{Log: log.NewNullLogger()}
}

// AttachCartridge routes the cartridge regions to c. Passing nil
// restores the flat mapping.
func (m *MMU) AttachCartridge(c IOBus) {
	m.Cart = c
}

// Copy writes data into the backing array starting at address,
// bypassing the cartridge. Data past 0xFFFF is dropped.
func (m *MMU) Copy(address uint16, data []byte) {
	n := copy(m.raw[address:], data)
	if n < len(data) {
		m.Log.Errorf("copy of %d bytes to %04X truncated to %d", len(data), address, n)
	}
}

// AttachBootROM maps b over 0x0000 - 0x00FF until the program writes to
// BootDisable.
func (m *MMU) AttachBootROM(b IOBus) {
	m.Boot = b
	m.bootMapped = b != nil
}

// BootMapped reports whether the boot ROM is still mapped.
func (m *MMU) BootMapped() bool {
	return m.bootMapped
}

func (m *MMU) cartridgeAddress(address uint16) bool {
	return m.Cart != nil && (address < 0x8000 || address >= 0xA000 && address < 0xC000)
}

// Read returns the value at the given address.
func (m *MMU) Read(address uint16) uint8 {
	if m.bootMapped && address < 0x0100 {
		return m.Boot.Read(address)
	}
	if m.cartridgeAddress(address) {
		return m.Cart.Read(address)
	}
	return m.raw[address]
}

// Write writes the value to the given address.
func (m *MMU) Write(address uint16, value uint8) {
	if m.cartridgeAddress(address) {
		m.Cart.Write(address, value)
		return
	}
	if address == BootDisable && value != 0 && m.bootMapped {
		m.bootMapped = false
		m.Log.Debugf("boot rom unmapped")
	}
	m.raw[address] = value
}

// Read16 returns the little endian word at the given address.
func (m *MMU) Read16(address uint16) uint16 {
	return ReadWord(m, address)
}

// Write16 writes a little endian word to the given address.
func (m *MMU) Write16(address uint16, value uint16) {
	WriteWord(m, address, value)
}

var _ types.Stater = (*MMU)(nil)

// Load restores the backing array. Cartridge regions are owned by the
// cartridge and are not part of the MMU state.
func (m *MMU) Load(s *types.State) {
	s.ReadData(m.raw[:])
	m.bootMapped = s.ReadBool() && m.Boot != nil
}

// Save writes the backing array to the state.
func (m *MMU) Save(s *types.State) {
	s.WriteData(m.raw[:])
	s.WriteBool(m.bootMapped)
}
