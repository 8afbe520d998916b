// Package boot provides the boot ROM overlay. When the machine powers on,
// the boot ROM is mapped over 0x0000 - 0x00FF. It sets up the registers,
// checks the cartridge header and then unmaps itself by writing to 0xFF50,
// handing over to the cartridge at 0x0100.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
)

// Size is the size of a DMG family boot ROM.
const Size = 0x100

// ErrSize is returned when a boot ROM is not Size bytes long.
var ErrSize = errors.New("invalid boot rom length")

// ROM represents a boot ROM.
type ROM struct {
	raw      []byte // the raw boot rom
	checksum string // the MD5 checksum of the boot rom
}

// LoadBootROM returns a ROM serving b, which must be exactly Size bytes.
func LoadBootROM(b []byte) (*ROM, error) {
	if len(b) != Size {
		return nil, fmt.Errorf("%w: %d", ErrSize, len(b))
	}

	bootChecksum := md5.Sum(b)
	return &ROM{
		raw:      b,
		checksum: hex.EncodeToString(bootChecksum[:]),
	}, nil
}

// Read returns the byte at the given address, which wraps at Size.
func (b *ROM) Read(address uint16) uint8 {
	return b.raw[address%Size]
}

// Write is ignored, the boot ROM is read only.
func (b *ROM) Write(uint16, uint8) {}

// Checksum returns the MD5 checksum of the boot rom.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

// Model returns the model of the boot rom, as identified by its checksum.
func (b *ROM) Model() string {
	if b == nil {
		return "none"
	}
	if model, ok := knownBootROMChecksums[b.checksum]; ok {
		return model
	}
	return "unknown"
}

// knownBootROMChecksums maps the checksums of the dumped DMG family boot
// ROMs to the model they come from.
var knownBootROMChecksums = map[string]string{
	DMG0: "Game Boy (DMG-0)",
	DMG:  "Game Boy (DMG-01)",
	MGB:  "Game Boy Pocket",
	SGB:  "Super Game Boy",
	SGB2: "Super Game Boy 2",
}

const (
	// DMG0 is the checksum of the early DMG boot ROM, only found in
	// Japanese launch units.
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	// DMG is the checksum of the common DMG-01 boot ROM.
	DMG = "32fbbd84168d3482956eb3c5051637f5"
	// MGB differs from DMG by a single byte, leaving 0xFF in A instead
	// of 0x01.
	MGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
	// SGB is the checksum of the Super Game Boy boot ROM.
	SGB = "d574d4f9c12f305074798f54c091a8b4"
	// SGB2 differs from SGB the same way MGB differs from DMG.
	SGB2 = "e0430bca9925fb9882148fd2dc2418c1"
)
