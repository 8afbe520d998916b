package cartridge

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/sm83/internal/types"
)

// newTestROM returns a 32kB ROM-only image with a valid header.
func newTestROM(title string) []byte {
	rom := make([]byte, 32*1024)
	copy(rom[0x134:0x144], title)
	copy(rom[0x13F:0x143], "ABCD")
	rom[0x147] = uint8(ROM)
	rom[0x148] = 0x00
	rom[0x14C] = 0x02

	var x uint8
	for _, b := range rom[0x134:0x14D] {
		x = x - b - 1
	}
	rom[0x14D] = x
	rom[0x14E], rom[0x14F] = 0xBE, 0xEF

	return rom
}

func TestNewCartridge_Header(t *testing.T) {
	c, err := NewCartridge(newTestROM("TESTGAME"), nil)
	require.NoError(t, err)

	h := c.Header()
	assert.Equal(t, "TESTGAME", h.Title)
	assert.Equal(t, "ABCD", h.ManufacturerCode)
	assert.Equal(t, uint8(0x02), h.MaskROMVersion)
	assert.Equal(t, ROM, h.CartridgeType)
	assert.Equal(t, uint(32*1024), h.ROMSize)
	assert.Equal(t, uint16(0xBEEF), h.GlobalChecksum)
	assert.Equal(t, "DMG", h.Hardware())
	assert.False(t, h.GameboyColor())
	assert.NoError(t, c.Validate())
}

func TestNewCartridge_TooSmall(t *testing.T) {
	_, err := NewCartridge(make([]byte, 0x100), nil)
	assert.ErrorIs(t, err, ErrROMTooSmall)
}

func TestCartridge_Validate(t *testing.T) {
	rom := newTestROM("BROKEN")
	rom[0x14D]++        // header checksum
	rom[0x147] = 0x01   // MBC1
	rom = rom[:16*1024] // wrong size

	c, err := NewCartridge(rom, nil)
	require.NoError(t, err)

	err = c.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHeaderChecksum)
	assert.ErrorIs(t, err, ErrROMSize)
	assert.ErrorIs(t, err, ErrBanked)

	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	assert.Len(t, merr.Errors, 3)
}

func TestCartridge_ReadWrite(t *testing.T) {
	rom := newTestROM("RW")
	rom[0x0100] = 0x3E
	rom[0x0101] = 0x05

	c, err := NewCartridge(rom, nil)
	require.NoError(t, err)

	assert.Equal(t, uint8(0x3E), c.Read(0x0100))
	assert.Equal(t, uint16(0x053E), c.Read16(0x0100))

	// ROM is read only
	c.Write(0x0100, 0xFF)
	assert.Equal(t, uint8(0x3E), c.Read(0x0100))

	// external RAM is writable
	c.Write16(0xA000, 0x1234)
	assert.Equal(t, uint8(0x34), c.Read(0xA000))
	assert.Equal(t, uint8(0x12), c.Read(0xA001))

	// everything else is unmapped
	assert.Equal(t, uint8(0xFF), c.Read(0xC000))
}

func TestCartridge_Fingerprint(t *testing.T) {
	a, err := NewCartridge(newTestROM("A"), nil)
	require.NoError(t, err)
	b, err := NewCartridge(newTestROM("B"), nil)
	require.NoError(t, err)

	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	again, err := NewCartridge(newTestROM("A"), nil)
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), again.Fingerprint())
}

func TestCartridge_State(t *testing.T) {
	c, err := NewCartridge(newTestROM("SAVE"), nil)
	require.NoError(t, err)
	c.Write(0xBFFF, 0x77)

	s := types.NewState()
	c.Save(s)

	loaded, err := NewCartridge(newTestROM("SAVE"), nil)
	require.NoError(t, err)
	loaded.Load(s)
	assert.NoError(t, s.Err())
	assert.Equal(t, uint8(0x77), loaded.Read(0xBFFF))
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "MBC1", MBC1RAMBATT.String())
	assert.Equal(t, "Unknown(42)", Type(0x42).String())
	assert.True(t, ROMRAM.Flat())
	assert.False(t, MBC5.Flat())
}
