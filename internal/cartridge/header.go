package cartridge

import (
	"fmt"
	"strings"
)

type Flag uint8

const (
	FlagOnlyDMG Flag = iota
	FlagSupportsCGB
	FlagOnlyCGB
)

var (
	ramMAP = map[uint8]uint{
		0x00: 0,
		0x02: 8 * 1024,
		0x03: 32 * 1024,
		0x04: 128 * 1024,
		0x05: 64 * 1024,
	}
)

type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MMM01             Type = 0x0B
	MMM01RAM          Type = 0x0C
	MMM01RAMBATT      Type = 0x0D
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
	POCKETCAMERA      Type = 0x1F
	BANDAITAMA5       Type = 0xFD
	HUDSONHUC3        Type = 0xFE
	HUDSONHUC1        Type = 0xFF
)

// Flat reports whether the cartridge type maps its ROM without a memory
// bank controller.
func (t Type) Flat() bool {
	return t == ROM || t == ROMRAM || t == ROMRAMBATT
}

func (t Type) String() string {
	switch t {
	case ROM:
		return "ROM"
	case ROMRAM, ROMRAMBATT:
		return "ROM+RAM"
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return "MBC1"
	case MBC2, MBC2BATT:
		return "MBC2"
	case MMM01, MMM01RAM, MMM01RAMBATT:
		return "MMM01"
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT:
		return "MBC3"
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return "MBC5"
	case POCKETCAMERA:
		return "POCKET CAMERA"
	case BANDAITAMA5:
		return "TAMA5"
	case HUDSONHUC3:
		return "HuC3"
	case HUDSONHUC1:
		return "HuC1"
	}
	return fmt.Sprintf("Unknown(%02X)", uint8(t))
}

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on. None of it is
// consumed by the CPU.
type Header struct {
	// 0x0134-0x0143 - Title of the game
	Title string

	// 0x013F-0x0142 - ManufacturerCode of the game
	ManufacturerCode string

	// 0x0143 - CartridgeGBMode of the game. In older cartridges this byte was part
	// of the title, but the Colour Game Boy and later models interpret this byte
	// to determine if the cartridge is compatible with the Colour Game Boy.
	CartridgeGBMode Flag

	// 0x0144-0x0145 - NewLicenseeCode of the game.
	NewLicenseeCode string
	SGBFlag         bool
	CartridgeType   Type
	ROMSize         uint
	RAMSize         uint
	CountryCode     uint8
	OldLicenseeCode uint8
	// 0x014C - MaskROMVersion is the version number of the game.
	MaskROMVersion uint8
	HeaderChecksum uint8
	GlobalChecksum uint16

	raw [0x50]byte
}

// parseHeader parses the header of the given ROM and returns a Header.
func parseHeader(header []byte) Header {
	h := Header{}
	copy(h.raw[:], header)

	// parse the mode of the cartridge
	switch header[0x43] {
	case 0x80:
		h.CartridgeGBMode = FlagSupportsCGB
	case 0xC0:
		h.CartridgeGBMode = FlagOnlyCGB
	default:
		h.CartridgeGBMode = FlagOnlyDMG
	}

	// CGB aware cartridges give up the last title byte for the mode flag
	if h.CartridgeGBMode == FlagOnlyDMG {
		h.Title = asciiString(header[0x34:0x44])
	} else {
		h.Title = asciiString(header[0x34:0x43])
	}
	h.ManufacturerCode = asciiString(header[0x3F:0x43])
	h.NewLicenseeCode = asciiString(header[0x44:0x46])
	h.SGBFlag = header[0x46] == 0x03
	h.CartridgeType = Type(header[0x47])

	// parse the ROM size (calculated by 32kB x (1 << n))
	if header[0x48] < 16 {
		h.ROMSize = (32 * 1024) * (1 << header[0x48])
	}
	h.RAMSize = ramMAP[header[0x49]]
	h.CountryCode = header[0x4A]
	h.OldLicenseeCode = header[0x4B]
	h.MaskROMVersion = header[0x4C]
	h.HeaderChecksum = header[0x4D]

	// the global checksum is the only big endian value in the header
	h.GlobalChecksum = uint16(header[0x4E])<<8 | uint16(header[0x4F])

	return h
}

// asciiString decodes b as ASCII, stopping at the first NUL and
// replacing anything unprintable.
func asciiString(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		if c == 0 {
			break
		}
		if c < 0x20 || c > 0x7E {
			c = '?'
		}
		sb.WriteByte(c)
	}
	return strings.TrimRight(sb.String(), " ")
}

// computeHeaderChecksum returns the checksum over 0x0134-0x014C that the
// boot ROM verifies.
func (h *Header) computeHeaderChecksum() uint8 {
	var x uint8
	for _, b := range h.raw[0x34:0x4D] {
		x = x - b - 1
	}
	return x
}

func (h *Header) GameboyColor() bool {
	return h.CartridgeGBMode == FlagOnlyCGB || h.CartridgeGBMode == FlagSupportsCGB
}

func (h *Header) Hardware() string {
	switch h.CartridgeGBMode {
	case FlagOnlyDMG:
		return "DMG"
	case FlagSupportsCGB:
		return "CGB"
	case FlagOnlyCGB:
		return "CGB"
	default:
		return "Unknown"
	}
}

func (h *Header) String() string {
	return fmt.Sprintf("%s v%d Mode: %s | Type: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.MaskROMVersion, h.Hardware(), h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
