// Package cartridge provides the cartridge collaborator. The cartridge holds
// the game ROM and an optional 8kB window of external RAM, and decodes the
// header metadata. Bank switching is not emulated.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/hashicorp/go-multierror"
	"github.com/thelolagemann/sm83/internal/mmu"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

var (
	// ErrROMTooSmall is returned when an image cannot hold a header.
	ErrROMTooSmall = errors.New("rom too small to hold a header")
	// ErrHeaderChecksum is returned by Validate when the header checksum
	// does not match.
	ErrHeaderChecksum = errors.New("header checksum mismatch")
	// ErrROMSize is returned by Validate when the image size disagrees with
	// the header.
	ErrROMSize = errors.New("rom size mismatch")
	// ErrBanked is returned by Validate for cartridges that need a memory
	// bank controller.
	ErrBanked = errors.New("cartridge requires bank switching")
)

const (
	ramStart = 0xA000
	ramEnd   = 0xC000
)

// Cartridge represents a flat game cartridge.
type Cartridge struct {
	rom    []byte
	ram    [ramEnd - ramStart]byte
	header Header

	Log log.Logger
}

var _ mmu.Bus = (*Cartridge)(nil)

// NewCartridge parses the header of rom and returns a Cartridge
// serving it.
func NewCartridge(rom []byte, logger log.Logger) (*Cartridge, error) {
	if len(rom) < 0x150 {
		return nil, fmt.Errorf("%w: %d bytes", ErrROMTooSmall, len(rom))
	}
	if logger == nil {
		logger = log.NewNullLogger()
	}

	// parse the cartridge header (0x0100 - 0x014F)
	c := &Cartridge{
		rom:    rom,
		header: parseHeader(rom[0x100:0x150]),
		Log:    logger,
	}
	c.Log.Infof("cartridge: %s", c.header.String())

	return c, nil
}

func (c *Cartridge) Header() Header {
	return c.header
}

// Title returns the decoded cartridge title.
func (c *Cartridge) Title() string {
	return c.header.Title
}

// Fingerprint returns the xxhash of the ROM image, used to match save
// states to the cartridge that produced them.
func (c *Cartridge) Fingerprint() uint64 {
	return xxhash.Sum64(c.rom)
}

// Validate checks the header against the image, reporting every problem
// found.
func (c *Cartridge) Validate() error {
	var result *multierror.Error

	if sum := c.header.computeHeaderChecksum(); sum != c.header.HeaderChecksum {
		result = multierror.Append(result, fmt.Errorf("%w: computed %02X, header %02X", ErrHeaderChecksum, sum, c.header.HeaderChecksum))
	}
	if c.header.ROMSize != uint(len(c.rom)) {
		result = multierror.Append(result, fmt.Errorf("%w: header %d, image %d", ErrROMSize, c.header.ROMSize, len(c.rom)))
	}
	if !c.header.CartridgeType.Flat() {
		result = multierror.Append(result, fmt.Errorf("%w: %s", ErrBanked, c.header.CartridgeType))
	}

	return result.ErrorOrNil()
}

// Read returns the value at the given address. Unmapped addresses read
// as 0xFF.
func (c *Cartridge) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		if int(address) < len(c.rom) {
			return c.rom[address]
		}
	case address >= ramStart && address < ramEnd:
		return c.ram[address-ramStart]
	}
	return 0xFF
}

// Write writes the value to the given address. Only the external RAM
// window is writable.
func (c *Cartridge) Write(address uint16, value uint8) {
	if address >= ramStart && address < ramEnd {
		c.ram[address-ramStart] = value
	}
}

func (c *Cartridge) Read16(address uint16) uint16 {
	return mmu.ReadWord(c, address)
}

func (c *Cartridge) Write16(address uint16, value uint16) {
	mmu.WriteWord(c, address, value)
}

var _ types.Stater = (*Cartridge)(nil)

func (c *Cartridge) Load(s *types.State) {
	s.ReadData(c.ram[:])
}

func (c *Cartridge) Save(s *types.State) {
	s.WriteData(c.ram[:])
}
