package machine

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/utils"
)

// ErrStateMismatch is returned when a state was saved with a different
// cartridge inserted.
var ErrStateMismatch = errors.New("state belongs to another cartridge")

// fingerprint identifies the inserted cartridge, zero when running a
// bare program.
func (m *Machine) fingerprint() uint64 {
	if m.Cartridge == nil {
		return 0
	}
	return m.Cartridge.Fingerprint()
}

// Save writes the machine state to s.
func (m *Machine) Save(s *types.State) {
	m.CPU.Save(s)
	m.MMU.Save(s)
	if m.Cartridge != nil {
		m.Cartridge.Save(s)
	}
}

// Load restores the machine state from s.
func (m *Machine) Load(s *types.State) {
	m.CPU.Load(s)
	m.MMU.Load(s)
	if m.Cartridge != nil {
		m.Cartridge.Load(s)
	}
}

var _ types.Stater = (*Machine)(nil)

// snapshot returns the machine state prefixed by the cartridge
// fingerprint.
func (m *Machine) snapshot() *types.State {
	s := types.NewState()
	fingerprint := m.fingerprint()
	s.Write32(uint32(fingerprint))
	s.Write32(uint32(fingerprint >> 32))
	m.Save(s)
	return s
}

// SaveState returns the compressed machine state.
func (m *Machine) SaveState() ([]byte, error) {
	return m.snapshot().Compress()
}

// LoadState restores a state returned by SaveState. The state must have
// been saved with the same cartridge.
func (m *Machine) LoadState(data []byte) error {
	s, err := types.StateFromCompressed(data)
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	fingerprint := uint64(s.Read32()) | uint64(s.Read32())<<32
	if err := s.Err(); err != nil {
		return fmt.Errorf("loading state: %w", err)
	}
	if fingerprint != m.fingerprint() {
		return fmt.Errorf("%w: %016X, expected %016X", ErrStateMismatch, fingerprint, m.fingerprint())
	}

	m.Load(s)
	if err := s.Err(); err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	m.Infof("restored state at PC %04X", m.CPU.PC)
	return nil
}

// SaveStateToFile writes the compressed machine state to filename.
func (m *Machine) SaveStateToFile(filename string) error {
	if err := m.snapshot().SaveToFile(filename); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	m.Infof("saved state to %s", filename)
	return nil
}

// LoadStateFromFile restores a state written by SaveStateToFile. The file
// may itself be compressed or archived.
func (m *Machine) LoadStateFromFile(filename string) error {
	data, err := utils.LoadFile(filename)
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}
	return m.LoadState(data)
}
