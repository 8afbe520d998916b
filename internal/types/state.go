package types

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash"
)

var (
	// ErrStateCorrupt is returned when a state is truncated or fails its checksum.
	ErrStateCorrupt = errors.New("state corrupt")
	// ErrStateFormat is returned when a compressed state has an unknown header.
	ErrStateFormat = errors.New("unknown state format")
)

// stateMagic prefixes every compressed state.
var stateMagic = [4]byte{'S', 'M', '8', '3'}

const stateVersion = 1

// State represents a machine state. This is used to save
// and load states between runs.
type State struct {
	raw           []byte // raw state data (for serialization)
	readPosition  int    // current read position
	writePosition int    // current write position
	err           error  // first read error encountered
}

// Stater is an interface that allows an object to be saved
// and loaded from a state.
type Stater interface {
	Load(*State) // Load the state of the object
	Save(*State) // Save the state of the object
}

// NewState creates a new state.
func NewState() *State {
	return &State{
		raw: make([]byte, 0),
	}
}

// ResetPosition resets the read and write positions,
// allowing the state to be read from the beginning.
func (s *State) ResetPosition() {
	s.readPosition = 0
	s.writePosition = 0
	s.err = nil
}

// StateFromBytes creates a new state from the given bytes.
func StateFromBytes(raw []byte) *State {
	return &State{
		raw: raw,
	}
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
	s.writePosition++
}

func (s *State) Write16(value uint16) {
	s.raw = append(s.raw, byte(value), byte(value>>8))
	s.writePosition += 2
}

func (s *State) Write32(value uint32) {
	s.raw = append(s.raw, byte(value), byte(value>>8), byte(value>>16), byte(value>>24))
	s.writePosition += 4
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
	s.writePosition++
}

func (s *State) WriteData(data []byte) {
	s.raw = append(s.raw, data...)
	s.writePosition += len(data)
}

// take returns the next n bytes, or nil once the state has run dry.
func (s *State) take(n int) []byte {
	if s.err != nil {
		return nil
	}
	if s.readPosition+n > len(s.raw) {
		s.err = fmt.Errorf("%w: read of %d bytes at offset %d exceeds %d", ErrStateCorrupt, n, s.readPosition, len(s.raw))
		return nil
	}
	b := s.raw[s.readPosition : s.readPosition+n]
	s.readPosition += n
	return b
}

func (s *State) Read8() uint8 {
	b := s.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (s *State) Read16() uint16 {
	b := s.take(2)
	if b == nil {
		return 0
	}
	return uint16(b[0]) | uint16(b[1])<<8
}

func (s *State) Read32() uint32 {
	b := s.take(4)
	if b == nil {
		return 0
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func (s *State) ReadBool() bool {
	return s.Read8() != 0
}

func (s *State) ReadData(p []byte) {
	if b := s.take(len(p)); b != nil {
		copy(p, b)
	}
}

// Err returns the first error encountered while reading the state.
func (s *State) Err() error {
	return s.err
}

func (s *State) SaveToFile(filename string) error {
	data, err := s.Compress()
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

func (s *State) Bytes() []byte {
	return s.raw
}

// Compress returns the state as a checksummed, brotli compressed blob.
//
//	0x00 - magic "SM83"
//	0x04 - version
//	0x05 - xxhash64 of the raw state (little endian)
//	0x0D - raw state length (little endian)
//	0x11 - brotli stream
func (s *State) Compress() ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(stateMagic[:])
	buf.WriteByte(stateVersion)

	var header [12]byte
	binary.LittleEndian.PutUint64(header[0:], xxhash.Sum64(s.raw))
	binary.LittleEndian.PutUint32(header[8:], uint32(len(s.raw)))
	buf.Write(header[:])

	w := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
	if _, err := w.Write(s.raw); err != nil {
		return nil, fmt.Errorf("compressing state: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compressing state: %w", err)
	}

	return buf.Bytes(), nil
}

// StateFromCompressed reverses State.Compress, verifying the checksum.
func StateFromCompressed(data []byte) (*State, error) {
	if len(data) < 17 || !bytes.Equal(data[:4], stateMagic[:]) {
		return nil, ErrStateFormat
	}
	if data[4] != stateVersion {
		return nil, fmt.Errorf("%w: version %d", ErrStateFormat, data[4])
	}

	sum := binary.LittleEndian.Uint64(data[5:])
	size := binary.LittleEndian.Uint32(data[13:])

	raw, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data[17:])))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateCorrupt, err)
	}
	if uint32(len(raw)) != size {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrStateCorrupt, size, len(raw))
	}
	if xxhash.Sum64(raw) != sum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrStateCorrupt)
	}

	return StateFromBytes(raw), nil
}
