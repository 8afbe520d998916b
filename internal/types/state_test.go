package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_RoundTrip(t *testing.T) {
	s := NewState()
	s.Write8(0x42)
	s.Write16(0xBEEF)
	s.Write32(0xDEADBEEF)
	s.WriteBool(true)
	s.WriteData([]byte{1, 2, 3})

	assert.Equal(t, uint8(0x42), s.Read8())
	assert.Equal(t, uint16(0xBEEF), s.Read16())
	assert.Equal(t, uint32(0xDEADBEEF), s.Read32())
	assert.True(t, s.ReadBool())

	p := make([]byte, 3)
	s.ReadData(p)
	assert.Equal(t, []byte{1, 2, 3}, p)
	assert.NoError(t, s.Err())

	s.ResetPosition()
	assert.Equal(t, uint8(0x42), s.Read8())
}

func TestState_Underflow(t *testing.T) {
	s := StateFromBytes([]byte{0x01})
	assert.Equal(t, uint16(0), s.Read16())
	assert.ErrorIs(t, s.Err(), ErrStateCorrupt)

	// the first error sticks
	s.Read8()
	assert.ErrorIs(t, s.Err(), ErrStateCorrupt)
}

func TestState_Compress(t *testing.T) {
	s := NewState()
	for i := 0; i < 0x1000; i++ {
		s.Write8(uint8(i))
	}

	data, err := s.Compress()
	require.NoError(t, err)
	assert.Less(t, len(data), len(s.Bytes()))

	loaded, err := StateFromCompressed(data)
	require.NoError(t, err)
	assert.Equal(t, s.Bytes(), loaded.Bytes())
}

func TestState_CompressCorrupt(t *testing.T) {
	s := NewState()
	s.WriteData([]byte("registers and memory"))
	data, err := s.Compress()
	require.NoError(t, err)

	t.Run("checksum", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[5] ^= 0xFF
		_, err := StateFromCompressed(bad)
		assert.True(t, errors.Is(err, ErrStateCorrupt))
	})
	t.Run("magic", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[0] = 'X'
		_, err := StateFromCompressed(bad)
		assert.ErrorIs(t, err, ErrStateFormat)
	})
	t.Run("short", func(t *testing.T) {
		_, err := StateFromCompressed(data[:8])
		assert.ErrorIs(t, err, ErrStateFormat)
	})
}
