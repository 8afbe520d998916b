package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/sm83/internal/boot"
	"github.com/thelolagemann/sm83/internal/cpu"
)

// writeROM writes a 32kB ROM whose entry point runs program.
func writeROM(t *testing.T, program ...byte) string {
	t.Helper()
	rom := make([]byte, 32*1024)
	copy(rom[cpu.EntryPoint:], program)

	filename := filepath.Join(t.TempDir(), "test.gb")
	require.NoError(t, os.WriteFile(filename, rom, 0644))
	return filename
}

func TestRun(t *testing.T) {
	// LD A, 0x42; JR -2
	rom := writeROM(t, 0x3E, 0x42, 0x18, 0xFE)
	statePath := filepath.Join(t.TempDir(), "test.state")

	require.NoError(t, run([]string{"-rom", rom, "-save-state", statePath, "-log-level", "error"}))
	_, err := os.Stat(statePath)
	require.NoError(t, err)

	// resume from the saved state
	assert.NoError(t, run([]string{"-rom", rom, "-state", statePath, "-max-steps", "5", "-log-level", "error"}))
}

func TestRun_Config(t *testing.T) {
	rom := writeROM(t, 0x00, 0x00)
	config := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(config, []byte("rom: "+rom+"\nmax_steps: 1\nlog_level: error\n"), 0644))

	assert.NoError(t, run([]string{"-config", config}))
	assert.NoError(t, run([]string{"-config", config, "-start-pc", "0x0101"}))
	assert.Error(t, run([]string{"-config", config, "-start-pc", "nope"}))
}

func TestRun_BootROM(t *testing.T) {
	bootROM := make([]byte, boot.Size)
	copy(bootROM, []byte{0xC3, 0xFC, 0x00})
	copy(bootROM[0xFC:], []byte{0x3E, 0x01, 0xE0, 0x50})
	bootFile := filepath.Join(t.TempDir(), "dmg_boot.bin")
	require.NoError(t, os.WriteFile(bootFile, bootROM, 0644))

	// the cartridge faults straight away, proving the boot rom handed over
	rom := writeROM(t, 0xD3)
	assert.ErrorIs(t, run([]string{"-rom", rom, "-boot", bootFile, "-log-level", "error"}), cpu.ErrIllegalOpcode)

	short := filepath.Join(t.TempDir(), "short.bin")
	require.NoError(t, os.WriteFile(short, bootROM[:0x80], 0644))
	assert.ErrorIs(t, run([]string{"-rom", rom, "-boot", short, "-log-level", "error"}), boot.ErrSize)
}

func TestRun_Errors(t *testing.T) {
	// no rom
	assert.Error(t, run([]string{"-log-level", "error"}))

	// illegal opcode
	rom := writeROM(t, 0xD3)
	assert.ErrorIs(t, run([]string{"-rom", rom, "-log-level", "error"}), cpu.ErrIllegalOpcode)

	assert.Error(t, run([]string{"-unknown"}))
}
