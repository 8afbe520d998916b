package machine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/sm83/internal/boot"
	"github.com/thelolagemann/sm83/pkg/log"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	filename := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(filename, data, 0644))
	return filename
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	filename := writeFile(t, dir, "run.yaml", []byte(`
rom: game.gb
boot_rom: dmg_boot.bin
save_state: game.state
max_steps: 1000
start_pc: 0x0150
post_boot: true
trace: true
log_level: debug
`))

	c, err := LoadConfig(filename)
	require.NoError(t, err)
	assert.Equal(t, "game.gb", c.ROM)
	assert.Equal(t, "dmg_boot.bin", c.BootROM)
	assert.Equal(t, "game.state", c.SaveState)
	assert.Equal(t, uint64(1000), c.MaxSteps)
	require.NotNil(t, c.StartPC)
	assert.Equal(t, uint16(0x0150), *c.StartPC)
	assert.True(t, c.PostBoot)
	assert.True(t, c.Trace)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(writeFile(t, dir, "unknown.yaml", []byte("speed: 2\n")))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, dir, "overflow.yaml", []byte("start_pc: 70000\n")))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	c, err := LoadConfig(writeFile(t, dir, "empty.yaml", nil))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, c)
}

func TestConfig_Validate(t *testing.T) {
	dir := t.TempDir()
	rom := writeFile(t, dir, "game.gb", newTestROM("CONFIG"))

	c := &Config{ROM: rom}
	assert.NoError(t, c.Validate())

	c = &Config{LogLevel: "loud", State: filepath.Join(dir, "missing.state")}
	err := c.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 3)
	assert.ErrorIs(t, err, ErrNoROM)

	c = &Config{ROM: rom, Trace: true, LogLevel: "info"}
	assert.Error(t, c.Validate())
}

func TestConfig_Options(t *testing.T) {
	dir := t.TempDir()
	romData := newTestROM("CONFIG")

	source, err := New(romData)
	require.NoError(t, err)
	state, err := source.SaveState()
	require.NoError(t, err)

	pc := uint16(0x0150)
	c := &Config{
		State:    writeFile(t, dir, "game.state", state),
		StartPC:  &pc,
		PostBoot: true,
	}
	opts, err := c.Options(log.NewNullLogger())
	require.NoError(t, err)

	m, err := New(romData, opts...)
	require.NoError(t, err)
	// the restored state wins over the start options
	assert.Equal(t, source.CPU.PC, m.CPU.PC)
	assert.Equal(t, source.CPU.SP, m.CPU.SP)

	c.State = filepath.Join(dir, "missing.state")
	_, err = c.Options(log.NewNullLogger())
	assert.Error(t, err)

	c = &Config{BootROM: writeFile(t, dir, "boot.bin", make([]byte, boot.Size))}
	opts, err = c.Options(log.NewNullLogger())
	require.NoError(t, err)
	m, err = New(romData, opts...)
	require.NoError(t, err)
	assert.True(t, m.MMU.BootMapped())
	assert.Equal(t, uint16(0x0000), m.CPU.PC)
}
