package machine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/thelolagemann/sm83/pkg/log"
	"github.com/thelolagemann/sm83/pkg/utils"
	"gopkg.in/yaml.v3"
)

// ErrNoROM is returned by Config.Validate when no ROM is given.
var ErrNoROM = errors.New("no rom given")

// Config describes a headless run. It is usually read from a YAML file,
// with command line flags layered on top.
type Config struct {
	// ROM is the cartridge image to run, optionally compressed.
	ROM string `yaml:"rom"`
	// BootROM is a boot ROM to run before the cartridge.
	BootROM string `yaml:"boot_rom"`
	// State is a save state to restore before running.
	State string `yaml:"state"`
	// SaveState is where the state is written once the run stops.
	SaveState string `yaml:"save_state"`
	// MaxSteps bounds the run, zero runs until the program parks itself.
	MaxSteps uint64 `yaml:"max_steps"`
	// StartPC overrides the entry point.
	StartPC *uint16 `yaml:"start_pc"`
	// PostBoot seeds the registers the boot ROM leaves behind.
	PostBoot bool `yaml:"post_boot"`
	// Trace logs every executed instruction.
	Trace bool `yaml:"trace"`
	// LogLevel is a logrus level name, info when empty.
	LogLevel string `yaml:"log_level"`
}

// LoadConfig reads a YAML config file. Unknown keys are rejected.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	c := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	return c, nil
}

// Validate reports every problem with the config at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.ROM == "" {
		result = multierror.Append(result, ErrNoROM)
	} else if _, err := os.Stat(c.ROM); err != nil {
		result = multierror.Append(result, fmt.Errorf("rom: %w", err))
	}
	if c.BootROM != "" {
		if _, err := os.Stat(c.BootROM); err != nil {
			result = multierror.Append(result, fmt.Errorf("boot_rom: %w", err))
		}
	}
	if c.State != "" {
		if _, err := os.Stat(c.State); err != nil {
			result = multierror.Append(result, fmt.Errorf("state: %w", err))
		}
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, fmt.Errorf("log_level: %w", err))
	}
	if c.Trace && c.LogLevel != "" && c.LogLevel != "debug" && c.LogLevel != "trace" {
		result = multierror.Append(result, fmt.Errorf("trace needs log_level debug, got %q", c.LogLevel))
	}

	return result.ErrorOrNil()
}

// Options converts the config into machine options. The boot ROM and state
// files, if any, are read here.
func (c *Config) Options(logger log.Logger) ([]Opt, error) {
	opts := []Opt{WithLogger(logger)}
	if c.PostBoot {
		opts = append(opts, WithPostBootState())
	}
	if c.Trace {
		opts = append(opts, Debug())
	}
	if c.StartPC != nil {
		opts = append(opts, WithStartPC(*c.StartPC))
	}
	if c.BootROM != "" {
		rom, err := utils.LoadFile(c.BootROM)
		if err != nil {
			return nil, fmt.Errorf("reading boot rom: %w", err)
		}
		opts = append(opts, WithBootROM(rom))
	}
	if c.State != "" {
		state, err := utils.LoadFile(c.State)
		if err != nil {
			return nil, fmt.Errorf("reading state: %w", err)
		}
		opts = append(opts, WithState(state))
	}

	return opts, nil
}
