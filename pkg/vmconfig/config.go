// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package vmconfig holds the on-disk TOML configuration for a core run:
// which extensions are enabled, the ISA version, execution limits, the
// decoded-instruction cache size, and trace output settings.
package vmconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"rv64core/pkg/decoder"
)

// Config is the full on-disk configuration, decoded from/encoded to TOML.
type Config struct {
	Extensions struct {
		M   bool `toml:"m"`
		A   bool `toml:"a"`
		C   bool `toml:"c"`
		Zb  bool `toml:"zb"`
		Mop bool `toml:"mop"`
	} `toml:"extensions"`

	ISA struct {
		// Version selects VERSION0 ("v0") or VERSION1 ("v1") load/JALR
		// semantics; see pkg/decoder.ISAVersion.
		Version string `toml:"version"`
	} `toml:"isa"`

	Execution struct {
		MaxCycles    uint64 `toml:"max_cycles"`
		EntryPoint   uint64 `toml:"entry_point"`
		StackSize    uint64 `toml:"stack_size"`
		MemorySize   uint64 `toml:"memory_size"`
		DecodeCache  int    `toml:"decode_cache_entries"`
	} `toml:"execution"`

	Trace struct {
		Enable     bool   `toml:"enable"`
		OutputFile string `toml:"output_file"`
	} `toml:"trace"`
}

// DefaultConfig returns the out-of-the-box configuration: every extension
// this core implements enabled, VERSION1 semantics, no cycle limit
// (MaxCycles 0), and tracing off.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Extensions.M = true
	cfg.Extensions.A = true
	cfg.Extensions.C = true
	cfg.Extensions.Zb = true
	cfg.Extensions.Mop = true

	cfg.ISA.Version = "v1"

	cfg.Execution.MaxCycles = 0 // unbounded
	cfg.Execution.EntryPoint = 0x10000
	cfg.Execution.StackSize = 1 << 20 // 1MiB
	cfg.Execution.MemorySize = 64 << 20
	cfg.Execution.DecodeCache = 1024

	cfg.Trace.Enable = false
	cfg.Trace.OutputFile = "trace.log"

	return cfg
}

// GetConfigPath returns the platform-specific config file path,
// ~/.config/rv64core/config.toml on macOS/Linux and the equivalent under
// %APPDATA% on Windows, falling back to the current directory if the home
// directory can't be resolved.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "rv64core")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "rv64core")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// GetLogPath returns the platform-specific directory for trace/log output.
func GetLogPath() string {
	var logDir string

	switch runtime.GOOS {
	case "windows":
		logDir = os.Getenv("APPDATA")
		if logDir == "" {
			logDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		logDir = filepath.Join(logDir, "rv64core", "logs")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "logs"
		}
		logDir = filepath.Join(homeDir, ".local", "share", "rv64core", "logs")

	default:
		return "logs"
	}

	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "logs"
	}

	return logDir
}

// DecoderExtensions converts the enabled extension flags into the bitmap
// pkg/decoder.New expects.
func (c *Config) DecoderExtensions() decoder.Extensions {
	var ext decoder.Extensions
	if c.Extensions.M {
		ext |= decoder.ExtM
	}
	if c.Extensions.A {
		ext |= decoder.ExtA
	}
	if c.Extensions.C {
		ext |= decoder.ExtC
	}
	if c.Extensions.Zb {
		ext |= decoder.ExtZb
	}
	if c.Extensions.Mop {
		ext |= decoder.ExtMop
	}
	return ext
}

// DecoderVersion converts the ISA.Version string into pkg/decoder's
// ISAVersion, defaulting to VERSION1 for anything other than "v0".
func (c *Config) DecoderVersion() decoder.ISAVersion {
	if c.ISA.Version == "v0" {
		return decoder.Version0
	}
	return decoder.Version1
}

// Load reads configuration from the default config file, returning
// defaults if it does not exist.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads configuration from path, returning defaults if it does
// not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes configuration to path, creating parent directories as
// needed.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
