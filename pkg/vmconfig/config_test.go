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

package vmconfig

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rv64core/pkg/decoder"
)

func TestDefaultConfigEnablesEveryExtension(t *testing.T) {
	cfg := DefaultConfig()
	want := decoder.ExtM | decoder.ExtA | decoder.ExtC | decoder.ExtZb | decoder.ExtMop
	assert.Equal(t, want, cfg.DecoderExtensions())
	assert.Equal(t, decoder.Version1, cfg.DecoderVersion(), "default ISA version should be VERSION1")
}

func TestDecoderExtensionsSubset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Extensions.A = false
	cfg.Extensions.Mop = false
	want := decoder.ExtM | decoder.ExtC | decoder.ExtZb
	assert.Equal(t, want, cfg.DecoderExtensions())
}

func TestDecoderVersionV0(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ISA.Version = "v0"
	assert.Equal(t, decoder.Version0, cfg.DecoderVersion())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := DefaultConfig()
	cfg.Execution.MaxCycles = 12345
	cfg.Trace.Enable = true
	cfg.Trace.OutputFile = "custom.log"
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.EqualValues(t, 12345, loaded.Execution.MaxCycles)
	assert.True(t, loaded.Trace.Enable)
	assert.Equal(t, "custom.log", loaded.Trace.OutputFile)
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nonexistent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Execution.MaxCycles, cfg.Execution.MaxCycles, "expected defaults when file is missing")
}
