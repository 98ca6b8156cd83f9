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

// Package decoder turns raw instruction bytes into isa.Decoded words
// (component C, spec.md section 4.3). The 32-bit path generalizes the
// teacher's decode.go funct7|funct3|opcode lookup table to the expanded
// opcode space (M/A/Zb*/Mop); the 16-bit (RVC) path generalizes rvc.go's
// per-form decoders, expanding each compressed form into its base
// instruction's isa.Decoded encoding rather than a distinct opcode.
package decoder

import (
	"rv64core/pkg/isa"
	"rv64core/pkg/machine"
)

// Extensions is the bitmap of enabled ISA extensions (spec.md section 5);
// a disabled extension's encodings decode as InvalidInstruction.
type Extensions uint8

const (
	ExtM Extensions = 1 << iota
	ExtA
	ExtC
	ExtZb
	ExtMop
)

// ISAVersion selects between VERSION0 and VERSION1 opcodes for loads and
// JALR. Both versions reject a load whose end address overflows; VERSION0
// also rejects a load ending exactly at RISCV_MAX_MEMORY, which VERSION1
// allows. JALR behaves the same in both.
type ISAVersion uint8

const (
	Version0 ISAVersion = iota
	Version1
)

// Decoder decodes instruction bytes under a fixed extension set and ISA
// version.
type Decoder struct {
	Ext     Extensions
	Version ISAVersion
}

func New(ext Extensions, ver ISAVersion) *Decoder {
	return &Decoder{Ext: ext, Version: ver}
}

func (d *Decoder) versionFlag() uint8 {
	if d.Version == Version1 {
		return 1 << 4 // flgVersion1, mirrored from isa.Decoded's private const
	}
	return 0
}

// Decode decodes the instruction at pc from b (2 to 4 bytes available) and
// returns the packed word and its raw length in bytes.
func (d *Decoder) Decode(pc uint64, b []byte) (isa.Decoded, int, error) {
	if len(b) < 2 {
		return 0, 0, machine.New(machine.InvalidInstruction, pc, "fewer than 2 bytes available")
	}
	if b[0]&0x3 != 0x3 {
		if d.Ext&ExtC == 0 {
			return 0, 0, machine.New(machine.InvalidInstruction, pc, "compressed instruction but C extension disabled")
		}
		word := uint16(b[1])<<8 | uint16(b[0])
		dec, err := d.decode16(word)
		if err != nil {
			return 0, 0, err
		}
		return withLength(dec, 2), 2, nil
	}
	if len(b) < 4 {
		return 0, 0, machine.New(machine.InvalidInstruction, pc, "fewer than 4 bytes available for a 32-bit instruction")
	}
	in := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	dec, err := d.decode32(pc, in)
	if err != nil {
		return 0, 0, err
	}
	return withLength(dec, 4), 4, nil
}

// withLength packs the raw length (2 or 4, >>1) into flg bits 0-3, leaving
// any other flag bits (e.g. version) already set by the per-form packer.
func withLength(dec isa.Decoded, length uint8) isa.Decoded {
	lengthBits := length >> 1
	return isa.Decoded(uint64(dec) | uint64(lengthBits)<<24)
}
