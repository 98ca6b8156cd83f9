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

// Package flatmem implements pkg/machine.Memory as a single bounded byte
// slice with little-endian loads and stores, generalizing the teacher's
// vm.go Mem []byte field (and its Memory()/pushUint64 helpers) into the
// pluggable collaborator the Machine now depends on instead of owning.
package flatmem

import (
	"rv64core/pkg/machine"
	"rv64core/pkg/reg"
)

// Flat is a flat, bounds-checked byte-addressable memory of fixed size.
type Flat[W reg.Word] struct {
	bytes []byte
}

// New allocates a Flat memory of the given size in bytes.
func New[W reg.Word](size uint64) *Flat[W] {
	return &Flat[W]{bytes: make([]byte, size)}
}

// Load returns the underlying slice, for ELF loading and stack setup by
// cmd/rv64run; mutating it directly bypasses store-reservation invalidation
// and should only be used before execution starts.
func (f *Flat[W]) Load() []byte { return f.bytes }

func (f *Flat[W]) boundsCheck(addr uint64, n int) error {
	if addr+uint64(n) > uint64(len(f.bytes)) || addr+uint64(n) < addr {
		return machine.New(machine.MemOutOfBound, 0, "address out of bound")
	}
	return nil
}

func (f *Flat[W]) LoadU8(addr W) (uint8, error) {
	a := addr.ToU64()
	if err := f.boundsCheck(a, 1); err != nil {
		return 0, err
	}
	return f.bytes[a], nil
}

func (f *Flat[W]) LoadU16(addr W) (uint16, error) {
	a := addr.ToU64()
	if err := f.boundsCheck(a, 2); err != nil {
		return 0, err
	}
	return uint16(f.bytes[a]) | uint16(f.bytes[a+1])<<8, nil
}

func (f *Flat[W]) LoadU32(addr W) (uint32, error) {
	a := addr.ToU64()
	if err := f.boundsCheck(a, 4); err != nil {
		return 0, err
	}
	return uint32(f.bytes[a]) | uint32(f.bytes[a+1])<<8 |
		uint32(f.bytes[a+2])<<16 | uint32(f.bytes[a+3])<<24, nil
}

func (f *Flat[W]) LoadU64(addr W) (uint64, error) {
	a := addr.ToU64()
	if err := f.boundsCheck(a, 8); err != nil {
		return 0, err
	}
	return uint64(f.bytes[a]) | uint64(f.bytes[a+1])<<8 |
		uint64(f.bytes[a+2])<<16 | uint64(f.bytes[a+3])<<24 |
		uint64(f.bytes[a+4])<<32 | uint64(f.bytes[a+5])<<40 |
		uint64(f.bytes[a+6])<<48 | uint64(f.bytes[a+7])<<56, nil
}

func (f *Flat[W]) StoreU8(addr W, v uint8) error {
	a := addr.ToU64()
	if err := f.boundsCheck(a, 1); err != nil {
		return err
	}
	f.bytes[a] = v
	return nil
}

func (f *Flat[W]) StoreU16(addr W, v uint16) error {
	a := addr.ToU64()
	if err := f.boundsCheck(a, 2); err != nil {
		return err
	}
	f.bytes[a] = byte(v)
	f.bytes[a+1] = byte(v >> 8)
	return nil
}

func (f *Flat[W]) StoreU32(addr W, v uint32) error {
	a := addr.ToU64()
	if err := f.boundsCheck(a, 4); err != nil {
		return err
	}
	f.bytes[a] = byte(v)
	f.bytes[a+1] = byte(v >> 8)
	f.bytes[a+2] = byte(v >> 16)
	f.bytes[a+3] = byte(v >> 24)
	return nil
}

func (f *Flat[W]) StoreU64(addr W, v uint64) error {
	a := addr.ToU64()
	if err := f.boundsCheck(a, 8); err != nil {
		return err
	}
	f.bytes[a] = byte(v)
	f.bytes[a+1] = byte(v >> 8)
	f.bytes[a+2] = byte(v >> 16)
	f.bytes[a+3] = byte(v >> 24)
	f.bytes[a+4] = byte(v >> 32)
	f.bytes[a+5] = byte(v >> 40)
	f.bytes[a+6] = byte(v >> 48)
	f.bytes[a+7] = byte(v >> 56)
	return nil
}

// FetchInstruction returns up to 4 bytes starting at addr, fewer near the
// end of memory (the decoder only needs 2 bytes for a compressed
// instruction).
func (f *Flat[W]) FetchInstruction(addr W) ([]byte, error) {
	a := addr.ToU64()
	if a >= uint64(len(f.bytes)) {
		return nil, machine.New(machine.MemOutOfBound, a, "fetch past end of memory")
	}
	end := a + 4
	if end > uint64(len(f.bytes)) {
		end = uint64(len(f.bytes))
	}
	return f.bytes[a:end], nil
}

// MaxMemory returns RISCV_MAX_MEMORY (spec.md section 2): the bound loads
// and stores are checked against, and the value VERSION0 loads compare a
// computed end address against for the boundary-equality rejection.
func (f *Flat[W]) MaxMemory() uint64 { return uint64(len(f.bytes)) }
