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

package exec

import (
	"rv64core/pkg/isa"
	"rv64core/pkg/machine"
	"rv64core/pkg/reg"
)

// addr computes rs1 + imm for a load or store, the standard RISC-V
// base+offset addressing mode (rvi.go's load/store helpers do the same
// with native int64 arithmetic).
func addr[W reg.Word](m *machine.Machine[W], d isa.Decoded) W {
	base := m.GetReg(d.RS1())
	return base.Add(base.FromInt32(d.Imm())).(W)
}

// checkBoundary computes end = addr+bytes; a load that runs past
// RISCV_MAX_MEMORY is left to the Memory implementation's own bounds
// check. Both versions reject an end that overflows the address
// width (wraps below addr). VERSION0 is the stricter variant and
// additionally rejects end == RISCV_MAX_MEMORY; VERSION1 drops that
// equality rejection, so a load ending exactly at the top of memory is
// allowed to succeed.
func checkBoundary[W reg.Word](m *machine.Machine[W], d isa.Decoded, a W, bytes uint64) error {
	addrU64 := a.ToU64()
	end := addrU64 + bytes
	if end < addrU64 {
		return machine.New(machine.MemOutOfBound, m.PC.ToU64(), "load address overflow")
	}
	if !d.IsVersion1() && end == m.Mem.MaxMemory() {
		return machine.New(machine.MemOutOfBound, m.PC.ToU64(), "load reaches end of memory")
	}
	return nil
}

func loadB[W reg.Word](m *machine.Machine[W], d isa.Decoded, signed bool) (Flags, error) {
	a := addr(m, d)
	if err := checkBoundary(m, d, a, 1); err != nil {
		return Flags{}, err
	}
	v, err := m.Mem.LoadU8(a)
	if err != nil {
		return Flags{}, err
	}
	r := a.FromUint64(uint64(v))
	if signed {
		r = r.SignExtend(8)
	}
	return storeW(m, d, r)
}

func loadH[W reg.Word](m *machine.Machine[W], d isa.Decoded, signed bool) (Flags, error) {
	a := addr(m, d)
	if err := checkBoundary(m, d, a, 2); err != nil {
		return Flags{}, err
	}
	v, err := m.Mem.LoadU16(a)
	if err != nil {
		return Flags{}, err
	}
	r := a.FromUint64(uint64(v))
	if signed {
		r = r.SignExtend(16)
	}
	return storeW(m, d, r)
}

func loadW[W reg.Word](m *machine.Machine[W], d isa.Decoded, signed bool) (Flags, error) {
	a := addr(m, d)
	if err := checkBoundary(m, d, a, 4); err != nil {
		return Flags{}, err
	}
	v, err := m.Mem.LoadU32(a)
	if err != nil {
		return Flags{}, err
	}
	r := a.FromUint64(uint64(v))
	if signed {
		r = r.SignExtend(32)
	}
	return storeW(m, d, r)
}

func loadD[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := addr(m, d)
	if err := checkBoundary(m, d, a, 8); err != nil {
		return Flags{}, err
	}
	v, err := m.Mem.LoadU64(a)
	if err != nil {
		return Flags{}, err
	}
	return storeW(m, d, a.FromUint64(v))
}

func LbV0[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error)  { return loadB(m, d, true) }
func LbV1[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error)  { return loadB(m, d, true) }
func LbuV0[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) { return loadB(m, d, false) }
func LbuV1[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) { return loadB(m, d, false) }

func LhV0[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error)  { return loadH(m, d, true) }
func LhV1[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error)  { return loadH(m, d, true) }
func LhuV0[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) { return loadH(m, d, false) }
func LhuV1[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) { return loadH(m, d, false) }

func LwV0[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error)  { return loadW(m, d, true) }
func LwV1[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error)  { return loadW(m, d, true) }
func LwuV0[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) { return loadW(m, d, false) }
func LwuV1[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) { return loadW(m, d, false) }

func LdV0[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) { return loadD(m, d) }
func LdV1[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) { return loadD(m, d) }

func Sb[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := addr(m, d)
	m.InvalidateReservation(a)
	return Flags{}, m.Mem.StoreU8(a, m.GetReg(d.RS2()).ToU8())
}

func Sh[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := addr(m, d)
	m.InvalidateReservation(a)
	return Flags{}, m.Mem.StoreU16(a, m.GetReg(d.RS2()).ToU16())
}

func Sw[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := addr(m, d)
	m.InvalidateReservation(a)
	return Flags{}, m.Mem.StoreU32(a, m.GetReg(d.RS2()).ToU32())
}

func Sd[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := addr(m, d)
	m.InvalidateReservation(a)
	return Flags{}, m.Mem.StoreU64(a, m.GetReg(d.RS2()).ToU64())
}
