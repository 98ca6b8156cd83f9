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

// LrW loads a sign-extended word from rs1 and establishes a reservation on
// that address for a matching SC, per the A-extension's LR/SC pair
// (spec.md section 4.4).
func LrW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	v, err := m.Mem.LoadU32(a)
	if err != nil {
		return Flags{}, err
	}
	m.Reserve(a)
	return storeW(m, d, a.FromUint64(uint64(v)).SignExtend(32))
}

func LrD[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	v, err := m.Mem.LoadU64(a)
	if err != nil {
		return Flags{}, err
	}
	m.Reserve(a)
	return storeW(m, d, a.FromUint64(v))
}

// ScW stores rs2's low 32 bits to rs1 only if the LR reservation on that
// address still holds, writing 0 to rd on success and 1 on failure (the
// RISC-V convention), then invalidating the reservation either way.
func ScW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	ok := m.CheckReservation(a)
	if ok {
		if err := m.Mem.StoreU32(a, m.GetReg(d.RS2()).ToU32()); err != nil {
			return Flags{}, err
		}
	}
	m.ClearReservation()
	return storeW(m, d, boolWord(a, !ok))
}

func ScD[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	ok := m.CheckReservation(a)
	if ok {
		if err := m.Mem.StoreU64(a, m.GetReg(d.RS2()).ToU64()); err != nil {
			return Flags{}, err
		}
	}
	m.ClearReservation()
	return storeW(m, d, boolWord(a, !ok))
}

// amoW implements the read-modify-write shape shared by every AMO*.W
// opcode: load the current word (sign-extended into rd), combine it with
// rs2 via op, and store the new word back.
func amoW[W reg.Word](m *machine.Machine[W], d isa.Decoded, op func(old, rs2 W) reg.Word) (Flags, error) {
	a := m.GetReg(d.RS1())
	old, err := m.Mem.LoadU32(a)
	if err != nil {
		return Flags{}, err
	}
	oldW := a.FromUint64(uint64(old)).SignExtend(32).(W)
	rs2 := m.GetReg(d.RS2())
	next := op(oldW, rs2)
	m.InvalidateReservation(a)
	if err := m.Mem.StoreU32(a, next.ToU32()); err != nil {
		return Flags{}, err
	}
	return storeW(m, d, oldW)
}

func amoD[W reg.Word](m *machine.Machine[W], d isa.Decoded, op func(old, rs2 W) reg.Word) (Flags, error) {
	a := m.GetReg(d.RS1())
	old, err := m.Mem.LoadU64(a)
	if err != nil {
		return Flags{}, err
	}
	oldW := a.FromUint64(old).(W)
	rs2 := m.GetReg(d.RS2())
	next := op(oldW, rs2)
	m.InvalidateReservation(a)
	if err := m.Mem.StoreU64(a, next.ToU64()); err != nil {
		return Flags{}, err
	}
	return storeW(m, d, oldW)
}

func minW[W reg.Word](a, b W, signed bool) reg.Word {
	if signed {
		if a.LtSigned(b) {
			return a
		}
		return b
	}
	if a.LtUnsigned(b) {
		return a
	}
	return b
}

func maxW[W reg.Word](a, b W, signed bool) reg.Word {
	if signed {
		if a.LtSigned(b) {
			return b
		}
		return a
	}
	if a.LtUnsigned(b) {
		return b
	}
	return a
}

func AmoswapW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return amoW(m, d, func(_, rs2 W) reg.Word { return rs2 })
}
func AmoaddW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return amoW(m, d, func(old, rs2 W) reg.Word { return old.Add(rs2) })
}
func AmoxorW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return amoW(m, d, func(old, rs2 W) reg.Word { return old.Xor(rs2) })
}
func AmoandW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return amoW(m, d, func(old, rs2 W) reg.Word { return old.And(rs2) })
}
func AmoorW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return amoW(m, d, func(old, rs2 W) reg.Word { return old.Or(rs2) })
}
func AmominW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return amoW(m, d, func(old, rs2 W) reg.Word { return minW(old, rs2, true) })
}
func AmomaxW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return amoW(m, d, func(old, rs2 W) reg.Word { return maxW(old, rs2, true) })
}
func AmominuW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return amoW(m, d, func(old, rs2 W) reg.Word { return minW(old, rs2, false) })
}
func AmomaxuW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return amoW(m, d, func(old, rs2 W) reg.Word { return maxW(old, rs2, false) })
}

func AmoswapD[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return amoD(m, d, func(_, rs2 W) reg.Word { return rs2 })
}
func AmoaddD[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return amoD(m, d, func(old, rs2 W) reg.Word { return old.Add(rs2) })
}
func AmoxorD[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return amoD(m, d, func(old, rs2 W) reg.Word { return old.Xor(rs2) })
}
func AmoandD[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return amoD(m, d, func(old, rs2 W) reg.Word { return old.And(rs2) })
}
func AmoorD[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return amoD(m, d, func(old, rs2 W) reg.Word { return old.Or(rs2) })
}
func AmominD[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return amoD(m, d, func(old, rs2 W) reg.Word { return minW(old, rs2, true) })
}
func AmomaxD[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return amoD(m, d, func(old, rs2 W) reg.Word { return maxW(old, rs2, true) })
}
func AmominuD[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return amoD(m, d, func(old, rs2 W) reg.Word { return minW(old, rs2, false) })
}
func AmomaxuD[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return amoD(m, d, func(old, rs2 W) reg.Word { return maxW(old, rs2, false) })
}
