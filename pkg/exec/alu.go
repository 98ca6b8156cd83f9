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

func regR[W reg.Word](m *machine.Machine[W], d isa.Decoded) (a, b W) {
	return m.GetReg(d.RS1()), m.GetReg(d.RS2())
}

func storeW[W reg.Word](m *machine.Machine[W], d isa.Decoded, v reg.Word) (Flags, error) {
	m.SetReg(d.RD(), v.(W))
	return Flags{}, nil
}

func Add[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.Add(b))
}

func Sub[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.Sub(b))
}

func And[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.And(b))
}

func Or[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.Or(b))
}

func Xor[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.Xor(b))
}

func Sll[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.Shl(shamtFrom(b)))
}

func Srl[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.Shr(shamtFrom(b)))
}

func Sra[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.Sar(shamtFrom(b)))
}

func Slt[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, boolWord(a, a.LtSigned(b)))
}

func Sltu[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, boolWord(a, a.LtUnsigned(b)))
}

func shamtFrom[W reg.Word](w W) uint { return uint(w.ToU64() & 0x3f) }

func boolWord[W reg.Word](zero W, v bool) reg.Word {
	if v {
		return zero.FromInt32(1)
	}
	return zero.FromInt32(0)
}

// --- I-type (ALU-immediate) ---

func imm[W reg.Word](m *machine.Machine[W], d isa.Decoded) W {
	return m.GetReg(d.RS1()).FromInt32(d.Imm()).(W)
}

func Addi[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, a.Add(imm(m, d)))
}

func Andi[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, a.And(imm(m, d)))
}

func Ori[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, a.Or(imm(m, d)))
}

func Xori[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, a.Xor(imm(m, d)))
}

func Slti[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, boolWord(a, a.LtSigned(imm(m, d))))
}

func Sltiu[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, boolWord(a, a.LtUnsigned(imm(m, d))))
}

func Slli[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, a.Shl(uint(d.Imm())))
}

func Srli[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, a.Shr(uint(d.Imm())))
}

func Srai[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, a.Sar(uint(d.Imm())))
}

// Lui writes the decoded immediate, already pre-shifted by the decoder
// (PackU stores imm = in & 0xfffff000), directly to rd.
func Lui[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return storeW(m, d, m.GetReg(0).FromInt32(d.Imm()))
}

// Auipc adds the decoded (pre-shifted) immediate to the current PC.
func Auipc[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return storeW(m, d, m.PC.Add(m.PC.FromInt32(d.Imm())))
}
