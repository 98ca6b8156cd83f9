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

// truncW performs a 32-bit-truncating op (the RV64 *W instruction family:
// ADDW, SUBW, SLLW, SRLW, SRAW, ADDIW, SLLIW, SRLIW, SRAIW) and sign-extends
// the 32-bit result back out to the register's full width, mirroring the
// teacher's addw/subw/... functions in rvi.go which do the same truncate+
// sign-extend dance on a native int64 register.
func truncW(v reg.Word) reg.Word {
	return v.ZeroExtend(32).SignExtend(32)
}

func AddW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, truncW(a.Add(b)))
}

func SubW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, truncW(a.Sub(b)))
}

func SllW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	shamt := uint(b.ToU64() & 0x1f)
	return storeW(m, d, truncW(a.ZeroExtend(32).Shl(shamt)))
}

func SrlW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	shamt := uint(b.ToU64() & 0x1f)
	return storeW(m, d, truncW(a.ZeroExtend(32).Shr(shamt)))
}

func SraW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	shamt := uint(b.ToU64() & 0x1f)
	v32 := a.ZeroExtend(32).SignExtend(32)
	return storeW(m, d, truncW(v32.Sar(shamt)))
}

func AddiW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, truncW(a.Add(imm(m, d))))
}

func SlliW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, truncW(a.ZeroExtend(32).Shl(uint(d.Imm()))))
}

func SrliW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, truncW(a.ZeroExtend(32).Shr(uint(d.Imm()))))
}

func SraiW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	v32 := a.ZeroExtend(32).SignExtend(32)
	return storeW(m, d, truncW(v32.Sar(uint(d.Imm()))))
}
