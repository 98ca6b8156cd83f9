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

// Jal writes pc+length to rd then redirects to pc+imm. The J-type
// immediate is already sign-extended by the decoder.
func Jal[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	link := m.PC.Add(m.PC.FromInt32(int32(d.Length()))).(W)
	target := m.PC.Add(m.PC.FromInt32(d.Imm())).(W)
	m.SetReg(d.RD(), link)
	m.PC = target
	return Flags{UpdatedPC: true}, nil
}

// jalr implements JALR for both ISA versions: target = (x[rs1] +
// sign_ext(imm)) & ~1. Both versions clear bit 0 of the computed target —
// the RISC-V base spec requires the LSB of the result to be zero
// regardless of version. JALR_V0/JALR_V1 stay distinct opcodes purely so
// the decoder can keep a flat fast-path dispatch table; they carry no
// behavioral difference in the target computation itself.
func jalr[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	base := m.GetReg(d.RS1())
	target := base.Add(base.FromInt32(d.Imm())).(W)
	target = target.And(target.FromInt32(-2)).(W)
	link := m.PC.Add(m.PC.FromInt32(int32(d.Length()))).(W)
	m.SetReg(d.RD(), link)
	m.PC = target
	return Flags{UpdatedPC: true}, nil
}

func JalrV0[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return jalr(m, d)
}

func JalrV1[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return jalr(m, d)
}
