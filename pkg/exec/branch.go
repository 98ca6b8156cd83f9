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

// branch evaluates cond on rs1/rs2 and, if taken, redirects the PC to
// pc + imm (the S-type branch immediate, already sign-extended by the
// decoder), reporting Flags{UpdatedPC: true} so the dispatch loop doesn't
// also apply its default PC += length.
func branch[W reg.Word](m *machine.Machine[W], d isa.Decoded, cond func(a, b W) bool) (Flags, error) {
	a, b := regR(m, d)
	if !cond(a, b) {
		return Flags{}, nil
	}
	m.PC = m.PC.Add(m.PC.FromInt32(d.Imm())).(W)
	return Flags{UpdatedPC: true}, nil
}

func Beq[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return branch(m, d, func(a, b W) bool { return a.Eq(b) })
}

func Bne[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return branch(m, d, func(a, b W) bool { return !a.Eq(b) })
}

func Blt[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return branch(m, d, func(a, b W) bool { return a.LtSigned(b) })
}

func Bge[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return branch(m, d, func(a, b W) bool { return !a.LtSigned(b) })
}

func Bltu[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return branch(m, d, func(a, b W) bool { return a.LtUnsigned(b) })
}

func Bgeu[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return branch(m, d, func(a, b W) bool { return !a.LtUnsigned(b) })
}
