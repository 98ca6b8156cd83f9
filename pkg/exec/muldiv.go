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

func Mul[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.Mul(b))
}

func Mulh[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.MulHighSigned(b))
}

func Mulhsu[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.MulHighSignedUnsigned(b))
}

func Mulhu[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.MulHighUnsigned(b))
}

func Div[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.DivSigned(b))
}

func Divu[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.DivUnsigned(b))
}

func Rem[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.RemSigned(b))
}

func Remu[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.RemUnsigned(b))
}

// --- RV64-only 32-bit-truncating *W variants ---

func MulW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, truncW(a.ZeroExtend(32).Mul(b.ZeroExtend(32))))
}

func DivW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	av, bv := a.ZeroExtend(32).SignExtend(32), b.ZeroExtend(32).SignExtend(32)
	return storeW(m, d, truncW(av.DivSigned(bv)))
}

func DivUW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	av, bv := a.ZeroExtend(32), b.ZeroExtend(32)
	return storeW(m, d, truncW(av.DivUnsigned(bv)))
}

func RemW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	av, bv := a.ZeroExtend(32).SignExtend(32), b.ZeroExtend(32).SignExtend(32)
	return storeW(m, d, truncW(av.RemSigned(bv)))
}

func RemUW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	av, bv := a.ZeroExtend(32), b.ZeroExtend(32)
	return storeW(m, d, truncW(av.RemUnsigned(bv)))
}
