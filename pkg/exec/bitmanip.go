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

func rotl[W reg.Word](v W, shamt uint) reg.Word {
	bits := v.Bits()
	shamt %= bits
	if shamt == 0 {
		return v
	}
	return v.Shl(shamt).Or(v.Shr(bits - shamt))
}

func rotr[W reg.Word](v W, shamt uint) reg.Word {
	bits := v.Bits()
	shamt %= bits
	if shamt == 0 {
		return v
	}
	return v.Shr(shamt).Or(v.Shl(bits - shamt))
}

func Andn[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.And(b.Not()))
}

func Orn[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.Or(b.Not()))
}

func Xnor[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.Xor(b).Not())
}

func Rol[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, rotl(a, uint(b.ToU64())))
}

func Ror[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, rotr(a, uint(b.ToU64())))
}

func Rori[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, rotr(a, uint(d.Imm())))
}

func RolW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	v := a.ZeroExtend(32).(W)
	return storeW(m, d, truncW(rotl(v, uint(b.ToU64()&0x1f))))
}

func RorW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	v := a.ZeroExtend(32).(W)
	return storeW(m, d, truncW(rotr(v, uint(b.ToU64()&0x1f))))
}

func RoriW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	v := a.ZeroExtend(32).(W)
	return storeW(m, d, truncW(rotr(v, uint(d.Imm()))))
}

func Max[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, maxW(a, b, true))
}

func Maxu[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, maxW(a, b, false))
}

func Min[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, minW(a, b, true))
}

func Minu[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, minW(a, b, false))
}

func Clz[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, a.Clz())
}

func ClzW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, a.Clz32())
}

func Ctz[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, a.Ctz())
}

func CtzW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, a.Ctz32())
}

func Cpop[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, a.Cpop())
}

func CpopW[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, a.Cpop32())
}

func Sextb[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, a.SignExtend(8))
}

func Sexth[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, a.SignExtend(16))
}

func Zexth[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, a.ZeroExtend(16))
}

func Orcb[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	v := a.ToU64()
	var out uint64
	for i := 0; i < 8; i++ {
		byt := (v >> (8 * i)) & 0xff
		if byt != 0 {
			out |= 0xff << (8 * i)
		}
	}
	return storeW(m, d, a.FromUint64(out))
}

func Rev8[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, a.Rev8())
}

func Bclr[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	idx := uint(b.ToU64()) % a.Bits()
	return storeW(m, d, a.And(a.FromUint64(uint64(1)<<idx).Not()))
}

func Bset[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	idx := uint(b.ToU64()) % a.Bits()
	return storeW(m, d, a.Or(a.FromUint64(uint64(1)<<idx)))
}

func Binv[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	idx := uint(b.ToU64()) % a.Bits()
	return storeW(m, d, a.Xor(a.FromUint64(uint64(1)<<idx)))
}

func Bext[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	idx := uint(b.ToU64()) % a.Bits()
	bit := (a.ToU64() >> idx) & 1
	return storeW(m, d, a.FromUint64(bit))
}

func Bclri[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	idx := uint(d.Imm()) % a.Bits()
	return storeW(m, d, a.And(a.FromUint64(uint64(1)<<idx).Not()))
}

func Bseti[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	idx := uint(d.Imm()) % a.Bits()
	return storeW(m, d, a.Or(a.FromUint64(uint64(1)<<idx)))
}

func Binvi[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	idx := uint(d.Imm()) % a.Bits()
	return storeW(m, d, a.Xor(a.FromUint64(uint64(1)<<idx)))
}

func Bexti[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	idx := uint(d.Imm()) % a.Bits()
	bit := (a.ToU64() >> idx) & 1
	return storeW(m, d, a.FromUint64(bit))
}

func sh[W reg.Word](m *machine.Machine[W], d isa.Decoded, n uint) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.Shl(n).Add(b))
}

func Sh1add[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) { return sh(m, d, 1) }
func Sh2add[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) { return sh(m, d, 2) }
func Sh3add[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) { return sh(m, d, 3) }

func Adduw[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.ZeroExtend(32).Add(b))
}

func shuw[W reg.Word](m *machine.Machine[W], d isa.Decoded, n uint) (Flags, error) {
	a, b := regR(m, d)
	return storeW(m, d, a.ZeroExtend(32).Shl(n).Add(b))
}

func Sh1adduw[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) { return shuw(m, d, 1) }
func Sh2adduw[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) { return shuw(m, d, 2) }
func Sh3adduw[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) { return shuw(m, d, 3) }

func Slliuw[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a := m.GetReg(d.RS1())
	return storeW(m, d, a.ZeroExtend(32).Shl(uint(d.Imm())))
}

func clmul64(a, b uint64) (lo, hi uint64) {
	for i := 0; i < 64; i++ {
		if (b>>i)&1 == 0 {
			continue
		}
		shifted := a << i
		lo ^= shifted
		if i == 0 {
			continue
		}
		hi ^= a >> (64 - i)
	}
	return lo, hi
}

func Clmul[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	lo, _ := clmul64(a.ToU64(), b.ToU64())
	return storeW(m, d, a.FromUint64(lo))
}

func Clmulh[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	_, hi := clmul64(a.ToU64(), b.ToU64())
	return storeW(m, d, a.FromUint64(hi))
}

func Clmulr[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := regR(m, d)
	lo, hi := clmul64(a.ToU64(), b.ToU64())
	return storeW(m, d, a.FromUint64((hi<<1)|(lo>>63)))
}
