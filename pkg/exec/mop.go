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

// CustomLoadImm and CustomLoadUimm materialize the decoder's LUI+ADDI /
// LUI-only fusion results (pkg/decoder's TryFuse and the plain
// CUSTOM_LOAD_UIMM opcode respectively) directly into rd, avoiding the
// intermediate partial write a two-instruction sequence would otherwise
// produce.
func CustomLoadImm[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return storeW(m, d, m.GetReg(0).FromInt32(d.Imm()))
}

func CustomLoadUimm[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return storeW(m, d, m.GetReg(0).FromUint64(uint64(uint32(d.Imm()))))
}

// FarJumpRel collapses the decoder's AUIPC+JALR fusion into one hop:
// target = pc + imm (imm already carries the summed hi20+lo12 offsets),
// link = pc + length. No LSB masking is applied, matching FAR_JUMP_REL's
// role as a single already-aligned relative call idiom rather than a
// generic JALR.
func FarJumpRel[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	link := m.PC.Add(m.PC.FromInt32(int32(d.Length()))).(W)
	target := m.PC.Add(m.PC.FromInt32(d.Imm())).(W)
	m.SetReg(d.RD(), link)
	m.PC = target
	return Flags{UpdatedPC: true}, nil
}

// FarJumpAbs loads an absolute target from the full-width immediate.
func FarJumpAbs[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	link := m.PC.Add(m.PC.FromInt32(int32(d.Length()))).(W)
	target := m.PC.FromInt32(d.Imm()).(W)
	m.SetReg(d.RD(), link)
	m.PC = target
	return Flags{UpdatedPC: true}, nil
}

// Adc/Sbb implement add/subtract-with-carry over three register operands
// (rs1, rs2, rs3 holding 0 or 1), the carry-propagation primitive
// multi-word bignum arithmetic needs and that the base ISA has no single
// instruction for.
func Adc[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := m.GetReg(d.RS1()), m.GetReg(d.RS2())
	carry := m.GetReg(d.RS3())
	sum := a.Add(b).Add(carry)
	return storeW(m, d, sum)
}

func Sbb[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := m.GetReg(d.RS1()), m.GetReg(d.RS2())
	borrow := m.GetReg(d.RS3())
	diff := a.Sub(b).Sub(borrow)
	return storeW(m, d, diff)
}

// AdcS/SbbS additionally write the outgoing carry/borrow flag to rs4's
// register slot (RS4, decoded as the destination for the flag output),
// letting software chain an arbitrary-width add/sub across register pairs.
func Adcs[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := m.GetReg(d.RS1()), m.GetReg(d.RS2())
	carryIn := m.GetReg(d.RS3())
	sum := a.Add(b).(W)
	total := sum.Add(carryIn).(W)
	carryOut := boolWord(a, sum.LtUnsigned(a) || total.LtUnsigned(sum))
	m.SetReg(d.RS4(), carryOut.(W))
	return storeW(m, d, total)
}

func Sbbs[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := m.GetReg(d.RS1()), m.GetReg(d.RS2())
	borrowIn := m.GetReg(d.RS3())
	borrowOut := boolWord(a, a.LtUnsigned(b) || (borrowIn.ToU64() != 0 && a.Eq(b)))
	diff := a.Sub(b).Sub(borrowIn)
	m.SetReg(d.RS4(), borrowOut.(W))
	return storeW(m, d, diff)
}

// Add3a/b/c each sum three registers (rs1+rs2+rs3), writing rd. The three
// opcodes exist to let the decoder's macro-op fuser (and hand-written
// assembly) pick the register-slot arrangement cheapest to encode; the
// semantics are identical across all three.
func add3[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b, c := m.GetReg(d.RS1()), m.GetReg(d.RS2()), m.GetReg(d.RS3())
	return storeW(m, d, a.Add(b).Add(c))
}

func Add3a[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) { return add3(m, d) }
func Add3b[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) { return add3(m, d) }
func Add3c[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) { return add3(m, d) }

// WideMul/WideMulu/WideMulsu write the low half to rd and the high half
// to rs3, avoiding the two-instruction MUL+MULH(SU|U) sequence software
// would otherwise need for a full-width product.
func wideMul[W reg.Word](m *machine.Machine[W], d isa.Decoded, hi func(a, b W) reg.Word) (Flags, error) {
	a, b := m.GetReg(d.RS1()), m.GetReg(d.RS2())
	lo := a.Mul(b)
	m.SetReg(d.RS3(), hi(a, b).(W))
	return storeW(m, d, lo)
}

func WideMul[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return wideMul(m, d, func(a, b W) reg.Word { return a.MulHighSigned(b) })
}

func WideMulu[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return wideMul(m, d, func(a, b W) reg.Word { return a.MulHighUnsigned(b) })
}

func WideMulsu[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return wideMul(m, d, func(a, b W) reg.Word { return a.MulHighSignedUnsigned(b) })
}

// WideDiv/WideDivu write the quotient to rd and the remainder to rs3,
// fusing DIV+REM (which share the same two operands) into a single
// decode/execute.
func WideDiv[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := m.GetReg(d.RS1()), m.GetReg(d.RS2())
	m.SetReg(d.RS3(), a.RemSigned(b).(W))
	return storeW(m, d, a.DivSigned(b))
}

func WideDivu[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	a, b := m.GetReg(d.RS1()), m.GetReg(d.RS2())
	m.SetReg(d.RS3(), a.RemUnsigned(b).(W))
	return storeW(m, d, a.DivUnsigned(b))
}
