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

package reg

import "math/bits"

// Reg64 is the 64-bit RV64 machine word.
type Reg64 uint64

// From64 constructs a Reg64. The helpers below mirror the teacher's
// from_u8/u16/u32/u64/from_i8/i16/i32 constructor family (spec.md 4.1).
func From64(v uint64) Reg64 { return Reg64(v) }
func FromU8(v uint8) Reg64  { return Reg64(v) }
func FromU16(v uint16) Reg64 { return Reg64(v) }
func FromU32(v uint32) Reg64 { return Reg64(v) }
func FromI8(v int8) Reg64   { return Reg64(int64(v)) }
func FromI16(v int16) Reg64 { return Reg64(int64(v)) }
func FromI32(v int32) Reg64 { return Reg64(int64(v)) }

func (r Reg64) Add(o Word) Word { return r + o.(Reg64) }
func (r Reg64) Sub(o Word) Word { return r - o.(Reg64) }
func (r Reg64) Mul(o Word) Word { return r * o.(Reg64) }

// MulHighSigned computes the high 64 bits of the signed 128-bit product:
// it multiplies the operands' magnitudes with bits.Mul64 and, when the
// signs differ, negates the full 128-bit result (rather than a 128-bit
// integer type).
func (r Reg64) MulHighSigned(o Word) Word {
	n1, n2 := int64(r), int64(o.(Reg64))
	var neg1, neg2 bool
	if n1 < 0 {
		neg1, n1 = true, -n1
	}
	if n2 < 0 {
		neg2, n2 = true, -n2
	}
	v, lo := bits.Mul64(uint64(n1), uint64(n2))
	if neg1 != neg2 {
		v = ^v
		if lo == 0 {
			v++
		}
	}
	return Reg64(v)
}

func (r Reg64) MulHighSignedUnsigned(o Word) Word {
	n1, n2 := int64(r), uint64(o.(Reg64))
	var neg bool
	if n1 < 0 {
		neg, n1 = true, -n1
	}
	v, lo := bits.Mul64(uint64(n1), n2)
	if neg {
		v = ^v
		if lo == 0 {
			v++
		}
	}
	return Reg64(v)
}

func (r Reg64) MulHighUnsigned(o Word) Word {
	return Reg64(mulHigh64(uint64(r), uint64(o.(Reg64))))
}

// mulHigh64 returns the high 64 bits of the unsigned 128-bit product a*b.
func mulHigh64(a, b uint64) uint64 {
	hi, _ := bits.Mul64(a, b)
	return hi
}

// DivSigned implements RISC-V's defined divide-by-zero and overflow
// behavior (spec.md 4.4): divide-by-zero -> -1; INT_MIN/-1 -> INT_MIN.
func (r Reg64) DivSigned(o Word) Word {
	d := int64(o.(Reg64))
	n := int64(r)
	if d == 0 {
		return Reg64(^uint64(0))
	}
	if n == minInt64 && d == -1 {
		return Reg64(uint64(n))
	}
	return Reg64(uint64(n / d))
}

func (r Reg64) DivUnsigned(o Word) Word {
	d := uint64(o.(Reg64))
	if d == 0 {
		return Reg64(^uint64(0))
	}
	return Reg64(uint64(r) / d)
}

func (r Reg64) RemSigned(o Word) Word {
	d := int64(o.(Reg64))
	n := int64(r)
	if d == 0 {
		return r
	}
	if n == minInt64 && d == -1 {
		return Reg64(0)
	}
	return Reg64(uint64(n % d))
}

func (r Reg64) RemUnsigned(o Word) Word {
	d := uint64(o.(Reg64))
	if d == 0 {
		return r
	}
	return Reg64(uint64(r) % d)
}

const minInt64 = int64(-1 << 63)

func (r Reg64) And(o Word) Word { return r & o.(Reg64) }
func (r Reg64) Or(o Word) Word  { return r | o.(Reg64) }
func (r Reg64) Xor(o Word) Word { return r ^ o.(Reg64) }
func (r Reg64) Not() Word       { return ^r }

func (r Reg64) Shl(shamt uint) Word { return r << (shamt % 64) }
func (r Reg64) Shr(shamt uint) Word { return r >> (shamt % 64) }
func (r Reg64) Sar(shamt uint) Word { return Reg64(uint64(int64(r) >> (shamt % 64))) }

// SignExtend treats the low bits of r as the source width and fills the
// upper 64-bits bits accordingly, mirroring sign.go's signExtend helper.
func (r Reg64) SignExtend(bitsN uint) Word {
	if bitsN >= 64 {
		return r
	}
	shift := 64 - bitsN
	return Reg64(uint64(int64(uint64(r)<<shift) >> shift))
}

func (r Reg64) ZeroExtend(bitsN uint) Word {
	if bitsN >= 64 {
		return r
	}
	return r & Reg64((uint64(1)<<bitsN)-1)
}

func (r Reg64) Clz() Word   { return Reg64(bits.LeadingZeros64(uint64(r))) }
func (r Reg64) Ctz() Word   { return Reg64(bits.TrailingZeros64(uint64(r))) }
func (r Reg64) Cpop() Word  { return Reg64(bits.OnesCount64(uint64(r))) }
func (r Reg64) Clz32() Word { return Reg64(bits.LeadingZeros32(uint32(r))) }
func (r Reg64) Ctz32() Word { return Reg64(bits.TrailingZeros32(uint32(r))) }
func (r Reg64) Cpop32() Word { return Reg64(bits.OnesCount32(uint32(r))) }
func (r Reg64) Rev8() Word  { return Reg64(bits.ReverseBytes64(uint64(r))) }

func (r Reg64) LtSigned(o Word) bool   { return int64(r) < int64(o.(Reg64)) }
func (r Reg64) LtUnsigned(o Word) bool { return uint64(r) < uint64(o.(Reg64)) }
func (r Reg64) Eq(o Word) bool         { return r == o.(Reg64) }
func (r Reg64) IsZero() bool           { return r == 0 }

func (r Reg64) Bits() uint { return 64 }

func (r Reg64) FromInt32(v int32) Word  { return Reg64(uint64(int64(v))) }
func (r Reg64) FromUint64(v uint64) Word { return Reg64(v) }

func (r Reg64) ToU8() uint8   { return uint8(r) }
func (r Reg64) ToU16() uint16 { return uint16(r) }
func (r Reg64) ToU32() uint32 { return uint32(r) }
func (r Reg64) ToU64() uint64 { return uint64(r) }
func (r Reg64) ToI64() int64  { return int64(r) }
