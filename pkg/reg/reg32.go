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

// Reg32 is the 32-bit RV32 machine word.
type Reg32 uint32

func From32(v uint32) Reg32  { return Reg32(v) }
func From32U8(v uint8) Reg32 { return Reg32(v) }
func From32U16(v uint16) Reg32 { return Reg32(v) }
func From32I8(v int8) Reg32  { return Reg32(int32(v)) }
func From32I16(v int16) Reg32 { return Reg32(int32(v)) }

func (r Reg32) Add(o Word) Word { return r + o.(Reg32) }
func (r Reg32) Sub(o Word) Word { return r - o.(Reg32) }
func (r Reg32) Mul(o Word) Word { return r * o.(Reg32) }

func (r Reg32) MulHighSigned(o Word) Word {
	v := (int64(int32(r)) * int64(int32(o.(Reg32)))) >> 32
	return Reg32(uint32(v))
}

func (r Reg32) MulHighSignedUnsigned(o Word) Word {
	v := (int64(int32(r)) * int64(uint32(o.(Reg32)))) >> 32
	return Reg32(uint32(v))
}

func (r Reg32) MulHighUnsigned(o Word) Word {
	v := (uint64(uint32(r)) * uint64(uint32(o.(Reg32)))) >> 32
	return Reg32(uint32(v))
}

func (r Reg32) DivSigned(o Word) Word {
	d := int32(o.(Reg32))
	n := int32(r)
	if d == 0 {
		return Reg32(^uint32(0))
	}
	if n == minInt32 && d == -1 {
		return Reg32(uint32(n))
	}
	return Reg32(uint32(n / d))
}

func (r Reg32) DivUnsigned(o Word) Word {
	d := uint32(o.(Reg32))
	if d == 0 {
		return Reg32(^uint32(0))
	}
	return Reg32(uint32(r) / d)
}

func (r Reg32) RemSigned(o Word) Word {
	d := int32(o.(Reg32))
	n := int32(r)
	if d == 0 {
		return r
	}
	if n == minInt32 && d == -1 {
		return Reg32(0)
	}
	return Reg32(uint32(n % d))
}

func (r Reg32) RemUnsigned(o Word) Word {
	d := uint32(o.(Reg32))
	if d == 0 {
		return r
	}
	return Reg32(uint32(r) % d)
}

const minInt32 = int32(-1 << 31)

func (r Reg32) And(o Word) Word { return r & o.(Reg32) }
func (r Reg32) Or(o Word) Word  { return r | o.(Reg32) }
func (r Reg32) Xor(o Word) Word { return r ^ o.(Reg32) }
func (r Reg32) Not() Word       { return ^r }

func (r Reg32) Shl(shamt uint) Word { return r << (shamt % 32) }
func (r Reg32) Shr(shamt uint) Word { return r >> (shamt % 32) }
func (r Reg32) Sar(shamt uint) Word { return Reg32(uint32(int32(r) >> (shamt % 32))) }

func (r Reg32) SignExtend(bitsN uint) Word {
	if bitsN >= 32 {
		return r
	}
	shift := 32 - bitsN
	return Reg32(uint32(int32(uint32(r)<<shift) >> shift))
}

func (r Reg32) ZeroExtend(bitsN uint) Word {
	if bitsN >= 32 {
		return r
	}
	return r & Reg32((uint32(1)<<bitsN)-1)
}

func (r Reg32) Clz() Word    { return Reg32(bits.LeadingZeros32(uint32(r))) }
func (r Reg32) Ctz() Word    { return Reg32(bits.TrailingZeros32(uint32(r))) }
func (r Reg32) Cpop() Word   { return Reg32(bits.OnesCount32(uint32(r))) }
func (r Reg32) Clz32() Word  { return r.Clz() }
func (r Reg32) Ctz32() Word  { return r.Ctz() }
func (r Reg32) Cpop32() Word { return r.Cpop() }
func (r Reg32) Rev8() Word   { return Reg32(bits.ReverseBytes32(uint32(r))) }

func (r Reg32) LtSigned(o Word) bool   { return int32(r) < int32(o.(Reg32)) }
func (r Reg32) LtUnsigned(o Word) bool { return uint32(r) < uint32(o.(Reg32)) }
func (r Reg32) Eq(o Word) bool         { return r == o.(Reg32) }
func (r Reg32) IsZero() bool           { return r == 0 }

func (r Reg32) Bits() uint { return 32 }

func (r Reg32) FromInt32(v int32) Word   { return Reg32(uint32(v)) }
func (r Reg32) FromUint64(v uint64) Word { return Reg32(uint32(v)) }

func (r Reg32) ToU8() uint8   { return uint8(r) }
func (r Reg32) ToU16() uint16 { return uint16(r) }
func (r Reg32) ToU32() uint32 { return uint32(r) }
func (r Reg32) ToU64() uint64 { return uint64(uint32(r)) }
func (r Reg32) ToI64() int64  { return int64(int32(r)) }
