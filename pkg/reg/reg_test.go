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

import "testing"

// mirrors the teacher's table-driven test shape (rvi_test.go's []test{...}).
type wordTest struct {
	desc string
	a, b uint64
	fn   func(a, b Reg64) Reg64
	want uint64
}

func u64(v int64) uint64 { return uint64(v) }

func TestReg64Arithmetic(t *testing.T) {
	tests := []wordTest{
		{desc: "add", a: 2, b: 3, fn: func(a, b Reg64) Reg64 { return a.Add(b).(Reg64) }, want: 5},
		{desc: "sub underflow", a: 0, b: 1, fn: func(a, b Reg64) Reg64 { return a.Sub(b).(Reg64) }, want: u64(-1)},
		{desc: "mulh overflow", a: 0x57acca70cafebabe, b: 0x57edfa57f005ba11,
			fn: func(a, b Reg64) Reg64 { return a.MulHighSigned(b).(Reg64) }, want: 0x1e1d39809b0765be},
		{desc: "div zero", a: 7, b: 0, fn: func(a, b Reg64) Reg64 { return a.DivSigned(b).(Reg64) }, want: 0xffffffffffffffff},
		{desc: "div overflow", a: u64(minInt64), b: u64(-1),
			fn: func(a, b Reg64) Reg64 { return a.DivSigned(b).(Reg64) }, want: u64(minInt64)},
		{desc: "rem overflow", a: u64(minInt64), b: u64(-1),
			fn: func(a, b Reg64) Reg64 { return a.RemSigned(b).(Reg64) }, want: 0},
		{desc: "rem zero returns dividend", a: 7, b: 0, fn: func(a, b Reg64) Reg64 { return a.RemSigned(b).(Reg64) }, want: 7},
		{desc: "divu zero", a: 7, b: 0, fn: func(a, b Reg64) Reg64 { return a.DivUnsigned(b).(Reg64) }, want: 0xffffffffffffffff},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			got := tc.fn(Reg64(tc.a), Reg64(tc.b))
			if uint64(got) != tc.want {
				t.Errorf("%s: got %#x want %#x", tc.desc, uint64(got), tc.want)
			}
		})
	}
}

func TestSignExtendZeroExtendRoundTrip(t *testing.T) {
	// sign_extend(zero_extend(v, w), w) == sign_extend(v, w) for w <= 64 (spec.md 8).
	vals := []uint64{0, 1, 0x7f, 0x80, 0xff, 0x7fff, 0x8000, 0xdeadbeef, 0xffffffffffffffff}
	widths := []uint{1, 4, 7, 8, 12, 16, 31, 32, 63}
	for _, v := range vals {
		for _, w := range widths {
			r := Reg64(v)
			got := r.ZeroExtend(w).SignExtend(w).(Reg64)
			want := r.SignExtend(w).(Reg64)
			if got != want {
				t.Errorf("v=%#x w=%d: sign_extend(zero_extend)=%#x want %#x", v, w, got, want)
			}
		}
	}
}

func TestReg32ShiftAmountModuloWidth(t *testing.T) {
	r := Reg32(1)
	got := r.Shl(32 + 3).(Reg32) // shift amount mod 32 == 3
	if got != 8 {
		t.Errorf("Reg32.Shl(35) = %d, want 8 (shift mod 32)", got)
	}
}

func TestClzCtzCpop(t *testing.T) {
	r := Reg64(0x8000000000000001)
	if got := r.Clz().(Reg64); got != 0 {
		t.Errorf("Clz() = %d, want 0", got)
	}
	if got := r.Ctz().(Reg64); got != 0 {
		t.Errorf("Ctz() = %d, want 0", got)
	}
	if got := r.Cpop().(Reg64); got != 2 {
		t.Errorf("Cpop() = %d, want 2", got)
	}
}
