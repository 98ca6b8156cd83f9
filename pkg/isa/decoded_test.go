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

package isa

import "testing"

func TestPackRRoundTrip(t *testing.T) {
	d := PackR(ADD, 0, 5, 6, 7, 0, 0, 0)
	if d.Op() != ADD || d.RD() != 5 || d.RS1() != 6 || d.RS2() != 7 {
		t.Fatalf("PackR round-trip: op=%v rd=%d rs1=%d rs2=%d", d.Op(), d.RD(), d.RS1(), d.RS2())
	}
}

func TestPackIRoundTrip(t *testing.T) {
	d := PackI(ADDI, 0, 10, 11, 0, -42)
	if d.Op() != ADDI || d.RD() != 10 || d.RS1() != 11 || d.Imm() != -42 {
		t.Fatalf("PackI round-trip: rd=%d rs1=%d imm=%d", d.RD(), d.RS1(), d.Imm())
	}
}

func TestPackSRoundTrip(t *testing.T) {
	d := PackS(SW, 0, 3, 4, 0, 2044)
	if d.Op() != SW || d.RS1() != 3 || d.RS2() != 4 || d.Imm() != 2044 {
		t.Fatalf("PackS round-trip: rs1=%d rs2=%d imm=%d", d.RS1(), d.RS2(), d.Imm())
	}
}

func TestPackURoundTrip(t *testing.T) {
	d := PackU(LUI, 0, 7, 0, -0x21525000) // 0xdeadb000 as an int32
	if d.Op() != LUI || d.RD() != 7 || uint32(d.Imm()) != 0xdeadb000 {
		t.Fatalf("PackU round-trip: rd=%d imm=%#x", d.RD(), uint32(d.Imm()))
	}
}

func TestFlgLengthAndBits(t *testing.T) {
	flg := uint8(2) | flgVersion1 // length 4 bytes (2<<1), VERSION1 set
	d := PackSys(ECALL, 0, flg)
	if d.Length() != 4 {
		t.Errorf("Length() = %d, want 4", d.Length())
	}
	if !d.IsVersion1() {
		t.Error("IsVersion1() = false, want true")
	}
	if d.IsUnsigned() {
		t.Error("IsUnsigned() = true, want false")
	}
}

func TestOpcodeNameRange(t *testing.T) {
	if OpcodeName(UNLOADED) != "UNLOADED" {
		t.Errorf("OpcodeName(UNLOADED) = %q", OpcodeName(UNLOADED))
	}
	if OpcodeName(CUSTOM_TRACE_END) != "CUSTOM_TRACE_END" {
		t.Errorf("OpcodeName(CUSTOM_TRACE_END) = %q", OpcodeName(CUSTOM_TRACE_END))
	}
	if OpcodeName(0x0f) != "UNKNOWN" {
		t.Errorf("OpcodeName(0x0f) = %q, want UNKNOWN", OpcodeName(0x0f))
	}
}
