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

package decoder

import (
	"rv64core/pkg/isa"
	"testing"
)

func enc(opcode, rd, funct3, rs1, imm uint32) uint32 {
	return imm<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func TestDecodeAddi(t *testing.T) {
	d := New(ExtM|ExtA|ExtC|ExtZb, Version0)
	// addi x5, x6, 100
	in := enc(0x13, 5, 0, 6, 100)
	dec, n, err := d.Decode(0, []byte{byte(in), byte(in >> 8), byte(in >> 16), byte(in >> 24)})
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 || dec.Op() != isa.ADDI || dec.RD() != 5 || dec.RS1() != 6 || dec.Imm() != 100 {
		t.Fatalf("got op=%v rd=%d rs1=%d imm=%d len=%d", dec.Op(), dec.RD(), dec.RS1(), dec.Imm(), n)
	}
	if dec.Length() != 4 {
		t.Errorf("Length() = %d, want 4", dec.Length())
	}
}

func TestDecodeAdd(t *testing.T) {
	d := New(ExtM, Version0)
	in := 0x00<<25 | 7<<20 | 6<<15 | 0<<12 | 5<<7 | 0x33
	dec, _, err := d.Decode(0, le32(uint32(in)))
	if err != nil {
		t.Fatal(err)
	}
	if dec.Op() != isa.ADD || dec.RD() != 5 || dec.RS1() != 6 || dec.RS2() != 7 {
		t.Fatalf("got op=%v rd=%d rs1=%d rs2=%d", dec.Op(), dec.RD(), dec.RS1(), dec.RS2())
	}
}

func TestDecodeMul(t *testing.T) {
	d := New(ExtM, Version0)
	in := uint32(0x01)<<25 | 7<<20 | 6<<15 | 0<<12 | 5<<7 | 0x33
	dec, _, err := d.Decode(0, le32(in))
	if err != nil {
		t.Fatal(err)
	}
	if dec.Op() != isa.MUL {
		t.Fatalf("got op=%v, want MUL", dec.Op())
	}
}

func TestDecodeMDisabled(t *testing.T) {
	d := New(0, Version0)
	in := uint32(0x01)<<25 | 7<<20 | 6<<15 | 0<<12 | 5<<7 | 0x33
	_, _, err := d.Decode(0, le32(in))
	if err == nil {
		t.Fatal("expected InvalidInstruction when M extension disabled")
	}
}

func TestDecodeCompressedAddi4Spn(t *testing.T) {
	d := New(ExtC, Version0)
	// C.ADDI4SPN x8, sp, 4  (nzuimm=4 -> bit pattern per decodeCIW)
	var in uint16 = 0x0000
	in |= 1 << 6 // nzuimm[2] sits in instruction bit 6
	in |= 0x0    // rd' = 0 -> x8
	dec, n, err := d.Decode(0, []byte{byte(in), byte(in >> 8)})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 || dec.Op() != isa.ADDI || dec.Length() != 2 {
		t.Fatalf("got op=%v len=%d n=%d", dec.Op(), dec.Length(), n)
	}
}

func TestDecodeCompressedDisabled(t *testing.T) {
	d := New(0, Version0)
	_, _, err := d.Decode(0, []byte{0x01, 0x00})
	if err == nil {
		t.Fatal("expected InvalidInstruction when C extension disabled")
	}
}

func TestFuseLuiAddi(t *testing.T) {
	d := New(ExtMop, Version0)
	lui := isa.PackU(isa.LUI, 0, 5, 0, int32(0x12340000))
	addi := isa.PackI(isa.ADDI, 0, 5, 5, 0, 0x678)
	fused, n, ok := d.TryFuse([]isa.Decoded{lui, addi}, []int{4, 4})
	if !ok || n != 2 {
		t.Fatalf("TryFuse ok=%v n=%d", ok, n)
	}
	if fused.Op() != isa.CUSTOM_LOAD_IMM || fused.Imm() != 0x12340678 {
		t.Fatalf("fused op=%v imm=%#x", fused.Op(), fused.Imm())
	}
}

func le32(in uint32) []byte {
	return []byte{byte(in), byte(in >> 8), byte(in >> 16), byte(in >> 24)}
}
