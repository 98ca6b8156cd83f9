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

import "rv64core/pkg/isa"

// decode16 expands a compressed instruction into the isa.Decoded encoding
// of the equivalent base instruction, generalizing rvc.go's per-form
// decoders (decodeCR/CI/CSS/CIW/CL/CS/CB) to this core's packed word
// instead of the teacher's flat Instruction struct. Register-only forms
// (C.ADDI4SPN etc.) use the 3-bit RVC register encoding offset by 8.
func (d *Decoder) decode16(in uint16) (isa.Decoded, error) {
	switch in>>11&0x1c | in&0x3 {
	case 0x00: // C.ADDI4SPN
		imm, rd := decodeCIW(in)
		imm = imm&0xc0>>2 | imm&0x3c<<4 | imm&0x2<<1 | imm&0x1<<3
		return isa.PackI(isa.ADDI, 0, rd, spReg, 0, int32(imm)), nil
	case 0x08: // C.LW
		imm, r1, r2 := decodeCL(in)
		imm = (imm<<5 | imm) & 0x3e << 1
		return isa.PackI(d.loadMust(isa.LW_V0, isa.LW_V1), 0, r2, r1, d.versionFlag(), int32(imm)), nil
	case 0x0C: // C.LD
		imm, r1, r2 := decodeCL(in)
		imm = (imm<<6 | imm<<1) & 0xf8
		return isa.PackI(d.loadMust(isa.LD_V0, isa.LD_V1), 0, r2, r1, d.versionFlag(), int32(imm)), nil
	case 0x18: // C.SW
		imm, r1, r2 := decodeCS(in)
		imm = (imm<<5 | imm) << 1 & 0x7c
		return isa.PackS(isa.SW, 0, r1, r2, 0, int32(imm)), nil
	case 0x1C: // C.SD
		imm, r1, r2 := decodeCS(in)
		imm = (imm<<5 | imm) << 1 & 0xf8
		return isa.PackS(isa.SD, 0, r1, r2, 0, int32(imm)), nil
	case 0x01: // C.NOP / C.ADDI
		imm, r := decodeCI(in)
		return isa.PackI(isa.ADDI, 0, r, r, 0, signExtend32(int32(imm), 6)), nil
	case 0x05: // C.ADDIW (RV64)
		imm, r := decodeCI(in)
		return isa.PackI(isa.ADDIW, 0, r, r, 0, signExtend32(int32(imm), 6)), nil
	case 0x09: // C.LI
		imm, r := decodeCI(in)
		return isa.PackI(isa.ADDI, 0, r, 0, 0, signExtend32(int32(imm), 6)), nil
	case 0x0D: // C.ADDI16SP / C.LUI
		imm, r := decodeCI(in)
		if r != spReg {
			return isa.PackU(isa.LUI, 0, r, 0, signExtend32(int32(imm)<<12, 18)), nil
		}
		imm2 := imm&0x20<<4 | imm&0x10 | imm&0x8<<3 | imm&0x6<<6 | imm&0x1<<5
		return isa.PackI(isa.ADDI, 0, spReg, spReg, 0, signExtend32(int32(imm2), 10)), nil
	case 0x11:
		switch in >> 10 & 0x3 {
		case 0x00: // C.SRLI
			off, r := decodeShiftCB(in)
			return isa.PackI(isa.SRLI, 0, r, r, 0, int32(off)), nil
		case 0x01: // C.SRAI
			off, r := decodeShiftCB(in)
			return isa.PackI(isa.SRAI, 0, r, r, 0, int32(off)), nil
		case 0x02: // C.ANDI
			off, r := decodeShiftCB(in)
			return isa.PackI(isa.ANDI, 0, r, r, 0, signExtend32(int32(off), 6)), nil
		}
		_, r1, r2 := decodeCS(in)
		switch (in >> 8 & 0x1c) | (in >> 5 & 0x3) {
		case 0xc:
			return isa.PackR(isa.SUB, 0, r1, r1, r2, 0, 0, 0), nil
		case 0xd:
			return isa.PackR(isa.XOR, 0, r1, r1, r2, 0, 0, 0), nil
		case 0xe:
			return isa.PackR(isa.OR, 0, r1, r1, r2, 0, 0, 0), nil
		case 0xf:
			return isa.PackR(isa.AND, 0, r1, r1, r2, 0, 0, 0), nil
		case 0x1c:
			return isa.PackR(isa.SUBW, 0, r1, r1, r2, 0, 0, 0), nil
		case 0x1d:
			return isa.PackR(isa.ADDW, 0, r1, r1, r2, 0, 0, 0), nil
		}
		return 0, errInvalid("reserved C.MISC-ALU encoding")
	case 0x15: // C.J
		imm := decodeCJ(in)
		imm = imm&0x200>>5 | imm&0x40<<4 | imm&0x5a0<<1 | imm&0x10<<3 | imm&0xe | imm&1<<5
		return isa.PackU(isa.JAL, 0, 0, 0, signExtend32(int32(imm), 12)), nil
	case 0x19: // C.BEQZ
		imm, r := decodeCB(in)
		imm = imm&0x80<<1 | imm&0x60>>2 | imm&0x18<<3 | imm&0x6 | imm&0x1<<5
		return isa.PackS(isa.BEQ, 0, r, 0, 0, signExtend32(int32(imm), 9)), nil
	case 0x1D: // C.BNEZ
		imm, r := decodeCB(in)
		imm = imm&0x80<<1 | imm&0x60>>2 | imm&0x18<<3 | imm&0x6 | imm&0x1<<5
		return isa.PackS(isa.BNE, 0, r, 0, 0, signExtend32(int32(imm), 9)), nil
	case 0x02: // C.SLLI
		imm, r := decodeCI(in)
		return isa.PackI(isa.SLLI, 0, r, r, 0, int32(imm)), nil
	case 0x0A: // C.LWSP
		imm, r := decodeCI(in)
		imm = (imm<<6 | imm) & 0xfc
		return isa.PackI(d.loadMust(isa.LW_V0, isa.LW_V1), 0, r, spReg, d.versionFlag(), int32(imm)), nil
	case 0x0E: // C.LDSP
		imm, r := decodeCI(in)
		imm = (imm<<6 | imm) & 0x1f8
		return isa.PackI(d.loadMust(isa.LD_V0, isa.LD_V1), 0, r, spReg, d.versionFlag(), int32(imm)), nil
	case 0x12:
		r1, r2 := decodeCR(in)
		b := in & 0x1000
		switch {
		case b == 0 && r2 == 0: // C.JR
			return isa.PackI(d.jalrOp(), 0, 0, r1, d.versionFlag(), 0), nil
		case b == 0: // C.MV
			return isa.PackR(isa.ADD, 0, r1, 0, r2, 0, 0, 0), nil
		case b == 0x1000 && r1 == 0 && r2 == 0: // C.EBREAK
			return isa.PackSys(isa.EBREAK, 0, 0), nil
		case b == 0x1000 && r2 == 0: // C.JALR
			return isa.PackI(d.jalrOp(), 0, raReg, r1, d.versionFlag(), 0), nil
		default: // C.ADD
			return isa.PackR(isa.ADD, 0, r1, r1, r2, 0, 0, 0), nil
		}
	case 0x1A: // C.SWSP
		imm, r := decodeCSS(in)
		imm = (imm<<6 | imm) & 0xfc
		return isa.PackS(isa.SW, 0, spReg, r, 0, int32(imm)), nil
	case 0x1E: // C.SDSP
		imm, r := decodeCSS(in)
		imm = (imm<<6 | imm) & 0x1f8
		return isa.PackS(isa.SD, 0, spReg, r, 0, int32(imm)), nil
	}
	return 0, errInvalid("unrecognized or floating-point-extension RVC encoding")
}

func (d *Decoder) loadMust(v0, v1 isa.Opcode) isa.Opcode {
	if d.Version == Version1 {
		return v1
	}
	return v0
}

const (
	spReg = 2
	raReg = 1
)

func decodeCR(in uint16) (r1, r2 uint8) {
	return uint8(in >> 7 & 0x1f), uint8(in >> 2 & 0x1f)
}

func decodeCI(in uint16) (imm uint32, r uint8) {
	return uint32(in>>7&0x20 | in>>2&0x1f), uint8(in >> 7 & 0x1f)
}

func decodeCSS(in uint16) (imm uint32, r uint8) {
	return uint32(in >> 7 & 0x3f), uint8(in >> 2 & 0x1f)
}

const rvcRegOffset = 8

func decodeCIW(in uint16) (imm uint32, r uint8) {
	return uint32(in >> 5 & 0xff), uint8(in>>2&0x7) + rvcRegOffset
}

func decodeCL(in uint16) (imm uint32, r1, r2 uint8) {
	return uint32(in>>8&0x1c | in>>5&0x3), uint8(in>>7&0x7) + rvcRegOffset, uint8(in>>2&0x7) + rvcRegOffset
}

func decodeCS(in uint16) (imm uint32, r1, r2 uint8) {
	return uint32(in>>8&0x1c | in>>5&0x3), uint8(in>>7&0x7) + rvcRegOffset, uint8(in>>2&0x7) + rvcRegOffset
}

func decodeCB(in uint16) (imm uint32, r uint8) {
	return uint32(in>>5&0xe0 | in>>2&0x1f), uint8(in>>7&0x7) + rvcRegOffset
}

func decodeShiftCB(in uint16) (offset uint32, r uint8) {
	return uint32(in&0x1000>>7 | in>>2&0x1f), uint8(in>>7&0x7) + rvcRegOffset
}

func decodeCJ(in uint16) uint32 {
	return uint32((in >> 2) & 0x7ff)
}
