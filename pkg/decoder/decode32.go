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
	"rv64core/pkg/machine"
)

type baseOpcode uint32

// riscv-spec-v2.2; Table 19.1; page 103. Bits 6..2 of the instruction.
const (
	boLoad    = baseOpcode(0x00)
	boMiscMem = baseOpcode(0x03)
	boOpImm   = baseOpcode(0x04)
	boAUIPC   = baseOpcode(0x05)
	boOpImm32 = baseOpcode(0x06)
	boStore   = baseOpcode(0x08)
	boAMO     = baseOpcode(0x0b)
	boOp      = baseOpcode(0x0c)
	boLUI     = baseOpcode(0x0d)
	boOp32    = baseOpcode(0x0e)
	boBranch  = baseOpcode(0x18)
	boJALR    = baseOpcode(0x19)
	boJAL     = baseOpcode(0x1b)
	boSystem  = baseOpcode(0x1c)
)

func (d *Decoder) decode32(pc uint64, in uint32) (isa.Decoded, error) {
	rs1 := uint8(in >> 15 & 0x1f)
	rs2 := uint8(in >> 20 & 0x1f)
	rd := uint8(in >> 7 & 0x1f)
	funct3 := in >> 12 & 0x7
	funct7 := in >> 25 & 0x7f

	bop := baseOpcode(in >> 2 & 0x1f)
	switch bop {
	case boLUI:
		return isa.PackU(isa.LUI, 0, rd, 0, int32(in&0xfffff000)), nil
	case boAUIPC:
		return isa.PackU(isa.AUIPC, 0, rd, 0, int32(in&0xfffff000)), nil
	case boJAL:
		imm := int32(in>>11&0x100000 | in&0xff000 | in>>9&0x800 | in>>20&0x7fe)
		imm = signExtend32(imm, 21)
		return isa.PackU(isa.JAL, 0, rd, 0, imm), nil
	case boJALR:
		imm := signExtend32(int32(in>>20&0xfff), 12)
		return isa.PackI(d.jalrOp(), 0, rd, rs1, d.versionFlag(), imm), nil
	case boBranch:
		imm := int32(in>>19&0x1000 | in<<4&0x800 | in>>20&0x7e0 | in>>7&0x1e)
		imm = signExtend32(imm, 13)
		op, err := branchOp(funct3)
		if err != nil {
			return 0, machine.New(machine.InvalidInstruction, pc, err.Error())
		}
		return isa.PackS(op, 0, rs1, rs2, 0, imm), nil
	case boLoad:
		imm := signExtend32(int32(in>>20&0xfff), 12)
		op, err := d.loadOp(funct3)
		if err != nil {
			return 0, machine.New(machine.InvalidInstruction, pc, err.Error())
		}
		return isa.PackI(op, 0, rd, rs1, d.versionFlag(), imm), nil
	case boStore:
		imm := int32(in>>20&0xfe0 | in>>7&0x1f)
		imm = signExtend32(imm, 12)
		op, err := storeOp(funct3)
		if err != nil {
			return 0, machine.New(machine.InvalidInstruction, pc, err.Error())
		}
		return isa.PackS(op, 0, rs1, rs2, 0, imm), nil
	case boOpImm:
		return d.decodeOpImm(pc, in, rd, rs1, funct3, funct7, false)
	case boOpImm32:
		return d.decodeOpImm(pc, in, rd, rs1, funct3, funct7, true)
	case boOp:
		return d.decodeOp(pc, rd, rs1, rs2, funct3, funct7, false)
	case boOp32:
		return d.decodeOp(pc, rd, rs1, rs2, funct3, funct7, true)
	case boMiscMem:
		if funct3 == 1 {
			return isa.PackSys(isa.FENCEI, 0, 0), nil
		}
		return isa.PackSys(isa.FENCE, 0, 0), nil
	case boSystem:
		if funct3 != 0 {
			return 0, machine.New(machine.InvalidInstruction, pc, "CSR instructions are not modeled by this core")
		}
		if in>>20&0xfff == 1 {
			return isa.PackSys(isa.EBREAK, 0, 0), nil
		}
		return isa.PackSys(isa.ECALL, 0, 0), nil
	case boAMO:
		if d.Ext&ExtA == 0 {
			return 0, machine.New(machine.InvalidInstruction, pc, "A extension disabled")
		}
		return d.decodeAMO(pc, rd, rs1, rs2, funct3, in)
	default:
		return 0, machine.New(machine.InvalidInstruction, pc, "unrecognized base opcode")
	}
}

// jalrOp picks the VERSION0/VERSION1 flavor of JALR; both map to the same
// executor, which applies no boundary check, so the opcode stays
// JALR_V0/JALR_V1 purely to keep the first-level dispatch table's fast
// path flat.
func (d *Decoder) jalrOp() isa.Opcode {
	if d.Version == Version1 {
		return isa.JALR_V1
	}
	return isa.JALR_V0
}

func branchOp(funct3 uint32) (isa.Opcode, error) {
	switch funct3 {
	case 0:
		return isa.BEQ, nil
	case 1:
		return isa.BNE, nil
	case 4:
		return isa.BLT, nil
	case 5:
		return isa.BGE, nil
	case 6:
		return isa.BLTU, nil
	case 7:
		return isa.BGEU, nil
	default:
		return 0, errInvalid("branch funct3")
	}
}

func (d *Decoder) loadOp(funct3 uint32) (isa.Opcode, error) {
	v1 := d.Version == Version1
	switch funct3 {
	case 0:
		if v1 {
			return isa.LB_V1, nil
		}
		return isa.LB_V0, nil
	case 1:
		if v1 {
			return isa.LH_V1, nil
		}
		return isa.LH_V0, nil
	case 2:
		if v1 {
			return isa.LW_V1, nil
		}
		return isa.LW_V0, nil
	case 3:
		if v1 {
			return isa.LD_V1, nil
		}
		return isa.LD_V0, nil
	case 4:
		if v1 {
			return isa.LBU_V1, nil
		}
		return isa.LBU_V0, nil
	case 5:
		if v1 {
			return isa.LHU_V1, nil
		}
		return isa.LHU_V0, nil
	case 6:
		if v1 {
			return isa.LWU_V1, nil
		}
		return isa.LWU_V0, nil
	default:
		return 0, errInvalid("load funct3")
	}
}

func storeOp(funct3 uint32) (isa.Opcode, error) {
	switch funct3 {
	case 0:
		return isa.SB, nil
	case 1:
		return isa.SH, nil
	case 2:
		return isa.SW, nil
	case 3:
		return isa.SD, nil
	default:
		return 0, errInvalid("store funct3")
	}
}

// decodeOpImm covers OP-IMM/OP-IMM-32: ALU-immediate ops plus the
// shift-by-immediate family plus the Zb* immediate ops that share the
// OP-IMM major opcode (BCLRI/BEXTI/BINVI/BSETI/RORI/CLZ/CTZ/CPOP/
// SEXT.B/SEXT.H/ORC.B/REV8), distinguished by funct7/imm bit patterns the
// way rvi.go's shiftRight distinguishes SRLI from SRAI on funct7.
func (d *Decoder) decodeOpImm(pc uint64, in uint32, rd, rs1 uint8, funct3, funct7 uint32, w32 bool) (isa.Decoded, error) {
	imm12 := int32(in>>20&0xfff)
	shamtMask := uint32(0x3f)
	if w32 {
		shamtMask = 0x1f
	}
	switch funct3 {
	case 0: // ADDI / ADDIW
		op := isa.ADDI
		if w32 {
			op = isa.ADDIW
		}
		return isa.PackI(op, 0, rd, rs1, 0, signExtend32(imm12, 12)), nil
	case 1: // SLLI/SLLIW, or a Zb* bit-manip immediate op sharing funct3=1
		shamt := uint8(in >> 20 & shamtMask)
		switch funct7 >> 1 {
		case 0x00:
			op := isa.SLLI
			if w32 {
				op = isa.SLLIW
			}
			return isa.PackI(op, 0, rd, rs1, 0, int32(shamt)), nil
		case 0x12: // 0x24 (BCLRI / CLZ / CTZ / CPOP / SEXT.B / SEXT.H / ORC.B family)
			if d.Ext&ExtZb == 0 {
				return 0, machine.New(machine.InvalidInstruction, pc, "Zb extension disabled")
			}
			switch in >> 20 {
			case 0x600:
				return isa.PackI(isa.CLZ, 0, rd, rs1, 0, 0), nil
			case 0x601:
				return isa.PackI(isa.CTZ, 0, rd, rs1, 0, 0), nil
			case 0x602:
				return isa.PackI(isa.CPOP, 0, rd, rs1, 0, 0), nil
			case 0x604:
				return isa.PackI(isa.SEXTB, 0, rd, rs1, 0, 0), nil
			case 0x605:
				return isa.PackI(isa.SEXTH, 0, rd, rs1, 0, 0), nil
			}
			return isa.PackI(isa.BCLRI, 0, rd, rs1, 0, int32(shamt)), nil
		case 0x14: // 0x28: BINVI
			if d.Ext&ExtZb == 0 {
				return 0, machine.New(machine.InvalidInstruction, pc, "Zb extension disabled")
			}
			return isa.PackI(isa.BINVI, 0, rd, rs1, 0, int32(shamt)), nil
		case 0x0a: // 0x14: BSETI
			if d.Ext&ExtZb == 0 {
				return 0, machine.New(machine.InvalidInstruction, pc, "Zb extension disabled")
			}
			return isa.PackI(isa.BSETI, 0, rd, rs1, 0, int32(shamt)), nil
		default:
			return 0, errInvalidAt(pc, "SLLI-family funct7")
		}
	case 5: // SRLI/SRLIW or SRAI/SRAIW, or BEXTI/RORI/ORC.B/REV8
		shamt := uint8(in >> 20 & shamtMask)
		switch funct7 >> 1 {
		case 0x00:
			op := isa.SRLI
			if w32 {
				op = isa.SRLIW
			}
			return isa.PackI(op, 0, rd, rs1, 0, int32(shamt)), nil
		case 0x10:
			op := isa.SRAI
			if w32 {
				op = isa.SRAIW
			}
			return isa.PackI(op, 0, rd, rs1, 0, int32(shamt)), nil
		case 0x0c: // 0x18: BEXTI
			if d.Ext&ExtZb == 0 {
				return 0, machine.New(machine.InvalidInstruction, pc, "Zb extension disabled")
			}
			return isa.PackI(isa.BEXTI, 0, rd, rs1, 0, int32(shamt)), nil
		case 0x18: // 0x30: RORI/RORIW, or ORC.B/REV8 (imm-encoded, rs2 field selects)
			if d.Ext&ExtZb == 0 {
				return 0, machine.New(machine.InvalidInstruction, pc, "Zb extension disabled")
			}
			switch in >> 20 {
			case 0x287:
				return isa.PackI(isa.ORCB, 0, rd, rs1, 0, 0), nil
			case 0x6b8, 0x298:
				return isa.PackI(isa.REV8, 0, rd, rs1, 0, 0), nil
			}
			op := isa.RORI
			if w32 {
				op = isa.RORIW
			}
			return isa.PackI(op, 0, rd, rs1, 0, int32(shamt)), nil
		default:
			return 0, errInvalidAt(pc, "SRLI-family funct7")
		}
	case 2:
		return isa.PackI(isa.SLTI, 0, rd, rs1, 0, signExtend32(imm12, 12)), nil
	case 3:
		return isa.PackI(isa.SLTIU, 0, rd, rs1, 0, signExtend32(imm12, 12)), nil
	case 4:
		if d.Ext&ExtZb != 0 && in>>20 == 0x080 {
			return isa.PackI(isa.ZEXTH, 0, rd, rs1, 0, 0), nil
		}
		return isa.PackI(isa.XORI, 0, rd, rs1, 0, signExtend32(imm12, 12)), nil
	case 6:
		return isa.PackI(isa.ORI, 0, rd, rs1, 0, signExtend32(imm12, 12)), nil
	case 7:
		return isa.PackI(isa.ANDI, 0, rd, rs1, 0, signExtend32(imm12, 12)), nil
	default:
		return 0, errInvalidAt(pc, "OP-IMM funct3")
	}
}

// decodeOp covers OP/OP-32: register-register ALU, M-extension, and the
// Zb* register-register family (funct7 selects among base/M/Zb exactly the
// way rvi64Instructions' funct7|funct3 key does in the teacher).
func (d *Decoder) decodeOp(pc uint64, rd, rs1, rs2 uint8, funct3, funct7 uint32, w32 bool) (isa.Decoded, error) {
	switch {
	case funct7 == 0x00:
		return packAluR(funct3, rd, rs1, rs2, w32, false)
	case funct7 == 0x20 && (funct3 == 0 || funct3 == 5):
		// SUB/SUBW (funct3=0) and SRA/SRAW (funct3=5) share funct7=0x20
		// with the Zb* ANDN/ORN/XNOR family below, disambiguated by funct3.
		return packAluR(funct3, rd, rs1, rs2, w32, true)
	case funct7 == 0x01:
		if d.Ext&ExtM == 0 {
			return 0, machine.New(machine.InvalidInstruction, pc, "M extension disabled")
		}
		return packMExt(funct3, rd, rs1, rs2, w32)
	}
	if d.Ext&ExtZb != 0 {
		if op, ok := zbRegOp(funct7, funct3, w32); ok {
			return isa.PackR(op, 0, rd, rs1, rs2, 0, 0, 0), nil
		}
	}
	return 0, errInvalidAt(pc, "OP/OP-32 funct7")
}

func packAluR(funct3 uint32, rd, rs1, rs2 uint8, w32, alt bool) (isa.Decoded, error) {
	var op isa.Opcode
	switch {
	case funct3 == 0 && !alt && !w32:
		op = isa.ADD
	case funct3 == 0 && alt && !w32:
		op = isa.SUB
	case funct3 == 0 && !alt && w32:
		op = isa.ADDW
	case funct3 == 0 && alt && w32:
		op = isa.SUBW
	case funct3 == 1 && !w32:
		op = isa.SLL
	case funct3 == 1 && w32:
		op = isa.SLLW
	case funct3 == 2 && !w32:
		op = isa.SLT
	case funct3 == 3 && !w32:
		op = isa.SLTU
	case funct3 == 4 && !w32:
		op = isa.XOR
	case funct3 == 5 && !alt && !w32:
		op = isa.SRL
	case funct3 == 5 && alt && !w32:
		op = isa.SRA
	case funct3 == 5 && !alt && w32:
		op = isa.SRLW
	case funct3 == 5 && alt && w32:
		op = isa.SRAW
	case funct3 == 6 && !w32:
		op = isa.OR
	case funct3 == 7 && !w32:
		op = isa.AND
	default:
		return 0, errInvalid("ALU-R funct3/width combination")
	}
	return isa.PackR(op, 0, rd, rs1, rs2, 0, 0, 0), nil
}

func packMExt(funct3 uint32, rd, rs1, rs2 uint8, w32 bool) (isa.Decoded, error) {
	var op isa.Opcode
	switch {
	case funct3 == 0 && !w32:
		op = isa.MUL
	case funct3 == 1 && !w32:
		op = isa.MULH
	case funct3 == 2 && !w32:
		op = isa.MULHSU
	case funct3 == 3 && !w32:
		op = isa.MULHU
	case funct3 == 4 && !w32:
		op = isa.DIV
	case funct3 == 5 && !w32:
		op = isa.DIVU
	case funct3 == 6 && !w32:
		op = isa.REM
	case funct3 == 7 && !w32:
		op = isa.REMU
	case funct3 == 0 && w32:
		op = isa.MULW
	case funct3 == 4 && w32:
		op = isa.DIVW
	case funct3 == 5 && w32:
		op = isa.DIVUW
	case funct3 == 6 && w32:
		op = isa.REMW
	case funct3 == 7 && w32:
		op = isa.REMUW
	default:
		return 0, errInvalid("M-extension funct3/width combination")
	}
	return isa.PackR(op, 0, rd, rs1, rs2, 0, 0, 0), nil
}

// zbRegOp covers the register-register Zb* family sharing OP/OP-32's
// major opcode with the base ALU ops, selected on (funct7, funct3).
func zbRegOp(funct7, funct3 uint32, w32 bool) (isa.Opcode, bool) {
	switch {
	case funct7 == 0x20 && funct3 == 7:
		return isa.ANDN, true
	case funct7 == 0x20 && funct3 == 6:
		return isa.ORN, true
	case funct7 == 0x20 && funct3 == 4:
		return isa.XNOR, true
	case funct7 == 0x30 && funct3 == 1 && !w32:
		return isa.ROL, true
	case funct7 == 0x30 && funct3 == 1 && w32:
		return isa.ROLW, true
	case funct7 == 0x30 && funct3 == 5 && !w32:
		return isa.ROR, true
	case funct7 == 0x30 && funct3 == 5 && w32:
		return isa.RORW, true
	case funct7 == 0x05 && funct3 == 6:
		return isa.MAX, true
	case funct7 == 0x05 && funct3 == 7:
		return isa.MAXU, true
	case funct7 == 0x05 && funct3 == 4:
		return isa.MIN, true
	case funct7 == 0x05 && funct3 == 5:
		return isa.MINU, true
	case funct7 == 0x04 && funct3 == 1 && w32:
		return isa.ADDUW, true
	case funct7 == 0x10 && funct3 == 2:
		return isa.SH1ADD, true
	case funct7 == 0x10 && funct3 == 4:
		return isa.SH2ADD, true
	case funct7 == 0x10 && funct3 == 6:
		return isa.SH3ADD, true
	case funct7 == 0x04 && funct3 == 2 && w32:
		return isa.SH1ADDUW, true
	case funct7 == 0x04 && funct3 == 4 && w32:
		return isa.SH2ADDUW, true
	case funct7 == 0x04 && funct3 == 6 && w32:
		return isa.SH3ADDUW, true
	case funct7 == 0x24 && funct3 == 1:
		return isa.BCLR, true
	case funct7 == 0x24 && funct3 == 5:
		return isa.BEXT, true
	case funct7 == 0x34 && funct3 == 1:
		return isa.BINV, true
	case funct7 == 0x14 && funct3 == 1:
		return isa.BSET, true
	case funct7 == 0x05 && funct3 == 1:
		return isa.CLMUL, true
	case funct7 == 0x05 && funct3 == 2:
		return isa.CLMULR, true
	case funct7 == 0x05 && funct3 == 3:
		return isa.CLMULH, true
	default:
		return 0, false
	}
}

// decodeAMO covers the A extension's LR/SC/AMO* family (boAMO major
// opcode), keyed by funct5 (bits 31:27) and the .aq/.rl bits (30:29,
// ignored: this core has no concurrent harts, spec.md section 5).
func (d *Decoder) decodeAMO(pc uint64, rd, rs1, rs2 uint8, funct3 uint32, in uint32) (isa.Decoded, error) {
	funct5 := in >> 27 & 0x1f
	wide := funct3 == 3 // 011 = .d, 010 = .w
	amoOp := func(w, d64 isa.Opcode) isa.Opcode {
		if wide {
			return d64
		}
		return w
	}
	switch funct5 {
	case 0x02: // LR
		return isa.PackI(amoOp(isa.LR_W, isa.LR_D), 0, rd, rs1, 0, 0), nil
	case 0x03: // SC
		return isa.PackR(amoOp(isa.SC_W, isa.SC_D), 0, rd, rs1, rs2, 0, 0, 0), nil
	case 0x01:
		return isa.PackR(amoOp(isa.AMOSWAP_W, isa.AMOSWAP_D), 0, rd, rs1, rs2, 0, 0, 0), nil
	case 0x00:
		return isa.PackR(amoOp(isa.AMOADD_W, isa.AMOADD_D), 0, rd, rs1, rs2, 0, 0, 0), nil
	case 0x04:
		return isa.PackR(amoOp(isa.AMOXOR_W, isa.AMOXOR_D), 0, rd, rs1, rs2, 0, 0, 0), nil
	case 0x0c:
		return isa.PackR(amoOp(isa.AMOAND_W, isa.AMOAND_D), 0, rd, rs1, rs2, 0, 0, 0), nil
	case 0x08:
		return isa.PackR(amoOp(isa.AMOOR_W, isa.AMOOR_D), 0, rd, rs1, rs2, 0, 0, 0), nil
	case 0x10:
		return isa.PackR(amoOp(isa.AMOMIN_W, isa.AMOMIN_D), 0, rd, rs1, rs2, 0, 0, 0), nil
	case 0x14:
		return isa.PackR(amoOp(isa.AMOMAX_W, isa.AMOMAX_D), 0, rd, rs1, rs2, 0, 0, 0), nil
	case 0x18:
		return isa.PackR(amoOp(isa.AMOMINU_W, isa.AMOMINU_D), 0, rd, rs1, rs2, 0, 0, 0), nil
	case 0x1c:
		return isa.PackR(amoOp(isa.AMOMAXU_W, isa.AMOMAXU_D), 0, rd, rs1, rs2, 0, 0, 0), nil
	default:
		return 0, errInvalidAt(pc, "AMO funct5")
	}
}

func signExtend32(v int32, bit uint) int32 {
	shift := 32 - bit
	return int32(uint32(v)<<shift) >> shift
}

type decodeErr string

func (e decodeErr) Error() string { return string(e) }

func errInvalid(msg string) error { return decodeErr(msg) }

func errInvalidAt(pc uint64, msg string) error {
	return machine.New(machine.InvalidInstruction, pc, msg)
}
