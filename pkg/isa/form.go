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

// Form classifies how a first-level opcode's operand bytes are laid out in
// the packed word. Resolving the ambiguity in spec.md section 3 ("a 32-bit
// signed immediate occupying the upper half of the word") against the
// register-slot layout it also specifies: I/S/B-type forms keep rs1 in its
// own byte (bits 32-39) and pack a 24-bit immediate into the remaining three
// register bytes (bits 40-63); U/J-type forms need no rs1 and get the full
// 32-bit upper half for their immediate. This is recorded as an Open
// Question resolution in DESIGN.md.
type Form uint8

const (
	FormR  Form = iota // rd, rs1, rs2
	FormR4             // rd, rs1, rs2, rs3 (e.g. ADC, ADD3A)
	FormR5             // rd, rs1, rs2, rs3, rs4 (e.g. ADCS, WIDE_MUL writing hi+lo)
	FormI              // rd, rs1, imm24 (ADDI, loads, JALR, shift-by-immediate)
	FormS              // rs1, rs2 (stored in the rd byte), imm24 (stores, branches)
	FormU              // rd, imm32 (LUI, AUIPC, CUSTOM_LOAD_*)
	FormJ              // rd, imm32 (JAL, FAR_JUMP_*)
	FormSys            // no operands (ECALL, EBREAK, FENCE, FENCEI, UNLOADED, CUSTOM_TRACE_END)
)

var formTable = map[Opcode]Form{
	ADD: FormR, SUB: FormR, AND: FormR, OR: FormR, XOR: FormR,
	SLL: FormR, SRL: FormR, SRA: FormR, SLT: FormR, SLTU: FormR,
	ADDW: FormR, SUBW: FormR, SLLW: FormR, SRLW: FormR, SRAW: FormR,
	MUL: FormR, MULH: FormR, MULHSU: FormR, MULHU: FormR, MULW: FormR,
	DIV: FormR, DIVU: FormR, DIVW: FormR, DIVUW: FormR,
	REM: FormR, REMU: FormR, REMW: FormR, REMUW: FormR,
	ADDUW: FormR, ANDN: FormR, BCLR: FormR, BEXT: FormR, BINV: FormR, BSET: FormR,
	CLMUL: FormR, CLMULH: FormR, CLMULR: FormR, MAX: FormR, MAXU: FormR, MIN: FormR, MINU: FormR,
	ORN: FormR, ROL: FormR, ROLW: FormR, ROR: FormR, RORW: FormR, XNOR: FormR,
	SH1ADD: FormR, SH1ADDUW: FormR, SH2ADD: FormR, SH2ADDUW: FormR, SH3ADD: FormR, SH3ADDUW: FormR,
	SLLIUW: FormI,

	AMOSWAP_W: FormR, AMOADD_W: FormR, AMOXOR_W: FormR, AMOAND_W: FormR, AMOOR_W: FormR,
	AMOMIN_W: FormR, AMOMAX_W: FormR, AMOMINU_W: FormR, AMOMAXU_W: FormR,
	AMOSWAP_D: FormR, AMOADD_D: FormR, AMOXOR_D: FormR, AMOAND_D: FormR, AMOOR_D: FormR,
	AMOMIN_D: FormR, AMOMAX_D: FormR, AMOMINU_D: FormR, AMOMAXU_D: FormR,
	LR_W: FormI, LR_D: FormI, SC_W: FormR, SC_D: FormR,

	ADDI: FormI, ADDIW: FormI, ANDI: FormI, ORI: FormI, XORI: FormI,
	SLTI: FormI, SLTIU: FormI, SLLI: FormI, SLLIW: FormI, SRLI: FormI, SRLIW: FormI, SRAI: FormI, SRAIW: FormI,
	JALR_V0: FormI, JALR_V1: FormI,
	LB_V0: FormI, LB_V1: FormI, LBU_V0: FormI, LBU_V1: FormI,
	LH_V0: FormI, LH_V1: FormI, LHU_V0: FormI, LHU_V1: FormI,
	LW_V0: FormI, LW_V1: FormI, LWU_V0: FormI, LWU_V1: FormI,
	LD_V0: FormI, LD_V1: FormI,
	BCLRI: FormI, BEXTI: FormI, BINVI: FormI, BSETI: FormI, RORI: FormI, RORIW: FormI,
	CLZ: FormI, CLZW: FormI, CPOP: FormI, CPOPW: FormI, CTZ: FormI, CTZW: FormI,
	ORCB: FormI, REV8: FormI, SEXTB: FormI, SEXTH: FormI, ZEXTH: FormI,

	BEQ: FormS, BNE: FormS, BLT: FormS, BGE: FormS, BLTU: FormS, BGEU: FormS,
	SB: FormS, SH: FormS, SW: FormS, SD: FormS,

	LUI: FormU, AUIPC: FormU, CUSTOM_LOAD_UIMM: FormU, CUSTOM_LOAD_IMM: FormU,
	JAL: FormJ, FAR_JUMP_REL: FormJ, FAR_JUMP_ABS: FormJ,

	WIDE_MUL: FormR5, WIDE_MULU: FormR5, WIDE_MULSU: FormR5, WIDE_DIV: FormR5, WIDE_DIVU: FormR5,
	ADC: FormR4, SBB: FormR4, ADCS: FormR5, SBBS: FormR5,
	ADD3A: FormR4, ADD3B: FormR4, ADD3C: FormR4,

	FENCE: FormSys, FENCEI: FormSys, ECALL: FormSys, EBREAK: FormSys,
	UNLOADED: FormSys, CUSTOM_TRACE_END: FormSys,
}

// FormOf reports the operand layout for op. Opcodes absent from the table
// (none, by construction above) fall back to FormR, the densest shape.
func FormOf(op Opcode) Form {
	if f, ok := formTable[op]; ok {
		return f
	}
	return FormR
}
