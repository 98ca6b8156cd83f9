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

// Package isa defines the decoded-instruction wire format shared by the
// decoder, executors, and dispatch loop: a packed 64-bit word (component B
// of spec.md), the first-level opcode table, and pure bit-shift accessors.
//
// The opcode numbering and name table reproduce definitions/src/instructions.rs
// from original_source/ verbatim (OP_UNLOADED=0x10 .. OP_CUSTOM_TRACE_END=0xac),
// the same ordering spec.md section 6 lists in prose.
package isa

// Opcode is a first-level (fast-path, op >= 0x10) or reserved second-level
// (op < 0x10, combined with Op2) dispatch index.
type Opcode uint8

const (
	UNLOADED Opcode = 0x10 + iota
	ADD
	ADDI
	ADDIW
	ADDW
	AND
	ANDI
	AUIPC
	BEQ
	BGE
	BGEU
	BLT
	BLTU
	BNE
	DIV
	DIVU
	DIVUW
	DIVW
	EBREAK
	ECALL
	FENCE
	FENCEI
	JAL
	JALR_V0
	JALR_V1
	LB_V0
	LB_V1
	LBU_V0
	LBU_V1
	LD_V0
	LD_V1
	LH_V0
	LH_V1
	LHU_V0
	LHU_V1
	LUI
	LW_V0
	LW_V1
	LWU_V0
	LWU_V1
	MUL
	MULH
	MULHSU
	MULHU
	MULW
	OR
	ORI
	REM
	REMU
	REMUW
	REMW
	SB
	SD
	SH
	SLL
	SLLI
	SLLIW
	SLLW
	SLT
	SLTI
	SLTIU
	SLTU
	SRA
	SRAI
	SRAIW
	SRAW
	SRL
	SRLI
	SRLIW
	SRLW
	SUB
	SUBW
	SW
	XOR
	XORI
	LR_W
	SC_W
	AMOSWAP_W
	AMOADD_W
	AMOXOR_W
	AMOAND_W
	AMOOR_W
	AMOMIN_W
	AMOMAX_W
	AMOMINU_W
	AMOMAXU_W
	LR_D
	SC_D
	AMOSWAP_D
	AMOADD_D
	AMOXOR_D
	AMOAND_D
	AMOOR_D
	AMOMIN_D
	AMOMAX_D
	AMOMINU_D
	AMOMAXU_D
	ADDUW
	ANDN
	BCLR
	BCLRI
	BEXT
	BEXTI
	BINV
	BINVI
	BSET
	BSETI
	CLMUL
	CLMULH
	CLMULR
	CLZ
	CLZW
	CPOP
	CPOPW
	CTZ
	CTZW
	MAX
	MAXU
	MIN
	MINU
	ORCB
	ORN
	REV8
	ROL
	ROLW
	ROR
	RORI
	RORIW
	RORW
	SEXTB
	SEXTH
	SH1ADD
	SH1ADDUW
	SH2ADD
	SH2ADDUW
	SH3ADD
	SH3ADDUW
	SLLIUW
	XNOR
	ZEXTH
	WIDE_MUL
	WIDE_MULU
	WIDE_MULSU
	WIDE_DIV
	WIDE_DIVU
	FAR_JUMP_REL
	FAR_JUMP_ABS
	ADC
	SBB
	ADCS
	SBBS
	ADD3A
	ADD3B
	ADD3C
	CUSTOM_LOAD_UIMM
	CUSTOM_LOAD_IMM
	CUSTOM_TRACE_END
)

const (
	MinimalOpcode = UNLOADED
	MaximumOpcode = CUSTOM_TRACE_END
)

// opcodeNames mirrors INSTRUCTION_OPCODE_NAMES from original_source/definitions/src/instructions.rs.
var opcodeNames = [...]string{
	"UNLOADED", "ADD", "ADDI", "ADDIW", "ADDW", "AND", "ANDI", "AUIPC",
	"BEQ", "BGE", "BGEU", "BLT", "BLTU", "BNE",
	"DIV", "DIVU", "DIVUW", "DIVW", "EBREAK", "ECALL", "FENCE", "FENCEI", "JAL",
	"JALR_VERSION0", "JALR_VERSION1", "LB_VERSION0", "LB_VERSION1", "LBU_VERSION0", "LBU_VERSION1",
	"LD_VERSION0", "LD_VERSION1", "LH_VERSION0", "LH_VERSION1", "LHU_VERSION0", "LHU_VERSION1",
	"LUI", "LW_VERSION0", "LW_VERSION1", "LWU_VERSION0", "LWU_VERSION1",
	"MUL", "MULH", "MULHSU", "MULHU", "MULW", "OR", "ORI",
	"REM", "REMU", "REMUW", "REMW", "SB", "SD", "SH",
	"SLL", "SLLI", "SLLIW", "SLLW", "SLT", "SLTI", "SLTIU", "SLTU",
	"SRA", "SRAI", "SRAIW", "SRAW", "SRL", "SRLI", "SRLIW", "SRLW", "SUB", "SUBW", "SW", "XOR", "XORI",
	"LR_W", "SC_W", "AMOSWAP_W", "AMOADD_W", "AMOXOR_W", "AMOAND_W", "AMOOR_W",
	"AMOMIN_W", "AMOMAX_W", "AMOMINU_W", "AMOMAXU_W",
	"LR_D", "SC_D", "AMOSWAP_D", "AMOADD_D", "AMOXOR_D", "AMOAND_D", "AMOOR_D",
	"AMOMIN_D", "AMOMAX_D", "AMOMINU_D", "AMOMAXU_D",
	"ADDUW", "ANDN", "BCLR", "BCLRI", "BEXT", "BEXTI", "BINV", "BINVI", "BSET", "BSETI",
	"CLMUL", "CLMULH", "CLMULR", "CLZ", "CLZW", "CPOP", "CPOPW", "CTZ", "CTZW",
	"MAX", "MAXU", "MIN", "MINU", "ORCB", "ORN", "REV8",
	"ROL", "ROLW", "ROR", "RORI", "RORIW", "RORW",
	"SEXTB", "SEXTH", "SH1ADD", "SH1ADDUW", "SH2ADD", "SH2ADDUW", "SH3ADD", "SH3ADDUW",
	"SLLIUW", "XNOR", "ZEXTH",
	"WIDE_MUL", "WIDE_MULU", "WIDE_MULSU", "WIDE_DIV", "WIDE_DIVU",
	"FAR_JUMP_REL", "FAR_JUMP_ABS", "ADC", "SBB", "ADCS", "SBBS",
	"ADD3A", "ADD3B", "ADD3C",
	"CUSTOM_LOAD_UIMM", "CUSTOM_LOAD_IMM", "CUSTOM_TRACE_END",
}

// OpcodeName returns the diagnostic/disassembly name of op, or "UNKNOWN" if
// op falls outside [MinimalOpcode, MaximumOpcode].
func OpcodeName(op Opcode) string {
	if op < MinimalOpcode || op > MaximumOpcode {
		return "UNKNOWN"
	}
	return opcodeNames[op-MinimalOpcode]
}
