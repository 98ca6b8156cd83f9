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

// Table maps every first-level opcode to its executor, built once per
// concrete width W and consulted by pkg/dispatch on every step. Building
// it as a plain map (rather than the teacher's array-indexed-by-u8 in
// vm.go) keeps this file a flat, auditable list; pkg/dispatch is free to
// flatten it into an array indexed by Opcode-MinimalOpcode for the hot
// path.
func Table[W reg.Word]() map[isa.Opcode]Func[W] {
	return map[isa.Opcode]Func[W]{
		isa.UNLOADED:         Unloaded[W],
		isa.CUSTOM_TRACE_END: CustomTraceEnd[W],

		isa.ADD:  Add[W],
		isa.SUB:  Sub[W],
		isa.AND:  And[W],
		isa.OR:   Or[W],
		isa.XOR:  Xor[W],
		isa.SLL:  Sll[W],
		isa.SRL:  Srl[W],
		isa.SRA:  Sra[W],
		isa.SLT:  Slt[W],
		isa.SLTU: Sltu[W],

		isa.ADDW: AddW[W],
		isa.SUBW: SubW[W],
		isa.SLLW: SllW[W],
		isa.SRLW: SrlW[W],
		isa.SRAW: SraW[W],

		isa.ADDI:  Addi[W],
		isa.ANDI:  Andi[W],
		isa.ORI:   Ori[W],
		isa.XORI:  Xori[W],
		isa.SLTI:  Slti[W],
		isa.SLTIU: Sltiu[W],
		isa.SLLI:  Slli[W],
		isa.SRLI:  Srli[W],
		isa.SRAI:  Srai[W],

		isa.ADDIW: AddiW[W],
		isa.SLLIW: SlliW[W],
		isa.SRLIW: SrliW[W],
		isa.SRAIW: SraiW[W],

		isa.LUI:   Lui[W],
		isa.AUIPC: Auipc[W],

		isa.BEQ:  Beq[W],
		isa.BNE:  Bne[W],
		isa.BLT:  Blt[W],
		isa.BGE:  Bge[W],
		isa.BLTU: Bltu[W],
		isa.BGEU: Bgeu[W],

		isa.JAL:     Jal[W],
		isa.JALR_V0: JalrV0[W],
		isa.JALR_V1: JalrV1[W],

		isa.LB_V0:  LbV0[W],
		isa.LB_V1:  LbV1[W],
		isa.LBU_V0: LbuV0[W],
		isa.LBU_V1: LbuV1[W],
		isa.LH_V0:  LhV0[W],
		isa.LH_V1:  LhV1[W],
		isa.LHU_V0: LhuV0[W],
		isa.LHU_V1: LhuV1[W],
		isa.LW_V0:  LwV0[W],
		isa.LW_V1:  LwV1[W],
		isa.LWU_V0: LwuV0[W],
		isa.LWU_V1: LwuV1[W],
		isa.LD_V0:  LdV0[W],
		isa.LD_V1:  LdV1[W],

		isa.SB: Sb[W],
		isa.SH: Sh[W],
		isa.SW: Sw[W],
		isa.SD: Sd[W],

		isa.MUL:    Mul[W],
		isa.MULH:   Mulh[W],
		isa.MULHSU: Mulhsu[W],
		isa.MULHU:  Mulhu[W],
		isa.DIV:    Div[W],
		isa.DIVU:   Divu[W],
		isa.REM:    Rem[W],
		isa.REMU:   Remu[W],

		isa.MULW:  MulW[W],
		isa.DIVW:  DivW[W],
		isa.DIVUW: DivUW[W],
		isa.REMW:  RemW[W],
		isa.REMUW: RemUW[W],

		isa.ECALL:  Ecall[W],
		isa.EBREAK: Ebreak[W],
		isa.FENCE:  Fence[W],
		isa.FENCEI: FenceI[W],

		isa.LR_W:      LrW[W],
		isa.SC_W:      ScW[W],
		isa.AMOSWAP_W: AmoswapW[W],
		isa.AMOADD_W:  AmoaddW[W],
		isa.AMOXOR_W:  AmoxorW[W],
		isa.AMOAND_W:  AmoandW[W],
		isa.AMOOR_W:   AmoorW[W],
		isa.AMOMIN_W:  AmominW[W],
		isa.AMOMAX_W:  AmomaxW[W],
		isa.AMOMINU_W: AmominuW[W],
		isa.AMOMAXU_W: AmomaxuW[W],

		isa.LR_D:      LrD[W],
		isa.SC_D:      ScD[W],
		isa.AMOSWAP_D: AmoswapD[W],
		isa.AMOADD_D:  AmoaddD[W],
		isa.AMOXOR_D:  AmoxorD[W],
		isa.AMOAND_D:  AmoandD[W],
		isa.AMOOR_D:   AmoorD[W],
		isa.AMOMIN_D:  AmominD[W],
		isa.AMOMAX_D:  AmomaxD[W],
		isa.AMOMINU_D: AmominuD[W],
		isa.AMOMAXU_D: AmomaxuD[W],

		isa.ANDN: Andn[W],
		isa.ORN:  Orn[W],
		isa.XNOR: Xnor[W],
		isa.ROL:  Rol[W],
		isa.ROR:  Ror[W],
		isa.RORI: Rori[W],
		isa.ROLW: RolW[W],
		isa.RORW: RorW[W],
		isa.RORIW: RoriW[W],

		isa.MAX:  Max[W],
		isa.MAXU: Maxu[W],
		isa.MIN:  Min[W],
		isa.MINU: Minu[W],

		isa.CLZ:  Clz[W],
		isa.CLZW: ClzW[W],
		isa.CTZ:  Ctz[W],
		isa.CTZW: CtzW[W],
		isa.CPOP: Cpop[W],
		isa.CPOPW: CpopW[W],

		isa.SEXTB: Sextb[W],
		isa.SEXTH: Sexth[W],
		isa.ZEXTH: Zexth[W],
		isa.ORCB:  Orcb[W],
		isa.REV8:  Rev8[W],

		isa.BCLR:  Bclr[W],
		isa.BSET:  Bset[W],
		isa.BINV:  Binv[W],
		isa.BEXT:  Bext[W],
		isa.BCLRI: Bclri[W],
		isa.BSETI: Bseti[W],
		isa.BINVI: Binvi[W],
		isa.BEXTI: Bexti[W],

		isa.SH1ADD: Sh1add[W],
		isa.SH2ADD: Sh2add[W],
		isa.SH3ADD: Sh3add[W],
		isa.ADDUW:  Adduw[W],
		isa.SH1ADDUW: Sh1adduw[W],
		isa.SH2ADDUW: Sh2adduw[W],
		isa.SH3ADDUW: Sh3adduw[W],
		isa.SLLIUW:   Slliuw[W],

		isa.CLMUL:  Clmul[W],
		isa.CLMULH: Clmulh[W],
		isa.CLMULR: Clmulr[W],

		isa.CUSTOM_LOAD_IMM:  CustomLoadImm[W],
		isa.CUSTOM_LOAD_UIMM: CustomLoadUimm[W],
		isa.FAR_JUMP_REL:     FarJumpRel[W],
		isa.FAR_JUMP_ABS:     FarJumpAbs[W],

		isa.ADC:  Adc[W],
		isa.SBB:  Sbb[W],
		isa.ADCS: Adcs[W],
		isa.SBBS: Sbbs[W],

		isa.ADD3A: Add3a[W],
		isa.ADD3B: Add3b[W],
		isa.ADD3C: Add3c[W],

		isa.WIDE_MUL:   WideMul[W],
		isa.WIDE_MULU:  WideMulu[W],
		isa.WIDE_MULSU: WideMulsu[W],
		isa.WIDE_DIV:   WideDiv[W],
		isa.WIDE_DIVU:  WideDivu[W],
	}
}

// Lookup is a convenience wrapper pkg/dispatch uses to report InvalidOp
// instead of a nil-map panic for an opcode the table doesn't cover.
func Lookup[W reg.Word](t map[isa.Opcode]Func[W], op isa.Opcode) (Func[W], error) {
	f, ok := t[op]
	if !ok {
		return nil, machine.New(machine.InvalidOp, 0, "no executor for "+isa.OpcodeName(op))
	}
	return f, nil
}
