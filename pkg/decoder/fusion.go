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

// TryFuse implements the macro-op fusion pass (spec.md section 4.6): given
// a window of already-decoded instructions starting at the dispatch
// cursor, it recognizes a short list of common compiler idioms and
// collapses them into a single Mop opcode that executes in one dispatch
// step. Fusion only fires when ExtMop is enabled; a fused entry's flg
// length field must still fit in 4 bits, so only 2-instruction windows
// (max 8 raw bytes) are fused here, well under the 30-byte limit.
//
// Returns the fused word, the number of source instructions it consumes,
// and ok=false if no pattern in window matches.
func (d *Decoder) TryFuse(window []isa.Decoded, lengths []int) (isa.Decoded, int, bool) {
	if d.Ext&ExtMop == 0 || len(window) < 2 {
		return 0, 0, false
	}
	a, b := window[0], window[1]

	// LUI rd, imm_hi ; ADDI rd, rd, imm_lo  ->  CUSTOM_LOAD_IMM rd, imm
	// (the classic 2-instruction 32-bit constant materialization idiom).
	if a.Op() == isa.LUI && b.Op() == isa.ADDI && b.RD() == a.RD() && b.RS1() == a.RD() {
		imm := a.Imm() + b.Imm()
		fused := isa.PackU(isa.CUSTOM_LOAD_IMM, 0, a.RD(), 0, imm)
		return withLength(fused, uint8(lengths[0]+lengths[1])), 2, true
	}

	// AUIPC rd, imm_hi ; JALR rd, rd, imm_lo  ->  FAR_JUMP_REL rd, imm
	// (position-independent far call/jump idiom).
	if a.Op() == isa.AUIPC && (b.Op() == isa.JALR_V0 || b.Op() == isa.JALR_V1) && b.RD() == a.RD() && b.RS1() == a.RD() {
		imm := a.Imm() + b.Imm()
		fused := isa.PackU(isa.FAR_JUMP_REL, 0, b.RD(), 0, imm)
		return withLength(fused, uint8(lengths[0]+lengths[1])), 2, true
	}

	return 0, 0, false
}
