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

// Package dispatch drives the fetch-decode-execute loop (component E):
// it generalizes the teacher's VM.Run (vm.go) to be width-polymorphic,
// to consult a bounded decoded-instruction cache before re-decoding, and
// to report control-flow/syscall events to a trace.Sink instead of the
// teacher's ad hoc DebugStep printf.
package dispatch

import (
	"rv64core/pkg/decoder"
	"rv64core/pkg/exec"
	"rv64core/pkg/isa"
	"rv64core/pkg/machine"
	"rv64core/pkg/reg"
	"rv64core/pkg/trace"
)

// decodedEntry is one bounded-cache slot: the decoded word plus the raw
// byte length consumed, which equals the word's own isa.Decoded.Length()
// (for a TryFuse result, the combined length of both source instructions).
type decodedEntry struct {
	d      isa.Decoded
	length int
}

// Loop ties a Machine, a Decoder, an opcode dispatch Table, and a
// trace.Sink together into a running fetch-decode-execute cycle (spec.md
// section 5). Ra, the return-address register, is used to classify
// JALR as a call or a return the way a disassembler would.
type Loop[W reg.Word] struct {
	M     *machine.Machine[W]
	Dec   *decoder.Decoder
	Table map[isa.Opcode]exec.Func[W]
	Sink  trace.Sink

	// MaxCycles bounds Run; 0 means unbounded.
	MaxCycles uint64

	cache    map[uint64]decodedEntry
	order    []uint64
	cacheCap int
}

// New constructs a Loop with a decoded-instruction cache bounded to
// cacheCap entries (0 disables caching entirely, always re-decoding).
func New[W reg.Word](m *machine.Machine[W], dec *decoder.Decoder, sink trace.Sink, maxCycles uint64, cacheCap int) *Loop[W] {
	if sink == nil {
		sink = trace.NullSink{}
	}
	return &Loop[W]{
		M:         m,
		Dec:       dec,
		Table:     exec.Table[W](),
		Sink:      sink,
		MaxCycles: maxCycles,
		cache:     make(map[uint64]decodedEntry),
		cacheCap:  cacheCap,
	}
}

// InvalidateCache drops every cached decode. The loop calls this whenever
// it executes FENCE.I (the RISC-V instruction-fetch/execute
// synchronization fence) or a store-class opcode, since self-modifying
// code invalidates any previously decoded instruction overlapping the
// write. This is intentionally whole-cache rather than range-precise:
// tracking per-entry byte ranges would let a narrower store leave
// unrelated cache entries alone, but self-modifying code is rare enough
// on this core that the simpler, always-correct invalidation was chosen
// over that complexity.
func (l *Loop[W]) InvalidateCache() {
	l.cache = make(map[uint64]decodedEntry)
	l.order = nil
}

func (l *Loop[W]) cacheGet(pc uint64) (decodedEntry, bool) {
	if l.cacheCap == 0 {
		return decodedEntry{}, false
	}
	e, ok := l.cache[pc]
	return e, ok
}

func (l *Loop[W]) cachePut(pc uint64, e decodedEntry) {
	if l.cacheCap == 0 {
		return
	}
	if _, exists := l.cache[pc]; !exists {
		if len(l.order) >= l.cacheCap {
			oldest := l.order[0]
			l.order = l.order[1:]
			delete(l.cache, oldest)
		}
		l.order = append(l.order, pc)
	}
	l.cache[pc] = e
}

var storeOpcodes = map[isa.Opcode]bool{
	isa.SB: true, isa.SH: true, isa.SW: true, isa.SD: true,
	isa.SC_W: true, isa.SC_D: true,
	isa.AMOSWAP_W: true, isa.AMOADD_W: true, isa.AMOXOR_W: true, isa.AMOAND_W: true,
	isa.AMOOR_W: true, isa.AMOMIN_W: true, isa.AMOMAX_W: true, isa.AMOMINU_W: true, isa.AMOMAXU_W: true,
	isa.AMOSWAP_D: true, isa.AMOADD_D: true, isa.AMOXOR_D: true, isa.AMOAND_D: true,
	isa.AMOOR_D: true, isa.AMOMIN_D: true, isa.AMOMAX_D: true, isa.AMOMINU_D: true, isa.AMOMAXU_D: true,
}

// fetchDecode returns the decoded instruction at pc (possibly a TryFuse
// result covering the following instruction too), the byte length it
// consumed, and any fetch or decode error.
// A cache hit skips both the byte fetch and the decode entirely.
func (l *Loop[W]) fetchDecode(pc uint64) (isa.Decoded, int, error) {
	if e, ok := l.cacheGet(pc); ok {
		return e.d, e.length, nil
	}
	bytes, err := l.M.Mem.FetchInstruction(l.M.PC)
	if err != nil {
		return 0, 0, err
	}
	d, length, err := l.Dec.Decode(pc, bytes)
	if err != nil {
		return 0, 0, err
	}
	if l.Dec.Ext&decoder.ExtMop != 0 {
		if fused, flen, ok := l.tryFuseNext(pc, d, length); ok {
			l.cachePut(pc, decodedEntry{d: fused, length: flen})
			return fused, flen, nil
		}
	}
	l.cachePut(pc, decodedEntry{d: d, length: length})
	return d, length, nil
}

// tryFuseNext decodes the instruction immediately following the one at
// pc and offers the pair to the decoder's macro-op fuser.
func (l *Loop[W]) tryFuseNext(pc uint64, first isa.Decoded, firstLen int) (isa.Decoded, int, bool) {
	nextPC := pc + uint64(firstLen)
	nextBytes, err := l.M.Mem.FetchInstruction(l.M.PC.FromUint64(nextPC).(W))
	if err != nil {
		return 0, 0, false
	}
	second, secondLen, err := l.Dec.Decode(nextPC, nextBytes)
	if err != nil {
		return 0, 0, false
	}
	fused, _, ok := l.Dec.TryFuse([]isa.Decoded{first, second}, []int{firstLen, secondLen})
	if !ok {
		return 0, 0, false
	}
	return fused, int(fused.Length()), true
}

// Step executes a single instruction, returning the machine.Error (if
// any) that ended the step (ExternalRequest for ECALL/EBREAK/trace-end,
// or a decode/memory fault).
func (l *Loop[W]) Step() error {
	pc := l.M.PC.ToU64()
	d, length, err := l.fetchDecode(pc)
	if err != nil {
		return err
	}
	fn, err := exec.Lookup(l.Table, d.Op())
	if err != nil {
		return err
	}
	preJumpRD := d.RD()
	preJumpRS1 := d.RS1()
	flags, err := fn(l.M, d)
	if err != nil {
		l.report(d, pc, preJumpRD, preJumpRS1)
		return err
	}
	l.report(d, pc, preJumpRD, preJumpRS1)
	if storeOpcodes[d.Op()] {
		l.InvalidateCache()
	}
	if d.Op() == isa.FENCEI {
		l.InvalidateCache()
	}
	l.M.Steps++
	if !flags.UpdatedPC {
		l.M.PC = l.M.PC.Add(l.M.PC.FromInt32(int32(length))).(W)
	}
	return nil
}

// report classifies the instruction just executed and forwards the
// appropriate trace.Sink callbacks: every jump-class opcode reports
// OnJump; a JAL/JALR that writes the return-address register (r1)
// additionally reports a function call (arguments a0-a7); a JALR through
// ra with rd=0 additionally reports a function return (a0/a1); an ECALL
// reports a syscall with its argument registers.
func (l *Loop[W]) report(d isa.Decoded, pc uint64, rd, rs1 uint8) {
	switch d.Op() {
	case isa.JAL, isa.JALR_V0, isa.JALR_V1, isa.FAR_JUMP_REL, isa.FAR_JUMP_ABS:
		next := l.M.PC.ToU64()
		link := l.M.GetReg(rd).ToU64()
		l.Sink.OnJump(link, next)
		if rd == machine.RA {
			l.Sink.OnFunctionCallArgs(pc, next, l.a(10), l.a(11), l.a(12), l.a(13))
			l.Sink.OnFunctionCallExtra(pc, next, l.a(14), l.a(15), l.a(16), l.a(17))
		} else if rd == machine.Zero && (d.Op() == isa.JALR_V0 || d.Op() == isa.JALR_V1) && rs1 == machine.RA {
			l.Sink.OnFunctionReturn(pc, next, l.a(10), l.a(11))
		}
	case isa.ECALL:
		l.Sink.OnSyscall(l.a(17), [6]uint64{l.a(10), l.a(11), l.a(12), l.a(13), l.a(14), l.a(15)})
	}
}

func (l *Loop[W]) a(rnum uint8) uint64 { return l.M.GetReg(rnum).ToU64() }

// Run executes up to n steps, stopping early on any error (including
// MaxCycles being reached, reported as machine.CyclesExceeded).
func (l *Loop[W]) Run(n uint64) error {
	for i := uint64(0); i < n; i++ {
		if l.MaxCycles != 0 && l.M.Steps >= l.MaxCycles {
			return machine.New(machine.CyclesExceeded, l.M.PC.ToU64(), "max cycles reached")
		}
		if err := l.Step(); err != nil {
			return err
		}
	}
	return nil
}
