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

package dispatch_test

import (
	"testing"

	"rv64core/internal/flatmem"
	"rv64core/pkg/decoder"
	"rv64core/pkg/dispatch"
	"rv64core/pkg/machine"
	"rv64core/pkg/reg"
	"rv64core/pkg/trace"
)

func le32(in uint32) []byte {
	return []byte{byte(in), byte(in >> 8), byte(in >> 16), byte(in >> 24)}
}

func writeProgram(t *testing.T, mem *flatmem.Flat[reg.Reg64], instrs []uint32) {
	t.Helper()
	raw := mem.Load()
	off := 0
	for _, in := range instrs {
		b := le32(in)
		copy(raw[off:], b)
		off += 4
	}
}

// addi x10, x0, 5
const addiA0 = 0x00500513

// addi x11, x0, 7
const addiA1 = 0x00700593

// add x12, x10, x11
const addA2 = 0x00b50633

// ecall
const ecall = 0x00000073

func newLoop(t *testing.T, instrs []uint32, sink trace.Sink) *dispatch.Loop[reg.Reg64] {
	t.Helper()
	mem := flatmem.New[reg.Reg64](4096)
	writeProgram(t, mem, instrs)
	m := machine.New[reg.Reg64](mem, reg.Reg64(0))
	dec := decoder.New(decoder.ExtM|decoder.ExtA|decoder.ExtC|decoder.ExtZb|decoder.ExtMop, decoder.Version1)
	return dispatch.New[reg.Reg64](m, dec, sink, 0, 64)
}

func TestRunArithmeticSequence(t *testing.T) {
	l := newLoop(t, []uint32{addiA0, addiA1, addA2}, nil)
	if err := l.Run(3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := uint64(l.M.GetReg(10)); got != 5 {
		t.Errorf("x10: got %d want 5", got)
	}
	if got := uint64(l.M.GetReg(11)); got != 7 {
		t.Errorf("x11: got %d want 7", got)
	}
	if got := uint64(l.M.GetReg(12)); got != 12 {
		t.Errorf("x12: got %d want 12", got)
	}
	if got := l.M.Steps; got != 3 {
		t.Errorf("steps: got %d want 3", got)
	}
}

func TestStepAdvancesPC(t *testing.T) {
	l := newLoop(t, []uint32{addiA0, addiA1}, nil)
	if err := l.Step(); err != nil {
		t.Fatal(err)
	}
	if got := uint64(l.M.PC); got != 4 {
		t.Errorf("pc after one step: got %#x want 4", got)
	}
}

func TestEcallReportsSyscallAndStops(t *testing.T) {
	sink := &trace.RecordingSink{}
	l := newLoop(t, []uint32{addiA0, ecall}, sink)
	err := l.Run(2)
	if err == nil {
		t.Fatal("expected ExternalRequest error from ecall")
	}
	merr, ok := err.(*machine.Error)
	if !ok || merr.Kind != machine.ExternalRequest {
		t.Fatalf("expected ExternalRequest, got %v", err)
	}
	if len(sink.Syscalls) != 1 {
		t.Fatalf("expected 1 syscall event, got %d", len(sink.Syscalls))
	}
	if sink.Syscalls[0].Args[0] != 5 {
		t.Errorf("syscall a0: got %d want 5", sink.Syscalls[0].Args[0])
	}
}

func TestMaxCyclesExceeded(t *testing.T) {
	mem := flatmem.New[reg.Reg64](4096)
	writeProgram(t, mem, []uint32{addiA0, addiA0, addiA0})
	m := machine.New[reg.Reg64](mem, reg.Reg64(0))
	dec := decoder.New(decoder.ExtM, decoder.Version1)
	l := dispatch.New[reg.Reg64](m, dec, nil, 2, 64)
	err := l.Run(10)
	if err == nil {
		t.Fatal("expected CyclesExceeded")
	}
	merr, ok := err.(*machine.Error)
	if !ok || merr.Kind != machine.CyclesExceeded {
		t.Fatalf("expected CyclesExceeded, got %v", err)
	}
}
