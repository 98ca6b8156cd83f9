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

// Ecall reports an ExternalRequest error so the dispatch loop's caller can
// service the syscall (or environment call) and resume, mirroring the
// teacher's handling of ECALL as a VM-exit rather than a trap vector.
func Ecall[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return Flags{}, machine.New(machine.ExternalRequest, m.PC.ToU64(), "ecall")
}

// Ebreak reports an ExternalRequest error, identically to Ecall but
// distinguishable by message for a debugger-style host.
func Ebreak[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return Flags{}, machine.New(machine.ExternalRequest, m.PC.ToU64(), "ebreak")
}

// Fence and FenceI are no-ops on this single-hart in-order core: there is
// no store buffer or instruction cache to synchronize. FenceI is still
// distinguished at the opcode level because pkg/dispatch uses it as the
// trigger to invalidate its decoded-instruction cache.
func Fence[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return Flags{}, nil
}

func FenceI[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return Flags{}, nil
}

// Unloaded reports an InvalidInstruction error for the UNLOADED sentinel
// opcode. pkg/decoder never emits UNLOADED; only a word packed with it
// directly reaches this executor.
func Unloaded[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return Flags{}, machine.New(machine.InvalidInstruction, m.PC.ToU64(), "unloaded")
}

// CustomTraceEnd reports an ExternalRequest error carrying a distinct
// message so a host using pkg/trace can tell a deliberate end-of-trace
// marker apart from an ECALL.
func CustomTraceEnd[W reg.Word](m *machine.Machine[W], d isa.Decoded) (Flags, error) {
	return Flags{}, machine.New(machine.ExternalRequest, m.PC.ToU64(), "trace-end")
}
