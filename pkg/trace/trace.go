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

// Package trace provides the probe sink pkg/dispatch's loop reports
// control-flow and syscall events to. It generalizes
// original_source/src/probe.rs's probe_function_call/probe_function_return/
// probe_jump/probe_syscall/probe_syscall_return free functions (USDT probes
// over a fixed Mac::REG machine) into a plain Go interface a host
// implements instead of a static tracepoint, since Go has no USDT-probe
// equivalent in this ecosystem.
package trace

// Sink receives the six control-flow/syscall events the dispatch loop can
// report. probe.rs emits function-call arguments as two separate USDT
// probes (function_call_arguments for a0-a3, function_call2 for a4-a7)
// because a tracepoint caps its argument count; OnFunctionCallArgs and
// OnFunctionCallExtra preserve that split so a Sink can cheaply ignore the
// half it doesn't need.
type Sink interface {
	// OnFunctionCallArgs reports a JAL/JALR that looks like a call (rd is
	// the link register), along with argument registers a0-a3.
	OnFunctionCallArgs(currentPC, nextPC, a0, a1, a2, a3 uint64)
	// OnFunctionCallExtra reports the same call's a4-a7.
	OnFunctionCallExtra(currentPC, nextPC, a4, a5, a6, a7 uint64)
	// OnFunctionReturn reports a JALR through ra (rd is zero, rs1 is ra),
	// along with the return-value registers a0/a1.
	OnFunctionReturn(currentPC, returnPC, a0, a1 uint64)
	// OnJump reports every taken jump (JAL/JALR/FAR_JUMP_*), regardless of
	// whether it was classified as a call or return.
	OnJump(link, nextPC uint64)
	// OnSyscall reports an ECALL, with a0-a5 as the call's arguments.
	OnSyscall(code uint64, args [6]uint64)
	// OnSyscallReturn reports the syscall result after the host resumes
	// the machine (a0/a1 hold the return value pair).
	OnSyscallReturn(code, ret0, ret1 uint64)
}

// NullSink discards every event; it is the dispatch loop's default Sink
// so probing has no cost when a host doesn't care.
type NullSink struct{}

func (NullSink) OnFunctionCallArgs(currentPC, nextPC, a0, a1, a2, a3 uint64)  {}
func (NullSink) OnFunctionCallExtra(currentPC, nextPC, a4, a5, a6, a7 uint64) {}
func (NullSink) OnFunctionReturn(currentPC, returnPC, a0, a1 uint64)          {}
func (NullSink) OnJump(link, nextPC uint64)                                  {}
func (NullSink) OnSyscall(code uint64, args [6]uint64)                       {}
func (NullSink) OnSyscallReturn(code, ret0, ret1 uint64)                     {}
