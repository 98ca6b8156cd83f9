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

package trace

// CallEvent, ReturnEvent, JumpEvent, SyscallEvent, and SyscallReturnEvent
// are the recorded shapes of each Sink callback, letting a RecordingSink
// store and later assert on the whole event stream.
type CallEvent struct {
	CurrentPC, NextPC                  uint64
	A0, A1, A2, A3, A4, A5, A6, A7 uint64
}

type ReturnEvent struct {
	CurrentPC, ReturnPC uint64
	A0, A1              uint64
}

type JumpEvent struct {
	Link, NextPC uint64
}

type SyscallEvent struct {
	Code uint64
	Args [6]uint64
}

type SyscallReturnEvent struct {
	Code, Ret0, Ret1 uint64
}

// RecordingSink accumulates every event it receives, in order, for use in
// pkg/dispatch's test suite to assert on exactly which control-flow events
// a run produced.
type RecordingSink struct {
	Calls          []CallEvent
	Returns        []ReturnEvent
	Jumps          []JumpEvent
	Syscalls       []SyscallEvent
	SyscallReturns []SyscallReturnEvent
}

func (s *RecordingSink) OnFunctionCallArgs(currentPC, nextPC, a0, a1, a2, a3 uint64) {
	s.Calls = append(s.Calls, CallEvent{CurrentPC: currentPC, NextPC: nextPC, A0: a0, A1: a1, A2: a2, A3: a3})
}

func (s *RecordingSink) OnFunctionCallExtra(currentPC, nextPC, a4, a5, a6, a7 uint64) {
	for i := range s.Calls {
		if s.Calls[i].CurrentPC == currentPC && s.Calls[i].NextPC == nextPC {
			s.Calls[i].A4, s.Calls[i].A5, s.Calls[i].A6, s.Calls[i].A7 = a4, a5, a6, a7
			return
		}
	}
}

func (s *RecordingSink) OnFunctionReturn(currentPC, returnPC, a0, a1 uint64) {
	s.Returns = append(s.Returns, ReturnEvent{CurrentPC: currentPC, ReturnPC: returnPC, A0: a0, A1: a1})
}

func (s *RecordingSink) OnJump(link, nextPC uint64) {
	s.Jumps = append(s.Jumps, JumpEvent{Link: link, NextPC: nextPC})
}

func (s *RecordingSink) OnSyscall(code uint64, args [6]uint64) {
	s.Syscalls = append(s.Syscalls, SyscallEvent{Code: code, Args: args})
}

func (s *RecordingSink) OnSyscallReturn(code, ret0, ret1 uint64) {
	s.SyscallReturns = append(s.SyscallReturns, SyscallReturnEvent{Code: code, Ret0: ret0, Ret1: ret1})
}
