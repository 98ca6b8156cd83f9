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

import "log"

// LogSink writes every event to a *log.Logger, one line per event, for
// interactive debugging (the teacher's vm.go takes the equivalent
// approach with its DebugStep flag printing vm.String() every step via
// the standard fmt/log machinery rather than a structured logging
// library).
type LogSink struct {
	Logger *log.Logger
}

func NewLogSink(l *log.Logger) *LogSink {
	return &LogSink{Logger: l}
}

func (s *LogSink) OnFunctionCallArgs(currentPC, nextPC, a0, a1, a2, a3 uint64) {
	s.Logger.Printf("call pc=%#x -> %#x a0=%#x a1=%#x a2=%#x a3=%#x", currentPC, nextPC, a0, a1, a2, a3)
}

func (s *LogSink) OnFunctionCallExtra(currentPC, nextPC, a4, a5, a6, a7 uint64) {
	s.Logger.Printf("call pc=%#x -> %#x a4=%#x a5=%#x a6=%#x a7=%#x", currentPC, nextPC, a4, a5, a6, a7)
}

func (s *LogSink) OnFunctionReturn(currentPC, returnPC, a0, a1 uint64) {
	s.Logger.Printf("return pc=%#x -> %#x a0=%#x a1=%#x", currentPC, returnPC, a0, a1)
}

func (s *LogSink) OnJump(link, nextPC uint64) {
	s.Logger.Printf("jump link=%#x -> %#x", link, nextPC)
}

func (s *LogSink) OnSyscall(code uint64, args [6]uint64) {
	s.Logger.Printf("ecall code=%d args=%v", code, args)
}

func (s *LogSink) OnSyscallReturn(code, ret0, ret1 uint64) {
	s.Logger.Printf("ecall return code=%d ret0=%#x ret1=%#x", code, ret0, ret1)
}
