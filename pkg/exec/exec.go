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

// Package exec holds one executor function per first-level opcode
// (component D, spec.md section 4.4), generalizing rvi.go's per-instruction
// free functions (func(*VM, *Instruction) (flags, error)) to be
// width-polymorphic over reg.Word and to read operands out of an
// isa.Decoded word instead of the teacher's flat Instruction struct.
package exec

import (
	"rv64core/pkg/isa"
	"rv64core/pkg/machine"
	"rv64core/pkg/reg"
)

// Flags mirrors the teacher's flags struct (instr.go): signals to the
// dispatch loop that the executor already advanced the PC itself (taken
// branches, jumps) so the loop's default PC+=length shouldn't apply.
type Flags struct {
	UpdatedPC bool
}

// Func is the signature every opcode's executor implements.
type Func[W reg.Word] func(m *machine.Machine[W], d isa.Decoded) (Flags, error)
