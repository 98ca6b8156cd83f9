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

// Package machine holds the register file, memory collaborator interface,
// and reservation-set state that pkg/exec's executors operate on. It
// generalizes the teacher's flat VM struct (vm.go) to be width-polymorphic
// over reg.Word (component A) and to depend on an injected Memory rather
// than owning a fixed byte slice (spec.md section 2).
package machine

import "rv64core/pkg/reg"

// riscv-spec-v2.2.pdf; Table 20.1; page 109.
const (
	RA   = 1 // Return address.
	SP   = 2 // Stack pointer.
	Zero = 0 // Hard-wired zero register.
)

// RegNames maps register numbers to their ABI names, used by pkg/trace and
// disassembly output.
var RegNames = [32]string{
	0: "zero", 1: "ra", 2: "sp", 3: "gp", 4: "tp",
	5: "t0", 6: "t1", 7: "t2",
	8: "s0", 9: "s1",
	10: "a0", 11: "a1", 12: "a2", 13: "a3", 14: "a4", 15: "a5", 16: "a6", 17: "a7",
	18: "s2", 19: "s3", 20: "s4", 21: "s5", 22: "s6", 23: "s7", 24: "s8", 25: "s9", 26: "s10", 27: "s11",
	28: "t3", 29: "t4", 30: "t5", 31: "t6",
}

// Memory is the external collaborator the machine reads instructions and
// data through (spec.md section 2). internal/flatmem provides
// the reference bounded-byte-slice implementation; a host embedding the
// core may substitute an MMU-backed or sparse implementation.
type Memory[W reg.Word] interface {
	LoadU8(addr W) (uint8, error)
	LoadU16(addr W) (uint16, error)
	LoadU32(addr W) (uint32, error)
	LoadU64(addr W) (uint64, error)

	StoreU8(addr W, v uint8) error
	StoreU16(addr W, v uint16) error
	StoreU32(addr W, v uint32) error
	StoreU64(addr W, v uint64) error

	// FetchInstruction returns up to 4 raw bytes starting at addr for the
	// decoder (instructions are 2 or 4 bytes; short reads near the end of
	// memory are the decoder's responsibility to handle).
	FetchInstruction(addr W) ([]byte, error)

	// MaxMemory returns RISCV_MAX_MEMORY, the bound VERSION0 loads compare
	// a computed end address against (spec.md section 2, section 4.4).
	MaxMemory() uint64
}

// reservationSet tracks the single outstanding LR/SC reservation (spec.md
// section 4.4): an SC only succeeds if it targets the address most
// recently reserved by LR and no intervening store touched it.
type reservationSet[W reg.Word] struct {
	valid bool
	addr  W
}

func (r *reservationSet[W]) reserve(addr W) { r.valid, r.addr = true, addr }

func (r *reservationSet[W]) check(addr W) bool {
	return r.valid && r.addr.Eq(addr)
}

// clear drops the reservation if addr falls inside it; called on every
// store so an intervening write to the reserved line invalidates SC, per
// the RISC-V A-extension's eventual-success requirement.
func (r *reservationSet[W]) clear(addr W) {
	if r.valid && r.addr.Eq(addr) {
		r.valid = false
	}
}

// Machine is the width-polymorphic engine state: register file, PC,
// injected memory, and reservation set. W is monomorphized to reg.Reg32 or
// reg.Reg64 by the embedding cmd/rv64run binary (spec.md section 9: "Width
// polymorphism").
type Machine[W reg.Word] struct {
	Reg [32]W
	PC  W

	Mem Memory[W]

	Steps uint64

	reservation reservationSet[W]

	zero W // the zero value of W; no code in this module reads it
}

// New returns a Machine with PC set to entry and all registers zeroed.
func New[W reg.Word](mem Memory[W], entry W) *Machine[W] {
	return &Machine[W]{PC: entry, Mem: mem}
}

// GetReg returns register rd's value (reg 0 always reads as zero, even
// though SetReg never actually writes it).
func (m *Machine[W]) GetReg(rd uint8) W {
	return m.Reg[rd&0x1f]
}

// SetReg writes val to register rd. Writes to register 0 are silently
// dropped, mirroring the teacher's store helper (vm.go).
func (m *Machine[W]) SetReg(rd uint8, val W) {
	if rd&0x1f == Zero {
		return
	}
	m.Reg[rd&0x1f] = val
}

// Reserve records an LR reservation at addr.
func (m *Machine[W]) Reserve(addr W) { m.reservation.reserve(addr) }

// CheckReservation reports whether addr matches the current LR
// reservation (used by SC to decide success/failure).
func (m *Machine[W]) CheckReservation(addr W) bool { return m.reservation.check(addr) }

// InvalidateReservation clears the reservation if a store touches addr.
func (m *Machine[W]) InvalidateReservation(addr W) { m.reservation.clear(addr) }

// ClearReservation drops the reservation whatever address it is held on.
func (m *Machine[W]) ClearReservation() { m.reservation.valid = false }
