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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"rv64core/internal/flatmem"
	"rv64core/pkg/decoder"
	"rv64core/pkg/dispatch"
	"rv64core/pkg/machine"
	"rv64core/pkg/reg"
)

func loadProgram(mem *flatmem.Flat[reg.Reg64], instrs []uint32) {
	raw := mem.Load()
	off := 0
	for _, in := range instrs {
		raw[off] = byte(in)
		raw[off+1] = byte(in >> 8)
		raw[off+2] = byte(in >> 16)
		raw[off+3] = byte(in >> 24)
		off += 4
	}
}

var _ = Describe("Loop", func() {
	Describe("self-modifying code", func() {
		It("re-decodes an instruction a prior store overwrote instead of serving a stale cache entry", func() {
			// addr 0:  addi x10, x0, 1        (will be overwritten below)
			// addr 4:  lui  x11, 0x200
			// addr 8:  addi x11, x11, 1299     ; x11 = encoding of "addi x10, x0, 2"
			// addr 12: sw   x11, 0(x12)        ; x12 == 0, overwrites addr 0
			// addr 16: jal  x0, -16            ; loop back to addr 0
			const (
				addiX10eq1 = 0x00100513
				luiX11     = 0x002005b7
				addiX11    = 0x51358593
				swX11      = 0x00b62023
				jalBack    = 0xff1ff06f
			)

			mem := flatmem.New[reg.Reg64](4096)
			loadProgram(mem, []uint32{addiX10eq1, luiX11, addiX11, swX11, jalBack})
			m := machine.New[reg.Reg64](mem, reg.Reg64(0))
			// ExtMop off: the LUI/ADDI pair at addr 4/8 shares x11 as rd/rs1,
			// which matches the fusion pattern; with fusion on it would run as
			// one step and the step counts below would no longer line up.
			dec := decoder.New(decoder.ExtM|decoder.ExtA|decoder.ExtC|decoder.ExtZb, decoder.Version1)
			l := dispatch.New[reg.Reg64](m, dec, nil, 0, 64)

			Expect(l.Run(5)).To(Succeed())
			Expect(uint64(l.M.GetReg(10))).To(Equal(uint64(1)), "first pass through addr 0 uses the original instruction")

			Expect(l.Run(1)).To(Succeed())
			Expect(uint64(l.M.GetReg(10))).To(Equal(uint64(2)), "second pass through addr 0 must observe the store, not a cached stale decode")
		})
	})

	Describe("load boundary check", func() {
		// lw x10, 60(x0) against a 64-byte memory: end = 60+4 = 64 ==
		// RISCV_MAX_MEMORY exactly. VERSION0 rejects this; VERSION1 does not.
		const lwAtMax = 0x03c02503

		It("VERSION0 rejects a load whose end address lands exactly on RISCV_MAX_MEMORY", func() {
			mem := flatmem.New[reg.Reg64](64)
			loadProgram(mem, []uint32{lwAtMax})
			m := machine.New[reg.Reg64](mem, reg.Reg64(0))
			dec := decoder.New(decoder.ExtM, decoder.Version0)
			l := dispatch.New[reg.Reg64](m, dec, nil, 0, 8)

			err := l.Step()
			Expect(err).To(HaveOccurred())
			merr, ok := err.(*machine.Error)
			Expect(ok).To(BeTrue())
			Expect(merr.Kind).To(Equal(machine.MemOutOfBound))
		})

		It("VERSION1 allows a load whose end address lands exactly on RISCV_MAX_MEMORY", func() {
			mem := flatmem.New[reg.Reg64](64)
			loadProgram(mem, []uint32{lwAtMax})
			m := machine.New[reg.Reg64](mem, reg.Reg64(0))
			dec := decoder.New(decoder.ExtM, decoder.Version1)
			l := dispatch.New[reg.Reg64](m, dec, nil, 0, 8)

			Expect(l.Step()).To(Succeed())
		})

		It("rejects a load whose address computation overflows the register width, in either version", func() {
			mem := flatmem.New[reg.Reg64](64)
			// lw x10, -2(x0): base 0, imm -2 => addr = 2^64-2, so end =
			// addr+4 wraps past 2^64 back down to 2, below addr.
			const lwWrap = 0xffe02503
			loadProgram(mem, []uint32{lwWrap})

			m := machine.New[reg.Reg64](mem, reg.Reg64(0))
			dec := decoder.New(decoder.ExtM, decoder.Version1)
			l := dispatch.New[reg.Reg64](m, dec, nil, 0, 8)
			err := l.Step()
			Expect(err).To(HaveOccurred())
			merr, ok := err.(*machine.Error)
			Expect(ok).To(BeTrue())
			Expect(merr.Kind).To(Equal(machine.MemOutOfBound))

			m0 := machine.New[reg.Reg64](mem, reg.Reg64(0))
			dec0 := decoder.New(decoder.ExtM, decoder.Version0)
			l0 := dispatch.New[reg.Reg64](m0, dec0, nil, 0, 8)
			err0 := l0.Step()
			Expect(err0).To(HaveOccurred())
			merr0, ok0 := err0.(*machine.Error)
			Expect(ok0).To(BeTrue())
			Expect(merr0.Kind).To(Equal(machine.MemOutOfBound))
		})
	})

	Describe("macro-op fusion", func() {
		It("advances the PC by the combined byte length of both fused source instructions", func() {
			// addr 0: lui  x10, 0x10
			// addr 4: addi x10, x10, 5   -> fuses into CUSTOM_LOAD_IMM x10, 0x10005
			const (
				luiX10  = 0x00010537
				addiX10 = 0x00550513
			)
			mem := flatmem.New[reg.Reg64](4096)
			loadProgram(mem, []uint32{luiX10, addiX10})
			m := machine.New[reg.Reg64](mem, reg.Reg64(0))
			dec := decoder.New(decoder.ExtMop, decoder.Version1)
			l := dispatch.New[reg.Reg64](m, dec, nil, 0, 8)

			Expect(l.Step()).To(Succeed())
			Expect(uint64(l.M.GetReg(10))).To(Equal(uint64(0x10005)))
			Expect(uint64(l.M.PC)).To(Equal(uint64(8)), "PC must skip both source instructions, not just one")
		})
	})
})
