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

package exec_test

import (
	"testing"

	"rv64core/internal/flatmem"
	"rv64core/pkg/exec"
	"rv64core/pkg/isa"
	"rv64core/pkg/machine"
	"rv64core/pkg/reg"
)

func newMachine() *machine.Machine[reg.Reg64] {
	mem := flatmem.New[reg.Reg64](4096)
	return machine.New[reg.Reg64](mem, reg.Reg64(0))
}

type aluCase struct {
	desc string
	fn   exec.Func[reg.Reg64]
	d    isa.Decoded
	a, b uint64
	want uint64
}

func (c aluCase) run(t *testing.T) {
	t.Helper()
	m := newMachine()
	m.SetReg(11, reg.Reg64(c.a))
	m.SetReg(12, reg.Reg64(c.b))
	if _, err := c.fn(m, c.d); err != nil {
		t.Fatalf("%s: unexpected error: %v", c.desc, err)
	}
	if got := uint64(m.GetReg(10)); got != c.want {
		t.Errorf("%s: got %#x want %#x", c.desc, got, c.want)
	}
}

func TestALURegister(t *testing.T) {
	cases := []aluCase{
		{desc: "add", fn: exec.Add[reg.Reg64], d: isa.PackR(isa.ADD, 0, 10, 11, 12, 0, 0, 0), a: 2, b: 3, want: 5},
		{desc: "sub", fn: exec.Sub[reg.Reg64], d: isa.PackR(isa.SUB, 0, 10, 11, 12, 0, 0, 0), a: 5, b: 3, want: 2},
		{desc: "and", fn: exec.And[reg.Reg64], d: isa.PackR(isa.AND, 0, 10, 11, 12, 0, 0, 0), a: 0xff, b: 0x0f, want: 0x0f},
		{desc: "slt true", fn: exec.Slt[reg.Reg64], d: isa.PackR(isa.SLT, 0, 10, 11, 12, 0, 0, 0), a: ^uint64(0), b: 1, want: 1},
		{desc: "sltu false", fn: exec.Sltu[reg.Reg64], d: isa.PackR(isa.SLTU, 0, 10, 11, 12, 0, 0, 0), a: ^uint64(0), b: 1, want: 0},
		{desc: "sll", fn: exec.Sll[reg.Reg64], d: isa.PackR(isa.SLL, 0, 10, 11, 12, 0, 0, 0), a: 1, b: 4, want: 16},
	}
	for _, c := range cases {
		c.run(t)
	}
}

func TestAddi(t *testing.T) {
	m := newMachine()
	m.SetReg(11, reg.Reg64(10))
	d := isa.PackI(isa.ADDI, 0, 10, 11, 0, -3)
	if _, err := exec.Addi[reg.Reg64](m, d); err != nil {
		t.Fatal(err)
	}
	if got := uint64(m.GetReg(10)); got != 7 {
		t.Errorf("addi: got %d want 7", got)
	}
}

func TestDivByZero(t *testing.T) {
	m := newMachine()
	m.SetReg(11, reg.Reg64(42))
	m.SetReg(12, reg.Reg64(0))
	d := isa.PackR(isa.DIV, 0, 10, 11, 12, 0, 0, 0)
	if _, err := exec.Div[reg.Reg64](m, d); err != nil {
		t.Fatal(err)
	}
	if got := int64(m.GetReg(10)); got != -1 {
		t.Errorf("div by zero: got %d want -1", got)
	}
}

func TestRemByZero(t *testing.T) {
	m := newMachine()
	m.SetReg(11, reg.Reg64(42))
	m.SetReg(12, reg.Reg64(0))
	d := isa.PackR(isa.REM, 0, 10, 11, 12, 0, 0, 0)
	if _, err := exec.Rem[reg.Reg64](m, d); err != nil {
		t.Fatal(err)
	}
	if got := uint64(m.GetReg(10)); got != 42 {
		t.Errorf("rem by zero: got %d want 42", got)
	}
}

func TestDivOverflow(t *testing.T) {
	m := newMachine()
	m.SetReg(11, reg.Reg64(uint64(1)<<63))
	m.SetReg(12, reg.Reg64(^uint64(0)))
	d := isa.PackR(isa.DIV, 0, 10, 11, 12, 0, 0, 0)
	if _, err := exec.Div[reg.Reg64](m, d); err != nil {
		t.Fatal(err)
	}
	if got := uint64(m.GetReg(10)); got != uint64(1)<<63 {
		t.Errorf("div overflow: got %#x want %#x", got, uint64(1)<<63)
	}
}

func TestBranchTaken(t *testing.T) {
	m := newMachine()
	m.PC = reg.Reg64(0x1000)
	m.SetReg(11, reg.Reg64(5))
	m.SetReg(12, reg.Reg64(5))
	d := isa.PackS(isa.BEQ, 0, 11, 12, 0, 16)
	fl, err := exec.Beq[reg.Reg64](m, d)
	if err != nil {
		t.Fatal(err)
	}
	if !fl.UpdatedPC {
		t.Fatal("expected UpdatedPC")
	}
	if got := uint64(m.PC); got != 0x1010 {
		t.Errorf("pc: got %#x want %#x", got, 0x1010)
	}
}

func TestBranchNotTaken(t *testing.T) {
	m := newMachine()
	m.PC = reg.Reg64(0x1000)
	m.SetReg(11, reg.Reg64(5))
	m.SetReg(12, reg.Reg64(6))
	d := isa.PackS(isa.BEQ, 0, 11, 12, 0, 16)
	fl, err := exec.Beq[reg.Reg64](m, d)
	if err != nil {
		t.Fatal(err)
	}
	if fl.UpdatedPC {
		t.Fatal("expected branch not taken")
	}
}

func TestJal(t *testing.T) {
	m := newMachine()
	m.PC = reg.Reg64(0x2000)
	d := isa.PackU(isa.JAL, 0, 10, 2, 0x100) // flg length nibble 2 = a 4-byte instruction (Length() reads flg&0xf then <<1).
	_, err := exec.Jal[reg.Reg64](m, d)
	if err != nil {
		t.Fatal(err)
	}
	if got := uint64(m.PC); got != 0x2100 {
		t.Errorf("pc: got %#x want %#x", got, 0x2100)
	}
}

func TestLui(t *testing.T) {
	m := newMachine()
	d := isa.PackU(isa.LUI, 0, 10, 0, -0x21525000) // 0xdeadb000 as an int32
	if _, err := exec.Lui[reg.Reg64](m, d); err != nil {
		t.Fatal(err)
	}
	if got := uint64(m.GetReg(10)); got != 0xffffffffdeadb000 {
		t.Errorf("lui: got %#x want sign-extended 0xdeadb000", got)
	}
}

func TestLoadStoreWord(t *testing.T) {
	m := newMachine()
	m.SetReg(11, reg.Reg64(0x100))
	m.SetReg(12, reg.Reg64(0x12345678))
	sd := isa.PackS(isa.SW, 0, 11, 12, 0, 0)
	if _, err := exec.Sw[reg.Reg64](m, sd); err != nil {
		t.Fatal(err)
	}
	ld := isa.PackI(isa.LW_V0, 0, 10, 11, 0, 0)
	if _, err := exec.LwV0[reg.Reg64](m, ld); err != nil {
		t.Fatal(err)
	}
	if got := uint64(m.GetReg(10)); got != 0x12345678 {
		t.Errorf("load after store: got %#x want 0x12345678", got)
	}
}

func TestAmoswap(t *testing.T) {
	m := newMachine()
	m.SetReg(11, reg.Reg64(0x200))
	m.SetReg(12, reg.Reg64(99))
	if err := m.Mem.StoreU32(reg.Reg64(0x200), 7); err != nil {
		t.Fatal(err)
	}
	d := isa.PackR(isa.AMOSWAP_W, 0, 10, 11, 12, 0, 0, 0)
	if _, err := exec.AmoswapW[reg.Reg64](m, d); err != nil {
		t.Fatal(err)
	}
	if got := uint64(m.GetReg(10)); got != 7 {
		t.Errorf("amoswap old value: got %d want 7", got)
	}
	v, err := m.Mem.LoadU32(reg.Reg64(0x200))
	if err != nil {
		t.Fatal(err)
	}
	if v != 99 {
		t.Errorf("amoswap stored value: got %d want 99", v)
	}
}

func TestLrScSuccess(t *testing.T) {
	m := newMachine()
	m.SetReg(11, reg.Reg64(0x300))
	m.SetReg(12, reg.Reg64(55))
	lr := isa.PackR(isa.LR_W, 0, 10, 11, 0, 0, 0, 0)
	if _, err := exec.LrW[reg.Reg64](m, lr); err != nil {
		t.Fatal(err)
	}
	sc := isa.PackR(isa.SC_W, 0, 13, 11, 12, 0, 0, 0)
	if _, err := exec.ScW[reg.Reg64](m, sc); err != nil {
		t.Fatal(err)
	}
	if got := uint64(m.GetReg(13)); got != 0 {
		t.Errorf("sc.w success code: got %d want 0", got)
	}
}

func TestLrScFailsWithoutReservation(t *testing.T) {
	m := newMachine()
	m.SetReg(11, reg.Reg64(0x300))
	m.SetReg(12, reg.Reg64(55))
	sc := isa.PackR(isa.SC_W, 0, 13, 11, 12, 0, 0, 0)
	if _, err := exec.ScW[reg.Reg64](m, sc); err != nil {
		t.Fatal(err)
	}
	if got := uint64(m.GetReg(13)); got != 1 {
		t.Errorf("sc.w without reservation: got %d want 1", got)
	}
}

func TestRol(t *testing.T) {
	m := newMachine()
	m.SetReg(11, reg.Reg64(1))
	m.SetReg(12, reg.Reg64(4))
	d := isa.PackR(isa.ROL, 0, 10, 11, 12, 0, 0, 0)
	if _, err := exec.Rol[reg.Reg64](m, d); err != nil {
		t.Fatal(err)
	}
	if got := uint64(m.GetReg(10)); got != 16 {
		t.Errorf("rol: got %d want 16", got)
	}
}

func TestWideMul(t *testing.T) {
	m := newMachine()
	m.SetReg(11, reg.Reg64(^uint64(0)))
	m.SetReg(12, reg.Reg64(^uint64(0)))
	d := isa.PackR(isa.WIDE_MULU, 0, 10, 11, 12, 14, 0, 0)
	if _, err := exec.WideMulu[reg.Reg64](m, d); err != nil {
		t.Fatal(err)
	}
	if got := uint64(m.GetReg(10)); got != 1 {
		t.Errorf("wide_mulu lo: got %#x want 1", got)
	}
	if got := uint64(m.GetReg(14)); got != 0xfffffffffffffffe {
		t.Errorf("wide_mulu hi: got %#x want 0xfffffffffffffffe", got)
	}
}
