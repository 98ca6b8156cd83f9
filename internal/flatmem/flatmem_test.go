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

package flatmem

import (
	"rv64core/pkg/machine"
	"rv64core/pkg/reg"
	"testing"
)

func TestStoreLoadRoundTrip(t *testing.T) {
	m := New[reg.Reg64](64)
	if err := m.StoreU64(reg.Reg64(8), 0x0102030405060708); err != nil {
		t.Fatal(err)
	}
	got, err := m.LoadU64(reg.Reg64(8))
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x0102030405060708 {
		t.Errorf("got %#x", got)
	}
	b, err := m.LoadU8(reg.Reg64(8))
	if err != nil || b != 0x08 {
		t.Errorf("LoadU8 = %#x, %v, want 0x08 little-endian low byte", b, err)
	}
}

func TestOutOfBound(t *testing.T) {
	m := New[reg.Reg64](8)
	_, err := m.LoadU64(reg.Reg64(4))
	if err == nil {
		t.Fatal("expected out-of-bound error")
	}
	me, ok := err.(*machine.Error)
	if !ok || me.Kind != machine.MemOutOfBound {
		t.Errorf("got %v, want MemOutOfBound", err)
	}
}
