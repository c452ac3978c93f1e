// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ProbeChain is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ProbeChain. If not, see <http://www.gnu.org/licenses/>.

package state

import (
	"testing"

	"github.com/holiman/uint256"
)

func word(v uint64) Word { return *uint256.NewInt(v) }

func TestSloadOfUnwrittenSlotIsZero(t *testing.T) {
	ws := NewWorldState()
	got := ws.SLoad(word(1), word(2))
	if !got.IsZero() {
		t.Fatalf("SLoad of unwritten slot = %s, want zero", got.Hex())
	}
}

func TestSstoreThenSload(t *testing.T) {
	ws := NewWorldState()
	addr, slot, value := word(1), word(2), word(42)
	ws.SStore(addr, slot, value)
	got := ws.SLoad(addr, slot)
	if !got.Eq(&value) {
		t.Fatalf("SLoad after SStore = %s, want %s", got.Hex(), value.Hex())
	}
}

func TestSnapshotRevertUndoesStorageAndBalance(t *testing.T) {
	ws := NewWorldState()
	addr, slot := word(1), word(2)
	ws.SStore(addr, slot, word(10))
	ws.TransferBalance(word(100), addr)

	snap := ws.Snapshot()
	ws.SStore(addr, slot, word(99))
	ws.TransferBalance(word(50), addr)
	ws.SetNonce(addr, 7)

	ws.RevertToSnapshot(snap)

	if got := ws.SLoad(addr, slot); got.Uint64() != 10 {
		t.Fatalf("storage after revert = %d, want 10", got.Uint64())
	}
	if got := ws.GetBalance(addr); got.Uint64() != 100 {
		t.Fatalf("balance after revert = %d, want 100", got.Uint64())
	}
	if got := ws.GetNonce(addr); got != 0 {
		t.Fatalf("nonce after revert = %d, want 0", got)
	}
}

func TestSnapshotRevertUndoesAccountCreation(t *testing.T) {
	ws := NewWorldState()
	addr := word(9)
	if ws.Exists(addr) {
		t.Fatalf("account should not exist yet")
	}

	snap := ws.Snapshot()
	ws.SetNonce(addr, 1)
	if !ws.Exists(addr) {
		t.Fatalf("account should exist after SetNonce")
	}

	ws.RevertToSnapshot(snap)
	if ws.Exists(addr) {
		t.Fatalf("account creation should be undone by RevertToSnapshot")
	}
}

func TestSaveCodeRejectsCollision(t *testing.T) {
	ws := NewWorldState()
	addr := word(3)
	if err := ws.SaveCode(addr, []byte{0x60, 0x00}, word(0)); err != nil {
		t.Fatalf("first SaveCode: %v", err)
	}
	if err := ws.SaveCode(addr, []byte{0x60, 0x01}, word(0)); err != ErrContractAddressCollision {
		t.Fatalf("second SaveCode err = %v, want ErrContractAddressCollision", err)
	}
}
