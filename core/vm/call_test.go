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

package vm

import (
	"testing"

	"github.com/probechain/go-probe-evm/core/state"
	"github.com/probechain/go-probe-evm/core/types"
)

// TestRevertedCallLeavesParentUntouched is spec.md §8's "After a reverted
// CALL, the parent WorldState and Storage equal their pre-call snapshots"
// property: the callee writes a storage slot and transfers value in, then
// reverts; both the callee's storage and the parent's balance must come
// back out exactly as they went in.
func TestRevertedCallLeavesParentUntouched(t *testing.T) {
	parent := *NewWordFromUint64(0x0A)
	callee := *NewWordFromUint64(0x0B)
	slot := NewWordFromUint64(2)

	world := state.NewWorldState()
	world.LoadAccount(parent, 0, *NewWordFromUint64(1000), nil)

	// PUSH1 0x01 PUSH1 0x02 SSTORE PUSH1 0x00 PUSH1 0x00 REVERT
	calleeCode := mustHex("600160025560006000fd")
	if err := world.SaveCode(callee, calleeCode, *new(Word)); err != nil {
		t.Fatalf("SaveCode: %v", err)
	}

	// PUSH1 retSize(0) PUSH1 retOffset(0) PUSH1 argsSize(0) PUSH1 argsOffset(0)
	// PUSH1 value(5) PUSH20 <callee> PUSH1 gas(0) CALL STOP
	calleeBytes32 := WordToBytes32(&callee)
	calleeAddr20 := calleeBytes32[12:]
	parentCode := append([]byte{}, mustHex("6000600060006000"+"6005")...)
	parentCode = append(parentCode, byte(PUSH1 + 19))
	parentCode = append(parentCode, calleeAddr20...)
	parentCode = append(parentCode, mustHex("6000f100")...)

	tx := types.TxContext{To: parent}
	interp := NewInterpreter(parentCode, world, types.CallContext{TxContext: tx}, 0, false)
	outcome := interp.Run()
	if outcome != Halt {
		t.Fatalf("outcome = %v, want Halt", outcome)
	}

	stack := interp.Stack()
	if len(stack) != 1 || !stack[0].IsZero() {
		t.Fatalf("CALL result = %v, want [0] (reverted child)", stack)
	}

	if got := world.GetBalance(parent); got.Uint64() != 1000 {
		t.Fatalf("parent balance after reverted call = %d, want 1000", got.Uint64())
	}
	if got := world.SLoad(callee, *slot); !got.IsZero() {
		t.Fatalf("callee storage after reverted call = %s, want zero", got.Hex())
	}
}

// TestSuccessfulCallCommitsCalleeStorage is the positive counterpart: when
// the callee returns normally, its storage write and the value transfer
// both stick.
func TestSuccessfulCallCommitsCalleeStorage(t *testing.T) {
	parent := *NewWordFromUint64(0x0A)
	callee := *NewWordFromUint64(0x0B)
	slot := NewWordFromUint64(2)

	world := state.NewWorldState()
	world.LoadAccount(parent, 0, *NewWordFromUint64(1000), nil)

	// PUSH1 0x01 PUSH1 0x02 SSTORE STOP
	calleeCode := mustHex("6001600255" + "00")
	if err := world.SaveCode(callee, calleeCode, *new(Word)); err != nil {
		t.Fatalf("SaveCode: %v", err)
	}

	calleeBytes32 := WordToBytes32(&callee)
	calleeAddr20 := calleeBytes32[12:]
	parentCode := append([]byte{}, mustHex("6000600060006000"+"6005")...)
	parentCode = append(parentCode, byte(PUSH1 + 19))
	parentCode = append(parentCode, calleeAddr20...)
	parentCode = append(parentCode, mustHex("6000f100")...)

	tx := types.TxContext{To: parent}
	interp := NewInterpreter(parentCode, world, types.CallContext{TxContext: tx}, 0, false)
	outcome := interp.Run()
	if outcome != Halt {
		t.Fatalf("outcome = %v, want Halt", outcome)
	}

	stack := interp.Stack()
	if len(stack) != 1 || stack[0].Uint64() != 1 {
		t.Fatalf("CALL result = %v, want [1] (successful child)", stack)
	}

	if got := world.GetBalance(parent); got.Uint64() != 995 {
		t.Fatalf("parent balance after call = %d, want 995", got.Uint64())
	}
	if got := world.GetBalance(callee); got.Uint64() != 5 {
		t.Fatalf("callee balance after call = %d, want 5", got.Uint64())
	}
	if got := world.SLoad(callee, *slot); got.Uint64() != 1 {
		t.Fatalf("callee storage after call = %d, want 1", got.Uint64())
	}
}

func TestStaticCallForbidsSstore(t *testing.T) {
	callee := *NewWordFromUint64(0x0B)
	world := state.NewWorldState()
	// PUSH1 0x01 PUSH1 0x02 SSTORE STOP
	calleeCode := mustHex("600160025500")
	if err := world.SaveCode(callee, calleeCode, *new(Word)); err != nil {
		t.Fatalf("SaveCode: %v", err)
	}

	calleeBytes32 := WordToBytes32(&callee)
	calleeAddr20 := calleeBytes32[12:]
	// PUSH1 retSize(0) PUSH1 retOffset(0) PUSH1 argsSize(0) PUSH1 argsOffset(0)
	// PUSH20 <callee> PUSH1 gas(0) STATICCALL STOP
	code := append([]byte{}, mustHex("6000600060006000")...)
	code = append(code, byte(PUSH1 + 19))
	code = append(code, calleeAddr20...)
	code = append(code, mustHex("6000fa00")...)

	interp := NewInterpreter(code, world, types.CallContext{}, 0, false)
	outcome := interp.Run()
	if outcome != Halt {
		t.Fatalf("outcome = %v, want Halt", outcome)
	}
	stack := interp.Stack()
	if len(stack) != 1 || !stack[0].IsZero() {
		t.Fatalf("STATICCALL result = %v, want [0] (child hit ErrReadOnly)", stack)
	}
}
