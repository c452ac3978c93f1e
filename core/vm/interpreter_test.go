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
	"encoding/hex"
	"strings"
	"testing"

	"github.com/probechain/go-probe-evm/core/state"
	"github.com/probechain/go-probe-evm/core/types"
)

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// runCode executes code against a fresh WorldState and empty CallContext,
// returning the terminal outcome and the resulting interpreter (for stack/
// logs/return-data inspection).
func runCode(t *testing.T, code []byte) (Outcome, *Interpreter) {
	t.Helper()
	world := state.NewWorldState()
	interp := NewInterpreter(code, world, types.CallContext{}, 0, false)
	return interp.Run(), interp
}

// The six end-to-end scenarios below are literal big-endian hex programs.

func TestSimpleAdd(t *testing.T) {
	// PUSH1 0x06 PUSH1 0x07 ADD STOP
	outcome, interp := runCode(t, mustHex("600660070100"))
	if outcome != Halt {
		t.Fatalf("outcome = %v, want Halt", outcome)
	}
	stack := interp.Stack()
	if len(stack) != 1 || stack[0].Uint64() != 0x0D {
		t.Fatalf("stack = %v, want [0x0D]", stack)
	}
}

func TestMulThenAdd(t *testing.T) {
	// PUSH1 0x02 PUSH1 0x03 MUL PUSH1 0x04 ADD STOP
	outcome, interp := runCode(t, mustHex("600260030260040100"))
	if outcome != Halt {
		t.Fatalf("outcome = %v, want Halt", outcome)
	}
	stack := interp.Stack()
	if len(stack) != 1 || stack[0].Uint64() != 0x0A {
		t.Fatalf("stack = %v, want [0x0A]", stack)
	}
}

func TestInvalidJumpReverts(t *testing.T) {
	// PUSH1 0x05 JUMP STOP
	outcome, interp := runCode(t, mustHex("60055600"))
	if outcome != Revert {
		t.Fatalf("outcome = %v, want Revert", outcome)
	}
	if len(interp.Stack()) != 0 {
		t.Fatalf("stack should be cleared on revert, got %v", interp.Stack())
	}
}

func TestStorageRoundTrip(t *testing.T) {
	// PUSH1 0x2A PUSH1 0x01 SSTORE PUSH1 0x01 SLOAD STOP
	outcome, interp := runCode(t, mustHex("602a60015560015400"))
	if outcome != Halt {
		t.Fatalf("outcome = %v, want Halt", outcome)
	}
	stack := interp.Stack()
	if len(stack) != 1 || stack[0].Uint64() != 0x2A {
		t.Fatalf("stack = %v, want [0x2A]", stack)
	}
}

func TestMemoryMstoreMload(t *testing.T) {
	// PUSH32 <31 zero bytes, 0x11> PUSH1 0x00 MSTORE PUSH1 0x00 MLOAD STOP
	word := strings.Repeat("00", 31) + "11"
	code := mustHex("7f" + word + "60005260005100")
	outcome, interp := runCode(t, code)
	if outcome != Halt {
		t.Fatalf("outcome = %v, want Halt", outcome)
	}
	stack := interp.Stack()
	if len(stack) != 1 || stack[0].Uint64() != 0x11 {
		t.Fatalf("stack = %v, want [0x11]", stack)
	}
	if interp.memory.Size() != 0x20 {
		t.Fatalf("memory size = %d, want 0x20", interp.memory.Size())
	}
}

func TestLogEmission(t *testing.T) {
	// PUSH1 0xFF PUSH1 0x00 MSTORE8 PUSH1 0x01 PUSH1 0x00 LOG0 STOP
	tx := types.TxContext{To: *NewWordFromUint64(0x42)}
	world := state.NewWorldState()
	interp := NewInterpreter(mustHex("60ff60005360016000a000"), world, types.CallContext{TxContext: tx}, 0, false)
	outcome := interp.Run()
	if outcome != Halt {
		t.Fatalf("outcome = %v, want Halt", outcome)
	}
	logs := interp.Logs()
	if len(logs) != 1 {
		t.Fatalf("len(logs) = %d, want 1", len(logs))
	}
	if len(logs[0].Topics) != 0 {
		t.Fatalf("LOG0 should have no topics, got %d", len(logs[0].Topics))
	}
	if len(logs[0].Data) != 1 || logs[0].Data[0] != 0xFF {
		t.Fatalf("log data = %v, want [0xFF]", logs[0].Data)
	}
	if !logs[0].Address.Eq(&tx.To) {
		t.Fatalf("log address = %s, want tx.to", logs[0].Address.Hex())
	}
}

func TestStackUnderflowReverts(t *testing.T) {
	outcome, _ := runCode(t, mustHex("01")) // ADD with empty stack
	if outcome != Revert {
		t.Fatalf("outcome = %v, want Revert", outcome)
	}
}

func TestUndefinedOpcodeReverts(t *testing.T) {
	outcome, _ := runCode(t, []byte{0x0C})
	if outcome != Revert {
		t.Fatalf("outcome = %v, want Revert", outcome)
	}
}

func TestNotNotIsIdentity(t *testing.T) {
	x := NewWordFromUint64(12345)
	once := new(Word).Not(x)
	twice := new(Word).Not(once)
	if !twice.Eq(x) {
		t.Fatalf("NOT(NOT(x)) = %s, want %s", twice, x)
	}
}
