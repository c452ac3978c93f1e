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

import "github.com/probechain/go-probe-evm/core/types"

// opCall implements CALL, CALLCODE, DELEGATECALL and STATICCALL (spec.md
// §4.5 step 3's nested message call; CALLCODE/DELEGATECALL/STATICCALL are
// the "should also model" siblings spec.md §6 calls out). Each variant pops
// its own operand set, builds a child CallContext, and recurses into a
// fresh Interpreter sharing the same journaled WorldState: a Revert outcome
// unwinds to the Snapshot taken before the call, a Success/Halt outcome
// keeps every mutation the child journaled.
func (in *Interpreter) opCall(op OpCode) error {
	hasValue := op == CALL || op == CALLCODE
	operands := 6
	if hasValue {
		operands = 7
	}
	if err := in.requireStack(operands); err != nil {
		return err
	}

	in.stack.pop() // gas: accepted for stack-shape compatibility, unused (no gas model)
	addr := in.stack.pop()

	var value Word
	if hasValue {
		value = in.stack.pop()
	} else if op == DELEGATECALL {
		value = in.ctx.Value
	}

	argsOffset := in.stack.pop()
	argsSize := in.stack.pop()
	retOffset := in.stack.pop()
	retSize := in.stack.pop()

	if !argsOffset.IsUint64() || !argsSize.IsUint64() || !retOffset.IsUint64() || !retSize.IsUint64() {
		return ErrIntegerOverflow
	}

	if op == CALL && in.readOnly && !value.IsZero() {
		return ErrReadOnly
	}

	if in.depth+1 >= maxCallDepth {
		in.stack.push(new(Word))
		return nil
	}

	callData, err := in.memory.GetBytes(argsOffset.Uint64(), argsSize.Uint64())
	if err != nil {
		return err
	}

	childTo, childFrom := addr, in.currentAddress()
	if op == CALLCODE {
		childTo = in.currentAddress()
	} else if op == DELEGATECALL {
		childTo = in.currentAddress()
		childFrom = in.ctx.From
	}

	childReadOnly := in.readOnly || op == STATICCALL
	code := in.world.GetCode(addr)

	if hasValue && !value.IsZero() {
		balance := in.world.GetBalance(in.currentAddress())
		if balance.Lt(&value) {
			in.stack.push(new(Word))
			return nil
		}
	}

	snap := in.world.Snapshot()
	if hasValue && !value.IsZero() {
		in.world.DebitBalance(in.currentAddress(), value)
		in.world.TransferBalance(value, childTo)
	}

	childCtx := in.ctx.WithCall(types.TxContext{
		To:       childTo,
		From:     childFrom,
		Origin:   in.ctx.Origin,
		GasPrice: in.ctx.GasPrice,
		Value:    value,
		CallData: callData,
	})

	child := NewInterpreter(code, in.world, childCtx, in.depth+1, childReadOnly)
	outcome := child.Run()

	if outcome == Revert {
		in.world.RevertToSnapshot(snap)
		in.lastReturnData = child.returnData
		in.stack.push(new(Word))
	} else {
		in.lastReturnData = child.returnData
		in.stack.push(boolWord(true))
	}

	if retSize.Uint64() > 0 {
		out := sliceZeroPadded(child.returnData, 0, retSize.Uint64())
		if err := in.memory.SetBytes(retOffset.Uint64(), out); err != nil {
			return err
		}
	}
	return nil
}
