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

// Package goprobeevm is the PublicEntry façade (spec.md §4.6): it owns
// nothing the other packages don't, it just assembles them from raw inputs
// and maps an Interpreter's terminal Outcome onto the output envelope
// spec.md §6 describes.
package goprobeevm

import (
	"github.com/probechain/go-probe-evm/core/state"
	"github.com/probechain/go-probe-evm/core/types"
	"github.com/probechain/go-probe-evm/core/vm"
)

// PreStateAccount is one entry of the pre-state map spec.md §6 describes as
// `map from 32-byte address -> (nonce, balance, code)`.
type PreStateAccount struct {
	Address Word
	Nonce   uint64
	Balance Word
	Code    []byte
}

// Word is re-exported so callers of this package never need to import
// core/vm directly just to build a PreStateAccount or CallContext.
type Word = vm.Word

// Execute builds a WorldState from preState, constructs the top-level
// CallContext from tx and block, runs the interpreter over code, and
// returns the output envelope spec.md §6 defines. depth is always 0 for a
// top-level call; nested frames are an internal detail of core/vm.
func Execute(code []byte, tx types.TxContext, block types.BlockContext, preState []PreStateAccount) types.ExecutionResult {
	world := state.NewWorldState()
	for _, acct := range preState {
		world.LoadAccount(acct.Address, acct.Nonce, acct.Balance, acct.Code)
	}

	ctx := types.CallContext{TxContext: tx, BlockContext: block}
	interp := vm.NewInterpreter(code, world, ctx, 0, false)
	outcome := interp.Run()

	return types.ExecutionResult{
		Stack:      interp.Stack(),
		Success:    outcome != vm.Revert,
		Logs:       interp.Logs(),
		ReturnData: interp.ReturnData(),
	}
}
