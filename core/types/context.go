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

// Package types holds the value types shared between the interpreter and
// its callers: call/block context, emitted logs, and the final execution
// result. Split the way go-ethereum's core/evm.go splits BlockContext from
// TxContext, since the block fields are shared across every call in a
// transaction while the tx fields describe one particular call frame.
package types

import "github.com/holiman/uint256"

// Word is re-exported here so this package has no import-cycle dependency
// on core/vm; both packages alias the same uint256.Int.
type Word = uint256.Int

// TxContext carries the transaction/call-scoped scalars and call-data
// buffer (spec.md §3's CallContext, minus the block-level fields).
type TxContext struct {
	To       Word
	From     Word
	Origin   Word
	GasPrice Word
	Value    Word
	CallData []byte
}

// BlockContext carries the block-scoped scalars shared by every call frame
// within one top-level execution (spec.md §3's CallContext block fields).
type BlockContext struct {
	BaseFee    Word
	Coinbase   Word
	Timestamp  Word
	Number     Word
	Difficulty Word
	GasLimit   Word
	ChainID    Word
}

// CallContext bundles a TxContext with the BlockContext it executes under,
// matching spec.md §3's single flattened CallContext shape as seen by the
// interpreter's environment-read opcodes.
type CallContext struct {
	TxContext
	BlockContext
}

// WithCall returns a copy of c with a new TxContext substituted, used when
// building a child CallContext for a nested CALL/CALLCODE/DELEGATECALL/
// STATICCALL (spec.md §4.5 step 3): the BlockContext is shared unchanged,
// only To/From/Origin/Value/CallData change per call.
func (c CallContext) WithCall(tx TxContext) CallContext {
	c.TxContext = tx
	return c
}
