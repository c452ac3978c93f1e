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

// Package state implements the world state and per-account storage
// sub-machines (spec.md §4.4), generalizing the teacher's
// core/state/state_object.go account model (regular/PNS/asset/authorize/
// loss account variants keyed by common.Address) down to the single
// {nonce, balance, code} account shape spec.md asks for, keyed by a full
// 256-bit Word rather than a 160-bit common.Address.
package state

import (
	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"
)

// Word is aliased independently from core/vm's identical alias (both name
// uint256.Int) so this package has no dependency on core/vm: the
// Interpreter (core/vm) depends on WorldState (core/state), not the other
// way around.
type Word = uint256.Int

// Account is a single entry in the WorldState (spec.md §3).
type Account struct {
	Nonce   uint64
	Balance Word
	Code    []byte

	// codeHash caches Keccak256(Code); computed lazily on first
	// EXTCODEHASH/CodeHash call since code is immutable once an account is
	// created, mirroring core/state/state_object.go's emptyCodeHash idiom.
	codeHash *[32]byte
}

// newAccount returns a zero-value account: nonce 0, balance 0, empty code.
func newAccount() *Account {
	return &Account{}
}

// CodeHash returns the Keccak256 hash of the account's code, or the all-zero
// hash for an account with no code (spec.md §4.5's EXTCODEHASH rule).
func (a *Account) CodeHash() [32]byte {
	if len(a.Code) == 0 {
		return [32]byte{}
	}
	if a.codeHash == nil {
		h := keccak256(a.Code)
		a.codeHash = &h
	}
	return *a.codeHash
}

// keccak256 is the opaque 256-bit hash primitive spec.md §1 treats as an
// external collaborator, realized with golang.org/x/crypto/sha3 the same
// way the teacher's common package computes Hash.
func keccak256(data []byte) [32]byte {
	var out [32]byte
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	copy(out[:], h.Sum(nil))
	return out
}
