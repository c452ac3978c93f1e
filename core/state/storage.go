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

// AccountStorage is a per-contract slot→value map (spec.md §3's Storage,
// one account's slice of it). Absent keys read as zero; writes are
// unconditional. Grounded on the teacher's
// `type Storage map[common.Hash]common.Hash` in core/state/state_object.go,
// generalized to 256-bit Word keys/values instead of 32-byte hashes (which
// are the same width, just a different named type in the teacher).
type AccountStorage map[Word]Word

// Storage is the full per-address map of per-contract storage (spec.md
// §3). WorldState embeds one Storage and scopes SLOAD/SSTORE to the
// current call's `to` address.
type Storage map[Word]AccountStorage

// get returns the value at (address, slot), or zero if absent.
func (s Storage) get(address, slot Word) Word {
	acct, ok := s[address]
	if !ok {
		return Word{}
	}
	return acct[slot]
}

// set writes value unconditionally at (address, slot), creating the
// per-account map on first write.
func (s Storage) set(address, slot, value Word) {
	acct, ok := s[address]
	if !ok {
		acct = make(AccountStorage)
		s[address] = acct
	}
	acct[slot] = value
}
