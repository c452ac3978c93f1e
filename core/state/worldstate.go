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

import "errors"

// ErrContractAddressCollision mirrors core/vm.ErrContractAddressCollision;
// this package cannot import core/vm (core/vm imports this package), so it
// defines its own sentinel. core/vm does not reference this one.
var ErrContractAddressCollision = errors.New("state: contract address collision")

// WorldState is the account map keyed by 256-bit address (spec.md §3/§4.4):
// at most one Account per address, created on first code deployment or
// balance transfer, deletable via DeleteAccount.
//
// Mutations are journaled rather than applied to cloned copies: Snapshot/
// RevertToSnapshot give nested calls the clone-and-discard semantics spec.md
// §4.5 describes without the allocation cost of an actual deep copy (see
// spec.md §9 and SPEC_FULL.md §4.4).
type WorldState struct {
	accounts map[Word]*Account
	storage  Storage
	journal  *journal
}

// NewWorldState returns an empty WorldState: no accounts, no storage.
func NewWorldState() *WorldState {
	return &WorldState{
		accounts: make(map[Word]*Account),
		storage:  make(Storage),
		journal:  newJournal(),
	}
}

// touch returns the account at address, creating (and journaling the
// creation of) a zero-value account if none exists yet.
func (ws *WorldState) touch(address Word) *Account {
	if acct, ok := ws.accounts[address]; ok {
		return acct
	}
	acct := newAccount()
	ws.accounts[address] = acct
	ws.journal.append(createAccountChange{account: address})
	return acct
}

// Exists reports whether an account is present at address.
func (ws *WorldState) Exists(address Word) bool {
	_, ok := ws.accounts[address]
	return ok
}

// GetBalance returns the account's balance, or zero if the account does not
// exist.
func (ws *WorldState) GetBalance(address Word) Word {
	if acct, ok := ws.accounts[address]; ok {
		return acct.Balance
	}
	return Word{}
}

// GetNonce returns the account's nonce, or zero if the account does not
// exist.
func (ws *WorldState) GetNonce(address Word) uint64 {
	if acct, ok := ws.accounts[address]; ok {
		return acct.Nonce
	}
	return 0
}

// GetCode returns the account's code, or nil if the account does not exist
// or has no code.
func (ws *WorldState) GetCode(address Word) []byte {
	if acct, ok := ws.accounts[address]; ok {
		return acct.Code
	}
	return nil
}

// GetCodeHash returns Keccak256(code), or the zero hash for a nonexistent
// or codeless account.
func (ws *WorldState) GetCodeHash(address Word) [32]byte {
	if acct, ok := ws.accounts[address]; ok {
		return acct.CodeHash()
	}
	return [32]byte{}
}

// SetNonce sets the account's nonce, creating the account if necessary.
func (ws *WorldState) SetNonce(address Word, nonce uint64) {
	acct := ws.touch(address)
	ws.journal.append(nonceChange{account: address, prev: acct.Nonce})
	acct.Nonce = nonce
}

// SaveCode deploys code to address with an initial balance endowment.
// Fails with ErrContractAddressCollision if address already has an account
// (spec.md §4.4).
func (ws *WorldState) SaveCode(address Word, code []byte, endowment Word) error {
	if _, ok := ws.accounts[address]; ok {
		return ErrContractAddressCollision
	}
	acct := ws.touch(address)
	ws.journal.append(codeChange{account: address, prev: acct.Code})
	acct.Code = append([]byte(nil), code...)
	acct.codeHash = nil
	ws.journal.append(balanceChange{account: address, prev: acct.Balance})
	acct.Balance.Add(&acct.Balance, &endowment)
	return nil
}

// TransferBalance moves amount into dest's balance, creating dest with zero
// nonce and empty code if it does not yet exist (spec.md §4.4). The source
// side of the transfer is the interpreter's responsibility (CALL debits the
// caller with DebitBalance, then credits the callee with this method),
// matching how go-ethereum's CanTransfer/Transfer pair works in core/evm.go.
func (ws *WorldState) TransferBalance(amount Word, dest Word) {
	acct := ws.touch(dest)
	ws.journal.append(balanceChange{account: dest, prev: acct.Balance})
	acct.Balance.Add(&acct.Balance, &amount)
}

// DebitBalance subtracts amount from src's balance. The interpreter must
// ensure src has sufficient balance before calling; this method performs an
// unconditional wrapping subtraction, matching Word256's wrapping semantics
// (spec.md §4.2).
func (ws *WorldState) DebitBalance(src Word, amount Word) {
	acct := ws.touch(src)
	ws.journal.append(balanceChange{account: src, prev: acct.Balance})
	acct.Balance.Sub(&acct.Balance, &amount)
}

// DeleteAccount removes the account at address entirely, journaling the
// prior account so a revert can restore it intact (spec.md §4.4 permits
// deletion).
func (ws *WorldState) DeleteAccount(address Word) {
	prev, existed := ws.accounts[address]
	if !existed {
		return
	}
	ws.journal.append(deleteAccountChange{account: address, prev: prev})
	delete(ws.accounts, address)
}

// SLoad reads storage slot `slot` scoped to `address`, returning zero for an
// absent entry (spec.md §4.4).
func (ws *WorldState) SLoad(address, slot Word) Word {
	return ws.storage.get(address, slot)
}

// SStore writes storage slot `slot` scoped to `address` unconditionally
// (spec.md §4.4).
func (ws *WorldState) SStore(address, slot, value Word) {
	acctStorage, existed := ws.storage[address]
	var prev Word
	var slotExisted bool
	if existed {
		prev, slotExisted = acctStorage[slot]
	}
	ws.journal.append(storageChange{address: address, slot: slot, prev: prev, existed: slotExisted})
	ws.storage.set(address, slot, value)
}

// LoadAccount seeds address with the given pre-state (nonce, balance, code)
// without journaling the write: this is bulk construction before execution
// begins, not a reversible mutation mid-run (spec.md §6's pre-state map
// input to PublicEntry).
func (ws *WorldState) LoadAccount(address Word, nonce uint64, balance Word, code []byte) {
	acct := newAccount()
	acct.Nonce = nonce
	acct.Balance = balance
	acct.Code = append([]byte(nil), code...)
	ws.accounts[address] = acct
}

// Snapshot records the current journal length; pair with RevertToSnapshot
// to undo every mutation made since (spec.md §4.5's nested-call isolation,
// implemented per spec.md §9's journaled-overlay note).
func (ws *WorldState) Snapshot() int {
	return ws.journal.snapshot()
}

// RevertToSnapshot undoes every mutation recorded since the matching
// Snapshot call, in reverse order.
func (ws *WorldState) RevertToSnapshot(id int) {
	ws.journal.revertTo(ws, id)
}
