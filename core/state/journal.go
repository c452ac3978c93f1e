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

// journalEntry is a single reversible mutation applied to a WorldState.
// Adapted from the teacher's core/state/journal.go journalEntry interface
// (there specialized per go-probeum account type — regularSuicideChange,
// pnsSuicideChange, assetSuicideChange, ...); here generalized to the six
// mutations spec.md's WorldState actually exposes: account creation, balance
// transfer, nonce bump, code deployment, storage write, and account deletion.
type journalEntry interface {
	revert(ws *WorldState)
}

// journal is the ordered log of mutations applied since WorldState creation
// (or since the start of a nested call frame). Snapshot/RevertToSnapshot
// implement spec.md §9's "journaled overlay" alternative to deep-cloning
// WorldState/Storage on every nested CALL: a child call takes a Snapshot
// before running, and RevertToSnapshot on a Revert outcome undoes exactly
// the entries appended during that child's execution, leaving the parent
// exactly as if the child's state had never been cloned in at all.
type journal struct {
	entries []journalEntry
}

func newJournal() *journal {
	return &journal{}
}

func (j *journal) append(e journalEntry) {
	j.entries = append(j.entries, e)
}

// snapshot returns an opaque marker for the current journal length.
func (j *journal) snapshot() int {
	return len(j.entries)
}

// revertTo replays entries backward from the end down to (not including)
// index id, undoing each one against ws.
func (j *journal) revertTo(ws *WorldState, id int) {
	for i := len(j.entries) - 1; i >= id; i-- {
		j.entries[i].revert(ws)
	}
	j.entries = j.entries[:id]
}

// ---- concrete journal entries ----------------------------------------------

// balanceChange undoes a balance write on an existing or newly-touched
// account.
type balanceChange struct {
	account Word
	prev    Word
}

func (c balanceChange) revert(ws *WorldState) {
	ws.accounts[c.account].Balance = c.prev
}

// nonceChange undoes a nonce write.
type nonceChange struct {
	account Word
	prev    uint64
}

func (c nonceChange) revert(ws *WorldState) {
	ws.accounts[c.account].Nonce = c.prev
}

// codeChange undoes a SaveCode call by clearing the account's code back to
// what it was (always empty in practice, since SaveCode rejects any address
// that already has an account).
type codeChange struct {
	account Word
	prev    []byte
}

func (c codeChange) revert(ws *WorldState) {
	acct := ws.accounts[c.account]
	acct.Code = c.prev
	acct.codeHash = nil
}

// storageChange undoes a single SSTORE.
type storageChange struct {
	address Word
	slot    Word
	prev    Word
	existed bool
}

func (c storageChange) revert(ws *WorldState) {
	if !c.existed {
		delete(ws.storage[c.address], c.slot)
		return
	}
	ws.storage.set(c.address, c.slot, c.prev)
}

// createAccountChange undoes the creation of a brand-new account (e.g. one
// materialized as the implicit destination of a balance transfer).
type createAccountChange struct {
	account Word
}

func (c createAccountChange) revert(ws *WorldState) {
	delete(ws.accounts, c.account)
}

// deleteAccountChange undoes DeleteAccount, restoring the account exactly
// as it was.
type deleteAccountChange struct {
	account Word
	prev    *Account
}

func (c deleteAccountChange) revert(ws *WorldState) {
	ws.accounts[c.account] = c.prev
}
