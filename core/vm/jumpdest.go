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

// jumpdestSet is a precomputed bitset of valid JUMP/JUMPI targets: offsets
// where code[i] == JUMPDEST and i is not embedded inside a preceding PUSHk's
// immediate region (spec.md §4.5's "Valid-jumpdest oracle").
//
// One bitset is computed per code blob and cached on the Interpreter that
// first analyzes it (spec.md §9: "memoize a bitset per code blob for repeat
// executions"); nested calls that re-enter the same code get a fresh
// Interpreter and so recompute it once per frame, which spec.md accepts as
// fine for small contracts.
type jumpdestSet struct {
	bits []uint64
}

func analyzeJumpdests(code []byte) *jumpdestSet {
	js := &jumpdestSet{bits: make([]uint64, (len(code)/64)+1)}
	for pc := 0; pc < len(code); {
		op := decode(code[pc])
		if op == JUMPDEST {
			js.set(pc)
			pc++
			continue
		}
		if width := op.PushWidth(); width > 0 {
			pc += 1 + width
			continue
		}
		pc++
	}
	return js
}

func (js *jumpdestSet) set(pc int) {
	js.bits[pc/64] |= 1 << uint(pc%64)
}

// valid reports whether pc is a legal jump target.
func (js *jumpdestSet) valid(pc int) bool {
	word := pc / 64
	if word >= len(js.bits) {
		return false
	}
	return js.bits[word]&(1<<uint(pc%64)) != 0
}
