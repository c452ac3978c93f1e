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

// Stack is the Word256 operand stack, top of stack at the highest index.
// Storing values rather than pointers avoids an allocation per push; peek
// and Back return pointers into the backing array for in-place handler
// mutation, mirroring the Word-backed stack idiom used throughout
// go-ethereum-family interpreters.
type Stack struct {
	data []Word
}

func newStack() *Stack {
	return &Stack{data: make([]Word, 0, 16)}
}

// push copies d onto the top of the stack.
func (st *Stack) push(d *Word) {
	st.data = append(st.data, *d)
}

// pop removes and returns the top of the stack. The caller must check len()
// first; pop on an empty stack panics, matching Go slice semantics — the
// interpreter's dispatch loop always checks depth before popping.
func (st *Stack) pop() Word {
	n := len(st.data) - 1
	v := st.data[n]
	st.data = st.data[:n]
	return v
}

// peek returns a pointer to the top of the stack without removing it.
func (st *Stack) peek() *Word {
	return &st.data[len(st.data)-1]
}

// Back returns a pointer to the n-th item from the top (0 = top).
func (st *Stack) Back(n int) *Word {
	return &st.data[len(st.data)-n-1]
}

// len reports the number of items currently on the stack.
func (st *Stack) len() int { return len(st.data) }

// require reports whether at least n items are present, used by the
// dispatch loop to detect StackUnderflow before a handler runs.
func (st *Stack) require(n int) bool { return len(st.data) >= n }

// swap exchanges the top item with the item n positions below it (SWAPn:
// n in 1..=16 swaps top with the (n+1)-th item from top).
func (st *Stack) swap(n int) {
	top := len(st.data) - 1
	st.data[top], st.data[top-n] = st.data[top-n], st.data[top]
}

// dup duplicates the n-th item from top (1-indexed: dup(1) duplicates the
// current top) onto the top of the stack.
func (st *Stack) dup(n int) {
	st.push(&st.data[len(st.data)-n])
}

// clear empties the stack, used when a frame terminates with Revert
// (spec.md §4.5 step 3: "Revert terminates unsuccessfully and clears the
// stack").
func (st *Stack) clear() {
	st.data = st.data[:0]
}

// items returns the stack contents bottom-to-top, used by PublicEntry to
// render the output envelope's top-first stack (spec.md §6).
func (st *Stack) items() []Word {
	return st.data
}
