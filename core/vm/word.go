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

// Package vm implements a stack-based interpreter for EVM byte-code.
//
// Unlike the PROBE language's register-based VM (see probe-lang/lang/vm),
// this interpreter operates on a 256-bit value stack, decodes single-byte
// opcodes with inline push immediates, and runs nested message calls by
// recursing into a child interpreter that shares journaled world state.
package vm

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Word is a 256-bit unsigned integer, the universal value type of the
// interpreter: stack entries, memory words, storage keys/values, addresses,
// and every CallContext/BlockContext scalar are all a Word.
//
// Word is backed by uint256.Int, the same library go-ethereum itself uses
// for EVM words, rather than a hand-rolled four-limb type: it already
// implements every primitive spec.md §4.2 asks for.
type Word = uint256.Int

// ZeroWord returns the additive identity. Prefer this over `Word{}` in call
// sites that read better with a named constructor.
func ZeroWord() *Word { return new(Word) }

// NewWordFromUint64 returns a Word holding the given unsigned 64-bit value.
func NewWordFromUint64(v uint64) *Word { return uint256.NewInt(v) }

// WordFromBig converts a *big.Int into a Word, wrapping modulo 2^256; a
// negative input is stored as its two's-complement encoding.
func WordFromBig(b *big.Int) *Word {
	w := new(Word)
	w.SetFromBig(b)
	return w
}

// WordToBig converts a Word to a *big.Int; the interpreter's hot path never
// touches math/big.
func WordToBig(w *Word) *big.Int {
	return w.ToBig()
}

// BytesToWord decodes a big-endian byte slice into a Word. Slices shorter
// than 32 bytes are treated as left-padded with zero; slices longer than 32
// bytes are truncated to their low-order 32 bytes, matching
// uint256.Int.SetBytes.
func BytesToWord(b []byte) *Word {
	return new(Word).SetBytes(b)
}

// WordToBytes32 renders w as a canonical 32-byte big-endian array.
func WordToBytes32(w *Word) [32]byte {
	return w.Bytes32()
}

// signExtend implements spec.md §4.2's SIGNEXTEND: treat the byte at
// position b (0 = least significant) of x; if its top bit is 1, set all
// higher bytes to 0xFF, else to 0x00. Delegates to uint256's ExtendSign,
// which implements exactly this rule.
func signExtend(back, num *Word) *Word {
	return num.ExtendSign(num, back)
}

// arithmeticShiftRight implements spec.md §4.2's SAR: arithmetic right
// shift. Shift counts of 256 or more collapse to all-zero (non-negative
// operand) or all-one (negative operand); uint256.Int.SRsh already handles
// shift counts up to 256 by the underlying library's rules but the >=256
// case must be special cased the way go-ethereum's opSar does, since SRsh
// only accepts a native `uint` shift count.
func arithmeticShiftRight(shift, value *Word) {
	if shift.GtUint64(256) || (shift.IsUint64() && shift.Uint64() >= 256) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return
	}
	n := uint(shift.Uint64())
	value.SRsh(value, n)
}

// shiftLeft implements spec.md's SHL: shift counts >= 256 yield zero.
func shiftLeft(shift, value *Word) {
	if shift.GtUint64(256) || (shift.IsUint64() && shift.Uint64() >= 256) {
		value.Clear()
		return
	}
	value.Lsh(value, uint(shift.Uint64()))
}

// shiftRight implements spec.md's SHR (logical): shift counts >= 256 yield
// zero.
func shiftRight(shift, value *Word) {
	if shift.GtUint64(256) || (shift.IsUint64() && shift.Uint64() >= 256) {
		value.Clear()
		return
	}
	value.Rsh(value, uint(shift.Uint64()))
}

// byteAt implements spec.md's BYTE(i, x): the byte at offset 31-i from the
// least-significant end, or 0 if i > 31. uint256.Int.Byte mutates its
// receiver in place to the byte of its own prior value at position n
// (0 = most significant), which is exactly this rule; go-ethereum's opByte
// calls it the same way (`val.Byte(&th)`).
func byteAt(i, x *Word) *Word {
	result := new(Word).Set(x)
	result.Byte(i)
	return result
}
