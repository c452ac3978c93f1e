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

import "testing"

func TestBytesToWordRoundTrip(t *testing.T) {
	w := BytesToWord([]byte{0x01, 0x02, 0x03})
	b := WordToBytes32(w)
	want := make([]byte, 32)
	want[29], want[30], want[31] = 0x01, 0x02, 0x03
	for i := range want {
		if b[i] != want[i] {
			t.Fatalf("WordToBytes32 = %x, want %x", b, want)
		}
	}
}

func TestShiftLeftOverflowIsZero(t *testing.T) {
	shift := NewWordFromUint64(256)
	value := NewWordFromUint64(1)
	shiftLeft(shift, value)
	if !value.IsZero() {
		t.Fatalf("shift >= 256 should zero the value, got %s", value)
	}
}

func TestShiftLeftByOne(t *testing.T) {
	shift := NewWordFromUint64(1)
	value := NewWordFromUint64(1)
	shiftLeft(shift, value)
	if value.Uint64() != 2 {
		t.Fatalf("1 << 1 = %d, want 2", value.Uint64())
	}
}

func TestArithmeticShiftRightNegative(t *testing.T) {
	// -1 in two's complement is all-ones; SAR of all-ones by any amount is
	// still all-ones.
	value := new(Word).Not(new(Word))
	shift := NewWordFromUint64(8)
	arithmeticShiftRight(shift, value)
	allOnes := new(Word).Not(new(Word))
	if !value.Eq(allOnes) {
		t.Fatalf("SAR(-1, 8) = %s, want all-ones", value)
	}
}

func TestArithmeticShiftRightOverflowPositive(t *testing.T) {
	value := NewWordFromUint64(5)
	shift := NewWordFromUint64(300)
	arithmeticShiftRight(shift, value)
	if !value.IsZero() {
		t.Fatalf("SAR of a non-negative value by >=256 should be zero, got %s", value)
	}
}

func TestByteAt(t *testing.T) {
	x := BytesToWord([]byte{0xAA, 0xBB, 0xCC})
	// index 31 is the least-significant byte.
	got := byteAt(NewWordFromUint64(31), x)
	if got.Uint64() != 0xCC {
		t.Fatalf("byteAt(31, 0x..AABBCC) = %#x, want 0xcc", got.Uint64())
	}
	got = byteAt(NewWordFromUint64(40), x)
	if !got.IsZero() {
		t.Fatalf("byteAt out of range should be zero, got %s", got)
	}
}
