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

import "errors"

// Sentinel errors for every failure kind in spec.md §7. Following the
// probe-lang VM's idiom (ErrOutOfGas, ErrDivisionByZero, ...), each is a
// package-level errors.New value so callers can errors.Is against it.
var (
	// ErrInvalidOpcode is returned when the fetched byte does not decode to
	// a defined instruction.
	ErrInvalidOpcode = errors.New("vm: invalid opcode")

	// ErrInvalidJumpDestination is returned by JUMP/JUMPI when the target is
	// not a JUMPDEST, or lies inside a PUSH immediate.
	ErrInvalidJumpDestination = errors.New("vm: invalid jump destination")

	// ErrStackUnderflow is returned when a handler needs more operands than
	// the stack currently holds.
	ErrStackUnderflow = errors.New("vm: stack underflow")

	// ErrIntegerOverflow is returned by Memory growth when offset+size
	// overflows a 64-bit length computation.
	ErrIntegerOverflow = errors.New("vm: integer overflow computing memory size")

	// ErrReadOnly is returned when a state-mutating opcode (SSTORE, LOGn, or
	// CALL with non-zero value) executes under a STATICCALL's read-only
	// restriction. This interpreter has no CREATE* opcodes, and SELFDESTRUCT
	// always ends the frame with ErrInvalidOpcode.
	ErrReadOnly = errors.New("vm: write in read-only context")

	// ErrContractAddressCollision names the code-deployment collision. No
	// handler in this package returns it; WorldState.SaveCode returns its own
	// state.ErrContractAddressCollision when an account already exists at the
	// target address.
	ErrContractAddressCollision = errors.New("vm: contract address collision")

	// ErrDepthLimit names the maximum-recursion-depth failure. No handler
	// returns it: when a nested call would exceed the limit, opCall pushes 0
	// without running the child.
	ErrDepthLimit = errors.New("vm: max call depth exceeded")
)

// errHalt is the benign terminator for STOP/RETURN: it stops the dispatch
// loop with a successful outcome while preserving the stack (spec.md §4.5
// step 3). It is unexported because callers observe success via
// Interpreter.Run's returned Outcome, never via error equality.
var errHalt = errors.New("vm: halt")

// errRevert is the terminator for REVERT and every other error kind listed
// above: the frame stops unsuccessfully and its stack is cleared. Like
// errHalt, callers see this as an Outcome, not a Go error value.
var errRevert = errors.New("vm: revert")
