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

import (
	"github.com/probechain/go-probe-evm/core/state"
	"github.com/probechain/go-probe-evm/core/types"
)

// maxCallDepth bounds CALL-family recursion (spec.md §5: "a practical limit
// (e.g., 1024) should reject deeper calls as Revert at the parent"). An
// explicit counter is used rather than Go call-stack depth, per spec.md §9.
const maxCallDepth = 1024

// Outcome is the terminal state an Interpreter.Run reaches (spec.md §4.5's
// state machine summary: Running -> {Success, Halt, Revert}).
type Outcome int

const (
	// Success is natural termination: pc advanced past the end of code.
	Success Outcome = iota
	// Halt is STOP/RETURN: benign, stack preserved.
	Halt
	// Revert is REVERT or any error condition: stack cleared.
	Revert
)

// Interpreter is one frame of execution (spec.md §3's Frame state / §4.5).
// A nested CALL/CALLCODE/DELEGATECALL/STATICCALL instantiates a child
// Interpreter that shares the parent's WorldState (journaled, not cloned —
// see core/state.WorldState) and gets its own private stack, memory, pc,
// logs, return_data, and last_return_data.
type Interpreter struct {
	code      []byte
	stack     *Stack
	memory    *Memory
	pc        uint64
	jumpdests *jumpdestSet

	world *state.WorldState
	ctx   types.CallContext

	logs           []types.LogRecord
	returnData     []byte
	lastReturnData []byte

	depth    int
	readOnly bool
}

// NewInterpreter builds a frame for `code` executing under `ctx` against
// `world`, at call depth `depth` (0 for the top-level call), with
// `readOnly` set when the frame was entered via STATICCALL (or inherits a
// read-only ancestor).
func NewInterpreter(code []byte, world *state.WorldState, ctx types.CallContext, depth int, readOnly bool) *Interpreter {
	return &Interpreter{
		code:      code,
		stack:     newStack(),
		memory:    NewMemory(),
		jumpdests: analyzeJumpdests(code),
		world:     world,
		ctx:       ctx,
		depth:     depth,
		readOnly:  readOnly,
	}
}

// Run executes the fetch-decode-execute loop (spec.md §4.5) to completion.
func (in *Interpreter) Run() Outcome {
	for in.pc < uint64(len(in.code)) {
		op := decode(in.code[in.pc])
		if !op.IsDefined() {
			in.stack.clear()
			return Revert
		}
		if err := in.execute(op); err != nil {
			if err == errHalt {
				return Halt
			}
			in.stack.clear()
			return Revert
		}
	}
	return Success
}

// execute decodes operand arity, dispatches to the handler, and advances pc.
// PUSH*/JUMP/JUMPI manage pc themselves (variable-width immediate, or an
// explicit jump target); every other opcode advances by exactly one byte
// after its handler runs.
func (in *Interpreter) execute(op OpCode) error {
	switch {
	case op.IsPush():
		return in.opPush(op)
	case op == JUMP:
		return in.opJump()
	case op == JUMPI:
		return in.opJumpi()
	}

	if err := in.dispatch(op); err != nil {
		return err
	}
	in.pc++
	return nil
}

// requireStack returns ErrStackUnderflow unless at least n items are on the
// stack; every handler that pops calls this first.
func (in *Interpreter) requireStack(n int) error {
	if !in.stack.require(n) {
		return ErrStackUnderflow
	}
	return nil
}

// requireWritable returns ErrReadOnly if this frame (or an ancestor, via
// inherited readOnly) forbids state mutation (spec.md §4.5's STATICCALL
// rule).
func (in *Interpreter) requireWritable() error {
	if in.readOnly {
		return ErrReadOnly
	}
	return nil
}

// currentAddress is the `to` address storage/balance/code operations are
// scoped to in this frame.
func (in *Interpreter) currentAddress() Word { return in.ctx.To }

// Stack returns the final stack contents top-first (spec.md §6's output
// envelope), for use by the top-level PublicEntry façade.
func (in *Interpreter) Stack() []Word {
	items := in.stack.items()
	out := make([]Word, len(items))
	for i, w := range items {
		out[len(items)-1-i] = w
	}
	return out
}

// Logs returns the logs this frame emitted, in emission order.
func (in *Interpreter) Logs() []types.LogRecord { return in.logs }

// ReturnData returns the bytes this frame returned (via RETURN or REVERT),
// or nil if it halted via STOP or ran off the end of its code.
func (in *Interpreter) ReturnData() []byte { return in.returnData }
