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
	"golang.org/x/crypto/sha3"

	"github.com/probechain/go-probe-evm/core/types"
)

// dispatch runs every opcode handler except PUSH*/JUMP/JUMPI, which manage
// pc themselves and are handled in execute. Grouped in the order spec.md
// §4.5 lists its opcode groups.
func (in *Interpreter) dispatch(op OpCode) error {
	switch op {

	// ---- Termination --------------------------------------------------

	case STOP:
		return errHalt

	case RETURN:
		return in.opReturn()

	case REVERT:
		return in.opRevert()

	// ---- Arithmetic -----------------------------------------------------

	case ADD:
		return in.binOp(func(z, x, y *Word) { z.Add(x, y) })
	case SUB:
		return in.binOp(func(z, x, y *Word) { z.Sub(x, y) })
	case MUL:
		return in.binOp(func(z, x, y *Word) { z.Mul(x, y) })
	case DIV:
		return in.binOp(func(z, x, y *Word) { z.Div(x, y) })
	case SDIV:
		return in.binOp(func(z, x, y *Word) { z.SDiv(x, y) })
	case MOD:
		return in.binOp(func(z, x, y *Word) { z.Mod(x, y) })
	case SMOD:
		return in.binOp(func(z, x, y *Word) { z.SMod(x, y) })
	case EXP:
		return in.binOp(func(z, x, y *Word) { z.Exp(x, y) })
	case SIGNEXTEND:
		return in.binOp(func(z, x, y *Word) { z.ExtendSign(y, x) })
	case ADDMOD:
		return in.triOp(func(z, a, b, n *Word) { z.AddMod(a, b, n) })
	case MULMOD:
		return in.triOp(func(z, a, b, n *Word) { z.MulMod(a, b, n) })

	// ---- Comparison / signed comparison ---------------------------------

	case LT:
		return in.boolOp(func(x, y *Word) bool { return x.Lt(y) })
	case GT:
		return in.boolOp(func(x, y *Word) bool { return x.Gt(y) })
	case SLT:
		return in.boolOp(func(x, y *Word) bool { return x.Slt(y) })
	case SGT:
		return in.boolOp(func(x, y *Word) bool { return x.Sgt(y) })
	case EQ:
		return in.boolOp(func(x, y *Word) bool { return x.Eq(y) })
	case ISZERO:
		return in.unaryBoolOp(func(x *Word) bool { return x.IsZero() })

	// ---- Bitwise & shifts ------------------------------------------------

	case AND:
		return in.binOp(func(z, x, y *Word) { z.And(x, y) })
	case OR:
		return in.binOp(func(z, x, y *Word) { z.Or(x, y) })
	case XOR:
		return in.binOp(func(z, x, y *Word) { z.Xor(x, y) })
	case NOT:
		return in.unaryOp(func(z, x *Word) { z.Not(x) })
	case BYTE:
		return in.binOp(func(z, i, x *Word) { z.Set(x); z.Byte(i) })
	case SHL:
		return in.binOp(func(z, shift, value *Word) { z.Set(value); shiftLeft(shift, z) })
	case SHR:
		return in.binOp(func(z, shift, value *Word) { z.Set(value); shiftRight(shift, z) })
	case SAR:
		return in.binOp(func(z, shift, value *Word) { z.Set(value); arithmeticShiftRight(shift, z) })

	// ---- Memory / hashing -------------------------------------------------

	case SHA3:
		return in.opSha3()
	case MLOAD:
		return in.opMload()
	case MSTORE:
		return in.opMstore()
	case MSTORE8:
		return in.opMstore8()
	case MSIZE:
		in.stack.push(NewWordFromUint64(in.memory.Size()))
		return nil

	// ---- Stack manipulation ------------------------------------------------

	case POP:
		if err := in.requireStack(1); err != nil {
			return err
		}
		in.stack.pop()
		return nil

	case PC:
		in.stack.push(NewWordFromUint64(in.pc))
		return nil

	case GAS:
		g := new(Word)
		g.SetAllOne()
		in.stack.push(g)
		return nil

	case JUMPDEST:
		return nil

	// ---- Environment reads -------------------------------------------------

	case ADDRESS:
		in.push(&in.ctx.To)
		return nil
	case CALLER:
		in.push(&in.ctx.From)
		return nil
	case ORIGIN:
		in.push(&in.ctx.Origin)
		return nil
	case CALLVALUE:
		in.push(&in.ctx.Value)
		return nil
	case GASPRICE:
		in.push(&in.ctx.GasPrice)
		return nil
	case COINBASE:
		in.push(&in.ctx.Coinbase)
		return nil
	case TIMESTAMP:
		in.push(&in.ctx.Timestamp)
		return nil
	case NUMBER:
		in.push(&in.ctx.Number)
		return nil
	case DIFFICULTY:
		in.push(&in.ctx.Difficulty)
		return nil
	case GASLIMIT:
		in.push(&in.ctx.GasLimit)
		return nil
	case CHAINID:
		in.push(&in.ctx.ChainID)
		return nil
	case BASEFEE:
		in.push(&in.ctx.BaseFee)
		return nil
	case SELFBALANCE:
		b := in.world.GetBalance(in.ctx.To)
		in.push(&b)
		return nil
	case BALANCE:
		if err := in.requireStack(1); err != nil {
			return err
		}
		addr := in.stack.pop()
		b := in.world.GetBalance(addr)
		in.stack.push(&b)
		return nil
	case BLOCKHASH:
		// spec.md §9: stubbed to always push zero (the source's no-op is
		// treated as a bug; this is the corrected behavior).
		if err := in.requireStack(1); err != nil {
			return err
		}
		in.stack.pop()
		in.stack.push(new(Word))
		return nil

	// ---- Code & call-data --------------------------------------------------

	case CODESIZE:
		in.stack.push(NewWordFromUint64(uint64(len(in.code))))
		return nil
	case CODECOPY:
		return in.opCodeCopy()
	case CALLDATASIZE:
		in.stack.push(NewWordFromUint64(uint64(len(in.ctx.CallData))))
		return nil
	case CALLDATALOAD:
		return in.opCallDataLoad()
	case CALLDATACOPY:
		return in.opCallDataCopy()
	case EXTCODESIZE:
		if err := in.requireStack(1); err != nil {
			return err
		}
		addr := in.stack.pop()
		code := in.world.GetCode(addr)
		in.stack.push(NewWordFromUint64(uint64(len(code))))
		return nil
	case EXTCODECOPY:
		return in.opExtCodeCopy()
	case EXTCODEHASH:
		if err := in.requireStack(1); err != nil {
			return err
		}
		addr := in.stack.pop()
		if !in.world.Exists(addr) {
			in.stack.push(new(Word))
			return nil
		}
		h := in.world.GetCodeHash(addr)
		in.stack.push(BytesToWord(h[:]))
		return nil
	case RETURNDATASIZE:
		in.stack.push(NewWordFromUint64(uint64(len(in.lastReturnData))))
		return nil
	case RETURNDATACOPY:
		return in.opReturnDataCopy()

	// ---- Storage ------------------------------------------------------------

	case SLOAD:
		if err := in.requireStack(1); err != nil {
			return err
		}
		slot := in.stack.pop()
		v := in.world.SLoad(in.ctx.To, slot)
		in.stack.push(&v)
		return nil
	case SSTORE:
		if err := in.requireWritable(); err != nil {
			return err
		}
		if err := in.requireStack(2); err != nil {
			return err
		}
		slot := in.stack.pop()
		value := in.stack.pop()
		in.world.SStore(in.ctx.To, slot, value)
		return nil

	// ---- Logging --------------------------------------------------------

	default:
		if op.IsDup() {
			return in.opDup(op.DupOrSwapIndex())
		}
		if op.IsSwap() {
			return in.opSwap(op.DupOrSwapIndex())
		}
		if op.IsLog() {
			return in.opLog(op.LogTopics())
		}
		if op == CALL || op == CALLCODE || op == DELEGATECALL || op == STATICCALL {
			return in.opCall(op)
		}
		return ErrInvalidOpcode
	}
}

// push is a tiny convenience wrapper around Stack.push for read-only
// environment fields that must not be aliased onto the stack (push copies
// the value).
func (in *Interpreter) push(w *Word) { in.stack.push(w) }

// ---- Arithmetic/bitwise helpers ---------------------------------------------

// binOp pops a (the top of stack) then b (second from top) and applies
// f(z, a, b), pushing z. This matches go-ethereum's pop()/peek() operand
// order (e.g. opSub: x, y := pop(), peek(); y.Sub(&x, y)), so every
// non-commutative case below reads left-to-right as "top OP second".
func (in *Interpreter) binOp(f func(z, a, b *Word)) error {
	if err := in.requireStack(2); err != nil {
		return err
	}
	a := in.stack.pop()
	b := in.stack.pop()
	z := new(Word)
	f(z, &a, &b)
	in.stack.push(z)
	return nil
}

// triOp pops a (top), b (second), n (third) and applies f(z, a, b, n); used
// by ADDMOD/MULMOD, where the third operand popped is the modulus.
func (in *Interpreter) triOp(f func(z, a, b, n *Word)) error {
	if err := in.requireStack(3); err != nil {
		return err
	}
	a := in.stack.pop()
	b := in.stack.pop()
	n := in.stack.pop()
	z := new(Word)
	f(z, &a, &b, &n)
	in.stack.push(z)
	return nil
}

// unaryOp pops a and applies f(z, a).
func (in *Interpreter) unaryOp(f func(z, a *Word)) error {
	if err := in.requireStack(1); err != nil {
		return err
	}
	a := in.stack.pop()
	z := new(Word)
	f(z, &a)
	in.stack.push(z)
	return nil
}

// boolOp pops a (top) then b (second) and pushes 1 if f(a,b) else 0.
func (in *Interpreter) boolOp(f func(a, b *Word) bool) error {
	if err := in.requireStack(2); err != nil {
		return err
	}
	a := in.stack.pop()
	b := in.stack.pop()
	in.stack.push(boolWord(f(&a, &b)))
	return nil
}

// unaryBoolOp pops a and pushes 1 if f(a) else 0.
func (in *Interpreter) unaryBoolOp(f func(a *Word) bool) error {
	if err := in.requireStack(1); err != nil {
		return err
	}
	a := in.stack.pop()
	in.stack.push(boolWord(f(&a)))
	return nil
}

func boolWord(b bool) *Word {
	w := new(Word)
	if b {
		w.SetOne()
	}
	return w
}

// ---- Stack manipulation: DUP/SWAP -------------------------------------------

func (in *Interpreter) opDup(n int) error {
	if err := in.requireStack(n); err != nil {
		return err
	}
	in.stack.dup(n)
	return nil
}

func (in *Interpreter) opSwap(n int) error {
	if err := in.requireStack(n + 1); err != nil {
		return err
	}
	in.stack.swap(n)
	return nil
}

// ---- PUSH / JUMP / JUMPI -----------------------------------------------------

// opPush reads op's inline immediate (zero-padded if the code blob ends
// early, per spec.md §9's chosen policy) and advances pc by 1+width.
func (in *Interpreter) opPush(op OpCode) error {
	width := op.PushWidth()
	start := in.pc + 1
	var buf [32]byte
	if width > 0 {
		end := start + uint64(width)
		codeLen := uint64(len(in.code))
		if start < codeLen {
			copyEnd := end
			if copyEnd > codeLen {
				copyEnd = codeLen
			}
			copy(buf[32-width:32-width+int(copyEnd-start)], in.code[start:copyEnd])
		}
	}
	in.stack.push(BytesToWord(buf[32-width:]))
	in.pc = start + uint64(width)
	return nil
}

// opJump implements JUMP: pop dest, verify it is a valid JUMPDEST, set pc.
func (in *Interpreter) opJump() error {
	if err := in.requireStack(1); err != nil {
		return err
	}
	dest := in.stack.pop()
	return in.jumpTo(&dest)
}

// opJumpi implements JUMPI: pop dest, cond; jump if cond != 0, else fall
// through to the next instruction.
func (in *Interpreter) opJumpi() error {
	if err := in.requireStack(2); err != nil {
		return err
	}
	dest := in.stack.pop()
	cond := in.stack.pop()
	if cond.IsZero() {
		in.pc++
		return nil
	}
	return in.jumpTo(&dest)
}

func (in *Interpreter) jumpTo(dest *Word) error {
	if !dest.IsUint64() {
		return ErrInvalidJumpDestination
	}
	target := dest.Uint64()
	if target > uint64(len(in.code)) || !in.jumpdests.valid(int(target)) {
		return ErrInvalidJumpDestination
	}
	in.pc = target
	return nil
}

// ---- Memory & hashing ---------------------------------------------------

func (in *Interpreter) opMload() error {
	if err := in.requireStack(1); err != nil {
		return err
	}
	offset := in.stack.pop()
	if !offset.IsUint64() {
		return ErrIntegerOverflow
	}
	w, err := in.memory.GetWord(offset.Uint64())
	if err != nil {
		return err
	}
	in.stack.push(w)
	return nil
}

func (in *Interpreter) opMstore() error {
	if err := in.requireStack(2); err != nil {
		return err
	}
	offset := in.stack.pop()
	value := in.stack.pop()
	if !offset.IsUint64() {
		return ErrIntegerOverflow
	}
	return in.memory.SaveWord(offset.Uint64(), &value)
}

func (in *Interpreter) opMstore8() error {
	if err := in.requireStack(2); err != nil {
		return err
	}
	offset := in.stack.pop()
	value := in.stack.pop()
	if !offset.IsUint64() {
		return ErrIntegerOverflow
	}
	return in.memory.SaveByte(offset.Uint64(), byte(value.Uint64()))
}

func (in *Interpreter) opSha3() error {
	if err := in.requireStack(2); err != nil {
		return err
	}
	offset := in.stack.pop()
	size := in.stack.pop()
	if !offset.IsUint64() || !size.IsUint64() {
		return ErrIntegerOverflow
	}
	data, err := in.memory.GetBytes(offset.Uint64(), size.Uint64())
	if err != nil {
		return err
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	in.stack.push(BytesToWord(h.Sum(nil)))
	return nil
}

// ---- Code / call-data copy helpers --------------------------------------

// copyToMemory pops (destOffset, offset, size), grows memory, and copies
// size bytes from src starting at offset, zero-padded past len(src) —
// shared by CODECOPY, CALLDATACOPY, EXTCODECOPY (addr popped first), and
// RETURNDATACOPY.
func (in *Interpreter) copyToMemory(src []byte) error {
	destOffset := in.stack.pop()
	offset := in.stack.pop()
	size := in.stack.pop()
	if !destOffset.IsUint64() || !offset.IsUint64() || !size.IsUint64() {
		return ErrIntegerOverflow
	}
	buf := sliceZeroPadded(src, offset.Uint64(), size.Uint64())
	return in.memory.SetBytes(destOffset.Uint64(), buf)
}

// sliceZeroPadded returns size bytes of src starting at offset, padding
// with zero past the end of src (and treating an offset beyond src as
// entirely zero).
func sliceZeroPadded(src []byte, offset, size uint64) []byte {
	out := make([]byte, size)
	if offset >= uint64(len(src)) {
		return out
	}
	end := offset + size
	if end > uint64(len(src)) {
		end = uint64(len(src))
	}
	copy(out, src[offset:end])
	return out
}

func (in *Interpreter) opCodeCopy() error {
	if err := in.requireStack(3); err != nil {
		return err
	}
	return in.copyToMemory(in.code)
}

func (in *Interpreter) opCallDataCopy() error {
	if err := in.requireStack(3); err != nil {
		return err
	}
	return in.copyToMemory(in.ctx.CallData)
}

func (in *Interpreter) opReturnDataCopy() error {
	if err := in.requireStack(3); err != nil {
		return err
	}
	return in.copyToMemory(in.lastReturnData)
}

func (in *Interpreter) opExtCodeCopy() error {
	if err := in.requireStack(4); err != nil {
		return err
	}
	addr := in.stack.pop()
	code := in.world.GetCode(addr)
	return in.copyToMemory(code)
}

func (in *Interpreter) opCallDataLoad() error {
	if err := in.requireStack(1); err != nil {
		return err
	}
	offset := in.stack.pop()
	if !offset.IsUint64() {
		in.stack.push(new(Word))
		return nil
	}
	buf := sliceZeroPadded(in.ctx.CallData, offset.Uint64(), 32)
	in.stack.push(BytesToWord(buf))
	return nil
}

// ---- Termination ---------------------------------------------------------

func (in *Interpreter) opReturn() error {
	if err := in.requireStack(2); err != nil {
		return err
	}
	offset := in.stack.pop()
	size := in.stack.pop()
	if !offset.IsUint64() || !size.IsUint64() {
		return ErrIntegerOverflow
	}
	data, err := in.memory.GetBytes(offset.Uint64(), size.Uint64())
	if err != nil {
		return err
	}
	in.returnData = data
	return errHalt
}

func (in *Interpreter) opRevert() error {
	if err := in.requireStack(2); err != nil {
		return err
	}
	offset := in.stack.pop()
	size := in.stack.pop()
	if !offset.IsUint64() || !size.IsUint64() {
		return ErrIntegerOverflow
	}
	data, err := in.memory.GetBytes(offset.Uint64(), size.Uint64())
	if err != nil {
		return err
	}
	in.returnData = data
	return errRevert
}

// ---- Logging --------------------------------------------------------------

func (in *Interpreter) opLog(n int) error {
	if err := in.requireWritable(); err != nil {
		return err
	}
	if err := in.requireStack(2 + n); err != nil {
		return err
	}
	offset := in.stack.pop()
	size := in.stack.pop()
	if !offset.IsUint64() || !size.IsUint64() {
		return ErrIntegerOverflow
	}
	data, err := in.memory.GetBytes(offset.Uint64(), size.Uint64())
	if err != nil {
		return err
	}
	topics := make([]Word, n)
	for i := 0; i < n; i++ {
		topics[i] = in.stack.pop()
	}
	in.logs = append(in.logs, types.LogRecord{
		Address: in.ctx.To,
		Data:    data,
		Topics:  topics,
	})
	return nil
}
