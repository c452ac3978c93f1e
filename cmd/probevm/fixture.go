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

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"

	evm "github.com/probechain/go-probe-evm"
	"github.com/probechain/go-probe-evm/core/types"
)

// fixtureTx mirrors spec.md §6's input envelope tx fields, hex-encoded for
// JSON transport: `[to, from, origin, gasprice, value, data]`.
type fixtureTx struct {
	To       string `json:"to"`
	From     string `json:"from"`
	Origin   string `json:"origin"`
	GasPrice string `json:"gasprice"`
	Value    string `json:"value"`
	Data     string `json:"data"`
}

// fixtureBlock mirrors spec.md §6's block fields:
// `[basefee, coinbase, timestamp, number, difficulty, gaslimit, chainid]`.
type fixtureBlock struct {
	BaseFee    string `json:"basefee"`
	Coinbase   string `json:"coinbase"`
	Timestamp  string `json:"timestamp"`
	Number     string `json:"number"`
	Difficulty string `json:"difficulty"`
	GasLimit   string `json:"gaslimit"`
	ChainID    string `json:"chainid"`
}

// fixtureAccount is one entry of the pre-state map.
type fixtureAccount struct {
	Nonce   uint64 `json:"nonce"`
	Balance string `json:"balance"`
	Code    string `json:"code"`
}

// fixture is the full JSON document the CLI reads: code plus the input
// envelope (spec.md §6).
type fixture struct {
	Code     string                    `json:"code"`
	Tx       fixtureTx                 `json:"tx"`
	Block    fixtureBlock              `json:"block"`
	PreState map[string]fixtureAccount `json:"prestate"`
}

// outputEnvelope is the JSON rendering of types.ExecutionResult (spec.md
// §6's output envelope), with every Word hex-encoded.
type outputEnvelope struct {
	Stack      []string          `json:"stack"`
	Success    bool              `json:"success"`
	Logs       []outputLogRecord `json:"logs"`
	ReturnData string            `json:"return_data"`
}

type outputLogRecord struct {
	Address string   `json:"address"`
	Topics  []string `json:"topics"`
	Data    string   `json:"data"`
}

func decodeHexWord(s string) (evm.Word, error) {
	b, err := decodeHexBytes(s)
	if err != nil {
		return evm.Word{}, err
	}
	var w uint256.Int
	w.SetBytes(b)
	return w, nil
}

func decodeHexBytes(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return hex.DecodeString(s)
}

func encodeHexWord(w evm.Word) string {
	b := w.Bytes32()
	return "0x" + hex.EncodeToString(b[:])
}

func encodeHexBytes(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// loadFixture parses raw JSON into the tx/block contexts and pre-state list
// Execute needs, returning decode errors with enough context to locate the
// offending field.
func loadFixture(raw []byte) ([]byte, types.TxContext, types.BlockContext, []evm.PreStateAccount, error) {
	var f fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, types.TxContext{}, types.BlockContext{}, nil, fmt.Errorf("parsing fixture: %w", err)
	}

	code, err := decodeHexBytes(f.Code)
	if err != nil {
		return nil, types.TxContext{}, types.BlockContext{}, nil, fmt.Errorf("code: %w", err)
	}

	tx, err := decodeTx(f.Tx)
	if err != nil {
		return nil, types.TxContext{}, types.BlockContext{}, nil, err
	}

	block, err := decodeBlock(f.Block)
	if err != nil {
		return nil, types.TxContext{}, types.BlockContext{}, nil, err
	}

	var preState []evm.PreStateAccount
	for addrHex, acct := range f.PreState {
		addr, err := decodeHexWord(addrHex)
		if err != nil {
			return nil, types.TxContext{}, types.BlockContext{}, nil, fmt.Errorf("prestate address %q: %w", addrHex, err)
		}
		balance, err := decodeHexWord(acct.Balance)
		if err != nil {
			return nil, types.TxContext{}, types.BlockContext{}, nil, fmt.Errorf("prestate %q balance: %w", addrHex, err)
		}
		code, err := decodeHexBytes(acct.Code)
		if err != nil {
			return nil, types.TxContext{}, types.BlockContext{}, nil, fmt.Errorf("prestate %q code: %w", addrHex, err)
		}
		preState = append(preState, evm.PreStateAccount{
			Address: addr,
			Nonce:   acct.Nonce,
			Balance: balance,
			Code:    code,
		})
	}

	return code, tx, block, preState, nil
}

func decodeTx(t fixtureTx) (types.TxContext, error) {
	to, err := decodeHexWord(t.To)
	if err != nil {
		return types.TxContext{}, fmt.Errorf("tx.to: %w", err)
	}
	from, err := decodeHexWord(t.From)
	if err != nil {
		return types.TxContext{}, fmt.Errorf("tx.from: %w", err)
	}
	origin, err := decodeHexWord(t.Origin)
	if err != nil {
		return types.TxContext{}, fmt.Errorf("tx.origin: %w", err)
	}
	gasPrice, err := decodeHexWord(t.GasPrice)
	if err != nil {
		return types.TxContext{}, fmt.Errorf("tx.gasprice: %w", err)
	}
	value, err := decodeHexWord(t.Value)
	if err != nil {
		return types.TxContext{}, fmt.Errorf("tx.value: %w", err)
	}
	data, err := decodeHexBytes(t.Data)
	if err != nil {
		return types.TxContext{}, fmt.Errorf("tx.data: %w", err)
	}
	return types.TxContext{
		To:       to,
		From:     from,
		Origin:   origin,
		GasPrice: gasPrice,
		Value:    value,
		CallData: data,
	}, nil
}

func decodeBlock(b fixtureBlock) (types.BlockContext, error) {
	baseFee, err := decodeHexWord(b.BaseFee)
	if err != nil {
		return types.BlockContext{}, fmt.Errorf("block.basefee: %w", err)
	}
	coinbase, err := decodeHexWord(b.Coinbase)
	if err != nil {
		return types.BlockContext{}, fmt.Errorf("block.coinbase: %w", err)
	}
	timestamp, err := decodeHexWord(b.Timestamp)
	if err != nil {
		return types.BlockContext{}, fmt.Errorf("block.timestamp: %w", err)
	}
	number, err := decodeHexWord(b.Number)
	if err != nil {
		return types.BlockContext{}, fmt.Errorf("block.number: %w", err)
	}
	difficulty, err := decodeHexWord(b.Difficulty)
	if err != nil {
		return types.BlockContext{}, fmt.Errorf("block.difficulty: %w", err)
	}
	gasLimit, err := decodeHexWord(b.GasLimit)
	if err != nil {
		return types.BlockContext{}, fmt.Errorf("block.gaslimit: %w", err)
	}
	chainID, err := decodeHexWord(b.ChainID)
	if err != nil {
		return types.BlockContext{}, fmt.Errorf("block.chainid: %w", err)
	}
	return types.BlockContext{
		BaseFee:    baseFee,
		Coinbase:   coinbase,
		Timestamp:  timestamp,
		Number:     number,
		Difficulty: difficulty,
		GasLimit:   gasLimit,
		ChainID:    chainID,
	}, nil
}

func renderResult(res types.ExecutionResult) outputEnvelope {
	out := outputEnvelope{
		Success:    res.Success,
		ReturnData: encodeHexBytes(res.ReturnData),
	}
	for _, w := range res.Stack {
		out.Stack = append(out.Stack, encodeHexWord(w))
	}
	for _, l := range res.Logs {
		rec := outputLogRecord{
			Address: encodeHexWord(l.Address),
			Data:    encodeHexBytes(l.Data),
		}
		for _, t := range l.Topics {
			rec.Topics = append(rec.Topics, encodeHexWord(t))
		}
		out.Logs = append(out.Logs, rec)
	}
	return out
}
