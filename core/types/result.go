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

package types

// ExecutionResult is the observable outcome PublicEntry returns (spec.md
// §4.6 / §6's output envelope): the final stack top-first, whether the
// frame succeeded, the logs emitted in order, and the return bytes.
type ExecutionResult struct {
	Stack      []Word
	Success    bool
	Logs       []LogRecord
	ReturnData []byte
}
