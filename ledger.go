// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stacks

import (
	"github.com/blinklabs-io/gostacks/ledger"
)

// DecodeTransaction decodes a serialized transaction into a document
func DecodeTransaction(data []byte) (map[string]any, error) {
	tx, err := ledger.DecodeTransaction(data)
	if err != nil {
		return nil, err
	}
	return tx.Document(), nil
}

// DecodePostConditions decodes a post-condition mode byte followed by a
// count-prefixed run of post-conditions
func DecodePostConditions(data []byte) (map[string]any, error) {
	mode, pcs, err := ledger.DecodePostConditions(data)
	if err != nil {
		return nil, err
	}
	return ledger.PostConditionsDocument(mode, pcs), nil
}

// DecodeNakamotoBlock decodes a Nakamoto block and its transactions
func DecodeNakamotoBlock(data []byte) (map[string]any, error) {
	block, err := ledger.DecodeNakamotoBlock(data)
	if err != nil {
		return nil, err
	}
	return block.Document(), nil
}

// DecodeNakamotoBlockHeader decodes a standalone Nakamoto block header
func DecodeNakamotoBlockHeader(data []byte) (map[string]any, error) {
	header, err := ledger.DecodeNakamotoBlockHeader(data)
	if err != nil {
		return nil, err
	}
	return header.Document(), nil
}

// DecodeStacksBlock decodes a Stacks 2.x block and its transactions
func DecodeStacksBlock(data []byte) (map[string]any, error) {
	block, err := ledger.DecodeStacksBlock(data)
	if err != nil {
		return nil, err
	}
	return block.Document(), nil
}
