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
	"github.com/blinklabs-io/gostacks/memo"
	"github.com/blinklabs-io/gostacks/pox"
)

// MemoToString renders a token transfer memo as display text
func MemoToString(data []byte) string {
	return memo.Normalize(data)
}

// DecodePoxSyntheticEvent decodes a PoX print event for the named network.
// An (err ...) response is not an event and gives a nil document.
func DecodePoxSyntheticEvent(data []byte, networkName string) (map[string]any, error) {
	network, err := networkByName(networkName)
	if err != nil {
		return nil, err
	}
	event, err := pox.DecodeSyntheticEvent(data, network)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}
	return event.Document(), nil
}
