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

import "github.com/blinklabs-io/gostacks/ledger/common"

// Network definitions
var (
	NetworkMainnet = common.NetworkMainnet
	NetworkTestnet = common.NetworkTestnet
	NetworkDevnet  = common.NetworkDevnet
	NetworkMocknet = common.NetworkMocknet

	NetworkInvalid = common.NetworkInvalid
)

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	return common.NetworkByName(name)
}

// networkByName is NetworkByName with an error for unknown names
func networkByName(name string) (Network, error) {
	network := common.NetworkByName(name)
	if network.Id == common.NetworkIdInvalid {
		return network, common.NewError(
			common.ErrorKindUnrecognizedTag,
			"unknown network %q",
			name,
		)
	}
	return network, nil
}

// Network represents a Stacks network
type Network = common.Network
