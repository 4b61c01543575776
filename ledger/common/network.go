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

package common

// TransactionVersion is the first byte of a serialized transaction
type TransactionVersion uint8

const (
	TransactionVersionMainnet TransactionVersion = 0x00
	TransactionVersionTestnet TransactionVersion = 0x80
)

// IsMainnet reports whether the high bit of the version byte is clear
func (v TransactionVersion) IsMainnet() bool {
	return v&0x80 == 0
}

func (v TransactionVersion) String() string {
	if v.IsMainnet() {
		return "mainnet"
	}
	return "testnet"
}

const (
	ChainIdMainnet uint32 = 0x00000001
	ChainIdTestnet uint32 = 0x80000000
)

type NetworkId uint8

const (
	NetworkIdInvalid NetworkId = iota
	NetworkIdMainnet
	NetworkIdTestnet
	NetworkIdDevnet
	NetworkIdMocknet
)

// Network definitions
var (
	NetworkMainnet = Network{
		Id:                 NetworkIdMainnet,
		Name:               "mainnet",
		TransactionVersion: TransactionVersionMainnet,
		ChainId:            ChainIdMainnet,
		BitcoinHrp:         "bc",
	}
	NetworkTestnet = Network{
		Id:                 NetworkIdTestnet,
		Name:               "testnet",
		TransactionVersion: TransactionVersionTestnet,
		ChainId:            ChainIdTestnet,
		BitcoinHrp:         "bcrt",
	}
	NetworkDevnet = Network{
		Id:                 NetworkIdDevnet,
		Name:               "devnet",
		TransactionVersion: TransactionVersionTestnet,
		ChainId:            ChainIdTestnet,
		BitcoinHrp:         "bcrt",
	}
	NetworkMocknet = Network{
		Id:                 NetworkIdMocknet,
		Name:               "mocknet",
		TransactionVersion: TransactionVersionTestnet,
		ChainId:            ChainIdTestnet,
		BitcoinHrp:         "bcrt",
	}

	NetworkInvalid = Network{
		Id:   NetworkIdInvalid,
		Name: "invalid",
	} // NetworkInvalid is used as a return value for lookup functions when a network isn't found
)

// List of valid networks for use in lookup functions
var networks = []Network{
	NetworkMainnet,
	NetworkTestnet,
	NetworkDevnet,
	NetworkMocknet,
}

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	for _, network := range networks {
		if network.Name == name {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkById returns a predefined network by ID
func NetworkById(id NetworkId) Network {
	for _, network := range networks {
		if network.Id == id {
			return network
		}
	}
	return NetworkInvalid
}

// Network represents a Stacks network
type Network struct {
	Id                 NetworkId
	Name               string
	TransactionVersion TransactionVersion
	ChainId            uint32
	// Human readable part used for segwit addresses of PoX reward recipients
	BitcoinHrp string
}

func (n Network) String() string {
	return n.Name
}

// IsMainnet reports whether the network uses mainnet address versions
func (n Network) IsMainnet() bool {
	return n.Id == NetworkIdMainnet
}
