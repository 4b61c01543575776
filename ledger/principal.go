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

package ledger

import (
	"fmt"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/clarity"
	"github.com/blinklabs-io/gostacks/ledger/common"
	"github.com/blinklabs-io/gostacks/utils"
	"github.com/blinklabs-io/gostacks/wire"
)

// Principal is the recipient of a token transfer or coinbase. It uses the
// Clarity principal prefixes on the wire.
type Principal struct {
	Address address.StacksAddress
	// Empty for standard principals
	ContractName string
}

// IsContract reports whether the principal names a contract
func (p Principal) IsContract() bool {
	return p.ContractName != ""
}

// TypeId returns the Clarity type prefix of the principal
func (p Principal) TypeId() clarity.TypePrefix {
	if p.IsContract() {
		return clarity.TypePrefixPrincipalContract
	}
	return clarity.TypePrefixPrincipalStandard
}

func (p Principal) String() string {
	if p.IsContract() {
		return p.Address.String() + "." + p.ContractName
	}
	return p.Address.String()
}

func readAddress(r *wire.Reader) (address.StacksAddress, error) {
	version, err := r.ReadByte()
	if err != nil {
		return address.StacksAddress{}, err
	}
	hash, err := r.ReadBytes(common.Hash160Size)
	if err != nil {
		return address.StacksAddress{}, err
	}
	return address.NewStacksAddress(version, hash)
}

func readPrincipal(r *wire.Reader) (Principal, error) {
	prefix, err := r.ReadByte()
	if err != nil {
		return Principal{}, err
	}
	return readPrincipalBody(r, clarity.TypePrefix(prefix))
}

func readPrincipalBody(r *wire.Reader, prefix clarity.TypePrefix) (Principal, error) {
	switch prefix {
	case clarity.TypePrefixPrincipalStandard:
		addr, err := readAddress(r)
		if err != nil {
			return Principal{}, fmt.Errorf("principal: %w", err)
		}
		return Principal{Address: addr}, nil
	case clarity.TypePrefixPrincipalContract:
		addr, err := readAddress(r)
		if err != nil {
			return Principal{}, fmt.Errorf("principal: %w", err)
		}
		name, err := clarity.ReadClarityName(r)
		if err != nil {
			return Principal{}, fmt.Errorf("principal contract name: %w", err)
		}
		return Principal{Address: addr, ContractName: name}, nil
	}
	return Principal{}, common.NewError(
		common.ErrorKindUnrecognizedTag,
		"bad principal prefix 0x%02x",
		uint8(prefix),
	)
}

// readOptionalPrincipal reads a principal wrapped in a Clarity optional
func readOptionalPrincipal(r *wire.Reader) (*Principal, error) {
	prefix, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch clarity.TypePrefix(prefix) {
	case clarity.TypePrefixOptionalNone:
		return nil, nil
	case clarity.TypePrefixOptionalSome:
		ret, err := readPrincipal(r)
		if err != nil {
			return nil, err
		}
		return &ret, nil
	}
	return nil, common.NewError(
		common.ErrorKindUnrecognizedTag,
		"bad optional principal prefix 0x%02x",
		prefix,
	)
}

func addressDocument(ret map[string]any, addr address.StacksAddress) {
	ret["address_version"] = addr.Version
	ret["address_hash_bytes"] = utils.HexPrefixed(addr.Hash160[:])
	ret["address"] = addr.String()
}

func (p Principal) document() map[string]any {
	ret := map[string]any{
		"type_id": uint8(p.TypeId()),
	}
	addressDocument(ret, p.Address)
	if p.IsContract() {
		ret["contract_name"] = p.ContractName
	}
	return ret
}
