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
package clarity

import (
	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/ledger/common"
)

// PrincipalString returns the address form of a principal value. A 21-byte
// buffer is read as a version byte followed by a hash160.
func PrincipalString(v Value) (string, error) {
	if v == nil {
		return "", common.NewError(
			common.ErrorKindUnrecognizedTag,
			"missing principal value",
		)
	}
	switch tmp := v.(type) {
	case PrincipalStandard:
		return tmp.Address.Encode()
	case PrincipalContract:
		issuer, err := tmp.Issuer.Encode()
		if err != nil {
			return "", err
		}
		return issuer + "." + tmp.Name, nil
	case Buffer:
		if len(tmp.Data) == 1+common.Hash160Size {
			addr, err := address.NewStacksAddress(tmp.Data[0], tmp.Data[1:])
			if err != nil {
				return "", err
			}
			return addr.Encode()
		}
	}
	return "", common.NewError(
		common.ErrorKindUnrecognizedTag,
		"value of type %s is not a principal",
		v.Prefix().String(),
	)
}
