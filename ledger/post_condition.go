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
	"strconv"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/clarity"
	"github.com/blinklabs-io/gostacks/ledger/common"
	"github.com/blinklabs-io/gostacks/wire"
)

// PostConditionMode decides what happens to asset changes not covered by a
// post-condition
type PostConditionMode uint8

const (
	PostConditionModeAllow PostConditionMode = 0x01
	PostConditionModeDeny  PostConditionMode = 0x02
)

func newPostConditionMode(b byte) (PostConditionMode, error) {
	mode := PostConditionMode(b)
	if mode != PostConditionModeAllow && mode != PostConditionModeDeny {
		return 0, common.NewError(
			common.ErrorKindUnrecognizedTag,
			"invalid post-condition mode 0x%02x",
			b,
		)
	}
	return mode, nil
}

// AssetInfoType is the asset class a post-condition applies to
type AssetInfoType uint8

const (
	AssetInfoTypeSTX         AssetInfoType = 0x00
	AssetInfoTypeFungible    AssetInfoType = 0x01
	AssetInfoTypeNonFungible AssetInfoType = 0x02
)

// PostConditionPrincipalType identifies whose assets a post-condition covers
type PostConditionPrincipalType uint8

const (
	PostConditionPrincipalTypeOrigin   PostConditionPrincipalType = 0x01
	PostConditionPrincipalTypeStandard PostConditionPrincipalType = 0x02
	PostConditionPrincipalTypeContract PostConditionPrincipalType = 0x03
)

// ConditionCode compares the asset change against the post-condition.
// Fungible and non-fungible assets use disjoint code ranges.
type ConditionCode uint8

const (
	ConditionCodeSentEq  ConditionCode = 0x01
	ConditionCodeSentGt  ConditionCode = 0x02
	ConditionCodeSentGe  ConditionCode = 0x03
	ConditionCodeSentLt  ConditionCode = 0x04
	ConditionCodeSentLe  ConditionCode = 0x05
	ConditionCodeSent    ConditionCode = 0x10
	ConditionCodeNotSent ConditionCode = 0x11
)

// IsFungible reports whether the code belongs to the fungible range
func (c ConditionCode) IsFungible() bool {
	return c >= ConditionCodeSentEq && c <= ConditionCodeSentLe
}

// IsNonFungible reports whether the code belongs to the non-fungible range
func (c ConditionCode) IsNonFungible() bool {
	return c == ConditionCodeSent || c == ConditionCodeNotSent
}

// Name returns the code's name as used in documents
func (c ConditionCode) Name() string {
	switch c {
	case ConditionCodeSentEq:
		return "sent_equal_to"
	case ConditionCodeSentGt:
		return "sent_greater_than"
	case ConditionCodeSentGe:
		return "sent_greater_than_or_equal_to"
	case ConditionCodeSentLt:
		return "sent_less_than"
	case ConditionCodeSentLe:
		return "sent_less_than_or_equal_to"
	case ConditionCodeSent:
		return "sent"
	case ConditionCodeNotSent:
		return "not_sent"
	}
	return "unknown"
}

// Smallest post-condition on the wire: STX asset, origin principal, code and
// amount
const minPostConditionSize = 1 + 1 + 1 + 8

// PostConditionPrincipal is the principal whose assets are constrained
type PostConditionPrincipal struct {
	Type PostConditionPrincipalType
	// Unset for the origin principal
	Address address.StacksAddress
	// Set for contract principals
	ContractName string
}

// AssetInfo names a fungible or non-fungible asset
type AssetInfo struct {
	ContractAddress address.StacksAddress
	ContractName    string
	AssetName       string
}

// PostCondition constrains one asset movement of a transaction
type PostCondition struct {
	Type      AssetInfoType
	Principal PostConditionPrincipal
	// Set for fungible and non-fungible conditions
	Asset *AssetInfo
	Code  ConditionCode
	// Set for STX and fungible conditions
	Amount uint64
	// Set for non-fungible conditions, with its raw bytes retained
	AssetValue clarity.Value
}

// DecodePostConditions decodes a standalone post-condition section: the mode
// byte, a u32 count that is ignored, then records until the input is
// exhausted. Input of four bytes or fewer has no records.
func DecodePostConditions(
	data []byte,
) (PostConditionMode, []PostCondition, error) {
	if len(data) == 0 {
		return 0, nil, common.TruncatedError{Need: 1}
	}
	mode, err := newPostConditionMode(data[0])
	if err != nil {
		return 0, nil, err
	}
	ret := []PostCondition{}
	if len(data) <= 4 {
		return mode, ret, nil
	}
	r := wire.NewReader(data)
	if err := r.Advance(5); err != nil {
		return 0, nil, err
	}
	for !r.EOF() {
		pc, err := decodePostCondition(r)
		if err != nil {
			return 0, nil, fmt.Errorf("post-condition %d: %w", len(ret), err)
		}
		ret = append(ret, pc)
	}
	return mode, ret, nil
}

func decodePostConditions(r *wire.Reader) ([]PostCondition, error) {
	count, err := r.ReadCount(minPostConditionSize, MaxBlockSize)
	if err != nil {
		return nil, fmt.Errorf("post-condition count: %w", err)
	}
	ret := make([]PostCondition, 0, count)
	for i := range count {
		pc, err := decodePostCondition(r)
		if err != nil {
			return nil, fmt.Errorf("post-condition %d: %w", i, err)
		}
		ret = append(ret, pc)
	}
	return ret, nil
}

func decodePostCondition(r *wire.Reader) (PostCondition, error) {
	assetType, err := r.ReadByte()
	if err != nil {
		return PostCondition{}, err
	}
	ret := PostCondition{
		Type: AssetInfoType(assetType),
	}
	switch ret.Type {
	case AssetInfoTypeSTX, AssetInfoTypeFungible, AssetInfoTypeNonFungible:
	default:
		return PostCondition{}, common.NewError(
			common.ErrorKindUnrecognizedTag,
			"unrecognized asset info id 0x%02x",
			assetType,
		)
	}
	if ret.Principal, err = decodePostConditionPrincipal(r); err != nil {
		return PostCondition{}, err
	}
	if ret.Type != AssetInfoTypeSTX {
		asset, err := decodeAssetInfo(r)
		if err != nil {
			return PostCondition{}, err
		}
		ret.Asset = &asset
	}
	if ret.Type == AssetInfoTypeNonFungible {
		value, err := clarity.DecodeFromReader(r, clarity.WithBytes())
		if err != nil {
			return PostCondition{}, fmt.Errorf("asset value: %w", err)
		}
		ret.AssetValue = value
		if ret.Code, err = readConditionCode(r, ConditionCode.IsNonFungible); err != nil {
			return PostCondition{}, err
		}
		return ret, nil
	}
	if ret.Code, err = readConditionCode(r, ConditionCode.IsFungible); err != nil {
		return PostCondition{}, err
	}
	if ret.Amount, err = r.ReadUint64(); err != nil {
		return PostCondition{}, err
	}
	return ret, nil
}

func readConditionCode(
	r *wire.Reader,
	valid func(ConditionCode) bool,
) (ConditionCode, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	code := ConditionCode(b)
	if !valid(code) {
		return 0, common.NewError(
			common.ErrorKindUnrecognizedTag,
			"unrecognized condition code 0x%02x",
			b,
		)
	}
	return code, nil
}

func decodePostConditionPrincipal(r *wire.Reader) (PostConditionPrincipal, error) {
	principalType, err := r.ReadByte()
	if err != nil {
		return PostConditionPrincipal{}, err
	}
	ret := PostConditionPrincipal{
		Type: PostConditionPrincipalType(principalType),
	}
	switch ret.Type {
	case PostConditionPrincipalTypeOrigin:
		return ret, nil
	case PostConditionPrincipalTypeStandard:
		if ret.Address, err = readAddress(r); err != nil {
			return PostConditionPrincipal{}, err
		}
		return ret, nil
	case PostConditionPrincipalTypeContract:
		if ret.Address, err = readAddress(r); err != nil {
			return PostConditionPrincipal{}, err
		}
		ret.ContractName, err = clarity.ReadContractName(
			r,
			clarity.ContractNameMaxLength,
		)
		if err != nil {
			return PostConditionPrincipal{}, fmt.Errorf("contract name: %w", err)
		}
		return ret, nil
	}
	return PostConditionPrincipal{}, common.NewError(
		common.ErrorKindUnrecognizedTag,
		"unrecognized post-condition principal id 0x%02x",
		principalType,
	)
}

func decodeAssetInfo(r *wire.Reader) (AssetInfo, error) {
	var ret AssetInfo
	var err error
	if ret.ContractAddress, err = readAddress(r); err != nil {
		return AssetInfo{}, err
	}
	ret.ContractName, err = clarity.ReadContractName(
		r,
		clarity.ContractNameMaxLength,
	)
	if err != nil {
		return AssetInfo{}, fmt.Errorf("asset contract name: %w", err)
	}
	if ret.AssetName, err = clarity.ReadClarityName(r); err != nil {
		return AssetInfo{}, fmt.Errorf("asset name: %w", err)
	}
	return ret, nil
}

// Document renders the post-condition for JSON, CBOR and YAML output
func (pc *PostCondition) Document() map[string]any {
	principal := map[string]any{
		"type_id": uint8(pc.Principal.Type),
	}
	if pc.Principal.Type != PostConditionPrincipalTypeOrigin {
		addressDocument(principal, pc.Principal.Address)
	}
	if pc.Principal.Type == PostConditionPrincipalTypeContract {
		principal["contract_name"] = pc.Principal.ContractName
	}
	ret := map[string]any{
		"asset_info_id":  uint8(pc.Type),
		"principal":      principal,
		"condition_code": uint8(pc.Code),
		"condition_name": pc.Code.Name(),
	}
	if pc.Asset != nil {
		ret["asset"] = map[string]any{
			"contract_address": pc.Asset.ContractAddress.String(),
			"contract_name":    pc.Asset.ContractName,
			"asset_name":       pc.Asset.AssetName,
		}
	}
	if pc.Type == AssetInfoTypeNonFungible {
		ret["asset_value"] = clarity.Document(pc.AssetValue, false)
	} else {
		ret["amount"] = strconv.FormatUint(pc.Amount, 10)
	}
	return ret
}

// PostConditionsDocument renders a standalone post-condition section
func PostConditionsDocument(
	mode PostConditionMode,
	postConditions []PostCondition,
) map[string]any {
	items := make([]any, 0, len(postConditions))
	for i := range postConditions {
		items = append(items, postConditions[i].Document())
	}
	return map[string]any{
		"post_condition_mode": uint8(mode),
		"post_conditions":     items,
	}
}
