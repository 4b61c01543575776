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
	"github.com/blinklabs-io/gostacks/utils"
	"github.com/blinklabs-io/gostacks/vrf"
	"github.com/blinklabs-io/gostacks/wire"
)

// PayloadType is the wire id of a transaction payload
type PayloadType uint8

const (
	PayloadTypeTokenTransfer          PayloadType = 0
	PayloadTypeSmartContract          PayloadType = 1
	PayloadTypeContractCall           PayloadType = 2
	PayloadTypePoisonMicroblock       PayloadType = 3
	PayloadTypeCoinbase               PayloadType = 4
	PayloadTypeCoinbaseToAltRecipient PayloadType = 5
	PayloadTypeVersionedSmartContract PayloadType = 6
	PayloadTypeTenureChange           PayloadType = 7
	PayloadTypeNakamotoCoinbase       PayloadType = 8
)

func (t PayloadType) String() string {
	switch t {
	case PayloadTypeTokenTransfer:
		return "TokenTransfer"
	case PayloadTypeSmartContract:
		return "SmartContract"
	case PayloadTypeContractCall:
		return "ContractCall"
	case PayloadTypePoisonMicroblock:
		return "PoisonMicroblock"
	case PayloadTypeCoinbase:
		return "Coinbase"
	case PayloadTypeCoinbaseToAltRecipient:
		return "CoinbaseToAltRecipient"
	case PayloadTypeVersionedSmartContract:
		return "VersionedSmartContract"
	case PayloadTypeTenureChange:
		return "TenureChange"
	case PayloadTypeNakamotoCoinbase:
		return "NakamotoCoinbase"
	}
	return "Unknown"
}

// ClarityVersion is the language version of a versioned smart contract
type ClarityVersion uint8

const (
	ClarityVersion1 ClarityVersion = 1
	ClarityVersion2 ClarityVersion = 2
	ClarityVersion3 ClarityVersion = 3
	ClarityVersion4 ClarityVersion = 4
)

// TenureChangeCause is the reason a tenure change was issued
type TenureChangeCause uint8

const (
	TenureChangeCauseBlockFound TenureChangeCause = 0
	TenureChangeCauseExtended   TenureChangeCause = 1
)

const (
	MemoSize           = 34
	CoinbaseBufferSize = 32
	VrfProofSize       = vrf.ProofSize
)

// Payload is the action carried by a transaction
type Payload interface {
	Type() PayloadType
	Document() map[string]any
}

type TokenTransferPayload struct {
	Recipient Principal
	Amount    uint64
	Memo      [MemoSize]byte
}

func (*TokenTransferPayload) Type() PayloadType { return PayloadTypeTokenTransfer }

func (p *TokenTransferPayload) Document() map[string]any {
	return map[string]any{
		"type_id":   uint8(p.Type()),
		"recipient": p.Recipient.document(),
		"amount":    strconv.FormatUint(p.Amount, 10),
		"memo_hex":  utils.HexPrefixed(p.Memo[:]),
	}
}

// SmartContractPayload deploys a contract. The code body is kept as the raw
// bytes found on the wire.
type SmartContractPayload struct {
	ContractName string
	CodeBody     []byte
}

func (*SmartContractPayload) Type() PayloadType { return PayloadTypeSmartContract }

func (p *SmartContractPayload) Document() map[string]any {
	ret := map[string]any{
		"type_id": uint8(p.Type()),
	}
	p.contractFields(ret)
	return ret
}

func (p *SmartContractPayload) contractFields(ret map[string]any) {
	ret["contract_name"] = p.ContractName
	ret["code_body"] = utils.LossyUTF8String(p.CodeBody)
}

type VersionedSmartContractPayload struct {
	SmartContractPayload
	ClarityVersion ClarityVersion
}

func (*VersionedSmartContractPayload) Type() PayloadType {
	return PayloadTypeVersionedSmartContract
}

func (p *VersionedSmartContractPayload) Document() map[string]any {
	ret := map[string]any{
		"type_id":         uint8(p.Type()),
		"clarity_version": uint8(p.ClarityVersion),
	}
	p.contractFields(ret)
	return ret
}

// ContractCallPayload calls a public function. Each argument keeps its raw
// bytes, and the argument section (count included) is kept as a whole.
type ContractCallPayload struct {
	Address      address.StacksAddress
	ContractName string
	FunctionName string
	FunctionArgs []clarity.Value
	argsRaw      []byte
}

func (*ContractCallPayload) Type() PayloadType { return PayloadTypeContractCall }

// FunctionArgsBytes returns the serialized argument section
func (p *ContractCallPayload) FunctionArgsBytes() []byte {
	return p.argsRaw
}

func (p *ContractCallPayload) Document() map[string]any {
	args := make([]any, 0, len(p.FunctionArgs))
	for _, arg := range p.FunctionArgs {
		args = append(args, clarity.Document(arg, false))
	}
	ret := map[string]any{
		"type_id":              uint8(p.Type()),
		"contract_name":        p.ContractName,
		"function_name":        p.FunctionName,
		"function_args":        args,
		"function_args_buffer": utils.HexPrefixed(p.argsRaw),
	}
	addressDocument(ret, p.Address)
	return ret
}

type PoisonMicroblockPayload struct {
	Header1 MicroblockHeader
	Header2 MicroblockHeader
}

func (*PoisonMicroblockPayload) Type() PayloadType { return PayloadTypePoisonMicroblock }

func (p *PoisonMicroblockPayload) Document() map[string]any {
	return map[string]any{
		"type_id":             uint8(p.Type()),
		"microblock_header_1": p.Header1.document(),
		"microblock_header_2": p.Header2.document(),
	}
}

type CoinbasePayload struct {
	Buffer [CoinbaseBufferSize]byte
}

func (*CoinbasePayload) Type() PayloadType { return PayloadTypeCoinbase }

func (p *CoinbasePayload) Document() map[string]any {
	return map[string]any{
		"type_id":        uint8(p.Type()),
		"payload_buffer": utils.HexPrefixed(p.Buffer[:]),
	}
}

type CoinbaseToAltRecipientPayload struct {
	Buffer    [CoinbaseBufferSize]byte
	Recipient Principal
}

func (*CoinbaseToAltRecipientPayload) Type() PayloadType {
	return PayloadTypeCoinbaseToAltRecipient
}

func (p *CoinbaseToAltRecipientPayload) Document() map[string]any {
	return map[string]any{
		"type_id":        uint8(p.Type()),
		"payload_buffer": utils.HexPrefixed(p.Buffer[:]),
		"recipient":      p.Recipient.document(),
	}
}

type TenureChangePayload struct {
	TenureConsensusHash     common.ConsensusHash
	PrevTenureConsensusHash common.ConsensusHash
	BurnViewConsensusHash   common.ConsensusHash
	PreviousTenureEnd       common.Sha512Trunc256
	PreviousTenureBlocks    uint32
	Cause                   TenureChangeCause
	PubkeyHash              common.Hash160
}

func (*TenureChangePayload) Type() PayloadType { return PayloadTypeTenureChange }

func (p *TenureChangePayload) Document() map[string]any {
	return map[string]any{
		"type_id":                    uint8(p.Type()),
		"tenure_consensus_hash":      utils.HexPrefixed(p.TenureConsensusHash[:]),
		"prev_tenure_consensus_hash": utils.HexPrefixed(p.PrevTenureConsensusHash[:]),
		"burn_view_consensus_hash":   utils.HexPrefixed(p.BurnViewConsensusHash[:]),
		"previous_tenure_end":        utils.HexPrefixed(p.PreviousTenureEnd[:]),
		"previous_tenure_blocks":     p.PreviousTenureBlocks,
		"cause":                      uint8(p.Cause),
		"pubkey_hash":                utils.HexPrefixed(p.PubkeyHash[:]),
	}
}

// IsMinerKey reports whether pubKey is the key whose hash160 the tenure
// change commits to
func (p *TenureChangePayload) IsMinerKey(pubKey []byte) bool {
	return address.Hash160(pubKey) == p.PubkeyHash
}

// VrfProof is the ECVRF proof carried by a Nakamoto coinbase. It is stored
// as found on the wire and only checked when parsed.
type VrfProof [VrfProofSize]byte

// Parse decodes the proof into its components
func (p VrfProof) Parse() (*vrf.Proof, error) {
	return vrf.ParseProof(p[:])
}

// Output returns the VRF output hash committed to by the proof
func (p VrfProof) Output() ([]byte, error) {
	return vrf.ProofToHash(p[:])
}

// Verify checks the proof against the miner's VRF public key and the
// sortition seed it was computed over, and returns the VRF output
func (p VrfProof) Verify(publicKey []byte, seed []byte) ([]byte, error) {
	return vrf.VerifyAndHash(publicKey, p[:], seed)
}

type NakamotoCoinbasePayload struct {
	Buffer [CoinbaseBufferSize]byte
	// Nil when the reward goes to the miner
	Recipient *Principal
	VrfProof  VrfProof
}

func (*NakamotoCoinbasePayload) Type() PayloadType { return PayloadTypeNakamotoCoinbase }

func (p *NakamotoCoinbasePayload) Document() map[string]any {
	ret := map[string]any{
		"type_id":        uint8(p.Type()),
		"payload_buffer": utils.HexPrefixed(p.Buffer[:]),
		"recipient":      nil,
		"vrf_proof":      utils.HexPrefixed(p.VrfProof[:]),
	}
	if p.Recipient != nil {
		ret["recipient"] = p.Recipient.document()
	}
	return ret
}

func decodePayload(r *wire.Reader) (Payload, error) {
	typeId, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	payloadType := PayloadType(typeId)
	var ret Payload
	switch payloadType {
	case PayloadTypeTokenTransfer:
		ret, err = decodeTokenTransfer(r)
	case PayloadTypeSmartContract:
		var p SmartContractPayload
		p, err = decodeSmartContract(r)
		ret = &p
	case PayloadTypeContractCall:
		ret, err = decodeContractCall(r)
	case PayloadTypePoisonMicroblock:
		ret, err = decodePoisonMicroblock(r)
	case PayloadTypeCoinbase:
		p := &CoinbasePayload{}
		err = r.ReadInto(p.Buffer[:])
		ret = p
	case PayloadTypeCoinbaseToAltRecipient:
		ret, err = decodeCoinbaseToAltRecipient(r)
	case PayloadTypeVersionedSmartContract:
		ret, err = decodeVersionedSmartContract(r)
	case PayloadTypeTenureChange:
		ret, err = decodeTenureChange(r)
	case PayloadTypeNakamotoCoinbase:
		ret, err = decodeNakamotoCoinbase(r)
	default:
		return nil, common.NewError(
			common.ErrorKindUnrecognizedTag,
			"unknown payload id 0x%02x",
			typeId,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("%s payload: %w", payloadType.String(), err)
	}
	return ret, nil
}

func decodeTokenTransfer(r *wire.Reader) (*TokenTransferPayload, error) {
	ret := &TokenTransferPayload{}
	var err error
	if ret.Recipient, err = readPrincipal(r); err != nil {
		return nil, err
	}
	if ret.Amount, err = r.ReadUint64(); err != nil {
		return nil, err
	}
	if err := r.ReadInto(ret.Memo[:]); err != nil {
		return nil, err
	}
	return ret, nil
}

func decodeSmartContract(r *wire.Reader) (SmartContractPayload, error) {
	name, err := clarity.ReadClarityName(r)
	if err != nil {
		return SmartContractPayload{}, fmt.Errorf("contract name: %w", err)
	}
	// The code body length is bounded by the block size and by the input
	bodyLen, err := r.ReadCount(1, MaxBlockSize)
	if err != nil {
		return SmartContractPayload{}, fmt.Errorf("code body: %w", err)
	}
	body, err := r.ReadBytes(bodyLen)
	if err != nil {
		return SmartContractPayload{}, err
	}
	return SmartContractPayload{
		ContractName: name,
		CodeBody:     body,
	}, nil
}

func decodeVersionedSmartContract(
	r *wire.Reader,
) (*VersionedSmartContractPayload, error) {
	version, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	clarityVersion := ClarityVersion(version)
	if clarityVersion < ClarityVersion1 || clarityVersion > ClarityVersion4 {
		return nil, common.NewError(
			common.ErrorKindUnrecognizedTag,
			"unknown clarity version %d",
			version,
		)
	}
	contract, err := decodeSmartContract(r)
	if err != nil {
		return nil, err
	}
	return &VersionedSmartContractPayload{
		SmartContractPayload: contract,
		ClarityVersion:       clarityVersion,
	}, nil
}

func decodeContractCall(r *wire.Reader) (*ContractCallPayload, error) {
	ret := &ContractCallPayload{}
	var err error
	if ret.Address, err = readAddress(r); err != nil {
		return nil, fmt.Errorf("contract address: %w", err)
	}
	if ret.ContractName, err = clarity.ReadClarityName(r); err != nil {
		return nil, fmt.Errorf("contract name: %w", err)
	}
	if ret.FunctionName, err = clarity.ReadClarityName(r); err != nil {
		return nil, fmt.Errorf("function name: %w", err)
	}
	argsStart := r.Position()
	// Every Clarity value is at least its prefix byte
	count, err := r.ReadCount(1, clarity.MaxValueSize)
	if err != nil {
		return nil, fmt.Errorf("function arg count: %w", err)
	}
	ret.FunctionArgs = make([]clarity.Value, 0, count)
	for i := range count {
		arg, err := clarity.DecodeFromReader(r, clarity.WithBytes())
		if err != nil {
			return nil, fmt.Errorf("function arg %d: %w", i, err)
		}
		ret.FunctionArgs = append(ret.FunctionArgs, arg)
	}
	ret.argsRaw = r.Since(argsStart)
	return ret, nil
}

func decodePoisonMicroblock(r *wire.Reader) (*PoisonMicroblockPayload, error) {
	header1, err := decodeMicroblockHeader(r)
	if err != nil {
		return nil, fmt.Errorf("microblock header 1: %w", err)
	}
	header2, err := decodeMicroblockHeader(r)
	if err != nil {
		return nil, fmt.Errorf("microblock header 2: %w", err)
	}
	return &PoisonMicroblockPayload{
		Header1: header1,
		Header2: header2,
	}, nil
}

func decodeCoinbaseToAltRecipient(
	r *wire.Reader,
) (*CoinbaseToAltRecipientPayload, error) {
	ret := &CoinbaseToAltRecipientPayload{}
	if err := r.ReadInto(ret.Buffer[:]); err != nil {
		return nil, err
	}
	recipient, err := readPrincipal(r)
	if err != nil {
		return nil, fmt.Errorf("recipient: %w", err)
	}
	ret.Recipient = recipient
	return ret, nil
}

func decodeTenureChange(r *wire.Reader) (*TenureChangePayload, error) {
	ret := &TenureChangePayload{}
	if err := r.ReadInto(ret.TenureConsensusHash[:]); err != nil {
		return nil, err
	}
	if err := r.ReadInto(ret.PrevTenureConsensusHash[:]); err != nil {
		return nil, err
	}
	if err := r.ReadInto(ret.BurnViewConsensusHash[:]); err != nil {
		return nil, err
	}
	if err := r.ReadInto(ret.PreviousTenureEnd[:]); err != nil {
		return nil, err
	}
	var err error
	if ret.PreviousTenureBlocks, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	cause, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	ret.Cause = TenureChangeCause(cause)
	if ret.Cause != TenureChangeCauseBlockFound &&
		ret.Cause != TenureChangeCauseExtended {
		return nil, common.NewError(
			common.ErrorKindUnrecognizedTag,
			"invalid tenure change cause %d",
			cause,
		)
	}
	if err := r.ReadInto(ret.PubkeyHash[:]); err != nil {
		return nil, err
	}
	return ret, nil
}

func decodeNakamotoCoinbase(r *wire.Reader) (*NakamotoCoinbasePayload, error) {
	ret := &NakamotoCoinbasePayload{}
	if err := r.ReadInto(ret.Buffer[:]); err != nil {
		return nil, err
	}
	recipient, err := readOptionalPrincipal(r)
	if err != nil {
		return nil, fmt.Errorf("recipient: %w", err)
	}
	ret.Recipient = recipient
	if err := r.ReadInto(ret.VrfProof[:]); err != nil {
		return nil, err
	}
	return ret, nil
}
