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

// Package pox decodes the synthetic print events emitted by the PoX
// contracts and renders PoX reward addresses as Bitcoin addresses.
package pox

import (
	"fmt"
	"math/big"

	"github.com/blinklabs-io/gostacks/clarity"
	"github.com/blinklabs-io/gostacks/ledger/common"
	"github.com/blinklabs-io/gostacks/utils"
)

// EventName is the "name" field of a synthetic event
type EventName string

const (
	EventNameHandleUnlock                  EventName = "handle-unlock"
	EventNameStackStx                      EventName = "stack-stx"
	EventNameStackIncrease                 EventName = "stack-increase"
	EventNameStackExtend                   EventName = "stack-extend"
	EventNameDelegateStx                   EventName = "delegate-stx"
	EventNameDelegateStackStx              EventName = "delegate-stack-stx"
	EventNameDelegateStackIncrease         EventName = "delegate-stack-increase"
	EventNameDelegateStackExtend           EventName = "delegate-stack-extend"
	EventNameStackAggregationCommit        EventName = "stack-aggregation-commit"
	EventNameStackAggregationCommitIndexed EventName = "stack-aggregation-commit-indexed"
	EventNameStackAggregationIncrease      EventName = "stack-aggregation-increase"
	EventNameRevokeDelegateStx             EventName = "revoke-delegate-stx"
)

// Event is a decoded synthetic event. The balance fields reflect the
// account state after the event, patched from the values printed by the
// contract.
type Event struct {
	Name                  EventName
	Stacker               string
	Locked                *big.Int
	Balance               *big.Int
	BurnchainUnlockHeight *big.Int
	// Empty when there is no pox-addr or it cannot be encoded
	PoxAddr string
	// The pox-addr version followed by its hash bytes, nil when absent
	PoxAddrRaw []byte
	Data       EventData
}

// EventData holds the fields specific to one event name
type EventData interface {
	document(ret map[string]any)
}

// CycleRange is carried by every event kind except handle-unlock. Either
// bound may be nil.
type CycleRange struct {
	EndCycleId   *big.Int
	StartCycleId *big.Int
}

type HandleUnlockData struct {
	FirstCycleLocked   *big.Int
	FirstUnlockedCycle *big.Int
}

type StackStxData struct {
	LockAmount       *big.Int
	LockPeriod       *big.Int
	StartBurnHeight  *big.Int
	UnlockBurnHeight *big.Int
	SignerKey        []byte
	CycleRange
}

type StackIncreaseData struct {
	IncreaseBy  *big.Int
	TotalLocked *big.Int
	SignerKey   []byte
	CycleRange
}

type StackExtendData struct {
	ExtendCount      *big.Int
	UnlockBurnHeight *big.Int
	SignerKey        []byte
	CycleRange
}

type DelegateStxData struct {
	AmountUstx *big.Int
	DelegateTo string
	// Nil when the delegation does not expire
	UnlockBurnHeight *big.Int
	CycleRange
}

type DelegateStackStxData struct {
	LockAmount       *big.Int
	UnlockBurnHeight *big.Int
	StartBurnHeight  *big.Int
	LockPeriod       *big.Int
	Delegator        string
	CycleRange
}

type DelegateStackIncreaseData struct {
	IncreaseBy  *big.Int
	TotalLocked *big.Int
	Delegator   string
	CycleRange
}

type DelegateStackExtendData struct {
	UnlockBurnHeight *big.Int
	ExtendCount      *big.Int
	Delegator        string
	CycleRange
}

// StackAggregationCommitData is shared by the plain and indexed commit
// events
type StackAggregationCommitData struct {
	RewardCycle *big.Int
	AmountUstx  *big.Int
	SignerKey   []byte
	CycleRange
}

type StackAggregationIncreaseData struct {
	RewardCycle *big.Int
	AmountUstx  *big.Int
	CycleRange
}

type RevokeDelegateStxData struct {
	DelegateTo string
	CycleRange
}

var maxUint128 = new(big.Int).Sub(
	new(big.Int).Lsh(big.NewInt(1), 128),
	big.NewInt(1),
)

func saturatingAdd(a, b *big.Int) *big.Int {
	ret := new(big.Int).Add(a, b)
	if ret.Cmp(maxUint128) > 0 {
		return ret.Set(maxUint128)
	}
	return ret
}

func saturatingSub(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Sub(a, b)
}

// DecodeSyntheticEvent decodes a serialized Clarity value into an event. An
// (err ...) response is not an event and gives a nil event with no error.
func DecodeSyntheticEvent(data []byte, network common.Network) (*Event, error) {
	value, _, err := clarity.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("synthetic event value: %w", err)
	}
	return EventFromValue(value, network)
}

// EventFromValue interprets a decoded Clarity value as a synthetic event
func EventFromValue(value clarity.Value, network common.Network) (*Event, error) {
	var inner clarity.Value
	switch tmp := value.(type) {
	case clarity.ResponseErr:
		return nil, nil
	case clarity.ResponseOk:
		inner = tmp.Value
	default:
		return nil, unexpectedType("synthetic event", "ok response", value)
	}
	opData, ok := inner.(clarity.Tuple)
	if !ok {
		return nil, unexpectedType("synthetic event", "tuple", inner)
	}
	base := &tupleReader{tuple: opData}
	event := &Event{
		Stacker:               base.principal("stacker"),
		Locked:                base.uint("locked"),
		Balance:               base.uint("balance"),
		BurnchainUnlockHeight: base.uint("burnchain-unlock-height"),
	}
	nameValue := base.field("name")
	eventDataValue := base.field("data")
	if base.err != nil {
		return nil, base.err
	}
	name, ok := nameValue.(clarity.StringASCII)
	if !ok {
		return nil, unexpectedType("event name", "string-ascii", nameValue)
	}
	event.Name = EventName(name.Data)
	eventData, ok := eventDataValue.(clarity.Tuple)
	if !ok {
		return nil, unexpectedType("event data", "tuple", eventDataValue)
	}
	if poxAddr, ok := eventData.Get("pox-addr"); ok {
		var err error
		event.PoxAddr, event.PoxAddrRaw, err = decodePoxAddr(poxAddr, network)
		if err != nil {
			return nil, err
		}
	}
	fields := &tupleReader{tuple: eventData}
	switch event.Name {
	case EventNameHandleUnlock:
		event.Data = HandleUnlockData{
			FirstCycleLocked:   fields.uint("first-cycle-locked"),
			FirstUnlockedCycle: fields.uint("first-unlocked-cycle"),
		}
		if fields.err == nil {
			event.Balance = saturatingAdd(event.Balance, event.Locked)
		}
	case EventNameStackStx:
		data := StackStxData{
			LockAmount:       fields.uint("lock-amount"),
			LockPeriod:       fields.uint("lock-period"),
			StartBurnHeight:  fields.uint("start-burn-height"),
			UnlockBurnHeight: fields.uint("unlock-burn-height"),
			SignerKey:        fields.optionalBuffer("signer-key"),
			CycleRange:       fields.cycleRange(),
		}
		if fields.err == nil {
			event.BurnchainUnlockHeight = data.UnlockBurnHeight
			event.Balance = saturatingSub(event.Balance, data.LockAmount)
			event.Locked = data.LockAmount
		}
		event.Data = data
	case EventNameStackIncrease:
		data := StackIncreaseData{
			IncreaseBy:  fields.uint("increase-by"),
			TotalLocked: fields.uint("total-locked"),
			SignerKey:   fields.optionalBuffer("signer-key"),
			CycleRange:  fields.cycleRange(),
		}
		if fields.err == nil {
			event.Balance = saturatingSub(event.Balance, data.IncreaseBy)
			event.Locked = saturatingAdd(event.Locked, data.IncreaseBy)
		}
		event.Data = data
	case EventNameStackExtend:
		data := StackExtendData{
			ExtendCount:      fields.uint("extend-count"),
			UnlockBurnHeight: fields.uint("unlock-burn-height"),
			SignerKey:        fields.optionalBuffer("signer-key"),
			CycleRange:       fields.cycleRange(),
		}
		if fields.err == nil {
			event.BurnchainUnlockHeight = data.UnlockBurnHeight
		}
		event.Data = data
	case EventNameDelegateStx:
		data := DelegateStxData{
			AmountUstx: fields.uint("amount-ustx"),
			DelegateTo: fields.principal("delegate-to"),
			// Present but possibly none
			UnlockBurnHeight: fields.requiredOptionalUint("unlock-burn-height"),
			CycleRange:       fields.cycleRange(),
		}
		if fields.err == nil && data.UnlockBurnHeight != nil {
			event.BurnchainUnlockHeight = data.UnlockBurnHeight
		}
		event.Data = data
	case EventNameDelegateStackStx:
		data := DelegateStackStxData{
			LockAmount:       fields.uint("lock-amount"),
			UnlockBurnHeight: fields.uint("unlock-burn-height"),
			StartBurnHeight:  fields.uint("start-burn-height"),
			LockPeriod:       fields.uint("lock-period"),
			Delegator:        fields.principal("delegator"),
			CycleRange:       fields.cycleRange(),
		}
		if fields.err == nil {
			event.BurnchainUnlockHeight = data.UnlockBurnHeight
			event.Balance = saturatingSub(event.Balance, data.LockAmount)
			event.Locked = data.LockAmount
		}
		event.Data = data
	case EventNameDelegateStackIncrease:
		data := DelegateStackIncreaseData{
			IncreaseBy:  fields.uint("increase-by"),
			TotalLocked: fields.uint("total-locked"),
			Delegator:   fields.principal("delegator"),
			CycleRange:  fields.cycleRange(),
		}
		if fields.err == nil {
			event.Balance = saturatingSub(event.Balance, data.IncreaseBy)
			event.Locked = saturatingAdd(event.Locked, data.IncreaseBy)
		}
		event.Data = data
	case EventNameDelegateStackExtend:
		data := DelegateStackExtendData{
			UnlockBurnHeight: fields.uint("unlock-burn-height"),
			ExtendCount:      fields.uint("extend-count"),
			Delegator:        fields.principal("delegator"),
			CycleRange:       fields.cycleRange(),
		}
		if fields.err == nil {
			event.BurnchainUnlockHeight = data.UnlockBurnHeight
		}
		event.Data = data
	case EventNameStackAggregationCommit, EventNameStackAggregationCommitIndexed:
		event.Data = StackAggregationCommitData{
			RewardCycle: fields.uint("reward-cycle"),
			AmountUstx:  fields.uint("amount-ustx"),
			SignerKey:   fields.optionalBuffer("signer-key"),
			CycleRange:  fields.cycleRange(),
		}
	case EventNameStackAggregationIncrease:
		event.Data = StackAggregationIncreaseData{
			RewardCycle: fields.uint("reward-cycle"),
			AmountUstx:  fields.uint("amount-ustx"),
			CycleRange:  fields.cycleRange(),
		}
	case EventNameRevokeDelegateStx:
		event.Data = RevokeDelegateStxData{
			DelegateTo: fields.principal("delegate-to"),
			CycleRange: fields.cycleRange(),
		}
	default:
		return nil, common.NewError(
			common.ErrorKindUnrecognizedTag,
			"unexpected synthetic event name %q",
			string(name.Data),
		)
	}
	if fields.err != nil {
		return nil, fmt.Errorf("%s event: %w", event.Name, fields.err)
	}
	return event, nil
}

// decodePoxAddr accepts a {version, hashbytes} tuple, optionally wrapped in
// an optional. Encoding failures keep the raw bytes and drop the address.
func decodePoxAddr(
	value clarity.Value,
	network common.Network,
) (string, []byte, error) {
	switch tmp := value.(type) {
	case clarity.OptionalNone:
		return "", nil, nil
	case clarity.OptionalSome:
		value = tmp.Value
	}
	addrTuple, ok := value.(clarity.Tuple)
	if !ok {
		return "", nil, unexpectedType("pox-addr", "tuple", value)
	}
	fields := &tupleReader{tuple: addrTuple}
	version := fields.buffer("version")
	hashBytes := fields.buffer("hashbytes")
	if fields.err != nil {
		return "", nil, fmt.Errorf("pox-addr: %w", fields.err)
	}
	raw := make([]byte, 0, len(version)+len(hashBytes))
	raw = append(raw, version...)
	raw = append(raw, hashBytes...)
	if len(version) == 0 {
		return "", raw, nil
	}
	addr, err := BitcoinAddress(AddressVersion(version[0]), hashBytes, network)
	if err != nil {
		return "", raw, nil
	}
	return addr, raw, nil
}

// tupleReader extracts typed tuple fields, keeping the first error
type tupleReader struct {
	tuple clarity.Tuple
	err   error
}

func (t *tupleReader) field(name string) clarity.Value {
	if t.err != nil {
		return nil
	}
	value, ok := t.tuple.Get(name)
	if !ok {
		t.err = common.NewError(
			common.ErrorKindStructuralInvariantViolation,
			"missing tuple field %q",
			name,
		)
		return nil
	}
	return value
}

func (t *tupleReader) fail(name string, expected string, value clarity.Value) {
	t.err = unexpectedType(fmt.Sprintf("field %q", name), expected, value)
}

func (t *tupleReader) uint(name string) *big.Int {
	value := t.field(name)
	if t.err != nil {
		return nil
	}
	tmp, ok := value.(clarity.UInt)
	if !ok {
		t.fail(name, "uint", value)
		return nil
	}
	return tmp.Value
}

func (t *tupleReader) buffer(name string) []byte {
	value := t.field(name)
	if t.err != nil {
		return nil
	}
	tmp, ok := value.(clarity.Buffer)
	if !ok {
		t.fail(name, "buffer", value)
		return nil
	}
	return tmp.Data
}

func (t *tupleReader) principal(name string) string {
	value := t.field(name)
	if t.err != nil {
		return ""
	}
	switch value.(type) {
	case clarity.PrincipalStandard, clarity.PrincipalContract:
	default:
		t.fail(name, "principal", value)
		return ""
	}
	ret, err := clarity.PrincipalString(value)
	if err != nil {
		t.err = err
		return ""
	}
	return ret
}

// optionalUint accepts an absent field, none, (some uint) or a bare uint
func (t *tupleReader) optionalUint(name string) *big.Int {
	if t.err != nil {
		return nil
	}
	value, ok := t.tuple.Get(name)
	if !ok {
		return nil
	}
	return t.optionalUintValue(name, value)
}

// requiredOptionalUint is optionalUint for a field that must be present
func (t *tupleReader) requiredOptionalUint(name string) *big.Int {
	value := t.field(name)
	if t.err != nil {
		return nil
	}
	return t.optionalUintValue(name, value)
}

func (t *tupleReader) optionalUintValue(name string, value clarity.Value) *big.Int {
	switch tmp := value.(type) {
	case clarity.OptionalNone:
		return nil
	case clarity.UInt:
		return tmp.Value
	case clarity.OptionalSome:
		inner, ok := tmp.Value.(clarity.UInt)
		if !ok {
			t.fail(name, "uint inside some", tmp.Value)
			return nil
		}
		return inner.Value
	}
	t.fail(name, "optional uint", value)
	return nil
}

// optionalBuffer accepts an absent field, none, (some buffer) or a bare
// buffer. A present buffer is never nil.
func (t *tupleReader) optionalBuffer(name string) []byte {
	if t.err != nil {
		return nil
	}
	value, ok := t.tuple.Get(name)
	if !ok {
		return nil
	}
	switch tmp := value.(type) {
	case clarity.OptionalNone:
		return nil
	case clarity.Buffer:
		return append([]byte{}, tmp.Data...)
	case clarity.OptionalSome:
		inner, ok := tmp.Value.(clarity.Buffer)
		if !ok {
			t.fail(name, "buffer inside some", tmp.Value)
			return nil
		}
		return append([]byte{}, inner.Data...)
	}
	t.fail(name, "optional buffer", value)
	return nil
}

func (t *tupleReader) cycleRange() CycleRange {
	return CycleRange{
		EndCycleId:   t.optionalUint("end-cycle-id"),
		StartCycleId: t.optionalUint("start-cycle-id"),
	}
}

func unexpectedType(what string, expected string, value clarity.Value) error {
	got := "nothing"
	if value != nil {
		got = value.Prefix().String()
	}
	return common.NewError(
		common.ErrorKindUnrecognizedTag,
		"unexpected %s type: expected %s, got %s",
		what,
		expected,
		got,
	)
}

// Document renders the event for JSON, CBOR and YAML output. Integers are
// decimal strings and absent values are nil.
func (e *Event) Document() map[string]any {
	ret := map[string]any{
		"stacker":                 e.Stacker,
		"locked":                  e.Locked.String(),
		"balance":                 e.Balance.String(),
		"burnchain_unlock_height": e.BurnchainUnlockHeight.String(),
		"pox_addr":                nil,
		"pox_addr_raw":            nil,
		"name":                    string(e.Name),
	}
	if e.PoxAddr != "" {
		ret["pox_addr"] = e.PoxAddr
	}
	if e.PoxAddrRaw != nil {
		ret["pox_addr_raw"] = utils.HexPrefixed(e.PoxAddrRaw)
	}
	data := map[string]any{}
	if e.Data != nil {
		e.Data.document(data)
	}
	ret["data"] = data
	return ret
}

func optionalString(v *big.Int) any {
	if v == nil {
		return nil
	}
	return v.String()
}

func optionalHex(b []byte) any {
	if b == nil {
		return nil
	}
	return utils.HexPrefixed(b)
}

func (c CycleRange) document(ret map[string]any) {
	ret["end_cycle_id"] = optionalString(c.EndCycleId)
	ret["start_cycle_id"] = optionalString(c.StartCycleId)
}

func (d HandleUnlockData) document(ret map[string]any) {
	ret["first_cycle_locked"] = d.FirstCycleLocked.String()
	ret["first_unlocked_cycle"] = d.FirstUnlockedCycle.String()
}

func (d StackStxData) document(ret map[string]any) {
	ret["lock_amount"] = d.LockAmount.String()
	ret["lock_period"] = d.LockPeriod.String()
	ret["start_burn_height"] = d.StartBurnHeight.String()
	ret["unlock_burn_height"] = d.UnlockBurnHeight.String()
	ret["signer_key"] = optionalHex(d.SignerKey)
	d.CycleRange.document(ret)
}

func (d StackIncreaseData) document(ret map[string]any) {
	ret["increase_by"] = d.IncreaseBy.String()
	ret["total_locked"] = d.TotalLocked.String()
	ret["signer_key"] = optionalHex(d.SignerKey)
	d.CycleRange.document(ret)
}

func (d StackExtendData) document(ret map[string]any) {
	ret["extend_count"] = d.ExtendCount.String()
	ret["unlock_burn_height"] = d.UnlockBurnHeight.String()
	ret["signer_key"] = optionalHex(d.SignerKey)
	d.CycleRange.document(ret)
}

func (d DelegateStxData) document(ret map[string]any) {
	ret["amount_ustx"] = d.AmountUstx.String()
	ret["delegate_to"] = d.DelegateTo
	ret["unlock_burn_height"] = optionalString(d.UnlockBurnHeight)
	d.CycleRange.document(ret)
}

func (d DelegateStackStxData) document(ret map[string]any) {
	ret["lock_amount"] = d.LockAmount.String()
	ret["unlock_burn_height"] = d.UnlockBurnHeight.String()
	ret["start_burn_height"] = d.StartBurnHeight.String()
	ret["lock_period"] = d.LockPeriod.String()
	ret["delegator"] = d.Delegator
	d.CycleRange.document(ret)
}

func (d DelegateStackIncreaseData) document(ret map[string]any) {
	ret["increase_by"] = d.IncreaseBy.String()
	ret["total_locked"] = d.TotalLocked.String()
	ret["delegator"] = d.Delegator
	d.CycleRange.document(ret)
}

func (d DelegateStackExtendData) document(ret map[string]any) {
	ret["unlock_burn_height"] = d.UnlockBurnHeight.String()
	ret["extend_count"] = d.ExtendCount.String()
	ret["delegator"] = d.Delegator
	d.CycleRange.document(ret)
}

func (d StackAggregationCommitData) document(ret map[string]any) {
	ret["reward_cycle"] = d.RewardCycle.String()
	ret["amount_ustx"] = d.AmountUstx.String()
	ret["signer_key"] = optionalHex(d.SignerKey)
	d.CycleRange.document(ret)
}

func (d StackAggregationIncreaseData) document(ret map[string]any) {
	ret["reward_cycle"] = d.RewardCycle.String()
	ret["amount_ustx"] = d.AmountUstx.String()
	d.CycleRange.document(ret)
}

func (d RevokeDelegateStxData) document(ret map[string]any) {
	ret["delegate_to"] = d.DelegateTo
	d.CycleRange.document(ret)
}
