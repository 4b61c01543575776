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

package pox_test

import (
	"math/big"
	"testing"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/clarity"
	"github.com/blinklabs-io/gostacks/internal/test"
	"github.com/blinklabs-io/gostacks/ledger/common"
	"github.com/blinklabs-io/gostacks/pox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	p2pkhHash  = "f8917303bfa8ef24f292e8fa1419b20460ba064d"
	p2wpkhHash = "751e76e8199196d454941c45d1b3a323f1433bd6"
	p2wshHash  = "1863143c14c5166804bd19203356da136c985678cd4d27a1b8c6329604903262"
	p2trHash   = "a60869f0dbcf1dc659c9cecbee090449d6a21c3d5c31a381c39af694d10c8b3e"

	stackerAddr   = "SP117F7X5RJ0J1AK0R67B0PGP9EPQFFSCVQNASZBC"
	delegatorAddr = "SP1Z92MPDQEWZXW36VX71Q25HKF5K2EPCJ304F275"
)

func TestBitcoinAddress(t *testing.T) {
	testDefs := []struct {
		name     string
		version  pox.AddressVersion
		hash     string
		network  common.Network
		expected string
	}{
		{
			name:     "P2PKHMainnet",
			version:  pox.AddressVersionP2PKH,
			hash:     p2pkhHash,
			network:  common.NetworkMainnet,
			expected: "1PfJpZsjreyVrqeoAfabrRwwjQyoSQMmHH",
		},
		{
			name:     "P2PKHTestnet",
			version:  pox.AddressVersionP2PKH,
			hash:     p2pkhHash,
			network:  common.NetworkTestnet,
			expected: "n4BG7cxifgQkdx8QtEYygMAGbQaWMHrFhs",
		},
		{
			name:     "P2SHMainnet",
			version:  pox.AddressVersionP2SH,
			hash:     p2pkhHash,
			network:  common.NetworkMainnet,
			expected: "3QMKk7NBQZHsx1MEHmFCH4JsswGWzThUUc",
		},
		{
			name:     "P2SHTestnet",
			version:  pox.AddressVersionP2SH,
			hash:     p2pkhHash,
			network:  common.NetworkTestnet,
			expected: "2NFuXorJD21oE9nymxts4u1J96HUgqKKGEG",
		},
		{
			name:     "P2SHP2WPKHMainnet",
			version:  pox.AddressVersionP2SHP2WPKH,
			hash:     p2pkhHash,
			network:  common.NetworkMainnet,
			expected: "3QMKk7NBQZHsx1MEHmFCH4JsswGWzThUUc",
		},
		{
			name:     "P2SHP2WSHDevnet",
			version:  pox.AddressVersionP2SHP2WSH,
			hash:     p2pkhHash,
			network:  common.NetworkDevnet,
			expected: "2NFuXorJD21oE9nymxts4u1J96HUgqKKGEG",
		},
		{
			name:     "P2WPKHMainnet",
			version:  pox.AddressVersionP2WPKH,
			hash:     p2wpkhHash,
			network:  common.NetworkMainnet,
			expected: "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4",
		},
		{
			name:     "P2WPKHTestnet",
			version:  pox.AddressVersionP2WPKH,
			hash:     p2wpkhHash,
			network:  common.NetworkTestnet,
			expected: "bcrt1qw508d6qejxtdg4y5r3zarvary0c5xw7kygt080",
		},
		{
			name:     "P2WSHMainnet",
			version:  pox.AddressVersionP2WSH,
			hash:     p2wshHash,
			network:  common.NetworkMainnet,
			expected: "bc1qrp33g0q5c5txsp9arysrx4k6zdkfs4nce4xj0gdcccefvpysxf3qccfmv3",
		},
		{
			name:     "P2TRMainnet",
			version:  pox.AddressVersionP2TR,
			hash:     p2trHash,
			network:  common.NetworkMainnet,
			expected: "bc1p5cyxnuxmeuwuvkwfem97uzgyf8t2y8patsc68qwrntmff5gv3vlqa7yvjt",
		},
		{
			name:     "P2TRMocknet",
			version:  pox.AddressVersionP2TR,
			hash:     p2trHash,
			network:  common.NetworkMocknet,
			expected: "bcrt1p5cyxnuxmeuwuvkwfem97uzgyf8t2y8patsc68qwrntmff5gv3vlq80c9a7",
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			addr, err := pox.BitcoinAddress(
				testDef.version,
				test.DecodeHexString(testDef.hash),
				testDef.network,
			)
			require.NoError(t, err)
			assert.Equal(t, testDef.expected, addr)
		})
	}
}

func TestBitcoinAddressErrors(t *testing.T) {
	_, err := pox.BitcoinAddress(7, test.DecodeHexString(p2pkhHash), common.NetworkMainnet)
	assert.ErrorIs(t, err, common.ErrInvalidVersion)
	_, err = pox.BitcoinAddress(
		pox.AddressVersionP2WPKH,
		test.DecodeHexString("0102030405"),
		common.NetworkMainnet,
	)
	assert.ErrorIs(t, err, common.ErrLengthMismatch)
	_, err = pox.BitcoinAddress(pox.AddressVersionP2TR, []byte{0x01}, common.NetworkMainnet)
	assert.ErrorIs(t, err, common.ErrLengthMismatch)
}

func uintValue(v uint64) clarity.Value {
	return clarity.NewUInt(v)
}

func field(name string, value clarity.Value) clarity.TupleField {
	return clarity.TupleField{Name: name, Value: value}
}

func standardPrincipal(t *testing.T, addr string) clarity.Value {
	t.Helper()
	parsed, err := address.ParseStacksAddress(addr)
	require.NoError(t, err)
	return clarity.PrincipalStandard{Address: parsed}
}

func contractPrincipal(t *testing.T, addr string, name string) clarity.Value {
	t.Helper()
	parsed, err := address.ParseStacksAddress(addr)
	require.NoError(t, err)
	return clarity.PrincipalContract{Issuer: parsed, Name: name}
}

func poxAddrTuple(version string, hash string) clarity.Value {
	return clarity.NewTuple(
		field("version", clarity.NewBuffer(test.DecodeHexString(version))),
		field("hashbytes", clarity.NewBuffer(test.DecodeHexString(hash))),
	)
}

// eventValue builds the printed value with locked 1000, balance 5000 and an
// unlock height of 100
func eventValue(t *testing.T, name string, data ...clarity.TupleField) clarity.Value {
	t.Helper()
	return clarity.NewOk(clarity.NewTuple(
		field("stacker", standardPrincipal(t, stackerAddr)),
		field("locked", uintValue(1000)),
		field("balance", uintValue(5000)),
		field("burnchain-unlock-height", uintValue(100)),
		field("name", clarity.NewStringASCII(name)),
		field("data", clarity.NewTuple(data...)),
	))
}

func encodeEvent(t *testing.T, value clarity.Value) []byte {
	t.Helper()
	data, err := clarity.Encode(value)
	require.NoError(t, err)
	return data
}

func TestDecodeSyntheticEvent(t *testing.T) {
	signerKey := "02" + "ab" + "cdef"
	testDefs := []struct {
		name         string
		eventName    pox.EventName
		data         func(t *testing.T) []clarity.TupleField
		locked       string
		balance      string
		unlockHeight string
		poxAddr      any
		poxAddrRaw   any
		expectedData map[string]any
	}{
		{
			name:      "HandleUnlock",
			eventName: pox.EventNameHandleUnlock,
			data: func(t *testing.T) []clarity.TupleField {
				return []clarity.TupleField{
					field("first-cycle-locked", uintValue(10)),
					field("first-unlocked-cycle", uintValue(12)),
				}
			},
			locked:       "1000",
			balance:      "6000",
			unlockHeight: "100",
			expectedData: map[string]any{
				"first_cycle_locked":   "10",
				"first_unlocked_cycle": "12",
			},
		},
		{
			name:      "StackStx",
			eventName: pox.EventNameStackStx,
			data: func(t *testing.T) []clarity.TupleField {
				return []clarity.TupleField{
					field("lock-amount", uintValue(2000)),
					field("lock-period", uintValue(3)),
					field("start-burn-height", uintValue(200)),
					field("unlock-burn-height", uintValue(900)),
					field("pox-addr", poxAddrTuple("00", p2pkhHash)),
					field("signer-key", clarity.NewSome(clarity.NewBuffer(test.DecodeHexString(signerKey)))),
					field("end-cycle-id", clarity.NewSome(uintValue(21))),
					field("start-cycle-id", uintValue(18)),
				}
			},
			locked:       "2000",
			balance:      "3000",
			unlockHeight: "900",
			poxAddr:      "1PfJpZsjreyVrqeoAfabrRwwjQyoSQMmHH",
			poxAddrRaw:   "0x00" + p2pkhHash,
			expectedData: map[string]any{
				"lock_amount":        "2000",
				"lock_period":        "3",
				"start_burn_height":  "200",
				"unlock_burn_height": "900",
				"signer_key":         "0x" + signerKey,
				"end_cycle_id":       "21",
				"start_cycle_id":     "18",
			},
		},
		{
			name:      "StackIncrease",
			eventName: pox.EventNameStackIncrease,
			data: func(t *testing.T) []clarity.TupleField {
				return []clarity.TupleField{
					field("increase-by", uintValue(500)),
					field("total-locked", uintValue(1500)),
					field("signer-key", clarity.NewBuffer(test.DecodeHexString(signerKey))),
					field("pox-addr", clarity.NewSome(poxAddrTuple("04", p2wpkhHash))),
				}
			},
			locked:       "1500",
			balance:      "4500",
			unlockHeight: "100",
			poxAddr:      "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4",
			poxAddrRaw:   "0x04" + p2wpkhHash,
			expectedData: map[string]any{
				"increase_by":    "500",
				"total_locked":   "1500",
				"signer_key":     "0x" + signerKey,
				"end_cycle_id":   nil,
				"start_cycle_id": nil,
			},
		},
		{
			name:      "StackExtend",
			eventName: pox.EventNameStackExtend,
			data: func(t *testing.T) []clarity.TupleField {
				return []clarity.TupleField{
					field("extend-count", uintValue(2)),
					field("unlock-burn-height", uintValue(1200)),
					field("signer-key", clarity.OptionalNone{}),
					field("pox-addr", clarity.OptionalNone{}),
					field("end-cycle-id", clarity.OptionalNone{}),
				}
			},
			locked:       "1000",
			balance:      "5000",
			unlockHeight: "1200",
			expectedData: map[string]any{
				"extend_count":       "2",
				"unlock_burn_height": "1200",
				"signer_key":         nil,
				"end_cycle_id":       nil,
				"start_cycle_id":     nil,
			},
		},
		{
			name:      "DelegateStx",
			eventName: pox.EventNameDelegateStx,
			data: func(t *testing.T) []clarity.TupleField {
				return []clarity.TupleField{
					field("amount-ustx", uintValue(7000)),
					field("delegate-to", contractPrincipal(t, delegatorAddr, "pox-pool")),
					field("unlock-burn-height", clarity.OptionalNone{}),
				}
			},
			locked:       "1000",
			balance:      "5000",
			unlockHeight: "100",
			expectedData: map[string]any{
				"amount_ustx":        "7000",
				"delegate_to":        delegatorAddr + ".pox-pool",
				"unlock_burn_height": nil,
				"end_cycle_id":       nil,
				"start_cycle_id":     nil,
			},
		},
		{
			name:      "DelegateStxWithExpiry",
			eventName: pox.EventNameDelegateStx,
			data: func(t *testing.T) []clarity.TupleField {
				return []clarity.TupleField{
					field("amount-ustx", uintValue(7000)),
					field("delegate-to", standardPrincipal(t, delegatorAddr)),
					field("unlock-burn-height", clarity.NewSome(uintValue(800))),
				}
			},
			locked:       "1000",
			balance:      "5000",
			unlockHeight: "800",
			expectedData: map[string]any{
				"amount_ustx":        "7000",
				"delegate_to":        delegatorAddr,
				"unlock_burn_height": "800",
				"end_cycle_id":       nil,
				"start_cycle_id":     nil,
			},
		},
		{
			name:      "DelegateStackStx",
			eventName: pox.EventNameDelegateStackStx,
			data: func(t *testing.T) []clarity.TupleField {
				return []clarity.TupleField{
					field("lock-amount", uintValue(2500)),
					field("unlock-burn-height", uintValue(950)),
					field("start-burn-height", uintValue(210)),
					field("lock-period", uintValue(6)),
					field("delegator", standardPrincipal(t, delegatorAddr)),
					field("pox-addr", poxAddrTuple("06", p2trHash)),
				}
			},
			locked:       "2500",
			balance:      "2500",
			unlockHeight: "950",
			poxAddr:      "bc1p5cyxnuxmeuwuvkwfem97uzgyf8t2y8patsc68qwrntmff5gv3vlqa7yvjt",
			poxAddrRaw:   "0x06" + p2trHash,
			expectedData: map[string]any{
				"lock_amount":        "2500",
				"unlock_burn_height": "950",
				"start_burn_height":  "210",
				"lock_period":        "6",
				"delegator":          delegatorAddr,
				"end_cycle_id":       nil,
				"start_cycle_id":     nil,
			},
		},
		{
			name:      "DelegateStackIncrease",
			eventName: pox.EventNameDelegateStackIncrease,
			data: func(t *testing.T) []clarity.TupleField {
				return []clarity.TupleField{
					field("increase-by", uintValue(100)),
					field("total-locked", uintValue(1100)),
					field("delegator", standardPrincipal(t, delegatorAddr)),
				}
			},
			locked:       "1100",
			balance:      "4900",
			unlockHeight: "100",
			expectedData: map[string]any{
				"increase_by":    "100",
				"total_locked":   "1100",
				"delegator":      delegatorAddr,
				"end_cycle_id":   nil,
				"start_cycle_id": nil,
			},
		},
		{
			name:      "DelegateStackExtend",
			eventName: pox.EventNameDelegateStackExtend,
			data: func(t *testing.T) []clarity.TupleField {
				return []clarity.TupleField{
					field("unlock-burn-height", uintValue(1300)),
					field("extend-count", uintValue(1)),
					field("delegator", standardPrincipal(t, delegatorAddr)),
				}
			},
			locked:       "1000",
			balance:      "5000",
			unlockHeight: "1300",
			expectedData: map[string]any{
				"unlock_burn_height": "1300",
				"extend_count":       "1",
				"delegator":          delegatorAddr,
				"end_cycle_id":       nil,
				"start_cycle_id":     nil,
			},
		},
		{
			name:      "StackAggregationCommit",
			eventName: pox.EventNameStackAggregationCommit,
			data: func(t *testing.T) []clarity.TupleField {
				return []clarity.TupleField{
					field("reward-cycle", uintValue(55)),
					field("amount-ustx", uintValue(9000)),
					field("signer-key", clarity.NewSome(clarity.NewBuffer(test.DecodeHexString(signerKey)))),
				}
			},
			locked:       "1000",
			balance:      "5000",
			unlockHeight: "100",
			expectedData: map[string]any{
				"reward_cycle":   "55",
				"amount_ustx":    "9000",
				"signer_key":     "0x" + signerKey,
				"end_cycle_id":   nil,
				"start_cycle_id": nil,
			},
		},
		{
			name:      "StackAggregationCommitIndexed",
			eventName: pox.EventNameStackAggregationCommitIndexed,
			data: func(t *testing.T) []clarity.TupleField {
				return []clarity.TupleField{
					field("reward-cycle", uintValue(56)),
					field("amount-ustx", uintValue(9100)),
					field("signer-key", clarity.OptionalNone{}),
					field("start-cycle-id", uintValue(56)),
				}
			},
			locked:       "1000",
			balance:      "5000",
			unlockHeight: "100",
			expectedData: map[string]any{
				"reward_cycle":   "56",
				"amount_ustx":    "9100",
				"signer_key":     nil,
				"end_cycle_id":   nil,
				"start_cycle_id": "56",
			},
		},
		{
			name:      "StackAggregationIncrease",
			eventName: pox.EventNameStackAggregationIncrease,
			data: func(t *testing.T) []clarity.TupleField {
				return []clarity.TupleField{
					field("reward-cycle", uintValue(57)),
					field("amount-ustx", uintValue(100)),
				}
			},
			locked:       "1000",
			balance:      "5000",
			unlockHeight: "100",
			expectedData: map[string]any{
				"reward_cycle":   "57",
				"amount_ustx":    "100",
				"end_cycle_id":   nil,
				"start_cycle_id": nil,
			},
		},
		{
			name:      "RevokeDelegateStx",
			eventName: pox.EventNameRevokeDelegateStx,
			data: func(t *testing.T) []clarity.TupleField {
				return []clarity.TupleField{
					field("delegate-to", standardPrincipal(t, delegatorAddr)),
				}
			},
			locked:       "1000",
			balance:      "5000",
			unlockHeight: "100",
			expectedData: map[string]any{
				"delegate_to":    delegatorAddr,
				"end_cycle_id":   nil,
				"start_cycle_id": nil,
			},
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			data := encodeEvent(
				t,
				eventValue(t, string(testDef.eventName), testDef.data(t)...),
			)
			event, err := pox.DecodeSyntheticEvent(data, common.NetworkMainnet)
			require.NoError(t, err)
			require.NotNil(t, event)
			assert.Equal(t, testDef.eventName, event.Name)
			assert.Equal(t, stackerAddr, event.Stacker)
			expected := map[string]any{
				"stacker":                 stackerAddr,
				"locked":                  testDef.locked,
				"balance":                 testDef.balance,
				"burnchain_unlock_height": testDef.unlockHeight,
				"pox_addr":                testDef.poxAddr,
				"pox_addr_raw":            testDef.poxAddrRaw,
				"name":                    string(testDef.eventName),
				"data":                    testDef.expectedData,
			}
			assert.Equal(t, expected, event.Document())
		})
	}
}

func TestDecodeSyntheticEventDataTypes(t *testing.T) {
	value := eventValue(
		t,
		string(pox.EventNameStackStx),
		field("lock-amount", uintValue(2000)),
		field("lock-period", uintValue(3)),
		field("start-burn-height", uintValue(200)),
		field("unlock-burn-height", uintValue(900)),
	)
	event, err := pox.EventFromValue(value, common.NetworkMainnet)
	require.NoError(t, err)
	data, ok := event.Data.(pox.StackStxData)
	require.True(t, ok)
	assert.Equal(t, "2000", data.LockAmount.String())
	assert.Nil(t, data.SignerKey)
	assert.Nil(t, data.EndCycleId)
	assert.Nil(t, event.PoxAddrRaw)
	assert.Empty(t, event.PoxAddr)

	value = eventValue(
		t,
		string(pox.EventNameStackAggregationCommitIndexed),
		field("reward-cycle", uintValue(1)),
		field("amount-ustx", uintValue(2)),
		field("signer-key", clarity.NewBuffer([]byte{})),
	)
	event, err = pox.EventFromValue(value, common.NetworkMainnet)
	require.NoError(t, err)
	commit, ok := event.Data.(pox.StackAggregationCommitData)
	require.True(t, ok)
	// An empty key is present, unlike none
	assert.NotNil(t, commit.SignerKey)
	assert.Equal(t, "0x", event.Document()["data"].(map[string]any)["signer_key"])
}

func TestDecodeSyntheticEventSaturation(t *testing.T) {
	maxUint128 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	var value clarity.Value = clarity.NewOk(clarity.NewTuple(
		field("stacker", standardPrincipal(t, stackerAddr)),
		field("locked", clarity.UInt{Value: new(big.Int).Set(maxUint128)}),
		field("balance", clarity.UInt{Value: new(big.Int).Set(maxUint128)}),
		field("burnchain-unlock-height", uintValue(0)),
		field("name", clarity.NewStringASCII(string(pox.EventNameHandleUnlock))),
		field("data", clarity.NewTuple(
			field("first-cycle-locked", uintValue(1)),
			field("first-unlocked-cycle", uintValue(2)),
		)),
	))
	event, err := pox.DecodeSyntheticEvent(encodeEvent(t, value), common.NetworkMainnet)
	require.NoError(t, err)
	assert.Equal(t, 0, event.Balance.Cmp(maxUint128))

	value = eventValue(
		t,
		string(pox.EventNameStackIncrease),
		field("increase-by", uintValue(9000)),
		field("total-locked", uintValue(10000)),
	)
	event, err = pox.DecodeSyntheticEvent(encodeEvent(t, value), common.NetworkMainnet)
	require.NoError(t, err)
	assert.Equal(t, "0", event.Balance.String())
	assert.Equal(t, "10000", event.Locked.String())
}

func TestDecodeSyntheticEventPoxAddr(t *testing.T) {
	testDefs := []struct {
		name    string
		poxAddr clarity.Value
		network common.Network
		addr    string
		raw     string
	}{
		{
			name:    "Testnet",
			poxAddr: poxAddrTuple("04", p2wpkhHash),
			network: common.NetworkTestnet,
			addr:    "bcrt1qw508d6qejxtdg4y5r3zarvary0c5xw7kygt080",
			raw:     "04" + p2wpkhHash,
		},
		{
			name:    "EmptyVersion",
			poxAddr: poxAddrTuple("", p2pkhHash),
			network: common.NetworkMainnet,
			raw:     p2pkhHash,
		},
		{
			name:    "UnknownVersion",
			poxAddr: poxAddrTuple("07", p2pkhHash),
			network: common.NetworkMainnet,
			raw:     "07" + p2pkhHash,
		},
		{
			name:    "BadWitnessProgram",
			poxAddr: clarity.NewSome(poxAddrTuple("05", "0102")),
			network: common.NetworkMainnet,
			raw:     "050102",
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			value := eventValue(
				t,
				string(pox.EventNameRevokeDelegateStx),
				field("delegate-to", standardPrincipal(t, delegatorAddr)),
				field("pox-addr", testDef.poxAddr),
			)
			event, err := pox.EventFromValue(value, testDef.network)
			require.NoError(t, err)
			assert.Equal(t, testDef.addr, event.PoxAddr)
			assert.Equal(t, test.DecodeHexString(testDef.raw), event.PoxAddrRaw)
			doc := event.Document()
			assert.Equal(t, "0x"+testDef.raw, doc["pox_addr_raw"])
			if testDef.addr == "" {
				assert.Nil(t, doc["pox_addr"])
			}
		})
	}
}

func TestDecodeSyntheticEventErrResponse(t *testing.T) {
	data := encodeEvent(t, clarity.NewErr(uintValue(3)))
	event, err := pox.DecodeSyntheticEvent(data, common.NetworkMainnet)
	assert.NoError(t, err)
	assert.Nil(t, event)
}

func TestDecodeSyntheticEventErrors(t *testing.T) {
	testDefs := []struct {
		name        string
		value       func(t *testing.T) clarity.Value
		expectedErr error
	}{
		{
			name: "NotResponse",
			value: func(t *testing.T) clarity.Value {
				return clarity.NewTuple(field("name", clarity.NewStringASCII("stack-stx")))
			},
			expectedErr: common.ErrUnrecognizedTag,
		},
		{
			name: "OkNotTuple",
			value: func(t *testing.T) clarity.Value {
				return clarity.NewOk(uintValue(1))
			},
			expectedErr: common.ErrUnrecognizedTag,
		},
		{
			name: "UnknownName",
			value: func(t *testing.T) clarity.Value {
				return eventValue(t, "stack-sideways")
			},
			expectedErr: common.ErrUnrecognizedTag,
		},
		{
			name: "MissingDataField",
			value: func(t *testing.T) clarity.Value {
				return eventValue(
					t,
					string(pox.EventNameStackStx),
					field("lock-amount", uintValue(2000)),
					field("start-burn-height", uintValue(200)),
					field("unlock-burn-height", uintValue(900)),
				)
			},
			expectedErr: common.ErrStructuralInvariantViolation,
		},
		{
			name: "MissingDelegateUnlockHeight",
			value: func(t *testing.T) clarity.Value {
				return eventValue(
					t,
					string(pox.EventNameDelegateStx),
					field("amount-ustx", uintValue(7000)),
					field("delegate-to", standardPrincipal(t, delegatorAddr)),
				)
			},
			expectedErr: common.ErrStructuralInvariantViolation,
		},
		{
			name: "MissingBaseField",
			value: func(t *testing.T) clarity.Value {
				return clarity.NewOk(clarity.NewTuple(
					field("stacker", standardPrincipal(t, stackerAddr)),
					field("locked", uintValue(1)),
					field("name", clarity.NewStringASCII("revoke-delegate-stx")),
				))
			},
			expectedErr: common.ErrStructuralInvariantViolation,
		},
		{
			name: "WrongFieldType",
			value: func(t *testing.T) clarity.Value {
				return eventValue(
					t,
					string(pox.EventNameStackAggregationIncrease),
					field("reward-cycle", clarity.NewInt(5)),
					field("amount-ustx", uintValue(100)),
				)
			},
			expectedErr: common.ErrUnrecognizedTag,
		},
		{
			name: "WrongOptionalInner",
			value: func(t *testing.T) clarity.Value {
				return eventValue(
					t,
					string(pox.EventNameRevokeDelegateStx),
					field("delegate-to", standardPrincipal(t, delegatorAddr)),
					field("end-cycle-id", clarity.NewSome(clarity.NewBool(true))),
				)
			},
			expectedErr: common.ErrUnrecognizedTag,
		},
		{
			name: "DelegateNotPrincipal",
			value: func(t *testing.T) clarity.Value {
				return eventValue(
					t,
					string(pox.EventNameRevokeDelegateStx),
					field("delegate-to", clarity.NewStringASCII(delegatorAddr)),
				)
			},
			expectedErr: common.ErrUnrecognizedTag,
		},
		{
			name: "PoxAddrNotTuple",
			value: func(t *testing.T) clarity.Value {
				return eventValue(
					t,
					string(pox.EventNameRevokeDelegateStx),
					field("delegate-to", standardPrincipal(t, delegatorAddr)),
					field("pox-addr", clarity.NewBuffer([]byte{0x00})),
				)
			},
			expectedErr: common.ErrUnrecognizedTag,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			event, err := pox.DecodeSyntheticEvent(
				encodeEvent(t, testDef.value(t)),
				common.NetworkMainnet,
			)
			assert.ErrorIs(t, err, testDef.expectedErr)
			assert.Nil(t, event)
		})
	}
}

func TestDecodeSyntheticEventBadBytes(t *testing.T) {
	_, err := pox.DecodeSyntheticEvent([]byte{0x07}, common.NetworkMainnet)
	assert.ErrorIs(t, err, common.ErrTruncated)
	_, err = pox.DecodeSyntheticEvent([]byte{0x42}, common.NetworkMainnet)
	assert.ErrorIs(t, err, common.ErrUnrecognizedTag)
}
