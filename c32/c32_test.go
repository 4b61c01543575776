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

package c32

import (
	"errors"
	"testing"

	"github.com/blinklabs-io/gostacks/internal/test"
	"github.com/blinklabs-io/gostacks/ledger/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	testDefs := []struct {
		hex     string
		encoded string
	}{
		{"a46ff88886c2ef9762d970b4d2c63678835bd39d", "MHQZH246RBQSERPSE2TD5HHPF21NQMWX"},
		{"", ""},
		{"0000000000000000000000000000000000000000", "00000000000000000000"},
		{"0000000000000000000000000000000000000001", "00000000000000000001"},
		{"1000000000000000000000000000000000000001", "20000000000000000000000000000001"},
		{"1000000000000000000000000000000000000000", "20000000000000000000000000000000"},
		{"01", "1"},
		{"22", "12"},
		{"0001", "01"},
		{"000001", "001"},
		{"00000001", "0001"},
		{"10", "G"},
		{"0100", "80"},
		{"1000", "400"},
		{"010000", "2000"},
		{"100000", "10000"},
		{"01000000", "G0000"},
		{"10000000", "800000"},
		{"0100000000", "4000000"},
	}
	for _, testDef := range testDefs {
		data := test.DecodeHexString(testDef.hex)
		encoded := Encode(data)
		assert.Equal(t, testDef.encoded, encoded, "encoding %s", testDef.hex)
		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, data, decoded, "decoding %s", encoded)
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, input := range []string{"U", "!", "ABC-", "é"} {
		_, err := Decode(input)
		assert.ErrorIs(t, err, common.ErrInvalidEncoding, "input %q", input)
	}
}

var addressHashes = []string{
	"a46ff88886c2ef9762d970b4d2c63678835bd39d",
	"0000000000000000000000000000000000000000",
	"0000000000000000000000000000000000000001",
	"1000000000000000000000000000000000000001",
	"1000000000000000000000000000000000000000",
}

var addressVersions = []uint8{22, 0, 31, 20, 26, 21}

var addressTable = [][]string{
	{
		"SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7",
		"SP000000000000000000002Q6VF78",
		"SP00000000000000000005JA84HQ",
		"SP80000000000000000000000000000004R0CMNV",
		"SP800000000000000000000000000000033H8YKK",
	},
	{
		"S02J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKPVKG2CE",
		"S0000000000000000000002AA028H",
		"S000000000000000000006EKBDDS",
		"S080000000000000000000000000000007R1QC00",
		"S080000000000000000000000000000003ENTGCQ",
	},
	{
		"SZ2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKQ9H6DPR",
		"SZ000000000000000000002ZE1VMN",
		"SZ00000000000000000005HZ3DVN",
		"SZ80000000000000000000000000000004XBV6MS",
		"SZ800000000000000000000000000000007VF5G0",
	},
	{
		"SM2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKQVX8X0G",
		"SM0000000000000000000062QV6X",
		"SM00000000000000000005VR75B2",
		"SM80000000000000000000000000000004WBEWKC",
		"SM80000000000000000000000000000000JGSYGV",
	},
	{
		"ST2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKQYAC0RQ",
		"ST000000000000000000002AMW42H",
		"ST000000000000000000042DB08Y",
		"ST80000000000000000000000000000006BYJ4R4",
		"ST80000000000000000000000000000002YBNPV3",
	},
	{
		"SN2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKP6D2ZK9",
		"SN000000000000000000003YDHWKJ",
		"SN00000000000000000005341MC8",
		"SN800000000000000000000000000000066KZWY0",
		"SN800000000000000000000000000000006H75AK",
	},
}

func TestAddress(t *testing.T) {
	for i, hashHex := range addressHashes {
		for j, version := range addressVersions {
			hash := test.DecodeHexString(hashHex)
			addr, err := Address(version, hash)
			require.NoError(t, err)
			assert.Equal(t, addressTable[j][i], addr)
			decodedVersion, decodedHash, err := AddressDecode(addr)
			require.NoError(t, err)
			assert.Equal(t, version, decodedVersion)
			assert.Equal(t, hash, decodedHash[:])
		}
	}
}

func TestAddressNormalize(t *testing.T) {
	addrs := []string{
		"S02J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKPVKG2CE",
		"SO2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKPVKG2CE",
		"S02J6ZY48GVLEZ5V2V5RB9MP66SW86PYKKPVKG2CE",
		"SO2J6ZY48GVLEZ5V2V5RB9MP66SW86PYKKPVKG2CE",
		"s02j6zy48gv1ez5v2v5rb9mp66sw86pykkpvkg2ce",
		"sO2j6zy48gv1ez5v2v5rb9mp66sw86pykkpvkg2ce",
		"s02j6zy48gvlez5v2v5rb9mp66sw86pykkpvkg2ce",
		"sO2j6zy48gvlez5v2v5rb9mp66sw86pykkpvkg2ce",
	}
	expectedHash := test.DecodeHexString("a46ff88886c2ef9762d970b4d2c63678835bd39d")
	for _, addr := range addrs {
		version, hash, err := AddressDecode(addr)
		require.NoError(t, err, "address %s", addr)
		assert.Equal(t, uint8(0), version)
		assert.Equal(t, expectedHash, hash[:])
	}
}

func TestAddressDecodeErrors(t *testing.T) {
	shortHashAddr, err := Address(22, []byte{1, 2, 3})
	require.NoError(t, err)
	testDefs := []struct {
		name        string
		addr        string
		expectedErr error
	}{
		{
			name:        "non-ascii",
			addr:        "S\U0001D7D82J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKPVKG2CE",
			expectedErr: common.ErrInvalidEncoding,
		},
		{
			name:        "too short",
			addr:        "SP2J6",
			expectedErr: common.ErrTooShort,
		},
		{
			name:        "bad checksum",
			addr:        "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ8",
			expectedErr: common.ErrChecksumMismatch,
		},
		{
			name:        "invalid character",
			addr:        "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJU",
			expectedErr: common.ErrInvalidEncoding,
		},
		{
			name:        "payload not 20 bytes",
			addr:        shortHashAddr,
			expectedErr: common.ErrLengthMismatch,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, _, err := AddressDecode(testDef.addr)
			assert.ErrorIs(t, err, testDef.expectedErr)
		})
	}
}

func TestCheckEncodeInvalidVersion(t *testing.T) {
	_, err := CheckEncode(32, []byte{1})
	assert.ErrorIs(t, err, common.ErrInvalidVersion)
	_, err = Address(255, make([]byte, 20))
	assert.ErrorIs(t, err, common.ErrInvalidVersion)
}

func TestCheckDecodeErrors(t *testing.T) {
	_, _, err := CheckDecode("P")
	assert.ErrorIs(t, err, common.ErrTooShort)
	// "P1" decodes to a single byte, less than the checksum length
	_, _, err = CheckDecode("P1")
	assert.ErrorIs(t, err, common.ErrTooShort)
	_, _, err = CheckDecode("U2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7")
	assert.ErrorIs(t, err, common.ErrInvalidEncoding)
}

func TestChecksumMismatchValues(t *testing.T) {
	// Flip the last symbol of a valid address so that only the checksum changes
	_, _, err := CheckDecode("P2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ8")
	var csErr common.ChecksumMismatchError
	require.True(t, errors.As(err, &csErr))
	assert.NotEqual(t, csErr.Expected, csErr.Actual)
	// The low symbol changed by one, which only touches the last checksum byte
	assert.Equal(t, csErr.Expected&0x00ffffff, csErr.Actual&0x00ffffff)
}

func TestCheckRoundTrip(t *testing.T) {
	inputs := [][]byte{
		{},
		{0},
		{0, 0, 0},
		{0, 0, 1, 2},
		test.DecodeHexString("ffffffffffffffffffffffffffffffffffffffff"),
	}
	for version := uint8(0); version < 32; version++ {
		for _, data := range inputs {
			encoded, err := CheckEncode(version, data)
			require.NoError(t, err)
			decodedVersion, decoded, err := CheckDecode(encoded)
			require.NoError(t, err)
			assert.Equal(t, version, decodedVersion)
			assert.Equal(t, data, decoded)
		}
	}
}
