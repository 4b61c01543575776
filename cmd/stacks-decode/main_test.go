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

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/blinklabs-io/gostacks/cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	uint1Hex    = "0x0100000000000000000000000000000001"
	stackerHash = "42779fa5c48120aa60c18eb05a164bad77bf2cdd"
	stackerAddr = "SP117F7X5RJ0J1AK0R67B0PGP9EPQFFSCVQNASZBC"
)

func runCommand(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunOutputFormats(t *testing.T) {
	code, out, _ := runCommand(t, "", "clarity", uint1Hex)
	require.Equal(t, 0, code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "u1", doc["repr"])

	code, out, _ = runCommand(t, "", "--format", "repr", "clarity", uint1Hex)
	require.Equal(t, 0, code)
	assert.Equal(t, "u1\n", out)

	code, out, _ = runCommand(t, "", "-f", "yaml", "clarity", uint1Hex)
	require.Equal(t, 0, code)
	var yamlDoc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &yamlDoc))
	assert.Equal(t, "1", yamlDoc["value"])

	code, out, _ = runCommand(t, "", "--format=cbor", "clarity", uint1Hex)
	require.Equal(t, 0, code)
	var cborDoc map[string]any
	_, err := cbor.Decode([]byte(out), &cborDoc)
	require.NoError(t, err)
	assert.Equal(t, "u1", cborDoc["repr"])
}

func TestRunStdin(t *testing.T) {
	code, out, _ := runCommand(t, uint1Hex+"\n", "--format", "repr", "clarity", "-")
	require.Equal(t, 0, code)
	assert.Equal(t, "u1\n", out)

	code, out, _ = runCommand(t, stackerAddr+"\n", "address-decode", "-")
	require.Equal(t, 0, code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, float64(22), doc["version"])
	assert.Equal(t, stackerHash, doc["hash160"])
}

func TestRunAddressCommands(t *testing.T) {
	code, out, _ := runCommand(t, "", "address-encode", "22", stackerHash)
	require.Equal(t, 0, code)
	assert.Equal(t, "\""+stackerAddr+"\"\n", out)

	code, out, _ = runCommand(t, "", "-f", "repr", "stx-to-btc", "SP2GKVKM12JZ0YW3ZJH3GMBJYGVNM0BS94ERA45AM")
	require.Equal(t, 0, code)
	assert.Equal(t, "1FhZqHcrXaWcNCJPEGn2BRZ9angJvYfTBT\n", out)

	code, _, errOut := runCommand(t, "", "address-encode", "256", stackerHash)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid address version")
}

func TestRunMemo(t *testing.T) {
	code, out, _ := runCommand(t, "", "-f", "repr", "memo", "0x68656c6c6f0000776f726c64")
	require.Equal(t, 0, code)
	assert.Equal(t, "hello world\n", out)
}

func TestRunErrors(t *testing.T) {
	testDefs := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "NoCommand",
			args:     []string{},
			expected: "Usage: stacks-decode",
		},
		{
			name:     "UnknownCommand",
			args:     []string{"frobnicate", "00"},
			expected: "Unknown subcommand: frobnicate",
		},
		{
			name:     "MissingArgument",
			args:     []string{"tx"},
			expected: "tx expects 1 argument(s), got 0",
		},
		{
			name:     "BadFormat",
			args:     []string{"--format", "xml", "tx", "00"},
			expected: "invalid output format: xml",
		},
		{
			name:     "BadNetwork",
			args:     []string{"--network", "preview", "pox-event", "00"},
			expected: "invalid network specified: preview",
		},
		{
			name:     "BadLogLevel",
			args:     []string{"--log-level", "loud", "tx", "00"},
			expected: "invalid log level: loud",
		},
		{
			name:     "BadHex",
			args:     []string{"tx", "0xzz"},
			expected: "InvalidEncoding: input is not hex",
		},
		{
			name:     "Truncated",
			args:     []string{"clarity", "0x0100"},
			expected: "Truncated: ",
		},
		{
			name:     "ReprUnavailable",
			args:     []string{"-f", "repr", "address-decode", stackerAddr},
			expected: "repr format is only available for clarity values",
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			code, out, errOut := runCommand(t, "", testDef.args...)
			assert.Equal(t, 1, code)
			assert.Empty(t, out)
			assert.Contains(t, errOut, testDef.expected)
		})
	}
}

func TestRunDebugLogging(t *testing.T) {
	code, _, errOut := runCommand(
		t,
		"",
		"--log-level", "debug",
		"--log-format", "json",
		"clarity", uint1Hex,
	)
	require.Equal(t, 0, code)
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(errOut)), &record))
	assert.Equal(t, "decoded input", record["msg"])
	assert.Equal(t, "clarity", record["command"])
}
