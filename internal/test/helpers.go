package test

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline. An optional 0x prefix is accepted.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	hexData = strings.TrimPrefix(hexData, "0x")
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// Prefixes returns every strict prefix of data, from empty up to len(data)-1 bytes.
// Decoders are expected to reject each of them without panicking.
func Prefixes(data []byte) [][]byte {
	ret := make([][]byte, 0, len(data))
	for i := range len(data) {
		ret = append(ret, data[:i])
	}
	return ret
}

// Concat joins hex fragments into a single byte slice
func Concat(parts ...string) []byte {
	return DecodeHexString(strings.Join(parts, ""))
}
