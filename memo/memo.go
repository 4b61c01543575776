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

// Package memo turns token transfer memos into displayable text
package memo

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/blinklabs-io/gostacks/utils"
	"github.com/rivo/uniseg"
)

// Normalize renders a memo as text. Invalid UTF-8 becomes U+FFFD, lone
// non-printable characters become spaces, and runs of whitespace or U+FFFD
// collapse to a single space. The result is trimmed.
func Normalize(data []byte) string {
	var printable strings.Builder
	printable.Grow(len(data))
	graphemes := uniseg.NewGraphemes(utils.LossyUTF8String(data))
	for graphemes.Next() {
		runes := graphemes.Runes()
		// Multi-rune clusters are kept whole
		if len(runes) == 1 && !unicode.IsPrint(runes[0]) {
			printable.WriteByte(' ')
			continue
		}
		printable.WriteString(graphemes.Str())
	}
	var sb strings.Builder
	sb.Grow(printable.Len())
	inGap := false
	for _, r := range printable.String() {
		if r == utf8.RuneError || unicode.IsSpace(r) {
			if !inGap {
				sb.WriteByte(' ')
				inGap = true
			}
			continue
		}
		inGap = false
		sb.WriteRune(r)
	}
	return strings.TrimSpace(sb.String())
}
