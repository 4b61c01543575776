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

package stacks

import "github.com/blinklabs-io/gostacks/clarity"

type decodeOptions struct {
	deep     bool
	maxDepth int
}

// DecodeOptionFunc configures the Clarity value operations
type DecodeOptionFunc func(*decodeOptions)

// WithDeep controls whether Clarity documents include the decoded contents
// of each value or only its repr, hex and type_id
func WithDeep(deep bool) DecodeOptionFunc {
	return func(o *decodeOptions) {
		o.deep = deep
	}
}

// WithMaxDepth overrides the Clarity nesting limit
func WithMaxDepth(maxDepth int) DecodeOptionFunc {
	return func(o *decodeOptions) {
		o.maxDepth = maxDepth
	}
}

func newDecodeOptions(deep bool, opts []DecodeOptionFunc) decodeOptions {
	ret := decodeOptions{
		deep:     deep,
		maxDepth: clarity.MaxDepth,
	}
	for _, opt := range opts {
		opt(&ret)
	}
	return ret
}

func (o decodeOptions) clarityOptions() []clarity.DecodeOptionFunc {
	return []clarity.DecodeOptionFunc{
		clarity.WithBytes(),
		clarity.WithMaxDepth(o.maxDepth),
	}
}
