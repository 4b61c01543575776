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
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/blinklabs-io/gostacks"
	"github.com/blinklabs-io/gostacks/cmd/common"
	"github.com/spf13/pflag"
)

type command struct {
	args  int
	usage string
	run   func(f *common.GlobalFlags, args []string, stdin io.Reader) (any, error)
}

var commands = map[string]command{
	"tx": {
		args:  1,
		usage: "decode a transaction",
		run:   hexCommand(wrapMap(stacks.DecodeTransaction)),
	},
	"block": {
		args:  1,
		usage: "decode a Stacks 2.x block",
		run:   hexCommand(wrapMap(stacks.DecodeStacksBlock)),
	},
	"nakamoto-block": {
		args:  1,
		usage: "decode a Nakamoto block",
		run:   hexCommand(wrapMap(stacks.DecodeNakamotoBlock)),
	},
	"nakamoto-header": {
		args:  1,
		usage: "decode a Nakamoto block header",
		run:   hexCommand(wrapMap(stacks.DecodeNakamotoBlockHeader)),
	},
	"clarity": {
		args:  1,
		usage: "decode a Clarity value",
		run: hexCommand(func(_ *common.GlobalFlags, data []byte) (any, error) {
			return stacks.DecodeClarityValue(data)
		}),
	},
	"clarity-list": {
		args:  1,
		usage: "decode a count-prefixed list of Clarity values",
		run: hexCommand(func(_ *common.GlobalFlags, data []byte) (any, error) {
			return stacks.DecodeClarityValueList(data, stacks.WithDeep(true))
		}),
	},
	"post-conditions": {
		args:  1,
		usage: "decode a post-condition section",
		run:   hexCommand(wrapMap(stacks.DecodePostConditions)),
	},
	"principal": {
		args:  1,
		usage: "decode a principal from a Clarity value",
		run: hexCommand(func(_ *common.GlobalFlags, data []byte) (any, error) {
			return stacks.DecodeClarityValueToPrincipal(data)
		}),
	},
	"address-decode": {
		args:  1,
		usage: "split a Stacks address into version and hash160",
		run: textCommand(func(addr string) (any, error) {
			version, hash, err := stacks.DecodeStacksAddress(addr)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"version": version,
				"hash160": hash,
			}, nil
		}),
	},
	"address-encode": {
		args:  2,
		usage: "encode a Stacks address from <version> <hash160>",
		run:   addressEncode,
	},
	"btc-to-stx": {
		args:  1,
		usage: "convert a Bitcoin address to a Stacks address",
		run: textCommand(func(addr string) (any, error) {
			return stacks.BitcoinToStacksAddress(addr)
		}),
	},
	"stx-to-btc": {
		args:  1,
		usage: "convert a Stacks address to a Bitcoin address",
		run: textCommand(func(addr string) (any, error) {
			return stacks.StacksToBitcoinAddress(addr)
		}),
	},
	"memo": {
		args:  1,
		usage: "render a token transfer memo as text",
		run: hexCommand(func(_ *common.GlobalFlags, data []byte) (any, error) {
			return stacks.MemoToString(data), nil
		}),
	},
	"pox-event": {
		args:  1,
		usage: "decode a PoX synthetic print event",
		run: hexCommand(func(f *common.GlobalFlags, data []byte) (any, error) {
			return stacks.DecodePoxSyntheticEvent(data, f.Network)
		}),
	},
}

func wrapMap(fn func([]byte) (map[string]any, error)) func(*common.GlobalFlags, []byte) (any, error) {
	return func(_ *common.GlobalFlags, data []byte) (any, error) {
		return fn(data)
	}
}

func hexCommand(fn func(*common.GlobalFlags, []byte) (any, error)) func(*common.GlobalFlags, []string, io.Reader) (any, error) {
	return func(f *common.GlobalFlags, args []string, stdin io.Reader) (any, error) {
		data, err := common.ReadHexInput(args[0], stdin)
		if err != nil {
			return nil, err
		}
		return fn(f, data)
	}
}

func textCommand(fn func(string) (any, error)) func(*common.GlobalFlags, []string, io.Reader) (any, error) {
	return func(_ *common.GlobalFlags, args []string, stdin io.Reader) (any, error) {
		input, err := common.ReadInput(args[0], stdin)
		if err != nil {
			return nil, err
		}
		return fn(strings.TrimSpace(input))
	}
}

func addressEncode(_ *common.GlobalFlags, args []string, stdin io.Reader) (any, error) {
	version, err := strconv.ParseUint(args[0], 10, 8)
	if err != nil {
		return nil, fmt.Errorf("invalid address version: %s", args[0])
	}
	hash, err := common.ReadHexInput(args[1], stdin)
	if err != nil {
		return nil, err
	}
	return stacks.StacksAddressFromParts(uint8(version), hash)
}

func commandNames() []string {
	return slices.Sorted(maps.Keys(commands))
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	f := common.NewGlobalFlags("stacks-decode")
	f.Flagset.SetOutput(stderr)
	f.Flagset.Usage = func() {
		printUsage(stderr, f.Flagset)
	}
	if err := f.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "failed to parse command args: %s\n", err)
		return 1
	}
	logger := f.Logger(stderr)
	if f.Flagset.NArg() == 0 {
		printUsage(stderr, f.Flagset)
		return 1
	}
	name := f.Flagset.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "Unknown subcommand: %s\n", name)
		return 1
	}
	cmdArgs := f.Flagset.Args()[1:]
	if len(cmdArgs) != cmd.args {
		fmt.Fprintf(stderr, "%s expects %d argument(s), got %d\n", name, cmd.args, len(cmdArgs))
		return 1
	}
	start := time.Now()
	result, err := cmd.run(f, cmdArgs, stdin)
	if err != nil {
		logger.Debug(
			"decode failed",
			"command", name,
			"error", err,
		)
		fmt.Fprintln(stderr, stacks.ErrorString(err))
		return 1
	}
	logger.Debug(
		"decoded input",
		"command", name,
		"duration", time.Since(start),
	)
	if err := common.WriteResult(stdout, f.Format, result); err != nil {
		fmt.Fprintf(stderr, "failed to write output: %s\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer, flagset *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: stacks-decode [flags] <command> <hex|->\n\nCommands:\n")
	for _, name := range commandNames() {
		fmt.Fprintf(w, "  %-18s %s\n", name, commands[name].usage)
	}
	fmt.Fprintf(w, "\nFlags:\n%s", flagset.FlagUsages())
}
