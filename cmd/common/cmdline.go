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

package common

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/blinklabs-io/gostacks"
	"github.com/spf13/pflag"
)

// Output formats
const (
	FormatJson = "json"
	FormatCbor = "cbor"
	FormatYaml = "yaml"
	FormatRepr = "repr"
)

type GlobalFlags struct {
	Flagset   *pflag.FlagSet
	Format    string
	Network   string
	LogLevel  string
	LogFormat string
}

func NewGlobalFlags(name string) *GlobalFlags {
	f := &GlobalFlags{
		Flagset: pflag.NewFlagSet(name, pflag.ContinueOnError),
	}
	// Stop at the command name so command arguments are left alone
	f.Flagset.SetInterspersed(false)
	f.Flagset.StringVarP(
		&f.Format,
		"format",
		"f",
		FormatJson,
		"output format: json, cbor, yaml or repr",
	)
	f.Flagset.StringVarP(
		&f.Network,
		"network",
		"n",
		"mainnet",
		"network used to render PoX reward addresses",
	)
	f.Flagset.StringVar(
		&f.LogLevel,
		"log-level",
		"info",
		"log level: debug, info, warn or error",
	)
	f.Flagset.StringVar(
		&f.LogFormat,
		"log-format",
		"text",
		"log format: text or json",
	)
	return f
}

// Parse parses args and validates the flag values
func (f *GlobalFlags) Parse(args []string) error {
	if err := f.Flagset.Parse(args); err != nil {
		return err
	}
	switch f.Format {
	case FormatJson, FormatCbor, FormatYaml, FormatRepr:
	default:
		return fmt.Errorf("invalid output format: %s", f.Format)
	}
	if stacks.NetworkByName(f.Network) == stacks.NetworkInvalid {
		return fmt.Errorf("invalid network specified: %s", f.Network)
	}
	if _, err := parseLogLevel(f.LogLevel); err != nil {
		return err
	}
	switch f.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s", f.LogFormat)
	}
	return nil
}

// Logger builds a logger writing to w according to the log flags
func (f *GlobalFlags) Logger(w io.Writer) *slog.Logger {
	level, err := parseLogLevel(f.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{
		Level: level,
	}
	if f.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLogLevel(level string) (slog.Level, error) {
	var ret slog.Level
	if err := ret.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return ret, fmt.Errorf("invalid log level: %s", level)
	}
	return ret, nil
}
