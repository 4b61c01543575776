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

package clarity

import (
	"fmt"
	"math/big"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/ledger/common"
	"github.com/blinklabs-io/gostacks/wire"
)

var (
	twoTo128  = new(big.Int).Lsh(big.NewInt(1), 128)
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// Encode serializes a value. Nesting depth is not checked.
func Encode(v Value) ([]byte, error) {
	w := wire.NewWriter()
	if err := EncodeToWriter(w, v); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// EncodeToWriter serializes a value into w
func EncodeToWriter(w *wire.Writer, v Value) error {
	if v == nil {
		return common.NewError(
			common.ErrorKindStructuralInvariantViolation,
			"cannot encode nil value",
		)
	}
	if err := w.WriteByte(byte(v.Prefix())); err != nil {
		return err
	}
	switch tmp := v.(type) {
	case Int:
		raw, err := int128Bytes(tmp.Value, true)
		if err != nil {
			return err
		}
		_, err = w.Write(raw)
		return err
	case UInt:
		raw, err := int128Bytes(tmp.Value, false)
		if err != nil {
			return err
		}
		_, err = w.Write(raw)
		return err
	case Bool, OptionalNone:
		return nil
	case Buffer:
		return writeSized(w, tmp.Data)
	case PrincipalStandard:
		return writeStandardPrincipal(w, tmp.Address)
	case PrincipalContract:
		if err := writeStandardPrincipal(w, tmp.Issuer); err != nil {
			return err
		}
		return WriteContractName(w, tmp.Name)
	case ResponseOk:
		return EncodeToWriter(w, tmp.Value)
	case ResponseErr:
		return EncodeToWriter(w, tmp.Value)
	case OptionalSome:
		return EncodeToWriter(w, tmp.Value)
	case List:
		if err := writeCount(w, len(tmp.Items)); err != nil {
			return err
		}
		for _, item := range tmp.Items {
			if err := EncodeToWriter(w, item); err != nil {
				return err
			}
		}
		return nil
	case Tuple:
		return encodeTuple(w, tmp)
	case StringASCII:
		return writeSized(w, tmp.Data)
	case StringUTF8:
		return writeSized(w, tmp.Bytes())
	}
	return common.NewError(
		common.ErrorKindUnrecognizedTag,
		"cannot encode value of type %T",
		v,
	)
}

func encodeTuple(w *wire.Writer, t Tuple) error {
	if err := writeCount(w, len(t.Fields)); err != nil {
		return err
	}
	for i, field := range t.Fields {
		if i > 0 && t.Fields[i-1].Name >= field.Name {
			return common.NewError(
				common.ErrorKindStructuralInvariantViolation,
				"tuple keys are not unique and sorted at %q",
				field.Name,
			)
		}
		if err := WriteClarityName(w, field.Name); err != nil {
			return err
		}
		if err := EncodeToWriter(w, field.Value); err != nil {
			return fmt.Errorf("tuple field %s: %w", field.Name, err)
		}
	}
	return nil
}

func writeCount(w *wire.Writer, count int) error {
	if count > int(MaxValueSize) {
		return common.NewError(
			common.ErrorKindSizeExceeded,
			"length %d exceeds %d",
			count,
			MaxValueSize,
		)
	}
	// #nosec G115 -- count is bounded by MaxValueSize above
	w.WriteUint32(uint32(count))
	return nil
}

func writeSized(w *wire.Writer, data []byte) error {
	if err := writeCount(w, len(data)); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

func writeStandardPrincipal(w *wire.Writer, addr address.StacksAddress) error {
	if addr.Version > address.MaxVersion {
		return common.NewError(
			common.ErrorKindInvalidVersion,
			"principal version %d is not below 32",
			addr.Version,
		)
	}
	if err := w.WriteByte(addr.Version); err != nil {
		return err
	}
	_, err := w.Write(addr.Hash160[:])
	return err
}

// int128Bytes returns the 16-byte big-endian two's complement form of v
func int128Bytes(v *big.Int, signed bool) ([]byte, error) {
	if v == nil {
		return nil, common.NewError(
			common.ErrorKindStructuralInvariantViolation,
			"missing integer value",
		)
	}
	var tooLarge bool
	if signed {
		tooLarge = v.Cmp(minInt128) < 0 || v.Cmp(maxInt128) > 0
	} else {
		tooLarge = v.Sign() < 0 || v.BitLen() > 128
	}
	if tooLarge {
		return nil, common.NewError(
			common.ErrorKindSizeExceeded,
			"integer %s does not fit in 128 bits",
			v.String(),
		)
	}
	tmp := v
	if v.Sign() < 0 {
		tmp = new(big.Int).Add(v, twoTo128)
	}
	ret := make([]byte, 16)
	tmp.FillBytes(ret)
	return ret, nil
}
