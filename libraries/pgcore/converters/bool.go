// Copyright 2026 Dolthub, Inc.
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

package converters

import (
	"github.com/zhxjdwh/revenj/libraries/pgcore/tuple"
	"github.com/zhxjdwh/revenj/libraries/utils/iohelp"
)

var trueTuple = tuple.NewScalar("t", false, false)
var falseTuple = tuple.NewScalar("f", false, false)

// FormatBool returns the text form of |b|.
func FormatBool(b bool) string {
	if b {
		return "t"
	}

	return "f"
}

// BoolTuple returns the tuple value of |b|. Booleans never need quoting.
func BoolTuple(b bool) *tuple.Scalar {
	if b {
		return trueTuple
	}

	return falseTuple
}

func boolFromRune(src iohelp.Source, r rune) (bool, error) {
	switch r {
	case 't':
		return true, nil
	case 'f':
		return false, nil
	default:
		return false, ErrUnexpectedChar.New("'t' or 'f'", src.Pos(), r)
	}
}

// ParseNullableBool reads a boolean record field and the delimiter which follows it. An empty field is NULL and is
// returned as nil.
func ParseNullableBool(src iohelp.Source) (*bool, error) {
	cur, err := read(src, "boolean field")
	if err != nil {
		return nil, err
	}

	if isFieldDelimiter(cur) {
		return nil, nil
	}

	b, err := boolFromRune(src, cur)
	if err != nil {
		return nil, err
	}

	if err := readFieldEnd(src); err != nil {
		return nil, err
	}

	return &b, nil
}

// ParseBool reads a boolean record field like ParseNullableBool, returning false for NULL.
func ParseBool(src iohelp.Source) (bool, error) {
	b, err := ParseNullableBool(src)
	if err != nil || b == nil {
		return false, err
	}

	return *b, nil
}

// ParseNullableBoolCollection reads a boolean array field in |context|. NULL elements are nil and a NULL array is a
// nil slice.
func ParseNullableBoolCollection(src iohelp.Source, context int) ([]*bool, error) {
	return parseArray(src, context, func(first rune) (*bool, error) {
		if first == 'N' {
			return nil, readNullMarker(src)
		}

		b, err := boolFromRune(src, first)
		if err != nil {
			return nil, err
		}

		return &b, nil
	})
}

// ParseBoolCollection reads a boolean array field in |context|. NULL elements are false and a NULL array is a nil
// slice.
func ParseBoolCollection(src iohelp.Source, context int) ([]bool, error) {
	return parseArray(src, context, func(first rune) (bool, error) {
		if first == 'N' {
			return false, readNullMarker(src)
		}

		return boolFromRune(src, first)
	})
}
