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
	"io"
	"strings"

	"github.com/zhxjdwh/revenj/libraries/pgcore/escape"
	"github.com/zhxjdwh/revenj/libraries/pgcore/tuple"
	"github.com/zhxjdwh/revenj/libraries/utils/iohelp"
)

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}

	return false
}

// needsRecordQuote matches the rules record_out uses to decide whether a field is quoted.
func needsRecordQuote(s string) bool {
	if s == "" {
		return true
	}

	for _, r := range s {
		switch r {
		case '"', '\\', '(', ')', ',':
			return true
		}

		if isSpace(r) {
			return true
		}
	}

	return false
}

// needsArrayQuote matches the rules array_out uses to decide whether an element is quoted.
func needsArrayQuote(s string) bool {
	if s == "" || strings.EqualFold(s, tuple.NullMarker) {
		return true
	}

	for _, r := range s {
		switch r {
		case '"', '\\', '{', '}', ',':
			return true
		}

		if isSpace(r) {
			return true
		}
	}

	return false
}

// StringTuple returns the tuple value of |s|, quoted only where PostgreSQL would quote it.
func StringTuple(s string) *tuple.Scalar {
	return tuple.NewScalar(s, needsRecordQuote(s), needsArrayQuote(s))
}

// NullableStringTuple returns the tuple value of |s|, which is NULL when |s| is nil.
func NullableStringTuple(s *string) tuple.Value {
	if s == nil {
		return tuple.Null
	}

	return StringTuple(*s)
}

// ParseNullableString reads a text record field in |context| along with the delimiter which follows it. An empty
// unquoted field is NULL and is returned as nil. In context 0 the remainder of the input is the value.
func ParseNullableString(src iohelp.Source, context int) (*string, error) {
	sb := &strings.Builder{}
	if context == 0 {
		for {
			r, err := src.Read()
			if err == io.EOF {
				s := sb.String()
				return &s, nil
			} else if err != nil {
				return nil, err
			}

			sb.WriteRune(r)
		}
	}

	cur, err := read(src, "text field")
	if err != nil {
		return nil, err
	}

	if isFieldDelimiter(cur) {
		return nil, nil
	}

	if escape.IsQuoteChar(cur) {
		if err := readQuoted(src, context, cur, sb); err != nil {
			return nil, err
		}
	} else {
		sb.WriteRune(cur)
		if err := readUntil(src, sb, isFieldDelimiter); err != nil {
			return nil, err
		}
	}

	if err := readFieldEnd(src); err != nil {
		return nil, err
	}

	s := sb.String()
	return &s, nil
}

// ParseString reads a text record field like ParseNullableString, returning the empty string for NULL.
func ParseString(src iohelp.Source, context int) (string, error) {
	s, err := ParseNullableString(src, context)
	if err != nil || s == nil {
		return "", err
	}

	return *s, nil
}

// readUntil copies characters to |sb| until the next character satisfies |stop| or the input ends.
func readUntil(src iohelp.Source, sb *strings.Builder, stop func(rune) bool) error {
	for {
		r, err := src.Peek()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		if stop(r) {
			return nil
		}

		if err := advance(src); err != nil {
			return err
		}

		sb.WriteRune(r)
	}
}

func isElementDelimiter(r rune) bool {
	return r == ',' || r == '}'
}

func parseStringElement(src iohelp.Source, arrayContext int, first rune) (*string, error) {
	if isElementDelimiter(first) {
		return nil, ErrUnexpectedChar.New("an array element", src.Pos(), first)
	}

	sb := &strings.Builder{}
	if escape.IsQuoteChar(first) {
		if err := readQuoted(src, arrayContext, first, sb); err != nil {
			return nil, err
		}

		s := sb.String()
		return &s, nil
	}

	sb.WriteRune(first)
	for {
		r, err := peek(src, "array element")
		if err != nil {
			return nil, err
		}

		if isElementDelimiter(r) {
			break
		}

		if err := advance(src); err != nil {
			return nil, err
		}

		sb.WriteRune(r)
	}

	s := sb.String()
	if s == tuple.NullMarker {
		return nil, nil
	}

	return &s, nil
}

// ParseNullableStringCollection reads a text array field in |context|. NULL elements are nil and a NULL array is a
// nil slice.
func ParseNullableStringCollection(src iohelp.Source, context int) ([]*string, error) {
	arrayContext := escape.NextArrayContext(context)
	return parseArray(src, context, func(first rune) (*string, error) {
		return parseStringElement(src, arrayContext, first)
	})
}

// ParseStringCollection reads a text array field in |context|. NULL elements are empty strings and a NULL array is a
// nil slice.
func ParseStringCollection(src iohelp.Source, context int) ([]string, error) {
	arrayContext := escape.NextArrayContext(context)
	return parseArray(src, context, func(first rune) (string, error) {
		s, err := parseStringElement(src, arrayContext, first)
		if err != nil || s == nil {
			return "", err
		}

		return *s, nil
	})
}
