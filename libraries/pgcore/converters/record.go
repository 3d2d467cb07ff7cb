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
	"github.com/zhxjdwh/revenj/libraries/pgcore/escape"
	"github.com/zhxjdwh/revenj/libraries/utils/iohelp"
)

// FieldsParser parses the fields of a record whose opening parenthesis has been consumed. It must consume everything
// up to and including the closing parenthesis. |context| is the context of the fields.
type FieldsParser[T any] func(src iohelp.Source, context int) (T, error)

// ParseRecord reads a record in |context| along with the delimiter which follows it. Context 0 reads a record that
// stands on its own, such as a row value or a COPY field. ok is false when the record is NULL.
func ParseRecord[T any](src iohelp.Source, context int, parseFields FieldsParser[T]) (v T, ok bool, err error) {
	var zero T
	cur, err := read(src, "record")
	if err != nil {
		return zero, false, err
	}

	if isFieldDelimiter(cur) {
		return zero, false, nil
	}

	wrapped := cur != '('
	if wrapped {
		if err := openQuote(src, context, cur); err != nil {
			return zero, false, err
		}

		if err := expect(src, '('); err != nil {
			return zero, false, err
		}
	}

	// fields nest one level deeper, the same way array elements do
	v, err = parseFields(src, escape.NextArrayContext(context))
	if err != nil {
		return zero, false, err
	}

	if wrapped {
		if err := closeQuote(src, context); err != nil {
			return zero, false, err
		}
	}

	if err := readFieldEnd(src); err != nil {
		return zero, false, err
	}

	return v, true, nil
}

// SkipRecordEnd consumes the closing parenthesis of a record whose last field did not consume it, such as the empty
// record ().
func SkipRecordEnd(src iohelp.Source) error {
	return expect(src, ')')
}
