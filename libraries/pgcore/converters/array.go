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
	"github.com/zhxjdwh/revenj/libraries/pgcore/tuple"
	"github.com/zhxjdwh/revenj/libraries/utils/iohelp"
)

// ElementParser parses one record element of an array. It is called after the opening parenthesis of the element
// has been consumed and must consume everything up to and including the closing parenthesis, but not the delimiter
// which follows. |nestingLevel| is the escape depth of the element's content and |context| is the context of the
// element's fields.
type ElementParser[T any] func(src iohelp.Source, nestingLevel, context int) (T, error)

// parseArray reads an array field in |context|, handing the first character of every element to |parseElem|. It
// returns a nil slice for a NULL array and never returns a partially read array.
func parseArray[T any](src iohelp.Source, context int, parseElem func(first rune) (T, error)) ([]T, error) {
	cur, err := read(src, "array")
	if err != nil {
		return nil, err
	}

	if isFieldDelimiter(cur) {
		return nil, nil
	}

	wrapped := cur != '{'
	if wrapped {
		if err := openQuote(src, context, cur); err != nil {
			return nil, err
		}

		if err := expect(src, '{'); err != nil {
			return nil, err
		}
	}

	list := make([]T, 0)
	cur, err = peek(src, "array element")
	if err != nil {
		return nil, err
	}

	if cur == '}' {
		if err := advance(src); err != nil {
			return nil, err
		}
	} else {
		for {
			first, err := read(src, "array element")
			if err != nil {
				return nil, err
			}

			elem, err := parseElem(first)
			if err != nil {
				return nil, err
			}

			list = append(list, elem)

			sep, err := read(src, "',' or '}'")
			if err != nil {
				return nil, err
			}

			if sep == '}' {
				break
			} else if sep != ',' {
				return nil, ErrUnexpectedChar.New("',' or '}'", src.Pos(), sep)
			}
		}
	}

	if wrapped {
		if err := closeQuote(src, context); err != nil {
			return nil, err
		}
	}

	if err := readFieldEnd(src); err != nil {
		return nil, err
	}

	return list, nil
}

// ParseCollection reads an array of records in |context|, delegating each element to |parseItem|. NULL elements are
// the zero value of T and a NULL array is a nil slice. Errors returned by |parseItem| are passed through unchanged.
func ParseCollection[T any](src iohelp.Source, context int, parseItem ElementParser[T]) ([]T, error) {
	arrayContext := escape.NextArrayContext(context)
	recordContext := escape.NextRecordContext(arrayContext)
	nestingLevel := escape.ContextDepth(arrayContext)

	return parseArray(src, context, func(first rune) (T, error) {
		var zero T
		if first == 'N' {
			return zero, readNullMarker(src)
		}

		escaped := first != '('
		if escaped {
			if err := openQuote(src, arrayContext, first); err != nil {
				return zero, err
			}

			if err := expect(src, '('); err != nil {
				return zero, err
			}
		}

		item, err := parseItem(src, nestingLevel, recordContext)
		if err != nil {
			return zero, err
		}

		if escaped {
			if err := closeQuote(src, arrayContext); err != nil {
				return zero, err
			}
		}

		return item, nil
	})
}

// ToArray renders |data| as a quoted array literal, converting every element to text with |converter|. Elements are
// always quoted. A nil slice is NULL.
func ToArray[T any](data []T, converter func(T) string) string {
	if data == nil {
		return tuple.NullMarker
	}

	sink := &iohelp.BufferSink{}
	// writes to a BufferSink cannot fail
	_ = WriteArray(sink, data, func(v T) tuple.Value {
		return tuple.NewScalar(converter(v), false, true)
	})

	return sink.String()
}

// WriteArray writes |data| to |sink| as a quoted array literal, converting every element with |converter|. A nil
// slice is written as NULL. The sink is not flushed.
func WriteArray[T any](sink iohelp.Sink, data []T, converter func(T) tuple.Value) error {
	if data == nil {
		_, err := sink.WriteString(tuple.NullMarker)
		return err
	}

	elems := make([]tuple.Value, len(data))
	for i, v := range data {
		elems[i] = converter(v)
	}

	if _, err := sink.WriteRune('\''); err != nil {
		return err
	}

	w := tuple.NewWriter(sink, escape.EscapeQuote)
	tuple.NewArray(elems).InsertRecord(w, 0)
	if w.Err() != nil {
		return w.Err()
	}

	_, err := sink.WriteRune('\'')
	return err
}
