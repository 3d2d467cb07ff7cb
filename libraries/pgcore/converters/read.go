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
	"strconv"
	"strings"

	"github.com/zhxjdwh/revenj/libraries/pgcore/escape"
	"github.com/zhxjdwh/revenj/libraries/pgcore/tuple"
	"github.com/zhxjdwh/revenj/libraries/utils/iohelp"
)

func read(src iohelp.Source, reading string) (rune, error) {
	r, err := src.Read()
	if err == io.EOF {
		return 0, ErrUnexpectedEOF.New(src.Pos(), reading)
	}

	return r, err
}

func peek(src iohelp.Source, reading string) (rune, error) {
	r, err := src.Peek()
	if err == io.EOF {
		return 0, ErrUnexpectedEOF.New(src.Pos(), reading)
	}

	return r, err
}

func expect(src iohelp.Source, want rune) error {
	expected := strconv.QuoteRune(want)
	r, err := read(src, expected)
	if err != nil {
		return err
	}

	if r != want {
		return ErrUnexpectedChar.New(expected, src.Pos(), r)
	}

	return nil
}

func isFieldDelimiter(r rune) bool {
	return r == ',' || r == ')'
}

// readFieldEnd consumes the delimiter which terminates a record field. The end of the input also terminates a field,
// which is the case when a value is read on its own.
func readFieldEnd(src iohelp.Source) error {
	r, err := src.Read()
	if err == io.EOF {
		return nil
	} else if err != nil {
		return err
	}

	if !isFieldDelimiter(r) {
		return ErrUnexpectedChar.New("',' or ')'", src.Pos(), r)
	}

	return nil
}

// readNullMarker consumes the rest of the NULL marker once its leading N has been read.
func readNullMarker(src iohelp.Source) error {
	for _, want := range tuple.NullMarker[1:] {
		r, err := read(src, tuple.NullMarker)
		if err != nil {
			return err
		}

		if r != want {
			return ErrInvalidNullMarker.New(src.Pos(), r)
		}
	}

	return nil
}

// advance consumes the character returned by the preceding Peek.
func advance(src iohelp.Source) error {
	_, err := src.Read()
	return err
}

// readRun reads the run of backslashes and double quotes starting with |first|, which has already been consumed, and
// removes the escaping added by the quotes enclosing |context|. A quote sequence for |context| reduces to a single
// double quote however each enclosing level chose to escape it.
func readRun(src iohelp.Source, context int, first rune) ([]rune, error) {
	run := []rune{first}
	for {
		r, err := src.Peek()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		if !escape.IsQuoteChar(r) {
			break
		}

		if err := advance(src); err != nil {
			return nil, err
		}

		run = append(run, r)
	}

	unescaped := run
	for layers := escape.ContextDepth(context) - 1; layers > 0; layers-- {
		var ok bool
		if unescaped, ok = escape.Unescape(unescaped); !ok {
			return nil, ErrInvalidEscape.New(string(run), src.Pos(), context)
		}
	}

	return unescaped, nil
}

func quoteExpected(context int) string {
	if context < 1 {
		return strconv.Quote(`"`)
	}

	return strconv.Quote(escape.QuoteString(escape.ContextDepth(context) - 1))
}

// readQuote consumes a quote sequence for |context| starting with |first|, which has already been consumed.
func readQuote(src iohelp.Source, context int, first rune) error {
	if !escape.IsQuoteChar(first) {
		return ErrUnexpectedChar.New(quoteExpected(context), src.Pos(), first)
	}

	run, err := readRun(src, context, first)
	if ErrInvalidEscape.Is(err) || (err == nil && string(run) != `"`) {
		return ErrUnexpectedChar.New(quoteExpected(context), src.Pos(), first)
	}

	return err
}

// openQuote consumes the quote sequence for |context| which wraps a record or an array, starting with |first|.
func openQuote(src iohelp.Source, context int, first rune) error {
	if context == 0 {
		return ErrUnexpectedChar.New("an opening bracket", src.Pos(), first)
	}

	return readQuote(src, context, first)
}

// closeQuote consumes the quote sequence for |context| which ends a quoted record or array.
func closeQuote(src iohelp.Source, context int) error {
	r, err := read(src, quoteExpected(context))
	if err != nil {
		return err
	}

	return readQuote(src, context, r)
}

// readQuoted reads a value wrapped in the quote for |context|, from its first character |first| up to and including
// the closing quote.
//
// Once the escaping of the enclosing quotes is removed, a backslash escapes the character which follows it, a doubled
// double quote is a literal double quote and a single double quote closes the value.
func readQuoted(src iohelp.Source, context int, first rune, sb *strings.Builder) error {
	run, err := readRun(src, context, first)
	if err != nil {
		return err
	}

	if run[0] != '"' {
		return ErrUnexpectedChar.New(quoteExpected(context), src.Pos(), first)
	}

	closed, err := appendQuoted(src, context, run[1:], sb)
	for err == nil && !closed {
		var r rune
		if r, err = read(src, "quoted value"); err != nil {
			break
		}

		if !escape.IsQuoteChar(r) {
			sb.WriteRune(r)
			continue
		}

		if run, err = readRun(src, context, r); err == nil {
			closed, err = appendQuoted(src, context, run, sb)
		}
	}

	return err
}

// appendQuoted writes the characters |run| stands for inside a quoted value to |sb|. closed is true when |run| ends
// with the closing quote.
func appendQuoted(src iohelp.Source, context int, run []rune, sb *strings.Builder) (closed bool, err error) {
	for i := 0; i < len(run); i++ {
		switch {
		case run[i] == '\\' && i+1 < len(run):
			i++
			sb.WriteRune(run[i])
		case run[i] == '"' && i+1 < len(run) && run[i+1] == '"':
			i++
			sb.WriteRune('"')
		case run[i] == '"' && i+1 == len(run):
			return true, nil
		default:
			return false, ErrInvalidEscape.New(string(run[i:]), src.Pos(), context)
		}
	}

	return false, nil
}
