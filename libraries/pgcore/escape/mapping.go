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

package escape

import (
	"github.com/zhxjdwh/revenj/libraries/utils/iohelp"
)

// Mapping writes the representation of a single output character to a sink. Mappings are applied one character at a
// time so that they also cover characters produced by the escaping of nested values.
type Mapping func(sink iohelp.Sink, r rune) error

// EscapeQuote doubles single quotes so the output can be placed inside a standard conforming SQL string literal.
func EscapeQuote(sink iohelp.Sink, r rune) error {
	var err error
	if r == '\'' {
		_, err = sink.WriteString("''")
	} else {
		_, err = sink.WriteRune(r)
	}

	return err
}

// EscapeBulkCopy escapes characters which are significant in the COPY text format.
func EscapeBulkCopy(sink iohelp.Sink, r rune) error {
	var err error
	switch r {
	case '\\':
		_, err = sink.WriteString(`\\`)
	case '\t':
		_, err = sink.WriteString(`\t`)
	case '\n':
		_, err = sink.WriteString(`\n`)
	case '\r':
		_, err = sink.WriteString(`\r`)
	case '\b':
		_, err = sink.WriteString(`\b`)
	case '\f':
		_, err = sink.WriteString(`\f`)
	case '\v':
		_, err = sink.WriteString(`\v`)
	default:
		_, err = sink.WriteRune(r)
	}

	return err
}
