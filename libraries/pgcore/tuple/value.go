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

// Package tuple renders values into PostgreSQL's record and array text syntax.
//
// A Value is one of Null, *Scalar, *Record or *Array. Records render as (f1,f2,...) and arrays as {e1,e2,...}. A
// child which could contain metacharacters of its container is wrapped in a quote sequence produced by the escape
// package, and everything inside that quote is escaped one level deeper. The same tree can be rendered as a SQL
// literal, optionally wrapped in single quotes, or as a row of the COPY text format.
package tuple

import (
	"strings"

	"github.com/zhxjdwh/revenj/libraries/pgcore/escape"
	"github.com/zhxjdwh/revenj/libraries/utils/iohelp"
)

// NullMarker is the token PostgreSQL uses for a NULL array element or a NULL literal.
const NullMarker = "NULL"

// BulkNull is the token for a NULL field in the COPY text format.
const BulkNull = `\N`

// Value is a node of a tuple tree. The set of implementations is closed: Null, *Scalar, *Record and *Array.
type Value interface {
	// MustEscapeRecord returns whether the value has to be quoted when it is a record field.
	MustEscapeRecord() bool
	// MustEscapeArray returns whether the value has to be quoted when it is an array element.
	MustEscapeArray() bool

	// InsertRecord writes the value as a record field whose content is at |depth|. The caller has already written
	// any quote the value needs.
	InsertRecord(w *Writer, depth int)
	// InsertArray writes the value as an array element whose content is at |depth|. The caller has already written
	// any quote the value needs.
	InsertArray(w *Writer, depth int)

	// BuildTuple renders the value as a standalone SQL literal. When |quote| is true the literal is wrapped in single
	// quotes and embedded single quotes are doubled.
	BuildTuple(quote bool) (string, error)
	// Build renders the value into |sink| and flushes it. In bulk mode record fields are tab separated and NULL
	// fields are written as \N. |mapping| may be nil.
	Build(sink iohelp.Sink, bulk bool, mapping escape.Mapping) error

	isNull() bool
}

// IsNull returns whether |v| renders as NULL: a nil Value, Null, or a record or array built without children.
func IsNull(v Value) bool {
	return v == nil || v.isNull()
}

// Writer renders tuple text into a sink, passing every character through an optional mapping. The first error is
// kept and every later write is dropped.
type Writer struct {
	sink    iohelp.Sink
	mapping escape.Mapping
	err     error
}

// NewWriter returns a Writer for |sink|. |mapping| may be nil.
func NewWriter(sink iohelp.Sink, mapping escape.Mapping) *Writer {
	return &Writer{sink: sink, mapping: mapping}
}

// WriteRune writes a single character through the mapping.
func (w *Writer) WriteRune(r rune) {
	if w.err != nil {
		return
	}

	if w.mapping != nil {
		w.err = w.mapping(w.sink, r)
	} else {
		_, w.err = w.sink.WriteRune(r)
	}
}

// WriteString writes every character of |s| through the mapping.
func (w *Writer) WriteString(s string) {
	if w.err != nil {
		return
	}

	if w.mapping == nil {
		_, w.err = w.sink.WriteString(s)
		return
	}

	for _, r := range s {
		w.WriteRune(r)
	}
}

// writeRaw bypasses the mapping. It is used for framing that sits outside of the mapped text.
func (w *Writer) writeRaw(s string) {
	if w.err != nil {
		return
	}

	_, w.err = w.sink.WriteString(s)
}

// writeEscaped writes |s| as content at |depth|, escaping backslashes and double quotes for every enclosing quote.
func (w *Writer) writeEscaped(s string, depth int) {
	if depth == 0 || !strings.ContainsAny(s, `\"`) {
		w.WriteString(s)
		return
	}

	for _, r := range s {
		switch r {
		case '\\':
			w.WriteString(escape.SlashString(depth))
		case '"':
			w.WriteString(escape.QuoteString(depth))
		default:
			w.WriteRune(r)
		}
	}
}

// Err returns the first error encountered while writing.
func (w *Writer) Err() error {
	return w.err
}

func buildTuple(v Value, quote bool) (string, error) {
	if IsNull(v) {
		return NullMarker, nil
	}

	sink := &iohelp.BufferSink{}
	var mapping escape.Mapping
	if quote {
		mapping = escape.EscapeQuote
		sink.WriteRune('\'')
	}

	w := NewWriter(sink, mapping)
	v.InsertRecord(w, 0)
	if w.Err() != nil {
		return "", w.Err()
	}

	if quote {
		sink.WriteRune('\'')
	}

	return sink.String(), nil
}

func buildNull(sink iohelp.Sink, bulk bool) error {
	marker := NullMarker
	if bulk {
		marker = BulkNull
	}

	if _, err := sink.WriteString(marker); err != nil {
		return err
	}

	return sink.Flush()
}

// BuildStream renders |v| with Build and returns the result as a stream.
func BuildStream(v Value, bulk bool, mapping escape.Mapping) (*strings.Reader, error) {
	sink := &iohelp.BufferSink{}
	if err := v.Build(sink, bulk, mapping); err != nil {
		return nil, err
	}

	return strings.NewReader(sink.String()), nil
}

// String renders |v| as an unquoted literal.
func String(v Value) string {
	if IsNull(v) {
		return NullMarker
	}

	s, err := v.BuildTuple(false)
	if err != nil {
		return "<" + err.Error() + ">"
	}

	return s
}

type nullValue struct{}

// Null is the SQL NULL value.
var Null Value = nullValue{}

func (nullValue) MustEscapeRecord() bool { return false }
func (nullValue) MustEscapeArray() bool  { return false }

// InsertRecord implements Value. A NULL record field is an empty slot.
func (nullValue) InsertRecord(*Writer, int) {}

// InsertArray implements Value.
func (nullValue) InsertArray(w *Writer, _ int) {
	w.WriteString(NullMarker)
}

func (nullValue) BuildTuple(bool) (string, error) {
	return NullMarker, nil
}

func (nullValue) Build(sink iohelp.Sink, bulk bool, _ escape.Mapping) error {
	return buildNull(sink, bulk)
}

func (nullValue) isNull() bool { return true }
