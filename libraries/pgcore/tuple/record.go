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

package tuple

import (
	"github.com/zhxjdwh/revenj/libraries/pgcore/escape"
	"github.com/zhxjdwh/revenj/libraries/utils/iohelp"
)

// Record is a composite value with a fixed number of positional fields. A nil field is NULL.
type Record struct {
	props []Value
}

var _ Value = (*Record)(nil)

// NewRecord returns a Record over |props|. A nil slice makes the whole record NULL, while an empty non-nil slice is
// the empty record (). The record takes ownership of the slice.
func NewRecord(props []Value) *Record {
	return &Record{props: props}
}

// Len returns the number of fields, 0 for a NULL record.
func (r *Record) Len() int {
	return len(r.props)
}

// Field returns the field at |i|.
func (r *Record) Field(i int) Value {
	return r.props[i]
}

// Except replaces the fields at |indexes| with NULL and returns the record itself. The record is modified in place, so
// a caller that still needs the complete record must Clone it first. Indexes out of range panic.
func (r *Record) Except(indexes ...int) *Record {
	if r.props == nil {
		return r
	}

	for _, idx := range indexes {
		r.props[idx] = nil
	}

	return r
}

// Clone returns a copy of the record that does not share its field slice. Fields themselves are shared.
func (r *Record) Clone() *Record {
	if r.props == nil {
		return &Record{}
	}

	props := make([]Value, len(r.props))
	copy(props, r.props)

	return &Record{props: props}
}

// MustEscapeRecord implements Value.
func (r *Record) MustEscapeRecord() bool {
	return r.props != nil
}

// MustEscapeArray implements Value.
func (r *Record) MustEscapeArray() bool {
	return r.props != nil
}

// InsertRecord implements Value. A NULL record field is an empty slot.
func (r *Record) InsertRecord(w *Writer, depth int) {
	if r.props == nil {
		return
	}

	r.writeFields(w, depth)
}

// InsertArray implements Value. The record text is the same as for a record field; what differs between the two
// positions is decided by the container, which quotes according to MustEscapeArray.
func (r *Record) InsertArray(w *Writer, depth int) {
	if r.props == nil {
		w.WriteString(NullMarker)
		return
	}

	r.writeFields(w, depth)
}

func (r *Record) writeFields(w *Writer, depth int) {
	w.WriteRune('(')

	var quote string
	for i, p := range r.props {
		if !IsNull(p) {
			if p.MustEscapeRecord() {
				if quote == "" {
					quote = escape.QuoteString(depth)
				}

				w.WriteString(quote)
				p.InsertRecord(w, escape.NextEncodeDepth(depth))
				w.WriteString(quote)
			} else {
				p.InsertRecord(w, depth)
			}
		}

		if i < len(r.props)-1 {
			w.WriteRune(',')
		}
	}

	w.WriteRune(')')
}

// BuildTuple implements Value.
func (r *Record) BuildTuple(quote bool) (string, error) {
	return buildTuple(r, quote)
}

// Build implements Value. In bulk mode the fields are written as one row of the COPY text format without the
// enclosing parentheses.
func (r *Record) Build(sink iohelp.Sink, bulk bool, mapping escape.Mapping) error {
	if r.props == nil {
		return buildNull(sink, false)
	}

	w := NewWriter(sink, mapping)
	if bulk {
		for i, p := range r.props {
			if IsNull(p) {
				w.writeRaw(BulkNull)
			} else {
				p.InsertRecord(w, 0)
			}

			if i < len(r.props)-1 {
				w.writeRaw("\t")
			}
		}
	} else {
		r.InsertRecord(w, 0)
	}

	if w.Err() != nil {
		return w.Err()
	}

	return sink.Flush()
}

func (r *Record) isNull() bool {
	return r.props == nil
}
