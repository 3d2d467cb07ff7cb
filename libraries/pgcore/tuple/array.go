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

// Array is an ordered list of elements, by convention all of the same type. A nil element is NULL.
type Array struct {
	elems []Value
}

var _ Value = (*Array)(nil)

// NewArray returns an Array over |elems|. A nil slice makes the whole array NULL, while an empty non-nil slice is the
// empty array {}. The array takes ownership of the slice.
func NewArray(elems []Value) *Array {
	return &Array{elems: elems}
}

// Len returns the number of elements, 0 for a NULL array.
func (a *Array) Len() int {
	return len(a.elems)
}

// Elem returns the element at |i|.
func (a *Array) Elem(i int) Value {
	return a.elems[i]
}

// MustEscapeRecord implements Value.
func (a *Array) MustEscapeRecord() bool {
	return a.elems != nil
}

// MustEscapeArray implements Value.
func (a *Array) MustEscapeArray() bool {
	return a.elems != nil
}

// InsertRecord implements Value. A NULL array field is an empty slot.
func (a *Array) InsertRecord(w *Writer, depth int) {
	if a.elems == nil {
		return
	}

	a.writeElements(w, depth)
}

// InsertArray implements Value.
func (a *Array) InsertArray(w *Writer, depth int) {
	if a.elems == nil {
		w.WriteString(NullMarker)
		return
	}

	a.writeElements(w, depth)
}

func (a *Array) writeElements(w *Writer, depth int) {
	w.WriteRune('{')

	var quote string
	for i, e := range a.elems {
		switch {
		case IsNull(e):
			w.WriteString(NullMarker)
		case e.MustEscapeArray():
			if quote == "" {
				quote = escape.QuoteString(depth)
			}

			w.WriteString(quote)
			e.InsertArray(w, escape.NextEncodeDepth(depth))
			w.WriteString(quote)
		default:
			e.InsertArray(w, depth)
		}

		if i < len(a.elems)-1 {
			w.WriteRune(',')
		}
	}

	w.WriteRune('}')
}

// BuildTuple implements Value.
func (a *Array) BuildTuple(quote bool) (string, error) {
	return buildTuple(a, quote)
}

// Build implements Value.
func (a *Array) Build(sink iohelp.Sink, _ bool, mapping escape.Mapping) error {
	if a.elems == nil {
		return buildNull(sink, false)
	}

	w := NewWriter(sink, mapping)
	a.InsertRecord(w, 0)
	if w.Err() != nil {
		return w.Err()
	}

	return sink.Flush()
}

func (a *Array) isNull() bool {
	return a.elems == nil
}
