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

// Scalar is a leaf value whose text has already been rendered by a type specific converter.
type Scalar struct {
	text         string
	escapeRecord bool
	escapeArray  bool
}

var _ Value = (*Scalar)(nil)

// NewScalar returns a Scalar for |text|. |escapeRecord| and |escapeArray| tell the enclosing record or array whether
// the text must be quoted, which is the case whenever it could contain one of the container's metacharacters.
func NewScalar(text string, escapeRecord, escapeArray bool) *Scalar {
	return &Scalar{text: text, escapeRecord: escapeRecord, escapeArray: escapeArray}
}

// Text returns the unescaped text of the scalar.
func (s *Scalar) Text() string {
	return s.text
}

// MustEscapeRecord implements Value.
func (s *Scalar) MustEscapeRecord() bool {
	return s.escapeRecord
}

// MustEscapeArray implements Value.
func (s *Scalar) MustEscapeArray() bool {
	return s.escapeArray
}

// InsertRecord implements Value.
func (s *Scalar) InsertRecord(w *Writer, depth int) {
	w.writeEscaped(s.text, depth)
}

// InsertArray implements Value.
func (s *Scalar) InsertArray(w *Writer, depth int) {
	w.writeEscaped(s.text, depth)
}

// BuildTuple implements Value.
func (s *Scalar) BuildTuple(quote bool) (string, error) {
	return buildTuple(s, quote)
}

// Build implements Value.
func (s *Scalar) Build(sink iohelp.Sink, _ bool, mapping escape.Mapping) error {
	w := NewWriter(sink, mapping)
	w.WriteString(s.text)
	if w.Err() != nil {
		return w.Err()
	}

	return sink.Flush()
}

func (s *Scalar) isNull() bool {
	return false
}
