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

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhxjdwh/revenj/libraries/pgcore/tuple"
)

func TestReadDocument(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected string
	}{
		{"empty", "", "NULL"},
		{"null", "null", "NULL"},
		{"string", "hello", "hello"},
		{"number", "42", "42"},
		{"float", "1.5", "1.5"},
		{"bool", "true", "t"},
		{"record", "record: [5, null, hi]", "(5,,hi)"},
		{"null record", "record: null", "NULL"},
		{"empty record", "record: []", "()"},
		{"array", "array: [true, false, null]", "{t,f,NULL}"},
		{"null array", "array: null", "NULL"},
		{"quoted text", "record: [\"two words\", \"\"]", `("two words","")`},
		{"text flags", "array: [{text: abc, array: true}]", `{"abc"}`},
		{"text flags off", "record: [{text: a b, record: false}]", "(a b)"},
		{"nested", "record: [{array: [{record: [1, \"x y\"]}]}]", `("{\"(1,\\\"x y\\\")\"}")`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v, err := readDocument(strings.NewReader(test.doc))
			require.NoError(t, err)
			assert.Equal(t, test.expected, tuple.String(v))
		})
	}
}

func TestReadDocumentErrors(t *testing.T) {
	docs := []string{
		"[1, 2]",
		"record: 5",
		"array: {a: b}",
		"{record: [], array: []}",
		"{text: 5}",
		"{text: a, record: yes please}",
		"{other: 1}",
		"record: [[1]]",
	}

	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			_, err := readDocument(strings.NewReader(doc))
			require.Error(t, err)
			assert.True(t, ErrBadDocument.Is(err), "unexpected error: %v", err)
		})
	}

	_, err := readDocument(strings.NewReader("record: [unterminated"))
	assert.Error(t, err)
}

func TestReadRows(t *testing.T) {
	rows, err := readRows(strings.NewReader(`
- [1, two words, null]
- record: [t, {array: [true]}]
`))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, `(1,"two words",)`, tuple.String(rows[0]))
	assert.Equal(t, `(t,"{t}")`, tuple.String(rows[1]))

	rows, err = readRows(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = readRows(strings.NewReader("- hello"))
	assert.True(t, ErrBadDocument.Is(err))

	_, err = readRows(strings.NewReader("- record: null"))
	assert.True(t, ErrBadDocument.Is(err))
}
