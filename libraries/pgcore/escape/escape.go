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

// Package escape holds the nesting algebra shared by the tuple renderers and the converters.
//
// Text nested inside a quoted record field or array element is escaped once more for every enclosing quote. On the
// encode side this is tracked as a depth, the number of quotes enclosing the text being written. A quote opened at
// depth d is QuoteString(d), 2^d-1 backslashes followed by a double quote, and the content inside it is written at
// depth d+1. On the decode side the same information is carried as a context, the length of the quote sequence that
// wraps a field or element at the current level. Context 0 means the text is not quoted at all.
package escape

import (
	"fmt"
	"math/bits"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// MaxDepth is the deepest nesting the codec renders. QuoteString(MaxDepth) is already 2^20 characters long.
const MaxDepth = 20

const cacheSize = 32

var quoteCache *lru.Cache[int, string]
var slashCache *lru.Cache[int, string]

func init() {
	var err error
	quoteCache, err = lru.New[int, string](cacheSize)
	if err != nil {
		panic("escape: quote cache initialization failed: " + err.Error())
	}

	slashCache, err = lru.New[int, string](cacheSize)
	if err != nil {
		panic("escape: slash cache initialization failed: " + err.Error())
	}
}

func checkDepth(depth int) {
	if depth < 0 || depth > MaxDepth {
		panic(fmt.Sprintf("escape depth %d out of range [0, %d]", depth, MaxDepth))
	}
}

// NextEncodeDepth returns the depth of content written inside a quote opened at |depth|.
func NextEncodeDepth(depth int) int {
	return depth + 1
}

// QuoteString returns the character sequence which opens and closes a quoted field or element at |depth|. This is
// also how a literal double quote is written in content at |depth|.
func QuoteString(depth int) string {
	if s, ok := quoteCache.Get(depth); ok {
		return s
	}

	checkDepth(depth)
	s := strings.Repeat(`\`, (1<<depth)-1) + `"`
	quoteCache.Add(depth, s)

	return s
}

// SlashString returns how a literal backslash is written in content at |depth|.
func SlashString(depth int) string {
	if s, ok := slashCache.Get(depth); ok {
		return s
	}

	checkDepth(depth)
	s := strings.Repeat(`\`, 1<<depth)
	slashCache.Add(depth, s)

	return s
}

// NextArrayContext returns the context of the elements of an array whose own context is |context|. A record read as
// a field nests the same way.
func NextArrayContext(context int) int {
	return max(context<<1, 1)
}

// NextRecordContext returns the context of the fields of a record which is an element of an array whose elements have
// context |arrayContext|.
func NextRecordContext(arrayContext int) int {
	return arrayContext << 1
}

// ContextDepth returns the encode depth of the content wrapped by a quote of length |context|.
func ContextDepth(context int) int {
	if context <= 0 {
		return 0
	}

	return bits.Len(uint(context))
}

// IsQuoteChar reports whether |r| is one of the characters quote sequences and their escapes are made of.
func IsQuoteChar(r rune) bool {
	return r == '"' || r == '\\'
}

// Unescape removes one level of quoting from a run of backslashes and double quotes. Every character of the level
// below was written as two, either a backslash followed by the character, as array_out and the tuple renderers do, or
// a doubled double quote, as record_out does. ok is false when |run| cannot have been written that way.
func Unescape(run []rune) (unescaped []rune, ok bool) {
	if len(run)%2 != 0 {
		return nil, false
	}

	unescaped = make([]rune, 0, len(run)/2)
	for i := 0; i < len(run); i += 2 {
		switch {
		case run[i] == '\\':
			unescaped = append(unescaped, run[i+1])
		case run[i] == '"' && run[i+1] == '"':
			unescaped = append(unescaped, '"')
		default:
			return nil, false
		}
	}

	return unescaped, true
}
