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
	"gopkg.in/src-d/go-errors.v1"
)

// ErrUnexpectedEOF is returned when the input ends in the middle of a value.
var ErrUnexpectedEOF = errors.NewKind("unexpected end of input after character %d while reading %s")

// ErrUnexpectedChar is returned when the input does not contain the token the syntax requires.
var ErrUnexpectedChar = errors.NewKind("expected %s at character %d, found %q")

// ErrInvalidNullMarker is returned when an array element starting with N is not the NULL marker.
var ErrInvalidNullMarker = errors.NewKind("invalid NULL marker at character %d: found %q")

// ErrInvalidEscape is returned when a run of backslashes and double quotes inside a quoted value does not match the
// nesting context.
var ErrInvalidEscape = errors.NewKind("invalid escape sequence %q before character %d in context %d")
