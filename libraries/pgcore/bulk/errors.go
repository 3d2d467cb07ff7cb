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

package bulk

import "gopkg.in/src-d/go-errors.v1"

// ErrClosed is returned when a Writer or Reader is used after Close.
var ErrClosed = errors.NewKind("COPY stream already closed")

// ErrNullRow is returned by WriteRow for a NULL record, which has no COPY text form.
var ErrNullRow = errors.NewKind("row %d is NULL")

// ErrFieldCount is returned when a row does not have the configured number of fields.
var ErrFieldCount = errors.NewKind("row %d has %d fields, expected %d")

// ErrInvalidEscape is returned by ReadRow when a field ends in an unpaired backslash.
var ErrInvalidEscape = errors.NewKind("row %d field %d: backslash at end of field")
