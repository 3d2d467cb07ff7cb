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

// Package errhand builds errors meant to be shown to a command line user: a short message, optional details, and
// the underlying cause which is only printed in verbose mode.
package errhand

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// VerboseError is an error which can describe itself at greater length.
type VerboseError interface {
	error
	Verbose() string
}

type DErrorBuilder struct {
	dispMsg string
	details []string
	cause   error
}

// BuildDError starts an error with the display message |dispFmt|.
func BuildDError(dispFmt string, args ...interface{}) *DErrorBuilder {
	return &DErrorBuilder{dispMsg: sprintf(dispFmt, args)}
}

// BuildIf starts an error caused by |err|. It returns nil when |err| is nil, and every builder method and Build
// accept a nil builder, so a chain collapses to a nil VerboseError.
func BuildIf(err error, dispFmt string, args ...interface{}) *DErrorBuilder {
	if err == nil {
		return nil
	}

	return &DErrorBuilder{dispMsg: sprintf(dispFmt, args), cause: err}
}

func sprintf(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}

	return fmt.Sprintf(format, args...)
}

// AddDetails adds a line of detail shown below the display message.
func (builder *DErrorBuilder) AddDetails(detailsFmt string, args ...interface{}) *DErrorBuilder {
	if builder == nil {
		return nil
	}

	builder.details = append(builder.details, sprintf(detailsFmt, args))
	return builder
}

// AddCause sets the underlying error.
func (builder *DErrorBuilder) AddCause(cause error) *DErrorBuilder {
	if builder == nil {
		return nil
	}

	builder.cause = cause
	return builder
}

// Build returns the error. A nil builder builds a nil error.
func (builder *DErrorBuilder) Build() VerboseError {
	if builder == nil {
		return nil
	}

	return &DError{builder.dispMsg, strings.Join(builder.details, "\n"), builder.cause}
}

type DError struct {
	DisplayMsg string
	Details    string
	cause      error
}

var _ VerboseError = (*DError)(nil)

func (derr *DError) Error() string {
	return color.RedString(derr.DisplayMsg)
}

// Unwrap returns the cause so that errors.Is and error kinds see through a DError.
func (derr *DError) Unwrap() error {
	return derr.cause
}

func (derr *DError) Verbose() string {
	sections := []string{derr.Error()}

	if derr.Details != "" {
		sections = append(sections, derr.Details)
	}

	if derr.cause != nil {
		var causeStr string
		if vCause, ok := derr.cause.(VerboseError); ok {
			causeStr = vCause.Verbose()
		} else {
			causeStr = derr.cause.Error()
		}

		sections = append(sections, "cause:", indent(causeStr, "\t"))
	}

	return strings.Join(sections, "\n")
}

func indent(str, indentStr string) string {
	lines := strings.Split(str, "\n")
	return indentStr + strings.Join(lines, "\n"+indentStr)
}
