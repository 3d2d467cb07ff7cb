// Copyright 2019 Dolthub, Inc.
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

package iohelp

import (
	"bufio"
	"io"
	"strings"
)

// WriteLine writes |line| followed by a newline.
func WriteLine(wr io.Writer, line string) error {
	_, err := io.WriteString(wr, line+"\n")
	return err
}

// Sink is the character sink tuple text is rendered into. *bufio.Writer satisfies it.
type Sink interface {
	WriteRune(r rune) (int, error)
	WriteString(s string) (int, error)
	Flush() error
}

var _ Sink = (*bufio.Writer)(nil)
var _ Sink = (*BufferSink)(nil)

// BufferSink is an in memory Sink. The zero value is ready to use.
type BufferSink struct {
	sb strings.Builder
}

// WriteRune implements Sink.
func (bs *BufferSink) WriteRune(r rune) (int, error) {
	return bs.sb.WriteRune(r)
}

// WriteString implements Sink.
func (bs *BufferSink) WriteString(s string) (int, error) {
	return bs.sb.WriteString(s)
}

// Flush implements Sink. It is a no-op.
func (bs *BufferSink) Flush() error {
	return nil
}

// String returns everything written so far.
func (bs *BufferSink) String() string {
	return bs.sb.String()
}

// Len returns the number of bytes written so far.
func (bs *BufferSink) Len() int {
	return bs.sb.Len()
}
