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

// ReadLine will read a line from an unbuffered io.Reader where it considers lines to be separated by newlines (\n).
// The data returned will be a string with \r\n characters removed from the end, a bool which says whether the end of
// the stream has been reached, and any errors that have been encountered (other than eof which is treated as the end of
// the final line)
func ReadLine(br *bufio.Reader) (line string, done bool, err error) {
	line, err = br.ReadString('\n')

	if err != nil {
		if err == io.EOF {
			return strings.TrimRight(line, "\r\n"), true, nil
		}

		return "", true, err
	}

	return strings.TrimRight(line, "\r\n"), false, nil
}

// Source is a forward only character reader with a single character of lookahead. Read and Peek return io.EOF
// once the input is exhausted.
type Source interface {
	// Read consumes and returns the next character.
	Read() (rune, error)
	// Peek returns the next character without consuming it.
	Peek() (rune, error)
	// Pos returns the number of characters consumed so far.
	Pos() int
}

// RuneSource is a Source backed by an io.RuneScanner.
type RuneSource struct {
	rd  io.RuneScanner
	pos int
}

var _ Source = (*RuneSource)(nil)

// NewSource returns a Source reading from |rd|. Readers which do not already implement io.RuneScanner are wrapped in
// a bufio.Reader.
func NewSource(rd io.Reader) *RuneSource {
	if rs, ok := rd.(io.RuneScanner); ok {
		return &RuneSource{rd: rs}
	}

	return &RuneSource{rd: bufio.NewReader(rd)}
}

// NewStringSource returns a Source reading the characters of |s|.
func NewStringSource(s string) *RuneSource {
	return &RuneSource{rd: strings.NewReader(s)}
}

// Read implements Source.
func (s *RuneSource) Read() (rune, error) {
	r, _, err := s.rd.ReadRune()

	if err != nil {
		return 0, err
	}

	s.pos++
	return r, nil
}

// Peek implements Source.
func (s *RuneSource) Peek() (rune, error) {
	r, _, err := s.rd.ReadRune()

	if err != nil {
		return 0, err
	}

	return r, s.rd.UnreadRune()
}

// Pos implements Source.
func (s *RuneSource) Pos() int {
	return s.pos
}
