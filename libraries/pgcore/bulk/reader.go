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

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/zhxjdwh/revenj/libraries/pgcore/tuple"
	"github.com/zhxjdwh/revenj/libraries/utils/iohelp"
)

// ReadBufSize is the default size of the buffer used when reading COPY text.
var ReadBufSize = 256 * 1024

// Reader reads rows of the COPY text format. Every field is returned unescaped, ready to be handed to the
// converters at context 0, and NULL fields are nil.
type Reader struct {
	closer    io.Closer
	bRd       *bufio.Reader
	numFields int
	numLine   int
	isDone    bool
}

// OpenReader opens the file at |path| for reading. |numFields| is the expected number of fields per row, or 0 to
// accept rows of any width.
func OpenReader(path string, numFields, bufSize int) (*Reader, error) {
	r, err := os.Open(path)

	if err != nil {
		return nil, err
	}

	return NewReaderSize(r, numFields, bufSize), nil
}

// NewReader returns a Reader for |r| using ReadBufSize.
func NewReader(r io.ReadCloser, numFields int) *Reader {
	return NewReaderSize(r, numFields, ReadBufSize)
}

// NewReaderSize returns a Reader for |r| buffering up to |bufSize| bytes.
func NewReaderSize(r io.ReadCloser, numFields, bufSize int) *Reader {
	if bufSize <= 0 {
		bufSize = ReadBufSize
	}

	return &Reader{closer: r, bRd: bufio.NewReaderSize(r, bufSize), numFields: numFields}
}

// ReadRow returns the fields of the next row, or io.EOF once every row has been read. The end-of-data marker \. ends
// the stream as well.
func (rd *Reader) ReadRow() ([]*string, error) {
	if rd.isDone {
		return nil, io.EOF
	}

	line, done, err := iohelp.ReadLine(rd.bRd)

	if err != nil {
		rd.isDone = true
		return nil, err
	}

	if done {
		rd.isDone = true

		if line == "" {
			return nil, io.EOF
		}
	}

	if line == `\.` {
		rd.isDone = true
		return nil, io.EOF
	}

	rd.numLine++
	fieldStrs := strings.Split(line, "\t")

	if rd.numFields > 0 && len(fieldStrs) != rd.numFields {
		logrus.Warnf("COPY line %d has %d fields, expected %d", rd.numLine, len(fieldStrs), rd.numFields)
		return nil, ErrFieldCount.New(rd.numLine, len(fieldStrs), rd.numFields)
	}

	fields := make([]*string, len(fieldStrs))
	for i, s := range fieldStrs {
		if s == tuple.BulkNull {
			continue
		}

		unescaped, ok := unescapeField(s)

		if !ok {
			return nil, ErrInvalidEscape.New(rd.numLine, i+1)
		}

		fields[i] = &unescaped
	}

	return fields, nil
}

// Close releases the underlying reader.
func (rd *Reader) Close() error {
	if rd.closer == nil {
		return ErrClosed.New()
	}

	err := rd.closer.Close()
	rd.closer = nil

	logrus.WithField("rows", rd.numLine).Debug("closed COPY reader")

	return err
}

// unescapeField reverses the backslash escapes of the COPY text format. A backslash before any other character
// stands for that character.
func unescapeField(s string) (string, bool) {
	if !strings.ContainsRune(s, '\\') {
		return s, true
	}

	sb := strings.Builder{}
	sb.Grow(len(s))

	escaped := false
	for _, r := range s {
		if !escaped {
			if r == '\\' {
				escaped = true
			} else {
				sb.WriteRune(r)
			}

			continue
		}

		escaped = false
		switch r {
		case 't':
			sb.WriteByte('\t')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		default:
			sb.WriteRune(r)
		}
	}

	return sb.String(), !escaped
}
