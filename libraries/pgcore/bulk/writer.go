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
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/zhxjdwh/revenj/libraries/pgcore/escape"
	"github.com/zhxjdwh/revenj/libraries/pgcore/tuple"
)

// WriteBufSize is the default size of the buffer used when writing COPY text.
var WriteBufSize = 256 * 1024

// rowSink hands rows to the buffered writer without flushing after every row.
type rowSink struct {
	*bufio.Writer
}

func (rowSink) Flush() error {
	return nil
}

// Writer writes records as rows of the COPY text format.
type Writer struct {
	closer    io.Closer
	bWr       *bufio.Writer
	numFields int
	rows      int
}

// OpenWriter creates the file at |path|, along with any missing parent directories, and returns a Writer for it.
// |numFields| is the expected number of fields per row, or 0 to accept rows of any width.
func OpenWriter(path string, numFields, bufSize int) (*Writer, error) {
	err := os.MkdirAll(filepath.Dir(path), os.ModePerm)

	if err != nil {
		return nil, err
	}

	wr, err := os.Create(path)

	if err != nil {
		return nil, err
	}

	return NewWriterSize(wr, numFields, bufSize), nil
}

// NewWriter returns a Writer for |wr| using WriteBufSize.
func NewWriter(wr io.WriteCloser, numFields int) *Writer {
	return NewWriterSize(wr, numFields, WriteBufSize)
}

// NewWriterSize returns a Writer for |wr| buffering up to |bufSize| bytes.
func NewWriterSize(wr io.WriteCloser, numFields, bufSize int) *Writer {
	if bufSize <= 0 {
		bufSize = WriteBufSize
	}

	return &Writer{closer: wr, bWr: bufio.NewWriterSize(wr, bufSize), numFields: numFields}
}

// WriteRow writes |row| as a single line. A NULL row has no COPY representation and is rejected.
func (w *Writer) WriteRow(row *tuple.Record) error {
	if w.closer == nil {
		return ErrClosed.New()
	}

	if tuple.IsNull(row) {
		return ErrNullRow.New(w.rows + 1)
	}

	if w.numFields > 0 && row.Len() != w.numFields {
		return ErrFieldCount.New(w.rows+1, row.Len(), w.numFields)
	}

	err := row.Build(rowSink{w.bWr}, true, escape.EscapeBulkCopy)

	if err != nil {
		return err
	}

	if err = w.bWr.WriteByte('\n'); err != nil {
		return err
	}

	w.rows++
	return nil
}

// Rows returns the number of rows written so far.
func (w *Writer) Rows() int {
	return w.rows
}

// Close flushes all writes and closes the underlying writer.
func (w *Writer) Close() error {
	if w.closer == nil {
		return ErrClosed.New()
	}

	errFl := w.bWr.Flush()
	errCl := w.closer.Close()
	w.closer = nil

	logrus.WithField("rows", w.rows).Debug("closed COPY writer")

	if errCl != nil {
		return errCl
	}

	return errFl
}
