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

package test

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrSinkFull is returned by a FailingSink once its capacity is used up.
var ErrSinkFull = errors.New("sink full")

// TestDir creates a subdirectory inside the systems temp directory
func TestDir(dir, testName string) string {
	return filepath.Join(dir, testName, uuid.NewString())
}

// MakeTestDir creates a new, uniquely named test directory under |tempDir| and returns its path.
func MakeTestDir(tempDir, testName string) (string, error) {
	dir := TestDir(tempDir, testName)
	err := os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return "", err
	}

	return dir, nil
}

// FailingSink accepts up to |capacity| bytes and then fails every write with ErrSinkFull. It is used to verify that
// sink errors are surfaced unchanged.
type FailingSink struct {
	capacity int
	written  []byte
	flushes  int
}

// NewFailingSink returns a FailingSink that accepts |capacity| bytes.
func NewFailingSink(capacity int) *FailingSink {
	return &FailingSink{capacity: capacity}
}

func (fs *FailingSink) WriteRune(r rune) (int, error) {
	return fs.WriteString(string(r))
}

func (fs *FailingSink) WriteString(s string) (int, error) {
	if len(fs.written)+len(s) > fs.capacity {
		return 0, ErrSinkFull
	}

	fs.written = append(fs.written, s...)
	return len(s), nil
}

func (fs *FailingSink) Flush() error {
	fs.flushes++
	return nil
}

// Written returns everything accepted so far.
func (fs *FailingSink) Written() string {
	return string(fs.written)
}

// Flushes returns the number of Flush calls.
func (fs *FailingSink) Flushes() int {
	return fs.flushes
}
