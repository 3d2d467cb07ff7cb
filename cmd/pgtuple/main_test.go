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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhxjdwh/revenj/libraries/utils/test"
)

type runResult struct {
	code   int
	stdout string
	stderr string
}

func testDir(t *testing.T) string {
	dir, err := test.MakeTestDir(os.TempDir(), t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

// runIn runs the tool with a config path inside |dir| so that no config file from the working directory is picked up.
func runIn(dir, stdin string, args ...string) runResult {
	color.NoColor = true

	var stdout, stderr bytes.Buffer
	args = append([]string{"--config", filepath.Join(dir, "pgtuple.toml")}, args...)
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return runResult{code, stdout.String(), stderr.String()}
}

func TestLiteral(t *testing.T) {
	dir := testDir(t)

	res := runIn(dir, "record: [5, null, hi]", "literal")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "(5,,hi)\n", res.stdout)

	res = runIn(dir, "record: [5, null, hi]", "literal", "--bulk")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "5\t\\N\thi\n", res.stdout)

	res = runIn(dir, "record: [\"it's\", {array: [a b]}]", "literal", "--quote")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, `'(it''s,"{\"a b\"}")'`+"\n", res.stdout)

	docPath := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(docPath, []byte("array: [true, null]"), os.ModePerm))
	res = runIn(dir, "", "literal", docPath)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "{t,NULL}\n", res.stdout)

	res = runIn(dir, "[1, 2]", "literal")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid document")
	assert.NotContains(t, res.stderr, "cause:")

	res = runIn(dir, "[1, 2]", "--verbose", "literal")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "cause:")

	res = runIn(dir, "", "literal", filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "failed to open")
}

func TestCopy(t *testing.T) {
	dir := testDir(t)
	rows := "- [1, two words, null]\n- [\"a\\tb\", {array: [true, false]}, {record: [x, \"y z\"]}]\n"

	res := runIn(dir, rows, "copy")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "1\ttwo words\t\\N\n"+"a\\tb\t{t,f}\t"+`(x,"y z")`+"\n", res.stdout)

	out := filepath.Join(dir, "out", "rows.copy")
	res = runIn(dir, rows, "copy", "-o", out)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "", res.stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "1\ttwo words\t\\N\n"+"a\\tb\t{t,f}\t"+`(x,"y z")`+"\n", string(data))

	res = runIn(dir, "", "read-copy", out)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "two words")
	assert.Contains(t, res.stdout, "null")
	assert.Contains(t, res.stdout, `(x,"y z")`)

	res = runIn(dir, "- hello\n", "copy")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid row list")
}

func TestCopyFieldCount(t *testing.T) {
	dir := testDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pgtuple.toml"), []byte("[bulk]\nfields = 2\n"), os.ModePerm))

	res := runIn(dir, "- [1, 2]\n- [1, 2, 3]\n", "copy")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "failed to write row 2")

	out := filepath.Join(dir, "rows.copy")
	res = runIn(dir, "- [1, 2]\n- [1, 2, 3]\n", "copy", "-o", out)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "failed to write row 2")
	assert.NoFileExists(t, out)

	res = runIn(dir, "a\tb\nc\n", "read-copy")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "failed to read row 2")
}

func TestParseBools(t *testing.T) {
	dir := testDir(t)

	res := runIn(dir, "", "parse-bools", "{t,f,NULL}")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "true\nfalse\nNULL\n", res.stdout)

	res = runIn(dir, "", "parse-bools", "--context", "2", `\"{t}\"`)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "true\n", res.stdout)

	res = runIn(dir, "", "parse-bools", "--context", "1", ",")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "NULL\n", res.stdout)

	res = runIn(dir, "", "parse-bools", "{t,NUL}")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "failed to parse")

	res = runIn(dir, "", "parse-bools", "--context", "3", "{t}")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid context")
}

func TestConfig(t *testing.T) {
	dir := testDir(t)

	res := runIn(dir, "", "config")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "bulk.buffer_size = 262144\nbulk.fields = 0\nlog.level = info\noutput.mode = literal\noutput.quote = false\n", res.stdout)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "pgtuple.toml"), []byte("[output]\nmode = \"bulk\"\n"), os.ModePerm))
	res = runIn(dir, "", "config")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "output.mode = bulk\n")

	res = runIn(dir, "record: [1, null]", "literal")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "1\t\\N\n", res.stdout)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "pgtuple.toml"), []byte("[output]\nmode = \"xml\"\n"), os.ModePerm))
	res = runIn(dir, "", "config")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "failed to load config")
}

func TestUsage(t *testing.T) {
	dir := testDir(t)

	res := runIn(dir, "")
	assert.Equal(t, 2, res.code)

	res = runIn(dir, "", "no-such-command")
	assert.Equal(t, 2, res.code)

	res = runIn(dir, "", "--help")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "parse-bools")
}
