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
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/attic-labs/kingpin"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/zhxjdwh/revenj/libraries/pgcore/bulk"
	"github.com/zhxjdwh/revenj/libraries/pgcore/converters"
	"github.com/zhxjdwh/revenj/libraries/pgcore/escape"
	"github.com/zhxjdwh/revenj/libraries/pgcore/pgconfig"
	"github.com/zhxjdwh/revenj/libraries/utils/errhand"
	"github.com/zhxjdwh/revenj/libraries/utils/iohelp"
)

var commands = []func(app *kingpin.Application) (*kingpin.CmdClause, handler){
	literalCommand,
	copyCommand,
	readCopyCommand,
	parseBoolsCommand,
	configCommand,
}

// openInput opens |path|, or returns stdin when no path was given.
func openInput(env *cliEnv, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(env.stdin), nil
	}

	return os.Open(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

func literalCommand(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	cmd := app.Command("literal", `Renders a YAML value document as a SQL literal or, in bulk mode, as COPY text.
If no file is given the document is read from stdin.`)
	path := cmd.Arg("file", "the YAML document").String()
	quote := cmd.Flag("quote", "wrap the literal in single quotes (overrides output.quote)").Bool()
	bulkMode := cmd.Flag("bulk", "render as COPY text (overrides output.mode)").Bool()

	return cmd, func(env *cliEnv) error {
		rd, err := openInput(env, *path)
		if err != nil {
			return errhand.BuildIf(err, "error: failed to open %s", *path).Build()
		}
		defer rd.Close()

		v, err := readDocument(rd)
		if err != nil {
			return errhand.BuildIf(err, "error: invalid document").Build()
		}

		bWr := bufio.NewWriter(env.stdout)
		if *bulkMode || env.cfg.IsBulk() {
			err = v.Build(bWr, true, escape.EscapeBulkCopy)
		} else {
			var literal string
			literal, err = v.BuildTuple(*quote || env.cfg.Output.Quote)
			if err == nil {
				_, err = bWr.WriteString(literal)
			}
		}

		if err == nil {
			err = iohelp.WriteLine(bWr, "")
		}

		if err == nil {
			err = bWr.Flush()
		}

		return errhand.BuildIf(err, "error: failed to write output").Build()
	}
}

func copyCommand(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	cmd := app.Command("copy", `Writes a YAML list of rows as COPY text.
Each row is a list of field values. If no file is given the rows are read from stdin.`)
	path := cmd.Arg("file", "the YAML row list").String()
	out := cmd.Flag("out", "file to write, stdout when not set").Short('o').String()

	return cmd, func(env *cliEnv) error {
		rd, err := openInput(env, *path)
		if err != nil {
			return errhand.BuildIf(err, "error: failed to open %s", *path).Build()
		}
		defer rd.Close()

		rows, err := readRows(rd)
		if err != nil {
			return errhand.BuildIf(err, "error: invalid row list").Build()
		}

		var wr *bulk.Writer
		if *out != "" {
			wr, err = bulk.OpenWriter(*out, env.cfg.Bulk.Fields, env.cfg.Bulk.BufferSize)
			if err != nil {
				return errhand.BuildIf(err, "error: failed to create %s", *out).Build()
			}
		} else {
			wr = bulk.NewWriterSize(nopWriteCloser{env.stdout}, env.cfg.Bulk.Fields, env.cfg.Bulk.BufferSize)
		}

		for _, row := range rows {
			if err = wr.WriteRow(row); err != nil {
				discardOutput(wr, *out)
				return errhand.BuildIf(err, "error: failed to write row %d", wr.Rows()+1).Build()
			}
		}

		if err = wr.Close(); err != nil {
			return errhand.BuildIf(err, "error: failed to write output").Build()
		}

		logrus.Infof("wrote %d rows", len(rows))
		return nil
	}
}

// discardOutput closes |wr| after a failed write and removes the file at |path| when one was being written.
func discardOutput(wr *bulk.Writer, path string) {
	if err := wr.Close(); err != nil {
		logrus.Warnf("closing output after a failed write: %v", err)
	}

	if path == "" {
		return
	}

	if err := os.Remove(path); err != nil {
		logrus.Warnf("removing partial output %s: %v", path, err)
	}
}

func readCopyCommand(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	cmd := app.Command("read-copy", `Reads COPY text and prints the rows as a YAML list.
NULL fields are printed as null. If no file is given the rows are read from stdin.`)
	path := cmd.Arg("file", "the COPY text").String()

	return cmd, func(env *cliEnv) error {
		rd, err := openInput(env, *path)
		if err != nil {
			return errhand.BuildIf(err, "error: failed to open %s", *path).Build()
		}

		bRd := bulk.NewReaderSize(rd, env.cfg.Bulk.Fields, env.cfg.Bulk.BufferSize)
		defer bRd.Close()

		rows := make([][]*string, 0)
		for {
			row, err := bRd.ReadRow()
			if err == io.EOF {
				break
			} else if err != nil {
				return errhand.BuildIf(err, "error: failed to read row %d", len(rows)+1).Build()
			}

			rows = append(rows, row)
		}

		data, err := yaml.Marshal(rows)
		if err != nil {
			return errhand.BuildIf(err, "error: failed to encode rows").Build()
		}

		_, err = env.stdout.Write(data)
		return errhand.BuildIf(err, "error: failed to write output").Build()
	}
}

func parseBoolsCommand(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	cmd := app.Command("parse-bools", `Parses a boolean array literal such as {t,f,NULL} and prints one element per line.`)
	text := cmd.Arg("text", "the array literal").Required().String()
	context := cmd.Flag("context", "quote context the literal is nested in, 0 for a standalone literal").Default("0").Int()

	return cmd, func(env *cliEnv) error {
		if *context < 0 || *context > 1<<(escape.MaxDepth-1) || *context&(*context-1) != 0 {
			return errhand.BuildDError("error: invalid context %d", *context).Build()
		}

		values, err := converters.ParseNullableBoolCollection(iohelp.NewStringSource(*text), *context)
		if err != nil {
			return errhand.BuildIf(err, "error: failed to parse %s", *text).Build()
		}

		if values == nil {
			return iohelp.WriteLine(env.stdout, "NULL")
		}

		logrus.Debugf("parsed %d elements", len(values))
		for _, b := range values {
			s := "NULL"
			if b != nil {
				s = fmt.Sprint(*b)
			}

			if err := iohelp.WriteLine(env.stdout, s); err != nil {
				return err
			}
		}

		return nil
	}
}

func configCommand(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	cmd := app.Command("config", "Prints the active configuration.")

	return cmd, func(env *cliEnv) error {
		m := env.cfg.AsMap()
		for _, k := range pgconfig.Keys(m) {
			if err := iohelp.WriteLine(env.stdout, fmt.Sprintf("%s = %s", k, m[k])); err != nil {
				return err
			}
		}

		return nil
	}
}
