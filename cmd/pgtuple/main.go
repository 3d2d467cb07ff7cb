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

// pgtuple converts between YAML documents and the PostgreSQL text forms of records and arrays.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/attic-labs/kingpin"
	"github.com/sirupsen/logrus"

	"github.com/zhxjdwh/revenj/libraries/pgcore/pgconfig"
	"github.com/zhxjdwh/revenj/libraries/utils/errhand"
)

type handler func(env *cliEnv) error

// cliEnv is everything a command needs from the process.
type cliEnv struct {
	cfg    *pgconfig.Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	exitCode := -1
	app := kingpin.New("pgtuple", "Renders and parses PostgreSQL record and array text.")
	app.HelpFlag.Short('h')
	app.UsageWriter(stdout)
	app.ErrorWriter(stderr)
	app.Terminate(func(code int) {
		exitCode = code
	})

	// global flags
	configPath := app.Flag("config", "path of the TOML config file").Default(pgconfig.DefaultFileName).String()
	verboseVal := app.Flag("verbose", "log debug output and show error causes").Short('v').Bool()

	handlers := map[string]handler{}
	for _, register := range commands {
		command, h := register(app)
		handlers[command.FullCommand()] = h
	}

	input, err := app.Parse(args)

	if exitCode >= 0 {
		return exitCode
	} else if err != nil {
		app.Errorf("%s, try --help", err)
		return 2
	}

	logrus.SetOutput(stderr)

	cfg, err := pgconfig.LoadOrDefault(*configPath)

	if err != nil {
		return printError(stderr, errhand.BuildIf(err, "error: failed to load config").Build(), *verboseVal)
	}

	if *verboseVal {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(cfg.LogLevel())
	}

	h := handlers[strings.Split(input, " ")[0]]
	if h == nil {
		app.Usage(nil)
		return 2
	}

	err = h(&cliEnv{cfg: cfg, stdin: stdin, stdout: stdout, stderr: stderr})

	if err != nil {
		return printError(stderr, err, *verboseVal)
	}

	return 0
}

func printError(stderr io.Writer, err error, verbose bool) int {
	if vErr, ok := err.(errhand.VerboseError); ok && verbose {
		fmt.Fprintln(stderr, vErr.Verbose())
	} else {
		fmt.Fprintln(stderr, err.Error())
	}

	return 1
}
