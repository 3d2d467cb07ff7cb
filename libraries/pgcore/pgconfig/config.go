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

// Package pgconfig holds the settings of the pgtuple tool, read from a TOML file.
package pgconfig

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	goerrors "gopkg.in/src-d/go-errors.v1"
)

const (
	// ModeLiteral renders values as SQL literals.
	ModeLiteral = "literal"
	// ModeBulk renders values as COPY text.
	ModeBulk = "bulk"

	// DefaultFileName is the name of the config file looked up in the working directory.
	DefaultFileName = ".pgtuple.toml"

	defaultBufferSize = 256 * 1024
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = goerrors.NewKind("invalid config: %s")

// ErrUnknownKeys is returned by Load when the file contains keys which are not settings.
var ErrUnknownKeys = goerrors.NewKind("%s: unknown config keys %s")

type OutputConfig struct {
	Mode  string `toml:"mode"`
	Quote bool   `toml:"quote"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type BulkConfig struct {
	BufferSize int `toml:"buffer_size"`
	Fields     int `toml:"fields"`
}

// Config is the complete set of settings.
type Config struct {
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
	Bulk   BulkConfig   `toml:"bulk"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Output: OutputConfig{Mode: ModeLiteral},
		Log:    LogConfig{Level: logrus.InfoLevel.String()},
		Bulk:   BulkConfig{BufferSize: defaultBufferSize},
	}
}

// Load reads the config file at |path|. Settings missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}

		return nil, ErrUnknownKeys.New(path, strings.Join(keys, ", "))
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault reads the config file at |path| if there is one, and returns the default settings otherwise.
func LoadOrDefault(path string) (*Config, error) {
	_, err := os.Stat(path)

	if errors.Is(err, os.ErrNotExist) {
		logrus.Debugf("no config file at %s, using defaults", path)
		return Default(), nil
	} else if err != nil {
		return nil, err
	}

	return Load(path)
}

// Validate checks that every setting holds a usable value.
func (cfg *Config) Validate() error {
	switch cfg.Output.Mode {
	case ModeLiteral, ModeBulk:
	default:
		return ErrInvalidConfig.New(fmt.Sprintf("output.mode must be %q or %q, found %q", ModeLiteral, ModeBulk, cfg.Output.Mode))
	}

	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return ErrInvalidConfig.New(err.Error())
	}

	if cfg.Bulk.BufferSize <= 0 {
		return ErrInvalidConfig.New(fmt.Sprintf("bulk.buffer_size must be positive, found %d", cfg.Bulk.BufferSize))
	}

	if cfg.Bulk.Fields < 0 {
		return ErrInvalidConfig.New(fmt.Sprintf("bulk.fields must not be negative, found %d", cfg.Bulk.Fields))
	}

	return nil
}

// LogLevel returns the parsed log level. The config must have been validated.
func (cfg *Config) LogLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(cfg.Log.Level)

	if err != nil {
		return logrus.InfoLevel
	}

	return lvl
}

// IsBulk reports whether values are rendered as COPY text.
func (cfg *Config) IsBulk() bool {
	return cfg.Output.Mode == ModeBulk
}

// AsMap flattens the settings into dotted keys.
func (cfg *Config) AsMap() map[string]string {
	return map[string]string{
		"output.mode":      cfg.Output.Mode,
		"output.quote":     strconv.FormatBool(cfg.Output.Quote),
		"log.level":        cfg.Log.Level,
		"bulk.buffer_size": strconv.Itoa(cfg.Bulk.BufferSize),
		"bulk.fields":      strconv.Itoa(cfg.Bulk.Fields),
	}
}

// Encode writes the settings as TOML.
func (cfg *Config) Encode(wr io.Writer) error {
	return toml.NewEncoder(wr).Encode(cfg)
}

// Keys returns the dotted keys of AsMap in sorted order.
func Keys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	return keys
}
