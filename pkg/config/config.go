// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package config loads bc-hash settings.
//
// Settings come from three layers, later ones winning: the values from
// Default, a YAML file named by --config or the BC_HASH_CONFIG environment
// variable, and command line flags. Unknown keys in the file are an error.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	hashio "github.com/sigstore/bc-hash/pkg/hashing/engines/io"
	"github.com/sigstore/bc-hash/pkg/logging"
)

// EnvConfigPath names the environment variable holding a config file path.
const EnvConfigPath = "BC_HASH_CONFIG"

// Output selects how digests are written.
type Output string

const (
	// OutputText writes "<hex>  <name>" lines, as sha256sum does.
	OutputText Output = "text"
	// OutputJSON writes one JSON document listing every file.
	OutputJSON Output = "json"
	// OutputCBOR writes the same document as deterministic CBOR.
	OutputCBOR Output = "cbor"
	// OutputStatement writes an in-toto Statement with one subject per file.
	OutputStatement Output = "statement"
)

// Config holds every setting the command line reads from a file.
type Config struct {
	// ChunkSize is the read size in bytes; 0 means the library default.
	ChunkSize int `yaml:"chunk_size"`

	// Workers bounds how many files are hashed at once; 0 means one per CPU.
	Workers int `yaml:"workers"`

	// Compression is one of none, gzip, zstd, lz4 or auto.
	Compression string `yaml:"compression"`

	// Output is one of text, json, cbor or statement.
	Output Output `yaml:"output"`

	// LogLevel is one of debug, info, warn, error or silent.
	LogLevel string `yaml:"log_level"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		ChunkSize:   hashio.DefaultChunkSize,
		Workers:     0,
		Compression: hashio.CompressionNone.String(),
		Output:      OutputText,
		LogLevel:    logging.LevelInfo.String(),
		LogFormat:   logging.FormatText.String(),
	}
}

// Load reads path on top of Default and validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	//nolint:errcheck
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromEnv loads the file named by BC_HASH_CONFIG. When the variable
// is unset it returns Default and no error.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Decode reads YAML from r on top of Default and validates the result.
// An empty document leaves the defaults in place.
func Decode(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.ChunkSize < 0 {
		errs = append(errs, fmt.Errorf("chunk_size must not be negative, got %d", c.ChunkSize))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if _, err := hashio.ParseCompression(c.Compression); err != nil {
		errs = append(errs, fmt.Errorf("compression: %w", err))
	}
	switch c.Output {
	case OutputText, OutputJSON, OutputCBOR, OutputStatement:
	default:
		errs = append(errs, fmt.Errorf("output: unknown format %q (supported: text, json, cbor, statement)", c.Output))
	}
	if _, err := logging.LookupLogLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if _, err := logging.LookupLogFormat(c.LogFormat); err != nil {
		errs = append(errs, fmt.Errorf("log_format: %w", err))
	}

	return errors.Join(errs...)
}

// Logger builds the logger described by LogLevel and LogFormat, writing to w.
func (c *Config) Logger(w io.Writer) (*logging.DefaultLogger, error) {
	return logging.NewLogger(c.LogLevel, c.LogFormat, w)
}
