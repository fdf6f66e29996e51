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


package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sigstore/bc-hash/pkg/config"
)

// HashingFlags override the hashing settings of the config file.
type HashingFlags struct {
	ChunkSize   int
	Workers     int
	Compression string
}

var _ FlagAdder = (*HashingFlags)(nil)

// AddFlags registers the hashing flags on cmd.
func (o *HashingFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.ChunkSize, "chunk-size", 0,
		"bytes read per chunk (default from config, 65536)")
	cmd.Flags().IntVarP(&o.Workers, "workers", "j", 0,
		"files hashed in parallel (default from config, one per CPU)")
	cmd.Flags().StringVar(&o.Compression, "compression", "",
		"decompress input before hashing (none, gzip, zstd, lz4, auto)")
}

// Apply copies the flags the user set onto cfg.
func (o *HashingFlags) Apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("chunk-size") {
		cfg.ChunkSize = o.ChunkSize
	}
	if flags.Changed("workers") {
		cfg.Workers = o.Workers
	}
	if flags.Changed("compression") {
		cfg.Compression = o.Compression
	}
	return cfg.Validate()
}

// SumOptions are the flags of the sum command.
type SumOptions struct {
	HashingFlags

	Output string
	Root   bool
	Offset int64
	Length int64
}

var _ FlagAdder = (*SumOptions)(nil)

// AddFlags registers the sum flags on cmd.
func (o *SumOptions) AddFlags(cmd *cobra.Command) {
	o.HashingFlags.AddFlags(cmd)
	cmd.Flags().StringVarP(&o.Output, "output", "o", "",
		"output format (text, json, cbor, statement; default from config, text)")
	cmd.Flags().BoolVar(&o.Root, "root", false,
		"also print the digest over all file digests in argument order")
	cmd.Flags().Int64Var(&o.Offset, "offset", 0,
		"hash only bytes starting at this offset (with --length)")
	cmd.Flags().Int64Var(&o.Length, "length", -1,
		"hash only this many bytes from --offset")
}

// Apply copies the flags the user set onto cfg.
func (o *SumOptions) Apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("output") {
		cfg.Output = config.Output(o.Output)
	}
	return o.HashingFlags.Apply(cmd, cfg)
}

// Range returns the byte range selected by --offset and --length, or nil
// when neither was given.
func (o *SumOptions) Range(cmd *cobra.Command) (*config.Range, error) {
	flags := cmd.Flags()
	if !flags.Changed("offset") && !flags.Changed("length") {
		return nil, nil
	}
	if !flags.Changed("length") {
		return nil, fmt.Errorf("--offset requires --length")
	}
	if o.Offset < 0 {
		return nil, fmt.Errorf("--offset must not be negative, got %d", o.Offset)
	}
	if o.Length < 0 {
		return nil, fmt.Errorf("--length must not be negative, got %d", o.Length)
	}
	return &config.Range{Start: o.Offset, End: o.Offset + o.Length}, nil
}

// CheckOptions are the flags of the check command.
type CheckOptions struct {
	HashingFlags

	Quiet         bool
	Status        bool
	IgnoreMissing bool
	Strict        bool
}

var _ FlagAdder = (*CheckOptions)(nil)

// AddFlags registers the check flags on cmd.
func (o *CheckOptions) AddFlags(cmd *cobra.Command) {
	o.HashingFlags.AddFlags(cmd)
	cmd.Flags().BoolVarP(&o.Quiet, "quiet", "q", false,
		"do not print OK for each verified file")
	cmd.Flags().BoolVar(&o.Status, "status", false,
		"print nothing; the exit code reports the result")
	cmd.Flags().BoolVar(&o.IgnoreMissing, "ignore-missing", false,
		"do not fail or report for files that do not exist")
	cmd.Flags().BoolVar(&o.Strict, "strict", false,
		"fail on improperly formatted checksum lines")
}
