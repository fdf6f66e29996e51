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


package config

import (
	"context"
	"fmt"

	hashio "github.com/sigstore/bc-hash/pkg/hashing/engines/io"
)

// Range restricts hashing to bytes [Start, End) of each file.
type Range struct {
	Start int64
	End   int64
}

// Length returns End - Start.
func (r Range) Length() int64 {
	return r.End - r.Start
}

// CompressionMode parses Compression.
func (c *Config) CompressionMode() (hashio.Compression, error) {
	return hashio.ParseCompression(c.Compression)
}

// FileHasherFactory returns the factory the settings describe. A non-nil
// rng selects range hashing, which reads stored bytes and so cannot be
// combined with decompression.
func (c *Config) FileHasherFactory(rng *Range) (hashio.FileHasherFactory, error) {
	compression, err := c.CompressionMode()
	if err != nil {
		return nil, err
	}

	if rng == nil {
		return hashio.NewSimpleFileHasherFactory(c.ChunkSize, compression), nil
	}

	if compression != hashio.CompressionNone {
		return nil, fmt.Errorf("range hashing cannot be combined with %s decompression", compression)
	}
	if rng.Start < 0 || rng.End < rng.Start {
		return nil, fmt.Errorf("invalid range [%d, %d)", rng.Start, rng.End)
	}
	return hashio.NewRangeFileHasherFactory(c.ChunkSize, rng.Start, rng.End), nil
}

// HashFiles hashes every path with the configured chunk size, compression
// and worker count. Per-file failures are reported in the results; the
// error is only for unusable settings.
func (c *Config) HashFiles(ctx context.Context, paths []string, rng *Range) ([]hashio.FileResult, error) {
	factory, err := c.FileHasherFactory(rng)
	if err != nil {
		return nil, err
	}
	return hashio.HashFiles(ctx, paths, factory, c.Workers), nil
}
