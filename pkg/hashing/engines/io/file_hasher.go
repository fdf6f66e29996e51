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

// Package io feeds files and readers into a SHA-256 engine.
//
// Everything here is built from Update and Compute on an engine: bytes are
// read in fixed-size chunks, so hashing a file never loads it into memory.
// Errors returned by the underlying reader or by the operating system are
// passed back unchanged and no digest is produced for a failed read.
package io

import (
	hashengines "github.com/sigstore/bc-hash/pkg/hashing/engines"
	"github.com/sigstore/bc-hash/pkg/hashing/engines/memory"
)

// DefaultChunkSize is the read size used when a chunk size of zero or
// less is requested.
const DefaultChunkSize = 64 << 10

// FileHasher is a marker interface for hash engines that hash files.
type FileHasher interface {
	hashengines.HashEngine
}

// FileHasherFactory builds the FileHasher for one path.
type FileHasherFactory func(path string) (FileHasher, error)

// NewSimpleFileHasherFactory returns a factory of SimpleFileHashers that
// share the given chunk size and compression setting. Each hasher owns a
// fresh engine, so hashers from one factory can run concurrently.
func NewSimpleFileHasherFactory(chunkSize int, compression Compression) FileHasherFactory {
	return func(path string) (FileHasher, error) {
		return NewSimpleFileHasher(path, memory.NewSHA256Engine(), chunkSize, compression)
	}
}

// NewRangeFileHasherFactory returns a factory of RangeFileHashers that
// hash bytes [start, end) of every path.
func NewRangeFileHasherFactory(chunkSize int, start, end int64) FileHasherFactory {
	return func(path string) (FileHasher, error) {
		return NewRangeFileHasher(path, memory.NewSHA256Engine(), start, end, chunkSize)
	}
}

func effectiveChunkSize(chunkSize int) int {
	if chunkSize <= 0 {
		return DefaultChunkSize
	}
	return chunkSize
}
