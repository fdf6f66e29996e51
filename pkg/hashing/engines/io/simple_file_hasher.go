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

package io

import (
	"fmt"
	"os"

	"github.com/sigstore/bc-hash/pkg/hashing/digests"
	hashengines "github.com/sigstore/bc-hash/pkg/hashing/engines"
)

// SimpleFileHasher hashes an entire file by streaming it into an inner StreamingHashEngine.
// It reads the file exactly once per Compute and never loads the whole
// file into memory.
type SimpleFileHasher struct {
	filePath      string
	contentHasher hashengines.StreamingHashEngine
	chunkSize     int
	compression   Compression
}

// NewSimpleFileHasher constructs a SimpleFileHasher.
//
//   - filePath: path to the file to hash
//   - contentHasher: the StreamingHashEngine used to hash file contents
//   - chunkSize: number of bytes to read per chunk; <= 0 means DefaultChunkSize
//   - compression: how to decode the file before hashing
func NewSimpleFileHasher(
	filePath string,
	contentHasher hashengines.StreamingHashEngine,
	chunkSize int,
	compression Compression,
) (*SimpleFileHasher, error) {
	if filePath == "" {
		return nil, fmt.Errorf("file path must be non-empty")
	}

	if contentHasher == nil {
		return nil, fmt.Errorf("content hasher must not be nil")
	}

	return &SimpleFileHasher{
		filePath:      filePath,
		contentHasher: contentHasher,
		chunkSize:     chunkSize,
		compression:   compression,
	}, nil
}

// SetFile changes the file that will be hashed on the next Compute call.
func (h *SimpleFileHasher) SetFile(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("file path must be non-empty")
	}
	h.filePath = filePath
	return nil
}

// Compression returns the decoding applied to the current file, with
// CompressionAuto resolved from its extension.
func (h *SimpleFileHasher) Compression() Compression {
	return h.compression.Resolve(h.filePath)
}

// DigestName returns the inner engine's name, suffixed with the
// compression when the decompressed contents are hashed.
func (h *SimpleFileHasher) DigestName() string {
	c := h.Compression()
	if c == CompressionNone {
		return h.contentHasher.DigestName()
	}
	return fmt.Sprintf("%s-%s", h.contentHasher.DigestName(), c)
}

// DigestSize is delegated to the inner content hasher.
func (h *SimpleFileHasher) DigestSize() int {
	return h.contentHasher.DigestSize()
}

// Compute hashes the entire file and returns its Digest.
//
// Errors from opening or reading the file are returned unchanged (an
// *fs.PathError for a missing file, for example). Decoder errors for
// compressed input are wrapped with the stream format.
func (h *SimpleFileHasher) Compute() (digests.Digest, error) {
	// Reset inner state before each computation.
	h.contentHasher.Reset()

	f, err := os.Open(h.filePath)
	if err != nil {
		return digests.Digest{}, err
	}
	//nolint:errcheck
	defer f.Close()

	r, err := NewDecompressingReader(f, h.Compression())
	if err != nil {
		return digests.Digest{}, err
	}
	//nolint:errcheck
	defer r.Close()

	if _, err := streamInto(h.contentHasher, r, h.chunkSize); err != nil {
		return digests.Digest{}, err
	}

	return h.contentHasher.Compute()
}
