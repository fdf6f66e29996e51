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
	"io"
	"os"

	"github.com/sigstore/bc-hash/pkg/hashing/digests"
	hashengines "github.com/sigstore/bc-hash/pkg/hashing/engines"
)

// RangeFileHasher hashes only the bytes [start, end) of a file.
//
// The digest is the plain SHA-256 of those bytes; the range is recorded
// in DigestName so it can be reported next to the value.
type RangeFileHasher struct {
	*SimpleFileHasher

	start int64
	end   int64
}

// NewRangeFileHasher constructs a RangeFileHasher.
//
//   - filePath: file to hash
//   - contentHasher: StreamingHashEngine used for hashing the range
//   - start, end: byte offsets [start, end) defining the range
//   - chunkSize: size of read buffer; <= 0 means DefaultChunkSize
func NewRangeFileHasher(
	filePath string,
	contentHasher hashengines.StreamingHashEngine,
	start, end int64,
	chunkSize int,
) (*RangeFileHasher, error) {
	base, err := NewSimpleFileHasher(filePath, contentHasher, chunkSize, CompressionNone)
	if err != nil {
		return nil, err
	}

	h := &RangeFileHasher{SimpleFileHasher: base}
	if err := h.SetRange(start, end); err != nil {
		return nil, err
	}
	return h, nil
}

// SetRange redefines the byte range [start, end) that will be hashed.
func (h *RangeFileHasher) SetRange(start, end int64) error {
	if start < 0 {
		return fmt.Errorf("file start offset must be non-negative, got %d", start)
	}
	if end < start {
		return fmt.Errorf("file end offset must not be before start, got start=%d, end=%d", start, end)
	}

	h.start = start
	h.end = end
	return nil
}

// Range returns the configured [start, end) offsets.
func (h *RangeFileHasher) Range() (int64, int64) {
	return h.start, h.end
}

// DigestName returns "<inner>-range-<start>-<end>".
func (h *RangeFileHasher) DigestName() string {
	return fmt.Sprintf("%s-range-%d-%d", h.contentHasher.DigestName(), h.start, h.end)
}

// Compute hashes only the configured range of the file.
//
// A file that ends before the range does is an error: hashing the shorter
// tail would silently produce the digest of different bytes.
func (h *RangeFileHasher) Compute() (digests.Digest, error) {
	h.contentHasher.Reset()

	f, err := os.Open(h.filePath)
	if err != nil {
		return digests.Digest{}, err
	}
	//nolint:errcheck
	defer f.Close()

	length := h.end - h.start
	section := io.NewSectionReader(f, h.start, length)

	n, err := streamInto(h.contentHasher, section, h.chunkSize)
	if err != nil {
		return digests.Digest{}, err
	}
	if n != length {
		return digests.Digest{}, fmt.Errorf("file %q ends at offset %d, before range end %d", h.filePath, h.start+n, h.end)
	}

	return h.contentHasher.Compute()
}
