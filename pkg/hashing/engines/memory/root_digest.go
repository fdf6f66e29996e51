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

package memory

import (
	"fmt"

	"github.com/sigstore/bc-hash/pkg/hashing/digests"
)

// ComputeRootDigest computes a SHA-256 hash over a sequence of digests.
//
// The root digest is the SHA-256 of the raw digest bytes concatenated in
// order, so reordering the list changes the result. An empty list hashes
// the empty message.
//
// Example:
//
//	root, err := memory.ComputeRootDigest([]digests.Digest{d1, d2, d3})
func ComputeRootDigest(digestList []digests.Digest) (digests.Digest, error) {
	hasher := NewSHA256Engine()

	for _, d := range digestList {
		if err := hasher.Update(d[:]); err != nil {
			return digests.Digest{}, fmt.Errorf("failed to add digest %s: %w", d, err)
		}
	}

	rootDigest, err := hasher.Compute()
	if err != nil {
		return digests.Digest{}, fmt.Errorf("failed to compute root digest: %w", err)
	}

	return rootDigest, nil
}
