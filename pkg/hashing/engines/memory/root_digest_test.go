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
	"crypto/sha256"
	"testing"

	"github.com/sigstore/bc-hash/pkg/hashing/digests"
)

func TestComputeRootDigest(t *testing.T) {
	a, _ := SumString("a")
	b, _ := SumString("b")

	root, err := ComputeRootDigest([]digests.Digest{a, b})
	if err != nil {
		t.Fatalf("ComputeRootDigest() error = %v", err)
	}

	want := sha256.Sum256(append(a.Bytes(), b.Bytes()...))
	if root != digests.Digest(want) {
		t.Errorf("ComputeRootDigest() = %s, want %x", root, want)
	}

	swapped, err := ComputeRootDigest([]digests.Digest{b, a})
	if err != nil {
		t.Fatalf("ComputeRootDigest() error = %v", err)
	}
	if swapped == root {
		t.Error("ComputeRootDigest() is insensitive to order")
	}
}

func TestComputeRootDigestEmpty(t *testing.T) {
	root, err := ComputeRootDigest(nil)
	if err != nil {
		t.Fatalf("ComputeRootDigest(nil) error = %v", err)
	}
	empty, _ := Sum(nil)
	if root != empty {
		t.Errorf("ComputeRootDigest(nil) = %s, want %s", root, empty)
	}
}
