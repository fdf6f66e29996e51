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

// Package hashengines defines the interfaces implemented by hashing engines.
//
// An engine is fed data incrementally through Streaming and produces a
// digests.Digest exactly once through HashEngine.Compute.
package hashengines

import (
	"github.com/sigstore/bc-hash/pkg/hashing/digests"
)

// HashEngine defines the core interface for computing a digest.
type HashEngine interface {
	// Compute finalizes the hash computation and returns the resulting digest.
	// An engine computes at most one digest; a second call fails with
	// hasherrors.ErrEngineAlreadyFinalized.
	Compute() (digests.Digest, error)

	// DigestName returns the name of the computation. It includes every
	// parameter that changes which bytes are hashed, for example
	// "sha256-range-0-1024" for a byte range of a file.
	DigestName() string

	// DigestSize returns the size in bytes of digests produced by this engine.
	DigestSize() int
}

// Streaming defines the interface for incrementally feeding data to an engine.
//
// Implementations are not safe for concurrent use.
type Streaming interface {
	// Update appends bytes to the data being hashed. Chunk boundaries do
	// not affect the result.
	Update(data []byte) error

	// Reset discards all state and returns the engine to its initial,
	// accumulating state.
	Reset()
}

// StreamingHashEngine combines HashEngine and Streaming for incremental hashing.
type StreamingHashEngine interface {
	HashEngine
	Streaming
}
