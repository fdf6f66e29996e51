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
	"io"

	"github.com/sigstore/bc-hash/pkg/hashing/digests"
	hashengines "github.com/sigstore/bc-hash/pkg/hashing/engines"
	"github.com/sigstore/bc-hash/pkg/hashing/engines/memory"
)

// HashBytes returns the SHA-256 digest of data.
func HashBytes(data []byte) (digests.Digest, error) {
	return memory.Sum(data)
}

// HashReader hashes everything r yields until io.EOF.
//
// r is read in chunks of chunkSize bytes (DefaultChunkSize if chunkSize
// <= 0). A read error other than io.EOF is returned as is, together with
// the zero Digest.
func HashReader(r io.Reader, chunkSize int) (digests.Digest, error) {
	e := memory.NewSHA256Engine()
	if _, err := streamInto(e, r, chunkSize); err != nil {
		return digests.Digest{}, err
	}
	return e.Compute()
}

// streamInto copies r into engine chunk by chunk and returns the number
// of bytes hashed.
func streamInto(engine hashengines.Streaming, r io.Reader, chunkSize int) (int64, error) {
	buf := make([]byte, effectiveChunkSize(chunkSize))
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if uerr := engine.Update(buf[:n]); uerr != nil {
				return total, uerr
			}
			total += int64(n)
		}
		if err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}
	}
}
