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

// Package digests provides the SHA-256 digest value type.
//
// A Digest is a fixed 32-byte array. It is a plain value: it is comparable
// with ==, usable as a map key, and copying it copies the bytes, so no
// caller can mutate a digest held by someone else.
package digests

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/sigstore/bc-hash/pkg/hashing/hasherrors"
)

// Size is the length of a SHA-256 digest in bytes.
const Size = 32

// HexSize is the length of the hexadecimal form of a digest.
const HexSize = 2 * Size

// Algorithm is the canonical algorithm name reported for every Digest.
const Algorithm = "sha256"

// Digest is a computed SHA-256 digest: H0..H7 serialized big-endian.
//
// The zero value is the all-zero digest. It is only ever a placeholder;
// no real input hashes to it.
type Digest [Size]byte

// FromBytes decodes a digest from exactly Size raw bytes.
//
// The bytes are copied. Any other length fails with an
// hasherrors.ErrInvalidLength error that reports both lengths.
func FromBytes(b []byte) (Digest, error) {
	var d Digest
	if len(b) != Size {
		return d, hasherrors.InvalidLength(Size, len(b))
	}
	copy(d[:], b)
	return d, nil
}

// ParseHex decodes the hexadecimal form of a digest.
//
// Surrounding whitespace and an optional "0x" prefix are ignored, and
// upper-case digits are accepted. Input that is not HexSize characters
// long fails with ErrInvalidLength (lengths in characters); non-hex
// characters fail with ErrInvalidFormat.
func ParseHex(s string) (Digest, error) {
	var d Digest
	src := strings.TrimSpace(s)
	if strings.HasPrefix(src, "0x") || strings.HasPrefix(src, "0X") {
		src = src[2:]
	}
	if len(src) != HexSize {
		return d, hasherrors.InvalidLength(HexSize, len(src))
	}
	if _, err := hex.Decode(d[:], []byte(src)); err != nil {
		return Digest{}, hasherrors.InvalidFormat("decode hex digest", err)
	}
	return d, nil
}

// Algorithm returns the name of the hash algorithm, always "sha256".
func (d Digest) Algorithm() string {
	return Algorithm
}

// Bytes returns a copy of the 32 digest bytes.
func (d Digest) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, d[:])
	return out
}

// Size returns the length in bytes of the digest value.
func (d Digest) Size() int {
	return Size
}

// Hex returns the lowercase hexadecimal encoding, 64 characters, no prefix.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// String implements fmt.Stringer and is identical to Hex.
func (d Digest) String() string {
	return d.Hex()
}

// SRI returns the Subresource Integrity form "sha256-<base64>".
func (d Digest) SRI() string {
	return Algorithm + "-" + base64.StdEncoding.EncodeToString(d[:])
}

// Equal reports whether both digests hold the same bytes.
func (d Digest) Equal(other Digest) bool {
	return d == other
}

// Compare orders digests lexicographically by byte. The result is 0 if
// d == other, -1 if d < other, and +1 if d > other.
func (d Digest) Compare(other Digest) int {
	return bytes.Compare(d[:], other[:])
}

// IsZero reports whether d is the all-zero placeholder.
func (d Digest) IsZero() bool {
	return d == Digest{}
}
