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

package digests

import (
	"encoding"

	"github.com/fxamacker/cbor/v2"

	"github.com/sigstore/bc-hash/pkg/hashing/hasherrors"
)

var (
	_ encoding.BinaryMarshaler   = Digest{}
	_ encoding.BinaryUnmarshaler = (*Digest)(nil)
	_ encoding.TextMarshaler     = Digest{}
	_ encoding.TextUnmarshaler   = (*Digest)(nil)
	_ cbor.Marshaler             = Digest{}
	_ cbor.Unmarshaler           = (*Digest)(nil)
)

// cborEncMode uses Core Deterministic Encoding so a digest always encodes
// to the same 34 bytes: a 0x58 0x20 byte-string header followed by the digest.
var cborEncMode cbor.EncMode

func init() {
	var err error
	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("digests: CBOR encoder initialization failed: " + err.Error())
	}
}

// MarshalBinary returns the raw 32 bytes.
func (d Digest) MarshalBinary() ([]byte, error) {
	return d.Bytes(), nil
}

// UnmarshalBinary decodes exactly Size raw bytes into d.
func (d *Digest) UnmarshalBinary(data []byte) error {
	parsed, err := FromBytes(data)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText returns the lowercase hex form. It makes Digest encode as a
// JSON or YAML string.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.Hex()), nil
}

// UnmarshalText decodes the hex form accepted by ParseHex.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalCBOR encodes d as a CBOR byte string.
func (d Digest) MarshalCBOR() ([]byte, error) {
	return cborEncMode.Marshal(d[:])
}

// UnmarshalCBOR decodes a CBOR byte string of exactly Size bytes.
func (d *Digest) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return hasherrors.InvalidFormat("decode CBOR digest", err)
	}
	return d.UnmarshalBinary(raw)
}
