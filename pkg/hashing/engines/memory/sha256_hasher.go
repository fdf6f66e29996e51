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

// Package memory implements the SHA-256 engine over in-memory byte slices.
package memory

import (
	"encoding/binary"
	"io"

	"github.com/sigstore/bc-hash/pkg/hashing/digests"
	hashengines "github.com/sigstore/bc-hash/pkg/hashing/engines"
	"github.com/sigstore/bc-hash/pkg/hashing/hasherrors"
)

var (
	_ hashengines.StreamingHashEngine = (*SHA256Engine)(nil)
	_ io.Writer                       = (*SHA256Engine)(nil)
)

// MaxMessageBytes is the longest input whose bit length fits the 64-bit
// length field of the SHA-256 padding.
const MaxMessageBytes = 1<<61 - 1

// SHA256Engine is a StreamingHashEngine computing SHA-256.
//
// The engine accepts input through Update (or Write) in chunks of any size
// and buffers at most one partial block, so memory use does not grow with
// the input. Compute finalizes the engine: every later Update or Compute
// fails with hasherrors.ErrEngineAlreadyFinalized until Reset is called.
//
// A SHA256Engine must not be used from several goroutines at once.
type SHA256Engine struct {
	state     [8]uint32
	buf       [BlockSize]byte
	nbuf      int
	length    uint64
	finalized bool
}

// NewSHA256Engine returns an engine in its initial state.
func NewSHA256Engine() *SHA256Engine {
	e := &SHA256Engine{}
	e.Reset()
	return e
}

// Update appends data to the message.
func (e *SHA256Engine) Update(data []byte) error {
	if e.finalized {
		return hasherrors.EngineAlreadyFinalized("Update")
	}
	n := uint64(len(data))
	if n == 0 {
		return nil
	}
	if n > MaxMessageBytes-e.length {
		return hasherrors.LengthOverflow(MaxMessageBytes, e.length, n)
	}
	e.length += n
	e.absorb(data)
	return nil
}

// Write implements io.Writer on top of Update. It either consumes all of
// p or none of it.
func (e *SHA256Engine) Write(p []byte) (int, error) {
	if err := e.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// absorb feeds bytes through the block buffer without touching the length
// counter. Padding goes through here too.
func (e *SHA256Engine) absorb(data []byte) {
	if e.nbuf > 0 {
		n := copy(e.buf[e.nbuf:], data)
		e.nbuf += n
		data = data[n:]
		if e.nbuf < BlockSize {
			return
		}
		compress(&e.state, e.buf[:])
		e.nbuf = 0
	}
	for len(data) >= BlockSize {
		compress(&e.state, data[:BlockSize])
		data = data[BlockSize:]
	}
	if len(data) > 0 {
		e.nbuf = copy(e.buf[:], data)
	}
}

// Compute pads the message, processes the final block(s) and returns the
// digest. The engine is finalized afterwards.
func (e *SHA256Engine) Compute() (digests.Digest, error) {
	if e.finalized {
		return digests.Digest{}, hasherrors.EngineAlreadyFinalized("Compute")
	}

	// 0x80, zeros up to 56 mod 64, then the 64-bit big-endian bit length.
	var pad [BlockSize + 8]byte
	pad[0] = 0x80
	zeros := 56 - e.nbuf
	if e.nbuf >= 56 {
		zeros += BlockSize
	}
	binary.BigEndian.PutUint64(pad[zeros:], e.length<<3)
	e.absorb(pad[:zeros+8])

	var d digests.Digest
	for i, word := range e.state {
		binary.BigEndian.PutUint32(d[i*4:], word)
	}
	e.finalized = true
	return d, nil
}

// Reset discards all input and returns the engine to its initial state.
// It is the only way to reuse a finalized engine.
func (e *SHA256Engine) Reset() {
	e.state = initialState
	e.buf = [BlockSize]byte{}
	e.nbuf = 0
	e.length = 0
	e.finalized = false
}

// Len returns the number of bytes accepted so far.
func (e *SHA256Engine) Len() uint64 {
	return e.length
}

// Finalized reports whether Compute has already produced the digest.
func (e *SHA256Engine) Finalized() bool {
	return e.finalized
}

// DigestName returns the algorithm identifier.
func (e *SHA256Engine) DigestName() string {
	return digests.Algorithm
}

// DigestSize returns the byte length of the produced digest.
func (e *SHA256Engine) DigestSize() int {
	return digests.Size
}

// Sum returns the SHA-256 digest of data.
func Sum(data []byte) (digests.Digest, error) {
	e := NewSHA256Engine()
	if err := e.Update(data); err != nil {
		return digests.Digest{}, err
	}
	return e.Compute()
}

// SumString returns the SHA-256 digest of the bytes of s.
func SumString(s string) (digests.Digest, error) {
	return Sum([]byte(s))
}
