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


// Package statement records file digests as an in-toto Statement.
//
// Each hashed file becomes one subject carrying its SHA-256 digest. The
// predicate describes how the digests were produced and carries the root
// digest: SHA-256 over the concatenated subject digests, in subject order.
package statement

import (
	"fmt"

	intoto "github.com/in-toto/attestation/go/v1"
	"google.golang.org/protobuf/encoding/protojson"
	structpb "google.golang.org/protobuf/types/known/structpb"

	"github.com/sigstore/bc-hash/pkg/hashing/digests"
	"github.com/sigstore/bc-hash/pkg/hashing/engines/memory"
)

const (
	// StatementType is the in-toto Statement type URI.
	StatementType = "https://in-toto.io/Statement/v1"
	// PayloadType is the media type of a marshalled Statement.
	PayloadType = "application/vnd.in-toto+json"
	// PredicateType identifies the bc-hash predicate.
	PredicateType = "https://bc-hash.dev/hashing/v1"
)

// Subject is one hashed artifact.
type Subject struct {
	Name   string
	Digest digests.Digest
}

// Statement is the decoded form of a bc-hash in-toto Statement.
type Statement struct {
	Subjects []Subject

	// DigestName is the name reported by the file hasher, e.g.
	// "sha256", "sha256-gzip" or "sha256-range-0-512".
	DigestName string
	ChunkSize  int
	Root       digests.Digest
}

// New builds a Statement for subjects and computes its root digest.
func New(subjects []Subject, digestName string, chunkSize int) (*Statement, error) {
	if len(subjects) == 0 {
		return nil, fmt.Errorf("statement needs at least one subject")
	}

	root, err := rootOf(subjects)
	if err != nil {
		return nil, err
	}

	return &Statement{
		Subjects:   append([]Subject(nil), subjects...),
		DigestName: digestName,
		ChunkSize:  chunkSize,
		Root:       root,
	}, nil
}

func rootOf(subjects []Subject) (digests.Digest, error) {
	list := make([]digests.Digest, len(subjects))
	for i, s := range subjects {
		list[i] = s.Digest
	}
	root, err := memory.ComputeRootDigest(list)
	if err != nil {
		return digests.Digest{}, fmt.Errorf("failed to compute root digest: %w", err)
	}
	return root, nil
}

// Marshal renders s as in-toto JSON.
func (s *Statement) Marshal() ([]byte, error) {
	subjects := make([]*intoto.ResourceDescriptor, 0, len(s.Subjects))
	for _, sub := range s.Subjects {
		subjects = append(subjects, &intoto.ResourceDescriptor{
			Name: sub.Name,
			Digest: map[string]string{
				digests.Algorithm: sub.Digest.Hex(),
			},
		})
	}

	predicate, err := structpb.NewStruct(map[string]interface{}{
		"digestName": s.DigestName,
		"chunkSize":  s.ChunkSize,
		"rootDigest": map[string]interface{}{
			"algorithm": digests.Algorithm,
			"digest":    s.Root.Hex(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build predicate struct: %w", err)
	}

	st := &intoto.Statement{
		Type:          StatementType,
		Subject:       subjects,
		PredicateType: PredicateType,
		Predicate:     predicate,
	}
	if err := st.Validate(); err != nil {
		return nil, fmt.Errorf("invalid statement: %w", err)
	}

	return protojson.MarshalOptions{Multiline: false}.Marshal(st)
}

// Unmarshal parses in-toto JSON written by Marshal. Every subject digest
// must be valid SHA-256 hex and the recorded root digest must match the
// subjects.
func Unmarshal(data []byte) (*Statement, error) {
	var st intoto.Statement
	if err := (protojson.UnmarshalOptions{DiscardUnknown: true}).Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to unmarshal statement: %w", err)
	}
	if err := st.Validate(); err != nil {
		return nil, fmt.Errorf("invalid statement: %w", err)
	}
	if st.GetType() != StatementType {
		return nil, fmt.Errorf("statement type mismatch, expected %s, got %s", StatementType, st.GetType())
	}
	if st.GetPredicateType() != PredicateType {
		return nil, fmt.Errorf("predicate type mismatch, expected %s, got %s", PredicateType, st.GetPredicateType())
	}

	out := &Statement{}
	for i, rd := range st.GetSubject() {
		hexDigest, ok := rd.GetDigest()[digests.Algorithm]
		if !ok {
			return nil, fmt.Errorf("subject %d (%q) has no %s digest", i, rd.GetName(), digests.Algorithm)
		}
		d, err := digests.ParseHex(hexDigest)
		if err != nil {
			return nil, fmt.Errorf("subject %d (%q): %w", i, rd.GetName(), err)
		}
		out.Subjects = append(out.Subjects, Subject{Name: rd.GetName(), Digest: d})
	}

	fields := st.GetPredicate().GetFields()
	out.DigestName = fields["digestName"].GetStringValue()
	out.ChunkSize = int(fields["chunkSize"].GetNumberValue())

	rootFields := fields["rootDigest"].GetStructValue().GetFields()
	if alg := rootFields["algorithm"].GetStringValue(); alg != digests.Algorithm {
		return nil, fmt.Errorf("root digest algorithm mismatch, expected %s, got %q", digests.Algorithm, alg)
	}
	recorded, err := digests.ParseHex(rootFields["digest"].GetStringValue())
	if err != nil {
		return nil, fmt.Errorf("root digest: %w", err)
	}

	root, err := rootOf(out.Subjects)
	if err != nil {
		return nil, err
	}
	if root != recorded {
		return nil, fmt.Errorf("root digest mismatch, recorded %s, computed %s", recorded, root)
	}
	out.Root = root

	return out, nil
}
