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


package statement

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/sigstore/bc-hash/pkg/hashing/digests"
	"github.com/sigstore/bc-hash/pkg/hashing/engines/memory"
)

func testSubjects(t *testing.T) []Subject {
	t.Helper()
	var subjects []Subject
	for _, name := range []string{"a.txt", "b.txt", "dir/c.bin"} {
		d, err := memory.SumString(name)
		if err != nil {
			t.Fatalf("SumString() error = %v", err)
		}
		subjects = append(subjects, Subject{Name: name, Digest: d})
	}
	return subjects
}

func TestMarshalUnmarshal(t *testing.T) {
	subjects := testSubjects(t)

	st, err := New(subjects, "sha256", 4096)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	data, err := st.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(got.Subjects) != len(subjects) {
		t.Fatalf("got %d subjects, want %d", len(got.Subjects), len(subjects))
	}
	for i := range subjects {
		if got.Subjects[i] != subjects[i] {
			t.Errorf("subject %d = %+v, want %+v", i, got.Subjects[i], subjects[i])
		}
	}
	if got.Root != st.Root {
		t.Errorf("Root = %s, want %s", got.Root, st.Root)
	}
	if got.DigestName != "sha256" || got.ChunkSize != 4096 {
		t.Errorf("predicate = %q/%d, want sha256/4096", got.DigestName, got.ChunkSize)
	}
}

func TestMarshalLayout(t *testing.T) {
	st, err := New(testSubjects(t)[:1], "sha256-gzip", 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	data, err := st.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var doc struct {
		Type          string `json:"_type"`
		PredicateType string `json:"predicateType"`
		Subject       []struct {
			Name   string            `json:"name"`
			Digest map[string]string `json:"digest"`
		} `json:"subject"`
		Predicate map[string]interface{} `json:"predicate"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("statement is not JSON: %v", err)
	}

	if doc.Type != StatementType {
		t.Errorf("_type = %q, want %q", doc.Type, StatementType)
	}
	if doc.PredicateType != PredicateType {
		t.Errorf("predicateType = %q, want %q", doc.PredicateType, PredicateType)
	}
	if len(doc.Subject) != 1 || doc.Subject[0].Name != "a.txt" {
		t.Fatalf("subject = %+v", doc.Subject)
	}
	if doc.Subject[0].Digest["sha256"] != st.Subjects[0].Digest.Hex() {
		t.Errorf("subject digest = %q, want %q", doc.Subject[0].Digest["sha256"], st.Subjects[0].Digest.Hex())
	}
	if doc.Predicate["digestName"] != "sha256-gzip" {
		t.Errorf("predicate.digestName = %v", doc.Predicate["digestName"])
	}
}

func TestRootDigestIsOverSubjects(t *testing.T) {
	subjects := testSubjects(t)
	st, err := New(subjects, "sha256", 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want, err := memory.ComputeRootDigest([]digests.Digest{subjects[0].Digest, subjects[1].Digest, subjects[2].Digest})
	if err != nil {
		t.Fatalf("ComputeRootDigest() error = %v", err)
	}
	if st.Root != want {
		t.Errorf("Root = %s, want %s", st.Root, want)
	}
}

func TestNewRequiresSubjects(t *testing.T) {
	if _, err := New(nil, "sha256", 0); err == nil {
		t.Error("New(nil) error = nil, want error")
	}
}

func TestUnmarshalRejects(t *testing.T) {
	st, err := New(testSubjects(t), "sha256", 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	data, err := st.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	good := string(data)
	firstHex := st.Subjects[0].Digest.Hex()

	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "{"},
		{"wrong predicate type", strings.Replace(good, PredicateType, "https://example.com/other/v1", 1)},
		{"tampered subject digest", strings.Replace(good, firstHex, strings.Repeat("0", 64), 1)},
		{"short subject digest", strings.Replace(good, firstHex, firstHex[:62], 1)},
		{"root digest mismatch", strings.Replace(good, st.Root.Hex(), strings.Repeat("1", 64), 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Unmarshal([]byte(tt.payload)); err == nil {
				t.Error("Unmarshal() error = nil, want error")
			}
		})
	}
}
