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


package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/sigstore/bc-hash/pkg/config"
	"github.com/sigstore/bc-hash/pkg/hashing/digests"
	"github.com/sigstore/bc-hash/pkg/statement"
)

// stdinName is the name printed for standard input, as sha256sum does.
const stdinName = "-"

// rootName labels the root digest line in text output.
const rootName = "(root)"

type fileDigest struct {
	Name   string         `json:"name"`
	Digest digests.Digest `json:"digest"`
}

// report is the json and cbor document written by sum.
type report struct {
	Algorithm  string          `json:"algorithm"`
	DigestName string          `json:"digestName"`
	Files      []fileDigest    `json:"files"`
	Root       *digests.Digest `json:"root,omitempty"`
}

var cborEncMode cbor.EncMode

func init() {
	var err error
	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

// writeReport renders r in the chosen format.
func writeReport(w io.Writer, format config.Output, r *report, chunkSize int) error {
	switch format {
	case config.OutputText:
		for _, f := range r.Files {
			if _, err := fmt.Fprintln(w, formatChecksumLine(f.Digest, f.Name)); err != nil {
				return err
			}
		}
		if r.Root != nil {
			_, err := fmt.Fprintln(w, formatChecksumLine(*r.Root, rootName))
			return err
		}
		return nil

	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)

	case config.OutputCBOR:
		data, err := cborEncMode.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode cbor report: %w", err)
		}
		_, err = w.Write(data)
		return err

	case config.OutputStatement:
		subjects := make([]statement.Subject, len(r.Files))
		for i, f := range r.Files {
			subjects[i] = statement.Subject{Name: f.Name, Digest: f.Digest}
		}
		st, err := statement.New(subjects, r.DigestName, chunkSize)
		if err != nil {
			return err
		}
		data, err := st.Marshal()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
