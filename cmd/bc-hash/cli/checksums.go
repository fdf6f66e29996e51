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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sigstore/bc-hash/pkg/hashing/digests"
)

// checkEntry is one parsed line of a checksum list.
type checkEntry struct {
	Line   int
	Name   string
	Digest digests.Digest
}

// IsRoot reports whether the entry is the root digest line written by
// sum --root.
func (e checkEntry) IsRoot() bool {
	return e.Name == rootName
}

// parseChecksums reads a checksum list. Accepted line forms:
//
//	<hex>  <name>           text mode, as sha256sum writes
//	<hex> *<name>           binary mode
//	\<hex>  <escaped name>  name containing backslash or newline
//	SHA256 (<name>) = <hex> BSD tag style
//
// Blank lines and lines starting with '#' are skipped. Lines matching none
// of the forms are counted in bad.
func parseChecksums(r io.Reader) (entries []checkEntry, bad int, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 1<<20)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		e, ok := parseChecksumLine(line)
		if !ok {
			bad++
			continue
		}
		e.Line = lineNo
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, 0, err
	}
	return entries, bad, nil
}

func parseChecksumLine(line string) (checkEntry, bool) {
	if strings.HasPrefix(line, "SHA256 (") {
		return parseTagLine(line)
	}

	escaped := false
	if strings.HasPrefix(line, `\`) {
		escaped = true
		line = line[1:]
	}
	if len(line) < digests.HexSize+2 {
		return checkEntry{}, false
	}

	d, err := digests.ParseHex(line[:digests.HexSize])
	if err != nil {
		return checkEntry{}, false
	}
	sep := line[digests.HexSize : digests.HexSize+2]
	if sep != "  " && sep != " *" {
		return checkEntry{}, false
	}

	name := line[digests.HexSize+2:]
	if escaped {
		var ok bool
		if name, ok = unescapeName(name); !ok {
			return checkEntry{}, false
		}
	}
	if name == "" {
		return checkEntry{}, false
	}
	return checkEntry{Name: name, Digest: d}, true
}

func parseTagLine(line string) (checkEntry, bool) {
	rest := strings.TrimPrefix(line, "SHA256 (")
	idx := strings.LastIndex(rest, ") = ")
	if idx <= 0 {
		return checkEntry{}, false
	}
	d, err := digests.ParseHex(rest[idx+len(") = "):])
	if err != nil {
		return checkEntry{}, false
	}
	return checkEntry{Name: rest[:idx], Digest: d}, true
}

func unescapeName(s string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		i++
		if i == len(s) {
			return "", false
		}
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		default:
			return "", false
		}
	}
	return b.String(), true
}

// escapeName is the inverse of unescapeName. It reports whether the name
// needed escaping.
func escapeName(s string) (string, bool) {
	if !strings.ContainsAny(s, "\\\n\r") {
		return s, false
	}
	r := strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)
	return r.Replace(s), true
}

// formatChecksumLine renders one text-mode line the way parseChecksums
// reads it back.
func formatChecksumLine(d digests.Digest, name string) string {
	if esc, ok := escapeName(name); ok {
		return fmt.Sprintf("\\%s  %s", d.Hex(), esc)
	}
	return fmt.Sprintf("%s  %s", d.Hex(), name)
}
