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
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/gzip"

	"github.com/sigstore/bc-hash/pkg/config"
	"github.com/sigstore/bc-hash/pkg/hashing/digests"
	"github.com/sigstore/bc-hash/pkg/statement"
)

type runResult struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")

	var stdout, stderr bytes.Buffer
	cmd := New()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return ExitFailure
}

func sumHex(data string) string {
	s := sha256.Sum256([]byte(data))
	return hex.EncodeToString(s[:])
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, contents := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(contents), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestSumText(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.txt": "alpha", "b.txt": "beta"})
	a, b := filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")

	res := run(t, "", "sum", "--log-level", "silent", b, a)
	if res.err != nil {
		t.Fatalf("sum error = %v", res.err)
	}

	want := fmt.Sprintf("%s  %s\n%s  %s\n", sumHex("beta"), b, sumHex("alpha"), a)
	if res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}
}

func TestSumStdin(t *testing.T) {
	for _, args := range [][]string{{"sum"}, {"sum", "-"}} {
		res := run(t, "abc", args...)
		if res.err != nil {
			t.Fatalf("%v error = %v", args, res.err)
		}
		want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad  -\n"
		if res.stdout != want {
			t.Errorf("%v stdout = %q, want %q", args, res.stdout, want)
		}
	}
}

func TestSumStdinTwiceIsUsageError(t *testing.T) {
	res := run(t, "", "sum", "-", "-")
	if exitCode(res.err) != ExitUsage {
		t.Errorf("exit code = %d, want %d (err %v)", exitCode(res.err), ExitUsage, res.err)
	}
}

func TestSumMissingFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.txt": "alpha"})
	a := filepath.Join(dir, "a.txt")
	missing := filepath.Join(dir, "missing")

	res := run(t, "", "sum", a, missing)
	if exitCode(res.err) != ExitFailure {
		t.Fatalf("exit code = %d, want %d (err %v)", exitCode(res.err), ExitFailure, res.err)
	}
	if want := sumHex("alpha") + "  " + a + "\n"; res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}
	if !strings.Contains(res.stderr, missing) {
		t.Errorf("stderr %q does not name the missing file", res.stderr)
	}
}

func TestSumRoot(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a": "1", "b": "2"})
	a, b := filepath.Join(dir, "a"), filepath.Join(dir, "b")

	res := run(t, "", "sum", "--root", "--workers", "1", a, b)
	if res.err != nil {
		t.Fatalf("sum --root error = %v", res.err)
	}

	da, db := sha256.Sum256([]byte("1")), sha256.Sum256([]byte("2"))
	root := sha256.Sum256(append(da[:], db[:]...))
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), res.stdout)
	}
	if want := hex.EncodeToString(root[:]) + "  " + rootName; lines[2] != want {
		t.Errorf("root line = %q, want %q", lines[2], want)
	}
}

func TestSumRange(t *testing.T) {
	dir := writeFiles(t, map[string]string{"f": "hello world"})
	f := filepath.Join(dir, "f")

	res := run(t, "", "sum", "--offset", "6", "--length", "5", f)
	if res.err != nil {
		t.Fatalf("sum range error = %v", res.err)
	}
	if want := sumHex("world") + "  " + f + "\n"; res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}

	res = run(t, "", "sum", "--offset", "6", f)
	if exitCode(res.err) != ExitUsage {
		t.Errorf("--offset without --length exit = %d, want %d", exitCode(res.err), ExitUsage)
	}

	res = run(t, "", "sum", "--offset", "6", "--length", "50", f)
	if exitCode(res.err) != ExitFailure {
		t.Errorf("range past end exit = %d, want %d", exitCode(res.err), ExitFailure)
	}
}

func TestSumCompression(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, _ = zw.Write([]byte("inflated"))
	_ = zw.Close()

	dir := t.TempDir()
	p := filepath.Join(dir, "data.gz")
	if err := os.WriteFile(p, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	res := run(t, "", "sum", "--compression", "auto", p)
	if res.err != nil {
		t.Fatalf("sum error = %v", res.err)
	}
	if want := sumHex("inflated") + "  " + p + "\n"; res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}

	res = run(t, buf.String(), "sum", "--compression", "gzip", "-")
	if res.err != nil {
		t.Fatalf("sum stdin error = %v", res.err)
	}
	if want := sumHex("inflated") + "  -\n"; res.stdout != want {
		t.Errorf("stdin stdout = %q, want %q", res.stdout, want)
	}
}

func TestSumJSON(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a": "alpha"})
	a := filepath.Join(dir, "a")

	res := run(t, "", "sum", "-o", "json", "--root", a)
	if res.err != nil {
		t.Fatalf("sum -o json error = %v", res.err)
	}

	var got report
	if err := json.Unmarshal([]byte(res.stdout), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, res.stdout)
	}
	if got.Algorithm != "sha256" || got.DigestName != "sha256" {
		t.Errorf("algorithm/name = %q/%q", got.Algorithm, got.DigestName)
	}
	if len(got.Files) != 1 || got.Files[0].Name != a || got.Files[0].Digest.Hex() != sumHex("alpha") {
		t.Errorf("files = %+v", got.Files)
	}
	if got.Root == nil {
		t.Error("root missing with --root")
	}
}

func TestSumCBOR(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a": "alpha"})
	a := filepath.Join(dir, "a")

	res := run(t, "", "sum", "-o", "cbor", a)
	if res.err != nil {
		t.Fatalf("sum -o cbor error = %v", res.err)
	}

	var got report
	if err := cbor.Unmarshal([]byte(res.stdout), &got); err != nil {
		t.Fatalf("output is not CBOR: %v", err)
	}
	want, _ := digests.ParseHex(sumHex("alpha"))
	if len(got.Files) != 1 || got.Files[0].Digest != want {
		t.Errorf("files = %+v", got.Files)
	}
	if got.Root != nil {
		t.Error("root present without --root")
	}
}

func TestSumStatement(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a": "alpha", "b": "beta"})
	a, b := filepath.Join(dir, "a"), filepath.Join(dir, "b")

	res := run(t, "", "sum", "-o", "statement", a, b)
	if res.err != nil {
		t.Fatalf("sum -o statement error = %v", res.err)
	}

	st, err := statement.Unmarshal([]byte(strings.TrimSpace(res.stdout)))
	if err != nil {
		t.Fatalf("statement.Unmarshal() error = %v", err)
	}
	if len(st.Subjects) != 2 || st.Subjects[0].Name != a || st.Subjects[1].Digest.Hex() != sumHex("beta") {
		t.Errorf("subjects = %+v", st.Subjects)
	}
}

func TestSumConfigFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a":         "alpha",
		"conf.yaml": "output: json\nlog_level: silent\n",
	})

	res := run(t, "", "sum", "--config", filepath.Join(dir, "conf.yaml"), filepath.Join(dir, "a"))
	if res.err != nil {
		t.Fatalf("sum error = %v", res.err)
	}
	if !strings.HasPrefix(strings.TrimSpace(res.stdout), "{") {
		t.Errorf("config output setting ignored: %q", res.stdout)
	}

	// flags win over the file
	res = run(t, "", "sum", "--config", filepath.Join(dir, "conf.yaml"), "-o", "text", filepath.Join(dir, "a"))
	if res.err != nil {
		t.Fatalf("sum error = %v", res.err)
	}
	if strings.HasPrefix(res.stdout, "{") {
		t.Errorf("--output flag did not override config: %q", res.stdout)
	}
}

func TestUsageErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{"bad.yaml": "bogus_key: 1\n"})

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"sum", "--no-such-flag"}},
		{"bad output", []string{"sum", "-o", "xml"}},
		{"bad compression", []string{"sum", "--compression", "rar"}},
		{"bad log level", []string{"sum", "--log-level", "loud"}},
		{"bad config", []string{"sum", "--config", filepath.Join(dir, "bad.yaml")}},
		{"string without args", []string{"string"}},
		{"check without args", []string{"check"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, "", tt.args...)
			if got := exitCode(res.err); got != ExitUsage {
				t.Errorf("exit code = %d, want %d (err %v)", got, ExitUsage, res.err)
			}
		})
	}
}

func TestString(t *testing.T) {
	res := run(t, "", "string", "abc", "")
	if res.err != nil {
		t.Fatalf("string error = %v", res.err)
	}
	want := sumHex("abc") + `  "abc"` + "\n" + sumHex("") + `  ""` + "\n"
	if res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}
}

func TestCheck(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a": "alpha", "b": "beta"})
	a, b := filepath.Join(dir, "a"), filepath.Join(dir, "b")

	sum := run(t, "", "sum", "--root", a, b)
	if sum.err != nil {
		t.Fatalf("sum error = %v", sum.err)
	}
	list := filepath.Join(dir, "SHA256SUMS")
	if err := os.WriteFile(list, []byte(sum.stdout), 0o600); err != nil {
		t.Fatal(err)
	}

	res := run(t, "", "check", list)
	if res.err != nil {
		t.Fatalf("check error = %v\n%s", res.err, res.stdout)
	}
	want := fmt.Sprintf("%s: OK\n%s: OK\n%s: OK\n", a, b, rootName)
	if res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}

	res = run(t, sum.stdout, "check", "--quiet", "-")
	if res.err != nil || res.stdout != "" {
		t.Errorf("check --quiet - = %q, %v", res.stdout, res.err)
	}

	if err := os.WriteFile(b, []byte("tampered"), 0o600); err != nil {
		t.Fatal(err)
	}
	res = run(t, "", "check", list)
	if got := exitCode(res.err); got != ExitMismatch {
		t.Fatalf("exit code = %d, want %d (err %v)", got, ExitMismatch, res.err)
	}
	want = fmt.Sprintf("%s: OK\n%s: FAILED\n%s: FAILED\n", a, b, rootName)
	if res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}

	res = run(t, "", "check", "--status", list)
	if exitCode(res.err) != ExitMismatch || res.stdout != "" {
		t.Errorf("check --status = %q, exit %d", res.stdout, exitCode(res.err))
	}
}

func TestCheckMissingFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a": "alpha"})
	a := filepath.Join(dir, "a")
	missing := filepath.Join(dir, "gone")

	list := fmt.Sprintf("%s  %s\n%s  %s\n", sumHex("alpha"), a, sumHex("x"), missing)

	res := run(t, list, "check", "-")
	if got := exitCode(res.err); got != ExitFailure {
		t.Errorf("exit code = %d, want %d (err %v)", got, ExitFailure, res.err)
	}
	if !strings.Contains(res.stdout, missing+": FAILED open or read") {
		t.Errorf("stdout = %q", res.stdout)
	}

	res = run(t, list, "check", "--ignore-missing", "-")
	if res.err != nil {
		t.Errorf("check --ignore-missing error = %v", res.err)
	}
	if strings.Contains(res.stdout, missing) {
		t.Errorf("--ignore-missing still reported %s", missing)
	}
}

func TestCheckMalformedList(t *testing.T) {
	res := run(t, "garbage\nmore garbage\n", "check", "-")
	if got := exitCode(res.err); got != ExitFailure {
		t.Errorf("exit code = %d, want %d (err %v)", got, ExitFailure, res.err)
	}

	dir := writeFiles(t, map[string]string{"a": "alpha"})
	list := fmt.Sprintf("%s  %s\nnot a line\n", sumHex("alpha"), filepath.Join(dir, "a"))
	if res := run(t, list, "check", "-"); res.err != nil {
		t.Errorf("check with one bad line error = %v", res.err)
	}
	if res := run(t, list, "check", "--strict", "-"); exitCode(res.err) != ExitFailure {
		t.Errorf("check --strict exit = %d, want %d", exitCode(res.err), ExitFailure)
	}
}
