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
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/sigstore/bc-hash/cmd/bc-hash/cli/options"
	"github.com/sigstore/bc-hash/pkg/hashing/digests"
	hashio "github.com/sigstore/bc-hash/pkg/hashing/engines/io"
	"github.com/sigstore/bc-hash/pkg/hashing/engines/memory"
	"github.com/sigstore/bc-hash/pkg/tracing"
)

// NewCheck returns the check command.
func NewCheck(s *session) *cobra.Command {
	o := &options.CheckOptions{}

	long := `Verify the files listed in a checksum list.

FILE holds lines as written by "bc-hash sum" or sha256sum; - reads the list
from standard input. Every listed file is hashed again and reported as OK
or FAILED. A "(root)" line written by "sum --root" is checked against the
digest over all other entries in list order.

Exit code 3 means at least one digest did not match, 1 that a file could
not be read or no line could be parsed.`

	cmd := &cobra.Command{
		Use:   "check [OPTIONS] FILE",
		Short: "Verify files against a SHA-256 checksum list.",
		Long:  long,
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Apply(cmd, s.cfg); err != nil {
				return usageError(err)
			}

			ctx, cancel := s.context(cmd.Context())
			defer cancel()

			attrs := map[string]interface{}{
				"bc_hash.list":        args[0],
				"bc_hash.compression": s.cfg.Compression,
				"bc_hash.workers":     s.cfg.Workers,
			}
			return tracing.Run(ctx, "bc-hash.check", attrs, func(ctx context.Context) error {
				return runCheck(ctx, s, o, cmd, args[0])
			})
		},
	}

	o.AddFlags(cmd)
	return cmd
}

func openList(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == stdinName {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(name)
}

func runCheck(ctx context.Context, s *session, o *options.CheckOptions, cmd *cobra.Command, listName string) error {
	list, err := openList(cmd, listName)
	if err != nil {
		return err
	}
	entries, bad, err := parseChecksums(list)
	_ = list.Close()
	if err != nil {
		return fmt.Errorf("read checksum list %s: %w", listName, err)
	}

	if bad > 0 {
		s.logger.WithField("list", listName).Warn("%d line(s) are improperly formatted", bad)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%s: no properly formatted SHA-256 checksum lines found", listName)
	}

	var (
		files []checkEntry
		paths []string
		roots []checkEntry
	)
	for _, e := range entries {
		if e.IsRoot() {
			roots = append(roots, e)
			continue
		}
		files = append(files, e)
		paths = append(paths, e.Name)
	}

	factory, err := s.cfg.FileHasherFactory(nil)
	if err != nil {
		return usageError(err)
	}
	results := hashio.HashFiles(ctx, paths, factory, s.cfg.Workers)

	out := cmd.OutOrStdout()
	report := func(format string, args ...interface{}) {
		if !o.Status {
			fmt.Fprintf(out, format, args...)
		}
	}

	var mismatched, unreadable, verified int
	computed := make([]digests.Digest, 0, len(files))
	for i, res := range results {
		e := files[i]
		if res.Err != nil {
			if o.IgnoreMissing && errors.Is(res.Err, fs.ErrNotExist) {
				continue
			}
			unreadable++
			s.logger.WithField("file", e.Name).Error("%v", res.Err)
			report("%s: FAILED open or read\n", e.Name)
			continue
		}
		computed = append(computed, res.Digest)
		verified++

		if res.Digest != e.Digest {
			mismatched++
			report("%s: FAILED\n", e.Name)
			continue
		}
		if !o.Quiet {
			report("%s: OK\n", e.Name)
		}
	}

	for _, e := range roots {
		if unreadable > 0 || len(computed) != len(files) {
			s.logger.WithField("line", e.Line).Warn("root digest not checked: not every file was hashed")
			continue
		}
		root, err := memory.ComputeRootDigest(computed)
		if err != nil {
			return err
		}
		verified++
		if root != e.Digest {
			mismatched++
			report("%s: FAILED\n", rootName)
			continue
		}
		if !o.Quiet {
			report("%s: OK\n", rootName)
		}
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("check interrupted: %w", err)
	}
	if unreadable > 0 {
		s.logger.Warn("%d listed file(s) could not be read", unreadable)
	}
	if mismatched > 0 {
		s.logger.Warn("%d computed checksum(s) did NOT match", mismatched)
		return &ExitError{Code: ExitMismatch, Err: fmt.Errorf("%w: %d of %d", errMismatch, mismatched, verified)}
	}
	if unreadable > 0 {
		return fmt.Errorf("%w: %d", errFilesFailed, unreadable)
	}
	if o.Strict && bad > 0 {
		return fmt.Errorf("%s: %d improperly formatted line(s)", listName, bad)
	}
	if verified == 0 {
		return fmt.Errorf("%s: no file was verified", listName)
	}
	return nil
}
