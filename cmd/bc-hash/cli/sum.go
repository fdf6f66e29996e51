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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sigstore/bc-hash/cmd/bc-hash/cli/options"
	"github.com/sigstore/bc-hash/pkg/config"
	"github.com/sigstore/bc-hash/pkg/hashing/digests"
	hashio "github.com/sigstore/bc-hash/pkg/hashing/engines/io"
	"github.com/sigstore/bc-hash/pkg/hashing/engines/memory"
	"github.com/sigstore/bc-hash/pkg/tracing"
)

// NewSum returns the sum command.
func NewSum(s *session) *cobra.Command {
	o := &options.SumOptions{}

	long := `Print the SHA-256 digest of each FILE.

With no FILE, or when FILE is -, standard input is read. Files are hashed
in parallel but printed in argument order, one "<hex>  <name>" line each,
the same layout sha256sum uses. A file that cannot be read is reported on
stderr and the exit code is 1; the other files are still printed.

--compression hashes the decompressed contents of gzip, zstd or lz4 files.
--offset and --length hash a byte range of each file instead of the whole
file. --root adds the digest over all file digests in argument order.`

	cmd := &cobra.Command{
		Use:   "sum [OPTIONS] [FILE...]",
		Short: "Print SHA-256 digests of files or standard input.",
		Long:  long,
		Args:  usageArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Apply(cmd, s.cfg); err != nil {
				return usageError(err)
			}
			rng, err := o.Range(cmd)
			if err != nil {
				return usageError(err)
			}
			if len(args) == 0 {
				args = []string{stdinName}
			}

			ctx, cancel := s.context(cmd.Context())
			defer cancel()

			attrs := map[string]interface{}{
				"bc_hash.inputs":      len(args),
				"bc_hash.output":      string(s.cfg.Output),
				"bc_hash.compression": s.cfg.Compression,
				"bc_hash.chunk_size":  s.cfg.ChunkSize,
				"bc_hash.workers":     s.cfg.Workers,
				"bc_hash.root":        o.Root,
			}
			return tracing.Run(ctx, "bc-hash.sum", attrs, func(ctx context.Context) error {
				return runSum(ctx, s, cmd, args, rng, o.Root)
			})
		},
	}

	o.AddFlags(cmd)
	return cmd
}

func runSum(ctx context.Context, s *session, cmd *cobra.Command, args []string, rng *config.Range, withRoot bool) error {
	stdinIdx := -1
	var paths []string
	for i, a := range args {
		if a != stdinName {
			paths = append(paths, a)
			continue
		}
		if stdinIdx >= 0 {
			return usageErrorf("standard input may be named only once")
		}
		stdinIdx = i
	}
	if stdinIdx >= 0 && rng != nil {
		return usageErrorf("--offset and --length need a file, not standard input")
	}

	factory, err := s.cfg.FileHasherFactory(rng)
	if err != nil {
		return usageError(err)
	}

	results := hashio.HashFiles(ctx, paths, factory, s.cfg.Workers)
	if stdinIdx >= 0 {
		res := hashio.FileResult{Path: stdinName}
		res.Digest, res.Err = hashStdin(cmd.InOrStdin(), s.cfg)
		results = append(results[:stdinIdx], append([]hashio.FileResult{res}, results[stdinIdx:]...)...)
	}

	r := &report{
		Algorithm:  digests.Algorithm,
		DigestName: digestName(s.cfg, rng),
	}
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			s.logger.WithField("file", res.Path).Error("%v", res.Err)
			continue
		}
		s.logger.WithField("file", res.Path).Debug("hashed as %s", res.Name)
		r.Files = append(r.Files, fileDigest{Name: res.Path, Digest: res.Digest})
	}

	if withRoot && failed == 0 {
		list := make([]digests.Digest, len(r.Files))
		for i, f := range r.Files {
			list[i] = f.Digest
		}
		root, err := memory.ComputeRootDigest(list)
		if err != nil {
			return err
		}
		r.Root = &root
	}

	if len(r.Files) > 0 {
		if err := writeReport(cmd.OutOrStdout(), s.cfg.Output, r, s.cfg.ChunkSize); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("sum interrupted: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errFilesFailed, failed, len(results))
	}
	return nil
}

// hashStdin hashes r, decompressing it first when a concrete compression
// is configured. auto cannot see an extension and hashes r as is.
func hashStdin(r io.Reader, cfg *config.Config) (digests.Digest, error) {
	compression, err := cfg.CompressionMode()
	if err != nil {
		return digests.Digest{}, err
	}
	rc, err := hashio.NewDecompressingReader(r, compression.Resolve(stdinName))
	if err != nil {
		return digests.Digest{}, err
	}
	//nolint:errcheck
	defer rc.Close()

	return hashio.HashReader(rc, cfg.ChunkSize)
}

// digestName describes how the printed digests were computed.
func digestName(cfg *config.Config, rng *config.Range) string {
	if rng != nil {
		return fmt.Sprintf("%s-range-%d-%d", digests.Algorithm, rng.Start, rng.End)
	}
	if c, err := cfg.CompressionMode(); err == nil && c != hashio.CompressionNone {
		return fmt.Sprintf("%s-%s", digests.Algorithm, c)
	}
	return digests.Algorithm
}
