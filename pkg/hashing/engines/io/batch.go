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

package io

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sigstore/bc-hash/pkg/hashing/digests"
)

// FileResult is the outcome of hashing one path. Exactly one of Digest
// and Err is meaningful.
type FileResult struct {
	Path   string
	Name   string
	Digest digests.Digest
	Err    error
}

// HashFiles hashes every path with a hasher from factory, using a worker
// pool bounded by workers or runtime.NumCPU().
//
// Each file gets its own engine. Results are returned in the order of
// paths, and a failure on one file does not stop the others. Once ctx is
// done no new file is started; files not started report ctx.Err().
func HashFiles(ctx context.Context, paths []string, factory FileHasherFactory, workers int) []FileResult {
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results
	}
	if factory == nil {
		for i, p := range paths {
			results[i] = FileResult{Path: p, Err: fmt.Errorf("file hasher factory must not be nil")}
		}
		return results
	}

	workerCount := workers
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	if workerCount > len(paths) {
		workerCount = len(paths)
	}

	jobs := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workerCount)

	for i := 0; i < workerCount; i++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = hashOne(ctx, paths[idx], factory)
			}
		}()
	}

	// Feed jobs
	for i := range paths {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

func hashOne(ctx context.Context, path string, factory FileHasherFactory) FileResult {
	res := FileResult{Path: path}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	hasher, err := factory(path)
	if err != nil {
		res.Err = fmt.Errorf("create file hasher for %q: %w", path, err)
		return res
	}
	res.Name = hasher.DigestName()

	d, err := hasher.Compute()
	if err != nil {
		res.Err = err
		return res
	}
	res.Digest = d
	return res
}
