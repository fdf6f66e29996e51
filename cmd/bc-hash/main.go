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


package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/sigstore/bc-hash/cmd/bc-hash/cli"
	"github.com/sigstore/bc-hash/pkg/tracing"
)

type ExitCoder interface {
	error
	ExitCode() int
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("bc-hash: ")

	if err := tracing.InitFromEnv(); err != nil {
		log.Printf("tracing disabled: %v", err)
	}

	err := cli.New().Execute()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if serr := tracing.Shutdown(shutdownCtx); serr != nil {
		log.Printf("flush traces: %v", serr)
	}
	cancel()

	if err == nil {
		return
	}

	log.Print(err)
	var ec ExitCoder
	if errors.As(err, &ec) {
		os.Exit(ec.ExitCode())
	}
	os.Exit(cli.ExitFailure)
}
