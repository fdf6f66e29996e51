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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sigstore/bc-hash/pkg/hashing/engines/memory"
	"github.com/sigstore/bc-hash/pkg/tracing"
)

// NewString returns the string command.
func NewString(s *session) *cobra.Command {
	long := `Print the SHA-256 digest of each TEXT argument.

Each argument is hashed on its own, as UTF-8 bytes with no trailing
newline. Output lines are "<hex>  <quoted text>".`

	cmd := &cobra.Command{
		Use:   "string TEXT...",
		Short: "Print SHA-256 digests of literal strings.",
		Long:  long,
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs := map[string]interface{}{"bc_hash.inputs": len(args)}
			return tracing.Run(cmd.Context(), "bc-hash.string", attrs, func(context.Context) error {
				for _, text := range args {
					d, err := memory.SumString(text)
					if err != nil {
						return err
					}
					if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", d.Hex(), strconv.Quote(text)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	return cmd
}
