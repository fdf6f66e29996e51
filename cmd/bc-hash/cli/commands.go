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

	"github.com/spf13/cobra"
	cobracompletefig "github.com/withfig/autocomplete-tools/integrations/cobra"
	"sigs.k8s.io/release-utils/version"

	"github.com/sigstore/bc-hash/cmd/bc-hash/cli/options"
	"github.com/sigstore/bc-hash/pkg/config"
	"github.com/sigstore/bc-hash/pkg/logging"
)

// session is the state a command run shares with its subcommands.
type session struct {
	root   *options.RootOptions
	cfg    *config.Config
	logger logging.Logger
}

// context applies --timeout to parent.
func (s *session) context(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if s.root.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, s.root.Timeout)
}

// New returns the bc-hash root command.
func New() *cobra.Command {
	s := &session{root: &options.RootOptions{}}

	cmd := &cobra.Command{
		Use:               "bc-hash",
		Short:             "Streaming SHA-256 digests of files, standard input and strings.",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := s.root.LoadConfig(cmd)
			if err != nil {
				return usageError(err)
			}
			logger, err := s.root.NewLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return usageError(err)
			}
			s.cfg = cfg
			s.logger = logger
			logger.Debug("configuration: chunk_size=%d workers=%d compression=%s output=%s",
				cfg.ChunkSize, cfg.Workers, cfg.Compression, cfg.Output)
			return nil
		},
	}
	options.AddAllFlags(cmd, s.root)

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageErrorf("%w\nRun '%s --help' for usage.", err, c.CommandPath())
	})

	cmd.AddCommand(NewSum(s))
	cmd.AddCommand(NewString(s))
	cmd.AddCommand(NewCheck(s))
	cmd.AddCommand(version.WithFont("starwars"))
	cmd.AddCommand(cobracompletefig.CreateCompletionSpecCommand())
	return cmd
}

// usageArgs wraps a cobra argument validator so its failures exit with
// ExitUsage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(fmt.Errorf("%w\nRun '%s --help' for usage.", err, cmd.CommandPath()))
		}
		return nil
	}
}
