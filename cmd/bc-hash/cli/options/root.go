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


package options

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/sigstore/bc-hash/pkg/config"
	"github.com/sigstore/bc-hash/pkg/logging"
)

// DefaultTimeout bounds a whole command run.
const DefaultTimeout = 30 * time.Minute

// RootOptions holds the persistent flags shared by every command.
type RootOptions struct {
	// ConfigPath names a YAML config file. Empty falls back to $BC_HASH_CONFIG.
	ConfigPath string
	// LogLevel overrides log_level from the config file.
	LogLevel string
	// LogFormat overrides log_format from the config file.
	LogFormat string
	// Timeout cancels the command when it runs longer. Zero disables it.
	Timeout time.Duration
}

var _ FlagAdder = (*RootOptions)(nil)

// AddFlags registers the persistent flags on cmd.
func (o *RootOptions) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.ConfigPath, "config", "",
		"path to a YAML config file (default $"+config.EnvConfigPath+")")
	_ = cmd.MarkPersistentFlagFilename("config", "yaml", "yml")

	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "info",
		"minimum log level (debug, info, warn, error, silent)")

	cmd.PersistentFlags().StringVar(&o.LogFormat, "log-format", "text",
		"log output format (text, json)")

	cmd.PersistentFlags().DurationVarP(&o.Timeout, "timeout", "t", DefaultTimeout,
		"abort the command after this long (0 disables)")
}

// LoadConfig reads the config file, if any, and lays the log flags the
// user set explicitly on top of it.
func (o *RootOptions) LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.ConfigPath != "" {
		cfg, err = config.Load(o.ConfigPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.LogLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.LogFormat
	}
	if o.Timeout < 0 {
		return nil, fmt.Errorf("--timeout must not be negative, got %s", o.Timeout)
	}

	return cfg, cfg.Validate()
}

// NewLogger builds the logger cfg describes, writing to w.
func (o *RootOptions) NewLogger(cfg *config.Config, w io.Writer) (logging.Logger, error) {
	return cfg.Logger(w)
}
