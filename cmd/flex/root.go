/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dirpx.dev/flex"
	"dirpx.dev/flex/config"
	"dirpx.dev/flex/logging"
	"dirpx.dev/flex/storage"
)

// Global flag values.
var (
	flagConfig   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:           "flex",
	Short:         "flex casts shared storage between capability views",
	Version:       flex.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (yaml, json or toml); FLEX_* env vars override it")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "log level: debug, info, warn or error")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(journeyCmd)
	rootCmd.AddCommand(registryCmd)
}

// setup loads configuration, installs the logger and registers the
// built-in storages with a cleared global registry.
func setup(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}

	flex.SetLogger(logging.NewText(cmd.ErrOrStderr(), logging.ParseLevel(flagLogLevel)))

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	flex.SetConfig(cfg)
	flex.Registry().Reset()

	if err := storage.Register[int, int](flex.Registry()); err != nil {
		return fmt.Errorf("register storages: %w", err)
	}
	flex.Logger().Debug("flex ready", "descriptors", flex.Registry().Count(), "config", flagConfig)
	return nil
}
