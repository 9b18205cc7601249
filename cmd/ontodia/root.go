// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/asanchez75/ontodia/internal/config"
	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
)

// app carries the state shared by every subcommand of one root command.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
}

// NewRootCmd creates the root ontodia command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: slog.Default()}

	root := &cobra.Command{
		Use:           "ontodia",
		Short:         "Ontodia federated graph data service",
		Long:          "Ontodia serves one merged view over several knowledge-graph sources, dereferencing Linked Data on demand.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	// Global flags, mapped to viper keys in init.
	root.PersistentFlags().StringP("config", "c", "", "path to config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(a),
		newParseCmd(a),
		newQueryCmd(a),
		newInitCmd(),
		newVersionCmd(),
	)

	return root
}

// init sets up viper with defaults, env bindings, flag bindings and an
// optional config file so the standard precedence (flag > env > file >
// defaults) is handled uniformly. It also configures logging.
func (a *app) init(cmd *cobra.Command) error {
	config.SetDefaults(a.v)
	config.SetupEnv(a.v)

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return ontoerr.Errorf(ontoerr.CodeConfigLoadReadFailure, "reading config file: %w", err)
		}
	} else {
		// SetConfigType is omitted so viper does not try the bare name
		// "ontodia", which is also the binary's name.
		a.v.SetConfigName("ontodia")
		a.v.AddConfigPath(".")
		a.v.AddConfigPath("$HOME/.config/ontodia")
		a.v.AddConfigPath("/etc/ontodia")
		// No config file is fine: defaults and env vars still apply.
		if err := a.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return ontoerr.Errorf(ontoerr.CodeConfigLoadReadFailure, "reading config: %w", err)
			}
		}
	}

	if err := a.v.BindPFlag("verbose", cmd.Root().PersistentFlags().Lookup("verbose")); err != nil {
		return ontoerr.Errorf(ontoerr.CodeCLISetupFailure, "binding verbose flag: %w", err)
	}

	level := slog.LevelInfo
	if a.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return nil
}

// config decodes and validates the resolved configuration.
func (a *app) config() (*config.Config, error) {
	return config.FromViper(a.v)
}
