// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asanchez75/ontodia/internal/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration file",
		Long:  "Write the commented default configuration to path, or ~/.config/ontodia/ontodia.yaml. An existing file is left untouched.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return err
		}
	}

	written, err := config.WriteDefault(path)
	if err != nil {
		return err
	}
	if !written {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s\n", path)
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
	return err
}
