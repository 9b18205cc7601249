// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the ontodia server",
		Long:  "Load configuration, wire every source into the federation, and serve the REST API until interrupted.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd)
		},
	}

	cmd.Flags().String("listen", "", "override listen address (host:port)")

	return cmd
}

func (a *app) runServe(cmd *cobra.Command) error {
	if err := a.v.BindPFlag("server.listen_addr", cmd.Flags().Lookup("listen")); err != nil {
		return ontoerr.Errorf(ontoerr.CodeCLISetupFailure, "binding listen flag: %w", err)
	}
	cfg, err := a.config()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inst, err := Wire(ctx, cfg, a.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := inst.Close(); err != nil {
			a.logger.Warn("closing stores", slog.Any("error", err))
		}
	}()

	srv, err := inst.NewServer(cfg, a.logger)
	if err != nil {
		return err
	}

	a.logger.Info("starting ontodia",
		slog.String("listen", cfg.Server.ListenAddr),
		slog.String("version", version),
	)
	return srv.Start(ctx)
}
