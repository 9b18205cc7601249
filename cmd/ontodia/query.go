// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
	"github.com/asanchez75/ontodia/pkg/graph"
)

// Output formats of the query command.
const (
	outputYAML = "yaml"
	outputJSON = "json"
)

func newQueryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run one graph operation against the configured sources",
	}
	cmd.PersistentFlags().StringP("output", "o", outputYAML, "output format (yaml or json)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "class-tree",
			Short: "Print the merged class hierarchy",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.runQuery(cmd, func(ctx context.Context, ds graph.DataSource) (any, error) {
					return ds.ClassTree(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "link-types",
			Short: "Print every link type with its usage count",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.runQuery(cmd, func(ctx context.Context, ds graph.DataSource) (any, error) {
					return ds.LinkTypes(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "element-info <id>...",
			Short: "Describe elements by identifier",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runQuery(cmd, func(ctx context.Context, ds graph.DataSource) (any, error) {
					return ds.ElementInfo(ctx, graph.ElementInfoParams{ElementIDs: args})
				})
			},
		},
		newFilterCmd(a),
	)

	return cmd
}

func newFilterCmd(a *app) *cobra.Command {
	var params graph.FilterParams
	var direction string

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Search elements by type, neighbour or label text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch graph.Direction(direction) {
			case graph.DirectionAny, graph.DirectionIn, graph.DirectionOut:
				params.LinkDirection = graph.Direction(direction)
			default:
				return ontoerr.New(ontoerr.CodeCLIInputInvalid, "direction must be in or out",
					ontoerr.Field("direction", direction))
			}
			return a.runQuery(cmd, func(ctx context.Context, ds graph.DataSource) (any, error) {
				return ds.Filter(ctx, params)
			})
		},
	}

	cmd.Flags().StringVar(&params.Text, "text", "", "case-insensitive label substring")
	cmd.Flags().StringVar(&params.ElementTypeID, "type", "", "class the elements must be instances of")
	cmd.Flags().StringVar(&params.RefElementID, "ref", "", "reference element whose neighbours are listed")
	cmd.Flags().StringVar(&params.RefElementLinkID, "link", "", "link type connecting the reference element")
	cmd.Flags().StringVar(&direction, "direction", "", "link direction from the reference element (in or out)")
	cmd.Flags().StringVar(&params.LanguageCode, "lang", "", "language the label text must be in")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "page size (default 100)")
	cmd.Flags().IntVar(&params.Offset, "offset", 0, "number of matches to skip")

	return cmd
}

// runQuery wires the configured sources, runs op against the federation
// and prints the result.
func (a *app) runQuery(cmd *cobra.Command, op func(context.Context, graph.DataSource) (any, error)) error {
	format, _ := cmd.Flags().GetString("output")
	if format != outputYAML && format != outputJSON {
		return ontoerr.New(ontoerr.CodeCLIInputInvalid, "output must be yaml or json", ontoerr.Field("output", format))
	}

	cfg, err := a.config()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	inst, err := Wire(ctx, cfg, a.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := inst.Close(); err != nil {
			a.logger.Warn("closing stores", slog.Any("error", err))
		}
	}()

	result, err := op(ctx, inst.Federation)
	if err != nil {
		return ontoerr.Wrap(err, ontoerr.CodeCLIRequestFailure, "query failed")
	}
	return writeResult(cmd.OutOrStdout(), format, result)
}

// writeResult prints v as indented JSON or as YAML. The YAML form goes
// through JSON first so both formats use the same field names.
func writeResult(w io.Writer, format string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ontoerr.Errorf(ontoerr.CodeCLIRequestFailure, "encoding result: %w", err)
	}
	if format == outputJSON {
		_, err = w.Write(append(raw, '\n'))
		return err
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return ontoerr.Errorf(ontoerr.CodeCLIRequestFailure, "encoding result: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return ontoerr.Errorf(ontoerr.CodeCLIRequestFailure, "encoding result: %w", err)
	}
	return enc.Close()
}
