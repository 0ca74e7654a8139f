// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThomasGysemans/Ganko/internal/config"
)

func newRenderCommand(opts *config.Options) *cobra.Command {
	var (
		props     []string
		propsFile string
	)
	cmd := &cobra.Command{
		Use:   "render KEY",
		Short: "Render a template with props",
		Long: `Renders the template KEY from the registry given by --registry or
--cache-db. A KEY that is not registered is fetched and compiled first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, log, err := newEngine(opts)
			if err != nil {
				return err
			}
			if err := loadRegistry(ctx, eng, opts, log); err != nil {
				return err
			}
			p, err := parseProps(propsFile, props)
			if err != nil {
				return err
			}
			out, err := eng.Build(ctx, args[0], p)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringArrayVarP(&props, "prop", "p", nil, "Prop as NAME=VALUE, VALUE is a YAML scalar (repeatable)")
	cmd.Flags().StringVar(&propsFile, "props-file", "", "YAML file with props")
	return cmd
}
