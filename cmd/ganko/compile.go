// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ThomasGysemans/Ganko/internal/config"
)

func newCompileCommand(opts *config.Options) *cobra.Command {
	var parallel int
	cmd := &cobra.Command{
		Use:   "compile LOCATOR...",
		Short: "Compile templates into a registry",
		Long: `Fetches all templates concurrently, compiles them in argument order and
writes the registry to --registry (stdout if unset) and to --cache-db.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, log, err := newEngine(opts)
			if err != nil {
				return err
			}
			srcs := make([]string, len(args))
			g, gctx := errgroup.WithContext(ctx)
			if parallel > 0 {
				g.SetLimit(parallel)
			}
			for i, loc := range args {
				i, loc := i, loc
				g.Go(func() error {
					src, err := eng.Fetch.Fetch(gctx, loc)
					if err != nil {
						return err
					}
					srcs[i] = src
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			for i, loc := range args {
				t, err := eng.Compile(loc, srcs[i])
				if err != nil {
					return err
				}
				log.Info("compiled", "locator", loc, "name", t.Name, "slots", len(t.Slots))
			}
			return saveRegistry(ctx, eng, opts, log)
		},
	}
	cmd.Flags().IntVar(&parallel, "parallel", 8, "Maximum number of concurrent fetches (0 = unlimited)")
	return cmd
}
