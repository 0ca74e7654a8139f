// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ThomasGysemans/Ganko/dom"
	"github.com/ThomasGysemans/Ganko/internal/config"
)

func newInstantiateCommand(opts *config.Options) *cobra.Command {
	var (
		props     []string
		propsFile string
		updates   []string
		trigger   string
	)
	cmd := &cobra.Command{
		Use:   "instantiate KEY",
		Short: "Bind a template into a document and apply an update",
		Long: `Instantiates KEY in an empty document, prints the live markup, applies
the --update props and prints the markup again. With --trigger TARGET:EVENT
the update is applied by a handler for that event instead.`,
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
			if !eng.Registry.Has(args[0]) {
				if _, err := eng.Read(ctx, args[0]); err != nil {
					return err
				}
			}
			p, err := parseProps(propsFile, props)
			if err != nil {
				return err
			}
			partial, err := parseProps("", updates)
			if err != nil {
				return err
			}
			t, err := eng.Lookup(args[0])
			if err != nil {
				return err
			}
			apply := func(ev *dom.Event, v *dom.View) error {
				log.Info("event", "target", ev.Target, "event", ev.Name)
				return v.Update(partial)
			}
			hs := make(dom.Handlers)
			for _, tgt := range t.Targets() {
				hs[tgt] = make(map[string]dom.Handler)
				for _, ev := range t.Events[tgt] {
					hs[tgt][ev] = apply
				}
			}
			body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
			v, err := dom.Instantiate(eng, args[0], body, p, hs)
			if err != nil {
				return err
			}
			if !v.FullyDynamic() {
				log.Info("some slots are static", "template", v.Name())
			}
			out := cmd.OutOrStdout()
			if err := printView(cmd, v); err != nil {
				return err
			}
			if len(partial) == 0 {
				return nil
			}
			if trigger != "" {
				tgt, ev, ok := strings.Cut(trigger, ":")
				if !ok {
					return errors.Errorf("trigger %q: expected TARGET:EVENT", trigger)
				}
				err = v.Trigger(tgt, ev, nil)
			} else {
				err = v.Update(partial)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "---")
			return printView(cmd, v)
		},
	}
	cmd.Flags().StringArrayVarP(&props, "prop", "p", nil, "Prop as NAME=VALUE, VALUE is a YAML scalar (repeatable)")
	cmd.Flags().StringVar(&propsFile, "props-file", "", "YAML file with props")
	cmd.Flags().StringArrayVarP(&updates, "update", "u", nil, "Updated prop as NAME=VALUE (repeatable)")
	cmd.Flags().StringVar(&trigger, "trigger", "", "Apply the update from the handler of TARGET:EVENT")
	return cmd
}

func printView(cmd *cobra.Command, v *dom.View) error {
	s, err := v.HTML()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
	return err
}
