// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	ganko "github.com/ThomasGysemans/Ganko"
	"github.com/ThomasGysemans/Ganko/internal/config"
	"github.com/ThomasGysemans/Ganko/textmessage"
)

func newInspectCommand(opts *config.Options) *cobra.Command {
	var noColor bool
	cmd := &cobra.Command{
		Use:   "inspect LOCATOR",
		Short: "Show props, events and slots of a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}
			eng, _, err := newEngine(opts)
			if err != nil {
				return err
			}
			t, err := eng.Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			lang := language.English
			if opts.Locale != "" {
				lang = language.Make(opts.Locale)
			}
			return writeInspect(cmd.OutOrStdout(), t, message.NewPrinter(lang))
		},
	}
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	return cmd
}

func writeInspect(w io.Writer, t *ganko.Template, pr *message.Printer) error {
	var (
		head = color.New(color.Bold)
		mand = color.New(color.FgRed)
		dflt = color.New(color.FgGreen)
		dim  = color.New(color.Faint)
	)
	head.Fprintf(w, "template %s\n", t.Name)
	fmt.Fprintln(w, "props:")
	for _, pd := range t.Props {
		if pd.Mandatory() {
			mand.Fprintf(w, "  %s (mandatory)\n", pd.Name)
		} else {
			dflt.Fprintf(w, "  %s ?? %v\n", pd.Name, pd.Default)
		}
	}
	fmt.Fprintln(w, "events:")
	for _, tgt := range t.Targets() {
		fmt.Fprintf(w, "  %s: %s\n", tgt, strings.Join(t.Events[tgt], ", "))
	}
	fmt.Fprintln(w, "slots:")
	for _, s := range t.Slots {
		kind := "text"
		switch {
		case s.IsAttr:
			kind = "attr " + s.Attr
		case s.Whole:
			kind = "content"
		}
		fmt.Fprintf(w, "  %s %-12s #{%s}", s.ID, kind, s.Expr)
		dim.Fprintf(w, " deps=[%s]\n", strings.Join(s.Deps, " "))
	}
	_, err := ganko.CatchEmit(textmessage.Msg{
		Printer: pr,
		Format:  "%d slots, %d props, %d bytes of markup\n",
		Values:  []any{len(t.Slots), len(t.Props), len(t.Markup)},
	}, w)
	return err
}
