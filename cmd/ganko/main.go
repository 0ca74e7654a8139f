// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
//
// Command ganko compiles, inspects and renders ganko templates.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	ganko "github.com/ThomasGysemans/Ganko"
	"github.com/ThomasGysemans/Ganko/fetch"
	"github.com/ThomasGysemans/Ganko/internal/config"
	"github.com/ThomasGysemans/Ganko/internal/logging"
	"github.com/ThomasGysemans/Ganko/textmessage"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	err := newRootCommand().ExecuteContext(ctx)
	handleError(err)
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := config.NewOptions()
	cmd := &cobra.Command{
		Use:           "ganko",
		Short:         "Reactive templates with pre-computed anchors",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.Validate()
		},
	}
	opts.AddFlags(cmd)
	compileCmd := newCompileCommand(opts)
	renderCmd := newRenderCommand(opts)
	inspectCmd := newInspectCommand(opts)
	instantiateCmd := newInstantiateCommand(opts)
	cmd.AddCommand(compileCmd, renderCmd, inspectCmd, instantiateCmd)
	cmd.Example = `  # Compile templates into a registry file
  ganko compile card.html list.html --root templates --registry registry.yaml

  # Render a template with props
  ganko render card --registry registry.yaml --prop title=Hello --prop count=3`
	bindViper(cmd, compileCmd, renderCmd, inspectCmd, instantiateCmd)
	return cmd
}

// bindViper backfills unset flags from GANKO_* environment variables and
// the ganko config file.
func bindViper(commands ...*cobra.Command) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix("GANKO")
	v.AutomaticEnv()
	configFile := os.Getenv("GANKO_CONFIG")
	configureConfigFile(v, configFile)

	cobra.OnInitialize(func() {
		for _, cmd := range commands {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				cobra.CheckErr(err)
			}
			if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
				cobra.CheckErr(err)
			}
		}
		if err := readConfigFile(v, configFile != ""); err != nil {
			cobra.CheckErr(err)
		}
		for _, cmd := range commands {
			for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()} {
				fs.VisitAll(func(f *pflag.Flag) {
					if f.Changed || !v.IsSet(f.Name) {
						return
					}
					if sv, ok := f.Value.(pflag.SliceValue); ok {
						_ = sv.Replace(v.GetStringSlice(f.Name))
						return
					}
					if val := fmt.Sprintf("%v", v.Get(f.Name)); val != "" {
						_ = f.Value.Set(val)
					}
				})
			}
		}
	})
}

func configureConfigFile(v *viper.Viper, explicitPath string) {
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		return
	}
	v.SetConfigName("ganko")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "ganko"))
	}
}

func readConfigFile(v *viper.Viper, strict bool) error {
	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if errors.As(err, &cfgErr) && !strict {
			return nil
		}
		return err
	}
	return nil
}

func handleError(err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	message := err.Error()
	switch {
	case errors.Is(err, ganko.ErrMissingProp):
		message = fmt.Sprintf("%s\nHint: pass it with --prop NAME=VALUE or in --props-file.", err)
	case errors.Is(err, ganko.ErrUnknownProp):
		message = fmt.Sprintf("%s\nHint: run 'ganko inspect' to list the props the template declares.", err)
	case errors.Is(err, ganko.ErrTemplateNotFound):
		message = fmt.Sprintf("%s\nHint: check --root, --base-url or the registry given with --registry/--cache-db.", err)
	case errors.Is(err, ganko.ErrEvaluationOutsideElement):
		message = fmt.Sprintf("%s\nHint: #{...} must be inside an element or be the whole value of a gk- attribute.", err)
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}

// newEngine sets up an engine with fetcher, formatter and logger as
// configured by opts.
func newEngine(opts *config.Options) (*ganko.Engine, logr.Logger, error) {
	log, err := logging.New(opts.LogLevel)
	if err != nil {
		return nil, logr.Discard(), err
	}
	eopts := []ganko.Option{ganko.WithLogger(log)}
	if opts.BaseURL != "" {
		h, err := fetch.NewHTTP(opts.BaseURL, nil)
		if err != nil {
			return nil, log, err
		}
		eopts = append(eopts, ganko.WithFetcher(h))
	} else {
		eopts = append(eopts, ganko.WithFetcher(fetch.FS{Files: os.DirFS(opts.Root)}))
	}
	if opts.Locale != "" {
		f, err := textmessage.New(opts.Locale)
		if err != nil {
			return nil, log, err
		}
		eopts = append(eopts, ganko.WithFormatter(f))
	}
	return ganko.NewEngine(eopts...), log, nil
}
