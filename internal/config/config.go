// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
//
// Package config holds the options shared by the ganko commands and binds
// them to command line flags.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"

	ganko "github.com/ThomasGysemans/Ganko"
	"github.com/ThomasGysemans/Ganko/cache"
)

// Options holds the CLI configuration.
type Options struct {
	LogLevel       string
	Root           string
	BaseURL        string
	RegistryFile   string
	RegistryFormat string
	CacheDB        string
	CacheKey       string
	Locale         string
	Format         ganko.Format
}

// NewOptions returns Options with defaults applied.
func NewOptions() *Options {
	return &Options{
		LogLevel:       "info",
		Root:           ".",
		RegistryFormat: string(ganko.FormatJSON),
		CacheKey:       cache.DefaultKey,
	}
}

// AddFlags binds the options to the persistent flags of cmd.
func (o *Options) AddFlags(cmd *cobra.Command) {
	o.BindFlags(cmd.PersistentFlags())
}

// BindFlags attaches the option flags to fs and returns their names.
func (o *Options) BindFlags(fs *pflag.FlagSet) []string {
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&o.Root, "root", o.Root, "Directory template locators are relative to")
	fs.StringVar(&o.BaseURL, "base-url", o.BaseURL, "Fetch templates over HTTP relative to this URL instead of --root")
	fs.StringVar(&o.RegistryFile, "registry", o.RegistryFile, "Registry file to read or write")
	fs.StringVar(&o.RegistryFormat, "format", o.RegistryFormat, "Registry file format (json or yaml)")
	fs.StringVar(&o.CacheDB, "cache-db", o.CacheDB, "SQLite database caching compiled registries")
	fs.StringVar(&o.CacheKey, "cache-key", o.CacheKey, "Entry of the registry in the cache database")
	fs.StringVar(&o.Locale, "locale", o.Locale, "Format numbers for this language, e.g. de-DE")
	return []string{"log-level", "root", "base-url", "registry", "format", "cache-db", "cache-key", "locale"}
}

// Validate normalizes the options and checks them for consistency.
func (o *Options) Validate() error {
	o.LogLevel = strings.ToLower(strings.TrimSpace(o.LogLevel))
	if o.RegistryFormat == "" {
		if strings.HasSuffix(o.RegistryFile, ".yaml") || strings.HasSuffix(o.RegistryFile, ".yml") {
			o.RegistryFormat = string(ganko.FormatYAML)
		}
	}
	f, err := ganko.ParseFormat(o.RegistryFormat)
	if err != nil {
		return err
	}
	o.Format = f
	if o.Root == "" {
		o.Root = "."
	}
	if strings.TrimSpace(o.CacheKey) == "" {
		o.CacheKey = cache.DefaultKey
	}
	if o.Locale != "" {
		if _, err := language.Parse(o.Locale); err != nil {
			return errors.Wrapf(err, "invalid locale %q", o.Locale)
		}
	}
	return nil
}
