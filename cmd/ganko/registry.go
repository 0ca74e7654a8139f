// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package main

import (
	"context"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	ganko "github.com/ThomasGysemans/Ganko"
	"github.com/ThomasGysemans/Ganko/cache"
	"github.com/ThomasGysemans/Ganko/internal/config"
)

// loadRegistry fills the engine's registry from the registry file or, if
// there is none, from the cache database.
func loadRegistry(ctx context.Context, eng *ganko.Engine, opts *config.Options, log logr.Logger) error {
	switch {
	case opts.RegistryFile != "":
		f, err := os.Open(opts.RegistryFile)
		if err != nil {
			return errors.Wrap(ganko.ErrIO, err.Error())
		}
		defer f.Close()
		if err := eng.Registry.Import(f, opts.Format); err != nil {
			return errors.Wrapf(err, "registry %s", opts.RegistryFile)
		}
		log.V(1).Info("loaded registry", "file", opts.RegistryFile, "templates", eng.Registry.Len())
	case opts.CacheDB != "":
		c, err := cache.Open(ctx, opts.CacheDB)
		if err != nil {
			return err
		}
		defer c.Close()
		ok, err := c.Load(ctx, opts.CacheKey, eng.Registry)
		if err != nil {
			return err
		}
		log.V(1).Info("loaded cache", "db", c.Path(), "key", opts.CacheKey, "hit", ok)
	}
	return nil
}

// saveRegistry writes the engine's registry to the registry file or stdout
// and stores it in the cache database if one is configured.
func saveRegistry(ctx context.Context, eng *ganko.Engine, opts *config.Options, log logr.Logger) (err error) {
	if opts.CacheDB != "" {
		c, err := cache.Open(ctx, opts.CacheDB)
		if err != nil {
			return err
		}
		defer c.Close()
		if err := c.Store(ctx, opts.CacheKey, eng.Registry); err != nil {
			return err
		}
		log.Info("stored registry", "db", c.Path(), "key", opts.CacheKey, "templates", eng.Registry.Len())
	}
	if opts.RegistryFile == "" {
		if opts.CacheDB != "" {
			return nil
		}
		return eng.Registry.Export(os.Stdout, opts.Format)
	}
	f, err := os.Create(opts.RegistryFile)
	if err != nil {
		return errors.Wrap(ganko.ErrIO, err.Error())
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(ganko.ErrIO, cerr.Error())
		}
	}()
	return eng.Registry.Export(f, opts.Format)
}

// parseProps reads props from a YAML file and NAME=VALUE pairs. Values are
// YAML scalars so numbers and booleans keep their type.
func parseProps(file string, pairs []string) (ganko.Props, error) {
	props := make(ganko.Props)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrap(ganko.ErrIO, err.Error())
		}
		if err := yaml.Unmarshal(data, &props); err != nil {
			return nil, errors.Wrapf(err, "props file %s", file)
		}
	}
	for _, p := range pairs {
		name, raw, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.Errorf("prop %q: expected NAME=VALUE", p)
		}
		props[name] = raw
		if strings.TrimSpace(raw) == "" {
			continue
		}
		var val any
		if err := yaml.Unmarshal([]byte(raw), &val); err == nil {
			props[name] = val
		}
	}
	return props, nil
}
