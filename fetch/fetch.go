// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
//
// Package fetch provides sources of template text for ganko.Engine.
package fetch

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/pkg/errors"

	ganko "github.com/ThomasGysemans/Ganko"
)

// FS reads templates from a file system. Locators are slash separated
// paths relative to the file system's root.
type FS struct {
	Files fs.FS
}

func (f FS) Fetch(ctx context.Context, locator string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(ganko.ErrIO, err.Error())
	}
	name := path.Clean(strings.TrimPrefix(locator, "/"))
	if !fs.ValidPath(name) {
		return "", errors.Wrapf(ganko.ErrTemplateNotFound, "'%s' outside of template root", locator)
	}
	data, err := fs.ReadFile(f.Files, name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", errors.Wrapf(ganko.ErrTemplateNotFound, "'%s'", locator)
	case err != nil:
		return "", errors.Wrapf(ganko.ErrIO, "'%s': %s", locator, err)
	}
	return string(data), nil
}

// HTTP requests templates relative to Base. A nil Client uses
// http.DefaultClient.
type HTTP struct {
	Base   *url.URL
	Client *http.Client
}

func NewHTTP(base string, client *http.Client) (*HTTP, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, errors.Wrapf(err, "template base url '%s'", base)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return &HTTP{Base: u, Client: client}, nil
}

func (h *HTTP) Fetch(ctx context.Context, locator string) (string, error) {
	ref, err := url.Parse(strings.TrimPrefix(locator, "/"))
	if err != nil {
		return "", errors.Wrapf(ganko.ErrTemplateNotFound, "'%s': %s", locator, err)
	}
	target := ref
	if h.Base != nil {
		target = h.Base.ResolveReference(ref)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return "", errors.Wrapf(ganko.ErrIO, "'%s': %s", locator, err)
	}
	clt := h.Client
	if clt == nil {
		clt = http.DefaultClient
	}
	resp, err := clt.Do(req)
	if err != nil {
		return "", errors.Wrapf(ganko.ErrIO, "'%s': %s", locator, err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", errors.Wrapf(ganko.ErrTemplateNotFound, "'%s'", target)
	case resp.StatusCode/100 != 2:
		return "", errors.Wrapf(ganko.ErrIO, "'%s': %s", target, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrapf(ganko.ErrIO, "'%s': %s", target, err)
	}
	return string(data), nil
}
