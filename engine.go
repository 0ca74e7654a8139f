// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package ganko

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
)

// Fetcher retrieves template source text by locator.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) (string, error)
}

type FetcherFunc func(ctx context.Context, locator string) (string, error)

func (f FetcherFunc) Fetch(ctx context.Context, locator string) (string, error) {
	return f(ctx, locator)
}

// Engine compiles templates into its Registry and renders them. An Engine
// is cheap; use separate engines for isolated sets of templates.
type Engine struct {
	Registry  *Registry
	Eval      Evaluator
	Fetch     Fetcher
	Formatter Formatter
	Log       logr.Logger
}

type Option func(*Engine)

func WithRegistry(r *Registry) Option   { return func(e *Engine) { e.Registry = r } }
func WithEvaluator(ev Evaluator) Option { return func(e *Engine) { e.Eval = ev } }
func WithFetcher(f Fetcher) Option      { return func(e *Engine) { e.Fetch = f } }
func WithFormatter(f Formatter) Option  { return func(e *Engine) { e.Formatter = f } }
func WithLogger(l logr.Logger) Option   { return func(e *Engine) { e.Log = l } }

// NewEngine returns an engine with an empty registry, the JavaScript
// evaluator and the plain formatter unless options say otherwise.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		Registry:  NewRegistry(),
		Eval:      NewJSEvaluator(),
		Formatter: PlainFormatter,
		Log:       logr.Discard(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Compile compiles source and registers the result under its name, with
// key as alias. Nothing is registered on error.
func (e *Engine) Compile(key, source string) (*Template, error) {
	t, err := Compile(key, source, e.Eval)
	if err != nil {
		return nil, err
	}
	e.Registry.Set(key, t)
	e.Log.V(1).Info("compiled template",
		"key", key,
		"name", t.Name,
		"slots", len(t.Slots),
		"props", len(t.Props))
	return t, nil
}

// Read fetches the source at locator and compiles it.
func (e *Engine) Read(ctx context.Context, locator string) (*Template, error) {
	if e.Fetch == nil {
		return nil, errors.Wrapf(ErrTemplateNotFound, "'%s': no fetcher configured", locator)
	}
	src, err := e.Fetch.Fetch(ctx, locator)
	if err != nil {
		return nil, err
	}
	return e.Compile(locator, src)
}

// Lookup returns the registered template known as key.
func (e *Engine) Lookup(key string) (*Template, error) {
	t, ok := e.Registry.Get(key)
	if !ok {
		return nil, errors.Wrapf(ErrTemplateNotFound, "'%s'", key)
	}
	return t, nil
}

// Discard removes a template from the registry.
func (e *Engine) Discard(key string) bool {
	return e.Registry.Discard(key)
}

// Render renders the registered template key with props.
func (e *Engine) Render(key string, props Props) (string, error) {
	t, err := e.Lookup(key)
	if err != nil {
		return "", err
	}
	return e.RenderTemplate(t, props)
}

// Build is Render that reads key through the fetcher first if it is not
// registered yet.
func (e *Engine) Build(ctx context.Context, key string, props Props) (string, error) {
	if !e.Registry.Has(key) {
		if _, err := e.Read(ctx, key); err != nil {
			return "", err
		}
	}
	return e.Render(key, props)
}
