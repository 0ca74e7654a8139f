// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package ganko

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	TemplateOpen  = "<template>"
	TemplateClose = "</template>"
)

// splitSource separates the directive header from the markup body.
func splitSource(key, src string) (header, body string, err error) {
	src = strings.TrimSpace(src)
	pos := strings.Index(src, TemplateOpen)
	if pos < 0 {
		return "", "", errors.Wrapf(ErrMalformedTemplate, "'%s' has no %s tag", key, TemplateOpen)
	}
	if !strings.HasSuffix(src, TemplateClose) {
		return "", "", errors.Wrapf(ErrMalformedTemplate, "'%s' should finish with %s", key, TemplateClose)
	}
	body = src[pos+len(TemplateOpen) : len(src)-len(TemplateClose)]
	if strings.Contains(body, TemplateOpen) || strings.Contains(body, TemplateClose) {
		return "", "", errors.Wrapf(ErrMalformedTemplate, "'%s' has nested template tags", key)
	}
	return src[:pos], strings.TrimSpace(body), nil
}

// Compile turns source text into a template. The template is named by its
// name directive or, without one, by key. Default prop values are computed
// with eval.
func Compile(key, source string, eval Evaluator) (*Template, error) {
	return compile(key, source, eval, newSlotID)
}

func compile(key, source string, eval Evaluator, newID func() string) (*Template, error) {
	header, body, err := splitSource(key, source)
	if err != nil {
		return nil, err
	}
	d, err := parseDirectives(header, eval)
	if err != nil {
		return nil, errors.Wrapf(err, "template '%s'", key)
	}
	name := d.name
	if name == "" {
		name = key
	}
	t := newTemplate(name)
	t.Props = d.props
	t.Events = d.events
	t.Markup = body
	if err := extractSlots(t, newID); err != nil {
		return nil, err
	}
	return t, nil
}
