// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package ganko

import (
	"fmt"

	"github.com/pkg/errors"
)

// Compile-time errors. A failing compile never registers a template.
var (
	ErrMalformedTemplate        = errors.New("malformed template boundary")
	ErrDuplicateDirective       = errors.New("duplicate directive")
	ErrUnknownDirective         = errors.New("unknown directive")
	ErrEvaluationOutsideElement = errors.New("evaluation outside of an element")
)

// Render-time errors.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrIO               = errors.New("template i/o error")
	ErrUnknownProp      = errors.New("unknown prop")
	ErrMissingProp      = errors.New("missing mandatory prop")
	ErrEvaluation       = errors.New("expression evaluation failed")
)

// Instantiation-time errors.
var (
	ErrMissingEventBinding    = errors.New("missing event binding")
	ErrUnexpectedEventBinding = errors.New("unexpected event binding")
)

// EvalError is returned by evaluators when an expression cannot be
// evaluated. It matches ErrEvaluation with errors.Is.
type EvalError struct {
	Expr string
	Err  error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluate '%s': %s", e.Expr, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

func (e *EvalError) Is(target error) bool { return target == ErrEvaluation }
