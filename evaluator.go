// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package ganko

import (
	"fmt"
	"math"
	"strconv"
)

// Bindings are the variables visible to an expression. Values are passed by
// value; strings are raw text and must never be unescaped by an evaluator.
type Bindings map[string]any

// Evaluator evaluates expression text against bindings. Failures should be
// reported as *EvalError.
type Evaluator interface {
	Evaluate(expr string, b Bindings) (any, error)
}

type EvaluatorFunc func(expr string, b Bindings) (any, error)

func (f EvaluatorFunc) Evaluate(expr string, b Bindings) (any, error) {
	return f(expr, b)
}

// Formatter turns an evaluated value into the text written to the output.
type Formatter interface {
	Format(v any) string
}

type FormatterFunc func(v any) string

func (f FormatterFunc) Format(v any) string { return f(v) }

// PlainFormatter prints nil as the empty string and integral floats without
// fraction or exponent. Everything else goes through fmt.Sprint.
var PlainFormatter Formatter = FormatterFunc(plainFormat)

func plainFormat(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return fmt.Sprint(x)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}
