// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package ganko

import (
	"sync"

	"github.com/dop251/goja"
)

// JSEvaluator evaluates ECMAScript expressions with goja. Every evaluation
// runs in a fresh runtime that only knows the given bindings, so nothing
// leaks from one slot into the next. Compiled programs are cached by
// expression text.
type JSEvaluator struct {
	mu    sync.Mutex
	progs map[string]*goja.Program
}

func NewJSEvaluator() *JSEvaluator {
	return &JSEvaluator{progs: make(map[string]*goja.Program)}
}

func (e *JSEvaluator) Evaluate(expr string, b Bindings) (any, error) {
	prg, err := e.program(expr)
	if err != nil {
		return nil, &EvalError{Expr: expr, Err: err}
	}
	vm := goja.New()
	for name, v := range b {
		if err := vm.Set(name, v); err != nil {
			return nil, &EvalError{Expr: expr, Err: err}
		}
	}
	val, err := vm.RunProgram(prg)
	if err != nil {
		return nil, &EvalError{Expr: expr, Err: err}
	}
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return nil, nil
	}
	return val.Export(), nil
}

func (e *JSEvaluator) program(expr string) (*goja.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if prg, ok := e.progs[expr]; ok {
		return prg, nil
	}
	// parenthesized so that object literals are expressions, not blocks
	prg, err := goja.Compile("", "("+expr+"\n)", false)
	if err != nil {
		return nil, err
	}
	e.progs[expr] = prg
	return prg, nil
}
