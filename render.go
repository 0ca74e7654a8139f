// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package ganko

import (
	"strings"
)

func (e *Engine) format(v any) string {
	if e.Formatter == nil {
		return PlainFormatter.Format(v)
	}
	return e.Formatter.Format(v)
}

// evaluate computes the formatted value of every slot against merged props.
// Evaluation errors are returned as they come from the evaluator.
func (e *Engine) evaluate(slots []Slot, merged Props) ([]string, error) {
	b := merged.bindings()
	res := make([]string, len(slots))
	for i := range slots {
		v, err := e.Eval.Evaluate(slots[i].Expr, b)
		if err != nil {
			return nil, err
		}
		res[i] = e.format(v)
	}
	return res, nil
}

// Bind evaluates all slots of t against props and returns the bound
// template ready to be emitted, together with the merged props.
func (e *Engine) Bind(t *Template, props Props) (*Bound, Props, error) {
	merged, err := t.Merge(props)
	if err != nil {
		return nil, nil, err
	}
	vals, err := e.evaluate(t.Slots, merged)
	if err != nil {
		return nil, nil, err
	}
	bt := t.NewBound()
	for i, s := range t.Slots {
		if s.IsAttr || s.Whole {
			bt.Fill(i, Text(vals[i]))
		} else {
			bt.Fill(i, Marked{SlotID: s.ID, Cnt: Text(vals[i])})
		}
	}
	return bt, merged, nil
}

// RenderTemplate renders t with props into markup. Text slots are wrapped
// into begin and end comments unless they make up a whole textarea or
// title. Attribute slots become the attribute's value.
func (e *Engine) RenderTemplate(t *Template, props Props) (string, error) {
	out, _, err := e.RenderState(t, props)
	return out, err
}

// RenderState is RenderTemplate that also returns the merged props an
// instance of the output starts with.
func (e *Engine) RenderState(t *Template, props Props) (string, Props, error) {
	bt, merged, err := e.Bind(t, props)
	if err != nil {
		return "", nil, err
	}
	var sb strings.Builder
	if _, err := CatchEmit(bt, &sb); err != nil {
		return "", nil, err
	}
	e.Log.V(1).Info("rendered template", "name", t.Name, "bytes", sb.Len())
	return sb.String(), merged, nil
}
