// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package ganko

import (
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
)

// Binder resolves the live anchor of a slot in some rendered output. It
// returns nil when the slot cannot be found.
type Binder interface {
	Resolve(s *Slot) Anchor
}

type BinderFunc func(s *Slot) Anchor

func (f BinderFunc) Resolve(s *Slot) Anchor { return f(s) }

// Instance is a rendered template with anchors attached to its slots. It
// updates only the slots that depend on changed props.
//
// An Instance must not be updated concurrently.
type Instance struct {
	tmpl  *Template
	slots []Slot
	props Props
	eng   *Engine
	log   logr.Logger
}

// NewInstance attaches the slots of t to anchors found by b. The props must
// be merged already, as returned by Engine.Bind. Slots without anchor are
// logged and stay static.
func (e *Engine) NewInstance(t *Template, merged Props, b Binder) *Instance {
	inst := &Instance{
		tmpl:  t,
		slots: t.Clone(),
		props: make(Props, len(merged)),
		eng:   e,
		log:   e.Log.WithValues("template", t.Name),
	}
	for k, v := range merged {
		inst.props[k] = v
	}
	for i := range inst.slots {
		s := &inst.slots[i]
		if a := b.Resolve(s); a != nil {
			s.Anchor = a
			s.Dynamic = true
		} else {
			inst.log.Info("slot will not be dynamic", "slot", s.ID, "expr", s.Expr)
		}
	}
	return inst
}

func (inst *Instance) Name() string { return inst.tmpl.Name }

func (inst *Instance) Template() *Template { return inst.tmpl }

// State returns a copy of the current props.
func (inst *Instance) State() Props {
	res := make(Props, len(inst.props))
	for k, v := range inst.props {
		res[k] = v
	}
	return res
}

// Slots returns a copy of the instance's slots including their anchors.
func (inst *Instance) Slots() []Slot {
	return append([]Slot(nil), inst.slots...)
}

// FullyDynamic reports whether every slot got an anchor.
func (inst *Instance) FullyDynamic() bool {
	for i := range inst.slots {
		if !inst.slots[i].Dynamic {
			return false
		}
	}
	return true
}

// Update re-evaluates every dynamic slot depending on a key of partial and
// writes the new values to their anchors. When an evaluation fails no anchor
// is written and the state is kept.
func (inst *Instance) Update(partial Props) error {
	for key := range partial {
		if _, ok := inst.tmpl.Prop(key); !ok {
			return errors.Wrapf(ErrUnknownProp, "'%s' updated on template '%s'", key, inst.tmpl.Name)
		}
	}
	next := inst.State()
	for k, v := range partial {
		next[k] = v
	}
	var (
		idx  []int
		vals []string
		b    = next.bindings()
	)
	for i := range inst.slots {
		s := &inst.slots[i]
		if !s.Dynamic || !s.DependsOn(partial) {
			continue
		}
		v, err := inst.eng.Eval.Evaluate(s.Expr, b)
		if err != nil {
			return err
		}
		idx = append(idx, i)
		vals = append(vals, inst.eng.format(v))
	}
	for n, i := range idx {
		inst.slots[i].Anchor.Write(vals[n])
	}
	inst.props = next
	inst.log.V(1).Info("updated", "props", len(partial), "slots", len(idx))
	return nil
}
