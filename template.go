// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package ganko

import (
	"sort"

	"github.com/pkg/errors"
)

const (
	// AttrPrefix marks attributes whose value is a single evaluation. It is
	// stripped from the emitted attribute name.
	AttrPrefix = "gk-"
	// TargetAttr names an element as the target of bound events.
	TargetAttr = "gk"
	// EndMarker is the comment data closing a rendered text slot.
	EndMarker = "/ev"
)

// MarkerAttr is the temporary attribute that tags the element of a slot.
func MarkerAttr(slotID string) string { return "data-" + slotID }

// BeginMarker is the comment data opening the rendered text of a slot.
func BeginMarker(slotID string) string { return "ev:" + slotID }

// Props maps prop names to values.
type Props map[string]any

// PropDecl is a prop declared by a use directive. A nil Default makes the
// prop mandatory.
type PropDecl struct {
	Name    string `json:"name"`
	Default any    `json:"default"`
}

func (pd PropDecl) Mandatory() bool { return pd.Default == nil }

// Anchor is a live, writable output region resolved for one slot.
type Anchor interface {
	Write(value string)
}

// Slot is a single #{…} evaluation within a template's markup. Start and
// End (exclusive) locate the complete #{…} text in Template.Markup.
type Slot struct {
	ID     string   `json:"id"`
	Expr   string   `json:"expr"`
	Start  int      `json:"start"`
	End    int      `json:"end"`
	IsAttr bool     `json:"isAttr,omitempty"`
	Attr   string   `json:"attr,omitempty"`
	Deps   []string `json:"deps,omitempty"`

	// Whole is set for the only content of a textarea or title. Such a
	// slot is rendered without marker comments.
	Whole bool `json:"whole,omitempty"`

	// Set per instance when binding
	Anchor  Anchor `json:"-"`
	Dynamic bool   `json:"-"`
}

// DependsOn reports whether the slot depends on any of the changed props.
func (s *Slot) DependsOn(changed Props) bool {
	for _, d := range s.Deps {
		if _, ok := changed[d]; ok {
			return true
		}
	}
	return false
}

// Template is a compiled template. It is immutable after compilation;
// instances work on a Clone of its slots.
type Template struct {
	Name   string              `json:"name"`
	Markup string              `json:"markup"`
	Slots  []Slot              `json:"slots"`
	Props  []PropDecl          `json:"props"`
	Events map[string][]string `json:"events"`
}

func newTemplate(name string) *Template {
	return &Template{
		Name:   name,
		Events: make(map[string][]string),
	}
}

// Prop returns the declaration of prop name.
func (t *Template) Prop(name string) (PropDecl, bool) {
	for _, pd := range t.Props {
		if pd.Name == name {
			return pd, true
		}
	}
	return PropDecl{}, false
}

// PropNames returns the declared prop names in declaration order.
func (t *Template) PropNames() []string {
	res := make([]string, len(t.Props))
	for i, pd := range t.Props {
		res[i] = pd.Name
	}
	return res
}

// Targets returns the names of all bindable targets, sorted.
func (t *Template) Targets() []string {
	res := make([]string, 0, len(t.Events))
	for tgt := range t.Events {
		res = append(res, tgt)
	}
	sort.Strings(res)
	return res
}

// Declares reports whether event is bound on target.
func (t *Template) Declares(target, event string) bool {
	for _, e := range t.Events[target] {
		if e == event {
			return true
		}
	}
	return false
}

// Merge checks props against the declarations and returns the declared
// defaults overridden by props.
func (t *Template) Merge(props Props) (Props, error) {
	for key := range props {
		if _, ok := t.Prop(key); !ok {
			return nil, errors.Wrapf(ErrUnknownProp, "'%s' given to template '%s'", key, t.Name)
		}
	}
	res := make(Props, len(t.Props))
	for _, pd := range t.Props {
		if v, ok := props[pd.Name]; ok {
			res[pd.Name] = v
		} else if pd.Mandatory() {
			return nil, errors.Wrapf(ErrMissingProp, "'%s' not defined when requesting template '%s'",
				pd.Name,
				t.Name)
		} else {
			res[pd.Name] = pd.Default
		}
	}
	return res, nil
}

// Clone copies the slot list so that anchors can be attached without
// touching the template.
func (t *Template) Clone() []Slot {
	res := make([]Slot, len(t.Slots))
	for i, s := range t.Slots {
		s.Deps = append([]string(nil), s.Deps...)
		s.Anchor = nil
		s.Dynamic = false
		res[i] = s
	}
	return res
}

func (p Props) bindings() Bindings {
	res := make(Bindings, len(p))
	for k, v := range p {
		res[k] = v
	}
	return res
}
