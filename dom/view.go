// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
//
// Package dom puts rendered templates into a live document tree of
// golang.org/x/net/html nodes, binds their slots and dispatches events to
// handlers.
package dom

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	ganko "github.com/ThomasGysemans/Ganko"
)

// Event is delivered to handlers. Node is the element the event was
// dispatched on, Current the element whose handler runs.
type Event struct {
	Name    string
	Target  string
	Node    *html.Node
	Current *html.Node
	Detail  any

	stopped bool
}

// StopPropagation keeps the event from reaching handlers of ancestors.
func (ev *Event) StopPropagation() { ev.stopped = true }

type Handler func(ev *Event, v *View) error

// Handlers maps targets to their event handlers.
type Handlers map[string]map[string]Handler

// View is a live instance of a template within a document.
type View struct {
	*ganko.Instance
	Root     *html.Node
	handlers Handlers
}

// Instantiate renders the template known as key with props into a new
// container element, binds the slots and appends the container to portal.
// Every element marked as event target must get handlers and every handler
// must be declared by the template. On error portal is not touched.
func Instantiate(
	eng *ganko.Engine,
	key string,
	portal *html.Node,
	props ganko.Props,
	hs Handlers,
) (*View, error) {
	t, err := eng.Lookup(key)
	if err != nil {
		return nil, err
	}
	out, merged, err := eng.RenderState(t, props)
	if err != nil {
		return nil, err
	}
	root, err := container(t.Name, out)
	if err != nil {
		return nil, err
	}
	if err = checkEvents(t, root, hs); err != nil {
		return nil, err
	}
	inst := eng.NewInstance(t, merged, binder{root: root})
	if portal != nil {
		portal.AppendChild(root)
	}
	return &View{Instance: inst, Root: root, handlers: hs}, nil
}

func container(name, markup string) (*html.Node, error) {
	root := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: ContainerAttr, Val: name}},
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), root)
	if err != nil {
		return nil, errors.Wrapf(err, "parse output of template '%s'", name)
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

func checkEvents(t *ganko.Template, root *html.Node, hs Handlers) error {
	err := walkElements(root, func(n *html.Node) error {
		tgt, ok := attr(n, ganko.TargetAttr)
		if !ok {
			return nil
		}
		if len(hs[tgt]) == 0 {
			return errors.Wrapf(ganko.ErrMissingEventBinding, "'%s' in template '%s'", tgt, t.Name)
		}
		return nil
	})
	if err != nil {
		return err
	}
	for tgt, evs := range hs {
		for ev := range evs {
			if !t.Declares(tgt, ev) {
				return errors.Wrapf(ganko.ErrUnexpectedEventBinding, "'%s' on '%s' for template '%s'",
					ev, tgt, t.Name)
			}
		}
	}
	return nil
}

// Dispatch delivers event to the handlers of node and of its ancestors up
// to the view's root. It returns the first handler error.
func (v *View) Dispatch(node *html.Node, event string, detail any) error {
	ev := &Event{Name: event, Node: node, Detail: detail}
	for n := node; n != nil && n != v.Root.Parent; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		tgt, ok := attr(n, ganko.TargetAttr)
		if !ok {
			continue
		}
		h := v.handlers[tgt][event]
		if h == nil {
			continue
		}
		ev.Target = tgt
		ev.Current = n
		if err := h(ev, v); err != nil {
			return err
		}
		if ev.stopped {
			break
		}
	}
	return nil
}

// Trigger dispatches event on the first element that is target.
func (v *View) Trigger(target, event string, detail any) error {
	n := v.Find(target)
	if n == nil {
		return errors.Errorf("no target '%s' in template '%s'", target, v.Name())
	}
	return v.Dispatch(n, event, detail)
}

// Find returns the first element marked as target.
func (v *View) Find(target string) *html.Node {
	return findElement(v.Root, func(n *html.Node) bool {
		tgt, ok := attr(n, ganko.TargetAttr)
		return ok && tgt == target
	})
}

// HTML renders the view's root element.
func (v *View) HTML() (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, v.Root); err != nil {
		return "", errors.Wrap(err, "render view")
	}
	return sb.String(), nil
}
