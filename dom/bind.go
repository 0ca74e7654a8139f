// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package dom

import (
	"strings"

	"golang.org/x/net/html"

	ganko "github.com/ThomasGysemans/Ganko"
)

// ContainerAttr names the template on the element that holds an instance.
const ContainerAttr = "data-template"

// attrAnchor is the value of one attribute of an element.
type attrAnchor struct {
	el  *html.Node
	key string
}

func (a attrAnchor) Write(value string) {
	for i := range a.el.Attr {
		if a.el.Attr[i].Key == a.key {
			a.el.Attr[i].Val = value
			return
		}
	}
	a.el.Attr = append(a.el.Attr, html.Attribute{Key: a.key, Val: value})
}

// textAnchor is a text node.
type textAnchor struct {
	node *html.Node
}

func (a textAnchor) Write(value string) { a.node.Data = value }

// binder resolves slot anchors within one container.
type binder struct {
	root *html.Node
}

func (b binder) Resolve(s *ganko.Slot) ganko.Anchor {
	marker := ganko.MarkerAttr(s.ID)
	el := findElement(b.root, func(n *html.Node) bool {
		_, ok := attrIndex(n, marker)
		return ok
	})
	if el == nil {
		return nil
	}
	removeAttr(el, marker)
	if s.IsAttr {
		i, ok := attrIndex(el, s.Attr)
		if !ok {
			return nil
		}
		return attrAnchor{el: el, key: el.Attr[i].Key}
	}
	if s.Whole {
		return textAnchor{node: replaceContent(el)}
	}
	begin := findMarker(el, ganko.BeginMarker(s.ID))
	if begin == nil && el.Parent != nil {
		begin = findMarker(el.Parent, ganko.BeginMarker(s.ID))
	}
	if begin == nil {
		return nil
	}
	return textAnchor{node: collapse(begin)}
}

// collapse replaces a begin marker, the nodes up to the matching end marker
// and that end marker with a single text node holding their text.
func collapse(begin *html.Node) *html.Node {
	parent := begin.Parent
	var sb strings.Builder
	n := begin.NextSibling
	for n != nil && !(n.Type == html.CommentNode && n.Data == ganko.EndMarker) {
		sb.WriteString(textContent(n))
		next := n.NextSibling
		parent.RemoveChild(n)
		n = next
	}
	txt := &html.Node{Type: html.TextNode, Data: sb.String()}
	parent.InsertBefore(txt, begin)
	parent.RemoveChild(begin)
	if n != nil {
		parent.RemoveChild(n)
	}
	return txt
}

// replaceContent replaces the children of el with one text node holding
// their text.
func replaceContent(el *html.Node) *html.Node {
	txt := &html.Node{Type: html.TextNode, Data: textContent(el)}
	for c := el.FirstChild; c != nil; c = el.FirstChild {
		el.RemoveChild(c)
	}
	el.AppendChild(txt)
	return txt
}

func findMarker(parent *html.Node, data string) *html.Node {
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.CommentNode && c.Data == data {
			return c
		}
	}
	return nil
}

// findElement returns the first element below root, in document order,
// that satisfies match.
func findElement(root *html.Node, match func(*html.Node) bool) *html.Node {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && match(c) {
			return c
		}
		if res := findElement(c, match); res != nil {
			return res
		}
	}
	return nil
}

func walkElements(root *html.Node, do func(*html.Node) error) error {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if err := do(c); err != nil {
			return err
		}
		if err := walkElements(c, do); err != nil {
			return err
		}
	}
	return nil
}

// attrIndex finds attribute key of n ignoring case.
func attrIndex(n *html.Node, key string) (int, bool) {
	for i, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return i, true
		}
	}
	return -1, false
}

func attr(n *html.Node, key string) (string, bool) {
	if i, ok := attrIndex(n, key); ok {
		return n.Attr[i].Val, true
	}
	return "", false
}

func removeAttr(n *html.Node, key string) {
	if i, ok := attrIndex(n, key); ok {
		n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
	}
}

func textContent(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		return n.Data
	case html.CommentNode:
		return ""
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}
