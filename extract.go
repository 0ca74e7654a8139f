// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package ganko

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ThomasGysemans/Ganko/markup"
)

const (
	StartEval = "#{"
	EndEval   = "}"
	maskFill  = '_'
)

// newSlotID returns a fresh id that is also valid as part of an attribute
// name.
func newSlotID() string {
	u := uuid.New()
	return "gk" + strings.ReplaceAll(u.String(), "-", "")[:16]
}

// findSlots returns the [start, end) spans and expression texts of all
// minimal #{…} evaluations on a single line each.
func findSlots(src string) (spans [][2]int, exprs []string) {
	for pos := 0; pos < len(src); {
		open := strings.Index(src[pos:], StartEval)
		if open < 0 {
			break
		}
		open += pos
		inner := open + len(StartEval)
		end := strings.Index(src[inner:], EndEval)
		if end < 0 {
			break
		}
		end += inner
		if nl := strings.IndexByte(src[inner:end], '\n'); nl >= 0 {
			pos = inner + nl
			continue
		}
		spans = append(spans, [2]int{open, end + len(EndEval)})
		exprs = append(exprs, src[inner:end])
		pos = end + len(EndEval)
	}
	return spans, exprs
}

type edit struct {
	pos, del int
	ins      string
}

// extractSlots classifies every evaluation of t.Markup as text or attribute
// slot, tags its element and rewrites t.Markup accordingly.
func extractSlots(t *Template, newID func() string) error {
	src := t.Markup
	spans, exprs := findSlots(src)
	// slot texts must not be taken for markup while scanning
	masked := markup.Mask(src, spans, maskFill)
	declared := t.PropNames()
	var edits []edit
	for i, sp := range spans {
		s := Slot{
			ID:    newID(),
			Expr:  strings.TrimSpace(exprs[i]),
			Start: sp[0],
			End:   sp[1],
		}
		if markup.InComment(masked, s.Start) {
			return errors.Wrapf(ErrEvaluationOutsideElement,
				"'%s' inside a comment in template '%s'", s.Expr, t.Name)
		}
		if lt, ok := markup.InTag(masked, s.Start); ok {
			name, nameStart, quote, ok := markup.AttrValueAt(masked, lt, s.Start)
			if !ok ||
				!strings.HasPrefix(name, AttrPrefix) ||
				len(name) == len(AttrPrefix) ||
				!markup.ClosesAttrValue(masked, s.End, quote) {
				return errors.Wrapf(ErrEvaluationOutsideElement,
					"'%s' in a tag must be the whole value of a %s attribute in template '%s'",
					s.Expr,
					AttrPrefix,
					t.Name)
			}
			_, nameEnd := markup.TagName(masked, lt)
			s.IsAttr = true
			s.Attr = name[len(AttrPrefix):]
			edits = append(edits,
				edit{pos: nameEnd, ins: " " + MarkerAttr(s.ID)},
				edit{pos: nameStart, del: len(AttrPrefix)})
		} else {
			tag, ok := markup.Enclosing(masked, s.Start)
			if !ok {
				return errors.Wrapf(ErrEvaluationOutsideElement,
					"'%s' in template '%s'", s.Expr, t.Name)
			}
			switch tag.Content {
			case markup.RawText:
				return errors.Wrapf(ErrEvaluationOutsideElement,
					"'%s' inside <%s> in template '%s'", s.Expr, tag.Name, t.Name)
			case markup.EscapableText:
				if s.Start != tag.End+1 || !markup.ClosesElement(masked, s.End, tag.Name) {
					return errors.Wrapf(ErrEvaluationOutsideElement,
						"'%s' must be the whole content of <%s> in template '%s'",
						s.Expr,
						tag.Name,
						t.Name)
				}
				s.Whole = true
			}
			edits = append(edits, edit{pos: tag.End, ins: " " + MarkerAttr(s.ID)})
		}
		s.Deps = Dependencies(s.Expr, declared)
		t.Slots = append(t.Slots, s)
	}
	t.Markup = rewrite(src, edits, t.Slots)
	return nil
}

// rewrite applies all edits in one left-to-right pass. A running offset
// moves every slot by the edits that precede it.
func rewrite(src string, edits []edit, slots []Slot) string {
	if len(edits) == 0 {
		return src
	}
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].pos < edits[j].pos })
	var out strings.Builder
	out.Grow(len(src) + 32*len(slots))
	cursor, offset, ei := 0, 0, 0
	apply := func(e edit) {
		out.WriteString(src[cursor:e.pos])
		out.WriteString(e.ins)
		cursor = e.pos + e.del
		offset += len(e.ins) - e.del
	}
	for si := range slots {
		for ei < len(edits) && edits[ei].pos < slots[si].Start {
			apply(edits[ei])
			ei++
		}
		slots[si].Start += offset
		slots[si].End += offset
	}
	for ; ei < len(edits); ei++ {
		apply(edits[ei])
	}
	out.WriteString(src[cursor:])
	return out.String()
}
