// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package markup

import (
	"regexp"
	"strings"
)

// Tag locates an opening tag within a markup string. Start is the index of
// '<' and End the index of '>'.
type Tag struct {
	Start, End  int
	Name        string
	NameEnd     int
	SelfClosing bool
	Content     ContentKind
}

// ContentKind tells how the content of an element is parsed.
type ContentKind int

const (
	// Elements holds child elements, text and comments.
	Elements ContentKind = iota
	// EscapableText holds text with character references only.
	EscapableText
	// RawText holds text taken verbatim.
	RawText
)

var contentKinds = map[string]ContentKind{
	"textarea": EscapableText, "title": EscapableText,
	"script": RawText, "style": RawText, "xmp": RawText, "iframe": RawText,
	"noembed": RawText, "noframes": RawText, "noscript": RawText,
	"plaintext": RawText,
}

// ContentOf returns the content kind of elements named name.
func ContentOf(name string) ContentKind { return contentKinds[strings.ToLower(name)] }

var (
	openTagRgx  = regexp.MustCompile(`^<([a-zA-Z][a-zA-Z0-9]*(?:-[a-zA-Z0-9]+)*)((?:[^"'<>]|"[^"]*"|'[^']*')*)>$`)
	closeTagRgx = regexp.MustCompile(`^</([a-zA-Z][a-zA-Z0-9]*(?:-[a-zA-Z0-9]+)*)\s*>$`)
	attrValRgx  = regexp.MustCompile(`\s([^\s"'<>/=]+)\s*=\s*(["'])\s*$`)
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// IsVoid reports whether elements named name never have content.
func IsVoid(name string) bool { return voidElements[strings.ToLower(name)] }

// Mask returns src with every [start, end) span overwritten by fill. The
// result has the same length as src, so all indices stay valid.
func Mask(src string, spans [][2]int, fill byte) string {
	if len(spans) == 0 {
		return src
	}
	buf := []byte(src)
	for _, sp := range spans {
		for i := sp[0]; i < sp[1] && i < len(buf); i++ {
			buf[i] = fill
		}
	}
	return string(buf)
}

// OpenTag parses src[lt:gt+1] as an opening tag.
func OpenTag(src string, lt, gt int) (Tag, bool) {
	if lt < 0 || gt >= len(src) || lt >= gt {
		return Tag{}, false
	}
	m := openTagRgx.FindStringSubmatch(src[lt : gt+1])
	if m == nil {
		return Tag{}, false
	}
	if a := m[2]; a != "" && !isSpace(a[0]) && a[0] != '/' {
		return Tag{}, false
	}
	name := strings.ToLower(m[1])
	return Tag{
		Start:       lt,
		End:         gt,
		Name:        name,
		NameEnd:     lt + 1 + len(m[1]),
		SelfClosing: src[gt-1] == '/',
		Content:     ContentOf(name),
	}, true
}

// InComment reports whether pos lies inside a <!-- --> comment.
func InComment(src string, pos int) bool {
	return scanTo(src, pos).comment
}

// InTag reports whether pos lies between the '<' and the '>' of an opening
// tag and returns the index of that '<'. A '>' within a quoted attribute
// value does not end the tag.
func InTag(src string, pos int) (lt int, ok bool) {
	st := scanTo(src, pos)
	if st.tagStart < 0 {
		return -1, false
	}
	return st.tagStart, true
}

// AttrValueAt checks that pos directly follows the opening quote of an
// attribute value in the tag starting at lt. Whitespace between the quote
// and pos is allowed.
func AttrValueAt(src string, lt, pos int) (name string, nameStart int, quote byte, ok bool) {
	loc := attrValRgx.FindStringSubmatchIndex(src[lt:pos])
	if loc == nil {
		return "", -1, 0, false
	}
	return src[lt+loc[2] : lt+loc[3]], lt + loc[2], src[lt+loc[4]], true
}

// ClosesAttrValue checks that only whitespace separates pos from the
// closing quote.
func ClosesAttrValue(src string, pos int, quote byte) bool {
	for i := pos; i < len(src); i++ {
		switch c := src[i]; {
		case c == quote:
			return true
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
		default:
			return false
		}
	}
	return false
}

// Enclosing returns the innermost element that is still open at pos.
// Closed elements, comments, void and self-closing elements are skipped.
// Opening tags without a matching end tag are closed implicitly by the end
// tag of an enclosing element. A '<' or '>' that does not belong to a
// recognized tag is taken as text. Within an element of RawText or
// EscapableText content nothing is parsed up to its end tag.
func Enclosing(src string, pos int) (Tag, bool) {
	st := scanTo(src, pos)
	if st.comment || st.tagStart >= 0 || st.broken || len(st.open) == 0 {
		return Tag{}, false
	}
	return st.open[len(st.open)-1], true
}

// ClosesElement reports whether the end tag of an element named name
// starts at pos.
func ClosesElement(src string, pos int, name string) bool {
	return endTagIndex(src, pos, name) == pos
}

type scanState struct {
	comment  bool
	tagStart int
	broken   bool
	open     []Tag
}

func (st *scanState) close(name string) {
	for i := len(st.open) - 1; i >= 0; i-- {
		if st.open[i].Name == name {
			st.open = st.open[:i]
			return
		}
	}
}

// scanTo parses src up to pos and reports where pos is found.
func scanTo(src string, pos int) (st scanState) {
	st.tagStart = -1
	for i := 0; i < pos; {
		if src[i] != '<' || i+1 >= len(src) {
			i++
			continue
		}
		switch c := src[i+1]; {
		case strings.HasPrefix(src[i:], "<!--"):
			end := strings.Index(src[i+4:], "-->")
			if end < 0 || i+4+end+3 > pos {
				st.comment = true
				return st
			}
			i += 4 + end + 3
		case c == '/':
			gt := tagEnd(src, i)
			if gt < 0 || gt >= pos {
				st.broken = true
				return st
			}
			if m := closeTagRgx.FindStringSubmatch(src[i : gt+1]); m != nil {
				st.close(strings.ToLower(m[1]))
			}
			i = gt + 1
		case isLetter(c):
			gt := tagEnd(src, i)
			if gt < 0 || gt >= pos {
				st.tagStart = i
				return st
			}
			tag, ok := OpenTag(src, i, gt)
			if !ok {
				i++
				continue
			}
			i = gt + 1
			if tag.SelfClosing || IsVoid(tag.Name) {
				continue
			}
			st.open = append(st.open, tag)
			if tag.Content != Elements {
				end := endTagIndex(src, i, tag.Name)
				if end < 0 || end >= pos {
					return st
				}
				i = end
			}
		default:
			i++
		}
	}
	return st
}

// tagEnd returns the index of the '>' closing the tag that starts at lt,
// skipping quoted runs, or -1.
func tagEnd(src string, lt int) int {
	var quote byte
	for i := lt + 1; i < len(src); i++ {
		switch c := src[i]; {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return i
		}
	}
	return -1
}

// endTagIndex returns the index of the first end tag of name at or after
// from, or -1.
func endTagIndex(src string, from int, name string) int {
	for i := from; i+2+len(name) <= len(src); i++ {
		if src[i] != '<' || src[i+1] != '/' ||
			!strings.EqualFold(src[i+2:i+2+len(name)], name) {
			continue
		}
		if j := i + 2 + len(name); j == len(src) || isSpace(src[j]) || src[j] == '>' || src[j] == '/' {
			return i
		}
	}
	return -1
}

// TagName returns the name of the tag whose '<' is at lt and the index
// right after the name.
func TagName(src string, lt int) (name string, end int) {
	end = lt + 1
	for end < len(src) && (isLetter(src[end]) || ('0' <= src[end] && src[end] <= '9') || src[end] == '-') {
		end++
	}
	return strings.ToLower(src[lt+1 : end]), end
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
