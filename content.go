// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package ganko

import (
	"fmt"
	"io"

	"github.com/ThomasGysemans/Ganko/markup"
)

// Content provides the interface Emit that will write the content to
// an io.Writer.
//
// Different than the standard write methods, Emit only returns the
// number of bytes written. If an error occurs Emit should panic with an
// EmitError. Use CatchEmit to switch back to standard (n int, err error)
// I/O results.
type Content interface {
	Emit(wr io.Writer) (wrbyte int)
}

type EmitError struct {
	Count int
	Err   error
}

func (ee EmitError) Error() string { return ee.Err.Error() }

func (ee EmitError) Unwrap() error { return ee.Err }

func CatchEmit(c Content, wr io.Writer) (n int, err error) {
	defer func() {
		if rek := recover(); rek != nil {
			if ee, ok := rek.(EmitError); ok {
				n = ee.Count
				err = ee.Err
			} else {
				panic(rek)
			}
		}
	}()
	n = c.Emit(wr)
	return n, nil
}

// Data is emitted verbatim.
type Data []byte

func (d Data) Emit(wr io.Writer) int {
	n, err := wr.Write(d)
	if err != nil {
		panic(EmitError{n, err})
	}
	return n
}

// Text is emitted escaped for markup.
type Text string

func (txt Text) Emit(wr io.Writer) int {
	n, err := io.WriteString(wr, markup.Esc(string(txt)))
	if err != nil {
		panic(EmitError{n, err})
	}
	return n
}

// Marked wraps content into the begin and end comments of a text slot so
// that the region can be found again in a live document.
type Marked struct {
	SlotID string
	Cnt    Content
}

func (m Marked) Emit(wr io.Writer) (n int) {
	c, err := fmt.Fprintf(wr, "<!--%s-->", BeginMarker(m.SlotID))
	if err != nil {
		panic(EmitError{c, err})
	}
	n = c
	n += m.Cnt.Emit(wr)
	if c, err = fmt.Fprintf(wr, "<!--%s-->", EndMarker); err != nil {
		panic(EmitError{n + c, err})
	}
	return n + c
}

// Bound keeps the content of every slot for one rendering of a template.
// A Bound is Content itself.
type Bound struct {
	tmpl *Template
	fill []Content
}

func (t *Template) NewBound() *Bound {
	return &Bound{tmpl: t, fill: make([]Content, len(t.Slots))}
}

func (bt *Bound) Template() *Template { return bt.tmpl }

// Fill binds cnt to the slot with index idx.
func (bt *Bound) Fill(idx int, cnt Content) {
	bt.fill[idx] = cnt
}

// Emit writes the markup with every slot replaced by its content. It panics
// with an EmitError when a slot is unbound or writing fails.
func (bt *Bound) Emit(out io.Writer) (n int) {
	src := bt.tmpl.Markup
	cursor := 0
	for i, s := range bt.tmpl.Slots {
		c, err := io.WriteString(out, src[cursor:s.Start])
		n += c
		if err != nil {
			panic(EmitError{n, err})
		}
		f := bt.fill[i]
		if f == nil {
			panic(EmitError{n,
				fmt.Errorf("unbound slot '%s' in template '%s'", s.ID, bt.tmpl.Name)})
		}
		n += f.Emit(out)
		cursor = s.End
	}
	c, err := io.WriteString(out, src[cursor:])
	if err != nil {
		panic(EmitError{n + c, err})
	}
	return n + c
}
