// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package markup

import (
	"bytes"
	"errors"
	"io"
	"unicode/utf8"
)

var (
	escLt   = []byte("&lt;")
	escGt   = []byte("&gt;")
	escAmp  = []byte("&amp;")
	escQuot = []byte("&quot;")
	escApos = []byte("&apos;")
	escNul  = []byte("�")
)

// EscWriter escapes everything written to it so that it can be used as
// element text or as a quoted attribute value. Multi-byte runes may be split
// across Write calls.
type EscWriter struct {
	Escape io.Writer
	buf    [utf8.UTFMax]byte
	wp     int
}

func (ew *EscWriter) Write(p []byte) (n int, err error) {
	for _, b := range p {
		ew.buf[ew.wp] = b
		ew.wp++
		buf := ew.buf[:ew.wp]
		if !utf8.FullRune(buf) {
			continue
		}
		ew.wp = 0
		r, size := utf8.DecodeRune(buf)
		if r == utf8.RuneError && size == 1 {
			return n, errors.New("utf8 rune decoding error")
		}
		var out []byte
		switch r {
		case '\000':
			out = escNul
		case '<':
			out = escLt
		case '>':
			out = escGt
		case '&':
			out = escAmp
		case '"':
			out = escQuot
		case '\'':
			out = escApos
		default:
			out = buf
		}
		i, err := ew.Escape.Write(out)
		n += i
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Esc returns str escaped for markup. Invalid UTF-8 is replaced rune by rune.
func Esc(str string) string {
	if !utf8.ValidString(str) {
		str = string(bytes.ToValidUTF8([]byte(str), []byte("�")))
	}
	buf := bytes.NewBuffer(nil)
	ewr := EscWriter{Escape: buf}
	ewr.Write([]byte(str))
	return buf.String()
}
