// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
//
// Package textmessage formats evaluated values for a language using
// golang.org/x/text/message.
package textmessage

import (
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	ganko "github.com/ThomasGysemans/Ganko"
)

// Formatter is a ganko.Formatter that prints numbers the way Printer's
// language does. Strings and nil are treated like ganko.PlainFormatter.
type Formatter struct {
	Printer *message.Printer
}

func New(lang string) (Formatter, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return Formatter{}, errors.Wrapf(err, "locale '%s'", lang)
	}
	return Formatter{Printer: message.NewPrinter(tag)}, nil
}

func (f Formatter) Format(v any) string {
	switch x := v.(type) {
	case nil, string, bool:
		return ganko.PlainFormatter.Format(v)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return f.Printer.Sprintf("%d", x)
	case float32:
		return f.Format(float64(x))
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return ganko.PlainFormatter.Format(x)
		}
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return f.Printer.Sprintf("%d", int64(x))
		}
		return f.Printer.Sprintf("%v", x)
	case fmt.Stringer:
		return x.String()
	default:
		return f.Printer.Sprint(v)
	}
}

// Msg is a message that is printed when emitted.
type Msg struct {
	Printer *message.Printer
	Format  string
	Values  []any
}

func (m Msg) Emit(wr io.Writer) (n int) {
	n, err := m.Printer.Fprintf(wr, m.Format, m.Values...)
	if err != nil {
		panic(ganko.EmitError{Count: n, Err: err})
	}
	return n
}
