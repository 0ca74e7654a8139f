// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package ganko

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stvp/assert"
)

// seqIDs generates gk1, gk2, … so that markup is predictable.
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("gk%d", n)
	}
}

func mustCompile(t *testing.T, key, src string) *Template {
	tmpl, err := compile(key, src, NewJSEvaluator(), seqIDs())
	if err != nil {
		t.Fatalf("compile %s: %s", key, err)
	}
	return tmpl
}

func assertSlotText(t *testing.T, tmpl *Template, idx int, expect string) {
	s := tmpl.Slots[idx]
	assert.Equal(t, expect, tmpl.Markup[s.Start:s.End], "slot ", idx)
}

const cardSrc = `@use title
@use name ?? "Thomas"
<template>
<h1>#{title}</h1><p>#{name.toUpperCase()}</p>
</template>`

func TestCompile_textSlots(t *testing.T) {
	tmpl := mustCompile(t, "card.html", cardSrc)
	assert.Equal(t, "card.html", tmpl.Name)
	assert.Equal(t,
		`<h1 data-gk1>#{title}</h1><p data-gk2>#{name.toUpperCase()}</p>`,
		tmpl.Markup)
	assert.Equal(t, 2, len(tmpl.Slots))
	assertSlotText(t, tmpl, 0, "#{title}")
	assertSlotText(t, tmpl, 1, "#{name.toUpperCase()}")
	assert.Equal(t, "title", tmpl.Slots[0].Expr)
	assert.Equal(t, []string{"title"}, tmpl.Slots[0].Deps)
	assert.Equal(t, []string{"name"}, tmpl.Slots[1].Deps)
	assert.False(t, tmpl.Slots[0].IsAttr)
	assert.Equal(t, []string{"title", "name"}, tmpl.PropNames())
	pd, ok := tmpl.Prop("title")
	assert.True(t, ok)
	assert.True(t, pd.Mandatory())
	pd, _ = tmpl.Prop("name")
	assert.Equal(t, "Thomas", pd.Default)
}

func TestCompile_attrSlot(t *testing.T) {
	tmpl := mustCompile(t, "toggle", `@use active ?? false
@use label ?? "toggle"
<template>
  <div gk-class="#{active ? 'on' : 'off'}"><span>#{label}</span></div>
</template>`)
	assert.Equal(t,
		`<div data-gk1 class="#{active ? 'on' : 'off'}"><span data-gk2>#{label}</span></div>`,
		tmpl.Markup)
	assertSlotText(t, tmpl, 0, "#{active ? 'on' : 'off'}")
	assertSlotText(t, tmpl, 1, "#{label}")
	s := tmpl.Slots[0]
	assert.True(t, s.IsAttr)
	assert.Equal(t, "class", s.Attr)
	assert.Equal(t, []string{"active"}, s.Deps)
}

func TestCompile_manySlotsOneElement(t *testing.T) {
	tmpl := mustCompile(t, "t", `@use a ?? 1
@use b ?? 2
<template><p>#{a} and #{a > b ? "more" : "less"} <br> #{b}</p></template>`)
	assert.Equal(t,
		`<p data-gk1 data-gk2 data-gk3>#{a} and #{a > b ? "more" : "less"} <br> #{b}</p>`,
		tmpl.Markup)
	assertSlotText(t, tmpl, 0, "#{a}")
	assertSlotText(t, tmpl, 1, `#{a > b ? "more" : "less"}`)
	assertSlotText(t, tmpl, 2, "#{b}")
	assert.Equal(t, []string{"a", "b"}, tmpl.Slots[1].Deps)
}

func TestCompile_attrAndTextSameElement(t *testing.T) {
	tmpl := mustCompile(t, "t", `@use x ?? "a"
<template><a gk-href="#{x}" id='l'>#{x}</a></template>`)
	assert.Equal(t, `<a data-gk1 href="#{x}" id='l' data-gk2>#{x}</a>`, tmpl.Markup)
	assertSlotText(t, tmpl, 0, "#{x}")
	assertSlotText(t, tmpl, 1, "#{x}")
	assert.NotEqual(t, tmpl.Slots[0].Start, tmpl.Slots[1].Start)
}

func TestCompile_multilineIsNoSlot(t *testing.T) {
	tmpl := mustCompile(t, "t", "<template><p>#{a\n}</p></template>")
	assert.Equal(t, 0, len(tmpl.Slots))
	assert.Equal(t, "<p>#{a\n}</p>", tmpl.Markup)
}

func TestCompile_directives(t *testing.T) {
	tmpl := mustCompile(t, "views/list.html", `
@name list

use first ?? 2
@use second ?? first * 3
@bind click on "add"
@bind keyup on "add"
@bind click on "del"
<template><ul gk="add"></ul></template>`)
	assert.Equal(t, "list", tmpl.Name)
	pd, _ := tmpl.Prop("second")
	assert.Equal(t, "6", fmt.Sprint(pd.Default))
	assert.Equal(t, []string{"add", "del"}, tmpl.Targets())
	assert.Equal(t, []string{"click", "keyup"}, tmpl.Events["add"])
	assert.True(t, tmpl.Declares("del", "click"))
	assert.False(t, tmpl.Declares("del", "keyup"))
	assert.Equal(t, 0, len(tmpl.Slots))
}

func TestCompile_defaultSeesOnlyEarlierProps(t *testing.T) {
	_, err := compile("t", `@use a ?? b
@use b ?? 1
<template></template>`, NewJSEvaluator(), seqIDs())
	assert.True(t, errors.Is(err, ErrEvaluation), err)
}

func TestCompile_nullDefaultIsMandatory(t *testing.T) {
	tmpl := mustCompile(t, "t", "@use a ?? null\n<template></template>")
	pd, _ := tmpl.Prop("a")
	assert.True(t, pd.Mandatory())
}

func TestCompile_errors(t *testing.T) {
	cases := []struct {
		src string
		err error
	}{
		{`<p>#{x}</p>`, ErrMalformedTemplate},
		{`<template><p></p>`, ErrMalformedTemplate},
		{`<template><template></template></template>`, ErrMalformedTemplate},
		{"@name a\n@name b\n<template></template>", ErrDuplicateDirective},
		{"@use x\n@use x ?? 1\n<template></template>", ErrDuplicateDirective},
		{"@bind click on \"b\"\n@bind click on \"b\"\n<template></template>", ErrDuplicateDirective},
		{"@import x\n<template></template>", ErrUnknownDirective},
		{"<div>\n<template></template>", ErrUnknownDirective},
		{`<template>#{x}</template>`, ErrEvaluationOutsideElement},
		{`<template><p></p>#{x}</template>`, ErrEvaluationOutsideElement},
		{`<template><p><!-- #{x} --></p></template>`, ErrEvaluationOutsideElement},
		{`<template><p class="#{x}"></p></template>`, ErrEvaluationOutsideElement},
		{`<template><p gk-class="a #{x}"></p></template>`, ErrEvaluationOutsideElement},
		{`<template><p gk-class="#{x} b"></p></template>`, ErrEvaluationOutsideElement},
		{`<template><p gk-="#{x}"></p></template>`, ErrEvaluationOutsideElement},
		{`<template><p #{x}></p></template>`, ErrEvaluationOutsideElement},
		{`<template><script>#{x}</script></template>`, ErrEvaluationOutsideElement},
		{`<template><style>p { color: #{x} }</style></template>`, ErrEvaluationOutsideElement},
		{`<template><textarea>a #{x}</textarea></template>`, ErrEvaluationOutsideElement},
		{`<template><textarea><b>#{x}</b></textarea></template>`, ErrEvaluationOutsideElement},
		{`<template><title>#{x}#{x}</title></template>`, ErrEvaluationOutsideElement},
	}
	for _, c := range cases {
		_, err := Compile("t", c.src, NewJSEvaluator())
		assert.True(t, errors.Is(err, c.err), c.src, " → ", err)
	}
}

func TestCompile_quotedGtInAttr(t *testing.T) {
	tmpl := mustCompile(t, "t", `@use v ?? 1
<template><p title="a>b">#{v}</p></template>`)
	assert.Equal(t, `<p title="a>b" data-gk1>#{v}</p>`, tmpl.Markup)
	assertSlotText(t, tmpl, 0, "#{v}")
}

func TestCompile_wholeContent(t *testing.T) {
	tmpl := mustCompile(t, "t", `@use v ?? 1
<template><label><textarea>#{v}</textarea>#{v}</label></template>`)
	assert.Equal(t, `<label data-gk2><textarea data-gk1>#{v}</textarea>#{v}</label>`, tmpl.Markup)
	assert.True(t, tmpl.Slots[0].Whole)
	assert.False(t, tmpl.Slots[1].Whole)
	assertSlotText(t, tmpl, 0, "#{v}")
	assertSlotText(t, tmpl, 1, "#{v}")
}

func TestCompile_uniqueIDs(t *testing.T) {
	tmpl, err := Compile("t", "@use x ?? 1\n<template><p>#{x}#{x}#{x}</p></template>", NewJSEvaluator())
	assert.Nil(t, err)
	seen := make(map[string]bool)
	for _, s := range tmpl.Slots {
		assert.True(t, strings.HasPrefix(s.ID, "gk"), s.ID)
		assert.Equal(t, 18, len(s.ID))
		assert.False(t, seen[s.ID], s.ID)
		seen[s.ID] = true
		assert.True(t, strings.Contains(tmpl.Markup, MarkerAttr(s.ID)))
	}
}

func TestIdentifiers(t *testing.T) {
	assert.Equal(t,
		[]string{"a", "c", "$x", "_y", "on"},
		Identifiers(`a.b + c[0] + 1e5 + $x + _y + a + 'on'`))
	assert.Equal(t, 0, len(Identifiers("1 + 2.5")))
}

func ExampleDependencies() {
	fmt.Println(Dependencies(`user.name + " " + count * price.amount`, []string{"count", "user", "name"}))
	// Output:
	// [user count]
}
