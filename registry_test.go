// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package ganko

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stvp/assert"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	a := mustCompile(t, "views/a.html", "@name a\n<template><p>a</p></template>")
	reg.Set("views/a.html", a)
	b := mustCompile(t, "b", "<template><p>b</p></template>")
	reg.Set("b", b)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"a", "b"}, reg.Names())
	got, ok := reg.Get("views/a.html")
	assert.True(t, ok)
	assert.Equal(t, a, got)
	got, _ = reg.Get("a")
	assert.Equal(t, a, got)

	a2 := mustCompile(t, "other/a.html", "@name a\n<template><p>A</p></template>")
	reg.Set("other/a.html", a2)
	got, _ = reg.Get("views/a.html")
	assert.Equal(t, a2, got)

	assert.True(t, reg.Discard("a"))
	assert.False(t, reg.Has("views/a.html"))
	assert.False(t, reg.Has("other/a.html"))
	assert.Equal(t, []string{"b"}, reg.Names())
}

func testRoundTrip(t *testing.T, f Format) {
	eng := NewEngine()
	eng.Registry.Set("card.html", mustCompile(t, "card.html", cardSrc))
	eng.Registry.Set("views/toggle.html", mustCompile(t, "views/toggle.html", "@name toggle\n"+toggleSrc))
	var buf bytes.Buffer
	assert.Nil(t, eng.Registry.Export(&buf, f))

	reg := NewRegistry()
	assert.Nil(t, reg.Import(bytes.NewReader(buf.Bytes()), f))
	other := NewEngine(WithRegistry(reg))
	assert.Equal(t, eng.Registry.Names(), reg.Names())
	for _, c := range []struct {
		key   string
		props Props
	}{
		{"card.html", Props{"title": "Hi"}},
		{"views/toggle.html", nil},
		{"toggle", Props{"active": false, "label": "x"}},
	} {
		expect, err := eng.Render(c.key, c.props)
		assert.Nil(t, err)
		got, err := other.Render(c.key, c.props)
		assert.Nil(t, err)
		assert.Equal(t, expect, got, c.key)
	}
	var again bytes.Buffer
	assert.Nil(t, reg.Export(&again, f))
	assert.Equal(t, buf.String(), again.String())
}

func TestRegistry_roundTripJSON(t *testing.T) { testRoundTrip(t, FormatJSON) }

func TestRegistry_roundTripYAML(t *testing.T) { testRoundTrip(t, FormatYAML) }

func TestRegistry_importInvalid(t *testing.T) {
	reg := NewRegistry()
	reg.Set("b", mustCompile(t, "b", "<template><p>b</p></template>"))
	for _, doc := range []string{
		`{"templates":[{"name":"a","markup":"x"}],"names":{"z":"q"}}`,
		`{"templates":[{"name":"","markup":"x"}]}`,
		`{"templates":[{"name":"a","markup":"ab","slots":[{"id":"gk1","start":1,"end":9}]}]}`,
		`not json`,
	} {
		err := reg.Import(strings.NewReader(doc), FormatJSON)
		assert.NotNil(t, err, doc)
	}
	assert.Equal(t, []string{"b"}, reg.Names())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	assert.Nil(t, err)
	assert.Equal(t, FormatYAML, f)
	f, err = ParseFormat("")
	assert.Nil(t, err)
	assert.Equal(t, FormatJSON, f)
	_, err = ParseFormat("toml")
	assert.NotNil(t, err)
}
