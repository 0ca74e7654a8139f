// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/stvp/assert"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	ganko "github.com/ThomasGysemans/Ganko"
)

const cardSrc = `@name card
@use title
@use count ?? 1
@bind click on "more"
<template>
<div><h1 gk="more">#{title}</h1><p gk-data-count="#{count}">#{count} items</p></div>
</template>`

func runCLI(t *testing.T, args ...string) (string, error) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTemplates(t *testing.T) string {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "card.html"), []byte(cardSrc), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestParseProps(t *testing.T) {
	file := filepath.Join(t.TempDir(), "props.yaml")
	assert.Nil(t, os.WriteFile(file, []byte("title: From file\ncount: 2\n"), 0o644))
	p, err := parseProps(file, []string{"count=3", "flag=true", "empty=", "text=hello world"})
	assert.Nil(t, err)
	assert.Equal(t, "From file", p["title"])
	assert.Equal(t, 3, p["count"])
	assert.Equal(t, true, p["flag"])
	assert.Equal(t, "", p["empty"])
	assert.Equal(t, "hello world", p["text"])
	_, err = parseProps("", []string{"novalue"})
	assert.NotNil(t, err)
}

func TestCompileAndRender(t *testing.T) {
	dir := writeTemplates(t)
	reg := filepath.Join(dir, "registry.yaml")
	db := filepath.Join(dir, "cache.db")
	_, err := runCLI(t, "compile", "card.html", "--root", dir, "--registry", reg, "--format", "yaml", "--cache-db", db, "--log-level", "error")
	assert.Nil(t, err)
	_, err = os.Stat(reg)
	assert.Nil(t, err)

	out, err := runCLI(t, "render", "card", "--registry", reg, "--format", "yaml", "--prop", "title=Hi", "--log-level", "error")
	assert.Nil(t, err)
	assert.True(t, strings.Contains(out, "-->Hi<!--"), out)
	assert.True(t, strings.Contains(out, `data-count="1"`), out)

	out, err = runCLI(t, "render", "card.html", "--cache-db", db, "-p", "title=Cached", "-p", "count=5", "--log-level", "error")
	assert.Nil(t, err)
	assert.True(t, strings.Contains(out, "-->Cached<!--"), out)
	assert.True(t, strings.Contains(out, "-->5<!--"), out)
}

func TestRender_fetchesUnknown(t *testing.T) {
	dir := writeTemplates(t)
	out, err := runCLI(t, "render", "card.html", "--root", dir, "--prop", "title=Direct", "--log-level", "error")
	assert.Nil(t, err)
	assert.True(t, strings.Contains(out, "-->Direct<!--"), out)
	_, err = runCLI(t, "render", "card.html", "--root", dir, "--log-level", "error")
	assert.True(t, errors.Is(err, ganko.ErrMissingProp), err)
}

func TestInstantiateCommand(t *testing.T) {
	dir := writeTemplates(t)
	out, err := runCLI(t, "instantiate", "card.html", "--root", dir, "-p", "title=Hi", "-u", "count=7", "--trigger", "more:click", "--log-level", "error")
	assert.Nil(t, err)
	parts := strings.Split(out, "---\n")
	assert.Equal(t, 2, len(parts), out)
	assert.True(t, strings.Contains(parts[0], `<p data-count="1">1 items</p>`), parts[0])
	assert.True(t, strings.Contains(parts[1], `<p data-count="7">7 items</p>`), parts[1])
}

func TestWriteInspect(t *testing.T) {
	color.NoColor = true
	eng := ganko.NewEngine()
	tmpl, err := eng.Compile("card.html", cardSrc)
	assert.Nil(t, err)
	var buf bytes.Buffer
	assert.Nil(t, writeInspect(&buf, tmpl, message.NewPrinter(language.English)))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "template card\n"), out)
	assert.True(t, strings.Contains(out, "  title (mandatory)\n"), out)
	assert.True(t, strings.Contains(out, "  count ?? 1\n"), out)
	assert.True(t, strings.Contains(out, "  more: click\n"), out)
	assert.True(t, strings.Contains(out, "attr data-count"), out)
	assert.True(t, strings.HasSuffix(out, "3 slots, 2 props, "+message.NewPrinter(language.English).Sprintf("%d", len(tmpl.Markup))+" bytes of markup\n"), out)
}
