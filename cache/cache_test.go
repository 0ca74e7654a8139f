// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stvp/assert"

	ganko "github.com/ThomasGysemans/Ganko"
)

func openTest(t *testing.T) *Cache {
	c, err := Open(context.Background(), filepath.Join(t.TempDir(), "sub", "ganko.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache_storeLoad(t *testing.T) {
	ctx := context.Background()
	c := openTest(t)
	eng := ganko.NewEngine()
	_, err := eng.Compile("views/card.html", `@name card
@use title
<template><h1>#{title}</h1></template>`)
	assert.Nil(t, err)
	expect, err := eng.Render("card", ganko.Props{"title": "Hi"})
	assert.Nil(t, err)

	has, err := c.Has(ctx, "")
	assert.Nil(t, err)
	assert.False(t, has)
	assert.Nil(t, c.Store(ctx, "", eng.Registry))
	has, err = c.Has(ctx, DefaultKey)
	assert.Nil(t, err)
	assert.True(t, has)

	reg := ganko.NewRegistry()
	ok, err := c.Load(ctx, "", reg)
	assert.Nil(t, err)
	assert.True(t, ok)
	got, err := ganko.NewEngine(ganko.WithRegistry(reg)).Render("views/card.html", ganko.Props{"title": "Hi"})
	assert.Nil(t, err)
	assert.Equal(t, expect, got)
}

func TestCache_keysAndClear(t *testing.T) {
	ctx := context.Background()
	c := openTest(t)
	reg := ganko.NewRegistry()
	assert.Nil(t, c.Store(ctx, "b", reg))
	assert.Nil(t, c.Store(ctx, "a", reg))
	assert.Nil(t, c.Store(ctx, "a", reg))
	keys, err := c.Keys(ctx)
	assert.Nil(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
	assert.Nil(t, c.Clear(ctx, "a"))
	has, err := c.Has(ctx, "a")
	assert.Nil(t, err)
	assert.False(t, has)
	ok, err := c.Load(ctx, "a", reg)
	assert.Nil(t, err)
	assert.False(t, ok)
}

func TestCache_reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ganko.db")
	c, err := Open(ctx, path)
	assert.Nil(t, err)
	assert.Nil(t, c.Store(ctx, "k", ganko.NewRegistry()))
	assert.Nil(t, c.Close())
	assert.Nil(t, c.Close())
	c, err = Open(ctx, path)
	assert.Nil(t, err)
	defer c.Close()
	has, err := c.Has(ctx, "k")
	assert.Nil(t, err)
	assert.True(t, has)
}

func TestOpen_emptyPath(t *testing.T) {
	_, err := Open(context.Background(), " ")
	assert.NotNil(t, err)
}
