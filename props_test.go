// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package ganko

import (
	"testing"

	"github.com/stvp/assert"
)

type cardProps struct {
	Title   string `ganko:"title"`
	Name    string `ganko:"name,omitempty"`
	Count   int
	Secret  string `ganko:"-"`
	private string
}

func TestPropsOf_struct(t *testing.T) {
	p, err := PropsOf(&cardProps{Title: "Hi", Count: 2, Secret: "x", private: "y"})
	assert.Nil(t, err)
	assert.Equal(t, Props{"title": "Hi", "Count": 2}, p)
	p, err = PropsOf(cardProps{Name: "ada"})
	assert.Nil(t, err)
	assert.Equal(t, Props{"title": "", "name": "ada", "Count": 0}, p)
}

func TestPropsOf_map(t *testing.T) {
	p, err := PropsOf(map[string]int{"a": 1})
	assert.Nil(t, err)
	assert.Equal(t, Props{"a": 1}, p)
	_, err = PropsOf(map[int]string{1: "a"})
	assert.NotNil(t, err)
	_, err = PropsOf(42)
	assert.NotNil(t, err)
	_, err = PropsOf((*cardProps)(nil))
	assert.NotNil(t, err)
}

func TestPropsOf_badTag(t *testing.T) {
	_, err := PropsOf(struct {
		A int `ganko:"a,opt"`
	}{})
	assert.NotNil(t, err)
}

func TestPropsOf_render(t *testing.T) {
	eng, _ := testEngine(t, "card.html", cardSrc)
	p, err := PropsOf(cardProps{Title: "Hi"})
	assert.Nil(t, err)
	delete(p, "Count")
	out, err := eng.Render("card.html", p)
	assert.Nil(t, err)
	assert.Equal(t,
		`<h1 data-gk1><!--ev:gk1-->Hi<!--/ev--></h1><p data-gk2><!--ev:gk2-->THOMAS<!--/ev--></p>`,
		out)
}
