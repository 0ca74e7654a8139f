// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
//
// Package ganko compiles templates of directives and markup with embedded
// #{…} expressions, renders them and keeps rendered instances up to date
// without diffing.
//
// A template source is a header of directives followed by the markup
// between <template> and </template>:
//
//	@name card
//	@use title
//	@use count ?? 0
//	@bind click on "more"
//	<template>
//	  <h1 gk="more">#{title}</h1>
//	  <p gk-class="#{count > 9 ? 'many' : 'few'}">#{count} items</p>
//	</template>
//
// Each #{…} is a slot. A slot is either the text of its innermost element
// or the whole value of an attribute prefixed with "gk-". Compile tags the
// element of every slot with a marker attribute and records which declared
// props the expression depends on. Rendering wraps text slots into marker
// comments. Once the output lives in a document tree a Binder resolves the
// markers to anchors, and Instance.Update re-evaluates only the slots that
// depend on the props that changed. – No diffing!
//
// Expressions are evaluated by an Evaluator; the default one runs
// ECMAScript with goja. Templates are kept in a Registry that can be
// exported and imported as JSON or YAML.
package ganko
