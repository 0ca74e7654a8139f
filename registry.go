// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package ganko

import (
	"sort"
	"sync"
)

// Registry holds compiled templates by name. Templates can also be looked up
// by the locator they were read from when that differs from their name.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*Template
	names     map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[string]*Template),
		names:     make(map[string]string),
	}
}

func (r *Registry) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Get finds a template by name or by locator.
func (r *Registry) Get(key string) (*Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.get(key)
}

func (r *Registry) get(key string) (*Template, bool) {
	if t, ok := r.templates[key]; ok {
		return t, true
	}
	if nm, ok := r.names[key]; ok {
		t, ok := r.templates[nm]
		return t, ok
	}
	return nil, false
}

// Set stores t under its name and remembers key as an alias if it differs.
// An existing template of the same name is replaced.
func (r *Registry) Set(key string, t *Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[t.Name] = t
	if key != "" && key != t.Name {
		r.names[key] = t.Name
	}
}

// Discard removes the template known as key together with all its aliases.
func (r *Registry) Discard(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.get(key)
	if !ok {
		return false
	}
	delete(r.templates, t.Name)
	for alias, nm := range r.names {
		if nm == t.Name {
			delete(r.names, alias)
		}
	}
	return true
}

// Names returns the names of all templates, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]string, 0, len(r.templates))
	for nm := range r.templates {
		res = append(res, nm)
	}
	sort.Strings(res)
	return res
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}
