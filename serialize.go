// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package ganko

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// Format selects the textual form of an exported registry.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.Errorf("unknown registry format '%s' (expected json or yaml)", s)
	}
}

type registryDoc struct {
	Templates []*Template       `json:"templates"`
	Names     map[string]string `json:"names"`
}

// Export writes all templates and locator aliases in format f. Templates
// are ordered by name so equal registries export equal text.
func (r *Registry) Export(w io.Writer, f Format) error {
	r.mu.RLock()
	doc := registryDoc{
		Templates: make([]*Template, 0, len(r.templates)),
		Names:     make(map[string]string, len(r.names)),
	}
	for alias, nm := range r.names {
		doc.Names[alias] = nm
	}
	r.mu.RUnlock()
	for _, nm := range r.Names() {
		t, _ := r.Get(nm)
		doc.Templates = append(doc.Templates, t)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode registry")
	}
	if f == FormatYAML {
		if data, err = yaml.JSONToYAML(data); err != nil {
			return errors.Wrap(err, "encode registry")
		}
	}
	if _, err = w.Write(data); err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	return nil
}

// Import replaces the content of r with a registry read in format f. Nothing
// is replaced when the input is invalid.
func (r *Registry) Import(rd io.Reader, f Format) error {
	data, err := io.ReadAll(rd)
	if err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	if f == FormatYAML {
		if data, err = yaml.YAMLToJSON(data); err != nil {
			return errors.Wrap(err, "decode registry")
		}
	}
	var doc registryDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "decode registry")
	}
	templates := make(map[string]*Template, len(doc.Templates))
	for _, t := range doc.Templates {
		if err := checkImported(t); err != nil {
			return err
		}
		if t.Events == nil {
			t.Events = make(map[string][]string)
		}
		templates[t.Name] = t
	}
	names := make(map[string]string, len(doc.Names))
	for alias, nm := range doc.Names {
		if _, ok := templates[nm]; !ok {
			return errors.Errorf("decode registry: alias '%s' refers to unknown template '%s'", alias, nm)
		}
		names[alias] = nm
	}
	r.mu.Lock()
	r.templates = templates
	r.names = names
	r.mu.Unlock()
	return nil
}

func checkImported(t *Template) error {
	if t == nil || t.Name == "" {
		return errors.New("decode registry: template without name")
	}
	last := 0
	for _, s := range t.Slots {
		if s.ID == "" || s.Start < last || s.End <= s.Start || s.End > len(t.Markup) {
			return errors.Errorf("decode registry: slot '%s' of template '%s' out of place", s.ID, t.Name)
		}
		last = s.End
	}
	return nil
}
