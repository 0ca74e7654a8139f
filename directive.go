// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package ganko

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var (
	useRgx  = regexp.MustCompile(`^@?use\s+(\w+)(?:\s*\?\?\s*(.+))?$`)
	bindRgx = regexp.MustCompile(`^@?bind\s+(\w+)\s+on\s+"([\w-]*)"$`)
	nameRgx = regexp.MustCompile(`^@?name\s+(\w+)$`)
)

// directives collects the header of a template source.
type directives struct {
	name   string
	props  []PropDecl
	events map[string][]string
}

func (d *directives) declared(prop string) bool {
	for _, pd := range d.props {
		if pd.Name == prop {
			return true
		}
	}
	return false
}

// parseDirectives reads the header lines. Default expressions are evaluated
// right away and only see the props declared above them.
func parseDirectives(header string, eval Evaluator) (*directives, error) {
	res := &directives{events: make(map[string][]string)}
	scn := bufio.NewScanner(strings.NewReader(header))
	lno := 0
	for scn.Scan() {
		lno++
		line := strings.TrimSpace(scn.Text())
		if line == "" {
			continue
		}
		if match := useRgx.FindStringSubmatch(line); match != nil {
			if err := res.use(match[1], strings.TrimSpace(match[2]), eval); err != nil {
				return nil, errors.Wrapf(err, "line %d", lno)
			}
		} else if match := bindRgx.FindStringSubmatch(line); match != nil {
			event, target := match[1], match[2]
			for _, e := range res.events[target] {
				if e == event {
					return nil, errors.Wrapf(ErrDuplicateDirective,
						"line %d: bind '%s' on \"%s\"", lno, event, target)
				}
			}
			res.events[target] = append(res.events[target], event)
		} else if match := nameRgx.FindStringSubmatch(line); match != nil {
			if res.name != "" {
				return nil, errors.Wrapf(ErrDuplicateDirective,
					"line %d: name '%s' after '%s'", lno, match[1], res.name)
			}
			res.name = match[1]
		} else {
			return nil, errors.Wrapf(ErrUnknownDirective, "line %d: '%s'", lno, line)
		}
	}
	if err := scn.Err(); err != nil {
		return nil, errors.Wrap(ErrIO, err.Error())
	}
	return res, nil
}

func (d *directives) use(name, dflt string, eval Evaluator) error {
	if d.declared(name) {
		return errors.Wrapf(ErrDuplicateDirective, "use '%s'", name)
	}
	pd := PropDecl{Name: name}
	if dflt != "" {
		earlier := make(Bindings, len(d.props))
		for _, p := range d.props {
			earlier[p.Name] = p.Default
		}
		v, err := eval.Evaluate(dflt, earlier)
		if err != nil {
			return err
		}
		pd.Default = v
	}
	d.props = append(d.props, pd)
	return nil
}
