// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package ganko

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

type tagMode int

const (
	tagNone tagMode = iota
	tagName
	tagOmitEmpty
	tagIgnore
)

func parseTag(tag string) (mode tagMode, name string, err error) {
	if tag == "" {
		return tagNone, "", nil
	}
	if tag == "-" {
		return tagIgnore, "", nil
	}
	name, opt, found := strings.Cut(tag, ",")
	if !found {
		return tagName, name, nil
	}
	switch opt {
	case "omitempty":
		return tagOmitEmpty, name, nil
	default:
		return tagNone, "", errors.Errorf("ganko props: illegal tag option '%s'", opt)
	}
}

// PropsOf builds props from a struct or a map with string keys. Struct
// fields are mapped by their `ganko:"name"` tag or, without tag, by the
// field name. Fields tagged `ganko:"-"` are skipped and `ganko:"name,omitempty"`
// leaves out zero values so that declared defaults apply.
func PropsOf(v any) (Props, error) {
	if p, ok := v.(Props); ok {
		return p, nil
	}
	val := reflect.ValueOf(v)
	for val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil, errors.New("ganko props: nil pointer")
		}
		val = val.Elem()
	}
	switch val.Kind() {
	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			return nil, errors.Errorf("ganko props: map key type %s", val.Type().Key())
		}
		res := make(Props, val.Len())
		iter := val.MapRange()
		for iter.Next() {
			res[iter.Key().String()] = iter.Value().Interface()
		}
		return res, nil
	case reflect.Struct:
		res := make(Props)
		typ := val.Type()
		for i := 0; i < typ.NumField(); i++ {
			sf := typ.Field(i)
			if !sf.IsExported() {
				continue
			}
			mode, name, err := parseTag(sf.Tag.Get("ganko"))
			if err != nil {
				return nil, errors.Wrapf(err, "field %s", sf.Name)
			}
			if mode == tagIgnore {
				continue
			}
			if name == "" {
				name = sf.Name
			}
			fv := val.Field(i)
			if mode == tagOmitEmpty && fv.IsZero() {
				continue
			}
			res[name] = fv.Interface()
		}
		return res, nil
	default:
		return nil, errors.Errorf("ganko props: cannot make props from %s", val.Kind())
	}
}
